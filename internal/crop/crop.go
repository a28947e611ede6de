// SPDX-License-Identifier: MPL-2.0

// Package crop parses crop expressions and turns them into ImageMagick
// geometries.
package crop

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidExpression is wrapped by every parse failure.
var ErrInvalidExpression = errors.New("invalid crop expression")

// Kind identifies which of the three expression shapes was used.
type Kind int

const (
	// KindGeometry is WxH+X+Y.
	KindGeometry Kind = iota + 1
	// KindCorners is X1,Y1-X2,Y2 with an exclusive bottom-right corner.
	KindCorners
	// KindMargins is L:T:R:B, pixels removed from each edge.
	KindMargins
)

var (
	geometryRe = regexp.MustCompile(`^([0-9]+)x([0-9]+)\+([0-9]+)\+([0-9]+)$`)
	cornersRe  = regexp.MustCompile(`^([0-9]+),([0-9]+)-([0-9]+),([0-9]+)$`)
	marginsRe  = regexp.MustCompile(`^([0-9]+):([0-9]+):([0-9]+):([0-9]+)$`)
)

type (
	// Expression is a parsed crop expression. The meaning of the four values
	// depends on Kind.
	Expression struct {
		Kind Kind
		A    int
		B    int
		C    int
		D    int
	}

	// Geometry is a normalized crop rectangle.
	Geometry struct {
		Width  int
		Height int
		X      int
		Y      int
	}
)

// Parse matches s against the three accepted shapes.
func Parse(s string) (Expression, error) {
	shapes := []struct {
		kind Kind
		re   *regexp.Regexp
	}{
		{KindGeometry, geometryRe},
		{KindCorners, cornersRe},
		{KindMargins, marginsRe},
	}

	for _, shape := range shapes {
		m := shape.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		var n [4]int
		for i := range n {
			// 32 bits is far beyond any image and keeps sums of two values in range.
			v, err := strconv.ParseInt(m[i+1], 10, 32)
			if err != nil {
				return Expression{}, fmt.Errorf("%w %q: %w", ErrInvalidExpression, s, err)
			}
			n[i] = int(v)
		}
		expr := Expression{Kind: shape.kind, A: n[0], B: n[1], C: n[2], D: n[3]}
		if err := expr.validate(); err != nil {
			return Expression{}, fmt.Errorf("%w %q: %w", ErrInvalidExpression, s, err)
		}
		return expr, nil
	}

	return Expression{}, fmt.Errorf("%w %q: expected WxH+X+Y, X1,Y1-X2,Y2 or L:T:R:B", ErrInvalidExpression, s)
}

func (e Expression) validate() error {
	switch e.Kind {
	case KindGeometry:
		if e.A == 0 || e.B == 0 {
			return errors.New("width and height must be positive")
		}
	case KindCorners:
		if e.C <= e.A {
			return fmt.Errorf("right edge %d must be greater than left edge %d", e.C, e.A)
		}
		if e.D <= e.B {
			return fmt.Errorf("bottom edge %d must be greater than top edge %d", e.D, e.B)
		}
	}
	return nil
}

// NeedsImageSize reports whether Resolve requires the image dimensions.
func (e Expression) NeedsImageSize() bool {
	return e.Kind == KindMargins
}

// Resolve computes the crop rectangle. imgW and imgH are only consulted for
// margin expressions; for the others they may be zero.
func (e Expression) Resolve(imgW, imgH int) (Geometry, error) {
	var g Geometry
	switch e.Kind {
	case KindGeometry:
		g = Geometry{Width: e.A, Height: e.B, X: e.C, Y: e.D}
	case KindCorners:
		g = Geometry{Width: e.C - e.A, Height: e.D - e.B, X: e.A, Y: e.B}
	case KindMargins:
		if imgW <= 0 || imgH <= 0 {
			return Geometry{}, fmt.Errorf("image size %dx%d is not usable", imgW, imgH)
		}
		if e.A >= imgW || e.C >= imgW-e.A || e.B >= imgH || e.D >= imgH-e.B {
			return Geometry{}, fmt.Errorf("%w: margins %d:%d:%d:%d leave nothing of a %dx%d image",
				ErrInvalidExpression, e.A, e.B, e.C, e.D, imgW, imgH)
		}
		g = Geometry{
			Width:  imgW - e.A - e.C,
			Height: imgH - e.B - e.D,
			X:      e.A,
			Y:      e.B,
		}
	default:
		return Geometry{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidExpression, e.Kind)
	}

	if imgW > 0 && imgH > 0 && (g.X > imgW || g.Width > imgW-g.X || g.Y > imgH || g.Height > imgH-g.Y) {
		return Geometry{}, fmt.Errorf("%w: %s exceeds the %dx%d image", ErrInvalidExpression, g, imgW, imgH)
	}
	return g, nil
}

// String renders the ImageMagick geometry WxH+X+Y.
func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", g.Width, g.Height, g.X, g.Y)
}

// ParseImageSize parses the output of identify -format "%w %h".
func ParseImageSize(s string) (width, height int, err error) {
	if _, err := fmt.Sscanf(s, "%d %d", &width, &height); err != nil {
		return 0, 0, fmt.Errorf("unexpected identify output %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("unexpected image size %dx%d", width, height)
	}
	return width, height, nil
}
