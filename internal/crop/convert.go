// SPDX-License-Identifier: MPL-2.0

package crop

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"toolbelt-cli/internal/issue"
	"toolbelt-cli/internal/runner"
)

var (
	// ErrOutputIsInput guards against overwriting the source by accident.
	ErrOutputIsInput = errors.New("output equals input; use --in-place to overwrite")
	// ErrInPlaceWithOutput is returned when --in-place and OUTPUT are combined.
	ErrInPlaceWithOutput = errors.New("--in-place cannot be combined with an explicit output")
)

// Options describe one crop.
type Options struct {
	Input      string
	Output     string
	InPlace    bool
	Expression string
}

// DefaultOutput returns <base>-cropped<ext> next to input.
func DefaultOutput(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "-cropped" + ext
}

// ResolveOutput applies the in-place and default-output rules.
func (o Options) ResolveOutput() (string, error) {
	switch {
	case o.InPlace && o.Output != "":
		return "", ErrInPlaceWithOutput
	case o.InPlace:
		return o.Input, nil
	case o.Output == "":
		return DefaultOutput(o.Input), nil
	case filepath.Clean(o.Output) == filepath.Clean(o.Input):
		return "", ErrOutputIsInput
	default:
		return o.Output, nil
	}
}

// IdentifyCommand asks ImageMagick for the image dimensions.
func IdentifyCommand(input string) runner.Command {
	return runner.NewCommand("identify", "-format", "%w %h", input)
}

// ConvertCommand crops input into output, resetting the virtual canvas.
func ConvertCommand(input string, g Geometry, output string) runner.Command {
	return runner.NewCommand("convert", input, "-crop", g.String(), "+repage", output)
}

// Run crops an image. query answers read-only questions (identify) even in
// dry-run mode; r runs convert.
func Run(ctx context.Context, query, r runner.Runner, o Options) error {
	expr, err := Parse(o.Expression)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("parse crop expression").
			WithResource(o.Expression).
			WithSuggestions("Use WxH+X+Y, for example 640x480+10+20", "Use X1,Y1-X2,Y2, for example 10,20-650,500", "Use L:T:R:B, for example 5:0:5:40").
			Wrap(err).
			BuildError()
	}

	output, err := o.ResolveOutput()
	if err != nil {
		return err
	}

	info, err := os.Stat(o.Input)
	if err != nil {
		return issue.WrapWithContext(err, "open image", o.Input)
	}
	if info.IsDir() {
		return issue.WrapWithContext(errors.New("is a directory"), "open image", o.Input)
	}

	var w, h int
	if expr.NeedsImageSize() {
		cmd := IdentifyCommand(o.Input)
		res := query.Capture(ctx, cmd)
		if err := res.Err(cmd); err != nil {
			return err
		}
		if w, h, err = ParseImageSize(strings.TrimSpace(res.Output)); err != nil {
			return issue.WrapWithContext(err, "read image size", o.Input)
		}
	}

	g, err := expr.Resolve(w, h)
	if err != nil {
		return err
	}

	cmd := ConvertCommand(o.Input, g, output)
	return r.Run(ctx, cmd).Err(cmd)
}
