// SPDX-License-Identifier: MPL-2.0

package crop

import (
	"errors"
	"math"
	"testing"
)

func TestParse_Shapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Expression
	}{
		{"640x480+10+20", Expression{Kind: KindGeometry, A: 640, B: 480, C: 10, D: 20}},
		{"10,20-650,500", Expression{Kind: KindCorners, A: 10, B: 20, C: 650, D: 500}},
		{"5:0:5:40", Expression{Kind: KindMargins, A: 5, B: 0, C: 5, D: 40}},
		{"1x1+0+0", Expression{Kind: KindGeometry, A: 1, B: 1, C: 0, D: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"",
		"640x480",
		"640x480+10",
		"640x480-10-20",
		" 640x480+10+20",
		"640 x480+10+20",
		"0x480+0+0",
		"640x0+0+0",
		"10,20-10,500",
		"10,20-5,500",
		"10,20-650,20",
		"1:2:3",
		"-1:0:0:0",
		"a:b:c:d",
		"10,20,650,500",
		"9223372036854775807:0:9223372036854775807:0",
		"3000000000x1+0+0",
	} {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse(in); !errors.Is(err, ErrInvalidExpression) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidExpression", in, err)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		expr       string
		imgW, imgH int
		want       string
		wantErr    bool
	}{
		{name: "geometry without size", expr: "100x50+3+4", want: "100x50+3+4"},
		{name: "corners", expr: "10,20-650,500", want: "640x480+10+20"},
		{name: "margins", expr: "5:0:5:40", imgW: 800, imgH: 600, want: "790x560+5+0"},
		{name: "margins need size", expr: "5:0:5:40", wantErr: true},
		{name: "margins eat image", expr: "400:0:400:0", imgW: 800, imgH: 600, wantErr: true},
		{name: "geometry outside image", expr: "800x600+1+0", imgW: 800, imgH: 600, wantErr: true},
		{name: "corners fit exactly", expr: "0,0-800,600", imgW: 800, imgH: 600, want: "800x600+0+0"},
		{name: "margins wider than image", expr: "2000000000:0:2000000000:0", imgW: 100, imgH: 100, wantErr: true},
		{name: "bottom margin alone too large", expr: "0:0:0:100", imgW: 100, imgH: 100, wantErr: true},
		{name: "huge geometry offset", expr: "10x10+2147483647+0", imgW: 100, imgH: 100, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			expr, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.expr, err)
			}
			g, err := expr.Resolve(tt.imgW, tt.imgH)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && g.String() != tt.want {
				t.Errorf("Resolve() = %s, want %s", g, tt.want)
			}
		})
	}
}

func TestResolve_MarginsDoNotWrapAround(t *testing.T) {
	t.Parallel()

	const huge = math.MaxInt
	for _, e := range []Expression{
		{Kind: KindMargins, A: huge, C: huge},
		{Kind: KindMargins, B: huge, D: huge},
		{Kind: KindMargins, A: 50, C: huge - 20},
	} {
		if g, err := e.Resolve(100, 100); !errors.Is(err, ErrInvalidExpression) {
			t.Errorf("Resolve(%+v) = %s, %v; want ErrInvalidExpression", e, g, err)
		}
	}
}

func TestNeedsImageSize(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{
		"1x1+0+0": false,
		"0,0-1,1": false,
		"1:1:1:1": true,
	} {
		expr, err := Parse(in)
		if err != nil {
			t.Fatal(err)
		}
		if got := expr.NeedsImageSize(); got != want {
			t.Errorf("%q NeedsImageSize() = %v, want %v", in, got, want)
		}
	}
}

func TestParseImageSize(t *testing.T) {
	t.Parallel()

	w, h, err := ParseImageSize("1920 1080")
	if err != nil || w != 1920 || h != 1080 {
		t.Errorf("ParseImageSize() = %d, %d, %v", w, h, err)
	}
	if _, _, err := ParseImageSize("garbage"); err == nil {
		t.Error("expected error for garbage input")
	}
	if _, _, err := ParseImageSize("0 10"); err == nil {
		t.Error("expected error for zero width")
	}
}
