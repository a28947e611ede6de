// SPDX-License-Identifier: MPL-2.0

package crop

import (
	"errors"
	"path/filepath"
	"testing"

	"toolbelt-cli/internal/runner"
	"toolbelt-cli/internal/testutil"

	"github.com/google/go-cmp/cmp"
)

func TestOptions_ResolveOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		want    string
		wantErr error
	}{
		{name: "default", opts: Options{Input: "dir/photo.jpg"}, want: "dir/photo-cropped.jpg"},
		{name: "no extension", opts: Options{Input: "scan"}, want: "scan-cropped"},
		{name: "explicit", opts: Options{Input: "a.png", Output: "b.png"}, want: "b.png"},
		{name: "in place", opts: Options{Input: "a.png", InPlace: true}, want: "a.png"},
		{name: "in place and output", opts: Options{Input: "a.png", Output: "b.png", InPlace: true}, wantErr: ErrInPlaceWithOutput},
		{name: "output is input", opts: Options{Input: "a.png", Output: "./a.png"}, wantErr: ErrOutputIsInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.opts.ResolveOutput()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveOutput() = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ResolveOutput() = %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}

func writeImage(t *testing.T) string {
	t.Helper()

	return testutil.MustWriteFile(t, filepath.Join(t.TempDir(), "photo.png"), "png", 0o644)
}

func TestRun_Corners(t *testing.T) {
	t.Parallel()

	img := writeImage(t)
	query := &runner.Recorder{}
	rec := &runner.Recorder{}

	if err := Run(t.Context(), query, rec, Options{Input: img, Expression: "10,20-650,500"}); err != nil {
		t.Fatal(err)
	}
	if len(query.Commands()) != 0 {
		t.Errorf("identify should not run for corner expressions: %v", query.Argvs())
	}
	want := [][]string{{"convert", img, "-crop", "640x480+10+20", "+repage", DefaultOutput(img)}}
	if diff := cmp.Diff(want, rec.Argvs()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_MarginsUseIdentify(t *testing.T) {
	t.Parallel()

	img := writeImage(t)
	query := &runner.Recorder{Results: []*runner.Result{{Output: "800 600\n"}}}
	rec := &runner.Recorder{}

	if err := Run(t.Context(), query, rec, Options{Input: img, Expression: "5:0:5:40", InPlace: true}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][]string{{"identify", "-format", "%w %h", img}}, query.Argvs()); diff != "" {
		t.Errorf("identify mismatch (-want +got):\n%s", diff)
	}
	want := [][]string{{"convert", img, "-crop", "790x560+5+0", "+repage", img}}
	if diff := cmp.Diff(want, rec.Argvs()); diff != "" {
		t.Errorf("convert mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_InvalidExpressionRunsNothing(t *testing.T) {
	t.Parallel()

	img := writeImage(t)
	rec := &runner.Recorder{}
	err := Run(t.Context(), rec, rec, Options{Input: img, Expression: "10x10"})
	if !errors.Is(err, ErrInvalidExpression) {
		t.Fatalf("Run() = %v, want ErrInvalidExpression", err)
	}
	if len(rec.Commands()) != 0 {
		t.Errorf("nothing should run: %v", rec.Argvs())
	}
}
