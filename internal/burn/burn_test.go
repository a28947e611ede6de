// SPDX-License-Identifier: MPL-2.0

package burn

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"toolbelt-cli/internal/runner"

	"github.com/google/go-cmp/cmp"
)

func TestOptions_Commands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
		want [][]string
	}{
		{
			name: "defaults",
			opts: Options{Device: "/dev/sr0", Image: "a.iso"},
			want: [][]string{{"wodim", "-v", "dev=/dev/sr0", "-dao", "a.iso"}},
		},
		{
			name: "speed simulate eject",
			opts: Options{Device: "/dev/sr1", Speed: 8, Simulate: true, Eject: true, Image: "b.iso"},
			want: [][]string{{"wodim", "-v", "dev=/dev/sr1", "speed=8", "-dao", "-dummy", "-eject", "b.iso"}},
		},
		{
			name: "blank first",
			opts: Options{Device: "/dev/sr0", Blank: BlankFast, Image: "c.iso"},
			want: [][]string{
				{"wodim", "-v", "dev=/dev/sr0", "blank=fast"},
				{"wodim", "-v", "dev=/dev/sr0", "-dao", "c.iso"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got [][]string
			for _, c := range tt.opts.Commands() {
				got = append(got, c.Argv())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Commands() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	image := filepath.Join(dir, "disc.iso")
	if err := os.WriteFile(image, []byte("iso"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{name: "ok", opts: Options{Device: "/dev/sr0", Image: image}},
		{name: "negative speed", opts: Options{Device: "/dev/sr0", Speed: -1, Image: image}, wantErr: ErrInvalidSpeed},
		{name: "bad blank", opts: Options{Device: "/dev/sr0", Blank: "quick", Image: image}, wantErr: ErrInvalidBlankMode},
		{name: "missing image", opts: Options{Device: "/dev/sr0", Image: filepath.Join(dir, "nope.iso")}, wantErr: os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBurn_StopsAfterFailedBlank(t *testing.T) {
	t.Parallel()

	image := filepath.Join(t.TempDir(), "disc.iso")
	if err := os.WriteFile(image, []byte("iso"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := &runner.Recorder{Results: []*runner.Result{runner.NewExitCodeResult(254)}}
	err := Burn(t.Context(), rec, Options{Device: "/dev/sr0", Blank: BlankAll, Image: image})

	var exitErr *runner.ExitStatusError
	if !errors.As(err, &exitErr) || exitErr.Code != 254 {
		t.Fatalf("Burn() = %v, want exit status 254", err)
	}
	if n := len(rec.Commands()); n != 1 {
		t.Errorf("ran %d commands, want 1", n)
	}
}
