// SPDX-License-Identifier: MPL-2.0

package rsync

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"toolbelt-cli/internal/runner"

	"github.com/google/go-cmp/cmp"
)

func TestOptions_Command(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "directory gets trailing slash",
			opts: Options{Source: dir, Dest: "host:/backup"},
			want: []string{"rsync", "--archive", "--human-readable", "--progress", "--itemize-changes", dir + "/", "host:/backup"},
		},
		{
			name: "file is left alone",
			opts: Options{Source: file, Dest: "out"},
			want: []string{"rsync", "--archive", "--human-readable", "--progress", "--itemize-changes", file, "out"},
		},
		{
			name: "all options",
			opts: Options{
				Source:   dir + "/",
				Dest:     "out",
				Mirror:   true,
				Checksum: true,
				DryRun:   true,
				BwLimit:  "2M",
				Excludes: []string{".git/", "*.o"},
			},
			want: []string{
				"rsync", "--archive", "--human-readable", "--progress", "--itemize-changes",
				"--delete", "--delete-excluded", "--checksum", "--dry-run", "--bwlimit=2M",
				"--exclude=.git/", "--exclude=*.o", dir + "/", "out",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, tt.opts.Command().Argv()); diff != "" {
				t.Errorf("Command() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateExclude(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		valid   bool
	}{
		{"*.o", true},
		{"/build/", true},
		{"**/node_modules", true},
		{"cache/[a-z]*", true},
		{"[unclosed", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		err := ValidateExclude(tt.pattern)
		if tt.valid && err != nil {
			t.Errorf("ValidateExclude(%q) = %v, want nil", tt.pattern, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidExclude) {
			t.Errorf("ValidateExclude(%q) = %v, want ErrInvalidExclude", tt.pattern, err)
		}
	}
}

func TestOptions_ValidateBwLimit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, rate := range []string{"500K", "2M", "1024", "1.5m", "10MiB"} {
		if err := (Options{Source: dir, Dest: "x", BwLimit: rate}).Validate(); err != nil {
			t.Errorf("rate %q rejected: %v", rate, err)
		}
	}
	for _, rate := range []string{"fast", "-1", "2 M"} {
		if err := (Options{Source: dir, Dest: "x", BwLimit: rate}).Validate(); !errors.Is(err, ErrInvalidBwLimit) {
			t.Errorf("rate %q: got %v, want ErrInvalidBwLimit", rate, err)
		}
	}
}

func TestSync_InvalidExcludeRunsNothing(t *testing.T) {
	t.Parallel()

	rec := &runner.Recorder{}
	err := Sync(t.Context(), rec, Options{Source: t.TempDir(), Dest: "out", Excludes: []string{"[bad"}})
	if !errors.Is(err, ErrInvalidExclude) {
		t.Fatalf("Sync() = %v, want ErrInvalidExclude", err)
	}
	if len(rec.Commands()) != 0 {
		t.Errorf("rsync must not run, got %v", rec.Argvs())
	}
}

func TestSync_MissingSource(t *testing.T) {
	t.Parallel()

	err := Sync(t.Context(), &runner.Recorder{}, Options{Source: filepath.Join(t.TempDir(), "gone"), Dest: "out"})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Sync() = %v, want ErrNotExist", err)
	}
}
