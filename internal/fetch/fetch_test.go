// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"errors"
	"testing"
	"time"

	"toolbelt-cli/internal/runner"

	"github.com/google/go-cmp/cmp"
)

func TestParseURL(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"https://example.org/a.iso", "HTTP://example.org", "ftp://mirror.example/pub/x.tar.gz"} {
		if _, err := ParseURL(ok); err != nil {
			t.Errorf("ParseURL(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"file:///etc/passwd", "example.org/a", "https://", "://x", "gopher://x"} {
		if _, err := ParseURL(bad); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("ParseURL(%q) = %v, want ErrInvalidURL", bad, err)
		}
	}
}

func TestDefaultOutput(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"https://example.org/dl/debian.iso":   "debian.iso",
		"https://example.org/dl/":             "dl",
		"https://example.org":                 "index.html",
		"https://example.org/":                "index.html",
		"https://example.org/f.tar.gz?x=1#ab": "f.tar.gz",
	}
	for raw, want := range tests {
		u, err := ParseURL(raw)
		if err != nil {
			t.Fatal(err)
		}
		if got := DefaultOutput(u); got != want {
			t.Errorf("DefaultOutput(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestFetch_Command(t *testing.T) {
	t.Parallel()

	rec := &runner.Recorder{}
	if err := Fetch(t.Context(), rec, Options{URL: "https://example.org/a.iso"}); err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"curl", "--fail", "--location", "--show-error", "--silent", "--output", "a.iso", "https://example.org/a.iso"}}
	if diff := cmp.Diff(want, rec.Argvs()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestFetch_NoRetriesByDefault(t *testing.T) {
	t.Parallel()

	rec := &runner.Recorder{Results: []*runner.Result{runner.NewExitCodeResult(7)}}
	err := Fetch(t.Context(), rec, Options{URL: "https://example.org/a", Out: "a"})

	var exitErr *runner.ExitStatusError
	if !errors.As(err, &exitErr) || exitErr.Code != 7 {
		t.Fatalf("Fetch() = %v, want exit status 7", err)
	}
	if n := len(rec.Commands()); n != 1 {
		t.Errorf("curl ran %d times, want 1", n)
	}
}

func TestFetch_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	rec := &runner.Recorder{Results: []*runner.Result{
		runner.NewExitCodeResult(28),
		runner.NewExitCodeResult(56),
		runner.NewSuccessResult(),
	}}
	opts := Options{URL: "https://example.org/a", Out: "a", Retries: 3, initialInterval: time.Millisecond}
	if err := Fetch(t.Context(), rec, opts); err != nil {
		t.Fatal(err)
	}
	if n := len(rec.Commands()); n != 3 {
		t.Errorf("curl ran %d times, want 3", n)
	}
}

func TestFetch_PermanentFailureIsNotRetried(t *testing.T) {
	t.Parallel()

	rec := &runner.Recorder{Results: []*runner.Result{runner.NewExitCodeResult(22)}}
	opts := Options{URL: "https://example.org/missing", Out: "m", Retries: 5, initialInterval: time.Millisecond}
	err := Fetch(t.Context(), rec, opts)

	var exitErr *runner.ExitStatusError
	if !errors.As(err, &exitErr) || exitErr.Code != 22 {
		t.Fatalf("Fetch() = %v, want exit status 22", err)
	}
	if n := len(rec.Commands()); n != 1 {
		t.Errorf("curl ran %d times, want 1", n)
	}
}

func TestFetch_GivesUpAfterRetries(t *testing.T) {
	t.Parallel()

	rec := &runner.Recorder{Results: []*runner.Result{
		runner.NewExitCodeResult(6),
		runner.NewExitCodeResult(6),
		runner.NewExitCodeResult(6),
	}}
	opts := Options{URL: "https://example.org/a", Out: "a", Retries: 2, initialInterval: time.Millisecond}
	if err := Fetch(t.Context(), rec, opts); !IsTransient(err) {
		t.Fatalf("Fetch() = %v, want the last transient error", err)
	}
	if n := len(rec.Commands()); n != 3 {
		t.Errorf("curl ran %d times, want 3", n)
	}
}

func TestFetch_Validation(t *testing.T) {
	t.Parallel()

	rec := &runner.Recorder{}
	if err := Fetch(t.Context(), rec, Options{URL: "https://x.org/a", Retries: -1}); !errors.Is(err, ErrInvalidRetries) {
		t.Errorf("negative retries: %v", err)
	}
	if err := Fetch(t.Context(), rec, Options{URL: "file:///a"}); !errors.Is(err, ErrInvalidURL) {
		t.Errorf("file URL: %v", err)
	}
	if len(rec.Commands()) != 0 {
		t.Errorf("curl should not run: %v", rec.Argvs())
	}
}
