// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"errors"
	"runtime"
	"strings"
	"testing"

	"toolbelt-cli/pkg/platform"
	"toolbelt-cli/pkg/types"

	"github.com/google/go-cmp/cmp"
)

func TestCommand_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{
			name: "plain words",
			cmd:  NewCommand("rsync", "--archive", "src/", "dst"),
			want: "rsync --archive src/ dst",
		},
		{
			name: "spaces are quoted",
			cmd:  NewCommand("convert", "my photo.jpg", "-crop", "10x10+0+0"),
			want: "convert 'my photo.jpg' -crop 10x10+0+0",
		},
		{
			name: "empty argument survives",
			cmd:  NewCommand("git", "log", ""),
			want: "git log ''",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.cmd.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDryRunRunner_PrintsCommands(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := NewDryRunRunner(&out, map[string]string{"convert": "magick"})

	res := r.Run(t.Context(), Command{Name: "convert", Args: []string{"a.png", "b.png"}, Dir: "/tmp/x y"})
	if !res.Success() {
		t.Fatalf("dry run should succeed, got %+v", res)
	}
	r.Capture(t.Context(), NewCommand("identify", "-format", "%w %h", "a.png"))

	want := "cd '/tmp/x y' && magick a.png b.png\nidentify -format '%w %h' a.png\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("dry run output mismatch (-want +got):\n%s", diff)
	}
}

func TestRecorder_ScriptedResults(t *testing.T) {
	t.Parallel()

	rec := &Recorder{
		Results: []*Result{{ExitCode: 0, Output: "640 480"}, NewExitCodeResult(3)},
	}

	first := rec.Capture(t.Context(), NewCommand("identify", "x.png"))
	if first.Output != "640 480" {
		t.Errorf("first output = %q", first.Output)
	}
	second := rec.Run(t.Context(), Command{Name: "convert", Stdin: strings.NewReader("data")})
	if second.ExitCode != 3 {
		t.Errorf("second exit code = %d, want 3", second.ExitCode)
	}
	third := rec.Run(t.Context(), NewCommand("sync"))
	if !third.Success() {
		t.Errorf("exhausted script should succeed, got %+v", third)
	}

	want := [][]string{{"identify", "x.png"}, {"convert"}, {"sync"}}
	if diff := cmp.Diff(want, rec.Argvs()); diff != "" {
		t.Errorf("recorded argv mismatch (-want +got):\n%s", diff)
	}
	if got := rec.Stdin()[1]; got != "data" {
		t.Errorf("recorded stdin = %q, want %q", got, "data")
	}
}

func TestResult_Err(t *testing.T) {
	t.Parallel()

	cmd := NewCommand("wodim")
	if err := NewSuccessResult().Err(cmd); err != nil {
		t.Errorf("success Err() = %v", err)
	}

	err := (&Result{ExitCode: 254, ErrOutput: "wodim: No disk\nmore"}).Err(cmd)
	var statusErr *ExitStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *ExitStatusError, got %T", err)
	}
	if statusErr.Code != 254 {
		t.Errorf("Code = %d, want 254", statusErr.Code)
	}
	if got, want := err.Error(), "wodim exited with status 254: wodim: No disk"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	infra := errors.New("boom")
	if got := NewErrorResult(types.ExitFailure, infra).Err(cmd); !errors.Is(got, infra) {
		t.Errorf("infrastructure error not returned, got %v", got)
	}
}

func TestExecRunner_LookPathMissing(t *testing.T) {
	t.Parallel()

	r := NewExecRunner(map[string]string{"convert": "definitely-not-a-real-tool-xyz"})
	r.Sandbox = platform.SandboxNone
	_, err := r.LookPath("convert")
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "definitely-not-a-real-tool-xyz") {
		t.Errorf("error should name the configured binary: %v", err)
	}

	res := r.Run(t.Context(), NewCommand("convert"))
	if res.Error == nil || res.ExitCode != types.ExitFailure {
		t.Errorf("Run with a missing tool = %+v, want infrastructure failure", res)
	}
}

func TestExecRunner_ExitCodes(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}

	r := NewExecRunner(nil)
	r.Sandbox = platform.SandboxNone

	res := r.Capture(t.Context(), NewCommand("sh", "-c", "echo out; echo err >&2; exit 3"))
	if res.Error != nil {
		t.Fatalf("unexpected infrastructure error: %v", res.Error)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if res.Output != "out\n" || res.ErrOutput != "err\n" {
		t.Errorf("captured output = %q / %q", res.Output, res.ErrOutput)
	}

	var stdout bytes.Buffer
	res = r.Run(t.Context(), Command{Name: "sh", Args: []string{"-c", "cat"}, Stdin: strings.NewReader("piped"), Stdout: &stdout})
	if !res.Success() {
		t.Fatalf("cat failed: %+v", res)
	}
	if stdout.String() != "piped" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "piped")
	}

	res = r.Run(t.Context(), Command{Name: "sh", Args: []string{"-c", "kill -TERM $$"}, Stdout: &stdout, Stderr: &stdout})
	if res.ExitCode != types.ExitCodeFromSignal(15) {
		t.Errorf("signal exit code = %d, want %d", res.ExitCode, types.ExitCodeFromSignal(15))
	}
}

func TestExecRunner_FlatpakDefersLookupToHost(t *testing.T) {
	t.Parallel()

	r := &ExecRunner{Tools: map[string]string{"convert": "magick"}, Sandbox: platform.SandboxFlatpak}
	got, err := r.LookPath("convert")
	if err != nil {
		t.Fatalf("LookPath: %v", err)
	}
	if got != "magick" {
		t.Errorf("LookPath() = %q, want the unresolved override %q", got, "magick")
	}
}
