// SPDX-License-Identifier: MPL-2.0

package clip

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"toolbelt-cli/internal/runner"

	"github.com/google/go-cmp/cmp"
)

func TestCheckDisplay(t *testing.T) {
	t.Parallel()

	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	if err := CheckDisplay(env(map[string]string{"DISPLAY": ":0"})); err != nil {
		t.Errorf("X11 session rejected: %v", err)
	}
	if err := CheckDisplay(env(map[string]string{"WAYLAND_DISPLAY": "wayland-0"})); err != nil {
		t.Errorf("Wayland session rejected: %v", err)
	}
	if err := CheckDisplay(env(nil)); !errors.Is(err, ErrNoDisplay) {
		t.Errorf("CheckDisplay() = %v, want ErrNoDisplay", err)
	}
}

func TestCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		action Action
		sel    Selection
		want   []string
	}{
		{ActionCopy, Clipboard, []string{"xsel", "--clipboard", "--input"}},
		{ActionPaste, Clipboard, []string{"xsel", "--clipboard", "--output"}},
		{ActionClear, Primary, []string{"xsel", "--primary", "--clear"}},
	}
	for _, tt := range tests {
		cmd, err := Command(tt.action, tt.sel)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tt.want, cmd.Argv()); diff != "" {
			t.Errorf("Command(%s, %s) mismatch (-want +got):\n%s", tt.action, tt.sel, diff)
		}
	}

	if _, err := Command("cut", Clipboard); err == nil {
		t.Error("unknown action accepted")
	}
}

func TestDo_CopyAndPaste(t *testing.T) {
	t.Parallel()

	rec := &runner.Recorder{Results: []*runner.Result{{}, {Output: "from clipboard"}}}
	if err := Do(t.Context(), rec, ActionCopy, Clipboard, strings.NewReader("to clipboard"), nil); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := Do(t.Context(), rec, ActionPaste, Clipboard, nil, &out); err != nil {
		t.Fatal(err)
	}

	if got := rec.Stdin(); got[0] != "to clipboard" {
		t.Errorf("copy stdin = %q", got[0])
	}
	if out.String() != "from clipboard" {
		t.Errorf("paste output = %q", out.String())
	}
}
