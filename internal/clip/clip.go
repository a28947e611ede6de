// SPDX-License-Identifier: MPL-2.0

// Package clip reads and writes the X11 selections through xsel.
package clip

import (
	"context"
	"errors"
	"fmt"
	"io"

	"toolbelt-cli/internal/issue"
	"toolbelt-cli/internal/runner"
)

// ErrNoDisplay is returned outside a graphical session.
var ErrNoDisplay = errors.New("neither DISPLAY nor WAYLAND_DISPLAY is set")

// Action is what to do with the selection.
type Action string

const (
	ActionCopy  Action = "copy"
	ActionPaste Action = "paste"
	ActionClear Action = "clear"
)

// Selection names the X11 selection to operate on.
type Selection string

const (
	Clipboard Selection = "clipboard"
	Primary   Selection = "primary"
)

// CheckDisplay fails unless getenv reports a graphical session.
func CheckDisplay(getenv func(string) string) error {
	if getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != "" {
		return nil
	}
	return issue.NewErrorContext().
		WithOperation("access clipboard").
		WithSuggestion("Run the command inside your desktop session, or use ssh -X").
		Wrap(ErrNoDisplay).
		BuildError()
}

// Command returns the xsel invocation for action on sel.
func Command(action Action, sel Selection) (runner.Command, error) {
	selFlag := "--" + string(sel)
	switch sel {
	case Clipboard, Primary:
	default:
		return runner.Command{}, fmt.Errorf("unknown selection %q", sel)
	}

	switch action {
	case ActionCopy:
		return runner.NewCommand("xsel", selFlag, "--input"), nil
	case ActionPaste:
		return runner.NewCommand("xsel", selFlag, "--output"), nil
	case ActionClear:
		return runner.NewCommand("xsel", selFlag, "--clear"), nil
	default:
		return runner.Command{}, fmt.Errorf("unknown clipboard action %q (valid: copy, paste, clear)", action)
	}
}

// Do runs action. Copy reads from in, paste writes to out.
func Do(ctx context.Context, r runner.Runner, action Action, sel Selection, in io.Reader, out io.Writer) error {
	cmd, err := Command(action, sel)
	if err != nil {
		return err
	}
	switch action {
	case ActionCopy:
		cmd.Stdin = in
	case ActionPaste:
		cmd.Stdout = out
	}
	return r.Run(ctx, cmd).Err(cmd)
}
