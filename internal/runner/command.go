// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"io"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

type (
	// Command describes one external tool invocation.
	Command struct {
		// Name is the executable, looked up in PATH unless it contains a slash.
		Name string
		// Args are passed verbatim, without shell interpretation.
		Args []string
		// Dir is the working directory; empty means the current one.
		Dir string
		// Env entries (KEY=VALUE) are appended to the inherited environment.
		Env []string

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Runner runs external commands.
	Runner interface {
		// Run executes cmd with its configured I/O.
		Run(ctx context.Context, cmd Command) *Result
		// Capture executes cmd and collects stdout and stderr in the Result.
		Capture(ctx context.Context, cmd Command) *Result
		// LookPath resolves an executable name.
		LookPath(name string) (string, error)
	}
)

// NewCommand is a shorthand for a Command with only a name and arguments.
func NewCommand(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// Argv returns the full argument vector, name first.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the command as a single line a POSIX shell would parse back
// into the same argument vector.
func (c Command) String() string {
	argv := c.Argv()
	parts := make([]string, 0, len(argv))
	for _, a := range argv {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		// Only strings holding NUL bytes fail; they cannot be passed to exec
		// either, so a Go-quoted form is good enough for display.
		return strings.ReplaceAll(s, "\x00", `\0`)
	}
	return q
}
