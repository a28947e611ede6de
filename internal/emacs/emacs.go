// SPDX-License-Identifier: MPL-2.0

// Package emacs drives a running Emacs server through emacsclient.
package emacs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"toolbelt-cli/internal/issue"
	"toolbelt-cli/internal/runner"
)

// ErrInvalidSymbol is returned for function names that are not Lisp symbols.
var ErrInvalidSymbol = errors.New("invalid Emacs Lisp symbol")

var (
	symbolPattern  = regexp.MustCompile(`^[A-Za-z0-9_+\-*/<>=!?:.%&$^~]+$`)
	numericPattern = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)$`)

	stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
)

// ValidateSymbol checks that name reads back as a symbol, not a number.
func ValidateSymbol(name string) error {
	if !symbolPattern.MatchString(name) || numericPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidSymbol, name)
	}
	return nil
}

// QuoteString renders s as an Emacs Lisp string literal.
func QuoteString(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}

// CallExpr builds (FUNCTION "ARG1" "ARG2" ...).
func CallExpr(function string, args ...string) (string, error) {
	if err := ValidateSymbol(function); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("(")
	b.WriteString(function)
	for _, a := range args {
		b.WriteString(" ")
		b.WriteString(QuoteString(a))
	}
	b.WriteString(")")
	return b.String(), nil
}

// Client sends expressions to the Emacs server.
type Client struct {
	Runner runner.Runner
	// Wait blocks until Emacs is done with the request.
	Wait bool
}

// Command returns the emacsclient invocation evaluating expr.
func (c *Client) Command(expr string) runner.Command {
	args := make([]string, 0, 3)
	if !c.Wait {
		args = append(args, "--no-wait")
	}
	args = append(args, "--eval", expr)
	return runner.NewCommand("emacsclient", args...)
}

// Call evaluates (function args...) in the running Emacs.
func (c *Client) Call(ctx context.Context, function string, args ...string) error {
	expr, err := CallExpr(function, args...)
	if err != nil {
		return err
	}
	cmd := c.Command(expr)
	return c.Runner.Run(ctx, cmd).Err(cmd)
}

// Ediff opens two existing files side by side in ediff.
func (c *Client) Ediff(ctx context.Context, fileA, fileB string) error {
	absA, err := existingFile(fileA)
	if err != nil {
		return err
	}
	absB, err := existingFile(fileB)
	if err != nil {
		return err
	}
	return c.Call(ctx, "ediff", absA, absB)
}

func existingFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", issue.WrapWithContext(err, "open file for ediff", path)
	}
	if info.IsDir() {
		return "", issue.WrapWithContext(errors.New("is a directory"), "open file for ediff", path)
	}
	return filepath.Abs(path)
}
