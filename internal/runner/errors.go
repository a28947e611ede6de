// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"errors"
	"fmt"
	"strings"

	"toolbelt-cli/pkg/types"
)

// ErrToolNotFound is wrapped by errors returned when an executable is missing.
var ErrToolNotFound = errors.New("tool not found")

// ExitStatusError reports that an external tool ran and exited non-zero.
type ExitStatusError struct {
	Command string
	Code    types.ExitCode
	// Stderr holds captured error output, if the command was captured.
	Stderr string
}

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + firstLine(s)
	}
	return msg
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
