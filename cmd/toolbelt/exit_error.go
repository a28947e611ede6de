// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"toolbelt-cli/internal/runner"
	"toolbelt-cli/pkg/types"

	"github.com/spf13/cobra"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
	// rendered marks errors whose details were already written to stderr.
	rendered bool
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// usageError marks err as a command-line usage mistake (exit status 2).
func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: types.ExitUsage, Err: err}
}

// exitCodeFor maps an error returned by the command tree to a process status.
// A failing external tool forwards its own status.
func exitCodeFor(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var statusErr *runner.ExitStatusError
	if errors.As(err, &statusErr) && !statusErr.Code.IsSuccess() {
		return statusErr.Code
	}
	// cobra reports unknown subcommands as plain errors.
	if strings.HasPrefix(err.Error(), "unknown command") {
		return types.ExitUsage
	}
	return types.ExitFailure
}

// usageArgs reports positional-argument mistakes as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(validate(cmd, args))
	}
}
