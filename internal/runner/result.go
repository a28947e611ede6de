// SPDX-License-Identifier: MPL-2.0

package runner

import "toolbelt-cli/pkg/types"

// Result is the outcome of running a Command.
//
// Error is reserved for infrastructure failures (the tool is missing or could
// not be started). A tool that ran and failed reports a non-zero ExitCode with
// a nil Error.
type Result struct {
	ExitCode  types.ExitCode
	Output    string
	ErrOutput string
	Error     error
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result for a tool that terminated normally with code.
func NewExitCodeResult(code types.ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success reports whether the tool ran and exited with status 0.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}

// Err folds the result into a single error: the infrastructure error if any,
// otherwise an *ExitStatusError for a non-zero exit, otherwise nil.
func (r *Result) Err(cmd Command) error {
	if r.Error != nil {
		return r.Error
	}
	if !r.ExitCode.IsSuccess() {
		return &ExitStatusError{Command: cmd.Name, Code: r.ExitCode, Stderr: r.ErrOutput}
	}
	return nil
}
