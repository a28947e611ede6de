// SPDX-License-Identifier: MPL-2.0

// Package types holds small value types shared across toolbelt packages.
package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

const (
	// ExitSuccess means the command and every wrapped tool succeeded.
	ExitSuccess ExitCode = 0
	// ExitFailure is used for validation and infrastructure failures.
	ExitFailure ExitCode = 1
	// ExitUsage is used for wrong arguments or unknown flags.
	ExitUsage ExitCode = 2

	signalExitBase = 128
)

type (
	// ExitCode is a process exit status in the POSIX range 0-255.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside 0-255.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// ExitCodeFromSignal returns the shell convention 128+signo for a child
// terminated by a signal.
func ExitCodeFromSignal(signo int) ExitCode {
	return ExitCode(signalExitBase + signo)
}

// Validate returns an error if the ExitCode is outside 0-255.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether the code is zero.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// IsSignal reports whether the code follows the 128+signo convention.
func (c ExitCode) IsSignal() bool { return c > signalExitBase && c <= 255 }

// String returns the decimal representation.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
