// SPDX-License-Identifier: MPL-2.0

// Package runner executes the external tools that toolbelt commands wrap.
//
// Commands never call os/exec directly. They build a Command and hand it to a
// Runner: ExecRunner for real execution, DryRunRunner to print the shell-quoted
// command line instead, or Recorder in tests.
package runner
