// SPDX-License-Identifier: MPL-2.0

//go:build unix && !linux

package process

import (
	"os/exec"
	"syscall"

	"toolbelt-cli/pkg/types"
)

func signalCode(exitErr *exec.ExitError) types.ExitCode {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return types.ExitCodeFromSignal(int(ws.Signal()))
	}
	return types.ExitFailure
}
