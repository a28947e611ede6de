// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package runner

import (
	"os/exec"

	"toolbelt-cli/pkg/types"
)

func signalExitCode(*exec.ExitError) types.ExitCode {
	return types.ExitFailure
}
