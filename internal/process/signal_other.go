// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package process

import (
	"os/exec"

	"toolbelt-cli/pkg/types"
)

func signalCode(*exec.ExitError) types.ExitCode {
	return types.ExitFailure
}
