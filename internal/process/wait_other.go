// SPDX-License-Identifier: MPL-2.0

//go:build !linux

package process

import (
	"errors"
	"os/exec"

	"toolbelt-cli/pkg/types"
)

func becomeSubreaper() error {
	return errors.ErrUnsupported
}

// waitAll only waits for the direct child; without a subreaper orphans go to init.
func waitAll(c *exec.Cmd) (types.ExitCode, error) {
	err := c.Wait()
	if err == nil {
		return types.ExitSuccess, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return types.ExitCode(code), nil
		}
		return signalCode(exitErr), nil
	}
	return types.ExitFailure, err
}
