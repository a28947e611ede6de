// SPDX-License-Identifier: MPL-2.0

//go:build linux

package process

import (
	"errors"
	"os/exec"

	"toolbelt-cli/pkg/types"

	"golang.org/x/sys/unix"
)

func becomeSubreaper() error {
	return unix.Prctl(unix.PR_SET_CHILD_SUBREAPER, 1, 0, 0, 0)
}

// waitAll reaps every child, including orphans re-parented to us, until none
// is left. exec.Cmd.Wait is not used because it would race with wait4(-1).
func waitAll(c *exec.Cmd) (types.ExitCode, error) {
	main := c.Process.Pid
	code := types.ExitFailure
	// The child is already reaped by then; Wait only joins the stdio copiers
	// and reports ECHILD, which is ignored.
	defer func() { _ = c.Wait() }()

	for {
		var ws unix.WaitStatus
		pid, err := unix.Wait4(-1, &ws, 0, nil)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if errors.Is(err, unix.ECHILD) {
			return code, nil
		}
		if err != nil {
			return code, err
		}
		if pid != main {
			continue
		}
		switch {
		case ws.Exited():
			code = types.ExitCode(ws.ExitStatus())
		case ws.Signaled():
			code = types.ExitCodeFromSignal(int(ws.Signal()))
		}
	}
}
