// SPDX-License-Identifier: MPL-2.0

package process

import (
	"os"
	"os/exec"

	"toolbelt-cli/internal/issue"
	"toolbelt-cli/internal/logging"
	"toolbelt-cli/internal/runner"
)

// Detach starts cmd in its own session with stdin from the null device and
// both output streams appended to logPath (the null device when empty). It
// returns the child's PID without waiting for it.
func Detach(r runner.Runner, cmd runner.Command, logPath string) (int, error) {
	path, err := r.LookPath(cmd.Name)
	if err != nil {
		return 0, err
	}

	stdin, err := os.Open(os.DevNull)
	if err != nil {
		return 0, err
	}
	defer stdin.Close()

	if logPath == "" {
		logPath = os.DevNull
	}
	out, err := os.OpenFile(logPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return 0, issue.WrapWithContext(err, "open log file", logPath)
	}
	defer out.Close()

	// Not CommandContext: the child must survive toolbelt.
	c := exec.Command(path, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Stdin = stdin
	c.Stdout = out
	c.Stderr = out
	c.SysProcAttr = detachAttr()

	if err := c.Start(); err != nil {
		return 0, issue.WrapWithContext(err, "start detached process", cmd.Name)
	}

	pid := c.Process.Pid
	logging.New("process").Debug("detached", "cmd", cmd.String(), "pid", pid, "log", logPath)
	if err := c.Process.Release(); err != nil {
		return pid, err
	}
	return pid, nil
}
