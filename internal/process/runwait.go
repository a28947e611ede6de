// SPDX-License-Identifier: MPL-2.0

package process

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"toolbelt-cli/internal/issue"
	"toolbelt-cli/internal/logging"
	"toolbelt-cli/internal/runner"
	"toolbelt-cli/pkg/types"
)

// forwardedSignals reach the child instead of terminating toolbelt.
var forwardedSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT}

// RunWait runs cmd and returns once it and, where the platform allows, every
// descendant it left behind have exited. The returned code is cmd's own
// status, 128+signo if it was killed by a signal.
//
// Cancelling ctx does not stop cmd. An interrupt both cancels the command
// context and arrives as a signal, and the child gets only the signal that
// was sent. Forwarding lasts until cmd is reaped.
func RunWait(ctx context.Context, r runner.Runner, cmd runner.Command) (types.ExitCode, error) {
	if err := ctx.Err(); err != nil {
		return types.ExitFailure, err
	}
	path, err := r.LookPath(cmd.Name)
	if err != nil {
		return types.ExitFailure, err
	}

	log := logging.New("process")
	if err := becomeSubreaper(); err != nil {
		log.Debug("cannot become child subreaper", "error", err)
	}

	c := exec.Command(path, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if cmd.Stdin != nil {
		c.Stdin = cmd.Stdin
	}
	if cmd.Stdout != nil {
		c.Stdout = cmd.Stdout
	}
	if cmd.Stderr != nil {
		c.Stderr = cmd.Stderr
	}

	sigs := make(chan os.Signal, 4)
	signal.Notify(sigs, forwardedSignals...)
	defer signal.Stop(sigs)

	if err := c.Start(); err != nil {
		return types.ExitFailure, issue.WrapWithContext(err, "start process", cmd.Name)
	}
	log.Debug("started", "cmd", cmd.String(), "pid", c.Process.Pid)

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case sig := <-sigs:
				log.Debug("forwarding signal", "signal", sig.String())
				_ = c.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	return waitAll(c)
}
