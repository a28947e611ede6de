// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"toolbelt-cli/internal/issue"
	"toolbelt-cli/internal/logging"
	"toolbelt-cli/pkg/platform"
	"toolbelt-cli/pkg/types"
)

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	// Tools maps a default tool name (e.g. "convert") to the binary to use.
	Tools map[string]string
	// Sandbox routes commands to the host when toolbelt runs inside Flatpak.
	Sandbox platform.SandboxType

	logger *slog.Logger
}

// NewExecRunner creates an ExecRunner honoring the given tool overrides.
func NewExecRunner(tools map[string]string) *ExecRunner {
	return &ExecRunner{Tools: tools, Sandbox: platform.DetectSandbox(), logger: logging.New("runner")}
}

// LookPath resolves name, applying tool overrides first. Inside a Flatpak
// sandbox the host PATH is not visible and the name is returned unresolved.
func (r *ExecRunner) LookPath(name string) (string, error) {
	bin := r.resolve(name)
	if r.Sandbox == platform.SandboxFlatpak {
		return bin, nil
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", issue.NewErrorContext().
			WithOperation("find external tool").
			WithResource(bin).
			WithSuggestion(fmt.Sprintf("Install %q or add it to your PATH", bin)).
			WithSuggestion(fmt.Sprintf("Set tools.%s in the toolbelt config to an explicit path", name)).
			Wrap(fmt.Errorf("%w: %w", ErrToolNotFound, err)).
			BuildError()
	}
	return path, nil
}

// Run executes cmd, wiring its configured stdin/stdout/stderr. Unset streams
// are inherited from the toolbelt process.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) *Result {
	c, err := r.prepare(ctx, cmd)
	if err != nil {
		return NewErrorResult(types.ExitFailure, err)
	}

	c.Stdin = cmd.Stdin
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	c.Stdout = cmd.Stdout
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	c.Stderr = cmd.Stderr
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}

	return r.wait(cmd, c.Run())
}

// Capture executes cmd and stores stdout and stderr in the Result.
func (r *ExecRunner) Capture(ctx context.Context, cmd Command) *Result {
	c, err := r.prepare(ctx, cmd)
	if err != nil {
		return NewErrorResult(types.ExitFailure, err)
	}

	var stdout, stderr bytes.Buffer
	c.Stdin = cmd.Stdin
	c.Stdout = &stdout
	c.Stderr = &stderr

	result := r.wait(cmd, c.Run())
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

func (r *ExecRunner) prepare(ctx context.Context, cmd Command) (*exec.Cmd, error) {
	path, err := r.LookPath(cmd.Name)
	if err != nil {
		return nil, err
	}

	argv := platform.HostArgv(r.Sandbox, append([]string{path}, cmd.Args...))

	r.log().Debug("running external tool", "cmd", cmd.String(), "dir", cmd.Dir, "sandbox", string(r.Sandbox))

	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	return c, nil
}

func (r *ExecRunner) wait(cmd Command, err error) *Result {
	if err == nil {
		return NewSuccessResult()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := types.ExitCode(exitErr.ExitCode())
		if code < 0 {
			// Killed by a signal; ExitCode() reports -1 in that case.
			code = signalExitCode(exitErr)
		}
		r.log().Debug("external tool failed", "cmd", cmd.Name, "exit_code", int(code))
		return NewExitCodeResult(code)
	}

	return NewErrorResult(types.ExitFailure, issue.WrapWithContext(err, "run external tool", cmd.Name))
}

func (r *ExecRunner) resolve(name string) string {
	if bin, ok := r.Tools[name]; ok && bin != "" {
		return bin
	}
	return name
}

func (r *ExecRunner) log() *slog.Logger {
	if r.logger == nil {
		r.logger = logging.New("runner")
	}
	return r.logger
}
