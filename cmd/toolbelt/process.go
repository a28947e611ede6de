// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"toolbelt-cli/internal/process"
	"toolbelt-cli/internal/runner"

	"github.com/spf13/cobra"
)

// newDetachCommand creates the `toolbelt detach` command.
func newDetachCommand(app *App) *cobra.Command {
	var logPath string

	cmd := &cobra.Command{
		Use:   "detach [--log FILE] -- CMD [ARG...]",
		Short: "Start a command in its own session and return immediately",
		Long: `Start CMD in a new session with stdin from /dev/null and its output
appended to --log (default /dev/null), print its PID and exit without
waiting for it.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			c := runner.NewCommand(args[0], args[1:]...)
			if app.flags.dryRun {
				return app.runner.Run(cmd.Context(), c).Err(c)
			}
			pid, err := process.Detach(app.runner, c, logPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, pid)
			return nil
		}),
	}

	cmd.Flags().StringVar(&logPath, "log", "", "append the command's output to FILE")
	return cmd
}

// newRunWaitCommand creates the `toolbelt run-wait` command.
func newRunWaitCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run-wait -- CMD [ARG...]",
		Short: "Run a command and wait for all of its descendants",
		Long: `Run CMD and return only after it and every process it left behind
have exited. Interrupt, terminate, hangup and quit signals are forwarded
to CMD. The exit status is CMD's own.

Waiting for orphaned descendants needs Linux; elsewhere only CMD is
waited for.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			c := runner.NewCommand(args[0], args[1:]...)
			if app.flags.dryRun {
				return app.runner.Run(cmd.Context(), c).Err(c)
			}
			code, err := process.RunWait(cmd.Context(), app.runner, c)
			if err != nil {
				return err
			}
			if !code.IsSuccess() {
				return &ExitError{Code: code, rendered: true}
			}
			return nil
		}),
	}
}
