// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"toolbelt-cli/internal/emacs"

	"github.com/spf13/cobra"
)

// newEmacsCommand creates the `toolbelt emacs` command group.
func newEmacsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emacs",
		Short: "Talk to the running Emacs server",
	}

	var wait bool
	call := &cobra.Command{
		Use:   "call FUNCTION [ARG...]",
		Short: "Call an Emacs Lisp function with string arguments",
		Long: `Evaluate (FUNCTION "ARG1" "ARG2" ...) with emacsclient. Every ARG is
passed as a Lisp string literal.`,
		Example: `  toolbelt emacs call find-file /etc/hosts
  toolbelt emacs call --wait magit-status`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			client := &emacs.Client{Runner: app.runner, Wait: wait}
			return client.Call(cmd.Context(), args[0], args[1:]...)
		}),
	}
	call.Flags().BoolVar(&wait, "wait", false, "wait for Emacs to finish")

	cmd.AddCommand(call)
	return cmd
}

// newEdiffCommand creates the `toolbelt ediff` command.
func newEdiffCommand(app *App) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "ediff FILE_A FILE_B",
		Short: "Compare two files in Emacs ediff",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			client := &emacs.Client{Runner: app.runner, Wait: wait}
			return client.Ediff(cmd.Context(), args[0], args[1])
		}),
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the ediff session to end")
	return cmd
}
