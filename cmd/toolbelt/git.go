// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"time"

	"toolbelt-cli/internal/emacs"
	"toolbelt-cli/internal/gitutil"

	"github.com/spf13/cobra"
)

// newGitCommand creates the `toolbelt git` command group.
func newGitCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git",
		Short: "Small git helpers",
	}
	cmd.AddCommand(
		newGitSinceCommand(app),
		newGitBranchAgeCommand(app),
		newGitEdiffRevisionCommand(app),
	)
	return cmd
}

func newGitSinceCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "since MINUTES [-- GIT_LOG_ARGS...]",
		Short: "Show commits from the last MINUTES minutes",
		Example: `  toolbelt git since 90
  toolbelt git since 30 -- --author=me`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			if dash := cmd.ArgsLenAtDash(); dash > 1 || (dash == -1 && len(args) > 1) {
				return usageError(fmt.Errorf("unexpected arguments %q; pass git log options after --", args[1:]))
			}
			minutes, err := gitutil.ParseMinutes(args[0])
			if err != nil {
				return err
			}

			c := gitutil.SinceCommand(minutes, args[1:]...)
			c.Stdout = app.stdout
			return app.runner.Run(cmd.Context(), c).Err(c)
		}),
	}
}

func newGitBranchAgeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "branch-age",
		Short: "List local branches by the date of their last commit",
		Args:  usageArgs(cobra.NoArgs),
		RunE: app.run(func(cmd *cobra.Command, _ []string) error {
			branches, err := gitutil.BranchAges(cmd.Context(), app.query)
			if err != nil {
				return err
			}
			if len(branches) == 0 {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("No local branches."))
				return nil
			}
			fmt.Fprintln(app.stdout, gitutil.RenderBranches(branches, time.Now()))
			return nil
		}),
	}
}

func newGitEdiffRevisionCommand(app *App) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "ediff-revision FILE [REV]",
		Short: "Compare FILE against an older revision in Emacs ediff",
		Long: `Write FILE as of REV (default HEAD) to a temporary file and open it
against the working copy with ediff in the running Emacs.`,
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			rev := "HEAD"
			if len(args) == 2 {
				rev = args[1]
			}
			client := &emacs.Client{Runner: app.runner, Wait: wait}
			return gitutil.EdiffRevision(cmd.Context(), app.query, client, args[0], rev)
		}),
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the ediff session to end")
	return cmd
}
