// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"toolbelt-cli/internal/fetch"

	"github.com/spf13/cobra"
)

// newFetchCommand creates the `toolbelt fetch` command.
func newFetchCommand(app *App) *cobra.Command {
	var o fetch.Options

	cmd := &cobra.Command{
		Use:   "fetch [--out FILE] [--retries N] URL",
		Short: "Download a URL with curl",
		Long: `Download URL to FILE (default: the last path segment of the URL).

By default a failed download is not retried. With --retries N, DNS,
connection, timeout, TLS and transfer failures are retried up to N times
with exponential backoff.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			o.URL = args[0]
			if !cmd.Flags().Changed("retries") {
				o.Retries = app.config().Fetch.Retries
			}
			return fetch.Fetch(cmd.Context(), app.runner, o)
		}),
	}

	cmd.Flags().StringVarP(&o.Out, "out", "o", "", "output file")
	cmd.Flags().IntVar(&o.Retries, "retries", 0, "retry transient failures N times (default fetch.retries)")
	return cmd
}
