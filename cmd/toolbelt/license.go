// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed license.md
var licenseText string

// newLicenseCommand creates the `toolbelt license` command.
func newLicenseCommand(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "license",
		Short: "Show the license",
		Args:  usageArgs(cobra.NoArgs),
		RunE: app.run(func(_ *cobra.Command, _ []string) error {
			if raw {
				fmt.Fprint(app.stdout, licenseText)
				return nil
			}
			rendered, err := glamour.Render(licenseText, app.glamourStyle())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the markdown source")
	return cmd
}
