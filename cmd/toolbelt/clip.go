// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"toolbelt-cli/internal/clip"

	"github.com/spf13/cobra"
)

// newClipCommand creates the `toolbelt clip` command group.
func newClipCommand(app *App) *cobra.Command {
	var primary bool

	cmd := &cobra.Command{
		Use:   "clip",
		Short: "Copy, paste or clear the X11 clipboard with xsel",
		Long: `Read and write the clipboard through xsel. copy reads stdin, paste
writes to stdout. --primary works on the primary selection (middle-click)
instead of the clipboard.`,
	}
	cmd.PersistentFlags().BoolVarP(&primary, "primary", "p", false, "use the primary selection")

	for _, a := range []struct {
		action clip.Action
		short  string
	}{
		{clip.ActionCopy, "Copy stdin to the clipboard"},
		{clip.ActionPaste, "Write the clipboard to stdout"},
		{clip.ActionClear, "Clear the clipboard"},
	} {
		cmd.AddCommand(&cobra.Command{
			Use:   string(a.action),
			Short: a.short,
			Args:  usageArgs(cobra.NoArgs),
			RunE: app.run(func(cmd *cobra.Command, _ []string) error {
				if err := clip.CheckDisplay(app.getenv); err != nil {
					return err
				}
				sel := clip.Clipboard
				if primary {
					sel = clip.Primary
				}
				return clip.Do(cmd.Context(), app.runner, a.action, sel, app.stdin, app.stdout)
			}),
		})
	}
	return cmd
}
