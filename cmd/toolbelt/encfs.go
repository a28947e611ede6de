// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"toolbelt-cli/internal/encfs"

	"github.com/spf13/cobra"
)

// newEncfsCommand creates the `toolbelt encfs` command group.
func newEncfsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encfs",
		Short: "Mount and unmount EncFS directories",
	}

	var idle int
	mount := &cobra.Command{
		Use:   "mount [--idle MINUTES] CIPHER_DIR MOUNT_POINT",
		Short: "Mount an encrypted directory",
		Long: `Mount CIPHER_DIR on the empty directory MOUNT_POINT with encfs, which
prompts for the password on the terminal. --idle unmounts after that many
minutes without access (default encfs.idle_minutes, 0 for never).`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("idle") {
				if idle <= 0 {
					return fmt.Errorf("%w: %d", encfs.ErrInvalidIdle, idle)
				}
			} else {
				idle = app.config().Encfs.IdleMinutes
			}
			return encfs.Mount(cmd.Context(), app.runner, args[0], args[1], idle)
		}),
	}
	mount.Flags().IntVar(&idle, "idle", 0, "unmount after MINUTES of inactivity")

	umount := &cobra.Command{
		Use:   "umount MOUNT_POINT",
		Short: "Unmount an EncFS mount point",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			return encfs.Umount(cmd.Context(), app.runner, args[0])
		}),
	}

	cmd.AddCommand(mount, umount)
	return cmd
}
