// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"toolbelt-cli/internal/diskimage"

	"github.com/spf13/cobra"
)

// newWriteImageCommand creates the `toolbelt write-image` command.
func newWriteImageCommand(app *App) *cobra.Command {
	var (
		blockSize string
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "write-image [--block-size SIZE] [--yes] IMAGE DEVICE",
		Short: "Write a disk image to a block device with dd",
		Long: `Copy IMAGE onto DEVICE with dd, then sync.

DEVICE must be an unmounted block device at least as large as IMAGE.
Without --yes nothing is written; the command only reports what would be
overwritten.`,
		Example: `  toolbelt write-image --yes debian.iso /dev/sdb
  toolbelt write-image --block-size 1M raspios.img /dev/mmcblk0`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			cfg := app.config()
			if !cmd.Flags().Changed("block-size") {
				blockSize = cfg.WriteImage.BlockSize
			}
			bs, err := diskimage.ParseBlockSize(blockSize)
			if err != nil {
				return err
			}

			w := diskimage.NewWriter(app.runner, cfg.Zram.SysfsRoot)
			plan, err := w.Prepare(args[0], args[1], bs)
			if err != nil {
				return err
			}

			fmt.Fprintln(app.stderr, WarningStyle.Render("About to "+plan.Summary()))
			return w.Write(cmd.Context(), plan, yes || app.flags.dryRun)
		}),
	}

	cmd.Flags().StringVarP(&blockSize, "block-size", "b", "", "dd block size, e.g. 4M (default from write_image.block_size)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "really overwrite DEVICE")
	return cmd
}
