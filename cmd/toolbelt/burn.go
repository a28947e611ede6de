// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"toolbelt-cli/internal/burn"

	"github.com/spf13/cobra"
)

// newBurnCommand creates the `toolbelt burn-cd` command.
func newBurnCommand(app *App) *cobra.Command {
	var (
		o     burn.Options
		blank string
	)

	cmd := &cobra.Command{
		Use:   "burn-cd [flags] IMAGE",
		Short: "Burn an ISO image to CD or DVD with wodim",
		Long: `Burn IMAGE in disc-at-once mode with wodim.

The drive and the write speed default to burn.device and burn.speed from
the configuration. A speed of 0 lets the drive decide.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			cfg := app.config()
			if !cmd.Flags().Changed("device") {
				o.Device = cfg.Burn.Device
			}
			if !cmd.Flags().Changed("speed") {
				o.Speed = cfg.Burn.Speed
			}
			o.Blank = burn.BlankMode(blank)
			o.Image = args[0]
			return burn.Burn(cmd.Context(), app.runner, o)
		}),
	}

	cmd.Flags().StringVar(&o.Device, "device", "", "recorder device (default from burn.device)")
	cmd.Flags().IntVar(&o.Speed, "speed", 0, "write speed, 0 for the drive's choice")
	cmd.Flags().BoolVar(&o.Simulate, "simulate", false, "run with the laser off (-dummy)")
	cmd.Flags().BoolVar(&o.Eject, "eject", false, "eject the disc when done")
	cmd.Flags().StringVar(&blank, "blank", "", "blank rewritable media first (fast or all)")
	return cmd
}
