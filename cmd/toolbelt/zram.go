// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"toolbelt-cli/internal/zram"

	"github.com/spf13/cobra"
)

// newZramCommand creates the `toolbelt zram` command group.
func newZramCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zram",
		Short: "Manage compressed swap on /dev/zram0",
	}

	manager := func() *zram.Manager {
		return &zram.Manager{
			Runner:    app.runner,
			SysfsRoot: app.config().Zram.SysfsRoot,
			DryRun:    app.flags.dryRun,
			Out:       app.stdout,
		}
	}

	var (
		size      string
		algorithm string
		priority  int
	)
	on := &cobra.Command{
		Use:   "on [flags]",
		Short: "Create and enable zram swap",
		Long: `Load the zram module, size /dev/zram0, format it as swap and enable it.
Defaults come from the zram section of the configuration.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: app.run(func(cmd *cobra.Command, _ []string) error {
			cfg := app.config().Zram
			if !cmd.Flags().Changed("size") {
				size = cfg.Size
			}
			if !cmd.Flags().Changed("algorithm") {
				algorithm = cfg.Algorithm
			}
			if !cmd.Flags().Changed("priority") {
				priority = cfg.Priority
			}

			n, err := zram.ParseSize(size)
			if err != nil {
				return err
			}
			return manager().On(cmd.Context(), zram.Options{Size: n, Algorithm: algorithm, Priority: priority})
		}),
	}
	on.Flags().StringVar(&size, "size", "", "device size, e.g. 2GiB")
	on.Flags().StringVar(&algorithm, "algorithm", "", "compression algorithm, e.g. zstd or lz4")
	on.Flags().IntVar(&priority, "priority", 0, "swap priority, -1..32767")

	off := &cobra.Command{
		Use:   "off",
		Short: "Disable zram swap and free its memory",
		Args:  usageArgs(cobra.NoArgs),
		RunE: app.run(func(cmd *cobra.Command, _ []string) error {
			return manager().Off(cmd.Context())
		}),
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show zram size and compression statistics",
		Args:  usageArgs(cobra.NoArgs),
		RunE: app.run(func(_ *cobra.Command, _ []string) error {
			st, err := manager().Status()
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, st.String())
			return nil
		}),
	}

	cmd.AddCommand(on, off, status)
	return cmd
}
