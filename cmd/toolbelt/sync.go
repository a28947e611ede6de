// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"slices"

	"toolbelt-cli/internal/rsync"

	"github.com/spf13/cobra"
)

// newSyncCommand creates the `toolbelt sync` command.
func newSyncCommand(app *App) *cobra.Command {
	var o rsync.Options

	cmd := &cobra.Command{
		Use:   "sync [flags] SRC DST",
		Short: "Copy a directory tree with rsync",
		Long: `Copy SRC to DST with rsync in archive mode. A directory SRC always
has its contents copied, never the directory itself.

Patterns from rsync.excludes in the configuration are applied before the
--exclude flags. With the global --dry-run, rsync runs its own preview.`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			cfg := app.config()
			o.Source, o.Dest = args[0], args[1]
			o.Excludes = slices.Concat(cfg.Rsync.Excludes, o.Excludes)
			if !cmd.Flags().Changed("bwlimit") {
				o.BwLimit = cfg.Rsync.BwLimit
			}

			// rsync --dry-run changes nothing, so it goes through the query runner.
			r := app.runner
			if app.flags.dryRun {
				o.DryRun = true
				r = app.query
			}
			return rsync.Sync(cmd.Context(), r, o)
		}),
	}

	cmd.Flags().BoolVar(&o.Mirror, "mirror", false, "delete files in DST that are not in SRC")
	cmd.Flags().BoolVarP(&o.Checksum, "checksum", "c", false, "compare file contents, not size and mtime")
	cmd.Flags().StringArrayVar(&o.Excludes, "exclude", nil, "exclude files matching PATTERN (repeatable)")
	cmd.Flags().StringVar(&o.BwLimit, "bwlimit", "", "limit bandwidth, e.g. 500K or 2M")
	return cmd
}
