// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"runtime"
	"strings"

	"toolbelt-cli/internal/archive"

	"github.com/spf13/cobra"
)

// newUnpackCommand creates the `toolbelt unpack` command.
func newUnpackCommand(app *App) *cobra.Command {
	var (
		dest   string
		native bool
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "unpack [flags] ARCHIVE...",
		Short: "Extract archives into fresh directories",
		Long: `Extract one or more archives. Each archive goes into a new directory
named after the archive without its suffix, created in the current
directory; the directory must not exist yet.

Supported suffixes: ` + strings.Join(archive.SupportedSuffixes(), " ") + `

With --native, tar, zip, gzip, bzip2 and zstd archives are extracted
without external tools.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			if dest != "" && len(args) > 1 {
				return usageError(errors.New("--dest can only be used with a single archive"))
			}

			wd, err := os.Getwd()
			if err != nil {
				return err
			}

			batch := make([]archive.Job, 0, len(args))
			for _, a := range args {
				d := dest
				if d == "" {
					if d, err = archive.DefaultDest(a, wd); err != nil {
						return err
					}
				}
				batch = append(batch, archive.Job{Archive: a, Dest: d})
			}

			ex := archive.NewExtractor(app.runner)
			ex.Native = native
			ex.DryRun = app.flags.dryRun
			return ex.ExtractAll(cmd.Context(), batch, jobs)
		}),
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", "", "destination directory (single archive only)")
	cmd.Flags().BoolVar(&native, "native", false, "extract in-process instead of calling external tools")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "archives extracted in parallel")
	return cmd
}
