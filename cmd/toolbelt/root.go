// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the toolbelt command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "toolbelt",
		Short: "Everyday workstation chores behind one command",
		Long: TitleStyle.Render("toolbelt") + SubtitleStyle.Render(" - everyday workstation chores behind one command") + `

toolbelt wraps the external tools you already have (curl, rsync, git,
wodim, dd, convert, xsel, encfs, emacsclient) with validated arguments,
consistent exit statuses and a dry-run mode that prints every command
instead of running it.

` + SubtitleStyle.Render("Examples:") + `
  toolbelt unpack release.tar.gz        Extract next to the archive
  toolbelt sync ~/photos /mnt/backup    Mirror a directory with rsync
  toolbelt crop in.png 10:10:10:10      Trim a 10px border
  toolbelt git branch-age               List branches by last commit
  toolbelt -n write-image os.img /dev/sdb
                                        Show what would be written`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd.Context(), cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/toolbelt/config.cue)")
	pf.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&app.flags.dryRun, "dry-run", "n", false, "print external commands instead of running them")
	pf.StringVar(&app.flags.logFormat, "log-format", "text", "log output format (text, json or logfmt)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(
		newUnpackCommand(app),
		newBurnCommand(app),
		newSyncCommand(app),
		newCropCommand(app),
		newGitCommand(app),
		newEmacsCommand(app),
		newEdiffCommand(app),
		newOvpnCommand(app),
		newDetachCommand(app),
		newRunWaitCommand(app),
		newClipCommand(app),
		newWriteImageCommand(app),
		newSendFrameCommand(app),
		newZramCommand(app),
		newEncfsCommand(app),
		newFetchCommand(app),
		newConfigCommand(app),
		newCompletionCommand(app),
		newLicenseCommand(app),
	)

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the status of the operation.
// This is called by main.main().
func Execute() {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))

	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	)
	os.Exit(int(exitCodeFor(err)))
}

// handleError prints errors that were not rendered by the command itself.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.rendered {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
