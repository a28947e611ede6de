// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"toolbelt-cli/internal/config"
	"toolbelt-cli/internal/logging"
	"toolbelt-cli/internal/runner"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra command handler receives an App
	// reference and reaches configuration and external tools through it.
	App struct {
		Config config.Provider

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
		getenv func(string) string

		runnerOverride runner.Runner
		queryOverride  runner.Runner

		flags  globalFlags
		cfg    *config.Config
		runner runner.Runner
		query  runner.Runner
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// Runner executes state-changing tools. Defaults to an ExecRunner, or
		// a DryRunRunner under --dry-run.
		Runner runner.Runner
		// Query executes read-only tools (identify, git show, rsync --dry-run)
		// and always runs them, even under --dry-run.
		Query  runner.Runner
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		Getenv func(string) string
	}

	globalFlags struct {
		configPath string
		verbose    bool
		dryRun     bool
		logFormat  string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Getenv == nil {
		deps.Getenv = os.Getenv
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config:         deps.Config,
		stdin:          deps.Stdin,
		stdout:         deps.Stdout,
		stderr:         deps.Stderr,
		getenv:         deps.Getenv,
		runnerOverride: deps.Runner,
		queryOverride:  deps.Query,
	}
}

// setup loads configuration, installs the logger and picks the runners. A
// broken config file is reported as a warning and the defaults are used.
func (a *App) setup(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.flags.verbose))
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg

	if !a.flags.verbose {
		a.flags.verbose = cfg.UI.Verbose
	}

	switch cfg.UI.ColorScheme {
	case config.ColorSchemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ColorSchemeLight:
		lipgloss.SetHasDarkBackground(false)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return usageError(err)
	}
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	formatName := cfg.Log.Format
	if cmd.Flags().Changed("log-format") {
		formatName = a.flags.logFormat
	}
	format, err := logging.ParseFormat(formatName)
	if err != nil {
		return usageError(err)
	}
	logging.Init(level, format, a.stderr)

	a.query = a.queryOverride
	if a.query == nil {
		a.query = runner.NewExecRunner(cfg.Tools)
	}
	a.runner = a.runnerOverride
	if a.runner == nil {
		if a.flags.dryRun {
			a.runner = runner.NewDryRunRunner(a.stdout, cfg.Tools)
		} else {
			a.runner = runner.NewExecRunner(cfg.Tools)
		}
	}
	return nil
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.flags.configPath}
}

// config returns the loaded configuration, falling back to defaults for
// commands that skipped setup.
func (a *App) config() *config.Config {
	if a.cfg == nil {
		return config.DefaultConfig()
	}
	return a.cfg
}

// glamourStyle maps the configured color scheme to a glamour style name.
func (a *App) glamourStyle() string {
	switch a.config().UI.ColorScheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// finish renders a failed operation once and turns it into an ExitError
// carrying the status to exit with.
func (a *App) finish(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	issueID, styled := classifyError(err, a.flags.verbose)
	renderServiceError(a.stderr, newServiceError(err, issueID, styled), a.glamourStyle())
	return &ExitError{Code: exitCodeFor(err), Err: err, rendered: true}
}

// run adapts an operation to a cobra RunE handler.
func (a *App) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return a.finish(fn(cmd, args))
	}
}
