// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"toolbelt-cli/internal/config"
	"toolbelt-cli/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `toolbelt config` command tree.
// Subcommands that read configuration use the App's config Provider and fail
// hard on a broken file instead of falling back to defaults.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage toolbelt configuration",
		Long: `Manage toolbelt configuration.

Configuration is read from, in order:
  - the file named by --config
  - $XDG_CONFIG_HOME/toolbelt/config.cue (~/.config/toolbelt/config.cue)
  - ./config.cue

Any key can be overridden by the environment: TOOLBELT_ZRAM_SIZE=4GiB.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: app.run(func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd.Context(), app)
		}),
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  usageArgs(cobra.NoArgs),
		RunE: app.run(func(_ *cobra.Command, _ []string) error {
			return showConfigPath(app)
		}),
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: app.run(func(_ *cobra.Command, _ []string) error {
			path, err := config.CreateDefaultConfig("")
			if err != nil {
				return issue.WrapWithContext(err, "create config", path)
			}
			fmt.Fprintf(app.stdout, "%s Configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		}),
	})

	var format string
	dump := &cobra.Command{
		Use:   "dump [--format cue|toml]",
		Short: "Output the effective configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: app.run(func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfigStrict(cmd.Context(), app)
			if err != nil {
				return err
			}
			switch format {
			case "cue":
				fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			case "toml":
				out, err := config.GenerateTOML(cfg)
				if err != nil {
					return err
				}
				fmt.Fprint(app.stdout, out)
			default:
				return usageError(fmt.Errorf("unknown format %q (valid: cue, toml)", format))
			}
			return nil
		}),
	}
	dump.Flags().StringVar(&format, "format", "cue", "output format: cue or toml")
	cfgCmd.AddCommand(dump)

	return cfgCmd
}

func loadConfigStrict(ctx context.Context, app *App) (*config.Config, error) {
	cfg, err := app.Config.Load(ctx, app.loadOptions())
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(app.flags.configPath).
			WithSuggestion("Run 'toolbelt config dump' after fixing the file to check the result").
			Wrap(err).
			BuildError()
	}
	return cfg, nil
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := loadConfigStrict(ctx, app)
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	w := app.stdout
	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	path, _ := config.ResolvePath(app.loadOptions())
	if path == "" {
		path = SubtitleStyle.Render("(using defaults)")
	}
	fmt.Fprintf(w, "%s: %s\n\n", keyStyle.Render("Config file"), path)

	section := func(name string, kv ...string) {
		fmt.Fprintf(w, "%s:\n", keyStyle.Render(name))
		for i := 0; i+1 < len(kv); i += 2 {
			fmt.Fprintf(w, "  %s: %s\n", kv[i], valueStyle.Render(kv[i+1]))
		}
	}

	section("ui", "verbose", strconv.FormatBool(cfg.UI.Verbose), "color_scheme", cfg.UI.ColorScheme.String())
	section("log", "level", cfg.Log.Level, "format", cfg.Log.Format)

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("tools"))
	if len(cfg.Tools) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(no overrides)"))
	} else {
		for _, name := range slices.Sorted(maps.Keys(cfg.Tools)) {
			fmt.Fprintf(w, "  %s: %s\n", name, valueStyle.Render(cfg.Tools[name]))
		}
	}

	section("burn", "device", cfg.Burn.Device, "speed", strconv.Itoa(cfg.Burn.Speed))
	section("rsync", "excludes", "["+strings.Join(cfg.Rsync.Excludes, ", ")+"]", "bwlimit", cfg.Rsync.BwLimit)
	section("write_image", "block_size", cfg.WriteImage.BlockSize)
	section("zram",
		"size", cfg.Zram.Size,
		"algorithm", cfg.Zram.Algorithm,
		"priority", strconv.Itoa(cfg.Zram.Priority),
		"sysfs_root", cfg.Zram.SysfsRoot,
	)
	section("encfs", "idle_minutes", strconv.Itoa(cfg.Encfs.IdleMinutes))
	section("fetch", "retries", strconv.Itoa(cfg.Fetch.Retries))
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)

	path, err := config.ResolvePath(app.loadOptions())
	if err != nil {
		return err
	}
	if path == "" {
		path = SubtitleStyle.Render("(none, using defaults)")
	}
	fmt.Fprintf(app.stdout, "Config file: %s\n", path)
	return nil
}
