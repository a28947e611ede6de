// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// GenerateCUE renders cfg as a config.cue file that loads back to the same values.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// toolbelt configuration\n")
	sb.WriteString("// Environment variables TOOLBELT_<SECTION>_<KEY> override these values.\n\n")

	fmt.Fprintf(&sb, "ui: {\n\tverbose: %v\n\tcolor_scheme: %q\n}\n", cfg.UI.Verbose, cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\nlog: {\n\tlevel: %q\n\tformat: %q\n}\n", cfg.Log.Level, cfg.Log.Format)

	sb.WriteString("\ntools: {\n")
	names := make([]string, 0, len(cfg.Tools))
	for name := range cfg.Tools {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "\t%q: %q\n", name, cfg.Tools[name])
	}
	sb.WriteString("}\n")

	fmt.Fprintf(&sb, "\nburn: {\n\tdevice: %q\n\tspeed: %d\n}\n", cfg.Burn.Device, cfg.Burn.Speed)

	sb.WriteString("\nrsync: {\n\texcludes: [")
	for i, ex := range cfg.Rsync.Excludes {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q", ex)
	}
	sb.WriteString("]\n")
	if cfg.Rsync.BwLimit != "" {
		fmt.Fprintf(&sb, "\tbwlimit: %q\n", cfg.Rsync.BwLimit)
	}
	sb.WriteString("}\n")

	fmt.Fprintf(&sb, "\nwrite_image: {\n\tblock_size: %q\n}\n", cfg.WriteImage.BlockSize)
	fmt.Fprintf(&sb, "\nzram: {\n\tsize: %q\n\talgorithm: %q\n\tpriority: %d\n\tsysfs_root: %q\n}\n",
		cfg.Zram.Size, cfg.Zram.Algorithm, cfg.Zram.Priority, cfg.Zram.SysfsRoot)
	fmt.Fprintf(&sb, "\nencfs: {\n\tidle_minutes: %d\n}\n", cfg.Encfs.IdleMinutes)
	fmt.Fprintf(&sb, "\nfetch: {\n\tretries: %d\n}\n", cfg.Fetch.Retries)

	return sb.String()
}

// GenerateTOML renders cfg as TOML, for users who feed the settings to other tools.
func GenerateTOML(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config as TOML: %w", err)
	}
	return string(data), nil
}
