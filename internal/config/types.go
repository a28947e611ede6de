// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark palette.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light palette.
	ColorSchemeLight ColorScheme = "light"
)

// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
var ErrInvalidColorScheme = errors.New("invalid color scheme")

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError wraps ErrInvalidColorScheme.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// Config is the complete toolbelt configuration.
	Config struct {
		UI         UIConfig          `mapstructure:"ui" toml:"ui"`
		Log        LogConfig         `mapstructure:"log" toml:"log"`
		Tools      map[string]string `mapstructure:"tools" toml:"tools"`
		Burn       BurnConfig        `mapstructure:"burn" toml:"burn"`
		Rsync      RsyncConfig       `mapstructure:"rsync" toml:"rsync"`
		WriteImage WriteImageConfig  `mapstructure:"write_image" toml:"write_image"`
		Zram       ZramConfig        `mapstructure:"zram" toml:"zram"`
		Encfs      EncfsConfig       `mapstructure:"encfs" toml:"encfs"`
		Fetch      FetchConfig       `mapstructure:"fetch" toml:"fetch"`
	}

	// UIConfig controls terminal output.
	UIConfig struct {
		Verbose     bool        `mapstructure:"verbose" toml:"verbose"`
		ColorScheme ColorScheme `mapstructure:"color_scheme" toml:"color_scheme"`
	}

	// LogConfig controls the slog logger.
	LogConfig struct {
		Level  string `mapstructure:"level" toml:"level"`
		Format string `mapstructure:"format" toml:"format"`
	}

	// BurnConfig holds burn-cd defaults.
	BurnConfig struct {
		Device string `mapstructure:"device" toml:"device"`
		Speed  int    `mapstructure:"speed" toml:"speed"`
	}

	// RsyncConfig holds sync defaults.
	RsyncConfig struct {
		// Excludes are prepended to the --exclude patterns of every sync.
		Excludes []string `mapstructure:"excludes" toml:"excludes"`
		BwLimit  string   `mapstructure:"bwlimit" toml:"bwlimit"`
	}

	// WriteImageConfig holds write-image defaults.
	WriteImageConfig struct {
		BlockSize string `mapstructure:"block_size" toml:"block_size"`
	}

	// ZramConfig holds zram defaults.
	ZramConfig struct {
		Size      string `mapstructure:"size" toml:"size"`
		Algorithm string `mapstructure:"algorithm" toml:"algorithm"`
		Priority  int    `mapstructure:"priority" toml:"priority"`
		// SysfsRoot is normally /sys; tests point it at a temporary tree.
		SysfsRoot string `mapstructure:"sysfs_root" toml:"sysfs_root"`
	}

	// EncfsConfig holds encfs defaults.
	EncfsConfig struct {
		// IdleMinutes unmounts after inactivity; 0 disables it.
		IdleMinutes int `mapstructure:"idle_minutes" toml:"idle_minutes"`
	}

	// FetchConfig holds fetch defaults.
	FetchConfig struct {
		Retries int `mapstructure:"retries" toml:"retries"`
	}
)

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate returns an error if the scheme is not one of the known values.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// String returns the scheme name.
func (c ColorScheme) String() string { return string(c) }

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Tools: map[string]string{},
		Burn: BurnConfig{
			Device: "/dev/sr0",
		},
		Rsync: RsyncConfig{
			Excludes: []string{},
		},
		WriteImage: WriteImageConfig{
			BlockSize: "4MiB",
		},
		Zram: ZramConfig{
			Size:      "2GiB",
			Algorithm: "zstd",
			Priority:  100,
			SysfsRoot: "/sys",
		},
	}
}
