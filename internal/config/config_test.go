// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"toolbelt-cli/internal/issue"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("default color scheme = %q, want auto", cfg.UI.ColorScheme)
	}
	if cfg.Burn.Device != "/dev/sr0" {
		t.Errorf("default burn device = %q", cfg.Burn.Device)
	}
	if cfg.Zram.Algorithm != "zstd" || cfg.Zram.Priority != 100 {
		t.Errorf("unexpected zram defaults: %+v", cfg.Zram)
	}
	if cfg.Fetch.Retries != 0 {
		t.Errorf("fetch must not retry by default, got %d", cfg.Fetch.Retries)
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, path, err := loadWithOptions(t.Context(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if path != "" && !strings.HasSuffix(path, ConfigFileName+"."+ConfigFileExt) {
		t.Errorf("unexpected resolved path %q", path)
	}
	if cfg.WriteImage.BlockSize != "4MiB" {
		t.Errorf("block size = %q, want 4MiB", cfg.WriteImage.BlockSize)
	}
}

func TestLoad_FromCUEFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), `
ui: color_scheme: "dark"
tools: convert: "/opt/im/bin/magick"
burn: {
	device: "/dev/sr1"
	speed: 8
}
rsync: excludes: ["*.tmp", ".cache/"]
fetch: retries: 3
`)

	cfg, resolved, err := loadWithOptions(t.Context(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("color scheme = %q", cfg.UI.ColorScheme)
	}
	if cfg.Tools["convert"] != "/opt/im/bin/magick" {
		t.Errorf("tools = %v", cfg.Tools)
	}
	if cfg.Burn.Device != "/dev/sr1" || cfg.Burn.Speed != 8 {
		t.Errorf("burn = %+v", cfg.Burn)
	}
	if diff := cmp.Diff([]string{"*.tmp", ".cache/"}, cfg.Rsync.Excludes); diff != "" {
		t.Errorf("excludes mismatch (-want +got):\n%s", diff)
	}
	if cfg.Fetch.Retries != 3 {
		t.Errorf("retries = %d", cfg.Fetch.Retries)
	}
	// Untouched sections keep their defaults.
	if cfg.Zram.Algorithm != "zstd" {
		t.Errorf("zram algorithm = %q, want default", cfg.Zram.Algorithm)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown section", `bogus: true`},
		{"bad enum", `log: format: "xml"`},
		{"relative device", `burn: device: "sr0"`},
		{"priority out of range", `zram: priority: 40000`},
		{"bad bwlimit", `rsync: bwlimit: "fast"`},
		{"syntax error", `ui: {`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, t.TempDir(), tt.content)
			_, _, err := loadWithOptions(t.Context(), LoadOptions{ConfigFilePath: path})
			if err == nil {
				t.Fatal("expected a validation error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *issue.ActionableError, got %T", err)
			}
			if ae.Resource != path {
				t.Errorf("error resource = %q, want %q", ae.Resource, path)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, _, err := loadWithOptions(t.Context(), LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue")})
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TOOLBELT_BURN_DEVICE", "/dev/sr9")
	t.Setenv("TOOLBELT_FETCH_RETRIES", "5")

	cfg, _, err := loadWithOptions(t.Context(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Burn.Device != "/dev/sr9" {
		t.Errorf("burn device = %q, want env override", cfg.Burn.Device)
	}
	if cfg.Fetch.Retries != 5 {
		t.Errorf("retries = %d, want env override", cfg.Fetch.Retries)
	}
}

func TestLoad_EnvOverrideInvalidColorScheme(t *testing.T) {
	t.Setenv("TOOLBELT_UI_COLOR_SCHEME", "neon")

	_, _, err := loadWithOptions(t.Context(), LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, ErrInvalidColorScheme) {
		t.Fatalf("expected ErrInvalidColorScheme, got %v", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := contextWithCancel(t)
	cancel()
	if _, _, err := loadWithOptions(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestGenerateCUE_LoadsBack(t *testing.T) {
	t.Parallel()

	want := DefaultConfig()
	want.Tools["xsel"] = "/usr/local/bin/xsel"
	want.Rsync.Excludes = []string{"node_modules/"}
	want.Rsync.BwLimit = "2M"
	want.Encfs.IdleMinutes = 15

	path := writeConfig(t, t.TempDir(), GenerateCUE(want))
	got, _, err := loadWithOptions(t.Context(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateTOML(t *testing.T) {
	t.Parallel()

	out, err := GenerateTOML(DefaultConfig())
	if err != nil {
		t.Fatalf("GenerateTOML failed: %v", err)
	}

	var decoded map[string]any
	if err := toml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid TOML: %v\n%s", err, out)
	}
	burn, ok := decoded["burn"].(map[string]any)
	if !ok || burn["device"] != "/dev/sr0" {
		t.Errorf("burn section = %v", decoded["burn"])
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	path, err := CreateDefaultConfig(dir)
	if err != nil {
		t.Fatalf("CreateDefaultConfig failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(`fetch: retries: 2`), 0o644); err != nil {
		t.Fatal(err)
	}

	// A second call must not overwrite the user's file.
	if _, err := CreateDefaultConfig(dir); err != nil {
		t.Fatalf("second CreateDefaultConfig failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `fetch: retries: 2` {
		t.Errorf("config was overwritten: %q", data)
	}

	resolved, err := ResolvePath(LoadOptions{ConfigDirPath: dir})
	if err != nil || resolved != path {
		t.Errorf("ResolvePath() = %q, %v; want %q", resolved, err, path)
	}
}

func TestCuePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"burn", "device"}, "burn.device"},
		{[]string{"rsync", "excludes", "2"}, "rsync.excludes[2]"},
		{[]string{"0"}, "0"},
	}
	for _, tt := range tests {
		if got := cuePath(tt.in); got != tt.want {
			t.Errorf("cuePath(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
