// SPDX-License-Identifier: MPL-2.0

// Package logging configures the process-wide slog logger. Records are
// rendered by charmbracelet/log so that log lines match the CLI styling.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Format selects how log records are rendered.
type Format string

const (
	// FormatText is the human-readable, colored format.
	FormatText Format = "text"
	// FormatJSON renders one JSON object per record.
	FormatJSON Format = "json"
	// FormatLogfmt renders key=value pairs.
	FormatLogfmt Format = "logfmt"
)

// ParseFormat validates a format name. The empty string selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatLogfmt:
		return f, nil
	default:
		return "", fmt.Errorf("unknown log format %q (expected text, json or logfmt)", s)
	}
}

// ParseLevel maps a level name to its slog level. The empty string selects info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// Init installs the default slog logger. A nil writer means os.Stderr.
func Init(level slog.Level, format Format, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	opts := log.Options{
		Level:  log.Level(level),
		Prefix: "toolbelt",
	}
	switch format {
	case FormatJSON:
		opts.Formatter = log.JSONFormatter
		opts.ReportTimestamp = true
	case FormatLogfmt:
		opts.Formatter = log.LogfmtFormatter
		opts.ReportTimestamp = true
	default:
		opts.Formatter = log.TextFormatter
	}

	slog.SetDefault(slog.New(log.NewWithOptions(w, opts)))
}

// New returns the default logger tagged with a component attribute.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}
