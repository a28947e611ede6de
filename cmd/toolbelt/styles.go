// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all CLI output. Picked for dark terminal
// backgrounds; the light scheme swaps in darker variants via AdaptiveColor.
var (
	// ColorPrimary is used for titles and headers.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#7C3AED"}
	// ColorMuted is used for secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#6B7280"}
	// ColorSuccess is used for values and success markers.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#10B981"}
	// ColorError is used for errors.
	ColorError = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#EF4444"}
	// ColorWarning is used for warnings and confirmations.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	// ColorHighlight is used for command lines, keys and paths.
	ColorHighlight = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#3B82F6"}
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and configuration values.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages and caution indicators.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for command names, keys and paths.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)
