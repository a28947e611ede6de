// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"toolbelt-cli/internal/archive"
	"toolbelt-cli/internal/clip"
	"toolbelt-cli/internal/config"
	"toolbelt-cli/internal/crop"
	"toolbelt-cli/internal/diskimage"
	"toolbelt-cli/internal/ethframe"
	"toolbelt-cli/internal/issue"
	"toolbelt-cli/internal/runner"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. When the CLI layer receives a ServiceError, it renders the
// styled error message (if present) before the issue help text.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps a failure to an issue catalog entry and a styled message.
// Plain tool failures get no catalog entry unless verbose is set; the tool has
// usually explained itself on stderr already.
func classifyError(err error, verbose bool) (issueID issue.Id, styledMsg string) {
	var statusErr *runner.ExitStatusError

	switch {
	case errors.Is(err, runner.ErrToolNotFound):
		issueID = issue.ToolNotFoundId
	case errors.Is(err, config.ErrInvalidColorScheme):
		issueID = issue.ConfigLoadFailedId
	case errors.Is(err, diskimage.ErrDeviceMounted):
		issueID = issue.DeviceMountedId
	case errors.Is(err, archive.ErrDestinationExists):
		issueID = issue.DestinationExistsId
	case errors.Is(err, archive.ErrUnsupportedFormat):
		issueID = issue.UnsupportedArchiveId
	case errors.Is(err, crop.ErrInvalidExpression):
		issueID = issue.InvalidCropExpressionId
	case errors.Is(err, clip.ErrNoDisplay):
		issueID = issue.NoDisplayId
	case errors.Is(err, ethframe.ErrUnsupportedPlatform):
		issueID = issue.PlatformNotSupportedId
	case errors.Is(err, os.ErrPermission):
		issueID = issue.PermissionDeniedId
	case errors.As(err, &statusErr) && verbose:
		issueID = issue.ToolFailedId
	}

	return issueID, fmt.Sprintf("%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
}

// renderServiceError renders a ServiceError in the CLI layer.
// It prints any styled message first, then the optional issue help section.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, stylePath string) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(stylePath)
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
