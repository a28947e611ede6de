// SPDX-License-Identifier: MPL-2.0

// Package rsync builds rsync invocations for directory synchronization.
package rsync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"toolbelt-cli/internal/issue"
	"toolbelt-cli/internal/runner"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrInvalidExclude is returned for malformed exclude patterns.
	ErrInvalidExclude = errors.New("invalid exclude pattern")
	// ErrInvalidBwLimit is returned for rates rsync would not accept.
	ErrInvalidBwLimit = errors.New("invalid bandwidth limit")

	// Plain numbers are KiB per second; suffixes follow rsync's size syntax.
	bwLimitPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?([KkMmGg][Ii]?[Bb]?|[Bb])?$`)
)

var baseOptions = []string{"--archive", "--human-readable", "--progress", "--itemize-changes"}

// Options describe one sync.
type Options struct {
	Source   string
	Dest     string
	Mirror   bool
	Checksum bool
	Excludes []string
	BwLimit  string
	// DryRun asks rsync itself to only report what it would transfer.
	DryRun bool
}

// Validate checks the source and the patterns before rsync is started.
func (o Options) Validate() error {
	if o.Dest == "" {
		return errors.New("no destination given")
	}
	if _, err := os.Stat(o.Source); err != nil {
		return issue.WrapWithContext(err, "read sync source", o.Source)
	}
	for _, p := range o.Excludes {
		if err := ValidateExclude(p); err != nil {
			return err
		}
	}
	if o.BwLimit != "" && !bwLimitPattern.MatchString(o.BwLimit) {
		return fmt.Errorf("%w %q (examples: 500K, 2M, 1024)", ErrInvalidBwLimit, o.BwLimit)
	}
	return nil
}

// ValidateExclude rejects empty patterns and malformed globs.
func ValidateExclude(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("%w: empty pattern", ErrInvalidExclude)
	}
	// rsync anchors patterns with a leading slash and marks directories with a
	// trailing one; neither matters for glob syntax.
	glob := strings.Trim(pattern, "/")
	if glob == "" {
		glob = "*"
	}
	if !doublestar.ValidatePattern(glob) {
		return fmt.Errorf("%w %q", ErrInvalidExclude, pattern)
	}
	return nil
}

// Command builds the rsync command line. A directory source always gets a
// trailing slash so that its contents, not the directory itself, land in Dest.
func (o Options) Command() runner.Command {
	args := append([]string(nil), baseOptions...)
	if o.Mirror {
		args = append(args, "--delete", "--delete-excluded")
	}
	if o.Checksum {
		args = append(args, "--checksum")
	}
	if o.DryRun {
		args = append(args, "--dry-run")
	}
	if o.BwLimit != "" {
		args = append(args, "--bwlimit="+o.BwLimit)
	}
	for _, p := range o.Excludes {
		args = append(args, "--exclude="+p)
	}
	args = append(args, sourceArg(o.Source), o.Dest)
	return runner.NewCommand("rsync", args...)
}

// Sync validates o and runs rsync.
func Sync(ctx context.Context, r runner.Runner, o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	cmd := o.Command()
	return r.Run(ctx, cmd).Err(cmd)
}

func sourceArg(src string) string {
	if strings.HasSuffix(src, "/") {
		return src
	}
	if info, err := os.Stat(src); err == nil && info.IsDir() {
		return src + "/"
	}
	return src
}
