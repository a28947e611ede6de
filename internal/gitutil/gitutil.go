// SPDX-License-Identifier: MPL-2.0

// Package gitutil holds small git helpers: recent history, branch ages and
// diffing a file against an older revision.
package gitutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"toolbelt-cli/internal/emacs"
	"toolbelt-cli/internal/issue"
	"toolbelt-cli/internal/logging"
	"toolbelt-cli/internal/runner"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

// ErrInvalidMinutes is returned when a minute count is not a positive integer.
var ErrInvalidMinutes = errors.New("minutes must be a positive integer")

var minutesPattern = regexp.MustCompile(`^[0-9]+$`)

const branchFormat = "%(refname:short)%09%(committerdate:unix)%09%(subject)"

// Branch is one local branch and its most recent commit.
type Branch struct {
	Name      string
	Committed time.Time
	Subject   string
}

// ParseMinutes accepts plain decimal digits only: no sign, no spaces, not zero.
func ParseMinutes(s string) (int, error) {
	if !minutesPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMinutes, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMinutes, s)
	}
	return n, nil
}

// SinceCommand lists the commits of the last minutes with file statistics.
func SinceCommand(minutes int, extra ...string) runner.Command {
	args := []string{"log", fmt.Sprintf("--since=%d minutes ago", minutes), "--stat", "--date=iso"}
	return runner.NewCommand("git", append(args, extra...)...)
}

// BranchAgeCommand lists local branches, most recently committed first.
func BranchAgeCommand() runner.Command {
	return runner.NewCommand("git", "for-each-ref", "--sort=-committerdate", "--format="+branchFormat, "refs/heads/")
}

// ParseBranches reads the output of BranchAgeCommand.
func ParseBranches(out string) ([]Branch, error) {
	var branches []Branch
	for line := range strings.Lines(out) {
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) < 2 {
			return nil, fmt.Errorf("unexpected for-each-ref line %q", line)
		}
		secs, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad commit time in %q: %w", line, err)
		}
		b := Branch{Name: fields[0], Committed: time.Unix(secs, 0)}
		if len(fields) == 3 {
			b.Subject = fields[2]
		}
		branches = append(branches, b)
	}
	return branches, nil
}

// RenderBranches formats branches as a table with ages relative to now.
func RenderBranches(branches []Branch, now time.Time) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("BRANCH", "LAST COMMIT", "SUBJECT").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, b := range branches {
		t.Row(b.Name, humanize.RelTime(b.Committed, now, "ago", "from now"), b.Subject)
	}
	return t.Render()
}

// BranchAges runs git for-each-ref and parses the result.
func BranchAges(ctx context.Context, r runner.Runner) ([]Branch, error) {
	cmd := BranchAgeCommand()
	res := r.Capture(ctx, cmd)
	if err := res.Err(cmd); err != nil {
		return nil, err
	}
	return ParseBranches(res.Output)
}

// RevisionPath returns the REV:PATH object name for file, relative to the
// current directory so that git resolves it from the working tree position.
func RevisionPath(rev, file string) (string, error) {
	rel := file
	if filepath.IsAbs(file) {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		if rel, err = filepath.Rel(wd, file); err != nil {
			return "", err
		}
	}
	rel = filepath.ToSlash(filepath.Clean(rel))
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rev + ":" + rel, nil
}

// EdiffRevision writes file as of rev into a temporary file and opens it
// against the working copy. With a waiting client the temporary file is
// removed once Emacs returns; otherwise it stays for Emacs to read.
func EdiffRevision(ctx context.Context, r runner.Runner, client *emacs.Client, file, rev string) error {
	if rev == "" {
		rev = "HEAD"
	}
	if _, err := os.Stat(file); err != nil {
		return issue.WrapWithContext(err, "open working copy", file)
	}

	object, err := RevisionPath(rev, file)
	if err != nil {
		return err
	}
	show := runner.NewCommand("git", "show", object)
	res := r.Capture(ctx, show)
	if err := res.Err(show); err != nil {
		return issue.NewErrorContext().
			WithOperation("read old revision").
			WithResource(object).
			WithSuggestion("Check that the revision exists and the file is tracked: git log -- " + file).
			Wrap(err).
			BuildError()
	}

	ext := filepath.Ext(file)
	base := strings.TrimSuffix(filepath.Base(file), ext)
	tmp, err := os.CreateTemp("", base+"."+sanitizeRev(rev)+".*"+ext)
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(res.Output); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	logging.New("git").Debug("wrote old revision", "object", object, "path", tmp.Name())

	if err := client.Ediff(ctx, tmp.Name(), file); err != nil {
		return err
	}
	if client.Wait {
		return os.Remove(tmp.Name())
	}
	return nil
}

func sanitizeRev(rev string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '*', ':', '~', '^':
			return '_'
		}
		return r
	}, rev)
}
