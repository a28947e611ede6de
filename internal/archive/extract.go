// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"toolbelt-cli/internal/issue"
	"toolbelt-cli/internal/logging"
	"toolbelt-cli/internal/runner"

	"golang.org/x/sync/errgroup"
)

// ErrDestinationExists is returned when the target directory is already there.
var ErrDestinationExists = errors.New("destination already exists")

// Extractor unpacks archives into new directories.
type Extractor struct {
	Runner runner.Runner
	// Native extracts in-process instead of calling external tools.
	Native bool
	// DryRun leaves the filesystem untouched; external commands are still
	// handed to Runner, which is expected to be a runner.DryRunRunner.
	DryRun bool

	logger *slog.Logger
}

// Job is one archive and the directory it is extracted into.
type Job struct {
	Archive string
	Dest    string
}

// NewExtractor creates an Extractor using r for external tools.
func NewExtractor(r runner.Runner) *Extractor {
	return &Extractor{Runner: r, logger: logging.New("unpack")}
}

// DefaultDest returns dir/<archive base name without suffix>.
func DefaultDest(archivePath, dir string) (string, error) {
	_, base, err := Detect(archivePath)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, base), nil
}

// ExtractAll runs jobs concurrently, at most jobs at a time (jobs <= 0 means
// unlimited). The first failure cancels the remaining extractions.
func (e *Extractor) ExtractAll(ctx context.Context, jobs []Job, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, job := range jobs {
		g.Go(func() error {
			return e.Extract(ctx, job.Archive, job.Dest)
		})
	}
	return g.Wait()
}

// Extract unpacks archivePath into dest, which must not exist yet. On failure
// the partially filled destination is kept and named in the error.
func (e *Extractor) Extract(ctx context.Context, archivePath, dest string) error {
	format, base, err := Detect(archivePath)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("detect archive type").
			WithResource(archivePath).
			Wrap(err).
			BuildError()
	}

	info, err := os.Stat(archivePath)
	if err != nil {
		return issue.WrapWithContext(err, "open archive", archivePath)
	}
	if !info.Mode().IsRegular() {
		return issue.WrapWithContext(errors.New("not a regular file"), "open archive", archivePath)
	}

	if _, err := os.Lstat(dest); err == nil {
		return issue.NewErrorContext().
			WithOperation("unpack archive").
			WithResource(archivePath).
			WithSuggestion(fmt.Sprintf("Remove or rename %s", dest)).
			WithSuggestion("Pick another directory with --dest").
			Wrap(fmt.Errorf("%w: %s", ErrDestinationExists, dest)).
			BuildError()
	} else if !errors.Is(err, os.ErrNotExist) {
		return issue.WrapWithContext(err, "inspect destination", dest)
	}

	log := e.log().With("archive", archivePath, "format", format.Name, "dest", dest)

	if e.Native && !format.SupportsNative() {
		return issue.NewErrorContext().
			WithOperation("unpack archive").
			WithResource(archivePath).
			WithSuggestion("Retry without --native to use the external tool").
			Wrap(fmt.Errorf("%s archives cannot be extracted natively", format.Name)).
			BuildError()
	}

	if e.DryRun {
		if e.Native {
			log.Info("would extract natively")
			return nil
		}
		return e.external(ctx, archivePath, dest, base, format, io.Discard)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return issue.WrapWithContext(err, "create destination", dest)
	}
	if err := os.Mkdir(dest, 0o755); err != nil {
		return issue.WrapWithContext(err, "create destination", dest)
	}

	log.Debug("extracting", "native", e.Native)

	if e.Native {
		err = extractNative(ctx, archivePath, dest, base, format)
	} else {
		err = e.externalToDir(ctx, archivePath, dest, base, format)
	}
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("unpack archive").
			WithResource(archivePath).
			WithSuggestion(fmt.Sprintf("Partially extracted files were left in %s", dest)).
			Wrap(err).
			BuildError()
	}

	log.Info("unpacked")
	return nil
}

func (e *Extractor) externalToDir(ctx context.Context, archivePath, dest, base string, format Format) error {
	if format.Container != ContainerNone {
		return e.external(ctx, archivePath, dest, base, format, nil)
	}

	out, err := os.OpenFile(filepath.Join(dest, base), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	runErr := e.external(ctx, archivePath, dest, base, format, out)
	if closeErr := out.Close(); closeErr != nil && runErr == nil {
		return closeErr
	}
	return runErr
}

func (e *Extractor) external(ctx context.Context, archivePath, dest, base string, format Format, stdout io.Writer) error {
	cmd := Command(archivePath, dest, format)
	if stdout != nil {
		cmd.Stdout = stdout
	}
	return e.Runner.Run(ctx, cmd).Err(cmd)
}

// Command builds the external extraction command. Single-file formats write
// the decompressed data to stdout; the caller redirects it into dest.
func Command(archivePath, dest string, format Format) runner.Command {
	switch format.Container {
	case ContainerTar:
		return runner.NewCommand("tar", "--extract", "--auto-compress", "--file", archivePath, "--directory", dest)
	case ContainerZip:
		return runner.NewCommand("unzip", "-q", archivePath, "-d", dest)
	case Container7z:
		return runner.NewCommand("7z", "x", "-o"+dest, archivePath)
	case ContainerRar:
		return runner.NewCommand("unrar", "x", archivePath, dest+string(filepath.Separator))
	default:
		return runner.NewCommand(format.Compression.decompressTool(), "--decompress", "--stdout", archivePath)
	}
}

func (e *Extractor) log() *slog.Logger {
	if e.logger == nil {
		e.logger = logging.New("unpack")
	}
	return e.logger
}
