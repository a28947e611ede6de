// SPDX-License-Identifier: MPL-2.0

// Package zram sets up and tears down compressed swap on /dev/zram0.
package zram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"toolbelt-cli/internal/issue"
	"toolbelt-cli/internal/logging"
	"toolbelt-cli/internal/runner"
	"toolbelt-cli/pkg/types"

	"github.com/dustin/go-humanize"
)

const (
	device = "zram0"

	MinPriority = -1
	MaxPriority = 32767
)

var (
	ErrInvalidSize      = errors.New("invalid zram size")
	ErrInvalidPriority  = errors.New("swap priority must be between -1 and 32767")
	ErrInvalidAlgorithm = errors.New("invalid compression algorithm")

	algorithmPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Options configure zram on.
type Options struct {
	Size      uint64
	Algorithm string
	Priority  int
}

// ParseSize accepts human units, with a bare M or G meaning MiB or GiB, and
// rejects zero.
func ParseSize(s string) (uint64, error) {
	n, err := types.ParseByteSize(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidSize, s, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("%w %q: must be positive", ErrInvalidSize, s)
	}
	return n, nil
}

// Validate checks the option ranges.
func (o Options) Validate() error {
	if o.Size == 0 {
		return fmt.Errorf("%w: must be positive", ErrInvalidSize)
	}
	if o.Priority < MinPriority || o.Priority > MaxPriority {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, o.Priority)
	}
	if !algorithmPattern.MatchString(o.Algorithm) {
		return fmt.Errorf("%w %q", ErrInvalidAlgorithm, o.Algorithm)
	}
	return nil
}

// Manager drives the zram0 device through modprobe, sysfs and swap tools.
type Manager struct {
	Runner    runner.Runner
	SysfsRoot string
	// DryRun prints sysfs writes to Out instead of performing them.
	DryRun bool
	Out    io.Writer
}

// Status is the current zram0 state as reported by sysfs.
type Status struct {
	DiskSize       uint64
	Algorithm      string
	OriginalSize   uint64
	CompressedSize uint64
	MemUsed        uint64
}

// On loads the module, sizes the device and enables it as swap.
func (m *Manager) On(ctx context.Context, o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := m.run(ctx, runner.NewCommand("modprobe", "zram")); err != nil {
		return err
	}
	// The algorithm can only be changed while the device is unsized.
	if err := m.writeAttr("comp_algorithm", o.Algorithm); err != nil {
		return err
	}
	if err := m.writeAttr("disksize", strconv.FormatUint(o.Size, 10)); err != nil {
		return err
	}
	if err := m.run(ctx, runner.NewCommand("mkswap", devPath())); err != nil {
		return err
	}
	return m.run(ctx, runner.NewCommand("swapon", "--priority", strconv.Itoa(o.Priority), devPath()))
}

// Off disables the swap and resets the device, releasing its memory.
func (m *Manager) Off(ctx context.Context) error {
	if err := m.run(ctx, runner.NewCommand("swapoff", devPath())); err != nil {
		return err
	}
	return m.writeAttr("reset", "1")
}

// Status reads disksize, comp_algorithm and mm_stat.
func (m *Manager) Status() (*Status, error) {
	var st Status

	raw, err := m.readAttr("disksize")
	if err != nil {
		return nil, err
	}
	if st.DiskSize, err = strconv.ParseUint(raw, 10, 64); err != nil {
		return nil, fmt.Errorf("parse disksize %q: %w", raw, err)
	}

	raw, err = m.readAttr("comp_algorithm")
	if err != nil {
		return nil, err
	}
	st.Algorithm = selectedAlgorithm(raw)

	raw, err = m.readAttr("mm_stat")
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(raw)
	if len(fields) < 3 {
		return nil, fmt.Errorf("unexpected mm_stat %q", raw)
	}
	vals := make([]uint64, 3)
	for i := range vals {
		if vals[i], err = strconv.ParseUint(fields[i], 10, 64); err != nil {
			return nil, fmt.Errorf("parse mm_stat %q: %w", raw, err)
		}
	}
	st.OriginalSize, st.CompressedSize, st.MemUsed = vals[0], vals[1], vals[2]
	return &st, nil
}

// Ratio is the compression ratio, 0 when nothing is stored.
func (s *Status) Ratio() float64 {
	if s.CompressedSize == 0 {
		return 0
	}
	return float64(s.OriginalSize) / float64(s.CompressedSize)
}

// String renders the status for humans.
func (s *Status) String() string {
	if s.DiskSize == 0 {
		return fmt.Sprintf("%s: not configured\n", device)
	}
	return fmt.Sprintf("%s: %s, algorithm %s\n  stored %s, compressed %s (ratio %.2f), memory used %s\n",
		device, humanize.IBytes(s.DiskSize), s.Algorithm,
		humanize.IBytes(s.OriginalSize), humanize.IBytes(s.CompressedSize), s.Ratio(),
		humanize.IBytes(s.MemUsed))
}

// selectedAlgorithm picks the bracketed entry of "lzo [zstd] lz4".
func selectedAlgorithm(raw string) string {
	for _, f := range strings.Fields(raw) {
		if strings.HasPrefix(f, "[") && strings.HasSuffix(f, "]") {
			return strings.Trim(f, "[]")
		}
	}
	return raw
}

func (m *Manager) run(ctx context.Context, cmd runner.Command) error {
	return m.Runner.Run(ctx, cmd).Err(cmd)
}

func (m *Manager) attrPath(name string) string {
	root := m.SysfsRoot
	if root == "" {
		root = "/sys"
	}
	return filepath.Join(root, "block", device, name)
}

func (m *Manager) writeAttr(name, value string) error {
	path := m.attrPath(name)
	if m.DryRun {
		out := m.Out
		if out == nil {
			out = os.Stdout
		}
		_, err := fmt.Fprintf(out, "%s > %s\n", runner.NewCommand("echo", value), path)
		return err
	}

	logging.New("zram").Debug("writing sysfs attribute", "path", path, "value", value)
	// sysfs attributes exist already; O_TRUNC is ignored by the kernel.
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return issue.NewErrorContext().
			WithOperation("configure zram").
			WithResource(path).
			WithSuggestion("Run as root").
			WithSuggestion("Check that the zram module is loaded: lsmod | grep zram").
			Wrap(err).
			BuildError()
	}
	return nil
}

func (m *Manager) readAttr(name string) (string, error) {
	path := m.attrPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", issue.WrapWithContext(err, "read zram status", path)
	}
	return strings.TrimSpace(string(data)), nil
}

func devPath() string {
	return "/dev/" + device
}
