// SPDX-License-Identifier: MPL-2.0

// Package diskimage writes raw disk images to block devices with dd.
package diskimage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"toolbelt-cli/internal/issue"
	"toolbelt-cli/internal/runner"
	"toolbelt-cli/pkg/types"

	"github.com/dustin/go-humanize"
)

const sectorSize = 512

var (
	// ErrNotBlockDevice is returned when the target is a file or char device.
	ErrNotBlockDevice = errors.New("not a block device")
	// ErrDeviceMounted is returned when the device or a partition is mounted.
	ErrDeviceMounted = errors.New("device is mounted")
	// ErrImageTooLarge is returned when the image does not fit on the device.
	ErrImageTooLarge = errors.New("image is larger than the device")
	// ErrNotConfirmed is returned when the write was not confirmed with --yes.
	ErrNotConfirmed = errors.New("refusing to overwrite without confirmation")
	// ErrInvalidBlockSize is returned for zero or unparsable block sizes.
	ErrInvalidBlockSize = errors.New("invalid block size")
)

// ParseBlockSize accepts dd-style sizes (4M, 1MiB, 512k) and returns bytes.
// The result must be a whole number of sectors, since dd writes with
// oflag=direct.
func ParseBlockSize(s string) (uint64, error) {
	n, err := types.ParseByteSize(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidBlockSize, s, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("%w %q: must be positive", ErrInvalidBlockSize, s)
	}
	if n%sectorSize != 0 {
		return 0, fmt.Errorf("%w %q: %d bytes is not a multiple of %d", ErrInvalidBlockSize, s, n, sectorSize)
	}
	return n, nil
}

// Writer checks the target device and copies an image onto it.
type Writer struct {
	Runner runner.Runner
	// MountsPath is the mount table to check, normally /proc/self/mounts.
	MountsPath string
	// SysfsRoot is normally /sys.
	SysfsRoot string

	isBlockDevice func(string) (bool, error)
}

// Plan is a validated write, ready to run.
type Plan struct {
	Image      string
	Device     string
	ImageSize  uint64
	DeviceSize uint64
	BlockSize  uint64
}

// NewWriter returns a Writer for the live system.
func NewWriter(r runner.Runner, sysfsRoot string) *Writer {
	if sysfsRoot == "" {
		sysfsRoot = "/sys"
	}
	return &Writer{Runner: r, MountsPath: "/proc/self/mounts", SysfsRoot: sysfsRoot}
}

// Prepare validates image and device and returns the plan.
func (w *Writer) Prepare(image, device string, blockSize uint64) (*Plan, error) {
	if blockSize == 0 {
		return nil, fmt.Errorf("%w: must be positive", ErrInvalidBlockSize)
	}

	info, err := os.Stat(image)
	if err != nil {
		return nil, issue.WrapWithContext(err, "open image", image)
	}
	if !info.Mode().IsRegular() {
		return nil, issue.WrapWithContext(errors.New("not a regular file"), "open image", image)
	}

	dev, err := filepath.EvalSymlinks(device)
	if err != nil {
		return nil, issue.WrapWithContext(err, "open device", device)
	}
	isBlock := w.isBlockDevice
	if isBlock == nil {
		isBlock = blockDevice
	}
	ok, err := isBlock(dev)
	if err != nil {
		return nil, issue.WrapWithContext(err, "open device", device)
	}
	if !ok {
		return nil, issue.WrapWithContext(fmt.Errorf("%w: %s", ErrNotBlockDevice, dev), "open device", device)
	}

	if err := w.checkNotMounted(dev); err != nil {
		return nil, err
	}

	devSize, err := w.deviceSize(dev)
	if err != nil {
		return nil, issue.WrapWithContext(err, "read device size", dev)
	}
	imgSize := uint64(info.Size())
	if imgSize > devSize {
		return nil, issue.NewErrorContext().
			WithOperation("write image").
			WithResource(dev).
			WithSuggestion("Use a larger device or a smaller image").
			Wrap(fmt.Errorf("%w: %s > %s", ErrImageTooLarge, humanize.IBytes(imgSize), humanize.IBytes(devSize))).
			BuildError()
	}

	return &Plan{Image: image, Device: dev, ImageSize: imgSize, DeviceSize: devSize, BlockSize: blockSize}, nil
}

// Summary describes what the plan overwrites.
func (p *Plan) Summary() string {
	return fmt.Sprintf("write %s (%s) to %s (%s), destroying all data on %s",
		p.Image, humanize.IBytes(p.ImageSize), p.Device, humanize.IBytes(p.DeviceSize), p.Device)
}

// Commands returns dd followed by sync.
func (p *Plan) Commands() []runner.Command {
	return []runner.Command{
		runner.NewCommand("dd",
			"if="+p.Image,
			"of="+p.Device,
			"bs="+strconv.FormatUint(p.BlockSize, 10),
			"conv=fsync",
			"oflag=direct",
			"status=progress",
		),
		runner.NewCommand("sync"),
	}
}

// Write runs the plan. Without confirmed it only reports what it would do.
func (w *Writer) Write(ctx context.Context, p *Plan, confirmed bool) error {
	if !confirmed {
		return issue.NewErrorContext().
			WithOperation("write image").
			WithResource(p.Device).
			WithSuggestion("Re-run with --yes to " + p.Summary()).
			Wrap(ErrNotConfirmed).
			BuildError()
	}
	for _, cmd := range p.Commands() {
		if err := w.Runner.Run(ctx, cmd).Err(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) checkNotMounted(dev string) error {
	f, err := os.Open(w.MountsPath)
	if err != nil {
		return issue.WrapWithContext(err, "read mount table", w.MountsPath)
	}
	defer f.Close()

	mounts, err := ParseMounts(f)
	if err != nil {
		return err
	}
	found := MountsOf(mounts, dev)
	if len(found) == 0 {
		return nil
	}

	targets := make([]string, len(found))
	for i, m := range found {
		targets[i] = m.Source + " on " + m.Target
	}
	return issue.NewErrorContext().
		WithOperation("write image").
		WithResource(dev).
		WithSuggestion("Unmount first: sudo umount " + found[0].Source).
		Wrap(fmt.Errorf("%w: %s", ErrDeviceMounted, strings.Join(targets, ", "))).
		BuildError()
}

func (w *Writer) deviceSize(dev string) (uint64, error) {
	path := filepath.Join(w.SysfsRoot, "class", "block", filepath.Base(dev), "size")
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	sectors, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return sectors * sectorSize, nil
}

func blockDevice(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	m := info.Mode()
	return m&os.ModeDevice != 0 && m&os.ModeCharDevice == 0, nil
}
