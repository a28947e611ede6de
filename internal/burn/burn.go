// SPDX-License-Identifier: MPL-2.0

// Package burn writes ISO images to optical media with wodim.
package burn

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"toolbelt-cli/internal/issue"
	"toolbelt-cli/internal/runner"
)

// BlankMode selects how rewritable media is erased before burning.
type BlankMode string

const (
	BlankNone BlankMode = ""
	BlankFast BlankMode = "fast"
	BlankAll  BlankMode = "all"
)

var (
	// ErrInvalidBlankMode is returned for anything but fast or all.
	ErrInvalidBlankMode = errors.New("invalid blank mode")
	// ErrInvalidSpeed is returned for negative speeds.
	ErrInvalidSpeed = errors.New("speed must be a non-negative integer")
)

// Options describe one burn.
type Options struct {
	Device   string
	Speed    int
	Simulate bool
	Eject    bool
	Blank    BlankMode
	Image    string
}

// Validate checks everything that can be checked without the drive.
func (o Options) Validate() error {
	if o.Device == "" {
		return errors.New("no device given")
	}
	if o.Speed < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSpeed, o.Speed)
	}
	switch o.Blank {
	case BlankNone, BlankFast, BlankAll:
	default:
		return fmt.Errorf("%w %q (valid: fast, all)", ErrInvalidBlankMode, o.Blank)
	}

	info, err := os.Stat(o.Image)
	if err != nil {
		return issue.WrapWithContext(err, "open image", o.Image)
	}
	if !info.Mode().IsRegular() {
		return issue.WrapWithContext(errors.New("not a regular file"), "open image", o.Image)
	}
	return nil
}

// Commands returns the wodim invocations in the order they run: an optional
// blanking pass followed by the burn itself.
func (o Options) Commands() []runner.Command {
	var cmds []runner.Command
	dev := "dev=" + o.Device

	if o.Blank != BlankNone {
		args := []string{"-v", dev, "blank=" + string(o.Blank)}
		if o.Simulate {
			args = append(args, "-dummy")
		}
		cmds = append(cmds, runner.NewCommand("wodim", args...))
	}

	args := []string{"-v", dev}
	if o.Speed > 0 {
		args = append(args, "speed="+strconv.Itoa(o.Speed))
	}
	args = append(args, "-dao")
	if o.Simulate {
		args = append(args, "-dummy")
	}
	if o.Eject {
		args = append(args, "-eject")
	}
	args = append(args, o.Image)

	return append(cmds, runner.NewCommand("wodim", args...))
}

// Burn validates o and runs the wodim commands, stopping at the first failure.
func Burn(ctx context.Context, r runner.Runner, o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	for _, cmd := range o.Commands() {
		if err := r.Run(ctx, cmd).Err(cmd); err != nil {
			return err
		}
	}
	return nil
}
