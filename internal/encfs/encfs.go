// SPDX-License-Identifier: MPL-2.0

// Package encfs mounts and unmounts EncFS encrypted directories.
package encfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"toolbelt-cli/internal/issue"
	"toolbelt-cli/internal/runner"
)

var (
	// ErrMountPointNotEmpty is returned when files would be hidden by the mount.
	ErrMountPointNotEmpty = errors.New("mount point is not empty")
	// ErrInvalidIdle is returned for non-positive idle timeouts.
	ErrInvalidIdle = errors.New("idle minutes must be a positive integer")
)

// MountCommand builds the encfs invocation. idle of 0 disables the timeout.
func MountCommand(cipherDir, mountPoint string, idle int) runner.Command {
	var args []string
	if idle > 0 {
		args = append(args, "--idle="+strconv.Itoa(idle))
	}
	return runner.NewCommand("encfs", append(args, cipherDir, mountPoint)...)
}

// UmountCommand unmounts a FUSE mount point.
func UmountCommand(mountPoint string) runner.Command {
	return runner.NewCommand("fusermount", "-u", mountPoint)
}

// Mount validates the directories and runs encfs with the terminal attached
// so it can prompt for the password. idle < 0 is rejected; 0 means no timeout.
func Mount(ctx context.Context, r runner.Runner, cipherDir, mountPoint string, idle int) error {
	if idle < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIdle, idle)
	}
	if err := requireDir(cipherDir); err != nil {
		return err
	}
	if err := requireDir(mountPoint); err != nil {
		return err
	}
	empty, err := isEmpty(mountPoint)
	if err != nil {
		return issue.WrapWithContext(err, "inspect mount point", mountPoint)
	}
	if !empty {
		return issue.NewErrorContext().
			WithOperation("mount encfs").
			WithResource(mountPoint).
			WithSuggestion("Check whether it is already mounted: mount | grep " + mountPoint).
			WithSuggestion("Use an empty directory as mount point").
			Wrap(ErrMountPointNotEmpty).
			BuildError()
	}

	cmd := MountCommand(cipherDir, mountPoint, idle)
	return r.Run(ctx, cmd).Err(cmd)
}

// Umount runs fusermount -u.
func Umount(ctx context.Context, r runner.Runner, mountPoint string) error {
	if err := requireDir(mountPoint); err != nil {
		return err
	}
	cmd := UmountCommand(mountPoint)
	return r.Run(ctx, cmd).Err(cmd)
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return issue.WrapWithContext(err, "open directory", path)
	}
	if !info.IsDir() {
		return issue.WrapWithContext(errors.New("not a directory"), "open directory", path)
	}
	return nil
}

func isEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}
