// SPDX-License-Identifier: MPL-2.0

package ethframe

import (
	"errors"
	"fmt"
	"os"

	"toolbelt-cli/internal/issue"
)

// ErrUnsupportedPlatform is returned where AF_PACKET sockets do not exist.
var ErrUnsupportedPlatform = errors.New("raw Ethernet frames can only be sent on Linux")

// Send transmits frame count times on the named interface.
func Send(ifname string, frame []byte, count int) error {
	if count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}
	if len(frame) < headerLen {
		return fmt.Errorf("frame too short: %d bytes", len(frame))
	}

	err := send(ifname, frame, count)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrPermission):
		return issue.NewErrorContext().
			WithOperation("open raw socket").
			WithResource(ifname).
			WithSuggestion("Run as root or grant CAP_NET_RAW").
			Wrap(err).
			BuildError()
	case errors.Is(err, ErrUnsupportedPlatform):
		return err
	default:
		return issue.WrapWithContext(err, "send frame", ifname)
	}
}
