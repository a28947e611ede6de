// SPDX-License-Identifier: MPL-2.0

//go:build linux

package ethframe

import (
	"net"

	"golang.org/x/sys/unix"
)

func send(ifname string, frame []byte, count int) error {
	iface, err := net.InterfaceByName(ifname)
	if err != nil {
		return err
	}

	// Protocol 0: the socket only transmits and never receives.
	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, 0)
	if err != nil {
		return err
	}
	defer unix.Close(fd)

	if err := unix.Bind(fd, &unix.SockaddrLinklayer{Ifindex: iface.Index}); err != nil {
		return err
	}

	to := &unix.SockaddrLinklayer{Ifindex: iface.Index, Halen: 6}
	copy(to.Addr[:], frame[:6])
	for range count {
		if err := unix.Sendto(fd, frame, 0, to); err != nil {
			return err
		}
	}
	return nil
}
