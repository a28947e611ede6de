// SPDX-License-Identifier: MPL-2.0

// Package ethframe builds raw Ethernet II frames and sends them on a link.
package ethframe

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/crc32"
	"net"
	"strconv"
	"strings"
)

const (
	headerLen     = 14
	minPayloadLen = 46
	// MaxPayloadLen is the standard Ethernet MTU.
	MaxPayloadLen = 1500

	// DefaultEtherType is the value the test frames have always carried.
	DefaultEtherType uint16 = 0x0801
	// DefaultPayloadByte fills the default payload.
	DefaultPayloadByte byte = 'P'
	// DefaultPayloadLen is the length of the default payload.
	DefaultPayloadLen = 100
)

// DefaultMAC is used for both addresses unless overridden.
var DefaultMAC = net.HardwareAddr{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}

var (
	ErrInvalidMAC       = errors.New("invalid MAC address")
	ErrInvalidEtherType = errors.New("invalid ethertype")
	ErrInvalidPayload   = errors.New("invalid payload")
)

// Frame is an Ethernet II frame without preamble.
type Frame struct {
	Dst       net.HardwareAddr
	Src       net.HardwareAddr
	EtherType uint16
	Payload   []byte
}

// DefaultFrame returns the classic test frame: 100 'P' bytes between
// 01:02:03:04:05:06 and itself with ethertype 0x0801.
func DefaultFrame() Frame {
	return Frame{
		Dst:       DefaultMAC,
		Src:       DefaultMAC,
		EtherType: DefaultEtherType,
		Payload:   FillPayload(DefaultPayloadByte, DefaultPayloadLen),
	}
}

// Validate checks address lengths and payload size.
func (f Frame) Validate() error {
	if len(f.Dst) != 6 {
		return fmt.Errorf("%w: destination %s is not EUI-48", ErrInvalidMAC, f.Dst)
	}
	if len(f.Src) != 6 {
		return fmt.Errorf("%w: source %s is not EUI-48", ErrInvalidMAC, f.Src)
	}
	if len(f.Payload) > MaxPayloadLen {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidPayload, len(f.Payload), MaxPayloadLen)
	}
	return nil
}

// Bytes serializes the frame. pad extends the payload with zeros to the
// 46-byte minimum; fcs appends the CRC-32 frame check sequence, least
// significant byte first.
func (f Frame) Bytes(pad, fcs bool) []byte {
	payloadLen := len(f.Payload)
	if pad && payloadLen < minPayloadLen {
		payloadLen = minPayloadLen
	}

	buf := make([]byte, 0, headerLen+payloadLen+4)
	buf = append(buf, f.Dst...)
	buf = append(buf, f.Src...)
	buf = binary.BigEndian.AppendUint16(buf, f.EtherType)
	buf = append(buf, f.Payload...)
	for len(buf) < headerLen+payloadLen {
		buf = append(buf, 0)
	}
	if fcs {
		buf = binary.LittleEndian.AppendUint32(buf, crc32.ChecksumIEEE(buf))
	}
	return buf
}

// ParseMAC parses an EUI-48 address in any notation net.ParseMAC accepts.
func ParseMAC(s string) (net.HardwareAddr, error) {
	mac, err := net.ParseMAC(s)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidMAC, s, err)
	}
	if len(mac) != 6 {
		return nil, fmt.Errorf("%w %q: not EUI-48", ErrInvalidMAC, s)
	}
	return mac, nil
}

// ParseEtherType accepts decimal or 0x-prefixed hex values up to 0xFFFF.
func ParseEtherType(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("%w %q: must fit in 16 bits", ErrInvalidEtherType, s)
	}
	return uint16(v), nil
}

// ParseHexPayload decodes hex digits, ignoring spaces, colons and dashes.
func ParseHexPayload(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ':', '-', '\t', '\n':
			return -1
		}
		return r
	}, s)
	clean = strings.TrimPrefix(strings.TrimPrefix(clean, "0x"), "0X")
	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return b, nil
}

// ParseFillByte accepts a number (80, 0x50) or a single character (P).
func ParseFillByte(s string) (byte, error) {
	if v, err := strconv.ParseUint(s, 0, 8); err == nil {
		return byte(v), nil
	}
	if len(s) == 1 {
		return s[0], nil
	}
	return 0, fmt.Errorf("%w: fill byte %q", ErrInvalidPayload, s)
}

// FillPayload returns n copies of b.
func FillPayload(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

// Dump renders a frame as a canonical hex dump.
func Dump(frame []byte) string {
	return hex.Dump(frame)
}
