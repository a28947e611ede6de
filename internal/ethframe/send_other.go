// SPDX-License-Identifier: MPL-2.0

//go:build !linux

package ethframe

func send(string, []byte, int) error {
	return ErrUnsupportedPlatform
}
