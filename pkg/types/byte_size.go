// SPDX-License-Identifier: MPL-2.0

package types

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// ParseByteSize parses a size the way dd, truncate and the kernel docs write
// them: a bare K, M, G, T, P or E suffix is a power of 1024 ("4M" is 4 MiB).
// Explicit units keep their meaning, so "4MB" is 4,000,000 and "4MiB" is
// 4,194,304.
func ParseByteSize(s string) (uint64, error) {
	return humanize.ParseBytes(binarySuffix(strings.TrimSpace(s)))
}

func binarySuffix(s string) string {
	if s == "" {
		return s
	}
	last := s[len(s)-1]
	if !strings.ContainsRune("kKmMgGtTpPeE", rune(last)) {
		return s
	}
	rest := strings.TrimRight(s[:len(s)-1], " ")
	if rest == "" || !isDigit(rest[len(rest)-1]) {
		return s
	}
	return s + "iB"
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
