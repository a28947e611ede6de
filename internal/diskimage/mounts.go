// SPDX-License-Identifier: MPL-2.0

package diskimage

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Mount is one line of a mount table.
type Mount struct {
	Source string
	Target string
	FSType string
}

var (
	partitionSuffix = regexp.MustCompile(`^[0-9]+$`)
	// Devices whose name ends in a digit (nvme0n1, mmcblk0, loop1) separate
	// the partition number with a p.
	partitionSuffixP = regexp.MustCompile(`^p[0-9]+$`)
)

// ParseMounts reads the /proc/self/mounts format. Octal escapes such as \040
// for spaces are decoded.
func ParseMounts(r io.Reader) ([]Mount, error) {
	var mounts []Mount
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}
		mounts = append(mounts, Mount{
			Source: unescapeMountField(fields[0]),
			Target: unescapeMountField(fields[1]),
			FSType: fields[2],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read mount table: %w", err)
	}
	return mounts, nil
}

// MountsOf returns the mounts whose source is device or one of its
// partitions (sdb1 for sdb, nvme0n1p2 for nvme0n1).
func MountsOf(mounts []Mount, device string) []Mount {
	suffix := partitionSuffix
	if device != "" && device[len(device)-1] >= '0' && device[len(device)-1] <= '9' {
		suffix = partitionSuffixP
	}
	var out []Mount
	for _, m := range mounts {
		if m.Source == device {
			out = append(out, m)
			continue
		}
		if rest, ok := strings.CutPrefix(m.Source, device); ok && suffix.MatchString(rest) {
			out = append(out, m)
		}
	}
	return out
}

func unescapeMountField(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+4 <= len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
