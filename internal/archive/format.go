// SPDX-License-Identifier: MPL-2.0

// Package archive unpacks archives into fresh directories, either through the
// usual external tools (tar, unzip, 7z, unrar, gzip, ...) or in-process.
package archive

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned when no known suffix matches.
var ErrUnsupportedFormat = errors.New("unsupported archive format")

// Container is the outer archive layout.
type Container int

const (
	// ContainerNone is a single compressed file (foo.txt.gz).
	ContainerNone Container = iota
	ContainerTar
	ContainerZip
	Container7z
	ContainerRar
)

// Compression is the stream compression wrapped around the container.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionBzip2
	CompressionXz
	CompressionZstd
)

// Format describes one recognized archive type.
type Format struct {
	Name        string
	Container   Container
	Compression Compression
	// Suffixes are lower-case and include the leading dot.
	Suffixes []string
}

// formats is ordered so that compound suffixes are tried before their tails.
var formats = []Format{
	{Name: "tar.gz", Container: ContainerTar, Compression: CompressionGzip, Suffixes: []string{".tar.gz", ".tgz"}},
	{Name: "tar.bz2", Container: ContainerTar, Compression: CompressionBzip2, Suffixes: []string{".tar.bz2", ".tbz2", ".tbz"}},
	{Name: "tar.xz", Container: ContainerTar, Compression: CompressionXz, Suffixes: []string{".tar.xz", ".txz"}},
	{Name: "tar.zst", Container: ContainerTar, Compression: CompressionZstd, Suffixes: []string{".tar.zst", ".tzst"}},
	{Name: "tar", Container: ContainerTar, Suffixes: []string{".tar"}},
	{Name: "zip", Container: ContainerZip, Suffixes: []string{".zip", ".jar"}},
	{Name: "7z", Container: Container7z, Suffixes: []string{".7z"}},
	{Name: "rar", Container: ContainerRar, Suffixes: []string{".rar"}},
	{Name: "gz", Compression: CompressionGzip, Suffixes: []string{".gz"}},
	{Name: "bz2", Compression: CompressionBzip2, Suffixes: []string{".bz2"}},
	{Name: "xz", Compression: CompressionXz, Suffixes: []string{".xz"}},
	{Name: "zst", Compression: CompressionZstd, Suffixes: []string{".zst"}},
}

// SupportedSuffixes lists every recognized suffix in detection order.
func SupportedSuffixes() []string {
	var out []string
	for _, f := range formats {
		out = append(out, f.Suffixes...)
	}
	return out
}

// Detect picks the format from the file name and returns it together with the
// base name stripped of the matched suffix. Matching is case-insensitive and
// the longest matching suffix wins.
func Detect(path string) (Format, string, error) {
	name := filepath.Base(path)
	lower := strings.ToLower(name)

	var (
		best       Format
		bestSuffix string
	)
	for _, f := range formats {
		for _, sfx := range f.Suffixes {
			if strings.HasSuffix(lower, sfx) && len(sfx) > len(bestSuffix) && len(lower) > len(sfx) {
				best, bestSuffix = f, sfx
			}
		}
	}
	if bestSuffix == "" {
		return Format{}, "", fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, name, strings.Join(SupportedSuffixes(), " "))
	}

	return best, name[:len(name)-len(bestSuffix)], nil
}

// SupportsNative reports whether the format can be extracted without tools.
func (f Format) SupportsNative() bool {
	switch f.Container {
	case ContainerTar, ContainerNone:
		return f.Compression != CompressionXz
	case ContainerZip:
		return true
	default:
		return false
	}
}

// decompressTool returns the external decompressor for single-file formats.
func (c Compression) decompressTool() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionXz:
		return "xz"
	case CompressionZstd:
		return "zstd"
	default:
		return ""
	}
}
