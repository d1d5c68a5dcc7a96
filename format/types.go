// Package format defines the small enumerations stored in binary block and
// lookup table headers.
package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/skmcodec/errs"
)

// CompressionType identifies the general-purpose compression applied to a
// codeword or table payload.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores the payload as-is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
	CompressionLZMA CompressionType = 0x5 // CompressionLZMA represents LZMA compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionLZMA:
		return "LZMA"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is a known compression type.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionLZMA
}

// ParseCompressionType parses a case-insensitive compression name such as
// "zstd" or "none".
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(name) {
	case "none", "":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	case "lzma":
		return CompressionLZMA, nil
	default:
		return 0, fmt.Errorf("%w: unknown compression %q", errs.ErrInvalidCompression, name)
	}
}
