package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// LZMACompressor compresses payloads as classic LZMA streams.
//
// LZMA gives the best ratio of the built-in codecs at a much higher CPU cost;
// it suits lookup tables and archived blocks that are written once.
type LZMACompressor struct{}

var _ Codec = (*LZMACompressor)(nil)

// NewLZMACompressor creates a new LZMA codec.
func NewLZMACompressor() LZMACompressor {
	return LZMACompressor{}
}

// Compress compresses the input data into an LZMA stream with an end marker.
func (c LZMACompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("lzma writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lzma compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lzma compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an LZMA stream.
func (c LZMACompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("lzma reader: %w", err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lzma decompression failed: %w", err)
	}

	return out, nil
}

// DecompressLimit decompresses an LZMA stream, reading at most limit+1
// bytes of output.
func (c LZMACompressor) DecompressLimit(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("lzma reader: %w", err)
	}

	out, err := readLimited(r, limit)
	if err != nil {
		return nil, fmt.Errorf("lzma decompression failed: %w", err)
	}

	return out, nil
}
