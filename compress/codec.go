package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/skmcodec/errs"
	"github.com/arloliu/skmcodec/format"
)

// Compressor compresses a codeword or table payload.
//
// Memory management:
//   - Returned slice is owned by the caller (NoOp returns the input itself)
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
//
// It returns an error if the input is corrupted or was produced by a
// different algorithm.
//
// DecompressLimit stops once the output would exceed limit bytes and returns
// ErrPayloadTooLarge, so a small hostile input cannot expand without bound.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
	DecompressLimit(data []byte, limit int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, LZ4 or LZMA)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: ErrInvalidCompression for an unknown type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionLZMA:
		return NewLZMACompressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s compression %s", errs.ErrInvalidCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionLZMA: NewLZMACompressor(),
}

// tooLarge reports an output that grew past limit.
func tooLarge(limit int) error {
	return fmt.Errorf("%w: more than %d bytes", errs.ErrPayloadTooLarge, limit)
}

// readLimited drains r, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		return nil, tooLarge(limit)
	}

	return out, nil
}

// GetCodec retrieves the shared built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}
