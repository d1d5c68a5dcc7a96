package compress

// ZstdCompressor compresses payloads with Zstandard.
//
// The default build uses the pure Go klauspost/compress implementation.
// Building with cgo and the "gozstd" tag switches to the libzstd bindings
// from valyala/gozstd; both produce standard zstd frames and interoperate.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
//
// Example:
//
//	codec := NewZstdCompressor()
//	packed, err := codec.Compress(codewords)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
