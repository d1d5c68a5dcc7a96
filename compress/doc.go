// Package compress provides the general-purpose codecs applied to codeword
// and lookup table payloads after quantization.
//
// Quantization already packs every sample into one byte. Science payloads
// (spectra, light curves, trigger accumulators) still carry long runs of
// small or repeated codewords, so a second, lossless stage often pays off
// before storage or transmission:
//
//  1. **Quantization**: the skm codec maps each sample to a codeword (lossy)
//  2. **Compression**: a codec from this package shrinks the codeword payload (lossless)
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	    DecompressLimit(data []byte, limit int) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): payload stored as-is
//   - Zstd (format.CompressionZstd): best ratio; pure Go by default, cgo
//     gozstd with the "gozstd" build tag
//   - S2 (format.CompressionS2): fast with a good ratio
//   - LZ4 (format.CompressionLZ4): fastest decompression
//   - LZMA (format.CompressionLZMA): highest ratio for archival tables,
//     slowest
//
// Select a codec by type:
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "block payload")
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(codewords)
//
// # Thread Safety
//
// All codecs are stateless values backed by pooled encoders and are safe for
// concurrent use.
package compress
