// Package skmcodec provides a lossy, fixed-width compression codec that packs
// unsigned 32-bit samples into single-byte codewords.
//
// Each codeword splits into an exponent field of K bits and a mantissa field
// of M bits (K+M <= 8). Small values are stored exactly; larger values keep
// their M most significant bits after the leading one, so the absolute error
// grows with the magnitude while the relative error stays bounded. Decoding
// returns the midpoint of the range of inputs that share a codeword.
//
// # Core Features
//
//   - Allocation-free encode and decode of single samples
//   - Lookup tables built by sweeping the encoder, as used by ground software
//   - Checksummed binary blocks of codewords with optional compression
//     (None, Zstd, S2, LZ4, LZMA)
//   - Compression schema registry for instrument telemetry parameters
//   - Error analysis and configuration recommendation
//
// # Basic Usage
//
// Single samples:
//
//	c := skmcodec.Encode(1000, 5, 3) // raw API, 0xFF on failure
//	v := skmcodec.Decode(c, 5, 3)    // 991, the midpoint of [960, 1023]
//
// Typed configuration with error reporting:
//
//	p, err := skmcodec.NewParams(5, 3)
//	if err != nil {
//	    return err
//	}
//	c, err := p.Encode(sample)
//
// Blocks:
//
//	enc, _ := skmcodec.NewDefaultBlockEncoder(p)
//	data, err := enc.Encode(samples)
//
//	dec, err := skmcodec.NewBlockDecoder(data)
//	values := dec.Values(nil)
//
// # Package Structure
//
// This package provides convenient top-level wrappers. For fine-grained
// control use the skm, lut, block, schema and analysis packages directly.
package skmcodec

import (
	"github.com/arloliu/skmcodec/block"
	"github.com/arloliu/skmcodec/format"
	"github.com/arloliu/skmcodec/lut"
	"github.com/arloliu/skmcodec/skm"
)

var defaultBlockOptions = []block.EncoderOption{
	block.WithLittleEndian(),
	block.WithCompression(format.CompressionZstd),
	block.WithOverflowPolicy(block.OverflowFail),
}

// NewParams validates an exponent width k and mantissa width m.
//
// Returns ErrInvalidParams if k > 7, m > 7 or k+m > 8.
func NewParams(k, m uint8) (skm.Params, error) {
	return skm.NewParams(k, m)
}

// Encode compresses value with raw parameters k and m.
//
// It returns 0xFF when the parameters are invalid or the value overflows
// the exponent field. Some configurations also produce 0xFF legitimately,
// see skm.Params.SentinelCollides.
func Encode(value uint32, k, m uint8) uint8 {
	return skm.EncodeRaw(value, k, m)
}

// Decode reconstructs a value from codeword c with raw parameters k and m.
// It returns 0 when the parameters are invalid.
func Decode(c uint8, k, m uint8) uint32 {
	return skm.DecodeRaw(c, k, m)
}

// BuildLUT builds the lookup table of configuration (k, m) over the inputs
// 0..maxValue-1.
//
// Parameters:
//   - k: Exponent field width
//   - m: Mantissa field width
//   - maxValue: Exclusive upper bound of the sweep, 1..2^32
//
// Returns:
//   - *lut.Table: The lookup table
//   - error: ErrInvalidParams or ErrInvalidMaxValue
//
// Example:
//
//	table, err := skmcodec.BuildLUT(5, 3, 65536)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	lut.WriteText(os.Stdout, table)
func BuildLUT(k, m uint8, maxValue uint64) (*lut.Table, error) {
	return lut.BuildRaw(k, m, maxValue)
}

// NewBlockEncoder creates a block encoder with custom options.
//
// Available options:
//   - block.WithLittleEndian() / block.WithBigEndian()
//   - block.WithCompression(format.CompressionNone|Zstd|S2|LZ4|LZMA)
//   - block.WithOverflowPolicy(block.OverflowFail|OverflowClamp)
func NewBlockEncoder(p skm.Params, opts ...block.EncoderOption) (*block.Encoder, error) {
	return block.NewEncoder(p, opts...)
}

// NewDefaultBlockEncoder creates a block encoder with recommended settings:
// little-endian header, Zstd payload compression and failing on overflow.
func NewDefaultBlockEncoder(p skm.Params) (*block.Encoder, error) {
	return block.NewEncoder(p, defaultBlockOptions...)
}

// NewBlockDecoder parses and validates an encoded block.
//
// Returns an error if the header, payload length or checksum is invalid.
func NewBlockDecoder(data []byte, opts ...block.DecoderOption) (*block.Decoder, error) {
	return block.NewDecoder(data, opts...)
}
