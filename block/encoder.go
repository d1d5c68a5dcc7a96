package block

import (
	"fmt"

	"github.com/arloliu/skmcodec/compress"
	"github.com/arloliu/skmcodec/endian"
	"github.com/arloliu/skmcodec/errs"
	"github.com/arloliu/skmcodec/format"
	"github.com/arloliu/skmcodec/internal/hash"
	"github.com/arloliu/skmcodec/internal/options"
	"github.com/arloliu/skmcodec/internal/pool"
	"github.com/arloliu/skmcodec/skm"
)

// OverflowPolicy decides what the encoder does with a sample that needs more
// exponent bits than the configuration has.
type OverflowPolicy uint8

const (
	// OverflowFail aborts the block with an *EncodeError. It is the default.
	OverflowFail OverflowPolicy = iota
	// OverflowClamp encodes the largest encodable value instead.
	OverflowClamp
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowFail:
		return "fail"
	case OverflowClamp:
		return "clamp"
	default:
		return "unknown"
	}
}

// EncodeError reports the first sample of a block that could not be encoded.
type EncodeError struct {
	// Index is the position of the sample in the input.
	Index int
	// Value is the rejected sample.
	Value uint32
	// Err is the underlying codec error.
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("sample %d (value %d): %v", e.Index, e.Value, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Encoder packs sample batches into codeword blocks.
//
// An Encoder holds only immutable configuration once created and is safe for
// concurrent use.
type Encoder struct {
	header   *Header
	codec    compress.Codec
	overflow OverflowPolicy
}

// EncoderOption represents a functional option for configuring the Encoder.
type EncoderOption = options.Option[*Encoder]

// WithCompression sets the algorithm applied to the codeword payload.
// The default is format.CompressionNone.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(e *Encoder) error {
		codec, err := compress.CreateCodec(comp, "block payload")
		if err != nil {
			return err
		}
		e.header.Compression = comp
		e.codec = codec

		return nil
	})
}

// WithLittleEndian sets the encoder to use little-endian byte order.
// It is the default option.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.WithLittleEndian()
	})
}

// WithBigEndian sets the encoder to use big-endian byte order for the header
// fields after the flag word.
func WithBigEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.WithBigEndian()
	})
}

// WithNativeEndian sets the encoder to use the host's byte order.
func WithNativeEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		if endian.IsNativeLittleEndian() {
			e.header.WithLittleEndian()
		} else {
			e.header.WithBigEndian()
		}
	})
}

// WithOverflowPolicy sets how samples above Params.MaxEncodable are handled.
func WithOverflowPolicy(policy OverflowPolicy) EncoderOption {
	return options.New(func(e *Encoder) error {
		switch policy {
		case OverflowFail, OverflowClamp:
			e.overflow = policy
			return nil
		default:
			return fmt.Errorf("invalid overflow policy: %d", policy)
		}
	})
}

// NewEncoder creates a block encoder for the given configuration.
//
// Parameters:
//   - p: Codec configuration
//   - opts: Optional configuration (compression, byte order, overflow policy)
//
// Returns:
//   - *Encoder: The configured encoder
//   - error: ErrInvalidCompression or an invalid option
//
// Example:
//
//	enc, err := block.NewEncoder(skm.MustParams(5, 3),
//	    block.WithCompression(format.CompressionZstd),
//	)
//	data, err := enc.Encode(samples)
func NewEncoder(p skm.Params, opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		header:   NewHeader(p, format.CompressionNone),
		codec:    compress.NewNoOpCompressor(),
		overflow: OverflowFail,
	}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Params returns the codec configuration of the encoder.
func (e *Encoder) Params() skm.Params {
	return e.header.Params
}

// Compression returns the payload compression of the encoder.
func (e *Encoder) Compression() format.CompressionType {
	return e.header.Compression
}

// Encode compresses every sample into a codeword and returns the finished
// block.
//
// Returns:
//   - []byte: The encoded block, owned by the caller
//   - error: *EncodeError wrapping ErrExponentOverflow under OverflowFail,
//     ErrInvalidSampleCount, or a payload compression error
func (e *Encoder) Encode(samples []uint32) ([]byte, error) {
	if len(samples) > MaxSampleCount {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidSampleCount, len(samples))
	}

	p := e.header.Params
	codewords, cleanup := pool.GetUint8Slice(len(samples))
	defer cleanup()

	for i, v := range samples {
		c, err := p.Encode(v)
		if err != nil {
			if e.overflow != OverflowClamp {
				return nil, &EncodeError{Index: i, Value: v, Err: err}
			}
			c, err = p.Encode(p.MaxEncodable())
			if err != nil {
				return nil, &EncodeError{Index: i, Value: v, Err: err}
			}
		}
		codewords[i] = uint8(c)
	}

	return e.encodeCodewords(codewords)
}

// EncodeCodewords packs already compressed codewords into a block without
// re-encoding them.
func (e *Encoder) EncodeCodewords(codewords []byte) ([]byte, error) {
	if len(codewords) > MaxSampleCount {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidSampleCount, len(codewords))
	}

	return e.encodeCodewords(codewords)
}

func (e *Encoder) encodeCodewords(codewords []byte) ([]byte, error) {
	payload, err := e.codec.Compress(codewords)
	if err != nil {
		return nil, fmt.Errorf("compress block payload: %w", err)
	}

	header := *e.header
	header.Count = uint32(len(codewords))
	header.Checksum = hash.Checksum(codewords)

	buf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(buf)

	buf.Grow(HeaderSize + len(payload))
	buf.B = header.AppendTo(buf.B)
	buf.MustWrite(payload)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}
