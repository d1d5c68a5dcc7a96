package block

import (
	"fmt"
	"iter"

	"github.com/arloliu/skmcodec/compress"
	"github.com/arloliu/skmcodec/errs"
	"github.com/arloliu/skmcodec/internal/hash"
	"github.com/arloliu/skmcodec/internal/options"
	"github.com/arloliu/skmcodec/lut"
	"github.com/arloliu/skmcodec/skm"
)

// Decoder gives read access to the samples of one block.
//
// The block is fully validated by NewDecoder; accessors never fail except
// for out-of-range indices. A Decoder is safe for concurrent reads.
type Decoder struct {
	header    Header
	codewords []byte
	table     *lut.Table
}

// DecoderOption represents a functional option for configuring the Decoder.
type DecoderOption = options.Option[*Decoder]

// WithTable makes the decoder reconstruct values through t instead of the
// analytic reconstructor. t must have been built for the block's parameters.
func WithTable(t *lut.Table) DecoderOption {
	return options.New(func(d *Decoder) error {
		if t == nil {
			return nil
		}
		if t.Params() != d.header.Params {
			return fmt.Errorf("%w: table is %s, block is %s", errs.ErrInvalidParams, t.Params(), d.header.Params)
		}
		d.table = t

		return nil
	})
}

// NewDecoder parses and validates a block.
//
// The header is checked first, then the payload is decompressed and its
// length and checksum are compared with the header.
//
// Parameters:
//   - data: Encoded block; it is not retained
//   - opts: Optional configuration (WithTable)
//
// Returns:
//   - *Decoder: Decoder over the block's samples
//   - error: ErrInvalidBlockSize, ErrInvalidMagic, ErrInvalidParams,
//     ErrInvalidCompression, ErrInvalidSampleCount, ErrPayloadTooLarge or
//     ErrChecksumMismatch
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, err
	}

	payload, err := codec.DecompressLimit(data[HeaderSize:], int(header.Count))
	if err != nil {
		return nil, fmt.Errorf("decompress block payload: %w", err)
	}
	if len(payload) != int(header.Count) {
		return nil, fmt.Errorf("%w: header says %d samples, payload has %d",
			errs.ErrInvalidSampleCount, header.Count, len(payload))
	}
	if hash.Checksum(payload) != header.Checksum {
		return nil, errs.ErrChecksumMismatch
	}

	d := &Decoder{
		header:    header,
		codewords: make([]byte, len(payload)),
	}
	// The no-op codec hands back a view of data.
	copy(d.codewords, payload)

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}
	if d.table == nil {
		d.table = lut.Shared().Analytic(header.Params)
	}

	return d, nil
}

// Header returns the parsed block header.
func (d *Decoder) Header() Header {
	return d.header
}

// Params returns the codec configuration of the block.
func (d *Decoder) Params() skm.Params {
	return d.header.Params
}

// Len returns the number of samples in the block.
func (d *Decoder) Len() int {
	return len(d.codewords)
}

// Codewords returns a copy of the raw codewords.
func (d *Decoder) Codewords() []byte {
	out := make([]byte, len(d.codewords))
	copy(out, d.codewords)

	return out
}

// Values appends the reconstructed samples to dst and returns the extended
// slice.
func (d *Decoder) Values(dst []uint32) []uint32 {
	return d.table.AppendDecoded(dst, d.codewords)
}

// At returns the reconstructed sample at index i.
func (d *Decoder) At(i int) (uint32, error) {
	if i < 0 || i >= len(d.codewords) {
		return 0, fmt.Errorf("%w: %d of %d", errs.ErrIndexOutOfRange, i, len(d.codewords))
	}

	return d.table.Decode(skm.Codeword(d.codewords[i])), nil
}

// All returns an iterator over the sample indices and reconstructed values.
//
// Example:
//
//	for i, v := range dec.All() {
//	    fmt.Println(i, v)
//	}
func (d *Decoder) All() iter.Seq2[int, uint32] {
	return func(yield func(int, uint32) bool) {
		for i, c := range d.codewords {
			if !yield(i, d.table.Decode(skm.Codeword(c))) {
				return
			}
		}
	}
}
