package block

import (
	"fmt"

	"github.com/arloliu/skmcodec/endian"
	"github.com/arloliu/skmcodec/errs"
	"github.com/arloliu/skmcodec/format"
	"github.com/arloliu/skmcodec/skm"
)

const (
	// Bit masks of the flag word
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0), 0=little, 1=big
	ReservedBitsMask = 0x000E // Mask for reserved bits (bits 1-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicBlockV1 is the version 1 magic number of the codeword block format.
	MagicBlockV1 = 0x5C10

	// HeaderSize is the fixed header size in bytes.
	HeaderSize = 16

	// MaxSampleCount is the largest number of samples a single block may hold.
	MaxSampleCount = 1 << 30
)

// Header is the fixed-size header at the start of a codeword block.
type Header struct {
	// Flag packs the magic number and the byte order of the rest of the
	// block. It is always stored little-endian.
	Flag uint16 // byte offset 0-1
	// Params is the codec configuration, stored as K<<4 | M.
	Params skm.Params // byte offset 2
	// Compression is the algorithm applied to the codeword payload.
	Compression format.CompressionType // byte offset 3
	// Count is the number of samples, one codeword each.
	Count uint32 // byte offset 4-7
	// Checksum is the xxHash64 of the uncompressed codeword payload.
	Checksum uint64 // byte offset 8-15
}

// NewHeader creates a little-endian header for the given configuration.
// Count and Checksum are set by the encoder.
func NewHeader(p skm.Params, compression format.CompressionType) *Header {
	return &Header{
		Flag:        MagicBlockV1,
		Params:      p,
		Compression: compression,
	}
}

// IsBigEndian reports whether the count and checksum are stored big-endian.
func (h Header) IsBigEndian() bool {
	return h.Flag&EndiannessMask != 0
}

// WithLittleEndian sets little-endian byte order.
func (h *Header) WithLittleEndian() {
	h.Flag &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (h *Header) WithBigEndian() {
	h.Flag |= EndiannessMask
}

// GetEndianEngine returns the engine matching the header's byte order.
func (h Header) GetEndianEngine() endian.EndianEngine {
	if h.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 16 bytes)
//
// Returns:
//   - error: ErrInvalidBlockSize, ErrInvalidMagic, ErrInvalidParams,
//     ErrInvalidCompression or ErrInvalidSampleCount
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: header is %d bytes", errs.ErrInvalidBlockSize, len(data))
	}

	// The flag word decides the byte order of everything after it.
	h.Flag = uint16(data[0]) | uint16(data[1])<<8
	if h.Flag&MagicNumberMask != MagicBlockV1 || h.Flag&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagic, h.Flag)
	}

	p, err := skm.ParamsFromByte(data[2])
	if err != nil {
		return err
	}
	h.Params = p

	h.Compression = format.CompressionType(data[3])
	if !h.Compression.Valid() {
		return fmt.Errorf("%w: 0x%02x", errs.ErrInvalidCompression, data[3])
	}

	engine := h.GetEndianEngine()
	h.Count = engine.Uint32(data[4:8])
	h.Checksum = engine.Uint64(data[8:16])

	if h.Count > MaxSampleCount {
		return fmt.Errorf("%w: %d", errs.ErrInvalidSampleCount, h.Count)
	}

	return nil
}

// Bytes serializes the header into a new byte slice.
func (h Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to dst.
func (h Header) AppendTo(dst []byte) []byte {
	engine := h.GetEndianEngine()

	dst = append(dst, byte(h.Flag), byte(h.Flag>>8), h.Params.Byte(), byte(h.Compression))
	dst = engine.AppendUint32(dst, h.Count)
	dst = engine.AppendUint64(dst, h.Checksum)

	return dst
}

// ParseHeader parses a Header from the start of a block.
//
// Parameters:
//   - data: Byte slice starting with a header (must be at least 16 bytes)
//
// Returns:
//   - Header: Parsed header
//   - error: ErrInvalidBlockSize or header validation errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", errs.ErrInvalidBlockSize, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
