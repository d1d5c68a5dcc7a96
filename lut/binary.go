package lut

import (
	"fmt"

	"github.com/arloliu/skmcodec/compress"
	"github.com/arloliu/skmcodec/endian"
	"github.com/arloliu/skmcodec/errs"
	"github.com/arloliu/skmcodec/format"
	"github.com/arloliu/skmcodec/internal/hash"
	"github.com/arloliu/skmcodec/internal/pool"
	"github.com/arloliu/skmcodec/skm"
)

// Binary layout, little-endian:
//
//	offset 0-1   flag word: magic in bits 4-15, bit 0 = analytic table
//	offset 2     packed params K<<4 | M
//	offset 3     payload compression type
//	offset 4-5   entry count
//	offset 6-7   reserved, zero
//	offset 8-15  max value (exclusive sweep bound)
//	offset 16-23 limit (first uncovered input)
//	offset 24-31 xxHash64 of the uncompressed entry payload
//
// The payload holds EntrySize bytes per entry: codeword, first, last, value.
const (
	HeaderSize = 32
	EntrySize  = 13

	MagicTableV1  = 0x5C20
	magicMask     = 0xFFF0
	flagAnalytic  = 0x0001
	reservedFlags = 0x000E
)

var engine = endian.GetLittleEndianEngine()

// MarshalBinary encodes the table without payload compression.
func (t *Table) MarshalBinary() ([]byte, error) {
	return t.MarshalCompressed(format.CompressionNone)
}

// MarshalCompressed encodes the table and compresses the entry payload with
// the given algorithm.
func (t *Table) MarshalCompressed(comp format.CompressionType) ([]byte, error) {
	codec, err := compress.CreateCodec(comp, "table payload")
	if err != nil {
		return nil, err
	}

	payload := pool.GetTableBuffer()
	defer pool.PutTableBuffer(payload)

	payload.Grow(len(t.entries) * EntrySize)
	for _, e := range t.entries {
		payload.B = append(payload.B, byte(e.Codeword))
		payload.B = engine.AppendUint32(payload.B, e.First)
		payload.B = engine.AppendUint32(payload.B, e.Last)
		payload.B = engine.AppendUint32(payload.B, e.Value)
	}

	packed, err := codec.Compress(payload.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress table payload: %w", err)
	}

	flag := uint16(MagicTableV1)
	if t.analytic {
		flag |= flagAnalytic
	}

	out := make([]byte, 0, HeaderSize+len(packed))
	out = engine.AppendUint16(out, flag)
	out = append(out, t.params.Byte(), byte(comp))
	out = engine.AppendUint16(out, uint16(len(t.entries)))
	out = engine.AppendUint16(out, 0)
	out = engine.AppendUint64(out, t.maxValue)
	out = engine.AppendUint64(out, t.limit)
	out = engine.AppendUint64(out, hash.Checksum(payload.Bytes()))
	out = append(out, packed...)

	return out, nil
}

// UnmarshalBinary decodes a table produced by MarshalBinary or
// MarshalCompressed into t.
func (t *Table) UnmarshalBinary(data []byte) error {
	parsed, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*t = *parsed

	return nil
}

// Unmarshal decodes and validates a binary table.
//
// Returns:
//   - *Table: The decoded table
//   - error: ErrInvalidTableSize, ErrInvalidMagic, ErrInvalidParams,
//     ErrInvalidCompression, ErrChecksumMismatch or ErrInvalidTable
func Unmarshal(data []byte) (*Table, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidTableSize, len(data))
	}

	flag := engine.Uint16(data[0:2])
	if flag&magicMask != MagicTableV1 || flag&reservedFlags != 0 {
		return nil, fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagic, flag)
	}

	p, err := skm.ParamsFromByte(data[2])
	if err != nil {
		return nil, err
	}

	comp := format.CompressionType(data[3])
	codec, err := compress.GetCodec(comp)
	if err != nil {
		return nil, err
	}

	count := int(engine.Uint16(data[4:6]))
	if count == 0 || count > codewordCount {
		return nil, fmt.Errorf("%w: %d entries", errs.ErrInvalidTableSize, count)
	}

	maxValue := engine.Uint64(data[8:16])
	limit := engine.Uint64(data[16:24])
	checksum := engine.Uint64(data[24:32])
	if maxValue == 0 || maxValue > MaxDomain || limit > maxValue {
		return nil, fmt.Errorf("%w: max value %d, limit %d", errs.ErrInvalidTable, maxValue, limit)
	}

	payload, err := codec.DecompressLimit(data[HeaderSize:], count*EntrySize)
	if err != nil {
		return nil, fmt.Errorf("decompress table payload: %w", err)
	}
	if len(payload) != count*EntrySize {
		return nil, fmt.Errorf("%w: payload %d bytes for %d entries", errs.ErrInvalidTableSize, len(payload), count)
	}
	if hash.Checksum(payload) != checksum {
		return nil, errs.ErrChecksumMismatch
	}

	t := newTable(p)
	t.analytic = flag&flagAnalytic != 0
	t.maxValue = maxValue
	t.limit = limit

	for off := 0; off < len(payload); off += EntrySize {
		c := skm.Codeword(payload[off])
		if t.index[c] >= 0 {
			return nil, fmt.Errorf("%w: duplicate codeword %d", errs.ErrInvalidTable, c)
		}
		first := engine.Uint32(payload[off+1 : off+5])
		last := engine.Uint32(payload[off+5 : off+9])
		value := engine.Uint32(payload[off+9 : off+13])
		if !encodesTo(p, first, c) || !encodesTo(p, last, c) {
			return nil, fmt.Errorf("%w: codeword %d does not encode run [%d, %d] under %s",
				errs.ErrInvalidTable, c, first, last, p)
		}

		t.appendRun(c, first, last)
		if t.entries[len(t.entries)-1].Value != value {
			return nil, fmt.Errorf("%w: codeword %d value %d is not the run midpoint", errs.ErrInvalidTable, c, value)
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

func encodesTo(p skm.Params, v uint32, c skm.Codeword) bool {
	got, err := p.Encode(v)

	return err == nil && got == c
}
