package block

import (
	"testing"

	"github.com/arloliu/skmcodec/errs"
	"github.com/arloliu/skmcodec/format"
	"github.com/arloliu/skmcodec/skm"
	"github.com/stretchr/testify/require"
)

func TestHeader_BytesAndParse(t *testing.T) {
	tests := []struct {
		name      string
		bigEndian bool
		want      []byte
	}{
		{
			name: "LittleEndian",
			want: []byte{
				0x10, 0x5C, 0x53, 0x02,
				0x04, 0x03, 0x02, 0x01,
				0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
			},
		},
		{
			name:      "BigEndian",
			bigEndian: true,
			want: []byte{
				0x11, 0x5C, 0x53, 0x02,
				0x01, 0x02, 0x03, 0x04,
				0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeader(skm.MustParams(5, 3), format.CompressionZstd)
			if tt.bigEndian {
				h.WithBigEndian()
			}
			h.Count = 0x01020304
			h.Checksum = 0x0102030405060708

			data := h.Bytes()
			require.Equal(t, tt.want, data)

			parsed, err := ParseHeader(data)
			require.NoError(t, err)
			require.Equal(t, *h, parsed)
			require.Equal(t, tt.bigEndian, parsed.IsBigEndian())
		})
	}
}

func TestHeader_EndiannessToggle(t *testing.T) {
	h := NewHeader(skm.MustParams(4, 4), format.CompressionNone)
	require.False(t, h.IsBigEndian())

	h.WithBigEndian()
	require.True(t, h.IsBigEndian())
	require.Equal(t, uint16(MagicBlockV1), h.Flag&MagicNumberMask)

	h.WithLittleEndian()
	require.False(t, h.IsBigEndian())
	require.Equal(t, uint16(MagicBlockV1), h.Flag)
}

func TestHeader_Parse_WrongSize(t *testing.T) {
	var h Header
	require.ErrorIs(t, h.Parse(make([]byte, HeaderSize+1)), errs.ErrInvalidBlockSize)
}

func TestHeader_ValueAccessors(t *testing.T) {
	h := NewHeader(skm.MustParams(5, 3), format.CompressionNone)
	h.WithBigEndian()

	parsed, err := ParseHeader(h.Bytes())
	require.NoError(t, err)

	// Read-only accessors work on a header returned by value.
	require.True(t, parsed.IsBigEndian())
	require.Equal(t, uint32(0x01020304), parsed.GetEndianEngine().Uint32([]byte{1, 2, 3, 4}))
	require.Equal(t, h.Bytes(), parsed.Bytes())
}
