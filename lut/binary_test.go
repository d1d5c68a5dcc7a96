package lut

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arloliu/skmcodec/errs"
	"github.com/arloliu/skmcodec/format"
	"github.com/arloliu/skmcodec/skm"
	"github.com/stretchr/testify/require"
)

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
	format.CompressionLZMA,
}

func requireSameTable(t *testing.T, want, got *Table) {
	t.Helper()

	require.Equal(t, want.Params(), got.Params())
	require.Equal(t, want.MaxValue(), got.MaxValue())
	require.Equal(t, want.Limit(), got.Limit())
	require.Equal(t, want.Analytic(), got.Analytic())
	require.Equal(t, want.Entries(), got.Entries())
	for c := range 256 {
		require.Equal(t, want.Decode(skm.Codeword(c)), got.Decode(skm.Codeword(c)), "codeword %d", c)
	}
}

func TestBinary_RoundTrip(t *testing.T) {
	swept, err := Build(skm.MustParams(5, 3), DefaultMaxValue)
	require.NoError(t, err)
	partial, err := Build(skm.MustParams(5, 3), 100)
	require.NoError(t, err)
	truncated, err := Build(skm.MustParams(2, 3), 1000)
	require.NoError(t, err)

	tables := map[string]*Table{
		"Swept":     swept,
		"Partial":   partial,
		"Truncated": truncated,
		"Analytic":  Analytic(skm.MustParams(4, 4)),
	}

	for name, table := range tables {
		for _, comp := range allCompressions {
			t.Run(name+"/"+comp.String(), func(t *testing.T) {
				data, err := table.MarshalCompressed(comp)
				require.NoError(t, err)
				require.Equal(t, byte(comp), data[3])

				got, err := Unmarshal(data)
				require.NoError(t, err)
				requireSameTable(t, table, got)
			})
		}
	}
}

func TestBinary_Layout(t *testing.T) {
	table, err := Build(skm.MustParams(5, 3), 20)
	require.NoError(t, err)

	data, err := table.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, HeaderSize+table.Len()*EntrySize)

	require.Equal(t, []byte{0x20, 0x5C}, data[0:2])
	require.Equal(t, byte(0x53), data[2])
	require.Equal(t, byte(format.CompressionNone), data[3])
	require.Equal(t, uint16(18), engine.Uint16(data[4:6]))
	require.Equal(t, uint64(20), engine.Uint64(data[8:16]))
	require.Equal(t, uint64(20), engine.Uint64(data[16:24]))

	// Last entry: codeword 17, run [18, 19], value 18.
	last := data[len(data)-EntrySize:]
	require.Equal(t, byte(17), last[0])
	require.Equal(t, uint32(18), engine.Uint32(last[1:5]))
	require.Equal(t, uint32(19), engine.Uint32(last[5:9]))
	require.Equal(t, uint32(18), engine.Uint32(last[9:13]))

	var decoded Table
	require.NoError(t, decoded.UnmarshalBinary(data))
	requireSameTable(t, table, &decoded)
}

func TestBinary_Corruption(t *testing.T) {
	table, err := Build(skm.MustParams(5, 3), DefaultMaxValue)
	require.NoError(t, err)
	data, err := table.MarshalBinary()
	require.NoError(t, err)

	corrupt := func(mutate func(b []byte) []byte) []byte {
		return mutate(bytes.Clone(data))
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"Empty", nil, errs.ErrInvalidTableSize},
		{"ShortHeader", data[:HeaderSize-1], errs.ErrInvalidTableSize},
		{"BadMagic", corrupt(func(b []byte) []byte { b[1] = 0x00; return b }), errs.ErrInvalidMagic},
		{"ReservedFlag", corrupt(func(b []byte) []byte { b[0] |= 0x02; return b }), errs.ErrInvalidMagic},
		{"BadParams", corrupt(func(b []byte) []byte { b[2] = 0x90; return b }), errs.ErrInvalidParams},
		{"BadCompression", corrupt(func(b []byte) []byte { b[3] = 0x09; return b }), errs.ErrInvalidCompression},
		{"ZeroEntries", corrupt(func(b []byte) []byte { b[4], b[5] = 0, 0; return b }), errs.ErrInvalidTableSize},
		{"TooManyEntries", corrupt(func(b []byte) []byte { b[4], b[5] = 0x01, 0x01; return b }), errs.ErrInvalidTableSize},
		{"TruncatedPayload", data[:len(data)-1], errs.ErrInvalidTableSize},
		{"FlippedPayload", corrupt(func(b []byte) []byte { b[HeaderSize+EntrySize+2] ^= 0x01; return b }), errs.ErrChecksumMismatch},
		{"FlippedChecksum", corrupt(func(b []byte) []byte { b[24] ^= 0x80; return b }), errs.ErrChecksumMismatch},
		{"LimitAboveMax", corrupt(func(b []byte) []byte { b[23] = 0x01; return b }), errs.ErrInvalidTable},
		{"WrongParams", corrupt(func(b []byte) []byte { b[2] = 0x44; return b }), errs.ErrInvalidTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal(tt.data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBinary_RejectsBrokenRuns(t *testing.T) {
	// A payload that checksums correctly but breaks the run structure is
	// still rejected.
	table := newTable(skm.MustParams(5, 3))
	table.appendRun(0, 0, 0)
	table.appendRun(2, 2, 3)
	table.limit = 4
	table.maxValue = 4

	data, err := table.MarshalBinary()
	require.NoError(t, err)

	_, err = Unmarshal(data)
	require.ErrorIs(t, err, errs.ErrInvalidTable)
}

func TestBinary_PayloadLargerThanCount(t *testing.T) {
	table, err := Build(skm.MustParams(5, 3), DefaultMaxValue)
	require.NoError(t, err)

	for _, comp := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionLZMA,
	} {
		t.Run(comp.String(), func(t *testing.T) {
			data, err := table.MarshalCompressed(comp)
			require.NoError(t, err)

			// Ten entries declared, the payload holds the full table.
			data[4], data[5] = 10, 0
			_, err = Unmarshal(data)
			require.ErrorIs(t, err, errs.ErrPayloadTooLarge)
		})
	}
}

func TestBinary_InvalidCompression(t *testing.T) {
	table := Analytic(skm.MustParams(5, 3))
	_, err := table.MarshalCompressed(format.CompressionType(0x42))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestWriteText(t *testing.T) {
	table, err := Build(skm.MustParams(5, 3), 20)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, WriteText(&sb, table))

	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	require.Len(t, lines, 18)
	require.Equal(t, "0:0", lines[0])
	require.Equal(t, "15:15", lines[15])
	require.Equal(t, "16:16", lines[16])
	require.Equal(t, "17:18", lines[17])
}

func TestWritePython(t *testing.T) {
	table, err := Build(skm.MustParams(5, 3), 18)
	require.NoError(t, err)
	require.Equal(t, "_decompression_LUT_SKM_053", PythonName(table))

	var sb strings.Builder
	require.NoError(t, WritePython(&sb, table))

	out := sb.String()
	require.True(t, strings.HasPrefix(out, "_decompression_LUT_SKM_053={\n0:0,\n1:1,\n"))
	require.True(t, strings.HasSuffix(out, "15:15,\n16:16,\n}\n"))
}
