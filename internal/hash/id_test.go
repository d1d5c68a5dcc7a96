package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.id, ID(tt.data))
			require.Equal(t, tt.id, Checksum([]byte(tt.data)))
		})
	}
}

func TestChecksum_DetectsSingleByteChange(t *testing.T) {
	payload := make([]byte, 256)
	for i := range payload {
		payload[i] = byte(i)
	}
	sum := Checksum(payload)

	for i := range payload {
		payload[i] ^= 0x01
		require.NotEqual(t, sum, Checksum(payload), "flip at %d", i)
		payload[i] ^= 0x01
	}
	require.Equal(t, sum, Checksum(payload))
}

func BenchmarkChecksum(b *testing.B) {
	payload := make([]byte, 4096)
	b.SetBytes(int64(len(payload)))
	for b.Loop() {
		Checksum(payload)
	}
}
