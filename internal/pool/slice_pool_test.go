package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetUint8Slice_Sizes(t *testing.T) {
	t.Run("returns slice with correct size", func(t *testing.T) {
		slice, cleanup := GetUint8Slice(100)
		defer cleanup()

		require.Len(t, slice, 100)
		require.GreaterOrEqual(t, cap(slice), 100)
	})

	t.Run("allocates new slice when capacity insufficient", func(t *testing.T) {
		_, cleanup1 := GetUint8Slice(10)
		cleanup1()

		slice, cleanup2 := GetUint8Slice(1000)
		defer cleanup2()

		require.Len(t, slice, 1000)
	})

	t.Run("zero size", func(t *testing.T) {
		slice, cleanup := GetUint8Slice(0)
		defer cleanup()

		require.Empty(t, slice)
	})
}

func TestGetUint8Slice(t *testing.T) {
	slice, cleanup := GetUint8Slice(256)
	require.Len(t, slice, 256)
	for i := range slice {
		slice[i] = byte(i)
	}
	cleanup()

	again, cleanup := GetUint8Slice(16)
	defer cleanup()
	require.Len(t, again, 16)
}
