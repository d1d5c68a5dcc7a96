package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 1024, cap(bb.B))
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	bb.MustWrite([]byte{0x10, 0x11})
	n, err := bb.Write([]byte{0x12})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []byte{0x10, 0x11, 0x12}, bb.Bytes())

	originalCap := cap(bb.B)
	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Equal(t, originalCap, cap(bb.B))
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("no-op with enough capacity", func(t *testing.T) {
		bb := NewByteBuffer(64)
		bb.MustWrite([]byte("abc"))
		bb.Grow(10)
		require.Equal(t, 64, cap(bb.B))
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.MustWrite([]byte("abcdefgh"))
		bb.Grow(1)
		require.Equal(t, 8+BlockBufferDefaultSize, cap(bb.B))
		require.Equal(t, []byte("abcdefgh"), bb.Bytes())
	})

	t.Run("grows to at least the requested size", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(BlockBufferDefaultSize * 3)
		require.GreaterOrEqual(t, cap(bb.B), BlockBufferDefaultSize*3)
	})
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("codewords"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(9), n)
	require.Equal(t, "codewords", out.String())
}

func TestByteBufferPool(t *testing.T) {
	t.Run("returned buffers are empty", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		bb := p.Get()
		bb.MustWrite([]byte("data"))
		p.Put(bb)

		again := p.Get()
		require.Equal(t, 0, again.Len())
	})

	t.Run("oversized buffers are dropped", func(t *testing.T) {
		p := NewByteBufferPool(32, 64)
		bb := p.Get()
		bb.Grow(1024)
		require.NotPanics(t, func() { p.Put(bb) })
	})

	t.Run("nil put is ignored", func(t *testing.T) {
		p := NewByteBufferPool(32, 64)
		require.NotPanics(t, func() { p.Put(nil) })
	})

	t.Run("default pools", func(t *testing.T) {
		bb := GetBlockBuffer()
		require.GreaterOrEqual(t, cap(bb.B), BlockBufferDefaultSize)
		PutBlockBuffer(bb)

		tb := GetTableBuffer()
		require.GreaterOrEqual(t, cap(tb.B), TableBufferDefaultSize)
		PutTableBuffer(tb)
	})

	t.Run("concurrent use", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				bb := GetBlockBuffer()
				bb.MustWrite([]byte{byte(i)})
				PutBlockBuffer(bb)
			}()
		}
		wg.Wait()
	})
}
