package pool

import "sync"

// uint8SlicePool recycles codeword scratch slices during block encoding.
var uint8SlicePool = sync.Pool{
	New: func() any { return &[]uint8{} },
}

// GetUint8Slice retrieves and resizes a uint8 slice from the pool.
//
// The returned slice has length size; its contents are unspecified. The caller
// must call the returned cleanup function to return the slice to the pool.
//
// Example:
//
//	codewords, cleanup := pool.GetUint8Slice(len(samples))
//	defer cleanup()
func GetUint8Slice(size int) ([]uint8, func()) {
	return getSlice[uint8](&uint8SlicePool, size)
}

func getSlice[T any](p *sync.Pool, size int) ([]T, func()) {
	ptr, _ := p.Get().(*[]T)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]T, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { p.Put(ptr) }
}
