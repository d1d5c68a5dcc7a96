// Package endian provides the byte order abstraction used by the block and
// lookup table binary formats.
//
// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so that
// encoders can append fixed-width fields directly to a buffer:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, sampleCount)
//
// Little-endian is the default for every format in this module; big-endian is
// available for ground segments that expect network byte order.
//
// All functions are safe for concurrent use; engines are stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness returns the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100: a little-endian host stores the low byte (0x00) first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
