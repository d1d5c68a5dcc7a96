package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 of a codeword or table payload.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ID computes the xxHash64 of the given identifier, such as a telemetry
// parameter name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}
