// Package errs defines the sentinel errors shared by the skmcodec packages.
//
// Callers match them with errors.Is; packages wrap them with additional
// context using fmt.Errorf and the %w verb.
package errs

import "errors"

// Codec errors.
var (
	// ErrInvalidParams indicates K > 7, M > 7 or K+M > 8.
	ErrInvalidParams = errors.New("invalid compression parameters: require K <= 7, M <= 7 and K+M <= 8")
	// ErrExponentOverflow indicates the input needs a larger exponent than K bits can hold.
	ErrExponentOverflow = errors.New("exponent overflow: value exceeds encodable range")
	// ErrInvalidCodeword indicates a raw value wider than eight bits was given as a codeword.
	ErrInvalidCodeword = errors.New("invalid codeword: value does not fit in 8 bits")
)

// Lookup table errors.
var (
	ErrInvalidMaxValue  = errors.New("invalid max value: must be greater than zero")
	ErrInvalidTableSize = errors.New("invalid lookup table size")
	ErrInvalidTable     = errors.New("invalid lookup table entry")
)

// Binary container errors.
var (
	ErrInvalidBlockSize   = errors.New("invalid block size")
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrInvalidCompression = errors.New("invalid compression type")
	ErrInvalidSampleCount = errors.New("invalid sample count")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrPayloadTooLarge    = errors.New("decompressed payload exceeds declared size")
)

// Schema errors.
var (
	ErrUnknownPacket     = errors.New("packet has no compression schema")
	ErrUnknownParameter  = errors.New("parameter is not compressed in this packet")
	ErrUnknownGroup      = errors.New("unknown compression schema group")
	ErrMissingSKM        = errors.New("compression schema parameters not yet received")
	ErrSignedUnsupported = errors.New("signed compression schemas are not supported")
)
