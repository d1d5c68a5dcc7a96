// Package skm implements the byte-width quantization codec used to pack wide
// unsigned instrument samples into a single byte.
//
// The scheme is floating-point-like. A configuration (Params) splits the
// 8-bit codeword into an exponent field of K bits and a mantissa field of M
// bits, with K <= 7, M <= 7 and K+M <= 8.
//
// # Linear Region
//
// Values below 2^(M+1) are stored as-is. They round-trip exactly:
//
//	p := skm.MustParams(5, 3)
//	c, _ := p.Encode(15) // c == 15
//	v := p.Decode(c)     // v == 15
//
// # Exponential Region
//
// Larger values are normalized: they are shifted right until they fit in
// M+1 bits. The exponent starts at 1 and counts one per shift, so the first
// exponential codeword is 2^(M+1) and never collides with a linear one. The
// leading bit of the normalized value is always set and is dropped; the low
// M bits become the mantissa:
//
//	codeword = mantissa + exponent<<M
//
// Decoding re-inserts the implicit bit and returns the midpoint of the range
// of inputs sharing the codeword (the bucket):
//
//	low  = (mantissa | 1<<M) << (exponent-1)
//	high = low | (1<<(exponent-1) - 1)
//	v    = (low + high) / 2
//
// # Failure Reporting
//
// Params.Encode reports failures as errors matching errs.ErrInvalidParams or
// errs.ErrExponentOverflow. EncodeRaw keeps the instrument's in-band 0xFF
// sentinel for compatibility; note that some configurations can emit 0xFF as a
// legitimate codeword (see Params.SentinelCollides).
//
// # Thread Safety
//
// Params is an immutable value; every function in this package is pure and
// safe for concurrent use.
package skm
