package skm

import (
	"fmt"
	"math"

	"github.com/arloliu/skmcodec/errs"
)

// Codeword is the 8-bit compressed representation of one sample.
type Codeword uint8

// Sentinel is the failure codeword returned by EncodeRaw.
const Sentinel Codeword = 0xFF

// Encode compresses value into a codeword.
//
// Values below LinearThreshold are stored exactly. Larger values are
// normalized into exponent and mantissa fields and lose their low bits.
//
// Parameters:
//   - value: Unsigned sample to compress
//
// Returns:
//   - Codeword: The compressed sample
//   - error: ErrExponentOverflow if value needs more than K exponent bits
func (p Params) Encode(value uint32) (Codeword, error) {
	c, ok := p.encode(value)
	if !ok {
		return 0, fmt.Errorf("%w: value %d with %s (max %d)", errs.ErrExponentOverflow, value, p, p.MaxEncodable())
	}

	return c, nil
}

// encode is the allocation-free form of Encode.
func (p Params) encode(value uint32) (Codeword, bool) {
	threshold := p.LinearThreshold()
	if value < threshold {
		return Codeword(value), true
	}

	// Shift until the set bits fit in the M+1 bit window; the exponent is the
	// shift count plus one.
	exponent := uint32(1)
	for value > threshold-1 {
		value >>= 1
		exponent++
	}

	if exponent > p.MaxExponent() {
		return 0, false
	}

	// The window's top bit is always set here; only the low M bits are kept.
	mantissa := value & uint32(p.mantissaMask())

	return Codeword(mantissa + exponent<<p.m), true
}

// Decode reconstructs a representative value for codeword c.
//
// Codewords in the linear region decode exactly. Exponential codewords decode
// to the integer midpoint of their bucket, see Bucket. Codewords whose bucket
// lies above the uint32 range cannot be produced by Encode and decode to
// math.MaxUint32.
func (p Params) Decode(c Codeword) uint32 {
	low, high, ok := p.bucket(c)
	if !ok {
		return math.MaxUint32
	}

	return uint32((low + high) / 2)
}

// Bucket returns the range [low, high] of inputs that encode to c under
// this configuration's arithmetic.
//
// Returns:
//   - low: Smallest input sharing the codeword
//   - high: Largest input sharing the codeword
//   - ok: false if the bucket does not fit in uint32
func (p Params) Bucket(c Codeword) (low, high uint32, ok bool) {
	l, h, ok := p.bucket(c)
	if !ok {
		return 0, 0, false
	}

	return uint32(l), uint32(h), true
}

func (p Params) bucket(c Codeword) (low, high uint64, ok bool) {
	if uint32(c) < p.LinearThreshold() {
		return uint64(c), uint64(c), true
	}

	exponent, mantissa := p.Split(c)
	shift := uint64(exponent) - 1
	if shift >= 32 {
		return 0, 0, false
	}

	// Re-insert the implicit leading bit dropped by the encoder.
	realMantissa := uint64(mantissa) | uint64(1)<<p.m

	low = realMantissa << shift
	high = low | (uint64(1)<<shift - 1)
	if high > math.MaxUint32 {
		return 0, 0, false
	}

	return low, high, true
}

// Reachable reports whether some uint32 input encodes to c.
func (p Params) Reachable(c Codeword) bool {
	if uint32(c) < p.LinearThreshold() {
		return true
	}

	exponent, _ := p.Split(c)
	if uint32(exponent) > p.MaxExponent() {
		return false
	}

	_, _, ok := p.bucket(c)

	return ok
}

// EncodeRaw compresses value with raw K and M parameters.
//
// It returns Sentinel (0xFF) when the parameters are invalid or the value
// overflows the exponent field. When Params.SentinelCollides is true for the
// configuration, 0xFF is also a legitimate codeword; use Params.Encode to tell
// the cases apart.
func EncodeRaw(value uint32, k, m uint8) uint8 {
	if !ValidParams(k, m) {
		return uint8(Sentinel)
	}

	c, ok := Params{k: k, m: m}.encode(value)
	if !ok {
		return uint8(Sentinel)
	}

	return uint8(c)
}

// DecodeRaw reconstructs a value from codeword c with raw K and M
// parameters. It returns 0 when the parameters are invalid.
func DecodeRaw(c uint8, k, m uint8) uint32 {
	if !ValidParams(k, m) {
		return 0
	}

	return Params{k: k, m: m}.Decode(Codeword(c))
}
