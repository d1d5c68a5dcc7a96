package skm

import (
	"fmt"

	"github.com/arloliu/skmcodec/errs"
)

const (
	// MaxK is the largest exponent field width.
	MaxK = 7
	// MaxM is the largest mantissa field width.
	MaxM = 7
	// CodewordBits is the total width of a codeword.
	CodewordBits = 8
)

// Params is a validated (K, M) configuration shared by encode, decode and
// table building. The zero value (K=0, M=0) is valid.
type Params struct {
	k uint8
	m uint8
}

// NewParams validates and returns the configuration for exponent width k and
// mantissa width m.
//
// Parameters:
//   - k: Exponent field width (0-7)
//   - m: Mantissa field width (0-7)
//
// Returns:
//   - Params: The validated configuration
//   - error: ErrInvalidParams if k > 7, m > 7 or k+m > 8
func NewParams(k, m uint8) (Params, error) {
	if !ValidParams(k, m) {
		return Params{}, fmt.Errorf("%w: K=%d M=%d", errs.ErrInvalidParams, k, m)
	}

	return Params{k: k, m: m}, nil
}

// MustParams is like NewParams but panics on invalid parameters.
// It is intended for package-level configuration and tests.
func MustParams(k, m uint8) Params {
	p, err := NewParams(k, m)
	if err != nil {
		panic(err)
	}

	return p
}

// ValidParams reports whether k and m form a valid configuration.
func ValidParams(k, m uint8) bool {
	return k <= MaxK && m <= MaxM && uint16(k)+uint16(m) <= CodewordBits
}

// ParamsFromByte unpacks a configuration stored as K<<4 | M.
func ParamsFromByte(b byte) (Params, error) {
	return NewParams(b>>4, b&0x0F)
}

// K returns the exponent field width.
func (p Params) K() uint8 { return p.k }

// M returns the mantissa field width.
func (p Params) M() uint8 { return p.m }

// Byte packs the configuration as K<<4 | M.
func (p Params) Byte() byte {
	return p.k<<4 | p.m
}

// String returns the configuration as "K<k>M<m>", e.g. "K5M3".
func (p Params) String() string {
	return fmt.Sprintf("K%dM%d", p.k, p.m)
}

// LinearThreshold returns 2^(M+1), the smallest value stored in the
// exponential region.
func (p Params) LinearThreshold() uint32 {
	return uint32(1) << (p.m + 1)
}

// MaxExponent returns 2^K - 1, the largest value the exponent field can hold.
func (p Params) MaxExponent() uint32 {
	return uint32(1)<<p.k - 1
}

// mantissaMask returns 2^M - 1.
func (p Params) mantissaMask() uint8 {
	return uint8(uint16(1)<<p.m - 1)
}

// MaxEncodable returns the largest input value that encodes successfully.
//
// Every value in [0, MaxEncodable()] encodes; every larger value overflows the
// exponent field.
func (p Params) MaxEncodable() uint32 {
	// Exponent e covers inputs with M+e significant bits; the exponent cannot
	// exceed 32-M for 32-bit inputs, and exponents 0 and 1 both mean the
	// linear region.
	exponent := max(p.MaxExponent(), 1)
	bits := min(uint32(p.m)+exponent, 32)

	return uint32(uint64(1)<<bits - 1)
}

// Split extracts the exponent and mantissa fields of a codeword.
//
// For codewords in the linear region the fields carry no meaning on their own;
// Split still returns the raw bit fields.
func (p Params) Split(c Codeword) (exponent, mantissa uint8) {
	return uint8(c) >> p.m, uint8(c) & p.mantissaMask()
}

// Join packs exponent and mantissa fields into a codeword.
func (p Params) Join(exponent, mantissa uint8) Codeword {
	return Codeword(mantissa&p.mantissaMask() + exponent<<p.m)
}

// SentinelCollides reports whether this configuration can emit 0xFF as a
// legitimate codeword, making it indistinguishable from the failure sentinel
// returned by EncodeRaw.
func (p Params) SentinelCollides() bool {
	return p.Reachable(Sentinel)
}
