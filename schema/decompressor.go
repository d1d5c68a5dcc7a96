package schema

import (
	"fmt"

	"github.com/arloliu/skmcodec/errs"
	"github.com/arloliu/skmcodec/internal/hash"
	"github.com/arloliu/skmcodec/internal/options"
	"github.com/arloliu/skmcodec/lut"
	"github.com/arloliu/skmcodec/skm"
)

// Decompressor restores the compressed parameters of one packet.
//
// Packets carry the S, K and M values of their groups alongside the
// compressed parameters. Feed every parameter to SetSKM as it is parsed;
// once a group's three values are known, its parameters can be
// decompressed.
//
// A Decompressor holds per-packet state and is not safe for concurrent use.
// Decoding tables come from a lut.Cache, which may be shared.
type Decompressor struct {
	packet *Packet
	cache  *lut.Cache

	// skmIDs holds hash.ID of every S, K and M parameter of the packet.
	skmIDs map[uint64]struct{}
	values map[uint64]uint32
}

// Option configures a Decompressor.
type Option = options.Option[*Decompressor]

// WithCache sets the table cache used for decoding. The default is
// lut.Shared().
func WithCache(c *lut.Cache) Option {
	return options.NoError(func(d *Decompressor) {
		if c != nil {
			d.cache = c
		}
	})
}

// NewDecompressor creates a decompressor for packets of type spid.
//
// Returns ErrUnknownPacket if the packet type carries no compressed
// parameters or has no registered layout.
func NewDecompressor(spid uint32, opts ...Option) (*Decompressor, error) {
	if !Enabled(spid) {
		return nil, fmt.Errorf("%w: SPID %d is not compressed", errs.ErrUnknownPacket, spid)
	}

	packet, err := Lookup(spid)
	if err != nil {
		return nil, err
	}

	d := &Decompressor{
		packet: packet,
		cache:  lut.Shared(),
		skmIDs: make(map[uint64]struct{}, 3*len(packet.Groups)),
		values: make(map[uint64]uint32, 3*len(packet.Groups)),
	}
	for _, name := range packet.Groups {
		for _, id := range groups[name].ParamIDs() {
			d.skmIDs[hash.ID(id)] = struct{}{}
		}
	}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// Packet returns the layout the decompressor works on.
func (d *Decompressor) Packet() *Packet {
	return d.packet
}

// SetSKM records the raw value of a compression schema parameter.
//
// It returns false, and records nothing, if paramID is not an S, K or M
// parameter of the packet's groups.
func (d *Decompressor) SetSKM(paramID string, raw uint32) bool {
	id := hash.ID(paramID)
	if _, ok := d.skmIDs[id]; !ok {
		return false
	}
	d.values[id] = raw

	return true
}

// Reset forgets every recorded S, K and M value.
func (d *Decompressor) Reset() {
	clear(d.values)
}

// Params returns the codec configuration of a compressed parameter.
//
// Returns:
//   - skm.Params: The group's configuration
//   - error: ErrUnknownParameter, ErrMissingSKM, ErrSignedUnsupported or
//     ErrInvalidParams
func (d *Decompressor) Params(paramID string) (skm.Params, error) {
	g, ok := d.packet.Group(paramID)
	if !ok {
		return skm.Params{}, fmt.Errorf("%w: %s in SPID %d", errs.ErrUnknownParameter, paramID, d.packet.SPID)
	}

	var raw [3]uint32
	for i, id := range g.ParamIDs() {
		v, ok := d.values[hash.ID(id)]
		if !ok {
			return skm.Params{}, fmt.Errorf("%w: %s needs %s", errs.ErrMissingSKM, paramID, id)
		}
		raw[i] = v
	}

	s, k, m := raw[0], raw[1], raw[2]
	switch {
	case s == 1:
		return skm.Params{}, fmt.Errorf("%w: group %s", errs.ErrSignedUnsupported, g.Name)
	case s > 1 || k > skm.MaxK || m > skm.MaxM:
		return skm.Params{}, fmt.Errorf("%w: group %s S=%d K=%d M=%d", errs.ErrInvalidParams, g.Name, s, k, m)
	}

	return skm.NewParams(uint8(k), uint8(m))
}

// Decompress reconstructs the value of compressed parameter paramID from
// its raw codeword.
//
// Returns the errors of Params.
func (d *Decompressor) Decompress(paramID string, raw uint8) (uint32, error) {
	p, err := d.Params(paramID)
	if err != nil {
		return 0, err
	}

	return d.cache.Analytic(p).Decode(skm.Codeword(raw)), nil
}

// Process handles one parsed parameter: schema parameters are recorded,
// compressed parameters are decompressed. handled is false for parameters
// that are neither.
func (d *Decompressor) Process(paramID string, raw uint32) (value uint32, handled bool, err error) {
	if d.SetSKM(paramID, raw) {
		return raw, true, nil
	}
	if _, ok := d.packet.Group(paramID); !ok {
		return raw, false, nil
	}
	if raw > 0xFF {
		return 0, true, fmt.Errorf("%w: %s raw value %d", errs.ErrInvalidCodeword, paramID, raw)
	}

	value, err = d.Decompress(paramID, uint8(raw))

	return value, true, err
}
