package schema

import (
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/skmcodec/errs"
	"github.com/arloliu/skmcodec/internal/hash"
)

// Packet describes which parameters of a telemetry packet are compressed and
// by which group.
type Packet struct {
	// SPID is the packet's structure identifier.
	SPID uint32
	// Groups lists the groups whose S, K and M values the packet carries.
	Groups []string

	// params maps hash.ID(parameter ID) to the group name.
	params map[uint64]string
	names  []string
}

// Group returns the group compressing paramID.
func (p *Packet) Group(paramID string) (Group, bool) {
	name, ok := p.params[hash.ID(paramID)]
	if !ok {
		return Group{}, false
	}

	return groups[name], true
}

// Parameters returns the IDs of the compressed parameters in ascending order.
func (p *Packet) Parameters() []string {
	return slices.Clone(p.names)
}

type packetBuilder struct {
	p *Packet
}

func newPacket(spid uint32, groupNames ...string) *packetBuilder {
	return &packetBuilder{p: &Packet{
		SPID:   spid,
		Groups: groupNames,
		params: make(map[uint64]string),
	}}
}

func (b *packetBuilder) param(id, group string) *packetBuilder {
	b.p.params[hash.ID(id)] = group
	b.p.names = append(b.p.names, id)

	return b
}

// paramRange adds the parameters NIX<first>..NIX<last>.
func (b *packetBuilder) paramRange(first, last int, group string) *packetBuilder {
	for n := first; n <= last; n++ {
		b.param(fmt.Sprintf("NIX%05d", n), group)
	}

	return b
}

func (b *packetBuilder) build() *Packet {
	slices.Sort(b.p.names)
	return b.p
}

// compressedSPIDs lists every packet type that may carry compressed
// parameters, including types without a registered layout.
var compressedSPIDs = map[uint32]struct{}{
	54110: {}, 54111: {}, 54112: {}, 54113: {}, 54114: {}, 54115: {},
	54116: {}, 54117: {}, 54118: {}, 54119: {}, 54120: {}, 54121: {},
	54122: {}, 54123: {}, 54124: {}, 54125: {}, 54142: {}, 54143: {},
}

func eventCountersPacket(spid uint32) *Packet {
	return newPacket(spid, GroupEACC, GroupETRIG).
		param("NIX00260", GroupEACC).
		paramRange(242, 257, GroupETRIG).
		build()
}

var packets = map[uint32]*Packet{
	54110: newPacket(54110, GroupEACC, GroupETRIG).
		param("NIX00065", GroupEACC).
		paramRange(408, 423, GroupETRIG).
		build(),
	54111: eventCountersPacket(54111),
	54112: eventCountersPacket(54112),
	54118: newPacket(54118, GroupLC, GroupTriggerSSID30).
		param("NIX00272", GroupLC).
		param("NIX00274", GroupTriggerSSID30).
		build(),
	54119: newPacket(54119, GroupBKG, GroupTRIG).
		param("NIX00278", GroupBKG).
		param("NIX00274", GroupTRIG).
		build(),
	54120: newPacket(54120, GroupSPEC, GroupTRIG).
		paramRange(452, 483, GroupSPEC).
		param("NIX00484", GroupTRIG).
		build(),
	54121: newPacket(54121, GroupVAR).
		param("NIX00281", GroupVAR).
		build(),
	54124: newPacket(54124, GroupCALI).
		param("NIX00158", GroupCALI).
		build(),
}

// Enabled reports whether packets of type spid may carry compressed
// parameters.
func Enabled(spid uint32) bool {
	_, ok := compressedSPIDs[spid]
	return ok
}

// Lookup returns the compression layout of packet type spid.
//
// The returned Packet is shared and must not be modified. Returns
// ErrUnknownPacket if the packet type has no registered layout.
func Lookup(spid uint32) (*Packet, error) {
	p, ok := packets[spid]
	if !ok {
		return nil, fmt.Errorf("%w: SPID %d", errs.ErrUnknownPacket, spid)
	}

	return p, nil
}

// SPIDs returns the packet types with a registered layout in ascending order.
func SPIDs() []uint32 {
	return slices.Sorted(maps.Keys(packets))
}
