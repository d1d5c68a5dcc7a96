package schema

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/skmcodec/errs"
)

// Group is a named compression schema. Each group is configured at run time
// by three housekeeping parameters carrying the S, K and M values.
type Group struct {
	// Name is the short schema name, e.g. "SPEC".
	Name string
	// S is the ID of the parameter carrying the sign bit.
	S string
	// K is the ID of the parameter carrying the exponent width.
	K string
	// M is the ID of the parameter carrying the mantissa width.
	M string
}

// ParamIDs returns the S, K and M parameter IDs in that order.
func (g Group) ParamIDs() [3]string {
	return [3]string{g.S, g.K, g.M}
}

// Built-in group names.
const (
	GroupEACC          = "EACC"
	GroupETRIG         = "ETRIG"
	GroupLC            = "LC"
	GroupTriggerSSID30 = "TriggerSSID30"
	GroupBKG           = "BKG"
	GroupTRIG          = "TRIG"
	GroupSPEC          = "SPEC"
	GroupVAR           = "VAR"
	GroupCALI          = "CALI"
)

var groups = map[string]Group{
	GroupEACC:          {Name: GroupEACC, S: "NIXD0007", K: "NIXD0008", M: "NIXD0009"},
	GroupETRIG:         {Name: GroupETRIG, S: "NIXD0010", K: "NIXD0011", M: "NIXD0012"},
	GroupLC:            {Name: GroupLC, S: "NIXD0101", K: "NIXD0102", M: "NIXD0103"},
	GroupTriggerSSID30: {Name: GroupTriggerSSID30, S: "NIXD0104", K: "NIXD0105", M: "NIXD0106"},
	GroupBKG:           {Name: GroupBKG, S: "NIXD0108", K: "NIXD0109", M: "NIXD0110"},
	GroupTRIG:          {Name: GroupTRIG, S: "NIXD0112", K: "NIXD0113", M: "NIXD0114"},
	GroupSPEC:          {Name: GroupSPEC, S: "NIXD0115", K: "NIXD0116", M: "NIXD0117"},
	GroupVAR:           {Name: GroupVAR, S: "NIXD0118", K: "NIXD0119", M: "NIXD0120"},
	GroupCALI:          {Name: GroupCALI, S: "NIXD0126", K: "NIXD0127", M: "NIXD0128"},
}

// LookupGroup returns the built-in group with the given name.
//
// Returns ErrUnknownGroup if no such group exists.
func LookupGroup(name string) (Group, error) {
	g, ok := groups[name]
	if !ok {
		return Group{}, fmt.Errorf("%w: %q", errs.ErrUnknownGroup, name)
	}

	return g, nil
}

// Groups returns every built-in group ordered by name.
func Groups() []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b Group) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return out
}
