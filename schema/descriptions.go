package schema

import "fmt"

var descriptions = map[string]string{
	"NIX00065": "Compressed accumulated counts",
	"NIX00158": "Compressed Calibration spectral point",
	"NIX00260": "Compressed pixels counts",
	"NIX00267": "Compressed combined trigger accumulator",
	"NIX00268": "Compressed summed counts",
	"NIX00272": "Compressed lightcurves",
	"NIX00274": "Compressed triggers",
	"NIX00278": "Compressed background",
	"NIX00281": "Compressed Variance",
	"NIX00484": "Compressed Trigger Accumulator",
	"NIXG0160": "Compression Schema Calib accum",
}

// groupTitles holds the description pattern of each group's S, K and M
// parameters; %s is replaced by the parameter letter.
var groupTitles = map[string]string{
	GroupEACC:          "EACC %s-parameter",
	GroupETRIG:         "ETRIG %s-parameter",
	GroupLC:            "Lightcurves %s-parameter",
	GroupTriggerSSID30: "Trigger accum %s-parameter SSID 30",
	GroupBKG:           "Background %s-parameter",
	GroupTRIG:          "Trigger accum %s-parameter",
	GroupSPEC:          "Spectrum accum %s-parameter",
	GroupVAR:           "Variance %s-parameter",
	GroupCALI:          "Calib accum %s-parameter",
}

func init() {
	for n := range 16 {
		descriptions[fmt.Sprintf("NIX%05d", 242+n)] = fmt.Sprintf("Compressed Trigger accumulator %d", n)
		descriptions[fmt.Sprintf("NIX%05d", 408+n)] = fmt.Sprintf("Compressed Trigger accumulator %d", n)
	}
	for e := range 32 {
		descriptions[fmt.Sprintf("NIX%05d", 452+e)] = fmt.Sprintf("Compressed Spectrum (E = %d)", e)
	}

	for name, g := range groups {
		for i, id := range g.ParamIDs() {
			descriptions[id] = "Compression schema " + fmt.Sprintf(groupTitles[name], "SKM"[i:i+1])
		}
	}
}

// Description returns the human-readable name of a compressed parameter or
// of a compression schema parameter.
func Description(paramID string) (string, bool) {
	d, ok := descriptions[paramID]
	return d, ok
}
