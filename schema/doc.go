// Package schema maps telemetry parameters to the compression schemas that
// produced them.
//
// Instruments configure each compressed measurement with a named group of
// three housekeeping parameters carrying S (sign), K (exponent bits) and M
// (mantissa bits). A packet layout lists which parameters are compressed and
// by which group. Decompressor collects the group values from a packet and
// decodes its compressed parameters:
//
//	d, err := schema.NewDecompressor(54120)
//	if err != nil {
//	    return err
//	}
//	for _, p := range parsed {
//	    v, handled, err := d.Process(p.ID, p.Raw)
//	    ...
//	}
//
// Only unsigned schemas (S = 0) are supported.
package schema
