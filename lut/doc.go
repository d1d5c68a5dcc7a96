// Package lut builds codeword lookup tables for the SKM codec.
//
// A table is produced by sweeping every input value below a bound through the
// encoder. Consecutive inputs that map to the same codeword form a run, and
// the run's integer midpoint becomes the representative value for that
// codeword. The sweep stops at the first input that overflows the exponent
// field; the table then reports Truncated and Limit marks the first missing
// input.
//
// # Building
//
//	p := skm.MustParams(5, 3)
//	table, err := lut.Build(p, lut.DefaultMaxValue)
//	if err != nil {
//	    return err
//	}
//	for _, e := range table.Entries() {
//	    fmt.Printf("%d:%d\n", e.Codeword, e.Value)
//	}
//
// Analytic derives an equivalent table for the whole encodable domain in
// constant time, straight from the bucket arithmetic. Cache memoizes both
// kinds so that decoders can share them.
//
// # Serialization
//
// WriteText and WritePython emit the "codeword:value" listings used by ground
// software. MarshalBinary and MarshalCompressed produce a checksummed binary
// form, optionally compressed with any codec from the compress package;
// Unmarshal validates it before returning the table.
package lut
