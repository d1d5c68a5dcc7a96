package lut

import (
	"fmt"
	"slices"

	"github.com/arloliu/skmcodec/errs"
	"github.com/arloliu/skmcodec/skm"
)

// codewordCount is the number of distinct 8-bit codewords.
const codewordCount = 256

// Entry maps one codeword to the representative value of its run.
type Entry struct {
	// Codeword is the compressed value shared by the run.
	Codeword skm.Codeword
	// First is the smallest input of the run.
	First uint32
	// Last is the largest input of the run.
	Last uint32
	// Value is the representative value, the integer midpoint of [First, Last].
	Value uint32
}

// Table is an immutable codeword lookup table for one configuration.
//
// Entries are ordered by input range, which for a monotonic codec is also
// ascending codeword order. A Table is safe for concurrent use once built.
type Table struct {
	params   skm.Params
	maxValue uint64
	limit    uint64
	analytic bool
	entries  []Entry

	// index holds the entry position per codeword, -1 when absent.
	index [codewordCount]int16
	// decoded holds the value Decode returns per codeword.
	decoded [codewordCount]uint32
}

func newTable(p skm.Params) *Table {
	t := &Table{
		params:  p,
		entries: make([]Entry, 0, 64),
	}
	for c := range t.index {
		t.index[c] = -1
		t.decoded[c] = p.Decode(skm.Codeword(c))
	}

	return t
}

// appendRun closes the run [first, last] for codeword c.
func (t *Table) appendRun(c skm.Codeword, first, last uint32) {
	entry := Entry{
		Codeword: c,
		First:    first,
		Last:     last,
		Value:    uint32((uint64(first) + uint64(last)) / 2),
	}
	t.index[c] = int16(len(t.entries))
	t.decoded[c] = entry.Value
	t.entries = append(t.entries, entry)
}

// Params returns the configuration the table was built for.
func (t *Table) Params() skm.Params {
	return t.params
}

// MaxValue returns the exclusive upper bound of the swept input domain.
func (t *Table) MaxValue() uint64 {
	return t.maxValue
}

// Limit returns the first input value not covered by the table. It equals
// MaxValue unless the sweep stopped at the exponent limit.
func (t *Table) Limit() uint64 {
	return t.limit
}

// Truncated reports whether inputs below MaxValue overflow the exponent
// field and are therefore missing from the table.
func (t *Table) Truncated() bool {
	return t.limit < t.maxValue
}

// Analytic reports whether the table was derived from the reconstructor
// rather than from an encode sweep.
func (t *Table) Analytic() bool {
	return t.analytic
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in run order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)

	return out
}

// Entry returns the entry for codeword c.
func (t *Table) Entry(c skm.Codeword) (Entry, bool) {
	idx := t.index[c]
	if idx < 0 {
		return Entry{}, false
	}

	return t.entries[idx], true
}

// Lookup returns the representative value for codeword c.
// ok is false if no swept input produced c.
func (t *Table) Lookup(c skm.Codeword) (value uint32, ok bool) {
	idx := t.index[c]
	if idx < 0 {
		return 0, false
	}

	return t.entries[idx].Value, true
}

// Decode returns the representative value for c in O(1), falling back to the
// analytic reconstruction for codewords absent from the table.
func (t *Table) Decode(c skm.Codeword) uint32 {
	return t.decoded[c]
}

// AppendDecoded decodes every codeword in src and appends the values to dst.
func (t *Table) AppendDecoded(dst []uint32, src []byte) []uint32 {
	dst = slices.Grow(dst, len(src))
	for _, c := range src {
		dst = append(dst, t.decoded[c])
	}

	return dst
}

// Validate checks the structural invariants of the table: runs start at
// zero, are contiguous and non-overlapping, end at Limit-1, carry strictly
// increasing codewords, and each representative value lies within its run.
func (t *Table) Validate() error {
	if len(t.entries) == 0 {
		return fmt.Errorf("%w: empty table", errs.ErrInvalidTable)
	}
	if len(t.entries) > codewordCount {
		return fmt.Errorf("%w: %d entries", errs.ErrInvalidTableSize, len(t.entries))
	}

	next := uint64(0)
	for i, e := range t.entries {
		if uint64(e.First) != next {
			return fmt.Errorf("%w: entry %d starts at %d, want %d", errs.ErrInvalidTable, i, e.First, next)
		}
		if e.Last < e.First {
			return fmt.Errorf("%w: entry %d has empty run [%d, %d]", errs.ErrInvalidTable, i, e.First, e.Last)
		}
		if e.Value < e.First || e.Value > e.Last {
			return fmt.Errorf("%w: entry %d value %d outside run [%d, %d]", errs.ErrInvalidTable, i, e.Value, e.First, e.Last)
		}
		if i > 0 && e.Codeword <= t.entries[i-1].Codeword {
			return fmt.Errorf("%w: entry %d codeword %d not increasing", errs.ErrInvalidTable, i, e.Codeword)
		}
		next = uint64(e.Last) + 1
	}

	if next != t.limit {
		return fmt.Errorf("%w: runs end at %d, limit is %d", errs.ErrInvalidTable, next, t.limit)
	}

	return nil
}

// Deviation records a codeword whose table value differs from the analytic
// reconstruction.
type Deviation struct {
	Codeword skm.Codeword
	// Table is the run midpoint stored in the table.
	Table uint32
	// Analytic is the bucket midpoint computed by the reconstructor.
	Analytic uint32
	// Partial is true when the run covers only part of the codeword's
	// bucket, which happens for the last run of a sweep that ends inside a
	// bucket.
	Partial bool
}

// Diff returns the absolute difference between the two values.
func (d Deviation) Diff() uint32 {
	if d.Table > d.Analytic {
		return d.Table - d.Analytic
	}

	return d.Analytic - d.Table
}

// Verify cross-checks every entry against the analytic reconstructor and
// returns the entries whose values differ. A run midpoint and the analytic
// bucket midpoint agree exactly whenever the run spans the whole bucket, so
// only Partial deviations are expected.
func (t *Table) Verify() []Deviation {
	var out []Deviation
	for _, e := range t.entries {
		analytic := t.params.Decode(e.Codeword)
		if analytic == e.Value {
			continue
		}

		low, high, ok := t.params.Bucket(e.Codeword)
		out = append(out, Deviation{
			Codeword: e.Codeword,
			Table:    e.Value,
			Analytic: analytic,
			Partial:  !ok || low != e.First || high != e.Last,
		})
	}

	return out
}
