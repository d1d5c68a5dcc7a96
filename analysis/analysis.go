// Package analysis quantifies the reconstruction error of SKM configurations
// and picks a configuration for a given input range.
package analysis

import (
	"cmp"
	"context"
	"fmt"
	"math"

	"github.com/arloliu/skmcodec/errs"
	"github.com/arloliu/skmcodec/lut"
	"github.com/arloliu/skmcodec/skm"
)

// DefaultCandidates returns the unsigned configurations flown by the
// instrument: K3M5, K5M3 and K4M4.
func DefaultCandidates() []skm.Params {
	return []skm.Params{
		skm.MustParams(3, 5),
		skm.MustParams(5, 3),
		skm.MustParams(4, 4),
	}
}

// RelativeError returns the worst-case relative error of codeword c,
// (high-low) / (2*mid) over its bucket. Linear codewords are exact and
// return 0; codewords no input can produce return +Inf.
func RelativeError(p skm.Params, c skm.Codeword) float64 {
	low, high, ok := p.Bucket(c)
	if !ok || !p.Reachable(c) {
		return math.Inf(1)
	}

	return relError(low, high, p.Decode(c))
}

func relError(first, last, value uint32) float64 {
	if value == 0 {
		return 0
	}

	return float64(last-first) / (2 * float64(value))
}

// Report summarizes the error of one configuration over an input range.
type Report struct {
	Params   skm.Params
	MaxValue uint64
	// Limit is the first input that was not encodable, MaxValue when the
	// whole range encodes.
	Limit uint64
	// Codewords is the number of distinct codewords the range uses.
	Codewords int
	// ExactValues counts the inputs reconstructed without error.
	ExactValues uint64

	MaxAbsError  uint32
	MeanAbsError float64
	MaxRelError  float64
}

// Covers reports whether every input below MaxValue is encodable.
func (r Report) Covers() bool {
	return r.Limit == r.MaxValue
}

func (r Report) String() string {
	return fmt.Sprintf("%s max=%d limit=%d codewords=%d exact=%d maxAbs=%d meanAbs=%.3f maxRel=%.5f",
		r.Params, r.MaxValue, r.Limit, r.Codewords, r.ExactValues, r.MaxAbsError, r.MeanAbsError, r.MaxRelError)
}

// Sweep measures the error of reconstructing every input below maxValue
// through the lookup table of p.
//
// Parameters:
//   - p: Codec configuration
//   - maxValue: Exclusive upper bound of the inputs, 1..lut.MaxDomain
//   - opts: Table build options
//
// Returns:
//   - Report: Error statistics over the encodable inputs
//   - error: ErrInvalidMaxValue or a build error
func Sweep(p skm.Params, maxValue uint64, opts ...lut.Option) (Report, error) {
	t, err := lut.Build(p, maxValue, opts...)
	if err != nil {
		return Report{}, err
	}

	return FromTable(t), nil
}

// FromTable computes the report of an already built table. Errors are
// computed per run in closed form.
func FromTable(t *lut.Table) Report {
	r := Report{
		Params:    t.Params(),
		MaxValue:  t.MaxValue(),
		Limit:     t.Limit(),
		Codewords: t.Len(),
	}

	var total float64
	for _, e := range t.Entries() {
		below := uint64(e.Value - e.First)
		above := uint64(e.Last - e.Value)

		r.MaxAbsError = max(r.MaxAbsError, uint32(max(below, above)))
		r.MaxRelError = max(r.MaxRelError, relError(e.First, e.Last, e.Value))
		r.ExactValues++

		// Sum of |x - value| over the run: two arithmetic series.
		total += float64(below*(below+1)/2) + float64(above*(above+1)/2)
	}

	if r.Limit > 0 {
		r.MeanAbsError = total / float64(r.Limit)
	}

	return r
}

// Recommend picks the candidate with the smallest worst-case relative error
// among those that encode every input below maxValue. Ties go to the larger
// mantissa. Nil candidates means DefaultCandidates.
//
// Returns:
//   - Report: The report of the chosen configuration
//   - error: ErrExponentOverflow if no candidate covers the range, or a build
//     error
func Recommend(ctx context.Context, maxValue uint64, candidates []skm.Params) (Report, error) {
	if candidates == nil {
		candidates = DefaultCandidates()
	}

	specs := make([]lut.Spec, len(candidates))
	for i, p := range candidates {
		specs[i] = lut.Spec{Params: p, MaxValue: maxValue}
	}

	tables, err := lut.BuildAll(ctx, specs)
	if err != nil {
		return Report{}, err
	}

	var (
		best  Report
		found bool
	)
	for _, t := range tables {
		r := FromTable(t)
		if !r.Covers() {
			continue
		}
		if !found || better(r, best) {
			best = r
			found = true
		}
	}

	if !found {
		return Report{}, fmt.Errorf("%w: no candidate encodes values below %d", errs.ErrExponentOverflow, maxValue)
	}

	return best, nil
}

func better(a, b Report) bool {
	if c := cmp.Compare(a.MaxRelError, b.MaxRelError); c != 0 {
		return c < 0
	}

	return a.Params.M() > b.Params.M()
}
