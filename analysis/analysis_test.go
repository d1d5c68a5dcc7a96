package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/arloliu/skmcodec/errs"
	"github.com/arloliu/skmcodec/skm"
	"github.com/stretchr/testify/require"
)

func TestRelativeError(t *testing.T) {
	p := skm.MustParams(5, 3)

	require.Zero(t, RelativeError(p, 0))
	require.Zero(t, RelativeError(p, 15))
	require.InDelta(t, 1.0/32, RelativeError(p, 16), 1e-12)
	// Bucket [128, 143] around 135.
	require.InDelta(t, 15.0/270, RelativeError(p, 0x28), 1e-12)
	require.True(t, math.IsInf(RelativeError(p, 0xFF), 1))

	// More mantissa bits, smaller error at the same magnitude.
	k4m4 := skm.MustParams(4, 4)
	c, err := k4m4.Encode(1000)
	require.NoError(t, err)
	d, err := p.Encode(1000)
	require.NoError(t, err)
	require.Less(t, RelativeError(k4m4, c), RelativeError(p, d))
}

func TestSweep(t *testing.T) {
	r, err := Sweep(skm.MustParams(5, 3), 20)
	require.NoError(t, err)

	require.Equal(t, uint64(20), r.MaxValue)
	require.Equal(t, uint64(20), r.Limit)
	require.True(t, r.Covers())
	require.Equal(t, 18, r.Codewords)
	require.Equal(t, uint64(18), r.ExactValues)
	require.Equal(t, uint32(1), r.MaxAbsError)
	require.InDelta(t, 0.1, r.MeanAbsError, 1e-12)
	require.InDelta(t, 1.0/32, r.MaxRelError, 1e-12)
	require.Contains(t, r.String(), "K5M3")
}

func TestSweep_Truncated(t *testing.T) {
	r, err := Sweep(skm.MustParams(2, 3), 1000)
	require.NoError(t, err)
	require.False(t, r.Covers())
	require.Equal(t, uint64(64), r.Limit)
}

func TestSweep_MeanMatchesBruteForce(t *testing.T) {
	p := skm.MustParams(4, 4)
	// 3072 ends exactly on a bucket boundary, so run and bucket midpoints agree.
	const maxValue = 3072

	r, err := Sweep(p, maxValue)
	require.NoError(t, err)

	var total float64
	var maxAbs uint32
	for v := uint32(0); v < maxValue; v++ {
		c, err := p.Encode(v)
		require.NoError(t, err)
		got := p.Decode(c)
		diff := max(got, v) - min(got, v)
		maxAbs = max(maxAbs, diff)
		total += float64(diff)
	}

	require.InDelta(t, total/maxValue, r.MeanAbsError, 1e-9)
	require.Equal(t, maxAbs, r.MaxAbsError)
}

func TestSweep_InvalidMaxValue(t *testing.T) {
	_, err := Sweep(skm.MustParams(5, 3), 0)
	require.ErrorIs(t, err, errs.ErrInvalidMaxValue)
}

func TestRecommend(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		maxValue uint64
		want     skm.Params
	}{
		{"SmallRange", 4096, skm.MustParams(3, 5)},
		{"SixteenBit", 1 << 16, skm.MustParams(4, 4)},
		{"TwentyBit", 1 << 20, skm.MustParams(5, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Recommend(ctx, tt.maxValue, nil)
			require.NoError(t, err)
			require.Equal(t, tt.want, r.Params)
			require.True(t, r.Covers())
		})
	}

	t.Run("TieGoesToLargerMantissa", func(t *testing.T) {
		// Below 16 both configurations are purely linear and exact.
		r, err := Recommend(ctx, 16, []skm.Params{skm.MustParams(5, 3), skm.MustParams(3, 5)})
		require.NoError(t, err)
		require.Equal(t, skm.MustParams(3, 5), r.Params)
		require.Zero(t, r.MaxRelError)
	})

	t.Run("NothingCovers", func(t *testing.T) {
		_, err := Recommend(ctx, 1<<20, []skm.Params{skm.MustParams(3, 5), skm.MustParams(2, 3)})
		require.ErrorIs(t, err, errs.ErrExponentOverflow)
	})

	t.Run("InvalidMaxValue", func(t *testing.T) {
		_, err := Recommend(ctx, 0, nil)
		require.ErrorIs(t, err, errs.ErrInvalidMaxValue)
	})
}

func TestDefaultCandidates(t *testing.T) {
	got := DefaultCandidates()
	require.Len(t, got, 3)
	got[0] = skm.MustParams(0, 0)
	require.Equal(t, skm.MustParams(3, 5), DefaultCandidates()[0])
}
