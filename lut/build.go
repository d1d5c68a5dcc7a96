package lut

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/arloliu/skmcodec/errs"
	"github.com/arloliu/skmcodec/internal/options"
	"github.com/arloliu/skmcodec/skm"
)

// MaxDomain is the largest sweep bound: the full uint32 input domain.
const MaxDomain = uint64(1) << 32

// DefaultMaxValue is the sweep bound for 16-bit sample domains.
const DefaultMaxValue = uint64(1) << 16

// ctxCheckMask sets how often the sweep polls its context (every 4096 inputs).
const ctxCheckMask = 0xFFF

type buildConfig struct {
	ctx context.Context
}

// Option configures Build.
type Option = options.Option[*buildConfig]

// WithContext makes Build abort with the context's error once ctx is done.
func WithContext(ctx context.Context) Option {
	return options.NoError(func(c *buildConfig) {
		if ctx != nil {
			c.ctx = ctx
		}
	})
}

// Build sweeps the inputs 0..maxValue-1 through the encoder and returns one
// entry per run of equal codewords, each mapped to the midpoint of the run.
//
// The encoder is monotonic, so a codeword change marks the end of a run and
// the first overflowing input marks the end of the encodable domain; the
// sweep stops there and the table reports Truncated.
//
// Parameters:
//   - p: Codec configuration
//   - maxValue: Exclusive upper bound of the sweep, 1..MaxDomain
//   - opts: Build options (WithContext)
//
// Returns:
//   - *Table: The read-only lookup table
//   - error: ErrInvalidMaxValue, or the context error if cancelled
//
// Example:
//
//	table, err := lut.Build(skm.MustParams(5, 3), lut.DefaultMaxValue)
//	if err != nil {
//	    return err
//	}
//	v, ok := table.Lookup(0x28)
func Build(p skm.Params, maxValue uint64, opts ...Option) (*Table, error) {
	if maxValue == 0 || maxValue > MaxDomain {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidMaxValue, maxValue)
	}

	cfg := &buildConfig{ctx: context.Background()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	t := newTable(p)
	t.maxValue = maxValue

	var (
		current skm.Codeword // encode(0) is always 0
		first   uint32
		i       uint64
	)
	for i = 1; i < maxValue; i++ {
		if i&ctxCheckMask == 0 {
			if err := cfg.ctx.Err(); err != nil {
				return nil, err
			}
		}

		c, err := p.Encode(uint32(i))
		if err != nil {
			break
		}
		if c != current {
			t.appendRun(current, first, uint32(i-1))
			current = c
			first = uint32(i)
		}
	}
	t.appendRun(current, first, uint32(i-1))
	t.limit = i

	return t, nil
}

// BuildRaw validates raw K and M before building.
//
// Returns ErrInvalidParams for an invalid configuration.
func BuildRaw(k, m uint8, maxValue uint64, opts ...Option) (*Table, error) {
	p, err := skm.NewParams(k, m)
	if err != nil {
		return nil, err
	}

	return Build(p, maxValue, opts...)
}

// Analytic derives the table directly from the reconstructor: one entry per
// reachable codeword, spanning its whole bucket. It covers the full
// encodable domain in O(256).
func Analytic(p skm.Params) *Table {
	t := newTable(p)
	t.analytic = true

	for c := range codewordCount {
		cw := skm.Codeword(c)
		if !p.Reachable(cw) {
			continue
		}
		low, high, _ := p.Bucket(cw)
		t.appendRun(cw, low, high)
	}

	t.limit = uint64(p.MaxEncodable()) + 1
	t.maxValue = t.limit

	return t
}

// Spec describes one table for BuildAll.
type Spec struct {
	Params   skm.Params
	MaxValue uint64
}

// BuildAll builds the tables for specs concurrently, one worker per CPU.
//
// Tables are returned in spec order. The first failure cancels the remaining
// builds and is returned.
func BuildAll(ctx context.Context, specs []Spec) ([]*Table, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tables := make([]*Table, len(specs))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	workers := min(runtime.GOMAXPROCS(0), len(specs))
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				spec := specs[idx]
				t, err := Build(spec.Params, spec.MaxValue, WithContext(ctx))
				if err != nil {
					errOnce.Do(func() {
						firstErr = fmt.Errorf("build %s max %d: %w", spec.Params, spec.MaxValue, err)
						cancel()
					})

					continue
				}
				tables[idx] = t
			}
		}()
	}

feed:
	for idx := range specs {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return tables, nil
}
