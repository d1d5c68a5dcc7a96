// Command skmlut prints the decompression lookup table of an SKM codec
// configuration.
//
// Usage:
//
//	skmlut [flags] K M maxValue
//
// Every input in [0, maxValue) is encoded; each run of inputs sharing a
// codeword is printed as one "codeword:value" line, where value is the run's
// integer midpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/arloliu/skmcodec/analysis"
	"github.com/arloliu/skmcodec/format"
	"github.com/arloliu/skmcodec/lut"
	"github.com/arloliu/skmcodec/skm"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type config struct {
	format      string
	compression string
	verify      bool
	stats       bool
	verbose     bool

	params   skm.Params
	maxValue uint64
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}

	logger := newLogger(stderr, cfg.verbose)
	defer func() { _ = logger.Sync() }()

	logger.Debug("building lookup table",
		zap.Stringer("params", cfg.params),
		zap.Uint64("maxValue", cfg.maxValue),
		zap.String("format", cfg.format),
	)

	table, err := lut.Build(cfg.params, cfg.maxValue, lut.WithContext(ctx))
	if err != nil {
		logger.Error("build failed", zap.Error(err))
		return exitError
	}

	if table.Truncated() {
		logger.Warn("inputs overflow the exponent field, table truncated",
			zap.Stringer("params", cfg.params),
			zap.Uint64("limit", table.Limit()),
			zap.Uint64("maxValue", table.MaxValue()),
		)
	}
	logger.Debug("lookup table built", zap.Int("entries", table.Len()))

	if err := writeTable(stdout, table, cfg); err != nil {
		logger.Error("write failed", zap.Error(err))
		return exitError
	}

	if cfg.stats {
		r := analysis.FromTable(table)
		logger.Info("error statistics",
			zap.Stringer("params", r.Params),
			zap.Int("codewords", r.Codewords),
			zap.Uint64("limit", r.Limit),
			zap.Uint64("exactValues", r.ExactValues),
			zap.Uint32("maxAbsError", r.MaxAbsError),
			zap.Float64("meanAbsError", r.MeanAbsError),
			zap.Float64("maxRelError", r.MaxRelError),
		)
	}

	if cfg.verify {
		return verify(logger, table)
	}

	return exitOK
}

func parseArgs(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}

	fs := flag.NewFlagSet("skmlut", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.format, "format", "text", "output format: text, python or binary")
	fs.StringVar(&cfg.compression, "compression", "none", "binary payload compression: none, zstd, s2, lz4 or lzma")
	fs.BoolVar(&cfg.verify, "verify", false, "cross-check the table against the analytic reconstructor")
	fs.BoolVar(&cfg.stats, "stats", false, "log reconstruction error statistics")
	fs.BoolVar(&cfg.verbose, "v", false, "enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: skmlut [flags] K M maxValue\n\n")
		fmt.Fprintf(stderr, "  K         exponent bits, 0..7\n")
		fmt.Fprintf(stderr, "  M         mantissa bits, 0..7, K+M <= 8\n")
		fmt.Fprintf(stderr, "  maxValue  exclusive upper bound of the inputs, 1..%d\n\n", lut.MaxDomain)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fail := func(err error) (*config, error) {
		fmt.Fprintf(stderr, "skmlut: %v\n", err)
		fs.Usage()

		return nil, err
	}

	if fs.NArg() != 3 {
		return fail(fmt.Errorf("expected 3 arguments, got %d", fs.NArg()))
	}

	k, err := strconv.ParseUint(fs.Arg(0), 10, 8)
	if err != nil {
		return fail(fmt.Errorf("invalid K %q", fs.Arg(0)))
	}
	m, err := strconv.ParseUint(fs.Arg(1), 10, 8)
	if err != nil {
		return fail(fmt.Errorf("invalid M %q", fs.Arg(1)))
	}
	cfg.params, err = skm.NewParams(uint8(k), uint8(m))
	if err != nil {
		return fail(err)
	}

	cfg.maxValue, err = strconv.ParseUint(fs.Arg(2), 10, 64)
	if err != nil || cfg.maxValue == 0 || cfg.maxValue > lut.MaxDomain {
		return fail(fmt.Errorf("invalid maxValue %q", fs.Arg(2)))
	}

	switch cfg.format {
	case "text", "python", "binary":
	default:
		return fail(fmt.Errorf("unknown format %q", cfg.format))
	}

	comp, err := format.ParseCompressionType(cfg.compression)
	if err != nil {
		return fail(err)
	}
	if comp != format.CompressionNone && cfg.format != "binary" {
		return fail(fmt.Errorf("-compression requires -format binary"))
	}

	return cfg, nil
}

func writeTable(w io.Writer, t *lut.Table, cfg *config) error {
	switch cfg.format {
	case "python":
		return lut.WritePython(w, t)
	case "binary":
		comp, err := format.ParseCompressionType(cfg.compression)
		if err != nil {
			return err
		}
		data, err := t.MarshalCompressed(comp)
		if err != nil {
			return err
		}
		_, err = w.Write(data)

		return err
	default:
		return lut.WriteText(w, t)
	}
}

// verify reports table values that differ from the analytic reconstructor.
// Only a partial last run may legitimately differ.
func verify(logger *zap.Logger, t *lut.Table) int {
	code := exitOK
	for _, d := range t.Verify() {
		fields := []zap.Field{
			zap.Uint8("codeword", uint8(d.Codeword)),
			zap.Uint32("table", d.Table),
			zap.Uint32("analytic", d.Analytic),
			zap.Uint32("diff", d.Diff()),
		}
		if d.Partial {
			logger.Info("partial run differs from bucket midpoint", fields...)
			continue
		}
		logger.Error("table value differs from reconstructor", fields...)
		code = exitError
	}

	if code == exitOK {
		logger.Debug("table verified", zap.Int("entries", t.Len()))
	}

	return code
}

// newLogger logs JSON at info level, or human-readable console output at
// debug level when verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	level := zapcore.InfoLevel
	encoder := zapcore.NewJSONEncoder(encCfg)

	if verbose {
		encCfg = zap.NewDevelopmentEncoderConfig()
		level = zapcore.DebugLevel
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)

	return zap.New(core)
}
