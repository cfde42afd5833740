// Rangedump records bounded generator output to a sample file, or checks a
// previously recorded file.
//
// Usage:
//
//	go run ./cmd/rangedump -o samples.brsf --low=-5 --high=5 --width 32 --signed
//	go run ./cmd/rangedump --check samples.brsf
//
// Check mode verifies the file checksums, replays the recorded stream
// against a generator rebuilt from the header, and for ranges of at most
// verify.MaxBuckets values reports a chi-square uniformity statistic.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/decred/slog"
	flags "github.com/jessevdk/go-flags"

	"github.com/tamirms/boundedrand"
	"github.com/tamirms/boundedrand/engine"
	"github.com/tamirms/boundedrand/extmul"
	"github.com/tamirms/boundedrand/internal/samplefile"
	"github.com/tamirms/boundedrand/internal/verify"
)

type config struct {
	Output   string  `short:"o" long:"output" description:"sample file to write"`
	Check    string  `long:"check" description:"verify and replay an existing sample file instead of writing one"`
	Count    uint64  `short:"n" long:"count" description:"number of samples to record"`
	Low      string  `long:"low" description:"low bound of the range"`
	High     string  `long:"high" description:"high bound of the range"`
	Width    uint    `short:"w" long:"width" description:"sample width in bits (8, 16, 32, 64)"`
	Signed   bool    `long:"signed" description:"sample a signed domain"`
	Variant  string  `long:"variant" description:"generator variant (no-reuse, reuse, lazy-reuse)"`
	Strategy string  `long:"strategy" description:"multiply strategy (naive, optimized, intrinsic); defaults to the fastest available"`
	Engine   string  `short:"e" long:"engine" description:"engine family (pcg32, pcg64, chacha8, lehmer64, murmur, crypto)"`
	Seed     string  `long:"seed" description:"label the engine seed is derived from"`
	Z        float64 `long:"z" description:"normal quantile for the chi-square critical value"`
	LogLevel string  `long:"loglevel" description:"logging level (trace, debug, info, warn, error, critical, off)"`
}

var log slog.Logger

func main() {
	cfg := config{
		Count:    1_000_000,
		Low:      "0",
		High:     "99",
		Width:    32,
		Variant:  boundedrand.VariantReuse.String(),
		Strategy: extmul.Default().String(),
		Engine:   engine.FamilyPCG32.String(),
		Seed:     "rangedump",
		Z:        4,
		LogLevel: "info",
	}
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if (cfg.Output == "") == (cfg.Check == "") {
		fmt.Fprintln(os.Stderr, "exactly one of --output and --check is required")
		parser.WriteHelp(os.Stderr)
		os.Exit(2)
	}

	backend := slog.NewBackend(os.Stdout)
	log = backend.Logger("DUMP")
	lvl, ok := slog.LevelFromString(cfg.LogLevel)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown log level %q\n", cfg.LogLevel)
		os.Exit(1)
	}
	log.SetLevel(lvl)
	vlog := backend.Logger("VRFY")
	vlog.SetLevel(lvl)
	verify.UseLogger(vlog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	if cfg.Check != "" {
		err = check(ctx, cfg.Check, cfg.Z)
	} else {
		err = record(ctx, cfg)
	}
	if err != nil {
		log.Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}

// parseBound parses s as a value of the configured domain and returns its
// raw bits.
func parseBound(s string, width uint, signed bool) (uint64, error) {
	if signed {
		v, err := strconv.ParseInt(s, 0, int(width))
		if err != nil {
			return 0, err
		}
		return uint64(v) & (^uint64(0) >> (64 - width)), nil
	}
	return strconv.ParseUint(s, 0, int(width))
}

func header(cfg config) (samplefile.Header, error) {
	var h samplefile.Header
	switch cfg.Width {
	case 8, 16, 32, 64:
	default:
		return h, fmt.Errorf("unsupported width %d", cfg.Width)
	}
	lo, err := parseBound(cfg.Low, cfg.Width, cfg.Signed)
	if err != nil {
		return h, fmt.Errorf("low: %w", err)
	}
	hi, err := parseBound(cfg.High, cfg.Width, cfg.Signed)
	if err != nil {
		return h, fmt.Errorf("high: %w", err)
	}
	v, err := boundedrand.ParseVariant(cfg.Variant)
	if err != nil {
		return h, err
	}
	s, err := extmul.ParseStrategy(cfg.Strategy)
	if err != nil {
		return h, err
	}
	f, err := engine.ParseFamily(cfg.Engine)
	if err != nil {
		return h, err
	}
	return samplefile.Header{
		Width:    uint8(cfg.Width),
		Signed:   cfg.Signed,
		Variant:  v,
		Strategy: s,
		Family:   f,
		Low:      lo,
		High:     hi,
		Seed:     engine.LabelSeed(cfg.Seed),
	}, nil
}

func record(ctx context.Context, cfg config) error {
	h, err := header(cfg)
	if err != nil {
		return err
	}
	stream, err := verify.FromHeader(h)
	if err != nil {
		return err
	}
	w, err := samplefile.Create(cfg.Output, h, cfg.Count)
	if err != nil {
		return err
	}

	log.Infof("Recording %d %s samples to %s...", cfg.Count, h.Variant, cfg.Output)
	start := time.Now()
	for i := uint64(0); i < cfg.Count; i++ {
		if i%(1<<20) == 0 {
			if err := ctx.Err(); err != nil {
				return errors.Join(err, w.Abort())
			}
		}
		if err := w.Append(stream()); err != nil {
			return errors.Join(err, w.Abort())
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	log.Infof("Wrote %d samples in %v", w.Len(), time.Since(start).Round(time.Millisecond))
	return nil
}

func check(ctx context.Context, path string, z float64) error {
	r, err := samplefile.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	h := r.Header()
	log.Infof("%s: %d samples, %d-bit, variant %s, strategy %s, engine %s",
		path, r.Len(), h.Width, h.Variant, h.Strategy, h.Family)

	if err := r.Verify(); err != nil {
		return err
	}
	log.Infof("Checksums OK")

	if h.Family.Deterministic() {
		s, err := verify.ReplayStream(h)
		if err != nil {
			return err
		}
		if err := verify.Replay(ctx, r, s); err != nil {
			return err
		}
		log.Infof("Replay OK")
	} else {
		log.Warnf("Skipping replay: %s engine is not reproducible", h.Family)
	}

	dom := h.Domain()
	if err := verify.Bounded(ctx, r.Len(), dom, h.Low, h.High, fileStream(r)); err != nil {
		return err
	}

	if dom.Transpose(h.High)-dom.Transpose(h.Low) >= verify.MaxBuckets {
		log.Infof("Range too large for a chi-square test")
		return nil
	}
	counts, err := verify.Histogram(ctx, r.Len(), dom, h.Low, h.High, fileStream(r))
	if err != nil {
		return err
	}
	stat, df := verify.ChiSquare(counts)
	if df == 0 {
		return nil
	}
	limit := verify.CriticalValue(df, z)
	log.Infof("Chi-square %.2f with %d degrees of freedom (critical %.2f at z=%.1f)", stat, df, limit, z)
	if float64(r.Len()) < 5*float64(len(counts)) {
		log.Warnf("Fewer than 5 expected samples per value; the statistic is unreliable")
	}
	return verify.Uniform(counts, z)
}

// fileStream yields the samples of r in order.
func fileStream(r *samplefile.Reader) verify.Stream {
	i := 0
	return func() uint64 {
		v := r.At(i)
		i++
		return v
	}
}
