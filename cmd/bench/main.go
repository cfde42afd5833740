// Bench times the bounded generators against each other and against the
// reference algorithms over a single range.
//
// Usage:
//
//	go run ./cmd/bench --low 0 --high 1000000 --engine pcg32
//
// Every variant is timed with every multiply strategy available on the
// target, followed by the modulo-rejection comparators and math/rand/v2's
// Uint64N on the same engine. With --crosscheck, all variants and
// strategies are first checked to produce identical sequences.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime/pprof"
	"time"

	"github.com/decred/slog"
	flags "github.com/jessevdk/go-flags"

	"github.com/tamirms/boundedrand"
	"github.com/tamirms/boundedrand/engine"
	"github.com/tamirms/boundedrand/extmul"
	"github.com/tamirms/boundedrand/internal/modrej"
	"github.com/tamirms/boundedrand/internal/verify"
)

type config struct {
	Draws      int    `short:"n" long:"draws" description:"draws per timed run"`
	Low        uint64 `long:"low" description:"low bound of the range"`
	High       uint64 `long:"high" description:"high bound of the range"`
	Engine     string `short:"e" long:"engine" description:"engine family (pcg32, pcg64, chacha8, lehmer64, murmur, crypto)"`
	Seed       string `long:"seed" description:"label the engine seed is derived from"`
	CrossCheck bool   `long:"crosscheck" description:"check that all variants and strategies agree before timing"`
	Workers    int    `long:"workers" description:"parallel cross-check workers (0 = GOMAXPROCS)"`
	CPUProfile string `long:"cpuprofile" description:"write cpu profile to file"`
	LogLevel   string `long:"loglevel" description:"logging level (trace, debug, info, warn, error, critical, off)"`
}

var log slog.Logger

// sink keeps timed loops from being optimized away.
var sink uint64

// sampler is anything that turns engine output into a bounded value.
type sampler func(e engine.Engine) uint64

// result is one timed row.
type result struct {
	name    string
	elapsed time.Duration
}

func main() {
	cfg := config{
		Draws:    10_000_000,
		High:     1_000_000,
		Engine:   "pcg32",
		Seed:     "bench",
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

	backend := slog.NewBackend(os.Stdout)
	log = backend.Logger("BNCH")
	lvl, ok := slog.LevelFromString(cfg.LogLevel)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown log level %q\n", cfg.LogLevel)
		os.Exit(1)
	}
	log.SetLevel(lvl)
	vlog := backend.Logger("VRFY")
	vlog.SetLevel(lvl)
	verify.UseLogger(vlog)

	if err := run(cfg); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

// checkConfig rejects settings the timing table cannot report on.
func checkConfig(cfg config) error {
	if cfg.Draws <= 0 {
		return fmt.Errorf("draws must be positive, got %d", cfg.Draws)
	}
	if cfg.Low > cfg.High {
		return fmt.Errorf("low %d > high %d", cfg.Low, cfg.High)
	}
	return nil
}

// engineFactory returns a constructor for fresh engines of family f, all
// seeded from seed.
func engineFactory(f engine.Family, seed engine.Seed) func() engine.Engine {
	return func() engine.Engine {
		e, err := engine.New(f, seed)
		if err != nil {
			// f came from ParseFamily, so only the crypto engine's
			// entropy read can fail here.
			panic(err)
		}
		return e
	}
}

func run(cfg config) error {
	if err := checkConfig(cfg); err != nil {
		return err
	}
	family, err := engine.ParseFamily(cfg.Engine)
	if err != nil {
		return err
	}
	seed := engine.LabelSeed(cfg.Seed)
	newEngine := engineFactory(family, seed)

	if cfg.CrossCheck {
		checkEngine := newEngine
		if !family.Deterministic() {
			log.Warnf("%s engine is not reproducible; cross-checking on pcg64", family)
			checkEngine = engineFactory(engine.FamilyPCG64, seed)
		}
		if err := crossCheck(cfg, checkEngine); err != nil {
			return err
		}
	}

	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	lo, hi := cfg.Low, cfg.High
	var results []result
	time1 := func(name string, s sampler) {
		e := newEngine()
		start := time.Now()
		var acc uint64
		for range cfg.Draws {
			acc += s(e)
		}
		elapsed := time.Since(start)
		sink += acc
		log.Debugf("%s: %v", name, elapsed)
		results = append(results, result{name, elapsed})
	}

	log.Infof("Timing %d draws over [%d, %d] on %s...", cfg.Draws, lo, hi, family)
	time1("raw 64-bit draw", engine.Draw64)
	for _, v := range boundedrand.Variants() {
		for _, s := range extmul.Available() {
			g, err := boundedrand.New(v, lo, hi, boundedrand.WithStrategy(s))
			if err != nil {
				return err
			}
			time1(fmt.Sprintf("%s/%s", v, s), g.Next)
		}
	}
	for _, c := range comparators(lo, hi) {
		time1(c.name, c.s.Next)
	}
	time1("math/rand/v2 Uint64N", stdSampler(lo, hi))

	printResults(cfg, family, results)
	return nil
}

type comparator struct {
	name string
	s    modrej.Sampler
}

func comparators(lo, hi uint64) []comparator {
	return []comparator{
		{"java plain", modrej.NewJavaPlain(lo, hi)},
		{"java reuse", modrej.NewJavaReuse(lo, hi)},
		{"openbsd plain", modrej.NewOpenBSDPlain(lo, hi)},
		{"openbsd reuse", modrej.NewOpenBSDReuse(lo, hi)},
		{"bitmask", modrej.NewBitmask(lo, hi)},
		{"fastrange (biased)", modrej.NewFastRange(lo, hi)},
	}
}

// engineSource lets math/rand/v2 draw from an engine.
type engineSource struct{ e engine.Engine }

func (s engineSource) Uint64() uint64 { return engine.Draw64(s.e) }

func stdSampler(lo, hi uint64) sampler {
	var r *rand.Rand
	var bound engine.Engine
	n := hi - lo + 1
	return func(e engine.Engine) uint64 {
		if e != bound {
			r, bound = rand.New(engineSource{e}), e
		}
		if n == 0 {
			return r.Uint64()
		}
		return lo + r.Uint64N(n)
	}
}

func crossCheck(cfg config, newEngine func() engine.Engine) error {
	draws := min(cfg.Draws, 1_000_000)
	lo, hi := cfg.Low, cfg.High
	ref := func() (verify.Stream, error) {
		g, err := boundedrand.NewReuse(lo, hi, boundedrand.WithStrategy(extmul.StrategyNaive))
		if err != nil {
			return nil, err
		}
		return verify.Of[uint64](g, newEngine()), nil
	}
	var cases []verify.Case
	for _, v := range boundedrand.Variants() {
		for _, s := range extmul.Available() {
			cases = append(cases, verify.Case{
				Name:  fmt.Sprintf("%s/%s", v, s),
				Draws: draws,
				Left:  ref,
				Right: func() (verify.Stream, error) {
					g, err := boundedrand.New(v, lo, hi, boundedrand.WithStrategy(s))
					if err != nil {
						return nil, err
					}
					return verify.Of(g, newEngine()), nil
				},
			})
		}
	}
	log.Infof("Cross-checking %d variant/strategy pairs over %d draws...", len(cases), draws)
	return verify.Run(context.Background(), cases, cfg.Workers)
}

func printResults(cfg config, family engine.Family, results []result) {
	fmt.Printf("\n")
	fmt.Printf("╔══════════════════════════════╦════════════════╦════════════════╗\n")
	fmt.Printf("║ Engine: %-21s║ Draws: %-8d║                ║\n", family, cfg.Draws)
	fmt.Printf("╠══════════════════════════════╬════════════════╬════════════════╣\n")
	fmt.Printf("║ Sampler                      ║ Latency        ║ Throughput     ║\n")
	fmt.Printf("╠══════════════════════════════╬════════════════╬════════════════╣\n")
	for _, r := range results {
		ns := float64(r.elapsed.Nanoseconds()) / float64(cfg.Draws)
		mps := float64(cfg.Draws) / r.elapsed.Seconds() / 1_000_000
		fmt.Printf("║ %-29s║ %6.2f ns      ║ %7.1f M/sec  ║\n", r.name, ns, mps)
	}
	fmt.Printf("╚══════════════════════════════╩════════════════╩════════════════╝\n")
}
