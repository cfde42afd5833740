// Package boundedrand draws unbiased integers from an inclusive range using
// Lemire's multiply-and-reject method.
//
// A draw r of W uniform bits is multiplied by the range size d. The top W
// bits of the 2W-bit product are the offset into the range, and the low W
// bits are only inspected to reject the few products that would bias it. In
// the common case no division is performed.
//
// # Basic Usage
//
// Drawing from a fixed range:
//
//	g, err := boundedrand.NewReuse(int32(-5), int32(5))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	e := engine.DefaultPCG32()
//	for range 10 {
//	    fmt.Println(g.Next(e))
//	}
//
// Choosing a variant and multiply strategy at runtime:
//
//	d, err := boundedrand.New(boundedrand.VariantLazyReuse, uint64(0), n-1,
//	    boundedrand.WithStrategy(extmul.StrategyOptimized))
//
// The three variants, NoReuse, Reuse and LazyReuse, return the same
// sequence for the same range and engine. They differ only in when the
// rejection threshold is computed. Signed ranges are handled by mapping the
// domain onto unsigned words in order, so [-5, 5] is as cheap as [0, 10].
//
// # Package Structure
//
// The implementation is organized as follows:
//
//   - Generators: noreuse.go, reuse.go, lazy.go (one type per variant), lemire.go (shared core)
//   - Variant dispatch: distribution.go (Distribution, Variant, New, Must)
//   - Configuration: options.go (Option, WithStrategy, WithMultiplier)
//   - Multiply backends: extmul/ (Naive, Optimized, Intrinsic, Strategy)
//   - Bit sources: engine/ (Engine, Fill, PCG32 and other families, LabelSeed)
//   - Errors: errors/ (sentinels shared by every package)
//   - Domain ordering: internal/order/ (Domain, ToUnsigned, FromUnsigned)
//   - Reference comparators: internal/modrej/ (Java, OpenBSD, Bitmask, FastRange)
//   - Tooling: internal/verify/ (cross-checks, chi-square), internal/samplefile/ (recorded streams), internal/encoding/
//   - Commands: cmd/bench, cmd/rangedump
package boundedrand
