package verify

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tamirms/boundedrand"
	brerrors "github.com/tamirms/boundedrand/errors"
	"github.com/tamirms/boundedrand/engine"
	"github.com/tamirms/boundedrand/extmul"
	"github.com/tamirms/boundedrand/internal/order"
	"github.com/tamirms/boundedrand/internal/samplefile"
)

// counter returns a stream yielding start, start+1, ...
func counter(start uint64) Stream {
	return func() uint64 {
		start++
		return start - 1
	}
}

// reuseStream returns a stream over [a, b] from a fresh default PCG32.
func reuseStream(a, b uint32, opts ...boundedrand.Option) Stream {
	return Of[uint32](boundedrand.Must(boundedrand.NewReuse(a, b, opts...)), engine.DefaultPCG32())
}

func TestCompareAgree(t *testing.T) {
	if err := Compare(context.Background(), 10000, counter(5), counter(5)); err != nil {
		t.Fatalf("Compare: %v", err)
	}
}

func TestCompareReportsFirstMismatch(t *testing.T) {
	right := counter(0)
	left := func() Stream {
		s := counter(0)
		return func() uint64 {
			v := s()
			if v == 1234 {
				return 99
			}
			return v
		}
	}()
	err := Compare(context.Background(), 10000, left, right)
	var mm *MismatchError
	if !errors.As(err, &mm) {
		t.Fatalf("got %v, want *MismatchError", err)
	}
	if mm.Index != 1234 || mm.Left != 99 || mm.Right != 1234 {
		t.Errorf("mismatch = %+v, want index 1234 left 99 right 1234", mm)
	}
	if !errors.Is(err, brerrors.ErrSequenceMismatch) {
		t.Errorf("errors.Is(%v, ErrSequenceMismatch) = false", err)
	}
}

func TestCompareHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Compare(ctx, 10, counter(0), counter(0)); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestOfMasksSignedSamples(t *testing.T) {
	g := boundedrand.Must(boundedrand.NewNoReuse[int16](-3, -3))
	s := Of[int16](g, engine.DefaultPCG32())
	if got := s(); got != 0xFFFD {
		t.Errorf("Of(-3) = 0x%X, want 0xFFFD", got)
	}
}

func TestBounded(t *testing.T) {
	ctx := context.Background()
	d := order.DomainOf[uint32]()
	if err := Bounded(ctx, 100000, d, 7, 22, reuseStream(7, 22)); err != nil {
		t.Fatalf("Bounded: %v", err)
	}
	if err := Bounded(ctx, 100, d, 7, 22, counter(20)); !errors.Is(err, brerrors.ErrOutOfRange) {
		t.Errorf("got %v, want ErrOutOfRange", err)
	}

	// [-2, 2] as raw int8 bits wraps through zero.
	sd := order.DomainOf[int8]()
	g := boundedrand.Must(boundedrand.NewLazyReuse[int8](-2, 2))
	if err := Bounded(ctx, 10000, sd, 0xFE, 0x02, Of[int8](g, engine.DefaultPCG32())); err != nil {
		t.Fatalf("Bounded signed: %v", err)
	}
}

func TestDigest(t *testing.T) {
	a := DigestOf(5000, reuseStream(0, 1000))
	b := DigestOf(5000, reuseStream(0, 1000, boundedrand.WithStrategy(extmul.StrategyNaive)))
	if a != b {
		t.Errorf("same sequence gave digests 0x%X and 0x%X", a, b)
	}
	if c := DigestOf(5000, reuseStream(0, 1001)); c == a {
		t.Errorf("different ranges gave the same digest 0x%X", a)
	}

	d := NewDigest()
	s := reuseStream(0, 1000)
	for range 5000 {
		d.Add(s())
	}
	if d.Count() != 5000 {
		t.Errorf("Count = %d, want 5000", d.Count())
	}
	if d.Sum64() != a {
		t.Errorf("incremental digest 0x%X != DigestOf 0x%X", d.Sum64(), a)
	}
}

func TestRun(t *testing.T) {
	useTestLogger(t)
	var cases []Case
	for _, s := range extmul.Available() {
		for _, v := range boundedrand.Variants() {
			cases = append(cases, Case{
				Name:  v.String() + "/" + s.String(),
				Draws: 20000,
				Left: func() (Stream, error) {
					return reuseStream(3, 1<<20), nil
				},
				Right: func() (Stream, error) {
					g, err := boundedrand.New[uint32](v, 3, 1<<20, boundedrand.WithStrategy(s))
					if err != nil {
						return nil, err
					}
					return Of(g, engine.DefaultPCG32()), nil
				},
			})
		}
	}
	if err := Run(context.Background(), cases, 4); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunReportsFailingCase(t *testing.T) {
	ok := Case{
		Name:  "ok",
		Draws: 1000,
		Left:  func() (Stream, error) { return counter(0), nil },
		Right: func() (Stream, error) { return counter(0), nil },
	}
	bad := Case{
		Name:  "shifted",
		Draws: 1000,
		Left:  func() (Stream, error) { return counter(0), nil },
		Right: func() (Stream, error) { return counter(1), nil },
	}
	err := Run(context.Background(), []Case{ok, bad, ok}, 0)
	if !errors.Is(err, brerrors.ErrSequenceMismatch) {
		t.Fatalf("got %v, want ErrSequenceMismatch", err)
	}
	if !strings.HasPrefix(err.Error(), "shifted: ") {
		t.Errorf("error %q does not name the failing case", err)
	}

	broken := Case{
		Name:  "broken",
		Draws: 1,
		Left:  func() (Stream, error) { return nil, brerrors.ErrUnknownEngine },
		Right: func() (Stream, error) { return counter(0), nil },
	}
	if err := Run(context.Background(), []Case{broken}, 1); !errors.Is(err, brerrors.ErrUnknownEngine) {
		t.Errorf("got %v, want ErrUnknownEngine", err)
	}
}

func TestChiSquare(t *testing.T) {
	stat, df := ChiSquare([]uint64{10, 20, 30})
	if df != 2 || math.Abs(stat-10) > 1e-9 {
		t.Errorf("ChiSquare = %v, %d; want 10, 2", stat, df)
	}
	if stat, df := ChiSquare([]uint64{7, 7, 7, 7}); stat != 0 || df != 3 {
		t.Errorf("flat counts: got %v, %d", stat, df)
	}
	if _, df := ChiSquare([]uint64{42}); df != 0 {
		t.Errorf("single bucket df = %d, want 0", df)
	}
}

func TestCriticalValue(t *testing.T) {
	// Tabulated 95th percentiles.
	for _, tc := range []struct {
		df   int
		want float64
	}{
		{10, 18.307},
		{15, 24.996},
		{100, 124.342},
	} {
		if got := CriticalValue(tc.df, 1.6449); math.Abs(got-tc.want) > 0.1 {
			t.Errorf("CriticalValue(%d) = %.3f, want ~%.3f", tc.df, got, tc.want)
		}
	}
}

func TestUniform(t *testing.T) {
	ctx := context.Background()
	counts, err := Histogram(ctx, 160000, order.DomainOf[uint32](), 7, 22, reuseStream(7, 22))
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	if len(counts) != 16 {
		t.Fatalf("len(counts) = %d, want 16", len(counts))
	}
	if err := Uniform(counts, 4); err != nil {
		t.Errorf("Uniform: %v", err)
	}

	skewed := make([]uint64, 16)
	for i := range skewed {
		skewed[i] = 10000
	}
	skewed[0] += 1000
	if err := Uniform(skewed, 4); !errors.Is(err, brerrors.ErrNotUniform) {
		t.Errorf("skewed counts: got %v, want ErrNotUniform", err)
	}
}

func TestHistogramErrors(t *testing.T) {
	ctx := context.Background()
	d := order.DomainOf[uint32]()
	if _, err := Histogram(ctx, 10, d, 0, 3, counter(2)); !errors.Is(err, brerrors.ErrOutOfRange) {
		t.Errorf("got %v, want ErrOutOfRange", err)
	}
	if _, err := Histogram(ctx, 10, d, 0, MaxBuckets, counter(0)); err == nil {
		t.Error("expected an error for an oversized histogram")
	}
	if _, err := Histogram(ctx, 10, d, 5, 4, counter(0)); !errors.Is(err, brerrors.ErrInvalidRange) {
		t.Errorf("got %v, want ErrInvalidRange", err)
	}
}

// record writes n samples of the generator h describes to a new file.
func record(t *testing.T, h samplefile.Header, n int) string {
	t.Helper()
	s, err := FromHeader(h)
	if err != nil {
		t.Fatalf("FromHeader: %v", err)
	}
	return recordStream(t, h, n, s)
}

func recordStream(t *testing.T, h samplefile.Header, n int, s Stream) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "samples.brsf")
	w, err := samplefile.Create(path, h, uint64(n))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for range n {
		if err := w.Append(s()); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func TestReplayFile(t *testing.T) {
	lo := int32(-1000)
	for _, tc := range []samplefile.Header{
		{Width: 32, Variant: boundedrand.VariantReuse, Family: engine.FamilyPCG32, Low: 7, High: 22, Seed: engine.Seed{Lo: engine.DefaultPCG32Seed}},
		{Width: 64, Variant: boundedrand.VariantLazyReuse, Strategy: extmul.StrategyOptimized, Family: engine.FamilyPCG64, Low: 0, High: 1e12, Seed: engine.LabelSeed("pcg64")},
		{Width: 32, Signed: true, Variant: boundedrand.VariantNoReuse, Family: engine.FamilyMurmur, Low: uint64(uint32(lo)), High: 1000, Seed: engine.LabelSeed("murmur")},
		{Width: 8, Variant: boundedrand.VariantReuse, Family: engine.FamilyChaCha8, Low: 0, High: 255, Seed: engine.LabelSeed("chacha8")},
		{Width: 16, Variant: boundedrand.VariantReuse, Strategy: extmul.Default(), Family: engine.FamilyLehmer64, Low: 100, High: 60000, Seed: engine.LabelSeed("lehmer")},
	} {
		t.Run(tc.Family.String(), func(t *testing.T) {
			path := record(t, tc, 5000)
			r, err := samplefile.Open(path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer r.Close()
			if err := ReplayFile(context.Background(), r); err != nil {
				t.Fatalf("ReplayFile: %v", err)
			}
		})
	}
}

func TestReplayDetectsDivergence(t *testing.T) {
	h := samplefile.Header{Width: 32, Family: engine.FamilyPCG32, Low: 0, High: 1 << 30, Seed: engine.Seed{Lo: 1}}
	path := record(t, h, 1000)
	r, err := samplefile.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	other := h
	other.Seed.Lo = 2
	s, err := FromHeader(other)
	if err != nil {
		t.Fatal(err)
	}
	var mm *MismatchError
	if err := Replay(context.Background(), r, s); !errors.As(err, &mm) || mm.Index != 0 {
		t.Errorf("got %v, want mismatch at draw 0", err)
	}
}

func TestReplayFileRejectsCrypto(t *testing.T) {
	h := samplefile.Header{Width: 64, Family: engine.FamilyCrypto, Low: 0, High: 99}
	path := recordStream(t, h, 10, counter(0))
	r, err := samplefile.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if err := ReplayFile(context.Background(), r); !errors.Is(err, brerrors.ErrNotReplayable) {
		t.Errorf("got %v, want ErrNotReplayable", err)
	}
}

func TestReplayStreamSubstitutesStrategy(t *testing.T) {
	h := samplefile.Header{Width: 64, Variant: boundedrand.VariantReuse, Strategy: extmul.StrategyOptimized, Family: engine.FamilyPCG64, Low: 0, High: 1e9, Seed: engine.LabelSeed("intrinsic")}
	s, err := FromHeader(h)
	if err != nil {
		t.Fatal(err)
	}
	h.Strategy = extmul.StrategyIntrinsic
	path := recordStream(t, h, 2000, s)
	r, err := samplefile.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	// Intrinsic and optimized products agree, so the file replays on
	// builds with and without the intrinsic.
	replay, err := ReplayStream(r.Header())
	if err != nil {
		t.Fatalf("ReplayStream: %v", err)
	}
	if err := Replay(context.Background(), r, replay); err != nil {
		t.Fatalf("Replay: %v", err)
	}

	crypto := h
	crypto.Family = engine.FamilyCrypto
	if _, err := ReplayStream(crypto); !errors.Is(err, brerrors.ErrNotReplayable) {
		t.Errorf("crypto: got %v, want ErrNotReplayable", err)
	}
}
