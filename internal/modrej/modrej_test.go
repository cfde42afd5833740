package modrej

import (
	"math"
	"testing"

	"github.com/tamirms/boundedrand/engine"
)

type namedSampler struct {
	name string
	mk   func(a, b uint64) Sampler
}

var samplers = []namedSampler{
	{"java-plain", func(a, b uint64) Sampler { return NewJavaPlain(a, b) }},
	{"java-reuse", func(a, b uint64) Sampler { return NewJavaReuse(a, b) }},
	{"openbsd-plain", func(a, b uint64) Sampler { return NewOpenBSDPlain(a, b) }},
	{"openbsd-reuse", func(a, b uint64) Sampler { return NewOpenBSDReuse(a, b) }},
	{"bitmask", func(a, b uint64) Sampler { return NewBitmask(a, b) }},
	{"fastrange", func(a, b uint64) Sampler { return NewFastRange(a, b) }},
}

func TestSamplersStayInRange(t *testing.T) {
	ranges := [][2]uint64{
		{0, 0},
		{5, 5},
		{7, 22},
		{0, 1_000_000},
		{1 << 40, 1<<40 + 12345},
		{0, 1<<63 + 1<<62}, // forces frequent rejection
		{math.MaxUint64 - 3, math.MaxUint64},
	}
	for _, s := range samplers {
		t.Run(s.name, func(t *testing.T) {
			rng := newTestRNG(t)
			e := engine.FromSource(rng)
			for _, r := range ranges {
				smp := s.mk(r[0], r[1])
				for i := 0; i < 2000; i++ {
					v := smp.Next(e)
					if v < r[0] || v > r[1] {
						t.Fatalf("range [%d, %d] iter %d: got %d", r[0], r[1], i, v)
					}
				}
			}
		})
	}
}

// TestSamplersFullRange checks the distance-wraps-to-zero fast path: every
// draw is returned unchanged and nothing divides by zero.
func TestSamplersFullRange(t *testing.T) {
	for _, s := range samplers {
		t.Run(s.name, func(t *testing.T) {
			smp := s.mk(0, math.MaxUint64)
			e := engine.FromSource(newTestRNG(t))
			ref := engine.FromSource(newTestRNG(t))
			for i := 0; i < 1000; i++ {
				if got, want := smp.Next(e), ref.Next(); got != want {
					t.Fatalf("iter %d: got 0x%X, want raw draw 0x%X", i, got, want)
				}
			}
		})
	}
}

// TestUnbiasedSamplersCoverRange checks that the rejection samplers hit
// every value of a small range with roughly equal frequency.
func TestUnbiasedSamplersCoverRange(t *testing.T) {
	const (
		a, b  = 7, 22
		draws = 160_000
	)
	for _, s := range samplers[:5] {
		t.Run(s.name, func(t *testing.T) {
			smp := s.mk(a, b)
			e := engine.FromSource(newTestRNG(t))
			var counts [b - a + 1]int
			for range draws {
				counts[smp.Next(e)-a]++
			}
			expected := draws / len(counts)
			for i, c := range counts {
				// 10000 expected per bucket, sd ~97; 6 sd is a generous bound.
				if c < expected-600 || c > expected+600 {
					t.Errorf("value %d drawn %d times, want about %d", a+i, c, expected)
				}
			}
		})
	}
}

// TestReuseMatchesPlain checks that precomputing the distance does not
// change the output of the comparator families.
func TestReuseMatchesPlain(t *testing.T) {
	pairs := [][2]Sampler{
		{NewJavaPlain(3, 1<<63+17), NewJavaReuse(3, 1<<63+17)},
		{NewOpenBSDPlain(3, 1<<63+17), NewOpenBSDReuse(3, 1<<63+17)},
	}
	for i, p := range pairs {
		e1 := engine.NewLehmer64(uint64(i))
		e2 := engine.NewLehmer64(uint64(i))
		for j := 0; j < 10000; j++ {
			if x, y := p[0].Next(e1), p[1].Next(e2); x != y {
				t.Fatalf("pair %d iter %d: plain %d != reuse %d", i, j, x, y)
			}
		}
	}
}

func TestBitmaskDegenerate(t *testing.T) {
	s := NewBitmask(42, 42)
	e := engine.NewLehmer64(1)
	for i := 0; i < 100; i++ {
		if v := s.Next(e); v != 42 {
			t.Fatalf("iter %d: got %d, want 42", i, v)
		}
	}
	if s.mask != 0 {
		t.Errorf("mask = 0x%X for single-value range, want 0", s.mask)
	}
}
