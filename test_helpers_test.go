package boundedrand

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"testing"

	"github.com/tamirms/boundedrand/engine"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// newTestPCG returns a math/rand/v2 PCG engine seeded from the test name.
// Two calls in the same test return engines with identical streams.
func newTestPCG(t testing.TB) engine.Engine {
	t.Helper()
	rng := newTestRNG(t)
	return engine.FromSource(rand.NewPCG(rng.Uint64(), rng.Uint64()))
}

// scripted replays fixed outputs, then panics.
type scripted struct {
	out  []uint64
	bits uint
}

func (s *scripted) Next() uint64 {
	v := s.out[0]
	s.out = s.out[1:]
	return v
}

func (s *scripted) Bits() uint { return s.bits }

// counting wraps an engine and counts calls to Next.
type counting struct {
	engine.Engine
	n int
}

func (c *counting) Next() uint64 {
	c.n++
	return c.Engine.Next()
}

// engineMaker builds a fresh engine; calling it twice yields two engines
// with identical streams.
type engineMaker struct {
	name string
	make func() engine.Engine
}

func testEngines(t testing.TB) []engineMaker {
	t.Helper()
	rng := newTestRNG(t)
	s1, s2 := rng.Uint64(), rng.Uint64()
	return []engineMaker{
		{"pcg32", func() engine.Engine { return engine.DefaultPCG32() }},
		{"pcg64", func() engine.Engine { return engine.FromSource(rand.NewPCG(s1, s2)) }},
	}
}
