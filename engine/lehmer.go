package engine

import "math/bits"

// lehmerMultiplier is the 64-bit multiplier of the 128-bit Lehmer state.
const lehmerMultiplier = 0xda942042e4dd58b5

// Lehmer64 is a 128-bit multiplicative congruential generator returning the
// high 64 bits of its state.
type Lehmer64 struct {
	hi, lo uint64
}

// splitMix64 is the SplitMix64 output function, used to expand seeds.
func splitMix64(z uint64) uint64 {
	z += 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// NewLehmer64 returns a Lehmer64 whose state is expanded from seed.
func NewLehmer64(seed uint64) *Lehmer64 {
	l := new(Lehmer64)
	l.Seed(seed)
	return l
}

// Seed resets the state from seed. The low word is forced odd so the state
// never collapses to zero.
func (l *Lehmer64) Seed(seed uint64) {
	l.hi = splitMix64(seed)
	l.lo = splitMix64(seed+0x9E3779B97F4A7C15) | 1
}

// Next implements Engine.
func (l *Lehmer64) Next() uint64 {
	hl := l.hi * lehmerMultiplier
	l.hi, l.lo = bits.Mul64(l.lo, lehmerMultiplier)
	l.hi += hl
	return l.hi
}

// Bits implements Engine.
func (l *Lehmer64) Bits() uint { return 64 }
