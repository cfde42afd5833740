package modrej

import (
	"math/bits"

	"github.com/tamirms/boundedrand/engine"
)

// FastRange maps a draw into [a, b] by taking the high word of draw*d,
// the "fastrange" multiply-shift reduction. There is no rejection step, so
// offsets are biased by up to one part in 2^64/d. It is what the Lemire
// generators reduce to when every draw takes the fast-accept path.
type FastRange struct {
	a, d uint64
}

// NewFastRange returns a FastRange sampler over [a, b].
func NewFastRange(a, b uint64) *FastRange {
	return &FastRange{a: a, d: distance(a, b)}
}

// Next implements Sampler.
func (f *FastRange) Next(e engine.Engine) uint64 {
	x := engine.Draw64(e)
	if f.d == 0 {
		return x
	}
	return f.a + Reduce(x, f.d)
}

// Reduce maps x uniformly-ish to [0, n) with a multiply and a shift.
// Reduce is monotone in x and returns 0 when n == 0.
func Reduce(x, n uint64) uint64 {
	hi, _ := bits.Mul64(x, n)
	return hi
}
