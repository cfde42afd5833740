package modrej

import (
	"math/bits"

	"github.com/tamirms/boundedrand/engine"
)

// Bitmask masks each draw down to the smallest power of two covering the
// range and retries until the masked value fits. It never divides but may
// need up to two draws per result on average.
type Bitmask struct {
	a, max, mask uint64 // max = b - a
}

// NewBitmask returns a Bitmask sampler over [a, b].
func NewBitmask(a, b uint64) *Bitmask {
	m := b - a
	return &Bitmask{a: a, max: m, mask: ^uint64(0) >> bits.LeadingZeros64(m)}
}

// Next implements Sampler.
func (s *Bitmask) Next(e engine.Engine) uint64 {
	for {
		v := engine.Draw64(e) & s.mask
		if v <= s.max {
			return s.a + v
		}
	}
}
