package engine

import "math/rand/v2"

// Source adapts a math/rand/v2 Source (PCG, ChaCha8, ...) into a 64-bit
// Engine.
type Source struct {
	src rand.Source
}

// FromSource wraps src.
func FromSource(src rand.Source) *Source {
	return &Source{src: src}
}

// Next implements Engine.
func (s *Source) Next() uint64 { return s.src.Uint64() }

// Bits implements Engine.
func (s *Source) Bits() uint { return 64 }

// Uint64 lets a Source stand in wherever a rand.Source is expected.
func (s *Source) Uint64() uint64 { return s.src.Uint64() }
