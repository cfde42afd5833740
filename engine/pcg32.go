package engine

import "math/bits"

const (
	// pcgMultiplier is the LCG multiplier of the 64-bit state.
	pcgMultiplier = 6364136223846793005

	// pcgIncrement is the fixed odd stream increment.
	pcgIncrement = 0x13ed0cc53f939476<<1 | 1

	// DefaultPCG32Seed is the seed DefaultPCG32 starts from.
	DefaultPCG32Seed = 0xed743cc4
)

// PCG32 is a PCG XSH-RR 64/32 generator with a fixed stream. It produces
// 32-bit outputs and is the reference narrow engine for width-stretching
// tests.
type PCG32 struct {
	state uint64
}

// NewPCG32 returns a PCG32 seeded with seed.
func NewPCG32(seed uint32) *PCG32 {
	p := new(PCG32)
	p.Seed(seed)
	return p
}

// DefaultPCG32 returns a PCG32 seeded with DefaultPCG32Seed.
func DefaultPCG32() *PCG32 {
	return NewPCG32(DefaultPCG32Seed)
}

// Seed resets the generator: the state is cleared, stepped once, offset by
// seed and stepped again.
func (p *PCG32) Seed(seed uint32) {
	p.state = 0
	p.Uint32()
	p.state += uint64(seed)
	p.Uint32()
}

// Uint32 returns the permuted output of the current state and advances it.
func (p *PCG32) Uint32() uint32 {
	old := p.state
	p.state = old*pcgMultiplier + pcgIncrement

	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	return bits.RotateLeft32(xorshifted, -int(old>>59))
}

// Next implements Engine.
func (p *PCG32) Next() uint64 { return uint64(p.Uint32()) }

// Bits implements Engine.
func (p *PCG32) Bits() uint { return 32 }
