package engine

import (
	"fmt"

	"github.com/decred/dcrd/crypto/rand"
)

// Crypto is a 64-bit engine backed by a ChaCha20 userspace CSPRNG that
// reseeds itself from the operating system. Its output cannot be replayed;
// use it when the bounded generators should run off unpredictable bits.
type Crypto struct {
	prng *rand.PRNG
}

// NewCrypto returns a freshly seeded Crypto engine.
func NewCrypto() (*Crypto, error) {
	p, err := rand.NewPRNG()
	if err != nil {
		return nil, fmt.Errorf("seed crypto engine: %w", err)
	}
	return &Crypto{prng: p}, nil
}

// Next implements Engine.
func (c *Crypto) Next() uint64 { return c.prng.Uint64() }

// Bits implements Engine.
func (c *Crypto) Bits() uint { return 64 }
