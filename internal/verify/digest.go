package verify

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Digest fingerprints a stream of samples with xxHash64. Two generators
// that agree on every draw produce the same digest, which lets long runs be
// compared against a single pinned value instead of a stored sequence.
type Digest struct {
	h   *xxhash.Digest
	buf [8]byte
	n   uint64
}

// NewDigest returns an empty Digest.
func NewDigest() *Digest {
	return &Digest{h: xxhash.New()}
}

// Add folds v into the digest.
func (d *Digest) Add(v uint64) {
	binary.LittleEndian.PutUint64(d.buf[:], v)
	_, _ = d.h.Write(d.buf[:]) // never errors
	d.n++
}

// Count returns the number of samples added.
func (d *Digest) Count() uint64 { return d.n }

// Sum64 returns the digest of the samples added so far.
func (d *Digest) Sum64() uint64 { return d.h.Sum64() }

// DigestOf draws n samples from s and returns their digest.
func DigestOf(n int, s Stream) uint64 {
	d := NewDigest()
	for range n {
		d.Add(s())
	}
	return d.Sum64()
}
