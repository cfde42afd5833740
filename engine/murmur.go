package engine

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

// Murmur is a counter-mode engine: output i is the 128-bit MurmurHash3 of
// the little-endian counter i under a 32-bit key, emitted as two 64-bit
// words. Any position in the stream can be reached by setting the counter,
// which makes it convenient for splitting one seed into independent
// substreams.
type Murmur struct {
	key     uint32
	counter uint64
	buf     [8]byte
	pending uint64
	hasPend bool
}

// NewMurmur returns a Murmur engine keyed by key, starting at counter start.
func NewMurmur(key uint32, start uint64) *Murmur {
	return &Murmur{key: key, counter: start}
}

// Next implements Engine.
func (m *Murmur) Next() uint64 {
	if m.hasPend {
		m.hasPend = false
		return m.pending
	}
	binary.LittleEndian.PutUint64(m.buf[:], m.counter)
	m.counter++
	h1, h2 := murmur3.Sum128WithSeed(m.buf[:], m.key)
	m.pending = h2
	m.hasPend = true
	return h1
}

// Bits implements Engine.
func (m *Murmur) Bits() uint { return 64 }

// Counter returns the next counter value to be hashed.
func (m *Murmur) Counter() uint64 { return m.counter }
