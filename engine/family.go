package engine

import (
	"fmt"
	"math/rand/v2"

	brerrors "github.com/tamirms/boundedrand/errors"
)

// Family identifies an engine implementation.
type Family uint8

const (
	// FamilyPCG32 is PCG32, native width 32.
	FamilyPCG32 Family = 0

	// FamilyPCG64 is math/rand/v2's PCG-DXSM, native width 64.
	FamilyPCG64 Family = 1

	// FamilyChaCha8 is math/rand/v2's ChaCha8, native width 64.
	FamilyChaCha8 Family = 2

	// FamilyLehmer64 is Lehmer64, native width 64.
	FamilyLehmer64 Family = 3

	// FamilyMurmur is the MurmurHash3 counter engine, native width 64.
	FamilyMurmur Family = 4

	// FamilyCrypto is the self-reseeding ChaCha20 CSPRNG, native width 64.
	// It ignores the seed and is not reproducible.
	FamilyCrypto Family = 5
)

var familyNames = [...]string{
	FamilyPCG32:    "pcg32",
	FamilyPCG64:    "pcg64",
	FamilyChaCha8:  "chacha8",
	FamilyLehmer64: "lehmer64",
	FamilyMurmur:   "murmur",
	FamilyCrypto:   "crypto",
}

// String returns the family name.
func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return "unknown"
}

// Width returns the native output width of engines in the family.
func (f Family) Width() uint {
	if f == FamilyPCG32 {
		return 32
	}
	return 64
}

// Deterministic reports whether engines in the family replay identically
// from the same seed.
func (f Family) Deterministic() bool {
	return f != FamilyCrypto
}

// Families returns every known family.
func Families() []Family {
	return []Family{FamilyPCG32, FamilyPCG64, FamilyChaCha8, FamilyLehmer64, FamilyMurmur, FamilyCrypto}
}

// ParseFamily returns the family with the given name.
func ParseFamily(name string) (Family, error) {
	for i, n := range familyNames {
		if n == name {
			return Family(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", brerrors.ErrUnknownEngine, name)
}

// New constructs an engine of family f from seed.
func New(f Family, seed Seed) (Engine, error) {
	switch f {
	case FamilyPCG32:
		return NewPCG32(uint32(seed.Lo)), nil
	case FamilyPCG64:
		return FromSource(rand.NewPCG(seed.Hi, seed.Lo)), nil
	case FamilyChaCha8:
		var key [32]byte
		putSeed(key[:], seed)
		return FromSource(rand.NewChaCha8(key)), nil
	case FamilyLehmer64:
		return NewLehmer64(seed.Lo ^ seed.Hi), nil
	case FamilyMurmur:
		return NewMurmur(uint32(seed.Hi), seed.Lo), nil
	case FamilyCrypto:
		return NewCrypto()
	default:
		return nil, fmt.Errorf("%w: %d", brerrors.ErrUnknownEngine, f)
	}
}

// putSeed spreads seed over dst by repeating its 16 bytes, mixing each
// repetition so the key halves differ.
func putSeed(dst []byte, seed Seed) {
	hi, lo := seed.Hi, seed.Lo
	for i := 0; i+16 <= len(dst); i += 16 {
		for j := 0; j < 8; j++ {
			dst[i+j] = byte(lo >> (8 * j))
			dst[i+8+j] = byte(hi >> (8 * j))
		}
		hi, lo = splitMix64(hi), splitMix64(lo)
	}
}
