package engine

import "github.com/zeebo/xxh3"

// Seed is 128 bits of seed material. Engines with smaller seeds take what
// they need from Lo first.
type Seed struct {
	Hi, Lo uint64
}

// LabelSeed derives a reproducible seed from a label by hashing it with
// XXH3-128. Distinct labels give unrelated seeds, so a test or tool can name
// each stream it needs instead of juggling integer constants.
func LabelSeed(label string) Seed {
	h := xxh3.HashString128(label)
	return Seed{Hi: h.Hi, Lo: h.Lo}
}
