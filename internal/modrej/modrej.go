// Package modrej holds reference bounded-integer algorithms used to measure
// and cross-check the Lemire generators. They work on 64-bit unsigned ranges
// only, draw 64 bits per attempt, and are not meant for production use.
//
// Java, OpenBSD and Bitmask are unbiased rejection schemes built on modulo
// reduction or masking. FastRange is the multiply-high reduction without
// rejection and is biased whenever the range size does not divide 2^64; it
// exists as a lower bound for benchmark comparisons.
package modrej

import "github.com/tamirms/boundedrand/engine"

// Sampler draws one value from a fixed range.
type Sampler interface {
	Next(e engine.Engine) uint64
}

// distance returns b-a+1 with wraparound; 0 means the full 64-bit range.
func distance(a, b uint64) uint64 {
	return b - a + 1
}
