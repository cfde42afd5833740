package extmul

import "math/bits"

// Intrinsic multiplies x and y with math/bits.Mul64, which the compiler
// lowers to a single full-width multiply instruction on targets where
// HasIntrinsic is true. Select it through Lookup so that the capability gate
// is honored.
func Intrinsic(x, y uint64) (upper, lower uint64) {
	return bits.Mul64(x, y)
}
