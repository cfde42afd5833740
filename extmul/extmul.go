// Package extmul computes the full 128-bit product of two 64-bit unsigned
// integers.
//
// Three interchangeable strategies are provided. Naive is base-2^32 long
// multiplication and serves as the reference oracle, Optimized folds the
// carries into the partial products, and Intrinsic uses the compiler's
// double-width multiply. All three return bit-identical results for every
// input pair.
package extmul

// Func returns the 128-bit product of x and y split into its high and low
// 64-bit halves: upper<<64 | lower == x*y.
type Func func(x, y uint64) (upper, lower uint64)

// digitMask selects the low 32-bit digit of a 64-bit word.
const digitMask = 0xFFFFFFFF

// digits returns the low 32-bit digit of x.
func digits(x uint64) uint64 { return x & digitMask }

// carry returns the high 32-bit digit of x.
func carry(x uint64) uint64 { return x >> 32 }

// Naive multiplies x and y with schoolbook long multiplication in base 2^32.
//
//	         32b    32b    32b    32b
//	  x                    X1     X0
//	* y                    Y1     Y0
//	       ---------------------------
//	                    |  Y0 * X0  |
//	             |  Y0 * X1  |
//	             |  Y1 * X0  |
//	      |  Y1 * X1  |
//	       ---------------------------
//	      |  a   |  b   |  c   |  d   |
func Naive(x, y uint64) (upper, lower uint64) {
	y0x0 := digits(y) * digits(x)
	y0x1 := digits(y) * carry(x)
	y1x0 := carry(y) * digits(x)
	y1x1 := carry(y) * carry(x)

	// Column sums. Each column holds at most three 32-bit digits, so none
	// of these can overflow 64 bits.
	d := digits(y0x0)
	c := carry(y0x0) + digits(y0x1) + digits(y1x0)
	b := carry(y0x1) + carry(y1x0) + digits(y1x1)
	a := carry(y1x1)

	// Carry propagation between columns.
	c += carry(d)
	b += carry(c)
	a += carry(b)

	return digits(a)<<32 | digits(b), digits(c)<<32 | d
}

// Optimized computes the same product as Naive with fewer intermediate
// additions: the carry out of each partial product is folded into the next
// one as soon as it is known.
func Optimized(x, y uint64) (upper, lower uint64) {
	x0 := digits(x)
	y0 := digits(y)
	lowLow := x0 * y0
	highHigh := carry(x) * carry(y)

	// (2^32-1)^2 + (2^32-1) < 2^64, so adding a carry digit never overflows.
	highLow := carry(x)*y0 + carry(lowLow)
	// Only the low digit of highLow is added here for the same reason.
	lowHigh := x0*carry(y) + digits(highLow)

	return highHigh + carry(highLow) + carry(lowHigh), lowHigh<<32 | digits(lowLow)
}
