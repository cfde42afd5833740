// Package engine defines the uniform bit sources consumed by the bounded
// generators and the adapter that stretches or narrows their output to a
// requested width.
//
// An Engine produces Bits() uniformly random bits per call. Fill turns any
// engine into a source of W-bit values using one fixed rule, so that two
// generators replaying the same engine state consume exactly the same bits:
//
//   - engine width == W: the raw output is returned
//   - engine width > W: the low W bits of one output are returned
//   - engine width < W: consecutive outputs are concatenated, most
//     significant chunk first, until W bits are filled
//
// Engines are not safe for concurrent use. Give each goroutine its own.
package engine

// Engine is a uniform pseudo-random bit source with a fixed native width.
type Engine interface {
	// Next advances the engine and returns Bits() uniform bits in the low
	// end of the word. Higher bits are zero.
	Next() uint64

	// Bits returns the native output width, between 1 and 64.
	Bits() uint
}

// Fill returns width uniformly random bits drawn from e, 1 <= width <= 64.
func Fill(e Engine, width uint) uint64 {
	have := e.Bits()
	if have >= width {
		return e.Next() & (^uint64(0) >> (64 - width))
	}
	var r uint64
	for filled := uint(0); filled < width; filled += have {
		r = r<<have | e.Next()
	}
	return r & (^uint64(0) >> (64 - width))
}

// Draw32 returns 32 uniformly random bits drawn from e.
func Draw32(e Engine) uint32 {
	return uint32(Fill(e, 32))
}

// Draw64 returns 64 uniformly random bits drawn from e.
func Draw64(e Engine) uint64 {
	return Fill(e, 64)
}
