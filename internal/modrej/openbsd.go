package modrej

import "github.com/tamirms/boundedrand/engine"

// openBSDThreshold returns 2^64 mod d, or 0 for the full range.
func openBSDThreshold(d uint64) uint64 {
	if d == 0 {
		return 0
	}
	return -d % d
}

// OpenBSDPlain is arc4random_uniform style rejection: discard draws below
// 2^64 mod d, then reduce modulo d. Both the distance and the threshold are
// recomputed on every call, so every call divides twice.
type OpenBSDPlain struct {
	a, b uint64
}

// NewOpenBSDPlain returns an OpenBSDPlain sampler over [a, b].
func NewOpenBSDPlain(a, b uint64) *OpenBSDPlain {
	return &OpenBSDPlain{a: a, b: b}
}

// Next implements Sampler.
func (o *OpenBSDPlain) Next(e engine.Engine) uint64 {
	d := distance(o.a, o.b)
	if d == 0 {
		return engine.Draw64(e)
	}
	t := openBSDThreshold(d)
	x := engine.Draw64(e)
	for x < t {
		x = engine.Draw64(e)
	}
	return o.a + x%d
}

// OpenBSDReuse is OpenBSDPlain with the distance and threshold computed once.
type OpenBSDReuse struct {
	a, d, t uint64
}

// NewOpenBSDReuse returns an OpenBSDReuse sampler over [a, b].
func NewOpenBSDReuse(a, b uint64) *OpenBSDReuse {
	d := distance(a, b)
	return &OpenBSDReuse{a: a, d: d, t: openBSDThreshold(d)}
}

// Next implements Sampler.
func (o *OpenBSDReuse) Next(e engine.Engine) uint64 {
	if o.d == 0 {
		return engine.Draw64(e)
	}
	x := engine.Draw64(e)
	for x < o.t {
		x = engine.Draw64(e)
	}
	return o.a + x%o.d
}
