package modrej

import "github.com/tamirms/boundedrand/engine"

// javaAccept reports whether x, with r = x % d, lies in a complete copy of
// [0, d): the block starting at x - r must fit below 2^64.
func javaAccept(x, r, d uint64) bool {
	return x-r <= -d
}

// JavaPlain is java.util.Random.nextInt(bound) style rejection: reduce
// modulo d and retry while the draw falls in the final incomplete block.
// The distance is recomputed on every call.
type JavaPlain struct {
	a, b uint64
}

// NewJavaPlain returns a JavaPlain sampler over [a, b].
func NewJavaPlain(a, b uint64) *JavaPlain {
	return &JavaPlain{a: a, b: b}
}

// Next implements Sampler.
func (j *JavaPlain) Next(e engine.Engine) uint64 {
	d := distance(j.a, j.b)
	if d == 0 {
		return engine.Draw64(e)
	}
	x := engine.Draw64(e)
	r := x % d
	for !javaAccept(x, r, d) {
		x = engine.Draw64(e)
		r = x % d
	}
	return j.a + r
}

// JavaReuse is JavaPlain with the distance computed once.
type JavaReuse struct {
	a, d uint64
}

// NewJavaReuse returns a JavaReuse sampler over [a, b].
func NewJavaReuse(a, b uint64) *JavaReuse {
	return &JavaReuse{a: a, d: distance(a, b)}
}

// Next implements Sampler.
func (j *JavaReuse) Next(e engine.Engine) uint64 {
	if j.d == 0 {
		return engine.Draw64(e)
	}
	x := engine.Draw64(e)
	r := x % j.d
	for !javaAccept(x, r, j.d) {
		x = engine.Draw64(e)
		r = x % j.d
	}
	return j.a + r
}
