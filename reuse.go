package boundedrand

import (
	"github.com/tamirms/boundedrand/engine"
	"github.com/tamirms/boundedrand/internal/order"
)

// Reuse draws uniformly from a fixed [a, b]. The distance and rejection
// threshold are computed once at construction, so Next never divides.
//
// Reuse is not safe for concurrent use.
type Reuse[T Integer] struct {
	lemire
	lo, hi T
	ta     uint64 // transposed low bound
	dist   uint64 // 0 means the whole domain
	thresh uint64
}

// NewReuse returns a Reuse generator bound to [a, b].
// It returns an error wrapping ErrInvalidRange if a > b.
func NewReuse[T Integer](a, b T, opts ...Option) (*Reuse[T], error) {
	if err := checkRange(a, b); err != nil {
		return nil, err
	}
	l, err := newLemire[T](opts)
	if err != nil {
		return nil, err
	}
	g := &Reuse[T]{
		lemire: l,
		lo:     a,
		hi:     b,
		ta:     order.ToUnsigned(l.dom, a),
	}
	g.dist = l.distance(g.ta, order.ToUnsigned(l.dom, b))
	if g.dist != 0 {
		g.thresh = l.threshold(g.dist)
	}
	return g, nil
}

// Next returns a value uniformly distributed over [a, b].
func (g *Reuse[T]) Next(e engine.Engine) T {
	if g.dist == 0 {
		return full[T](&g.lemire, e)
	}

	// The threshold is already known and always below the distance, so
	// the lower < distance pre-check would only add a branch.
	upper, lower := g.scale(g.draw(e), g.dist)
	for lower < g.thresh {
		upper, lower = g.scale(g.draw(e), g.dist)
	}
	return sample[T](&g.lemire, g.ta, upper)
}

// Min returns the lower bound of the range.
func (g *Reuse[T]) Min() T { return g.lo }

// Max returns the upper bound of the range.
func (g *Reuse[T]) Max() T { return g.hi }

// Distance returns the number of values in the range, or 0 when the range
// spans the whole domain of T.
func (g *Reuse[T]) Distance() uint64 { return g.dist }

// Threshold returns the number of low products rejected per offset band.
func (g *Reuse[T]) Threshold() uint64 { return g.thresh }
