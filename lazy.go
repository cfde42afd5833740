package boundedrand

import (
	"github.com/tamirms/boundedrand/engine"
	"github.com/tamirms/boundedrand/internal/order"
)

// cachedThreshold is a rejection threshold that may not have been computed
// yet. The ok flag carries the state, so every uint64 remains a valid value.
type cachedThreshold struct {
	value uint64
	ok    bool
}

// LazyReuse draws uniformly from a fixed [a, b]. The distance is computed at
// construction; the rejection threshold is computed the first time a draw
// falls into the ambiguous low band and cached from then on. Workloads that
// never hit the band never pay for the division.
//
// LazyReuse is not safe for concurrent use: Next may write the cache.
type LazyReuse[T Integer] struct {
	lemire
	lo, hi T
	ta     uint64
	dist   uint64
	cache  cachedThreshold
}

// NewLazyReuse returns a LazyReuse generator bound to [a, b].
// It returns an error wrapping ErrInvalidRange if a > b.
func NewLazyReuse[T Integer](a, b T, opts ...Option) (*LazyReuse[T], error) {
	if err := checkRange(a, b); err != nil {
		return nil, err
	}
	l, err := newLemire[T](opts)
	if err != nil {
		return nil, err
	}
	g := &LazyReuse[T]{
		lemire: l,
		lo:     a,
		hi:     b,
		ta:     order.ToUnsigned(l.dom, a),
	}
	g.dist = l.distance(g.ta, order.ToUnsigned(l.dom, b))
	return g, nil
}

// Next returns a value uniformly distributed over [a, b].
func (g *LazyReuse[T]) Next(e engine.Engine) T {
	if g.dist == 0 {
		return full[T](&g.lemire, e)
	}

	upper, lower := g.scale(g.draw(e), g.dist)
	if lower < g.dist {
		if !g.cache.ok {
			g.cache = cachedThreshold{value: g.threshold(g.dist), ok: true}
		}
		for lower < g.cache.value {
			upper, lower = g.scale(g.draw(e), g.dist)
		}
	}
	return sample[T](&g.lemire, g.ta, upper)
}

// Min returns the lower bound of the range.
func (g *LazyReuse[T]) Min() T { return g.lo }

// Max returns the upper bound of the range.
func (g *LazyReuse[T]) Max() T { return g.hi }

// Distance returns the number of values in the range, or 0 when the range
// spans the whole domain of T.
func (g *LazyReuse[T]) Distance() uint64 { return g.dist }

// Threshold returns the cached rejection threshold and whether it has been
// computed yet.
func (g *LazyReuse[T]) Threshold() (uint64, bool) {
	return g.cache.value, g.cache.ok
}
