package boundedrand

import (
	"fmt"

	brerrors "github.com/tamirms/boundedrand/errors"
	"github.com/tamirms/boundedrand/engine"
	"github.com/tamirms/boundedrand/internal/order"
)

// NoReuse draws uniformly from [a, b] and recomputes the distance, and when
// needed the rejection threshold, on every call. It holds no derived state,
// so the range can be changed between calls with SetRange.
//
// NoReuse is not safe for concurrent use.
type NoReuse[T Integer] struct {
	lemire
	a, b T
}

// NewNoReuse returns a NoReuse generator bound to [a, b].
// It returns an error wrapping ErrInvalidRange if a > b.
func NewNoReuse[T Integer](a, b T, opts ...Option) (*NoReuse[T], error) {
	if err := checkRange(a, b); err != nil {
		return nil, err
	}
	l, err := newLemire[T](opts)
	if err != nil {
		return nil, err
	}
	return &NoReuse[T]{lemire: l, a: a, b: b}, nil
}

// SetRange rebinds the generator to [a, b]. The previous range is kept if
// a > b.
func (g *NoReuse[T]) SetRange(a, b T) error {
	if err := checkRange(a, b); err != nil {
		return err
	}
	g.a, g.b = a, b
	return nil
}

// SetRangeUnchecked rebinds the generator to [a, b] without validating it.
// It is meant for hot loops whose ranges are known to be ordered; with
// a > b the outputs of Next are unspecified.
func (g *NoReuse[T]) SetRangeUnchecked(a, b T) {
	g.a, g.b = a, b
}

// Next returns a value uniformly distributed over [a, b].
func (g *NoReuse[T]) Next(e engine.Engine) T {
	ta := order.ToUnsigned(g.dom, g.a)
	d := g.distance(ta, order.ToUnsigned(g.dom, g.b))
	if d == 0 {
		return full[T](&g.lemire, e)
	}

	upper, lower := g.scale(g.draw(e), d)
	if lower < d {
		t := g.threshold(d)
		for lower < t {
			upper, lower = g.scale(g.draw(e), d)
		}
	}
	return sample[T](&g.lemire, ta, upper)
}

// Min returns the lower bound of the range.
func (g *NoReuse[T]) Min() T { return g.a }

// Max returns the upper bound of the range.
func (g *NoReuse[T]) Max() T { return g.b }

// checkRange reports ErrInvalidRange when a > b.
func checkRange[T Integer](a, b T) error {
	if a > b {
		return fmt.Errorf("%w: low %v > high %v", brerrors.ErrInvalidRange, a, b)
	}
	return nil
}
