package boundedrand

import (
	"fmt"

	brerrors "github.com/tamirms/boundedrand/errors"
	"github.com/tamirms/boundedrand/engine"
)

// Distribution is a uniform integer distribution over an inclusive range.
// Implementations are not safe for concurrent use.
type Distribution[T Integer] interface {
	// Next returns one sample, drawing as many bits from e as needed.
	Next(e engine.Engine) T

	// Min returns the smallest value Next can return.
	Min() T

	// Max returns the largest value Next can return.
	Max() T
}

var (
	_ Distribution[int32]  = (*NoReuse[int32])(nil)
	_ Distribution[uint64] = (*Reuse[uint64])(nil)
	_ Distribution[int64]  = (*LazyReuse[int64])(nil)
)

// Variant identifies when a generator computes its rejection threshold.
// All variants produce identical output sequences.
type Variant uint8

const (
	// VariantNoReuse recomputes everything per call.
	VariantNoReuse Variant = 0

	// VariantReuse precomputes the threshold at construction.
	VariantReuse Variant = 1

	// VariantLazyReuse computes the threshold on first need.
	VariantLazyReuse Variant = 2
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantNoReuse:
		return "no-reuse"
	case VariantReuse:
		return "reuse"
	case VariantLazyReuse:
		return "lazy-reuse"
	default:
		return "unknown"
	}
}

// Variants returns every variant.
func Variants() []Variant {
	return []Variant{VariantNoReuse, VariantReuse, VariantLazyReuse}
}

// ParseVariant returns the variant with the given name.
func ParseVariant(name string) (Variant, error) {
	for _, v := range Variants() {
		if v.String() == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", brerrors.ErrUnknownVariant, name)
}

// New returns a generator of the given variant bound to [a, b].
func New[T Integer](v Variant, a, b T, opts ...Option) (Distribution[T], error) {
	var (
		d   Distribution[T]
		err error
	)
	switch v {
	case VariantNoReuse:
		d, err = NewNoReuse(a, b, opts...)
	case VariantReuse:
		d, err = NewReuse(a, b, opts...)
	case VariantLazyReuse:
		d, err = NewLazyReuse(a, b, opts...)
	default:
		return nil, fmt.Errorf("%w: %d", brerrors.ErrUnknownVariant, v)
	}
	if err != nil {
		// Avoid handing back an interface wrapping a nil pointer.
		return nil, err
	}
	return d, nil
}

// Must returns d, panicking if err is non-nil. It is intended for ranges
// known to be valid, such as constants and test fixtures.
func Must[D any](d D, err error) D {
	if err != nil {
		panic(err)
	}
	return d
}
