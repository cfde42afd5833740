package boundedrand

import (
	"github.com/tamirms/boundedrand/engine"
	"github.com/tamirms/boundedrand/extmul"
	"github.com/tamirms/boundedrand/internal/order"
)

// Integer is the set of result types supported by the generators.
type Integer = order.Integer

// lemire holds what every variant shares: the working domain and the
// multiply backend.
//
// Draws r are uniform in [0, 2^W) and distance d is in [1, 2^W). The product
// r*d lies in [0, d*2^W); its top W bits (upper) are a candidate offset in
// [0, d) and its low W bits (lower) decide whether the candidate is biased.
// Exactly (2^W mod d) low values of lower over-represent some offsets, so
// rejecting lower < (2^W mod d) makes every offset equally likely. Since
// 2^W mod d < d, any draw with lower >= d is accepted without computing the
// threshold at all.
type lemire struct {
	dom order.Domain
	mul extmul.Func
}

// draw returns W uniform bits from e.
func (l *lemire) draw(e engine.Engine) uint64 {
	return engine.Fill(e, l.dom.Bits)
}

// scale returns the W-bit halves of the 2W-bit product r*d.
func (l *lemire) scale(r, d uint64) (upper, lower uint64) {
	hi, lo := l.mul(r, d)
	if l.dom.Full() {
		return hi, lo
	}
	w := l.dom.Bits
	return hi<<(64-w) | lo>>w, lo & l.dom.Mask
}

// distance returns the number of values in the transposed range [ta, tb],
// with 0 meaning the whole domain.
func (l *lemire) distance(ta, tb uint64) uint64 {
	return (tb - ta + 1) & l.dom.Mask
}

// threshold returns 2^W mod d, the count of low products to reject.
// d must be non-zero.
func (l *lemire) threshold(d uint64) uint64 {
	return (-d & l.dom.Mask) % d
}

// sample maps one accepted offset back into the caller's domain.
func sample[T Integer](l *lemire, ta, upper uint64) T {
	return order.FromUnsigned[T](l.dom, (ta+upper)&l.dom.Mask)
}

// full returns a raw draw reinterpreted in the caller's domain. Every bit
// pattern is a valid result when the range spans the whole domain.
func full[T Integer](l *lemire, e engine.Engine) T {
	return order.FromUnsigned[T](l.dom, l.draw(e))
}

// newLemire builds the shared core for T from opts.
func newLemire[T Integer](opts []Option) (lemire, error) {
	mul, err := resolve(opts)
	if err != nil {
		return lemire{}, err
	}
	return lemire{dom: order.DomainOf[T](), mul: mul}, nil
}
