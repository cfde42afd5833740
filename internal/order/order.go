// Package order maps fixed-width integer domains onto unsigned words while
// preserving ordering.
//
// Signed values are transposed by flipping the sign bit, which moves the
// most negative value to zero and the most positive value to the top of the
// unsigned range. Unsigned domains transpose to themselves.
package order

import "unsafe"

// Integer is the set of integer types the bounded generators produce.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// Domain describes the unsigned working word for an integer type.
type Domain struct {
	Bits uint   // width in bits: 8, 16, 32 or 64
	Mask uint64 // low Bits set
	Sign uint64 // sign bit for signed domains, 0 for unsigned
}

// NewDomain returns the domain of a bits-wide integer. bits must be in
// [1, 64].
func NewDomain(bits uint, signed bool) Domain {
	d := Domain{
		Bits: bits,
		Mask: ^uint64(0) >> (64 - bits),
	}
	if signed {
		d.Sign = 1 << (bits - 1)
	}
	return d
}

// DomainOf returns the domain of T.
func DomainOf[T Integer]() Domain {
	var zero T
	return NewDomain(uint(unsafe.Sizeof(zero))*8, ^zero < zero)
}

// Signed reports whether the domain is a signed integer domain.
func (d Domain) Signed() bool { return d.Sign != 0 }

// Full reports whether the domain spans a full 64-bit word.
func (d Domain) Full() bool { return d.Bits == 64 }

// Transpose maps the raw bit pattern of a domain value to its
// order-preserving unsigned word. It is its own inverse.
func (d Domain) Transpose(raw uint64) uint64 {
	return (raw ^ d.Sign) & d.Mask
}

// ToUnsigned transposes v into the domain's unsigned word. The result is
// order-preserving: a <= b in T iff ToUnsigned(d, a) <= ToUnsigned(d, b).
func ToUnsigned[T Integer](d Domain, v T) uint64 {
	return d.Transpose(uint64(v))
}

// FromUnsigned inverts ToUnsigned. Bits of u above the domain width are
// ignored.
func FromUnsigned[T Integer](d Domain, u uint64) T {
	return T(u ^ d.Sign)
}

// Less reports whether a < b in the domain of T, compared through the
// transposed words.
func Less[T Integer](d Domain, a, b T) bool {
	return ToUnsigned(d, a) < ToUnsigned(d, b)
}
