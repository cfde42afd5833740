// Package verify cross-validates generator implementations: it compares
// output streams draw for draw, fingerprints them, checks that recorded
// sample files replay, and tests sample frequencies for uniformity.
package verify

import (
	"context"
	"fmt"

	"github.com/tamirms/boundedrand"
	brerrors "github.com/tamirms/boundedrand/errors"
	"github.com/tamirms/boundedrand/engine"
	"github.com/tamirms/boundedrand/internal/order"
)

// checkEvery is how many draws run between context checks.
const checkEvery = 4096

// Stream yields successive samples as raw words.
type Stream func() uint64

// Of returns a stream of d's samples drawn from e. Samples are reported as
// their two's complement bit pattern truncated to the width of T.
func Of[T boundedrand.Integer](d boundedrand.Distribution[T], e engine.Engine) Stream {
	mask := order.DomainOf[T]().Mask
	return func() uint64 {
		return uint64(d.Next(e)) & mask
	}
}

// MismatchError reports the first draw at which two streams disagree.
type MismatchError struct {
	Index       int
	Left, Right uint64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v at draw %d: 0x%X != 0x%X",
		brerrors.ErrSequenceMismatch, e.Index, e.Left, e.Right)
}

// Unwrap lets errors.Is match ErrSequenceMismatch.
func (e *MismatchError) Unwrap() error { return brerrors.ErrSequenceMismatch }

// Compare draws n samples from left and right and returns a *MismatchError
// for the first pair that differs. It returns ctx.Err() if ctx is cancelled.
func Compare(ctx context.Context, n int, left, right Stream) error {
	for i := 0; i < n; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		l, r := left(), right()
		if l != r {
			return &MismatchError{Index: i, Left: l, Right: r}
		}
	}
	return nil
}

// Bounded checks that n samples of s all lie in the transposed interval
// [lo, hi] of domain d.
func Bounded(ctx context.Context, n int, d order.Domain, lo, hi uint64, s Stream) error {
	tlo, thi := d.Transpose(lo), d.Transpose(hi)
	for i := 0; i < n; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		v := s()
		if tv := d.Transpose(v); tv < tlo || tv > thi {
			return fmt.Errorf("%w: draw %d = 0x%X not in [0x%X, 0x%X]",
				brerrors.ErrOutOfRange, i, v, lo&d.Mask, hi&d.Mask)
		}
	}
	return nil
}
