package verify

import (
	"context"
	"fmt"

	"github.com/tamirms/boundedrand"
	brerrors "github.com/tamirms/boundedrand/errors"
	"github.com/tamirms/boundedrand/engine"
	"github.com/tamirms/boundedrand/extmul"
	"github.com/tamirms/boundedrand/internal/samplefile"
)

// FromHeader rebuilds the generator and engine a sample file header
// describes and returns their stream. The stream is positioned at the first
// draw.
func FromHeader(h samplefile.Header) (Stream, error) {
	e, err := engine.New(h.Family, h.Seed)
	if err != nil {
		return nil, err
	}
	opt := boundedrand.WithStrategy(h.Strategy)
	switch {
	case h.Width == 8 && h.Signed:
		return build[int8](h, e, opt)
	case h.Width == 8:
		return build[uint8](h, e, opt)
	case h.Width == 16 && h.Signed:
		return build[int16](h, e, opt)
	case h.Width == 16:
		return build[uint16](h, e, opt)
	case h.Width == 32 && h.Signed:
		return build[int32](h, e, opt)
	case h.Width == 32:
		return build[uint32](h, e, opt)
	case h.Width == 64 && h.Signed:
		return build[int64](h, e, opt)
	case h.Width == 64:
		return build[uint64](h, e, opt)
	default:
		return nil, fmt.Errorf("%w: %d", brerrors.ErrInvalidWidth, h.Width)
	}
}

func build[T boundedrand.Integer](h samplefile.Header, e engine.Engine, opt boundedrand.Option) (Stream, error) {
	d, err := boundedrand.New(h.Variant, T(h.Low), T(h.High), opt)
	if err != nil {
		return nil, err
	}
	return Of(d, e), nil
}

// Replay checks that s reproduces every sample recorded in r, returning a
// *MismatchError (left is the recorded value) at the first difference.
func Replay(ctx context.Context, r *samplefile.Reader, s Stream) error {
	for i, want := range r.All() {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if got := s(); got != want {
			return &MismatchError{Index: i, Left: want, Right: got}
		}
	}
	log.Debugf("replayed %d samples", r.Len())
	return nil
}

// ReplayStream is FromHeader for replaying a recorded file on this host: it
// rejects engines that cannot be reseeded and substitutes the optimized
// strategy when the file names an intrinsic multiply this build lacks.
func ReplayStream(h samplefile.Header) (Stream, error) {
	if !h.Family.Deterministic() {
		return nil, fmt.Errorf("%w: %s", brerrors.ErrNotReplayable, h.Family)
	}
	if h.Strategy == extmul.StrategyIntrinsic && !extmul.HasIntrinsic {
		// Every strategy computes the same product.
		h.Strategy = extmul.StrategyOptimized
	}
	return FromHeader(h)
}

// ReplayFile verifies r's checksums and replays it against the generator
// its header describes.
func ReplayFile(ctx context.Context, r *samplefile.Reader) error {
	if err := r.Verify(); err != nil {
		return err
	}
	s, err := ReplayStream(r.Header())
	if err != nil {
		return err
	}
	return Replay(ctx, r, s)
}
