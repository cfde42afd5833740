package extmul

import (
	"fmt"

	brerrors "github.com/tamirms/boundedrand/errors"
)

// Strategy identifies an extended multiply implementation.
type Strategy uint8

const (
	// StrategyNaive is schoolbook base-2^32 long multiplication.
	StrategyNaive Strategy = 0

	// StrategyOptimized is digit-split multiplication with early carry folding.
	StrategyOptimized Strategy = 1

	// StrategyIntrinsic is the platform double-width multiply.
	StrategyIntrinsic Strategy = 2
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyNaive:
		return "naive"
	case StrategyOptimized:
		return "optimized"
	case StrategyIntrinsic:
		return "intrinsic"
	default:
		return "unknown"
	}
}

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "naive":
		return StrategyNaive, nil
	case "optimized":
		return StrategyOptimized, nil
	case "intrinsic":
		return StrategyIntrinsic, nil
	default:
		return 0, fmt.Errorf("%w: %q", brerrors.ErrUnknownStrategy, name)
	}
}

// Lookup returns the multiply function for s. The intrinsic strategy is
// refused with ErrIntrinsicUnavailable on targets without a hardware
// double-width multiply.
func Lookup(s Strategy) (Func, error) {
	switch s {
	case StrategyNaive:
		return Naive, nil
	case StrategyOptimized:
		return Optimized, nil
	case StrategyIntrinsic:
		if !HasIntrinsic {
			return nil, brerrors.ErrIntrinsicUnavailable
		}
		return Intrinsic, nil
	default:
		return nil, fmt.Errorf("%w: %d", brerrors.ErrUnknownStrategy, s)
	}
}

// Default returns the fastest strategy available on this target.
func Default() Strategy {
	if HasIntrinsic {
		return StrategyIntrinsic
	}
	return StrategyOptimized
}

// Available returns the strategies that Lookup accepts on this target.
func Available() []Strategy {
	if HasIntrinsic {
		return []Strategy{StrategyNaive, StrategyOptimized, StrategyIntrinsic}
	}
	return []Strategy{StrategyNaive, StrategyOptimized}
}
