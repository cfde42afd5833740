package boundedrand

import (
	brerrors "github.com/tamirms/boundedrand/errors"
	"github.com/tamirms/boundedrand/extmul"
)

// Option is a functional option for configuring generators.
type Option func(*config)

type config struct {
	strategy extmul.Strategy
	mul      extmul.Func // overrides strategy when set
	mulSet   bool
}

func defaultConfig() *config {
	return &config{
		strategy: extmul.Default(), // intrinsic where the target has one
	}
}

// WithStrategy selects the extended multiply implementation by id.
// Selecting extmul.StrategyIntrinsic on a target without a hardware
// double-width multiply makes construction fail with
// ErrIntrinsicUnavailable.
func WithStrategy(s extmul.Strategy) Option {
	return func(c *config) {
		c.strategy = s
		c.mul = nil
		c.mulSet = false
	}
}

// WithMultiplier injects a custom extended multiply. It must return the
// exact 128-bit product; the generators rely on it for unbiasedness.
func WithMultiplier(mul extmul.Func) Option {
	return func(c *config) {
		c.mul = mul
		c.mulSet = true
	}
}

// resolve applies opts and returns the multiply function to use.
func resolve(opts []Option) (extmul.Func, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.mulSet {
		if cfg.mul == nil {
			return nil, brerrors.ErrNilMultiplier
		}
		return cfg.mul, nil
	}
	return extmul.Lookup(cfg.strategy)
}
