package verify

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Case is one cross-validation job: two independently built streams that
// must agree for Draws samples. The builders run on the worker goroutine so
// that no engine or generator is shared between goroutines.
type Case struct {
	Name  string
	Draws int
	Left  func() (Stream, error)
	Right func() (Stream, error)
}

// Run executes cases in parallel on at most workers goroutines and returns
// the first failure, annotated with the case name. workers <= 0 means
// GOMAXPROCS. Remaining cases are cancelled once one fails.
func Run(ctx context.Context, cases []Case, workers int) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, c := range cases {
		g.Go(func() error {
			if err := runCase(ctx, c); err != nil {
				log.Warnf("case %s failed: %v", c.Name, err)
				return fmt.Errorf("%s: %w", c.Name, err)
			}
			log.Debugf("case %s: %d draws agree", c.Name, c.Draws)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Infof("%d cases passed in %v", len(cases), time.Since(start).Round(time.Millisecond))
	return nil
}

func runCase(ctx context.Context, c Case) error {
	left, err := c.Left()
	if err != nil {
		return fmt.Errorf("build left: %w", err)
	}
	right, err := c.Right()
	if err != nil {
		return fmt.Errorf("build right: %w", err)
	}
	return Compare(ctx, c.Draws, left, right)
}
