package record

import (
	"context"

	"github.com/san-kum/particles/internal/config"
	"golang.org/x/sync/errgroup"
)

// Ensemble records the same scene under consecutive seeds.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart uint64
	workers   int
}

// NewEnsemble runs numRuns recordings with seeds seedStart, seedStart+1, ...
// At most workers run at once; workers <= 0 means no limit. A negative
// numRuns records nothing.
func NewEnsemble(cfg *config.Config, numRuns int, seedStart uint64, workers int) *Ensemble {
	if numRuns < 0 {
		numRuns = 0
	}
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, workers: workers}
}

// Run returns one Result per seed, in seed order. The first error cancels
// recordings that have not started yet.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]*Result, e.numRuns)
	g, ctx := errgroup.WithContext(ctx)
	if e.workers > 0 {
		g.SetLimit(e.workers)
	}

	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Run(e.cfg, e.seedStart+uint64(i))
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
