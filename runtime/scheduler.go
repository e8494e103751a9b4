package runtime

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// WorkerFunc is one worker's share of the run: workerID identifies
// it among env.NumWorkers() peers in this process.
type WorkerFunc func(ctx context.Context, workerID int) error

// Scheduler fans a run's workers out as goroutines in an
// errgroup.Group, the bulk-synchronous substitute this module uses in
// place of a true dataflow-runtime scheduler (spec §5, SPEC_FULL §B).
// Any worker error is fatal and cancels its peers, matching spec §7's
// "dataflow construction errors: fatal".
type Scheduler struct {
	Env Environment
}

// NewScheduler builds a Scheduler for env.
func NewScheduler(env Environment) *Scheduler { return &Scheduler{Env: env} }

// Run starts one goroutine per worker (env.NumWorkers()) and blocks
// until all complete or the first error is returned, at which point
// the remaining workers' context is cancelled.
func (s *Scheduler) Run(ctx context.Context, fn WorkerFunc) error {
	group, gctx := errgroup.WithContext(ctx)
	for w := 0; w < s.Env.NumWorkers(); w++ {
		workerID := w
		group.Go(func() error {
			if err := fn(gctx, workerID); err != nil {
				return fmt.Errorf("runtime: worker %d: %w", workerID, err)
			}
			return nil
		})
	}
	return group.Wait()
}
