package mandel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Compute runs one full round: it validates the round, partitions the
// image, hands assignment r to renderers[r % len(renderers)] and gathers
// the results into a grid. Any worker error aborts the round.
// timeout bounds the gather phase; zero waits forever.
func Compute(ctx context.Context, round Round, renderers []Renderer, timeout time.Duration) (*PixelGrid, error) {
	if err := round.Validate(); err != nil {
		return nil, err
	}
	if len(renderers) == 0 {
		return nil, configErr("renderers", "at least one renderer is required")
	}
	assignments, err := Partition(round.Width, round.Height, round.Workers)
	if err != nil {
		return nil, err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	results := make(chan TaggedResult, len(assignments))
	for r, job := range round.Jobs(assignments) {
		renderer := renderers[r%len(renderers)]
		g.Go(func() error {
			res, err := renderer.RenderRange(gctx, job)
			if err != nil {
				return fmt.Errorf("worker %d: %w", job.Assignment.OwnerID, err)
			}
			results <- res
			return nil
		})
	}

	grid, gatherErr := Gather(gctx, results, assignments, round.Width, round.Height)
	if gatherErr != nil {
		cancel()
	}
	waitErr := g.Wait()
	switch {
	case errors.Is(gatherErr, ErrGatherTimeout), errors.Is(gatherErr, ErrIntegrity):
		return nil, gatherErr
	case waitErr != nil:
		return nil, waitErr
	case gatherErr != nil:
		return nil, gatherErr
	}
	return grid, nil
}
