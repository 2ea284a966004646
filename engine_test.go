package mandel_test

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	mandel "github.com/marben/dist_mandel"
	"github.com/marben/dist_mandel/render"
)

func testRound(workers int) mandel.Round {
	return mandel.Round{
		Viewport:      mandel.DefaultViewport(37, 23),
		Width:         37,
		Height:        23,
		Workers:       workers,
		MaxIterations: 200,
	}
}

func TestComputeIndependentOfWorkerCount(t *testing.T) {
	ctx := context.Background()
	local := []mandel.Renderer{render.RendererImpl{}}

	want, err := mandel.Compute(ctx, testRound(1), local, 0)
	if err != nil {
		t.Fatalf("Compute(1 worker): %v", err)
	}

	for _, k := range []int{2, 3, 7, 16, 37*23 + 5} {
		// several renderers so assignments really run concurrently
		renderers := []mandel.Renderer{render.RendererImpl{}, render.RendererImpl{}, render.RendererImpl{}}
		got, err := mandel.Compute(ctx, testRound(k), renderers, time.Minute)
		if err != nil {
			t.Fatalf("Compute(%d workers): %v", k, err)
		}
		if !got.Equal(want) {
			t.Errorf("%d workers produced a different image than 1 worker", k)
		}
	}
}

func TestComputeMatchesDirectEvaluation(t *testing.T) {
	round := testRound(4)
	grid, err := mandel.Compute(context.Background(), round, []mandel.Renderer{render.RendererImpl{}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	for y := range round.Height {
		for x := range round.Width {
			want := render.Evaluate(x, y, round.Width, round.Height, round.Viewport, round.MaxIterations)
			if got := grid.At(x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestComputeRejectsBadRoundBeforeWork(t *testing.T) {
	var calls atomic.Int32
	counting := mandel.RendererFunc(func(ctx context.Context, job mandel.Job) (mandel.TaggedResult, error) {
		calls.Add(1)
		return render.RunWorker(ctx, job, job.Assignment.OwnerID)
	})

	tests := []struct {
		name   string
		mutate func(*mandel.Round)
	}{
		{"zero width", func(r *mandel.Round) { r.Width = 0 }},
		{"negative height", func(r *mandel.Round) { r.Height = -3 }},
		{"no workers", func(r *mandel.Round) { r.Workers = 0 }},
		{"pixel count overflows", func(r *mandel.Round) { r.Width, r.Height = math.MaxInt/4, 8 }},
		{"degenerate x", func(r *mandel.Round) { r.Viewport.MaxX = r.Viewport.MinX }},
		{"degenerate y", func(r *mandel.Round) { r.Viewport.MaxY = r.Viewport.MinY - 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			round := testRound(3)
			tt.mutate(&round)
			_, err := mandel.Compute(context.Background(), round, []mandel.Renderer{counting}, 0)
			var cfgErr *mandel.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("got %v, want *ConfigurationError", err)
			}
		})
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("renderer called %d times for invalid rounds", n)
	}
}

func TestComputeWorkerFailureAbortsRound(t *testing.T) {
	boom := errors.New("boom")
	failing := mandel.RendererFunc(func(ctx context.Context, job mandel.Job) (mandel.TaggedResult, error) {
		if job.Assignment.OwnerID == 2 {
			return mandel.TaggedResult{}, boom
		}
		return render.RunWorker(ctx, job, job.Assignment.OwnerID)
	})

	grid, err := mandel.Compute(context.Background(), testRound(4), []mandel.Renderer{failing}, 0)
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}
	if grid != nil {
		t.Fatal("grid returned for failed round")
	}
}

func TestComputeShortResultIsIntegrityError(t *testing.T) {
	truncating := mandel.RendererFunc(func(ctx context.Context, job mandel.Job) (mandel.TaggedResult, error) {
		res, err := render.RunWorker(ctx, job, job.Assignment.OwnerID)
		if len(res.Pixels) > 0 {
			res.Pixels = res.Pixels[1:]
		}
		return res, err
	})

	_, err := mandel.Compute(context.Background(), testRound(2), []mandel.Renderer{truncating}, 0)
	if !errors.Is(err, mandel.ErrIntegrity) {
		t.Fatalf("got %v, want integrity error", err)
	}
}

func TestComputeTimesOutOnSilentWorker(t *testing.T) {
	silent := mandel.RendererFunc(func(ctx context.Context, job mandel.Job) (mandel.TaggedResult, error) {
		if job.Assignment.OwnerID == 1 {
			<-ctx.Done()
			return mandel.TaggedResult{}, ctx.Err()
		}
		return render.RunWorker(ctx, job, job.Assignment.OwnerID)
	})

	_, err := mandel.Compute(context.Background(), testRound(3), []mandel.Renderer{silent}, 50*time.Millisecond)
	if !errors.Is(err, mandel.ErrGatherTimeout) {
		t.Fatalf("got %v, want ErrGatherTimeout", err)
	}
}
