package worker

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/marben/irpc"

	mandel "github.com/marben/dist_mandel"
	"github.com/marben/dist_mandel/render"
)

// startWorker serves a worker on one end of a pipe and returns the
// collector's endpoint on the other.
func startWorker(ctx context.Context, t *testing.T, opts Options) (*irpc.Endpoint, mandel.Renderer, <-chan error) {
	t.Helper()
	a, b := net.Pipe()
	ep := irpc.NewEndpoint(a)
	t.Cleanup(func() { ep.Close() })

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, b, opts) }()

	client, err := mandel.NewRendererIrpcClient(ep)
	if err != nil {
		t.Fatal(err)
	}
	return ep, client, done
}

func testJob(owner, start, count int) mandel.Job {
	return mandel.Job{
		Assignment:    mandel.WorkAssignment{OwnerID: owner, Start: start, Count: count},
		Width:         6,
		Height:        4,
		Viewport:      mandel.DefaultViewport(6, 4),
		MaxIterations: 100,
	}
}

func TestServeEvaluatesAssignments(t *testing.T) {
	var m sync.Mutex
	var started []mandel.WorkAssignment
	ep, client, done := startWorker(context.Background(), t, Options{
		Parallel: 2,
		OnRender: func(a mandel.WorkAssignment) {
			m.Lock()
			started = append(started, a)
			m.Unlock()
		},
	})

	job := testJob(1, 8, 10)
	got, err := client.RenderRange(context.Background(), job)
	if err != nil {
		t.Fatalf("RenderRange: %v", err)
	}
	want, _ := render.RunWorker(context.Background(), job, 1)
	if got.OwnerID != want.OwnerID || len(got.Pixels) != len(want.Pixels) {
		t.Fatalf("got owner %d with %d pixels, want owner %d with %d", got.OwnerID, len(got.Pixels), want.OwnerID, len(want.Pixels))
	}
	for i := range want.Pixels {
		if got.Pixels[i] != want.Pixels[i] {
			t.Fatalf("pixel %d = %v, want %v", i, got.Pixels[i], want.Pixels[i])
		}
	}
	m.Lock()
	if len(started) != 1 || started[0] != job.Assignment {
		t.Errorf("OnRender saw %v, want [%v]", started, job.Assignment)
	}
	m.Unlock()

	ep.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve after disconnect: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after disconnect")
	}
}

func TestServeConcurrentAssignments(t *testing.T) {
	_, client, _ := startWorker(context.Background(), t, Options{Parallel: 2})

	assignments, err := mandel.Partition(6, 4, 5)
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	errs := make(chan error, len(assignments))
	for _, a := range assignments {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := client.RenderRange(context.Background(), testJob(a.OwnerID, a.Start, a.Count))
			if err == nil && (res.OwnerID != a.OwnerID || len(res.Pixels) != a.Count) {
				err = errors.New("result does not match its assignment")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Error(err)
		}
	}
}

func TestServeReportsInvalidJob(t *testing.T) {
	_, client, _ := startWorker(context.Background(), t, Options{})

	job := testJob(3, 20, 10) // runs past the 24 pixel image
	_, err := client.RenderRange(context.Background(), job)
	if err == nil {
		t.Fatal("invalid job evaluated")
	}
	if !strings.Contains(err.Error(), "outside image") {
		t.Errorf("error %q does not explain the rejection", err)
	}

	// the worker keeps serving after a rejected job
	if _, err := client.RenderRange(context.Background(), testJob(3, 0, 24)); err != nil {
		t.Fatalf("RenderRange after rejection: %v", err)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ep, _, done := startWorker(ctx, t, Options{})
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("got %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop")
	}

	select {
	case <-ep.Context().Done():
	case <-time.After(5 * time.Second):
		t.Fatal("collector did not notice the worker leaving")
	}
}
