// Package worker lends the local CPU to a collector: it serves
// mandel.Renderer on an irpc endpoint over the connection to the collector.
package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"

	"github.com/marben/irpc"

	mandel "github.com/marben/dist_mandel"
	"github.com/marben/dist_mandel/render"
)

// Options configures the served renderer.
type Options struct {
	// Parallel bounds the number of assignments evaluated at once.
	// Zero means runtime.NumCPU().
	Parallel int
	// OnRender, if set, is called when an assignment starts.
	OnRender func(a mandel.WorkAssignment)
}

// NewEndpoint starts serving the renderer on conn. The collector may call
// it as soon as the endpoint exists, and the caller may use the same
// endpoint for its own calls to the collector.
func NewEndpoint(conn io.ReadWriteCloser, opts Options) *irpc.Endpoint {
	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}
	renderer := logged{render.RendererImpl{OnRender: opts.OnRender}}
	return irpc.NewEndpoint(conn,
		irpc.WithEndpointServices(mandel.NewRendererIrpcService(renderer)),
		irpc.WithParallelWorkers(parallel),
	)
}

// Serve evaluates assignments until ctx is done or the connection ends.
// A collector hanging up returns nil.
func Serve(ctx context.Context, conn io.ReadWriteCloser, opts Options) error {
	return Wait(ctx, NewEndpoint(conn, opts))
}

// Wait blocks until ep terminates and closes it when ctx is done first.
func Wait(ctx context.Context, ep *irpc.Endpoint) error {
	select {
	case <-ctx.Done():
		ep.Close()
		return ctx.Err()
	case <-ep.Context().Done():
	}
	cause := context.Cause(ep.Context())
	if errors.Is(cause, irpc.ErrEndpointClosedByCounterpart) {
		slog.Info("worker: collector hung up")
		return nil
	}
	return cause
}

// logged reports assignments the collector sent that could not be evaluated.
type logged struct {
	mandel.Renderer
}

func (l logged) RenderRange(ctx context.Context, job mandel.Job) (mandel.TaggedResult, error) {
	res, err := l.Renderer.RenderRange(ctx, job)
	if err != nil && ctx.Err() == nil {
		slog.Warn("worker: assignment rejected", "owner", job.Assignment.OwnerID, "error", err)
	}
	return res, err
}
