package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/marben/irpc"

	mandel "github.com/marben/dist_mandel"
)

var errWorkerGone = errors.New("worker disconnected")

// remoteWorker renders on a connected peer through the mandel.Renderer
// client of its irpc endpoint.
type remoteWorker struct {
	id       string
	ep       *irpc.Endpoint
	renderer mandel.Renderer
}

func newRemoteWorker(id string, ep *irpc.Endpoint) (*remoteWorker, error) {
	client, err := mandel.NewRendererIrpcClient(ep)
	if err != nil {
		return nil, fmt.Errorf("new renderer client: %w", err)
	}
	return &remoteWorker{id: id, ep: ep, renderer: client}, nil
}

// alive reports whether the connection to the worker still stands.
func (w *remoteWorker) alive() bool {
	return w.ep.Context().Err() == nil
}

// RenderRange forwards the job to the worker. When the connection ends,
// calls still waiting on it fail with errWorkerGone.
func (w *remoteWorker) RenderRange(ctx context.Context, job mandel.Job) (mandel.TaggedResult, error) {
	res, err := w.renderer.RenderRange(ctx, job)
	if err != nil {
		if !w.alive() {
			return mandel.TaggedResult{}, fmt.Errorf("worker %s: %w: %v", w.id, errWorkerGone, context.Cause(w.ep.Context()))
		}
		return mandel.TaggedResult{}, fmt.Errorf("worker %s: %w", w.id, err)
	}
	return res, nil
}

var _ mandel.Renderer = (*remoteWorker)(nil)
