package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/marben/irpc"

	mandel "github.com/marben/dist_mandel"
	"github.com/marben/dist_mandel/config"
	"github.com/marben/dist_mandel/render"
)

var errNoWorkers = errors.New("no workers connected")

// collector owns the current view, the connected workers and the last
// finished image. It runs one round at a time.
type collector struct {
	cfg *config.Config

	round sync.Mutex // held for the duration of a compute round

	m        sync.Mutex
	viewport mandel.Viewport
	last     *mandel.Image
	workers  []*remoteWorker
	changed  chan struct{} // closed and replaced whenever workers change
	roundID  string

	assigned atomic.Int64
	finished atomic.Int64
}

func newCollector(cfg *config.Config) *collector {
	return &collector{
		cfg:      cfg,
		viewport: cfg.StartViewport(),
		changed:  make(chan struct{}),
	}
}

// serveWorker registers the peer behind ep as a worker for as long as its
// connection lasts.
func (c *collector) serveWorker(ep *irpc.Endpoint) {
	w, err := newRemoteWorker(uuid.NewString()[:8], ep)
	if err != nil {
		slog.Error("collector: cannot use peer as worker", "remote", remoteAddr(ep), "error", err)
		ep.Close()
		return
	}
	c.addWorker(w, remoteAddr(ep))
	<-ep.Context().Done()
	c.removeWorker(w, context.Cause(ep.Context()))
}

func remoteAddr(ep *irpc.Endpoint) string {
	if addr := ep.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return "unknown"
}

func (c *collector) addWorker(w *remoteWorker, addr string) {
	c.m.Lock()
	c.workers = append(c.workers, w)
	n := len(c.workers)
	c.notifyLocked()
	c.m.Unlock()

	slog.Info("collector: worker joined", "worker", w.id, "remote", addr, "workers", n)
}

func (c *collector) removeWorker(w *remoteWorker, cause error) {
	c.m.Lock()
	for i, cur := range c.workers {
		if cur == w {
			c.workers = append(c.workers[:i], c.workers[i+1:]...)
			break
		}
	}
	n := len(c.workers)
	c.notifyLocked()
	c.m.Unlock()

	slog.Info("collector: worker left", "worker", w.id, "workers", n, "cause", cause)
}

func (c *collector) notifyLocked() {
	close(c.changed)
	c.changed = make(chan struct{})
}

// liveWorkers returns the workers whose connection still stands, and a
// channel closed on the next join or leave.
func (c *collector) liveWorkers() ([]*remoteWorker, <-chan struct{}) {
	c.m.Lock()
	defer c.m.Unlock()
	var live []*remoteWorker
	for _, w := range c.workers {
		if w.alive() {
			live = append(live, w)
		}
	}
	return live, c.changed
}

// waitWorkers blocks until at least n remote workers are connected.
func (c *collector) waitWorkers(ctx context.Context, n int) error {
	for {
		live, changed := c.liveWorkers()
		if len(live) >= n {
			return nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return fmt.Errorf("waiting for %d workers, have %d: %w", n, len(live), ctx.Err())
		}
	}
}

// renderers returns the renderers for one round: every connected worker,
// plus the collector itself when it takes a share or no worker is
// connected and fallback is enabled.
func (c *collector) renderers(roundID string) ([]mandel.Renderer, error) {
	workers, _ := c.liveWorkers()

	var rs []mandel.Renderer
	for _, w := range workers {
		rs = append(rs, c.track(w))
	}
	switch {
	case c.cfg.Render.LocalShare:
		rs = append(rs, c.track(render.RendererImpl{}))
	case len(rs) == 0 && c.cfg.Render.LocalFallback:
		slog.Info("collector: no remote workers, rendering locally", "round", roundID)
		rs = append(rs, c.track(render.RendererImpl{}))
	case len(rs) == 0:
		return nil, errNoWorkers
	}
	return rs, nil
}

// track counts finished assignments for progress reporting.
func (c *collector) track(r mandel.Renderer) mandel.Renderer {
	return mandel.RendererFunc(func(ctx context.Context, job mandel.Job) (mandel.TaggedResult, error) {
		res, err := r.RenderRange(ctx, job)
		if err == nil {
			done := c.finished.Add(1)
			slog.Debug("collector: assignment finished",
				"owner", job.Assignment.OwnerID,
				"done", done,
				"of", c.assigned.Load())
		}
		return res, err
	})
}

// GetImage implements mandel.ImgProvider. Without a selection the current
// view is returned, rendering it first if needed. With one, the view
// zooms into the selection and a new round is rendered.
func (c *collector) GetImage(ctx context.Context, zoom *mandel.Selection) (mandel.Image, error) {
	c.round.Lock()
	defer c.round.Unlock()

	c.m.Lock()
	viewport, last := c.viewport, c.last
	c.m.Unlock()

	if zoom != nil {
		next, err := mandel.NextViewport(viewport, *zoom, c.cfg.Image.Width, c.cfg.Image.Height)
		if err != nil {
			return mandel.Image{}, fmt.Errorf("zoom: %w", err)
		}
		slog.Info("collector: zooming", "from", viewport.String(), "to", next.String())
		viewport, last = next, nil
	}
	if last != nil {
		return *last, nil
	}

	img, err := c.compute(ctx, viewport)
	if err != nil {
		return mandel.Image{}, err
	}

	c.m.Lock()
	c.viewport, c.last = viewport, &img
	c.m.Unlock()
	return img, nil
}

func (c *collector) compute(ctx context.Context, viewport mandel.Viewport) (mandel.Image, error) {
	if err := c.waitWorkers(ctx, c.cfg.Render.MinWorkers); err != nil {
		return mandel.Image{}, err
	}

	roundID := uuid.NewString()
	c.m.Lock()
	c.roundID = roundID
	c.m.Unlock()

	renderers, err := c.renderers(roundID)
	if err != nil {
		return mandel.Image{}, err
	}

	round := c.cfg.Round(viewport)
	c.assigned.Store(int64(round.Workers))
	c.finished.Store(0)

	start := time.Now()
	slog.Info("collector: round started",
		"round", roundID,
		"viewport", viewport.String(),
		"assignments", round.Workers,
		"renderers", len(renderers))

	grid, err := mandel.Compute(ctx, round, renderers, c.cfg.Render.GatherTimeout())
	if err != nil {
		slog.Error("collector: round failed", "round", roundID, "error", err)
		return mandel.Image{}, fmt.Errorf("round %s: %w", roundID, err)
	}

	slog.Info("collector: round finished", "round", roundID, "elapsed", time.Since(start))
	return mandel.Image{Viewport: viewport, Grid: grid}, nil
}

var _ mandel.ImgProvider = (*collector)(nil)

// status is served on /status.
type status struct {
	Workers    int             `json:"workers"`
	Round      string          `json:"round,omitempty"`
	Assigned   int64           `json:"assigned"`
	Finished   int64           `json:"finished"`
	Viewport   mandel.Viewport `json:"viewport"`
	ImageReady bool            `json:"image_ready"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
}

func (c *collector) status() status {
	c.m.Lock()
	defer c.m.Unlock()
	return status{
		Workers:    len(c.workers),
		Round:      c.roundID,
		Assigned:   c.assigned.Load(),
		Finished:   c.finished.Load(),
		Viewport:   c.viewport,
		ImageReady: c.last != nil,
		Width:      c.cfg.Image.Width,
		Height:     c.cfg.Image.Height,
	}
}
