package main

import (
	"context"
	"errors"
	"image"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marben/irpc"

	mandel "github.com/marben/dist_mandel"
	"github.com/marben/dist_mandel/config"
	"github.com/marben/dist_mandel/render"
	"github.com/marben/dist_mandel/wire"
	"github.com/marben/dist_mandel/worker"
)

// testConfig renders a 24x16 image; renderYAML replaces the render section.
func testConfig(t *testing.T, renderYAML string) *config.Config {
	t.Helper()
	if renderYAML == "" {
		renderYAML = "{workers: 5, max_iterations: 100, gather_timeout_s: 10}"
	}
	cfg, err := config.Parse([]byte("image: {width: 24, height: 16}\nrender: " + renderYAML))
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func localGrid(t *testing.T, cfg *config.Config, v mandel.Viewport) *mandel.PixelGrid {
	t.Helper()
	grid, err := mandel.Compute(context.Background(), cfg.Round(v), []mandel.Renderer{render.RendererImpl{}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	return grid
}

// pipeListener hands in-memory connections to an irpc server.
type pipeListener struct {
	conns chan net.Conn
	done  chan struct{}
	once  sync.Once
}

func newPipeListener() *pipeListener {
	return &pipeListener{conns: make(chan net.Conn), done: make(chan struct{})}
}

func (l *pipeListener) Accept() (net.Conn, error) {
	select {
	case c := <-l.conns:
		return c, nil
	case <-l.done:
		return nil, net.ErrClosed
	}
}

func (l *pipeListener) Close() error {
	l.once.Do(func() { close(l.done) })
	return nil
}

func (l *pipeListener) Addr() net.Addr { return wsAddr{addr: "pipe"} }

// dial returns the client end of a new connection to the server.
func (l *pipeListener) dial(t *testing.T) net.Conn {
	t.Helper()
	a, b := net.Pipe()
	t.Cleanup(func() {
		a.Close()
		b.Close()
	})
	l.conns <- a
	return b
}

// startServer serves c over in-memory connections until the test ends.
func startServer(t *testing.T, c *collector) *pipeListener {
	t.Helper()
	l := newPipeListener()
	s := newIrpcServer(c)
	go s.Serve(l)
	t.Cleanup(func() { s.Close() })
	return l
}

// connectWorker attaches an in-memory worker to the collector.
func connectWorker(ctx context.Context, t *testing.T, l *pipeListener, opts worker.Options) {
	t.Helper()
	go worker.Serve(ctx, l.dial(t), opts)
}

func TestLocalFallbackRendersCurrentView(t *testing.T) {
	cfg := testConfig(t, "")
	c := newCollector(cfg)

	img, err := c.GetImage(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetImage: %v", err)
	}
	if img.Viewport != cfg.StartViewport() {
		t.Errorf("viewport = %s, want %s", img.Viewport, cfg.StartViewport())
	}
	if !img.Grid.Equal(localGrid(t, cfg, img.Viewport)) {
		t.Error("image differs from a local compute")
	}

	again, err := c.GetImage(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if again.Grid != img.Grid {
		t.Error("unchanged view was rendered twice")
	}
}

func TestNoWorkersWithoutFallback(t *testing.T) {
	c := newCollector(testConfig(t, "{workers: 5, local_fallback: false}"))
	if _, err := c.GetImage(context.Background(), nil); !errors.Is(err, errNoWorkers) {
		t.Fatalf("got %v, want errNoWorkers", err)
	}
}

func TestRemoteWorkersRenderAndZoom(t *testing.T) {
	cfg := testConfig(t, "{workers: 5, max_iterations: 100, gather_timeout_s: 10, local_fallback: false, min_workers: 2}")
	c := newCollector(cfg)
	l := startServer(t, c)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	connectWorker(ctx, t, l, worker.Options{Parallel: 2})
	connectWorker(ctx, t, l, worker.Options{Parallel: 2})

	img, err := c.GetImage(ctx, nil)
	if err != nil {
		t.Fatalf("GetImage: %v", err)
	}
	if !img.Grid.Equal(localGrid(t, cfg, cfg.StartViewport())) {
		t.Fatal("remote image differs from a local compute")
	}

	sel := &mandel.Selection{P1: image.Pt(18, 12), P2: image.Pt(6, 4)}
	zoomed, err := c.GetImage(ctx, sel)
	if err != nil {
		t.Fatalf("GetImage(zoom): %v", err)
	}
	want, err := mandel.NextViewport(cfg.StartViewport(), *sel, 24, 16)
	if err != nil {
		t.Fatal(err)
	}
	if zoomed.Viewport != want {
		t.Errorf("zoomed viewport = %s, want %s", zoomed.Viewport, want)
	}
	if !zoomed.Grid.Equal(localGrid(t, cfg, want)) {
		t.Error("zoomed image differs from a local compute")
	}

	st := c.status()
	if st.Workers != 2 || !st.ImageReady || st.Viewport != want || st.Finished != 5 {
		t.Errorf("status = %+v", st)
	}
}

func TestLocalShareRendersNextToWorkers(t *testing.T) {
	cfg := testConfig(t, "{workers: 4, max_iterations: 100, gather_timeout_s: 10, local_fallback: false, local_share: true, min_workers: 1}")
	c := newCollector(cfg)
	l := startServer(t, c)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	var remote atomic.Int32
	connectWorker(ctx, t, l, worker.Options{OnRender: func(mandel.WorkAssignment) { remote.Add(1) }})

	img, err := c.GetImage(ctx, nil)
	if err != nil {
		t.Fatalf("GetImage: %v", err)
	}
	if !img.Grid.Equal(localGrid(t, cfg, cfg.StartViewport())) {
		t.Fatal("image differs from a local compute")
	}
	// assignments alternate between the worker and the collector
	if n := remote.Load(); n != 2 {
		t.Errorf("remote worker rendered %d assignments, want 2", n)
	}
	if st := c.status(); st.Finished != 4 {
		t.Errorf("finished = %d, want 4", st.Finished)
	}
}

// misbehave serves a renderer on conn that runs act on the raw connection
// once a whole assignment has arrived, and then never answers.
func misbehave(conn net.Conn, act func(net.Conn)) {
	irpc.NewEndpoint(conn, irpc.WithEndpointServices(mandel.NewRendererIrpcService(
		mandel.RendererFunc(func(ctx context.Context, job mandel.Job) (mandel.TaggedResult, error) {
			act(conn)
			<-ctx.Done()
			return mandel.TaggedResult{}, ctx.Err()
		}),
	)))
}

func TestLostWorkerFailsRound(t *testing.T) {
	cfg := testConfig(t, "{workers: 1, max_iterations: 100, local_fallback: false, min_workers: 1}")
	c := newCollector(cfg)
	l := startServer(t, c)

	// a worker that hangs up on its assignment
	misbehave(l.dial(t), func(conn net.Conn) { conn.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := c.GetImage(ctx, nil)
	if !errors.Is(err, errWorkerGone) {
		t.Fatalf("got %v, want errWorkerGone", err)
	}
	if c.status().ImageReady {
		t.Error("failed round left an image behind")
	}
}

func TestBrokenWorkerConnectionFailsRound(t *testing.T) {
	// no gather timeout: only the broken connection can end the round
	cfg := testConfig(t, "{workers: 1, max_iterations: 100, local_fallback: false, min_workers: 1}")
	c := newCollector(cfg)
	l := startServer(t, c)

	// a worker that answers with a byte no endpoint understands and keeps
	// the connection open
	misbehave(l.dial(t), func(conn net.Conn) { conn.Write([]byte{0x7f}) })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := c.GetImage(ctx, nil)
	if !errors.Is(err, errWorkerGone) {
		t.Fatalf("got %v, want errWorkerGone", err)
	}

	// the collector is not stuck: the next round runs on a healthy worker
	connectWorker(ctx, t, l, worker.Options{})
	img, err := c.GetImage(ctx, nil)
	if err != nil {
		t.Fatalf("GetImage after broken worker: %v", err)
	}
	if !img.Grid.Equal(localGrid(t, cfg, cfg.StartViewport())) {
		t.Error("image differs from a local compute")
	}
	for c.status().Workers != 1 {
		if ctx.Err() != nil {
			t.Fatalf("workers = %d, want only the healthy one", c.status().Workers)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestClientOverWebsocket(t *testing.T) {
	cfg := testConfig(t, "{workers: 4, max_iterations: 100, gather_timeout_s: 10, local_fallback: false, min_workers: 1}")
	c := newCollector(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	l := NewWSListener(ctx, "test/ws")
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(l))
	srv := httptest.NewServer(mux)
	defer srv.Close()
	s := newIrpcServer(c)
	go s.Serve(l)
	defer s.Close()

	conn, err := wire.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")
	if err != nil {
		t.Fatal(err)
	}
	// the client lends its CPU while it waits for the image, like cliclient
	ep := worker.NewEndpoint(conn, worker.Options{})
	defer ep.Close()
	client, err := mandel.NewImgProviderIrpcClient(ep)
	if err != nil {
		t.Fatal(err)
	}

	img, err := client.GetImage(ctx, nil)
	if err != nil {
		t.Fatalf("GetImage over websocket: %v", err)
	}
	if img.Viewport != cfg.StartViewport() {
		t.Errorf("viewport = %s, want %s", img.Viewport, cfg.StartViewport())
	}
	if !img.Grid.Equal(localGrid(t, cfg, cfg.StartViewport())) {
		t.Error("image over websocket differs from a local compute")
	}

	_, err = client.GetImage(ctx, &mandel.Selection{P1: image.Pt(3, 3), P2: image.Pt(3, 3)})
	if err == nil || !strings.Contains(err.Error(), "no area") {
		t.Errorf("zoom into a point: got %v, want an error about the selection", err)
	}
}

func TestServerClosesEndpointsOnClose(t *testing.T) {
	c := newCollector(testConfig(t, ""))
	l := newPipeListener()
	s := newIrpcServer(c)
	served := make(chan error, 1)
	go func() { served <- s.Serve(l) }()

	ep := irpc.NewEndpoint(l.dial(t))
	defer ep.Close()
	if err := c.waitWorkers(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := <-served; !errors.Is(err, irpc.ErrServerClosed) {
		t.Errorf("Serve returned %v, want irpc.ErrServerClosed", err)
	}
	select {
	case <-ep.Context().Done():
	case <-time.After(5 * time.Second):
		t.Fatal("peer endpoint still open after server close")
	}
}
