package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"

	"github.com/marben/irpc"

	mandel "github.com/marben/dist_mandel"
	"github.com/marben/dist_mandel/config"
)

// main is the entry point for the Mandelbrot collector.
// Workers (cmd/worker and cmd/cliclient) connect over tcp or websocket and
// compute the assignments; the collector partitions rounds and gathers results.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config (defaults are used when empty)")
	debug := flag.Bool("debug", false, "log every finished assignment")
	flag.Parse()

	if *debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}

	ctx := context.Background()
	c := newCollector(cfg)
	irpcServer := newIrpcServer(c)

	// TCP
	log.Printf("tcp listening on %s", cfg.TCPAddr)
	tcpListener, err := net.Listen("tcp", cfg.TCPAddr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}

	// WEBSOCKET
	websocketListener, httpServer := webServer(ctx, cfg.HTTPAddr, c)

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("httpServer: %v", err)
		}
	}()

	// irpcServer serves both tcp and websocket
	go func() {
		if err := irpcServer.Serve(tcpListener); err != nil {
			log.Fatalf("server.Serve tcp: %v", err)
		}
	}()
	go func() {
		if err := irpcServer.Serve(websocketListener); err != nil {
			log.Fatalf("server.Serve ws: %v", err)
		}
	}()

	log.Printf("collector waiting for tcp and websocket connections")
	select {}
}

// newIrpcServer serves mandel.ImgProvider to every peer and uses every peer
// as a worker through the mandel.Renderer it serves back.
func newIrpcServer(c *collector) *irpc.Server {
	s := irpc.NewServer(irpc.WithOnConnect(func(ep *irpc.Endpoint) {
		log.Printf("got connection from: %s", remoteAddr(ep))
		c.serveWorker(ep)
	}))
	s.AddService(mandel.NewImgProviderIrpcService(c))
	return s
}
