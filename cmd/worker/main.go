// worker is a compute node for the distributed Mandelbrot renderer.
// It connects to the collector and evaluates the pixel ranges it is assigned.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	mandel "github.com/marben/dist_mandel"
	"github.com/marben/dist_mandel/wire"
	"github.com/marben/dist_mandel/worker"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	addr := flag.String("addr", "localhost:8081", "collector address; ws://host:8080/ws for websocket")
	parallel := flag.Int("parallel", 0, "assignments evaluated at once (0 = number of CPUs)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("connecting to %s", *addr)
	conn, err := wire.Dial(ctx, *addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	err = worker.Serve(ctx, conn, worker.Options{
		Parallel: *parallel,
		OnRender: func(a mandel.WorkAssignment) {
			log.Printf("rendering pixels [%d, %d) for worker %d", a.Start, a.End(), a.OwnerID)
		},
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("worker.Serve: %w", err)
	}
	log.Printf("disconnected")
	return nil
}
