// cliclient is a CLI client for the distributed Mandelbrot renderer.
// It connects to the collector, lends its CPU as a worker, requests the
// fully rendered image (optionally zoomed into a selection) and saves it
// as a PNG file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"golang.org/x/image/draw"

	mandel "github.com/marben/dist_mandel"
	"github.com/marben/dist_mandel/wire"
	"github.com/marben/dist_mandel/worker"
)

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	log.Printf("Starting CLI client...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run() error {
	addr := flag.String("addr", "localhost:8081", "collector address; ws://host:8080/ws for websocket")
	out := flag.String("out", "mandel.png", "output PNG file")
	zoom := flag.String("zoom", "", "zoom selection in pixels of the current image: x1,y1,x2,y2")
	scale := flag.Int("scale", 0, "downscale the saved image to this width (0 keeps full size)")
	flag.Parse()

	var sel *mandel.Selection
	if *zoom != "" {
		var s mandel.Selection
		if _, err := fmt.Sscanf(*zoom, "%d,%d,%d,%d", &s.P1.X, &s.P1.Y, &s.P2.X, &s.P2.Y); err != nil {
			return fmt.Errorf("parse -zoom %q: %w", *zoom, err)
		}
		sel = &s
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Step 1: Connect to the collector
	log.Printf("Connecting to Mandelbrot collector on %s...", *addr)
	conn, err := wire.Dial(ctx, *addr)
	if err != nil {
		return fmt.Errorf("failed to connect to collector: %w", err)
	}

	// Step 2: Serve the renderer so the collector can use our CPU while
	// we wait for the image
	ep := worker.NewEndpoint(conn, worker.Options{
		OnRender: func(a mandel.WorkAssignment) {
			log.Printf("Rendering pixels [%d, %d)", a.Start, a.End())
		},
	})
	defer ep.Close()

	client, err := mandel.NewImgProviderIrpcClient(ep)
	if err != nil {
		return err
	}

	// Step 3: Request the fully rendered image
	log.Printf("Requesting fully rendered image from collector...")
	reply, err := client.GetImage(ctx, sel)
	if err != nil {
		return fmt.Errorf("client.GetImage: %w", err)
	}
	if reply.Grid == nil {
		return errors.New("collector sent no pixels")
	}
	grid := reply.Grid
	log.Printf("Received %dx%d image of %s", grid.Width, grid.Height, reply.Viewport)

	// Step 4: Save the rendered image to a PNG file
	img := downscale(grid.RGBA(), *scale)
	log.Printf("Saving rendered image to %q...", *out)
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	log.Printf("Fully rendered image saved to %q", *out)
	return nil
}

// downscale resizes img to the given width keeping its aspect ratio.
// Zero or a width not smaller than the image returns img unchanged.
func downscale(img *image.RGBA, width int) image.Image {
	b := img.Bounds()
	if width <= 0 || width >= b.Dx() {
		return img
	}
	height := max(1, b.Dy()*width/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
