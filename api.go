package mandel

//go:generate irpc $GOFILE

import (
	"context"
	"image"
)

// TaggedResult is one worker's output: the pixels of its assignment in
// index order, tagged with the worker's identity.
type TaggedResult struct {
	OwnerID int
	Pixels  []Pixel
}

// Renderer evaluates a job. Implementations may compute in-process or
// forward the job to a remote worker.
type Renderer interface {
	RenderRange(ctx context.Context, job Job) (TaggedResult, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, job Job) (TaggedResult, error)

func (f RendererFunc) RenderRange(ctx context.Context, job Job) (TaggedResult, error) {
	return f(ctx, job)
}

// Image is a finished round as served to hosts.
type Image struct {
	Viewport Viewport
	Grid     *PixelGrid
}

// ImgProvider hands out finished images. A non-nil selection first zooms
// into the given pixel rectangle of the current image.
type ImgProvider interface {
	GetImage(ctx context.Context, zoom *Selection) (Image, error)
}

// Selection is a user-drawn rectangle in pixel space, corners in any order.
type Selection struct {
	P1, P2 image.Point
}
