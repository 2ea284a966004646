// Package render evaluates Mandelbrot pixels. Everything here is pure and
// safe to call from many goroutines at once.
package render

import (
	"context"
	"math"

	mandel "github.com/marben/dist_mandel"
)

// Bailout is the modulus beyond which a point is considered divergent.
const Bailout = 2.0

// IterationResult is the raw outcome of the escape-time loop for one point.
type IterationResult struct {
	Escaped    bool
	Iterations int
	Modulus    float64 // |z| when the loop stopped
}

// Iterate applies z = z*z + c from z = 0 until |z| > Bailout or maxIter
// steps have been taken. The bailout test runs before every step, so a
// point still inside after maxIter steps does not escape.
func Iterate(cr, ci float64, maxIter int) IterationResult {
	var zr, zi float64
	i := 0
	for i < maxIter && modulus(zr, zi) <= Bailout {
		zr, zi = zr*zr-zi*zi+cr, zr*zi+zi*zr+ci
		i++
	}
	return IterationResult{
		Escaped:    i < maxIter,
		Iterations: i,
		Modulus:    modulus(zr, zi),
	}
}

func modulus(re, im float64) float64 {
	return math.Sqrt(re*re + im*im)
}

// Smooth turns an iteration result into a gray level using the continuous
// (normalized) iteration count. Points that did not escape are black.
func Smooth(res IterationResult, maxIter int) mandel.Pixel {
	if !res.Escaped {
		return mandel.Black
	}
	logZn := math.Log(res.Modulus)
	nu := math.Log(logZn/math.Ln2) / math.Ln2
	smoothed := float64(res.Iterations) + 1 - math.Floor(nu)

	gray := math.Round(255 * math.Sqrt(math.Max(smoothed, 0)/float64(maxIter)))
	gray = math.Min(math.Max(gray, 0), 255)
	return mandel.Gray(uint8(gray))
}

// PlanePoint maps pixel (x, y) of a width x height image onto the viewport.
func PlanePoint(x, y, width, height int, v mandel.Viewport) (cr, ci float64) {
	cr = float64(x)/float64(width)*(v.MaxX-v.MinX) + v.MinX
	ci = float64(y)/float64(height)*(v.MaxY-v.MinY) + v.MinY
	return cr, ci
}

// Evaluate computes the color of pixel (x, y).
func Evaluate(x, y, width, height int, v mandel.Viewport, maxIter int) mandel.Pixel {
	cr, ci := PlanePoint(x, y, width, height, v)
	return Smooth(Iterate(cr, ci, maxIter), maxIter)
}

// RunWorker evaluates every pixel of the job's assignment in index order
// and tags the result with selfID. Invalid jobs are rejected before any
// pixel is computed. ctx is checked once per image row's
// worth of pixels.
func RunWorker(ctx context.Context, job mandel.Job, selfID int) (mandel.TaggedResult, error) {
	if err := job.Validate(); err != nil {
		return mandel.TaggedResult{}, err
	}
	a := job.Assignment
	pixels := make([]mandel.Pixel, a.Count)
	for j := range pixels {
		if j%job.Width == 0 {
			if err := ctx.Err(); err != nil {
				return mandel.TaggedResult{}, err
			}
		}
		x, y := mandel.Coords(a.Start+j, job.Width)
		pixels[j] = Evaluate(x, y, job.Width, job.Height, job.Viewport, job.MaxIterations)
	}
	return mandel.TaggedResult{OwnerID: selfID, Pixels: pixels}, nil
}

// RendererImpl computes jobs on the local CPU.
type RendererImpl struct {
	// OnRender, if set, is called before each job starts.
	OnRender func(a mandel.WorkAssignment)
}

func (imp RendererImpl) RenderRange(ctx context.Context, job mandel.Job) (mandel.TaggedResult, error) {
	if imp.OnRender != nil {
		imp.OnRender(job.Assignment)
	}
	return RunWorker(ctx, job, job.Assignment.OwnerID)
}

var _ mandel.Renderer = RendererImpl{}
