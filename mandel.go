package mandel

import "fmt"

// Viewport is the rectangle of the complex plane being rendered.
// X runs along the real axis, Y along the imaginary axis.
type Viewport struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// RangeX returns the width of the viewport on the real axis.
func (v Viewport) RangeX() float64 { return v.MaxX - v.MinX }

// RangeY returns the height of the viewport on the imaginary axis.
func (v Viewport) RangeY() float64 { return v.MaxY - v.MinY }

// Validate reports a ConfigurationError for degenerate or non-finite viewports.
func (v Viewport) Validate() error {
	if !finite(v.MinX) || !finite(v.MaxX) || !finite(v.MinY) || !finite(v.MaxY) {
		return configErr("viewport", "bounds must be finite, got %s", v)
	}
	if v.MaxX <= v.MinX {
		return configErr("viewport", "maxX (%g) must be greater than minX (%g)", v.MaxX, v.MinX)
	}
	if v.MaxY <= v.MinY {
		return configErr("viewport", "maxY (%g) must be greater than minY (%g)", v.MaxY, v.MinY)
	}
	return nil
}

func (v Viewport) String() string {
	return fmt.Sprintf("[%g, %g]x[%g, %g]", v.MinX, v.MaxX, v.MinY, v.MaxY)
}

// DefaultViewport is the starting view: x in [-2, 2] and y scaled by the
// image aspect ratio so that pixels are square.
func DefaultViewport(width, height int) Viewport {
	halfY := 2.0 * float64(height) / float64(width)
	return Viewport{MinX: -2, MaxX: 2, MinY: -halfY, MaxY: halfY}
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Viewport{MinX: -0.8, MaxX: -0.7, MinY: 0.05, MaxY: 0.15}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Viewport{MinX: -1.85, MaxX: -1.75, MinY: -0.10, MaxY: -0.02}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Viewport{MinX: -0.7435, MaxX: -0.7420, MinY: 0.1310, MaxY: 0.1325}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Viewport{MinX: -0.7480, MaxX: -0.7450, MinY: 0.0950, MaxY: 0.0980}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Viewport{MinX: -0.7400, MaxX: -0.7350, MinY: 0.1800, MaxY: 0.1850}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Viewport{MinX: -1.7390, MaxX: -1.7375, MinY: -0.0235, MaxY: -0.0220}
)

// Landmarks maps config names to the classic regions above.
var Landmarks = map[string]Viewport{
	"seahorse-valley":      SeahorseValley,
	"elephant-valley":      ElephantValley,
	"spiral-minibrot":      SpiralMinibrot,
	"triple-spiral":        TripleSpiral,
	"valley-of-the-dragon": ValleyOfTheDragon,
	"minibrot-mini-spiral": MinibrotInMiniSpiral,
}

// Round is the validated configuration of one compute round.
type Round struct {
	Viewport      Viewport
	Width, Height int
	Workers       int
	MaxIterations int
}

// DefaultMaxIterations is the iteration budget used when a round does not set one.
const DefaultMaxIterations = 1000

// Validate fails fast on any parameter that would make the round meaningless.
// It must be called before any worker starts.
func (r Round) Validate() error {
	if r.Width <= 0 {
		return configErr("width", "must be positive, got %d", r.Width)
	}
	if r.Height <= 0 {
		return configErr("height", "must be positive, got %d", r.Height)
	}
	if err := checkDimensions(r.Width, r.Height); err != nil {
		return err
	}
	if r.Workers < 1 {
		return configErr("workers", "must be at least 1, got %d", r.Workers)
	}
	if r.MaxIterations < 1 {
		return configErr("maxIterations", "must be at least 1, got %d", r.MaxIterations)
	}
	return r.Viewport.Validate()
}

// Job is one work assignment together with the round parameters a worker
// needs to evaluate it.
type Job struct {
	Assignment    WorkAssignment
	Width, Height int
	Viewport      Viewport
	MaxIterations int
}

// Validate checks the job as a worker receives it.
func (j Job) Validate() error {
	round := Round{Viewport: j.Viewport, Width: j.Width, Height: j.Height, Workers: 1, MaxIterations: j.MaxIterations}
	if err := round.Validate(); err != nil {
		return err
	}
	a := j.Assignment
	if a.Start < 0 || a.Count < 0 || a.End() > j.Width*j.Height {
		return configErr("assignment", "range [%d, %d) outside image of %d pixels", a.Start, a.End(), j.Width*j.Height)
	}
	return nil
}

// Jobs expands the round's assignments into jobs.
func (r Round) Jobs(assignments []WorkAssignment) []Job {
	jobs := make([]Job, len(assignments))
	for i, a := range assignments {
		jobs[i] = Job{
			Assignment:    a,
			Width:         r.Width,
			Height:        r.Height,
			Viewport:      r.Viewport,
			MaxIterations: r.MaxIterations,
		}
	}
	return jobs
}
