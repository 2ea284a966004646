package mandel

import "math"

// WorkAssignment is the half-open range [Start, Start+Count) of the
// flattened pixel index space given to one worker.
type WorkAssignment struct {
	OwnerID int
	Start   int
	Count   int
}

// End returns the first index past the assignment.
func (a WorkAssignment) End() int { return a.Start + a.Count }

// checkDimensions rejects images with no pixels or more pixels than an
// int can index.
func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return configErr("dimensions", "must be positive, got %dx%d", width, height)
	}
	if width > math.MaxInt/height {
		return configErr("dimensions", "%dx%d pixels overflow int", width, height)
	}
	return nil
}

// Partition splits width*height pixels into one contiguous range per worker.
// Every worker gets total/workers pixels and the last one also takes the
// remainder, so worker r always starts at r*base.
func Partition(width, height, workers int) ([]WorkAssignment, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if workers < 1 {
		return nil, configErr("workers", "must be at least 1, got %d", workers)
	}

	total := width * height
	base := total / workers
	remainder := total % workers

	assignments := make([]WorkAssignment, workers)
	for r := range assignments {
		count := base
		if r == workers-1 {
			count += remainder
		}
		assignments[r] = WorkAssignment{OwnerID: r, Start: r * base, Count: count}
	}
	return assignments, nil
}

// Coords decodes a flattened index into column and row (x varies fastest).
func Coords(i, width int) (x, y int) {
	return i % width, i / width
}
