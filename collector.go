package mandel

import (
	"context"
	"errors"
	"fmt"
)

// assembler scatters tagged results into a grid and tracks that every
// index is written exactly once.
type assembler struct {
	grid    *PixelGrid
	byOwner map[int]WorkAssignment
	seen    map[int]bool
	written []bool
	filled  int
}

func newAssembler(assignments []WorkAssignment, width, height int) (*assembler, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	byOwner := make(map[int]WorkAssignment, len(assignments))
	for _, a := range assignments {
		if _, dup := byOwner[a.OwnerID]; dup {
			return nil, integrityErr(a.OwnerID, "owner appears in more than one assignment")
		}
		if a.Start < 0 || a.Count < 0 || a.End() > width*height {
			return nil, integrityErr(a.OwnerID, "assignment [%d, %d) outside image of %d pixels", a.Start, a.End(), width*height)
		}
		byOwner[a.OwnerID] = a
	}
	return &assembler{
		grid:    NewPixelGrid(width, height),
		byOwner: byOwner,
		seen:    make(map[int]bool, len(assignments)),
		written: make([]bool, width*height),
	}, nil
}

func (as *assembler) add(res TaggedResult) error {
	a, ok := as.byOwner[res.OwnerID]
	if !ok {
		return integrityErr(res.OwnerID, "no matching assignment")
	}
	if as.seen[res.OwnerID] {
		return integrityErr(res.OwnerID, "duplicate result")
	}
	if len(res.Pixels) != a.Count {
		return integrityErr(res.OwnerID, "got %d pixels, assignment has %d", len(res.Pixels), a.Count)
	}
	as.seen[res.OwnerID] = true

	for j, p := range res.Pixels {
		i := a.Start + j
		if as.written[i] {
			return integrityErr(res.OwnerID, "pixel %d written twice", i)
		}
		as.written[i] = true
		as.filled++
		x, y := Coords(i, as.grid.Width)
		as.grid.Set(x, y, p)
	}
	return nil
}

func (as *assembler) pending() int {
	return len(as.byOwner) - len(as.seen)
}

// finish checks the write-once postcondition and releases the grid.
func (as *assembler) finish() (*PixelGrid, error) {
	for owner := range as.byOwner {
		if !as.seen[owner] {
			return nil, integrityErr(owner, "missing result")
		}
	}
	if as.filled != len(as.written) {
		for i, w := range as.written {
			if !w {
				return nil, integrityErr(-1, "pixel %d never written", i)
			}
		}
	}
	grid := as.grid
	as.grid = nil
	return grid, nil
}

// Collect assembles a complete grid from one result per assignment.
// Results may be in any order. Any mismatch is an *IntegrityError and no
// grid is returned.
func Collect(results []TaggedResult, assignments []WorkAssignment, width, height int) (*PixelGrid, error) {
	as, err := newAssembler(assignments, width, height)
	if err != nil {
		return nil, err
	}
	for _, res := range results {
		if err := as.add(res); err != nil {
			return nil, err
		}
	}
	return as.finish()
}

// Gather drains results until one has arrived for every assignment, in
// whatever order workers finish. It returns early on an integrity error,
// on a closed channel, or when ctx is done. A context deadline is
// reported as ErrGatherTimeout.
func Gather(ctx context.Context, results <-chan TaggedResult, assignments []WorkAssignment, width, height int) (*PixelGrid, error) {
	as, err := newAssembler(assignments, width, height)
	if err != nil {
		return nil, err
	}
	for as.pending() > 0 {
		select {
		case res, ok := <-results:
			if !ok {
				return nil, integrityErr(-1, "result stream closed with %d assignments outstanding", as.pending())
			}
			if err := as.add(res); err != nil {
				return nil, err
			}
		case <-ctx.Done():
			err := context.Cause(ctx)
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %d of %d results missing", ErrGatherTimeout, as.pending(), len(assignments))
			}
			return nil, err
		}
	}
	return as.finish()
}
