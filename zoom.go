package mandel

import "math"

// NextViewport derives the viewport for the next round from a selection
// made on the current image of widthPx x heightPx pixels.
//
// The selection is first corrected to the image aspect ratio by growing
// its shorter side around the selection center, then each corner is mapped
// through the current viewport. Corner order does not matter.
//
// A pixel coordinate P on an axis of W pixels and range R maps to
// center + P/W*R - R/2, where center is the midpoint of the current
// viewport on that axis. Without the center term the mapping is only right
// for views centered on the origin, which is the case for DefaultViewport
// but not after the first zoom or for the landmark regions.
func NextViewport(current Viewport, sel Selection, widthPx, heightPx int) (Viewport, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return Viewport{}, configErr("dimensions", "must be positive, got %dx%d", widthPx, heightPx)
	}
	if err := current.Validate(); err != nil {
		return Viewport{}, err
	}

	x0, x1, y0, y1 := aspectCorrect(sel, float64(widthPx)/float64(heightPx))
	if x1 == x0 || y1 == y0 {
		return Viewport{}, configErr("selection", "rectangle %v-%v has no area", sel.P1, sel.P2)
	}

	ax, bx := planeX(current, x0, widthPx), planeX(current, x1, widthPx)
	ay, by := planeY(current, y0, heightPx), planeY(current, y1, heightPx)
	next := Viewport{
		MinX: math.Min(ax, bx), MaxX: math.Max(ax, bx),
		MinY: math.Min(ay, by), MaxY: math.Max(ay, by),
	}
	if err := next.Validate(); err != nil {
		return Viewport{}, err
	}
	return next, nil
}

// aspectCorrect returns the selection bounds in pixel space after growing
// the shorter side so that width/height equals ratio.
func aspectCorrect(sel Selection, ratio float64) (x0, x1, y0, y1 float64) {
	dx := math.Abs(float64(sel.P2.X - sel.P1.X))
	dy := math.Abs(float64(sel.P2.Y - sel.P1.Y))
	if dx == 0 && dy == 0 {
		return 0, 0, 0, 0
	}
	if dx < dy*ratio {
		dx = dy * ratio
	} else {
		dy = dx / ratio
	}
	cx := float64(sel.P1.X+sel.P2.X) / 2
	cy := float64(sel.P1.Y+sel.P2.Y) / 2
	return cx - dx/2, cx + dx/2, cy - dy/2, cy + dy/2
}

// planeX maps pixel column px onto the real axis. The offset is taken
// from the viewport center, which is zero for the default view.
func planeX(v Viewport, px float64, widthPx int) float64 {
	rangeX := math.Abs(v.MaxX - v.MinX)
	center := (v.MinX + v.MaxX) / 2
	return center + px/float64(widthPx)*rangeX - rangeX/2
}

func planeY(v Viewport, py float64, heightPx int) float64 {
	rangeY := math.Abs(v.MaxY - v.MinY)
	center := (v.MinY + v.MaxY) / 2
	return center + py/float64(heightPx)*rangeY - rangeY/2
}
