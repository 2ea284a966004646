package mandel

import (
	"image"
	"image/color"
)

// Pixel is an 8-bit RGB color. Black means the point did not escape within
// the iteration budget.
type Pixel struct {
	R, G, B uint8
}

// Black is the color of points inside the set.
var Black = Pixel{}

// Gray returns a pixel with all three channels set to v.
func Gray(v uint8) Pixel { return Pixel{R: v, G: v, B: v} }

// IsDiverging reports whether the pixel carries escape color, i.e. is not black.
func (p Pixel) IsDiverging() bool {
	return p.R != 0 || p.G != 0 || p.B != 0
}

// Color converts the pixel to an opaque color.
func (p Pixel) Color() color.RGBA {
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 255}
}

// PixelGrid is a complete image in row-major order.
type PixelGrid struct {
	Width, Height int
	Pixels        []Pixel
}

// NewPixelGrid allocates a black grid.
func NewPixelGrid(width, height int) *PixelGrid {
	return &PixelGrid{
		Width:  width,
		Height: height,
		Pixels: make([]Pixel, width*height),
	}
}

// At returns the pixel at column x, row y.
func (g *PixelGrid) At(x, y int) Pixel {
	return g.Pixels[y*g.Width+x]
}

// Set stores the pixel at column x, row y.
func (g *PixelGrid) Set(x, y int, p Pixel) {
	g.Pixels[y*g.Width+x] = p
}

// Equal reports whether both grids have the same size and identical pixels.
func (g *PixelGrid) Equal(other *PixelGrid) bool {
	if g.Width != other.Width || g.Height != other.Height || len(g.Pixels) != len(other.Pixels) {
		return false
	}
	for i := range g.Pixels {
		if g.Pixels[i] != other.Pixels[i] {
			return false
		}
	}
	return true
}

// RGBA renders the grid into an opaque image for the host to encode or display.
func (g *PixelGrid) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for i, p := range g.Pixels {
		x, y := Coords(i, g.Width)
		img.SetRGBA(x, y, p.Color())
	}
	return img
}
