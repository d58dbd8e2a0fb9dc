// Package canvas holds the shared pixel raster and mediates concurrent
// access to it.
//
// The Canvas itself is a plain RGB buffer with no synchronization; all
// shared access goes through [Store], which enforces exclusive writes and
// shared reads.
package canvas

import (
	"errors"
	"fmt"
)

// Pixel is a single-pixel write request: a coordinate and an RGB color.
type Pixel struct {
	X int
	Y int
	R uint8
	G uint8
	B uint8
}

// Canvas is a fixed-size rectangular RGB pixel buffer.
//
// Dimensions are fixed at construction and never change. Canvas is not
// safe for concurrent use; wrap it in a [Store].
type Canvas struct {
	width  int
	height int
	pix    []uint8 // RGB format, 3 bytes per pixel, row-major
}

// New creates a canvas of the given dimensions, filled with black.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas dimensions must be positive, got %dx%d", width, height)
	}
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}, nil
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// SetPixel sets the color of a single pixel.
// Out-of-bounds coordinates are ignored; bounds are validated upstream.
func (c *Canvas) SetPixel(x, y int, r, g, b uint8) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	i := (y*c.width + x) * 3
	c.pix[i+0] = r
	c.pix[i+1] = g
	c.pix[i+2] = b
}

// Apply writes the pixel request onto the canvas.
func (c *Canvas) Apply(p Pixel) {
	c.SetPixel(p.X, p.Y, p.R, p.G, p.B)
}

// PixelAt returns the color of a single pixel.
func (c *Canvas) PixelAt(x, y int) (r, g, b uint8) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0, 0, 0
	}
	i := (y*c.width + x) * 3
	return c.pix[i+0], c.pix[i+1], c.pix[i+2]
}

// Fill sets every pixel to the given color.
func (c *Canvas) Fill(r, g, b uint8) {
	for i := 0; i < len(c.pix); i += 3 {
		c.pix[i+0] = r
		c.pix[i+1] = g
		c.pix[i+2] = b
	}
}

// errEmptyImage is returned when a decoded seed image has no pixels.
var errEmptyImage = errors.New("image has no pixels")
