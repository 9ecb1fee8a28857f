package render

import (
	"image"
	"image/color"

	"github.com/lixenwraith/vi-mandel/palette"
)

// bytesPerPixel is the RGBA stride of Buffer
const bytesPerPixel = 4

// Buffer is an owned row-major RGBA pixel grid with explicit dimensions
// All accessors are bounds-checked; out-of-range writes are dropped
type Buffer struct {
	pix    []uint8
	width  int
	height int
}

// NewBuffer creates a buffer filled with opaque black
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Buffer{
		pix:    make([]uint8, width*height*bytesPerPixel),
		width:  width,
		height: height,
	}
	b.Fill(Background)
	return b
}

// Width returns the pixel width
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the pixel height
func (b *Buffer) Height() int {
	return b.height
}

// Pix returns the raw RGBA bytes, 4 per pixel, row-major
func (b *Buffer) Pix() []uint8 {
	return b.pix
}

// inBounds returns true if in buffer bounds
func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes one pixel
func (b *Buffer) Set(x, y int, c palette.RGB) {
	if !b.inBounds(x, y) {
		return
	}
	i := (y*b.width + x) * bytesPerPixel
	b.pix[i+0] = c.R
	b.pix[i+1] = c.G
	b.pix[i+2] = c.B
	b.pix[i+3] = 0xff
}

// Get reads one pixel; ok is false outside the buffer
func (b *Buffer) Get(x, y int) (c palette.RGB, ok bool) {
	if !b.inBounds(x, y) {
		return palette.RGB{}, false
	}
	i := (y*b.width + x) * bytesPerPixel
	return palette.RGB{R: b.pix[i+0], G: b.pix[i+1], B: b.pix[i+2]}, true
}

// FillRect writes c to the rectangle [x0,x1) x [y0,y1) clipped to the buffer
func (b *Buffer) FillRect(x0, y0, x1, y1 int, c palette.RGB) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, b.width), min(y1, b.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	// First row pixel by pixel, remaining rows copied from it
	row := b.pix[(y0*b.width+x0)*bytesPerPixel : (y0*b.width+x1)*bytesPerPixel]
	for i := 0; i < len(row); i += bytesPerPixel {
		row[i+0] = c.R
		row[i+1] = c.G
		row[i+2] = c.B
		row[i+3] = 0xff
	}
	for y := y0 + 1; y < y1; y++ {
		start := (y*b.width + x0) * bytesPerPixel
		copy(b.pix[start:start+len(row)], row)
	}
}

// Fill paints the whole buffer using exponential copy
func (b *Buffer) Fill(c palette.RGB) {
	if len(b.pix) == 0 {
		return
	}
	b.pix[0], b.pix[1], b.pix[2], b.pix[3] = c.R, c.G, c.B, 0xff
	for filled := bytesPerPixel; filled < len(b.pix); filled *= 2 {
		copy(b.pix[filled:], b.pix[:filled])
	}
}

// Equal reports whether two buffers have identical dimensions and pixels
func (b *Buffer) Equal(o *Buffer) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// ToImage copies the buffer into a new image.RGBA
func (b *Buffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.pix)
	return img
}

// At implements the image.Image interface.
func (b *Buffer) At(x, y int) color.Color {
	c, ok := b.Get(x, y)
	if !ok {
		return color.RGBA{}
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Bounds implements the image.Image interface.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *Buffer) ColorModel() color.Model {
	return color.RGBAModel
}
