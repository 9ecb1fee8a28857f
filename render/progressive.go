// Package render fills pixel buffers from a view, an iteration depth and a palette.
// Live rendering is progressive: a coarse pass first, then full resolution.
package render

import (
	"github.com/lixenwraith/vi-mandel/fractal"
	"github.com/lixenwraith/vi-mandel/palette"
)

// DefaultPasses is the pass count owed after each state change
// 2 renders once at half resolution, then at full resolution
const DefaultPasses = 2

// Background is the colour of points that never escape
var Background = palette.Black

// Renderer spreads the cost of a frame over coarse-to-fine passes
// remaining > 0 means another pass is owed
type Renderer struct {
	buf       *Buffer
	passes    int
	remaining int
}

// NewRenderer creates a renderer with a width x height surface
// A pass sequence is owed immediately
func NewRenderer(width, height, passes int) *Renderer {
	if passes < 1 {
		passes = DefaultPasses
	}
	return &Renderer{
		buf:       NewBuffer(width, height),
		passes:    passes,
		remaining: passes,
	}
}

// Buffer returns the live display buffer
func (r *Renderer) Buffer() *Buffer {
	return r.buf
}

// Passes returns the configured pass count
func (r *Renderer) Passes() int {
	return r.passes
}

// Remaining returns the number of passes still owed
func (r *Renderer) Remaining() int {
	return r.remaining
}

// Pending reports whether another pass is owed
func (r *Renderer) Pending() bool {
	return r.remaining > 0
}

// Invalidate abandons any in-flight sequence and restarts from the coarsest pass
func (r *Renderer) Invalidate() {
	r.remaining = r.passes
}

// Resize replaces the surface; the old buffer is not reused
func (r *Renderer) Resize(width, height int) {
	r.buf = NewBuffer(width, height)
	r.Invalidate()
}

// Factor returns the downsample factor of the next pass, 1 when idle
func (r *Renderer) Factor() int {
	if r.remaining <= 0 {
		return 1
	}
	return 1 << (r.remaining - 1)
}

// Step renders one pass if owed; returns false when idle
func (r *Renderer) Step(v *fractal.View, pal *palette.Palette) bool {
	if r.remaining <= 0 {
		return false
	}
	fill(r.buf, v, pal, r.Factor(), nil)
	r.remaining--
	return true
}

// Progress is told how many rows of total are finished
type Progress func(done, total int)

// RenderFull renders the view at native resolution in one pass into a new buffer
func RenderFull(v *fractal.View, pal *palette.Palette) *Buffer {
	return RenderFullProgress(v, pal, nil)
}

// RenderFullProgress is RenderFull reporting after every row; progress may be nil
// The last report is always (total, total)
func RenderFullProgress(v *fractal.View, pal *palette.Palette, progress Progress) *Buffer {
	buf := NewBuffer(v.Width, v.Height)
	fill(buf, v, pal, 1, progress)
	return buf
}

// fill evaluates the block-origin pixel of each factor x factor block and paints the block
// Blocks cover the whole buffer, trailing partial blocks included
func fill(buf *Buffer, v *fractal.View, pal *palette.Palette, factor int, progress Progress) {
	depth := pal.Depth()
	w, h := buf.Width(), buf.Height()

	for by := 0; by < h; by += factor {
		for bx := 0; bx < w; bx += factor {
			x, y := v.PixelToComplex(bx, by)
			c := Background
			if iter := fractal.Escape(x, y, depth); iter != fractal.Inside {
				c = pal.Color(iter)
			}
			if factor == 1 {
				buf.Set(bx, by, c)
			} else {
				buf.FillRect(bx, by, bx+factor, by+factor, c)
			}
		}
		if progress != nil {
			progress(min(by+factor, h), h)
		}
	}
}
