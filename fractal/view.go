// Package fractal holds the complex-plane view model, the escape-time evaluator and the
// iteration depth heuristics for the Mandelbrot explorer.
package fractal

import (
	"fmt"
	"math"
)

// ZoomFactor scales the plane extent on each zoom step
const ZoomFactor = 0.9

// ZoomDirection selects zoom in or out
type ZoomDirection uint8

const (
	ZoomIn ZoomDirection = iota
	ZoomOut
)

// String returns human-readable direction name
func (d ZoomDirection) String() string {
	switch d {
	case ZoomIn:
		return "In"
	case ZoomOut:
		return "Out"
	default:
		return "Unknown"
	}
}

// View maps a pixel grid onto a rectangle of the complex plane
// X, Y is the top-left corner; the y axis points down on screen and down-negative on the plane
// XStep and YStep are derived and recomputed on every mutation of ranges or extent
type View struct {
	X, Y           float64
	XRange, YRange float64
	Width, Height  int
	XStep, YStep   float64
}

// NewView creates a view; width and height must be positive
func NewView(x, y, xRange, yRange float64, width, height int) View {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("fractal: invalid view extent %dx%d", width, height))
	}
	v := View{
		X:      x,
		Y:      y,
		XRange: xRange,
		YRange: yRange,
		Width:  width,
		Height: height,
	}
	v.updateSteps()
	return v
}

// FitView places the region centred in a width x height grid using one square step
// The step is chosen so the entire region stays visible; the other axis gains extent
func FitView(x, y, xRange, yRange float64, width, height int) View {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("fractal: invalid view extent %dx%d", width, height))
	}
	step := math.Max(xRange/float64(width), yRange/float64(height))
	cx := x + xRange/2
	cy := y - yRange/2

	fitX := step * float64(width)
	fitY := step * float64(height)
	return NewView(cx-fitX/2, cy+fitY/2, fitX, fitY, width, height)
}

func (v *View) updateSteps() {
	v.XStep = v.XRange / float64(v.Width)
	v.YStep = v.YRange / float64(v.Height)
}

// PixelToComplex converts a pixel position to its plane coordinate
// The products are rounded before the add, matching Escape
func (v *View) PixelToComplex(px, py int) (float64, float64) {
	return v.X + float64(float64(px)*v.XStep), v.Y - float64(float64(py)*v.YStep)
}

// Center returns the plane coordinate at the middle of the view
func (v *View) Center() (float64, float64) {
	return v.X + v.XRange/2, v.Y - v.YRange/2
}

// Zoom scales the ranges by ZoomFactor around the current view center
func (v *View) Zoom(dir ZoomDirection) {
	scale := ZoomFactor
	if dir == ZoomOut {
		scale = 1 / ZoomFactor
	}

	newX := v.XRange * scale
	newY := v.YRange * scale

	v.X += (v.XRange - newX) / 2
	v.Y -= (v.YRange - newY) / 2
	v.XRange = newX
	v.YRange = newY
	v.updateSteps()
}

// Resize changes the pixel extent while keeping pixel density
// The plane extent grows or shrinks with the window
func (v *View) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.XRange = float64(width) * v.XStep
	v.YRange = float64(height) * v.YStep
	v.Width = width
	v.Height = height
	v.updateSteps()
}

// Pan shifts the view by a pixel delta
func (v *View) Pan(dx, dy int) {
	v.X += float64(dx) * v.XStep
	v.Y -= float64(dy) * v.YStep
}

// CenterOn pans so that the given pixel becomes the view center
func (v *View) CenterOn(px, py int) {
	v.Pan(px-v.Width/2, py-v.Height/2)
}

// Rescaled returns the same plane region sampled at a different pixel extent
func (v *View) Rescaled(width, height int) View {
	return NewView(v.X, v.Y, v.XRange, v.YRange, width, height)
}

// Magnification returns how many times narrower this view is than ref on the x axis
func (v *View) Magnification(ref *View) float64 {
	if v.XRange == 0 {
		return math.Inf(1)
	}
	return ref.XRange / v.XRange
}

// String formats the view for logs
func (v View) String() string {
	return fmt.Sprintf("x=%.17g y=%.17g xRange=%.17g yRange=%.17g width=%d height=%d",
		v.X, v.Y, v.XRange, v.YRange, v.Width, v.Height)
}
