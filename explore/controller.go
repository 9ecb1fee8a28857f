// Package explore drives the interactive session
// The Controller owns the view, depth and palette; every mutation restarts the progressive pass sequence
package explore

import (
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"github.com/lixenwraith/vi-mandel/fractal"
	"github.com/lixenwraith/vi-mandel/input"
	"github.com/lixenwraith/vi-mandel/palette"
	"github.com/lixenwraith/vi-mandel/render"
)

// keyPanDivisor sets keyboard pan to a tenth of the view
const keyPanDivisor = 10

// State is the controller's render priority
type State uint8

const (
	StateIdle State = iota
	StateNeedsRender
	StatePanning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateNeedsRender:
		return "rendering"
	case StatePanning:
		return "panning"
	default:
		return "unknown"
	}
}

// Settings tune controller behaviour
type Settings struct {
	Passes       int
	PollInterval time.Duration
	DepthStep    int
	MinDepth     int
	ZoomToCursor bool
	ShowStatus   bool
	ExportWidth  int // 0 uses the live width
	Output       string
}

// Exporter writes a rendered buffer to path
type Exporter func(buf *render.Buffer, path string) error

// Notifier is told the outcome of each save
type Notifier interface {
	Saved(err error)
}

// Hooks are the controller's external collaborators; nil members are skipped
type Hooks struct {
	Logger   *log.Logger
	Export   Exporter
	Notifier Notifier
}

// anchor is the pan origin: pointer pixel and view corner at button down
type anchor struct {
	px, py int
	x, y   float64
}

// Controller is the interaction state machine
type Controller struct {
	view      fractal.View
	home      fractal.View
	depth     fractal.Depth
	homeDepth fractal.Depth
	pal       *palette.Palette
	renderer  *render.Renderer

	settings Settings
	hooks    Hooks

	panning    bool
	anchor     anchor
	showStatus bool
	message    string
	quit       bool
}

// NewController takes ownership of view, depth and pal
// The palette is rescaled to the depth and a pass sequence is owed immediately
func NewController(view fractal.View, depth fractal.Depth, pal *palette.Palette, s Settings, hooks Hooks) *Controller {
	if s.DepthStep < 1 {
		s.DepthStep = 1
	}
	if s.MinDepth < 1 {
		s.MinDepth = 1
	}
	if s.PollInterval <= 0 {
		s.PollInterval = 10 * time.Millisecond
	}
	if hooks.Logger == nil {
		hooks.Logger = log.New(io.Discard, "", 0)
	}

	pal.Rescale(depth.Value)
	return &Controller{
		view:       view,
		home:       view,
		depth:      depth,
		homeDepth:  depth,
		pal:        pal,
		renderer:   render.NewRenderer(view.Width, view.Height, s.Passes),
		settings:   s,
		hooks:      hooks,
		showStatus: s.ShowStatus,
	}
}

// View returns a copy of the current view
func (c *Controller) View() fractal.View {
	return c.view
}

// Depth returns the current depth
func (c *Controller) Depth() fractal.Depth {
	return c.depth
}

// Palette returns the live palette
func (c *Controller) Palette() *palette.Palette {
	return c.pal
}

// Renderer returns the live progressive renderer
func (c *Controller) Renderer() *render.Renderer {
	return c.renderer
}

// Quit reports whether a quit intent was handled
func (c *Controller) Quit() bool {
	return c.quit
}

// Message returns the last user-facing message
func (c *Controller) Message() string {
	return c.message
}

// State reports the current priority; panning wins over a pending render
func (c *Controller) State() State {
	switch {
	case c.panning:
		return StatePanning
	case c.renderer.Pending():
		return StateNeedsRender
	default:
		return StateIdle
	}
}

// Step performs at most one owed render pass
func (c *Controller) Step() bool {
	return c.renderer.Step(&c.view, c.pal)
}

// Handle applies one intent
// Returns true when something visible changed and the display should be refreshed
func (c *Controller) Handle(in input.Intent) bool {
	switch in.Type {
	case input.IntentQuit:
		c.quit = true
		return false

	case input.IntentZoomIn, input.IntentZoomOut:
		dir := fractal.ZoomIn
		if in.Type == input.IntentZoomOut {
			dir = fractal.ZoomOut
		}
		c.zoom(dir, in)
		return true

	case input.IntentResize:
		if in.Width <= 0 || in.Height <= 0 {
			return false
		}
		c.view.Resize(in.Width, in.Height)
		c.renderer.Resize(c.view.Width, c.view.Height)
		return true

	case input.IntentPanStart:
		c.panning = true
		c.anchor = anchor{px: in.X, py: in.Y, x: c.view.X, y: c.view.Y}
		return c.showStatus

	case input.IntentPanMove:
		if !c.panning {
			return false
		}
		c.view.X, c.view.Y = c.anchor.x, c.anchor.y
		c.view.Pan(c.anchor.px-in.X, c.anchor.py-in.Y)
		c.renderer.Invalidate()
		return true

	case input.IntentPanEnd:
		if !c.panning {
			return false
		}
		c.panning = false
		return c.showStatus

	case input.IntentPanLeft:
		c.keyPan(-c.panStep(c.view.Width), 0)
		return true
	case input.IntentPanRight:
		c.keyPan(c.panStep(c.view.Width), 0)
		return true
	case input.IntentPanUp:
		c.keyPan(0, -c.panStep(c.view.Height))
		return true
	case input.IntentPanDown:
		c.keyPan(0, c.panStep(c.view.Height))
		return true

	case input.IntentDepthUp:
		c.adjustDepth(c.settings.DepthStep)
		return true
	case input.IntentDepthDown:
		c.adjustDepth(-c.settings.DepthStep)
		return true

	case input.IntentPrint:
		c.print()
		return c.showStatus

	case input.IntentSave:
		c.save()
		return c.showStatus

	case input.IntentReset:
		c.reset()
		return true

	case input.IntentPaletteGradient:
		start, end := c.pal.Endpoints()
		c.pal.UseGradient(start, end)
		c.paletteChanged()
		return true
	case input.IntentPaletteSpectrum:
		c.pal.UseSpectrum()
		c.paletteChanged()
		return true
	case input.IntentPaletteRandom:
		c.pal.UseRandom()
		c.paletteChanged()
		return true

	case input.IntentToggleStatus:
		c.showStatus = !c.showStatus
		return true
	}
	return false
}

func (c *Controller) zoom(dir fractal.ZoomDirection, in input.Intent) {
	if c.settings.ZoomToCursor && in.Pointer {
		c.view.CenterOn(in.X, in.Y)
	}
	c.view.Zoom(dir)
	if c.depth.Track(&c.view) {
		c.pal.Rescale(c.depth.Value)
	}
	c.renderer.Invalidate()
}

func (c *Controller) panStep(extent int) int {
	return max(1, extent/keyPanDivisor)
}

func (c *Controller) keyPan(dx, dy int) {
	c.view.Pan(dx, dy)
	c.renderer.Invalidate()
}

func (c *Controller) adjustDepth(delta int) {
	c.depth.Adjust(delta, c.settings.MinDepth)
	c.pal.Rescale(c.depth.Value)
	c.renderer.Invalidate()
}

func (c *Controller) paletteChanged() {
	c.message = "palette " + c.pal.Mode().String()
	c.renderer.Invalidate()
}

// reset restores the starting region fitted to the current pixel extent
// A manual depth returns to the starting value but stays manual for the session
func (c *Controller) reset() {
	h := c.home
	c.view = fractal.FitView(h.X, h.Y, h.XRange, h.YRange, c.view.Width, c.view.Height)
	if c.depth.Automatic {
		c.depth = fractal.AutoDepth(&c.view)
	} else {
		c.depth = fractal.ManualDepth(c.homeDepth.Value)
	}
	c.pal.Rescale(c.depth.Value)
	c.panning = false
	c.message = "reset"
	c.renderer.Invalidate()
}

func (c *Controller) print() {
	cx, cy := c.view.Center()
	c.hooks.Logger.Printf("view %s center=(%.17g, %.17g) depth=%d auto=%v",
		c.view, cx, cy, c.depth.Value, c.depth.Automatic)
	c.message = "view logged"
}

// save renders the current region at export resolution; live state is untouched
func (c *Controller) save() {
	w := c.settings.ExportWidth
	if w <= 0 {
		w = c.view.Width
	}
	h := max(1, int(math.Round(float64(w)*c.view.YRange/c.view.XRange)))
	out := c.view.Rescaled(w, h)

	var err error
	if c.hooks.Export == nil {
		err = fmt.Errorf("no exporter configured")
	} else {
		start := time.Now()
		buf := render.RenderFull(&out, c.pal)
		err = c.hooks.Export(buf, c.settings.Output)
		if err == nil {
			c.hooks.Logger.Printf("saved %dx%d to %s in %s", w, h, c.settings.Output, time.Since(start).Round(time.Millisecond))
		}
	}
	if err != nil {
		c.hooks.Logger.Printf("save failed: %v", err)
		c.message = "save failed"
	} else {
		c.message = "saved " + c.settings.Output
	}

	if c.hooks.Notifier != nil {
		c.hooks.Notifier.Saved(err)
	}
}
