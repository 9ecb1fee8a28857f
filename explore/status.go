package explore

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// StatusLine summarises the session; empty while the status line is hidden
func (c *Controller) StatusLine() string {
	if !c.showStatus {
		return ""
	}

	cx, cy := c.view.Center()
	mode := "manual"
	if c.depth.Automatic {
		mode = "auto"
	}

	state := c.State().String()
	if c.State() == StateNeedsRender {
		state = printer.Sprintf("rendering 1/%d", c.renderer.Factor())
	}

	line := printer.Sprintf(" %.10g%+.10gi  x%s  depth %d %s  %s  %s",
		cx, cy, magnification(c.view.Magnification(&c.home)), c.depth.Value, mode, c.pal.Mode(), state)
	if c.message != "" {
		line += "  | " + c.message
	}
	return line
}

// magnification formats the zoom ratio; large ratios get digit grouping
func magnification(m float64) string {
	switch {
	case math.IsNaN(m):
		return "?"
	case m < 100:
		return printer.Sprintf("%.2f", m)
	case m >= math.MaxInt64:
		return printer.Sprintf("%.3e", m)
	default:
		return printer.Sprintf("%d", int64(math.Round(m)))
	}
}
