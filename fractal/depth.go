package fractal

import "math"

// Auto-depth heuristic coefficients, empirical
const (
	autoDepthScale    = 60.2
	autoDepthExponent = -0.163
)

// MaxRecommended caps the automatic depth; reached near xRange 1e-26, well past float64 resolution
const MaxRecommended = 1 << 20

// Depth is the iteration cutoff and whether it follows the zoom level
type Depth struct {
	Value     int
	Automatic bool
}

// Recommend maps the view's x range to an iteration depth
// Smaller ranges (deeper zoom) yield larger depths; result is in [1, MaxRecommended]
func Recommend(xRange float64) int {
	f := math.Round(autoDepthScale * math.Pow(xRange, autoDepthExponent))
	// Clamped before conversion; NaN and +Inf saturate
	if !(f < MaxRecommended) {
		return MaxRecommended
	}
	if f < 1 {
		return 1
	}
	return int(f)
}

// AutoDepth returns an automatic depth initialised for the view
func AutoDepth(v *View) Depth {
	return Depth{Value: Recommend(v.XRange), Automatic: true}
}

// ManualDepth returns a fixed depth
func ManualDepth(value int) Depth {
	if value < 1 {
		value = 1
	}
	return Depth{Value: value}
}

// Track recomputes the value from the view when automatic
// Returns true if the value changed
func (d *Depth) Track(v *View) bool {
	if !d.Automatic {
		return false
	}
	next := Recommend(v.XRange)
	if next == d.Value {
		return false
	}
	d.Value = next
	return true
}

// Adjust applies a manual delta and disables automatic tracking
// The value never drops below minimum
func (d *Depth) Adjust(delta, minimum int) {
	d.Automatic = false
	d.Value += delta
	if d.Value < minimum {
		d.Value = minimum
	}
}
