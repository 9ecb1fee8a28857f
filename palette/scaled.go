package palette

import (
	"math/rand"
	"time"
)

// Palette owns a base ramp and its depth-scaled sequence
// The scaled sequence is rebuilt whenever depth or the base ramp changes
type Palette struct {
	mode   Mode
	start  RGB
	end    RGB
	base   []RGB
	scaled []RGB
	depth  int
}

// New creates a gradient palette between start and end scaled to depth
func New(start, end RGB, depth int) *Palette {
	p := &Palette{start: start, end: end}
	p.UseGradient(start, end)
	p.Rescale(depth)
	return p
}

// Default returns the black→green gradient
func Default(depth int) *Palette {
	return New(Black, Green, depth)
}

// Mode returns the active generation mode
func (p *Palette) Mode() Mode {
	return p.mode
}

// Depth returns the depth the scaled sequence was built for
func (p *Palette) Depth() int {
	return p.depth
}

// Endpoints returns the gradient endpoints last selected
func (p *Palette) Endpoints() (RGB, RGB) {
	return p.start, p.end
}

// Base returns the base ramp; callers must not modify it
func (p *Palette) Base() []RGB {
	return p.base
}

// Scaled returns the depth-length sequence; callers must not modify it
func (p *Palette) Scaled() []RGB {
	return p.scaled
}

// UseGradient switches to a linear gradient between start and end
func (p *Palette) UseGradient(start, end RGB) {
	p.mode = ModeGradient
	p.start, p.end = start, end
	p.base = GradientRamp(start, end, GradientSize)
	p.rebuild()
}

// UseSpectrum switches to the hue cycle
func (p *Palette) UseSpectrum() {
	p.mode = ModeSpectrum
	p.base = SpectrumRamp()
	p.rebuild()
}

// UseRandom switches to a freshly seeded random ramp
func (p *Palette) UseRandom() {
	p.UseRandomFrom(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// UseRandomFrom switches to a random ramp drawn from rng
func (p *Palette) UseRandomFrom(rng *rand.Rand) {
	p.mode = ModeRandom
	p.base = RandomRamp(rng, RandomSize)
	p.rebuild()
}

// Rescale rebuilds the scaled sequence for a new depth; the base ramp is kept
func (p *Palette) Rescale(depth int) {
	p.depth = depth
	p.rebuild()
}

func (p *Palette) rebuild() {
	if p.depth <= 0 {
		p.scaled = nil
		return
	}
	p.scaled = ScaleToDepth(p.base, p.depth, p.mode.Power())
}

// Color returns the colour for an escape iteration
// Out-of-range iterations map to black
func (p *Palette) Color(iter int) RGB {
	if iter < 0 || iter >= len(p.scaled) {
		return Black
	}
	return p.scaled[iter]
}
