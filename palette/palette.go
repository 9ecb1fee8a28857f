// Package palette generates base colour ramps and remaps them onto an iteration depth.
package palette

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Ramp sizes per generation mode
const (
	GradientSize = 256
	SegmentSize  = 256
	SpectrumSize = 6 * SegmentSize
	RandomSize   = 2048
)

// Remap powers per generation mode
const (
	GradientPower = 0.5
	SpectrumPower = 2.0
	RandomPower   = 1.0
)

// RGB is an opaque 8-bit colour
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	Black = RGB{0, 0, 0}
	Green = RGB{0, 255, 0}
)

// Hex formats the colour as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseHex parses "#rrggbb" or "rrggbb"
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// Mode selects the base ramp generator
type Mode uint8

const (
	ModeGradient Mode = iota
	ModeSpectrum
	ModeRandom
)

// String returns the config name of the mode
func (m Mode) String() string {
	switch m {
	case ModeGradient:
		return "gradient"
	case ModeSpectrum:
		return "spectrum"
	case ModeRandom:
		return "random"
	default:
		return "unknown"
	}
}

// ParseMode resolves a config name to a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gradient", "":
		return ModeGradient, nil
	case "spectrum":
		return ModeSpectrum, nil
	case "random":
		return ModeRandom, nil
	}
	return ModeGradient, fmt.Errorf("unknown palette mode %q", s)
}

// Power returns the remap exponent for the mode
func (m Mode) Power() float64 {
	switch m {
	case ModeSpectrum:
		return SpectrumPower
	case ModeRandom:
		return RandomPower
	default:
		return GradientPower
	}
}

// GradientRamp linearly interpolates n colours from start to end inclusive
func GradientRamp(start, end RGB, n int) []RGB {
	if n <= 0 {
		return nil
	}
	ramp := make([]RGB, n)
	if n == 1 {
		ramp[0] = start
		return ramp
	}

	a, b := start.colorful(), end.colorful()
	for i := range ramp {
		t := float64(i) / float64(n-1)
		r, g, bl := a.BlendRgb(b, t).Clamped().RGB255()
		ramp[i] = RGB{r, g, bl}
	}
	return ramp
}

// spectrumSteps is the channel walk red→yellow→green→cyan→blue→magenta→red
// Each entry is (channel index, direction)
var spectrumSteps = [6]struct {
	channel int
	up      bool
}{
	{1, true},  // G up: red → yellow
	{0, false}, // R down: yellow → green
	{2, true},  // B up: green → cyan
	{1, false}, // G down: cyan → blue
	{0, true},  // R up: blue → magenta
	{2, false}, // B down: magenta → red
}

// SpectrumRamp walks the hue circle in six 255-step segments of SegmentSize entries each
func SpectrumRamp() []RGB {
	ramp := make([]RGB, 0, SpectrumSize)
	ch := [3]int{255, 0, 0}

	for _, seg := range spectrumSteps {
		for k := 0; k < SegmentSize; k++ {
			if seg.up {
				ch[seg.channel] = k
			} else {
				ch[seg.channel] = 255 - k
			}
			ramp = append(ramp, RGB{uint8(ch[0]), uint8(ch[1]), uint8(ch[2])})
		}
	}
	return ramp
}

// RandomRamp returns n independently uniform colours drawn from rng
func RandomRamp(rng *rand.Rand, n int) []RGB {
	ramp := make([]RGB, n)
	for i := range ramp {
		ramp[i] = RGB{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))}
	}
	return ramp
}

// ScaleToDepth remaps base onto depth entries with index = floor((z/depth)^power * len(base))
func ScaleToDepth(base []RGB, depth int, power float64) []RGB {
	if depth <= 0 {
		return nil
	}
	scaled := make([]RGB, depth)
	if len(base) == 0 {
		return scaled
	}

	n := len(base)
	for z := range scaled {
		f := math.Pow(float64(z)/float64(depth), power)
		idx := int(math.Floor(f * float64(n)))
		if idx < 0 {
			idx = 0
		}
		if idx >= n {
			idx = n - 1
		}
		scaled[z] = base[idx]
	}
	return scaled
}
