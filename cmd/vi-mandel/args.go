package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lixenwraith/vi-mandel/config"
	"github.com/lixenwraith/vi-mandel/palette"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*gradientFlag)(nil)
	_ pflag.Value = (*modeFlag)(nil)
	_ pflag.Value = (*coordsFlag)(nil)
)

// normalizeArgs rewrites the classic spellings into pflag form
// "-nw" becomes "--no-window"; multi-value "--coords" and "--gradient" are joined with commas
// so negative coordinates are not mistaken for flags
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-nw":
			out = append(out, "--no-window")
		case "--coords", "-coords":
			if i+4 < len(args) {
				out = append(out, "--coords="+strings.Join(args[i+1:i+5], ","))
				i += 4
				continue
			}
			out = append(out, arg)
		case "--gradient", "-gradient":
			if i+2 < len(args) {
				out = append(out, "--gradient="+strings.Join(args[i+1:i+3], ","))
				i += 2
				continue
			}
			out = append(out, arg)
		default:
			out = append(out, arg)
		}
	}
	return out
}

// paletteChoice accumulates palette flags in command-line order; the last one wins
type paletteChoice struct {
	set   bool
	value config.Palette
}

// apply overrides cfg only when a palette flag was given
func (p *paletteChoice) apply(cfg *config.Config) {
	if !p.set {
		return
	}
	mode := p.value.Mode
	cfg.Palette.Mode = mode
	if mode == palette.ModeGradient {
		cfg.Palette.Start, cfg.Palette.End = p.value.Start, p.value.End
	}
}

// gradientFlag parses "--gradient <hex>,<hex>"
type gradientFlag struct {
	choice *paletteChoice
}

func (g *gradientFlag) String() string {
	if g.choice == nil || !g.choice.set || g.choice.value.Mode != palette.ModeGradient {
		return ""
	}
	return g.choice.value.Start.Hex() + "," + g.choice.value.End.Hex()
}

func (g *gradientFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return fmt.Errorf("want two hex colours, got %q", s)
	}
	start, err := palette.ParseHex(parts[0])
	if err != nil {
		return err
	}
	end, err := palette.ParseHex(parts[1])
	if err != nil {
		return err
	}
	g.choice.set = true
	g.choice.value = config.Palette{Mode: palette.ModeGradient, Start: start, End: end}
	return nil
}

func (g *gradientFlag) Type() string {
	return "hex,hex"
}

// modeFlag is a boolean palette switch such as "--spectrum"
type modeFlag struct {
	choice *paletteChoice
	mode   palette.Mode
}

func (m *modeFlag) String() string {
	if m.choice != nil && m.choice.set && m.choice.value.Mode == m.mode {
		return "true"
	}
	return "false"
}

func (m *modeFlag) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		m.choice.set = true
		m.choice.value.Mode = m.mode
	}
	return nil
}

func (m *modeFlag) Type() string {
	return "bool"
}

// coordsFlag parses "--coords x,y,xRange,yRange"
type coordsFlag struct {
	coords config.Coords
	set    bool
}

func (c *coordsFlag) String() string {
	if !c.set {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g,%g", c.coords.X, c.coords.Y, c.coords.XRange, c.coords.YRange)
}

func (c *coordsFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return fmt.Errorf("want x y xRange yRange, got %d values", len(parts))
	}
	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("value %d: %q is not a number", i+1, p)
		}
		vals[i] = v
	}
	if !(vals[2] > 0) || !(vals[3] > 0) {
		return fmt.Errorf("xRange and yRange must be positive")
	}
	c.coords = config.Coords{X: vals[0], Y: vals[1], XRange: vals[2], YRange: vals[3]}
	c.set = true
	return nil
}

func (c *coordsFlag) Type() string {
	return "x,y,xRange,yRange"
}
