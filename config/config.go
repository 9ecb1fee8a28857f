// Package config assembles explorer settings from defaults, a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lixenwraith/vi-mandel/input"
	"github.com/lixenwraith/vi-mandel/palette"
)

// Environment variables
const (
	EnvConfig       = "VI_MANDEL_CONFIG"
	EnvAudioEnabled = "VI_MANDEL_AUDIO_ENABLED"
	EnvAudioVolume  = "VI_MANDEL_AUDIO_VOLUME"
	EnvLogFile      = "VI_MANDEL_LOG_FILE"
	EnvOutput       = "VI_MANDEL_OUTPUT"
)

// Defaults
const (
	DefaultSize         = 1024
	DefaultOutput       = "mandelbrot.png"
	DefaultPasses       = 2
	DefaultPollInterval = 10 * time.Millisecond
	DefaultDepthStep    = 5
	DefaultMinDepth     = 5
	DefaultVolume       = 0.5
)

// Coords is the top-left corner and extent of the initial plane region
type Coords struct {
	X, Y, XRange, YRange float64
}

// DefaultCoords spans [-2, 2] on both axes
var DefaultCoords = Coords{X: -2, Y: 2, XRange: 4, YRange: 4}

// Palette selects the colour ramp
type Palette struct {
	Mode  palette.Mode
	Start palette.RGB
	End   palette.RGB
}

// Render tunes the interactive loop
type Render struct {
	Passes       int
	PollInterval time.Duration
	DepthStep    int
	MinDepth     int
	ZoomToCursor bool
}

// Audio controls the save chime
type Audio struct {
	Enabled bool
	Volume  float64 // 0.0-1.0
}

// Config is the resolved explorer configuration
// Width and Height are zero until resolved against the coordinate aspect
type Config struct {
	Width   int
	Height  int
	Coords  Coords
	Depth   int // 0 selects automatic depth
	Palette Palette
	Output  string
	LogFile string
	Render  Render
	Audio   Audio
	Keys    *input.KeyTable
}

// Default returns built-in settings
func Default() *Config {
	return &Config{
		Coords: DefaultCoords,
		Palette: Palette{
			Mode:  palette.ModeGradient,
			Start: palette.Black,
			End:   palette.Green,
		},
		Output: DefaultOutput,
		Render: Render{
			Passes:       DefaultPasses,
			PollInterval: DefaultPollInterval,
			DepthStep:    DefaultDepthStep,
			MinDepth:     DefaultMinDepth,
		},
		Audio: Audio{Enabled: true, Volume: DefaultVolume},
		Keys:  input.DefaultKeyTable(),
	}
}

// ResolveSize fills missing pixel dimensions
// One given dimension derives the other from the coordinate aspect; none gives 1024x1024
func (c *Config) ResolveSize() {
	aspect := c.Coords.YRange / c.Coords.XRange
	switch {
	case c.Width > 0 && c.Height > 0:
	case c.Width > 0:
		c.Height = max(1, int(float64(c.Width)*aspect+0.5))
	case c.Height > 0:
		c.Width = max(1, int(float64(c.Height)/aspect+0.5))
	default:
		c.Width, c.Height = DefaultSize, DefaultSize
	}
}

// Validate checks invariants the renderer relies on
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	if !(c.Coords.XRange > 0) || !(c.Coords.YRange > 0) {
		return fmt.Errorf("coordinate ranges must be positive, got %g x %g", c.Coords.XRange, c.Coords.YRange)
	}
	if c.Depth < 0 {
		return fmt.Errorf("depth must be positive, got %d", c.Depth)
	}
	if c.Render.Passes < 1 {
		return fmt.Errorf("render.passes must be at least 1, got %d", c.Render.Passes)
	}
	if c.Render.PollInterval <= 0 {
		return fmt.Errorf("render.poll_interval must be positive, got %s", c.Render.PollInterval)
	}
	if c.Render.DepthStep < 1 || c.Render.MinDepth < 1 {
		return fmt.Errorf("render.depth_step and render.min_depth must be at least 1")
	}
	return nil
}

// fileConfig mirrors the TOML layout; pointers distinguish absent keys
type fileConfig struct {
	Width   *int      `toml:"width"`
	Height  *int      `toml:"height"`
	Coords  []float64 `toml:"coords"`
	Depth   *int      `toml:"depth"`
	Output  *string   `toml:"output"`
	LogFile *string   `toml:"log_file"`

	Palette struct {
		Mode  *string `toml:"mode"`
		Start *string `toml:"start"`
		End   *string `toml:"end"`
	} `toml:"palette"`

	Render struct {
		Passes       *int    `toml:"passes"`
		PollInterval *string `toml:"poll_interval"`
		DepthStep    *int    `toml:"depth_step"`
		MinDepth     *int    `toml:"min_depth"`
		ZoomToCursor *bool   `toml:"zoom_to_cursor"`
	} `toml:"render"`

	Audio struct {
		Enabled *bool    `toml:"enabled"`
		Volume  *float64 `toml:"volume"`
	} `toml:"audio"`

	Keys        map[string]string `toml:"keys"`
	SpecialKeys map[string]string `toml:"special_keys"`
}

// Load builds a config from defaults, the TOML file at path and the environment
// An empty path falls back to $VI_MANDEL_CONFIG; a missing file is only an error when named explicitly
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				// Env-named file that does not exist yet
			} else {
				return nil, err
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := c.merge(&fc); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

func (c *Config) merge(fc *fileConfig) error {
	// Checked here since ResolveSize would replace a non-positive size
	if fc.Width != nil {
		if *fc.Width <= 0 {
			return fmt.Errorf("width: must be positive, got %d", *fc.Width)
		}
		c.Width = *fc.Width
	}
	if fc.Height != nil {
		if *fc.Height <= 0 {
			return fmt.Errorf("height: must be positive, got %d", *fc.Height)
		}
		c.Height = *fc.Height
	}
	if fc.Coords != nil {
		if len(fc.Coords) != 4 {
			return fmt.Errorf("coords: want [x, y, xRange, yRange], got %d values", len(fc.Coords))
		}
		c.Coords = Coords{X: fc.Coords[0], Y: fc.Coords[1], XRange: fc.Coords[2], YRange: fc.Coords[3]}
	}
	if fc.Depth != nil {
		if *fc.Depth < 0 {
			return fmt.Errorf("depth: must not be negative, got %d", *fc.Depth)
		}
		c.Depth = *fc.Depth
	}
	if fc.Output != nil {
		c.Output = *fc.Output
	}
	if fc.LogFile != nil {
		c.LogFile = *fc.LogFile
	}

	if fc.Palette.Mode != nil {
		m, err := palette.ParseMode(*fc.Palette.Mode)
		if err != nil {
			return fmt.Errorf("palette.mode: %w", err)
		}
		c.Palette.Mode = m
	}
	if fc.Palette.Start != nil {
		rgb, err := palette.ParseHex(*fc.Palette.Start)
		if err != nil {
			return fmt.Errorf("palette.start: %w", err)
		}
		c.Palette.Start = rgb
	}
	if fc.Palette.End != nil {
		rgb, err := palette.ParseHex(*fc.Palette.End)
		if err != nil {
			return fmt.Errorf("palette.end: %w", err)
		}
		c.Palette.End = rgb
	}

	r := &fc.Render
	if r.Passes != nil {
		c.Render.Passes = *r.Passes
	}
	if r.PollInterval != nil {
		d, err := time.ParseDuration(*r.PollInterval)
		if err != nil {
			return fmt.Errorf("render.poll_interval: %w", err)
		}
		c.Render.PollInterval = d
	}
	if r.DepthStep != nil {
		c.Render.DepthStep = *r.DepthStep
	}
	if r.MinDepth != nil {
		c.Render.MinDepth = *r.MinDepth
	}
	if r.ZoomToCursor != nil {
		c.Render.ZoomToCursor = *r.ZoomToCursor
	}

	if fc.Audio.Enabled != nil {
		c.Audio.Enabled = *fc.Audio.Enabled
	}
	if fc.Audio.Volume != nil {
		c.Audio.Volume = clampVolume(*fc.Audio.Volume)
	}

	if len(fc.Keys) > 0 || len(fc.SpecialKeys) > 0 {
		override, err := input.LoadKeyConfig(fc.Keys, fc.SpecialKeys)
		if err != nil {
			return fmt.Errorf("keymap: %w", err)
		}
		c.Keys = input.MergeKeyTable(c.Keys, override)
	}
	return nil
}

// applyEnv applies environment overrides; unparseable values are ignored
func (c *Config) applyEnv() {
	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			c.Audio.Enabled = val
		}
	}

	// Volume is 0-100, converted to 0.0-1.0
	if volume := os.Getenv(EnvAudioVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			c.Audio.Volume = clampVolume(float64(val) / 100.0)
		}
	}

	if logFile := os.Getenv(EnvLogFile); logFile != "" {
		c.LogFile = logFile
	}
	if output := os.Getenv(EnvOutput); output != "" {
		c.Output = output
	}
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
