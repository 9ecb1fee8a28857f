package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/lixenwraith/vi-mandel/config"
	"github.com/lixenwraith/vi-mandel/palette"
	"github.com/spf13/cobra"
)

// runFunc executes a resolved configuration
type runFunc func(ctx context.Context, cfg *config.Config, headless bool) error

func newRootCmd(run runFunc) *cobra.Command {
	var (
		width, height int
		depth         int
		output        string
		noWindow      bool
		configPath    string
		coords        coordsFlag
		choice        paletteChoice
	)

	cmd := &cobra.Command{
		Use:   "vi-mandel",
		Short: "Explore the Mandelbrot set in the terminal",
		Long: "Explore the Mandelbrot set in the terminal.\n\n" +
			"Mouse wheel or i/o zooms, dragging or arrows/hjkl pans, +/- adjusts depth,\n" +
			"p logs the view, s saves an image, r resets, 1/2/3 switch palettes, q quits.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("width") && width <= 0 {
				return fmt.Errorf("--width must be a positive integer, got %d", width)
			}
			if flags.Changed("height") && height <= 0 {
				return fmt.Errorf("--height must be a positive integer, got %d", height)
			}
			if flags.Changed("depth") && depth <= 0 {
				return fmt.Errorf("--depth must be a positive integer, got %d", depth)
			}
			if flags.Changed("output") && output == "" {
				return fmt.Errorf("-o/--output must not be empty")
			}

			// Usage is only useful for flag errors caught above
			cmd.SilenceUsage = true

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if flags.Changed("width") || flags.Changed("height") {
				// CLI size replaces any configured size so one given dimension can derive the other
				cfg.Width, cfg.Height = 0, 0
				if flags.Changed("width") {
					cfg.Width = width
				}
				if flags.Changed("height") {
					cfg.Height = height
				}
			}
			if coords.set {
				cfg.Coords = coords.coords
			}
			if flags.Changed("depth") {
				cfg.Depth = depth
			}
			if flags.Changed("output") {
				cfg.Output = output
			}
			choice.apply(cfg)

			cfg.ResolveSize()
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, noWindow)
		},
	}

	f := cmd.Flags()
	f.IntVar(&width, "width", 0, "image width in pixels (derived from --height and the coordinate aspect when omitted)")
	f.IntVar(&height, "height", 0, "image height in pixels (derived from --width and the coordinate aspect when omitted)")
	f.Var(&coords, "coords", "top-left corner and extent of the plane region: x y xRange yRange")
	f.IntVar(&depth, "depth", 0, "iteration depth; disables automatic depth")
	f.Var(&gradientFlag{choice: &choice}, "gradient", "gradient palette between two hex colours: start end")
	f.VarPF(&modeFlag{choice: &choice, mode: palette.ModeSpectrum}, "spectrum", "", "hue cycle palette").NoOptDefVal = "true"
	f.VarPF(&modeFlag{choice: &choice, mode: palette.ModeRandom}, "random", "", "random palette").NoOptDefVal = "true"
	f.StringVarP(&output, "output", "o", config.DefaultOutput, "save destination (.png, .bmp, .tif)")
	f.BoolVar(&noWindow, "no-window", false, "render once at full resolution, save and exit (alias -nw)")
	f.StringVar(&configPath, "config", "", "TOML config file (default $"+config.EnvConfig+")")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, headless bool) error {
	if headless {
		return runHeadless(cfg, os.Stderr)
	}
	return runInteractive(ctx, cfg, os.Stderr)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nvi-mandel crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(run)
	cmd.SetArgs(normalizeArgs(os.Args[1:]))
	if err := cmd.ExecuteContext(ctx); err != nil {
		// Cobra has already printed the error
		stop()
		os.Exit(1)
	}
}
