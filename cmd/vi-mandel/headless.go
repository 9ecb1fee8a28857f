package main

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/lixenwraith/vi-mandel/config"
	"github.com/lixenwraith/vi-mandel/export"
	"github.com/lixenwraith/vi-mandel/fractal"
	"github.com/lixenwraith/vi-mandel/palette"
	"github.com/lixenwraith/vi-mandel/render"
)

// runHeadless renders the configured region once at full resolution and saves it
func runHeadless(cfg *config.Config, stderr io.Writer) error {
	logger, logFile, err := setupLogging(stderr, cfg.LogFile)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	c := cfg.Coords
	view := fractal.NewView(c.X, c.Y, c.XRange, c.YRange, cfg.Width, cfg.Height)
	depth := initialDepth(cfg, &view)
	pal := newPalette(cfg.Palette, depth.Value)

	start := time.Now()
	buf := render.RenderFullProgress(&view, pal, rowProgress(logger))
	logger.Printf("writing %s", cfg.Output)
	if err := export.Save(buf, cfg.Output); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	logger.Printf("saved %dx%d depth=%d palette=%s to %s in %s",
		view.Width, view.Height, depth.Value, pal.Mode(), cfg.Output, time.Since(start).Round(time.Millisecond))
	return nil
}

// progressStep is the percentage between headless progress lines
const progressStep = 10

// rowProgress logs completion each time another progressStep percent of rows is done
func rowProgress(logger *log.Logger) render.Progress {
	next := progressStep
	return func(done, total int) {
		pct := done * 100 / total
		if pct < next {
			return
		}
		logger.Printf("%d%% complete", pct)
		for next <= pct {
			next += progressStep
		}
	}
}

// initialDepth honours a configured depth, otherwise follows the view
func initialDepth(cfg *config.Config, v *fractal.View) fractal.Depth {
	if cfg.Depth > 0 {
		return fractal.ManualDepth(cfg.Depth)
	}
	return fractal.AutoDepth(v)
}

// newPalette builds the configured palette scaled to depth
func newPalette(p config.Palette, depth int) *palette.Palette {
	pal := palette.New(p.Start, p.End, depth)
	switch p.Mode {
	case palette.ModeSpectrum:
		pal.UseSpectrum()
	case palette.ModeRandom:
		pal.UseRandom()
	}
	return pal
}
