package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/vi-mandel/audio"
	"github.com/lixenwraith/vi-mandel/config"
	"github.com/lixenwraith/vi-mandel/explore"
	"github.com/lixenwraith/vi-mandel/export"
	"github.com/lixenwraith/vi-mandel/fractal"
	"github.com/lixenwraith/vi-mandel/terminal"
	"golang.org/x/term"
)

// runInteractive opens the terminal explorer
// The terminal owns the screen, so log lines collect in a session log flushed to stderr on exit
func runInteractive(ctx context.Context, cfg *config.Config, stderr io.Writer) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("interactive mode needs a terminal on stdout; use -nw for headless rendering")
	}

	var session bytes.Buffer
	logger, logFile, err := setupLogging(&session, cfg.LogFile)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}
	// Registered first so it runs after the terminal is restored
	defer func() {
		_, _ = session.WriteTo(stderr)
	}()

	chime := audio.NewChime(cfg.Audio.Enabled, cfg.Audio.Volume)
	if err := chime.Init(); err != nil {
		logger.Printf("audio unavailable: %v (continuing without audio)", err)
	}
	defer chime.Close()

	scr, err := terminal.New(cfg.Keys)
	if err != nil {
		return err
	}
	defer scr.Fini()

	w, h := scr.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("terminal has no drawable area (%dx%d pixels)", w, h)
	}

	c := cfg.Coords
	view := fractal.FitView(c.X, c.Y, c.XRange, c.YRange, w, h)
	depth := initialDepth(cfg, &view)
	pal := newPalette(cfg.Palette, depth.Value)

	ctrl := explore.NewController(view, depth, pal, explore.Settings{
		Passes:       cfg.Render.Passes,
		PollInterval: cfg.Render.PollInterval,
		DepthStep:    cfg.Render.DepthStep,
		MinDepth:     cfg.Render.MinDepth,
		ZoomToCursor: cfg.Render.ZoomToCursor,
		ShowStatus:   true,
		ExportWidth:  cfg.Width,
		Output:       cfg.Output,
	}, explore.Hooks{
		Logger:   logger,
		Export:   export.Save,
		Notifier: chime,
	})

	logger.Printf("session start %s depth=%d auto=%v", view, depth.Value, depth.Automatic)
	scr.Start()
	if err := ctrl.Run(ctx, scr); err != nil {
		return err
	}
	logger.Printf("session end %s", ctrl.View())
	return nil
}
