// Package terminal draws pixel buffers on a tcell screen and turns its events into intents
// Each cell shows two stacked pixels through the upper half block glyph
package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vi-mandel/input"
	"github.com/lixenwraith/vi-mandel/palette"
	"github.com/lixenwraith/vi-mandel/render"
)

const halfBlock = '▀'

var statusStyle = tcell.StyleDefault.
	Foreground(tcell.NewRGBColor(230, 230, 230)).
	Background(tcell.NewRGBColor(20, 20, 20))

// Screen owns a tcell screen and its input polling goroutine
type Screen struct {
	scr     tcell.Screen
	machine *input.Machine
	intents chan input.Intent
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool
	closed  bool
}

// New opens the controlling terminal with mouse reporting enabled
func New(kt *input.KeyTable) (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	return NewWithScreen(scr, kt)
}

// NewWithScreen initializes an existing tcell screen
func NewWithScreen(scr tcell.Screen, kt *input.KeyTable) (*Screen, error) {
	if err := scr.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	scr.EnableMouse()
	scr.HideCursor()
	scr.Clear()

	return &Screen{
		scr:     scr,
		machine: input.NewMachine(kt),
		intents: make(chan input.Intent, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start launches the input polling goroutine
func (s *Screen) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running || s.closed {
		return
	}
	s.running = true
	go s.pollLoop()
}

// pollLoop converts screen events until the screen closes or Fini is called
func (s *Screen) pollLoop() {
	defer close(s.doneCh)
	defer close(s.intents)

	defer func() {
		if r := recover(); r != nil {
			s.scr.Fini()
			fmt.Fprintf(os.Stderr, "\r\nterminal poll crashed: %v\r\n%s\r\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		ev := s.scr.PollEvent()
		if ev == nil {
			return
		}
		in := s.machine.Process(ev)
		if in == nil {
			continue
		}

		select {
		case s.intents <- *in:
		case <-s.stopCh:
			return
		}
	}
}

// Intents delivers parsed input; closed once polling stops
func (s *Screen) Intents() <-chan input.Intent {
	return s.intents
}

// Size returns the drawable area in pixels
func (s *Screen) Size() (width, height int) {
	cols, rows := s.scr.Size()
	return cols, rows * 2
}

// Present draws buf from the top-left corner and overlays status on the last row
// Pixels outside buf are drawn as the render background
func (s *Screen) Present(buf *render.Buffer, status string) error {
	if buf == nil {
		return fmt.Errorf("terminal: nil buffer")
	}
	cols, rows := s.scr.Size()

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := pixel(buf, cx, cy*2)
			bottom := pixel(buf, cx, cy*2+1)
			style := tcell.StyleDefault.Foreground(color(top)).Background(color(bottom))
			s.scr.SetContent(cx, cy, halfBlock, nil, style)
		}
	}

	if status != "" && rows > 0 {
		drawStatus(s.scr, cols, rows-1, status)
	}

	s.scr.Show()
	return nil
}

// Fini stops polling and restores the terminal; safe to call twice
func (s *Screen) Fini() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	running := s.running
	s.mu.Unlock()

	close(s.stopCh)
	if !running {
		close(s.intents)
		s.scr.Fini()
		return
	}

	// Interrupt unblocks PollEvent; with a full queue, finalizing makes PollEvent return nil
	if err := s.scr.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		s.scr.Fini()
		<-s.doneCh
		return
	}
	<-s.doneCh
	s.scr.Fini()
}

func pixel(buf *render.Buffer, x, y int) palette.RGB {
	if c, ok := buf.Get(x, y); ok {
		return c
	}
	return render.Background
}

func color(c palette.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func drawStatus(scr tcell.Screen, cols, row int, status string) {
	x := 0
	for _, r := range status {
		if x >= cols {
			return
		}
		scr.SetContent(x, row, r, nil, statusStyle)
		x++
	}
	for ; x < cols; x++ {
		scr.SetContent(x, row, ' ', nil, statusStyle)
	}
}
