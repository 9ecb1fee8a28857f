package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vi-mandel/input"
	"github.com/lixenwraith/vi-mandel/palette"
	"github.com/lixenwraith/vi-mandel/render"
)

func newSimScreen(t *testing.T, cols, rows int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := NewWithScreen(sim, nil)
	if err != nil {
		t.Fatalf("NewWithScreen: %v", err)
	}
	sim.SetSize(cols, rows)
	return s, sim
}

func TestSize(t *testing.T) {
	s, _ := newSimScreen(t, 40, 12)
	defer s.Fini()

	w, h := s.Size()
	if w != 40 || h != 24 {
		t.Errorf("size = %dx%d, want 40x24", w, h)
	}
}

func TestPresentHalfBlocks(t *testing.T) {
	s, sim := newSimScreen(t, 3, 2)
	defer s.Fini()

	buf := render.NewBuffer(3, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			buf.Set(x, y, palette.RGB{R: uint8(x * 10), G: uint8(y * 10), B: 7})
		}
	}
	if err := s.Present(buf, ""); err != nil {
		t.Fatalf("Present: %v", err)
	}

	for cy := 0; cy < 2; cy++ {
		for cx := 0; cx < 3; cx++ {
			r, _, style, _ := sim.GetContent(cx, cy)
			if r != halfBlock {
				t.Errorf("cell (%d,%d) rune = %q", cx, cy, r)
			}
			fg, bg, _ := style.Decompose()
			wantFg := tcell.NewRGBColor(int32(cx*10), int32(cy*2*10), 7)
			wantBg := tcell.NewRGBColor(int32(cx*10), int32((cy*2+1)*10), 7)
			if fg != wantFg || bg != wantBg {
				t.Errorf("cell (%d,%d) fg=%v bg=%v, want %v %v", cx, cy, fg, bg, wantFg, wantBg)
			}
		}
	}
}

func TestPresentSmallBufferUsesBackground(t *testing.T) {
	s, sim := newSimScreen(t, 2, 1)
	defer s.Fini()

	buf := render.NewBuffer(1, 1)
	buf.Set(0, 0, palette.RGB{R: 200, G: 100, B: 50})
	if err := s.Present(buf, ""); err != nil {
		t.Fatalf("Present: %v", err)
	}

	bgColor := color(render.Background)
	_, _, style, _ := sim.GetContent(0, 0)
	if _, bg, _ := style.Decompose(); bg != bgColor {
		t.Errorf("missing odd row bg = %v", bg)
	}
	_, _, style, _ = sim.GetContent(1, 0)
	if fg, _, _ := style.Decompose(); fg != bgColor {
		t.Errorf("missing column fg = %v", fg)
	}
}

func TestPresentStatus(t *testing.T) {
	s, sim := newSimScreen(t, 6, 2)
	defer s.Fini()

	if err := s.Present(render.NewBuffer(6, 4), "depth"); err != nil {
		t.Fatalf("Present: %v", err)
	}
	want := "depth "
	for x, w := range want {
		r, _, _, _ := sim.GetContent(x, 1)
		if r != w {
			t.Errorf("status col %d = %q, want %q", x, r, w)
		}
	}
	if r, _, _, _ := sim.GetContent(0, 0); r != halfBlock {
		t.Errorf("top row overwritten: %q", r)
	}
}

func TestPresentNilBuffer(t *testing.T) {
	s, _ := newSimScreen(t, 2, 2)
	defer s.Fini()
	if err := s.Present(nil, ""); err == nil {
		t.Error("expected error")
	}
}

func TestIntentsFromEvents(t *testing.T) {
	s, sim := newSimScreen(t, 20, 10)
	s.Start()

	sim.InjectMouse(4, 3, tcell.WheelUp, tcell.ModNone)

	deadline := time.After(2 * time.Second)
	for found := false; !found; {
		select {
		case in, ok := <-s.Intents():
			if !ok {
				t.Fatal("intents closed early")
			}
			if in.Type == input.IntentZoomIn {
				if in.X != 4 || in.Y != 6 {
					t.Errorf("zoom at (%d,%d), want (4,6)", in.X, in.Y)
				}
				found = true
			}
		case <-deadline:
			t.Fatal("no zoom intent")
		}
	}

	s.Fini()
	select {
	case _, ok := <-s.Intents():
		for ok {
			_, ok = <-s.Intents()
		}
	case <-time.After(2 * time.Second):
		t.Fatal("intents not closed after Fini")
	}
	s.Fini()
}

// queueFullScreen refuses every posted event
type queueFullScreen struct {
	tcell.Screen
}

func (queueFullScreen) PostEvent(tcell.Event) error {
	return tcell.ErrEventQFull
}

func TestFiniWhenInterruptRejected(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := NewWithScreen(queueFullScreen{sim}, nil)
	if err != nil {
		t.Fatalf("NewWithScreen: %v", err)
	}
	s.Start()

	done := make(chan struct{})
	go func() {
		s.Fini()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Fini blocked after the interrupt was rejected")
	}
	if _, ok := <-s.Intents(); ok {
		t.Error("intents open after Fini")
	}
}

func TestFiniWithoutStart(t *testing.T) {
	s, _ := newSimScreen(t, 2, 2)
	s.Fini()
	if _, ok := <-s.Intents(); ok {
		t.Error("intents open after Fini")
	}
}
