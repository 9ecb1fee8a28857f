package input

import (
	"github.com/gdamore/tcell/v2"
)

// Machine is the input state machine
// Parses tcell events into semantic Intent; tracks the held pan button across events
type Machine struct {
	keyTable *KeyTable
	held     bool
}

// NewMachine creates a new input machine; nil selects the default key table
func NewMachine(kt *KeyTable) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{keyTable: kt}
}

// Held reports whether the pan button is currently down
func (m *Machine) Held() bool {
	return m.held
}

// Process parses a tcell event and returns an Intent
// Returns nil for events with no meaning to the explorer
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		return &Intent{Type: IntentResize, Width: cols, Height: rows * 2}
	case *tcell.EventKey:
		return m.processKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		return m.processMouse(ev.Buttons(), x, y)
	}
	return nil
}

func (m *Machine) processKey(key tcell.Key, r rune) *Intent {
	if key == tcell.KeyRune {
		if it, ok := m.keyTable.Runes[r]; ok {
			return &Intent{Type: it}
		}
		return nil
	}
	if it, ok := m.keyTable.Special[key]; ok {
		return &Intent{Type: it}
	}
	return nil
}

// processMouse maps cell coordinates to pixels; each cell holds two stacked pixels
func (m *Machine) processMouse(btn tcell.ButtonMask, cx, cy int) *Intent {
	px, py := cx, cy*2

	switch {
	case btn&tcell.WheelUp != 0:
		return &Intent{Type: IntentZoomIn, X: px, Y: py, Pointer: true}
	case btn&tcell.WheelDown != 0:
		return &Intent{Type: IntentZoomOut, X: px, Y: py, Pointer: true}
	case btn&tcell.Button1 != 0:
		if !m.held {
			m.held = true
			return &Intent{Type: IntentPanStart, X: px, Y: py, Pointer: true}
		}
		return &Intent{Type: IntentPanMove, X: px, Y: py, Pointer: true}
	case m.held:
		m.held = false
		return &Intent{Type: IntentPanEnd, X: px, Y: py, Pointer: true}
	}
	return nil
}
