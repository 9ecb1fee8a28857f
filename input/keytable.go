package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
type KeyTable struct {
	// Printable key bindings
	Runes map[rune]IntentType

	// Special keys (Ctrl+*, arrows, Esc)
	Special map[tcell.Key]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'Q': IntentQuit,

			'i': IntentZoomIn,
			'o': IntentZoomOut,

			'h': IntentPanLeft,
			'l': IntentPanRight,
			'k': IntentPanUp,
			'j': IntentPanDown,

			'+': IntentDepthUp,
			'=': IntentDepthUp,
			'-': IntentDepthDown,
			'_': IntentDepthDown,

			'p': IntentPrint,
			's': IntentSave,

			'r': IntentReset,
			'1': IntentPaletteGradient,
			'2': IntentPaletteSpectrum,
			'3': IntentPaletteRandom,
			'b': IntentToggleStatus,
		},
		Special: map[tcell.Key]IntentType{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,

			tcell.KeyLeft:  IntentPanLeft,
			tcell.KeyRight: IntentPanRight,
			tcell.KeyUp:    IntentPanUp,
			tcell.KeyDown:  IntentPanDown,

			tcell.KeyPgUp: IntentZoomIn,
			tcell.KeyPgDn: IntentZoomOut,
			tcell.KeyHome: IntentReset,
		},
	}
}

// Clone returns a deep copy of the key table
func (kt *KeyTable) Clone() *KeyTable {
	c := &KeyTable{
		Runes:   make(map[rune]IntentType, len(kt.Runes)),
		Special: make(map[tcell.Key]IntentType, len(kt.Special)),
	}
	for k, v := range kt.Runes {
		c.Runes[k] = v
	}
	for k, v := range kt.Special {
		c.Special[k] = v
	}
	return c
}

// keyByName maps canonical config names to special keys
var keyByName = map[string]tcell.Key{
	"escape":    tcell.KeyEscape,
	"enter":     tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,

	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"page_up":   tcell.KeyPgUp,
	"page_down": tcell.KeyPgDn,
	"insert":    tcell.KeyInsert,

	"f1":  tcell.KeyF1,
	"f2":  tcell.KeyF2,
	"f3":  tcell.KeyF3,
	"f4":  tcell.KeyF4,
	"f5":  tcell.KeyF5,
	"f6":  tcell.KeyF6,
	"f7":  tcell.KeyF7,
	"f8":  tcell.KeyF8,
	"f9":  tcell.KeyF9,
	"f10": tcell.KeyF10,
	"f11": tcell.KeyF11,
	"f12": tcell.KeyF12,

	"ctrl_c": tcell.KeyCtrlC,
	"ctrl_d": tcell.KeyCtrlD,
	"ctrl_p": tcell.KeyCtrlP,
	"ctrl_q": tcell.KeyCtrlQ,
	"ctrl_r": tcell.KeyCtrlR,
	"ctrl_s": tcell.KeyCtrlS,
}

// KeyByName resolves a config key name
func KeyByName(name string) (tcell.Key, bool) {
	k, ok := keyByName[name]
	return k, ok
}
