package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System
	IntentQuit   // q, Esc, Ctrl+C, terminal closed
	IntentResize // Terminal resize event, carries pixel extent

	// Zoom
	IntentZoomIn  // Wheel up, i
	IntentZoomOut // Wheel down, o

	// Mouse panning
	IntentPanStart // Left button press, carries pointer pixel
	IntentPanMove  // Motion with left button held
	IntentPanEnd   // Left button release

	// Keyboard panning
	IntentPanLeft  // h, Left arrow
	IntentPanRight // l, Right arrow
	IntentPanUp    // k, Up arrow
	IntentPanDown  // j, Down arrow

	// Depth
	IntentDepthUp   // +, =
	IntentDepthDown // -, _

	// Output
	IntentPrint // p
	IntentSave  // s

	// View and palette
	IntentReset           // r
	IntentPaletteGradient // 1
	IntentPaletteSpectrum // 2
	IntentPaletteRandom   // 3
	IntentToggleStatus    // b
)

// Intent is a parsed input event
// X, Y carry the pointer pixel for mouse intents; Width, Height the pixel extent for resize
type Intent struct {
	Type    IntentType
	X, Y    int
	Pointer bool // X and Y are meaningful
	Width   int
	Height  int
}

// intentNames maps canonical config action names to intent types
var intentNames = map[string]IntentType{
	"none":             IntentNone,
	"quit":             IntentQuit,
	"zoom_in":          IntentZoomIn,
	"zoom_out":         IntentZoomOut,
	"pan_left":         IntentPanLeft,
	"pan_right":        IntentPanRight,
	"pan_up":           IntentPanUp,
	"pan_down":         IntentPanDown,
	"depth_up":         IntentDepthUp,
	"depth_down":       IntentDepthDown,
	"print":            IntentPrint,
	"save":             IntentSave,
	"reset":            IntentReset,
	"palette_gradient": IntentPaletteGradient,
	"palette_spectrum": IntentPaletteSpectrum,
	"palette_random":   IntentPaletteRandom,
	"toggle_status":    IntentToggleStatus,
}

// ActionIntent resolves a config action name
func ActionIntent(name string) (IntentType, bool) {
	it, ok := intentNames[name]
	return it, ok
}

// String returns the config action name, or a descriptive name for pointer intents
func (t IntentType) String() string {
	for name, it := range intentNames {
		if it == t {
			return name
		}
	}
	switch t {
	case IntentResize:
		return "resize"
	case IntentPanStart:
		return "pan_start"
	case IntentPanMove:
		return "pan_move"
	case IntentPanEnd:
		return "pan_end"
	}
	return "unknown"
}
