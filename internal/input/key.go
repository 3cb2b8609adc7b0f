package input

// Key identifies a physical key in a device-independent way. Printable keys
// use their lowercase rune ("a", "7"); special keys use well-known names.
type Key string

// Special keys used by the engine and the reference presenter.
const (
	KeyEscape Key = "escape"
	KeyEnter  Key = "enter"
	KeySpace  Key = "space"
	KeyTab    Key = "tab"
	KeyUp     Key = "up"
	KeyDown   Key = "down"
	KeyLeft   Key = "left"
	KeyRight  Key = "right"
)

// KeyEvent is a single key press or release delivered to the control
// thread.
type KeyEvent struct {
	// Key is the device-independent key identity.
	Key Key

	// Pressed is true for a press, false for a release.
	Pressed bool
}
