package term

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/gantry-engine/gantry/internal/input"
)

// convertKey maps a tcell key event to the device-independent key
// identity. Unmapped keys are dropped.
func convertKey(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		return input.KeyEscape, true
	case tcell.KeyEnter:
		return input.KeyEnter, true
	case tcell.KeyTab:
		return input.KeyTab, true
	case tcell.KeyUp:
		return input.KeyUp, true
	case tcell.KeyDown:
		return input.KeyDown, true
	case tcell.KeyLeft:
		return input.KeyLeft, true
	case tcell.KeyRight:
		return input.KeyRight, true
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return input.KeySpace, true
		}
		if unicode.IsPrint(r) {
			return input.Key(string(unicode.ToLower(r))), true
		}
	}
	return "", false
}
