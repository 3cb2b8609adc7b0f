package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/gantry-engine/gantry/internal/input"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want input.Key
		ok   bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), input.KeyEscape, true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), input.KeyEnter, true},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), input.KeyTab, true},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), input.KeyUp, true},
		{"space rune", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), input.KeySpace, true},
		{"letter", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), input.Key("q"), true},
		{"uppercase folds", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), input.Key("q"), true},
		{"function key dropped", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convertKey(tt.ev)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
