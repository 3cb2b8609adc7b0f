package input

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantry-engine/gantry/internal/profile"
)

func TestBindings_BindAndHandlePress(t *testing.T) {
	b := NewBindings(zerolog.Nop())

	var fired int
	require.NoError(t, b.Bind(Action{Name: "jump", OnAction: func() { fired++ }}, KeySpace))

	assert.True(t, b.HandlePress(KeySpace))
	assert.False(t, b.HandlePress("x"))
	assert.Equal(t, 1, fired)
}

func TestBindings_BindValidation(t *testing.T) {
	b := NewBindings(zerolog.Nop())

	assert.ErrorIs(t, b.Bind(Action{Name: "noop"}, KeyEnter), ErrNilAction)

	require.NoError(t, b.Bind(Action{Name: "jump", OnAction: func() {}}, KeySpace))
	assert.ErrorIs(t, b.Bind(Action{Name: "jump", OnAction: func() {}}, KeyEnter), ErrDuplicateAction)
	assert.ErrorIs(t, b.Bind(Action{Name: "fire", OnAction: func() {}}, KeySpace), ErrDuplicateKey)
}

func TestBindings_Rebind(t *testing.T) {
	b := NewBindings(zerolog.Nop())

	var fired int
	require.NoError(t, b.Bind(Action{Name: "jump", OnAction: func() { fired++ }}, KeySpace))
	require.NoError(t, b.Rebind("jump", KeyEnter))

	assert.False(t, b.HandlePress(KeySpace))
	assert.True(t, b.HandlePress(KeyEnter))
	assert.Equal(t, 1, fired)

	key, ok := b.KeyFor("jump")
	require.True(t, ok)
	assert.Equal(t, KeyEnter, key)

	assert.ErrorIs(t, b.Rebind("missing", KeyTab), ErrUnknownAction)
	assert.NoError(t, b.Rebind("jump", KeyEnter), "rebinding to the same key is a no-op")
}

func TestBindings_ProfileRoundTrip(t *testing.T) {
	b := NewBindings(zerolog.Nop())
	require.NoError(t, b.Bind(Action{Name: "jump", OnAction: func() {}}, KeySpace))
	require.NoError(t, b.Rebind("jump", KeyUp))

	p := profile.New("Test Game", "1.0")
	require.NoError(t, b.SaveProfile(p))

	restored := NewBindings(zerolog.Nop())
	require.NoError(t, restored.Bind(Action{Name: "jump", OnAction: func() {}}, KeySpace))
	require.NoError(t, restored.LoadProfile(p))

	key, ok := restored.KeyFor("jump")
	require.True(t, ok)
	assert.Equal(t, KeyUp, key)
}
