package achieve

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantry-engine/gantry/internal/event"
	"github.com/gantry-engine/gantry/internal/event/events"
	"github.com/gantry-engine/gantry/internal/profile"
)

func newManager(t *testing.T) (*Manager, *event.Bus) {
	t.Helper()
	bus := event.NewBus()
	return NewManager(bus, zerolog.Nop()), bus
}

func TestManager_UnlockPublishesOnce(t *testing.T) {
	m, bus := newManager(t)
	require.NoError(t, m.Register(Achievement{Name: "first-blood", Description: "Score once"}))

	var got []events.AchievementUnlocked
	_, err := bus.SubscribeFunc(events.TopicAchievementUnlocked, func(_ context.Context, e any) error {
		got = append(got, e.(events.AchievementUnlocked))
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, m.Unlock(context.Background(), "first-blood"))
	require.NoError(t, m.Unlock(context.Background(), "first-blood"))

	require.Len(t, got, 1)
	assert.Equal(t, "first-blood", got[0].Name)
	assert.Equal(t, "Score once", got[0].Description)
	assert.True(t, m.IsUnlocked("first-blood"))
}

func TestManager_UnlockUnknown(t *testing.T) {
	m, _ := newManager(t)
	assert.ErrorIs(t, m.Unlock(context.Background(), "ghost"), ErrUnknown)
}

func TestManager_RegisterDuplicate(t *testing.T) {
	m, _ := newManager(t)
	require.NoError(t, m.Register(Achievement{Name: "one"}))
	assert.ErrorIs(t, m.Register(Achievement{Name: "one"}), ErrDuplicate)
}

func TestManager_ProfileRoundTrip(t *testing.T) {
	m, _ := newManager(t)
	require.NoError(t, m.Register(Achievement{Name: "one"}))
	require.NoError(t, m.Register(Achievement{Name: "two"}))
	require.NoError(t, m.Unlock(context.Background(), "one"))

	p := profile.New("Test Game", "1.0")
	require.NoError(t, m.SaveProfile(p))

	restored, bus := newManager(t)
	require.NoError(t, restored.Register(Achievement{Name: "one"}))
	require.NoError(t, restored.Register(Achievement{Name: "two"}))

	var published int
	_, err := bus.SubscribeFunc(events.TopicAchievementUnlocked, func(context.Context, any) error {
		published++
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, restored.LoadProfile(p))
	assert.True(t, restored.IsUnlocked("one"))
	assert.False(t, restored.IsUnlocked("two"))
	assert.Zero(t, published, "restored unlocks are not re-announced")
}
