package notify

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantry-engine/gantry/internal/event"
	"github.com/gantry-engine/gantry/internal/event/events"
)

func newTestService(t *testing.T) (*Service, *event.Bus) {
	t.Helper()
	bus := event.NewBus()
	s := NewService(bus, zerolog.New(io.Discard))
	return s, bus
}

func tick(t *testing.T, bus *event.Bus, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, bus.Publish(context.Background(), events.Tick{
			Tick:  uint64(i + 1),
			Delta: 1.0 / 60,
			Now:   time.Duration(i+1) * time.Second / 60,
		}))
	}
}

func TestPushShowsImmediately(t *testing.T) {
	s, _ := newTestService(t)

	s.Push("hello")

	assert.Equal(t, "hello", s.Current())
	assert.Zero(t, s.Pending())
}

func TestMessageExpiresAfterTTL(t *testing.T) {
	s, bus := newTestService(t)
	s.ttl = 3

	s.Push("hello")
	tick(t, bus, 2)
	assert.Equal(t, "hello", s.Current(), "still visible before the TTL elapses")

	tick(t, bus, 1)
	assert.Empty(t, s.Current())
}

func TestQueuedMessagesShowInOrder(t *testing.T) {
	s, bus := newTestService(t)
	s.ttl = 2

	s.Push("first")
	s.Push("second")
	s.Push("third")
	require.Equal(t, "first", s.Current())
	require.Equal(t, 2, s.Pending())

	tick(t, bus, 2)
	assert.Equal(t, "second", s.Current())

	tick(t, bus, 2)
	assert.Equal(t, "third", s.Current())

	tick(t, bus, 2)
	assert.Empty(t, s.Current())
	assert.Zero(t, s.Pending())
}

func TestAchievementUnlockPushesMessage(t *testing.T) {
	s, bus := newTestService(t)

	require.NoError(t, bus.Publish(context.Background(), events.AchievementUnlocked{
		Name:        "first-steps",
		Description: "Reach a score of 10",
	}))

	assert.Contains(t, s.Current(), "first-steps")
}

func TestQueueBounded(t *testing.T) {
	s, _ := newTestService(t)

	s.Push("visible")
	for i := 0; i < maxQueued+5; i++ {
		s.Push("queued")
	}

	assert.Equal(t, maxQueued, s.Pending())
}

func TestEmptyPushIgnored(t *testing.T) {
	s, _ := newTestService(t)

	s.Push("")

	assert.Empty(t, s.Current())
}
