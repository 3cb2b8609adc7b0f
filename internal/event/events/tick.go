package events

import (
	"time"

	"github.com/gantry-engine/gantry/internal/event"
)

// TopicTick is published once per simulation tick while the application is
// in the playing state.
const TopicTick event.Topic = "tick.update"

// Tick carries per-frame timing. It has no other payload; per-frame game
// logic subscribes to it through the application's update hook.
type Tick struct {
	// Tick is the monotonically increasing tick counter.
	Tick uint64

	// Delta is the time elapsed since the previous tick, in seconds.
	Delta float64

	// Now is the time elapsed since the timer started.
	Now time.Duration
}

// EventTopic implements event.TopicProvider.
func (e Tick) EventTopic() event.Topic {
	return TopicTick
}
