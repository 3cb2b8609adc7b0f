// Package notify queues short-lived user-facing messages, one visible at
// a time, expiring after a fixed number of ticks. Achievement unlocks
// feed it automatically; anything else pushes through the service
// directly. Owned by the control thread; none of its methods are safe for
// concurrent use.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gantry-engine/gantry/internal/event"
	"github.com/gantry-engine/gantry/internal/event/events"
)

// DefaultTTL is how many ticks a message stays visible, three seconds at
// the default tick rate.
const DefaultTTL = 180

// maxQueued bounds the backlog; messages past it are dropped.
const maxQueued = 16

// Service owns the message queue and the currently visible message.
type Service struct {
	logger zerolog.Logger

	queue   []string
	current string
	left    int
	ttl     int
}

// NewService creates the service and subscribes it to achievement
// unlocks and the tick stream.
func NewService(bus *event.Bus, logger zerolog.Logger) *Service {
	s := &Service{
		logger: logger.With().Str("component", "notify").Logger(),
		ttl:    DefaultTTL,
	}

	if _, err := bus.SubscribeFunc(events.TopicAchievementUnlocked, s.onAchievement); err != nil {
		s.logger.Warn().Err(err).Msg("achievement subscription failed")
	}
	if _, err := bus.SubscribeFunc(events.TopicTick, s.onTick); err != nil {
		s.logger.Warn().Err(err).Msg("tick subscription failed")
	}
	return s
}

// Push enqueues a message. It becomes visible immediately if nothing is
// showing, otherwise after the messages ahead of it expire.
func (s *Service) Push(text string) {
	if text == "" {
		return
	}
	if s.current == "" {
		s.current = text
		s.left = s.ttl
		return
	}
	if len(s.queue) >= maxQueued {
		s.logger.Debug().Str("text", text).Msg("notification queue full, dropping")
		return
	}
	s.queue = append(s.queue, text)
}

// Current returns the visible message, empty when there is none.
func (s *Service) Current() string {
	return s.current
}

// Pending returns how many messages wait behind the visible one.
func (s *Service) Pending() int {
	return len(s.queue)
}

func (s *Service) onAchievement(_ context.Context, e any) error {
	unlocked, ok := e.(events.AchievementUnlocked)
	if !ok {
		return nil
	}
	s.Push(fmt.Sprintf("Achievement unlocked: %s", unlocked.Name))
	return nil
}

// onTick ages the visible message and promotes the next one when it
// expires. Messages therefore only advance while the loop ticks, which
// keeps them frozen on screen during a pause.
func (s *Service) onTick(_ context.Context, _ any) error {
	if s.current != "" {
		s.left--
		if s.left > 0 {
			return nil
		}
		s.current = ""
	}
	if len(s.queue) > 0 {
		s.current = s.queue[0]
		s.queue = s.queue[1:]
		s.left = s.ttl
	}
	return nil
}
