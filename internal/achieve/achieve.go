// Package achieve tracks application-registered achievements. Unlocks are
// announced once on the event bus and persist across restarts through
// profile participation.
package achieve

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gantry-engine/gantry/internal/event"
	"github.com/gantry-engine/gantry/internal/event/events"
	"github.com/gantry-engine/gantry/internal/profile"
)

// participantKey is the manager's entry key in persisted profiles.
const participantKey = "gameplay.achievements"

// Sentinel errors.
var (
	// ErrDuplicate is returned when registering an achievement name twice.
	ErrDuplicate = errors.New("achievement already registered")

	// ErrUnknown is returned when unlocking an unregistered achievement.
	ErrUnknown = errors.New("unknown achievement")
)

// Achievement is a named goal the application registers at startup.
type Achievement struct {
	// Name uniquely identifies the achievement.
	Name string

	// Description is shown to the user when the achievement unlocks.
	Description string
}

// Manager owns the registered achievement set. Registration happens
// during the achievements initializer; unlocks happen on the control
// thread during play.
type Manager struct {
	bus    *event.Bus
	logger zerolog.Logger

	registered map[string]Achievement
	order      []string
	unlocked   map[string]bool
}

// NewManager creates an empty achievement manager publishing unlocks on
// bus.
func NewManager(bus *event.Bus, logger zerolog.Logger) *Manager {
	return &Manager{
		bus:        bus,
		logger:     logger.With().Str("component", "achievements").Logger(),
		registered: make(map[string]Achievement),
		unlocked:   make(map[string]bool),
	}
}

// Register adds an achievement to the set.
func (m *Manager) Register(a Achievement) error {
	if _, exists := m.registered[a.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, a.Name)
	}
	m.registered[a.Name] = a
	m.order = append(m.order, a.Name)
	return nil
}

// Unlock marks an achievement achieved and, on the first unlock only,
// publishes an AchievementUnlocked event.
func (m *Manager) Unlock(ctx context.Context, name string) error {
	a, exists := m.registered[name]
	if !exists {
		return fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	if m.unlocked[name] {
		return nil
	}

	m.unlocked[name] = true
	m.logger.Info().Str("achievement", name).Msg("achievement unlocked")

	return m.bus.Publish(ctx, events.AchievementUnlocked{
		Name:        a.Name,
		Description: a.Description,
	})
}

// IsUnlocked reports whether an achievement has been achieved.
func (m *Manager) IsUnlocked(name string) bool {
	return m.unlocked[name]
}

// Names returns registered achievement names in registration order.
func (m *Manager) Names() []string {
	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}

// ParticipantKey implements profile.Participant.
func (m *Manager) ParticipantKey() string {
	return participantKey
}

// SaveProfile implements profile.Participant.
func (m *Manager) SaveProfile(p *profile.Profile) error {
	achieved := make([]string, 0, len(m.unlocked))
	for _, name := range m.order {
		if m.unlocked[name] {
			achieved = append(achieved, name)
		}
	}
	return p.Put(participantKey, achieved)
}

// LoadProfile implements profile.Participant. Restored unlocks do not
// re-publish events; they were announced in the session that earned them.
func (m *Manager) LoadProfile(p *profile.Profile) error {
	var achieved []string
	if err := p.Get(participantKey, &achieved); err != nil {
		return err
	}

	for _, name := range achieved {
		if _, exists := m.registered[name]; exists {
			m.unlocked[name] = true
		}
	}
	return nil
}
