package app

import (
	"encoding/json"

	"github.com/gantry-engine/gantry/internal/achieve"
	"github.com/gantry-engine/gantry/internal/event/events"
	"github.com/gantry-engine/gantry/internal/input"
	"github.com/gantry-engine/gantry/internal/settings"
)

// Hooks are the application-defined callbacks the controller invokes at
// fixed points. Every field is optional; a nil hook is skipped. All hooks
// run on the control thread.
type Hooks struct {
	// InitSettings customizes the settings builder before it is frozen.
	// This is the only place settings can be written.
	InitSettings func(s *settings.Settings)

	// InitInput registers input actions and their default key bindings.
	// Runs once, during startup, before the persisted profile is applied.
	InitInput func(b *input.Bindings) error

	// InitAchievements registers the achievement set. Runs once, during
	// startup, before the persisted profile is applied.
	InitAchievements func(m *achieve.Manager) error

	// InitAssets loads assets for a session. First step of session
	// initialization; a returned error aborts the sequence.
	InitAssets func() error

	// InitGame populates the fresh world for a new session. Mutually
	// exclusive with LoadState within one session initialization.
	InitGame func() error

	// LoadState restores the world from a saved session. Mutually
	// exclusive with InitGame within one session initialization.
	LoadState func(data json.RawMessage) error

	// InitPhysics configures the physics for a session.
	InitPhysics func() error

	// InitUI builds the session UI. Last application step of session
	// initialization.
	InitUI func() error

	// SaveState captures the world for persistence. Called on a save
	// request; the returned value is serialized into the slot.
	SaveState func() any

	// OnUpdate runs once per tick while playing.
	OnUpdate func(tick events.Tick)

	// OnMenuOpen runs when a menu scene becomes current.
	OnMenuOpen func()

	// OnMenuClose runs when a menu scene stops being current.
	OnMenuClose func()

	// OnCheckedError observes recoverable failures after they are logged.
	OnCheckedError func(err error)

	// OnFatalError observes fatal failures after the forced pause and
	// logging, immediately before the process terminates.
	OnFatalError func(err error)

	// Scenes overrides the built-in scene implementations per role.
	Scenes SceneFactory
}
