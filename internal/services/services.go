// Package services is the composition root: one startup function
// constructs every engine singleton in dependency order and stores
// ownership in a single registry. The service set is closed and known at
// build time, so resolution is a plain accessor; no slot can be re-bound
// once the registry is sealed at the end of lifecycle initialization.
package services

import (
	"github.com/rs/zerolog"

	"github.com/gantry-engine/gantry/internal/achieve"
	"github.com/gantry-engine/gantry/internal/event"
	"github.com/gantry-engine/gantry/internal/fault"
	"github.com/gantry-engine/gantry/internal/input"
	"github.com/gantry-engine/gantry/internal/notify"
	"github.com/gantry-engine/gantry/internal/profile"
	"github.com/gantry-engine/gantry/internal/scene"
	"github.com/gantry-engine/gantry/internal/settings"
	"github.com/gantry-engine/gantry/internal/timer"
)

// Registry owns every engine singleton. Subsystems hold only non-owning
// references obtained through its accessors.
type Registry struct {
	sealed bool

	snapshot settings.Snapshot
	logger   zerolog.Logger

	faults        *fault.Sink
	bus           *event.Bus
	display       *scene.Display
	clock         *timer.Timer
	profiles      *profile.Store
	bindings      *input.Bindings
	achievements  *achieve.Manager
	notifications *notify.Service
}

// Configure builds the full service set in topological order. The fault
// sink is constructed by the caller first so that every later failure has
// a destination.
func Configure(snap settings.Snapshot, logger zerolog.Logger, faults *fault.Sink) *Registry {
	r := &Registry{
		snapshot: snap,
		logger:   logger,
		faults:   faults,
	}

	r.bus = event.NewBus(
		event.WithPanicHandler(func(_ any, recovered any, stack []byte) {
			faults.Recovered(recovered, stack)
		}),
		event.WithErrorHandler(func(topic event.Topic, err error) {
			logger.Warn().Err(err).Str("topic", topic.String()).Msg("event handler failed")
		}),
	)
	r.display = scene.NewDisplay(logger)
	r.clock = timer.New()
	r.profiles = profile.NewStore(snap.SaveDir, snap.Title, snap.Version, logger)
	r.bindings = input.NewBindings(logger)
	r.achievements = achieve.NewManager(r.bus, logger)
	r.notifications = notify.NewService(r.bus, logger)

	return r
}

// Seal freezes the registry. Called once lifecycle initialization
// completes.
func (r *Registry) Seal() {
	r.sealed = true
}

// IsSealed reports whether the registry can still be mutated.
func (r *Registry) IsSealed() bool {
	return r.sealed
}

// ReplaceProfiles swaps the profile store before the registry is sealed;
// tests use it to point the store at a scratch directory. Panics once
// sealed.
func (r *Registry) ReplaceProfiles(store *profile.Store) {
	r.mustBeUnsealed()
	r.profiles = store
}

func (r *Registry) mustBeUnsealed() {
	if r.sealed {
		panic("services: registry is sealed")
	}
}

// Settings returns the frozen settings snapshot.
func (r *Registry) Settings() settings.Snapshot {
	return r.snapshot
}

// Logger returns the application logger.
func (r *Registry) Logger() zerolog.Logger {
	return r.logger
}

// Faults returns the failure sink.
func (r *Registry) Faults() *fault.Sink {
	return r.faults
}

// Bus returns the event bus.
func (r *Registry) Bus() *event.Bus {
	return r.bus
}

// Display returns the scene display.
func (r *Registry) Display() *scene.Display {
	return r.display
}

// Clock returns the simulation timer.
func (r *Registry) Clock() *timer.Timer {
	return r.clock
}

// Profiles returns the profile store.
func (r *Registry) Profiles() *profile.Store {
	return r.profiles
}

// Bindings returns the input bindings table.
func (r *Registry) Bindings() *input.Bindings {
	return r.bindings
}

// Achievements returns the achievement manager.
func (r *Registry) Achievements() *achieve.Manager {
	return r.achievements
}

// Notifications returns the notification service.
func (r *Registry) Notifications() *notify.Service {
	return r.notifications
}
