// Package app provides the lifecycle controller for the Gantry engine.
// It wires together all core services, owns the state machine that takes
// an application from cold start through menus and play to exit, and runs
// the single control loop on which every transition executes.
package app

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/gantry-engine/gantry/internal/fault"
	"github.com/gantry-engine/gantry/internal/profile"
	"github.com/gantry-engine/gantry/internal/scene"
	"github.com/gantry-engine/gantry/internal/services"
	"github.com/gantry-engine/gantry/internal/settings"
)

// Application is the central coordinator. It owns the service registry,
// drives the lifecycle state machine, and runs the control loop. All
// transitions execute on the control thread; external triggers must be
// marshalled through Post.
type Application struct {
	hooks Hooks
	opts  Options

	registry *services.Registry
	snapshot settings.Snapshot
	logger   zerolog.Logger
	faults   *fault.Sink

	state         State
	transitioning bool
	sessionActive bool

	// menuToggleReady arms the in-game menu key. A press fires the toggle
	// and disarms; only the release re-arms, so a held key toggles once.
	menuToggleReady bool

	defaultProfile *profile.Profile
	fpsOverlay     bool

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
	posted   chan func()
	now      func() time.Time
}

// Options configures the application.
type Options struct {
	// SettingsPath is an optional JSON overlay applied to the default
	// settings before the settings hook runs.
	SettingsPath string

	// LogWriter receives structured log output. Defaults to stderr.
	LogWriter io.Writer

	// FlushLogs is run before the process terminates, normally or on a
	// fatal failure. Optional.
	FlushLogs func()

	// ExitFunc replaces process termination on fatal failures, for tests.
	ExitFunc func(code int)
}

// New creates an application and runs every initialization phase up to,
// but not including, showing the first scene. On return the service
// registry is sealed and the application is ready for Run.
func New(hooks Hooks, opts Options) (*Application, error) {
	app := &Application{
		hooks:           hooks,
		opts:            opts,
		done:            make(chan struct{}),
		posted:          make(chan func(), 64),
		now:             time.Now,
		menuToggleReady: true,
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}

	return app, nil
}

// State returns the current lifecycle state.
func (app *Application) State() State {
	return app.state
}

// IsRunning reports whether the control loop is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Services returns the sealed service registry.
func (app *Application) Services() *services.Registry {
	return app.registry
}

// Settings returns the frozen settings snapshot.
func (app *Application) Settings() settings.Snapshot {
	return app.snapshot
}

// Logger returns the application logger.
func (app *Application) Logger() zerolog.Logger {
	return app.logger
}

// SaveUserProfile captures the current participant state into a profile
// and persists it.
func (app *Application) SaveUserProfile() error {
	store := app.registry.Profiles()
	p, err := store.NewProfile()
	if err != nil {
		return err
	}
	return store.SaveProfile(p)
}

// RestoreDefaultProfile re-applies the participant state captured at the
// end of initialization, before any persisted profile was loaded.
func (app *Application) RestoreDefaultProfile() {
	app.registry.Profiles().Apply(app.defaultProfile)
}

// publish delivers an event on the bus. Handler failures are routed by
// the bus itself; only a malformed event reaches this error path.
func (app *Application) publish(e any) {
	if err := app.registry.Bus().Publish(context.Background(), e); err != nil {
		app.logger.Error().Err(err).Msg("event publish rejected")
	}
}

func (app *Application) setScene(role scene.Role) {
	if err := app.registry.Display().SetScene(role); err != nil {
		app.faults.Checked(err)
	}
}

func (app *Application) flushLogs() {
	if app.opts.FlushLogs != nil {
		app.opts.FlushLogs()
	}
}

func (app *Application) exitFunc() func(code int) {
	if app.opts.ExitFunc != nil {
		return app.opts.ExitFunc
	}
	return os.Exit
}

func (app *Application) logWriter() io.Writer {
	if app.opts.LogWriter != nil {
		return app.opts.LogWriter
	}
	return os.Stderr
}
