package app

import (
	"github.com/rs/zerolog"

	"github.com/gantry-engine/gantry/internal/fault"
	"github.com/gantry-engine/gantry/internal/services"
	"github.com/gantry-engine/gantry/internal/settings"
)

// bootstrap runs the startup phases in order: settings, logging, the
// fault sink, the service registry, scenes, event wiring, input and
// achievement registration, and finally profiles. The registry is sealed
// at the end; after that no service slot can change for the process
// lifetime.
func (app *Application) bootstrap() error {
	// 1. Settings: defaults, optional file overlay, then the settings
	// hook. Freeze produces the snapshot everything else reads.
	builder := settings.Default()
	if app.opts.SettingsPath != "" {
		if err := builder.ApplyFile(app.opts.SettingsPath); err != nil {
			return &InitError{Component: "settings", Err: err}
		}
	}
	if app.hooks.InitSettings != nil {
		app.hooks.InitSettings(builder)
	}
	app.snapshot = builder.Freeze()

	// 2. Logging, leveled by the runtime mode.
	app.logger = zerolog.New(app.logWriter()).
		Level(app.snapshot.Mode.LogLevel()).
		With().
		Timestamp().
		Str("app", app.snapshot.Title).
		Logger()

	// 3. Fault sink before anything that can fail. Exit runs through
	// stop() so the state machine lands in Exiting even in tests that
	// stub out process termination.
	exit := app.exitFunc()
	faultOpts := []fault.Option{
		fault.WithFlush(app.flushLogs),
		fault.WithExitFunc(func(code int) {
			app.state = StateExiting
			app.stop()
			exit(code)
		}),
	}
	if app.hooks.OnCheckedError != nil {
		faultOpts = append(faultOpts, fault.WithCheckedHandler(app.hooks.OnCheckedError))
	}
	if app.hooks.OnFatalError != nil {
		faultOpts = append(faultOpts, fault.WithUncaughtHandler(app.hooks.OnFatalError))
	}
	app.faults = fault.New(app.logger, faultOpts...)

	// 4. The service registry, in dependency order.
	app.registry = services.Configure(app.snapshot, app.logger, app.faults)
	app.state = StateServicesConfigured

	// 5. Scene singletons, one per role for the process lifetime.
	if err := app.registerScenes(); err != nil {
		return &InitError{Component: "scenes", Err: err}
	}

	// 6. Event wiring: transition triggers first, scene reactions after,
	// so reactions observe post-transition state.
	if err := app.subscribe(); err != nil {
		return &InitError{Component: "event bus", Err: err}
	}

	// 7. Application-defined input and achievement registration.
	if app.hooks.InitInput != nil {
		if err := app.hooks.InitInput(app.registry.Bindings()); err != nil {
			return &InitError{Component: "input", Err: err}
		}
	}
	if app.hooks.InitAchievements != nil {
		if err := app.hooks.InitAchievements(app.registry.Achievements()); err != nil {
			return &InitError{Component: "achievements", Err: err}
		}
	}

	// 8. Profiles: capture the defaults, then overlay whatever the user
	// saved last time. An incompatible or missing profile leaves the
	// defaults in place.
	store := app.registry.Profiles()
	store.RegisterParticipant(app.registry.Bindings())
	store.RegisterParticipant(app.registry.Achievements())

	defaults, err := store.NewProfile()
	if err != nil {
		return &InitError{Component: "profiles", Err: err}
	}
	app.defaultProfile = defaults
	if persisted, ok := store.LoadProfile(); ok {
		store.Apply(persisted)
	}

	app.state = StateScenesReady

	// The forced pause only makes sense once there is something to
	// freeze.
	app.faults.SetPauser(app.forcePause)
	app.registry.Seal()

	app.logger.Info().
		Str("version", app.snapshot.Version).
		Str("mode", app.snapshot.Mode.String()).
		Msg("application initialized")
	return nil
}
