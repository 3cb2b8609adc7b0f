package app

import (
	"encoding/json"
	"fmt"

	"github.com/gantry-engine/gantry/internal/event/events"
	"github.com/gantry-engine/gantry/internal/scene"
)

// showFirstScene picks the initial presentation after the control loop
// starts: intro if enabled, otherwise straight to the menu or session.
func (app *Application) showFirstScene() {
	if app.snapshot.IntroEnabled {
		app.state = StateIntro
		app.setScene(scene.RoleIntro)
		return
	}
	app.showGame()
}

// showGame is the post-intro branch: the main menu when menus are
// enabled, otherwise a fresh session immediately.
func (app *Application) showGame() {
	if app.snapshot.MenuEnabled {
		app.state = StateMainMenu
		app.setScene(scene.RoleMainMenu)
		return
	}
	app.startNewGame()
}

// startNewGame begins a fresh session, discarding any active one first.
func (app *Application) startNewGame() {
	if app.transitioning || app.state == StateExiting {
		return
	}
	if app.sessionActive {
		app.resetSession()
	}
	app.initSession(nil)
}

// startLoadedGame begins a session restored from saved data, discarding
// any active session first.
func (app *Application) startLoadedGame(data json.RawMessage) {
	if app.transitioning || app.state == StateExiting {
		return
	}
	if app.sessionActive {
		app.resetSession()
	}
	app.initSession(data)
}

// resetSession discards the current session state and tells listeners to
// do the same.
func (app *Application) resetSession() {
	app.sessionActive = false
	app.publish(events.Lifecycle{Kind: events.LifecycleReset})
}

// initSession runs the session initialization sequence. On success the
// application is playing and the completion event has fired; on any
// failure the fault sink takes over and nothing after the failing step
// runs.
func (app *Application) initSession(data json.RawMessage) {
	if app.transitioning {
		app.logger.Warn().Msg("session transition already in progress")
		return
	}
	app.transitioning = true
	err := app.runSessionInit(data)
	app.transitioning = false

	if err != nil {
		app.faults.Uncaught(err)
		return
	}

	app.sessionActive = true
	app.state = StatePlaying
	app.registry.Clock().Touch(app.now())
	app.publish(events.Lifecycle{Kind: events.LifecycleInitComplete})
}

// runSessionInit executes the fixed step order: assets, then world init
// or saved-state restore, then physics, then UI, then the optional FPS
// overlay. A panic in any hook is converted to an error at this boundary.
func (app *Application) runSessionInit(data json.RawMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InitError{Component: "session", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if app.hooks.InitAssets != nil {
		if err := app.hooks.InitAssets(); err != nil {
			return &InitError{Component: "assets", Err: err}
		}
	}

	if data == nil {
		if app.hooks.InitGame != nil {
			if err := app.hooks.InitGame(); err != nil {
				return &InitError{Component: "game", Err: err}
			}
		}
	} else {
		if app.hooks.LoadState == nil {
			return &InitError{Component: "game", Err: ErrNoLoadHook}
		}
		if err := app.hooks.LoadState(data); err != nil {
			return &InitError{Component: "game", Err: err}
		}
	}

	if app.hooks.InitPhysics != nil {
		if err := app.hooks.InitPhysics(); err != nil {
			return &InitError{Component: "physics", Err: err}
		}
	}
	if app.hooks.InitUI != nil {
		if err := app.hooks.InitUI(); err != nil {
			return &InitError{Component: "ui", Err: err}
		}
	}

	if app.snapshot.ShowFPS {
		app.enableFPSOverlay()
	}
	return nil
}

// pause freezes the loop for the in-game menu. Only valid while playing;
// a repeated pause is a no-op and publishes nothing.
func (app *Application) pause() {
	if !app.snapshot.MenuEnabled {
		return
	}
	if app.state != StatePlaying || app.transitioning {
		return
	}
	app.state = StatePaused
	app.publish(events.Lifecycle{Kind: events.LifecyclePause})
}

// forcePause freezes whatever is visible without any scene change. Used
// by the fault sink so a fatal failure never presents a half-updated
// frame.
func (app *Application) forcePause() {
	if app.state == StatePaused || app.state == StateExiting {
		return
	}
	app.state = StatePaused
	app.publish(events.Lifecycle{Kind: events.LifecyclePause})
}

// resume unfreezes the loop. Only valid while paused. The clock is
// rebased so the first frame after a long pause does not see a giant
// delta.
func (app *Application) resume() {
	if app.state != StatePaused {
		return
	}
	app.state = StatePlaying
	app.registry.Clock().Touch(app.now())
	app.publish(events.Lifecycle{Kind: events.LifecycleResume})
}

// exitToMainMenu abandons the session: pause, then reset, then the main
// menu. The pause fires even when already paused so listeners always see
// the same sequence.
func (app *Application) exitToMainMenu() {
	if !app.snapshot.MenuEnabled {
		return
	}
	if app.state != StatePlaying && app.state != StatePaused {
		return
	}
	app.state = StatePaused
	app.publish(events.Lifecycle{Kind: events.LifecyclePause})
	app.resetSession()
	app.state = StateMainMenu
}

// RequestClose handles a window-close request from the presenter. With
// close confirmation enabled an active session is paused into the
// in-game menu instead of terminating outright, and the user decides
// from there. Must run on the control thread.
func (app *Application) RequestClose() {
	app.guard(app.requestClose)
}

func (app *Application) requestClose() {
	if app.snapshot.CloseConfirmation && app.snapshot.MenuEnabled {
		switch app.state {
		case StatePlaying:
			app.publish(events.Menu{Kind: events.MenuPause})
			return
		case StatePaused:
			return
		}
	}
	app.exit()
}

// exit begins normal termination: the exit event fires exactly once,
// logs are flushed, and the control loop stops.
func (app *Application) exit() {
	if app.state == StateExiting {
		return
	}
	app.state = StateExiting
	app.logger.Info().Msg("exiting")
	app.publish(events.Lifecycle{Kind: events.LifecycleExit})
	app.flushLogs()
	app.stop()
}
