package app

import (
	"github.com/gantry-engine/gantry/internal/event/events"
	"github.com/gantry-engine/gantry/internal/input"
	"github.com/gantry-engine/gantry/internal/scene"
)

// HandleKey routes a key event: the menu toggle first, then the current
// scene. Must run on the control thread; presenters deliver events
// through Post. A panic in a scene or bound action takes the uncaught
// failure path.
func (app *Application) HandleKey(ev input.KeyEvent) {
	app.guard(func() { app.handleKey(ev) })
}

func (app *Application) handleKey(ev input.KeyEvent) {
	if app.handleMenuKey(ev) {
		return
	}
	cur := app.registry.Display().Current()
	if cur == nil {
		return
	}
	cur.HandleKey(ev)
}

// handleMenuKey implements the in-game menu toggle with a press/release
// guard: the press fires and disarms, only the release re-arms. Holding
// the key therefore toggles exactly once regardless of auto-repeat.
func (app *Application) handleMenuKey(ev input.KeyEvent) bool {
	if !app.snapshot.MenuEnabled || ev.Key != app.snapshot.MenuKey {
		return false
	}
	if !ev.Pressed {
		app.menuToggleReady = true
		return true
	}
	if !app.menuToggleReady {
		return true
	}

	cur := app.registry.Display().Current()
	if cur == nil {
		return false
	}
	switch cur.Role() {
	case scene.RoleGame:
		app.menuToggleReady = false
		app.publish(events.Menu{Kind: events.MenuPause})
	case scene.RoleGameMenu:
		app.menuToggleReady = false
		app.publish(events.Menu{Kind: events.MenuResume})
	default:
		// The toggle means nothing on the intro or main menu; let the
		// scene have the key.
		return false
	}
	return true
}
