package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gantry-engine/gantry/internal/event"
	"github.com/gantry-engine/gantry/internal/event/events"
	"github.com/gantry-engine/gantry/internal/scene"
)

// subscribe wires the bus. Transition triggers are registered before the
// scene reactions for the same topics; the bus delivers in registration
// order, so reactions always observe the post-transition state.
func (app *Application) subscribe() error {
	wiring := []struct {
		topic event.Topic
		fn    event.HandlerFunc
	}{
		// Transition triggers.
		{events.TopicMenuNewGame, func(_ context.Context, _ any) error {
			app.startNewGame()
			return nil
		}},
		{events.TopicMenuLoad, app.onMenuLoad},
		{events.TopicMenuSave, app.onMenuSave},
		{events.TopicMenuPause, func(_ context.Context, _ any) error {
			app.pause()
			return nil
		}},
		{events.TopicMenuResume, func(_ context.Context, _ any) error {
			app.resume()
			return nil
		}},
		{events.TopicMenuExit, func(_ context.Context, _ any) error {
			app.exit()
			return nil
		}},
		{events.TopicMenuExitToMainMenu, func(_ context.Context, _ any) error {
			app.exitToMainMenu()
			return nil
		}},

		// Per-tick update hook.
		{events.TopicTick, app.onTick},

		// Scene reactions, guarded on the state the trigger left behind.
		{events.TopicMenuPause, func(_ context.Context, _ any) error {
			if app.state == StatePaused {
				app.setScene(scene.RoleGameMenu)
			}
			return nil
		}},
		{events.TopicMenuResume, func(_ context.Context, _ any) error {
			if app.state == StatePlaying {
				app.setScene(scene.RoleGame)
			}
			return nil
		}},
		{events.TopicMenuExitToMainMenu, func(_ context.Context, _ any) error {
			if app.state == StateMainMenu {
				app.setScene(scene.RoleMainMenu)
			}
			return nil
		}},
		{events.TopicLifecycleInitComplete, func(_ context.Context, _ any) error {
			app.setScene(scene.RoleGame)
			return nil
		}},
	}

	bus := app.registry.Bus()
	for _, w := range wiring {
		if _, err := bus.SubscribeFunc(w.topic, w.fn); err != nil {
			return err
		}
	}
	return nil
}

func (app *Application) onTick(_ context.Context, e any) error {
	tick, ok := e.(events.Tick)
	if !ok {
		return nil
	}
	if app.hooks.OnUpdate != nil {
		app.hooks.OnUpdate(tick)
	}
	return nil
}

// onMenuSave persists the current session. An empty slot name makes the
// request a no-op; a storage failure is checked, not fatal.
func (app *Application) onMenuSave(_ context.Context, e any) error {
	m, ok := e.(events.Menu)
	if !ok {
		return nil
	}
	if m.Slot == "" {
		app.logger.Debug().Msg("save request without a slot, ignoring")
		return nil
	}
	if app.state != StatePlaying && app.state != StatePaused {
		return nil
	}

	var state any
	if app.hooks.SaveState != nil {
		state = app.hooks.SaveState()
	}
	if err := app.registry.Profiles().Save(state, m.Slot); err != nil {
		app.faults.Checked(fmt.Errorf("save slot %q: %w", m.Slot, err))
	}
	return nil
}

// onMenuLoad restores a session from a slot, or from the most recently
// modified slot when none is named. A missing or unreadable slot is a
// checked failure and the current state is untouched.
func (app *Application) onMenuLoad(_ context.Context, e any) error {
	m, ok := e.(events.Menu)
	if !ok {
		return nil
	}

	var (
		data   json.RawMessage
		slot   = m.Slot
		okLoad bool
	)
	if slot == "" {
		data, slot, okLoad = app.registry.Profiles().LoadMostRecent()
	} else {
		data, okLoad = app.registry.Profiles().Load(slot)
	}
	if !okLoad {
		app.faults.Checked(fmt.Errorf("load slot %q: %w", slot, ErrSlotNotFound))
		return nil
	}

	app.startLoadedGame(data)
	return nil
}
