package app

import (
	"context"
	"fmt"

	"github.com/gantry-engine/gantry/internal/event/events"
	"github.com/gantry-engine/gantry/internal/input"
	"github.com/gantry-engine/gantry/internal/scene"
)

// SceneFactory overrides the built-in scene for a role. Nil fields keep
// the default implementation.
type SceneFactory struct {
	NewIntro    func(app *Application) scene.Scene
	NewMainMenu func(app *Application) scene.Scene
	NewGameMenu func(app *Application) scene.Scene
	NewGame     func(app *Application) scene.Scene
}

// registerScenes constructs the four scene singletons and registers them
// with the display.
func (app *Application) registerScenes() error {
	display := app.registry.Display()
	display.OnMenuToggle(app.onMenuToggle)

	factories := []struct {
		custom func(app *Application) scene.Scene
		def    func(app *Application) scene.Scene
	}{
		{app.hooks.Scenes.NewIntro, newIntroScene},
		{app.hooks.Scenes.NewMainMenu, newMainMenuScene},
		{app.hooks.Scenes.NewGameMenu, newGameMenuScene},
		{app.hooks.Scenes.NewGame, newGameScene},
	}
	for _, f := range factories {
		build := f.def
		if f.custom != nil {
			build = f.custom
		}
		if err := display.Register(build(app)); err != nil {
			return err
		}
	}
	return nil
}

func (app *Application) onMenuToggle(open bool) {
	if open {
		if app.hooks.OnMenuOpen != nil {
			app.hooks.OnMenuOpen()
		}
		return
	}
	if app.hooks.OnMenuClose != nil {
		app.hooks.OnMenuClose()
	}
}

// FinishIntro completes the intro scene and moves on to the main menu or
// straight into a new session, per the menu setting. A no-op outside the
// intro state.
func (app *Application) FinishIntro() {
	app.guard(func() {
		if app.state != StateIntro {
			return
		}
		app.showGame()
	})
}

// StatusSetter is implemented by scenes that can present a one-line
// status, used for the FPS overlay.
type StatusSetter interface {
	SetStatus(status string)
}

// introScene is the default intro: any key skips it.
type introScene struct {
	scene.Base
	app *Application
}

func newIntroScene(app *Application) scene.Scene {
	return &introScene{app: app}
}

func (s *introScene) Role() scene.Role { return scene.RoleIntro }
func (s *introScene) Name() string     { return "intro" }

func (s *introScene) HandleKey(ev input.KeyEvent) bool {
	if !ev.Pressed {
		return false
	}
	s.app.FinishIntro()
	return true
}

// mainMenuScene is the default main menu: enter starts a new session,
// "l" loads the most recent save, escape exits.
type mainMenuScene struct {
	scene.Base
	app *Application
}

func newMainMenuScene(app *Application) scene.Scene {
	return &mainMenuScene{app: app}
}

func (s *mainMenuScene) Role() scene.Role { return scene.RoleMainMenu }
func (s *mainMenuScene) Name() string     { return "main_menu" }

func (s *mainMenuScene) HandleKey(ev input.KeyEvent) bool {
	if !ev.Pressed {
		return false
	}
	switch ev.Key {
	case input.KeyEnter:
		s.app.publish(events.Menu{Kind: events.MenuNewGame})
	case "l":
		s.app.publish(events.Menu{Kind: events.MenuLoad})
	case input.KeyEscape:
		s.app.publish(events.Menu{Kind: events.MenuExit})
	default:
		return false
	}
	return true
}

// gameMenuScene is the default in-game menu: enter resumes, "s" quick
// saves, "l" loads the most recent save, "m" abandons the session for the
// main menu, "q" exits.
type gameMenuScene struct {
	scene.Base
	app *Application
}

func newGameMenuScene(app *Application) scene.Scene {
	return &gameMenuScene{app: app}
}

func (s *gameMenuScene) Role() scene.Role { return scene.RoleGameMenu }
func (s *gameMenuScene) Name() string     { return "game_menu" }

func (s *gameMenuScene) HandleKey(ev input.KeyEvent) bool {
	if !ev.Pressed {
		return false
	}
	switch ev.Key {
	case input.KeyEnter:
		s.app.publish(events.Menu{Kind: events.MenuResume})
	case "s":
		s.app.publish(events.Menu{Kind: events.MenuSave, Slot: "quick"})
	case "l":
		s.app.publish(events.Menu{Kind: events.MenuLoad})
	case "m":
		s.app.publish(events.Menu{Kind: events.MenuExitToMainMenu})
	case "q":
		s.app.publish(events.Menu{Kind: events.MenuExit})
	default:
		return false
	}
	return true
}

// gameScene is the default play scene. Key presses fall through to the
// input bindings; the status line carries the FPS overlay when enabled.
type gameScene struct {
	scene.Base
	app    *Application
	status string
}

func newGameScene(app *Application) scene.Scene {
	return &gameScene{app: app}
}

func (s *gameScene) Role() scene.Role { return scene.RoleGame }
func (s *gameScene) Name() string     { return "game" }

func (s *gameScene) HandleKey(ev input.KeyEvent) bool {
	if !ev.Pressed {
		return false
	}
	return s.app.registry.Bindings().HandlePress(ev.Key)
}

// SetStatus implements StatusSetter.
func (s *gameScene) SetStatus(status string) {
	s.status = status
}

// Status returns the current status line.
func (s *gameScene) Status() string {
	return s.status
}

// enableFPSOverlay starts feeding frame statistics to the game scene's
// status line, once per second's worth of ticks.
func (app *Application) enableFPSOverlay() {
	if app.fpsOverlay {
		return
	}
	target, ok := app.registry.Display().Scene(scene.RoleGame)
	if !ok {
		return
	}
	setter, ok := target.(StatusSetter)
	if !ok {
		return
	}

	_, err := app.registry.Bus().SubscribeFunc(events.TopicTick, func(_ context.Context, _ any) error {
		setter.SetStatus(fmt.Sprintf("FPS %d", app.registry.Clock().FPS()))
		return nil
	})
	if err != nil {
		app.faults.Checked(err)
		return
	}
	app.fpsOverlay = true
}
