package app

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantry-engine/gantry/internal/event"
	"github.com/gantry-engine/gantry/internal/event/events"
	"github.com/gantry-engine/gantry/internal/input"
	"github.com/gantry-engine/gantry/internal/scene"
	"github.com/gantry-engine/gantry/internal/settings"
)

// newTestApp builds an application with a throwaway save directory,
// silent logging, and a stubbed exit. Intro is off and menus are on
// unless configure says otherwise.
func newTestApp(t *testing.T, hooks Hooks, configure func(s *settings.Settings)) *Application {
	t.Helper()

	dir := t.TempDir()
	userSettings := hooks.InitSettings
	hooks.InitSettings = func(s *settings.Settings) {
		s.Title = "testgame"
		s.Version = "1.0"
		s.IntroEnabled = false
		s.MenuEnabled = true
		s.SaveDir = filepath.Join(dir, "saves")
		if userSettings != nil {
			userSettings(s)
		}
		if configure != nil {
			configure(s)
		}
	}

	app, err := New(hooks, Options{
		LogWriter: io.Discard,
		ExitFunc:  func(int) {},
	})
	require.NoError(t, err)
	return app
}

// start mimics Run's prologue without entering the loop, so tests drive
// ticks and keys directly on the test goroutine.
func start(app *Application) {
	app.registry.Clock().Start(app.now())
	app.showFirstScene()
}

// recorder captures lifecycle events in delivery order.
type recorder struct {
	order []string
}

func (r *recorder) attach(t *testing.T, app *Application) {
	t.Helper()
	topics := []event.Topic{
		events.TopicLifecycleInitComplete,
		events.TopicLifecyclePause,
		events.TopicLifecycleResume,
		events.TopicLifecycleReset,
		events.TopicLifecycleExit,
	}
	for _, topic := range topics {
		name := topic.Base()
		_, err := app.registry.Bus().SubscribeFunc(topic, func(_ context.Context, _ any) error {
			r.order = append(r.order, name)
			return nil
		})
		require.NoError(t, err)
	}
}

func (r *recorder) count(name string) int {
	n := 0
	for _, got := range r.order {
		if got == name {
			n++
		}
	}
	return n
}

func currentRole(t *testing.T, app *Application) scene.Role {
	t.Helper()
	cur := app.registry.Display().Current()
	require.NotNil(t, cur)
	return cur.Role()
}

func TestBootstrapSealsRegistry(t *testing.T) {
	app := newTestApp(t, Hooks{}, nil)

	assert.Equal(t, StateScenesReady, app.State())
	assert.True(t, app.Services().IsSealed())
	assert.Nil(t, app.registry.Display().Current())
}

func TestBootMenuEnabledShowsMainMenu(t *testing.T) {
	var initCalls int
	app := newTestApp(t, Hooks{
		InitGame: func() error {
			initCalls++
			return nil
		},
	}, nil)
	start(app)

	assert.Equal(t, StateMainMenu, app.State())
	assert.Equal(t, scene.RoleMainMenu, currentRole(t, app))
	assert.Zero(t, initCalls, "no session before the user asks for one")
}

func TestBootMenuDisabledStartsSessionBeforeTicks(t *testing.T) {
	var order []string
	app := newTestApp(t, Hooks{
		InitAssets:  func() error { order = append(order, "assets"); return nil },
		InitGame:    func() error { order = append(order, "game"); return nil },
		InitPhysics: func() error { order = append(order, "physics"); return nil },
		InitUI:      func() error { order = append(order, "ui"); return nil },
		OnUpdate:    func(events.Tick) { order = append(order, "tick") },
	}, func(s *settings.Settings) {
		s.MenuEnabled = false
	})

	rec := &recorder{}
	rec.attach(t, app)
	start(app)
	app.tick(app.now())

	assert.Equal(t, StatePlaying, app.State())
	assert.Equal(t, scene.RoleGame, currentRole(t, app))
	assert.Equal(t, []string{"assets", "game", "physics", "ui", "tick"}, order)
	assert.Equal(t, 1, rec.count("init_complete"))
}

func TestIntroRunsFirstAndAnyKeySkipsIt(t *testing.T) {
	app := newTestApp(t, Hooks{}, func(s *settings.Settings) {
		s.IntroEnabled = true
	})
	start(app)

	require.Equal(t, StateIntro, app.State())
	require.Equal(t, scene.RoleIntro, currentRole(t, app))

	app.HandleKey(input.KeyEvent{Key: input.KeySpace, Pressed: true})

	assert.Equal(t, StateMainMenu, app.State())
	assert.Equal(t, scene.RoleMainMenu, currentRole(t, app))
}

func TestIntroStraightIntoSessionWithoutMenus(t *testing.T) {
	app := newTestApp(t, Hooks{}, func(s *settings.Settings) {
		s.IntroEnabled = true
		s.MenuEnabled = false
	})
	start(app)
	require.Equal(t, StateIntro, app.State())

	app.HandleKey(input.KeyEvent{Key: input.KeySpace, Pressed: true})

	assert.Equal(t, StatePlaying, app.State())
	assert.Equal(t, scene.RoleGame, currentRole(t, app))
}

func TestNewGameFromMainMenuInitializesOnce(t *testing.T) {
	app := newTestApp(t, Hooks{}, nil)
	rec := &recorder{}
	rec.attach(t, app)
	start(app)

	app.publish(events.Menu{Kind: events.MenuNewGame})

	assert.Equal(t, StatePlaying, app.State())
	assert.Equal(t, scene.RoleGame, currentRole(t, app))
	assert.Equal(t, 1, rec.count("init_complete"))
}

func TestReentrantNewGameDuringInitIsRejected(t *testing.T) {
	var app *Application
	app = newTestApp(t, Hooks{
		InitGame: func() error {
			// A handler asking for another session mid-initialization
			// must be ignored.
			app.publish(events.Menu{Kind: events.MenuNewGame})
			return nil
		},
	}, nil)
	rec := &recorder{}
	rec.attach(t, app)
	start(app)

	app.publish(events.Menu{Kind: events.MenuNewGame})

	assert.Equal(t, 1, rec.count("init_complete"))
	assert.Equal(t, StatePlaying, app.State())
}

func TestMenuKeyHoldTogglesOnce(t *testing.T) {
	app := newTestApp(t, Hooks{}, nil)
	start(app)
	app.publish(events.Menu{Kind: events.MenuNewGame})
	require.Equal(t, StatePlaying, app.State())

	// Auto-repeat: presses without a release in between.
	app.HandleKey(input.KeyEvent{Key: input.KeyEscape, Pressed: true})
	app.HandleKey(input.KeyEvent{Key: input.KeyEscape, Pressed: true})
	app.HandleKey(input.KeyEvent{Key: input.KeyEscape, Pressed: true})

	assert.Equal(t, StatePaused, app.State())
	assert.True(t, app.registry.Display().IsMenuOpen())
}

func TestMenuKeyParityAcrossToggles(t *testing.T) {
	app := newTestApp(t, Hooks{}, nil)
	start(app)
	app.publish(events.Menu{Kind: events.MenuNewGame})

	press := func() {
		app.HandleKey(input.KeyEvent{Key: input.KeyEscape, Pressed: true})
		app.HandleKey(input.KeyEvent{Key: input.KeyEscape, Pressed: false})
	}

	for n := 1; n <= 5; n++ {
		press()
		wantOpen := n%2 == 1
		assert.Equal(t, wantOpen, app.registry.Display().IsMenuOpen(), "after %d toggles", n)
		if wantOpen {
			assert.Equal(t, StatePaused, app.State())
		} else {
			assert.Equal(t, StatePlaying, app.State())
		}
	}
}

func TestMenuKeyIgnoredOnMainMenu(t *testing.T) {
	var exits int
	app := newTestApp(t, Hooks{}, nil)
	_, err := app.registry.Bus().SubscribeFunc(events.TopicLifecycleExit, func(_ context.Context, _ any) error {
		exits++
		return nil
	})
	require.NoError(t, err)
	start(app)
	require.Equal(t, StateMainMenu, app.State())

	// Escape on the main menu is the menu scene's exit shortcut, not the
	// in-game toggle.
	app.HandleKey(input.KeyEvent{Key: input.KeyEscape, Pressed: true})

	assert.Equal(t, StateExiting, app.State())
	assert.Equal(t, 1, exits)
}

func TestGameSceneRoutesKeysToBindings(t *testing.T) {
	var fired int
	app := newTestApp(t, Hooks{
		InitInput: func(b *input.Bindings) error {
			return b.Bind(input.Action{
				Name:     "jump",
				OnAction: func() { fired++ },
			}, input.KeySpace)
		},
	}, nil)
	start(app)
	app.publish(events.Menu{Kind: events.MenuNewGame})

	app.HandleKey(input.KeyEvent{Key: input.KeySpace, Pressed: true})
	app.HandleKey(input.KeyEvent{Key: input.KeySpace, Pressed: false})
	app.HandleKey(input.KeyEvent{Key: input.KeySpace, Pressed: true})

	assert.Equal(t, 2, fired, "only presses fire actions")
}

func TestMenuOpenCloseHooks(t *testing.T) {
	var opened, closed int
	app := newTestApp(t, Hooks{
		OnMenuOpen:  func() { opened++ },
		OnMenuClose: func() { closed++ },
	}, func(s *settings.Settings) {
		s.MenuEnabled = false
	})
	start(app)
	require.Equal(t, StatePlaying, app.State())

	// With menus disabled nothing can open one.
	assert.Zero(t, opened)
	assert.Zero(t, closed)
}

func TestMenuHooksFireOnToggle(t *testing.T) {
	var opened, closed int
	app := newTestApp(t, Hooks{
		OnMenuOpen:  func() { opened++ },
		OnMenuClose: func() { closed++ },
	}, nil)
	start(app)
	// Entering the main menu opens it.
	assert.Equal(t, 1, opened)

	app.publish(events.Menu{Kind: events.MenuNewGame})
	assert.Equal(t, 1, closed)

	app.publish(events.Menu{Kind: events.MenuPause})
	assert.Equal(t, 2, opened)

	app.publish(events.Menu{Kind: events.MenuResume})
	assert.Equal(t, 2, closed)
}

func TestTicksOnlyWhilePlaying(t *testing.T) {
	var ticks int
	app := newTestApp(t, Hooks{
		OnUpdate: func(events.Tick) { ticks++ },
	}, nil)
	start(app)

	app.tick(app.now())
	assert.Zero(t, ticks, "no ticks on the main menu")

	app.publish(events.Menu{Kind: events.MenuNewGame})
	app.tick(app.now())
	assert.Equal(t, 1, ticks)

	app.publish(events.Menu{Kind: events.MenuPause})
	app.tick(app.now())
	assert.Equal(t, 1, ticks, "no ticks while paused")

	app.publish(events.Menu{Kind: events.MenuResume})
	app.tick(app.now())
	assert.Equal(t, 2, ticks)
}

func TestRunRejectsSecondCall(t *testing.T) {
	app := newTestApp(t, Hooks{}, nil)

	go func() {
		// Give the loop a moment to start, then stop it.
		time.Sleep(20 * time.Millisecond)
		app.Exit()
	}()
	require.NoError(t, app.Run())
	assert.Equal(t, ErrAlreadyRunning, func() error {
		app.running.Store(true)
		defer app.running.Store(false)
		return app.Run()
	}())
}

func TestFPSOverlayUpdatesGameSceneStatus(t *testing.T) {
	app := newTestApp(t, Hooks{}, func(s *settings.Settings) {
		s.MenuEnabled = false
		s.ShowFPS = true
	})
	start(app)
	require.Equal(t, StatePlaying, app.State())

	app.tick(app.now())

	target, ok := app.registry.Display().Scene(scene.RoleGame)
	require.True(t, ok)
	gs, ok := target.(*gameScene)
	require.True(t, ok)
	assert.Contains(t, gs.Status(), "FPS")
}
