// Package main is a small playable demo wired through every engine hook:
// a counter world with a save slot, an achievement, and rebindable keys.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gantry-engine/gantry/internal/achieve"
	"github.com/gantry-engine/gantry/internal/app"
	"github.com/gantry-engine/gantry/internal/event/events"
	"github.com/gantry-engine/gantry/internal/input"
	"github.com/gantry-engine/gantry/internal/settings"
	"github.com/gantry-engine/gantry/internal/term"
)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	var (
		settingsPath string
		saveDir      string
		mode         string
		noIntro      bool
		noMenu       bool
		showFPS      bool
		headless     bool
	)

	root := &cobra.Command{
		Use:     "gantry-demo",
		Short:   "Run the Gantry engine demo game",
		Version: getVersion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var overrides []string
			cmd.Flags().Visit(func(f *pflag.Flag) { overrides = append(overrides, f.Name) })

			game := newDemoGame()

			// The terminal is owned by the presenter, so logs go to a
			// file beside the binary.
			logFile, err := os.OpenFile("gantry-demo.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer logFile.Close()

			application, err := app.New(app.Hooks{
				InitSettings: func(s *settings.Settings) {
					s.Title = "Gantry Demo"
					s.Version = getVersion()
					if saveDir != "" {
						s.SaveDir = saveDir
					}
					if mode != "" {
						s.Mode = settings.ParseMode(mode)
					}
					if noIntro {
						s.IntroEnabled = false
					}
					if noMenu {
						s.MenuEnabled = false
					}
					if showFPS {
						s.ShowFPS = true
					}
				},
				InitInput:        game.initInput,
				InitAchievements: game.initAchievements,
				InitAssets:       game.initAssets,
				InitGame:         game.initGame,
				LoadState:        game.loadState,
				InitPhysics:      game.initPhysics,
				InitUI:           game.initUI,
				SaveState:        game.saveState,
				OnUpdate:         game.onUpdate,
			}, app.Options{
				SettingsPath: settingsPath,
				LogWriter:    zerolog.ConsoleWriter{Out: logFile, NoColor: true},
				FlushLogs:    func() { _ = logFile.Sync() },
			})
			if err != nil {
				return fmt.Errorf("initialize: %w", err)
			}
			game.app = application
			if len(overrides) > 0 {
				logger := application.Logger()
				logger.Debug().Strs("flags", overrides).Msg("settings overridden on the command line")
			}

			if !headless {
				presenter, err := term.New(application, application.Logger())
				if err != nil {
					return fmt.Errorf("terminal: %w", err)
				}
				if err := presenter.Start(); err != nil {
					return fmt.Errorf("terminal: %w", err)
				}
				defer presenter.Stop()
			}

			signals := make(chan os.Signal, 1)
			signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-signals
				application.Exit()
			}()

			return application.Run()
		},
	}

	flags := root.Flags()
	flags.StringVar(&settingsPath, "settings", "", "path to a JSON settings overlay")
	flags.StringVar(&saveDir, "save-dir", "", "directory for profiles and save slots")
	flags.StringVar(&mode, "mode", "", "runtime mode: developer, debug, or release")
	flags.BoolVar(&noIntro, "no-intro", false, "skip the intro scene")
	flags.BoolVar(&noMenu, "no-menu", false, "boot straight into a new session")
	flags.BoolVar(&showFPS, "fps", false, "show the FPS overlay")
	flags.BoolVar(&headless, "headless", false, "run without a terminal presenter")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// demoGame is the world: a score that grows while keys are mashed.
type demoGame struct {
	app   *app.Application
	score int
}

type demoState struct {
	Score int `json:"score"`
}

func newDemoGame() *demoGame {
	return &demoGame{}
}

func (g *demoGame) initInput(b *input.Bindings) error {
	if err := b.Bind(input.Action{
		Name:     "demo.collect",
		OnAction: func() { g.score++ },
	}, input.KeySpace); err != nil {
		return err
	}
	return b.Bind(input.Action{
		Name:     "demo.drop",
		OnAction: func() { g.score-- },
	}, input.KeyDown)
}

func (g *demoGame) initAchievements(m *achieve.Manager) error {
	return m.Register(achieve.Achievement{
		Name:        "first-steps",
		Description: "Reach a score of 10",
	})
}

func (g *demoGame) initAssets() error {
	// Nothing to load; a real game would read its asset pack here.
	return nil
}

func (g *demoGame) initGame() error {
	g.score = 0
	return nil
}

func (g *demoGame) loadState(data json.RawMessage) error {
	var state demoState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}
	g.score = state.Score
	return nil
}

func (g *demoGame) initPhysics() error {
	return nil
}

func (g *demoGame) initUI() error {
	return nil
}

func (g *demoGame) saveState() any {
	return demoState{Score: g.score}
}

func (g *demoGame) onUpdate(events.Tick) {
	if g.score >= 10 {
		achievements := g.app.Services().Achievements()
		if !achievements.IsUnlocked("first-steps") {
			_ = achievements.Unlock(context.Background(), "first-steps")
		}
	}
}
