// Package settings holds application settings: a mutable builder filled by
// the user-supplied initializer, frozen into a read-only snapshot before
// any subsystem runs. Subsystems only ever see the frozen snapshot, which
// closes the window for initialization-order bugs where a component reads
// half-configured settings.
package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/gantry-engine/gantry/internal/input"
)

// ErrMalformedOverlay is returned when a settings overlay file is not
// valid JSON.
var ErrMalformedOverlay = errors.New("malformed settings overlay")

// Mode selects the application's runtime profile, which maps to a log
// level.
type Mode int

const (
	// ModeDeveloper is the default profile for day-to-day development.
	ModeDeveloper Mode = iota

	// ModeDebug enables the most verbose diagnostics.
	ModeDebug

	// ModeRelease keeps only errors in the log.
	ModeRelease
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeDeveloper:
		return "developer"
	case ModeDebug:
		return "debug"
	case ModeRelease:
		return "release"
	default:
		return "unknown"
	}
}

// LogLevel returns the zerolog level for the mode.
func (m Mode) LogLevel() zerolog.Level {
	switch m {
	case ModeDebug:
		return zerolog.TraceLevel
	case ModeRelease:
		return zerolog.ErrorLevel
	default:
		return zerolog.DebugLevel
	}
}

// ParseMode parses a mode name, defaulting to developer.
func ParseMode(s string) Mode {
	switch s {
	case "debug":
		return ModeDebug
	case "release":
		return ModeRelease
	default:
		return ModeDeveloper
	}
}

// Settings is the mutable builder passed to the application's settings
// initializer. It must not be retained after startup; every consumer reads
// the frozen Snapshot instead.
type Settings struct {
	// Title and Version form the application identity used for profile
	// compatibility checks.
	Title   string
	Version string

	// Width and Height are the target presentation size in cells or
	// pixels, interpreted by the presenter.
	Width  int
	Height int

	// IntroEnabled shows the intro scene at startup.
	IntroEnabled bool

	// MenuEnabled enables the main and in-game menus. With menus disabled
	// the application boots straight into a new session.
	MenuEnabled bool

	// MenuKey toggles the in-game menu while playing.
	MenuKey input.Key

	// FullScreen requests full-screen presentation.
	FullScreen bool

	// ShowFPS overlays frame statistics on the game scene.
	ShowFPS bool

	// TickRate is the target simulation rate in ticks per second.
	TickRate int

	// Mode selects the runtime profile.
	Mode Mode

	// SaveDir is the directory for profiles and save slots.
	SaveDir string

	// CloseConfirmation asks before exiting on a window-close request.
	CloseConfirmation bool
}

// Default returns a builder with the engine defaults.
func Default() *Settings {
	return &Settings{
		Title:             "Untitled",
		Version:           "0.0",
		Width:             80,
		Height:            24,
		IntroEnabled:      true,
		MenuEnabled:       true,
		MenuKey:           input.KeyEscape,
		TickRate:          60,
		Mode:              ModeDeveloper,
		SaveDir:           "saves",
		CloseConfirmation: true,
	}
}

// ApplyFile overlays values from a JSON file onto the builder. Only keys
// present in the file are touched; unknown keys are ignored.
func (s *Settings) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: %s", ErrMalformedOverlay, path)
	}

	if v := gjson.GetBytes(data, "title"); v.Exists() {
		s.Title = v.String()
	}
	if v := gjson.GetBytes(data, "version"); v.Exists() {
		s.Version = v.String()
	}
	if v := gjson.GetBytes(data, "width"); v.Exists() {
		s.Width = int(v.Int())
	}
	if v := gjson.GetBytes(data, "height"); v.Exists() {
		s.Height = int(v.Int())
	}
	if v := gjson.GetBytes(data, "intro"); v.Exists() {
		s.IntroEnabled = v.Bool()
	}
	if v := gjson.GetBytes(data, "menu"); v.Exists() {
		s.MenuEnabled = v.Bool()
	}
	if v := gjson.GetBytes(data, "menu_key"); v.Exists() {
		s.MenuKey = input.Key(v.String())
	}
	if v := gjson.GetBytes(data, "fullscreen"); v.Exists() {
		s.FullScreen = v.Bool()
	}
	if v := gjson.GetBytes(data, "show_fps"); v.Exists() {
		s.ShowFPS = v.Bool()
	}
	if v := gjson.GetBytes(data, "tick_rate"); v.Exists() {
		s.TickRate = int(v.Int())
	}
	if v := gjson.GetBytes(data, "mode"); v.Exists() {
		s.Mode = ParseMode(v.String())
	}
	if v := gjson.GetBytes(data, "save_dir"); v.Exists() {
		s.SaveDir = v.String()
	}
	if v := gjson.GetBytes(data, "close_confirmation"); v.Exists() {
		s.CloseConfirmation = v.Bool()
	}
	return nil
}

// Snapshot is the immutable copy of the builder that the controller and
// all subsystems read. It is a plain value; holders cannot affect each
// other or the builder.
type Snapshot struct {
	Title             string
	Version           string
	Width             int
	Height            int
	IntroEnabled      bool
	MenuEnabled       bool
	MenuKey           input.Key
	FullScreen        bool
	ShowFPS           bool
	TickRate          int
	Mode              Mode
	SaveDir           string
	CloseConfirmation bool
}

// Freeze produces the read-only snapshot. Called exactly once, at the end
// of the settings initializer.
func (s *Settings) Freeze() Snapshot {
	return Snapshot{
		Title:             s.Title,
		Version:           s.Version,
		Width:             s.Width,
		Height:            s.Height,
		IntroEnabled:      s.IntroEnabled,
		MenuEnabled:       s.MenuEnabled,
		MenuKey:           s.MenuKey,
		FullScreen:        s.FullScreen,
		ShowFPS:           s.ShowFPS,
		TickRate:          s.TickRate,
		Mode:              s.Mode,
		SaveDir:           s.SaveDir,
		CloseConfirmation: s.CloseConfirmation,
	}
}
