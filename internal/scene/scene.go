// Package scene defines the closed set of presentable application modes
// and the display that owns the single currently-visible one.
package scene

import "github.com/gantry-engine/gantry/internal/input"

// Role identifies one of the four mutually exclusive presentation modes.
// Each role has exactly one scene instance for the process lifetime.
type Role int

const (
	// RoleIntro is the scene shown at startup before menus and game.
	RoleIntro Role = iota

	// RoleMainMenu is the menu shown before a session starts.
	RoleMainMenu

	// RoleGameMenu is the in-session menu shown while paused.
	RoleGameMenu

	// RoleGame is the scene where the active session is presented.
	RoleGame
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleIntro:
		return "intro"
	case RoleMainMenu:
		return "main_menu"
	case RoleGameMenu:
		return "game_menu"
	case RoleGame:
		return "game"
	default:
		return "unknown"
	}
}

// Scene is an opaque presentable unit. Implementations receive show/hide
// notifications from the display and key events from the controller while
// current. All methods run on the control thread.
type Scene interface {
	// Role returns the scene's fixed role.
	Role() Role

	// Name returns a human-readable scene name for logging.
	Name() string

	// OnShow is called when the scene becomes current.
	OnShow()

	// OnHide is called when the scene stops being current.
	OnHide()

	// HandleKey processes a key event while the scene is current.
	// Returns true if the event was consumed.
	HandleKey(ev input.KeyEvent) bool
}

// Base provides no-op lifecycle hooks so scene implementations only
// override what they need.
type Base struct{}

// OnShow implements Scene.
func (Base) OnShow() {}

// OnHide implements Scene.
func (Base) OnHide() {}

// HandleKey implements Scene.
func (Base) HandleKey(input.KeyEvent) bool { return false }
