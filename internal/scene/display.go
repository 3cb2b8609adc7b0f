package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Sentinel errors for the display.
var (
	// ErrUnknownScene is returned when switching to an unregistered scene.
	ErrUnknownScene = errors.New("scene not registered")

	// ErrNilScene is returned when registering a nil scene.
	ErrNilScene = errors.New("scene cannot be nil")
)

// ChangeCallback is notified after the current scene changes.
type ChangeCallback func(previous, current Scene)

// MenuToggleCallback is notified when the menu-open flag flips.
type MenuToggleCallback func(open bool)

// Display owns the set of registered scenes and the single current one.
// SetScene is the only path by which the current scene changes; the
// lifecycle controller never mutates scene visibility directly.
//
// SetScene must only be invoked from the control thread during a lifecycle
// transition. Accessors are safe from any goroutine.
type Display struct {
	mu sync.RWMutex

	scenes   map[Role]Scene
	current  Scene
	menuOpen bool

	changeCallbacks []ChangeCallback
	menuCallbacks   []MenuToggleCallback

	logger zerolog.Logger
}

// NewDisplay creates an empty display.
func NewDisplay(logger zerolog.Logger) *Display {
	return &Display{
		scenes: make(map[Role]Scene),
		logger: logger.With().Str("component", "display").Logger(),
	}
}

// Register adds a scene to the known set. Registering the same scene again
// is a no-op; registering a different scene for an occupied role replaces
// it, which is only legal before the first SetScene for that role.
func (d *Display) Register(s Scene) error {
	if s == nil {
		return ErrNilScene
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.scenes[s.Role()]; ok && existing == s {
		return nil
	}
	d.scenes[s.Role()] = s
	return nil
}

// SetScene makes the scene registered for the role current, notifying the
// previous scene it is hidden and the new one it is shown. The menu-open
// flag tracks whether the current scene is one of the menu roles.
func (d *Display) SetScene(role Role) error {
	d.mu.Lock()

	next, ok := d.scenes[role]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownScene, role)
	}

	previous := d.current
	if previous == next {
		d.mu.Unlock()
		return nil
	}

	d.current = next

	wasOpen := d.menuOpen
	d.menuOpen = role == RoleMainMenu || role == RoleGameMenu
	menuFlipped := d.menuOpen != wasOpen
	nowOpen := d.menuOpen

	changeCallbacks := make([]ChangeCallback, len(d.changeCallbacks))
	copy(changeCallbacks, d.changeCallbacks)
	menuCallbacks := make([]MenuToggleCallback, len(d.menuCallbacks))
	copy(menuCallbacks, d.menuCallbacks)

	d.mu.Unlock()

	if previous != nil {
		d.logger.Debug().
			Str("from", previous.Name()).
			Str("to", next.Name()).
			Msg("scene switch")
		previous.OnHide()
	} else {
		d.logger.Debug().Str("to", next.Name()).Msg("initial scene")
	}
	next.OnShow()

	for _, cb := range changeCallbacks {
		cb(previous, next)
	}
	if menuFlipped {
		for _, cb := range menuCallbacks {
			cb(nowOpen)
		}
	}
	return nil
}

// Current returns the active scene, nil before the first SetScene.
func (d *Display) Current() Scene {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current
}

// Scene returns the registered scene for a role.
func (d *Display) Scene(role Role) (Scene, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.scenes[role]
	return s, ok
}

// IsMenuOpen reports whether a menu scene is current.
func (d *Display) IsMenuOpen() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.menuOpen
}

// OnChange registers a callback notified after every scene switch.
func (d *Display) OnChange(cb ChangeCallback) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.changeCallbacks = append(d.changeCallbacks, cb)
}

// OnMenuToggle registers a callback notified when the menu-open flag
// flips.
func (d *Display) OnMenuToggle(cb MenuToggleCallback) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.menuCallbacks = append(d.menuCallbacks, cb)
}
