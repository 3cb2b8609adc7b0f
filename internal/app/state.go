package app

// State is a lifecycle state. The application occupies exactly one state
// at a time and every transition runs on the control thread.
type State int

const (
	// StateUninitialized is the cold-start state before any service
	// exists.
	StateUninitialized State = iota

	// StateServicesConfigured means the settings are frozen and the
	// service registry is built.
	StateServicesConfigured

	// StateScenesReady means the scene singletons are constructed,
	// event handlers are wired, and the persisted profile was applied.
	StateScenesReady

	// StateIntro is showing the intro scene.
	StateIntro

	// StateMainMenu is showing the main menu.
	StateMainMenu

	// StatePlaying is running an active session; ticks are delivered.
	StatePlaying

	// StatePaused has an active session with the loop frozen.
	StatePaused

	// StateExiting is terminal; no transition leaves it.
	StateExiting
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateServicesConfigured:
		return "services_configured"
	case StateScenesReady:
		return "scenes_ready"
	case StateIntro:
		return "intro"
	case StateMainMenu:
		return "main_menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateExiting:
		return "exiting"
	default:
		return "unknown"
	}
}
