package events

import "github.com/gantry-engine/gantry/internal/event"

// Menu event topics.
const (
	// TopicMenuNewGame is published when the user starts a new session.
	TopicMenuNewGame event.Topic = "menu.new_game"

	// TopicMenuSave is published when the user requests a save.
	TopicMenuSave event.Topic = "menu.save"

	// TopicMenuLoad is published when the user requests a load.
	TopicMenuLoad event.Topic = "menu.load"

	// TopicMenuPause is published when the user opens the in-game menu.
	TopicMenuPause event.Topic = "menu.pause"

	// TopicMenuResume is published when the user closes the in-game menu.
	TopicMenuResume event.Topic = "menu.resume"

	// TopicMenuExit is published when the user quits the application.
	TopicMenuExit event.Topic = "menu.exit"

	// TopicMenuExitToMainMenu is published when the user abandons the
	// current session for the main menu.
	TopicMenuExitToMainMenu event.Topic = "menu.exit_to_main_menu"
)

// MenuKind enumerates UI-originated transition requests.
type MenuKind int

const (
	// MenuNewGame requests a fresh session.
	MenuNewGame MenuKind = iota

	// MenuSave requests saving the current session to a slot.
	MenuSave

	// MenuLoad requests loading a session from a slot.
	MenuLoad

	// MenuPause requests opening the in-game menu.
	MenuPause

	// MenuResume requests closing the in-game menu.
	MenuResume

	// MenuExit requests application exit.
	MenuExit

	// MenuExitToMainMenu requests abandoning the session.
	MenuExitToMainMenu
)

// String returns a human-readable kind name.
func (k MenuKind) String() string {
	switch k {
	case MenuNewGame:
		return "new_game"
	case MenuSave:
		return "save"
	case MenuLoad:
		return "load"
	case MenuPause:
		return "pause"
	case MenuResume:
		return "resume"
	case MenuExit:
		return "exit"
	case MenuExitToMainMenu:
		return "exit_to_main_menu"
	default:
		return "unknown"
	}
}

// Menu is a UI-originated request that the lifecycle controller interprets
// as a transition trigger.
type Menu struct {
	// Kind is the request kind.
	Kind MenuKind

	// Slot optionally names a save slot for MenuSave and MenuLoad. An
	// empty slot on load means "most recently modified"; an empty slot on
	// save makes the request a no-op.
	Slot string
}

// EventTopic implements event.TopicProvider.
func (e Menu) EventTopic() event.Topic {
	switch e.Kind {
	case MenuNewGame:
		return TopicMenuNewGame
	case MenuSave:
		return TopicMenuSave
	case MenuLoad:
		return TopicMenuLoad
	case MenuPause:
		return TopicMenuPause
	case MenuResume:
		return TopicMenuResume
	case MenuExit:
		return TopicMenuExit
	case MenuExitToMainMenu:
		return TopicMenuExitToMainMenu
	default:
		return ""
	}
}
