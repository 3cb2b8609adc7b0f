package events

import "github.com/gantry-engine/gantry/internal/event"

// Lifecycle event topics.
const (
	// TopicLifecycleInitComplete is published once the session-init
	// sequence has finished and the game scene is about to be shown.
	TopicLifecycleInitComplete event.Topic = "lifecycle.init_complete"

	// TopicLifecyclePause is published when the main loop is paused.
	TopicLifecyclePause event.Topic = "lifecycle.pause"

	// TopicLifecycleResume is published when the main loop resumes.
	TopicLifecycleResume event.Topic = "lifecycle.resume"

	// TopicLifecycleReset is published when the current session state is
	// discarded.
	TopicLifecycleReset event.Topic = "lifecycle.reset"

	// TopicLifecycleExit is published exactly once when the application
	// begins terminating.
	TopicLifecycleExit event.Topic = "lifecycle.exit"
)

// LifecycleKind enumerates the lifecycle transition kinds.
type LifecycleKind int

const (
	// LifecycleInitComplete marks the end of session initialization.
	LifecycleInitComplete LifecycleKind = iota

	// LifecyclePause marks a pause of the main loop.
	LifecyclePause

	// LifecycleResume marks a resume of the main loop.
	LifecycleResume

	// LifecycleReset marks a discard of session state.
	LifecycleReset

	// LifecycleExit marks application termination.
	LifecycleExit
)

// String returns a human-readable kind name.
func (k LifecycleKind) String() string {
	switch k {
	case LifecycleInitComplete:
		return "init_complete"
	case LifecyclePause:
		return "pause"
	case LifecycleResume:
		return "resume"
	case LifecycleReset:
		return "reset"
	case LifecycleExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Lifecycle is a bus notification of a state-machine transition. It is
// immutable: published once per transition and read-only to subscribers.
type Lifecycle struct {
	// Kind is the transition kind.
	Kind LifecycleKind

	// Payload carries optional transition data, nil for most kinds.
	Payload any
}

// EventTopic implements event.TopicProvider.
func (e Lifecycle) EventTopic() event.Topic {
	switch e.Kind {
	case LifecycleInitComplete:
		return TopicLifecycleInitComplete
	case LifecyclePause:
		return TopicLifecyclePause
	case LifecycleResume:
		return TopicLifecycleResume
	case LifecycleReset:
		return TopicLifecycleReset
	case LifecycleExit:
		return TopicLifecycleExit
	default:
		return ""
	}
}
