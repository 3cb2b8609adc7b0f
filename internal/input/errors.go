package input

import "errors"

// Sentinel errors for the bindings table.
var (
	// ErrDuplicateAction is returned when binding an action name that is
	// already registered.
	ErrDuplicateAction = errors.New("action already bound")

	// ErrDuplicateKey is returned when binding a key that is already in
	// use by another action.
	ErrDuplicateKey = errors.New("key already bound")

	// ErrUnknownAction is returned when rebinding an unregistered action.
	ErrUnknownAction = errors.New("unknown action")

	// ErrNilAction is returned when an action without a handler is bound.
	ErrNilAction = errors.New("action handler cannot be nil")
)
