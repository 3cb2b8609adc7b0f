package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates the control loop is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNotRunning indicates the control loop is not running.
	ErrNotRunning = errors.New("application not running")

	// ErrSlotNotFound indicates a load request named an absent or
	// unreadable save slot.
	ErrSlotNotFound = errors.New("save slot not found")

	// ErrNoLoadHook indicates a saved session was restored without a
	// LoadState hook to receive it.
	ErrNoLoadHook = errors.New("no load hook registered")
)

// InitError represents a failure during an initialization phase.
type InitError struct {
	Component string
	Err       error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("failed to initialize %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}
