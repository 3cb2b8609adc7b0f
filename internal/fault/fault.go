// Package fault is the process-wide failure sink. It keeps two disjoint
// channels: checked failures, which are recoverable and leave the
// application running, and uncaught failures, which freeze the visible
// state, log full context, and terminate the process.
package fault

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Handler receives a failure. User-supplied handlers run on the control
// thread.
type Handler func(err error)

// Sink routes failures. Install it before any other component so nothing
// can fail without a destination.
type Sink struct {
	logger zerolog.Logger

	checked  Handler
	uncaught Handler

	pause func()
	flush func()
	exit  func(code int)

	exiting atomic.Bool
}

// Option configures a Sink.
type Option func(*Sink)

// WithCheckedHandler sets the user hook for recoverable failures.
func WithCheckedHandler(h Handler) Option {
	return func(s *Sink) {
		s.checked = h
	}
}

// WithUncaughtHandler sets the user hook invoked before the process
// terminates on an unexpected failure.
func WithUncaughtHandler(h Handler) Option {
	return func(s *Sink) {
		s.uncaught = h
	}
}

// WithExitFunc replaces process termination, for tests.
func WithExitFunc(exit func(code int)) Option {
	return func(s *Sink) {
		s.exit = exit
	}
}

// WithFlush sets the log-flush function run right before termination.
func WithFlush(flush func()) Option {
	return func(s *Sink) {
		s.flush = flush
	}
}

// New creates a failure sink.
func New(logger zerolog.Logger, opts ...Option) *Sink {
	s := &Sink{
		logger: logger.With().Str("component", "fault").Logger(),
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetPauser wires the force-pause transition invoked on the uncaught
// path. The lifecycle controller sets it once scenes are ready; before
// that there is nothing visible to freeze.
func (s *Sink) SetPauser(pause func()) {
	s.pause = pause
}

// Checked routes a recoverable failure: it is logged, handed to the user
// hook, and execution continues.
func (s *Sink) Checked(err error) {
	if err == nil {
		return
	}
	s.logger.Warn().Err(err).Msg("checked failure")
	if s.checked != nil {
		s.checked(err)
	}
}

// Uncaught routes a fatal failure. The visible state is frozen by a forced
// pause before anything else, then the failure is logged with full
// context, the user hook runs, and the process terminates with a non-zero
// status. The ordering guarantees the user never observes a half-updated
// frame.
func (s *Sink) Uncaught(err error) {
	if !s.exiting.CompareAndSwap(false, true) {
		return
	}

	if s.pause != nil {
		s.pause()
	}

	s.logger.Error().Err(err).Msg("uncaught failure, application will now exit")

	if s.uncaught != nil {
		s.uncaught(err)
	}
	if s.flush != nil {
		s.flush()
	}
	s.exit(1)
}

// Recovered converts a recovered panic into the uncaught path.
func (s *Sink) Recovered(recovered any, stack []byte) {
	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", recovered)
	}
	s.logger.Error().Bytes("stack", stack).Msg("panic on control thread")
	s.Uncaught(err)
}
