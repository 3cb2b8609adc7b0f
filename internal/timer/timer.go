// Package timer tracks simulation ticks, per-frame deltas, and a rolling
// frames-per-second figure for the optional diagnostics overlay.
package timer

import "time"

// Frame describes one simulation tick.
type Frame struct {
	// Tick is the monotonically increasing tick counter.
	Tick uint64

	// Delta is the time since the previous tick, in seconds.
	Delta float64

	// Elapsed is the time since the timer started.
	Elapsed time.Duration
}

// Timer is owned by the control loop; none of its methods are safe for
// concurrent use.
type Timer struct {
	tick    uint64
	started time.Time
	last    time.Time

	windowStart  time.Time
	windowFrames int
	fps          int
}

// New creates a stopped timer; Start begins timekeeping.
func New() *Timer {
	return &Timer{}
}

// Start begins timekeeping at now.
func (t *Timer) Start(now time.Time) {
	t.started = now
	t.last = now
	t.windowStart = now
}

// Tick advances the timer by one frame and returns its timing.
func (t *Timer) Tick(now time.Time) Frame {
	t.tick++

	delta := now.Sub(t.last).Seconds()
	t.last = now

	t.windowFrames++
	if window := now.Sub(t.windowStart); window >= time.Second {
		t.fps = int(float64(t.windowFrames) / window.Seconds())
		t.windowFrames = 0
		t.windowStart = now
	}

	return Frame{
		Tick:    t.tick,
		Delta:   delta,
		Elapsed: now.Sub(t.started),
	}
}

// Touch rebases the delta reference without advancing the tick counter.
// Called on resume so the first frame after a pause does not see the
// whole pause as elapsed time.
func (t *Timer) Touch(now time.Time) {
	t.last = now
}

// TickCount returns the current tick count.
func (t *Timer) TickCount() uint64 {
	return t.tick
}

// FPS returns the most recent frames-per-second figure, zero until a full
// second of frames has been observed.
func (t *Timer) FPS() int {
	return t.fps
}
