package app

import (
	"runtime/debug"
	"time"

	"github.com/gantry-engine/gantry/internal/event/events"
)

// Run shows the first scene and drives the control loop until exit. The
// loop multiplexes the tick source and the post queue; everything it
// invokes runs on this goroutine, which is the control thread.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.registry.Clock().Start(app.now())
	app.guard(app.showFirstScene)

	ticker := time.NewTicker(app.tickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-app.done:
			return nil
		case fn := <-app.posted:
			app.guard(fn)
		case <-ticker.C:
			app.guard(func() { app.tick(app.now()) })
		}
	}
}

// guard runs fn on the control thread with the same panic coverage the
// bus gives its handlers: a panic anywhere below becomes an uncaught
// failure, so the pause/log/hook/terminate sequence always runs.
func (app *Application) guard(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			app.faults.Recovered(r, debug.Stack())
		}
	}()
	fn()
}

// Post marshals fn onto the control thread. Safe to call from any
// goroutine; fn is dropped if the application has stopped.
func (app *Application) Post(fn func()) {
	select {
	case app.posted <- fn:
	case <-app.done:
	}
}

// Exit requests normal termination from any goroutine.
func (app *Application) Exit() {
	app.Post(app.exit)
}

// tick advances the simulation by one frame. Ticks are only delivered
// while playing; every other state freezes the clock.
func (app *Application) tick(now time.Time) {
	if app.state != StatePlaying {
		return
	}
	frame := app.registry.Clock().Tick(now)
	app.publish(events.Tick{Tick: frame.Tick, Delta: frame.Delta, Now: frame.Elapsed})
}

func (app *Application) tickInterval() time.Duration {
	rate := app.snapshot.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// stop closes the loop exactly once.
func (app *Application) stop() {
	app.stopOnce.Do(func() {
		close(app.done)
	})
}
