// Package term presents the engine in a terminal using tcell. It owns
// the screen, translates terminal input into engine key events, and
// draws the current scene. All engine interaction is marshalled through
// the controller's post queue; the presenter never touches engine state
// from its own goroutines.
package term

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/gantry-engine/gantry/internal/event/events"
	"github.com/gantry-engine/gantry/internal/input"
	"github.com/gantry-engine/gantry/internal/scene"
	"github.com/gantry-engine/gantry/internal/services"
)

// Controller is the slice of the application the presenter needs.
type Controller interface {
	// Post marshals fn onto the control thread.
	Post(fn func())

	// HandleKey routes a key event. Control thread only.
	HandleKey(ev input.KeyEvent)

	// RequestClose handles a window-close request. Control thread only.
	RequestClose()

	// Services returns the sealed service registry.
	Services() *services.Registry
}

// Presenter drives a tcell screen from engine state.
type Presenter struct {
	ctrl   Controller
	screen tcell.Screen
	logger zerolog.Logger

	stopped atomic.Bool
}

// New creates a presenter on a fresh tcell screen.
func New(ctrl Controller, logger zerolog.Logger) (*Presenter, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(ctrl, screen, logger), nil
}

// NewWithScreen creates a presenter on the given screen, used by tests
// with tcell's simulation screen.
func NewWithScreen(ctrl Controller, screen tcell.Screen, logger zerolog.Logger) *Presenter {
	return &Presenter{
		ctrl:   ctrl,
		screen: screen,
		logger: logger.With().Str("component", "term").Logger(),
	}
}

// Start initializes the screen, wires redraw triggers, and begins the
// input poll goroutine.
func (p *Presenter) Start() error {
	if err := p.screen.Init(); err != nil {
		return err
	}

	reg := p.ctrl.Services()
	reg.Display().OnChange(func(_, _ scene.Scene) {
		p.draw()
	})
	// Redraw once per tick while a session runs. The subscription fires
	// on the control thread; drawing there keeps scene reads race-free.
	if _, err := reg.Bus().SubscribeFunc(events.TopicTick, func(_ context.Context, _ any) error {
		p.draw()
		return nil
	}); err != nil {
		return err
	}

	go p.pollEvents()
	p.logger.Debug().Msg("presenter started")
	return nil
}

// Stop finalizes the screen and ends the poll goroutine.
func (p *Presenter) Stop() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}
	p.screen.Fini()
}

// pollEvents translates terminal events and posts them to the control
// thread. Terminals report presses only, so each press is followed by a
// synthetic release to keep hold semantics coherent.
func (p *Presenter) pollEvents() {
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		switch tev := ev.(type) {
		case *tcell.EventResize:
			p.screen.Sync()
			p.ctrl.Post(func() { p.draw() })
		case *tcell.EventInterrupt:
			p.ctrl.Post(p.ctrl.RequestClose)
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyCtrlC {
				p.ctrl.Post(p.ctrl.RequestClose)
				continue
			}
			key, ok := convertKey(tev)
			if !ok {
				continue
			}
			p.ctrl.Post(func() {
				p.ctrl.HandleKey(input.KeyEvent{Key: key, Pressed: true})
				p.ctrl.HandleKey(input.KeyEvent{Key: key, Pressed: false})
			})
		}
	}
}

// draw renders the current scene. Control thread only.
func (p *Presenter) draw() {
	if p.stopped.Load() {
		return
	}

	reg := p.ctrl.Services()
	cur := reg.Display().Current()
	snap := reg.Settings()

	p.screen.Clear()
	width, height := p.screen.Size()

	title := fmt.Sprintf("%s %s", snap.Title, snap.Version)
	p.drawText(0, 0, width, title, tcell.StyleDefault.Bold(true))

	if cur == nil {
		p.screen.Show()
		return
	}

	switch cur.Role() {
	case scene.RoleIntro:
		p.drawText(0, 2, width, snap.Title, tcell.StyleDefault)
		p.drawText(0, 4, width, "press any key", tcell.StyleDefault.Dim(true))
	case scene.RoleMainMenu:
		p.drawText(0, 2, width, "enter  new game", tcell.StyleDefault)
		p.drawText(0, 3, width, "l      load most recent", tcell.StyleDefault)
		p.drawText(0, 4, width, "esc    quit", tcell.StyleDefault)
	case scene.RoleGameMenu:
		p.drawText(0, 2, width, "paused", tcell.StyleDefault.Bold(true))
		p.drawText(0, 4, width, "enter  resume", tcell.StyleDefault)
		p.drawText(0, 5, width, "s      save", tcell.StyleDefault)
		p.drawText(0, 6, width, "l      load", tcell.StyleDefault)
		p.drawText(0, 7, width, "m      main menu", tcell.StyleDefault)
		p.drawText(0, 8, width, "q      quit", tcell.StyleDefault)
	case scene.RoleGame:
		p.drawText(0, 2, width, fmt.Sprintf("tick %d", reg.Clock().TickCount()), tcell.StyleDefault)
		if st, ok := cur.(interface{ Status() string }); ok && st.Status() != "" {
			p.drawText(0, 3, width, st.Status(), tcell.StyleDefault.Dim(true))
		}
	}

	if note := reg.Notifications().Current(); note != "" && height > 1 {
		p.drawText(0, height-1, width, note, tcell.StyleDefault.Reverse(true))
	}

	p.screen.Show()
}

func (p *Presenter) drawText(x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= maxWidth {
			break
		}
		p.screen.SetContent(col, y, r, nil, style)
		col++
	}
}
