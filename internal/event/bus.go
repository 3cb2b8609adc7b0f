package event

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// PanicHandler is invoked when a handler panics during delivery.
// The stack is captured at the point of recovery.
type PanicHandler func(event any, recovered any, stack []byte)

// ErrorHandler is invoked when a handler returns an error. Delivery to the
// remaining handlers continues regardless.
type ErrorHandler func(topic Topic, err error)

// Bus is a synchronous publish/subscribe bus.
//
// Publish delivers an event to every matching subscription before
// returning, in registration order, over a snapshot of the subscriber list
// taken when the publish starts. A handler may publish further events; the
// nested delivery completes before the outer iteration resumes. A handler
// may also subscribe or unsubscribe; such changes only affect later
// publishes.
type Bus struct {
	mu   sync.Mutex
	subs map[Topic][]*Subscription

	panicHandler PanicHandler
	errorHandler ErrorHandler

	// Stats
	eventsPublished  atomic.Uint64
	eventsDelivered  atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerErrors    atomic.Uint64
	handlerPanics    atomic.Uint64
}

// Option configures a Bus.
type Option func(*Bus)

// WithPanicHandler sets the handler invoked when an event handler panics.
// Without one, panics are re-raised after the subscriber list is left in a
// consistent state.
func WithPanicHandler(h PanicHandler) Option {
	return func(b *Bus) {
		b.panicHandler = h
	}
}

// WithErrorHandler sets the handler invoked when an event handler returns
// an error.
func WithErrorHandler(h ErrorHandler) Option {
	return func(b *Bus) {
		b.errorHandler = h
	}
}

// NewBus creates a new event bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		subs: make(map[Topic][]*Subscription),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a handler for a topic. Handlers are invoked in
// registration order.
func (b *Bus) Subscribe(topic Topic, handler Handler, opts ...SubscribeOption) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !topic.IsValid() {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(topic, handler, opts...)

	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], sub)
	b.mu.Unlock()

	return sub, nil
}

// SubscribeFunc is a convenience method for subscribing with a function.
func (b *Bus) SubscribeFunc(topic Topic, fn HandlerFunc, opts ...SubscribeOption) (*Subscription, error) {
	return b.Subscribe(topic, fn, opts...)
}

// Unsubscribe removes a subscription. If a publish for the subscription's
// topic is in flight, the removal takes effect after it completes.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}

	sub.cancel()

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.removeLocked(sub)
}

func (b *Bus) removeLocked(sub *Subscription) error {
	subs := b.subs[sub.topic]
	for i, s := range subs {
		if s.id == sub.id {
			b.subs[sub.topic] = append(subs[:i:i], subs[i+1:]...)
			if len(b.subs[sub.topic]) == 0 {
				delete(b.subs, sub.topic)
			}
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers an event to all subscriptions registered for its topic.
// The event must implement TopicProvider.
func (b *Bus) Publish(ctx context.Context, event any) error {
	tp, ok := event.(TopicProvider)
	if !ok {
		return ErrInvalidEvent
	}
	topic := tp.EventTopic()
	if !topic.IsValid() {
		return ErrInvalidTopic
	}

	// Snapshot under lock, deliver outside of it so handlers can publish,
	// subscribe, and unsubscribe re-entrantly.
	b.mu.Lock()
	snapshot := make([]*Subscription, len(b.subs[topic]))
	copy(snapshot, b.subs[topic])
	b.mu.Unlock()

	b.eventsPublished.Add(1)

	for _, sub := range snapshot {
		if !sub.shouldDeliver(event) {
			continue
		}

		err, panicked := b.dispatch(ctx, event, sub)
		b.handlersExecuted.Add(1)

		switch {
		case panicked:
			b.handlerPanics.Add(1)
		case err != nil:
			b.handlerErrors.Add(1)
			if b.errorHandler != nil {
				b.errorHandler(topic, &HandlerError{
					SubscriptionID: sub.id,
					Topic:          topic,
					Err:            err,
				})
			}
		default:
			b.eventsDelivered.Add(1)
		}

		if sub.once {
			sub.cancel()
			b.mu.Lock()
			_ = b.removeLocked(sub)
			b.mu.Unlock()
		}
	}

	return nil
}

// dispatch runs a single handler with panic recovery.
func (b *Bus) dispatch(ctx context.Context, event any, sub *Subscription) (err error, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			if b.panicHandler != nil {
				b.panicHandler(event, r, debug.Stack())
				return
			}
			panic(r)
		}
	}()

	return sub.handler.Handle(ctx, event), false
}

// SubscriberCount returns the number of live subscriptions for a topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}

// Stats is a snapshot of bus delivery counters.
type Stats struct {
	EventsPublished  uint64
	EventsDelivered  uint64
	HandlersExecuted uint64
	HandlerErrors    uint64
	HandlerPanics    uint64
}

// Stats returns current bus statistics.
func (b *Bus) Stats() Stats {
	return Stats{
		EventsPublished:  b.eventsPublished.Load(),
		EventsDelivered:  b.eventsDelivered.Load(),
		HandlersExecuted: b.handlersExecuted.Load(),
		HandlerErrors:    b.handlerErrors.Load(),
		HandlerPanics:    b.handlerPanics.Load(),
	}
}
