package event

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
)

// Handler is the interface for event handlers.
type Handler interface {
	// Handle processes an event. The event parameter is type-erased;
	// handlers should type-assert to the payload they subscribed for.
	Handle(ctx context.Context, event any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// FilterFunc is a predicate deciding whether an event is delivered to a
// subscription. A nil filter delivers everything.
type FilterFunc func(event any) bool

// Subscription represents a registered handler for a topic.
// Handlers for a topic run in the order their subscriptions were created.
type Subscription struct {
	id      string
	topic   Topic
	handler Handler
	filter  FilterFunc
	once    bool

	cancelled atomic.Bool
}

func newSubscription(topic Topic, handler Handler, opts ...SubscribeOption) *Subscription {
	sub := &Subscription{
		id:      uuid.NewString(),
		topic:   topic,
		handler: handler,
	}
	for _, opt := range opts {
		opt(sub)
	}
	return sub
}

// SubscribeOption configures a subscription.
type SubscribeOption func(*Subscription)

// WithFilter sets a delivery predicate for the subscription.
func WithFilter(f FilterFunc) SubscribeOption {
	return func(s *Subscription) {
		s.filter = f
	}
}

// WithOnce makes the subscription cancel itself after its first delivery.
func WithOnce() SubscribeOption {
	return func(s *Subscription) {
		s.once = true
	}
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() Topic {
	return s.topic
}

// IsCancelled returns true once the subscription has been cancelled.
func (s *Subscription) IsCancelled() bool {
	return s.cancelled.Load()
}

// cancel marks the subscription cancelled. Removal from the bus registry is
// the bus's responsibility.
func (s *Subscription) cancel() {
	s.cancelled.Store(true)
}

func (s *Subscription) shouldDeliver(event any) bool {
	if s.filter == nil {
		return true
	}
	return s.filter(event)
}
