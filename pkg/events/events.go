// Package events is a small in-process pub/sub bus for registry lifecycle
// notifications.
//
// Delivery is synchronous: Publish calls every handler subscribed to the
// event's kind in the publisher's goroutine and joins their errors. Handlers
// must not mutate the publishing registry, since it is mid-operation when the
// event fires.
package events

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/aecs/internal/core/observability/log"
)

// Kind routes an event to its subscribers.
type Kind string

const (
	EntityCreated       Kind = "entity.created"
	EntityDeleted       Kind = "entity.deleted"
	ComponentAssigned   Kind = "component.assigned"
	ComponentUnassigned Kind = "component.unassigned"
)

// Event describes one registry mutation. Entity carries the raw identifier
// widened to 64 bits; Component is the component type name for component
// events and empty otherwise.
type Event struct {
	Kind      Kind
	Source    string
	Entity    uint64
	Component string
	Timestamp time.Time
}

// Fields renders e for structured logging.
func (e Event) Fields() []log.Field {
	fields := []log.Field{
		log.String("kind", string(e.Kind)),
		log.String("source", e.Source),
		log.Uint64("entity", e.Entity),
	}
	if e.Component != "" {
		fields = append(fields, log.String("component", e.Component))
	}
	return fields
}

type Handler func(Event) error

// Subscription is a registered handler. Cancel is idempotent.
type Subscription interface {
	ID() string
	Kind() Kind
	IsActive() bool
	Cancel() error
}

// Metrics counts bus activity since creation.
type Metrics struct {
	Published   uint64
	Delivered   uint64
	Errors      uint64
	Subscribers uint64
}

var ErrNilHandler = errors.New("nil event handler")

type subscription struct {
	id     string
	kind   Kind
	active bool
	bus    *Bus
}

func (s *subscription) ID() string { return s.id }
func (s *subscription) Kind() Kind { return s.kind }

func (s *subscription) IsActive() bool {
	s.bus.mu.RLock()
	defer s.bus.mu.RUnlock()
	return s.active
}

func (s *subscription) Cancel() error {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	if !s.active {
		return nil
	}
	delete(s.bus.handlers[s.kind], s.id)
	s.active = false
	s.bus.metrics.Subscribers--
	return nil
}

// Bus is safe for concurrent use so one bus can observe several registries
// driven from different goroutines.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind]map[string]Handler
	order    map[Kind][]*subscription
	metrics  Metrics
}

func New() *Bus {
	return &Bus{
		handlers: make(map[Kind]map[string]Handler),
		order:    make(map[Kind][]*subscription),
	}
}

// Subscribe registers handler for kind. Handlers run in subscription order.
func (b *Bus) Subscribe(kind Kind, handler Handler) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[kind] == nil {
		b.handlers[kind] = make(map[string]Handler)
	}
	s := &subscription{id: uuid.NewString(), kind: kind, active: true, bus: b}
	b.handlers[kind][s.id] = handler
	b.order[kind] = append(b.order[kind], s)
	b.metrics.Subscribers++
	return s, nil
}

// Unsubscribe cancels sub. A nil sub is ignored.
func (b *Bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return nil
	}
	return sub.Cancel()
}

// Publish delivers event to every active handler of its kind.
func (b *Bus) Publish(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.Lock()
	b.metrics.Published++
	handlers := make([]Handler, 0, len(b.handlers[event.Kind]))
	live := b.order[event.Kind][:0]
	for _, s := range b.order[event.Kind] {
		if !s.active {
			continue
		}
		live = append(live, s)
		handlers = append(handlers, b.handlers[event.Kind][s.id])
	}
	b.order[event.Kind] = live
	b.mu.Unlock()

	var errs []error
	for _, h := range handlers {
		if err := h(event); err != nil {
			errs = append(errs, err)
		}
	}

	b.mu.Lock()
	b.metrics.Delivered += uint64(len(handlers))
	b.metrics.Errors += uint64(len(errs))
	b.mu.Unlock()

	return errors.Join(errs...)
}

// HasSubscribers reports whether any handler listens for kind. Publishers use
// it to skip building events nobody reads.
func (b *Bus) HasSubscribers(kind Kind) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[kind]) > 0
}

// Metrics returns a snapshot of the counters.
func (b *Bus) Metrics() Metrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.metrics
}
