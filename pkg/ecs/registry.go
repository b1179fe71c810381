// Package ecs is an in-memory entity-component registry.
//
// A Registry hands out packed entity identifiers (see package entity), keeps
// one component.Mask per entity slot describing which component types it
// carries, and stores component payloads in per-type dense arrays indexed by
// the entity's slot index. Views walk the slot table in index order and yield
// the entities whose mask contains every requested type.
//
// Typed operations are package functions because Go methods cannot take type
// parameters:
//
//	r := ecs.MustNew[uint32]()
//	e := r.NewEntity()
//	ecs.Assign(r, e, Position{X: 1})
//	ecs.ForEach2(r, func(e uint32, p *Position, v *Velocity) { ... })
//
// Preconditions (the entity is alive, the component is present or absent)
// are checked while AssertionsEnabled is true and panic with an error that
// wraps one of the package sentinels. Building with -tags aecs_noassert
// removes the checks; the Try* variants keep them in every build.
//
// A Registry is not safe for concurrent use. Pointers returned by Assign and
// Get are invalidated by the next Assign of the same component type.
package ecs

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zeusync/aecs/internal/core/observability/log"
	"github.com/zeusync/aecs/pkg/component"
	"github.com/zeusync/aecs/pkg/entity"
	"github.com/zeusync/aecs/pkg/events"
	"github.com/zeusync/aecs/pkg/sequence"
)

const minCapacity = 32

type slot[E entity.Integer] struct {
	id   E
	mask component.Mask
}

// Registry owns entities and their components.
type Registry[E entity.Integer] struct {
	id   string
	name string

	// slots[i].id is the live id at index i, or the invalid sentinel.
	// Indices at or above next have never been handed out.
	slots []slot[E]
	next  int
	live  int
	free  *sequence.Queue[E]

	types   *component.Types
	storage *component.Storage
	log     log.Log
	bus     *events.Bus
}

// New creates a registry configured by opts.
func New[E entity.Integer](opts ...Option) (*Registry[E], error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if limit := uint64(entity.MaxIndex[E]()) + 1; uint64(cfg.InitialCapacity) > limit {
		return nil, fmt.Errorf("%w: initial_capacity %d exceeds %d addressable slots",
			ErrInvalidConfig, cfg.InitialCapacity, limit)
	}

	r := &Registry[E]{
		id:    uuid.NewString(),
		name:  cfg.Name,
		types: cfg.Types,
		bus:   cfg.Bus,
		free:  sequence.NewQueue[E](0),
	}

	if r.types == nil {
		if cfg.SharedTypes {
			r.types = component.Default()
		} else {
			r.types = component.NewTypes()
		}
	}
	if r.bus == nil && cfg.Events {
		r.bus = events.New()
	}

	logger := cfg.Logger
	if logger == nil {
		level, _ := log.ParseLevel(cfg.LogLevel)
		if level == log.LevelSilent {
			logger = log.NewNop()
		} else {
			logger = log.New(level)
		}
	}
	r.log = logger.With(log.String("registry", r.name), log.String("registry_id", r.id))
	r.storage = component.NewStorage(r.types, r.log)

	if cfg.InitialCapacity > 0 {
		r.slots = make([]slot[E], cfg.InitialCapacity)
	}

	r.log.Debug("registry created",
		log.Int("id_bits", int(entity.Bits[E]())),
		log.Int("initial_capacity", cfg.InitialCapacity),
		log.Bool("events", r.bus != nil),
	)
	return r, nil
}

// MustNew is like New but panics on invalid configuration.
func MustNew[E entity.Integer](opts ...Option) *Registry[E] {
	r, err := New[E](opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// NewEntity returns a live identifier. Freed indices are reused oldest first
// with their version bumped; otherwise the next unused index is taken with
// version zero. It panics with ErrEntityCapacity once every index of E is live.
func (r *Registry[E]) NewEntity() E {
	e, err := r.TryNewEntity()
	if err != nil {
		panic(err)
	}
	return e
}

// TryNewEntity is NewEntity returning ErrEntityCapacity instead of panicking.
func (r *Registry[E]) TryNewEntity() (E, error) {
	var e E
	if old, ok := r.free.Dequeue(); ok {
		e = r.revive(old)
	} else {
		if uint64(r.next) > uint64(entity.MaxIndex[E]()) {
			return entity.Invalid[E](), fmt.Errorf("%w: all %d indices are live", ErrEntityCapacity, r.next)
		}
		if r.next == len(r.slots) {
			r.grow()
		}
		e = entity.Make(E(r.next), 0)
		r.slots[r.next] = slot[E]{id: e}
		r.next++
	}

	r.live++
	r.publishEntity(events.EntityCreated, e)
	return e, nil
}

func (r *Registry[E]) revive(old E) E {
	index := entity.Index(old)
	e := entity.WithVersion(old, entity.Version(old)+1)
	if !entity.IsValid(e) {
		// The last version of the last index would collide with the sentinel.
		e = entity.WithVersion(old, 0)
	}
	if entity.Version(e) == 0 {
		r.log.Warn("entity version wrapped", log.Uint64("index", uint64(index)))
	}

	s := &r.slots[index]
	s.id = e
	s.mask = 0
	return e
}

func (r *Registry[E]) grow() {
	oldCap := len(r.slots)
	newCap := max(minCapacity, 2*oldCap)
	if limit := uint64(entity.MaxIndex[E]()) + 1; uint64(newCap) > limit {
		newCap = int(limit)
	}

	slots := make([]slot[E], newCap)
	copy(slots, r.slots)
	r.slots = slots

	r.log.Debug("entity table grown", log.Int("from", oldCap), log.Int("to", newCap))
}

// DeleteEntity releases e. Every component payload it carried is reset, its
// mask is cleared and its index is queued for reuse.
func (r *Registry[E]) DeleteEntity(e E) {
	if AssertionsEnabled && !r.Alive(e) {
		violation(ErrDeadEntity, "delete %s", describe(e))
	}
	r.deleteEntity(e)
}

// TryDeleteEntity is DeleteEntity returning ErrDeadEntity for a dead or stale id.
func (r *Registry[E]) TryDeleteEntity(e E) error {
	if !r.Alive(e) {
		return fmt.Errorf("%w: delete %s", ErrDeadEntity, describe(e))
	}
	r.deleteEntity(e)
	return nil
}

func (r *Registry[E]) deleteEntity(e E) {
	index := int(entity.Index(e))
	s := &r.slots[index]
	s.id = entity.Invalid[E]()
	s.mask = 0

	r.storage.EntityDestroyed(index)
	r.free.Enqueue(e)
	r.live--
	r.publishEntity(events.EntityDeleted, e)
}

// Alive reports whether e is the current occupant of its slot.
func (r *Registry[E]) Alive(e E) bool {
	if !entity.IsValid(e) {
		return false
	}
	index := entity.Index(e)
	return uint64(index) < uint64(r.next) && r.slots[index].id == e
}

// Len returns the number of live entities.
func (r *Registry[E]) Len() int {
	return r.live
}

// Cap returns the number of allocated entity slots.
func (r *Registry[E]) Cap() int {
	return len(r.slots)
}

// Entities iterates live entities in index order.
func (r *Registry[E]) Entities() *sequence.Iterator[E] {
	return sequence.FromSeq(func(yield func(E) bool) {
		for v := NewView(r); !v.Done(); v.Next() {
			if !yield(v.Entity()) {
				return
			}
		}
	})
}

// Types returns the component id space of r.
func (r *Registry[E]) Types() *component.Types {
	return r.types
}

func (r *Registry[E]) Name() string {
	return r.name
}

// ID returns the unique instance id generated at construction.
func (r *Registry[E]) ID() string {
	return r.id
}

// Bus returns the attached event bus, or nil.
func (r *Registry[E]) Bus() *events.Bus {
	return r.bus
}

func (r *Registry[E]) Logger() log.Log {
	return r.log
}

func (r *Registry[E]) mask(e E) component.Mask {
	return r.slots[entity.Index(e)].mask
}

func (r *Registry[E]) publishEntity(kind events.Kind, e E) {
	if r.bus == nil || !r.bus.HasSubscribers(kind) {
		return
	}
	r.publish(events.Event{Kind: kind, Source: r.name, Entity: uint64(e)})
}

func (r *Registry[E]) publishComponent(kind events.Kind, e E, id component.ID) {
	if r.bus == nil || !r.bus.HasSubscribers(kind) {
		return
	}
	r.publish(events.Event{Kind: kind, Source: r.name, Entity: uint64(e), Component: r.types.Name(id)})
}

func (r *Registry[E]) publish(ev events.Event) {
	if err := r.bus.Publish(ev); err != nil {
		r.log.Warn("event handler failed",
			log.String("kind", string(ev.Kind)),
			log.Uint64("entity", ev.Entity),
			log.Error(err),
		)
	}
}
