package component

import (
	"github.com/zeusync/aecs/internal/core/observability/log"
)

// Storage owns one Store per component type, addressed by the dense ID the
// owning registry's Types assigned to that type. Each ID is only ever bound to
// one concrete payload type, so the typed accessors can recover the Store by
// plain type assertion.
type Storage struct {
	stores  [MaxTypes]Erased
	created []ID
	types   *Types
	log     log.Log
}

// NewStorage returns an empty multiplexer. types is used for naming stores in
// log output only.
func NewStorage(types *Types, logger log.Log) *Storage {
	if types == nil {
		types = NewTypes()
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Storage{
		types:   types,
		log:     logger,
		created: make([]ID, 0, MaxTypes),
	}
}

// Insert stores value for the entity at index, creating the Store for id on
// first use.
func Insert[T any](s *Storage, id ID, index int, value T) *T {
	store, ok := StoreOf[T](s, id)
	if !ok {
		store = newStore[T](s, id)
	}
	return store.Insert(index, value)
}

// Get returns the payload of type T at index. The Store for id must exist.
func Get[T any](s *Storage, id ID, index int) *T {
	return s.stores[id].(*Store[T]).Get(index)
}

// Destroy resets the payload of type T at index if its Store exists.
func Destroy[T any](s *Storage, id ID, index int) {
	if store, ok := StoreOf[T](s, id); ok {
		store.Destroy(index)
	}
}

// StoreOf returns the typed Store for id, if one was created.
func StoreOf[T any](s *Storage, id ID) (*Store[T], bool) {
	store := s.stores[id]
	if store == nil {
		return nil, false
	}
	return store.(*Store[T]), true
}

func newStore[T any](s *Storage, id ID) *Store[T] {
	store := NewStore[T]()
	name := s.types.Name(id)
	store.onGrow = func(oldCap, newCap int) {
		s.log.Debug("component store grown",
			log.String("component", name),
			log.Int("from", oldCap),
			log.Int("to", newCap),
		)
	}
	s.stores[id] = store
	s.created = append(s.created, id)

	s.log.Debug("component store created", log.String("component", name), log.Int("id", int(id)))
	return store
}

// EntityDestroyed clears index in every store. Stores that never held a value
// there simply overwrite a zero value.
func (s *Storage) EntityDestroyed(index int) {
	for _, id := range s.created {
		s.stores[id].Destroy(index)
	}
}

// Erased returns the type-erased Store for id, or nil.
func (s *Storage) Erased(id ID) Erased {
	return s.stores[id]
}

// Len returns the number of stores created so far.
func (s *Storage) Len() int {
	return len(s.created)
}
