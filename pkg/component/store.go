package component

import "reflect"

// minCapacity is the first allocation of a growing store or table.
const minCapacity = 32

// Erased is the type-independent view of a Store held by Storage.
type Erased interface {
	// Destroy resets the payload at index to the zero value.
	Destroy(index int)
	// Cap returns the number of addressable indices.
	Cap() int
	// Type returns the payload type.
	Type() reflect.Type
}

var _ Erased = (*Store[struct{}])(nil)

// Store holds payloads of one component type, indexed by entity index.
// Indices without a live mask bit in the owning registry hold stale or zero
// values and must not be read.
type Store[T any] struct {
	data   []T
	onGrow func(oldCap, newCap int)
}

// NewStore returns an empty store. Memory is allocated on first Insert.
func NewStore[T any]() *Store[T] {
	return &Store[T]{}
}

// Insert writes value at index, growing the store when needed, and returns a
// pointer to the stored copy. The pointer is valid until the next growth.
func (s *Store[T]) Insert(index int, value T) *T {
	if index >= len(s.data) {
		s.grow(index)
	}
	s.data[index] = value
	return &s.data[index]
}

// Get returns a pointer to the payload at index. index must be below Cap.
func (s *Store[T]) Get(index int) *T {
	return &s.data[index]
}

func (s *Store[T]) Destroy(index int) {
	if index < len(s.data) {
		var zero T
		s.data[index] = zero
	}
}

func (s *Store[T]) Cap() int {
	return len(s.data)
}

func (s *Store[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

// Ref returns a handle to index that stays usable across growth.
func (s *Store[T]) Ref(index int) Ref[T] {
	return Ref[T]{store: s, index: index}
}

// grow doubles capacity, starting at minCapacity, until index fits.
func (s *Store[T]) grow(index int) {
	oldCap := len(s.data)
	newCap := max(minCapacity, 2*oldCap)
	for newCap <= index {
		newCap *= 2
	}

	data := make([]T, newCap)
	copy(data, s.data)
	s.data = data

	if s.onGrow != nil {
		s.onGrow(oldCap, newCap)
	}
}

// Ref addresses one payload by store and index instead of by pointer, so it
// survives reallocation of the store.
type Ref[T any] struct {
	store *Store[T]
	index int
}

// Get resolves the handle. The same preconditions as Store.Get apply.
func (r Ref[T]) Get() *T {
	return r.store.Get(r.index)
}

// Set overwrites the referenced payload.
func (r Ref[T]) Set(value T) {
	*r.store.Get(r.index) = value
}

func (r Ref[T]) Index() int {
	return r.index
}

// IsZero reports whether r was never bound to a store.
func (r Ref[T]) IsZero() bool {
	return r.store == nil
}
