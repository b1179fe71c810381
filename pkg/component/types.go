package component

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// MaxTypes is the number of distinct component types a single Types can hold.
// It equals the width of Mask.
const MaxTypes = 64

// ID is the dense identifier assigned to a component type. It doubles as the
// bit position of that type in a Mask.
type ID uint8

// Types assigns dense IDs to component types, first use wins. IDs are stable
// for the lifetime of the Types value.
//
// Registries own a private Types unless one is injected, so two registries do
// not compete for the same 64 slots by accident. Sharing one Types between
// registries is an explicit choice; Default returns a process-wide instance
// for callers that want it.
type Types struct {
	mu    sync.RWMutex
	ids   map[reflect.Type]ID
	types []reflect.Type
}

var defaultTypes = NewTypes()

// NewTypes returns an empty id space.
func NewTypes() *Types {
	return &Types{
		ids:   make(map[reflect.Type]ID, MaxTypes),
		types: make([]reflect.Type, 0, MaxTypes),
	}
}

// Default returns the process-wide Types.
func Default() *Types {
	return defaultTypes
}

// TypeID returns the ID of T in t, registering T on first use.
// It panics with ErrTooManyTypes once MaxTypes types are registered.
func TypeID[T any](t *Types) ID {
	id, err := TryTypeID[T](t)
	if err != nil {
		panic(err)
	}
	return id
}

// TryTypeID is TypeID returning an error instead of panicking.
func TryTypeID[T any](t *Types) (ID, error) {
	return t.register(reflect.TypeFor[T]())
}

// Lookup returns the ID of T without registering it.
func Lookup[T any](t *Types) (ID, bool) {
	return t.lookup(reflect.TypeFor[T]())
}

func (t *Types) lookup(typ reflect.Type) (ID, bool) {
	t.mu.RLock()
	id, ok := t.ids[typ]
	t.mu.RUnlock()
	return id, ok
}

func (t *Types) register(typ reflect.Type) (ID, error) {
	if id, ok := t.lookup(typ); ok {
		return id, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Another goroutine sharing this Types may have won the race.
	if id, ok := t.ids[typ]; ok {
		return id, nil
	}
	if len(t.types) >= MaxTypes {
		return 0, fmt.Errorf("%w: cannot register %s, %d types in use", ErrTooManyTypes, typ, MaxTypes)
	}

	id := ID(len(t.types))
	t.ids[typ] = id
	t.types = append(t.types, typ)
	return id, nil
}

// Len returns the number of registered types.
func (t *Types) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.types)
}

// Type returns the reflect.Type registered under id, or nil.
func (t *Types) Type(id ID) reflect.Type {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(id) >= len(t.types) {
		return nil
	}
	return t.types[id]
}

// Name returns a printable name for id.
func (t *Types) Name(id ID) string {
	if typ := t.Type(id); typ != nil {
		return typ.String()
	}
	return fmt.Sprintf("component#%d", id)
}

// Fingerprint hashes the registered type names in ID order.
func (t *Types) Fingerprint() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	h := xxhash.New()
	for _, typ := range t.types {
		_, _ = h.WriteString(typ.PkgPath())
		_, _ = h.WriteString(".")
		_, _ = h.WriteString(typ.String())
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// Compatible reports whether a and b assign the same IDs to the same types.
func Compatible(a, b *Types) bool {
	if a == b {
		return true
	}
	return a.Len() == b.Len() && a.Fingerprint() == b.Fingerprint()
}
