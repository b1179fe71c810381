package ecs

import (
	"fmt"
	"reflect"

	"github.com/zeusync/aecs/pkg/component"
	"github.com/zeusync/aecs/pkg/entity"
	"github.com/zeusync/aecs/pkg/events"
)

// Assign attaches value as e's T component and returns a pointer to the stored
// copy. e must be alive and must not already carry T.
func Assign[T any, E entity.Integer](r *Registry[E], e E, value T) *T {
	id := component.TypeID[T](r.types)
	if AssertionsEnabled {
		if !r.Alive(e) {
			violation(ErrDeadEntity, "assign %s to %s", r.types.Name(id), describe(e))
		}
		if r.mask(e).Has(id) {
			violation(ErrComponentExists, "assign %s to %s", r.types.Name(id), describe(e))
		}
	}
	return assign(r, e, id, value)
}

// TryAssign is Assign with checked preconditions.
func TryAssign[T any, E entity.Integer](r *Registry[E], e E, value T) (*T, error) {
	id, err := component.TryTypeID[T](r.types)
	if err != nil {
		return nil, err
	}
	if !r.Alive(e) {
		return nil, fmt.Errorf("%w: assign %s to %s", ErrDeadEntity, r.types.Name(id), describe(e))
	}
	if r.mask(e).Has(id) {
		return nil, fmt.Errorf("%w: assign %s to %s", ErrComponentExists, r.types.Name(id), describe(e))
	}
	return assign(r, e, id, value), nil
}

func assign[T any, E entity.Integer](r *Registry[E], e E, id component.ID, value T) *T {
	index := entity.Index(e)
	p := component.Insert(r.storage, id, int(index), value)
	r.slots[index].mask = r.slots[index].mask.Set(id)
	r.publishComponent(events.ComponentAssigned, e, id)
	return p
}

// Unassign detaches e's T component and resets its payload. e must be alive
// and must carry T.
func Unassign[T any, E entity.Integer](r *Registry[E], e E) {
	id, ok := component.Lookup[T](r.types)
	if AssertionsEnabled && (!ok || !Has[T](r, e)) {
		missing(r, e, id, ok, "unassign")
	}
	unassign[T](r, e, id)
}

// TryUnassign is Unassign with checked preconditions.
func TryUnassign[T any, E entity.Integer](r *Registry[E], e E) error {
	id, ok := component.Lookup[T](r.types)
	if err := check[T](r, e, id, ok, "unassign"); err != nil {
		return err
	}
	unassign[T](r, e, id)
	return nil
}

func unassign[T any, E entity.Integer](r *Registry[E], e E, id component.ID) {
	index := entity.Index(e)
	r.slots[index].mask = r.slots[index].mask.Clear(id)
	component.Destroy[T](r.storage, id, int(index))
	r.publishComponent(events.ComponentUnassigned, e, id)
}

// Get returns e's T component. e must be alive and must carry T. The pointer
// is valid until the next Assign of T on r.
func Get[T any, E entity.Integer](r *Registry[E], e E) *T {
	id, ok := component.Lookup[T](r.types)
	if AssertionsEnabled && (!ok || !Has[T](r, e)) {
		missing(r, e, id, ok, "get")
	}
	return component.Get[T](r.storage, id, int(entity.Index(e)))
}

// TryGet is Get with checked preconditions.
func TryGet[T any, E entity.Integer](r *Registry[E], e E) (*T, error) {
	id, ok := component.Lookup[T](r.types)
	if err := check[T](r, e, id, ok, "get"); err != nil {
		return nil, err
	}
	return component.Get[T](r.storage, id, int(entity.Index(e))), nil
}

// Has reports whether e is alive and carries T. It never registers T.
func Has[T any, E entity.Integer](r *Registry[E], e E) bool {
	id, ok := component.Lookup[T](r.types)
	return ok && r.Alive(e) && r.mask(e).Has(id)
}

// RefTo returns a handle to e's T component that stays valid across store
// growth, unlike the pointer from Get.
func RefTo[T any, E entity.Integer](r *Registry[E], e E) component.Ref[T] {
	id, ok := component.Lookup[T](r.types)
	if AssertionsEnabled && (!ok || !Has[T](r, e)) {
		missing(r, e, id, ok, "ref")
	}
	store, _ := component.StoreOf[T](r.storage, id)
	return store.Ref(int(entity.Index(e)))
}

// Mask returns the component set of e, or zero when e is not alive.
func (r *Registry[E]) Mask(e E) component.Mask {
	if !r.Alive(e) {
		return 0
	}
	return r.mask(e)
}

func check[T any, E entity.Integer](r *Registry[E], e E, id component.ID, registered bool, op string) error {
	switch {
	case !r.Alive(e):
		return fmt.Errorf("%w: %s %s", ErrDeadEntity, op, describe(e))
	case !registered:
		return fmt.Errorf("%w: %s %s on %s: %w", ErrComponentMissing, op, typeName[T](), describe(e), component.ErrUnknownType)
	case !r.mask(e).Has(id):
		return fmt.Errorf("%w: %s %s on %s", ErrComponentMissing, op, r.types.Name(id), describe(e))
	}
	return nil
}

func missing[E entity.Integer](r *Registry[E], e E, id component.ID, registered bool, op string) {
	if !r.Alive(e) {
		violation(ErrDeadEntity, "%s %s", op, describe(e))
	}
	name := "unregistered component"
	if registered {
		name = r.types.Name(id)
	}
	violation(ErrComponentMissing, "%s %s on %s", op, name, describe(e))
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
