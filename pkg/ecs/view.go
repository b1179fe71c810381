package ecs

import (
	"iter"

	"github.com/zeusync/aecs/pkg/component"
	"github.com/zeusync/aecs/pkg/entity"
)

// cursor walks the slot table in index order, stopping on live slots whose
// mask contains want. The end position is the registry's high-water mark.
//
// Creating or deleting entities, or assigning and unassigning a component the
// view filters on, while a cursor is in flight is undefined. Mutating payloads
// through the yielded pointers is fine.
type cursor[E entity.Integer] struct {
	r    *Registry[E]
	want component.Mask
	pos  int
}

func newCursor[E entity.Integer](r *Registry[E], want component.Mask, registered bool) cursor[E] {
	c := cursor[E]{r: r, want: want, pos: -1}
	if !registered {
		// A type nobody assigned yet cannot match any entity.
		c.pos = r.next
		return c
	}
	c.Next()
	return c
}

// Next advances to the following match, or to the end.
func (c *cursor[E]) Next() {
	if c.Done() {
		return
	}
	for c.pos++; c.pos < c.r.next; c.pos++ {
		s := &c.r.slots[c.pos]
		if entity.IsValid(s.id) && s.mask.Contains(c.want) {
			return
		}
	}
}

// Done reports whether the cursor reached the end.
func (c *cursor[E]) Done() bool {
	return c.pos >= c.r.next
}

// Position is the slot index the cursor rests on.
func (c *cursor[E]) Position() int {
	return c.pos
}

// Entity returns the current entity. The cursor must not be done.
func (c *cursor[E]) Entity() E {
	return c.r.slots[c.pos].id
}

func (c *cursor[E]) end() cursor[E] {
	return cursor[E]{r: c.r, want: c.want, pos: c.r.next}
}

func lookupAll(types *component.Types, ids ...func(*component.Types) (component.ID, bool)) (component.Mask, []component.ID, bool) {
	var mask component.Mask
	out := make([]component.ID, len(ids))
	for i, lookup := range ids {
		id, ok := lookup(types)
		if !ok {
			return 0, out, false
		}
		out[i] = id
		mask = mask.Set(id)
	}
	return mask, out, true
}

// View visits every live entity.
type View[E entity.Integer] struct {
	cursor[E]
}

func NewView[E entity.Integer](r *Registry[E]) *View[E] {
	return &View[E]{cursor: newCursor(r, 0, true)}
}

func (v *View[E]) End() *View[E] {
	return &View[E]{cursor: v.end()}
}

func (v *View[E]) Equal(o *View[E]) bool {
	return v.pos == o.pos
}

// All adapts the view to a range-over-func sequence.
func (v *View[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for ; !v.Done(); v.Next() {
			if !yield(v.Entity()) {
				return
			}
		}
	}
}

// View1 visits entities carrying A.
type View1[E entity.Integer, A any] struct {
	cursor[E]
	a component.ID
}

func NewView1[A any, E entity.Integer](r *Registry[E]) *View1[E, A] {
	mask, ids, ok := lookupAll(r.types, component.Lookup[A])
	return &View1[E, A]{cursor: newCursor(r, mask, ok), a: ids[0]}
}

// Get returns the current entity and its payload.
func (v *View1[E, A]) Get() (E, *A) {
	s := v.r.storage
	return v.Entity(), component.Get[A](s, v.a, v.pos)
}

func (v *View1[E, A]) End() *View1[E, A] {
	return &View1[E, A]{cursor: v.end(), a: v.a}
}

func (v *View1[E, A]) Equal(o *View1[E, A]) bool {
	return v.pos == o.pos
}

func (v *View1[E, A]) All() iter.Seq2[E, *A] {
	return func(yield func(E, *A) bool) {
		for ; !v.Done(); v.Next() {
			if !yield(v.Get()) {
				return
			}
		}
	}
}

// View2 visits entities carrying A and B.
type View2[E entity.Integer, A, B any] struct {
	cursor[E]
	a, b component.ID
}

func NewView2[A, B any, E entity.Integer](r *Registry[E]) *View2[E, A, B] {
	mask, ids, ok := lookupAll(r.types, component.Lookup[A], component.Lookup[B])
	return &View2[E, A, B]{cursor: newCursor(r, mask, ok), a: ids[0], b: ids[1]}
}

func (v *View2[E, A, B]) Get() (E, *A, *B) {
	s := v.r.storage
	return v.Entity(), component.Get[A](s, v.a, v.pos), component.Get[B](s, v.b, v.pos)
}

func (v *View2[E, A, B]) End() *View2[E, A, B] {
	return &View2[E, A, B]{cursor: v.end(), a: v.a, b: v.b}
}

func (v *View2[E, A, B]) Equal(o *View2[E, A, B]) bool {
	return v.pos == o.pos
}

// View3 visits entities carrying A, B and C.
type View3[E entity.Integer, A, B, C any] struct {
	cursor[E]
	a, b, c component.ID
}

func NewView3[A, B, C any, E entity.Integer](r *Registry[E]) *View3[E, A, B, C] {
	mask, ids, ok := lookupAll(r.types, component.Lookup[A], component.Lookup[B], component.Lookup[C])
	return &View3[E, A, B, C]{cursor: newCursor(r, mask, ok), a: ids[0], b: ids[1], c: ids[2]}
}

func (v *View3[E, A, B, C]) Get() (E, *A, *B, *C) {
	s := v.r.storage
	return v.Entity(),
		component.Get[A](s, v.a, v.pos),
		component.Get[B](s, v.b, v.pos),
		component.Get[C](s, v.c, v.pos)
}

func (v *View3[E, A, B, C]) End() *View3[E, A, B, C] {
	return &View3[E, A, B, C]{cursor: v.end(), a: v.a, b: v.b, c: v.c}
}

func (v *View3[E, A, B, C]) Equal(o *View3[E, A, B, C]) bool {
	return v.pos == o.pos
}

// View4 visits entities carrying A, B, C and D.
type View4[E entity.Integer, A, B, C, D any] struct {
	cursor[E]
	a, b, c, d component.ID
}

func NewView4[A, B, C, D any, E entity.Integer](r *Registry[E]) *View4[E, A, B, C, D] {
	mask, ids, ok := lookupAll(r.types,
		component.Lookup[A], component.Lookup[B], component.Lookup[C], component.Lookup[D])
	return &View4[E, A, B, C, D]{cursor: newCursor(r, mask, ok), a: ids[0], b: ids[1], c: ids[2], d: ids[3]}
}

func (v *View4[E, A, B, C, D]) Get() (E, *A, *B, *C, *D) {
	s := v.r.storage
	return v.Entity(),
		component.Get[A](s, v.a, v.pos),
		component.Get[B](s, v.b, v.pos),
		component.Get[C](s, v.c, v.pos),
		component.Get[D](s, v.d, v.pos)
}

func (v *View4[E, A, B, C, D]) End() *View4[E, A, B, C, D] {
	return &View4[E, A, B, C, D]{cursor: v.end(), a: v.a, b: v.b, c: v.c, d: v.d}
}

func (v *View4[E, A, B, C, D]) Equal(o *View4[E, A, B, C, D]) bool {
	return v.pos == o.pos
}

// ForEach calls fn for every live entity.
func ForEach[E entity.Integer](r *Registry[E], fn func(E)) {
	for v := NewView(r); !v.Done(); v.Next() {
		fn(v.Entity())
	}
}

// ForEach1 calls fn for every entity carrying A.
func ForEach1[A any, E entity.Integer](r *Registry[E], fn func(E, *A)) {
	for v := NewView1[A](r); !v.Done(); v.Next() {
		fn(v.Get())
	}
}

func ForEach2[A, B any, E entity.Integer](r *Registry[E], fn func(E, *A, *B)) {
	for v := NewView2[A, B](r); !v.Done(); v.Next() {
		fn(v.Get())
	}
}

func ForEach3[A, B, C any, E entity.Integer](r *Registry[E], fn func(E, *A, *B, *C)) {
	for v := NewView3[A, B, C](r); !v.Done(); v.Next() {
		fn(v.Get())
	}
}

func ForEach4[A, B, C, D any, E entity.Integer](r *Registry[E], fn func(E, *A, *B, *C, *D)) {
	for v := NewView4[A, B, C, D](r); !v.Done(); v.Next() {
		fn(v.Get())
	}
}
