// Package generic wraps untyped standard containers with typed APIs.
package generic

import "sync"

// Pool is a typed sync.Pool. Values put back are passed through the reset
// hook first, if one is set.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T) T
}

func NewPool[T any](generate func() T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return generate()
			},
		},
	}
}

// WithReset installs reset and returns p.
func (p *Pool[T]) WithReset(reset func(T) T) *Pool[T] {
	p.reset = reset
	return p
}

func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(value T) {
	if p.reset != nil {
		value = p.reset(value)
	}
	p.pool.Put(value)
}

// NewSlicePool pools slice buffers of the given starting capacity. Buffers
// come back empty.
func NewSlicePool[T any](capacity int) *Pool[*[]T] {
	return NewPool(func() *[]T {
		s := make([]T, 0, capacity)
		return &s
	}).WithReset(func(s *[]T) *[]T {
		clear(*s)
		*s = (*s)[:0]
		return s
	})
}
