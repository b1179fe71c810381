package sequence

import "iter"

// Iterator is a lazy, chainable wrapper around iter.Seq. Chained stages do no
// work until a terminal method (Collect, Count, First, ...) pulls values.
type Iterator[T any] struct {
	seq iter.Seq[T]
}

// From creates a new Iterator from a slice of T.
func From[T any](data []T) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			for _, v := range data {
				if !yield(v) {
					return
				}
			}
		},
	}
}

// FromSeq wraps an existing sequence.
func FromSeq[T any](seq iter.Seq[T]) *Iterator[T] {
	return &Iterator[T]{seq: seq}
}

// Seq returns the underlying sequence function for the iterator, suitable for
// range-over-func.
func (i *Iterator[T]) Seq() iter.Seq[T] {
	return i.seq
}

// Pull converts the iterator into a next/stop pair.
func (i *Iterator[T]) Pull() (next func() (T, bool), stop func()) {
	return iter.Pull(i.Seq())
}

// Collect exhausts the iterator and returns a slice of all elements.
func (i *Iterator[T]) Collect() []T {
	var out []T
	for v := range i.seq {
		out = append(out, v)
	}
	return out
}

// Filter returns a new Iterator containing only elements that satisfy the predicate.
func (i *Iterator[T]) Filter(pred func(T) bool) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			for v := range i.seq {
				if pred(v) && !yield(v) {
					return
				}
			}
		},
	}
}

// Take returns a new Iterator with the first n elements.
func (i *Iterator[T]) Take(n int) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			if n <= 0 {
				return
			}
			count := 0
			for v := range i.seq {
				if !yield(v) {
					return
				}
				count++
				if count == n {
					return
				}
			}
		},
	}
}

// Drop returns a new Iterator skipping the first n elements.
func (i *Iterator[T]) Drop(n int) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			count := 0
			for v := range i.seq {
				if count < n {
					count++
					continue
				}
				if !yield(v) {
					return
				}
			}
		},
	}
}

// ForEach applies action to every element.
func (i *Iterator[T]) ForEach(action func(T)) {
	for v := range i.seq {
		action(v)
	}
}

// Find returns the first element matching the predicate, or false if not found.
func (i *Iterator[T]) Find(pred func(T) bool) (T, bool) {
	for v := range i.seq {
		if pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// First returns the first element, or false if empty.
func (i *Iterator[T]) First() (T, bool) {
	return i.Find(func(T) bool { return true })
}

// Any returns true if any element matches the predicate.
func (i *Iterator[T]) Any(pred func(T) bool) bool {
	_, ok := i.Find(pred)
	return ok
}

// Count returns the number of elements in the iterator.
func (i *Iterator[T]) Count() int {
	count := 0
	for range i.seq {
		count++
	}
	return count
}
