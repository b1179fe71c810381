package sequence

// Queue is a first-in-first-out queue backed by a growable ring buffer.
// It is not safe for concurrent use.
type Queue[T any] struct {
	items []T
	head  int
	size  int
}

func NewQueue[T any](capacity int) *Queue[T] {
	return &Queue[T]{items: make([]T, max(capacity, 0))}
}

func (q *Queue[T]) Enqueue(value T) {
	if q.size == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.size)%len(q.items)] = value
	q.size++
}

func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}
	value := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return value, true
}

func (q *Queue[T]) Peek() (T, bool) {
	if q.size == 0 {
		var zero T
		return zero, false
	}
	return q.items[q.head], true
}

func (q *Queue[T]) Len() int {
	return q.size
}

func (q *Queue[T]) IsEmpty() bool {
	return q.size == 0
}

// Items returns the queued values in dequeue order.
func (q *Queue[T]) Items() *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			for i := 0; i < q.size; i++ {
				if !yield(q.items[(q.head+i)%len(q.items)]) {
					return
				}
			}
		},
	}
}

// grow doubles the buffer and unwraps it so head lands at zero.
func (q *Queue[T]) grow() {
	items := make([]T, max(16, 2*len(q.items)))
	for i := 0; i < q.size; i++ {
		items[i] = q.items[(q.head+i)%len(q.items)]
	}
	q.items = items
	q.head = 0
}
