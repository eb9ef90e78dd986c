package queue

import "fmt"

const initialCapacity = 8

// Queue is a FIFO queue of pending items kept on a
// ring buffer that grows when it is full.
//
// The zero value is an empty queue ready to use.
type Queue[T any] struct {
	pending []T
	head    int
	tail    int
	count   int
}

// New returns an empty queue
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Push takes an item and adds it at the end of the queue.
func (q *Queue[T]) Push(t T) {
	if q.count == len(q.pending) {
		q.reorder()
	}
	q.pending[q.tail] = t
	q.tail = (q.tail + 1) % len(q.pending)
	q.count++
}

// Pull removes the item at the head of the queue and
// returns it along with true, or the zero value and
// false if the queue is empty.
func (q *Queue[T]) Pull() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	t := q.pending[q.head]
	q.pending[q.head] = zero
	q.head = (q.head + 1) % len(q.pending)
	q.count--
	return t, true
}

// Len returns the number of pending items.
func (q *Queue[T]) Len() int {
	return q.count
}

func (q *Queue[T]) String() string {
	return fmt.Sprintf("{Queue pending: %d head:%d tail:%d}", q.count, q.head, q.tail)
}

// reorder moves the pending items, which wrap around the
// end of the full buffer, to the start of a buffer twice
// as big.
func (q *Queue[T]) reorder() {
	size := 2 * len(q.pending)
	if size == 0 {
		size = initialCapacity
	}
	pending := make([]T, size)
	n := copy(pending, q.pending[q.head:])
	copy(pending[n:], q.pending[:q.head])
	q.pending = pending
	q.head = 0
	q.tail = q.count
}
