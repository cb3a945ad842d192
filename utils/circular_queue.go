package utils

import (
	"iter"

	"github.com/KweezyCode/NoCheatPlus/assert"
	"github.com/KweezyCode/NoCheatPlus/oerror"
)

// CircularQueue is a fixed capacity ring buffer. Appending to a full queue overwrites the oldest element.
// It is not safe for concurrent use.
type CircularQueue[T any] struct {
	items []T
	head  int
	size  int
}

// NewCircularQueue returns an empty queue holding at most capacity elements.
func NewCircularQueue[T any](capacity int) *CircularQueue[T] {
	assert.IsTrue(capacity > 0, "circular queue capacity must be positive (got %d)", capacity)
	return &CircularQueue[T]{items: make([]T, capacity)}
}

// Get returns the element at logical position index (0 = oldest).
func (q *CircularQueue[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 || index >= q.size {
		return zero, oerror.IndexOutOfRange(index, q.size)
	}
	return q.items[(q.head+index)%len(q.items)], nil
}

// Newest returns the element index positions before the newest one (0 = newest).
func (q *CircularQueue[T]) Newest(index int) (T, error) {
	return q.Get(q.size - 1 - index)
}

// Set sets the element at logical position index (0 = oldest).
func (q *CircularQueue[T]) Set(index int, item T) error {
	if index < 0 || index >= q.size {
		return oerror.IndexOutOfRange(index, q.size)
	}
	q.items[(q.head+index)%len(q.items)] = item
	return nil
}

// Ptr returns a pointer to the element at logical position index (0 = oldest). The pointer is invalidated by
// the next Append.
func (q *CircularQueue[T]) Ptr(index int) (*T, error) {
	if index < 0 || index >= q.size {
		return nil, oerror.IndexOutOfRange(index, q.size)
	}
	return &q.items[(q.head+index)%len(q.items)], nil
}

// Iter yields the elements from newest to oldest.
func (q *CircularQueue[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := q.size - 1; index >= 0; index-- {
			if !yield(q.items[(q.head+index)%len(q.items)]) {
				return
			}
		}
	}
}

// Len returns the amount of elements in the queue.
func (q *CircularQueue[T]) Len() int {
	return q.size
}

// Cap returns the maximum number of elements the queue can hold.
func (q *CircularQueue[T]) Cap() int {
	return len(q.items)
}

// Pop removes and returns the oldest element. The boolean ok is false if the queue is empty.
func (q *CircularQueue[T]) Pop() (item T, ok bool) {
	if q.size == 0 {
		return item, false
	}
	var zero T
	item = q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return item, true
}

// Append appends an item, evicting the oldest element if the queue is full. It reports whether an element
// was evicted.
func (q *CircularQueue[T]) Append(item T) (evicted bool) {
	tail := (q.head + q.size) % len(q.items)
	q.items[tail] = item
	if q.size == len(q.items) {
		// Buffer is full, the oldest element located at head was just overwritten.
		q.head = (q.head + 1) % len(q.items)
		return true
	}
	q.size++
	return false
}

// Clear removes every element.
func (q *CircularQueue[T]) Clear() {
	clear(q.items)
	q.head, q.size = 0, 0
}
