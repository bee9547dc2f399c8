// Package queue implements the three FIFOs the scheduler packs from: expedited, normal, and delayed.
// Each is a plain queue with no reordering and no primitive for draining across queues — the scheduler
// alone decides which queue to consult and when.
package queue

import (
	"github.com/OperatorFoundation/peersend/message"
)

// Fifo is a minimal first-in-first-out queue. It never reorders its contents.
type Fifo[T any] struct {
	items []T
}

// PushBack appends v to the end of the queue.
func (f *Fifo[T]) PushBack(v T) {
	f.items = append(f.items, v)
}

// Front returns the item at the head of the queue. The caller must check Empty first.
func (f *Fifo[T]) Front() T {
	return f.items[0]
}

// PopFront removes the item at the head of the queue.
func (f *Fifo[T]) PopFront() {
	// Clear the slot so PopFront does not keep a popped message's backing memory reachable.
	var zero T
	f.items[0] = zero
	f.items = f.items[1:]
}

// Empty reports whether the queue holds no items.
func (f *Fifo[T]) Empty() bool {
	return len(f.items) == 0
}

// Len reports the number of queued items.
func (f *Fifo[T]) Len() int {
	return len(f.items)
}

// Queues owns the three priority FIFOs for a single peer's send scheduler.
type Queues struct {
	Expedited Fifo[message.Message]
	Normal    Fifo[message.Message]
	Delayed   Fifo[Delayed]
}
