package queue

import "github.com/HeNeos/graph-algorithms-in-maps/graph"

// FIFO is a first-in first-out queue of node ids backed by a slice.
type FIFO struct {
	items []graph.NodeID
	head  int
}

// NewFIFO creates a queue with room for capacity ids.
func NewFIFO(capacity int) *FIFO {
	return &FIFO{items: make([]graph.NodeID, 0, capacity)}
}

// Push appends id to the back of the queue.
func (q *FIFO) Push(id graph.NodeID) {
	q.items = append(q.items, id)
}

// Pop removes and returns the front of the queue. ok is false when empty.
func (q *FIFO) Pop() (graph.NodeID, bool) {
	if q.head == len(q.items) {
		return 0, false
	}
	id := q.items[q.head]
	q.head++

	// Reclaim the consumed prefix once it dominates the buffer.
	if q.head > 64 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	return id, true
}

// Len returns the number of queued ids.
func (q *FIFO) Len() int { return len(q.items) - q.head }
