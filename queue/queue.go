package queue

import (
	"container/heap"

	"github.com/HeNeos/graph-algorithms-in-maps/graph"
)

// Compile time check to ensure PriorityQueue satisfies the heap interface.
var _ heap.Interface = (*PriorityQueue)(nil)

// State is a frontier entry: a node and the priority it was pushed with.
type State struct {
	Weight float64
	Node   graph.NodeID
}

// Less orders states by weight ascending, then node id ascending.
func (s State) Less(other State) bool {
	if s.Weight != other.Weight {
		return s.Weight < other.Weight
	}
	return s.Node < other.Node
}

// PriorityQueue implements heap.Interface over States. Use Frontier unless
// the raw heap is needed.
type PriorityQueue struct {
	Items []State
}

// Len returns the number of elements in the priority queue.
func (pq *PriorityQueue) Len() int { return len(pq.Items) }

// Less reports whether the element with index i should sort before the element with index j.
func (pq *PriorityQueue) Less(i, j int) bool { return pq.Items[i].Less(pq.Items[j]) }

// Swap swaps the elements with indexes i and j.
func (pq *PriorityQueue) Swap(i, j int) { pq.Items[i], pq.Items[j] = pq.Items[j], pq.Items[i] }

// Push adds x to the priority queue.
func (pq *PriorityQueue) Push(x any) {
	pq.Items = append(pq.Items, x.(State))
}

// Pop removes and returns the last element of the backing slice.
func (pq *PriorityQueue) Pop() any {
	old := pq.Items
	n := len(old)
	item := old[n-1]
	pq.Items = old[:n-1]
	return item
}

// Frontier is a min-priority queue of search states. There is no
// decrease-key: a better weight for a node is pushed as a new entry and
// the stale one is skipped by the caller when popped.
type Frontier struct {
	pq PriorityQueue
}

// NewFrontier creates a frontier with room for capacity entries.
func NewFrontier(capacity int) *Frontier {
	return &Frontier{pq: PriorityQueue{Items: make([]State, 0, capacity)}}
}

// Push adds a state.
func (f *Frontier) Push(s State) {
	heap.Push(&f.pq, s)
}

// Pop removes and returns the smallest state. ok is false when empty.
func (f *Frontier) Pop() (State, bool) {
	if f.pq.Len() == 0 {
		return State{}, false
	}
	return heap.Pop(&f.pq).(State), true
}

// Peek returns the smallest state without removing it.
func (f *Frontier) Peek() (State, bool) {
	if f.pq.Len() == 0 {
		return State{}, false
	}
	return f.pq.Items[0], true
}

// Len returns the number of entries, stale ones included.
func (f *Frontier) Len() int { return f.pq.Len() }
