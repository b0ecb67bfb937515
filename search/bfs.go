package search

import (
	"context"

	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/queue"
)

// BreadthFirst explores g from src in discovery order and returns the path
// with the fewest edges to dst. A node is marked visited when it is first
// enqueued, so each node enters the queue at most once. The result weight
// is the number of iterations, one per examined edge.
func BreadthFirst(ctx context.Context, g *graph.Graph, src, dst graph.NodeID, _ ...Option) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := newRunner(ctx, g, src, dst, BFS)
	fifo := queue.NewFIFO(64)

	r.settled.Visit(src)
	fifo.Push(src)

	for {
		node, ok := fifo.Pop()
		if !ok {
			return nil, ErrNotFound
		}
		if err := r.checkpoint(); err != nil {
			return nil, err
		}

		if node == dst {
			return r.result(float64(r.iterations)), nil
		}

		for _, next := range g.Successors(node) {
			r.iterations++
			if !r.settled.Visit(next) {
				continue
			}
			r.traverse(graph.EdgeID{From: node, To: next})
			r.prev[next] = node
			fifo.Push(next)
			r.activate(next)
		}
	}
}
