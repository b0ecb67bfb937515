package search

import (
	"context"

	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/queue"
)

// ShortestPath runs Dijkstra's algorithm from src to dst, weighting each edge
// by its free-flow travel time. A node is settled the first time it is
// popped; later entries for it are stale and skipped.
func ShortestPath(ctx context.Context, g *graph.Graph, src, dst graph.NodeID, _ ...Option) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := newRunner(ctx, g, src, dst, Dijkstra)
	frontier := queue.NewFrontier(64)

	r.best[src] = 0
	frontier.Push(queue.State{Weight: 0, Node: src})

	for {
		s, ok := frontier.Pop()
		if !ok {
			return nil, ErrNotFound
		}
		if err := r.checkpoint(); err != nil {
			return nil, err
		}

		w := r.weight(s.Node)
		if s.Node == dst {
			return r.result(w), nil
		}
		if !r.settled.Visit(s.Node) {
			continue
		}

		for _, next := range g.Successors(s.Node) {
			r.iterations++
			e := g.Edge(s.Node, next)
			r.traverse(e.ID)

			if cand := w + e.TravelTime(); r.improve(s.Node, next, cand) {
				frontier.Push(queue.State{Weight: cand, Node: next})
				r.activate(next)
			}
		}
	}
}
