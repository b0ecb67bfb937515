package search

import (
	"context"
	"math"

	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/queue"
)

// EnhancedAStarPath runs A* with corridor pruning. The search keeps
// bestDist, a bound on the straight-line distance to dst among expanded
// successors. Once bestDist is finite, a successor farther from dst than
// pruneFactor*bestDist is not relaxed. After each expansion bestDist is
// tightened to the largest distance among that expansion's improved
// successors.
//
// Pruned nodes may lie on the optimal route, so the weight is an upper
// bound on the optimum and the destination may be reported unreachable.
func EnhancedAStarPath(ctx context.Context, g *graph.Graph, src, dst graph.NodeID, opts ...Option) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := applyOptions(DefaultEnhancedMaxSpeedKmh, opts)
	r := newRunner(ctx, g, src, dst, AStarEnhanced)
	h := newHeuristic(g, dst, o.maxSpeedKmh)
	frontier := queue.NewFrontier(64)

	direct := h.km(g.Node(src))
	bestDist := math.Inf(1)

	r.best[src] = 0
	frontier.Push(queue.State{Weight: direct / h.speed, Node: src})

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

		levelMax := math.Inf(1)
		for _, next := range g.Successors(s.Node) {
			r.iterations++
			e := g.Edge(s.Node, next)
			r.traverse(e.ID)

			cand := w + e.TravelTime()
			if cand >= r.weight(next) {
				continue
			}

			nextNode := g.Node(next)
			km := h.km(nextNode)
			if math.IsInf(levelMax, 1) {
				levelMax = km
			} else {
				levelMax = math.Max(levelMax, km)
			}

			if !math.IsInf(bestDist, 1) {
				if km > o.pruneFactor*bestDist {
					continue
				}
				bestDist = math.Min(direct, km)
			}

			r.improve(s.Node, next, cand)
			frontier.Push(queue.State{Weight: cand + km/h.speed, Node: next})
			r.activate(next)
		}

		if !math.IsInf(levelMax, 1) {
			bestDist = math.Min(bestDist, levelMax)
		}
	}
}
