package search

import (
	"context"

	"github.com/HeNeos/graph-algorithms-in-maps/distance"
	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/queue"
)

// heuristic estimates the remaining travel time in hours from a node to the
// destination: straight-line distance over a speed no road exceeds.
type heuristic struct {
	lat, lon float64
	speed    float64
}

func newHeuristic(g *graph.Graph, dst graph.NodeID, speed float64) heuristic {
	if s := float64(g.MaxSpeed()); s > speed {
		speed = s
	}
	d := g.Node(dst)
	return heuristic{lat: d.Lat, lon: d.Lon, speed: speed}
}

// km returns the straight-line distance from n to the destination.
func (h heuristic) km(n graph.Node) float64 {
	return distance.Haversine(n.Lat, n.Lon, h.lat, h.lon)
}

func (h heuristic) hours(n graph.Node) float64 {
	return h.km(n) / h.speed
}

// AStarPath runs A* from src to dst. Frontier priority is the travel time so
// far plus the straight-line time to dst at the configured speed bound
// (DefaultAStarMaxSpeedKmh). The straight line is measured from the successor
// being pushed, not from the node being expanded.
// The reported weight is the travel time alone. Results carry no edge
// telemetry.
func AStarPath(ctx context.Context, g *graph.Graph, src, dst graph.NodeID, opts ...Option) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := applyOptions(DefaultAStarMaxSpeedKmh, opts)
	r := newRunner(ctx, g, src, dst, AStar)
	h := newHeuristic(g, dst, o.maxSpeedKmh)
	frontier := queue.NewFrontier(64)

	r.best[src] = 0
	frontier.Push(queue.State{Weight: h.hours(g.Node(src)), Node: src})

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

			if cand := w + e.TravelTime(); r.improve(s.Node, next, cand) {
				frontier.Push(queue.State{Weight: cand + h.hours(g.Node(next)), Node: next})
			}
		}
	}
}
