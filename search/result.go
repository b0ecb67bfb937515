package search

import (
	"slices"

	"github.com/HeNeos/graph-algorithms-in-maps/graph"
)

// Result is the outcome of a successful search.
type Result struct {
	Algorithm   Algorithm
	Source      graph.NodeID
	Destination graph.NodeID

	// Predecessors maps every reached node to the node it was reached from.
	// The source has no entry.
	Predecessors map[graph.NodeID]graph.NodeID

	// VisitedEdges lists traversed edges in traversal order. Nil for AStar.
	VisitedEdges []graph.EdgeID

	// ActiveEdges lists, in ascending order, the edges leaving frontier nodes
	// that had not been traversed when the search stopped. Nil for AStar.
	ActiveEdges []graph.EdgeID

	// Weight is the travel time in hours to the destination, or the
	// iteration count for BFS.
	Weight float64

	// Iterations counts examined edges.
	Iterations int
}

// HasTelemetry reports whether the result carries visited and active edges.
func (r *Result) HasTelemetry() bool { return r.Algorithm.Telemetry() }

// Path walks the predecessors back from the destination and returns the
// route from source to destination.
func (r *Result) Path() ([]graph.NodeID, error) {
	path := []graph.NodeID{r.Destination}
	cur := r.Destination
	for cur != r.Source {
		prev, ok := r.Predecessors[cur]
		if !ok || len(path) > len(r.Predecessors) {
			return nil, ErrBrokenPath
		}
		path = append(path, prev)
		cur = prev
	}
	slices.Reverse(path)
	return path, nil
}

// Hops returns the number of edges on the path, or -1 if the predecessor
// chain is broken.
func (r *Result) Hops() int {
	p, err := r.Path()
	if err != nil {
		return -1
	}
	return len(p) - 1
}

// PathEdges returns the edges along the path in travel order.
func (r *Result) PathEdges() ([]graph.EdgeID, error) {
	p, err := r.Path()
	if err != nil {
		return nil, err
	}
	edges := make([]graph.EdgeID, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		edges = append(edges, graph.EdgeID{From: p[i-1], To: p[i]})
	}
	return edges, nil
}
