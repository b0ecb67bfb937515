package search

import (
	"context"
	"math"
	"slices"

	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/internal/visited"
)

// runner holds the state of one search. It is never shared.
type runner struct {
	ctx       context.Context
	g         *graph.Graph
	algorithm Algorithm
	src       graph.NodeID
	dst       graph.NodeID

	best    map[graph.NodeID]float64      // best known weight from src
	prev    map[graph.NodeID]graph.NodeID // predecessor on the best known path
	settled *visited.Set

	telemetry    bool
	visitedEdges []graph.EdgeID
	active       map[graph.EdgeID]struct{}

	iterations int
	pops       int
}

func newRunner(ctx context.Context, g *graph.Graph, src, dst graph.NodeID, a Algorithm) *runner {
	// Both endpoints must exist; Node panics otherwise.
	g.Node(src)
	g.Node(dst)

	r := &runner{
		ctx:       ctx,
		g:         g,
		algorithm: a,
		src:       src,
		dst:       dst,
		best:      make(map[graph.NodeID]float64),
		prev:      make(map[graph.NodeID]graph.NodeID),
		settled:   visited.New(),
		telemetry: a.Telemetry(),
	}
	if r.telemetry {
		r.active = make(map[graph.EdgeID]struct{})
	}
	return r
}

// checkpoint polls the context every cancelCheckInterval pops.
func (r *runner) checkpoint() error {
	r.pops++
	if r.pops%cancelCheckInterval == 0 {
		return r.ctx.Err()
	}
	return nil
}

func (r *runner) weight(id graph.NodeID) float64 {
	if w, ok := r.best[id]; ok {
		return w
	}
	return math.Inf(1)
}

// improve records w as the weight of to, reached from from, if it is
// strictly better than the best known weight.
func (r *runner) improve(from, to graph.NodeID, w float64) bool {
	if w >= r.weight(to) {
		return false
	}
	r.best[to] = w
	r.prev[to] = from
	return true
}

// traverse records e as visited and no longer active.
func (r *runner) traverse(e graph.EdgeID) {
	if !r.telemetry {
		return
	}
	r.visitedEdges = append(r.visitedEdges, e)
	delete(r.active, e)
}

// activate marks the edges leaving id as part of the search boundary.
func (r *runner) activate(id graph.NodeID) {
	if !r.telemetry {
		return
	}
	for _, next := range r.g.Successors(id) {
		r.active[graph.EdgeID{From: id, To: next}] = struct{}{}
	}
}

func (r *runner) result(weight float64) *Result {
	res := &Result{
		Algorithm:    r.algorithm,
		Source:       r.src,
		Destination:  r.dst,
		Predecessors: r.prev,
		Weight:       weight,
		Iterations:   r.iterations,
	}
	if r.telemetry {
		res.VisitedEdges = r.visitedEdges
		if res.VisitedEdges == nil {
			res.VisitedEdges = []graph.EdgeID{}
		}
		res.ActiveEdges = make([]graph.EdgeID, 0, len(r.active))
		for e := range r.active {
			res.ActiveEdges = append(res.ActiveEdges, e)
		}
		slices.SortFunc(res.ActiveEdges, graph.EdgeID.Compare)
	}
	return res
}
