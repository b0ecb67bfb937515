package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/HeNeos/graph-algorithms-in-maps/distance"
	"github.com/HeNeos/graph-algorithms-in-maps/graph"
)

// Diamond node ids.
const (
	A graph.NodeID = 1
	B graph.NodeID = 2
	C graph.NodeID = 3
	D graph.NodeID = 4
)

// DiamondWeight is the travel time of the fastest Diamond route A->C->D.
const DiamondWeight = 0.03

// Diamond returns the graph
//
//	A->B 1000 m @ 50 km/h, B->D 1000 m @ 50 km/h  (0.04 h)
//	A->C  500 m @ 25 km/h, C->D  500 m @ 50 km/h  (0.03 h)
func Diamond() *graph.Graph {
	b := graph.NewBuilder()
	must(b.AddNode(A, -12.000, -77.000))
	must(b.AddNode(B, -12.000, -76.994))
	must(b.AddNode(C, -12.003, -77.000))
	must(b.AddNode(D, -12.003, -76.997))
	must(b.AddEdge(A, B, 1000, 50))
	must(b.AddEdge(B, D, 1000, 50))
	must(b.AddEdge(A, C, 500, 25))
	must(b.AddEdge(C, D, 500, 50))
	return build(b)
}

// Grid returns a w x h grid with edges in both directions between
// horizontal and vertical neighbors. Node (x, y) has id y*w+x+1.
func Grid(w, h int) *graph.Graph {
	const step = 0.001
	b := graph.NewBuilder()
	id := func(x, y int) graph.NodeID { return graph.NodeID(y*w + x + 1) }

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			must(b.AddNode(id(x, y), -12+float64(y)*step, -77+float64(x)*step))
		}
	}
	link := func(u, v graph.NodeID) {
		must(b.AddEdge(u, v, 150, 50))
		must(b.AddEdge(v, u, 150, 50))
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x+1 < w {
				link(id(x, y), id(x+1, y))
			}
			if y+1 < h {
				link(id(x, y), id(x, y+1))
			}
		}
	}
	return build(b)
}

// Chain returns 1 -> 2 -> ... -> n with 100 m edges at 30 km/h.
func Chain(n int) *graph.Graph {
	b := graph.NewBuilder()
	for i := 1; i <= n; i++ {
		must(b.AddNode(graph.NodeID(i), 0, float64(i)*0.0005))
	}
	for i := 1; i < n; i++ {
		must(b.AddEdge(graph.NodeID(i), graph.NodeID(i+1), 100, 30))
	}
	return build(b)
}

// RNG wraps a seeded random source. It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

var speeds = []int{20, 30, 40, 50, 60, 80, 100}

// RandomGraph returns a directed graph with n nodes scattered over a few
// kilometers and about degree outgoing edges per node. Edge lengths are
// between 1 and 1.5 times the straight-line distance, plus one meter.
func (r *RNG) RandomGraph(n, degree int) *graph.Graph {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := graph.NewBuilder()
	lat := make([]float64, n)
	lon := make([]float64, n)
	for i := 0; i < n; i++ {
		lat[i] = -12 + r.rand.Float64()*0.03
		lon[i] = -77 + r.rand.Float64()*0.03
		must(b.AddNode(graph.NodeID(i+1), lat[i], lon[i]))
	}

	seen := make(map[graph.EdgeID]bool)
	for i := 0; i < n; i++ {
		for k := 0; k < degree; k++ {
			j := r.rand.Intn(n)
			if j == i {
				continue
			}
			id := graph.EdgeID{From: graph.NodeID(i + 1), To: graph.NodeID(j + 1)}
			if seen[id] {
				continue
			}
			seen[id] = true

			straight := distance.Haversine(lat[i], lon[i], lat[j], lon[j]) * 1000
			length := straight*(1+r.rand.Float64()*0.5) + 1
			must(b.AddEdge(id.From, id.To, length, speeds[r.rand.Intn(len(speeds))]))
		}
	}
	return build(b)
}

// Best is the ground truth between two nodes.
type Best struct {
	Weight float64 // least travel time in hours
	Hops   int     // fewest edges
}

// BruteForce enumerates every simple path from src to dst. It is exponential
// and meant for graphs of a dozen nodes or fewer. ok is false when dst is
// unreachable.
func BruteForce(g *graph.Graph, src, dst graph.NodeID) (best Best, ok bool) {
	best = Best{Weight: math.Inf(1), Hops: math.MaxInt}
	onPath := map[graph.NodeID]bool{src: true}

	var walk func(u graph.NodeID, w float64, hops int)
	walk = func(u graph.NodeID, w float64, hops int) {
		if u == dst {
			ok = true
			best.Weight = math.Min(best.Weight, w)
			best.Hops = min(best.Hops, hops)
			return
		}
		for _, v := range g.Successors(u) {
			if onPath[v] {
				continue
			}
			onPath[v] = true
			walk(v, w+g.Edge(u, v).TravelTime(), hops+1)
			onPath[v] = false
		}
	}
	walk(src, 0, 0)
	return best, ok
}

// PathWeight sums the travel time along path.
func PathWeight(g *graph.Graph, path []graph.NodeID) float64 {
	w := 0.0
	for i := 1; i < len(path); i++ {
		w += g.Edge(path[i-1], path[i]).TravelTime()
	}
	return w
}

func build(b *graph.Builder) *graph.Graph {
	g, err := b.Build()
	must(err)
	return g
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
