package search

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// toGonum copies g into a gonum weighted digraph with travel time weights.
func toGonum(g *graph.Graph) *simple.WeightedDirectedGraph {
	wg := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for _, id := range g.Nodes() {
		wg.AddNode(simple.Node(id))
	}
	for _, id := range g.Edges() {
		e := g.Edge(id.From, id.To)
		wg.SetWeightedEdge(wg.NewWeightedEdge(simple.Node(id.From), simple.Node(id.To), e.TravelTime()))
	}
	return wg
}

func TestMatchesGonumDijkstra(t *testing.T) {
	for _, seed := range []int64{3, 17, 4711} {
		g := testutil.NewRNG(seed).RandomGraph(150, 3)
		wg := toGonum(g)

		src := g.Nodes()[0]
		shortest := path.DijkstraFrom(simple.Node(src), wg)

		for _, dst := range g.Nodes() {
			want := shortest.WeightTo(int64(dst))

			for _, alg := range []Algorithm{Dijkstra, AStar} {
				res, err := Run(context.Background(), g, src, dst, alg)
				if math.IsInf(want, 1) {
					require.True(t, errors.Is(err, ErrNotFound), "seed=%d dst=%d %s", seed, dst, alg)
					continue
				}
				require.NoError(t, err)
				assert.InDelta(t, want, res.Weight, 1e-9, "seed=%d dst=%d %s", seed, dst, alg)
			}
		}
	}
}

func BenchmarkSearch(b *testing.B) {
	g := testutil.Grid(100, 100)
	ctx := context.Background()

	for _, alg := range Algorithms() {
		b.Run(alg.String(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Run(ctx, g, 1, 10000, alg); err != nil && !errors.Is(err, ErrNotFound) {
					b.Fatal(err)
				}
			}
		})
	}
}
