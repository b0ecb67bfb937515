package graphmaps_test

import (
	"context"
	"fmt"
	"log"

	graphmaps "github.com/HeNeos/graph-algorithms-in-maps"
	"github.com/HeNeos/graph-algorithms-in-maps/blobstore"
	"github.com/HeNeos/graph-algorithms-in-maps/graphio"
	"github.com/HeNeos/graph-algorithms-in-maps/results"
	"github.com/HeNeos/graph-algorithms-in-maps/testutil"
)

// Example demonstrates routing over a graph held in memory.
func Example() {
	ctx := context.Background()

	graphs := blobstore.NewMemoryStore()
	if _, err := graphio.NewWriter(graphs).Store(ctx, "diamond", testutil.Diamond()); err != nil {
		log.Fatal(err)
	}

	router := graphmaps.New(graphio.NewLoader(graphs), results.NewStore(blobstore.NewMemoryStore()))

	resp, err := router.Route(ctx, graphmaps.Request{
		Key:         "diamond",
		Source:      testutil.A,
		Destination: testutil.D,
		Algorithm:   "dijkstra",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %.2f h over graph %s\n", resp.Algorithm, resp.Weight, resp.GraphID)
	// Output: dijkstra: 0.03 h over graph diamond
}

// Example_summary demonstrates reading a stored solution back.
func Example_summary() {
	ctx := context.Background()

	graphs := blobstore.NewMemoryStore()
	paths := results.NewStore(blobstore.NewMemoryStore())
	g := testutil.Diamond()
	if _, err := graphio.NewWriter(graphs).Store(ctx, "diamond", g); err != nil {
		log.Fatal(err)
	}

	router := graphmaps.New(graphio.NewLoader(graphs), paths)
	resp, err := router.Route(ctx, graphmaps.Request{
		Key:         "diamond",
		Source:      testutil.A,
		Destination: testutil.D,
	})
	if err != nil {
		log.Fatal(err)
	}

	stored, err := paths.Get(ctx, resp.SolutionKey)
	if err != nil {
		log.Fatal(err)
	}
	sum, err := results.Summarize(g, resp.Source, resp.Destination, stored.Predecessors, stored.VisitedEdges, stored.ActiveEdges)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d hops, %.0f km, %s\n", sum.Hops, sum.DistanceKm, sum.FormatTravelTime())
	// Output: 2 hops, 1 km, 1 min 48 sec
}
