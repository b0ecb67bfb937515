// Package testutil provides graph fixtures and ground-truth helpers for
// tests and benchmarks.
//
// # Fixtures
//
//	g := testutil.Diamond()          // four-node scenario with a unique fastest route
//	g := testutil.Grid(10, 10)       // bidirectional grid
//	g := rng.RandomGraph(50, 3)      // random directed graph, 50 nodes, ~3 out-edges each
//
// Random graphs keep every edge at least as long as the straight line between
// its endpoints, so straight-line heuristics stay admissible.
//
// # Ground Truth
//
//	best, ok := testutil.BruteForce(g, src, dst)
package testutil
