// Package search implements shortest-path searches over a road graph.
//
// Four algorithms share one result shape:
//
//   - BFS: fewest edges, FIFO exploration. Weight is the iteration count.
//   - Dijkstra: least free-flow travel time in hours.
//   - AStar: Dijkstra ordered by travel time plus a great-circle lower bound
//     on the remaining time. Same optimal weight as Dijkstra.
//   - AStarEnhanced: A* that prunes successors far from the destination.
//     Faster on large maps, but not guaranteed optimal.
//
// Every search is a plain sequential computation owned by the caller's
// goroutine. The context is polled periodically so a deadline aborts a long
// search; the partial state is discarded.
//
// An unreachable destination is reported as ErrNotFound. A graph that
// references nodes or edges it does not contain panics with a
// *graph.IntegrityError.
package search
