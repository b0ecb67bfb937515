// Package graphmaps computes shortest routes over stored road networks.
//
// A Router ties the pieces together: it loads a graph through a
// graphio.Source, runs one of the search algorithms (BFS, Dijkstra, A* or
// enhanced A*) and persists the solution through a results.Sink under a new,
// time-ordered solution key.
//
// # Quick Start
//
//	ctx := context.Background()
//	graphs := blobstore.NewLocalStore("./graphs")
//	paths := blobstore.NewLocalStore("./paths")
//
//	router := graphmaps.New(
//		graphio.NewCachedSource(graphio.NewLoader(graphs), 8, nil),
//		results.NewStore(paths),
//		graphmaps.WithLogger(graphmaps.NewJSONLogger(slog.LevelInfo)),
//	)
//
//	resp, err := router.Route(ctx, graphmaps.Request{
//		Key:         "lima",
//		Source:      1,
//		Destination: 42,
//		Algorithm:   "astar",
//	})
//
// # Storage Layout
//
// A graph named key is stored as two JSON blobs, nodes-<key>.json and
// edges-<key>.json. A solution is stored as path-<key>.json (predecessor
// map), visited-<key>.json and active-<key>.json (search telemetry, when the
// algorithm records it) and route-<key>.geojson.
//
// # Errors
//
// Route failures match one of ErrInvalidRequest, ErrGraphNotFound,
// ErrUnknownNode, ErrNoRoute or ErrCorruptGraph with errors.Is.
//
// # Observability
//
// Logging uses log/slog through Logger. Metrics are reported to a
// MetricsCollector (see metrics/prometheus). Each route opens an
// OpenTelemetry span with child spans for load, search and persist.
package graphmaps
