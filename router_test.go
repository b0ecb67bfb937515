package graphmaps

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HeNeos/graph-algorithms-in-maps/blobstore"
	"github.com/HeNeos/graph-algorithms-in-maps/catalog"
	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/graphio"
	"github.com/HeNeos/graph-algorithms-in-maps/resource"
	"github.com/HeNeos/graph-algorithms-in-maps/results"
	"github.com/HeNeos/graph-algorithms-in-maps/search"
	"github.com/HeNeos/graph-algorithms-in-maps/testutil"
)

type fixture struct {
	graphs  *blobstore.MemoryStore
	paths   *blobstore.MemoryStore
	results *results.Store
	metrics *BasicMetricsCollector
	router  *Router
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	ctx := context.Background()
	f := &fixture{
		graphs:  blobstore.NewMemoryStore(),
		paths:   blobstore.NewMemoryStore(),
		metrics: &BasicMetricsCollector{},
	}
	_, err := graphio.NewWriter(f.graphs).Store(ctx, "diamond", testutil.Diamond())
	require.NoError(t, err)

	f.results = results.NewStore(f.paths)
	opts = append([]Option{WithMetricsCollector(f.metrics)}, opts...)
	f.router = New(graphio.NewLoader(f.graphs), f.results, opts...)
	return f
}

func TestRouter_Route(t *testing.T) {
	tests := []struct {
		algorithm string
		expected  string
		weight    float64
		blobs     int
	}{
		{"dijkstra", "dijkstra", testutil.DiamondWeight, 4},
		{"a_star", "astar", testutil.DiamondWeight, 2},
		{"astar_enhanced", "astar_enhanced", testutil.DiamondWeight, 4},
		{"bfs", "bfs", 4, 4},
		{"", "dijkstra", testutil.DiamondWeight, 4},
		{"floyd", "dijkstra", testutil.DiamondWeight, 4},
	}

	for _, tt := range tests {
		t.Run(tt.expected+"/"+tt.algorithm, func(t *testing.T) {
			f := newFixture(t)

			resp, err := f.router.Route(context.Background(), Request{
				Key:         "diamond",
				Source:      testutil.A,
				Destination: testutil.D,
				Algorithm:   tt.algorithm,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.expected, resp.Algorithm)
			assert.InDelta(t, tt.weight, resp.Weight, 1e-12)
			assert.Equal(t, 4, resp.Iterations)
			assert.Equal(t, "diamond", resp.GraphID)
			assert.Equal(t, testutil.A, resp.Source)
			assert.Equal(t, testutil.D, resp.Destination)

			_, ok := results.SolutionTime(resp.SolutionKey)
			assert.True(t, ok)
			assert.Equal(t, tt.blobs, f.paths.Len())

			stored, err := f.results.Get(context.Background(), resp.SolutionKey)
			require.NoError(t, err)
			assert.Equal(t, testutil.A, stored.Predecessors[testutil.C])
		})
	}
}

func TestRouter_RouteSameEndpoints(t *testing.T) {
	f := newFixture(t)

	resp, err := f.router.Route(context.Background(), Request{
		Key:         "diamond",
		Source:      testutil.B,
		Destination: testutil.B,
	})
	require.NoError(t, err)
	assert.Zero(t, resp.Weight)
}

func TestRouter_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		expected error
	}{
		{"MissingKey", Request{Source: testutil.A, Destination: testutil.D}, ErrInvalidRequest},
		{"CityWithoutCatalog", Request{Country: "Peru", City: "Lima", Source: 1, Destination: 4}, ErrInvalidRequest},
		{"UnknownGraph", Request{Key: "atlantis", Source: 1, Destination: 4}, ErrGraphNotFound},
		{"UnknownSource", Request{Key: "diamond", Source: 99, Destination: testutil.D}, ErrUnknownNode},
		{"UnknownDestination", Request{Key: "diamond", Source: testutil.A, Destination: 99}, ErrUnknownNode},
		{"Unreachable", Request{Key: "diamond", Source: testutil.D, Destination: testutil.A}, ErrNoRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			resp, err := f.router.Route(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.expected)
			assert.Zero(t, f.paths.Len())

			stats := f.metrics.GetStats()
			assert.Equal(t, int64(1), stats.RouteCount)
			assert.Equal(t, int64(1), stats.RouteErrors)
		})
	}
}

func TestRouter_NoRouteWrapsSearchError(t *testing.T) {
	f := newFixture(t)

	_, err := f.router.Route(context.Background(), Request{Key: "diamond", Source: testutil.D, Destination: testutil.A})
	assert.ErrorIs(t, err, search.ErrNotFound)
}

func TestRouter_Catalog(t *testing.T) {
	cat := catalog.NewMemoryCatalog(catalog.Entry{Country: "Peru", City: "Lima", GraphID: "diamond"})
	f := newFixture(t, WithCatalog(cat))

	resp, err := f.router.Route(context.Background(), Request{
		Country:     "Peru",
		City:        "Lima",
		Source:      testutil.A,
		Destination: testutil.D,
	})
	require.NoError(t, err)
	assert.Equal(t, "diamond", resp.GraphID)

	_, err = f.router.Route(context.Background(), Request{Country: "Peru", City: "Cusco", Source: 1, Destination: 4})
	assert.ErrorIs(t, err, ErrGraphNotFound)

	_, err = f.router.Route(context.Background(), Request{City: "Lima", Source: 1, Destination: 4})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestRouter_RouteCoordinates(t *testing.T) {
	f := newFixture(t)

	resp, err := f.router.RouteCoordinates(context.Background(), "diamond", -12.0001, -77.0001, -12.0029, -76.9971, "astar")
	require.NoError(t, err)
	assert.Equal(t, testutil.A, resp.Source)
	assert.Equal(t, testutil.D, resp.Destination)
	assert.InDelta(t, testutil.DiamondWeight, resp.Weight, 1e-12)
}

func TestRouter_Clock(t *testing.T) {
	now := time.Date(2024, 5, 17, 8, 30, 0, 0, time.UTC)
	f := newFixture(t, WithClock(func() time.Time { return now }))

	resp, err := f.router.Route(context.Background(), Request{Key: "diamond", Source: 1, Destination: 4})
	require.NoError(t, err)

	ts, ok := results.SolutionTime(resp.SolutionKey)
	require.True(t, ok)
	assert.Equal(t, now, ts)
}

func TestRouter_DefaultAlgorithm(t *testing.T) {
	f := newFixture(t, WithDefaultAlgorithm(search.BFS))
	assert.Equal(t, search.BFS, f.router.DefaultAlgorithm())

	resp, err := f.router.Route(context.Background(), Request{Key: "diamond", Source: 1, Destination: 4})
	require.NoError(t, err)
	assert.Equal(t, "bfs", resp.Algorithm)

	ignored := New(nil, nil, WithDefaultAlgorithm(search.Algorithm(42)))
	assert.Equal(t, search.Dijkstra, ignored.DefaultAlgorithm())
}

func TestRouter_Metrics(t *testing.T) {
	f := newFixture(t)

	_, err := f.router.Route(context.Background(), Request{Key: "diamond", Source: 1, Destination: 4})
	require.NoError(t, err)

	stats := f.metrics.GetStats()
	assert.Equal(t, int64(1), stats.RouteCount)
	assert.Zero(t, stats.RouteErrors)
	assert.Equal(t, int64(4), stats.RouteIterations)
	assert.Equal(t, int64(1), stats.LoadCount)
	assert.Equal(t, int64(1), stats.PersistCount)
}

type failingSink struct{ err error }

func (s failingSink) Put(context.Context, string, *graph.Graph, *search.Result) error { return s.err }

func TestRouter_PersistFailure(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("bucket unavailable")
	r := New(graphio.NewLoader(f.graphs), failingSink{err: boom}, WithMetricsCollector(f.metrics))

	_, err := r.Route(context.Background(), Request{Key: "diamond", Source: 1, Destination: 4})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), f.metrics.GetStats().PersistErrors)
}

func TestRouter_ResourceLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MaxConcurrentSearches: 1})
	f := newFixture(t, WithResourceController(rc))

	require.True(t, rc.TryAcquireSearch())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := f.router.Route(ctx, Request{Key: "diamond", Source: 1, Destination: 4})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	rc.ReleaseSearch()
	_, err = f.router.Route(context.Background(), Request{Key: "diamond", Source: 1, Destination: 4})
	require.NoError(t, err)
	assert.Zero(t, rc.ActiveSearches())
}

func TestRouter_CachedSource(t *testing.T) {
	f := newFixture(t)
	cached := graphio.NewCachedSource(graphio.NewLoader(f.graphs), 2, nil)
	r := New(cached, f.results)

	for range 3 {
		_, err := r.Route(context.Background(), Request{Key: "diamond", Source: 1, Destination: 4})
		require.NoError(t, err)
	}

	_, _, loads := cached.Stats()
	assert.Equal(t, int64(1), loads)
}

func TestRecoverIntegrity(t *testing.T) {
	run := func(p any) (err error) {
		defer recoverIntegrity(&err)
		if p != nil {
			panic(p)
		}
		return nil
	}

	assert.NoError(t, run(nil))

	err := run(&graph.IntegrityError{Node: 7, Reason: "node not found"})
	assert.ErrorIs(t, err, graph.ErrIntegrity)
	assert.ErrorIs(t, translateError(err), ErrCorruptGraph)

	assert.PanicsWithValue(t, "boom", func() { _ = run("boom") })
	assert.Panics(t, func() { _ = run(errors.New("other")) })
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"NoRoute", fmt.Errorf("wrapped: %w", search.ErrNotFound), ErrNoRoute},
		{"MissingBlob", blobstore.ErrNotFound, ErrGraphNotFound},
		{"MissingCity", catalog.ErrNotFound, ErrGraphNotFound},
		{"UnknownAlgorithm", search.ErrUnknownAlgorithm, ErrInvalidRequest},
		{"ParseError", &graphio.ParseError{Blob: "nodes-x.json", Record: "1", Err: graphio.ErrMalformedRecord}, ErrCorruptGraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)
			assert.ErrorIs(t, got, tt.expected)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.NoError(t, translateError(nil))
	other := errors.New("other")
	assert.Same(t, other, translateError(other))
}

func TestRequestError(t *testing.T) {
	err := &RequestError{Field: "key", Reason: "required"}
	assert.EqualError(t, err, "invalid request: key: required")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
