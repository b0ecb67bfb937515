package results

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HeNeos/graph-algorithms-in-maps/blobstore"
	"github.com/HeNeos/graph-algorithms-in-maps/codec"
	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/search"
	"github.com/HeNeos/graph-algorithms-in-maps/testutil"
)

func run(t *testing.T, g *graph.Graph, a search.Algorithm) *search.Result {
	t.Helper()
	res, err := search.Run(context.Background(), g, testutil.A, testutil.D, a)
	require.NoError(t, err)
	return res
}

func TestNewSolutionKey(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("PET", -5*3600))
	key := NewSolutionKey(now)

	assert.True(t, strings.HasPrefix(key, "2026-03-04T10:06:07_"), key)
	assert.Len(t, key, len("2006-01-02T15:04:05_")+36)
	assert.NotEqual(t, key, NewSolutionKey(now))

	ts, ok := SolutionTime(key)
	require.True(t, ok)
	assert.True(t, ts.Equal(now))

	for _, bad := range []string{"", "2026-03-04T10:06:07", "2026-03-04T10:06:07_nope", "not-a-time_3f0e"} {
		_, ok := SolutionTime(bad)
		assert.False(t, ok, bad)
	}
}

func TestBlobNames(t *testing.T) {
	assert.Equal(t, "path-k.json", PathBlob("k"))
	assert.Equal(t, "visited-k.json", VisitedBlob("k"))
	assert.Equal(t, "active-k.json", ActiveBlob("k"))
	assert.Equal(t, "route-k.geojson", RouteBlob("k"))
}

func TestStore_PutFormat(t *testing.T) {
	ctx := context.Background()
	mem := blobstore.NewMemoryStore()
	g := testutil.Diamond()

	require.NoError(t, NewStore(mem).Put(ctx, "k", g, run(t, g, search.BFS)))

	names, err := mem.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"active-k.json", "path-k.json", "route-k.geojson", "visited-k.json"}, names)

	path, err := blobstore.ReadAll(ctx, mem, "path-k.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"2":1,"3":1,"4":2}`, string(path))

	visited, err := blobstore.ReadAll(ctx, mem, "visited-k.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[[1,2],[1,3],[2,4]]`, string(visited))

	active, err := blobstore.ReadAll(ctx, mem, "active-k.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[[3,4]]`, string(active))
}

// flakyStore fails every Put of a blob whose name has prefix.
type flakyStore struct {
	*blobstore.MemoryStore
	prefix string
}

var errUnavailable = errors.New("bucket unavailable")

func (s flakyStore) Put(ctx context.Context, name string, data []byte) error {
	if strings.HasPrefix(name, s.prefix) {
		return errUnavailable
	}
	return s.MemoryStore.Put(ctx, name, data)
}

func TestStore_PutFailureRemovesWritten(t *testing.T) {
	for _, prefix := range []string{"path-", "visited-", "route-"} {
		t.Run(prefix, func(t *testing.T) {
			ctx := context.Background()
			mem := blobstore.NewMemoryStore()
			require.NoError(t, mem.Put(ctx, "path-other.json", []byte("{}")))
			g := testutil.Diamond()

			err := NewStore(flakyStore{MemoryStore: mem, prefix: prefix}).Put(ctx, "k", g, run(t, g, search.Dijkstra))
			assert.ErrorIs(t, err, errUnavailable)

			names, err := mem.List(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"path-other.json"}, names)
		})
	}
}

func TestStore_AStarWithoutTelemetry(t *testing.T) {
	ctx := context.Background()
	mem := blobstore.NewMemoryStore()
	g := testutil.Diamond()
	s := NewStore(mem)

	require.NoError(t, s.Put(ctx, "k", g, run(t, g, search.AStar)))

	names, err := mem.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"path-k.json", "route-k.geojson"}, names)

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, got.HasTelemetry())
	assert.Nil(t, got.VisitedEdges)
	assert.NotNil(t, got.Route)
}

func TestStore_RoundTrip(t *testing.T) {
	for _, c := range []codec.Compression{codec.CompressionNone, codec.CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			ctx := context.Background()
			g := testutil.Diamond()
			res := run(t, g, search.Dijkstra)
			s := NewStore(blobstore.NewMemoryStore(), WithCompression(c))

			require.NoError(t, s.Put(ctx, "k", g, res))
			got, err := s.Get(ctx, "k")
			require.NoError(t, err)

			assert.Equal(t, "k", got.Key)
			assert.Equal(t, res.Predecessors, got.Predecessors)
			assert.Equal(t, res.VisitedEdges, got.VisitedEdges)
			assert.Equal(t, []graph.EdgeID{}, got.ActiveEdges)
			assert.True(t, got.HasTelemetry())

			route := FindFeature(got.Route, KindRoute)
			require.NotNil(t, route)
			line, ok := route.Geometry.(orb.LineString)
			require.True(t, ok)
			assert.Equal(t, orb.LineString{
				g.Node(testutil.A).Point(), g.Node(testutil.C).Point(), g.Node(testutil.D).Point(),
			}, line)
			assert.Equal(t, "dijkstra", route.Properties.MustString("algorithm"))
			assert.InDelta(t, testutil.DiamondWeight, route.Properties.MustFloat64("weight"), 1e-12)

			src, dst, err := got.Endpoints()
			require.NoError(t, err)
			assert.Equal(t, testutil.A, src)
			assert.Equal(t, testutil.D, dst)

			require.NoError(t, s.Delete(ctx, "k"))
			_, err = s.Get(ctx, "k")
			assert.ErrorIs(t, err, blobstore.ErrNotFound)
		})
	}
}

func TestStore_WithoutRoute(t *testing.T) {
	ctx := context.Background()
	mem := blobstore.NewMemoryStore()
	g := testutil.Diamond()

	require.NoError(t, NewStore(mem, WithoutRoute()).Put(ctx, "k", g, run(t, g, search.Dijkstra)))
	_, err := mem.Open(ctx, RouteBlob("k"))
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	got, err := NewStore(mem).Get(ctx, "k")
	require.NoError(t, err)
	_, _, err = got.Endpoints()
	assert.ErrorIs(t, err, ErrNoEndpoints)
}

func TestStore_GetMissing(t *testing.T) {
	_, err := NewStore(blobstore.NewMemoryStore()).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestRouteFeatures(t *testing.T) {
	g := testutil.Diamond()
	fc, err := RouteFeatures(g, run(t, g, search.BFS))
	require.NoError(t, err)

	require.Len(t, fc.Features, 5)
	src := FindFeature(fc, KindSource)
	require.NotNil(t, src)
	assert.Equal(t, orb.Point{-77.0, -12.0}, src.Geometry)

	visited := FindFeature(fc, KindVisited)
	require.NotNil(t, visited)
	assert.Len(t, visited.Geometry.(orb.MultiLineString), 3)

	active := FindFeature(fc, KindActive)
	require.NotNil(t, active)
	assert.Len(t, active.Geometry.(orb.MultiLineString), 1)

	assert.Nil(t, FindFeature(fc, "unknown"))
	assert.Nil(t, FindFeature(nil, KindRoute))
}

func TestSummarize(t *testing.T) {
	g := testutil.Diamond()

	t.Run("Dijkstra", func(t *testing.T) {
		s, err := SummarizeResult(g, run(t, g, search.Dijkstra))
		require.NoError(t, err)

		assert.Equal(t, 2, s.Hops)
		assert.InDelta(t, 1.0, s.DistanceKm, 1e-12)
		assert.InDelta(t, 0.03, s.TravelHours, 1e-12)
		assert.Equal(t, "1 min 48 sec", s.FormatTravelTime())
		assert.InDelta(t, 33.333, s.AverageSpeedKmh(), 1e-3)
		assert.Equal(t, 108*time.Second, s.Duration().Round(time.Second))
		assert.Equal(t, 4, s.ReachedNodes)

		assert.Equal(t, Path, s.Classes[graph.EdgeID{From: testutil.A, To: testutil.C}])
		assert.Equal(t, Visited, s.Classes[graph.EdgeID{From: testutil.A, To: testutil.B}])
		assert.Equal(t, map[EdgeClass]int{Path: 2, Visited: 2}, s.Counts)
	})

	t.Run("BFS", func(t *testing.T) {
		s, err := SummarizeResult(g, run(t, g, search.BFS))
		require.NoError(t, err)

		assert.InDelta(t, 2.0, s.DistanceKm, 1e-12)
		assert.Equal(t, "2 min 24 sec", s.FormatTravelTime())
		assert.Equal(t, Active, s.Classes[graph.EdgeID{From: testutil.C, To: testutil.D}])
		assert.Equal(t, map[EdgeClass]int{Path: 2, Visited: 1, Active: 1}, s.Counts)
	})

	t.Run("AStar", func(t *testing.T) {
		s, err := SummarizeResult(g, run(t, g, search.AStar))
		require.NoError(t, err)
		assert.Equal(t, map[EdgeClass]int{Path: 2, Unvisited: 2}, s.Counts)
		assert.Equal(t, Unvisited, s.Classes[graph.EdgeID{From: testutil.A, To: testutil.B}])
	})

	t.Run("SameNode", func(t *testing.T) {
		s, err := Summarize(g, testutil.A, testutil.A, nil, nil, nil)
		require.NoError(t, err)
		assert.Zero(t, s.Hops)
		assert.Zero(t, s.AverageSpeedKmh())
		assert.Equal(t, "0 min 0 sec", s.FormatTravelTime())
		assert.Equal(t, 1, s.ReachedNodes)
	})

	t.Run("Broken", func(t *testing.T) {
		_, err := Summarize(g, testutil.A, testutil.D, map[graph.NodeID]graph.NodeID{testutil.D: testutil.C}, nil, nil)
		assert.ErrorIs(t, err, search.ErrBrokenPath)
	})

	t.Run("UnknownEdge", func(t *testing.T) {
		_, err := Summarize(g, testutil.A, testutil.D, map[graph.NodeID]graph.NodeID{testutil.D: testutil.A}, nil, nil)
		assert.ErrorIs(t, err, graph.ErrIntegrity)
	})
}

func TestEdgeClass_String(t *testing.T) {
	assert.Equal(t, "unvisited", Unvisited.String())
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "visited", Visited.String())
	assert.Equal(t, "path", Path.String())
}
