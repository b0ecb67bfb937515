package results

import (
	"context"
	"errors"
	"fmt"

	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/errgroup"

	"github.com/HeNeos/graph-algorithms-in-maps/blobstore"
	"github.com/HeNeos/graph-algorithms-in-maps/codec"
	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/resource"
	"github.com/HeNeos/graph-algorithms-in-maps/search"
)

// Sink persists a search result under a solution key.
type Sink interface {
	Put(ctx context.Context, key string, g *graph.Graph, res *search.Result) error
}

// Stored is a solution read back from storage.
type Stored struct {
	Key          string
	Predecessors map[graph.NodeID]graph.NodeID
	// VisitedEdges and ActiveEdges are nil when the algorithm did not record them.
	VisitedEdges []graph.EdgeID
	ActiveEdges  []graph.EdgeID
	// Route is nil for solutions written without a route blob.
	Route *geojson.FeatureCollection
}

// HasTelemetry reports whether visited and active edges were stored.
func (s *Stored) HasTelemetry() bool {
	return s.VisitedEdges != nil && s.ActiveEdges != nil
}

// ErrNoEndpoints is returned by Stored.Endpoints for solutions stored
// without a route blob.
var ErrNoEndpoints = errors.New("results: solution does not record its endpoints")

// Endpoints returns the source and destination recorded in the route blob.
func (s *Stored) Endpoints() (source, destination graph.NodeID, err error) {
	f := FindFeature(s.Route, KindRoute)
	if f == nil {
		return 0, 0, ErrNoEndpoints
	}
	src, okSrc := nodeProperty(f.Properties["source"])
	dst, okDst := nodeProperty(f.Properties["destination"])
	if !okSrc || !okDst {
		return 0, 0, ErrNoEndpoints
	}
	return src, dst, nil
}

func nodeProperty(v any) (graph.NodeID, bool) {
	switch n := v.(type) {
	case float64:
		return graph.NodeID(n), true
	case int64:
		return graph.NodeID(n), true
	case int:
		return graph.NodeID(n), true
	default:
		return 0, false
	}
}

type options struct {
	codec       codec.Codec
	compression codec.Compression
	rc          *resource.Controller
	skipRoute   bool
}

// Option configures a Store.
type Option func(*options)

// WithCodec sets the JSON codec. Defaults to codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression frames the JSON blobs with c. The GeoJSON route is always
// written plain so map tooling can read it directly.
func WithCompression(c codec.Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithResourceController paces writes through rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) { o.rc = rc }
}

// WithoutRoute skips the GeoJSON blob.
func WithoutRoute() Option {
	return func(o *options) { o.skipRoute = true }
}

// Store writes solutions to a BlobStore and reads them back.
type Store struct {
	store blobstore.BlobStore
	opts  options
}

var _ Sink = (*Store)(nil)

// NewStore creates a Store over store.
func NewStore(store blobstore.BlobStore, opts ...Option) *Store {
	o := options{codec: codec.Default}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{store: store, opts: o}
}

// Put writes every blob of the solution concurrently. If any write fails,
// the blobs already written are deleted.
func (s *Store) Put(ctx context.Context, key string, g *graph.Graph, res *search.Result) error {
	type blob struct {
		name  string
		value any
		plain bool
	}

	blobs := []blob{{name: PathBlob(key), value: encodePath(res.Predecessors)}}
	if res.HasTelemetry() {
		blobs = append(blobs,
			blob{name: VisitedBlob(key), value: encodeEdges(res.VisitedEdges)},
			blob{name: ActiveBlob(key), value: encodeEdges(res.ActiveEdges)},
		)
	}
	if !s.opts.skipRoute {
		fc, err := RouteFeatures(g, res)
		if err != nil {
			return fmt.Errorf("results: route %s: %w", key, err)
		}
		blobs = append(blobs, blob{name: RouteBlob(key), value: fc, plain: true})
	}

	eg, gctx := errgroup.WithContext(ctx)
	for _, b := range blobs {
		eg.Go(func() error {
			return s.write(gctx, b.name, b.value, b.plain)
		})
	}
	if err := eg.Wait(); err != nil {
		names := make([]string, len(blobs))
		for i, b := range blobs {
			names[i] = b.name
		}
		s.discard(context.WithoutCancel(ctx), names)
		return err
	}
	return nil
}

// discard removes the blobs of a partially written solution. Failures are
// ignored; the key is never handed out.
func (s *Store) discard(ctx context.Context, names []string) {
	for _, name := range names {
		_ = s.store.Delete(ctx, name)
	}
}

func (s *Store) write(ctx context.Context, name string, v any, plain bool) error {
	var (
		data []byte
		err  error
	)
	if fc, ok := v.(*geojson.FeatureCollection); ok {
		data, err = fc.MarshalJSON()
	} else {
		data, err = s.opts.codec.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("results: encode %s: %w", name, err)
	}
	if !plain {
		if data, err = codec.Compress(data, s.opts.compression); err != nil {
			return fmt.Errorf("results: compress %s: %w", name, err)
		}
	}
	if err := s.opts.rc.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	if err := s.store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("results: write %s: %w", name, err)
	}
	return nil
}

// Get reads a solution. The path blob is required; the others are optional.
func (s *Store) Get(ctx context.Context, key string) (*Stored, error) {
	var (
		path    pathDocument
		visited edgeList
		active  edgeList
		route   *geojson.FeatureCollection

		hasVisited, hasActive bool
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		_, err := s.read(ctx, PathBlob(key), &path, true)
		return err
	})
	eg.Go(func() (err error) {
		hasVisited, err = s.read(ctx, VisitedBlob(key), &visited, false)
		return err
	})
	eg.Go(func() (err error) {
		hasActive, err = s.read(ctx, ActiveBlob(key), &active, false)
		return err
	})
	eg.Go(func() error {
		data, err := blobstore.ReadAll(ctx, s.store, RouteBlob(key))
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("results: read %s: %w", RouteBlob(key), err)
		}
		route, err = geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return fmt.Errorf("results: decode %s: %w", RouteBlob(key), err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	preds, err := decodePath(path)
	if err != nil {
		return nil, fmt.Errorf("results: decode %s: %w", PathBlob(key), err)
	}

	out := &Stored{Key: key, Predecessors: preds, Route: route}
	if hasVisited && hasActive {
		out.VisitedEdges = decodeEdges(visited)
		out.ActiveEdges = decodeEdges(active)
	}
	return out, nil
}

// Delete removes every blob of the solution.
func (s *Store) Delete(ctx context.Context, key string) error {
	for _, name := range []string{PathBlob(key), VisitedBlob(key), ActiveBlob(key), RouteBlob(key)} {
		if err := s.store.Delete(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) read(ctx context.Context, name string, v any, required bool) (bool, error) {
	data, err := blobstore.ReadAll(ctx, s.store, name)
	if err != nil {
		if !required && errors.Is(err, blobstore.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("results: read %s: %w", name, err)
	}
	if data, err = codec.Decompress(data); err != nil {
		return false, fmt.Errorf("results: decode %s: %w", name, err)
	}
	if err := s.opts.codec.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("results: decode %s: %w", name, err)
	}
	return true, nil
}
