package graphio

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/HeNeos/graph-algorithms-in-maps/blobstore"
	"github.com/HeNeos/graph-algorithms-in-maps/codec"
	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/resource"
)

// Source resolves a graph key to a graph.
type Source interface {
	Load(ctx context.Context, key string) (*graph.Graph, error)
}

// Loader reads graphs from a BlobStore.
type Loader struct {
	store blobstore.BlobStore
	opts  options
}

var _ Source = (*Loader)(nil)

// NewLoader creates a Loader over store.
func NewLoader(store blobstore.BlobStore, opts ...Option) *Loader {
	return &Loader{store: store, opts: applyOptions(opts)}
}

// Load fetches the nodes and edges blobs of key in parallel and builds the graph.
// A missing blob yields an error matching blobstore.ErrNotFound; undecodable
// content yields a *ParseError.
func (l *Loader) Load(ctx context.Context, key string) (*graph.Graph, error) {
	var (
		nodes nodesDocument
		edges edgesDocument
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return l.fetch(ctx, NodesBlob(key), &nodes)
	})
	eg.Go(func() error {
		return l.fetch(ctx, EdgesBlob(key), &edges)
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return decodeGraph(key, nodes, edges)
}

// Exists reports whether both blobs of key are present.
func (l *Loader) Exists(ctx context.Context, key string) (bool, error) {
	for _, name := range []string{NodesBlob(key), EdgesBlob(key)} {
		names, err := l.store.List(ctx, name)
		if err != nil {
			return false, err
		}
		found := false
		for _, n := range names {
			if n == name {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}

// Keys lists the keys that have a nodes blob.
func (l *Loader) Keys(ctx context.Context) ([]string, error) {
	names, err := l.store.List(ctx, nodesPrefix)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(names))
	for _, name := range names {
		if key, ok := KeyFromBlob(name); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (l *Loader) fetch(ctx context.Context, name string, v any) error {
	data, err := readBlob(ctx, l.store, name, l.opts.rc)
	if err != nil {
		return fmt.Errorf("graphio: read %s: %w", name, err)
	}
	data, err = codec.Decompress(data)
	if err != nil {
		return &ParseError{Blob: name, Err: err}
	}
	if err := l.opts.codec.Unmarshal(data, v); err != nil {
		return &ParseError{Blob: name, Err: err}
	}
	return nil
}

func readBlob(ctx context.Context, store blobstore.BlobStore, name string, rc *resource.Controller) ([]byte, error) {
	if rc.IOChunk() == 0 {
		return blobstore.ReadAll(ctx, store, name)
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = blob.Close() }()

	rangeReader, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rangeReader.Close() }()

	return io.ReadAll(resource.NewRateLimitedReader(ctx, rangeReader, rc))
}
