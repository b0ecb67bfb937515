package graphio

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/HeNeos/graph-algorithms-in-maps/blobstore"
	"github.com/HeNeos/graph-algorithms-in-maps/codec"
	"github.com/HeNeos/graph-algorithms-in-maps/graph"
)

// Writer stores graphs in the layout read by Loader.
type Writer struct {
	store blobstore.BlobStore
	opts  options
}

// NewWriter creates a Writer over store.
func NewWriter(store blobstore.BlobStore, opts ...Option) *Writer {
	return &Writer{store: store, opts: applyOptions(opts)}
}

// Store writes the nodes and edges blobs of g under key and returns the
// number of bytes written.
func (w *Writer) Store(ctx context.Context, key string, g *graph.Graph) (int64, error) {
	nodes, err := w.encode(NodesBlob(key), encodeNodes(g))
	if err != nil {
		return 0, err
	}
	edges, err := w.encode(EdgesBlob(key), encodeEdges(g))
	if err != nil {
		return 0, err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return w.put(ctx, NodesBlob(key), nodes) })
	eg.Go(func() error { return w.put(ctx, EdgesBlob(key), edges) })
	if err := eg.Wait(); err != nil {
		return 0, err
	}
	return int64(len(nodes) + len(edges)), nil
}

// Delete removes both blobs of key.
func (w *Writer) Delete(ctx context.Context, key string) error {
	if err := w.store.Delete(ctx, NodesBlob(key)); err != nil {
		return err
	}
	return w.store.Delete(ctx, EdgesBlob(key))
}

func (w *Writer) encode(name string, doc any) ([]byte, error) {
	data, err := w.opts.codec.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("graphio: encode %s: %w", name, err)
	}
	data, err = codec.Compress(data, w.opts.compression)
	if err != nil {
		return nil, fmt.Errorf("graphio: compress %s: %w", name, err)
	}
	return data, nil
}

func (w *Writer) put(ctx context.Context, name string, data []byte) error {
	if err := w.opts.rc.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	if err := w.store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("graphio: write %s: %w", name, err)
	}
	return nil
}
