package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HeNeos/graph-algorithms-in-maps/blobstore"
	"github.com/HeNeos/graph-algorithms-in-maps/catalog"
	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/graphio"
)

type importOptions struct {
	key       string
	nodesPath string
	edgesPath string
	country   string
	city      string
}

func newImportCommand(flags *globalFlags) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store a graph from local nodes and edges JSON files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			g, err := readGraphFiles(cmd.Context(), opts.key, opts.nodesPath, opts.edgesPath)
			if err != nil {
				return err
			}

			w := graphio.NewWriter(a.graphs,
				graphio.WithCompression(cfg.Compression),
				graphio.WithResourceController(a.rc),
			)
			n, err := w.Store(cmd.Context(), opts.key, g)
			if err != nil {
				return err
			}
			a.logger.Info("graph imported",
				"graph", opts.key,
				"nodes", g.NumNodes(),
				"edges", g.NumEdges(),
				"bytes", n,
			)

			if opts.city != "" {
				if a.catalog == nil {
					return fmt.Errorf("--city needs CATALOG_TABLE")
				}
				entry := catalog.Entry{Country: opts.country, City: opts.city, GraphID: opts.key}
				if err := a.catalog.Register(cmd.Context(), entry); err != nil {
					return err
				}
			}

			return printJSON(cmd.OutOrStdout(), map[string]any{
				"key":   opts.key,
				"nodes": g.NumNodes(),
				"edges": g.NumEdges(),
				"bytes": n,
			})
		},
	}
	cmd.Flags().StringVar(&opts.key, "key", "", "graph key")
	cmd.Flags().StringVar(&opts.nodesPath, "nodes", "", "path of the nodes JSON file")
	cmd.Flags().StringVar(&opts.edgesPath, "edges", "", "path of the edges JSON file")
	cmd.Flags().StringVar(&opts.country, "country", "", "register the graph for this country")
	cmd.Flags().StringVar(&opts.city, "city", "", "register the graph for this city")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("nodes")
	_ = cmd.MarkFlagRequired("edges")
	cmd.MarkFlagsRequiredTogether("country", "city")
	return cmd
}

// readGraphFiles parses the files through a scratch store so they get the
// same validation as stored graphs.
func readGraphFiles(ctx context.Context, key, nodesPath, edgesPath string) (*graph.Graph, error) {
	scratch := blobstore.NewMemoryStore()
	for name, path := range map[string]string{
		graphio.NodesBlob(key): nodesPath,
		graphio.EdgesBlob(key): edgesPath,
	} {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := scratch.Put(ctx, name, data); err != nil {
			return nil, err
		}
	}
	return graphio.NewLoader(scratch).Load(ctx, key)
}
