package main

import (
	"github.com/spf13/cobra"

	graphmaps "github.com/HeNeos/graph-algorithms-in-maps"
	"github.com/HeNeos/graph-algorithms-in-maps/graph"
)

func newSearchCommand(flags *globalFlags) *cobra.Command {
	var (
		req         graphmaps.Request
		source      int64
		destination int64
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one search and print the response as JSON",
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

			req.Source = graph.NodeID(source)
			req.Destination = graph.NodeID(destination)
			resp, err := a.router.Route(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&req.Key, "key", "", "graph key")
	cmd.Flags().StringVar(&req.Country, "country", "", "country of the city, used with --city instead of --key")
	cmd.Flags().StringVar(&req.City, "city", "", "city registered in the catalog")
	cmd.Flags().Int64Var(&source, "source", 0, "source node id")
	cmd.Flags().Int64Var(&destination, "destination", 0, "destination node id")
	cmd.Flags().StringVar(&req.Algorithm, "algorithm", "", "bfs, dijkstra, astar or astar_enhanced")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("destination")
	return cmd
}
