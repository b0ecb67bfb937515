package main

import (
	"io"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/HeNeos/graph-algorithms-in-maps/results"
)

type summaryOutput struct {
	SolutionKey     string         `json:"solution_key"`
	Hops            int            `json:"hops"`
	DistanceKm      float64        `json:"distance_km"`
	TravelTime      string         `json:"travel_time"`
	AverageSpeedKmh float64        `json:"average_speed_kmh"`
	ReachedNodes    int            `json:"reached_nodes"`
	Edges           map[string]int `json:"edges"`
}

func newSummaryCommand(flags *globalFlags) *cobra.Command {
	var (
		graphKey    string
		solutionKey string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize a stored solution",
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

			g, err := a.source.Load(cmd.Context(), graphKey)
			if err != nil {
				return err
			}
			stored, err := a.results.Get(cmd.Context(), solutionKey)
			if err != nil {
				return err
			}
			src, dst, err := stored.Endpoints()
			if err != nil {
				return err
			}
			sum, err := results.Summarize(g, src, dst, stored.Predecessors, stored.VisitedEdges, stored.ActiveEdges)
			if err != nil {
				return err
			}

			out := summaryOutput{
				SolutionKey:     solutionKey,
				Hops:            sum.Hops,
				DistanceKm:      sum.DistanceKm,
				TravelTime:      sum.FormatTravelTime(),
				AverageSpeedKmh: sum.AverageSpeedKmh(),
				ReachedNodes:    sum.ReachedNodes,
				Edges:           make(map[string]int, len(sum.Counts)),
			}
			for class, n := range sum.Counts {
				out.Edges[class.String()] = n
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&graphKey, "key", "", "graph key")
	cmd.Flags().StringVar(&solutionKey, "solution", "", "solution key")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("solution")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := gojson.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
