package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/HeNeos/graph-algorithms-in-maps/graph"
)

// Algorithm selects a search strategy.
type Algorithm int

const (
	Dijkstra Algorithm = iota
	BFS
	AStar
	AStarEnhanced
)

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{BFS, Dijkstra, AStar, AStarEnhanced}
}

func (a Algorithm) String() string {
	switch a {
	case BFS:
		return "bfs"
	case Dijkstra:
		return "dijkstra"
	case AStar:
		return "astar"
	case AStarEnhanced:
		return "astar_enhanced"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Weighted reports whether the result weight is a travel time in hours.
func (a Algorithm) Weighted() bool { return a != BFS }

// Telemetry reports whether results carry visited and active edges.
func (a Algorithm) Telemetry() bool { return a != AStar }

// ParseAlgorithm maps a name to an Algorithm. Matching ignores case, and
// the underscore spellings "a_star" and "a_star_enhanced" are accepted.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs":
		return BFS, nil
	case "dijkstra":
		return Dijkstra, nil
	case "astar", "a_star", "a*":
		return AStar, nil
	case "astar_enhanced", "a_star_enhanced", "enhanced":
		return AStarEnhanced, nil
	default:
		return Dijkstra, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	v, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Func is the signature shared by all searches.
type Func func(ctx context.Context, g *graph.Graph, src, dst graph.NodeID, opts ...Option) (*Result, error)

// Provider returns the search function for the given algorithm.
func Provider(a Algorithm) (Func, error) {
	switch a {
	case BFS:
		return BreadthFirst, nil
	case Dijkstra:
		return ShortestPath, nil
	case AStar:
		return AStarPath, nil
	case AStarEnhanced:
		return EnhancedAStarPath, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, a)
	}
}

// Run searches g from src to dst with the given algorithm.
func Run(ctx context.Context, g *graph.Graph, src, dst graph.NodeID, a Algorithm, opts ...Option) (*Result, error) {
	fn, err := Provider(a)
	if err != nil {
		return nil, err
	}
	return fn(ctx, g, src, dst, opts...)
}
