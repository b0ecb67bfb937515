package results

import (
	"fmt"
	"time"

	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/internal/visited"
	"github.com/HeNeos/graph-algorithms-in-maps/search"
)

// EdgeClass labels how a search touched an edge.
type EdgeClass uint8

// Classes in increasing precedence: an edge on the route is reported as
// Path even though it was also visited.
const (
	Unvisited EdgeClass = iota
	Active
	Visited
	Path
)

func (c EdgeClass) String() string {
	switch c {
	case Active:
		return "active"
	case Visited:
		return "visited"
	case Path:
		return "path"
	default:
		return "unvisited"
	}
}

// Summary describes a route and how much of the graph the search explored.
type Summary struct {
	Hops         int
	DistanceKm   float64
	TravelHours  float64
	Classes      map[graph.EdgeID]EdgeClass
	Counts       map[EdgeClass]int
	ReachedNodes int
}

// Duration returns the travel time.
func (s *Summary) Duration() time.Duration {
	return time.Duration(s.TravelHours * float64(time.Hour))
}

// AverageSpeedKmh returns distance over travel time, or 0 for an empty route.
func (s *Summary) AverageSpeedKmh() float64 {
	if s.TravelHours == 0 {
		return 0
	}
	return s.DistanceKm / s.TravelHours
}

// FormatTravelTime renders the travel time as "<m> min <s> sec", truncating
// to whole seconds.
func (s *Summary) FormatTravelTime() string {
	secs := int(s.TravelHours * 3600)
	return fmt.Sprintf("%d min %d sec", secs/60, secs%60)
}

// Summarize classifies every edge of g and measures the route from source to
// destination encoded in preds. visitedEdges and activeEdges may be nil.
func Summarize(g *graph.Graph, source, destination graph.NodeID, preds map[graph.NodeID]graph.NodeID, visitedEdges, activeEdges []graph.EdgeID) (*Summary, error) {
	s := &Summary{
		Classes: make(map[graph.EdgeID]EdgeClass, g.NumEdges()),
		Counts:  make(map[EdgeClass]int, 4),
	}

	reached := visited.New()
	reached.Visit(source)
	mark := func(ids []graph.EdgeID, class EdgeClass) {
		for _, id := range ids {
			if class > s.Classes[id] {
				s.Classes[id] = class
			}
			reached.Visit(id.From)
			reached.Visit(id.To)
		}
	}
	mark(activeEdges, Active)
	mark(visitedEdges, Visited)

	cur := destination
	for cur != source {
		prev, ok := preds[cur]
		if !ok || s.Hops > len(preds) {
			return nil, search.ErrBrokenPath
		}
		e, ok := g.LookupEdge(prev, cur)
		if !ok {
			return nil, fmt.Errorf("results: route uses unknown edge %d,%d: %w", prev, cur, graph.ErrIntegrity)
		}
		s.Hops++
		s.DistanceKm += e.LengthM / 1000
		s.TravelHours += e.TravelTime()
		s.Classes[e.ID] = Path
		reached.Visit(prev)
		reached.Visit(cur)
		cur = prev
	}

	for _, id := range g.Edges() {
		class := s.Classes[id]
		s.Classes[id] = class
		s.Counts[class]++
	}
	s.ReachedNodes = reached.Len()
	return s, nil
}

// SummarizeResult is Summarize over a fresh search result.
func SummarizeResult(g *graph.Graph, res *search.Result) (*Summary, error) {
	return Summarize(g, res.Source, res.Destination, res.Predecessors, res.VisitedEdges, res.ActiveEdges)
}
