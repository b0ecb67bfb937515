package results

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/search"
)

// Feature kinds stored in the "kind" property of route features.
const (
	KindRoute       = "route"
	KindSource      = "source"
	KindDestination = "destination"
	KindVisited     = "visited"
	KindActive      = "active"
)

// RouteFeatures renders res on g as a FeatureCollection: the route line,
// its two endpoints and, when recorded, the visited and active edges.
func RouteFeatures(g *graph.Graph, res *search.Result) (*geojson.FeatureCollection, error) {
	path, err := res.Path()
	if err != nil {
		return nil, err
	}

	line := make(orb.LineString, 0, len(path))
	for _, id := range path {
		line = append(line, g.Node(id).Point())
	}

	fc := geojson.NewFeatureCollection()

	route := geojson.NewFeature(line)
	route.Properties["kind"] = KindRoute
	route.Properties["algorithm"] = res.Algorithm.String()
	route.Properties["weight"] = res.Weight
	route.Properties["iterations"] = res.Iterations
	route.Properties["source"] = int64(res.Source)
	route.Properties["destination"] = int64(res.Destination)
	route.Properties["hops"] = len(path) - 1
	fc.Append(route)

	for _, p := range []struct {
		kind string
		id   graph.NodeID
	}{{KindSource, res.Source}, {KindDestination, res.Destination}} {
		f := geojson.NewFeature(g.Node(p.id).Point())
		f.Properties["kind"] = p.kind
		f.Properties["node"] = int64(p.id)
		fc.Append(f)
	}

	if res.HasTelemetry() {
		fc.Append(edgesFeature(g, KindVisited, res.VisitedEdges))
		fc.Append(edgesFeature(g, KindActive, res.ActiveEdges))
	}
	return fc, nil
}

func edgesFeature(g *graph.Graph, kind string, ids []graph.EdgeID) *geojson.Feature {
	ml := make(orb.MultiLineString, 0, len(ids))
	for _, id := range ids {
		ml = append(ml, orb.LineString{g.Node(id.From).Point(), g.Node(id.To).Point()})
	}
	f := geojson.NewFeature(ml)
	f.Properties["kind"] = kind
	f.Properties["edges"] = len(ids)
	return f
}

// FindFeature returns the first feature whose "kind" property equals kind.
func FindFeature(fc *geojson.FeatureCollection, kind string) *geojson.Feature {
	if fc == nil {
		return nil
	}
	for _, f := range fc.Features {
		if f.Properties.MustString("kind", "") == kind {
			return f
		}
	}
	return nil
}
