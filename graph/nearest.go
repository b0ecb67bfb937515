package graph

import "github.com/HeNeos/graph-algorithms-in-maps/distance"

// Nearest returns the node closest to the given coordinates by great-circle
// distance, together with that distance in kilometers. Ties go to the lower
// id. ok is false for an empty graph.
func (g *Graph) Nearest(lat, lon float64) (id NodeID, km float64, ok bool) {
	for nid, n := range g.nodes {
		d := distance.Haversine(lat, lon, n.Lat, n.Lon)
		if !ok || d < km || (d == km && nid < id) {
			id, km, ok = nid, d, true
		}
	}
	return id, km, ok
}
