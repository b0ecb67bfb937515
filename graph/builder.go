package graph

import (
	"math"

	"github.com/paulmach/orb"
)

// Builder assembles a Graph. It is not safe for concurrent use.
type Builder struct {
	nodes map[NodeID]*Node
	edges map[EdgeID]Edge
	order []EdgeID
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes: make(map[NodeID]*Node),
		edges: make(map[EdgeID]Edge),
	}
}

// AddNode adds a node at the given coordinates in decimal degrees.
func (b *Builder) AddNode(id NodeID, lat, lon float64) error {
	if _, ok := b.nodes[id]; ok {
		return nodeFault(id, "duplicate node")
	}
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nodeFault(id, "latitude out of range")
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return nodeFault(id, "longitude out of range")
	}
	b.nodes[id] = &Node{ID: id, Lat: lat, Lon: lon}
	return nil
}

// AddEdge adds the directed edge from -> to. Endpoints are resolved by Build,
// so edges may be added before their nodes.
func (b *Builder) AddEdge(from, to NodeID, lengthM float64, maxSpeedKmh int) error {
	id := EdgeID{From: from, To: to}
	if _, ok := b.edges[id]; ok {
		return edgeFault(id, "duplicate edge")
	}
	if math.IsNaN(lengthM) || math.IsInf(lengthM, 0) || lengthM < 0 {
		return edgeFault(id, "length must be a finite non-negative number")
	}
	if maxSpeedKmh <= 0 {
		return edgeFault(id, "maxspeed must be positive")
	}
	b.edges[id] = Edge{ID: id, LengthM: lengthM, MaxSpeedKmh: maxSpeedKmh}
	b.order = append(b.order, id)
	return nil
}

// Build validates that every edge endpoint is a known node and returns the
// graph. The builder must not be used afterwards.
func (b *Builder) Build() (*Graph, error) {
	g := &Graph{
		nodes: b.nodes,
		edges: b.edges,
	}

	for _, id := range b.order {
		from, ok := b.nodes[id.From]
		if !ok {
			return nil, edgeFault(id, "source node not found")
		}
		if _, ok := b.nodes[id.To]; !ok {
			return nil, edgeFault(id, "target node not found")
		}
		from.Outgoing = append(from.Outgoing, id.To)

		if s := b.edges[id].MaxSpeedKmh; s > g.maxSpeed {
			g.maxSpeed = s
		}
	}

	first := true
	for _, n := range b.nodes {
		if first {
			g.bound = orb.Bound{Min: n.Point(), Max: n.Point()}
			first = false
			continue
		}
		g.bound = g.bound.Extend(n.Point())
	}

	b.nodes, b.edges, b.order = nil, nil, nil
	return g, nil
}
