package graph

import (
	"fmt"
	"slices"

	"github.com/paulmach/orb"
)

// NodeID identifies a node. Identifiers are opaque and need not be dense.
type NodeID int64

// EdgeID identifies the directed edge From -> To.
type EdgeID struct {
	From NodeID
	To   NodeID
}

func (id EdgeID) String() string {
	return fmt.Sprintf("%d,%d", id.From, id.To)
}

// Compare orders edge ids by From, then To.
func (id EdgeID) Compare(other EdgeID) int {
	if id.From != other.From {
		if id.From < other.From {
			return -1
		}
		return 1
	}
	switch {
	case id.To < other.To:
		return -1
	case id.To > other.To:
		return 1
	default:
		return 0
	}
}

// Node is a road junction. Outgoing lists direct successors in the order
// their edges were added; duplicates are kept.
type Node struct {
	ID       NodeID
	Lat      float64
	Lon      float64
	Outgoing []NodeID
}

// Point returns the node position as an orb point (lon, lat).
func (n Node) Point() orb.Point {
	return orb.Point{n.Lon, n.Lat}
}

// Edge is a directed road segment.
type Edge struct {
	ID          EdgeID
	LengthM     float64
	MaxSpeedKmh int
}

// TravelTime returns the free-flow travel time over the edge in hours.
func (e Edge) TravelTime() float64 {
	return (e.LengthM / 1000) / float64(e.MaxSpeedKmh)
}

// Graph is an immutable directed graph. It is safe for concurrent reads.
type Graph struct {
	nodes    map[NodeID]*Node
	edges    map[EdgeID]Edge
	maxSpeed int
	bound    orb.Bound
}

// Node returns the node with the given id.
// It panics with an *IntegrityError if the node does not exist.
func (g *Graph) Node(id NodeID) Node {
	n, ok := g.nodes[id]
	if !ok {
		panic(nodeFault(id, "node not found"))
	}
	return *n
}

// Edge returns the edge from -> to.
// It panics with an *IntegrityError if the edge does not exist.
func (g *Graph) Edge(from, to NodeID) Edge {
	id := EdgeID{From: from, To: to}
	e, ok := g.edges[id]
	if !ok {
		panic(edgeFault(id, "edge not found"))
	}
	return e
}

// Successors returns the successors of id.
// It panics with an *IntegrityError if the node does not exist.
func (g *Graph) Successors(id NodeID) []NodeID {
	n, ok := g.nodes[id]
	if !ok {
		panic(nodeFault(id, "node not found"))
	}
	return n.Outgoing
}

// LookupNode returns the node with the given id and whether it exists.
func (g *Graph) LookupNode(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// LookupEdge returns the edge from -> to and whether it exists.
func (g *Graph) LookupEdge(from, to NodeID) (Edge, bool) {
	e, ok := g.edges[EdgeID{From: from, To: to}]
	return e, ok
}

// HasNode reports whether id is part of the graph.
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

// MaxSpeed returns the largest speed limit in km/h over all edges, or 0 for
// a graph without edges.
func (g *Graph) MaxSpeed() int { return g.maxSpeed }

// Bound returns the bounding box of all node positions.
func (g *Graph) Bound() orb.Bound { return g.bound }

// SizeBytes estimates the heap held by the graph.
func (g *Graph) SizeBytes() int64 {
	const (
		nodeBytes = 96
		edgeBytes = 64
	)
	return int64(len(g.nodes))*nodeBytes + int64(len(g.edges))*edgeBytes
}

// Nodes returns all node ids in ascending order.
func (g *Graph) Nodes() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Edges returns all edge ids in ascending order.
func (g *Graph) Edges() []EdgeID {
	ids := make([]EdgeID, 0, len(g.edges))
	for id := range g.edges {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, EdgeID.Compare)
	return ids
}
