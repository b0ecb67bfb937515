// Package visited tracks settled nodes during a single graph search.
package visited

import (
	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Set is a set of node ids backed by a 64-bit roaring bitmap, which stays
// compact for the sparse, large identifiers used by map data.
type Set struct {
	bits *roaring64.Bitmap
}

// New creates an empty set.
func New() *Set {
	return &Set{bits: roaring64.New()}
}

// Visit marks id as visited. It reports whether id was newly added.
func (s *Set) Visit(id graph.NodeID) bool {
	return s.bits.CheckedAdd(uint64(id))
}

// Visited reports whether id has been visited.
func (s *Set) Visited(id graph.NodeID) bool {
	return s.bits.Contains(uint64(id))
}

// Len returns the number of visited nodes.
func (s *Set) Len() int {
	return int(s.bits.GetCardinality())
}

// Reset clears the set for reuse.
func (s *Set) Reset() {
	s.bits.Clear()
}
