package visited

import (
	"testing"

	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New()

	assert.True(t, s.Visit(5))
	assert.False(t, s.Visit(5))
	assert.True(t, s.Visit(1<<40))
	assert.True(t, s.Visit(-3))

	assert.True(t, s.Visited(5))
	assert.True(t, s.Visited(1<<40))
	assert.True(t, s.Visited(-3))
	assert.False(t, s.Visited(6))
	assert.False(t, s.Visited(3))
	assert.Equal(t, 3, s.Len())

	s.Reset()
	assert.False(t, s.Visited(5))
	assert.Equal(t, 0, s.Len())
}

func TestSet_OSMScaleIDs(t *testing.T) {
	s := New()
	ids := []graph.NodeID{240109189, 240109190, 11358862413, 6235439402}
	for _, id := range ids {
		s.Visit(id)
	}
	for _, id := range ids {
		assert.True(t, s.Visited(id))
	}
	assert.False(t, s.Visited(240109191))
}
