package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/passbi/routeopt/internal/graph"
	"github.com/passbi/routeopt/internal/models"
	"github.com/passbi/routeopt/internal/segment"
)

func TestBuildOutgoingPreservesInputOrder(t *testing.T) {
	resolved := []segment.ResolvedEdge{
		{FromID: 0, Edge: models.Edge{ToID: 1, SegID: 10}},
		{FromID: 1, Edge: models.Edge{ToID: 2, SegID: 11}},
		{FromID: 0, Edge: models.Edge{ToID: 2, SegID: 12}},
	}

	g := graph.Build(3, resolved)

	out0 := g.Outgoing(0)
	if assert.Len(t, out0, 2) {
		assert.Equal(t, models.SegmentID(10), out0[0].SegID)
		assert.Equal(t, models.SegmentID(12), out0[1].SegID)
	}

	out1 := g.Outgoing(1)
	if assert.Len(t, out1, 1) {
		assert.Equal(t, models.SegmentID(11), out1[0].SegID)
	}

	assert.Empty(t, g.Outgoing(2))
	assert.Equal(t, 3, len(resolved)) // sanity: fixture size unchanged
	assert.Equal(t, 3, g.NumEdges())
}

func TestBuildOutOfRangeLocation(t *testing.T) {
	g := graph.Build(1, nil)
	assert.Nil(t, g.Outgoing(5))
	assert.Nil(t, g.Outgoing(-1))
}
