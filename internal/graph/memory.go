// Package graph holds the in-memory multimodal graph the enumerator walks:
// a CSR-flavored (offset + edge-list) index built once per request from a
// segment.Store, favoring cache locality over a naive map-of-slices shape.
package graph

import (
	"github.com/passbi/routeopt/internal/models"
	"github.com/passbi/routeopt/internal/segment"
)

// Graph is an immutable, read-only adjacency index: Outgoing(id) is a slice
// into a single backing array, not a per-node allocation.
type Graph struct {
	offsets []int32
	edges   []models.Edge
}

// Build constructs the CSR graph from numLocations dense location ids and a
// segment.Store's resolved edges. Edge order within a node's adjacency list
// is input order (a counting sort is stable by construction here since each
// edge is placed at its bucket's next free slot in a single forward pass).
func Build(numLocations int, resolved []segment.ResolvedEdge) *Graph {
	offsets := make([]int32, numLocations+1)
	for _, r := range resolved {
		offsets[r.FromID+1]++
	}
	for i := 1; i <= numLocations; i++ {
		offsets[i] += offsets[i-1]
	}

	cursor := make([]int32, numLocations)
	copy(cursor, offsets[:numLocations])

	edges := make([]models.Edge, len(resolved))
	for _, r := range resolved {
		idx := cursor[r.FromID]
		edges[idx] = r.Edge
		cursor[r.FromID]++
	}

	return &Graph{offsets: offsets, edges: edges}
}

// Outgoing returns the edges leaving a location, in input order. The
// returned slice aliases the graph's backing array and must not be
// mutated.
func (g *Graph) Outgoing(id models.LocationID) []models.Edge {
	if int(id) < 0 || int(id)+1 >= len(g.offsets) {
		return nil
	}
	return g.edges[g.offsets[id]:g.offsets[id+1]]
}

// NumEdges returns the total edge count, for diagnostics (cmd/graphstat).
func (g *Graph) NumEdges() int {
	return len(g.edges)
}

// NumLocations returns the number of distinct locations indexed.
func (g *Graph) NumLocations() int {
	return len(g.offsets) - 1
}
