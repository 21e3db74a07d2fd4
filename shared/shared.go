// Package shared builds the deduplicated shared-vertex representation a
// mesh's facets index into: every bit-identical vertex position
// collapses to one entry, which is what OFF and most renderers expect
// instead of a flat, repeated-vertex triangle soup.
package shared

import "github.com/admesh/admesh/facet"

// Mesh is the shared-vertex view of a facet store at the moment Build ran.
// It is a snapshot: any later mutation to the store's vertices or topology
// (a repair pass, a transform) invalidates it, and Build must be called
// again.
type Mesh struct {
	// VShared holds each distinct vertex position exactly once.
	VShared []facet.Vertex
	// VIndices[f] holds the three indices into VShared for facet f's
	// vertices, in the facet's own winding order.
	VIndices [][3]int32
}

// Build deduplicates every vertex position across store's facets.
func Build(store *facet.Store) *Mesh {
	n := store.Len()
	index := make(map[facet.Vertex]int32, n)
	verts := make([]facet.Vertex, 0, n)
	indices := make([][3]int32, n)

	for f := 0; f < n; f++ {
		ft := store.Get(f)
		for v := 0; v < 3; v++ {
			p := ft.Vertices[v]
			id, ok := index[p]
			if !ok {
				id = int32(len(verts))
				verts = append(verts, p)
				index[p] = id
			}
			indices[f][v] = id
		}
	}

	return &Mesh{VShared: verts, VIndices: indices}
}
