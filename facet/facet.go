// Package facet owns the dense triangle-soup representation admesh repairs:
// vertices, facets, and the append/swap-remove store that backs them.
package facet

import "github.com/go-gl/mathgl/mgl32"

// Vertex is a single mesh point, single precision to match STL's on-disk
// representation bit for bit.
type Vertex = mgl32.Vec3

// Extra is the two bytes of opaque per-facet data binary STL carries after
// the vertices (its "attribute byte count"), preserved verbatim for
// round-tripping.
type Extra [2]byte

// Facet is one triangle: its stored normal (not necessarily unit length or
// even correct until repair.FixNormalValues runs), its three vertices in
// winding order, and the two trailer bytes.
type Facet struct {
	Normal   Vertex
	Vertices [3]Vertex
	Extra    Extra
}

// Edge returns the two endpoints of local edge e (e in 0..2), in winding
// order: edge 0 is (v0,v1), edge 1 is (v1,v2), edge 2 is (v2,v0).
func (f *Facet) Edge(e int) (Vertex, Vertex) {
	return f.Vertices[e], f.Vertices[(e+1)%3]
}

// OppositeVertex returns the local vertex index not touched by edge e.
func OppositeVertex(e int) int {
	return (e + 2) % 3
}
