package admesh

import "github.com/admesh/admesh/facet"

// tri builds a facet from three vertices, computing its normal the same way
// geom.Normal would (unnormalized cross product), since repair stages don't
// require an accurate stored normal to begin with.
func tri(v0, v1, v2 facet.Vertex) facet.Facet {
	e1 := facet.Vertex{v1[0] - v0[0], v1[1] - v0[1], v1[2] - v0[2]}
	e2 := facet.Vertex{v2[0] - v0[0], v2[1] - v0[1], v2[2] - v0[2]}
	n := facet.Vertex{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}
	return facet.Facet{Normal: n, Vertices: [3]facet.Vertex{v0, v1, v2}}
}

// unitTetrahedron returns 4 facets forming a closed, consistently outward-
// wound tetrahedron with vertices at the origin and the three unit axis
// points. Its enclosed volume is 1/6.
func unitTetrahedron() []facet.Facet {
	o := facet.Vertex{0, 0, 0}
	x := facet.Vertex{1, 0, 0}
	y := facet.Vertex{0, 1, 0}
	z := facet.Vertex{0, 0, 1}
	return []facet.Facet{
		tri(o, y, x), // base, z=0 plane, outward normal -z
		tri(o, x, z), // outward normal -y
		tri(o, z, y), // outward normal -x
		tri(x, y, z), // the slanted face, outward normal (1,1,1)-ish
	}
}

// unitCube returns the 12 facets of a closed, consistently outward-wound,
// axis-aligned unit cube from (0,0,0) to (1,1,1). Every edge is shared by
// exactly two facets traversing it in opposite directions; its enclosed
// volume is 1.0 and its surface area is 6.0.
func unitCube() []facet.Facet {
	v0 := facet.Vertex{0, 0, 0}
	v1 := facet.Vertex{1, 0, 0}
	v2 := facet.Vertex{1, 1, 0}
	v3 := facet.Vertex{0, 1, 0}
	v4 := facet.Vertex{0, 0, 1}
	v5 := facet.Vertex{1, 0, 1}
	v6 := facet.Vertex{1, 1, 1}
	v7 := facet.Vertex{0, 1, 1}

	return []facet.Facet{
		tri(v0, v2, v1), // bottom
		tri(v0, v3, v2),
		tri(v4, v5, v6), // top
		tri(v4, v6, v7),
		tri(v0, v1, v5), // front (y=0)
		tri(v0, v5, v4),
		tri(v3, v6, v2), // back (y=1)
		tri(v3, v7, v6),
		tri(v0, v7, v3), // left (x=0)
		tri(v0, v4, v7),
		tri(v1, v2, v6), // right (x=1)
		tri(v1, v6, v5),
	}
}

// translateAll returns a copy of facets with offset added to every vertex.
func translateAll(facets []facet.Facet, offset facet.Vertex) []facet.Facet {
	out := make([]facet.Facet, len(facets))
	for i, f := range facets {
		out[i] = f
		for v := 0; v < 3; v++ {
			out[i].Vertices[v] = facet.Vertex{
				f.Vertices[v][0] + offset[0],
				f.Vertices[v][1] + offset[1],
				f.Vertices[v][2] + offset[2],
			}
		}
	}
	return out
}
