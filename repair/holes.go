package repair

import (
	"github.com/admesh/admesh/facet"
	"github.com/admesh/admesh/geom"
	"github.com/admesh/admesh/neighbor"
)

// HoleFillResult tallies FillHoles' output.
type HoleFillResult struct {
	HolesFilled int
	FacetsAdded int
}

type boundaryEdge struct {
	facet, edge int
}

// FillHoles closes every boundary loop it can walk back to its own start
// vertex, fan-triangulating the loop from its first vertex. A
// chain that dead-ends instead of closing (a facet wound the wrong way, or a
// genuinely open surface) is left alone rather than guessed at.
//
// The new facets are appended unconnected; callers re-run match.Exact
// afterward to wire them into the neighbor table.
func FillHoles(store *facet.Store, nt *neighbor.Table) HoleFillResult {
	n := store.Len()
	visited := make([][3]bool, n)

	starts := make(map[facet.Vertex][]boundaryEdge)
	for f := 0; f < n; f++ {
		for e := 0; e < 3; e++ {
			if nt.Tag(f, e) != neighbor.None {
				continue
			}
			a, _ := store.Get(f).Edge(e)
			starts[a] = append(starts[a], boundaryEdge{f, e})
		}
	}

	var result HoleFillResult
	for f := 0; f < n; f++ {
		for e := 0; e < 3; e++ {
			if visited[f][e] || nt.Tag(f, e) != neighbor.None {
				continue
			}
			loop := walkLoop(store, starts, visited, f, e)
			if len(loop) < 3 {
				continue
			}
			result.HolesFilled++
			result.FacetsAdded += fanTriangulate(store, reversed(loop))
		}
	}
	return result
}

// walkLoop follows unmatched boundary edges starting at (startFacet,
// startEdge) from vertex to vertex until it returns to its own start vertex,
// returning the loop's vertices in order, or nil if the chain dead-ends
// before closing.
func walkLoop(store *facet.Store, starts map[facet.Vertex][]boundaryEdge, visited [][3]bool, startFacet, startEdge int) []facet.Vertex {
	a, b := store.Get(startFacet).Edge(startEdge)
	visited[startFacet][startEdge] = true

	loop := []facet.Vertex{a}
	cur := b
	// A non-manifold mesh could in principle produce a chain that revisits
	// vertices without ever reaching its own start; bound the walk by the
	// total number of facet edges (an upper bound on the boundary edges) so
	// it always terminates.
	maxSteps := store.Len() * 3
	for step := 0; step < maxSteps; step++ {
		if cur == loop[0] {
			return loop
		}
		next, ok := nextBoundaryEdge(starts, visited, cur)
		if !ok {
			return nil
		}
		loop = append(loop, cur)
		_, nb := store.Get(next.facet).Edge(next.edge)
		visited[next.facet][next.edge] = true
		cur = nb
	}
	return nil
}

func nextBoundaryEdge(starts map[facet.Vertex][]boundaryEdge, visited [][3]bool, at facet.Vertex) (boundaryEdge, bool) {
	for _, be := range starts[at] {
		if !visited[be.facet][be.edge] {
			return be, true
		}
	}
	return boundaryEdge{}, false
}

// reversed flips a closed loop's winding. walkLoop follows boundary edges in
// the same direction their owning facets already traverse them, so the new
// facets must close the hole the opposite way to pair up as proper
// (non-Reversed) neighbors rather than re-creating the same winding
// disagreement the hole left behind.
func reversed(loop []facet.Vertex) []facet.Vertex {
	out := make([]facet.Vertex, len(loop))
	for i, v := range loop {
		out[len(loop)-1-i] = v
	}
	return out
}

// fanTriangulate fills a closed loop by fanning every triangle out of its
// first vertex, and returns how many facets it added.
func fanTriangulate(store *facet.Store, loop []facet.Vertex) int {
	added := 0
	for i := 1; i < len(loop)-1; i++ {
		v0, v1, v2 := loop[0], loop[i], loop[i+1]
		store.Append(facet.Facet{
			Normal:   geom.Normal(v0, v1, v2),
			Vertices: [3]facet.Vertex{v0, v1, v2},
		})
		added++
	}
	return added
}
