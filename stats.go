package admesh

import (
	"fmt"
	"math"

	"github.com/admesh/admesh/facet"
	"github.com/admesh/admesh/geom"
	"github.com/admesh/admesh/neighbor"
)

// Stats holds the mutable counters a mesh carries: geometry accumulated
// during parsing and repair, plus the tallies each repair stage updates.
// Field for field this follows the C ADMesh stl_stats struct; its
// allocator byte counters (facets_malloced, shared_malloced) are dropped
// since Go's slices need no such bookkeeping.
type Stats struct {
	NumberOfFacets int

	Min, Max, Size   facet.Vertex
	BoundingDiameter float32
	ShortestEdge     float32

	Volume      float32
	SurfaceArea float32

	ConnectedFacets1Edge int
	ConnectedFacets2Edge int
	ConnectedFacets3Edge int

	EdgesFixed        int
	DegenerateFacets  int
	FacetsRemoved     int
	FacetsAdded       int
	FacetsReversed    int
	BackwardsEdges    int
	NormalsFixed      int
	NumberOfParts     int
	SharedVertices    int
	OriginalNumFacets int
	Collisions        int
}

// updateBoundingBox recomputes Min, Max, Size and BoundingDiameter from the
// store's current vertices. Called after parse and after any operation that
// moves vertices (nearby matching, transforms).
func (s *Stats) updateBoundingBox(store *facet.Store) {
	n := store.Len()
	if n == 0 {
		s.Min, s.Max, s.Size = facet.Vertex{}, facet.Vertex{}, facet.Vertex{}
		s.BoundingDiameter = 0
		return
	}

	min := store.Get(0).Vertices[0]
	max := min
	for f := 0; f < n; f++ {
		ft := store.Get(f)
		for _, v := range ft.Vertices {
			for i := 0; i < 3; i++ {
				if v[i] < min[i] {
					min[i] = v[i]
				}
				if v[i] > max[i] {
					max[i] = v[i]
				}
			}
		}
	}

	s.Min, s.Max = min, max
	s.Size = facet.Vertex{max[0] - min[0], max[1] - min[1], max[2] - min[2]}
	s.BoundingDiameter = float32(math.Sqrt(float64(
		s.Size[0]*s.Size[0] + s.Size[1]*s.Size[1] + s.Size[2]*s.Size[2])))
}

// updateShortestEdge scans every facet edge for the minimum length, skipping
// the cost of a sqrt per edge by comparing squared lengths until the end.
func (s *Stats) updateShortestEdge(store *facet.Store) {
	n := store.Len()
	if n == 0 {
		s.ShortestEdge = 0
		return
	}
	shortestSq := float32(math.MaxFloat32)
	for f := 0; f < n; f++ {
		ft := store.Get(f)
		for e := 0; e < 3; e++ {
			a, b := ft.Edge(e)
			if l := geom.EdgeLengthSq(a, b); l < shortestSq {
				shortestSq = l
			}
		}
	}
	s.ShortestEdge = float32(math.Sqrt(float64(shortestSq)))
}

// updateConnectivityTallies recomputes ConnectedFacetsNEdge from the current
// neighbor table: how many facets have at least 1, 2, or all 3 edges
// matched.
func (s *Stats) updateConnectivityTallies(nt *neighbor.Table) {
	s.ConnectedFacets1Edge, s.ConnectedFacets2Edge, s.ConnectedFacets3Edge = 0, 0, 0
	for f := 0; f < nt.Len(); f++ {
		switch nt.ConnectedSlots(f) {
		case 1:
			s.ConnectedFacets1Edge++
		case 2:
			s.ConnectedFacets2Edge++
		case 3:
			s.ConnectedFacets3Edge++
		}
	}
	// The 1- and 2-edge tallies count facets with AT LEAST that many
	// connected edges (stl_check_facets_exact increments every counter
	// that applies), so a fully-connected facet is also counted in both.
	s.ConnectedFacets2Edge += s.ConnectedFacets3Edge
	s.ConnectedFacets1Edge += s.ConnectedFacets2Edge
}

// CalculateVolume sums the signed tetra-volume of every facet against the
// origin. Only meaningful once normals and windings are
// consistent; callers run this after FixNormalDirections.
func (s *Stats) CalculateVolume(store *facet.Store) {
	var vol float32
	for f := 0; f < store.Len(); f++ {
		ft := store.Get(f)
		vol += geom.TetraVolume(ft.Vertices[0], ft.Vertices[1], ft.Vertices[2])
	}
	s.Volume = vol
}

// CalculateSurfaceArea sums every facet's triangle area.
func (s *Stats) CalculateSurfaceArea(store *facet.Store) {
	var area float32
	for f := 0; f < store.Len(); f++ {
		ft := store.Get(f)
		area += geom.TriangleArea(ft.Vertices[0], ft.Vertices[1], ft.Vertices[2])
	}
	s.SurfaceArea = area
}

// VerifyNeighbors asserts the neighbor table's symmetry invariant
// (neighbor[f][e] = g implies some e' has neighbor[g][e'] = f), sets
// BackwardsEdges to the number of matched pairs whose two facets still
// traverse their shared edge the same direction (neighbor.Reversed on
// either side, which a prior FixNormalDirections pass should have resolved),
// and returns every symmetry violation found for callers that want to log
// them. A fully-repaired mesh returns no violations and BackwardsEdges == 0.
func (s *Stats) VerifyNeighbors(nt *neighbor.Table) (violations []string) {
	n := nt.Len()
	backwards := 0
	for f := 0; f < n; f++ {
		for e := 0; e < 3; e++ {
			g := nt.Neighbor(f, e)
			tag := nt.Tag(f, e)
			if tag == neighbor.Reversed {
				backwards++
			}
			if g == -1 {
				continue
			}
			if !hasBackReference(nt, int(g), f) {
				violations = append(violations, fmt.Sprintf(
					"facet %d edge %d points at facet %d, which has no matching back-reference", f, e, g))
			}
		}
	}
	s.BackwardsEdges = backwards / 2
	return violations
}

func hasBackReference(nt *neighbor.Table, g, f int) bool {
	for e2 := 0; e2 < 3; e2++ {
		if int(nt.Neighbor(g, e2)) == f {
			return true
		}
	}
	return false
}
