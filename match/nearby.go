package match

import (
	"github.com/admesh/admesh/facet"
	"github.com/admesh/admesh/geom"
	"github.com/admesh/admesh/neighbor"
)

// NearbyOptions controls the iterative snap-and-rematch pass.
type NearbyOptions struct {
	// Tolerance is the starting snap distance.
	Tolerance float32
	// Increment is added to the tolerance before each subsequent iteration.
	Increment float32
	// Iterations bounds how many growing-tolerance passes run. The C
	// ADMesh CLI defaults this to 2 (-tNN plus one widened retry); the
	// pipeline is free to pick any number.
	Iterations int
}

// NearbyResult carries the outcome of Nearby.
type NearbyResult struct {
	EdgesFixed int
	Degenerate []bool
}

type cellKey struct{ x, y, z int32 }

type liveEndpoint struct {
	facet, vertex int
}

// Coordonnée de cellule : floor(coord / tau) pour chaque axe.
func cellOf(v facet.Vertex, tau float32) cellKey {
	return cellKey{
		x: floorDiv(v.X(), tau),
		y: floorDiv(v.Y(), tau),
		z: floorDiv(v.Z(), tau),
	}
}

func floorDiv(coord, tau float32) int32 {
	q := coord / tau
	i := int32(q)
	if q < float32(i) {
		i--
	}
	return i
}

// liveVertex reports whether local vertex v of facet f touches at least one
// currently-unmatched edge: edge v (f,v)-(f,v+1), or edge (v+2)%3, which ends
// at v.
func liveVertex(nt *neighbor.Table, f, v int) bool {
	eIn := (v + 2) % 3
	return nt.Tag(f, v) == neighbor.None || nt.Tag(f, eIn) == neighbor.None
}

// Nearby runs the tolerance-driven snap-and-rematch pass, bucketing
// unmatched-edge endpoints into a uniform spatial grid so each snap
// candidate only probes its own cell neighborhood.
//
// Each iteration: collect every vertex that still touches an unmatched edge,
// bucket them into cells of side tau, then for each such endpoint p probe its
// 27 neighboring cells and snap every other live endpoint found within tau
// onto p's coordinate, except one belonging to the same facet, since that
// would collapse a triangle's own edge instead of closing a gap with a
// neighbor. A snap moves every vertex in the store that sits at the snapped
// endpoint's old coordinate, skipping facets that already hold p's
// coordinate. A final Exact pass after the loop both rebuilds connectivity on
// the snapped coordinates and, via its own degenerate check, flags any facet
// whose snap collapsed one of its edges.
func Nearby(store *facet.Store, nt *neighbor.Table, opts NearbyOptions) NearbyResult {
	tau := opts.Tolerance
	edgesFixed := 0

	for iter := 0; iter < opts.Iterations; iter++ {
		Exact(store, nt)

		live := collectLive(store, nt)
		if len(live) == 0 {
			break
		}

		buckets := make(map[cellKey][]liveEndpoint, len(live))
		for _, p := range live {
			v := store.Get(p.facet).Vertices[p.vertex]
			c := cellOf(v, tau)
			buckets[c] = append(buckets[c], p)
		}

		tauSq := tau * tau
		for _, p := range live {
			pv := store.Get(p.facet).Vertices[p.vertex]
			c := cellOf(pv, tau)
			for dz := int32(-1); dz <= 1; dz++ {
				for dy := int32(-1); dy <= 1; dy++ {
					for dx := int32(-1); dx <= 1; dx++ {
						for _, q := range buckets[cellKey{c.x + dx, c.y + dy, c.z + dz}] {
							if q.facet == p.facet {
								continue
							}
							qv := store.Get(q.facet).Vertices[q.vertex]
							if geom.EdgeLengthSq(pv, qv) > tauSq {
								continue
							}
							if qv == pv {
								continue
							}
							// Move every copy of qv so facets matched at qv stay
							// matched; a facet already holding pv is left as is.
							for g := 0; g < store.Len(); g++ {
								gv := &store.Get(g).Vertices
								if gv[0] == pv || gv[1] == pv || gv[2] == pv {
									continue
								}
								for k := range gv {
									if gv[k] == qv {
										gv[k] = pv
									}
								}
							}
							edgesFixed++
						}
					}
				}
			}
		}

		tau += opts.Increment
	}

	final := Exact(store, nt)
	return NearbyResult{EdgesFixed: edgesFixed, Degenerate: final.Degenerate}
}

func collectLive(store *facet.Store, nt *neighbor.Table) []liveEndpoint {
	var live []liveEndpoint
	for f := 0; f < store.Len(); f++ {
		for v := 0; v < 3; v++ {
			if liveVertex(nt, f, v) {
				live = append(live, liveEndpoint{facet: f, vertex: v})
			}
		}
	}
	return live
}
