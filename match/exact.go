// Package match implements the two connectivity passes of the repair
// pipeline: the exact edge matcher and the tolerance-driven nearby
// matcher built on top of it.
package match

import (
	"github.com/admesh/admesh/edgehash"
	"github.com/admesh/admesh/facet"
	"github.com/admesh/admesh/geom"
	"github.com/admesh/admesh/neighbor"
)

// ExactResult carries the per-run outcome of Exact, beyond its effect on
// the neighbor table itself.
type ExactResult struct {
	// Degenerate[f] is true if facet f has at least one edge whose two
	// endpoints are bit-identical (or NaN-tainted) and was therefore never
	// hashed or matched on that edge.
	Degenerate []bool
	Collisions int
}

// Exact rebuilds nt from scratch by hashing every facet's three edges and
// pairing the ones that coincide bit-for-bit. It is idempotent:
// running it twice in a row on unchanged coordinates produces the same
// table, since it always starts from an empty hash and an emptied table.
func Exact(store *facet.Store, nt *neighbor.Table) ExactResult {
	n := store.Len()
	nt.Reset(n)
	h := edgehash.New(n)
	degenerate := make([]bool, n)

	for f := 0; f < n; f++ {
		ft := store.Get(f)
		for e := 0; e < 3; e++ {
			a, b := ft.Edge(e)
			if edgehash.HasNaN(a, b) || geom.IsDegenerate(a, b) {
				degenerate[f] = true
				continue
			}

			fp := edgehash.Compute(a, b)
			idx, prev, found := h.Find(fp)
			if !found {
				h.Insert(fp, f, e)
				continue
			}

			rec := h.RecordAt(idx)
			if rec.Matched {
				// Third incident facet on this fingerprint: non-manifold
				// edge. The later incidence stays unmatched (None), like
				// an ordinary boundary edge; it is not counted in
				// BackwardsEdges, which only tallies Reversed tags.
				continue
			}

			g, e2 := int(rec.Facet), int(rec.WhichEdge)
			ga, gb := store.Get(g).Edge(e2)
			if a == ga && b == gb {
				// Same direction: both facets traverse the shared edge the
				// same way. Keep connectivity for the orientation fixer to
				// resolve later, and keep the record around so a third
				// incidence on this fingerprint is caught above.
				nt.Connect(f, e, int32(g), neighbor.Reversed)
				nt.Connect(g, e2, int32(f), neighbor.Reversed)
				rec.Matched = true
				continue
			}

			// Opposite direction: the normal, consistent case.
			nt.Connect(f, e, int32(g), int8(facet.OppositeVertex(e2)))
			nt.Connect(g, e2, int32(f), int8(facet.OppositeVertex(e)))
			h.Remove(fp, idx, prev)
		}
	}

	return ExactResult{Degenerate: degenerate, Collisions: h.Collisions()}
}
