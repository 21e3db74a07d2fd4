package admesh

import (
	"github.com/admesh/admesh/geom"
	"github.com/admesh/admesh/match"
	"github.com/admesh/admesh/repair"
)

// RepairOptions mirrors stl_repair's many boolean flags as a plain struct
// instead of a long positional argument list.
type RepairOptions struct {
	// FixAll runs every stage below with its default settings, the same as
	// admesh.c's fixall_flag (on by default unless any individual flag is
	// set). DefaultRepairOptions sets this true.
	FixAll bool

	Exact             bool
	Nearby            bool
	Tolerance         float32
	Increment         float32
	Iterations        int
	RemoveUnconnected bool
	FillHoles         bool
	NormalDirections  bool
	NormalValues      bool
	// ReverseAll unconditionally flips every facet's winding and negates its
	// normal, independent of connectivity (stl_reverse_all_facets).
	ReverseAll bool
}

// DefaultRepairOptions returns the flag set admesh.c uses when invoked with
// no individual check flags: every stage enabled, tolerance left at 0 so
// that Mesh.Repair derives a starting tolerance from the mesh's own
// shortest edge (half its length, or 1e-6 if that length is 0).
func DefaultRepairOptions() RepairOptions {
	return RepairOptions{
		FixAll:            true,
		Nearby:            true,
		Increment:         0,
		Iterations:        2,
		RemoveUnconnected: true,
		FillHoles:         true,
		NormalDirections:  true,
		NormalValues:      true,
	}
}

// Repair runs the fixed-order repair pipeline: exact
// matching always runs first (it is also each later stage's own
// prerequisite), then nearby matching, unconnected/degenerate removal, hole
// filling, normal-direction fixing, and normal-value fixing, each gated by
// its own option flag (or by FixAll, which enables all of them). If the
// sticky error flag is already set, Repair returns without touching the mesh;
// the stages themselves do not set it.
func (m *Mesh) Repair(opts RepairOptions) {
	if m.failed() {
		return
	}
	m.InvalidateSharedVertices()
	if opts.FixAll {
		opts.Exact = true
		opts.Nearby = true
		opts.RemoveUnconnected = true
		opts.FillHoles = true
		opts.NormalDirections = true
		opts.NormalValues = true
	}

	degenerate := m.runExact()

	if opts.Nearby {
		iterations := opts.Iterations
		if iterations <= 0 {
			iterations = 2
		}
		tolerance := opts.Tolerance
		if tolerance <= 0 {
			tolerance = m.Stats.ShortestEdge / 2
			if tolerance <= 0 {
				tolerance = 1e-6
			}
		}
		result := match.Nearby(m.Store, m.Neighbors, match.NearbyOptions{
			Tolerance:  tolerance,
			Increment:  opts.Increment,
			Iterations: iterations,
		})
		m.Stats.EdgesFixed += result.EdgesFixed
		degenerate = result.Degenerate
		m.Stats.updateBoundingBox(m.Store)
	}

	if opts.RemoveUnconnected {
		m.Stats.DegenerateFacets += repair.PruneDegenerate(m.Store, m.Neighbors, degenerate)
		m.syncFacetCount()
		m.Stats.FacetsRemoved += repair.PruneUnconnected(m.Store, m.Neighbors)
		m.syncFacetCount()
	}

	if opts.FillHoles {
		result := repair.FillHoles(m.Store, m.Neighbors)
		m.Stats.FacetsAdded += result.FacetsAdded
		m.syncFacetCount()
		degenerate = m.runExact()
	}

	if opts.NormalDirections {
		result := repair.FixNormalDirections(m.Store, m.Neighbors)
		m.Stats.FacetsReversed += result.FacetsReversed
		m.Stats.NumberOfParts = result.NumberOfParts
	}

	if opts.NormalValues {
		degenerate = m.currentDegenerate(degenerate)
		result := repair.FixNormalValues(m.Store, degenerate)
		m.Stats.NormalsFixed += result.NormalsFixed
	}

	if opts.ReverseAll {
		m.reverseAll()
	}

	m.Stats.updateConnectivityTallies(m.Neighbors)
	m.Stats.CalculateVolume(m.Store)
	m.Stats.CalculateSurfaceArea(m.Store)
	m.Stats.VerifyNeighbors(m.Neighbors)
}

// runExact refreshes connectivity via the exact matcher, folding
// its degenerate-edge findings and collision counter into Stats, and
// returns the per-facet degenerate flags for callers that need them
// immediately (hole filling invalidates them, so this is re-run after).
func (m *Mesh) runExact() []bool {
	result := match.Exact(m.Store, m.Neighbors)
	m.Stats.Collisions = result.Collisions
	return result.Degenerate
}

// currentDegenerate re-derives degenerate flags sized to the store's current
// length when a prior stage (hole filling, pruning) may have resized it
// since degenerate was last computed.
func (m *Mesh) currentDegenerate(degenerate []bool) []bool {
	if len(degenerate) == m.Store.Len() {
		return degenerate
	}
	return m.runExact()
}

// reverseAll flips every facet's winding and normal unconditionally
// (stl_reverse_all_facets), then rebuilds connectivity since the which-
// vertex-not tags are winding-relative.
func (m *Mesh) reverseAll() {
	for f := 0; f < m.Store.Len(); f++ {
		ft := m.Store.Get(f)
		ft.Vertices[1], ft.Vertices[2] = ft.Vertices[2], ft.Vertices[1]
		ft.Normal = ft.Normal.Mul(-1)
	}
	m.runExact()
}

// FixNormalValuesNow recomputes every facet's stored normal immediately,
// without running the rest of the repair pipeline: useful after a
// transform (translate/rotate/scale/mirror) changes vertex positions but
// the caller does not want a full Repair pass. Degenerate facets are
// computed fresh from the current geometry.
func (m *Mesh) FixNormalValuesNow() {
	if m.failed() {
		return
	}
	degenerate := make([]bool, m.Store.Len())
	for f := range degenerate {
		ft := m.Store.Get(f)
		n := geom.Normal(ft.Vertices[0], ft.Vertices[1], ft.Vertices[2])
		if _, ok := geom.Normalize(n); !ok {
			degenerate[f] = true
		}
	}
	result := repair.FixNormalValues(m.Store, degenerate)
	m.Stats.NormalsFixed += result.NormalsFixed
}
