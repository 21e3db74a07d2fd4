// Package admesh repairs triangle-soup STL meshes into topologically
// consistent, outward-oriented, closed manifolds: exact and tolerance-based
// edge matching, unconnected/degenerate pruning, hole filling, normal-
// direction and normal-value fixing, and shared-vertex generation, plus the
// statistics (bounding box, volume, surface area) the C ADMesh tool reports
// alongside a repair.
//
// Mesh is the single owned value every operation mutates in place: a struct
// holding every buffer a pipeline stage needs, with no hidden global state.
package admesh

import (
	"github.com/admesh/admesh/facet"
	"github.com/admesh/admesh/neighbor"
	"github.com/admesh/admesh/shared"
)

// Mesh is the repair pipeline's owned, mutable scene: a facet store, its
// neighbor table, running stats, and a sticky error flag. No operation on
// a Mesh is reentrant, and none suspend: every
// method runs synchronously to completion or returns with Err set.
type Mesh struct {
	Store     *facet.Store
	Neighbors *neighbor.Table
	Stats     Stats

	err    error
	shared *shared.Mesh
}

// New wraps an already-parsed facet slice into a Mesh ready for repair,
// following stl_open's contract of recording the original facet count and
// priming the bounding box before any repair stage runs.
func New(facets []facet.Facet) *Mesh {
	store := facet.NewStoreFromFacets(facets)
	m := &Mesh{
		Store:     store,
		Neighbors: neighbor.NewTable(store.Len()),
	}
	m.Stats.NumberOfFacets = store.Len()
	m.Stats.OriginalNumFacets = store.Len()
	m.Stats.updateBoundingBox(store)
	m.Stats.updateShortestEdge(store)
	return m
}

// Err returns the mesh's sticky error, or nil if none is set.
func (m *Mesh) Err() error { return m.err }

// ClearError clears the sticky error flag, mirroring stl_clear_error so a
// CLI can attempt subsequent writers independently after one fails.
func (m *Mesh) ClearError() { m.err = nil }

// setError records err as the mesh's sticky flag, unless one is already set
// (the first failure wins, matching stl_file.error's single-bit semantics)
// or err's Kind is a numeric-warning, which never trips the sticky flag.
func (m *Mesh) setError(err *Error) {
	if m.err != nil || err == nil {
		return
	}
	if err.Kind.IsWarning() {
		return
	}
	m.err = err
}

// failed reports whether the sticky error flag is already set: pipeline
// stages short-circuit on this instead of proceeding against a mesh a prior
// stage gave up on.
func (m *Mesh) failed() bool { return m.err != nil }

// syncFacetCount refreshes Stats.NumberOfFacets from the store after any
// stage that appends or removes facets.
func (m *Mesh) syncFacetCount() {
	m.Stats.NumberOfFacets = m.Store.Len()
}

// Merge appends another mesh's facets to this one with no implicit
// translation (stl_open_merge): the caller is responsible for positioning
// the two meshes
// beforehand via the transform package if they should not overlap.
func (m *Mesh) Merge(other *Mesh) {
	if m.failed() {
		return
	}
	if other == nil {
		m.setError(newError(KindPrecondition, "merge: other mesh is nil"))
		return
	}
	for _, f := range other.Store.All() {
		m.Store.Append(f)
	}
	m.syncFacetCount()
	m.Stats.updateBoundingBox(m.Store)
	m.Stats.updateShortestEdge(m.Store)
	m.Neighbors = neighbor.NewTable(m.Store.Len())
	m.InvalidateSharedVertices()
}
