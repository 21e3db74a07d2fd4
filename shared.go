package admesh

import "github.com/admesh/admesh/shared"

// SharedVertices builds (or returns the cached) shared-vertex view of the
// mesh, required by exportio's OFF writer. The cache is released
// by any mutation of coordinates or topology: Repair, Merge, and every
// transform call InvalidateSharedVertices for this reason.
func (m *Mesh) SharedVertices() *shared.Mesh {
	if m.shared == nil {
		m.shared = shared.Build(m.Store)
		m.Stats.SharedVertices = len(m.shared.VShared)
	}
	return m.shared
}

// InvalidateSharedVertices drops the cached shared-vertex view, mirroring
// stl_invalidate_shared_vertices. Safe to call even if none was built yet.
func (m *Mesh) InvalidateSharedVertices() {
	m.shared = nil
}
