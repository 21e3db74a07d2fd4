// Package repair implements the mesh-healing stages that run after
// connectivity has been established: dropping degenerate and unconnected
// facets, filling remaining boundary loops, making winding consistent
// across each shell, and recomputing normal values.
package repair

import (
	"github.com/admesh/admesh/facet"
	"github.com/admesh/admesh/neighbor"
)

// PruneResult tallies what PruneDegenerate and PruneUnconnected removed.
type PruneResult struct {
	DegenerateRemoved  int
	UnconnectedRemoved int
}

// PruneDegenerate drops every facet flagged in degenerate (the edge
// matcher's output), compacting store and nt in lockstep via swap-remove:
// walk forward, and on a removal re-examine the same index instead of
// advancing, since the last element just moved there.
func PruneDegenerate(store *facet.Store, nt *neighbor.Table, degenerate []bool) int {
	removed := 0
	i := 0
	for i < store.Len() {
		if !degenerate[i] {
			i++
			continue
		}
		movedFrom, moved := store.SwapRemove(i)
		nt.SwapRemove(i)
		if moved {
			degenerate[i] = degenerate[movedFrom]
		}
		degenerate = degenerate[:len(degenerate)-1]
		removed++
	}
	return removed
}

// PruneUnconnected drops every facet with no matched neighbor on any of its
// three edges: a fully isolated triangle that shares no edge with the rest
// of the mesh and that hole-filling cannot help, since it has no boundary
// to fill against.
func PruneUnconnected(store *facet.Store, nt *neighbor.Table) int {
	removed := 0
	i := 0
	for i < store.Len() {
		if nt.ConnectedSlots(i) > 0 {
			i++
			continue
		}
		store.SwapRemove(i)
		nt.SwapRemove(i)
		removed++
	}
	return removed
}
