package repair

import (
	"testing"

	"github.com/admesh/admesh/facet"
	"github.com/admesh/admesh/match"
	"github.com/admesh/admesh/neighbor"
)

func buildSquare() (*facet.Store, *neighbor.Table) {
	s := facet.NewStore(2)
	s.Append(facet.Facet{Vertices: [3]facet.Vertex{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}})
	s.Append(facet.Facet{Vertices: [3]facet.Vertex{{1, 1, 0}, {0, 1, 0}, {0, 0, 0}}})
	nt := neighbor.NewTable(s.Len())
	match.Exact(s, nt)
	return s, nt
}

func TestPruneDegenerateRemovesFlagged(t *testing.T) {
	s, nt := buildSquare()
	s.Append(facet.Facet{Vertices: [3]facet.Vertex{{9, 9, 9}, {9, 9, 9}, {5, 5, 5}}})
	res := match.Exact(s, nt)

	removed := PruneDegenerate(s, nt, res.Degenerate)

	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestPruneUnconnectedRemovesIsolatedFacet(t *testing.T) {
	s, nt := buildSquare()
	// A third facet far away, sharing no edge with anything.
	s.Append(facet.Facet{Vertices: [3]facet.Vertex{{100, 100, 100}, {101, 100, 100}, {100, 101, 100}}})
	match.Exact(s, nt)

	removed := PruneUnconnected(s, nt)

	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestPruneUnconnectedKeepsConnectedFacets(t *testing.T) {
	s, nt := buildSquare()
	removed := PruneUnconnected(s, nt)
	if removed != 0 {
		t.Errorf("removed = %d, want 0 when every facet has a matched edge", removed)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}
