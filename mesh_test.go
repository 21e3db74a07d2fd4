package admesh

import (
	"testing"

	"github.com/admesh/admesh/facet"
)

func TestNewMeshStats(t *testing.T) {
	m := New(unitCube())
	if m.Stats.NumberOfFacets != 12 {
		t.Fatalf("NumberOfFacets = %d, want 12", m.Stats.NumberOfFacets)
	}
	if m.Stats.OriginalNumFacets != 12 {
		t.Errorf("OriginalNumFacets = %d, want 12", m.Stats.OriginalNumFacets)
	}
	if m.Stats.Max[0] != 1 || m.Stats.Max[1] != 1 || m.Stats.Max[2] != 1 {
		t.Errorf("Max = %v, want (1,1,1)", m.Stats.Max)
	}
	if m.Stats.Min[0] != 0 || m.Stats.Min[1] != 0 || m.Stats.Min[2] != 0 {
		t.Errorf("Min = %v, want (0,0,0)", m.Stats.Min)
	}
}

func TestMeshErrorFlagSticky(t *testing.T) {
	m := New(unitCube())
	first := newError(KindIO, "first failure")
	second := newError(KindIO, "second failure")
	m.setError(first)
	m.setError(second)
	if m.Err() != first {
		t.Fatalf("Err() = %v, want the first error recorded", m.Err())
	}
	m.ClearError()
	if m.Err() != nil {
		t.Fatalf("Err() after ClearError = %v, want nil", m.Err())
	}
}

func TestMeshSetErrorIgnoresWarnings(t *testing.T) {
	m := New(unitCube())
	m.setError(newError(KindNumericWarning, "near-zero normal"))
	if m.Err() != nil {
		t.Fatalf("Err() = %v, want nil: numeric warnings must not trip the sticky flag", m.Err())
	}
}

func TestMeshMergeAppendsFacetsNoTranslation(t *testing.T) {
	a := New(unitCube())
	b := New(translateAll(unitCube(), facet.Vertex{2, 0, 0}))
	a.Merge(b)

	if a.Store.Len() != 24 {
		t.Fatalf("Store.Len() = %d, want 24 after merge", a.Store.Len())
	}
	if a.Stats.NumberOfFacets != 24 {
		t.Errorf("NumberOfFacets = %d, want 24", a.Stats.NumberOfFacets)
	}
	if a.Stats.Max[0] != 3 {
		t.Errorf("Max.X = %v, want 3 (translated cube reaches x=3)", a.Stats.Max[0])
	}
}
