package transform

import (
	"testing"

	"github.com/admesh/admesh/facet"
)

func oneFacetStore(v0, v1, v2 facet.Vertex) *facet.Store {
	s := facet.NewStore(1)
	e1 := facet.Vertex{v1[0] - v0[0], v1[1] - v0[1], v1[2] - v0[2]}
	e2 := facet.Vertex{v2[0] - v0[0], v2[1] - v0[1], v2[2] - v0[2]}
	n := facet.Vertex{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}
	s.Append(facet.Facet{Normal: n, Vertices: [3]facet.Vertex{v0, v1, v2}})
	return s
}

func TestTranslateRel(t *testing.T) {
	s := oneFacetStore(facet.Vertex{0, 0, 0}, facet.Vertex{1, 0, 0}, facet.Vertex{0, 1, 0})
	TranslateRel(s, 1, 2, 3)
	got := s.Get(0).Vertices[0]
	want := facet.Vertex{1, 2, 3}
	if got != want {
		t.Errorf("Vertices[0] = %v, want %v", got, want)
	}
}

func TestTranslateAbsMovesMinToTarget(t *testing.T) {
	s := oneFacetStore(facet.Vertex{-1, -1, -1}, facet.Vertex{0, -1, -1}, facet.Vertex{-1, 0, -1})
	TranslateAbs(s, facet.Vertex{-1, -1, -1}, 5, 5, 5)
	got := s.Get(0).Vertices[0]
	want := facet.Vertex{5, 5, 5}
	if got != want {
		t.Errorf("Vertices[0] = %v, want %v (old min mapped to target)", got, want)
	}
}

func TestScaleUniform(t *testing.T) {
	s := oneFacetStore(facet.Vertex{1, 2, 3}, facet.Vertex{2, 0, 0}, facet.Vertex{0, 2, 0})
	Scale(s, 2)
	got := s.Get(0).Vertices[0]
	want := facet.Vertex{2, 4, 6}
	if got != want {
		t.Errorf("Vertices[0] = %v, want %v", got, want)
	}
}

func TestRotateZ90(t *testing.T) {
	s := oneFacetStore(facet.Vertex{1, 0, 0}, facet.Vertex{0, 1, 0}, facet.Vertex{0, 0, 1})
	RotateZ(s, 90)
	got := s.Get(0).Vertices[0]
	if !closeVertex(got, facet.Vertex{0, 1, 0}, 1e-5) {
		t.Errorf("Vertices[0] after RotateZ(90) = %v, want ~(0,1,0)", got)
	}
}

func TestMirrorXYNegatesZAndSwapsWinding(t *testing.T) {
	s := oneFacetStore(facet.Vertex{0, 0, 1}, facet.Vertex{1, 0, 1}, facet.Vertex{0, 1, 1})
	MirrorXY(s)
	f := s.Get(0)
	if f.Vertices[0][2] != -1 {
		t.Errorf("Vertices[0].Z = %v, want -1", f.Vertices[0][2])
	}
	// vertices 1 and 2 should have swapped after mirroring.
	if f.Vertices[1] != (facet.Vertex{0, 1, -1}) {
		t.Errorf("Vertices[1] = %v, want (0,1,-1) (the old vertex 2, mirrored)", f.Vertices[1])
	}
	if f.Vertices[2] != (facet.Vertex{1, 0, -1}) {
		t.Errorf("Vertices[2] = %v, want (1,0,-1) (the old vertex 1, mirrored)", f.Vertices[2])
	}
}

func closeVertex(a, b facet.Vertex, eps float32) bool {
	for i := 0; i < 3; i++ {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		if d > eps {
			return false
		}
	}
	return true
}
