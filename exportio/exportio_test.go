package exportio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/admesh/admesh/facet"
	"github.com/admesh/admesh/shared"
)

func triStore() *facet.Store {
	s := facet.NewStore(2)
	s.Append(facet.Facet{
		Normal:   facet.Vertex{0, 0, 1},
		Vertices: [3]facet.Vertex{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
	})
	s.Append(facet.Facet{
		Normal:   facet.Vertex{0, 0, 1},
		Vertices: [3]facet.Vertex{{1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
	})
	return s
}

func TestWriteOBJHasVertexAndFaceLines(t *testing.T) {
	mesh := shared.Build(triStore())
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, mesh); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "\nv ") == 0 {
		t.Errorf("expected vertex lines in output:\n%s", out)
	}
	if strings.Count(out, "\nf ") != 2 {
		t.Errorf("expected 2 face lines, got output:\n%s", out)
	}
	// shared vertex dedup: 2 triangles sharing an edge have 4 distinct
	// positions out of 6 vertex slots.
	if len(mesh.VShared) != 4 {
		t.Fatalf("expected 4 shared vertices, got %d", len(mesh.VShared))
	}
}

func TestWriteOFFHeaderAndCounts(t *testing.T) {
	mesh := shared.Build(triStore())
	var buf bytes.Buffer
	if err := WriteOFF(&buf, mesh); err != nil {
		t.Fatalf("WriteOFF: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "OFF" {
		t.Fatalf("first line = %q, want OFF", lines[0])
	}
	want := "4 2 0"
	if lines[1] != want {
		t.Errorf("counts line = %q, want %q", lines[1], want)
	}
}

func TestWriteDXFWrapsSectionsAndOneFacePerFacet(t *testing.T) {
	store := triStore()
	var buf bytes.Buffer
	if err := WriteDXF(&buf, store, "test label"); err != nil {
		t.Fatalf("WriteDXF: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "test label") {
		t.Errorf("expected label in output")
	}
	if strings.Count(out, "3DFACE") != store.Len() {
		t.Errorf("expected %d 3DFACE entities, got %d", store.Len(), strings.Count(out, "3DFACE"))
	}
	if !strings.Contains(out, "ENTITIES") || !strings.Contains(out, "EOF") {
		t.Errorf("missing DXF section markers in output:\n%s", out)
	}
}

func TestWriteVRMLHasIndexedFaceSet(t *testing.T) {
	mesh := shared.Build(triStore())
	var buf bytes.Buffer
	if err := WriteVRML(&buf, mesh); err != nil {
		t.Fatalf("WriteVRML: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "IndexedFaceSet") {
		t.Errorf("expected IndexedFaceSet in output:\n%s", out)
	}
	if strings.Count(out, "-1") != 2 {
		t.Errorf("expected 2 face terminators (-1), got output:\n%s", out)
	}
}
