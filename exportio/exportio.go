// Package exportio writes a repaired mesh out in formats other than STL:
// Wavefront OBJ, Geomview OFF, AutoCAD DXF, and VRML, covering the same
// writers the C ADMesh ships (stl_write_obj, stl_write_off, stl_write_dxf,
// stl_write_vrml). OBJ, OFF and VRML work from the deduplicated
// shared.Mesh; DXF walks the flat facet store directly, one 3DFACE per
// facet. All four are plain-text line formats, so the writers are built on
// bufio and fmt alone.
package exportio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/admesh/admesh/facet"
	"github.com/admesh/admesh/shared"
)

// WriteOBJ emits Wavefront OBJ: one "v" line per shared vertex, one "f"
// line per facet (1-indexed, as OBJ requires).
func WriteOBJ(w io.Writer, mesh *shared.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# generated by admesh")
	for _, v := range mesh.VShared {
		if _, err := fmt.Fprintf(bw, "v %f %f %f\n", v[0], v[1], v[2]); err != nil {
			return fmt.Errorf("exportio: write obj vertex: %w", err)
		}
	}
	for _, idx := range mesh.VIndices {
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", idx[0]+1, idx[1]+1, idx[2]+1); err != nil {
			return fmt.Errorf("exportio: write obj face: %w", err)
		}
	}
	return bw.Flush()
}

// WriteOFF emits Geomview OFF: a header line "OFF", a counts line
// "vertexCount faceCount edgeCount" (edgeCount is conventionally 0), then
// vertices and faces (each face line prefixed with its vertex count, 3).
func WriteOFF(w io.Writer, mesh *shared.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "OFF")
	fmt.Fprintf(bw, "%d %d 0\n", len(mesh.VShared), len(mesh.VIndices))
	for _, v := range mesh.VShared {
		if _, err := fmt.Fprintf(bw, "%f %f %f\n", v[0], v[1], v[2]); err != nil {
			return fmt.Errorf("exportio: write off vertex: %w", err)
		}
	}
	for _, idx := range mesh.VIndices {
		if _, err := fmt.Fprintf(bw, "3 %d %d %d\n", idx[0], idx[1], idx[2]); err != nil {
			return fmt.Errorf("exportio: write off face: %w", err)
		}
	}
	return bw.Flush()
}

// WriteDXF emits an AutoCAD DXF file containing one 3DFACE entity per
// facet, wrapped in a single ENTITIES section followed by the EOF marker; no
// HEADER section is written. label is written first as a 999 comment line,
// the way stl_write_dxf records an attribution string.
func WriteDXF(w io.Writer, store *facet.Store, label string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "999")
	fmt.Fprintln(bw, label)
	fmt.Fprintln(bw, "0")
	fmt.Fprintln(bw, "SECTION")
	fmt.Fprintln(bw, "2")
	fmt.Fprintln(bw, "ENTITIES")

	for i := 0; i < store.Len(); i++ {
		f := store.Get(i)
		fmt.Fprintln(bw, "0")
		fmt.Fprintln(bw, "3DFACE")
		fmt.Fprintln(bw, "8")
		fmt.Fprintln(bw, "1")
		for v := 0; v < 3; v++ {
			writeDXFPoint(bw, v, f.Vertices[v])
		}
		// DXF's 3DFACE requires four corners; repeat the third vertex for
		// the degenerate fourth, the usual encoding of a triangle as a
		// 3DFACE.
		writeDXFPoint(bw, 3, f.Vertices[2])
	}

	fmt.Fprintln(bw, "0")
	fmt.Fprintln(bw, "ENDSEC")
	fmt.Fprintln(bw, "0")
	fmt.Fprintln(bw, "EOF")
	return bw.Flush()
}

func writeDXFPoint(bw *bufio.Writer, corner int, v facet.Vertex) {
	fmt.Fprintf(bw, "1%d\n%f\n2%d\n%f\n3%d\n%f\n", corner, v[0], corner, v[1], corner, v[2])
}

// WriteVRML emits a minimal VRML 2.0 (VRML97) file: a single Shape node
// wrapping an IndexedFaceSet over the deduplicated vertex/coordinate
// arrays, solid TRUE since a repaired mesh is expected to be watertight.
func WriteVRML(w io.Writer, mesh *shared.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "#VRML V2.0 utf8")
	fmt.Fprintln(bw, "Shape {")
	fmt.Fprintln(bw, "  geometry IndexedFaceSet {")
	fmt.Fprintln(bw, "    solid TRUE")
	fmt.Fprintln(bw, "    coord Coordinate {")
	fmt.Fprint(bw, "      point [")
	for i, v := range mesh.VShared {
		if i > 0 {
			fmt.Fprint(bw, ",")
		}
		fmt.Fprintf(bw, " %f %f %f", v[0], v[1], v[2])
	}
	fmt.Fprintln(bw, " ]")
	fmt.Fprintln(bw, "    }")
	fmt.Fprint(bw, "    coordIndex [")
	for i, idx := range mesh.VIndices {
		if i > 0 {
			fmt.Fprint(bw, ",")
		}
		fmt.Fprintf(bw, " %d, %d, %d, -1", idx[0], idx[1], idx[2])
	}
	fmt.Fprintln(bw, " ]")
	fmt.Fprintln(bw, "  }")
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
