package admesh

import "github.com/admesh/admesh/transform"

// Each transform below mutates vertices (and normals, approximately) in
// place, then refreshes the bounding box and drops the shared-vertex
// cache. Connectivity itself is unaffected (a rigid or uniform transform moves
// every vertex together, so matched edges stay matched), so these do not
// rebuild the neighbor table. A subsequent Repair call is still safe and
// cheap: Exact's first pass will simply reconfirm the same adjacency.

// TranslateAbs shifts the mesh so its current bounding-box minimum lands on
// (x, y, z).
func (m *Mesh) TranslateAbs(x, y, z float32) {
	if m.failed() {
		return
	}
	transform.TranslateAbs(m.Store, m.Stats.Min, x, y, z)
	m.afterTransform()
}

// TranslateRel adds (dx, dy, dz) to every vertex.
func (m *Mesh) TranslateRel(dx, dy, dz float32) {
	if m.failed() {
		return
	}
	transform.TranslateRel(m.Store, dx, dy, dz)
	m.afterTransform()
}

// Scale multiplies every coordinate by factor.
func (m *Mesh) Scale(factor float32) {
	if m.failed() {
		return
	}
	transform.Scale(m.Store, factor)
	m.afterTransform()
}

// RotateX rotates the mesh about the X axis by angleDegrees.
func (m *Mesh) RotateX(angleDegrees float32) {
	if m.failed() {
		return
	}
	transform.RotateX(m.Store, angleDegrees)
	m.afterTransform()
}

// RotateY rotates the mesh about the Y axis by angleDegrees.
func (m *Mesh) RotateY(angleDegrees float32) {
	if m.failed() {
		return
	}
	transform.RotateY(m.Store, angleDegrees)
	m.afterTransform()
}

// RotateZ rotates the mesh about the Z axis by angleDegrees.
func (m *Mesh) RotateZ(angleDegrees float32) {
	if m.failed() {
		return
	}
	transform.RotateZ(m.Store, angleDegrees)
	m.afterTransform()
}

// MirrorXY reverses every Z coordinate.
func (m *Mesh) MirrorXY() {
	if m.failed() {
		return
	}
	transform.MirrorXY(m.Store)
	m.afterTransform()
}

// MirrorYZ reverses every X coordinate.
func (m *Mesh) MirrorYZ() {
	if m.failed() {
		return
	}
	transform.MirrorYZ(m.Store)
	m.afterTransform()
}

// MirrorXZ reverses every Y coordinate.
func (m *Mesh) MirrorXZ() {
	if m.failed() {
		return
	}
	transform.MirrorXZ(m.Store)
	m.afterTransform()
}

func (m *Mesh) afterTransform() {
	m.Stats.updateBoundingBox(m.Store)
	m.Stats.updateShortestEdge(m.Store)
	m.InvalidateSharedVertices()
}
