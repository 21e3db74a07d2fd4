// Package transform implements the affine operations the CLI applies
// before repair: translate, scale, rotate about an axis, and mirror about
// a coordinate plane, covering the C ADMesh stl_translate,
// stl_translate_relative, stl_scale_versor, stl_rotate_x/y/z, and
// stl_mirror_xy/yz/xz. Each one walks every facet's vertices and normal in
// place rather than building a matrix stack.
package transform

import (
	"math"

	"github.com/admesh/admesh/facet"
)

// TranslateAbs shifts every vertex so the mesh's current minimum corner
// lands on (x, y, z), stl_translate's "absolute" semantics: the offset
// applied is (x,y,z) minus the current bounding-box minimum.
func TranslateAbs(store *facet.Store, min facet.Vertex, x, y, z float32) {
	TranslateRel(store, x-min[0], y-min[1], z-min[2])
}

// TranslateRel adds (dx, dy, dz) to every vertex, stl_translate_relative's
// semantics.
func TranslateRel(store *facet.Store, dx, dy, dz float32) {
	offset := facet.Vertex{dx, dy, dz}
	eachVertex(store, func(v facet.Vertex) facet.Vertex {
		return facet.Vertex{v[0] + offset[0], v[1] + offset[1], v[2] + offset[2]}
	})
}

// ScaleVersor multiplies each coordinate by its own factor, stl_scale_versor.
func ScaleVersor(store *facet.Store, versor facet.Vertex) {
	eachVertex(store, func(v facet.Vertex) facet.Vertex {
		return facet.Vertex{v[0] * versor[0], v[1] * versor[1], v[2] * versor[2]}
	})
	scaleNormals(store, versor)
}

// Scale multiplies every coordinate by the same factor, stl_scale.
func Scale(store *facet.Store, factor float32) {
	ScaleVersor(store, facet.Vertex{factor, factor, factor})
}

func scaleNormals(store *facet.Store, versor facet.Vertex) {
	// A non-uniform scale does not preserve normal direction under simple
	// component-wise scaling (it needs the inverse-transpose), but for the
	// common case of a uniform versor (sx==sy==sz) component-wise scaling
	// and renormalizing is exact. The repair pipeline's FixNormalValues is
	// the authority on correctness regardless; this keeps the stored normal
	// roughly right in the meantime.
	for f := 0; f < store.Len(); f++ {
		ft := store.Get(f)
		n := facet.Vertex{ft.Normal[0] * versor[0], ft.Normal[1] * versor[1], ft.Normal[2] * versor[2]}
		if l := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))); l > 1e-8 {
			n = facet.Vertex{n[0] / l, n[1] / l, n[2] / l}
		}
		ft.Normal = n
	}
}

// RotateX rotates every vertex and normal about the X axis by angle
// degrees, CCW looking from +X toward the origin (stl_rotate_x).
func RotateX(store *facet.Store, angleDegrees float32) {
	s, c := sinCos(angleDegrees)
	// Formule de rotation : y' = y·cos − z·sin, z' = y·sin + z·cos
	rotate(store, func(v facet.Vertex) facet.Vertex {
		return facet.Vertex{v[0], v[1]*c - v[2]*s, v[1]*s + v[2]*c}
	})
}

// RotateY rotates about the Y axis (stl_rotate_y).
func RotateY(store *facet.Store, angleDegrees float32) {
	s, c := sinCos(angleDegrees)
	rotate(store, func(v facet.Vertex) facet.Vertex {
		return facet.Vertex{v[0]*c + v[2]*s, v[1], -v[0]*s + v[2]*c}
	})
}

// RotateZ rotates about the Z axis (stl_rotate_z).
func RotateZ(store *facet.Store, angleDegrees float32) {
	s, c := sinCos(angleDegrees)
	rotate(store, func(v facet.Vertex) facet.Vertex {
		return facet.Vertex{v[0]*c - v[1]*s, v[0]*s + v[1]*c, v[2]}
	})
}

func sinCos(angleDegrees float32) (s, c float32) {
	rad := float64(angleDegrees) * math.Pi / 180
	return float32(math.Sin(rad)), float32(math.Cos(rad))
}

func rotate(store *facet.Store, f func(facet.Vertex) facet.Vertex) {
	eachVertex(store, f)
	for i := 0; i < store.Len(); i++ {
		ft := store.Get(i)
		ft.Normal = f(ft.Normal)
	}
}

// MirrorXY reverses the sign of every Z coordinate (stl_mirror_xy).
func MirrorXY(store *facet.Store) { mirror(store, 2) }

// MirrorYZ reverses the sign of every X coordinate (stl_mirror_yz).
func MirrorYZ(store *facet.Store) { mirror(store, 0) }

// MirrorXZ reverses the sign of every Y coordinate (stl_mirror_xz).
func MirrorXZ(store *facet.Store) { mirror(store, 1) }

// mirror flips the sign of coordinate axis and, since reflecting a triangle
// inverts its handedness, swaps vertices 1 and 2 so the winding still
// follows the right-hand rule for the now-mirrored outward direction
// (a repair pass can always correct this afterward, but getting it right
// here means a single mirror needs no follow-up repair).
func mirror(store *facet.Store, axis int) {
	for f := 0; f < store.Len(); f++ {
		ft := store.Get(f)
		for v := 0; v < 3; v++ {
			ft.Vertices[v][axis] = -ft.Vertices[v][axis]
		}
		ft.Vertices[1], ft.Vertices[2] = ft.Vertices[2], ft.Vertices[1]
		ft.Normal[axis] = -ft.Normal[axis]
	}
}

func eachVertex(store *facet.Store, f func(facet.Vertex) facet.Vertex) {
	for i := 0; i < store.Len(); i++ {
		ft := store.Get(i)
		for v := 0; v < 3; v++ {
			ft.Vertices[v] = f(ft.Vertices[v])
		}
	}
}
