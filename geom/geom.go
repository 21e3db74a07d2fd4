// Package geom is the single-precision geometry kit the repair pipeline
// builds on: normals, lengths, areas and signed volumes, all computed and
// accumulated in float32 to match the precision of the STL format itself.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ZeroLengthEpsilon is the threshold below which Normalize refuses to scale
// a vector.
const ZeroLengthEpsilon = 1e-8

// Normal computes the unnormalized facet normal via the cross product of
// (v1-v0) and (v2-v0), following the right-hand rule. Whether that
// direction is outward is the orientation fixer's business, not the
// geometry kit's.
func Normal(v0, v1, v2 mgl32.Vec3) mgl32.Vec3 {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	return e1.Cross(e2)
}

// Normalize returns v scaled to unit length. If ‖v‖ is below
// ZeroLengthEpsilon the vector is returned unchanged and ok is false, so
// callers can record a numeric warning instead of dividing by ~zero.
func Normalize(v mgl32.Vec3) (out mgl32.Vec3, ok bool) {
	length := float32(math.Sqrt(float64(v.Dot(v))))
	if length < ZeroLengthEpsilon {
		return v, false
	}
	return v.Mul(1 / length), true
}

// EdgeLengthSq returns the squared length of the edge (a,b), avoiding a
// sqrt for comparisons like shortest-edge tracking.
func EdgeLengthSq(a, b mgl32.Vec3) float32 {
	d := b.Sub(a)
	return d.Dot(d)
}

// EdgeLength returns the length of edge (a,b).
func EdgeLength(a, b mgl32.Vec3) float32 {
	return float32(math.Sqrt(float64(EdgeLengthSq(a, b))))
}

// TetraVolume returns the signed volume of the tetrahedron formed by the
// facet's three vertices and the origin: (v0 · (v1 × v2)) / 6. Summed over
// every facet of a closed, consistently-oriented mesh this yields the
// enclosed volume.
func TetraVolume(v0, v1, v2 mgl32.Vec3) float32 {
	return v0.Dot(v1.Cross(v2)) / 6
}

// TriangleArea returns ‖(v1-v0) × (v2-v0)‖ / 2.
func TriangleArea(v0, v1, v2 mgl32.Vec3) float32 {
	cross := v1.Sub(v0).Cross(v2.Sub(v0))
	return float32(math.Sqrt(float64(cross.Dot(cross)))) / 2
}

// IsDegenerate reports whether two vertices are equal component by
// component (float32 ==, so -0.0 and +0.0 count as equal), which is how a collapsed edge (and the facet owning it) is detected
// after exact matching or nearby-match snapping.
func IsDegenerate(a, b mgl32.Vec3) bool {
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2]
}
