package edgehash

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Fingerprint is a six-integer edge key: each endpoint's three
// coordinates, bit-reinterpreted as uint32, with the two endpoints
// ordered lexicographically so edge (A,B) hashes identically to (B,A).
type Fingerprint [6]uint32

// bits reinterprets a float32 as its IEEE-754 bit pattern, normalizing -0.0
// to +0.0 first. Bit order is not float order for negative zero (or for -x
// vs +x in general); the only correction made at this layer is collapsing
// the two zero representations. ULP-close floats are deliberately left
// unequal here; that tolerance belongs to the nearby matcher, not the
// hash.
func bits(f float32) uint32 {
	if f == 0 {
		f = 0
	}
	return math.Float32bits(f)
}

func key(v mgl32.Vec3) [3]uint32 {
	return [3]uint32{bits(v.X()), bits(v.Y()), bits(v.Z())}
}

func less(a, b [3]uint32) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	if a[1] != b[1] {
		return a[1] < b[1]
	}
	return a[2] < b[2]
}

// HasNaN reports whether either endpoint contains a NaN coordinate. NaN is
// not expected in well-formed STL input; if present the edge (and its
// facet) must be treated as degenerate rather than hashed.
func HasNaN(a, b mgl32.Vec3) bool {
	for _, v := range [...]mgl32.Vec3{a, b} {
		for i := 0; i < 3; i++ {
			if math.IsNaN(float64(v[i])) {
				return true
			}
		}
	}
	return false
}

// Compute derives the fingerprint for edge (a,b).
func Compute(a, b mgl32.Vec3) Fingerprint {
	ka, kb := key(a), key(b)
	if less(kb, ka) {
		ka, kb = kb, ka
	}
	return Fingerprint{ka[0], ka[1], ka[2], kb[0], kb[1], kb[2]}
}
