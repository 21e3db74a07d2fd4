package repair

import (
	"math"

	"github.com/admesh/admesh/facet"
	"github.com/admesh/admesh/geom"
)

// NormalsResult tallies FixNormalValues' output.
type NormalsResult struct {
	NormalsFixed int
}

// normalAgreementEpsilon is how far a facet's prior stored normal may
// drift from its freshly recomputed one, in direction (dot product against
// 1) or magnitude (length against 1), before it counts as fixed.
const normalAgreementEpsilon = 1e-4

// FixNormalValues recomputes every facet's stored normal from its current
// vertices: whatever was in the STL file or left behind by
// hole-filling is discarded in favor of the true unit cross-product normal.
// A degenerate facet (flagged by the edge matcher, or one whose cross
// product collapses to near-zero) gets the zero vector instead of a
// division by ~zero. NormalsFixed only counts facets whose prior stored
// normal disagreed with the recomputed one by more than
// normalAgreementEpsilon; a mesh whose normals were already correct reports
// zero.
func FixNormalValues(store *facet.Store, degenerate []bool) NormalsResult {
	var result NormalsResult
	for f := 0; f < store.Len(); f++ {
		ft := store.Get(f)
		if degenerate != nil && degenerate[f] {
			ft.Normal = facet.Vertex{}
			continue
		}
		old := ft.Normal
		n := geom.Normal(ft.Vertices[0], ft.Vertices[1], ft.Vertices[2])
		unit, ok := geom.Normalize(n)
		if !ok {
			unit = facet.Vertex{}
		}
		if normalsDisagree(old, unit) {
			result.NormalsFixed++
		}
		ft.Normal = unit
	}
	return result
}

// normalsDisagree reports whether old (the facet's previously stored
// normal) differs from unit (the freshly recomputed unit normal) by more
// than normalAgreementEpsilon in direction or magnitude.
func normalsDisagree(old, unit facet.Vertex) bool {
	oldLength := float32(math.Sqrt(float64(old.Dot(old))))
	if oldLength < geom.ZeroLengthEpsilon {
		// No usable prior normal to compare against: anything nonzero that
		// was just computed counts as a fix.
		return unit.Dot(unit) > geom.ZeroLengthEpsilon
	}
	if absf32(oldLength-1) > normalAgreementEpsilon {
		return true
	}
	oldUnit := old.Mul(1 / oldLength)
	return oldUnit.Dot(unit) < 1-normalAgreementEpsilon
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
