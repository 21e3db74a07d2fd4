package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func almostEqual(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestNormalRightHandRule(t *testing.T) {
	n := Normal(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
	want := mgl32.Vec3{0, 0, 1}
	if !almostEqual(n.X(), want.X(), 1e-6) || !almostEqual(n.Y(), want.Y(), 1e-6) || !almostEqual(n.Z(), want.Z(), 1e-6) {
		t.Errorf("Normal = %v, want %v", n, want)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	_, ok := Normalize(mgl32.Vec3{0, 0, 0})
	if ok {
		t.Error("Normalize(zero) reported ok, want false")
	}
}

func TestNormalizeUnitLength(t *testing.T) {
	out, ok := Normalize(mgl32.Vec3{3, 4, 0})
	if !ok {
		t.Fatal("Normalize(3,4,0) reported not ok")
	}
	if !almostEqual(out.Len(), 1, 1e-6) {
		t.Errorf("‖out‖ = %v, want 1", out.Len())
	}
}

func TestTetraVolumeUnitCornerTetrahedron(t *testing.T) {
	v := TetraVolume(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1})
	want := float32(1.0 / 6.0)
	if !almostEqual(v, want, 1e-6) {
		t.Errorf("TetraVolume = %v, want %v", v, want)
	}
}

func TestTriangleArea(t *testing.T) {
	a := TriangleArea(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
	if !almostEqual(a, 0.5, 1e-6) {
		t.Errorf("TriangleArea = %v, want 0.5", a)
	}
}

func TestIsDegenerate(t *testing.T) {
	a := mgl32.Vec3{1, 2, 3}
	if !IsDegenerate(a, a) {
		t.Error("IsDegenerate(a, a) = false, want true")
	}
	b := mgl32.Vec3{1, 2, 3.0000005} // two float32 steps above 3
	if IsDegenerate(a, b) {
		t.Error("IsDegenerate(a, b) = true, want false for distinct bit patterns")
	}
}
