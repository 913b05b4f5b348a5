package game

import (
	"math"
	"testing"
)

// TestVec3Normalized tests unit-length normalization
func TestVec3Normalized(t *testing.T) {
	v := Vec3{X: 3, Z: 4}.Normalized()

	if math.Abs(v.Len()-1.0) > 1e-9 {
		t.Errorf("Expected unit length, got %f", v.Len())
	}
	if math.Abs(v.X-0.6) > 1e-9 || math.Abs(v.Z-0.8) > 1e-9 {
		t.Errorf("Expected (0.6, 0, 0.8), got (%f, %f, %f)", v.X, v.Y, v.Z)
	}
}

// TestVec3NormalizedZero tests the zero-vector fallback direction
func TestVec3NormalizedZero(t *testing.T) {
	v := Vec3{}.Normalized()

	if v != (Vec3{X: 0, Y: 0, Z: 1}) {
		t.Errorf("Expected fallback (0, 0, 1), got (%f, %f, %f)", v.X, v.Y, v.Z)
	}
}

// TestVec3Dist tests distance on the arena plane
func TestVec3Dist(t *testing.T) {
	a := Vec3{X: 1, Z: 2}
	b := Vec3{X: 4, Z: 6}

	if d := a.Dist(b); math.Abs(d-5.0) > 1e-9 {
		t.Errorf("Expected distance 5, got %f", d)
	}
	if d2 := a.DistSq(b); math.Abs(d2-25.0) > 1e-9 {
		t.Errorf("Expected squared distance 25, got %f", d2)
	}
}
