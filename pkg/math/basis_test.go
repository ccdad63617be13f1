package math

import (
	"math"
	"testing"
)

func TestBasisFromAxisOrthonormal(t *testing.T) {
	axes := []Vec3{
		{0, 1, 0},
		{0, -1, 0},
		{1, 1, 0},
		{0.2, -0.9, 0.4},
		{0, 0, 0},
	}
	for _, z := range axes {
		b := BasisFromAxis(z)
		for name, l := range map[string]float32{"x": b.X.Length(), "y": b.Y.Length(), "z": b.Z.Length()} {
			if math.Abs(float64(l-1)) > 1e-5 {
				t.Errorf("axis %v: |%s| = %v, want 1", z, name, l)
			}
		}
		if d := b.X.Dot(b.Y); math.Abs(float64(d)) > 1e-5 {
			t.Errorf("axis %v: x.y = %v", z, d)
		}
		if !approxVec(b.X.Cross(b.Y), b.Z, 1e-5) {
			t.Errorf("axis %v: frame is not right-handed", z)
		}
		if b.Y.Y < -1e-6 {
			t.Errorf("axis %v: y points down (%v)", z, b.Y)
		}
	}
}

func TestBasisLerpEndpoints(t *testing.T) {
	a := BasisFromAxis(Vec3{0, 1, 0})
	b := BasisFromAxis(Vec3{1, 1, 0})
	if got := a.Lerp(b, 0); !approxVec(got.Z, a.Z, 1e-5) {
		t.Errorf("Lerp(0).Z = %v, want %v", got.Z, a.Z)
	}
	if got := a.Lerp(b, 1); !approxVec(got.Z, b.Z, 1e-5) {
		t.Errorf("Lerp(1).Z = %v, want %v", got.Z, b.Z)
	}
}
