package math

import (
	"math"
	"testing"
)

func approxVec(a, b Vec3, eps float64) bool {
	return math.Abs(float64(a.X-b.X)) <= eps &&
		math.Abs(float64(a.Y-b.Y)) <= eps &&
		math.Abs(float64(a.Z-b.Z)) <= eps
}

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatSlerp(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	result0 := q1.Slerp(q2, 0)
	if math.Abs(float64(result0.W-q1.W)) > 0.001 {
		t.Errorf("Slerp at t=0 should equal q1")
	}

	result1 := q1.Slerp(q2, 1)
	if math.Abs(float64(result1.W-q2.W)) > 0.001 {
		t.Errorf("Slerp at t=1 should equal q2")
	}

	// Halfway through a 90 degree turn is 45 degrees.
	result5 := q1.Slerp(q2, 0.5)
	expectedW := float32(math.Cos(float64(math.Pi / 8)))
	if math.Abs(float64(result5.W-expectedW)) > 0.01 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, result5.W)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(UnitY, float32(math.Pi/2))
	got := q.Rotate(UnitX)
	want := Vec3{0, 0, -1}
	if !approxVec(got, want, 1e-5) {
		t.Errorf("Rotate(X) by 90deg about Y = %v, want %v", got, want)
	}
}

func TestQuatFromBasis(t *testing.T) {
	axes := []Vec3{
		{0, 1, 0},
		{0, -1, 0},
		{1, 0, 0},
		{0.3, 0.5, -0.8},
		{-0.7, -0.1, 0.2},
	}
	for _, z := range axes {
		b := BasisFromAxis(z)
		q := b.Quat()
		if got := q.Rotate(UnitX); !approxVec(got, b.X, 1e-4) {
			t.Errorf("axis %v: rotated X = %v, want %v", z, got, b.X)
		}
		if got := q.Rotate(UnitY); !approxVec(got, b.Y, 1e-4) {
			t.Errorf("axis %v: rotated Y = %v, want %v", z, got, b.Y)
		}
		if got := q.Rotate(UnitZ); !approxVec(got, b.Z, 1e-4) {
			t.Errorf("axis %v: rotated Z = %v, want %v", z, got, b.Z)
		}
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}
