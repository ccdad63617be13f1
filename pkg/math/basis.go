package math

// Basis is an orthonormal right-handed frame. Z is the forward axis.
type Basis struct {
	X, Y, Z Vec3
}

// BasisFromAxis builds a frame around the forward axis z.
// Y is kept in the upper half-space whenever possible so that frames
// built for consecutive, similar axes do not flip.
func BasisFromAxis(z Vec3) Basis {
	z = z.NormalizeOr(Up)
	x := z.Orthogonal()
	y := z.Cross(x).Normalize()
	if y.Y < 0 {
		y = y.Negate()
		x = y.Cross(z)
	}
	return Basis{X: x, Y: y, Z: z}
}

// Quat returns the rotation mapping the unit axes onto the frame.
func (b Basis) Quat() Quat {
	return QuatFromBasis(b.X, b.Y, b.Z)
}

// Lerp blends two frames and re-orthonormalizes the result around the
// blended Z axis.
func (b Basis) Lerp(other Basis, t float32) Basis {
	z := b.Z.Lerp(other.Z, t).NormalizeOr(b.Z)
	x := b.X.Lerp(other.X, t)
	x = x.Sub(z.Scale(x.Dot(z))).Normalize()
	if x == Zero3 {
		return BasisFromAxis(z)
	}
	return Basis{X: x, Y: z.Cross(x), Z: z}
}

// ToWorld maps local coordinates into the frame.
func (b Basis) ToWorld(v Vec3) Vec3 {
	return b.X.Scale(v.X).Add(b.Y.Scale(v.Y)).Add(b.Z.Scale(v.Z))
}
