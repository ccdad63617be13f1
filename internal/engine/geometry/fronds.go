package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-flora/internal/engine/skeleton"
	"github.com/Faultbox/midgard-flora/pkg/math"
)

// Vertex and triangle counts of the fixed frond topologies.
const (
	SimpleFrondVertices      = 9
	SimpleFrondTriangles     = 8
	RagFrondVertices         = 9
	RagFrondTriangles        = 8
	BrushQuads               = 3
	BrushFrondVertices       = BrushQuads * 4
	BrushFrondTriangles      = BrushQuads * 2
	BrushCenterFrondVertices = BrushQuads * 5
	BrushCenterTriangles     = BrushQuads * 4
)

func orOne(v float32) float32 {
	if v == 0 {
		return 1
	}
	return v
}

// droopAt is g*base^power. The junction side (base 0) never droops, so a
// negative power cannot blow up there.
func droopAt(g, base, power float32) float32 {
	if g == 0 || base <= 0 {
		return 0
	}
	return g * math32.Pow(base, power)
}

// AddFrond appends the geometry of one frond. Unknown types are ignored;
// the generator never produces them.
func (b *Buffer) AddFrond(f *skeleton.Frond) {
	if f.Group == nil {
		return
	}
	first := b.Base()
	var junction math.Vec3
	switch f.Group.Type {
	case skeleton.FrondSimple:
		junction = b.addSimpleFrond(f)
	case skeleton.FrondRagEnding:
		junction = b.addRagFrond(f)
	case skeleton.FrondBrushEnding:
		junction = b.addBrushFrond(f)
	default:
		return
	}
	b.setEdges(first, junction)
}

// setEdges writes the normalized distance from the junction into Edge for
// every vertex from first on.
func (b *Buffer) setEdges(first uint32, junction math.Vec3) {
	vs := b.Vertices[first:]
	var maxDist float32
	for i := range vs {
		maxDist = max(maxDist, vs[i].Position.Distance(junction))
	}
	for i := range vs {
		if maxDist > math.Epsilon {
			vs[i].Edge = vs[i].Position.Distance(junction) / maxDist
		} else {
			vs[i].Edge = 0
		}
	}
}

func anchorVertex(p skeleton.Point) Vertex {
	return Vertex{BranchAdherence: p.BranchAdherence, Phase: p.Phase}
}

// globalFrame keeps world up as Y and faces the horizontal heading of z.
func globalFrame(z math.Vec3) math.Basis {
	heading := math.Vec3{X: z.X, Z: z.Z}.NormalizeOr(math.UnitZ)
	return math.Basis{X: math.Up.Cross(heading), Y: math.Up, Z: heading}
}

// addSimpleFrond builds a 3x3 grid in the local XZ plane, X across and Z
// along the frond, facing local Y.
func (b *Buffer) addSimpleFrond(f *skeleton.Frond) math.Vec3 {
	shape := f.Group.Simple
	anchor := f.Anchor
	width, length := orOne(shape.Width), orOne(shape.Length)
	power := math.Vec2{X: orOne(shape.GravityPower.X), Y: orOne(shape.GravityPower.Y)}

	qBranch := anchor.Frame.Quat()
	global := globalFrame(anchor.Frame.Z)
	qGlobal := global.Quat()
	rot := math.QuatFromEuler(
		math.DegToRad(shape.Rotation.X),
		math.DegToRad(shape.Rotation.Y),
		math.DegToRad(shape.Rotation.Z+f.Twirl),
	)
	q := qBranch.Slerp(qGlobal, math.Clamp(shape.AdjustUpToGlobal, 0, 1)).Mul(rot)

	junction := anchor.Position.Add(q.Rotate(shape.Offset.Scale(f.Size)))
	normal := q.Rotate(math.UnitY)
	tangent := q.Rotate(math.UnitX)
	binormal := q.Rotate(math.UnitZ)

	first := b.Base()
	for r := 0; r < 3; r++ {
		v := float32(r) / 2
		for c := 0; c < 3; c++ {
			u := float32(c) - 1
			local := math.Vec3{X: u * width / 2, Z: v * length}.Scale(f.Size)
			offset := q.Rotate(local)

			reach := offset.Length()
			droop := droopAt(shape.Gravity.X, math32.Abs(u), power.X) + droopAt(shape.Gravity.Y, v, power.Y)
			offset = offset.Add(math.Down.Scale(droop * f.Size))
			if reach > math.Epsilon {
				offset = offset.NormalizeOr(binormal).Scale(reach)
			}

			vert := anchorVertex(anchor)
			vert.Position = junction.Add(offset)
			vert.Normal = normal
			vert.Tangent = tangent
			vert.Binormal = binormal
			vert.UV = math.Vec2{X: (u + 1) / 2, Y: v}
			b.AddVertex(vert)
		}
	}

	for r := uint32(0); r < 2; r++ {
		for c := uint32(0); c < 2; c++ {
			i0 := first + r*3 + c
			i1, i2, i3 := i0+1, i0+3, i0+4
			b.AddTriangle(i0, i3, i1)
			b.AddTriangle(i0, i2, i3)
		}
	}
	return junction
}

// addRagFrond builds a star around the anchor: a center vertex and eight
// ring vertices alternating between tips and valleys.
func (b *Buffer) addRagFrond(f *skeleton.Frond) math.Vec3 {
	shape := f.Group.Rag
	anchor := f.Anchor
	frame := anchor.Frame
	valley := shape.Valley
	if valley <= 0 {
		valley = 0.5
	}

	target := frame.Z.Lerp(math.Down, math.Clamp(shape.BendDown, 0, 1)).NormalizeOr(frame.Z)
	twirl := math.DegToRad(f.Twirl)

	center := anchorVertex(anchor)
	center.Position = anchor.Position
	center.Normal = frame.Z
	center.Tangent = frame.X
	center.Binormal = frame.Y
	center.UV = math.Vec2{X: 0.5, Y: 0.5}
	first := b.AddVertex(center)

	for k := 0; k < 8; k++ {
		a := float32(k) * math.Pi / 4
		radius := valley
		if k%2 == 1 {
			radius = 1
		}
		sa, ca := math32.Sincos(a + twirl)
		flat := frame.X.Scale(ca).Add(frame.Y.Scale(sa))
		dir := flat.Lerp(target, shape.Bending).NormalizeOr(flat)

		normal := frame.Z.Sub(dir.Scale(frame.Z.Dot(dir))).NormalizeOr(frame.Z)
		su, cu := math32.Sincos(a)
		vert := anchorVertex(anchor)
		vert.Position = anchor.Position.Add(dir.Scale(radius * f.Size))
		vert.Normal = normal
		vert.Tangent = dir
		vert.Binormal = normal.Cross(dir)
		vert.UV = math.Vec2{X: 0.5 + 0.5*radius*cu, Y: 0.5 + 0.5*radius*su}
		b.AddVertex(vert)
	}

	for q := uint32(0); q < 4; q++ {
		r0 := first + 1 + 2*q
		r1 := r0 + 1
		r2 := first + 1 + (2*q+2)%8
		b.AddTriangle(first, r0, r1)
		b.AddTriangle(first, r1, r2)
	}
	return anchor.Position
}

// addBrushFrond builds vertical quads around the anchor axis, 60 degrees
// apart. A non-zero CenterOffset raises a center vertex on each quad.
func (b *Buffer) addBrushFrond(f *skeleton.Frond) math.Vec3 {
	shape := f.Group.Brush
	anchor := f.Anchor
	frame := anchor.Frame
	halfWidth := orOne(shape.Width) / 2 * f.Size
	length := orOne(shape.Length) * f.Size
	twirl := math.DegToRad(f.Twirl)
	along := frame.Z.Scale(length)

	for q := 0; q < BrushQuads; q++ {
		sa, ca := math32.Sincos(float32(q)*math.Pi/3 + twirl)
		side := frame.X.Scale(ca).Add(frame.Y.Scale(sa))
		normal := side.Cross(frame.Z)
		half := side.Scale(halfWidth)

		corners := [4]struct {
			pos math.Vec3
			uv  math.Vec2
		}{
			{anchor.Position.Sub(half), math.Vec2{X: 0, Y: 0}},
			{anchor.Position.Add(half), math.Vec2{X: 1, Y: 0}},
			{anchor.Position.Add(along).Add(half), math.Vec2{X: 1, Y: 1}},
			{anchor.Position.Add(along).Sub(half), math.Vec2{X: 0, Y: 1}},
		}
		base := b.Base()
		for _, c := range corners {
			vert := anchorVertex(anchor)
			vert.Position = c.pos
			vert.Normal = normal
			vert.Tangent = side
			vert.Binormal = frame.Z
			vert.UV = c.uv
			b.AddVertex(vert)
		}

		if shape.CenterOffset == 0 {
			b.AddTriangle(base, base+1, base+2)
			b.AddTriangle(base, base+2, base+3)
			continue
		}

		mid := anchorVertex(anchor)
		mid.Position = anchor.Position.Add(along.Scale(0.5)).Add(normal.Scale(shape.CenterOffset * f.Size))
		mid.Normal = normal
		mid.Tangent = side
		mid.Binormal = frame.Z
		mid.UV = math.Vec2{X: 0.5, Y: 0.5}
		c := b.AddVertex(mid)
		for k := uint32(0); k < 4; k++ {
			b.AddTriangle(base+k, base+(k+1)%4, c)
		}
	}
	return anchor.Position
}
