package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-flora/internal/engine/skeleton"
	"github.com/Faultbox/midgard-flora/pkg/math"
)

// AddRing appends count+1 vertices around the point; the last vertex
// duplicates the first position with U = 1. It returns the first index.
func (b *Buffer) AddRing(p skeleton.Point, count int, uvScale math.Vec2) uint32 {
	first := b.Base()
	frame := p.Frame
	for j := 0; j <= count; j++ {
		u := float32(j) / float32(count)
		sa, ca := math32.Sincos(2 * math.Pi * u)
		radial := frame.X.Scale(ca).Add(frame.Y.Scale(sa))
		b.AddVertex(Vertex{
			Position:        p.Position.Add(radial.Scale(p.Radius)),
			Normal:          radial,
			Tangent:         frame.X.Scale(-sa).Add(frame.Y.Scale(ca)),
			Binormal:        frame.Z,
			UV:              math.Vec2{X: u / uvScale.X, Y: p.RelativeDistance / uvScale.Y},
			BranchAdherence: p.BranchAdherence,
			Phase:           p.Phase,
		})
	}
	return first
}

// BridgeRings triangulates the band between ring A (numA segments) and ring
// B (numB segments). Vertex indices are local: A occupies [0, numA] and B
// occupies [numA+1, numA+1+numB]. It always emits numA+numB triangles; with
// equal counts consecutive pairs form quads.
func BridgeRings(numA, numB int) [][3]uint32 {
	tris := make([][3]uint32, 0, numA+numB)
	offB := uint32(numA + 1)
	i, j := 0, 0
	for i < numA || j < numB {
		a0, a1 := uint32(i), uint32(i+1)
		b0, b1 := offB+uint32(j), offB+uint32(j+1)
		if j >= numB || (i < numA && i*numB <= j*numA) {
			tris = append(tris, [3]uint32{a0, a1, b0})
			i++
		} else {
			tris = append(tris, [3]uint32{a0, b1, b0})
			j++
		}
	}
	return tris
}

// BridgeRings connects two rings already in the buffer.
func (b *Buffer) BridgeRings(firstA uint32, numA int, firstB uint32, numB int) {
	offB := uint32(numA + 1)
	for _, tri := range BridgeRings(numA, numB) {
		var idx [3]uint32
		for k, local := range tri {
			if local < offB {
				idx[k] = firstA + local
			} else {
				idx[k] = firstB + local - offB
			}
		}
		b.AddTriangle(idx[0], idx[1], idx[2])
	}
}
