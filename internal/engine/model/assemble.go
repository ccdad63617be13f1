package model

import (
	"slices"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-flora/internal/engine/geometry"
	"github.com/Faultbox/midgard-flora/internal/logger"
	"github.com/Faultbox/midgard-flora/pkg/math"
)

// Merge concatenates the chunks in (LOD, material) order into one buffer.
// Indices are rewritten to be absolute in the merged vertex list. Empty
// chunks get no draw range.
func Merge(chunks []Chunk) (*geometry.Buffer, []DrawRange) {
	ordered := slices.Clone(chunks)
	slices.SortStableFunc(ordered, func(a, b Chunk) int {
		if a.LOD != b.LOD {
			return a.LOD - b.LOD
		}
		return a.Material - b.Material
	})

	merged := &geometry.Buffer{}
	var ranges []DrawRange
	for _, c := range ordered {
		if c.Buffer == nil || c.Buffer.Empty() {
			continue
		}
		base := merged.Base()
		r := DrawRange{
			Material:    c.Material,
			LOD:         c.LOD,
			StartIndex:  int32(len(merged.Indices)),
			IndexCount:  int32(len(c.Buffer.Indices)),
			StartVertex: int32(base),
			VertexCount: int32(len(c.Buffer.Vertices)),
		}
		merged.Vertices = append(merged.Vertices, c.Buffer.Vertices...)
		for _, idx := range c.Buffer.Indices {
			merged.Indices = append(merged.Indices, base+idx)
		}
		ranges = append(ranges, r)
	}
	return merged, ranges
}

// Assemble converts a merged buffer into the reduced vertex format. Bounds
// and radius are measured over LOD 0 so coarser levels share them.
func Assemble(merged *geometry.Buffer, ranges []DrawRange) *Model {
	m := &Model{Ranges: ranges}
	if merged == nil || len(merged.Vertices) == 0 {
		return m
	}

	lod0 := lodVertices(merged, ranges, 0)
	m.Bounds = newBounds()
	for _, v := range lod0 {
		updateBounds(&m.Bounds, v.Position.Array())
	}
	c := m.Bounds.Center()
	center := math.Vec3{X: c[0], Y: c[1], Z: c[2]}
	for _, v := range lod0 {
		dx, dz := v.Position.X-center.X, v.Position.Z-center.Z
		m.Radius = max(m.Radius, math32.Sqrt(dx*dx+dz*dz))
	}

	m.Vertices = make([]Vertex, len(merged.Vertices))
	for i, v := range merged.Vertices {
		m.Vertices[i] = Vertex{
			Position: v.Position.Array(),
			Tangent:  v.Tangent.Array(),
			Binormal: v.Binormal.Array(),
			Normal:   v.Normal.Array(),
			Normal2:  v.Position.Sub(center).NormalizeOr(v.Normal).Array(),
			TexCoord: v.UV.Array(),
			Wind:     [4]float32{v.MainAdherence, v.BranchAdherence, v.Phase, v.Edge},
		}
	}
	m.Indices = slices.Clone(merged.Indices)

	logger.Named("model").Debug("assembled",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("indices", len(m.Indices)),
		zap.Int("ranges", len(m.Ranges)),
		zap.Float32("radius", m.Radius))
	return m
}

// lodVertices returns the vertices drawn by ranges of one LOD, or all
// vertices when that LOD has none.
func lodVertices(buf *geometry.Buffer, ranges []DrawRange, lod int) []geometry.Vertex {
	var vs []geometry.Vertex
	for _, r := range ranges {
		if r.LOD != lod {
			continue
		}
		vs = append(vs, buf.Vertices[r.StartVertex:r.StartVertex+r.VertexCount]...)
	}
	if len(vs) == 0 {
		return buf.Vertices
	}
	return vs
}

// Range returns the draw range of a material at a LOD.
func (m *Model) Range(material, lod int) (DrawRange, bool) {
	for _, r := range m.Ranges {
		if r.Material == material && r.LOD == lod {
			return r, true
		}
	}
	return DrawRange{}, false
}

// LODCount returns the number of detail levels present.
func (m *Model) LODCount() int {
	n := 0
	for _, r := range m.Ranges {
		n = max(n, r.LOD+1)
	}
	return n
}

// TriangleCount returns the number of triangles drawn at a LOD.
func (m *Model) TriangleCount(lod int) int {
	n := 0
	for _, r := range m.Ranges {
		if r.LOD == lod {
			n += int(r.IndexCount) / 3
		}
	}
	return n
}

// VertexData interleaves the vertices into VertexStride floats each, in
// field order.
func (m *Model) VertexData() []float32 {
	data := make([]float32, 0, len(m.Vertices)*VertexStride)
	for _, v := range m.Vertices {
		data = append(data, v.Position[:]...)
		data = append(data, v.Tangent[:]...)
		data = append(data, v.Binormal[:]...)
		data = append(data, v.Normal[:]...)
		data = append(data, v.Normal2[:]...)
		data = append(data, v.TexCoord[:]...)
		data = append(data, v.Wind[:]...)
	}
	return data
}

func newBounds() Bounds {
	return Bounds{
		Min: [3]float32{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Max: [3]float32{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range p {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}
