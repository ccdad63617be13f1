// Package geometry turns generated skeletons into indexed triangle buffers.
package geometry

import "github.com/Faultbox/midgard-flora/pkg/math"

// Vertex is a triangulator output vertex with all per-vertex attributes.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	Tangent  math.Vec3
	Binormal math.Vec3
	UV       math.Vec2

	// Wind parameters. MainAdherence is filled in by the wind baker.
	MainAdherence   float32
	BranchAdherence float32
	Phase           float32
	Edge            float32
}

// Buffer is an indexed triangle list. Indices are local to the buffer.
type Buffer struct {
	Vertices []Vertex
	Indices  []uint32
}

// Base returns the index the next appended vertex will get.
func (b *Buffer) Base() uint32 {
	return uint32(len(b.Vertices))
}

// AddVertex appends a vertex and returns its index.
func (b *Buffer) AddVertex(v Vertex) uint32 {
	b.Vertices = append(b.Vertices, v)
	return uint32(len(b.Vertices) - 1)
}

// AddTriangle appends one counter-clockwise triangle.
func (b *Buffer) AddTriangle(i0, i1, i2 uint32) {
	b.Indices = append(b.Indices, i0, i1, i2)
}

// TriangleCount returns the number of triangles in the buffer.
func (b *Buffer) TriangleCount() int {
	return len(b.Indices) / 3
}

// Empty reports whether the buffer holds no triangles.
func (b *Buffer) Empty() bool {
	return len(b.Indices) == 0
}
