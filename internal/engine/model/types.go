// Package model assembles per-material, per-LOD geometry into one mesh
// ready for upload.
package model

import "github.com/Faultbox/midgard-flora/internal/engine/geometry"

// Vertex is the reduced output vertex.
type Vertex struct {
	Position [3]float32
	Tangent  [3]float32
	Binormal [3]float32
	Normal   [3]float32
	Normal2  [3]float32 // direction from the bounds center, for canopy shading
	TexCoord [2]float32
	Wind     [4]float32 // main adherence, branch adherence, phase, edge
}

// VertexStride is the number of float32 values per interleaved vertex.
const VertexStride = 3 + 3 + 3 + 3 + 3 + 2 + 4

// Chunk is the geometry of one material at one LOD.
type Chunk struct {
	Material int
	LOD      int
	Buffer   *geometry.Buffer
}

// DrawRange locates one chunk inside the merged buffers.
type DrawRange struct {
	Material    int
	LOD         int
	StartIndex  int32
	IndexCount  int32
	StartVertex int32
	VertexCount int32
}

// Model holds the assembled mesh.
type Model struct {
	Vertices []Vertex
	Indices  []uint32
	Ranges   []DrawRange
	Bounds   Bounds
	Radius   float32 // XZ radius of LOD 0 around the bounds center
}

// Bounds holds the axis-aligned bounding box of the model.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the middle of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the box extent per axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}
