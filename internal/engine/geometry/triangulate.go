package geometry

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-flora/internal/engine/skeleton"
	"github.com/Faultbox/midgard-flora/internal/logger"
)

// Triangulate builds the geometry of one material at one LOD. Branches are
// visited from the roots down; each branch emits its rings, then its fronds,
// then recurses into its children. Only geometry of the requested material
// is emitted.
func Triangulate(tree *skeleton.Tree, material int, lod LOD) *Buffer {
	buf := &Buffer{}
	if tree == nil {
		return buf
	}
	for _, root := range tree.Roots {
		buf.addBranch(tree, root, material, lod)
	}

	logger.Named("geometry").Debug("triangulated",
		zap.Int("material", material),
		zap.Int("radial_segments", lod.RadialSegments),
		zap.Int("vertices", len(buf.Vertices)),
		zap.Int("triangles", buf.TriangleCount()))
	return buf
}

func (b *Buffer) addBranch(tree *skeleton.Tree, idx, material int, lod LOD) {
	branch := &tree.Branches[idx]
	if branch.Group != nil && branch.Group.Material == material {
		b.AddTube(branch, lod)
	}
	for _, fi := range branch.Fronds {
		frond := &tree.Fronds[fi]
		if frond.Group != nil && frond.Group.Material == material {
			b.AddFrond(frond)
		}
	}
	for _, child := range branch.Children {
		b.addBranch(tree, child, material, lod)
	}
}

// AddTube appends the ring geometry of one branch at the given LOD.
func (b *Buffer) AddTube(branch *skeleton.Branch, lod LOD) {
	points := lod.SelectPoints(branch)
	if len(points) < 2 {
		return
	}
	var shape skeleton.BranchShape
	if branch.Group != nil {
		shape = branch.Group.Shape
	}
	count := lod.RingCount(shape)
	uvScale := shape.UVScale()

	prev := b.AddRing(points[0], count, uvScale)
	for _, p := range points[1:] {
		next := b.AddRing(p, count, uvScale)
		b.BridgeRings(prev, count, next, count)
		prev = next
	}
}
