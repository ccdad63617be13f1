// Package wind bakes per-vertex wind animation parameters.
//
// Main adherence grows with height so the trunk base stays anchored. Branch
// adherence and phase come from the skeleton and are normalized here.
package wind

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-flora/internal/engine/geometry"
	"github.com/Faultbox/midgard-flora/internal/logger"
	"github.com/Faultbox/midgard-flora/pkg/math"
)

// MaxTrunkStrength is the upper clamp of the trunk strength exponent input.
const MaxTrunkStrength = 0.999

// BakeMainAdherence sets MainAdherence to (y/maxY)^(1/(1-trunkStrength)),
// clamped below at 0. A stronger trunk keeps more of the tree still. When
// no vertex is above the ground every vertex gets 0.
func BakeMainAdherence(vs []geometry.Vertex, trunkStrength float32) {
	var maxY float32
	for i := range vs {
		maxY = max(maxY, vs[i].Position.Y)
	}
	if maxY <= 0 {
		for i := range vs {
			vs[i].MainAdherence = 0
		}
		return
	}

	exp := 1 / (1 - math.Clamp(trunkStrength, 0, MaxTrunkStrength))
	for i := range vs {
		h := max(vs[i].Position.Y/maxY, 0)
		vs[i].MainAdherence = math32.Pow(h, exp)
	}
}

// NormalizeBranchesAdherence scales BranchAdherence so its largest magnitude
// is 1. Negative adherence authored in a profile keeps its sign.
func NormalizeBranchesAdherence(vs []geometry.Vertex) {
	var observed float32
	for i := range vs {
		observed = max(observed, math32.Abs(vs[i].BranchAdherence))
	}
	scale := 1 / max(observed, math.Epsilon)
	for i := range vs {
		vs[i].BranchAdherence *= scale
	}
}

// NormalizePhases wraps Phase into [0, 1).
func NormalizePhases(vs []geometry.Vertex) {
	for i := range vs {
		vs[i].Phase = math.Fract(vs[i].Phase)
	}
}

// Bake runs all wind passes over the vertices in place.
func Bake(vs []geometry.Vertex, trunkStrength float32) {
	BakeMainAdherence(vs, trunkStrength)
	NormalizeBranchesAdherence(vs)
	NormalizePhases(vs)
	logger.Named("wind").Debug("baked",
		zap.Int("vertices", len(vs)),
		zap.Float32("trunk_strength", trunkStrength))
}
