package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-flora/internal/engine/skeleton"
	"github.com/Faultbox/midgard-flora/pkg/math"
)

// LOD controls skeleton decimation and ring resolution for one detail level.
type LOD struct {
	// MinAngle is the direction change, in degrees, that keeps an interior
	// point. 0 keeps every point.
	MinAngle float32 `yaml:"min_angle" toml:"min_angle"`

	// Segment count bounds per branch. MaxSegments 0 is unbounded.
	MinSegments int `yaml:"min_segments" toml:"min_segments"`
	MaxSegments int `yaml:"max_segments" toml:"max_segments"`

	// RadialSegments around each ring before the branch geometry multiplier.
	RadialSegments int `yaml:"radial_segments" toml:"radial_segments"`
}

// DefaultLODs returns three detail levels from full to coarse.
func DefaultLODs() []LOD {
	return []LOD{
		{MinAngle: 0, MinSegments: 1, RadialSegments: 8},
		{MinAngle: 8, MinSegments: 1, MaxSegments: 8, RadialSegments: 6},
		{MinAngle: 20, MinSegments: 1, MaxSegments: 3, RadialSegments: 4},
	}
}

// RingCount returns the number of radial segments for a branch shape.
func (l LOD) RingCount(shape skeleton.BranchShape) int {
	return max(3, int(math32.Round(float32(l.RadialSegments)*shape.Multiplier())))
}

// SelectPoints decimates a branch for this LOD. Both ends are always kept.
// Interior points are kept once the direction has turned by MinAngle since
// the last kept point. The resulting segment count is then clamped to
// [MinSegments, MaxSegments]: too many segments are thinned by picking
// evenly spaced kept points, too few are resampled evenly along the branch.
func (l LOD) SelectPoints(b *skeleton.Branch) []skeleton.Point {
	n := len(b.Points)
	if n < 2 {
		return append([]skeleton.Point(nil), b.Points...)
	}

	minAngle := math.DegToRad(l.MinAngle)
	kept := []skeleton.Point{b.Points[0]}
	for i := 1; i < n-1; i++ {
		last := kept[len(kept)-1]
		if l.MinAngle <= 0 || last.Direction.AngleTo(b.Points[i].Direction) >= minAngle {
			kept = append(kept, b.Points[i])
		}
	}
	kept = append(kept, b.Points[n-1])

	segments := len(kept) - 1
	switch {
	case l.MaxSegments > 0 && segments > l.MaxSegments:
		thinned := make([]skeleton.Point, l.MaxSegments+1)
		for i := range thinned {
			idx := int(math32.Round(float32(i) * float32(segments) / float32(l.MaxSegments)))
			thinned[i] = kept[idx]
		}
		return thinned
	case segments < l.MinSegments:
		resampled := make([]skeleton.Point, l.MinSegments+1)
		first, last := b.Points[0].Location, b.Points[n-1].Location
		for i := range resampled {
			t := float32(i) / float32(l.MinSegments)
			resampled[i] = b.PointAt(math.Lerp(first, last, t))
		}
		resampled[0], resampled[l.MinSegments] = b.Points[0], b.Points[n-1]
		return resampled
	}
	return kept
}
