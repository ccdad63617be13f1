package skeleton

import (
	"github.com/Faultbox/midgard-flora/pkg/math"
)

// AddPoint appends p to the branch. Distance, relative distance and the
// previous point's segment are derived here, and the frames of p and its
// predecessor are recomputed. The caller fills Position, Radius, Location,
// BranchAdherence and Phase.
func (b *Branch) AddPoint(p Point) error {
	k := len(b.Points)
	if k == 0 {
		p.Distance = 0
		p.RelativeDistance = 0
		p.SegmentDirection = b.Direction.NormalizeOr(math.Up)
		p.SegmentLength = 0
	} else {
		prev := &b.Points[k-1]
		if p.Location <= prev.Location {
			return ErrNonIncreasingLocation
		}
		seg := p.Position.Sub(prev.Position)
		length := seg.Length()

		prev.SegmentDirection = seg.NormalizeOr(prev.SegmentDirection)
		prev.SegmentLength = length

		p.Distance = prev.Distance + length
		p.RelativeDistance = prev.RelativeDistance + relativeStep(prev.Radius, p.Radius, length)
		p.SegmentDirection = prev.SegmentDirection
		p.SegmentLength = 0
	}

	b.Points = append(b.Points, p)
	b.updateFrame(k - 1)
	b.updateFrame(k)
	return nil
}

// relativeStep converts a segment length into circumference units. The
// taper factor K is a first-order correction for the radius change across
// the segment.
func relativeStep(r0, r1, length float32) float32 {
	if r0 <= math.Epsilon {
		return 0
	}
	k := 1 - (r1/r0-1)/2
	return k * length / (2 * math.Pi * r0)
}

func (b *Branch) updateFrame(i int) {
	if i < 0 || i >= len(b.Points) {
		return
	}
	n := len(b.Points)

	var z math.Vec3
	switch {
	case n == 1:
		z = b.Points[0].SegmentDirection
	case i == 0:
		z = b.Points[0].SegmentDirection
	case i == n-1:
		z = b.Points[n-2].SegmentDirection
	default:
		in, out := b.Points[i-1].SegmentDirection, b.Points[i].SegmentDirection
		z = in.Add(out).NormalizeOr(out)
	}

	frame := math.BasisFromAxis(z)
	b.Points[i].Frame = frame
	b.Points[i].Direction = frame.Z
}
