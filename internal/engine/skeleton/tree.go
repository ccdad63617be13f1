package skeleton

import (
	"slices"
	"sort"

	"github.com/Faultbox/midgard-flora/pkg/math"
)

// NoParent marks a branch without a parent branch.
const NoParent = -1

// Point is one skeleton sample along a branch.
type Point struct {
	Position math.Vec3
	Radius   float32
	Location float32 // in [0, 1] along the branch

	Direction math.Vec3 // frame Z
	Frame     math.Basis

	Distance         float32 // arc length from the branch start
	RelativeDistance float32 // arc length in units of local circumference
	BranchAdherence  float32
	Phase            float32

	// Segment to the next point. The last point repeats the incoming
	// direction with zero length.
	SegmentDirection math.Vec3
	SegmentLength    float32
}

// Branch is a generated branch. Relations are indices into the owning Tree.
type Branch struct {
	Group    *BranchGroupConfig
	Parent   int
	Children []int
	Fronds   []int

	Position     math.Vec3
	Direction    math.Vec3
	Length       float32
	ParentLength float32
	ParentRadius float32
	Location     float32 // location on the parent

	Points []Point
}

// Frond is a leaf card anchored on a branch.
type Frond struct {
	Group    *FrondGroupConfig
	Branch   int
	Location float32
	Anchor   Point
	Size     float32
	Twirl    float32 // roll in degrees
}

// Tree is the result of one generation pass.
type Tree struct {
	Branches []Branch
	Fronds   []Frond
	Roots    []int
	Errors   []error
}

// Materials returns the sorted set of materials used by generated branches
// and fronds.
func (t *Tree) Materials() []int {
	var mats []int
	add := func(m int) {
		if !slices.Contains(mats, m) {
			mats = append(mats, m)
		}
	}
	for i := range t.Branches {
		if g := t.Branches[i].Group; g != nil {
			add(g.Material)
		}
	}
	for i := range t.Fronds {
		if g := t.Fronds[i].Group; g != nil {
			add(g.Material)
		}
	}
	slices.Sort(mats)
	return mats
}

// PointCount returns the total number of skeleton points.
func (t *Tree) PointCount() int {
	n := 0
	for i := range t.Branches {
		n += len(t.Branches[i].Points)
	}
	return n
}

// Tip returns the last point of the branch.
func (b *Branch) Tip() Point {
	if len(b.Points) == 0 {
		return Point{Position: b.Position, Direction: b.Direction, Frame: math.BasisFromAxis(b.Direction)}
	}
	return b.Points[len(b.Points)-1]
}

// PointAt interpolates the skeleton at a location in [0, 1]. Locations
// outside the sampled range clamp to the end points.
func (b *Branch) PointAt(location float32) Point {
	n := len(b.Points)
	if n == 0 {
		return b.Tip()
	}
	if location <= b.Points[0].Location {
		return b.Points[0]
	}
	if location >= b.Points[n-1].Location {
		return b.Points[n-1]
	}

	i := sort.Search(n, func(i int) bool { return b.Points[i].Location >= location })
	p0, p1 := b.Points[i-1], b.Points[i]
	t := (location - p0.Location) / (p1.Location - p0.Location)

	frame := p0.Frame.Lerp(p1.Frame, t)
	return Point{
		Position:         p0.Position.Lerp(p1.Position, t),
		Radius:           math.Lerp(p0.Radius, p1.Radius, t),
		Location:         location,
		Direction:        frame.Z,
		Frame:            frame,
		Distance:         math.Lerp(p0.Distance, p1.Distance, t),
		RelativeDistance: math.Lerp(p0.RelativeDistance, p1.RelativeDistance, t),
		BranchAdherence:  math.Lerp(p0.BranchAdherence, p1.BranchAdherence, t),
		Phase:            math.Lerp(p0.Phase, p1.Phase, t),
		SegmentDirection: p0.SegmentDirection,
		SegmentLength:    p0.SegmentLength * (1 - t),
	}
}
