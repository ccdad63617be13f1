// Package skeleton generates branch skeletons from hierarchical group
// configurations.
//
// A configuration tree is a BranchGroupConfig whose descendants describe
// populations of branches and fronds. Generation walks the tree once and
// produces a Tree: an arena of Branches, each an ordered list of Points with
// a moving frame, plus the Fronds anchored on them. Malformed groups are
// reported in Tree.Errors and skipped together with their subtree.
package skeleton

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-flora/pkg/curve"
	"github.com/Faultbox/midgard-flora/pkg/math"
)

// RootFrequency marks the root group of a configuration tree.
const RootFrequency = -1

// Default shape values used when a field is left at zero.
const (
	DefaultSegments    = 6
	DefaultGrowthAngle = 45 // degrees from the parent axis
)

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float32 `yaml:"min" toml:"min"`
	Max float32 `yaml:"max" toml:"max"`
}

// IsZero reports whether both bounds are zero.
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Random returns a uniform value in the range.
func (r Range) Random(rng *rand.Rand) float32 {
	return math.Lerp(r.Min, r.Max, rng.Float32())
}

func (r Range) or(def Range) Range {
	if r.IsZero() {
		return def
	}
	return r
}

// DistributionType selects how children are spread around their parent.
type DistributionType int

const (
	DistributionAlternate DistributionType = iota
	DistributionInvalid   DistributionType = -1
)

// String returns the name used in tree descriptions.
func (d DistributionType) String() string {
	switch d {
	case DistributionAlternate:
		return "alternate"
	default:
		return fmt.Sprintf("Unknown(%d)", int(d))
	}
}

// UnmarshalText accepts "alternate". Unknown names decode to
// DistributionInvalid and are reported during generation.
func (d *DistributionType) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "alternate", "":
		*d = DistributionAlternate
	default:
		*d = DistributionInvalid
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d DistributionType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// FrondType selects one of the fixed frond topologies.
type FrondType int

const (
	FrondSimple FrondType = iota
	FrondRagEnding
	FrondBrushEnding
	FrondInvalid FrondType = -1
)

// String returns the name used in tree descriptions.
func (f FrondType) String() string {
	switch f {
	case FrondSimple:
		return "simple"
	case FrondRagEnding:
		return "rag"
	case FrondBrushEnding:
		return "brush"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// UnmarshalText accepts simple, rag and brush. Unknown names decode to
// FrondInvalid and are reported during generation.
func (f *FrondType) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "simple", "":
		*f = FrondSimple
	case "rag", "ragending", "rag_ending":
		*f = FrondRagEnding
	case "brush", "brushending", "brush_ending":
		*f = FrondBrushEnding
	default:
		*f = FrondInvalid
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (f FrondType) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Distribution places a group's members on their parents.
type Distribution struct {
	// Seed of the group's random stream; 0 draws one from the parent's
	// seed generator.
	Seed      uint64           `yaml:"seed" toml:"seed"`
	Frequency int              `yaml:"frequency" toml:"frequency"`
	Type      DistributionType `yaml:"type" toml:"type"`

	// Location is the attachment range along the parent, default [0, 1].
	Location Range        `yaml:"location" toml:"location"`
	Density  curve.Source `yaml:"density" toml:"density"`

	TwirlStep  float32 `yaml:"twirl_step" toml:"twirl_step"`   // degrees per child
	TwirlNoise float32 `yaml:"twirl_noise" toml:"twirl_noise"` // degrees

	GrowthScale curve.Source `yaml:"growth_scale" toml:"growth_scale"`
	GrowthAngle curve.Source `yaml:"growth_angle" toml:"growth_angle"` // degrees from parent axis

	// Explicit placement for frequency 0 groups.
	Position  math.Vec3 `yaml:"position" toml:"position"`
	Direction math.Vec3 `yaml:"direction" toml:"direction"`
}

func (d Distribution) location() Range {
	return d.Location.or(Range{0, 1})
}

// BranchShape controls the geometry of each generated branch.
type BranchShape struct {
	Length         Range        `yaml:"length" toml:"length"`
	RelativeLength bool         `yaml:"relative_length" toml:"relative_length"`
	Radius         curve.Source `yaml:"radius" toml:"radius"`

	Segments           int     `yaml:"segments" toml:"segments"`
	GeometryMultiplier float32 `yaml:"geometry_multiplier" toml:"geometry_multiplier"`

	GravityIntensity  float32      `yaml:"gravity_intensity" toml:"gravity_intensity"`
	GravityResistance float32      `yaml:"gravity_resistance" toml:"gravity_resistance"`
	Weight            curve.Source `yaml:"weight" toml:"weight"`

	Adherence   curve.Source `yaml:"adherence" toml:"adherence"`
	PhaseRandom float32      `yaml:"phase_random" toml:"phase_random"`

	TextureScale math.Vec2 `yaml:"texture_scale" toml:"texture_scale"`
}

// Multiplier returns the geometry multiplier, 1 when unset.
func (s BranchShape) Multiplier() float32 {
	if s.GeometryMultiplier <= 0 {
		return 1
	}
	return s.GeometryMultiplier
}

// NumSegments returns the number of skeleton segments per branch.
func (s BranchShape) NumSegments() int {
	base := s.Segments
	if base <= 0 {
		base = DefaultSegments
	}
	return max(3, int(math32.Round(float32(base)*s.Multiplier())))
}

// UVScale returns the texture scale with unset axes defaulting to 1.
func (s BranchShape) UVScale() math.Vec2 {
	uv := s.TextureScale
	if uv.X == 0 {
		uv.X = 1
	}
	if uv.Y == 0 {
		uv.Y = 1
	}
	return uv
}

// BranchGroupConfig describes a population of branches and its children.
type BranchGroupConfig struct {
	Name         string              `yaml:"name" toml:"name"`
	Material     int                 `yaml:"material" toml:"material"`
	Distribution Distribution        `yaml:"distribution" toml:"distribution"`
	Shape        BranchShape         `yaml:"shape" toml:"shape"`
	Branches     []BranchGroupConfig `yaml:"branches" toml:"branches"`
	Fronds       []FrondGroupConfig  `yaml:"fronds" toml:"fronds"`
}

// IsRoot reports whether the group is the root of a configuration tree.
func (c *BranchGroupConfig) IsRoot() bool {
	return c.Distribution.Frequency == RootFrequency
}

// NewRoot returns a root group holding the given trunk groups.
func NewRoot(trunks ...BranchGroupConfig) *BranchGroupConfig {
	return &BranchGroupConfig{
		Name:         "root",
		Distribution: Distribution{Frequency: RootFrequency},
		Branches:     trunks,
	}
}

// SimpleFrondShape is a flat 2x2 quad grid.
type SimpleFrondShape struct {
	Width  float32 `yaml:"width" toml:"width"`
	Length float32 `yaml:"length" toml:"length"`

	// AdjustUpToGlobal blends the branch frame (0) towards a world-up
	// aligned frame (1).
	AdjustUpToGlobal float32   `yaml:"adjust_up_to_global" toml:"adjust_up_to_global"`
	Rotation         math.Vec3 `yaml:"rotation" toml:"rotation"` // yaw, pitch, roll in degrees
	Offset           math.Vec3 `yaml:"offset" toml:"offset"`

	Gravity      math.Vec2 `yaml:"gravity" toml:"gravity"`             // droop across (X) and along (Y)
	GravityPower math.Vec2 `yaml:"gravity_power" toml:"gravity_power"` // falloff exponents
}

// RagFrondShape is a 9-vertex star around the branch tip.
type RagFrondShape struct {
	Bending  float32 `yaml:"bending" toml:"bending"`     // 0 keeps the star flat
	BendDown float32 `yaml:"bend_down" toml:"bend_down"` // 0 bends along the branch, 1 straight down
	Valley   float32 `yaml:"valley" toml:"valley"`       // radius of the inner ring vertices
}

// BrushFrondShape is a fan of vertical quads around the branch axis.
type BrushFrondShape struct {
	Width        float32 `yaml:"width" toml:"width"`
	Length       float32 `yaml:"length" toml:"length"`
	CenterOffset float32 `yaml:"center_offset" toml:"center_offset"`
}

// FrondGroupConfig describes a population of fronds on the parent branches.
type FrondGroupConfig struct {
	Name         string       `yaml:"name" toml:"name"`
	Material     int          `yaml:"material" toml:"material"`
	Distribution Distribution `yaml:"distribution" toml:"distribution"`
	Type         FrondType    `yaml:"type" toml:"type"`

	Size      curve.Source `yaml:"size" toml:"size"` // over parent location
	SizeRange Range        `yaml:"size_range" toml:"size_range"`

	Simple SimpleFrondShape `yaml:"simple" toml:"simple"`
	Rag    RagFrondShape    `yaml:"rag" toml:"rag"`
	Brush  BrushFrondShape  `yaml:"brush" toml:"brush"`
}
