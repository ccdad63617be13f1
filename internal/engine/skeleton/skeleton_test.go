package skeleton

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/midgard-flora/internal/logger"
	"github.com/Faultbox/midgard-flora/pkg/curve"
	"github.com/Faultbox/midgard-flora/pkg/math"
)

func testTree() *BranchGroupConfig {
	return NewRoot(BranchGroupConfig{
		Name:         "trunk",
		Distribution: Distribution{Direction: math.Up},
		Shape: BranchShape{
			Length:      Range{4, 6},
			Radius:      curve.NewSource("fit(x, 0.5, 0.1)"),
			Segments:    6,
			PhaseRandom: 1,
		},
		Branches: []BranchGroupConfig{{
			Name:     "limbs",
			Material: 2,
			Distribution: Distribution{
				Frequency:   5,
				Location:    Range{0.2, 0.9},
				TwirlStep:   137.5,
				TwirlNoise:  15,
				GrowthAngle: curve.NewSource("60"),
			},
			Shape: BranchShape{
				Length:           Range{0.3, 0.5},
				RelativeLength:   true,
				Radius:           curve.NewSource("1-linear"),
				Segments:         4,
				GravityIntensity: 0.4,
				PhaseRandom:      0.5,
			},
			Fronds: []FrondGroupConfig{{
				Name:         "leaves",
				Material:     3,
				Type:         FrondSimple,
				Distribution: Distribution{Frequency: 3},
			}},
		}},
	})
}

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(nil) })
	return logs
}

func requireOrthonormal(t *testing.T, b math.Basis) {
	t.Helper()
	const eps = 1e-4
	require.InDelta(t, 1, b.X.Length(), eps)
	require.InDelta(t, 1, b.Y.Length(), eps)
	require.InDelta(t, 1, b.Z.Length(), eps)
	require.InDelta(t, 0, b.X.Dot(b.Y), eps)
	require.InDelta(t, 0, b.X.Dot(b.Z), eps)
	require.InDelta(t, 0, b.Y.Dot(b.Z), eps)
	cross := b.X.Cross(b.Y)
	require.InDelta(t, 1, cross.Dot(b.Z), eps, "frame must be right-handed")
}

func TestGenerateCounts(t *testing.T) {
	tree := GenerateSeeded(testTree(), 1)
	require.Empty(t, tree.Errors)

	require.Len(t, tree.Branches, 6)
	assert.Equal(t, []int{0}, tree.Roots)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, tree.Branches[0].Children)
	assert.Len(t, tree.Branches[0].Points, 7)

	for _, idx := range tree.Branches[0].Children {
		b := tree.Branches[idx]
		assert.Equal(t, 0, b.Parent)
		assert.Len(t, b.Points, 5)
		assert.Len(t, b.Fronds, 3)
	}
	assert.Len(t, tree.Fronds, 15)
	assert.Equal(t, []int{0, 2, 3}, tree.Materials())
}

func TestGenerateDeterministic(t *testing.T) {
	a := GenerateSeeded(testTree(), 42)
	b := GenerateSeeded(testTree(), 42)
	assert.Equal(t, a.Branches, b.Branches)
	assert.Equal(t, a.Fronds, b.Fronds)

	c := GenerateSeeded(testTree(), 43)
	assert.NotEqual(t, a.Branches[0].Length, c.Branches[0].Length)
}

func TestExplicitSeedPinsSubtree(t *testing.T) {
	root := testTree()
	root.Branches[0].Distribution.Seed = 99

	a := GenerateSeeded(root, 1)
	b := GenerateSeeded(root, 2)
	assert.Equal(t, a.Branches, b.Branches)
}

func TestGenerateFramesOrthonormal(t *testing.T) {
	logs := observe(t)
	tree := GenerateSeeded(testTree(), 5)
	for bi, b := range tree.Branches {
		require.Equal(t, float32(0), b.Points[0].Location)
		require.Equal(t, float32(1), b.Tip().Location)
		for pi, p := range b.Points {
			requireOrthonormal(t, p.Frame)
			require.Equal(t, p.Frame.Z, p.Direction, "branch %d point %d", bi, pi)
		}
	}
	for _, f := range tree.Fronds {
		requireOrthonormal(t, f.Anchor.Frame)
	}
	assert.Zero(t, logs.FilterMessage("point rejected").Len())
}

func TestRelativeLengthAndPhase(t *testing.T) {
	tree := GenerateSeeded(testTree(), 9)
	trunk := tree.Branches[0]
	assert.GreaterOrEqual(t, trunk.Length, float32(4))
	assert.LessOrEqual(t, trunk.Length, float32(6))

	for _, idx := range trunk.Children {
		b := tree.Branches[idx]
		assert.Equal(t, trunk.Length, b.ParentLength)
		assert.GreaterOrEqual(t, b.Length, 0.3*trunk.Length-1e-4)
		assert.LessOrEqual(t, b.Length, 0.5*trunk.Length+1e-4)

		anchor := trunk.PointAt(b.Location)
		phase := b.Points[0].Phase
		assert.GreaterOrEqual(t, phase, anchor.Phase)
		assert.LessOrEqual(t, phase, anchor.Phase+0.5)
		for _, p := range b.Points {
			assert.Equal(t, phase, p.Phase)
		}
		assert.InDelta(t, anchor.Radius, b.Points[0].Radius, 1e-5)
		assert.InDelta(t, 0, b.Points[len(b.Points)-1].Radius, 1e-5)
	}
}

func TestGrowthAngle(t *testing.T) {
	root := testTree()
	limbs := &root.Branches[0].Branches[0]
	limbs.Distribution.GrowthAngle = curve.NewSource("90")
	limbs.Distribution.TwirlNoise = 0
	limbs.Shape.GravityIntensity = 0

	tree := GenerateSeeded(root, 3)
	for _, idx := range tree.Branches[0].Children {
		d := tree.Branches[idx].Direction
		assert.InDelta(t, 0, d.Dot(math.Up), 1e-4)
		assert.InDelta(t, 1, d.Length(), 1e-4)
	}
}

func TestGravityBendsDown(t *testing.T) {
	root := NewRoot(BranchGroupConfig{
		Distribution: Distribution{Direction: math.UnitX},
		Shape:        BranchShape{Length: Range{10, 10}, Segments: 8, GravityIntensity: 3},
	})
	tree := GenerateSeeded(root, 1)
	require.Len(t, tree.Branches, 1)

	pts := tree.Branches[0].Points
	assert.Less(t, pts[len(pts)-1].Position.Y, float32(0))
	for i := 1; i < len(pts); i++ {
		assert.Less(t, pts[i].SegmentDirection.Y, pts[i-1].SegmentDirection.Y+1e-6)
	}
	assert.InDelta(t, 10, pts[len(pts)-1].Distance, 1e-3)
}

func TestZeroLengthBranchStaysFinite(t *testing.T) {
	root := NewRoot(BranchGroupConfig{
		Distribution: Distribution{Direction: math.Up, GrowthScale: curve.NewSource("0")},
		Shape:        BranchShape{Segments: 4},
	})
	tree := GenerateSeeded(root, 1)
	require.Len(t, tree.Branches, 1)
	for _, p := range tree.Branches[0].Points {
		assert.False(t, math32.IsNaN(p.Frame.X.X) || math32.IsNaN(p.RelativeDistance))
		assert.Equal(t, math.Up, p.Direction)
	}
}

func TestFrondTipPlacement(t *testing.T) {
	root := testTree()
	leaves := &root.Branches[0].Branches[0].Fronds[0]
	leaves.Distribution.Frequency = 0
	leaves.SizeRange = Range{2, 2}
	leaves.Size = curve.NewSource("0.5")

	tree := GenerateSeeded(root, 4)
	require.Len(t, tree.Fronds, 5)
	for _, f := range tree.Fronds {
		branch := tree.Branches[f.Branch]
		assert.Equal(t, float32(1), f.Location)
		assert.Equal(t, branch.Tip(), f.Anchor)
		assert.InDelta(t, 1, f.Size, 1e-6)
	}
}

func TestMissingParentSkipsGroup(t *testing.T) {
	logs := observe(t)

	root := testTree()
	root.Branches = append(root.Branches, BranchGroupConfig{
		Name:         "orphans",
		Distribution: Distribution{Frequency: 3},
	})
	tree := GenerateSeeded(root, 1)

	require.Len(t, tree.Errors, 1)
	assert.True(t, errors.Is(tree.Errors[0], ErrMissingParent))
	var cerr *ConfigError
	require.True(t, errors.As(tree.Errors[0], &cerr))
	assert.Equal(t, "root/orphans", cerr.Group)

	// The healthy sibling is still generated.
	assert.Len(t, tree.Branches, 6)
	assert.Equal(t, 1, logs.FilterMessage("skipping group").Len())
}

func TestUnknownTypesSkipSubtree(t *testing.T) {
	observe(t)

	root := testTree()
	limbs := &root.Branches[0].Branches[0]
	limbs.Distribution.Type = DistributionInvalid
	root.Branches[0].Fronds = []FrondGroupConfig{{Name: "bark", Type: FrondInvalid}}

	tree := GenerateSeeded(root, 1)
	require.Len(t, tree.Errors, 2)
	assert.True(t, errors.Is(tree.Errors[0], ErrUnknownDistribution))
	assert.True(t, errors.Is(tree.Errors[1], ErrUnknownFrondType))
	assert.Len(t, tree.Branches, 1)
	assert.Empty(t, tree.Fronds)
}

func TestGenerateNilRoot(t *testing.T) {
	tree := Generate(nil, nil)
	require.NotNil(t, tree)
	assert.Empty(t, tree.Branches)
}

func TestNumSegments(t *testing.T) {
	tests := []struct {
		name  string
		shape BranchShape
		want  int
	}{
		{"default", BranchShape{}, DefaultSegments},
		{"explicit", BranchShape{Segments: 10}, 10},
		{"multiplier", BranchShape{Segments: 10, GeometryMultiplier: 0.5}, 5},
		{"minimum", BranchShape{Segments: 4, GeometryMultiplier: 0.25}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shape.NumSegments())
		})
	}
}

func TestEnumText(t *testing.T) {
	var f FrondType
	require.NoError(t, f.UnmarshalText([]byte("Brush")))
	assert.Equal(t, FrondBrushEnding, f)
	require.NoError(t, f.UnmarshalText([]byte("spiral")))
	assert.Equal(t, FrondInvalid, f)

	var d DistributionType
	require.NoError(t, d.UnmarshalText([]byte("whorl")))
	assert.Equal(t, DistributionInvalid, d)
	assert.Equal(t, "alternate", DistributionAlternate.String())
}
