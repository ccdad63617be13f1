package skeleton

import (
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-flora/internal/logger"
	"github.com/Faultbox/midgard-flora/pkg/math"
)

// PCG stream selectors. A group seed feeds two independent streams: one for
// the group's own randoms and one for the seeds of its child groups.
const (
	streamShape uint64 = 0x5eed0001
	streamSeeds uint64 = 0x5eed0002
)

// NewSeedGenerator returns the seed generator Generate expects for a run
// seed.
func NewSeedGenerator(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, streamSeeds))
}

// GenerateSeeded is Generate with a seed generator built from seed.
func GenerateSeeded(root *BranchGroupConfig, seed uint64) *Tree {
	return Generate(root, NewSeedGenerator(seed))
}

// Generate walks the configuration tree and returns the generated skeleton.
// Groups with a zero seed draw one from seeds in traversal order, so a fixed
// seed generator makes the whole pass deterministic. Malformed groups are
// logged, recorded in Tree.Errors and skipped along with their subtree.
func Generate(root *BranchGroupConfig, seeds *rand.Rand) *Tree {
	g := &generator{
		tree: &Tree{},
		log:  logger.Named("skeleton"),
	}
	if root == nil {
		return g.tree
	}
	if seeds == nil {
		seeds = NewSeedGenerator(0)
	}

	if root.IsRoot() {
		path := groupName(root, "root")
		for i := range root.Branches {
			g.branchGroup(&root.Branches[i], nil, seeds, childPath(path, "branches", i, root.Branches[i].Name))
		}
		for i := range root.Fronds {
			g.frondGroup(&root.Fronds[i], nil, seeds, childPath(path, "fronds", i, root.Fronds[i].Name))
		}
	} else {
		g.branchGroup(root, nil, seeds, groupName(root, "root"))
	}

	g.log.Debug("skeleton generated",
		zap.Int("branches", len(g.tree.Branches)),
		zap.Int("fronds", len(g.tree.Fronds)),
		zap.Int("points", g.tree.PointCount()),
		zap.Int("errors", len(g.tree.Errors)))
	return g.tree
}

type generator struct {
	tree *Tree
	log  *zap.Logger
}

// attachment carries what a new branch inherits from where it grows.
type attachment struct {
	parent          int
	location        float32
	position        math.Vec3
	direction       math.Vec3
	parentLength    float32
	parentRadius    float32
	parentPhase     float32
	parentAdherence float32
}

func (g *generator) fail(path string, err error) {
	cerr := &ConfigError{Group: path, Err: err}
	g.tree.Errors = append(g.tree.Errors, cerr)
	g.log.Error("skipping group", zap.String("group", path), zap.Error(err))
}

func groupSeed(d Distribution, seeds *rand.Rand) uint64 {
	// Always draw so that sibling streams do not depend on explicit seeds.
	drawn := seeds.Uint64()
	if d.Seed != 0 {
		return d.Seed
	}
	return drawn
}

func (g *generator) branchGroup(cfg *BranchGroupConfig, parents []int, seeds *rand.Rand, path string) {
	seed := groupSeed(cfg.Distribution, seeds)
	rng := rand.New(rand.NewPCG(seed, streamShape))
	childSeeds := rand.New(rand.NewPCG(seed, streamSeeds))

	dist := cfg.Distribution
	var created []int
	switch {
	case dist.Frequency == 0:
		created = append(created, g.explicitBranch(cfg, parents, rng))
	case dist.Frequency > 0:
		if len(parents) == 0 {
			g.fail(path, ErrMissingParent)
			return
		}
		if dist.Type != DistributionAlternate {
			g.fail(path, fmt.Errorf("%w: %s", ErrUnknownDistribution, dist.Type))
			return
		}
		for _, p := range parents {
			created = append(created, g.alternate(cfg, p, rng)...)
		}
	default:
		g.fail(path, fmt.Errorf("%w: %d", ErrInvalidFrequency, dist.Frequency))
		return
	}

	for i := range cfg.Branches {
		g.branchGroup(&cfg.Branches[i], created, childSeeds, childPath(path, "branches", i, cfg.Branches[i].Name))
	}
	for i := range cfg.Fronds {
		g.frondGroup(&cfg.Fronds[i], created, childSeeds, childPath(path, "fronds", i, cfg.Fronds[i].Name))
	}
}

func (g *generator) explicitBranch(cfg *BranchGroupConfig, parents []int, rng *rand.Rand) int {
	dist := cfg.Distribution
	at := attachment{
		parent:       NoParent,
		location:     dist.Location.Min,
		position:     dist.Position,
		direction:    dist.Direction.NormalizeOr(math.Up),
		parentLength: 1,
		parentRadius: 1,
	}
	if len(parents) > 0 {
		parent := &g.tree.Branches[parents[0]]
		anchor := parent.PointAt(at.location)
		at.parent = parents[0]
		at.parentLength = parent.Length
		at.parentRadius = anchor.Radius
		at.parentPhase = anchor.Phase
		at.parentAdherence = anchor.BranchAdherence
	}
	return g.generateBranch(cfg, at, rng)
}

func (g *generator) alternate(cfg *BranchGroupConfig, parentIdx int, rng *rand.Rand) []int {
	dist := cfg.Distribution
	loc := dist.location()
	locs := ComputeLocations(dist.Frequency, dist.Density, loc.Min, loc.Max)

	created := make([]int, 0, len(locs))
	for i, l := range locs {
		parent := &g.tree.Branches[parentIdx]
		anchor := parent.PointAt(l)

		a := math.DegToRad(dist.TwirlNoise*(2*rng.Float32()-1) + dist.TwirlStep*float32(i))
		sa, ca := math32.Sincos(a)
		radial := anchor.Frame.X.Scale(ca).Add(anchor.Frame.Y.Scale(sa))

		theta := math.DegToRad(dist.GrowthAngle.SampleOr(l, DefaultGrowthAngle))
		st, ct := math32.Sincos(theta)
		dir := anchor.Frame.Z.Scale(ct).Add(radial.Scale(st)).NormalizeOr(anchor.Frame.Z)

		created = append(created, g.generateBranch(cfg, attachment{
			parent:          parentIdx,
			location:        l,
			position:        anchor.Position,
			direction:       dir,
			parentLength:    parent.Length,
			parentRadius:    anchor.Radius,
			parentPhase:     anchor.Phase,
			parentAdherence: anchor.BranchAdherence,
		}, rng))
	}
	return created
}

// generateBranch grows one branch from the attachment and appends it to the
// tree. Gravity bends the direction before every step.
func (g *generator) generateBranch(cfg *BranchGroupConfig, at attachment, rng *rand.Rand) int {
	shape := cfg.Shape

	length := shape.Length.or(Range{1, 1}).Random(rng)
	length *= cfg.Distribution.GrowthScale.SampleOr(at.location, 1)
	if shape.RelativeLength {
		length *= at.parentLength
	}
	length = max(length, 0)

	phase := at.parentPhase + rng.Float32()*shape.PhaseRandom

	numSegments := shape.NumSegments()
	step := length / float32(numSegments)

	b := Branch{
		Group:        cfg,
		Parent:       at.parent,
		Position:     at.position,
		Direction:    at.direction,
		Length:       length,
		ParentLength: at.parentLength,
		ParentRadius: at.parentRadius,
		Location:     at.location,
		Points:       make([]Point, 0, numSegments+1),
	}

	pos, dir := at.position, at.direction
	for k := 0; k <= numSegments; k++ {
		t := float32(k) / float32(numSegments)
		// t strictly increases, so AddPoint only fails on a broken loop.
		if err := b.AddPoint(Point{
			Position:        pos,
			Radius:          max(shape.Radius.SampleOr(t, 1)*at.parentRadius, 0),
			Location:        t,
			BranchAdherence: shape.Adherence.SampleOr(t, 0) + at.parentAdherence,
			Phase:           phase,
		}); err != nil {
			g.log.Error("point rejected", zap.String("group", cfg.Name), zap.Int("point", k), zap.Error(err))
		}
		if k == numSegments {
			break
		}
		pull := shape.GravityIntensity * shape.Weight.SampleOr(t, 1) *
			(1 - shape.GravityResistance*(1-t)) / float32(numSegments)
		dir = dir.Add(math.Down.Scale(pull)).NormalizeOr(dir)
		pos = pos.Add(dir.Scale(step))
	}

	idx := len(g.tree.Branches)
	g.tree.Branches = append(g.tree.Branches, b)
	if at.parent == NoParent {
		g.tree.Roots = append(g.tree.Roots, idx)
	} else {
		parent := &g.tree.Branches[at.parent]
		parent.Children = append(parent.Children, idx)
	}
	return idx
}

func (g *generator) frondGroup(cfg *FrondGroupConfig, parents []int, seeds *rand.Rand, path string) {
	seed := groupSeed(cfg.Distribution, seeds)
	rng := rand.New(rand.NewPCG(seed, streamShape))

	switch cfg.Type {
	case FrondSimple, FrondRagEnding, FrondBrushEnding:
	default:
		g.fail(path, fmt.Errorf("%w: %s", ErrUnknownFrondType, cfg.Type))
		return
	}
	if len(parents) == 0 {
		g.fail(path, ErrMissingParent)
		return
	}

	dist := cfg.Distribution
	sizeRange := cfg.SizeRange.or(Range{1, 1})
	for _, p := range parents {
		var locs []float32
		if dist.Frequency > 0 {
			loc := dist.location()
			locs = ComputeLocations(dist.Frequency, dist.Density, loc.Min, loc.Max)
		} else {
			locs = []float32{1}
		}

		for i, l := range locs {
			anchor := g.tree.Branches[p].PointAt(l)
			size := cfg.Size.SampleOr(l, 1) * sizeRange.Random(rng)
			twirl := dist.TwirlStep*float32(i) + dist.TwirlNoise*(2*rng.Float32()-1)

			idx := len(g.tree.Fronds)
			g.tree.Fronds = append(g.tree.Fronds, Frond{
				Group:    cfg,
				Branch:   p,
				Location: l,
				Anchor:   anchor,
				Size:     max(size, 0),
				Twirl:    twirl,
			})
			branch := &g.tree.Branches[p]
			branch.Fronds = append(branch.Fronds, idx)
		}
	}
}

func groupName(cfg *BranchGroupConfig, def string) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	return def
}

func childPath(parent, kind string, i int, name string) string {
	if name != "" {
		return parent + "/" + name
	}
	return fmt.Sprintf("%s/%s[%d]", parent, kind, i)
}
