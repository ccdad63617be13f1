// Package flora runs the full tree pipeline: skeleton generation,
// triangulation per material and LOD, merging, wind baking and assembly.
package flora

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-flora/internal/engine/geometry"
	"github.com/Faultbox/midgard-flora/internal/engine/model"
	"github.com/Faultbox/midgard-flora/internal/engine/skeleton"
	"github.com/Faultbox/midgard-flora/internal/engine/wind"
	"github.com/Faultbox/midgard-flora/internal/logger"
)

// Options controls one pipeline run.
type Options struct {
	Seed          uint64
	LODs          []geometry.LOD // nil uses geometry.DefaultLODs
	TrunkStrength float32
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Seed:          1,
		LODs:          geometry.DefaultLODs(),
		TrunkStrength: 0.5,
	}
}

// Result is the output of Build.
type Result struct {
	Tree  *skeleton.Tree
	Model *model.Model
}

// Build generates a tree from its configuration. The same root and options
// always produce the same result. Configuration problems are logged and
// reported in Result.Tree.Errors; the pass itself never fails.
func Build(root *skeleton.BranchGroupConfig, opts Options) *Result {
	log := logger.Named("flora")
	lods := opts.LODs
	if len(lods) == 0 {
		lods = geometry.DefaultLODs()
	}

	tree := skeleton.GenerateSeeded(root, opts.Seed)
	materials := tree.Materials()

	chunks := make([]model.Chunk, 0, len(lods)*len(materials))
	for li, lod := range lods {
		for _, mat := range materials {
			chunks = append(chunks, model.Chunk{
				Material: mat,
				LOD:      li,
				Buffer:   geometry.Triangulate(tree, mat, lod),
			})
		}
	}

	merged, ranges := model.Merge(chunks)
	wind.Bake(merged.Vertices, opts.TrunkStrength)
	m := model.Assemble(merged, ranges)

	log.Info("tree built",
		zap.Uint64("seed", opts.Seed),
		zap.Int("branches", len(tree.Branches)),
		zap.Int("fronds", len(tree.Fronds)),
		zap.Ints("materials", materials),
		zap.Int("lods", len(lods)),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", len(m.Indices)/3),
		zap.Int("errors", len(tree.Errors)))
	return &Result{Tree: tree, Model: m}
}

// BuildFile loads a tree description and builds it.
func BuildFile(path string, opts Options) (*Result, error) {
	root, err := skeleton.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Build(root, opts), nil
}
