// treegen is a CLI utility for generating procedural tree meshes.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-flora/internal/config"
	"github.com/Faultbox/midgard-flora/internal/engine/flora"
	"github.com/Faultbox/midgard-flora/internal/engine/skeleton"
	"github.com/Faultbox/midgard-flora/internal/logger"
	"github.com/Faultbox/midgard-flora/pkg/curve"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "build", "b":
		cmdBuild(args)
	case "curve":
		cmdCurve(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`treegen - procedural tree mesh generator

Usage:
  treegen <command> [options]

Commands:
  info [-seed N] <tree.yaml>           Validate a tree description and show statistics
  build [options] [tree.yaml]          Build a tree and export one LOD as OBJ
  curve <profile> [samples]            Sample a curve or expression over [0, 1]

Build options:
  -config <file>        Config file (.yaml or .toml)
  -seed <n>             Random seed
  -trunk-strength <f>   Trunk stiffness for wind baking
  -o <file>             Output OBJ path
  -lod <n>              LOD to export
  -debug                Enable debug logging
  -log-file <file>      Write logs to a file

Examples:
  treegen info trees/oak.yaml
  treegen build -seed 7 -o oak.obj trees/oak.yaml
  treegen curve "sin(x, 1, 0, 0.5, 0.5)" 8
  treegen curve "0 0 0; 0.5 1; 1 0"`)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	seed := fs.Uint64("seed", 1, "Random seed")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: treegen info [-seed N] <tree.yaml>")
		os.Exit(1)
	}

	root, err := skeleton.LoadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	problems := skeleton.Validate(root)
	opts := flora.DefaultOptions()
	opts.Seed = *seed
	res := flora.Build(root, opts)
	tree, m := res.Tree, res.Model

	fmt.Printf("Tree:      %s\n", root.Name)
	fmt.Printf("Seed:      %d\n", *seed)
	fmt.Printf("Branches:  %d\n", len(tree.Branches))
	fmt.Printf("Fronds:    %d\n", len(tree.Fronds))
	fmt.Printf("Points:    %d\n", tree.PointCount())
	fmt.Printf("Materials: %v\n", tree.Materials())
	fmt.Printf("Radius:    %.3f\n", m.Radius)
	size := m.Bounds.Size()
	fmt.Printf("Size:      %.3f x %.3f x %.3f\n", size[0], size[1], size[2])
	fmt.Println()
	fmt.Println("Levels of detail:")
	for lod := 0; lod < m.LODCount(); lod++ {
		fmt.Printf("  LOD %d     %d triangles\n", lod, m.TriangleCount(lod))
	}

	if len(problems) > 0 {
		fmt.Println()
		fmt.Println("Problems:")
		for _, p := range problems {
			fmt.Printf("  %v\n", p)
		}
		os.Exit(2)
	}
}

func cmdBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	flags := config.BindFlags(fs)
	output := fs.String("o", "", "Output OBJ path")
	lod := fs.Int("lod", -1, "LOD to export")
	fs.Parse(args)

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *output != "" {
		cfg.Output.Path = *output
	}
	if *lod >= 0 {
		cfg.Output.LOD = *lod
	}
	if fs.NArg() > 0 {
		cfg.Generation.Tree = fs.Arg(0)
	}
	if cfg.Generation.Tree == "" {
		fmt.Fprintln(os.Stderr, "Usage: treegen build [options] <tree.yaml>")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	curve.SetLogger(logger.Named("curve"))

	logger.Debug("building tree",
		zap.String("path", cfg.Generation.Tree),
		zap.Uint64("seed", cfg.Generation.Seed))

	res, err := flora.BuildFile(cfg.Generation.Tree, cfg.Options())
	if err != nil {
		logger.Error("failed to load tree", zap.String("path", cfg.Generation.Tree), zap.Error(err))
		os.Exit(1)
	}
	if n := len(res.Tree.Errors); n > 0 {
		logger.Warn("tree built with skipped groups", zap.Int("count", n))
	}

	if err := writeOBJ(cfg.Output.Path, res, cfg.Output.LOD); err != nil {
		logger.Error("failed to write model", zap.String("path", cfg.Output.Path), zap.Error(err))
		os.Exit(1)
	}

	logger.Info("wrote model",
		zap.String("path", cfg.Output.Path),
		zap.Int("lod", cfg.Output.LOD),
		zap.Int("triangles", res.Model.TriangleCount(cfg.Output.LOD)))
	fmt.Printf("Wrote %s (LOD %d, %d triangles)\n", cfg.Output.Path, cfg.Output.LOD, res.Model.TriangleCount(cfg.Output.LOD))
}

func writeOBJ(path string, res *flora.Result, lod int) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := res.Model.WriteOBJ(out, lod); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func cmdCurve(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: treegen curve <profile> [samples]")
		os.Exit(1)
	}

	profile, err := curve.ParseProfile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	samples := 10
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "Error: invalid sample count %q\n", args[1])
			os.Exit(1)
		}
		samples = n
	}

	if e, ok := profile.(*curve.Expression); ok {
		fmt.Printf("Expression: %s\n", e)
	}
	for i := 0; i <= samples; i++ {
		t := float32(i) / float32(samples)
		fmt.Printf("  %-6.3f %g\n", t, profile.Sample(t))
	}
}
