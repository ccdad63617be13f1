// Package config handles tree generator configuration loading and management.
package config

import (
	"github.com/Faultbox/midgard-flora/internal/engine/flora"
	"github.com/Faultbox/midgard-flora/internal/engine/geometry"
)

// Config holds all generator settings.
type Config struct {
	Generation GenerationConfig `yaml:"generation" toml:"generation"`
	Output     OutputConfig     `yaml:"output" toml:"output"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

// GenerationConfig holds pipeline settings.
type GenerationConfig struct {
	Tree          string         `yaml:"tree" toml:"tree"` // Tree description file
	Seed          uint64         `yaml:"seed" toml:"seed"`
	TrunkStrength float32        `yaml:"trunk_strength" toml:"trunk_strength"`
	LODs          []geometry.LOD `yaml:"lods" toml:"lods"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Path string `yaml:"path" toml:"path"`
	LOD  int    `yaml:"lod" toml:"lod"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	opts := flora.DefaultOptions()
	return &Config{
		Generation: GenerationConfig{
			Seed:          opts.Seed,
			TrunkStrength: opts.TrunkStrength,
			LODs:          opts.LODs,
		},
		Output: OutputConfig{
			Path: "tree.obj",
			LOD:  0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Options returns the pipeline options for this configuration.
func (c *Config) Options() flora.Options {
	return flora.Options{
		Seed:          c.Generation.Seed,
		LODs:          c.Generation.LODs,
		TrunkStrength: c.Generation.TrunkStrength,
	}
}
