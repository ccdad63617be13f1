package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/midgard-flora/internal/engine/geometry"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test generation defaults
	if cfg.Generation.Seed != 1 {
		t.Errorf("expected seed 1, got %d", cfg.Generation.Seed)
	}
	if cfg.Generation.TrunkStrength != 0.5 {
		t.Errorf("expected trunk strength 0.5, got %f", cfg.Generation.TrunkStrength)
	}
	if len(cfg.Generation.LODs) != len(geometry.DefaultLODs()) {
		t.Errorf("expected %d LODs, got %d", len(geometry.DefaultLODs()), len(cfg.Generation.LODs))
	}

	// Test output defaults
	if cfg.Output.Path != "tree.obj" {
		t.Errorf("expected output path tree.obj, got %s", cfg.Output.Path)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "treegen.yaml")

	yamlContent := `
generation:
  tree: "trees/oak.yaml"
  seed: 42
  trunk_strength: 0.8
  lods:
    - radial_segments: 12
    - min_angle: 15
      max_segments: 4
      radial_segments: 5

output:
  path: "out/oak.obj"
  lod: 1

logging:
  level: "debug"
  log_file: "treegen.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Generation.Tree != "trees/oak.yaml" {
		t.Errorf("expected tree trees/oak.yaml, got %s", cfg.Generation.Tree)
	}
	if cfg.Generation.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Generation.Seed)
	}
	if cfg.Generation.TrunkStrength != 0.8 {
		t.Errorf("expected trunk strength 0.8, got %f", cfg.Generation.TrunkStrength)
	}
	if len(cfg.Generation.LODs) != 2 {
		t.Fatalf("expected 2 LODs, got %d", len(cfg.Generation.LODs))
	}
	want := geometry.LOD{MinAngle: 15, MaxSegments: 4, RadialSegments: 5}
	if cfg.Generation.LODs[1] != want {
		t.Errorf("expected LOD %+v, got %+v", want, cfg.Generation.LODs[1])
	}
	if cfg.Output.Path != "out/oak.obj" || cfg.Output.LOD != 1 {
		t.Errorf("unexpected output config %+v", cfg.Output)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "treegen.log" {
		t.Errorf("expected log file 'treegen.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "treegen.toml")

	tomlContent := `
[generation]
seed = 7
trunk_strength = 0.25

[[generation.lods]]
radial_segments = 6

[logging]
level = "warn"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Generation.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Generation.Seed)
	}
	if cfg.Generation.TrunkStrength != 0.25 {
		t.Errorf("expected trunk strength 0.25, got %f", cfg.Generation.TrunkStrength)
	}
	if len(cfg.Generation.LODs) != 1 || cfg.Generation.LODs[0].RadialSegments != 6 {
		t.Errorf("unexpected LODs %+v", cfg.Generation.LODs)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults.
	if cfg.Output.Path != "tree.obj" {
		t.Errorf("expected default output path, got %s", cfg.Output.Path)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
generation:
  seed: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("treegen.toml", []byte("[generation]\nseed = 3\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path != "./treegen.toml" {
		t.Errorf("expected to find ./treegen.toml, got %q", path)
	}
}

func TestLoadWithFlags(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "treegen.yaml")
	if err := os.WriteFile(configPath, []byte("generation:\n  seed: 42\n  trunk_strength: 0.1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "file only",
			args: []string{"-config", configPath},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Generation.Seed != 42 {
					t.Errorf("expected seed 42 from file, got %d", cfg.Generation.Seed)
				}
			},
		},
		{
			name: "seed flag overrides file",
			args: []string{"-config", configPath, "-seed", "9"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Generation.Seed != 9 {
					t.Errorf("expected seed 9 from flag, got %d", cfg.Generation.Seed)
				}
				if cfg.Generation.TrunkStrength != 0.1 {
					t.Errorf("expected trunk strength 0.1 from file, got %f", cfg.Generation.TrunkStrength)
				}
			},
		},
		{
			name: "explicit zero seed",
			args: []string{"-config", configPath, "-seed", "0", "-trunk-strength", "0"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Generation.Seed != 0 {
					t.Errorf("expected seed 0 from flag, got %d", cfg.Generation.Seed)
				}
				if cfg.Generation.TrunkStrength != 0 {
					t.Errorf("expected trunk strength 0 from flag, got %f", cfg.Generation.TrunkStrength)
				}
			},
		},
		{
			name: "debug and log file",
			args: []string{"-config", configPath, "-debug", "-log-file", "run.log"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if cfg.Logging.LogFile != "run.log" {
					t.Errorf("expected log file run.log, got %s", cfg.Logging.LogFile)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			flags := BindFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse flags: %v", err)
			}
			cfg, err := Load(flags)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestLoadBadFile(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"-config", "/nonexistent/treegen.yaml"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := Load(flags); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Generation.Seed = 11
	cfg.Generation.TrunkStrength = 0.3

	opts := cfg.Options()
	if opts.Seed != 11 || opts.TrunkStrength != 0.3 {
		t.Errorf("unexpected options %+v", opts)
	}
	if len(opts.LODs) != len(cfg.Generation.LODs) {
		t.Errorf("expected %d LODs, got %d", len(cfg.Generation.LODs), len(opts.LODs))
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"saved.yaml", "nested/saved.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(tmpDir, name)
			cfg := Default()
			cfg.Generation.Seed = 1234
			cfg.Output.LOD = 2

			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("save: %v", err)
			}

			loaded := &Config{}
			if err := loadFromFile(loaded, path); err != nil {
				t.Fatalf("load: %v", err)
			}
			if loaded.Generation.Seed != 1234 {
				t.Errorf("expected seed 1234, got %d", loaded.Generation.Seed)
			}
			if loaded.Output.LOD != 2 {
				t.Errorf("expected output lod 2, got %d", loaded.Output.LOD)
			}
			if len(loaded.Generation.LODs) != len(cfg.Generation.LODs) {
				t.Errorf("expected %d LODs, got %d", len(cfg.Generation.LODs), len(loaded.Generation.LODs))
			}
		})
	}
}
