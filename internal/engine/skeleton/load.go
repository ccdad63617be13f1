package skeleton

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-flora/pkg/curve"
)

// Format is a tree description encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is returned for tree descriptions with an unknown
// extension.
var ErrUnsupportedFormat = errors.New("unsupported tree description format")

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadFile reads a tree description. The document is the root group: its
// branches are the trunk groups.
func LoadFile(path string) (*BranchGroupConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return root, nil
}

// Decode parses a tree description. Unknown keys are rejected. In TOML,
// profiles must be written as strings.
func Decode(data []byte, format Format) (*BranchGroupConfig, error) {
	root := &BranchGroupConfig{}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(root); err != nil {
			return nil, err
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(root); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	root.Distribution.Frequency = RootFrequency
	if root.Name == "" {
		root.Name = "root"
	}
	return root, nil
}

// Encode writes a configuration tree in the given format.
func Encode(root *BranchGroupConfig, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(root)
	case FormatTOML:
		return toml.Marshal(root)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Validate reports configuration problems without generating: unknown
// enums, malformed profiles and groups that need a parent but cannot have
// one. Generation reports the same enum and parent errors and skips the
// affected groups.
func Validate(root *BranchGroupConfig) []error {
	if root == nil {
		return nil
	}
	var errs []error
	path := groupName(root, "root")
	if root.IsRoot() {
		for i := range root.Branches {
			validateBranchGroup(&root.Branches[i], false, childPath(path, "branches", i, root.Branches[i].Name), &errs)
		}
		for i := range root.Fronds {
			errs = append(errs, &ConfigError{Group: childPath(path, "fronds", i, root.Fronds[i].Name), Err: ErrMissingParent})
		}
		return errs
	}
	validateBranchGroup(root, false, path, &errs)
	return errs
}

func validateBranchGroup(cfg *BranchGroupConfig, hasParent bool, path string, errs *[]error) {
	fail := func(err error) {
		*errs = append(*errs, &ConfigError{Group: path, Err: err})
	}

	dist := cfg.Distribution
	switch {
	case dist.Frequency < 0:
		fail(fmt.Errorf("%w: %d", ErrInvalidFrequency, dist.Frequency))
		return
	case dist.Frequency > 0 && !hasParent:
		fail(ErrMissingParent)
		return
	case dist.Frequency > 0 && dist.Type != DistributionAlternate:
		fail(fmt.Errorf("%w: %s", ErrUnknownDistribution, dist.Type))
		return
	}

	profiles := map[string]curve.Source{
		"density":      dist.Density,
		"growth_scale": dist.GrowthScale,
		"growth_angle": dist.GrowthAngle,
		"radius":       cfg.Shape.Radius,
		"weight":       cfg.Shape.Weight,
		"adherence":    cfg.Shape.Adherence,
	}
	validateProfiles(profiles, fail)

	for i := range cfg.Branches {
		validateBranchGroup(&cfg.Branches[i], true, childPath(path, "branches", i, cfg.Branches[i].Name), errs)
	}
	for i := range cfg.Fronds {
		validateFrondGroup(&cfg.Fronds[i], childPath(path, "fronds", i, cfg.Fronds[i].Name), errs)
	}
}

func validateFrondGroup(cfg *FrondGroupConfig, path string, errs *[]error) {
	fail := func(err error) {
		*errs = append(*errs, &ConfigError{Group: path, Err: err})
	}
	if cfg.Type == FrondInvalid {
		fail(ErrUnknownFrondType)
		return
	}
	validateProfiles(map[string]curve.Source{
		"density": cfg.Distribution.Density,
		"size":    cfg.Size,
	}, fail)
}

// validateProfiles reports profiles that were authored but did not parse,
// in field name order.
func validateProfiles(profiles map[string]curve.Source, fail func(error)) {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := profiles[name].Err(); err != nil {
			fail(fmt.Errorf("%w: %s: %v", ErrEmptyCurve, name, err))
		}
	}
}
