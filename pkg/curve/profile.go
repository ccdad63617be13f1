package curve

import (
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Profile maps a location along a branch, in [0, 1], to a scalar.
type Profile interface {
	Sample(t float32) float32
}

// ParseProfile picks the curve form from the text: curve aliases and knot
// lists become a CubicCurve, "bezier(v0, v1, ...)" a fitted Bezier1D, and a
// bare number, an input alias or anything with a call an Expression.
func ParseProfile(text string) (Profile, error) {
	src := strings.TrimSpace(text)
	if src == "" {
		return nil, ErrEmptyCurve
	}
	lower := strings.ToLower(src)
	if _, ok := curveAliases[lower]; ok {
		return ParseCubicCurve(src)
	}
	if _, ok := exprAliases[lower]; ok {
		return ParseExpression(src)
	}
	if strings.HasPrefix(lower, bezierPrefix) {
		b, err := parseBezier(src)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	if strings.ContainsRune(src, '(') {
		return ParseExpression(src)
	}
	if v, err := strconv.ParseFloat(src, 32); err == nil {
		return Constant(float32(v)), nil
	}
	return ParseCubicCurve(src)
}

const bezierPrefix = "bezier("

// parseBezier reads "bezier(v0, v1, ...)" and fits a curve through the
// values, spread evenly over [0, 1].
func parseBezier(src string) (Bezier1D, error) {
	body, ok := strings.CutSuffix(src[len(bezierPrefix):], ")")
	if !ok {
		return Bezier1D{}, &ParseError{Input: src, Pos: len(src), Msg: "expected )"}
	}
	var values []float32
	pos := len(bezierPrefix)
	for _, field := range strings.Split(body, ",") {
		num := strings.TrimSpace(field)
		v, err := strconv.ParseFloat(num, 32)
		if err != nil {
			return Bezier1D{}, &ParseError{Input: src, Pos: pos, Msg: "bad number " + strconv.Quote(num)}
		}
		values = append(values, float32(v))
		pos += len(field) + 1
	}
	return NewBezier1D(values)
}

// Source is a profile together with the text it was authored as. The zero
// value is unset and samples to the caller's default.
type Source struct {
	text    string
	profile Profile
	err     error
}

// NewSource parses text. Malformed text is logged and leaves the source
// without a profile, so it samples to the caller's default.
func NewSource(text string) Source {
	s := Source{text: text}
	s.parse()
	return s
}

// ParseSource parses text and reports malformed input.
func ParseSource(text string) (Source, error) {
	s := Source{text: text}
	s.profile, s.err = ParseProfile(text)
	if s.err != nil {
		s.profile = nil
	}
	return s, s.err
}

// FromProfile wraps an already built profile. The text is informational.
func FromProfile(p Profile, text string) Source {
	return Source{text: text, profile: p}
}

func (s *Source) parse() {
	s.profile, s.err = ParseProfile(s.text)
	if s.err != nil {
		s.profile = nil
		log.Warn("invalid profile, using default",
			zap.String("text", s.text), zap.Error(s.err))
	}
}

// Text returns the authored text.
func (s Source) Text() string {
	return s.text
}

// IsSet reports whether the source holds a usable profile.
func (s Source) IsSet() bool {
	return s.profile != nil
}

// Err returns the parse error, if the text was malformed.
func (s Source) Err() error {
	return s.err
}

// Profile returns the parsed profile, or nil.
func (s Source) Profile() Profile {
	return s.profile
}

// SampleOr samples the profile, returning def when the source is unset.
// Non-finite results collapse to def as well.
func (s Source) SampleOr(t, def float32) float32 {
	if s.profile == nil {
		return def
	}
	v := s.profile.Sample(t)
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return def
	}
	return v
}

// Sample samples the profile with a default of 0.
func (s Source) Sample(t float32) float32 {
	return s.SampleOr(t, 0)
}

// String returns the authored text.
func (s Source) String() string {
	return s.text
}

// UnmarshalText implements encoding.TextUnmarshaler. Malformed text is not
// a decoding error; see Err.
func (s *Source) UnmarshalText(b []byte) error {
	*s = Source{text: string(b)}
	if strings.TrimSpace(s.text) == "" {
		return nil
	}
	s.parse()
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.text), nil
}

// UnmarshalYAML accepts any scalar, so numbers decode as constant profiles.
func (s *Source) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return &yaml.TypeError{Errors: []string{"line " + strconv.Itoa(value.Line) + ": profile must be a scalar"}}
	}
	return s.UnmarshalText([]byte(value.Value))
}

// MarshalYAML emits the authored text.
func (s Source) MarshalYAML() (interface{}, error) {
	return s.text, nil
}
