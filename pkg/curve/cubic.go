package curve

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-flora/pkg/math"
)

// Knot is one control point of a CubicCurve. Tangents are in value units
// per unit of location.
type Knot struct {
	Location     float32
	Value        float32
	LeftTangent  float32
	RightTangent float32
}

// CubicCurve is a piecewise cubic through explicit knots.
type CubicCurve struct {
	knots []Knot
}

// curveAliases expand to fixed two-knot curves over [0, 1].
var curveAliases = map[string]string{
	"zero":      "0 0; 1 0",
	"one":       "0 1; 1 1",
	"linear":    "0 0 1; 1 1 1",
	"1-linear":  "0 1 -1; 1 0 -1",
	"cos":       "0 1 0; 1 0 -1.5707964",
	"1-cos":     "0 0 0; 1 1 1.5707964",
	"sin":       "0 0 1.5707964; 1 1 0",
	"1-sin":     "0 1 -1.5707964; 1 0 0",
	"hermite":   "0 0 0; 1 1 0",
	"1-hermite": "0 1 0; 1 0 0",
}

// NewCubicCurve sorts the knots by location and validates them.
func NewCubicCurve(knots []Knot) (*CubicCurve, error) {
	if len(knots) < 2 {
		return nil, ErrEmptyCurve
	}
	sorted := append([]Knot(nil), knots...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Location < sorted[j].Location
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Location <= sorted[i-1].Location {
			return nil, ErrUnsortedKnots
		}
	}
	return &CubicCurve{knots: sorted}, nil
}

// ParseCubicCurve parses knot text or one of the curve aliases.
func ParseCubicCurve(text string) (*CubicCurve, error) {
	src := strings.TrimSpace(text)
	if alias, ok := curveAliases[strings.ToLower(src)]; ok {
		src = alias
	}
	if src == "" {
		return nil, ErrEmptyCurve
	}

	var knots []Knot
	offset := 0
	for _, part := range strings.Split(src, ";") {
		pos := offset
		offset += len(part) + 1
		fields := strings.FieldsFunc(part, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 || len(fields) > 4 {
			return nil, &ParseError{Input: src, Pos: pos, Msg: "knot needs 2 to 4 numbers"}
		}
		nums := make([]float32, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, &ParseError{Input: src, Pos: pos, Msg: "bad number " + strconv.Quote(f)}
			}
			nums[i] = float32(v)
		}
		k := Knot{Location: nums[0], Value: nums[1]}
		switch len(nums) {
		case 3:
			k.LeftTangent, k.RightTangent = nums[2], nums[2]
		case 4:
			k.LeftTangent, k.RightTangent = nums[2], nums[3]
		}
		knots = append(knots, k)
	}
	return NewCubicCurve(knots)
}

// Knots returns a copy of the sorted knots.
func (c *CubicCurve) Knots() []Knot {
	return append([]Knot(nil), c.knots...)
}

// Sample evaluates the curve. Locations outside the knot range return the
// boundary value.
func (c *CubicCurve) Sample(x float32) float32 {
	if c == nil || len(c.knots) == 0 {
		return 0
	}
	first, last := c.knots[0], c.knots[len(c.knots)-1]
	if x <= first.Location {
		return first.Value
	}
	if x >= last.Location {
		return last.Value
	}

	// First knot at or past x, so x lies in (k0, k1].
	i := sort.Search(len(c.knots), func(i int) bool {
		return c.knots[i].Location >= x
	})
	k0, k1 := c.knots[i-1], c.knots[i]
	width := k1.Location - k0.Location
	u := math.Clamp((x-k0.Location)/width, 0, 1)
	return bernstein(
		k0.Value,
		k0.Value+k0.RightTangent*width/3,
		k1.Value-k1.LeftTangent*width/3,
		k1.Value,
		u,
	)
}
