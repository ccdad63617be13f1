package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubicCurveAliases(t *testing.T) {
	tests := []struct {
		alias      string
		start, end float32
		mid        float32
	}{
		{"zero", 0, 0, 0},
		{"one", 1, 1, 1},
		{"linear", 0, 1, 0.5},
		{"1-linear", 1, 0, 0.5},
		{"hermite", 0, 1, 0.5},
		{"1-hermite", 1, 0, 0.5},
		{"sin", 0, 1, 0.7071},
		{"1-sin", 1, 0, 0.2929},
		{"cos", 1, 0, 0.7071},
		{"1-cos", 0, 1, 0.2929},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			c, err := ParseCubicCurve(tt.alias)
			require.NoError(t, err)
			assert.Len(t, c.Knots(), 2)
			assert.InDelta(t, tt.start, c.Sample(0), 1e-6)
			assert.InDelta(t, tt.end, c.Sample(1), 1e-6)
			assert.InDelta(t, tt.mid, c.Sample(0.5), 0.02)
		})
	}
}

func TestCubicCurveLinearIsExact(t *testing.T) {
	c, err := ParseCubicCurve("linear")
	require.NoError(t, err)
	for _, x := range []float32{0.1, 0.3, 0.6, 0.9} {
		assert.InDelta(t, x, c.Sample(x), 1e-6)
	}
}

func TestCubicCurveClampsOutsideDomain(t *testing.T) {
	c, err := ParseCubicCurve("0.2 5 3; 0.8 -1 7")
	require.NoError(t, err)
	assert.Equal(t, float32(5), c.Sample(0))
	assert.Equal(t, float32(5), c.Sample(-10))
	assert.Equal(t, float32(-1), c.Sample(1))
	assert.Equal(t, float32(-1), c.Sample(10))
}

func TestCubicCurveSortsKnots(t *testing.T) {
	c, err := NewCubicCurve([]Knot{
		{Location: 1, Value: 2},
		{Location: 0, Value: 0},
		{Location: 0.5, Value: 1},
	})
	require.NoError(t, err)
	k := c.Knots()
	assert.Equal(t, float32(0), k[0].Location)
	assert.Equal(t, float32(0.5), k[1].Location)
	assert.Equal(t, float32(1), k[2].Location)
	assert.InDelta(t, 1, c.Sample(0.5), 1e-6)
}

func TestCubicCurveTangentForms(t *testing.T) {
	c, err := ParseCubicCurve("0, 0, 1; 1, 1, 1")
	require.NoError(t, err)
	k := c.Knots()
	assert.Equal(t, float32(1), k[0].LeftTangent)
	assert.Equal(t, float32(1), k[0].RightTangent)

	c, err = ParseCubicCurve("0 0 2 -3; 1 1")
	require.NoError(t, err)
	k = c.Knots()
	assert.Equal(t, float32(2), k[0].LeftTangent)
	assert.Equal(t, float32(-3), k[0].RightTangent)
	assert.Equal(t, float32(0), k[1].LeftTangent)
}

func TestCubicCurveErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", ErrEmptyCurve},
		{"single knot", "0 1", ErrEmptyCurve},
		{"duplicate location", "0 1; 0 2", ErrUnsortedKnots},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCubicCurve(tt.text)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := ParseCubicCurve("0 1; 1 banana")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Msg, "banana")

	_, err = ParseCubicCurve("0 1 2 3 4; 1 1")
	require.ErrorAs(t, err, &perr)
}

func TestNilCubicCurveSamplesZero(t *testing.T) {
	var c *CubicCurve
	assert.Equal(t, float32(0), c.Sample(0.5))
}
