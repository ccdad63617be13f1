package curve

import (
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-flora/pkg/math"
)

// Kind tags an expression node.
type Kind uint8

const (
	KindInput      Kind = iota // input(i)
	KindConstant               // constant(v)
	KindPolynomial             // taylor(f, a0, a1, ...)
	KindHarmonic               // sin(f, period, phase, scale, offset)
	KindClamp                  // clamp(f, minOut, maxOut, minIn, maxIn)
	KindRescale                // fit(f, minOut, maxOut, minIn, maxIn)
)

var kindNames = [...]string{
	KindInput:      "input",
	KindConstant:   "constant",
	KindPolynomial: "taylor",
	KindHarmonic:   "sin",
	KindClamp:      "clamp",
	KindRescale:    "fit",
}

// String returns the function name used in expression text.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown(" + strconv.Itoa(int(k)) + ")"
}

// Expression is a node of a parsed expression. It is a pure function of its
// input vector.
//
// Params holds the numeric arguments after the inner function:
// polynomial coefficients a0..an, harmonic (period, phase, scale, offset),
// or clamp/rescale (minOut, maxOut, minIn, maxIn).
type Expression struct {
	Kind   Kind
	Index  int
	Value  float32
	Inner  *Expression
	Params []float32
}

// Input returns a node selecting input i.
func Input(i int) *Expression {
	return &Expression{Kind: KindInput, Index: i}
}

// Constant returns a node with a fixed value.
func Constant(v float32) *Expression {
	return &Expression{Kind: KindConstant, Value: v}
}

// Eval evaluates the expression. A nil expression evaluates to 0.
func (e *Expression) Eval(inputs ...float32) float32 {
	if e == nil {
		return 0
	}
	switch e.Kind {
	case KindInput:
		if e.Index < 0 || e.Index >= len(inputs) {
			return 0
		}
		return inputs[e.Index]

	case KindConstant:
		return e.Value

	case KindPolynomial:
		x := e.Inner.Eval(inputs...)
		// Horner, highest coefficient first.
		var sum float32
		for i := len(e.Params) - 1; i >= 0; i-- {
			sum = sum*x + e.Params[i]
		}
		return sum

	case KindHarmonic:
		x := e.Inner.Eval(inputs...)
		period, phase, scale, offset := e.Params[0], e.Params[1], e.Params[2], e.Params[3]
		deg := phase
		if period != 0 {
			deg += 360 * x / period
		}
		return scale*math32.Sin(math.DegToRad(deg)) + offset

	case KindClamp:
		minOut, maxOut, minIn, maxIn := e.Params[0], e.Params[1], e.Params[2], e.Params[3]
		clamped := make([]float32, len(inputs))
		for i, v := range inputs {
			clamped[i] = math32.Max(minIn, math32.Min(v, maxIn))
		}
		return math32.Max(minOut, math32.Min(e.Inner.Eval(clamped...), maxOut))

	case KindRescale:
		minOut, maxOut, minIn, maxIn := e.Params[0], e.Params[1], e.Params[2], e.Params[3]
		x := e.Inner.Eval(inputs...)
		if maxIn == minIn {
			return minOut
		}
		return minOut + (x-minIn)/(maxIn-minIn)*(maxOut-minOut)
	}
	return 0
}

// Sample evaluates the expression with t as input 0.
func (e *Expression) Sample(t float32) float32 {
	return e.Eval(t)
}

// String formats the expression in canonical text form; parsing the result
// yields an equivalent expression.
func (e *Expression) String() string {
	if e == nil {
		return "constant(0)"
	}
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Expression) write(b *strings.Builder) {
	b.WriteString(e.Kind.String())
	b.WriteByte('(')
	switch e.Kind {
	case KindInput:
		b.WriteString(strconv.Itoa(e.Index))
	case KindConstant:
		b.WriteString(formatNumber(e.Value))
	default:
		if e.Inner != nil {
			e.Inner.write(b)
		} else {
			b.WriteString("constant(0)")
		}
		for _, p := range e.Params {
			b.WriteString(", ")
			b.WriteString(formatNumber(p))
		}
	}
	b.WriteByte(')')
}

func formatNumber(v float32) string {
	switch {
	case math32.IsInf(v, 1):
		return "inf"
	case math32.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
