package curve

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-flora/pkg/math"
)

// spline is a piecewise cubic Bezier through values[0..n] at integer
// abscissas. Segment i has control points values[i], p1[i], p2[i], values[i+1].
type spline struct {
	values []float32
	p1, p2 []float32
}

// fitSpline computes the inner control points with the Thomas algorithm.
// Rows are [2 1] first, [1 4 1] interior and [2 7] last; p2 follows from
// tangent continuity except for the final segment.
func fitSpline(values []float32) spline {
	s := spline{values: append([]float32(nil), values...)}
	n := len(values) - 1
	if n < 1 {
		return s
	}
	s.p1 = make([]float32, n)
	s.p2 = make([]float32, n)
	v := s.values

	if n == 1 {
		s.p1[0] = (2*v[0] + v[1]) / 3
		s.p2[0] = (v[0] + 2*v[1]) / 3
		return s
	}

	a := make([]float32, n)
	b := make([]float32, n)
	c := make([]float32, n)
	r := make([]float32, n)

	b[0], c[0] = 2, 1
	r[0] = v[0] + 2*v[1]
	for i := 1; i < n-1; i++ {
		a[i], b[i], c[i] = 1, 4, 1
		r[i] = 4*v[i] + 2*v[i+1]
	}
	a[n-1], b[n-1] = 2, 7
	r[n-1] = 8*v[n-1] + v[n]

	for i := 1; i < n; i++ {
		m := a[i] / b[i-1]
		b[i] -= m * c[i-1]
		r[i] -= m * r[i-1]
	}

	s.p1[n-1] = r[n-1] / b[n-1]
	for i := n - 2; i >= 0; i-- {
		s.p1[i] = (r[i] - c[i]*s.p1[i+1]) / b[i]
	}
	for i := 0; i < n-1; i++ {
		s.p2[i] = 2*v[i+1] - s.p1[i+1]
	}
	s.p2[n-1] = 0.5 * (v[n] + s.p1[n-1])
	return s
}

// segments returns the number of cubic segments.
func (s spline) segments() int {
	return max(len(s.values)-1, 0)
}

// locate clamps x to [0, n] and returns the segment index and local parameter.
func (s spline) locate(x float32) (int, float32) {
	n := s.segments()
	x = math.Clamp(x, 0, float32(n))
	i := int(math32.Floor(x))
	if i >= n {
		i = n - 1
	}
	return i, x - float32(i)
}

func (s spline) eval(x float32) float32 {
	switch len(s.values) {
	case 0:
		return 0
	case 1:
		return s.values[0]
	}
	i, u := s.locate(x)
	return bernstein(s.values[i], s.p1[i], s.p2[i], s.values[i+1], u)
}

// bernstein evaluates a cubic Bezier with controls a, b, c, d at u.
func bernstein(a, b, c, d, u float32) float32 {
	mu := 1 - u
	return mu*mu*mu*a + 3*mu*mu*u*b + 3*mu*u*u*c + u*u*u*d
}

// Bezier1D is a smooth scalar curve through evenly spaced knots.
type Bezier1D struct {
	s spline
}

// NewBezier1D fits a curve through values placed at 0, 1, ..., n.
func NewBezier1D(values []float32) (Bezier1D, error) {
	if len(values) < 2 {
		return Bezier1D{}, ErrEmptyCurve
	}
	return Bezier1D{s: fitSpline(values)}, nil
}

// Segments returns the number of cubic segments (knots - 1).
func (b Bezier1D) Segments() int {
	return b.s.segments()
}

// Evaluate samples the curve at x in [0, n]; x is clamped.
func (b Bezier1D) Evaluate(x float32) float32 {
	return b.s.eval(x)
}

// Sample maps t in [0, 1] onto the whole knot range.
func (b Bezier1D) Sample(t float32) float32 {
	return b.s.eval(t * float32(b.s.segments()))
}

// Bezier2D fits each component of a 2D knot sequence independently.
type Bezier2D struct {
	x, y spline
}

// NewBezier2D fits a curve through points placed at 0, 1, ..., n.
func NewBezier2D(points []math.Vec2) (Bezier2D, error) {
	if len(points) < 2 {
		return Bezier2D{}, ErrEmptyCurve
	}
	xs := make([]float32, len(points))
	ys := make([]float32, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return Bezier2D{x: fitSpline(xs), y: fitSpline(ys)}, nil
}

// Evaluate samples the curve at x in [0, n].
func (b Bezier2D) Evaluate(x float32) math.Vec2 {
	return math.Vec2{X: b.x.eval(x), Y: b.y.eval(x)}
}

// Bezier3D fits each component of a 3D knot sequence independently.
type Bezier3D struct {
	x, y, z spline
}

// NewBezier3D fits a curve through points placed at 0, 1, ..., n.
func NewBezier3D(points []math.Vec3) (Bezier3D, error) {
	if len(points) < 2 {
		return Bezier3D{}, ErrEmptyCurve
	}
	xs := make([]float32, len(points))
	ys := make([]float32, len(points))
	zs := make([]float32, len(points))
	for i, p := range points {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}
	return Bezier3D{x: fitSpline(xs), y: fitSpline(ys), z: fitSpline(zs)}, nil
}

// Segments returns the number of cubic segments.
func (b Bezier3D) Segments() int {
	return b.x.segments()
}

// Evaluate samples the curve at x in [0, n].
func (b Bezier3D) Evaluate(x float32) math.Vec3 {
	return math.Vec3{X: b.x.eval(x), Y: b.y.eval(x), Z: b.z.eval(x)}
}
