package math

import "github.com/chewxy/math32"

// Epsilon is the length below which vectors are treated as degenerate.
const Epsilon = 1e-6

// Pi as float32.
const Pi = math32.Pi

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * (Pi / 180)
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float32) float32 {
	return rad * (180 / Pi)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Fract returns the fractional part of x in [0, 1).
func Fract(x float32) float32 {
	if math32.IsNaN(x) || math32.IsInf(x, 0) {
		return 0
	}
	f := x - math32.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}
