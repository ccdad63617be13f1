// Package curve implements the scalar profile curves used to shape
// vegetation along a branch: Bezier splines fitted through evenly spaced
// knots, explicit-tangent cubic curves with a short text syntax, and a small
// functional expression language.
//
// All three satisfy [Profile], which maps a location in [0, 1] to a value.
// [Source] keeps the authored text next to the parsed profile and is what
// configuration structs embed.
//
// # Curve text
//
// A cubic curve is a list of knots separated by semicolons, each knot being
// "location value [leftTangent [rightTangent]]":
//
//	0 1 0; 0.5 0.8; 1 0 -1
//
// The aliases zero, one, linear, 1-linear, cos, 1-cos, sin, 1-sin, hermite
// and 1-hermite expand to fixed two-knot curves.
//
// A fitted Bezier profile lists values spread evenly over [0, 1]:
//
//	bezier(0, 1, 0.4)
//
// # Expressions
//
// Expressions are nested calls with numeric literals (inf and -inf allowed):
//
//	fit(sin(input(0), 2, 0, 1, 0), 0.2, 1, -1, 1)
//
// Built-ins are input, constant, taylor, sin, clamp and fit. The words x, y
// and z stand for input(0), input(1) and input(2), alone or inside a call.
package curve
