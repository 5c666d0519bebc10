// Package vmath provides the numeric helpers shared by the simulation:
// angle/length views over r2 vectors, ranged random sampling and angle
// wraparound.
package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// FromAngle builds a vector from a polar angle (radians) and a length.
func FromAngle(angle, length float64) r2.Vec {
	return r2.Vec{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// Angle returns the polar angle of v in radians, in (-Pi, Pi].
func Angle(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// Length returns the magnitude of v.
func Length(v r2.Vec) float64 {
	return r2.Norm(v)
}

// WithAngle returns v rotated to the given angle, keeping its length.
func WithAngle(v r2.Vec, angle float64) r2.Vec {
	return FromAngle(angle, Length(v))
}

// WithLength returns v scaled to the given length, keeping its angle.
func WithLength(v r2.Vec, length float64) r2.Vec {
	return FromAngle(Angle(v), length)
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// DistanceSq returns the squared distance between a and b.
func DistanceSq(a, b r2.Vec) float64 {
	return r2.Norm2(r2.Sub(a, b))
}

// Finite reports whether both components of v are finite numbers.
func Finite(v r2.Vec) bool {
	return IsFinite(v.X) && IsFinite(v.Y)
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
