package vmath

import "math"

// Clamp clamps v between lo and hi.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Wrap folds v into [0, max). NaN is returned as 0.
func Wrap(v, max float64) float64 {
	if max <= 0 || math.IsNaN(v) {
		return 0
	}
	v = math.Mod(v, max)
	if v < 0 {
		v += max
	}
	// Mod of a tiny negative can round up to max itself
	if v >= max {
		v = 0
	}
	return v
}

// WrapAngle folds an angle in radians into [0, 2*Pi).
func WrapAngle(a float64) float64 {
	return Wrap(a, 2*math.Pi)
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
