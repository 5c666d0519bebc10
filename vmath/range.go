package vmath

import "math/rand"

// RangeValue is an inclusive [Min, Max] interval sampled uniformly.
// A zero-width range always yields Min.
type RangeValue struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Fixed returns a range that always samples v.
func Fixed(v float64) RangeValue {
	return RangeValue{Min: v, Max: v}
}

// Span returns a range from lo to hi.
func Span(lo, hi float64) RangeValue {
	if hi < lo {
		lo, hi = hi, lo
	}
	return RangeValue{Min: lo, Max: hi}
}

// Random samples the range.
func (r RangeValue) Random(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Scale multiplies both ends by f.
func (r RangeValue) Scale(f float64) RangeValue {
	return Span(r.Min*f, r.Max*f)
}

// Contains reports whether v lies within the range, inclusive.
func (r RangeValue) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// UnmarshalYAML accepts either a scalar or a {min, max} mapping.
func (r *RangeValue) UnmarshalYAML(unmarshal func(any) error) error {
	var scalar float64
	if err := unmarshal(&scalar); err == nil {
		*r = Fixed(scalar)
		return nil
	}
	type plain RangeValue
	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}
	*r = Span(p.Min, p.Max)
	return nil
}
