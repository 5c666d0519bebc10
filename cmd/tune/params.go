package main

import (
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/systems"
	"github.com/pthm-cable/drift/vmath"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Options path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of movement parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "move_speed", Path: "particles.move.speed", Min: 0.5, Max: 8, Default: 2},
			{Name: "move_drift", Path: "particles.move.drift", Min: 0, Max: 2, Default: 0},
			{Name: "move_decay", Path: "particles.move.decay", Min: 0, Max: 0.1, Default: 0},
			{Name: "path_delay", Path: "particles.move.path.delay", Min: 0, Max: 2, Default: 0.5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = vmath.Clamp(v[i], spec.Min, spec.Max)
	}
	return clamped
}

// Apply writes parameter values into o. Movement along the noise path is
// always enabled so the path delay takes effect.
func (pv *ParamVector) Apply(o *config.Options, values []float64) {
	clamped := pv.Clamp(values)

	move := &o.Particles.Move
	move.Enable = true
	move.Speed = vmath.Fixed(clamped[0])
	move.Drift = vmath.Fixed(clamped[1])
	move.Decay = clamped[2]
	move.Path.Enable = true
	move.Path.Generator = systems.NoisePathKey
	move.Path.Delay = vmath.Fixed(clamped[3])
}
