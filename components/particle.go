// Package components defines the particle state stored in the ECS world and
// mutated by the simulation systems.
package components

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/config"
)

// AnimationStatus is the direction an animated value is moving in.
type AnimationStatus uint8

const (
	Increasing AnimationStatus = iota
	Decreasing
)

// AnimatedValue is a scalar that can oscillate between Min and Max.
type AnimatedValue struct {
	Value    float64
	Min, Max float64
	Velocity float64 // units per reference frame
	Status   AnimationStatus
	Enable   bool

	Loops     int
	MaxLoops  int
	Time      float64 // ms accumulated while delayed
	DelayTime float64 // ms before animation starts
	Decay     float64 // velocity multiplier per tick
}

// Looping reports whether the value may still animate given its loop budget.
func (a *AnimatedValue) Looping() bool {
	return a.MaxLoops <= 0 || a.Loops < a.MaxLoops
}

// HSL is an animated color in hue/saturation/lightness space.
// Hue is in degrees [0, 360), saturation and lightness in percent [0, 100].
type HSL struct {
	H, S, L AnimatedValue
}

// Life tracks the spawn grace period and lifetime of a particle.
// All times are in milliseconds.
type Life struct {
	Count     int // remaining lives, 0 = unlimited
	Delay     float64
	DelayTime float64
	Duration  float64 // <= 0 = unlimited
	Time      float64
}

// Bubble holds a temporary interactive size/opacity override.
type Bubble struct {
	Active    bool
	Size      float64
	Opacity   float64
	Remaining float64 // ms
}

// Particle is a single simulated entity.
type Particle struct {
	ID uint64

	Position        r2.Vec
	InitialPosition r2.Vec
	Velocity        r2.Vec
	InitialVelocity r2.Vec

	Color   HSL
	Opacity AnimatedValue
	Size    AnimatedValue
	Life    Life
	Bubble  Bubble

	Shape string
	Sides int

	MoveSpeed    float64
	MoveDrift    float64
	MoveDecay    float64
	PathKey      string
	PathDelay    float64 // ms
	LastPathTime float64 // ms

	Spawning  bool
	Destroyed bool

	// Options points into the owning container's resolved snapshot.
	// It is shared and must not be mutated.
	Options *config.ParticleOptions
}

// Radius returns the current drawing radius, including any bubble override.
func (p *Particle) Radius() float64 {
	if p.Bubble.Active {
		return p.Bubble.Size
	}
	return p.Size.Value
}

// Alpha returns the current opacity, including any bubble override.
func (p *Particle) Alpha() float64 {
	if p.Bubble.Active {
		return p.Bubble.Opacity
	}
	return p.Opacity.Value
}

// Destroy marks the particle for removal at the end of the tick.
func (p *Particle) Destroy() {
	p.Destroyed = true
}

// Reset restores per-life animation state after a respawn.
func (p *Particle) Reset() {
	p.Opacity.Loops = 0
	p.Opacity.Time = 0
	p.Size.Loops = 0
	p.Size.Time = 0
	p.Color.H.Loops = 0
	p.Color.S.Loops = 0
	p.Color.L.Loops = 0
	p.Bubble = Bubble{}
	p.LastPathTime = 0
}
