// Package systems provides the spatial index, the particle updaters and the
// path generators that drive particle movement.
package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/components"
)

// Updater owns one aspect of particle evolution.
// IsEnabled must be free of side effects.
type Updater interface {
	IsEnabled(p *components.Particle) bool
	Update(p *components.Particle, d Delta)
}

// ParticleInitializer is implemented by updaters that set up particle state
// at spawn time.
type ParticleInitializer interface {
	Init(p *components.Particle)
}

// Host is what updaters need from the container that constructed them.
type Host interface {
	// Size returns the simulation area in simulation pixels.
	Size() r2.Vec
	Rand() *rand.Rand
	// PathGenerator returns the generator registered under key, or the
	// default generator when none is.
	PathGenerator(key string) PathGenerator
}

// NewPipeline returns the built-in updaters in their fixed order.
// Life runs first so an expired particle skips the cosmetic updaters.
func NewPipeline(h Host) []Updater {
	return []Updater{
		NewLifeUpdater(h),
		NewColorUpdater(h),
		NewOpacityUpdater(h),
		NewSizeUpdater(h),
		NewMoveUpdater(h),
		NewOutOfBoundsUpdater(h),
	}
}
