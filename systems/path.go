package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/vmath"
)

// DefaultPathKey is the key the default path generator is registered under.
const DefaultPathKey = "default"

// PathGenerator produces a velocity change for a particle each time its
// path delay elapses.
type PathGenerator interface {
	Generate(p *components.Particle, d Delta) r2.Vec
	// Init is called when the owning container starts.
	Init()
	// Update is called once per tick before particles are updated.
	Update()
}

// DefaultPath rotates a particle's velocity by an angle proportional to its
// speed, keeping the speed unchanged.
type DefaultPath struct{}

func (DefaultPath) Init()   {}
func (DefaultPath) Update() {}

// Generate returns the change that turns the velocity by length*Pi/180.
func (DefaultPath) Generate(p *components.Particle, d Delta) r2.Vec {
	v := p.Velocity
	length := vmath.Length(v)
	if length == 0 {
		return r2.Vec{}
	}
	turned := vmath.FromAngle(vmath.Angle(v)+length*math.Pi/180, length)
	return r2.Sub(turned, v)
}
