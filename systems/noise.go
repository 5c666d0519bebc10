package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/vmath"
)

// NoisePathKey is the key the noise path generator is registered under.
const NoisePathKey = "noise"

// NoisePath steers particles along a slowly evolving simplex noise field.
type NoisePath struct {
	Scale    float64 // field frequency per pixel
	TimeStep float64 // field evolution per tick
	Steer    float64 // fraction of the heading error corrected per sample

	seed  int64
	noise opensimplex.Noise
	t     float64
}

// NewNoisePath creates a noise path generator with the given seed.
func NewNoisePath(seed int64) *NoisePath {
	return &NoisePath{
		Scale:    0.004,
		TimeStep: 0.002,
		Steer:    0.25,
		seed:     seed,
		noise:    opensimplex.New(seed),
	}
}

// Init restarts the field evolution.
func (n *NoisePath) Init() {
	n.t = 0
	n.noise = opensimplex.New(n.seed)
}

// Update advances the field by one step.
func (n *NoisePath) Update() {
	n.t += n.TimeStep
}

// FieldAngle returns the field direction at a position, in radians.
func (n *NoisePath) FieldAngle(pos r2.Vec) float64 {
	v := n.noise.Eval3(pos.X*n.Scale, pos.Y*n.Scale, n.t)
	return v * 2 * math.Pi
}

// Generate steers the velocity toward the field direction at the particle.
func (n *NoisePath) Generate(p *components.Particle, d Delta) r2.Vec {
	speed := math.Max(vmath.Length(p.Velocity), 1)
	target := vmath.FromAngle(n.FieldAngle(p.Position), speed)
	return r2.Scale(n.Steer, r2.Sub(target, p.Velocity))
}
