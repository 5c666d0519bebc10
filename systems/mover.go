package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/vmath"
)

// gravityScale converts gravity acceleration into per-reference-frame units.
const gravityScale = 60.0

// MoveUpdater integrates particle velocity into position, applying path
// generators, gravity, drift and decay.
type MoveUpdater struct {
	host Host
}

// NewMoveUpdater creates a move updater.
func NewMoveUpdater(h Host) *MoveUpdater {
	return &MoveUpdater{host: h}
}

// Init sets the particle's speed, direction and path parameters.
func (u *MoveUpdater) Init(p *components.Particle) {
	if p.Options == nil {
		return
	}
	mo := p.Options.Move
	rng := u.host.Rand()

	angle := vmath.DegToRad(mo.Direction)
	if mo.Random {
		angle = rng.Float64() * 2 * math.Pi
	}
	p.Velocity = vmath.FromAngle(angle, 1)
	p.InitialVelocity = p.Velocity

	p.MoveSpeed = mo.Speed.Random(rng)
	p.MoveDrift = mo.Drift.Random(rng)
	p.MoveDecay = 1 - mo.Decay
	p.PathDelay = mo.Path.Delay.Random(rng) * 1000
	p.LastPathTime = 0
	p.PathKey = mo.Path.Generator
}

func (u *MoveUpdater) IsEnabled(p *components.Particle) bool {
	return !p.Destroyed && !p.Spawning && p.Options != nil && p.Options.Move.Enable
}

func (u *MoveUpdater) Update(p *components.Particle, d Delta) {
	mo := &p.Options.Move

	sizeFactor := 1.0
	if maxSize := p.Options.Size.Value.Max; mo.Size && maxSize > 0 {
		sizeFactor = p.Radius() / maxSize
	}
	moveSpeed := p.MoveSpeed * sizeFactor * d.Factor / 2

	u.applyPath(p, d)

	gravityFactor := 1.0
	if mo.Gravity.Inverse {
		gravityFactor = -1
	}
	if mo.Gravity.Enable && moveSpeed > 0 {
		p.Velocity.Y += gravityFactor * mo.Gravity.Acceleration * d.Factor / (gravityScale * moveSpeed)
	}
	if p.MoveDrift != 0 && moveSpeed > 0 {
		p.Velocity.X += p.MoveDrift * d.Factor / (gravityScale * moveSpeed)
	}
	if p.MoveDecay != 1 {
		p.Velocity = r2.Scale(p.MoveDecay, p.Velocity)
	}

	velocity := r2.Scale(moveSpeed, p.Velocity)

	if maxSpeed := mo.Gravity.MaxSpeed; mo.Gravity.Enable && maxSpeed > 0 {
		if (!mo.Gravity.Inverse && velocity.Y >= maxSpeed) || (mo.Gravity.Inverse && velocity.Y <= -maxSpeed) {
			velocity.Y = gravityFactor * maxSpeed
			if moveSpeed > 0 {
				p.Velocity.Y = velocity.Y / moveSpeed
			}
		}
	}
	if mo.MaxSpeed > 0 && vmath.Length(velocity) > mo.MaxSpeed {
		velocity = vmath.WithLength(velocity, mo.MaxSpeed)
	}

	if vmath.Finite(velocity) {
		p.Position = r2.Add(p.Position, velocity)
	}
}

// applyPath adds the path generator's contribution once the particle's path
// delay has elapsed.
func (u *MoveUpdater) applyPath(p *components.Particle, d Delta) {
	path := p.Options.Move.Path
	if !path.Enable {
		return
	}
	if p.LastPathTime <= p.PathDelay {
		p.LastPathTime += d.Value
		return
	}

	gen := u.host.PathGenerator(p.PathKey)
	if change := gen.Generate(p, d); vmath.Finite(change) {
		p.Velocity = r2.Add(p.Velocity, change)
	}
	if path.Clamp {
		p.Velocity.X = vmath.Clamp(p.Velocity.X, -1, 1)
		p.Velocity.Y = vmath.Clamp(p.Velocity.Y, -1, 1)
	}
	p.LastPathTime -= p.PathDelay
}
