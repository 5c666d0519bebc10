package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/components"
)

// LifeUpdater runs the spawn grace period and the lifetime of particles.
// When a life ends the particle respawns at a random position until its
// life count is used up, then it is destroyed.
type LifeUpdater struct {
	host Host
}

// NewLifeUpdater creates a life updater.
func NewLifeUpdater(h Host) *LifeUpdater {
	return &LifeUpdater{host: h}
}

// Init draws the first life from the particle options.
func (u *LifeUpdater) Init(p *components.Particle) {
	p.Life = components.Life{}
	if p.Options != nil {
		p.Life.Count = p.Options.Life.Count
		u.drawLife(p)
	}
	p.Spawning = p.Life.Delay > 0
}

func (u *LifeUpdater) drawLife(p *components.Particle) {
	rng := u.host.Rand()
	lc := p.Options.Life
	p.Life.Delay = lc.Delay.Random(rng) * 1000
	p.Life.Duration = lc.Duration.Random(rng) * 1000
}

func (u *LifeUpdater) IsEnabled(p *components.Particle) bool {
	return !p.Destroyed
}

func (u *LifeUpdater) Update(p *components.Particle, d Delta) {
	life := &p.Life

	justSpawned := false
	if p.Spawning {
		life.DelayTime += d.Value
		if life.DelayTime < life.Delay {
			return
		}
		justSpawned = true
		p.Spawning = false
		life.DelayTime = 0
		life.Time = 0
	}

	if life.Duration <= 0 {
		return
	}
	if !justSpawned {
		life.Time += d.Value
	}
	if life.Time < life.Duration {
		return
	}

	life.Time = 0
	if life.Count > 0 {
		life.Count--
		if life.Count == 0 {
			p.Destroy()
			return
		}
	}

	u.respawn(p)
}

// respawn moves p to a random position and restarts its grace period.
func (u *LifeUpdater) respawn(p *components.Particle) {
	rng := u.host.Rand()
	size := u.host.Size()
	p.Position = r2.Vec{X: rng.Float64() * size.X, Y: rng.Float64() * size.Y}
	p.InitialPosition = p.Position
	p.Velocity = p.InitialVelocity
	p.Reset()

	p.Life.DelayTime = 0
	p.Life.Time = 0
	if p.Options != nil {
		u.drawLife(p)
	}
	p.Spawning = p.Life.Delay > 0
}
