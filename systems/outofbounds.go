package systems

import (
	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
)

// OutOfBoundsUpdater applies the configured out mode when a particle leaves
// the simulation area.
type OutOfBoundsUpdater struct {
	host Host
}

// NewOutOfBoundsUpdater creates an out-of-bounds updater.
func NewOutOfBoundsUpdater(h Host) *OutOfBoundsUpdater {
	return &OutOfBoundsUpdater{host: h}
}

func (u *OutOfBoundsUpdater) IsEnabled(p *components.Particle) bool {
	if p.Destroyed || p.Spawning || p.Options == nil {
		return false
	}
	mode := p.Options.Move.OutMode
	return mode != "" && mode != config.OutModeNone
}

func (u *OutOfBoundsUpdater) Update(p *components.Particle, d Delta) {
	size := u.host.Size()
	r := p.Radius()

	switch p.Options.Move.OutMode {
	case config.OutModeBounce:
		if p.Position.X-r < 0 && p.Velocity.X < 0 {
			p.Position.X = r
			p.Velocity.X = -p.Velocity.X
		} else if p.Position.X+r > size.X && p.Velocity.X > 0 {
			p.Position.X = size.X - r
			p.Velocity.X = -p.Velocity.X
		}
		if p.Position.Y-r < 0 && p.Velocity.Y < 0 {
			p.Position.Y = r
			p.Velocity.Y = -p.Velocity.Y
		} else if p.Position.Y+r > size.Y && p.Velocity.Y > 0 {
			p.Position.Y = size.Y - r
			p.Velocity.Y = -p.Velocity.Y
		}
	case config.OutModeOut:
		if p.Position.X+r < 0 {
			p.Position.X = size.X + r
		} else if p.Position.X-r > size.X {
			p.Position.X = -r
		}
		if p.Position.Y+r < 0 {
			p.Position.Y = size.Y + r
		} else if p.Position.Y-r > size.Y {
			p.Position.Y = -r
		}
	case config.OutModeDestroy:
		if p.Position.X+r < 0 || p.Position.X-r > size.X || p.Position.Y+r < 0 || p.Position.Y-r > size.Y {
			p.Destroy()
		}
	}
}
