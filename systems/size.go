package systems

import "github.com/pthm-cable/drift/components"

// SizeUpdater animates particle radius.
type SizeUpdater struct {
	host Host
}

// NewSizeUpdater creates a size updater.
func NewSizeUpdater(h Host) *SizeUpdater {
	return &SizeUpdater{host: h}
}

// Init seeds the radius from the particle options.
func (u *SizeUpdater) Init(p *components.Particle) {
	if p.Options == nil {
		return
	}
	s := p.Options.Size
	initAnimated(&p.Size, s.Value, s.Animation, 1/percentMax, u.host.Rand())
}

func (u *SizeUpdater) IsEnabled(p *components.Particle) bool {
	return !p.Destroyed && !p.Spawning && p.Size.Enable && p.Size.Looping()
}

func (u *SizeUpdater) Update(p *components.Particle, d Delta) {
	anim := p.Options.Size.Animation
	if updateAnimated(&p.Size, anim.Offset.Random(u.host.Rand()), d, anim.Destroy) {
		p.Destroy()
	}
}
