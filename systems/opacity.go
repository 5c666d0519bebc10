package systems

import "github.com/pthm-cable/drift/components"

// OpacityUpdater animates particle opacity.
type OpacityUpdater struct {
	host Host
}

// NewOpacityUpdater creates an opacity updater.
func NewOpacityUpdater(h Host) *OpacityUpdater {
	return &OpacityUpdater{host: h}
}

// Init seeds opacity from the particle options.
func (u *OpacityUpdater) Init(p *components.Particle) {
	if p.Options == nil {
		return
	}
	o := p.Options.Opacity
	initAnimated(&p.Opacity, o.Value, o.Animation, 1/percentMax, u.host.Rand())
}

func (u *OpacityUpdater) IsEnabled(p *components.Particle) bool {
	return !p.Destroyed && !p.Spawning && p.Opacity.Enable && p.Opacity.Looping()
}

func (u *OpacityUpdater) Update(p *components.Particle, d Delta) {
	anim := p.Options.Opacity.Animation
	if updateAnimated(&p.Opacity, anim.Offset.Random(u.host.Rand())/percentMax, d, anim.Destroy) {
		p.Destroy()
	}
}
