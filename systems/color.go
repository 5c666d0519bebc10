package systems

import (
	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/vmath"
)

const (
	hueMax     = 360.0
	percentMax = 100.0
)

// ColorUpdater animates the HSL color of particles. Hue cycles around the
// color wheel; saturation and lightness bounce within [0, 100].
type ColorUpdater struct {
	host Host
}

// NewColorUpdater creates a color updater.
func NewColorUpdater(h Host) *ColorUpdater {
	return &ColorUpdater{host: h}
}

// Init seeds the particle color from its options.
func (u *ColorUpdater) Init(p *components.Particle) {
	if p.Options == nil {
		return
	}
	c := p.Options.Color
	rng := u.host.Rand()

	initAnimated(&p.Color.H, c.Hue, c.Animation.H, hueMax/percentMax/percentMax, rng)
	initAnimated(&p.Color.S, c.Saturation, c.Animation.S, 1/percentMax, rng)
	initAnimated(&p.Color.L, c.Lightness, c.Animation.L, 1/percentMax, rng)

	p.Color.H.Min, p.Color.H.Max = 0, hueMax
	p.Color.H.Value = vmath.Wrap(p.Color.H.Value, hueMax)
	p.Color.S.Min, p.Color.S.Max = 0, percentMax
	p.Color.L.Min, p.Color.L.Max = 0, percentMax
}

// IsEnabled reports whether any color channel of p is animating.
func (u *ColorUpdater) IsEnabled(p *components.Particle) bool {
	if p.Destroyed || p.Spawning || p.Options == nil {
		return false
	}
	anim := p.Options.Color.Animation
	return (anim.H.Enable && p.Color.H.Enable && p.Color.H.Looping()) ||
		(anim.S.Enable && p.Color.S.Enable && p.Color.S.Looping()) ||
		(anim.L.Enable && p.Color.L.Enable && p.Color.L.Looping())
}

// Update advances every animated channel.
func (u *ColorUpdater) Update(p *components.Particle, d Delta) {
	anim := p.Options.Color.Animation
	rng := u.host.Rand()

	updateColorChannel(&p.Color.H, anim.H.Offset.Random(rng)*hueOffsetScale, d, hueMax, true)
	updateColorChannel(&p.Color.S, anim.S.Offset.Random(rng), d, percentMax, false)
	updateColorChannel(&p.Color.L, anim.L.Offset.Random(rng), d, percentMax, false)

	p.Color.H.Value = vmath.Wrap(p.Color.H.Value, hueMax)
}

// updateColorChannel advances a channel. Wrapping channels cycle through
// [0, max); the others bounce between 0 and max.
func updateColorChannel(v *components.AnimatedValue, offset float64, d Delta, max float64, wrap bool) {
	if !v.Enable || !v.Looping() || delayed(v, d) {
		return
	}

	velocity := v.Velocity*d.Factor + offset
	if wrap {
		v.Value += velocity
		if v.Value >= max || v.Value < 0 {
			v.Loops++
		}
		v.Value = vmath.Wrap(v.Value, max)
	} else if v.Status == components.Increasing {
		v.Value += velocity
		if v.Value > max {
			v.Value = max
			v.Status = components.Decreasing
			v.Loops++
		}
	} else {
		v.Value -= velocity
		if v.Value < 0 {
			v.Value = 0
			v.Status = components.Increasing
			v.Loops++
		}
	}

	if v.Decay != 1 {
		v.Velocity *= v.Decay
	}
}

var _ ParticleInitializer = (*ColorUpdater)(nil)
