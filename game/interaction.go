package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/systems"
	"github.com/pthm-cable/drift/vmath"
)

// Repulse tuning: the configured speed is multiplied by repulseFactor and a
// single displacement never exceeds repulseMaxStep pixels.
const (
	repulseFactor  = 100.0
	repulseMaxStep = 50.0
)

// HandleClickMode applies a built-in click mode at a simulation position.
// It reports false for modes it does not know.
func (ps *Particles) HandleClickMode(mode string, at r2.Vec) bool {
	if ps.opts == nil {
		return false
	}
	modes := ps.opts.Interactivity.Modes

	switch mode {
	case config.ClickModePush:
		ps.Push(modes.Push.Quantity, &at)
	case config.ClickModeRemove:
		ps.RemoveQuantity(modes.Remove.Quantity)
	case config.ClickModeRepulse:
		ps.repulse(at, modes.Repulse)
	case config.ClickModeBubble:
		ps.bubble(at, modes.Bubble)
	default:
		return false
	}
	return true
}

// repulse pushes particles within the repulse distance away from at,
// strongest near the center.
func (ps *Particles) repulse(at r2.Vec, cfg config.RepulseConfig) {
	if cfg.Distance <= 0 {
		return
	}
	rng := ps.host.Rand()
	for _, p := range ps.QueryCircle(at, cfg.Distance) {
		dir := r2.Sub(p.Position, at)
		dist := vmath.Length(dir)
		if dist == 0 {
			dir = vmath.FromAngle(rng.Float64()*2*math.Pi, 1)
		} else {
			dir = r2.Scale(1/dist, dir)
		}
		step := vmath.Clamp((1-math.Pow(dist/cfg.Distance, 4))*cfg.Speed*repulseFactor, 0, repulseMaxStep)
		p.Position = r2.Add(p.Position, r2.Scale(step, dir))
	}
}

// bubble blends the size and opacity of nearby particles toward the bubble
// values for the configured duration.
func (ps *Particles) bubble(at r2.Vec, cfg config.BubbleConfig) {
	if cfg.Distance <= 0 || cfg.Duration <= 0 {
		return
	}
	for _, p := range ps.QueryCircle(at, cfg.Distance) {
		ratio := 1 - vmath.Distance(p.Position, at)/cfg.Distance
		p.Bubble = components.Bubble{
			Active:    true,
			Size:      p.Size.Value + (cfg.Size-p.Size.Value)*ratio,
			Opacity:   p.Opacity.Value + (cfg.Opacity-p.Opacity.Value)*ratio,
			Remaining: cfg.Duration * 1000,
		}
	}
}

// ageBubble counts down an active bubble override.
func ageBubble(p *components.Particle, d systems.Delta) {
	if !p.Bubble.Active {
		return
	}
	p.Bubble.Remaining -= d.Value
	if p.Bubble.Remaining <= 0 {
		p.Bubble = components.Bubble{}
	}
}
