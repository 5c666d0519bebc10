package config

import (
	"math"
	"time"
)

// Click modes understood by the particle collection.
const (
	ClickModePush    = "push"
	ClickModeRemove  = "remove"
	ClickModeRepulse = "repulse"
	ClickModeBubble  = "bubble"
)

// Out modes applied when a particle leaves the surface.
const (
	OutModeNone    = "none"
	OutModeBounce  = "bounce"
	OutModeOut     = "out"
	OutModeDestroy = "destroy"
)

// Destroy modes for animated values.
const (
	DestroyNone = "none"
	DestroyMin  = "min"
	DestroyMax  = "max"
)

// Start values for animated values.
const (
	StartMin    = "min"
	StartMax    = "max"
	StartRandom = "random"
)

// Resolved is the immutable options snapshot a container runs with.
// Pixel-dependent quantities are already scaled by PixelRatio.
type Resolved struct {
	// Options is the merged source the snapshot was computed from.
	Options Options

	Width      float64
	Height     float64
	PixelRatio float64

	FPSLimit    float64
	Duration    time.Duration
	TargetCount int
	Limit       int

	Particles     ParticleOptions
	Interactivity InteractivityConfig
}

// Resolve computes the resolved snapshot of opts for a surface of the given
// size and pixel ratio. It never mutates opts.
func Resolve(opts Options, width, height, pixelRatio float64) *Resolved {
	src := opts.Clone()

	if !src.DetectRetina || pixelRatio <= 0 || math.IsNaN(pixelRatio) {
		pixelRatio = 1
	}

	r := &Resolved{
		Options:       src,
		Width:         width,
		Height:        height,
		PixelRatio:    pixelRatio,
		FPSLimit:      math.Max(src.FPSLimit, 0),
		Particles:     src.Clone().Particles,
		Interactivity: src.Clone().Interactivity,
	}
	if src.Duration > 0 {
		r.Duration = time.Duration(src.Duration * float64(time.Second))
	}

	p := &r.Particles
	p.Size.Value = p.Size.Value.Scale(pixelRatio)
	p.Move.Speed = p.Move.Speed.Scale(pixelRatio)
	p.Move.Drift = p.Move.Drift.Scale(pixelRatio)
	p.Move.Gravity.MaxSpeed *= pixelRatio
	p.Move.MaxSpeed *= pixelRatio
	if len(p.Shape.Type) == 0 {
		p.Shape.Type = []string{"circle"}
	}
	if p.Move.OutMode == "" {
		p.Move.OutMode = OutModeOut
	}

	modes := &r.Interactivity.Modes
	modes.Repulse.Distance *= pixelRatio
	modes.Bubble.Distance *= pixelRatio
	modes.Bubble.Size *= pixelRatio

	r.Limit = p.Number.Limit
	r.TargetCount = targetCount(p.Number, width, height, pixelRatio)

	return r
}

// targetCount derives the population from the configured value, the cap and
// the surface area.
func targetCount(n NumberConfig, width, height, pixelRatio float64) int {
	count := n.Value
	if n.Limit > 0 && n.Limit < count {
		count = n.Limit
	}
	if count <= 0 {
		return 0
	}

	factor := 1.0
	if n.Density.Enable && n.Density.Width > 0 && n.Density.Height > 0 {
		factor = (width * height) / (n.Density.Width * n.Density.Height * pixelRatio * pixelRatio)
	}

	target := int(math.Round(float64(count) * factor))
	if n.Limit > 0 && target > n.Limit {
		target = n.Limit
	}
	return max(target, 0)
}

// FrameInterval returns the minimum time between accepted ticks, or zero
// when the frame rate is unlimited.
func (r *Resolved) FrameInterval() time.Duration {
	if r == nil || r.FPSLimit <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / r.FPSLimit)
}

// Shapes returns the distinct shape types used by the particles, in order.
func (r *Resolved) Shapes() []string {
	seen := make(map[string]bool, len(r.Particles.Shape.Type))
	var out []string
	for _, s := range r.Particles.Shape.Type {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
