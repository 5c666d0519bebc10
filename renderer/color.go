package renderer

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/vmath"
)

// HSLColor converts hue (degrees), saturation and lightness (percent) and
// an alpha in [0, 1] to an 8-bit color.
func HSLColor(h, s, l, alpha float64) color.NRGBA {
	c := colorful.Hsl(vmath.Wrap(h, 360), vmath.Clamp(s/100, 0, 1), vmath.Clamp(l/100, 0, 1))
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(vmath.Clamp(alpha, 0, 1)*255 + 0.5)}
}

// ParticleColor returns the current fill color of p.
func ParticleColor(p *components.Particle) color.NRGBA {
	return HSLColor(p.Color.H.Value, p.Color.S.Value, p.Color.L.Value, p.Alpha())
}
