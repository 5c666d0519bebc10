package renderer

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/vmath"
)

// Built-in shape names.
const (
	ShapeCircle   = "circle"
	ShapeSquare   = "square"
	ShapeTriangle = "triangle"
	ShapePolygon  = "polygon"
	ShapeStar     = "star"
)

// defaultSides is used by polygon and star drawers when a particle has none.
const defaultSides = 5

// ShapeDrawer paints a single particle.
type ShapeDrawer interface {
	Draw(c Canvas, p *components.Particle, radius float64, col color.NRGBA)
}

// ShapeDestroyer is implemented by drawers holding resources that must be
// released when their container is destroyed.
type ShapeDestroyer interface {
	Destroy()
}

// CircleDrawer draws filled circles.
type CircleDrawer struct{}

func (CircleDrawer) Draw(c Canvas, p *components.Particle, radius float64, col color.NRGBA) {
	c.FillCircle(p.Position, radius, col)
}

// PolygonDrawer draws regular polygons. A zero Sides uses the particle's.
type PolygonDrawer struct {
	Sides int
}

func (d PolygonDrawer) Draw(c Canvas, p *components.Particle, radius float64, col color.NRGBA) {
	sides := d.Sides
	if sides == 0 {
		sides = p.Sides
	}
	if sides < 3 {
		sides = defaultSides
	}
	c.FillPolygon(RegularPolygon(p.Position, sides, radius, -math.Pi/2), col)
}

// SquareDrawer draws axis-aligned squares with side 2*radius.
type SquareDrawer struct{}

func (SquareDrawer) Draw(c Canvas, p *components.Particle, radius float64, col color.NRGBA) {
	c.FillPolygon(RegularPolygon(p.Position, 4, radius*math.Sqrt2, math.Pi/4), col)
}

// StarDrawer draws stars whose inner radius is radius/Inset.
type StarDrawer struct {
	Inset float64
}

func (d StarDrawer) Draw(c Canvas, p *components.Particle, radius float64, col color.NRGBA) {
	inset := d.Inset
	if inset <= 1 {
		inset = 2
	}
	points := p.Sides
	if points < 3 {
		points = defaultSides
	}
	c.FillPolygon(Star(p.Position, points, radius, radius/inset), col)
}

// DefaultDrawers returns the built-in drawers keyed by shape name.
func DefaultDrawers() map[string]ShapeDrawer {
	return map[string]ShapeDrawer{
		ShapeCircle:   CircleDrawer{},
		ShapeSquare:   SquareDrawer{},
		ShapeTriangle: PolygonDrawer{Sides: 3},
		ShapePolygon:  PolygonDrawer{},
		ShapeStar:     StarDrawer{Inset: 2},
	}
}

// RegularPolygon returns the vertices of a regular polygon with the given
// circumradius, starting at angle rotation.
func RegularPolygon(center r2.Vec, sides int, radius, rotation float64) []r2.Vec {
	pts := make([]r2.Vec, sides)
	step := 2 * math.Pi / float64(sides)
	for i := range pts {
		pts[i] = r2.Add(center, vmath.FromAngle(rotation+float64(i)*step, radius))
	}
	return pts
}

// Star returns the alternating outer/inner vertices of a star pointing up.
func Star(center r2.Vec, points int, outer, inner float64) []r2.Vec {
	pts := make([]r2.Vec, 2*points)
	step := math.Pi / float64(points)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		pts[i] = r2.Add(center, vmath.FromAngle(-math.Pi/2+float64(i)*step, r))
	}
	return pts
}

// DrawParticle paints p with d, falling back to a circle when d is nil.
func DrawParticle(c Canvas, d ShapeDrawer, p *components.Particle) {
	if d == nil {
		d = CircleDrawer{}
	}
	radius := p.Radius()
	if radius <= 0 || !vmath.Finite(p.Position) {
		return
	}
	d.Draw(c, p, radius, ParticleColor(p))
}
