// Package camera provides the screen to simulation transform used for
// drawing and for pointer hit queries.
package camera

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/vmath"
)

// Camera maps screen pixels onto the simulation area. The simulation is
// measured in device pixels, so at zoom 1 a screen point maps to itself
// multiplied by the pixel ratio.
type Camera struct {
	// Center is the simulation point shown at the viewport center.
	Center r2.Vec

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// PixelRatio is device pixels per screen pixel.
	PixelRatio float64

	// Viewport dimensions in screen pixels
	ViewportW, ViewportH float64

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera showing the whole simulation area at 1:1 zoom.
func New(viewportW, viewportH, pixelRatio float64) *Camera {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	c := &Camera{
		Zoom:       1.0,
		PixelRatio: pixelRatio,
		ViewportW:  viewportW,
		ViewportH:  viewportH,
		MinZoom:    1.0,
		MaxZoom:    4.0,
	}
	c.Reset()
	return c
}

// SimToScreen converts a simulation position to screen coordinates.
func (c *Camera) SimToScreen(p r2.Vec) r2.Vec {
	d := r2.Scale(c.Zoom/c.PixelRatio, r2.Sub(p, c.Center))
	return r2.Add(d, c.viewportCenter())
}

// ScreenToSim converts screen coordinates to a simulation position.
func (c *Camera) ScreenToSim(s r2.Vec) r2.Vec {
	d := r2.Scale(c.PixelRatio/c.Zoom, r2.Sub(s, c.viewportCenter()))
	return r2.Add(c.Center, d)
}

// ScreenToSimRadius converts a screen-space length to simulation pixels.
func (c *Camera) ScreenToSimRadius(r float64) float64 {
	return r * c.PixelRatio / c.Zoom
}

// Scale returns screen pixels per simulation pixel.
func (c *Camera) Scale() float64 {
	return c.Zoom / c.PixelRatio
}

func (c *Camera) viewportCenter() r2.Vec {
	return r2.Vec{X: c.ViewportW / 2, Y: c.ViewportH / 2}
}

// IsVisible returns true if a circle at p with the given radius could be
// visible on screen (conservative check for culling).
func (c *Camera) IsVisible(p r2.Vec, radius float64) bool {
	b := c.VisibleBounds()
	return p.X+radius >= b.Min.X && p.X-radius <= b.Max.X &&
		p.Y+radius >= b.Min.Y && p.Y-radius <= b.Max.Y
}

// VisibleBounds returns the simulation-space bounds of the viewport.
func (c *Camera) VisibleBounds() r2.Box {
	half := r2.Scale(c.PixelRatio/(2*c.Zoom), r2.Vec{X: c.ViewportW, Y: c.ViewportH})
	return r2.Box{Min: r2.Sub(c.Center, half), Max: r2.Add(c.Center, half)}
}

// Resize updates viewport dimensions, keeping the zoom and re-centering on
// the simulation area.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.Reset()
}

// SetPixelRatio changes the device pixel ratio and re-centers.
func (c *Camera) SetPixelRatio(ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	c.PixelRatio = ratio
	c.Reset()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.Center = r2.Add(c.Center, r2.Scale(c.PixelRatio/c.Zoom, r2.Vec{X: dx, Y: dy}))
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = vmath.Clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.Zoom = 1.0
	c.Center = r2.Scale(c.PixelRatio/2, r2.Vec{X: c.ViewportW, Y: c.ViewportH})
}
