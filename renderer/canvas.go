// Package renderer draws particles onto a Canvas and provides the window,
// image and terminal surfaces the hosts render into.
package renderer

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Canvas is the drawing primitive contract surfaces expose to drawers.
// Coordinates are simulation pixels; colors carry straight alpha.
type Canvas interface {
	FillCircle(center r2.Vec, radius float64, c color.NRGBA)
	// FillPolygon fills a polygon that is star-shaped around its centroid,
	// such as a regular polygon or a star.
	FillPolygon(points []r2.Vec, c color.NRGBA)
}

// centroid returns the mean of points.
func centroid(points []r2.Vec) r2.Vec {
	var c r2.Vec
	for _, p := range points {
		c = r2.Add(c, p)
	}
	if len(points) > 0 {
		c = r2.Scale(1/float64(len(points)), c)
	}
	return c
}
