package game

import (
	"github.com/pthm-cable/drift/camera"
	"github.com/pthm-cable/drift/renderer"
)

// Surface is where a container draws. Sizes are in simulation pixels except
// Resize, which takes screen pixels.
type Surface interface {
	Init() error
	Resize(width, height float64)
	Size() (width, height float64)
	PixelRatio() float64
	Clear()
	Draw(fn func(renderer.Canvas))
	Close() error
}

// cameraSurface is implemented by surfaces that draw through their own
// camera; hit queries then use the same transform.
type cameraSurface interface {
	Camera() *camera.Camera
}
