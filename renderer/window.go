package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/camera"
)

// WindowSurface renders into a raylib window. Particles are drawn through a
// 2D camera so the simulation can run at device resolution.
type WindowSurface struct {
	Title      string
	Background rl.Color

	// Overlay is drawn in screen space after the particles of each frame.
	Overlay func()

	camera *camera.Camera
	open   bool
	last   func(Canvas)
	frames uint64
}

// NewWindowSurface creates a window surface of the given screen size.
func NewWindowSurface(title string, width, height int, pixelRatio float64) *WindowSurface {
	return &WindowSurface{
		Title:      title,
		Background: rl.Color{R: 8, G: 10, B: 20, A: 255},
		camera:     camera.New(float64(width), float64(height), pixelRatio),
	}
}

func (s *WindowSurface) Init() error {
	if !s.open {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
		rl.InitWindow(int32(s.camera.ViewportW), int32(s.camera.ViewportH), s.Title)
		s.open = true
	}
	return nil
}

// Resize follows a window resize to the given screen size.
func (s *WindowSurface) Resize(width, height float64) {
	s.camera.Resize(width, height)
}

// Size returns the window area in simulation pixels.
func (s *WindowSurface) Size() (float64, float64) {
	return s.camera.ViewportW * s.camera.PixelRatio, s.camera.ViewportH * s.camera.PixelRatio
}

func (s *WindowSurface) PixelRatio() float64 {
	return s.camera.PixelRatio
}

// Camera returns the camera used to draw the simulation.
func (s *WindowSurface) Camera() *camera.Camera {
	return s.camera
}

// ShouldClose reports whether the user asked to close the window.
func (s *WindowSurface) ShouldClose() bool {
	return s.open && rl.WindowShouldClose()
}

func (s *WindowSurface) Clear() {
	s.last = nil
	if !s.open {
		return
	}
	rl.BeginDrawing()
	rl.ClearBackground(s.Background)
	if s.Overlay != nil {
		s.Overlay()
	}
	rl.EndDrawing()
}

// Draw paints one full frame.
func (s *WindowSurface) Draw(fn func(Canvas)) {
	s.last = fn
	s.frames++
	s.paint(fn)
}

// Frames returns the number of frames drawn.
func (s *WindowSurface) Frames() uint64 {
	return s.frames
}

// Redraw repaints the last frame. Hosts call it on loop iterations that drew
// nothing so the window keeps presenting and polling input.
func (s *WindowSurface) Redraw() {
	if s.last == nil {
		s.Clear()
		return
	}
	s.paint(s.last)
}

func (s *WindowSurface) paint(fn func(Canvas)) {
	if !s.open {
		return
	}
	rl.BeginDrawing()
	rl.ClearBackground(s.Background)

	viewport := r2.Vec{X: s.camera.ViewportW / 2, Y: s.camera.ViewportH / 2}
	rl.BeginMode2D(rl.Camera2D{
		Offset: rl.Vector2{X: float32(viewport.X), Y: float32(viewport.Y)},
		Target: rl.Vector2{X: float32(s.camera.Center.X), Y: float32(s.camera.Center.Y)},
		Zoom:   float32(s.camera.Scale()),
	})
	fn(windowCanvas{})
	rl.EndMode2D()

	if s.Overlay != nil {
		s.Overlay()
	}
	rl.EndDrawing()
}

func (s *WindowSurface) Close() error {
	if s.open {
		rl.CloseWindow()
		s.open = false
	}
	return nil
}

type windowCanvas struct{}

func toRL(c color.NRGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func toVec2(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}

func (windowCanvas) FillCircle(center r2.Vec, radius float64, col color.NRGBA) {
	rl.DrawCircleV(toVec2(center), float32(radius), toRL(col))
}

// FillPolygon draws a triangle fan around the centroid.
func (windowCanvas) FillPolygon(points []r2.Vec, col color.NRGBA) {
	if len(points) < 3 {
		return
	}
	c := centroid(points)
	rc := toRL(col)
	for i := range points {
		a, b := points[i], points[(i+1)%len(points)]
		// DrawTriangle requires counter-clockwise winding on screen
		if cross(r2.Sub(a, c), r2.Sub(b, c)) > 0 {
			a, b = b, a
		}
		rl.DrawTriangle(toVec2(c), toVec2(a), toVec2(b), rc)
	}
}

func cross(a, b r2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}
