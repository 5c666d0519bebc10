package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/spatial/r2"
)

// ImageSurface renders frames into an in-memory image that can be saved as
// PNG. It backs the png and headless hosts.
type ImageSurface struct {
	Background color.NRGBA

	width, height float64 // screen pixels
	ratio         float64
	dc            *gg.Context
}

// NewImageSurface creates an image surface of the given screen size. The
// backing image is scaled by pixelRatio.
func NewImageSurface(width, height int, pixelRatio float64) *ImageSurface {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	return &ImageSurface{
		Background: color.NRGBA{A: 255},
		width:      float64(width),
		height:     float64(height),
		ratio:      pixelRatio,
	}
}

func (s *ImageSurface) Init() error {
	w, h := s.Size()
	if w < 1 || h < 1 {
		return fmt.Errorf("image surface: invalid size %vx%v", w, h)
	}
	s.dc = gg.NewContext(int(w), int(h))
	s.Clear()
	return nil
}

// Resize reallocates the image for a new screen size.
func (s *ImageSurface) Resize(width, height float64) {
	s.width, s.height = width, height
	if s.dc != nil {
		w, h := s.Size()
		s.dc = gg.NewContext(max(int(w), 1), max(int(h), 1))
		s.Clear()
	}
}

// Size returns the image size in simulation pixels.
func (s *ImageSurface) Size() (float64, float64) {
	return math.Round(s.width * s.ratio), math.Round(s.height * s.ratio)
}

func (s *ImageSurface) PixelRatio() float64 {
	return s.ratio
}

func (s *ImageSurface) Clear() {
	if s.dc == nil {
		return
	}
	s.dc.SetColor(s.Background)
	s.dc.Clear()
}

// Draw clears the image and paints one frame.
func (s *ImageSurface) Draw(fn func(Canvas)) {
	if s.dc == nil {
		return
	}
	s.Clear()
	fn(imageCanvas{dc: s.dc})
}

func (s *ImageSurface) Close() error {
	s.dc = nil
	return nil
}

// Image returns the current frame, or nil before Init.
func (s *ImageSurface) Image() image.Image {
	if s.dc == nil {
		return nil
	}
	return s.dc.Image()
}

// SavePNG writes the current frame to path.
func (s *ImageSurface) SavePNG(path string) error {
	if s.dc == nil {
		return fmt.Errorf("image surface: not initialized")
	}
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	return nil
}

type imageCanvas struct {
	dc *gg.Context
}

func (c imageCanvas) FillCircle(center r2.Vec, radius float64, col color.NRGBA) {
	c.dc.SetRGBA255(int(col.R), int(col.G), int(col.B), int(col.A))
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.dc.Fill()
}

func (c imageCanvas) FillPolygon(points []r2.Vec, col color.NRGBA) {
	if len(points) < 3 {
		return
	}
	c.dc.SetRGBA255(int(col.R), int(col.G), int(col.B), int(col.A))
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.dc.Fill()
}
