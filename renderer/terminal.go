package renderer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Runes used for terminal cells.
const (
	runeFull  = '█'
	runeSmall = '•'
)

// TerminalSurface renders particles as colored cells of a tcell screen.
// Each cell covers CellW x CellH simulation pixels.
type TerminalSurface struct {
	CellW, CellH float64

	screen tcell.Screen
	ready  bool
}

// NewTerminalSurface wraps a tcell screen. The screen is initialized by Init.
func NewTerminalSurface(screen tcell.Screen, cellW, cellH float64) *TerminalSurface {
	if cellW <= 0 {
		cellW = 8
	}
	if cellH <= 0 {
		cellH = 16
	}
	return &TerminalSurface{CellW: cellW, CellH: cellH, screen: screen}
}

// Init takes over the terminal. Later calls only clear the screen.
func (s *TerminalSurface) Init() error {
	if !s.ready {
		if err := s.screen.Init(); err != nil {
			return fmt.Errorf("initializing terminal: %w", err)
		}
		s.ready = true
	}
	s.screen.HideCursor()
	s.screen.Clear()
	return nil
}

// Resize resynchronizes with the terminal; the terminal owns its size.
func (s *TerminalSurface) Resize(width, height float64) {
	s.screen.Sync()
}

// Size returns the terminal area in simulation pixels.
func (s *TerminalSurface) Size() (float64, float64) {
	cols, rows := s.screen.Size()
	return float64(cols) * s.CellW, float64(rows) * s.CellH
}

func (s *TerminalSurface) PixelRatio() float64 {
	return 1
}

func (s *TerminalSurface) Clear() {
	s.screen.Clear()
	s.screen.Show()
}

// Draw repaints the whole screen with one frame.
func (s *TerminalSurface) Draw(fn func(Canvas)) {
	s.screen.Clear()
	cols, rows := s.screen.Size()
	fn(&terminalCanvas{s: s, cols: cols, rows: rows})
	s.screen.Show()
}

func (s *TerminalSurface) Close() error {
	if s.ready {
		s.screen.Fini()
		s.ready = false
	}
	return nil
}

// Screen returns the wrapped screen for event polling.
func (s *TerminalSurface) Screen() tcell.Screen {
	return s.screen
}

// CellToSim converts a cell coordinate to the simulation position of its center.
func (s *TerminalSurface) CellToSim(col, row int) r2.Vec {
	return r2.Vec{X: (float64(col) + 0.5) * s.CellW, Y: (float64(row) + 0.5) * s.CellH}
}

type terminalCanvas struct {
	s          *TerminalSurface
	cols, rows int
}

// style blends the color over the black background by its alpha.
func (c *terminalCanvas) style(col color.NRGBA) tcell.Style {
	a := int32(col.A)
	fg := tcell.NewRGBColor(int32(col.R)*a/255, int32(col.G)*a/255, int32(col.B)*a/255)
	return tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack)
}

func (c *terminalCanvas) set(col, row int, r rune, style tcell.Style) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.s.screen.SetContent(col, row, r, nil, style)
}

// fill sets every cell whose center satisfies inside within the bounding
// box, or the cell holding center when the shape is smaller than a cell.
func (c *terminalCanvas) fill(center r2.Vec, box r2.Box, col color.NRGBA, inside func(r2.Vec) bool) {
	style := c.style(col)
	c0, r0 := int(math.Floor(box.Min.X/c.s.CellW)), int(math.Floor(box.Min.Y/c.s.CellH))
	c1, r1 := int(math.Floor(box.Max.X/c.s.CellW)), int(math.Floor(box.Max.Y/c.s.CellH))

	filled := false
	for row := max(r0, 0); row <= min(r1, c.rows-1); row++ {
		for cl := max(c0, 0); cl <= min(c1, c.cols-1); cl++ {
			if inside(c.s.CellToSim(cl, row)) {
				c.set(cl, row, runeFull, style)
				filled = true
			}
		}
	}
	if !filled {
		c.set(int(math.Floor(center.X/c.s.CellW)), int(math.Floor(center.Y/c.s.CellH)), runeSmall, style)
	}
}

func (c *terminalCanvas) FillCircle(center r2.Vec, radius float64, col color.NRGBA) {
	box := r2.Box{
		Min: r2.Vec{X: center.X - radius, Y: center.Y - radius},
		Max: r2.Vec{X: center.X + radius, Y: center.Y + radius},
	}
	rr := radius * radius
	c.fill(center, box, col, func(p r2.Vec) bool {
		return r2.Norm2(r2.Sub(p, center)) <= rr
	})
}

func (c *terminalCanvas) FillPolygon(points []r2.Vec, col color.NRGBA) {
	if len(points) < 3 {
		return
	}
	box := r2.Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min.X, box.Min.Y = min(box.Min.X, p.X), min(box.Min.Y, p.Y)
		box.Max.X, box.Max.Y = max(box.Max.X, p.X), max(box.Max.Y, p.Y)
	}
	c.fill(centroid(points), box, col, func(p r2.Vec) bool {
		return pointInPolygon(p, points)
	})
}

// pointInPolygon is the even-odd ray casting test.
func pointInPolygon(p r2.Vec, poly []r2.Vec) bool {
	in := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
		j = i
	}
	return in
}
