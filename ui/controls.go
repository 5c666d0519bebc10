package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
)

// ClickModes are the click modes offered by the controls panel.
var ClickModes = []string{
	config.ClickModePush,
	config.ClickModeRemove,
	config.ClickModeRepulse,
	config.ClickModeBubble,
}

// MaxParticles is the upper bound of the particle count slider.
const MaxParticles = 1000

// ControlActions reports what the user asked for in one frame.
type ControlActions struct {
	TogglePause bool
	Refresh     bool
	Reset       bool

	// ClickMode is set when a different click mode was selected.
	ClickMode string
	// Particles is the new particle count once the slider is released,
	// or -1.
	Particles int
}

// ControlsPanel renders the right-side controls panel.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	mode      string
	particles float32
	dragging  bool
}

// NewControlsPanel creates a controls panel for the given options.
func NewControlsPanel(x, y, width int32, opts config.Options) *ControlsPanel {
	c := &ControlsPanel{
		renderer:  NewRenderer(),
		x:         x,
		y:         y,
		width:     width,
		visible:   true,
		particles: float32(opts.Particles.Number.Value),
	}
	if modes := opts.Interactivity.OnClick.Modes; len(modes) > 0 {
		c.mode = modes[0]
	}
	return c
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the visible panel, so
// clicks there are not forwarded to the simulation.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(c.y) && y <= float32(c.y+c.height())
}

func (c *ControlsPanel) height() int32 {
	return int32(len(ClickModes)+4)*30 + c.renderer.Theme.Padding*2
}

// Draw renders the panel and returns the actions taken.
func (c *ControlsPanel) Draw(paused bool) ControlActions {
	actions := ControlActions{Particles: -1}
	if !c.visible {
		return actions
	}

	r := c.renderer
	r.DrawPanel(c.x, c.y, c.width, c.height())

	x := float32(c.x + r.Theme.Padding)
	y := float32(c.y + r.Theme.Padding)
	inner := float32(c.width - r.Theme.Padding*2)
	half := (inner - 10) / 2

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, toggleText(paused, "Play", "Pause")) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 24}, "Refresh") {
		actions.Refresh = true
	}
	y += 30

	rl.DrawText("Click mode", int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += 20
	for _, mode := range ClickModes {
		label := mode
		if mode == c.mode {
			label = "> " + mode
		}
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: 24}, label) && mode != c.mode {
			c.mode = mode
			actions.ClickMode = mode
		}
		y += 30
	}

	rl.DrawText(fmt.Sprintf("Particles: %d", int(c.particles)), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 16
	value := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: inner - 40, Height: 16}, "", fmt.Sprint(MaxParticles), c.particles, 0, MaxParticles)
	if value != c.particles {
		c.particles = value
		c.dragging = true
	}
	if c.dragging && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		c.dragging = false
		actions.Particles = int(c.particles)
	}
	y += 26

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: 24}, "Reset") {
		actions.Reset = true
	}
	return actions
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
