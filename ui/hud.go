package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Container string
	Particles int
	FPS       int32
	LifeTime  time.Duration
	Paused    bool
	Frames    telemetry.FrameSummary
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	t := h.renderer.Theme
	rl.DrawText(data.Title, 10, 10, t.TitleFontSize, t.TitleColor)

	rl.DrawText(
		fmt.Sprintf("%s | Particles: %d | Life: %s", data.Container, data.Particles, data.LifeTime.Round(time.Second)),
		10, 35, t.HUDFontSize, t.LabelColor,
	)
	rl.DrawText(
		fmt.Sprintf("FPS: %d | Tick: %.1fms (p95 %.1fms)", data.FPS, data.Frames.MeanDeltaMS, data.Frames.P95DeltaMS),
		10, 55, t.HUDFontSize, t.LabelColor,
	)

	status, color := "Running", t.StatusColor
	if data.Paused {
		status, color = "PAUSED", t.PausedColor
	}
	rl.DrawText(status, 10, 75, t.HUDFontSize, color)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	t := h.renderer.Theme
	rl.DrawText(controls, 10, screenHeight-25, t.HeaderFontSize, t.HintColor)
}

// PerfPanel renders the frame phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// phaseRow is one line of the performance panel.
type phaseRow struct {
	Name  string
	Avg   time.Duration
	Share float64
}

// phaseRows lists the frame phases in pipeline order.
func phaseRows(stats telemetry.PerfStats) []phaseRow {
	rows := make([]phaseRow, 0, len(telemetry.Phases))
	for _, name := range telemetry.Phases {
		rows = append(rows, phaseRow{
			Name:  name,
			Avg:   stats.PhaseAvg[name],
			Share: stats.PhasePct[name] / 100,
		})
	}
	return rows
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	rows := phaseRows(stats)
	height := int32(len(rows)+2)*(r.Theme.LineHeight+2) + r.Theme.Padding*2
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + r.Theme.Padding
	y := r.DrawSectionHeader(x, p.y+r.Theme.Padding, "Frame Phases")
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%s (max %s)",
		stats.AvgTickDuration.Round(time.Microsecond), stats.MaxTickDuration.Round(time.Microsecond)))

	for _, row := range rows {
		y = r.DrawBar(x, y, row.Name, row.Share, 0.5, p.width-r.Theme.Padding*2)
	}
}
