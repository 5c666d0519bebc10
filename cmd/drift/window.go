package main

import (
	"context"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/telemetry"
	"github.com/pthm-cable/drift/ui"
)

const (
	controlsWidth = 220
	controlsHelp  = "[Space] Pause  [R] Refresh  [Tab] Controls  [Wheel] Zoom  [Right drag] Pan  [C] Recenter"
)

// runWindow drives a container in a raylib window until it is closed.
func runWindow(ctx context.Context, engine *game.Engine, scheduler *game.LoopScheduler, opts config.Options, output *telemetry.OutputManager, host hostOptions) error {
	surface := renderer.NewWindowSurface("Drift", host.Width, host.Height, host.PixelRatio)

	hud := ui.NewHUD()
	perf := ui.NewPerfPanel(10, 100, 260)
	controls := ui.NewControlsPanel(int32(host.Width)-controlsWidth-10, 10, controlsWidth, opts)

	var c *game.Container
	var actions ui.ControlActions
	surface.Overlay = func() {
		if c == nil {
			return
		}
		hud.Draw(ui.HUDData{
			Title:     "Drift",
			Container: c.ID,
			Particles: c.Particles().Count(),
			FPS:       rl.GetFPS(),
			LifeTime:  c.LifeTime(),
			Paused:    c.Paused(),
			Frames:    c.Frame().Summary(),
		})
		perf.Draw(c.Frame().PerfStats())
		actions = controls.Draw(c.Paused())
		hud.DrawControls(int32(rl.GetScreenHeight()), controlsHelp)
	}

	c, err := engine.Load(ctx, game.LoadParams{ID: "window", Surface: surface, Options: opts})
	if err != nil {
		return err
	}
	c.SetOutput(output)
	rl.SetTargetFPS(60)

	input := windowInput{focused: true, visible: true}
	start := time.Now()
	for !surface.ShouldClose() && ctx.Err() == nil && !c.Destroyed() {
		actions = ui.ControlActions{Particles: -1}
		input.handle(c, controls)

		drawn := surface.Frames()
		scheduler.RunFrame(time.Since(start))
		if surface.Frames() == drawn {
			surface.Redraw()
		}

		applyActions(ctx, c, actions)
	}
	return nil
}

// windowInput tracks window state so visibility changes are reported once.
type windowInput struct {
	focused bool
	visible bool
}

func (in *windowInput) handle(c *game.Container, controls *ui.ControlsPanel) {
	if rl.IsWindowResized() {
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
		c.Resize(float64(w), float64(h))
		controls.SetPosition(int32(w)-controlsWidth-10, 10)
	}
	if f := rl.IsWindowFocused(); f != in.focused {
		in.focused = f
		c.SetPageHidden(!f)
	}
	if v := !rl.IsWindowMinimized(); v != in.visible {
		in.visible = v
		c.SetInViewport(v)
	}

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !controls.Contains(mouse.X, mouse.Y) {
		c.Click(float64(mouse.X), float64(mouse.Y))
	}

	cam := c.Camera()
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && cam != nil {
		cam.ZoomBy(1 + float64(wheel)*0.1)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) && cam != nil {
		d := rl.GetMouseDelta()
		cam.Pan(-float64(d.X), -float64(d.Y))
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		togglePause(c)
	case rl.IsKeyPressed(rl.KeyR):
		if err := c.Refresh(context.Background()); err != nil {
			slog.Error("refresh failed", "error", err)
		}
	case rl.IsKeyPressed(rl.KeyTab):
		controls.Toggle()
	case rl.IsKeyPressed(rl.KeyC) && cam != nil:
		cam.Reset()
	}
}

func togglePause(c *game.Container) {
	if c.Paused() {
		c.Play(false)
	} else {
		c.Pause()
	}
}

// applyActions runs the control panel actions after the frame that
// produced them.
func applyActions(ctx context.Context, c *game.Container, a ui.ControlActions) {
	var err error
	switch {
	case a.TogglePause:
		togglePause(c)
	case a.Refresh:
		err = c.Refresh(ctx)
	case a.Reset:
		err = c.Reset(ctx)
	case a.ClickMode != "":
		o := c.SourceOptions()
		o.Interactivity.OnClick.Enable = true
		o.Interactivity.OnClick.Modes = []string{a.ClickMode}
		err = c.SetOptions(ctx, o)
	case a.Particles >= 0:
		o := c.SourceOptions()
		o.Particles.Number.Value = a.Particles
		err = c.SetOptions(ctx, o)
	}
	if err != nil {
		slog.Error("applying controls failed", "container", c.ID, "error", err)
	}
}
