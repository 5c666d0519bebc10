// Noise path preview tool - interactive visualization of the noise path
// field with sliders.
//
// Usage: go run ./cmd/noisepreview
package main

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30

	// fieldSize is the simulated area shown in the preview, in pixels.
	fieldSize = 1024
	gridCells = 128
	arrowStep = 32
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Noise Path Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	var seed int64 = 1
	path := systems.NewNoisePath(seed)

	img := rl.GenImageColor(gridCells, gridCells, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	animating := false
	showArrows := true
	needsRegen := true
	ticks := 0

	for !rl.WindowShouldClose() {
		if animating {
			path.Update()
			ticks++
			needsRegen = true
		}
		if needsRegen {
			updateTexture(texture, path)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridCells, Height: gridCells},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		if showArrows {
			drawArrows(path)
		}
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Ticks: %d  Seed: %d", ticks, seed), 15, statsY, 16, rl.DarkGray)
		rl.DrawText("Hue shows the field heading", 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Noise Path Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		if v, changed := slider(panelX, &panelY, "Scale (field frequency per pixel)", "0.0005", "0.02", path.Scale, 0.0005, 0.02, "%.4f"); changed {
			path.Scale = v
			needsRegen = true
		}
		if v, changed := slider(panelX, &panelY, "Time step (evolution per tick)", "0", "0.02", path.TimeStep, 0, 0.02, "%.4f"); changed {
			path.TimeStep = v
		}
		if v, changed := slider(panelX, &panelY, "Steer (heading correction)", "0", "1", path.Steer, 0, 1, "%.2f"); changed {
			path.Steer = v
		}

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			path.Init()
			ticks = 0
			needsRegen = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(1, math.MaxInt32))
			path = reseed(path, seed)
			ticks = 0
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(showArrows, "Hide Arrows", "Show Arrows")) {
			showArrows = !showArrows
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 250, Height: 30}, "Reset All") {
			seed = 1
			path = systems.NewNoisePath(seed)
			ticks = 0
			animating = false
			needsRegen = true
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar and advances y past it.
func slider(x float32, y *float32, label, minText, maxText string, value, lo, hi float64, format string) (float64, bool) {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		minText, maxText,
		float32(value), float32(lo), float32(hi),
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return float64(v), v != float32(value)
}

// reseed builds a generator with a new seed, keeping the tuning.
func reseed(old *systems.NoisePath, seed int64) *systems.NoisePath {
	p := systems.NewNoisePath(seed)
	p.Scale, p.TimeStep, p.Steer = old.Scale, old.TimeStep, old.Steer
	return p
}

// updateTexture colors each cell by the field heading at its center.
func updateTexture(texture rl.Texture2D, path *systems.NoisePath) {
	cell := float64(fieldSize) / gridCells
	pixels := make([]rl.Color, gridCells*gridCells)
	for y := range gridCells {
		for x := range gridCells {
			pos := r2.Vec{X: (float64(x) + 0.5) * cell, Y: (float64(y) + 0.5) * cell}
			deg := path.FieldAngle(pos) * 180 / math.Pi
			c := renderer.HSLColor(deg, 70, 55, 1)
			pixels[y*gridCells+x] = rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
		}
	}
	rl.UpdateTexture(texture, pixels)
}

// drawArrows draws the field heading on a coarse grid over the preview.
func drawArrows(path *systems.NoisePath) {
	scale := float32(previewSize) / fieldSize
	for y := arrowStep / 2; y < fieldSize; y += arrowStep {
		for x := arrowStep / 2; x < fieldSize; x += arrowStep {
			pos := r2.Vec{X: float64(x), Y: float64(y)}
			angle := path.FieldAngle(pos)
			from := rl.Vector2{X: 10 + float32(x)*scale, Y: 10 + float32(y)*scale}
			to := rl.Vector2{
				X: from.X + float32(math.Cos(angle))*arrowStep*scale*0.4,
				Y: from.Y + float32(math.Sin(angle))*arrowStep*scale*0.4,
			}
			rl.DrawLineV(from, to, rl.Black)
			rl.DrawCircleV(to, 1.5, rl.Black)
		}
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
