package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/telemetry"
)

// imageFrameStep is the simulated time between frames in image mode.
const imageFrameStep = time.Second / 60

// runImage drives a container offscreen at a fixed frame step, optionally
// saving frames as PNG.
func runImage(ctx context.Context, engine *game.Engine, scheduler *game.LoopScheduler, opts config.Options, output *telemetry.OutputManager, host hostOptions) error {
	if host.PNGDir != "" {
		if err := os.MkdirAll(host.PNGDir, 0755); err != nil {
			return fmt.Errorf("creating png directory: %w", err)
		}
	}

	surface := renderer.NewImageSurface(host.Width, host.Height, host.PixelRatio)
	c, err := engine.Load(ctx, game.LoadParams{ID: "image", Surface: surface, Options: opts})
	if err != nil {
		return err
	}
	c.SetOutput(output)

	every := max(host.PNGEvery, 1)
	for frame := 0; host.Frames <= 0 || frame < host.Frames; frame++ {
		if ctx.Err() != nil || !c.Started() {
			break
		}
		scheduler.RunFrame(time.Duration(frame) * imageFrameStep)

		if host.PNGDir != "" && frame%every == 0 {
			path := filepath.Join(host.PNGDir, fmt.Sprintf("frame_%05d.png", frame))
			if err := surface.SavePNG(path); err != nil {
				return err
			}
		}
	}

	slog.Info("image run finished",
		"life_time", c.LifeTime(),
		"particles", c.Particles().Count(),
		"stats", c.Frame().Summary(),
	)
	return nil
}
