// Command drift runs a particle container in a window, a terminal or
// headless into PNG frames.
//
// Usage: go run ./cmd/drift -mode window -config drift.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/telemetry"
)

// hostOptions are the command line settings shared by every host.
type hostOptions struct {
	Width, Height int
	PixelRatio    float64
	Frames        int
	PNGDir        string
	PNGEvery      int
}

func main() {
	configPath := flag.String("config", "", "Path to options YAML (empty = use defaults)")
	mode := flag.String("mode", "window", "Host: window, terminal or image")
	width := flag.Int("width", 1280, "Window or image width in screen pixels")
	height := flag.Int("height", 720, "Window or image height in screen pixels")
	pixelRatio := flag.Float64("pixel-ratio", 1, "Device pixels per screen pixel")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config)")
	frames := flag.Int("frames", 600, "Frames to run in image mode (0 = until interrupted)")
	pngDir := flag.String("png-dir", "", "Directory for PNG frames in image mode")
	pngEvery := flag.Int("png-every", 60, "Save every Nth frame in image mode")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and options snapshot")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	logFile := flag.String("log-file", "", "Write logs to this file instead of stdout")

	flag.Parse()

	logger, closeLog, err := newLogger(*logLevel, *logFile, *mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	if err := run(*configPath, *mode, *seed, *outputDir, hostOptions{
		Width:      *width,
		Height:     *height,
		PixelRatio: *pixelRatio,
		Frames:     *frames,
		PNGDir:     *pngDir,
		PNGEvery:   *pngEvery,
	}); err != nil {
		slog.Error("drift failed", "error", err)
		closeLog()
		os.Exit(1)
	}
}

// newLogger builds the JSON logger. The terminal host owns stdout, so it
// logs nowhere unless a file is given.
func newLogger(level, path, mode string) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	var w io.Writer = os.Stdout
	closeFn := func() {}
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case mode == "terminal":
		w = io.Discard
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), closeFn, nil
}

func run(configPath, mode string, seed int64, outputDir string, host hostOptions) error {
	opts, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if seed != 0 {
		opts.Seed = seed
	}

	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	defer output.Close()
	if err := output.WriteConfig(opts); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scheduler := game.NewLoopScheduler()
	engine := game.NewEngine(scheduler)
	defer engine.Destroy()

	engine.Subscribe(game.EventStopped, func(ev game.Event) {
		slog.Info("container stopped", "container", ev.Container.ID, "life_time", ev.Container.LifeTime())
	})

	slog.Info("starting drift",
		"mode", mode,
		"seed", opts.Seed,
		"particles", opts.Particles.Number.Value,
		"fps_limit", opts.FPSLimit,
	)

	switch mode {
	case "window":
		return runWindow(ctx, engine, scheduler, opts, output, host)
	case "terminal":
		return runTerminal(ctx, engine, scheduler, opts, output)
	case "image":
		return runImage(ctx, engine, scheduler, opts, output, host)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}
