package main

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/renderer"
)

const (
	// coverageGrid is the number of histogram cells per axis.
	coverageGrid = 16
	// sampleEvery is the number of frames between coverage samples.
	sampleEvery = 30
	frameStep   = time.Second / 60
)

// nullSurface is a fixed-size surface that draws nothing.
type nullSurface struct {
	w, h float64
}

func (s *nullSurface) Init() error                { return nil }
func (s *nullSurface) Resize(w, h float64)        { s.w, s.h = w, h }
func (s *nullSurface) Size() (float64, float64)   { return s.w, s.h }
func (s *nullSurface) PixelRatio() float64        { return 1 }
func (s *nullSurface) Clear()                     {}
func (s *nullSurface) Draw(func(renderer.Canvas)) {}
func (s *nullSurface) Close() error               { return nil }

// FitnessEvaluator runs headless containers and scores how evenly the
// particles cover the surface.
type FitnessEvaluator struct {
	params *ParamVector
	frames int
	seeds  []int64
	base   config.Options
	width  float64
	height float64

	mu           sync.Mutex
	lastCoverage float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, frames int, seeds []int64, base config.Options) *FitnessEvaluator {
	return &FitnessEvaluator{
		params: params,
		frames: frames,
		seeds:  seeds,
		base:   base,
		width:  1280,
		height: 720,
	}
}

// LastCoverage returns the coverage from the most recent evaluation.
func (fe *FitnessEvaluator) LastCoverage() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastCoverage
}

// Evaluate returns the negated mean coverage over all seeds, so lower is
// better.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	scores := make([]float64, 0, len(fe.seeds))
	for _, seed := range fe.seeds {
		score, err := fe.run(raw, seed)
		if err != nil {
			return math.Inf(1)
		}
		scores = append(scores, score)
	}

	coverage := stat.Mean(scores, nil)
	fe.mu.Lock()
	fe.lastCoverage = coverage
	fe.mu.Unlock()
	return -coverage
}

// run simulates one seed and returns its mean coverage in [0, 1].
func (fe *FitnessEvaluator) run(raw []float64, seed int64) (float64, error) {
	opts := fe.base.Clone()
	fe.params.Apply(&opts, raw)
	opts.Seed = seed
	opts.FPSLimit = 0
	opts.Duration = 0
	opts.AutoPlay = true

	scheduler := game.NewLoopScheduler()
	engine := game.NewEngine(scheduler)
	defer engine.Destroy()

	c, err := engine.Load(context.Background(), game.LoadParams{
		Surface: &nullSurface{w: fe.width, h: fe.height},
		Options: opts,
	})
	if err != nil {
		return 0, fmt.Errorf("loading container: %w", err)
	}

	var samples []float64
	for frame := range fe.frames {
		scheduler.RunFrame(time.Duration(frame) * frameStep)
		if frame > 0 && frame%sampleEvery == 0 {
			samples = append(samples, fe.coverage(c))
		}
	}
	if len(samples) == 0 {
		return fe.coverage(c), nil
	}
	return stat.Mean(samples, nil), nil
}

// coverage is the normalized entropy of the particle position histogram:
// 1 when every cell holds the same number of particles.
func (fe *FitnessEvaluator) coverage(c *game.Container) float64 {
	hist := make([]float64, coverageGrid*coverageGrid)
	for p := range c.Particles().All() {
		x := int(p.Position.X / fe.width * coverageGrid)
		y := int(p.Position.Y / fe.height * coverageGrid)
		if x < 0 || x >= coverageGrid || y < 0 || y >= coverageGrid {
			continue
		}
		hist[y*coverageGrid+x]++
	}

	total := floats.Sum(hist)
	if total == 0 {
		return 0
	}
	floats.Scale(1/total, hist)
	return stat.Entropy(hist) / math.Log(float64(len(hist)))
}
