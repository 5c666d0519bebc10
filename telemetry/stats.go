// Package telemetry collects per-frame timing and population statistics and
// writes them to slog and CSV.
package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// FrameSummary aggregates the frames of one statistics window.
type FrameSummary struct {
	Frame         int64   `csv:"frame"`
	Frames        int     `csv:"frames"`
	MeanDeltaMS   float64 `csv:"mean_delta_ms"`
	StdDeltaMS    float64 `csv:"std_delta_ms"`
	P95DeltaMS    float64 `csv:"p95_delta_ms"`
	FPS           float64 `csv:"fps"`
	Particles     int     `csv:"particles"`
	MeanParticles float64 `csv:"mean_particles"`
}

// FrameStats keeps a rolling window of accepted frame deltas and particle
// counts.
type FrameStats struct {
	deltas    []float64 // ms
	particles []float64
	next      int
	count     int
	frames    int64
	last      int
}

// NewFrameStats creates a window of the given number of frames.
func NewFrameStats(window int) *FrameStats {
	if window < 1 {
		window = 60
	}
	return &FrameStats{
		deltas:    make([]float64, window),
		particles: make([]float64, window),
	}
}

// Record adds a frame. It reports true when a window has just completed.
func (s *FrameStats) Record(delta time.Duration, particles int) bool {
	s.deltas[s.next] = float64(delta) / float64(time.Millisecond)
	s.particles[s.next] = float64(particles)
	s.next = (s.next + 1) % len(s.deltas)
	s.count = min(s.count+1, len(s.deltas))
	s.frames++
	s.last = particles
	return s.frames%int64(len(s.deltas)) == 0
}

// Frames returns the total number of recorded frames.
func (s *FrameStats) Frames() int64 {
	return s.frames
}

// Summary aggregates the current window.
func (s *FrameStats) Summary() FrameSummary {
	sum := FrameSummary{Frame: s.frames, Frames: s.count, Particles: s.last}
	if s.count == 0 {
		return sum
	}

	deltas := s.deltas[:s.count]
	if s.count > 1 {
		sum.MeanDeltaMS, sum.StdDeltaMS = stat.MeanStdDev(deltas, nil)
	} else {
		sum.MeanDeltaMS = deltas[0]
	}
	sorted := slices.Clone(deltas)
	slices.Sort(sorted)
	sum.P95DeltaMS = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	if sum.MeanDeltaMS > 0 {
		sum.FPS = 1000 / sum.MeanDeltaMS
	}
	sum.MeanParticles = stat.Mean(s.particles[:s.count], nil)
	return sum
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("frame", s.Frame),
		slog.Int("frames", s.Frames),
		slog.Float64("mean_delta_ms", s.MeanDeltaMS),
		slog.Float64("std_delta_ms", s.StdDeltaMS),
		slog.Float64("p95_delta_ms", s.P95DeltaMS),
		slog.Float64("fps", s.FPS),
		slog.Int("particles", s.Particles),
		slog.Float64("mean_particles", s.MeanParticles),
	)
}
