package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/drift/systems"
	"github.com/pthm-cable/drift/telemetry"
)

// statsWindow is the number of accepted frames per statistics flush.
const statsWindow = 300

// FrameManager turns scheduled frame callbacks into simulation ticks:
// it throttles to the fps limit, computes the delta, enforces the run
// duration and records timing.
type FrameManager struct {
	c *Container

	lastFrameTime time.Duration
	hasLast       bool

	perf  *telemetry.PerfCollector
	stats *telemetry.FrameStats
}

func newFrameManager(c *Container) *FrameManager {
	f := &FrameManager{
		c:     c,
		perf:  telemetry.NewPerfCollector(statsWindow),
		stats: telemetry.NewFrameStats(statsWindow),
	}
	c.particles.perf = f.perf
	return f
}

// ForceZeroDelta makes the next frame an accepted tick with zero delta.
func (f *FrameManager) ForceZeroDelta() {
	f.hasLast = false
}

func (f *FrameManager) reset() {
	f.hasLast = false
	f.lastFrameTime = 0
}

// NextFrame is the scheduled frame callback.
func (f *FrameManager) NextFrame(now time.Duration) {
	c := f.c
	c.frameScheduled = false
	if c.destroyed || !c.started || c.paused || c.hidden() {
		return
	}

	var elapsed time.Duration
	if f.hasLast {
		elapsed = now - f.lastFrameTime
		if interval := c.actualOptions.FrameInterval(); interval > 0 && elapsed < interval {
			c.draw()
			return
		}
	}
	f.lastFrameTime = now
	f.hasLast = true

	delta := systems.NewDelta(elapsed)
	c.lifeTime += time.Duration(delta.Value * float64(time.Millisecond))
	if c.duration > 0 && c.lifeTime >= c.duration {
		slog.Debug("container duration elapsed", "container", c.ID, "life_time", c.lifeTime)
		c.Stop()
		return
	}

	f.tick(delta, elapsed)
	c.draw()
}

func (f *FrameManager) tick(d systems.Delta, elapsed time.Duration) {
	c := f.c

	f.perf.StartTick()
	c.particles.Update(d)
	f.perf.StartPhase(telemetry.PhaseRender)
	c.render()
	f.perf.EndTick()

	if f.stats.Record(max(elapsed, 0), c.particles.Count()) {
		f.flush()
	}
}

// flush logs the completed statistics window and writes it to the output.
func (f *FrameManager) flush() {
	c := f.c
	summary := f.stats.Summary()
	perf := f.perf.Stats()
	slog.Info("frames", "container", c.ID, "stats", summary, "perf", perf)

	if err := c.output.WriteFrames(summary); err != nil {
		slog.Error("failed to write frames", "container", c.ID, "error", err)
	}
	if err := c.output.WritePerf(perf, summary.Frame); err != nil {
		slog.Error("failed to write perf", "container", c.ID, "error", err)
	}
}

// Summary returns the frame statistics of the current window.
func (f *FrameManager) Summary() telemetry.FrameSummary {
	return f.stats.Summary()
}

// PerfStats returns the phase timing of the current window.
func (f *FrameManager) PerfStats() telemetry.PerfStats {
	return f.perf.Stats()
}
