package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances by a fixed step on every reading.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)
	clock := &fakeClock{step: time.Millisecond}
	pc.now = clock.now

	// Simulate a few ticks: 1ms per clock reading
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseUpdate)
		pc.StartPhase(PhaseRender)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.Ticks != 5 {
		t.Errorf("Ticks = %d, want 5", stats.Ticks)
	}
	if stats.AvgTickDuration != 3*time.Millisecond {
		t.Errorf("AvgTickDuration = %v, want 3ms", stats.AvgTickDuration)
	}
	if stats.PhaseAvg[PhaseUpdate] != time.Millisecond || stats.PhaseAvg[PhaseRender] != time.Millisecond {
		t.Errorf("phase averages = %v, want 1ms each", stats.PhaseAvg)
	}
	if pct := stats.PhasePct[PhaseUpdate]; pct < 33 || pct > 34 {
		t.Errorf("update pct = %v, want ~33.3", pct)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseIndex)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.Ticks != 5 {
		t.Errorf("Ticks = %d, want window size 5", stats.Ticks)
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v > max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	pc := NewPerfCollector(0)
	stats := pc.Stats()
	if stats.AvgTickDuration != 0 || len(stats.PhaseAvg) != 0 {
		t.Errorf("empty collector reported %+v", stats)
	}
}

func TestPerfCollector_NilSafe(t *testing.T) {
	var pc *PerfCollector
	pc.StartTick()
	pc.StartPhase(PhaseUpdate)
	pc.EndTick()
	if stats := pc.Stats(); stats.Ticks != 0 {
		t.Errorf("nil collector reported %d ticks", stats.Ticks)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		PhasePct:        map[string]float64{PhaseUpdate: 60, PhaseRender: 40},
	}
	row := stats.ToCSV(120)
	if row.Frame != 120 || row.AvgTickUS != 1500 || row.UpdatePct != 60 || row.RenderPct != 40 {
		t.Errorf("ToCSV = %+v", row)
	}
}
