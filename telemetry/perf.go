package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one frame.
const (
	PhasePaths   = "paths"
	PhaseUpdate  = "update"
	PhaseCleanup = "cleanup"
	PhaseIndex   = "index"
	PhaseRender  = "render"
)

// Phases lists every phase in frame order.
var Phases = []string{PhasePaths, PhaseUpdate, PhaseCleanup, PhaseIndex, PhaseRender}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks per-phase tick timing over a rolling window.
// A nil collector ignores every call, so callers need no guards.
type PerfCollector struct {
	samples []PerfSample
	next    int
	count   int

	current    map[string]time.Duration
	tickStart  time.Time
	phaseStart time.Time
	phase      string
	now        func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		samples: make([]PerfSample, windowSize),
		current: make(map[string]time.Duration),
		now:     time.Now,
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	if p == nil {
		return
	}
	p.tickStart = p.now()
	p.current = make(map[string]time.Duration, len(Phases))
	p.phase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	if p == nil {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
		p.phase = ""
	}
}

// EndTick closes the running phase and records the sample.
func (p *PerfCollector) EndTick() {
	if p == nil {
		return
	}
	now := p.now()
	p.closePhase(now)

	p.samples[p.next] = PerfSample{TickDuration: now.Sub(p.tickStart), Phases: p.current}
	p.next = (p.next + 1) % len(p.samples)
	p.count = min(p.count+1, len(p.samples))
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Ticks int

	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown (average durations and share of the tick)
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p == nil || p.count == 0 {
		return stats
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for i, s := range p.samples[:p.count] {
		total += s.TickDuration
		if i == 0 || s.TickDuration < stats.MinTickDuration {
			stats.MinTickDuration = s.TickDuration
		}
		stats.MaxTickDuration = max(stats.MaxTickDuration, s.TickDuration)
		for phase, d := range s.Phases {
			sums[phase] += d
		}
	}

	n := time.Duration(p.count)
	stats.Ticks = p.count
	stats.AvgTickDuration = total / n
	for phase, sum := range sums {
		stats.PhaseAvg[phase] = sum / n
		if total > 0 {
			stats.PhasePct[phase] = float64(sum) / float64(total) * 100
		}
	}
	return stats
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Frame      int64   `csv:"frame"`
	AvgTickUS  int64   `csv:"avg_tick_us"`
	MinTickUS  int64   `csv:"min_tick_us"`
	MaxTickUS  int64   `csv:"max_tick_us"`
	PathsPct   float64 `csv:"paths_pct"`
	UpdatePct  float64 `csv:"update_pct"`
	CleanupPct float64 `csv:"cleanup_pct"`
	IndexPct   float64 `csv:"index_pct"`
	RenderPct  float64 `csv:"render_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(frame int64) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:      frame,
		AvgTickUS:  s.AvgTickDuration.Microseconds(),
		MinTickUS:  s.MinTickDuration.Microseconds(),
		MaxTickUS:  s.MaxTickDuration.Microseconds(),
		PathsPct:   s.PhasePct[PhasePaths],
		UpdatePct:  s.PhasePct[PhaseUpdate],
		CleanupPct: s.PhasePct[PhaseCleanup],
		IndexPct:   s.PhasePct[PhaseIndex],
		RenderPct:  s.PhasePct[PhaseRender],
	}
}
