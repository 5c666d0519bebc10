package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestFrameStatsSummary(t *testing.T) {
	fs := NewFrameStats(4)
	deltas := []time.Duration{10, 20, 30, 40}
	var done bool
	for i, d := range deltas {
		done = fs.Record(d*time.Millisecond, 100+i)
	}
	if !done {
		t.Error("Record did not report a completed window")
	}

	s := fs.Summary()
	if s.Frame != 4 || s.Frames != 4 {
		t.Errorf("Frame/Frames = %d/%d, want 4/4", s.Frame, s.Frames)
	}
	if math.Abs(s.MeanDeltaMS-25) > 1e-9 {
		t.Errorf("MeanDeltaMS = %v, want 25", s.MeanDeltaMS)
	}
	// Sample standard deviation of 10, 20, 30, 40
	if want := math.Sqrt(500.0 / 3); math.Abs(s.StdDeltaMS-want) > 1e-9 {
		t.Errorf("StdDeltaMS = %v, want %v", s.StdDeltaMS, want)
	}
	if s.P95DeltaMS < 30 || s.P95DeltaMS > 40 {
		t.Errorf("P95DeltaMS = %v, want within [30, 40]", s.P95DeltaMS)
	}
	if math.Abs(s.FPS-40) > 1e-9 {
		t.Errorf("FPS = %v, want 40", s.FPS)
	}
	if s.Particles != 103 || math.Abs(s.MeanParticles-101.5) > 1e-9 {
		t.Errorf("Particles = %d mean %v, want 103 mean 101.5", s.Particles, s.MeanParticles)
	}
}

func TestFrameStatsWindowRolls(t *testing.T) {
	fs := NewFrameStats(3)
	completed := 0
	for i := 0; i < 7; i++ {
		if fs.Record(16*time.Millisecond, 10) {
			completed++
		}
	}
	if completed != 2 {
		t.Errorf("completed windows = %d, want 2", completed)
	}
	if s := fs.Summary(); s.Frames != 3 || s.Frame != 7 {
		t.Errorf("Frames/Frame = %d/%d, want 3/7", s.Frames, s.Frame)
	}
}

func TestFrameStatsSingleFrame(t *testing.T) {
	fs := NewFrameStats(10)
	fs.Record(0, 5)
	s := fs.Summary()
	if s.StdDeltaMS != 0 || s.FPS != 0 || s.MeanDeltaMS != 0 {
		t.Errorf("single zero frame summary = %+v", s)
	}

	empty := NewFrameStats(10).Summary()
	if empty.Frames != 0 {
		t.Errorf("empty summary Frames = %d", empty.Frames)
	}
}
