package ui

import (
	"testing"
	"time"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/telemetry"
)

func TestPhaseRows(t *testing.T) {
	stats := telemetry.PerfStats{
		PhaseAvg: map[string]time.Duration{telemetry.PhaseUpdate: 3 * time.Millisecond},
		PhasePct: map[string]float64{telemetry.PhaseUpdate: 75},
	}
	rows := phaseRows(stats)
	if len(rows) != len(telemetry.Phases) {
		t.Fatalf("got %d rows, want %d", len(rows), len(telemetry.Phases))
	}
	for i, row := range rows {
		if row.Name != telemetry.Phases[i] {
			t.Errorf("row %d = %s, want %s", i, row.Name, telemetry.Phases[i])
		}
		if row.Name == telemetry.PhaseUpdate && (row.Share != 0.75 || row.Avg != 3*time.Millisecond) {
			t.Errorf("update row = %+v", row)
		}
		if row.Name != telemetry.PhaseUpdate && row.Share != 0 {
			t.Errorf("row %s share = %v, want 0", row.Name, row.Share)
		}
	}
}

func TestControlsPanelContains(t *testing.T) {
	opts := config.Default()
	c := NewControlsPanel(100, 50, 200, opts)
	if c.mode != opts.Interactivity.OnClick.Modes[0] {
		t.Errorf("initial mode = %q", c.mode)
	}

	tests := []struct {
		name string
		x, y float32
		want bool
	}{
		{"inside", 150, 60, true},
		{"left of panel", 90, 60, false},
		{"below panel", 150, float32(50 + c.height() + 1), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Contains(tc.x, tc.y); got != tc.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}

	c.Toggle()
	if c.Contains(150, 60) {
		t.Error("hidden panel still captures clicks")
	}
}

func TestToggleText(t *testing.T) {
	if toggleText(true, "Play", "Pause") != "Play" || toggleText(false, "Play", "Pause") != "Pause" {
		t.Error("toggleText picked the wrong label")
	}
}
