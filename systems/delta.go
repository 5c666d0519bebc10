package systems

import (
	"time"

	"github.com/pthm-cable/drift/vmath"
)

// ReferenceFrame is the frame duration at which Delta.Factor equals 1.
const ReferenceFrame = time.Second / 60

// MaxFrameDelta caps a single tick; longer gaps (backgrounded host, debugger
// pauses) are treated as this much time.
const MaxFrameDelta = time.Second

// Delta is the elapsed time handed to every updater for one tick.
type Delta struct {
	Value  float64 // milliseconds
	Factor float64 // Value relative to ReferenceFrame
}

// NewDelta converts an elapsed duration into a sanitized Delta.
// Negative durations become zero and oversized ones are clamped.
func NewDelta(elapsed time.Duration) Delta {
	if elapsed <= 0 {
		return Delta{}
	}
	if elapsed > MaxFrameDelta {
		elapsed = MaxFrameDelta
	}
	return Delta{
		Value:  float64(elapsed) / float64(time.Millisecond),
		Factor: float64(elapsed) / float64(ReferenceFrame),
	}
}

// Valid reports whether the delta represents positive, finite elapsed time.
// Ticks with an invalid delta must not advance particle state.
func (d Delta) Valid() bool {
	return d.Value > 0 && vmath.IsFinite(d.Value) && d.Factor > 0 && vmath.IsFinite(d.Factor)
}
