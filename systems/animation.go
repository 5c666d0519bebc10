package systems

import (
	"math/rand"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/vmath"
)

// hueOffsetScale converts a hue offset in percent into degrees.
const hueOffsetScale = 3.6

// initAnimated seeds v from a value range and its animation settings.
// velocityScale converts the configured speed into units per reference frame.
func initAnimated(v *components.AnimatedValue, value vmath.RangeValue, anim config.AnimationConfig, velocityScale float64, rng *rand.Rand) {
	*v = components.AnimatedValue{
		Min:   value.Min,
		Max:   value.Max,
		Value: value.Random(rng),
		Decay: 1,
	}
	if !anim.Enable {
		return
	}

	v.Enable = true
	v.Velocity = anim.Speed.Random(rng) * velocityScale
	if !anim.Sync {
		v.Velocity *= rng.Float64()
	}
	v.MaxLoops = anim.Count
	v.DelayTime = anim.Delay.Random(rng) * 1000
	if anim.Decay > 0 {
		v.Decay = 1 - anim.Decay
	}

	switch anim.StartValue {
	case config.StartMin:
		v.Value = v.Min
		v.Status = components.Increasing
	case config.StartMax:
		v.Value = v.Max
		v.Status = components.Decreasing
	default:
		if rng.Float64() < 0.5 {
			v.Status = components.Decreasing
		}
	}
}

// delayed advances the start delay and reports whether the value must wait.
func delayed(v *components.AnimatedValue, d Delta) bool {
	if v.DelayTime <= 0 || v.Time >= v.DelayTime {
		return false
	}
	v.Time += d.Value
	return v.Time < v.DelayTime
}

// updateAnimated bounces v between Min and Max. It reports true when the
// destroy mode says the particle has reached its end.
func updateAnimated(v *components.AnimatedValue, offset float64, d Delta, destroy string) bool {
	if !v.Enable || !v.Looping() || delayed(v, d) {
		return false
	}

	velocity := v.Velocity*d.Factor + offset
	switch v.Status {
	case components.Increasing:
		if v.Value >= v.Max {
			if destroy == config.DestroyMax {
				return true
			}
			v.Status = components.Decreasing
			v.Loops++
		} else {
			v.Value += velocity
		}
	case components.Decreasing:
		if v.Value <= v.Min {
			if destroy == config.DestroyMin {
				return true
			}
			v.Status = components.Increasing
			v.Loops++
		} else {
			v.Value -= velocity
		}
	}

	if v.Decay != 1 {
		v.Velocity *= v.Decay
	}
	v.Value = vmath.Clamp(v.Value, v.Min, v.Max)
	return false
}
