// internal/sim/transition.go
package sim

import "github.com/ragsim/vitals/internal/util"

// Transition eases a scalar from its current value toward a target over a
// fixed duration. Retargeting mid-flight restarts the ramp from the
// current interpolated value, so the output never jumps.
type Transition struct {
	elapsed  float64
	duration float64
	start    float64
	target   float64
}

// NewTransition creates a finished transition resting at value.
func NewTransition(value, duration float64) *Transition {
	return &Transition{
		elapsed:  duration,
		duration: duration,
		start:    value,
		target:   value,
	}
}

// SetTarget retargets the transition. A no-op when the target is already
// the current destination.
func (t *Transition) SetTarget(v float64) {
	if v == t.target {
		return
	}
	t.start = t.Value()
	t.target = v
	t.elapsed = 0
}

// Step advances the transition and returns the new value.
func (t *Transition) Step(dt float64) float64 {
	t.elapsed += dt
	return t.Value()
}

// Value returns the current interpolated value.
func (t *Transition) Value() float64 {
	if t.duration <= 0 {
		return t.target
	}
	return util.Lerp(t.start, t.target, t.elapsed/t.duration)
}

// Done reports whether the transition has reached its target.
func (t *Transition) Done() bool {
	return t.duration <= 0 || t.elapsed >= t.duration
}
