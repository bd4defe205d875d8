package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionRampsLinearly(t *testing.T) {
	tr := NewTransition(1.0, 1.0)
	assert.True(t, tr.Done())
	assert.Equal(t, 1.0, tr.Value())

	tr.SetTarget(0.0)
	assert.False(t, tr.Done())
	assert.InDelta(t, 0.5, tr.Step(0.5), 1e-9)
	assert.InDelta(t, 0.0, tr.Step(0.5), 1e-9)
	assert.True(t, tr.Done())

	// overshoot clamps at the target
	assert.InDelta(t, 0.0, tr.Step(10), 1e-9)
}

func TestTransitionRetargetMidFlight(t *testing.T) {
	tr := NewTransition(0.0, 1.0)
	tr.SetTarget(1.0)
	tr.Step(0.5)

	// retarget restarts from the interpolated value, no jump
	tr.SetTarget(0.0)
	assert.InDelta(t, 0.5, tr.Value(), 1e-9)
	assert.InDelta(t, 0.25, tr.Step(0.5), 1e-9)
}

func TestTransitionZeroDurationSnaps(t *testing.T) {
	tr := NewTransition(0.0, 0.0)
	tr.SetTarget(5.0)
	assert.Equal(t, 5.0, tr.Value())
	assert.True(t, tr.Done())
}

func TestSessionContext(t *testing.T) {
	sc := NewSessionContext()
	assert.Equal(t, uint(0), sc.ID())
	assert.NotNil(t, sc.Current())
}
