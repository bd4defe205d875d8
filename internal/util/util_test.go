package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 10))
	assert.Equal(t, 10.0, Clamp(11, 0, 10))
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 0.2, Lerp(0.2, 1.0, 0))
	assert.Equal(t, 1.0, Lerp(0.2, 1.0, 1))
	assert.InDelta(t, 0.6, Lerp(0.2, 1.0, 0.5), 1e-9)
	// t outside [0,1] clamps instead of extrapolating
	assert.Equal(t, 1.0, Lerp(0.2, 1.0, 4))
}

func TestSafePercent(t *testing.T) {
	assert.Equal(t, 0.5, SafePercent(50, 100))
	assert.Equal(t, 1.0, SafePercent(10, 0), "zero max reads as full")
	assert.Equal(t, 1.0, SafePercent(10, -3))
	assert.Equal(t, 1.0, SafePercent(200, 100), "clamped above")
	assert.Equal(t, 0.0, SafePercent(-5, 100), "clamped below")
}
