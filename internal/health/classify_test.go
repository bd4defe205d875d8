package health

import (
	"testing"

	"github.com/ragsim/vitals/internal/anatomy"
	"github.com/stretchr/testify/assert"
)

func TestSeverityTier(t *testing.T) {
	th := Thresholds{Damaged: 0.75, Critical: 0.35, HeavyBash: 0.3}

	tests := []struct {
		damage float64
		want   int
	}{
		{damage: 0, want: SeverityMinor},
		{damage: 20, want: SeverityMinor},   // 80%
		{damage: 25, want: SeverityModerate}, // exactly 75%
		{damage: 50, want: SeverityModerate}, // 50%
		{damage: 65, want: SeverityBad},      // exactly 35%
		{damage: 90, want: SeverityBad},      // 10%
	}
	for _, tt := range tests {
		l := testLimb(100, 1)
		l.TakeDamage(tt.damage)
		assert.Equal(t, tt.want, th.SeverityTier(l), "damage=%v", tt.damage)
	}

	assert.Equal(t, SeverityMinor, th.SeverityTier(nil))
}

func TestHeavilyBashed(t *testing.T) {
	th := DefaultThresholds()

	// Scenario A: 80 blunt damage on a 100-max limb -> 20% <= 30%
	l := testLimb(100, 1)
	l.TakeDamage(80)
	l.Record(anatomy.Blunt)
	assert.True(t, th.IsHeavilyBashed(l))
	assert.True(t, th.ShouldBleed(l))

	// Scenario B: 50 blunt damage -> 50% > 30%, no bleed
	l = testLimb(100, 1)
	l.TakeDamage(50)
	l.Record(anatomy.Blunt)
	assert.False(t, th.IsHeavilyBashed(l))
	assert.False(t, th.ShouldBleed(l))

	// a stab disqualifies heavy-bash no matter how low health goes
	l = testLimb(100, 1)
	l.TakeDamage(95)
	l.Record(anatomy.Blunt)
	l.Record(anatomy.Stab)
	assert.False(t, th.IsHeavilyBashed(l))
	assert.True(t, th.ShouldBleed(l))
}

func TestSharpWoundsAlwaysBleed(t *testing.T) {
	th := DefaultThresholds()

	// Scenario C: 10 stab damage leaves 90% health, still bleeds
	l := testLimb(100, 1)
	l.TakeDamage(10)
	l.Record(anatomy.Stab)
	assert.True(t, th.ShouldBleed(l))

	// fully healed stab wound remains bleed-eligible (record persists)
	l.Heal(100)
	assert.True(t, th.ShouldBleed(l))
}

func TestUndamagedLimbDoesNotBleed(t *testing.T) {
	th := DefaultThresholds()
	l := testLimb(100, 1)
	assert.False(t, th.ShouldBleed(l))
	assert.False(t, th.IsHeavilyBashed(l))
	assert.False(t, th.ShouldBleed(nil))
}

func TestGenericOnlyHeavyDamageBleeds(t *testing.T) {
	th := DefaultThresholds()
	l := testLimb(100, 1)
	l.TakeDamage(75)
	l.Record(anatomy.Generic)
	assert.True(t, th.ShouldBleed(l), "generic-only damage below threshold bleeds")
	assert.True(t, th.IsHeavilyBashed(l))
}
