package health

import (
	"testing"

	"github.com/ragsim/vitals/internal/anatomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimb(max, mult float64) *Limb {
	return NewLimb(anatomy.Torso, anatomy.Profile{
		MaxHealth:        max,
		DamageMultiplier: mult,
		BleedMultiplier:  1,
		AffectsCharacter: true,
	})
}

func TestTakeDamageClampsAndReturnsApplied(t *testing.T) {
	l := testLimb(100, 1)

	applied := l.TakeDamage(30)
	assert.Equal(t, 30.0, applied)
	assert.Equal(t, 70.0, l.Current())

	// overkill clamps at zero and reports only what was lost
	applied = l.TakeDamage(500)
	assert.Equal(t, 70.0, applied)
	assert.Equal(t, 0.0, l.Current())
	assert.True(t, l.IsDead())
}

func TestTakeDamageAppliesMultiplier(t *testing.T) {
	l := testLimb(100, 2)
	applied := l.TakeDamage(10)
	assert.Equal(t, 20.0, applied)
	assert.Equal(t, 80.0, l.Current())
}

func TestNegativeDamageDoesNotHeal(t *testing.T) {
	l := testLimb(100, 1)
	l.TakeDamage(40)

	applied := l.TakeDamage(-25)
	assert.Equal(t, 0.0, applied)
	assert.Equal(t, 60.0, l.Current())
}

func TestHealClampsToMax(t *testing.T) {
	l := testLimb(100, 1)
	l.TakeDamage(30)

	healed := l.Heal(50)
	assert.Equal(t, 30.0, healed)
	assert.Equal(t, 100.0, l.Current())

	assert.Equal(t, 0.0, l.Heal(0))
	assert.Equal(t, 0.0, l.Heal(-5))
}

func TestHealthPercentGuardsZeroMax(t *testing.T) {
	l := testLimb(100, 1)
	l.TakeDamage(75)
	assert.InDelta(t, 0.25, l.HealthPercent(), 1e-9)

	degenerate := testLimb(0, 1)
	assert.Equal(t, 1.0, degenerate.HealthPercent())
}

func TestChangeNotification(t *testing.T) {
	l := testLimb(100, 1)
	var gotCurrent, gotMax float64
	calls := 0
	l.SetChangeFunc(func(current, max float64) {
		gotCurrent, gotMax = current, max
		calls++
	})

	l.TakeDamage(25)
	require.Equal(t, 1, calls)
	assert.Equal(t, 75.0, gotCurrent)
	assert.Equal(t, 100.0, gotMax)

	l.Heal(10)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 85.0, gotCurrent)
}

func TestHealDoesNotClearWoundRecord(t *testing.T) {
	l := testLimb(100, 1)
	l.TakeDamage(50)
	l.Record(anatomy.Stab)

	l.Heal(100)
	assert.Equal(t, 100.0, l.Current())
	assert.True(t, l.Recorded().Has(anatomy.Stab), "record persists through full heal")
}

func TestResetClearsEverything(t *testing.T) {
	l := testLimb(100, 1)
	l.TakeDamage(80)
	l.Record(anatomy.Slash)

	l.Reset()
	assert.Equal(t, 100.0, l.Current())
	assert.True(t, l.Recorded().Empty())
}

func TestInvariantHealthStaysInRange(t *testing.T) {
	l := testLimb(50, 1.5)
	ops := []func(){
		func() { l.TakeDamage(10) },
		func() { l.Heal(7) },
		func() { l.TakeDamage(200) },
		func() { l.Heal(500) },
		func() { l.TakeDamage(-3) },
	}
	for i := 0; i < 200; i++ {
		ops[i%len(ops)]()
		require.GreaterOrEqual(t, l.Current(), 0.0)
		require.LessOrEqual(t, l.Current(), l.Max())
	}
}
