package character

import (
	"math/rand"
	"testing"

	"github.com/ragsim/vitals/internal/anatomy"
	"github.com/ragsim/vitals/internal/consumable"
	"github.com/ragsim/vitals/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCharacter(t *testing.T) *Character {
	t.Helper()
	return New(core.CharacterInfo{ID: 1, Name: "dummy"}, DefaultConfig(), rand.New(rand.NewSource(7)))
}

func TestApplyDamageRoutesAndNotifies(t *testing.T) {
	c := newTestCharacter(t)

	var dealt []DamageDealt
	c.OnDamageDealt(func(d DamageDealt) { dealt = append(dealt, d) })

	var limbEvents int
	c.OnLimbHealthChanged(func(limb anatomy.LimbID, current, max float64) {
		limbEvents++
		assert.Equal(t, anatomy.LeftForearm, limb)
	})

	res := c.ApplyDamage(DamageRequest{
		Limb:        anatomy.LeftForearm,
		Amount:      10,
		Type:        anatomy.Slash,
		HitPosition: core.Position3D{X: 1},
		Direction:   core.Position3D{Z: -1},
		ContactName: "blade",
	})

	assert.Equal(t, anatomy.LeftForearm, res.Limb)
	assert.Equal(t, 10.0, res.ActualDamage)
	assert.False(t, res.Redirected)

	require.Len(t, dealt, 1)
	assert.Equal(t, anatomy.Slash, dealt[0].Type)
	assert.Equal(t, "blade", dealt[0].ContactName)
	assert.Equal(t, core.Position3D{X: 1}, dealt[0].HitPosition)
	assert.Equal(t, 1, limbEvents)

	assert.True(t, c.RecordedTypes(anatomy.LeftForearm).Has(anatomy.Slash))
}

func TestHeadDamageAmplified(t *testing.T) {
	c := newTestCharacter(t)
	res := c.ApplyDamage(DamageRequest{Limb: anatomy.Head, Amount: 10, Type: anatomy.Blunt})
	assert.Equal(t, 20.0, res.ActualDamage, "head profile doubles damage")
}

func TestAmbiguousContactRedirects(t *testing.T) {
	c := newTestCharacter(t)

	hits := map[anatomy.LimbID]int{}
	for i := 0; i < 500; i++ {
		res := c.ApplyDamage(DamageRequest{
			Limb:             anatomy.Torso,
			Amount:           0.01,
			Type:             anatomy.Generic,
			AmbiguousContact: true,
		})
		hits[res.Limb]++
	}

	assert.Greater(t, hits[anatomy.Torso], 0, "torso keeps the bulk of ambiguous hits")
	assert.Greater(t, len(hits), 3, "redirects spread over multiple limbs")
}

func TestLimbDeathTriggersCharacterDeathOnce(t *testing.T) {
	c := newTestCharacter(t)

	deaths := 0
	c.OnDeath(func() { deaths++ })

	// hands don't affect character health
	c.ApplyDamage(DamageRequest{Limb: anatomy.LeftHand, Amount: 1000, Type: anatomy.Blunt})
	assert.False(t, c.Dead())

	c.ApplyDamage(DamageRequest{Limb: anatomy.Head, Amount: 1000, Type: anatomy.Blunt})
	assert.True(t, c.Dead())
	assert.True(t, c.DeadFromLimb())
	assert.False(t, c.DeadFromBloodLoss())
	assert.Equal(t, 1, deaths)

	// further lethal damage does not re-fire
	c.ApplyDamage(DamageRequest{Limb: anatomy.Torso, Amount: 1000, Type: anatomy.Blunt})
	assert.Equal(t, 1, deaths)
}

func TestAggregateHealthSumsContributingLimbs(t *testing.T) {
	c := newTestCharacter(t)
	cur, max := c.AggregateHealth()
	assert.Equal(t, cur, max)
	assert.Equal(t, 35.0+25.0+100.0, max, "head+neck+torso contribute by default")

	var last float64 = -1
	c.OnCharacterHealthChanged(func(current, _ float64) { last = current })

	c.ApplyDamage(DamageRequest{Limb: anatomy.Torso, Amount: 40, Type: anatomy.Stab})
	assert.Equal(t, max-40, last)

	// non-contributing limb damage does not move the aggregate
	last = -1
	c.ApplyDamage(DamageRequest{Limb: anatomy.LeftFoot, Amount: 5, Type: anatomy.Blunt})
	assert.Equal(t, -1.0, last)
}

func TestBleedToDeathFromStabWound(t *testing.T) {
	c := newTestCharacter(t)

	var spawns int
	c.OnBloodSpawn(func(s BloodSpawn) {
		spawns++
		assert.Equal(t, anatomy.LeftThigh, s.Limb)
		assert.Greater(t, s.Intensity, 0.0)
	})
	bloodDeaths := 0
	c.OnDeathFromBloodLoss(func() { bloodDeaths++ })

	// deep thigh stab: the thigh does not affect character health, so the
	// only way out is exsanguination
	c.ApplyDamage(DamageRequest{Limb: anatomy.LeftThigh, Amount: 40, Type: anatomy.Stab})
	require.True(t, c.RecordedTypes(anatomy.LeftThigh).HasSharp())

	for i := 0; i < 100000 && !c.Dead(); i++ {
		c.Step(0.05)
	}

	assert.True(t, c.DeadFromBloodLoss())
	assert.False(t, c.DeadFromLimb())
	assert.Equal(t, 1, bloodDeaths)
	assert.Greater(t, spawns, 0)
	blood, _ := c.Blood()
	assert.Equal(t, 0.0, blood)
}

func TestMotorScaleWeakensWithDamage(t *testing.T) {
	c := newTestCharacter(t)
	healthy := c.MotorScale(anatomy.RightThigh)
	assert.InDelta(t, 1.0, healthy, 1e-9)

	c.ApplyDamage(DamageRequest{Limb: anatomy.RightThigh, Amount: 25, Type: anatomy.Blunt})
	wounded := c.MotorScale(anatomy.RightThigh)
	assert.Less(t, wounded, healthy)
	assert.GreaterOrEqual(t, wounded, 0.01)

	// missing limb reads neutral
	assert.InDelta(t, 1.0, c.MotorScale(anatomy.LimbCount), 1e-9)
}

func TestUseConsumable(t *testing.T) {
	c := newTestCharacter(t)
	bandage := consumable.Item{Name: "bandage", HealAmount: 15, StopsBleeding: true}

	// light wound: always treatable
	c.ApplyDamage(DamageRequest{Limb: anatomy.LeftCalf, Amount: 5, Type: anatomy.Slash})
	treated, healed := c.UseConsumable(anatomy.LeftCalf, bandage)
	assert.True(t, treated)
	assert.Equal(t, 5.0, healed)

	// blood restoration applies regardless of the wound gate
	c.ApplyDamage(DamageRequest{Limb: anatomy.Torso, Amount: 30, Type: anatomy.Stab})
	for i := 0; i < 100; i++ {
		c.Step(0.1)
	}
	blood, max := c.Blood()
	require.Less(t, blood, max)

	transfusion := consumable.Item{Name: "transfusion", BloodAmount: max}
	c.UseConsumable(anatomy.Torso, transfusion)
	blood, _ = c.Blood()
	assert.Equal(t, max, blood)
}

func TestRespawnResetsEverything(t *testing.T) {
	c := newTestCharacter(t)
	c.ApplyDamage(DamageRequest{Limb: anatomy.Head, Amount: 1000, Type: anatomy.Slash})
	require.True(t, c.Dead())

	c.Respawn()
	assert.False(t, c.Dead())
	assert.Equal(t, 1.0, c.HealthPercent(anatomy.Head))
	assert.True(t, c.RecordedTypes(anatomy.Head).Empty())
	blood, max := c.Blood()
	assert.Equal(t, max, blood)
}

func TestQueriesOnMissingLimbAreNeutral(t *testing.T) {
	c := newTestCharacter(t)
	bad := anatomy.LimbCount
	assert.Equal(t, 1.0, c.HealthPercent(bad))
	assert.Equal(t, 0.0, c.BleedIntensity(bad))
	assert.False(t, c.IsHeavilyBashed(bad))
	assert.True(t, c.RecordedTypes(bad).Empty())

	res := c.ApplyDamage(DamageRequest{Limb: bad, Amount: 10, Type: anatomy.Stab})
	assert.Equal(t, 0.0, res.ActualDamage)
}
