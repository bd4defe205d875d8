package convert

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragsim/vitals/pkg/core"
)

func TestCoreToDamageEvent(t *testing.T) {
	now := time.Now()
	got := CoreToDamageEvent(core.DamageEvent{
		SessionID:    3,
		Tick:         120,
		Time:         now,
		CharacterID:  7,
		Limb:         "leftForearm",
		DamageType:   "slash",
		Amount:       10,
		ActualDamage: 8.5,
		HitPosition:  core.Position3D{X: 1, Y: 2, Z: 3},
		IsCritical:   true,
		ContactName:  "blade",
	})

	assert.Equal(t, uint(3), got.SessionID)
	assert.Equal(t, uint(120), got.Tick)
	assert.Equal(t, uint16(7), got.EntityID)
	assert.Equal(t, "leftForearm", got.Limb)
	assert.Equal(t, 8.5, got.ActualDamage)
	assert.Equal(t, 1.0, got.HitPosition.X)
	assert.Equal(t, 3.0, got.HitPosition.Z)
	assert.True(t, got.IsCritical)
}

func TestCoreToVitalsSampleMarshalsLimbMaps(t *testing.T) {
	got := CoreToVitalsSample(core.VitalsSample{
		SessionID:   1,
		CharacterID: 2,
		BloodLevel:  80,
		BloodMax:    100,
		LimbHealth:  map[string]float64{"head": 0.5},
		LimbBleed:   nil,
	})

	var limbHealth map[string]float64
	require.NoError(t, json.Unmarshal(got.LimbHealth, &limbHealth))
	assert.Equal(t, 0.5, limbHealth["head"])
	assert.Equal(t, "{}", string(got.LimbBleed), "empty map stores as empty JSON object")
}

func TestCoreToSessionAndCharacter(t *testing.T) {
	s := CoreToSession(core.Session{Name: "duel", Seed: 42, TickRate: 20})
	assert.Equal(t, "duel", s.Name)
	assert.Equal(t, int64(42), s.Seed)

	c := CoreToCharacter(core.CharacterInfo{ID: 9, SessionID: 4, Name: "bob", Team: "red"})
	assert.Equal(t, uint16(9), c.EntityID)
	assert.Equal(t, uint(4), c.SessionID)
	assert.Equal(t, "red", c.Team)
}

func TestCoreToDeathAndConsumable(t *testing.T) {
	d := CoreToDeathEvent(core.DeathEvent{CharacterID: 1, Cause: core.DeathCauseLimb, Limb: "head"})
	assert.Equal(t, "limb", d.Cause)
	assert.Equal(t, "head", d.Limb)

	ce := CoreToConsumableEvent(core.ConsumableEvent{Item: "bandage", Treated: true, HealApplied: 15})
	assert.Equal(t, "bandage", ce.Item)
	assert.True(t, ce.Treated)
	assert.Equal(t, 15.0, ce.HealApplied)
}
