// Package convert provides functions to convert core event types into
// GORM model rows.
package convert

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/ragsim/vitals/internal/model"
	"github.com/ragsim/vitals/pkg/core"
)

func position(p core.Position3D) model.Position {
	return model.Position{X: p.X, Y: p.Y, Z: p.Z}
}

// mapToJSON converts a limb-keyed float map to datatypes.JSON for storage.
func mapToJSON(m map[string]float64) datatypes.JSON {
	if len(m) == 0 {
		return datatypes.JSON("{}")
	}
	data, _ := json.Marshal(m)
	return datatypes.JSON(data)
}

// CoreToSession converts a core.Session to a GORM model.Session.
func CoreToSession(s core.Session) model.Session {
	return model.Session{
		Name:         s.Name,
		ScenarioName: s.ScenarioName,
		Seed:         s.Seed,
		TickRate:     s.TickRate,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
	}
}

// CoreToCharacter converts a core.CharacterInfo to a GORM model.Character.
func CoreToCharacter(c core.CharacterInfo) model.Character {
	return model.Character{
		SessionID: c.SessionID,
		EntityID:  c.ID,
		Name:      c.Name,
		Team:      c.Team,
		IsPlayer:  c.IsPlayer,
		SpawnTick: c.SpawnTick,
		SpawnTime: c.SpawnTime,
	}
}

// CoreToDamageEvent converts a core.DamageEvent to its GORM row.
func CoreToDamageEvent(e core.DamageEvent) model.DamageEvent {
	return model.DamageEvent{
		SessionID:    e.SessionID,
		Tick:         e.Tick,
		Time:         e.Time,
		EntityID:     e.CharacterID,
		Limb:         e.Limb,
		DamageType:   e.DamageType,
		Amount:       e.Amount,
		ActualDamage: e.ActualDamage,
		HitPosition:  position(e.HitPosition),
		Direction:    position(e.Direction),
		IsCritical:   e.IsCritical,
		ContactName:  e.ContactName,
		Redirected:   e.Redirected,
	}
}

// CoreToBloodSpawnEvent converts a core.BloodSpawnEvent to its GORM row.
func CoreToBloodSpawnEvent(e core.BloodSpawnEvent) model.BloodSpawnEvent {
	return model.BloodSpawnEvent{
		SessionID: e.SessionID,
		Tick:      e.Tick,
		Time:      e.Time,
		EntityID:  e.CharacterID,
		Limb:      e.Limb,
		Position:  position(e.Position),
		Intensity: e.Intensity,
	}
}

// CoreToDeathEvent converts a core.DeathEvent to its GORM row.
func CoreToDeathEvent(e core.DeathEvent) model.DeathEvent {
	return model.DeathEvent{
		SessionID: e.SessionID,
		Tick:      e.Tick,
		Time:      e.Time,
		EntityID:  e.CharacterID,
		Cause:     e.Cause,
		Limb:      e.Limb,
	}
}

// CoreToConsumableEvent converts a core.ConsumableEvent to its GORM row.
func CoreToConsumableEvent(e core.ConsumableEvent) model.ConsumableEvent {
	return model.ConsumableEvent{
		SessionID:   e.SessionID,
		Tick:        e.Tick,
		Time:        e.Time,
		EntityID:    e.CharacterID,
		Limb:        e.Limb,
		Item:        e.Item,
		Treated:     e.Treated,
		HealApplied: e.HealApplied,
		BloodGiven:  e.BloodGiven,
	}
}

// CoreToVitalsSample converts a core.VitalsSample to its GORM row.
func CoreToVitalsSample(s core.VitalsSample) model.VitalsSample {
	return model.VitalsSample{
		SessionID:      s.SessionID,
		Tick:           s.Tick,
		Time:           s.Time,
		EntityID:       s.CharacterID,
		BloodLevel:     s.BloodLevel,
		BloodMax:       s.BloodMax,
		Health:         s.Health,
		HealthMax:      s.HealthMax,
		TotalIntensity: s.TotalIntensity,
		LimbHealth:     mapToJSON(s.LimbHealth),
		LimbBleed:      mapToJSON(s.LimbBleed),
	}
}
