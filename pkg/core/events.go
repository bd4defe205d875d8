// pkg/core/events.go
package core

import "time"

// DamageEvent records one application of weapon damage to a limb.
// ActualDamage is the post-multiplier, post-clamp amount the limb lost,
// which may be less than Amount*multiplier when the limb was nearly dead.
type DamageEvent struct {
	SessionID    uint
	Tick         uint
	Time         time.Time
	CharacterID  uint16
	Limb         string
	DamageType   string
	Amount       float64
	ActualDamage float64
	HitPosition  Position3D
	Direction    Position3D
	IsCritical   bool
	ContactName  string // collider/transform name reported by the combat layer
	Redirected   bool   // hit was redirected off an ambiguous torso contact
}

// BloodSpawnEvent records one discrete blood unit emitted by the bleed
// accumulator. Position is the limb position at the time of the spawn.
type BloodSpawnEvent struct {
	SessionID   uint
	Tick        uint
	Time        time.Time
	CharacterID uint16
	Limb        string
	Position    Position3D
	Intensity   float64
}

// Death causes, recorded on DeathEvent.
const (
	DeathCauseLimb      = "limb"
	DeathCauseBloodLoss = "bloodloss"
)

// DeathEvent records a character death. Limb is set only for limb-zero
// deaths and names the limb whose depletion triggered it.
type DeathEvent struct {
	SessionID   uint
	Tick        uint
	Time        time.Time
	CharacterID uint16
	Cause       string
	Limb        string
}

// ConsumableEvent records one use of a healing/blood-restoration item.
type ConsumableEvent struct {
	SessionID   uint
	Tick        uint
	Time        time.Time
	CharacterID uint16
	Limb        string
	Item        string
	Treated     bool // wound gate passed and healing was applied
	HealApplied float64
	BloodGiven  float64
}

// VitalsSample is a periodic snapshot of a character's vital state.
type VitalsSample struct {
	SessionID      uint
	Tick           uint
	Time           time.Time
	CharacterID    uint16
	BloodLevel     float64
	BloodMax       float64
	Health         float64
	HealthMax      float64
	TotalIntensity float64
	LimbHealth     map[string]float64 // limb name -> health percentage
	LimbBleed      map[string]float64 // limb name -> bleed intensity
}
