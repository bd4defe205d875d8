// Package model holds the gorm table structures the recording backends
// persist. The simulation itself never touches these; conversion from the
// core event types happens in model/convert.
package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DatabaseModels lists every struct here that maps to a table, in
// migration order.
var DatabaseModels = []interface{}{
	&RecorderInfo{},
	&Session{},
	&Character{},
	&DamageEvent{},
	&BloodSpawnEvent{},
	&DeathEvent{},
	&ConsumableEvent{},
	&VitalsSample{},
}

// RecorderInfo contains instance information written once at setup.
type RecorderInfo struct {
	gorm.Model
	InstanceName string `json:"instanceName" gorm:"size:127"`
	Description  string `json:"description" gorm:"size:255"`
	Version      string `json:"version" gorm:"size:64"`
}

func (*RecorderInfo) TableName() string {
	return "recorder_infos"
}

// Position is a character-space point embedded into event rows.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Session is the main model for one scenario run.
type Session struct {
	gorm.Model
	Name         string    `json:"name" gorm:"size:200"`
	ScenarioName string    `json:"scenarioName" gorm:"size:200"`
	Seed         int64     `json:"seed"`
	TickRate     float64   `json:"tickRate"`
	StartTime    time.Time `json:"startTime" gorm:"index:idx_session_start"`
	EndTime      time.Time `json:"endTime"`

	Characters       []Character
	DamageEvents     []DamageEvent
	BloodSpawnEvents []BloodSpawnEvent
	DeathEvents      []DeathEvent
	ConsumableEvents []ConsumableEvent
	VitalsSamples    []VitalsSample
}

func (*Session) TableName() string {
	return "sessions"
}

// Character is the per-session registration row for one simulated entity.
type Character struct {
	gorm.Model
	SessionID uint    `json:"sessionId" gorm:"index:idx_character_session_id"`
	Session   Session `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`

	EntityID  uint16    `json:"entityId" gorm:"index:idx_character_entity_id"`
	Name      string    `json:"name" gorm:"size:127"`
	Team      string    `json:"team" gorm:"size:64"`
	IsPlayer  bool      `json:"isPlayer"`
	SpawnTick uint      `json:"spawnTick"`
	SpawnTime time.Time `json:"spawnTime"`
}

func (*Character) TableName() string {
	return "characters"
}

// DamageEvent is one application of damage to a limb.
type DamageEvent struct {
	gorm.Model
	SessionID uint    `json:"sessionId" gorm:"index:idx_damage_session_id"`
	Session   Session `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`

	Tick         uint      `json:"tick" gorm:"index:idx_damage_tick"`
	Time         time.Time `json:"time"`
	EntityID     uint16    `json:"entityId"`
	Limb         string    `json:"limb" gorm:"size:32"`
	DamageType   string    `json:"damageType" gorm:"size:32"`
	Amount       float64   `json:"amount"`
	ActualDamage float64   `json:"actualDamage"`
	HitPosition  Position  `json:"hitPosition" gorm:"embedded;embeddedPrefix:hit_"`
	Direction    Position  `json:"direction" gorm:"embedded;embeddedPrefix:dir_"`
	IsCritical   bool      `json:"isCritical"`
	ContactName  string    `json:"contactName" gorm:"size:127"`
	Redirected   bool      `json:"redirected"`
}

func (*DamageEvent) TableName() string {
	return "damage_events"
}

// BloodSpawnEvent is one discrete blood unit emitted by a bleeding limb.
type BloodSpawnEvent struct {
	gorm.Model
	SessionID uint    `json:"sessionId" gorm:"index:idx_bloodspawn_session_id"`
	Session   Session `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`

	Tick      uint      `json:"tick" gorm:"index:idx_bloodspawn_tick"`
	Time      time.Time `json:"time"`
	EntityID  uint16    `json:"entityId"`
	Limb      string    `json:"limb" gorm:"size:32"`
	Position  Position  `json:"position" gorm:"embedded;embeddedPrefix:pos_"`
	Intensity float64   `json:"intensity"`
}

func (*BloodSpawnEvent) TableName() string {
	return "blood_spawn_events"
}

// DeathEvent records a character death and its cause.
type DeathEvent struct {
	gorm.Model
	SessionID uint    `json:"sessionId" gorm:"index:idx_death_session_id"`
	Session   Session `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`

	Tick     uint      `json:"tick"`
	Time     time.Time `json:"time"`
	EntityID uint16    `json:"entityId"`
	Cause    string    `json:"cause" gorm:"size:32"`
	Limb     string    `json:"limb" gorm:"size:32"`
}

func (*DeathEvent) TableName() string {
	return "death_events"
}

// ConsumableEvent records one use of a healing item.
type ConsumableEvent struct {
	gorm.Model
	SessionID uint    `json:"sessionId" gorm:"index:idx_consumable_session_id"`
	Session   Session `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`

	Tick        uint      `json:"tick"`
	Time        time.Time `json:"time"`
	EntityID    uint16    `json:"entityId"`
	Limb        string    `json:"limb" gorm:"size:32"`
	Item        string    `json:"item" gorm:"size:127"`
	Treated     bool      `json:"treated"`
	HealApplied float64   `json:"healApplied"`
	BloodGiven  float64   `json:"bloodGiven"`
}

func (*ConsumableEvent) TableName() string {
	return "consumable_events"
}

// VitalsSample is a periodic vitals snapshot. Per-limb breakdowns are
// stored as JSON maps keyed by limb name.
type VitalsSample struct {
	gorm.Model
	SessionID uint    `json:"sessionId" gorm:"index:idx_vitals_session_id"`
	Session   Session `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`

	Tick           uint           `json:"tick" gorm:"index:idx_vitals_tick"`
	Time           time.Time      `json:"time"`
	EntityID       uint16         `json:"entityId"`
	BloodLevel     float64        `json:"bloodLevel"`
	BloodMax       float64        `json:"bloodMax"`
	Health         float64        `json:"health"`
	HealthMax      float64        `json:"healthMax"`
	TotalIntensity float64        `json:"totalIntensity"`
	LimbHealth     datatypes.JSON `json:"limbHealth"`
	LimbBleed      datatypes.JSON `json:"limbBleed"`
}

func (*VitalsSample) TableName() string {
	return "vitals_samples"
}
