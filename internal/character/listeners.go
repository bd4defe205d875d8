package character

import (
	"github.com/ragsim/vitals/internal/anatomy"
	"github.com/ragsim/vitals/pkg/core"
)

// DamageDealt is the payload delivered to damage listeners. UI and VFX
// collaborators depend on every field, so the shape is kept stable.
type DamageDealt struct {
	HitPosition  core.Position3D
	Direction    core.Position3D
	ActualDamage float64
	Type         anatomy.DamageType
	Limb         anatomy.LimbID
	IsCritical   bool
	ContactName  string
	Redirected   bool
}

// BloodSpawn is the payload delivered when the bleed accumulator fires.
type BloodSpawn struct {
	Limb      anatomy.LimbID
	Position  core.Position3D
	Intensity float64
}

// listeners is the per-character observer registry. All notification
// delivery is synchronous on the simulation tick; listeners must not block.
type listeners struct {
	limbHealth []func(limb anatomy.LimbID, current, max float64)
	charHealth []func(current, max float64)
	blood      []func(current, max float64)
	damage     []func(DamageDealt)
	bloodSpawn []func(BloodSpawn)
	death      []func()
	bloodDeath []func()
}

// OnLimbHealthChanged subscribes to per-limb health changes.
func (c *Character) OnLimbHealthChanged(fn func(limb anatomy.LimbID, current, max float64)) {
	c.listeners.limbHealth = append(c.listeners.limbHealth, fn)
}

// OnCharacterHealthChanged subscribes to aggregate health changes.
func (c *Character) OnCharacterHealthChanged(fn func(current, max float64)) {
	c.listeners.charHealth = append(c.listeners.charHealth, fn)
}

// OnBloodLevelChanged subscribes to blood level changes.
func (c *Character) OnBloodLevelChanged(fn func(current, max float64)) {
	c.listeners.blood = append(c.listeners.blood, fn)
}

// OnDamageDealt subscribes to damage events.
func (c *Character) OnDamageDealt(fn func(DamageDealt)) {
	c.listeners.damage = append(c.listeners.damage, fn)
}

// OnBloodSpawn subscribes to discrete blood unit spawns.
func (c *Character) OnBloodSpawn(fn func(BloodSpawn)) {
	c.listeners.bloodSpawn = append(c.listeners.bloodSpawn, fn)
}

// OnDeath subscribes to aggregate (limb) death.
func (c *Character) OnDeath(fn func()) {
	c.listeners.death = append(c.listeners.death, fn)
}

// OnDeathFromBloodLoss subscribes to blood-loss death.
func (c *Character) OnDeathFromBloodLoss(fn func()) {
	c.listeners.bloodDeath = append(c.listeners.bloodDeath, fn)
}

func (c *Character) emitLimbHealth(limb anatomy.LimbID, current, max float64) {
	for _, fn := range c.listeners.limbHealth {
		fn(limb, current, max)
	}
}

func (c *Character) emitCharHealth(current, max float64) {
	for _, fn := range c.listeners.charHealth {
		fn(current, max)
	}
}

func (c *Character) emitBlood(current, max float64) {
	for _, fn := range c.listeners.blood {
		fn(current, max)
	}
}

func (c *Character) emitDamage(d DamageDealt) {
	for _, fn := range c.listeners.damage {
		fn(d)
	}
}

func (c *Character) emitBloodSpawn(s BloodSpawn) {
	for _, fn := range c.listeners.bloodSpawn {
		fn(s)
	}
}

func (c *Character) emitDeath() {
	for _, fn := range c.listeners.death {
		fn()
	}
}

func (c *Character) emitBloodDeath() {
	for _, fn := range c.listeners.bloodDeath {
		fn()
	}
}
