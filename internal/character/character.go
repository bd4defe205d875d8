// Package character aggregates limbs, the bleed engine and the motor
// feedback into one simulated character, and routes incoming weapon damage
// to the right limb. There is exactly one writer per character per tick;
// nothing in this package locks.
package character

import (
	"math/rand"

	"github.com/ragsim/vitals/internal/anatomy"
	"github.com/ragsim/vitals/internal/bleed"
	"github.com/ragsim/vitals/internal/consumable"
	"github.com/ragsim/vitals/internal/health"
	"github.com/ragsim/vitals/internal/motor"
	"github.com/ragsim/vitals/internal/util"
	"github.com/ragsim/vitals/pkg/core"
)

// Config bundles the tuning for one character. Zero-value fields fall back
// to package defaults.
type Config struct {
	// Profiles overrides per-limb tuning; missing limbs use anatomy defaults.
	Profiles map[anatomy.LimbID]anatomy.Profile

	Thresholds health.Thresholds
	Bleed      bleed.Config
	Motor      motor.Config

	// Redirect is the ambiguous-contact table; nil installs the default.
	Redirect *WeightTable
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Thresholds: health.DefaultThresholds(),
		Bleed:      bleed.DefaultConfig(),
		Motor:      motor.DefaultConfig(),
	}
}

// DamageRequest is one inbound damage application from the combat layer.
type DamageRequest struct {
	Limb        anatomy.LimbID
	Amount      float64
	Type        anatomy.DamageType
	HitPosition core.Position3D
	Direction   core.Position3D
	IsCritical  bool
	ContactName string

	// AmbiguousContact marks a torso-collider hit that may be redirected
	// to another limb through the weight table.
	AmbiguousContact bool
}

// DamageResult reports where the damage landed and how much applied.
type DamageResult struct {
	Limb         anatomy.LimbID
	ActualDamage float64
	Redirected   bool
}

// Character is one simulated humanoid.
type Character struct {
	info     core.CharacterInfo
	position core.Position3D

	limbs      [anatomy.LimbCount]*health.Limb
	sources    []bleed.Source
	thresholds health.Thresholds
	engine     *bleed.Engine
	motorCfg   motor.Config
	policy     *consumable.Policy
	redirect   *WeightTable
	rng        *rand.Rand

	listeners listeners

	deadFromLimb bool
	destroyed    bool
}

// New creates a character at full health.
func New(info core.CharacterInfo, cfg Config, rng *rand.Rand) *Character {
	if rng == nil {
		rng = rand.New(rand.NewSource(int64(info.ID)))
	}
	if cfg.Redirect == nil {
		cfg.Redirect = DefaultWeightTable()
	}
	if cfg.Thresholds == (health.Thresholds{}) {
		cfg.Thresholds = health.DefaultThresholds()
	}
	if cfg.Bleed == (bleed.Config{}) {
		cfg.Bleed = bleed.DefaultConfig()
	}
	if cfg.Motor == (motor.Config{}) {
		cfg.Motor = motor.DefaultConfig()
	}

	c := &Character{
		info:       info,
		thresholds: cfg.Thresholds,
		engine:     bleed.NewEngine(cfg.Bleed),
		motorCfg:   cfg.Motor,
		redirect:   cfg.Redirect,
		rng:        rng,
	}
	c.policy = consumable.NewPolicy(cfg.Thresholds, rng.Float64)

	for _, id := range anatomy.AllLimbs {
		profile, ok := cfg.Profiles[id]
		if !ok {
			profile = anatomy.DefaultProfile(id)
		}
		limb := health.NewLimb(id, profile)
		limbID := id
		limb.SetChangeFunc(func(current, max float64) {
			c.emitLimbHealth(limbID, current, max)
			if c.limbs[limbID] != nil && c.limbs[limbID].AffectsCharacter() {
				c.emitCharHealth(c.AggregateHealth())
			}
		})
		c.limbs[id] = limb
		c.sources = append(c.sources, &limbSource{c: c, l: limb})
	}

	c.engine.SetSpawnFunc(func(limb anatomy.LimbID, intensity float64) {
		c.emitBloodSpawn(BloodSpawn{
			Limb:      limb,
			Position:  c.LimbPosition(limb),
			Intensity: intensity,
		})
	})
	c.engine.SetBloodChangedFunc(c.emitBlood)
	c.engine.SetDeathFunc(c.emitBloodDeath)

	return c
}

// limbSource adapts a limb to the bleed engine's Source interface.
type limbSource struct {
	c *Character
	l *health.Limb
}

func (s *limbSource) ID() anatomy.LimbID       { return s.l.ID() }
func (s *limbSource) HealthPercent() float64   { return s.l.HealthPercent() }
func (s *limbSource) ShouldBleed() bool        { return s.c.thresholds.ShouldBleed(s.l) }
func (s *limbSource) BleedMultiplier() float64 { return s.l.Profile().BleedMultiplier }

// ApplyBleedDamage routes damage-over-time through the normal damage path
// as Generic damage, so listeners fire and death conditions are checked.
func (s *limbSource) ApplyBleedDamage(amount float64) {
	s.c.applyToLimb(s.l.ID(), amount, anatomy.Generic)
}

// Info returns the character's identity.
func (c *Character) Info() core.CharacterInfo { return c.info }

// Position returns the character's base position.
func (c *Character) Position() core.Position3D { return c.position }

// SetPosition moves the character's base position.
func (c *Character) SetPosition(p core.Position3D) { c.position = p }

// limbOffsets approximate a standing pose in character space, metres up
// from the feet. Good enough for spawn positions; the render layer owns
// real transforms.
var limbOffsets = [anatomy.LimbCount]core.Position3D{
	anatomy.Head:         {Y: 1.70},
	anatomy.Neck:         {Y: 1.55},
	anatomy.Torso:        {Y: 1.25},
	anatomy.LeftBiceps:   {X: -0.25, Y: 1.40},
	anatomy.RightBiceps:  {X: 0.25, Y: 1.40},
	anatomy.LeftForearm:  {X: -0.30, Y: 1.15},
	anatomy.RightForearm: {X: 0.30, Y: 1.15},
	anatomy.LeftHand:     {X: -0.35, Y: 0.95},
	anatomy.RightHand:    {X: 0.35, Y: 0.95},
	anatomy.LeftThigh:    {X: -0.12, Y: 0.80},
	anatomy.RightThigh:   {X: 0.12, Y: 0.80},
	anatomy.LeftCalf:     {X: -0.12, Y: 0.45},
	anatomy.RightCalf:    {X: 0.12, Y: 0.45},
	anatomy.LeftFoot:     {X: -0.12, Y: 0.05},
	anatomy.RightFoot:    {X: 0.12, Y: 0.05},
}

// LimbPosition returns the world position of a limb.
func (c *Character) LimbPosition(limb anatomy.LimbID) core.Position3D {
	if !limb.Valid() {
		return c.position
	}
	return c.position.Add(limbOffsets[limb])
}

// Limb returns the limb state, or nil for an invalid identifier.
func (c *Character) Limb(id anatomy.LimbID) *health.Limb {
	if !id.Valid() {
		return nil
	}
	return c.limbs[id]
}

// ApplyDamage routes a damage request to its target limb, records the
// damage type and fires the damage-dealt notification. Ambiguous torso
// contacts are redirected through the weight table.
func (c *Character) ApplyDamage(req DamageRequest) DamageResult {
	target := req.Limb
	redirected := false
	if req.AmbiguousContact {
		drawn := c.redirect.Draw(c.rng)
		if drawn != target {
			target, redirected = drawn, true
		}
	}
	if !target.Valid() {
		return DamageResult{Limb: target}
	}

	actual := c.applyToLimb(target, req.Amount, req.Type)

	c.emitDamage(DamageDealt{
		HitPosition:  req.HitPosition,
		Direction:    req.Direction,
		ActualDamage: actual,
		Type:         req.Type,
		Limb:         target,
		IsCritical:   req.IsCritical,
		ContactName:  req.ContactName,
		Redirected:   redirected,
	})

	return DamageResult{Limb: target, ActualDamage: actual, Redirected: redirected}
}

// applyToLimb mutates limb health, records the damage type and checks the
// limb-death condition. Shared by weapon damage and bleed DoT.
func (c *Character) applyToLimb(id anatomy.LimbID, amount float64, dtype anatomy.DamageType) float64 {
	limb := c.Limb(id)
	if limb == nil {
		return 0
	}
	actual := limb.TakeDamage(amount)
	if actual > 0 {
		limb.Record(dtype)
	}
	if limb.IsDead() && limb.AffectsCharacter() && !c.deadFromLimb {
		c.deadFromLimb = true
		c.emitDeath()
	}
	return actual
}

// Step advances bleeding and drain by dt seconds. Dead characters still
// step so late accumulator state settles, but the engine's latches keep
// further gameplay effects out.
func (c *Character) Step(dt float64) {
	if c.destroyed {
		return
	}
	c.engine.Step(dt, c.sources)
}

// AggregateHealth sums the contributing limbs (torso plus any limb flagged
// as affecting character health).
func (c *Character) AggregateHealth() (current, max float64) {
	for _, l := range c.limbs {
		if l != nil && l.AffectsCharacter() {
			current += l.Current()
			max += l.Max()
		}
	}
	return current, max
}

// HealthPercent returns a limb's health percentage, 1.0 for missing limbs.
func (c *Character) HealthPercent(id anatomy.LimbID) float64 {
	limb := c.Limb(id)
	if limb == nil {
		return 1.0
	}
	return limb.HealthPercent()
}

// AggregatePercent returns aggregate health as a fraction.
func (c *Character) AggregatePercent() float64 {
	cur, max := c.AggregateHealth()
	return util.SafePercent(cur, max)
}

// BleedIntensity returns a limb's current bleed intensity without mutating
// accumulators.
func (c *Character) BleedIntensity(id anatomy.LimbID) float64 {
	if !id.Valid() {
		return 0
	}
	return c.engine.IntensityFor(c.sources[id])
}

// BleedClass classifies a limb's bleed intensity for display.
func (c *Character) BleedClass(id anatomy.LimbID) bleed.IntensityClass {
	return c.engine.Classify(c.BleedIntensity(id))
}

// Blood returns the current and maximum blood level.
func (c *Character) Blood() (current, max float64) {
	return c.engine.Blood(), c.engine.MaxBlood()
}

// BloodPercent returns the blood level as a fraction.
func (c *Character) BloodPercent() float64 { return c.engine.BloodPercent() }

// TotalBleedIntensity returns the summed intensity from the last Step.
func (c *Character) TotalBleedIntensity() float64 { return c.engine.TotalIntensity() }

// SeverityTier classifies a limb's wound severity.
func (c *Character) SeverityTier(id anatomy.LimbID) int {
	return c.thresholds.SeverityTier(c.Limb(id))
}

// IsHeavilyBashed reports blunt-only trauma below the heavy-bash threshold.
func (c *Character) IsHeavilyBashed(id anatomy.LimbID) bool {
	return c.thresholds.IsHeavilyBashed(c.Limb(id))
}

// RecordedTypes returns a limb's cumulative wound record.
func (c *Character) RecordedTypes(id anatomy.LimbID) anatomy.DamageMask {
	return health.RecordedFor(c.Limb(id))
}

// MotorScale returns the joint actuation multiplier for a limb.
func (c *Character) MotorScale(id anatomy.LimbID) float64 {
	return c.motorCfg.Scale(c.HealthPercent(id), c.BloodPercent())
}

// Dead reports either death condition.
func (c *Character) Dead() bool {
	return c.deadFromLimb || c.engine.DeadFromBloodLoss()
}

// DeadFromLimb reports the aggregate (limb-zero) death latch.
func (c *Character) DeadFromLimb() bool { return c.deadFromLimb }

// DeadFromBloodLoss reports the blood-loss death latch.
func (c *Character) DeadFromBloodLoss() bool { return c.engine.DeadFromBloodLoss() }

// UseConsumable applies an item to a limb: blood restoration always
// applies; healing and bleed-stop only when the wound gate passes.
func (c *Character) UseConsumable(id anatomy.LimbID, item consumable.Item) (treated bool, healed float64) {
	if item.BloodAmount > 0 {
		c.engine.RestoreBlood(item.BloodAmount)
	}

	limb := c.Limb(id)
	if limb == nil || c.Dead() {
		return false, 0
	}

	if !c.policy.CanTreat(limb, item) {
		return false, 0
	}
	if item.HealAmount > 0 {
		healed = limb.Heal(item.HealAmount)
	}
	if item.StopsBleeding {
		c.engine.StopBleeding(id)
	}
	return true, healed
}

// StopBleeding zeroes a limb's accumulator (external bandage effect).
func (c *Character) StopBleeding(id anatomy.LimbID) {
	c.engine.StopBleeding(id)
}

// Respawn resets the character to its spawn state: limbs to full health
// with cleared wound records, full blood, both death latches cleared.
func (c *Character) Respawn() {
	c.deadFromLimb = false
	c.engine.Reset()
	for _, l := range c.limbs {
		if l != nil {
			l.Reset()
		}
	}
	c.emitBlood(c.engine.Blood(), c.engine.MaxBlood())
}

// Destroy marks the character invalid; registries prune it lazily.
func (c *Character) Destroy() { c.destroyed = true }

// Destroyed reports whether the character has been removed from play.
func (c *Character) Destroyed() bool { return c.destroyed }
