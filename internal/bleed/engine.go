// Package bleed implements the per-limb bleeding accumulators and the
// global blood-level drain. Each eligible limb accrues intensity*dt into a
// leaky bucket; every time the bucket crosses the spawn threshold one
// discrete blood unit is emitted. The summed intensity of all limbs drains
// the character's blood level, and an empty blood level is a terminal,
// one-way death condition independent of limb health.
package bleed

import (
	"github.com/ragsim/vitals/internal/anatomy"
	"github.com/ragsim/vitals/internal/util"
)

// Source is one limb as the bleed engine sees it. The character layer
// adapts its limbs to this interface so the engine never touches health
// state directly.
type Source interface {
	ID() anatomy.LimbID
	HealthPercent() float64
	// ShouldBleed reports bleed eligibility (sharp wound or heavy bash).
	ShouldBleed() bool
	// BleedMultiplier is the per-limb intensity multiplier (neck > head > rest).
	BleedMultiplier() float64
	// ApplyBleedDamage applies bleed damage-over-time as Generic damage.
	ApplyBleedDamage(amount float64)
}

// IntensityClass is the display classification of a bleed intensity.
type IntensityClass int

const (
	BleedNone IntensityClass = iota
	BleedLight
	BleedHeavy
)

// Config holds the global bleed tuning. All values come from the config
// surface; ranges are validated there.
type Config struct {
	// BaseRate scales every limb's bleed intensity.
	BaseRate float64
	// SpawnThreshold is the accumulator level at which one blood unit spawns.
	SpawnThreshold float64
	// DrainRate is blood level drained per unit of total intensity per second.
	DrainRate float64
	// MaxBlood is the starting and maximum blood level.
	MaxBlood float64
	// DotDamagePerSecond scales bleed damage-over-time; zero disables it.
	DotDamagePerSecond float64
	// DotInterval is the fixed period of the damage-over-time timer, seconds.
	DotInterval float64
	// LightIntensity and HeavyIntensity are display-classification cut-offs.
	LightIntensity float64
	HeavyIntensity float64
}

// DefaultConfig matches the stock game tuning.
func DefaultConfig() Config {
	return Config{
		BaseRate:           1.0,
		SpawnThreshold:     0.25,
		DrainRate:          1.0,
		MaxBlood:           100,
		DotDamagePerSecond: 0.5,
		DotInterval:        2.0,
		LightIntensity:     0.15,
		HeavyIntensity:     0.5,
	}
}

// Engine owns the per-limb accumulators and the character's blood level.
// It is stepped once per simulation tick by the owning character and is not
// safe for concurrent use.
type Engine struct {
	cfg Config

	accum      [anatomy.LimbCount]float64
	blood      float64
	dead       bool
	dotElapsed float64

	// lastTotal is the summed intensity from the most recent Step, kept for
	// vitals sampling.
	lastTotal float64

	onSpawn        func(limb anatomy.LimbID, intensity float64)
	onBloodChanged func(current, max float64)
	onDeath        func()
}

// NewEngine creates an engine with a full blood level.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg, blood: cfg.MaxBlood}
}

// SetSpawnFunc registers the blood-unit spawn callback. The collaborator
// that draws blood is external; the engine only reports limb and intensity.
func (e *Engine) SetSpawnFunc(fn func(limb anatomy.LimbID, intensity float64)) {
	e.onSpawn = fn
}

// SetBloodChangedFunc registers the blood-level notification callback.
func (e *Engine) SetBloodChangedFunc(fn func(current, max float64)) {
	e.onBloodChanged = fn
}

// SetDeathFunc registers the blood-loss death callback. It fires exactly
// once per life, when the latch flips.
func (e *Engine) SetDeathFunc(fn func()) {
	e.onDeath = fn
}

// intensityOf computes a limb's current bleed intensity without touching
// the accumulator.
func (e *Engine) intensityOf(s Source) float64 {
	if !s.ShouldBleed() {
		return 0
	}
	intensity := (1 - s.HealthPercent()) * s.BleedMultiplier() * e.cfg.BaseRate
	if intensity <= 0 {
		return 0
	}
	return intensity
}

// Step advances bleeding by dt seconds across all limbs. Spawn emission
// uses a catch-up loop so a large dt or very high intensity fires multiple
// whole spawns and carries the remainder, never losing accumulated bleed.
func (e *Engine) Step(dt float64, sources []Source) {
	if dt <= 0 {
		return
	}

	total := 0.0
	for _, s := range sources {
		idx := s.ID()
		if !idx.Valid() {
			continue
		}
		intensity := e.intensityOf(s)
		if intensity <= 0 {
			e.accum[idx] = 0
			continue
		}

		e.accum[idx] += intensity * dt
		total += intensity

		if e.cfg.SpawnThreshold > 0 {
			for e.accum[idx] >= e.cfg.SpawnThreshold {
				e.accum[idx] -= e.cfg.SpawnThreshold
				if e.onSpawn != nil {
					e.onSpawn(idx, intensity)
				}
			}
		}
	}
	e.lastTotal = total

	// Blood drain from total intensity. A corpse neither drains nor
	// re-fires the death notification.
	if !e.dead && total > 0 && e.blood > 0 {
		e.blood = util.Clamp(e.blood-total*e.cfg.DrainRate*dt, 0, e.cfg.MaxBlood)
		if e.onBloodChanged != nil {
			e.onBloodChanged(e.blood, e.cfg.MaxBlood)
		}
		if e.blood <= 0 {
			e.dead = true
			if e.onDeath != nil {
				e.onDeath()
			}
		}
	}

	// Bleed damage-over-time runs on its own fixed-interval timer, not the
	// spawn accumulator.
	if e.cfg.DotDamagePerSecond > 0 && e.cfg.DotInterval > 0 && !e.dead {
		e.dotElapsed += dt
		for e.dotElapsed >= e.cfg.DotInterval {
			e.dotElapsed -= e.cfg.DotInterval
			for _, s := range sources {
				intensity := e.intensityOf(s)
				if intensity > 0 {
					s.ApplyBleedDamage(e.cfg.DotDamagePerSecond * e.cfg.DotInterval * intensity)
				}
			}
		}
	}
}

// IntensityFor recomputes a limb's bleed intensity for display without
// mutating any accumulator.
func (e *Engine) IntensityFor(s Source) float64 {
	return e.intensityOf(s)
}

// Classify maps an intensity onto the light/heavy display classes.
func (e *Engine) Classify(intensity float64) IntensityClass {
	switch {
	case intensity >= e.cfg.HeavyIntensity:
		return BleedHeavy
	case intensity >= e.cfg.LightIntensity:
		return BleedLight
	default:
		return BleedNone
	}
}

// StopBleeding zeroes a limb's accumulator, discarding any pending
// carry-over toward the next spawn. Health and the wound record are
// untouched; the limb resumes accruing next tick if still eligible.
func (e *Engine) StopBleeding(limb anatomy.LimbID) {
	if limb.Valid() {
		e.accum[limb] = 0
	}
}

// RestoreBlood adds amount to the blood level, clamped to [0, max].
// Non-positive amounts are a no-op, and restoring blood to a character
// already dead from blood loss never clears the latch.
func (e *Engine) RestoreBlood(amount float64) {
	if amount <= 0 {
		return
	}
	e.blood = util.Clamp(e.blood+amount, 0, e.cfg.MaxBlood)
	if e.onBloodChanged != nil {
		e.onBloodChanged(e.blood, e.cfg.MaxBlood)
	}
}

// Blood returns the current blood level.
func (e *Engine) Blood() float64 { return e.blood }

// MaxBlood returns the configured maximum blood level.
func (e *Engine) MaxBlood() float64 { return e.cfg.MaxBlood }

// BloodPercent returns blood/max in [0, 1], reading 1.0 on a degenerate max.
func (e *Engine) BloodPercent() float64 {
	return util.SafePercent(e.blood, e.cfg.MaxBlood)
}

// DeadFromBloodLoss reports the terminal blood-loss latch.
func (e *Engine) DeadFromBloodLoss() bool { return e.dead }

// TotalIntensity returns the summed intensity from the most recent Step.
func (e *Engine) TotalIntensity() float64 { return e.lastTotal }

// Accumulator exposes a limb's pending accumulator value, for tests and
// diagnostics.
func (e *Engine) Accumulator(limb anatomy.LimbID) float64 {
	if !limb.Valid() {
		return 0
	}
	return e.accum[limb]
}

// Reset returns the engine to its spawn state: full blood, empty
// accumulators, latch cleared. Only respawn calls this; within a life the
// blood-loss latch is one-way.
func (e *Engine) Reset() {
	e.blood = e.cfg.MaxBlood
	e.dead = false
	e.dotElapsed = 0
	e.lastTotal = 0
	for i := range e.accum {
		e.accum[i] = 0
	}
}
