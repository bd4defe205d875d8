// Package health implements per-limb health state and the damage
// classification rules built on top of it: severity tiers, heavy-bash
// detection and bleed eligibility.
package health

import (
	"github.com/ragsim/vitals/internal/anatomy"
	"github.com/ragsim/vitals/internal/util"
)

// ChangeFunc is notified after every health mutation with the new current
// and maximum values.
type ChangeFunc func(current, max float64)

// Limb holds the mutable health state of one anatomical segment.
// Current health is clamped to [0, max] on every mutation.
type Limb struct {
	id       anatomy.LimbID
	max      float64
	current  float64
	profile  anatomy.Profile
	recorded anatomy.DamageMask

	onChange ChangeFunc
}

// NewLimb creates a limb at full health from its tuning profile.
func NewLimb(id anatomy.LimbID, profile anatomy.Profile) *Limb {
	return &Limb{
		id:      id,
		max:     profile.MaxHealth,
		current: profile.MaxHealth,
		profile: profile,
	}
}

// SetChangeFunc registers the health-changed notification callback.
func (l *Limb) SetChangeFunc(fn ChangeFunc) {
	l.onChange = fn
}

// ID returns the limb identifier.
func (l *Limb) ID() anatomy.LimbID { return l.id }

// Current returns the current health value.
func (l *Limb) Current() float64 { return l.current }

// Max returns the maximum health value.
func (l *Limb) Max() float64 { return l.max }

// Profile returns the limb's static tuning row.
func (l *Limb) Profile() anatomy.Profile { return l.profile }

// AffectsCharacter reports whether this limb reaching zero kills the
// character.
func (l *Limb) AffectsCharacter() bool { return l.profile.AffectsCharacter }

// TakeDamage applies amount scaled by the limb's damage multiplier and
// returns the health actually lost. Negative amounts are clamped to zero:
// the upstream combat code never legitimately deals negative damage, and
// letting it through would heal the limb without going through Heal.
func (l *Limb) TakeDamage(amount float64) float64 {
	if amount < 0 {
		amount = 0
	}
	old := l.current
	l.current = util.Clamp(l.current-amount*l.profile.DamageMultiplier, 0, l.max)
	applied := old - l.current
	if l.onChange != nil {
		l.onChange(l.current, l.max)
	}
	return applied
}

// Heal restores up to amount of health, clamped to max, and returns the
// health actually restored. Non-positive amounts are a no-op.
func (l *Limb) Heal(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	old := l.current
	l.current = util.Clamp(l.current+amount, 0, l.max)
	healed := l.current - old
	if l.onChange != nil {
		l.onChange(l.current, l.max)
	}
	return healed
}

// HealthPercent returns current/max in [0, 1], reading 1.0 when max is not
// positive.
func (l *Limb) HealthPercent() float64 {
	return util.SafePercent(l.current, l.max)
}

// IsDead reports whether the limb has no health left.
func (l *Limb) IsDead() bool {
	return l.current <= 0
}

// Record adds a damage type to the limb's cumulative wound record. The
// record is a set and is never cleared by healing; it means "this part has
// been wounded this way at some point", which drives bleed eligibility and
// consumable gating long after the health bar recovers.
func (l *Limb) Record(d anatomy.DamageType) {
	l.recorded.Add(d)
}

// Recorded returns the cumulative wound record.
func (l *Limb) Recorded() anatomy.DamageMask {
	return l.recorded
}

// Reset restores the limb to full health and clears the wound record.
// Used only on respawn.
func (l *Limb) Reset() {
	l.current = l.max
	l.recorded = 0
	if l.onChange != nil {
		l.onChange(l.current, l.max)
	}
}
