// Package consumable gates healing items against a limb's wound state.
// Bandage-grade items treat light wounds; crushed or deeply cut limbs need
// items flagged for the specific wound class (stitches, splints). Blood
// restoration is deliberately outside the gate: transfusions always apply.
package consumable

import (
	"math/rand"

	"github.com/ragsim/vitals/internal/anatomy"
	"github.com/ragsim/vitals/internal/health"
)

// Item describes one usable consumable.
type Item struct {
	Name          string
	HealAmount    float64
	BloodAmount   float64
	StopsBleeding bool

	// Wound-class capabilities.
	TreatsHeavyBash  bool
	TreatsHeavyStab  bool
	TreatsHeavySlash bool
}

// moderateTreatChance is the per-use success probability on a tier-1 wound.
// Imperfect treatment: a moderate wound takes a coin flip per attempt.
const moderateTreatChance = 0.5

// Policy decides whether an item can treat a limb's wounds.
type Policy struct {
	thresholds health.Thresholds
	roll       func() float64 // uniform [0, 1)
}

// NewPolicy creates a policy. roll may be nil, in which case the shared
// math/rand source is used; tests inject a deterministic roll.
func NewPolicy(thresholds health.Thresholds, roll func() float64) *Policy {
	if roll == nil {
		roll = rand.Float64
	}
	return &Policy{thresholds: thresholds, roll: roll}
}

// CanTreat reports whether item may heal/stop bleeding on the limb right
// now. Tier-1 wounds succeed stochastically, so two consecutive calls can
// disagree; that is the intended imperfect-treatment behavior.
func (p *Policy) CanTreat(l *health.Limb, item Item) bool {
	if l == nil {
		return false
	}

	if p.thresholds.IsHeavilyBashed(l) {
		return item.TreatsHeavyBash
	}

	recorded := l.Recorded()
	tier := p.thresholds.SeverityTier(l)

	if recorded.HasSharp() && tier == health.SeverityBad {
		// every recorded sharp wound class must be covered
		if recorded.Has(anatomy.Stab) && !item.TreatsHeavyStab {
			return false
		}
		if recorded.Has(anatomy.Slash) && !item.TreatsHeavySlash {
			return false
		}
		return true
	}

	if tier == health.SeverityModerate {
		return p.roll() < moderateTreatChance
	}

	return true
}
