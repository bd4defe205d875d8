package health

import "github.com/ragsim/vitals/internal/anatomy"

// Severity tiers derived from health percentage.
const (
	SeverityMinor    = 0
	SeverityModerate = 1
	SeverityBad      = 2
)

// Thresholds hold the health-percentage cut-offs used to classify a limb's
// damage state. All values are fractions in (0, 1]; config validates ranges.
type Thresholds struct {
	// Damaged is the health fraction at or below which a limb counts as
	// moderately wounded (tier 1).
	Damaged float64
	// Critical is the health fraction at or below which a limb counts as
	// badly wounded (tier 2).
	Critical float64
	// HeavyBash is the health fraction at or below which blunt-only damage
	// starts to bleed.
	HeavyBash float64
}

// DefaultThresholds match the stock game tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{Damaged: 0.75, Critical: 0.35, HeavyBash: 0.3}
}

// SeverityTier classifies the limb purely from its health percentage,
// independent of which damage types were recorded.
func (t Thresholds) SeverityTier(l *Limb) int {
	if l == nil {
		return SeverityMinor
	}
	pct := l.HealthPercent()
	switch {
	case pct <= t.Critical:
		return SeverityBad
	case pct <= t.Damaged:
		return SeverityModerate
	default:
		return SeverityMinor
	}
}

// IsHeavilyBashed reports blunt trauma severe enough to bleed: the limb has
// never taken a stab or slash and its health is at or below the heavy-bash
// threshold. Crushed-but-unpunctured flesh only opens up when badly damaged.
func (t Thresholds) IsHeavilyBashed(l *Limb) bool {
	if l == nil {
		return false
	}
	return !l.Recorded().HasSharp() && l.HealthPercent() <= t.HeavyBash
}

// ShouldBleed reports whether the limb is an eligible bleed source: any
// recorded stab/slash wound bleeds regardless of current health, and any
// limb crushed below the heavy-bash threshold bleeds even without one.
func (t Thresholds) ShouldBleed(l *Limb) bool {
	if l == nil {
		return false
	}
	if l.Recorded().HasSharp() {
		return true
	}
	return l.HealthPercent() <= t.HeavyBash
}

// RecordedFor is a nil-safe read of a limb's wound record.
func RecordedFor(l *Limb) anatomy.DamageMask {
	if l == nil {
		return 0
	}
	return l.Recorded()
}
