package consumable

import (
	"testing"

	"github.com/ragsim/vitals/internal/anatomy"
	"github.com/ragsim/vitals/internal/health"
	"github.com/stretchr/testify/assert"
)

var bandage = Item{Name: "bandage", HealAmount: 15, StopsBleeding: true}

var traumaKit = Item{
	Name:             "traumaKit",
	HealAmount:       40,
	StopsBleeding:    true,
	TreatsHeavyBash:  true,
	TreatsHeavyStab:  true,
	TreatsHeavySlash: true,
}

func newLimb() *health.Limb {
	return health.NewLimb(anatomy.LeftThigh, anatomy.Profile{
		MaxHealth:        100,
		DamageMultiplier: 1,
		BleedMultiplier:  1,
	})
}

func fixedRoll(v float64) func() float64 {
	return func() float64 { return v }
}

func TestTierZeroAlwaysTreatable(t *testing.T) {
	p := NewPolicy(health.DefaultThresholds(), fixedRoll(0.99))
	l := newLimb()
	l.TakeDamage(10)
	l.Record(anatomy.Slash)
	assert.True(t, p.CanTreat(l, bandage))
}

func TestModerateWoundIsCoinFlip(t *testing.T) {
	th := health.DefaultThresholds()
	l := newLimb()
	l.TakeDamage(50) // tier 1
	l.Record(anatomy.Stab)

	lucky := NewPolicy(th, fixedRoll(0.49))
	assert.True(t, lucky.CanTreat(l, bandage))

	unlucky := NewPolicy(th, fixedRoll(0.5))
	assert.False(t, unlucky.CanTreat(l, bandage))
}

func TestHeavySharpWoundsNeedMatchingFlags(t *testing.T) {
	th := health.DefaultThresholds()
	p := NewPolicy(th, fixedRoll(0))

	stabbed := newLimb()
	stabbed.TakeDamage(80) // tier 2
	stabbed.Record(anatomy.Stab)
	assert.False(t, p.CanTreat(stabbed, bandage))
	assert.True(t, p.CanTreat(stabbed, traumaKit))

	onlyStabKit := Item{Name: "suture", TreatsHeavyStab: true}
	assert.True(t, p.CanTreat(stabbed, onlyStabKit))

	// a limb with both stab and slash recorded needs both flags
	stabbed.Record(anatomy.Slash)
	assert.False(t, p.CanTreat(stabbed, onlyStabKit))
	assert.True(t, p.CanTreat(stabbed, traumaKit))
}

func TestHeavilyBashedRequiresBashFlag(t *testing.T) {
	th := health.DefaultThresholds()
	p := NewPolicy(th, fixedRoll(0))

	crushed := newLimb()
	crushed.TakeDamage(80) // 20% <= heavy-bash threshold, blunt only
	crushed.Record(anatomy.Blunt)

	assert.False(t, p.CanTreat(crushed, bandage))
	assert.True(t, p.CanTreat(crushed, traumaKit))
}

func TestNilLimbIsUntreatable(t *testing.T) {
	p := NewPolicy(health.DefaultThresholds(), nil)
	assert.False(t, p.CanTreat(nil, traumaKit))
}
