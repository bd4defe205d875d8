package anatomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllLimbsCoversEveryID(t *testing.T) {
	require.Len(t, AllLimbs, int(LimbCount))
	seen := map[LimbID]bool{}
	for _, l := range AllLimbs {
		assert.True(t, l.Valid())
		assert.False(t, seen[l], "duplicate limb %s", l)
		seen[l] = true
	}
}

func TestParseLimbRoundTrip(t *testing.T) {
	for _, l := range AllLimbs {
		parsed, err := ParseLimb(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}

	_, err := ParseLimb("tail")
	assert.Error(t, err)
}

func TestParseDamageType(t *testing.T) {
	tests := []struct {
		name    string
		want    DamageType
		wantErr bool
	}{
		{name: "generic", want: Generic},
		{name: "stab", want: Stab},
		{name: "slash", want: Slash},
		{name: "blunt", want: Blunt},
		{name: "psychic", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseDamageType(tt.name)
		if tt.wantErr {
			assert.Error(t, err, tt.name)
			continue
		}
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got)
	}
}

func TestDamageMaskSetSemantics(t *testing.T) {
	var m DamageMask
	assert.True(t, m.Empty())

	m.Add(Stab)
	m.Add(Stab)
	assert.Equal(t, []DamageType{Stab}, m.Types())
	assert.True(t, m.HasSharp())

	m.Add(Blunt)
	assert.Equal(t, []string{"stab", "blunt"}, m.Names())

	var blunt DamageMask
	blunt.Add(Blunt)
	blunt.Add(Generic)
	assert.False(t, blunt.HasSharp())
}

func TestDefaultProfiles(t *testing.T) {
	for _, l := range AllLimbs {
		p := DefaultProfile(l)
		assert.Greater(t, p.MaxHealth, 0.0, l.String())
		assert.Greater(t, p.DamageMultiplier, 0.0, l.String())
	}
	// head takes amplified damage, neck bleeds hardest
	assert.Equal(t, 2.0, DefaultProfile(Head).DamageMultiplier)
	assert.Equal(t, 3.0, DefaultProfile(Neck).BleedMultiplier)
	// out-of-range ID degrades to a neutral row
	assert.Equal(t, 1.0, DefaultProfile(LimbCount).MaxHealth)
}
