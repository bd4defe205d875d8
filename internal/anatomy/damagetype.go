package anatomy

import "fmt"

// DamageType classifies how damage was inflicted. The classification feeds
// bleed eligibility: stab and slash wounds always bleed, blunt and generic
// damage bleeds only once the limb is heavily bashed.
type DamageType uint8

const (
	Generic DamageType = iota
	Stab
	Slash
	Blunt

	damageTypeCount
)

var damageTypeNames = [damageTypeCount]string{
	Generic: "generic",
	Stab:    "stab",
	Slash:   "slash",
	Blunt:   "blunt",
}

// String returns the wire/storage name of the damage type.
func (d DamageType) String() string {
	if d >= damageTypeCount {
		return fmt.Sprintf("damageType(%d)", uint8(d))
	}
	return damageTypeNames[d]
}

// ParseDamageType resolves a damage type name from config or scenario input.
func ParseDamageType(name string) (DamageType, error) {
	for i := DamageType(0); i < damageTypeCount; i++ {
		if damageTypeNames[i] == name {
			return i, nil
		}
	}
	return damageTypeCount, fmt.Errorf("unknown damage type %q", name)
}

// DamageMask is the cumulative set of damage types a limb has ever taken.
// It is a set, not a history: recording the same type twice is idempotent,
// and the set survives healing to full. Only a full respawn clears it.
type DamageMask uint8

// Add records a damage type in the set.
func (m *DamageMask) Add(d DamageType) {
	*m |= 1 << d
}

// Has reports whether the set contains the damage type.
func (m DamageMask) Has(d DamageType) bool {
	return m&(1<<d) != 0
}

// HasSharp reports whether the set contains a stab or slash wound.
func (m DamageMask) HasSharp() bool {
	return m.Has(Stab) || m.Has(Slash)
}

// Empty reports whether no damage has ever been recorded.
func (m DamageMask) Empty() bool {
	return m == 0
}

// Types returns the recorded damage types in declaration order.
func (m DamageMask) Types() []DamageType {
	var out []DamageType
	for i := DamageType(0); i < damageTypeCount; i++ {
		if m.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// Names returns the recorded damage type names, for storage and UI wording.
func (m DamageMask) Names() []string {
	types := m.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}
