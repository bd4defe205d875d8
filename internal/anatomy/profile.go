package anatomy

// Profile is the static tuning row for one limb. Values mirror the config
// surface; DefaultProfiles supplies the row when config omits a limb.
type Profile struct {
	MaxHealth        float64
	DamageMultiplier float64
	BleedMultiplier  float64
	AffectsCharacter bool
}

var defaultProfiles = [LimbCount]Profile{
	Head:         {MaxHealth: 35, DamageMultiplier: 2.0, BleedMultiplier: 1.5, AffectsCharacter: true},
	Neck:         {MaxHealth: 25, DamageMultiplier: 2.0, BleedMultiplier: 3.0, AffectsCharacter: true},
	Torso:        {MaxHealth: 100, DamageMultiplier: 1.0, BleedMultiplier: 1.0, AffectsCharacter: true},
	LeftBiceps:   {MaxHealth: 40, DamageMultiplier: 1.0, BleedMultiplier: 1.0},
	RightBiceps:  {MaxHealth: 40, DamageMultiplier: 1.0, BleedMultiplier: 1.0},
	LeftForearm:  {MaxHealth: 35, DamageMultiplier: 1.0, BleedMultiplier: 1.0},
	RightForearm: {MaxHealth: 35, DamageMultiplier: 1.0, BleedMultiplier: 1.0},
	LeftHand:     {MaxHealth: 20, DamageMultiplier: 1.0, BleedMultiplier: 0.75},
	RightHand:    {MaxHealth: 20, DamageMultiplier: 1.0, BleedMultiplier: 0.75},
	LeftThigh:    {MaxHealth: 50, DamageMultiplier: 1.0, BleedMultiplier: 1.25},
	RightThigh:   {MaxHealth: 50, DamageMultiplier: 1.0, BleedMultiplier: 1.25},
	LeftCalf:     {MaxHealth: 40, DamageMultiplier: 1.0, BleedMultiplier: 1.0},
	RightCalf:    {MaxHealth: 40, DamageMultiplier: 1.0, BleedMultiplier: 1.0},
	LeftFoot:     {MaxHealth: 25, DamageMultiplier: 1.0, BleedMultiplier: 0.75},
	RightFoot:    {MaxHealth: 25, DamageMultiplier: 1.0, BleedMultiplier: 0.75},
}

// DefaultProfile returns the built-in tuning row for a limb. Unknown limbs
// get a neutral profile rather than a panic.
func DefaultProfile(l LimbID) Profile {
	if !l.Valid() {
		return Profile{MaxHealth: 1, DamageMultiplier: 1, BleedMultiplier: 1}
	}
	return defaultProfiles[l]
}
