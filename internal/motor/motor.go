// Package motor converts limb health and global blood level into the joint
// actuation strength multiplier consumed by the locomotion layer. Damaged
// or exsanguinating limbs become weaker and slower, but the scale is
// floored so a joint is never fully paralyzed into an unrecoverable lock-up.
package motor

import "github.com/ragsim/vitals/internal/util"

// Floor is the absolute minimum motor scale.
const Floor = 0.01

// Config holds the strength floors at zero health and zero blood.
type Config struct {
	MinAtZeroHealth float64
	MinAtZeroBlood  float64
}

// DefaultConfig matches the stock game tuning.
func DefaultConfig() Config {
	return Config{MinAtZeroHealth: 0.2, MinAtZeroBlood: 0.25}
}

// Scale returns the torque/speed multiplier for a limb given its health
// percentage and the character's blood percentage, both in [0, 1].
func (c Config) Scale(healthPct, bloodPct float64) float64 {
	damageFactor := util.Lerp(c.MinAtZeroHealth, 1, healthPct)
	bloodFactor := util.Lerp(c.MinAtZeroBlood, 1, bloodPct)
	scale := damageFactor * bloodFactor
	if scale < Floor {
		return Floor
	}
	return scale
}
