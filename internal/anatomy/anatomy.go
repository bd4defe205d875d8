// Package anatomy defines the closed set of limb identifiers and damage
// types used by the vitals simulation, plus the default tuning profile for
// each limb. Everything here is static data; mutable state lives in the
// health and bleed packages.
package anatomy

import (
	"fmt"
	"strings"
)

// LimbID identifies one anatomical segment of a character.
type LimbID uint8

const (
	Head LimbID = iota
	Neck
	Torso
	LeftBiceps
	RightBiceps
	LeftForearm
	RightForearm
	LeftHand
	RightHand
	LeftThigh
	RightThigh
	LeftCalf
	RightCalf
	LeftFoot
	RightFoot

	// LimbCount is the number of limb identifiers. Keep last.
	LimbCount
)

// AllLimbs enumerates every limb identifier explicitly. Iteration order is
// stable and matches the declaration order above.
var AllLimbs = []LimbID{
	Head, Neck, Torso,
	LeftBiceps, RightBiceps,
	LeftForearm, RightForearm,
	LeftHand, RightHand,
	LeftThigh, RightThigh,
	LeftCalf, RightCalf,
	LeftFoot, RightFoot,
}

var limbNames = [LimbCount]string{
	Head:         "head",
	Neck:         "neck",
	Torso:        "torso",
	LeftBiceps:   "leftBiceps",
	RightBiceps:  "rightBiceps",
	LeftForearm:  "leftForearm",
	RightForearm: "rightForearm",
	LeftHand:     "leftHand",
	RightHand:    "rightHand",
	LeftThigh:    "leftThigh",
	RightThigh:   "rightThigh",
	LeftCalf:     "leftCalf",
	RightCalf:    "rightCalf",
	LeftFoot:     "leftFoot",
	RightFoot:    "rightFoot",
}

// String returns the config/storage key for the limb.
func (l LimbID) String() string {
	if l >= LimbCount {
		return fmt.Sprintf("limb(%d)", uint8(l))
	}
	return limbNames[l]
}

// Valid reports whether the identifier names a real limb.
func (l LimbID) Valid() bool {
	return l < LimbCount
}

// ParseLimb resolves a limb name (as used in config files and scenario
// scripts) back to its identifier. Matching is case-insensitive because
// viper lowercases JSON keys.
func ParseLimb(name string) (LimbID, error) {
	for _, l := range AllLimbs {
		if strings.EqualFold(limbNames[l], name) {
			return l, nil
		}
	}
	return LimbCount, fmt.Errorf("unknown limb %q", name)
}
