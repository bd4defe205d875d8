package character

import (
	"fmt"
	"math/rand"

	"github.com/ragsim/vitals/internal/anatomy"
)

// WeightTable is the probability table for redirecting ambiguous torso
// contacts to other limbs. Weights are normalized to sum 100 before use.
type WeightTable struct {
	weights [anatomy.LimbCount]float64
	total   float64
}

// DefaultWeightTable matches the stock hit-distribution tuning: most
// ambiguous contacts stay on the torso, with a head/neck/limb spread.
func DefaultWeightTable() *WeightTable {
	t := &WeightTable{}
	t.Set(anatomy.Torso, 46)
	t.Set(anatomy.Head, 8)
	t.Set(anatomy.Neck, 4)
	t.Set(anatomy.LeftBiceps, 5)
	t.Set(anatomy.RightBiceps, 5)
	t.Set(anatomy.LeftForearm, 4)
	t.Set(anatomy.RightForearm, 4)
	t.Set(anatomy.LeftHand, 2)
	t.Set(anatomy.RightHand, 2)
	t.Set(anatomy.LeftThigh, 6)
	t.Set(anatomy.RightThigh, 6)
	t.Set(anatomy.LeftCalf, 3)
	t.Set(anatomy.RightCalf, 3)
	t.Set(anatomy.LeftFoot, 1)
	t.Set(anatomy.RightFoot, 1)
	return t
}

// Set assigns a weight to a limb. Negative weights are treated as zero.
func (t *WeightTable) Set(limb anatomy.LimbID, weight float64) {
	if !limb.Valid() {
		return
	}
	if weight < 0 {
		weight = 0
	}
	t.total += weight - t.weights[limb]
	t.weights[limb] = weight
}

// Normalize rescales the table so the weights sum to exactly 100.
func (t *WeightTable) Normalize() error {
	if t.total <= 0 {
		return fmt.Errorf("weight table sums to %v, cannot normalize", t.total)
	}
	scale := 100 / t.total
	for i := range t.weights {
		t.weights[i] *= scale
	}
	t.total = 100
	return nil
}

// Draw picks a limb by weighted random selection. An empty table falls
// back to the torso.
func (t *WeightTable) Draw(rng *rand.Rand) anatomy.LimbID {
	if t.total <= 0 {
		return anatomy.Torso
	}
	pick := rng.Float64() * t.total
	for _, l := range anatomy.AllLimbs {
		pick -= t.weights[l]
		if pick < 0 {
			return l
		}
	}
	// float round-off on the last slice
	return anatomy.AllLimbs[len(anatomy.AllLimbs)-1]
}

// Weight returns the current weight for a limb.
func (t *WeightTable) Weight(limb anatomy.LimbID) float64 {
	if !limb.Valid() {
		return 0
	}
	return t.weights[limb]
}
