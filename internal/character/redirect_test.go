package character

import (
	"math/rand"
	"testing"

	"github.com/ragsim/vitals/internal/anatomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScalesToHundred(t *testing.T) {
	tbl := &WeightTable{}
	tbl.Set(anatomy.Torso, 3)
	tbl.Set(anatomy.Head, 1)

	require.NoError(t, tbl.Normalize())
	assert.InDelta(t, 75.0, tbl.Weight(anatomy.Torso), 1e-9)
	assert.InDelta(t, 25.0, tbl.Weight(anatomy.Head), 1e-9)
}

func TestNormalizeRejectsEmptyTable(t *testing.T) {
	tbl := &WeightTable{}
	assert.Error(t, tbl.Normalize())

	tbl.Set(anatomy.Torso, -5) // negative coerces to zero
	assert.Error(t, tbl.Normalize())
}

func TestDrawRespectsWeights(t *testing.T) {
	tbl := &WeightTable{}
	tbl.Set(anatomy.Head, 10)
	tbl.Set(anatomy.Torso, 90)
	require.NoError(t, tbl.Normalize())

	rng := rand.New(rand.NewSource(1))
	counts := map[anatomy.LimbID]int{}
	const n = 10000
	for i := 0; i < n; i++ {
		counts[tbl.Draw(rng)]++
	}

	assert.Equal(t, n, counts[anatomy.Head]+counts[anatomy.Torso])
	assert.InDelta(t, 0.10, float64(counts[anatomy.Head])/n, 0.02)
}

func TestDrawEmptyTableFallsBackToTorso(t *testing.T) {
	tbl := &WeightTable{}
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, anatomy.Torso, tbl.Draw(rng))
}

func TestDefaultTableNormalizes(t *testing.T) {
	tbl := DefaultWeightTable()
	require.NoError(t, tbl.Normalize())
	sum := 0.0
	for _, l := range anatomy.AllLimbs {
		sum += tbl.Weight(l)
	}
	assert.InDelta(t, 100.0, sum, 1e-6)
}
