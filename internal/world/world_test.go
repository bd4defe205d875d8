package world

import (
	"math/rand"
	"testing"

	"github.com/ragsim/vitals/internal/character"
	"github.com/ragsim/vitals/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawn(id uint16, pos core.Position3D) *character.Character {
	c := character.New(core.CharacterInfo{ID: id}, character.DefaultConfig(), rand.New(rand.NewSource(int64(id))))
	c.SetPosition(pos)
	return c
}

func TestAddGet(t *testing.T) {
	r := NewRegistry()
	c := spawn(1, core.Position3D{})
	r.Add(c)

	got, ok := r.Get(1)
	require.True(t, ok)
	assert.Same(t, c, got)

	_, ok = r.Get(99)
	assert.False(t, ok)
}

func TestLazyPruning(t *testing.T) {
	r := NewRegistry()
	a := spawn(1, core.Position3D{})
	b := spawn(2, core.Position3D{X: 5})
	r.Add(a)
	r.Add(b)
	require.Equal(t, 2, r.Count())

	b.Destroy()

	// destroyed entries vanish at iteration time
	live := r.Characters()
	require.Len(t, live, 1)
	assert.Equal(t, uint16(1), live[0].Info().ID)

	_, ok := r.Get(2)
	assert.False(t, ok)
}

func TestNearestWithin(t *testing.T) {
	r := NewRegistry()
	r.Add(spawn(1, core.Position3D{}))
	r.Add(spawn(2, core.Position3D{X: 3}))
	r.Add(spawn(3, core.Position3D{X: 10}))

	got, ok := r.NearestWithin(core.Position3D{}, 5, 1)
	require.True(t, ok)
	assert.Equal(t, uint16(2), got.Info().ID)

	_, ok = r.NearestWithin(core.Position3D{X: 100}, 5, 0)
	assert.False(t, ok)
}
