// Package world owns the registry of live characters. It replaces an
// engine-level "pool of all instances": an explicit object passed by
// reference, with entries pruned lazily at iteration time once a character
// is destroyed, never eagerly.
package world

import (
	"sync"

	"github.com/ragsim/vitals/internal/character"
	"github.com/ragsim/vitals/pkg/core"
)

// Registry tracks every character in the simulation. Readers may iterate
// between ticks, so access is guarded even though writes come from the
// single simulation goroutine.
type Registry struct {
	mu         sync.RWMutex
	characters map[uint16]*character.Character
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		characters: make(map[uint16]*character.Character),
	}
}

// Add registers a character under its info ID.
func (r *Registry) Add(c *character.Character) {
	if c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.characters[c.Info().ID] = c
}

// Get returns a character by ID. Destroyed characters read as absent and
// are pruned on the spot.
func (r *Registry) Get(id uint16) (*character.Character, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.characters[id]
	if !ok {
		return nil, false
	}
	if c.Destroyed() {
		delete(r.characters, id)
		return nil, false
	}
	return c, true
}

// Characters returns the live characters, pruning destroyed entries as it
// iterates. Order is unspecified.
func (r *Registry) Characters() []*character.Character {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*character.Character, 0, len(r.characters))
	for id, c := range r.characters {
		if c.Destroyed() {
			delete(r.characters, id)
			continue
		}
		out = append(out, c)
	}
	return out
}

// NearestWithin returns the closest live character to pos within radius,
// excluding the given ID (a character is never its own neighbour).
func (r *Registry) NearestWithin(pos core.Position3D, radius float64, exclude uint16) (*character.Character, bool) {
	var best *character.Character
	bestDist := radius
	for _, c := range r.Characters() {
		if c.Info().ID == exclude {
			continue
		}
		d := c.Position().DistanceTo(pos)
		if d <= bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != nil
}

// Count returns the number of live characters, pruning as a side effect.
func (r *Registry) Count() int {
	return len(r.Characters())
}
