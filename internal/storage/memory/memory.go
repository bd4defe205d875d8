// internal/storage/memory/memory.go
package memory

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ragsim/vitals/internal/config"
	"github.com/ragsim/vitals/pkg/core"
)

// CharacterRecord groups a character with its vitals time series.
type CharacterRecord struct {
	Character core.CharacterInfo  `json:"character"`
	Vitals    []core.VitalsSample `json:"vitals"`
}

// Backend stores session data in memory and exports to JSON on EndSession.
type Backend struct {
	cfg    config.MemoryConfig
	logger zerolog.Logger

	session    *core.Session
	characters map[uint16]*CharacterRecord

	damageEvents     []core.DamageEvent
	bloodSpawnEvents []core.BloodSpawnEvent
	deathEvents      []core.DeathEvent
	consumableEvents []core.ConsumableEvent

	sessionCounter uint
	exportedPath   string
	mu             sync.RWMutex
}

// New creates a new memory backend.
func New(cfg config.MemoryConfig, logger zerolog.Logger) *Backend {
	return &Backend{
		cfg:        cfg,
		logger:     logger.With().Str("backend", "memory").Logger(),
		characters: make(map[uint16]*CharacterRecord),
	}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources.
func (b *Backend) Close() error {
	return nil
}

// StartSession begins recording a new session and resets all collections.
func (b *Backend) StartSession(s *core.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sessionCounter++
	s.ID = b.sessionCounter
	b.session = s

	b.characters = make(map[uint16]*CharacterRecord)
	b.damageEvents = nil
	b.bloodSpawnEvents = nil
	b.deathEvents = nil
	b.consumableEvents = nil
	b.exportedPath = ""

	return nil
}

// EndSession finalizes and exports the session data.
func (b *Backend) EndSession() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return fmt.Errorf("no session in progress")
	}
	return b.exportJSON()
}

// AddCharacter registers a new character.
func (b *Backend) AddCharacter(c *core.CharacterInfo) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.characters[c.ID] = &CharacterRecord{
		Character: *c,
		Vitals:    make([]core.VitalsSample, 0),
	}
	return nil
}

// CharacterByID looks up a registered character.
func (b *Backend) CharacterByID(id uint16) (*core.CharacterInfo, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if record, ok := b.characters[id]; ok {
		return &record.Character, true
	}
	return nil, false
}

// RecordDamage records a damage event.
func (b *Backend) RecordDamage(e *core.DamageEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.damageEvents = append(b.damageEvents, *e)
	return nil
}

// RecordBloodSpawn records a blood spawn event.
func (b *Backend) RecordBloodSpawn(e *core.BloodSpawnEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bloodSpawnEvents = append(b.bloodSpawnEvents, *e)
	return nil
}

// RecordDeath records a death event.
func (b *Backend) RecordDeath(e *core.DeathEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deathEvents = append(b.deathEvents, *e)
	return nil
}

// RecordConsumable records a consumable use event.
func (b *Backend) RecordConsumable(e *core.ConsumableEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.consumableEvents = append(b.consumableEvents, *e)
	return nil
}

// RecordVitals appends a vitals sample to its character's time series.
// Samples for unregistered characters are silently ignored.
func (b *Backend) RecordVitals(s *core.VitalsSample) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if record, ok := b.characters[s.CharacterID]; ok {
		record.Vitals = append(record.Vitals, *s)
	}
	return nil
}

// ExportedFilePath returns the path of the last exported session file,
// empty before the first export.
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.exportedPath
}
