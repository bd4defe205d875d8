// internal/storage/storage.go
package storage

import "github.com/ragsim/vitals/pkg/core"

// Backend is the interface all recording backends must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Session management. StartSession assigns the session ID on the
	// passed pointer.
	StartSession(s *core.Session) error
	EndSession() error

	// Entity registration
	AddCharacter(c *core.CharacterInfo) error

	// Event recording
	RecordDamage(e *core.DamageEvent) error
	RecordBloodSpawn(e *core.BloodSpawnEvent) error
	RecordDeath(e *core.DeathEvent) error
	RecordConsumable(e *core.ConsumableEvent) error
	RecordVitals(s *core.VitalsSample) error
}

// Exportable is an optional interface for backends that produce a file
// per session.
type Exportable interface {
	ExportedFilePath() string
}
