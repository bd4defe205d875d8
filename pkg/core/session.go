// pkg/core/session.go
package core

import "time"

// Session describes a single simulation run.
type Session struct {
	ID           uint
	Name         string
	ScenarioName string
	Seed         int64
	TickRate     float64 // simulation ticks per second
	StartTime    time.Time
	EndTime      time.Time
}

// CharacterInfo identifies a simulated character within a session.
type CharacterInfo struct {
	ID        uint16
	SessionID uint
	Name      string
	Team      string
	IsPlayer  bool
	SpawnTick uint
	SpawnTime time.Time
}
