// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ragsim/vitals/internal/config"
	"github.com/ragsim/vitals/internal/storage/memory"
	"github.com/ragsim/vitals/internal/storage/postgres"
	"github.com/ragsim/vitals/internal/storage/sqlite"
)

// NewBackend creates a recording backend based on configuration.
func NewBackend(cfg config.StorageConfig, logger zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return postgres.New(cfg.DB, logger), nil
	case "sqlite":
		return sqlite.New(cfg.SQLite, logger), nil
	case "memory":
		return memory.New(cfg.Memory, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
