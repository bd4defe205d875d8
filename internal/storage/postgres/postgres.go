// Package postgres implements the storage.Backend interface over a
// PostgreSQL connection, falling back to in-memory SQLite when the server
// is unreachable. Batching lives in the embedded gormbe backend.
package postgres

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ragsim/vitals/internal/config"
	"github.com/ragsim/vitals/internal/database"
	"github.com/ragsim/vitals/internal/storage/gormbe"
)

const (
	instanceName    = "vitals-recorder"
	recorderVersion = "0.1.0"
)

// Backend wraps the GORM backend with postgres connection lifecycle.
type Backend struct {
	*gormbe.Backend
	cfg     config.DBConfig
	logger  zerolog.Logger
	manager *database.Manager
}

// New creates a postgres storage backend. The connection is opened in Init.
func New(cfg config.DBConfig, logger zerolog.Logger) *Backend {
	return &Backend{
		cfg:    cfg,
		logger: logger.With().Str("backend", "postgres").Logger(),
	}
}

// Init connects (with sqlite fallback), migrates the schema, and starts
// the writer goroutine.
func (b *Backend) Init() error {
	b.manager = database.NewManager(b.logger)
	if err := b.manager.Connect(b.cfg); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	if b.manager.ShouldSaveLocal {
		b.logger.Warn().Msg("Postgres unreachable, recording to in-memory SQLite")
	}
	if err := b.manager.Setup(instanceName, recorderVersion); err != nil {
		return fmt.Errorf("failed to set up schema: %w", err)
	}

	b.Backend = gormbe.New(b.manager.DB, b.logger, 0)
	return b.Backend.Init()
}

// Close flushes the writer and closes the connection pool.
func (b *Backend) Close() error {
	if b.Backend != nil {
		if err := b.Backend.Close(); err != nil {
			return err
		}
	}
	if b.manager != nil && b.manager.SqlDB != nil {
		return b.manager.SqlDB.Close()
	}
	return nil
}
