// Package sqlite implements the storage.Backend interface with an
// in-memory SQLite database and periodic disk dumps via VACUUM INTO. The
// batching lives in the embedded gormbe backend; the only SQLite-specific
// concerns here are the in-memory connection and the dump loop.
package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ragsim/vitals/internal/config"
	"github.com/ragsim/vitals/internal/database"
	"github.com/ragsim/vitals/internal/storage/gormbe"
)

// Backend wraps the GORM backend with SQLite lifecycle handling.
type Backend struct {
	*gormbe.Backend
	db       *gorm.DB
	cfg      config.SQLiteConfig
	logger   zerolog.Logger
	stopChan chan struct{}
}

// New creates a SQLite storage backend. The connection is opened in Init.
func New(cfg config.SQLiteConfig, logger zerolog.Logger) *Backend {
	return &Backend{
		cfg:    cfg,
		logger: logger.With().Str("backend", "sqlite").Logger(),
	}
}

// Init opens the in-memory database, migrates the schema, and starts the
// writer and dump goroutines.
func (b *Backend) Init() error {
	db, err := database.OpenSqlite("")
	if err != nil {
		return fmt.Errorf("failed to create in-memory SQLite DB: %w", err)
	}
	b.db = db
	b.Backend = gormbe.New(db, b.logger, 0)
	b.stopChan = make(chan struct{})

	if err := b.Backend.Init(); err != nil {
		return err
	}

	if b.cfg.Path != "" && b.cfg.DumpInterval > 0 {
		if err := os.MkdirAll(filepath.Dir(b.cfg.Path), 0755); err != nil {
			return fmt.Errorf("creating dump dir: %w", err)
		}
		go b.dumpLoop()
	}

	return nil
}

// Close stops the dump goroutine, flushes the writer, and takes a final
// disk dump so nothing recorded is lost.
func (b *Backend) Close() error {
	close(b.stopChan)
	if err := b.Backend.Close(); err != nil {
		return err
	}
	if b.cfg.Path != "" {
		if err := database.DumpMemoryDBToDisk(b.db, b.cfg.Path); err != nil {
			return fmt.Errorf("final disk dump: %w", err)
		}
	}
	return nil
}

// dumpLoop periodically dumps the in-memory database to disk. VACUUM INTO
// takes a point-in-time snapshot, so writes keep flowing during the dump.
func (b *Backend) dumpLoop() {
	ticker := time.NewTicker(b.cfg.DumpInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			start := time.Now()
			if err := database.DumpMemoryDBToDisk(b.db, b.cfg.Path); err != nil {
				b.logger.Error().Err(err).Msg("Error dumping to disk")
			} else {
				b.logger.Debug().Dur("duration", time.Since(start)).Msg("Dumped to disk")
			}
		}
	}
}
