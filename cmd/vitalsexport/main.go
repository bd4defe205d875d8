// vitalsexport works against a recorded vitals database: it can export
// finished sessions as gzipped JSON for analysis tooling, or thin out
// high-frequency vitals samples to reclaim space.
//
//	vitalsexport [flags] getjson <session-id> [session-id...]
//	vitalsexport [flags] reduce  <session-id> [session-id...]
package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ragsim/vitals/internal/config"
	"github.com/ragsim/vitals/internal/database"
	"github.com/ragsim/vitals/internal/model"
)

var db *gorm.DB

func main() {
	configDir := flag.String("config", ".", "directory containing vitals.cfg.json")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "usage: vitalsexport [flags] <getjson|reduce> <session-id> [session-id...]")
		os.Exit(2)
	}

	if err := config.Load(*configDir); err != nil {
		logger.Warn().Err(err).Msg("Failed to load config, using defaults")
	}

	var err error
	db, err = openDatabase(config.GetStorageConfig())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open database")
	}
	logger.Info().Msg("Database connection established")

	ids, err := parseSessionIDs(flag.Args()[1:])
	if err != nil {
		logger.Fatal().Err(err).Msg("Bad session ID")
	}

	switch strings.ToLower(flag.Arg(0)) {
	case "getjson":
		err = exportSessions(logger, ids)
	case "reduce":
		err = reduceSessions(logger, ids)
	default:
		err = fmt.Errorf("unknown command %q", flag.Arg(0))
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("Command failed")
	}
}

func openDatabase(cfg config.StorageConfig) (*gorm.DB, error) {
	switch cfg.Type {
	case "postgres":
		return database.OpenPostgres(cfg.DB)
	case "sqlite":
		return database.OpenSqlite(cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("storage type %q has no database to export", cfg.Type)
	}
}

func parseSessionIDs(args []string) ([]uint, error) {
	ids := make([]uint, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("session ID %q: %w", a, err)
		}
		ids = append(ids, uint(n))
	}
	return ids, nil
}

// characterExport is one character's full timeline in the export file.
type characterExport struct {
	EntityID    uint16                  `json:"entityId"`
	Name        string                  `json:"name"`
	Team        string                  `json:"team"`
	IsPlayer    bool                    `json:"isPlayer"`
	SpawnTick   uint                    `json:"spawnTick"`
	Vitals      []model.VitalsSample    `json:"vitals"`
	Damage      []model.DamageEvent     `json:"damage"`
	Deaths      []model.DeathEvent      `json:"deaths"`
	Consumables []model.ConsumableEvent `json:"consumables"`
}

func exportSessions(logger zerolog.Logger, ids []uint) error {
	for _, id := range ids {
		txStart := time.Now()

		var session model.Session
		if err := db.First(&session, id).Error; err != nil {
			return fmt.Errorf("session %d: %w", id, err)
		}

		var characters []model.Character
		if err := db.Where("session_id = ?", id).Find(&characters).Error; err != nil {
			return fmt.Errorf("characters for session %d: %w", id, err)
		}

		// bulk-fetch everything once, then group by entity
		vitalsByEntity, err := groupByEntity[model.VitalsSample](id)
		if err != nil {
			return err
		}
		damageByEntity, err := groupByEntity[model.DamageEvent](id)
		if err != nil {
			return err
		}
		deathsByEntity, err := groupByEntity[model.DeathEvent](id)
		if err != nil {
			return err
		}
		consumablesByEntity, err := groupByEntity[model.ConsumableEvent](id)
		if err != nil {
			return err
		}

		out := map[string]any{
			"session":  session,
			"exported": time.Now(),
		}
		entities := make([]characterExport, 0, len(characters))
		for _, c := range characters {
			entities = append(entities, characterExport{
				EntityID:    c.EntityID,
				Name:        c.Name,
				Team:        c.Team,
				IsPlayer:    c.IsPlayer,
				SpawnTick:   c.SpawnTick,
				Vitals:      vitalsByEntity[c.EntityID],
				Damage:      damageByEntity[c.EntityID],
				Deaths:      deathsByEntity[c.EntityID],
				Consumables: consumablesByEntity[c.EntityID],
			})
		}
		out["characters"] = entities

		var endTick uint
		db.Model(&model.VitalsSample{}).Where("session_id = ?", id).
			Select("COALESCE(MAX(tick), 0)").Scan(&endTick)
		out["endTick"] = endTick

		logger.Info().Uint("session", id).Dur("elapsed", time.Since(txStart)).Msg("Collected session data")

		if err := writeGzippedJSON(exportFileName(session), out); err != nil {
			return err
		}
		logger.Info().Str("file", exportFileName(session)).Msg("Wrote session export")
	}
	return nil
}

// entityRow covers every exported event type; they all carry EntityID and Tick.
type entityRow interface {
	model.VitalsSample | model.DamageEvent | model.DeathEvent | model.ConsumableEvent
}

func groupByEntity[T entityRow](sessionID uint) (map[uint16][]T, error) {
	var rows []T
	err := db.Where("session_id = ?", sessionID).Order("tick ASC").Find(&rows).Error
	if err != nil {
		var zero T
		return nil, fmt.Errorf("fetching %T for session %d: %w", zero, sessionID, err)
	}

	grouped := make(map[uint16][]T)
	for _, row := range rows {
		grouped[entityOf(row)] = append(grouped[entityOf(row)], row)
	}
	return grouped, nil
}

func entityOf[T entityRow](row T) uint16 {
	switch r := any(row).(type) {
	case model.VitalsSample:
		return r.EntityID
	case model.DamageEvent:
		return r.EntityID
	case model.DeathEvent:
		return r.EntityID
	case model.ConsumableEvent:
		return r.EntityID
	}
	return 0
}

func exportFileName(s model.Session) string {
	name := strings.NewReplacer(" ", "_", ":", "_", "/", "-").Replace(s.ScenarioName)
	if name == "" {
		name = "session"
	}
	return fmt.Sprintf("%s_%s.json.gz", name, s.StartTime.Format("20060102_150405"))
}

func writeGzippedJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	gz := gzip.NewWriter(f)
	defer func() { _ = gz.Close() }()

	if err := json.NewEncoder(gz).Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// reduceSessions deletes vitals samples off the 5-tick grid, keeping the
// curve shape while cutting most of the volume, then vacuums.
func reduceSessions(logger zerolog.Logger, ids []uint) error {
	for _, id := range ids {
		txStart := time.Now()

		res := db.Where("session_id = ? AND tick % 5 != 0", id).Delete(&model.VitalsSample{})
		if res.Error != nil {
			return fmt.Errorf("reducing session %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			logger.Info().Uint("session", id).Msg("No vitals samples to reduce")
			continue
		}
		logger.Info().Uint("session", id).Int64("deleted", res.RowsAffected).
			Dur("elapsed", time.Since(txStart)).Msg("Reduced vitals samples")
	}

	logger.Info().Msg("Running VACUUM to recover space")
	txStart := time.Now()
	if err := db.Exec("VACUUM").Error; err != nil {
		return fmt.Errorf("vacuum: %w", err)
	}
	logger.Info().Dur("elapsed", time.Since(txStart)).Msg("Finished VACUUM")
	return nil
}
