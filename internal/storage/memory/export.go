// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ragsim/vitals/pkg/core"
)

// exportFormatVersion identifies the JSON layout for downstream readers.
const exportFormatVersion = 1

// Export is the on-disk layout of one recorded session.
type Export struct {
	FormatVersion    int                    `json:"formatVersion"`
	Session          core.Session           `json:"session"`
	Characters       []CharacterRecord      `json:"characters"`
	DamageEvents     []core.DamageEvent     `json:"damageEvents"`
	BloodSpawnEvents []core.BloodSpawnEvent `json:"bloodSpawnEvents"`
	DeathEvents      []core.DeathEvent      `json:"deathEvents"`
	ConsumableEvents []core.ConsumableEvent `json:"consumableEvents"`
}

// exportJSON writes the session data to a JSON file in the output dir.
// Caller holds the write lock.
func (b *Backend) exportJSON() error {
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	export := Export{
		FormatVersion:    exportFormatVersion,
		Session:          *b.session,
		DamageEvents:     b.damageEvents,
		BloodSpawnEvents: b.bloodSpawnEvents,
		DeathEvents:      b.deathEvents,
		ConsumableEvents: b.consumableEvents,
	}
	for _, record := range b.characters {
		export.Characters = append(export.Characters, *record)
	}

	name := fmt.Sprintf("%s.%s.json",
		sanitizeName(b.session.ScenarioName),
		b.session.StartTime.Format("20060102_150405"))
	if b.cfg.CompressOutput {
		name += ".gz"
	}
	path := filepath.Join(b.cfg.OutputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if b.cfg.CompressOutput {
		gz := gzip.NewWriter(f)
		if err := json.NewEncoder(gz).Encode(export); err != nil {
			gz.Close()
			return fmt.Errorf("encoding export: %w", err)
		}
		if err := gz.Close(); err != nil {
			return fmt.Errorf("closing gzip writer: %w", err)
		}
	} else {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(export); err != nil {
			return fmt.Errorf("encoding export: %w", err)
		}
	}

	b.exportedPath = path
	b.logger.Info().
		Str("path", path).
		Int("characters", len(export.Characters)).
		Int("damageEvents", len(export.DamageEvents)).
		Msg("Session exported")
	return nil
}

// sanitizeName makes a scenario name safe for use in a filename.
func sanitizeName(name string) string {
	if name == "" {
		return "session"
	}
	replacer := strings.NewReplacer(
		" ", "_", "/", "-", "\\", "-", ":", "-",
		"*", "", "?", "", "\"", "", "<", "", ">", "", "|", "",
	)
	return replacer.Replace(name)
}
