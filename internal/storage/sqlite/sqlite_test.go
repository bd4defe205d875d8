package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragsim/vitals/internal/config"
	"github.com/ragsim/vitals/internal/database"
	"github.com/ragsim/vitals/internal/model"
	"github.com/ragsim/vitals/pkg/core"
)

func TestCloseDumpsToDisk(t *testing.T) {
	dumpPath := filepath.Join(t.TempDir(), "run.db")

	b := New(config.SQLiteConfig{
		Path:         dumpPath,
		DumpInterval: time.Hour, // only the final dump matters here
	}, zerolog.Nop())
	require.NoError(t, b.Init())

	s := &core.Session{Name: "duel", ScenarioName: "duel"}
	require.NoError(t, b.StartSession(s))
	require.NoError(t, b.RecordDamage(&core.DamageEvent{
		SessionID: s.ID, CharacterID: 1, Limb: "torso", ActualDamage: 5,
	}))
	require.NoError(t, b.EndSession())
	require.NoError(t, b.Close())

	_, err := os.Stat(dumpPath)
	require.NoError(t, err, "final dump file should exist")

	// the dump is a full sqlite database
	dumped, err := database.OpenSqlite(dumpPath)
	require.NoError(t, err)

	var count int64
	require.NoError(t, dumped.Model(&model.DamageEvent{}).
		Where("session_id = ?", s.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
