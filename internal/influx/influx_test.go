package influx

import (
	"strings"
	"testing"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragsim/vitals/pkg/core"
)

func lineOf(p *influxdb2_write.Point) string {
	return influxdb2_write.PointToLineProtocol(p, time.Nanosecond)
}

func TestVitalsPoint(t *testing.T) {
	p := VitalsPoint("duel", &core.VitalsSample{
		CharacterID:    3,
		Tick:           40,
		BloodLevel:     87.5,
		Health:         120,
		TotalIntensity: 0.3,
		Time:           time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	})

	line := lineOf(p)
	assert.True(t, strings.HasPrefix(line, "vitals,"))
	assert.Contains(t, line, "character=3")
	assert.Contains(t, line, "scenario=duel")
	assert.Contains(t, line, "bloodLevel=87.5")
	assert.Contains(t, line, "tick=40i")
}

func TestDamagePoint(t *testing.T) {
	p := DamagePoint("duel", &core.DamageEvent{
		CharacterID:  1,
		Limb:         "head",
		DamageType:   "blunt",
		Amount:       10,
		ActualDamage: 20,
		IsCritical:   true,
	})

	line := lineOf(p)
	assert.Contains(t, line, "limb=head")
	assert.Contains(t, line, "damageType=blunt")
	assert.Contains(t, line, "actualDamage=20")
	assert.Contains(t, line, "critical=true")
}

func TestWritePointRequiresWriterOrBackup(t *testing.T) {
	m := NewManager(zerolog.Nop(), "")
	err := m.WritePoint(t.Context(), "character_vitals", TickPoint("duel", 1, time.Millisecond, 2))
	require.Error(t, err)
}
