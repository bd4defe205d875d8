package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragsim/vitals/internal/anatomy"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vitals.cfg.json"), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"db": { "host": "10.0.0.1", "port": "5433" }
	}`)

	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, "10.0.0.1", viper.GetString("db.host"))
	assert.Equal(t, "5433", viper.GetString("db.port"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{}`)
	require.NoError(t, Load(dir))

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./vitalslogs", viper.GetString("logsDir"))
	assert.Equal(t, "memory", viper.GetString("storage.type"))
	assert.Equal(t, "./recordings", viper.GetString("storage.memory.outputDir"))
	assert.Equal(t, true, viper.GetBool("storage.memory.compressOutput"))
	assert.Equal(t, "3m", viper.GetString("storage.sqlite.dumpInterval"))
	assert.Equal(t, "localhost", viper.GetString("db.host"))
	assert.Equal(t, "vitals", viper.GetString("db.database"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
	assert.Equal(t, "vitals-metrics", viper.GetString("influx.org"))
	assert.Equal(t, false, viper.GetBool("graylog.enabled"))
	assert.Equal(t, "localhost:12201", viper.GetString("graylog.address"))
	assert.Equal(t, false, viper.GetBool("otel.enabled"))
	assert.Equal(t, "vitalsim", viper.GetString("otel.serviceName"))
	assert.Equal(t, 0.75, viper.GetFloat64("thresholds.damaged"))
	assert.Equal(t, 100.0, viper.GetFloat64("bleed.maxBlood"))
	assert.Equal(t, 0.2, viper.GetFloat64("motor.minAtZeroHealth"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetStorageConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"storage": {
			"type": "sqlite",
			"memory": { "outputDir": "/tmp/out", "compressOutput": false },
			"sqlite": { "dumpInterval": "10m" }
		}
	}`)
	require.NoError(t, Load(dir))

	sc := GetStorageConfig()
	assert.Equal(t, "sqlite", sc.Type)
	assert.Equal(t, "/tmp/out", sc.Memory.OutputDir)
	assert.Equal(t, false, sc.Memory.CompressOutput)
	assert.Equal(t, 10*time.Minute, sc.SQLite.DumpInterval)
	assert.Equal(t, "postgres", sc.DB.Username)
}

func TestGetOTelConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{ "otel": { "enabled": true, "interval": "30s" } }`)
	require.NoError(t, Load(dir))

	oc := GetOTelConfig()
	assert.True(t, oc.Enabled)
	assert.Equal(t, "vitalsim", oc.ServiceName)
	assert.Equal(t, 30*time.Second, oc.Interval)
}

func TestGetSimConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{ "sim": { "sampleInterval": 0.5, "realtime": true } }`)
	require.NoError(t, Load(dir))

	sc := GetSimConfig()
	assert.Equal(t, 0.5, sc.SampleInterval)
	assert.Equal(t, 0.5, sc.MotorSmoothing)
	assert.True(t, sc.Realtime)
}

func TestGetCharacterConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{}`)
	require.NoError(t, Load(dir))

	cfg, err := GetCharacterConfig()
	require.NoError(t, err)
	assert.Equal(t, 0.75, cfg.Thresholds.Damaged)
	assert.Equal(t, 0.35, cfg.Thresholds.Critical)
	assert.Equal(t, 100.0, cfg.Bleed.MaxBlood)
	assert.Equal(t, 0.25, cfg.Motor.MinAtZeroBlood)
	assert.Nil(t, cfg.Profiles)
	assert.Nil(t, cfg.Redirect)
}

func TestGetCharacterConfig_LimbOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"limbs": {
			"head": { "maxHealth": 50 },
			"leftThigh": { "bleedMultiplier": 2.0, "affectsCharacter": true }
		}
	}`)
	require.NoError(t, Load(dir))

	cfg, err := GetCharacterConfig()
	require.NoError(t, err)
	require.Len(t, cfg.Profiles, 2)

	head := cfg.Profiles[anatomy.Head]
	assert.Equal(t, 50.0, head.MaxHealth)
	assert.Equal(t, 2.0, head.DamageMultiplier, "unset fields keep defaults")

	thigh := cfg.Profiles[anatomy.LeftThigh]
	assert.Equal(t, 2.0, thigh.BleedMultiplier)
	assert.True(t, thigh.AffectsCharacter)
}

func TestGetCharacterConfig_RedirectOverride(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{ "redirect": { "torso": 3, "head": 1 } }`)
	require.NoError(t, Load(dir))

	cfg, err := GetCharacterConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.Redirect)
	assert.InDelta(t, 75.0, cfg.Redirect.Weight(anatomy.Torso), 1e-9)
	assert.InDelta(t, 25.0, cfg.Redirect.Weight(anatomy.Head), 1e-9)
}

func TestGetCharacterConfig_BadLimbName(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{ "limbs": { "tail": { "maxHealth": 5 } } }`)
	require.NoError(t, Load(dir))

	_, err := GetCharacterConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tail")
}
