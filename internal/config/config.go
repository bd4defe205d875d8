// Package config loads vitals.cfg.json through viper and exposes typed
// views of the settings the rest of the program needs.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/ragsim/vitals/internal/anatomy"
	"github.com/ragsim/vitals/internal/bleed"
	"github.com/ragsim/vitals/internal/character"
	"github.com/ragsim/vitals/internal/health"
	"github.com/ragsim/vitals/internal/motor"
)

// MemoryConfig holds in-memory/JSON storage backend settings.
type MemoryConfig struct {
	OutputDir      string
	CompressOutput bool
}

// SQLiteConfig holds local sqlite backend settings.
type SQLiteConfig struct {
	Path         string
	DumpInterval time.Duration
}

// DBConfig holds postgres connection settings.
type DBConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// StorageConfig selects and tunes the recording backend.
type StorageConfig struct {
	Type   string
	Memory MemoryConfig
	SQLite SQLiteConfig
	DB     DBConfig
}

// InfluxConfig holds the time-series sink settings.
type InfluxConfig struct {
	Enabled   bool
	Host      string
	Port      string
	Protocol  string
	Token     string
	Org       string
	BackupDir string
}

// OTelConfig holds metrics exporter settings.
type OTelConfig struct {
	Enabled     bool
	ServiceName string
	Interval    time.Duration
}

// SimConfig tunes the scenario engine around the script's own settings.
type SimConfig struct {
	SampleInterval float64
	MotorSmoothing float64
	Realtime       bool
}

// Load reads configuration from the JSON file in configDir and installs
// default values for everything the file omits.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./vitalslogs")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./recordings")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.sqlite.path", "./recordings/vitals.db")
	viper.SetDefault("storage.sqlite.dumpInterval", "3m")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "vitals")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "vitals-metrics")
	viper.SetDefault("influx.backupDir", "./recordings/influx-backup")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "vitalsim")
	viper.SetDefault("otel.interval", "10s")

	viper.SetDefault("sim.sampleInterval", 1.0)
	viper.SetDefault("sim.motorSmoothing", 0.5)
	viper.SetDefault("sim.realtime", false)

	viper.SetDefault("thresholds.damaged", 0.75)
	viper.SetDefault("thresholds.critical", 0.35)
	viper.SetDefault("thresholds.heavyBash", 0.3)

	viper.SetDefault("bleed.baseRate", 1.0)
	viper.SetDefault("bleed.spawnThreshold", 0.25)
	viper.SetDefault("bleed.drainRate", 1.0)
	viper.SetDefault("bleed.maxBlood", 100.0)
	viper.SetDefault("bleed.dotDamagePerSecond", 0.5)
	viper.SetDefault("bleed.dotInterval", 2.0)
	viper.SetDefault("bleed.lightIntensity", 0.15)
	viper.SetDefault("bleed.heavyIntensity", 0.5)

	viper.SetDefault("motor.minAtZeroHealth", 0.2)
	viper.SetDefault("motor.minAtZeroBlood", 0.25)

	viper.SetConfigName("vitals.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetStorageConfig returns the storage backend settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path:         viper.GetString("storage.sqlite.path"),
			DumpInterval: viper.GetDuration("storage.sqlite.dumpInterval"),
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			Database: viper.GetString("db.database"),
		},
	}
}

// GetInfluxConfig returns the time-series sink settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:   viper.GetBool("influx.enabled"),
		Host:      viper.GetString("influx.host"),
		Port:      viper.GetString("influx.port"),
		Protocol:  viper.GetString("influx.protocol"),
		Token:     viper.GetString("influx.token"),
		Org:       viper.GetString("influx.org"),
		BackupDir: viper.GetString("influx.backupDir"),
	}
}

// GetOTelConfig returns the metrics exporter settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:     viper.GetBool("otel.enabled"),
		ServiceName: viper.GetString("otel.serviceName"),
		Interval:    viper.GetDuration("otel.interval"),
	}
}

// GetSimConfig returns the scenario engine settings.
func GetSimConfig() SimConfig {
	return SimConfig{
		SampleInterval: viper.GetFloat64("sim.sampleInterval"),
		MotorSmoothing: viper.GetFloat64("sim.motorSmoothing"),
		Realtime:       viper.GetBool("sim.realtime"),
	}
}

// GetCharacterConfig assembles the per-character tuning: thresholds, bleed
// and motor sections plus optional per-limb profile overrides and redirect
// weight overrides.
func GetCharacterConfig() (character.Config, error) {
	cfg := character.Config{
		Thresholds: health.Thresholds{
			Damaged:   viper.GetFloat64("thresholds.damaged"),
			Critical:  viper.GetFloat64("thresholds.critical"),
			HeavyBash: viper.GetFloat64("thresholds.heavyBash"),
		},
		Bleed: bleed.Config{
			BaseRate:           viper.GetFloat64("bleed.baseRate"),
			SpawnThreshold:     viper.GetFloat64("bleed.spawnThreshold"),
			DrainRate:          viper.GetFloat64("bleed.drainRate"),
			MaxBlood:           viper.GetFloat64("bleed.maxBlood"),
			DotDamagePerSecond: viper.GetFloat64("bleed.dotDamagePerSecond"),
			DotInterval:        viper.GetFloat64("bleed.dotInterval"),
			LightIntensity:     viper.GetFloat64("bleed.lightIntensity"),
			HeavyIntensity:     viper.GetFloat64("bleed.heavyIntensity"),
		},
		Motor: motor.Config{
			MinAtZeroHealth: viper.GetFloat64("motor.minAtZeroHealth"),
			MinAtZeroBlood:  viper.GetFloat64("motor.minAtZeroBlood"),
		},
	}

	limbs := viper.GetStringMap("limbs")
	if len(limbs) > 0 {
		cfg.Profiles = make(map[anatomy.LimbID]anatomy.Profile, len(limbs))
		for name := range limbs {
			limb, err := anatomy.ParseLimb(name)
			if err != nil {
				return cfg, fmt.Errorf("limbs config: %w", err)
			}
			profile := anatomy.DefaultProfile(limb)
			prefix := "limbs." + name + "."
			if viper.IsSet(prefix + "maxHealth") {
				profile.MaxHealth = viper.GetFloat64(prefix + "maxHealth")
			}
			if viper.IsSet(prefix + "damageMultiplier") {
				profile.DamageMultiplier = viper.GetFloat64(prefix + "damageMultiplier")
			}
			if viper.IsSet(prefix + "bleedMultiplier") {
				profile.BleedMultiplier = viper.GetFloat64(prefix + "bleedMultiplier")
			}
			if viper.IsSet(prefix + "affectsCharacter") {
				profile.AffectsCharacter = viper.GetBool(prefix + "affectsCharacter")
			}
			cfg.Profiles[limb] = profile
		}
	}

	redirect := viper.GetStringMap("redirect")
	if len(redirect) > 0 {
		tbl := &character.WeightTable{}
		for name := range redirect {
			limb, err := anatomy.ParseLimb(name)
			if err != nil {
				return cfg, fmt.Errorf("redirect config: %w", err)
			}
			tbl.Set(limb, viper.GetFloat64("redirect."+name))
		}
		if err := tbl.Normalize(); err != nil {
			return cfg, fmt.Errorf("redirect config: %w", err)
		}
		cfg.Redirect = tbl
	}

	return cfg, nil
}
