// vitalsim replays a scripted combat scenario against the per-limb vitals
// model and records everything through the configured storage pipeline.
//
//	vitalsim [flags] <scenario-file>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ragsim/vitals/internal/config"
	"github.com/ragsim/vitals/internal/dispatcher"
	"github.com/ragsim/vitals/internal/influx"
	"github.com/ragsim/vitals/internal/logging"
	"github.com/ragsim/vitals/internal/monitor"
	"github.com/ragsim/vitals/internal/otel"
	"github.com/ragsim/vitals/internal/scenario"
	"github.com/ragsim/vitals/internal/sim"
	"github.com/ragsim/vitals/internal/storage"
	"github.com/ragsim/vitals/internal/worker"
)

var (
	Version = "0.1.0"
	AppName = "vitalsim"
)

func main() {
	configDir := flag.String("config", ".", "directory containing vitals.cfg.json")
	realtime := flag.Bool("realtime", false, "pace ticks on the wall clock")
	statusFile := flag.String("status", "", "write pipeline status snapshots to this file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", AppName, Version)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <scenario-file>\n", AppName)
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *configDir, *realtime, *statusFile); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}

func run(scriptPath, configDir string, realtime bool, statusFile string) error {
	sessionStart := time.Now()

	configErr := config.Load(configDir)

	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	logFile, err := os.OpenFile(
		logging.LogFilePath(logsDir, AppName, sessionStart),
		os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666,
	)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	gelfAddr := ""
	if config.GetBool("graylog.enabled") {
		gelfAddr = config.GetString("graylog.address")
	}
	logger, err := logging.Setup(config.GetString("logLevel"), logFile, gelfAddr)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	logger = logger.With().Str("app", AppName).Logger()
	logger.Info().Str("version", Version).Msg("Starting up")

	if configErr != nil {
		logger.Warn().Err(configErr).Msg("Failed to load config, using defaults")
	}
	logging.RemoveOldLogs(logger, logsDir, 7)

	// metrics
	otelCfg := config.GetOTelConfig()
	var metricsFile *os.File
	if otelCfg.Enabled {
		metricsFile, err = os.Create(filepath.Join(logsDir, AppName+".metrics.json"))
		if err != nil {
			return fmt.Errorf("creating metrics file: %w", err)
		}
		defer metricsFile.Close()
	}
	otelProvider, err := otel.New(otel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		Interval:     otelCfg.Interval,
		MetricWriter: metricsFile,
	})
	if err != nil {
		return fmt.Errorf("setting up metrics: %w", err)
	}

	// scenario
	script, err := loadScript(scriptPath)
	if err != nil {
		return err
	}
	logger.Info().
		Str("scenario", script.Name).
		Int("characters", len(script.Spawns)).
		Int("actions", len(script.Actions)).
		Msg("Scenario loaded")

	charCfg, err := config.GetCharacterConfig()
	if err != nil {
		return fmt.Errorf("building character config: %w", err)
	}

	// storage backend
	backend, err := storage.NewBackend(config.GetStorageConfig(), logger)
	if err != nil {
		return fmt.Errorf("creating storage backend: %w", err)
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("initializing storage backend: %w", err)
	}

	// influx is optional; a failed connect falls back to the backup writer
	influxMgr := setupInflux(logger)

	// recording pipeline
	disp, err := dispatcher.New(logging.NewDispatcherLogger(logger))
	if err != nil {
		return fmt.Errorf("creating dispatcher: %w", err)
	}
	workers := worker.NewManager(worker.Dependencies{
		Influx: influxMgr,
		Logger: logger,
	}, backend)
	workers.RegisterHandlers(disp)

	simCfg := config.GetSimConfig()
	sessions := sim.NewSessionContext()
	engine := sim.NewEngine(script, charCfg, sessions,
		worker.NewDispatchSink(disp, logger), logger, sim.Options{
			SampleInterval: simCfg.SampleInterval,
			MotorSmoothing: simCfg.MotorSmoothing,
			Realtime:       simCfg.Realtime || realtime,
		})

	mon := monitor.NewService(monitor.Dependencies{
		Dispatcher: disp,
		Engine:     engine,
		Sessions:   sessions,
		Backend:    backend,
		Influx:     influxMgr,
		Logger:     logger,
		Interval:   time.Second,
		StatusFile: statusFile,
	})
	if err := mon.Start(); err != nil {
		return fmt.Errorf("starting monitor: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := engine.Run(ctx)

	// drain the pipeline, end the session, then release the backend
	mon.Stop()
	disp.Close()
	if err := disp.Publish(dispatcher.TopicSessionEnd, *sessions.Current()); err != nil {
		logger.Error().Err(err).Msg("Error ending session")
	}
	if err := backend.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing storage backend")
	}
	if exp, ok := backend.(storage.Exportable); ok && exp.ExportedFilePath() != "" {
		logger.Info().Str("path", exp.ExportedFilePath()).Msg("Recording exported")
	}
	if influxMgr != nil {
		influxMgr.Close()
	}
	if err := otelProvider.Flush(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("Error flushing metrics")
	}
	if err := otelProvider.Shutdown(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("Error shutting down metrics")
	}

	if runErr != nil {
		return fmt.Errorf("scenario run: %w", runErr)
	}
	logger.Info().Msg("Run complete")
	return nil
}

func loadScript(path string) (*scenario.Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scenario: %w", err)
	}
	defer f.Close()

	script, err := scenario.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return script, nil
}

// setupInflux connects the InfluxDB pipeline when enabled, nil otherwise.
func setupInflux(logger zerolog.Logger) *influx.Manager {
	cfg := config.GetInfluxConfig()
	if !cfg.Enabled {
		return nil
	}

	if err := os.MkdirAll(cfg.BackupDir, 0755); err != nil {
		logger.Error().Err(err).Msg("Error creating influx backup dir")
		return nil
	}

	m := influx.NewManager(logger, filepath.Join(cfg.BackupDir, "influx_backup.log.gzip"))
	if err := m.Connect(); err != nil {
		logger.Error().Err(err).Msg("Error connecting to InfluxDB")
		return nil
	}
	return m
}
