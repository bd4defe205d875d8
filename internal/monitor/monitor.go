// Package monitor periodically reports the health of the recording
// pipeline: dispatcher queue depths, backend write queue depths, and the
// simulation clock. The snapshot goes to the log, optionally to a status
// file, and optionally to InfluxDB as sim_performance points.
package monitor

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ragsim/vitals/internal/dispatcher"
	"github.com/ragsim/vitals/internal/influx"
	"github.com/ragsim/vitals/internal/sim"
	"github.com/ragsim/vitals/internal/storage"
)

// QueueDepthProvider is implemented by backends that batch writes and can
// report their outstanding queue sizes.
type QueueDepthProvider interface {
	QueueDepths() map[string]int
}

// Dependencies holds all dependencies for the monitor service.
type Dependencies struct {
	Dispatcher *dispatcher.Dispatcher
	Engine     *sim.Engine
	Sessions   *sim.SessionContext
	Backend    storage.Backend
	Influx     *influx.Manager // nil disables performance points
	Logger     zerolog.Logger
	Interval   time.Duration
	StatusFile string // empty disables the status file
}

// Service manages status monitoring.
type Service struct {
	deps      Dependencies
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// Status is one snapshot of the pipeline state.
type Status struct {
	Time          time.Time      `json:"time"`
	Scenario      string         `json:"scenario"`
	Tick          uint           `json:"tick"`
	Characters    int            `json:"characters"`
	TopicDepths   map[string]int `json:"topicDepths"`
	BackendDepths map[string]int `json:"backendDepths,omitempty"`
}

// NewService creates a new monitor service.
func NewService(deps Dependencies) *Service {
	if deps.Interval <= 0 {
		deps.Interval = time.Second
	}
	return &Service{
		deps:     deps,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the status monitor is running.
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetStatus assembles the current pipeline snapshot.
func (s *Service) GetStatus() Status {
	topics := []string{
		dispatcher.TopicDamage,
		dispatcher.TopicBloodSpawn,
		dispatcher.TopicDeath,
		dispatcher.TopicConsumable,
		dispatcher.TopicVitalsState,
	}
	depths := make(map[string]int, len(topics))
	for _, topic := range topics {
		depths[topic] = s.deps.Dispatcher.QueueDepth(topic)
	}

	status := Status{
		Time:        time.Now(),
		Scenario:    s.deps.Sessions.Current().ScenarioName,
		TopicDepths: depths,
	}
	if s.deps.Engine != nil {
		status.Tick = s.deps.Engine.Tick()
		status.Characters = s.deps.Engine.Registry().Count()
	}
	if p, ok := s.deps.Backend.(QueueDepthProvider); ok {
		status.BackendDepths = p.QueueDepths()
	}
	return status
}

// Start starts the status monitor goroutine.
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	go s.run()
	return nil
}

// Stop stops the status monitor.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		close(s.stopChan)
	}
}

func (s *Service) run() {
	defer func() {
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
	}()

	logger := s.deps.Logger
	logger.Debug().Msg("Starting status monitor goroutine")

	var statusFile *os.File
	if s.deps.StatusFile != "" {
		var err error
		statusFile, err = os.Create(s.deps.StatusFile)
		if err != nil {
			logger.Error().Err(err).Msg("Error creating status file")
		} else {
			defer statusFile.Close()
		}
	}

	ticker := time.NewTicker(s.deps.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			status := s.GetStatus()

			logger.Debug().
				Uint("tick", status.Tick).
				Int("characters", status.Characters).
				Interface("topicDepths", status.TopicDepths).
				Interface("backendDepths", status.BackendDepths).
				Msg("Pipeline status")

			if statusFile != nil {
				s.writeStatusFile(statusFile, status)
			}

			if s.deps.Influx != nil {
				point := influx.TickPoint(status.Scenario, status.Tick, s.deps.Interval, status.Characters)
				if err := s.deps.Influx.WritePoint(context.Background(), "sim_performance", point); err != nil {
					logger.Error().Err(err).Msg("Error writing performance point")
				}
			}
		}
	}
}

func (s *Service) writeStatusFile(f *os.File, status Status) {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		s.deps.Logger.Error().Err(err).Msg("Error marshalling status")
		return
	}
	if err := f.Truncate(0); err != nil {
		return
	}
	if _, err := f.Seek(0, 0); err != nil {
		return
	}
	_, _ = f.Write(append(data, '\n'))
}
