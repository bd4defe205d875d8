package worker

import (
	"github.com/rs/zerolog"

	"github.com/ragsim/vitals/internal/dispatcher"
	"github.com/ragsim/vitals/internal/sim"
	"github.com/ragsim/vitals/pkg/core"
)

// DispatchSink adapts the dispatcher to the simulation's sink interface.
// Publish failures (a full queue, a closed dispatcher) are logged and
// swallowed so a slow recording pipeline never aborts a run.
type DispatchSink struct {
	d      *dispatcher.Dispatcher
	logger zerolog.Logger
}

var _ sim.Sink = (*DispatchSink)(nil)

// NewDispatchSink creates a sink publishing to the given dispatcher.
func NewDispatchSink(d *dispatcher.Dispatcher, logger zerolog.Logger) *DispatchSink {
	return &DispatchSink{d: d, logger: logger}
}

func (s *DispatchSink) publish(topic string, p any) {
	if err := s.d.Publish(topic, p); err != nil {
		s.logger.Error().Err(err).Str("topic", topic).Msg("Failed to publish event")
	}
}

func (s *DispatchSink) SessionStarted(e core.Session) {
	s.publish(dispatcher.TopicSessionStart, e)
}

// SessionEnded is a no-op: ending the session before the buffered topics
// drain would export an incomplete recording. The pipeline owner publishes
// TopicSessionEnd after closing the dispatcher.
func (s *DispatchSink) SessionEnded(core.Session) {}

func (s *DispatchSink) CharacterSpawned(e core.CharacterInfo) {
	s.publish(dispatcher.TopicNewCharacter, e)
}

func (s *DispatchSink) RecordDamage(e core.DamageEvent) {
	s.publish(dispatcher.TopicDamage, e)
}

func (s *DispatchSink) RecordBloodSpawn(e core.BloodSpawnEvent) {
	s.publish(dispatcher.TopicBloodSpawn, e)
}

func (s *DispatchSink) RecordDeath(e core.DeathEvent) {
	s.publish(dispatcher.TopicDeath, e)
}

func (s *DispatchSink) RecordConsumable(e core.ConsumableEvent) {
	s.publish(dispatcher.TopicConsumable, e)
}

func (s *DispatchSink) RecordVitals(e core.VitalsSample) {
	s.publish(dispatcher.TopicVitalsState, e)
}
