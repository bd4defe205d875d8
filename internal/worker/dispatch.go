package worker

import (
	"context"
	"fmt"

	"github.com/ragsim/vitals/internal/dispatcher"
	"github.com/ragsim/vitals/internal/influx"
	"github.com/ragsim/vitals/pkg/core"
)

// RegisterHandlers registers all recording handlers with the dispatcher.
// Session and character registration are synchronous so the backend knows
// about them before any buffered event referencing them is drained.
func (m *Manager) RegisterHandlers(d *dispatcher.Dispatcher) {
	// Lifecycle - sync
	d.Register(dispatcher.TopicSessionStart, m.handleSessionStart, dispatcher.Logged())
	d.Register(dispatcher.TopicSessionEnd, m.handleSessionEnd, dispatcher.Logged())
	d.Register(dispatcher.TopicNewCharacter, m.handleNewCharacter, dispatcher.Logged())

	// Combat events - buffered
	d.Register(dispatcher.TopicDamage, m.handleDamage, dispatcher.Buffered(5000), dispatcher.Logged())
	d.Register(dispatcher.TopicBloodSpawn, m.handleBloodSpawn, dispatcher.Buffered(2000), dispatcher.Logged())
	d.Register(dispatcher.TopicDeath, m.handleDeath, dispatcher.Buffered(500), dispatcher.Logged())
	d.Register(dispatcher.TopicConsumable, m.handleConsumable, dispatcher.Buffered(500), dispatcher.Logged())

	// High-volume vitals snapshots - buffered, blocking so samples are
	// never dropped
	d.Register(dispatcher.TopicVitalsState, m.handleVitals, dispatcher.Buffered(10000), dispatcher.Blocking(), dispatcher.Logged())
}

func (m *Manager) handleSessionStart(e dispatcher.Event) error {
	s, err := payload[core.Session](e)
	if err != nil {
		return err
	}

	m.scenario = s.ScenarioName
	if err := m.backend.StartSession(&s); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	return nil
}

func (m *Manager) handleSessionEnd(e dispatcher.Event) error {
	if err := m.backend.EndSession(); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

func (m *Manager) handleNewCharacter(e dispatcher.Event) error {
	c, err := payload[core.CharacterInfo](e)
	if err != nil {
		return err
	}
	return m.backend.AddCharacter(&c)
}

func (m *Manager) handleDamage(e dispatcher.Event) error {
	ev, err := payload[core.DamageEvent](e)
	if err != nil {
		return err
	}

	if err := m.backend.RecordDamage(&ev); err != nil {
		return fmt.Errorf("failed to record damage event: %w", err)
	}

	if m.hasInflux() {
		point := influx.DamagePoint(m.scenario, &ev)
		if err := m.deps.Influx.WritePoint(context.Background(), "damage_events", point); err != nil {
			m.deps.Logger.Error().Err(err).Msg("Error writing damage point")
		}
	}
	return nil
}

func (m *Manager) handleBloodSpawn(e dispatcher.Event) error {
	ev, err := payload[core.BloodSpawnEvent](e)
	if err != nil {
		return err
	}
	return m.backend.RecordBloodSpawn(&ev)
}

func (m *Manager) handleDeath(e dispatcher.Event) error {
	ev, err := payload[core.DeathEvent](e)
	if err != nil {
		return err
	}
	return m.backend.RecordDeath(&ev)
}

func (m *Manager) handleConsumable(e dispatcher.Event) error {
	ev, err := payload[core.ConsumableEvent](e)
	if err != nil {
		return err
	}
	return m.backend.RecordConsumable(&ev)
}

func (m *Manager) handleVitals(e dispatcher.Event) error {
	ev, err := payload[core.VitalsSample](e)
	if err != nil {
		return err
	}

	if err := m.backend.RecordVitals(&ev); err != nil {
		return fmt.Errorf("failed to record vitals sample: %w", err)
	}

	if m.hasInflux() {
		point := influx.VitalsPoint(m.scenario, &ev)
		if err := m.deps.Influx.WritePoint(context.Background(), "character_vitals", point); err != nil {
			m.deps.Logger.Error().Err(err).Msg("Error writing vitals point")
		}
	}
	return nil
}
