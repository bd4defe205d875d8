// Package worker connects the dispatcher topics to the recording backend
// and the InfluxDB pipeline. The simulation publishes through DispatchSink;
// the handlers here run either inline or on the dispatcher's buffered
// workers, never on the tick goroutine.
package worker

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ragsim/vitals/internal/dispatcher"
	"github.com/ragsim/vitals/internal/influx"
	"github.com/ragsim/vitals/internal/storage"
)

// Dependencies holds the optional collaborators of the worker manager.
type Dependencies struct {
	Influx *influx.Manager // nil disables metric writes
	Logger zerolog.Logger
}

// Manager owns the dispatcher handlers for recording.
type Manager struct {
	deps    Dependencies
	backend storage.Backend

	// scenario is set by the session start handler before any buffered
	// event referencing it is processed.
	scenario string
}

// NewManager creates a worker manager over a storage backend.
func NewManager(deps Dependencies, backend storage.Backend) *Manager {
	return &Manager{
		deps:    deps,
		backend: backend,
	}
}

func (m *Manager) hasInflux() bool {
	return m.deps.Influx != nil
}

// payload extracts a typed payload from an event.
func payload[T any](e dispatcher.Event) (T, error) {
	v, ok := e.Payload.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("unexpected payload %T for topic %s", e.Payload, e.Topic)
	}
	return v, nil
}
