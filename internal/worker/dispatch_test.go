package worker

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragsim/vitals/internal/config"
	"github.com/ragsim/vitals/internal/dispatcher"
	"github.com/ragsim/vitals/internal/storage/memory"
	"github.com/ragsim/vitals/pkg/core"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func newTestPipeline(t *testing.T) (*dispatcher.Dispatcher, *memory.Backend, *DispatchSink) {
	t.Helper()

	backend := memory.New(config.MemoryConfig{OutputDir: t.TempDir()}, zerolog.Nop())
	require.NoError(t, backend.Init())

	d, err := dispatcher.New(nopLogger{})
	require.NoError(t, err)

	m := NewManager(Dependencies{Logger: zerolog.Nop()}, backend)
	m.RegisterHandlers(d)

	return d, backend, NewDispatchSink(d, zerolog.Nop())
}

func TestPipelineRecordsThroughDispatcher(t *testing.T) {
	d, backend, sink := newTestPipeline(t)

	sink.SessionStarted(core.Session{Name: "duel", ScenarioName: "duel"})
	sink.CharacterSpawned(core.CharacterInfo{ID: 1, Name: "alice"})
	sink.RecordDamage(core.DamageEvent{CharacterID: 1, Limb: "head", ActualDamage: 20})
	sink.RecordVitals(core.VitalsSample{CharacterID: 1, BloodLevel: 95})
	sink.RecordDeath(core.DeathEvent{CharacterID: 1, Cause: core.DeathCauseLimb, Limb: "head"})

	// drain the buffered handlers before ending the session
	d.Close()
	require.NoError(t, d.Publish(dispatcher.TopicSessionEnd, core.Session{}))

	c, ok := backend.CharacterByID(1)
	require.True(t, ok)
	assert.Equal(t, "alice", c.Name)
	assert.NotEmpty(t, backend.ExportedFilePath())
}

func TestHandlersRejectWrongPayload(t *testing.T) {
	d, _, _ := newTestPipeline(t)

	err := d.Publish(dispatcher.TopicSessionStart, "not a session")
	assert.Error(t, err)

	err = d.Publish(dispatcher.TopicNewCharacter, 42)
	assert.Error(t, err)
}
