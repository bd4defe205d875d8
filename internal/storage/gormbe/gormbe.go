// Package gormbe implements the queue-and-batch-write half of the GORM
// recording backends. The sqlite and postgres packages own connection
// lifecycle and wrap a Backend from here around their *gorm.DB.
package gormbe

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ragsim/vitals/internal/model"
	"github.com/ragsim/vitals/internal/model/convert"
	"github.com/ragsim/vitals/internal/queue"
	"github.com/ragsim/vitals/pkg/core"
)

// DefaultFlushInterval is how often the writer goroutine drains the queues.
const DefaultFlushInterval = 2 * time.Second

// queues holds the write queues for batch DB insertion.
type queues struct {
	Characters       *queue.Queue[model.Character]
	DamageEvents     *queue.Queue[model.DamageEvent]
	BloodSpawnEvents *queue.Queue[model.BloodSpawnEvent]
	DeathEvents      *queue.Queue[model.DeathEvent]
	ConsumableEvents *queue.Queue[model.ConsumableEvent]
	VitalsSamples    *queue.Queue[model.VitalsSample]
}

func newQueues() *queues {
	return &queues{
		Characters:       queue.New[model.Character](),
		DamageEvents:     queue.New[model.DamageEvent](),
		BloodSpawnEvents: queue.New[model.BloodSpawnEvent](),
		DeathEvents:      queue.New[model.DeathEvent](),
		ConsumableEvents: queue.New[model.ConsumableEvent](),
		VitalsSamples:    queue.New[model.VitalsSample](),
	}
}

// Backend batches recorded events into a gorm database.
type Backend struct {
	db            *gorm.DB
	logger        zerolog.Logger
	queues        *queues
	sessionID     atomic.Uint64
	flushInterval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
	flushMu  sync.Mutex
}

// New creates a backend over an open gorm connection. flushInterval <= 0
// uses DefaultFlushInterval.
func New(db *gorm.DB, logger zerolog.Logger, flushInterval time.Duration) *Backend {
	if flushInterval <= 0 {
		flushInterval = DefaultFlushInterval
	}
	return &Backend{
		db:            db,
		logger:        logger,
		queues:        newQueues(),
		flushInterval: flushInterval,
	}
}

// Init migrates the schema and starts the writer goroutine.
func (b *Backend) Init() error {
	if err := b.db.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	b.stopChan = make(chan struct{})
	b.wg.Add(1)
	go b.writerLoop()
	return nil
}

// Close stops the writer goroutine and flushes everything still queued.
func (b *Backend) Close() error {
	if b.stopChan != nil {
		close(b.stopChan)
		b.wg.Wait()
		b.stopChan = nil
	}
	b.Flush()
	return nil
}

// StartSession inserts the session row synchronously so the DB-assigned ID
// is available to stamp every subsequent event.
func (b *Backend) StartSession(s *core.Session) error {
	row := convert.CoreToSession(*s)
	if err := b.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	s.ID = row.ID
	b.sessionID.Store(uint64(row.ID))
	b.logger.Info().Uint("sessionId", row.ID).Str("scenario", row.ScenarioName).Msg("Session started")
	return nil
}

// EndSession flushes the queues and stamps the session end time.
func (b *Backend) EndSession() error {
	b.Flush()

	id := uint(b.sessionID.Load())
	if id == 0 {
		return fmt.Errorf("no session in progress")
	}
	err := b.db.Model(&model.Session{}).Where("id = ?", id).
		Update("end_time", time.Now()).Error
	if err != nil {
		return fmt.Errorf("failed to stamp session end: %w", err)
	}
	return nil
}

// AddCharacter queues a character registration.
func (b *Backend) AddCharacter(c *core.CharacterInfo) error {
	b.queues.Characters.Push(convert.CoreToCharacter(*c))
	return nil
}

// RecordDamage converts and queues a damage event.
func (b *Backend) RecordDamage(e *core.DamageEvent) error {
	b.queues.DamageEvents.Push(convert.CoreToDamageEvent(*e))
	return nil
}

// RecordBloodSpawn converts and queues a blood spawn event.
func (b *Backend) RecordBloodSpawn(e *core.BloodSpawnEvent) error {
	b.queues.BloodSpawnEvents.Push(convert.CoreToBloodSpawnEvent(*e))
	return nil
}

// RecordDeath converts and queues a death event.
func (b *Backend) RecordDeath(e *core.DeathEvent) error {
	b.queues.DeathEvents.Push(convert.CoreToDeathEvent(*e))
	return nil
}

// RecordConsumable converts and queues a consumable event.
func (b *Backend) RecordConsumable(e *core.ConsumableEvent) error {
	b.queues.ConsumableEvents.Push(convert.CoreToConsumableEvent(*e))
	return nil
}

// RecordVitals converts and queues a vitals sample.
func (b *Backend) RecordVitals(s *core.VitalsSample) error {
	b.queues.VitalsSamples.Push(convert.CoreToVitalsSample(*s))
	return nil
}

// QueueDepths reports outstanding writes per queue, for the status monitor.
func (b *Backend) QueueDepths() map[string]int {
	return map[string]int{
		"characters":  b.queues.Characters.Len(),
		"damage":      b.queues.DamageEvents.Len(),
		"bloodSpawns": b.queues.BloodSpawnEvents.Len(),
		"deaths":      b.queues.DeathEvents.Len(),
		"consumables": b.queues.ConsumableEvents.Len(),
		"vitals":      b.queues.VitalsSamples.Len(),
	}
}

// Flush drains every queue into the database. Safe to call concurrently
// with the writer loop.
func (b *Backend) Flush() {
	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	// rows queued before StartSession assigned an ID get stamped here
	sessionID := uint(b.sessionID.Load())

	stampCharacters := func(items []model.Character) {
		for i := range items {
			if items[i].SessionID == 0 {
				items[i].SessionID = sessionID
			}
		}
	}
	stampDamage := func(items []model.DamageEvent) {
		for i := range items {
			if items[i].SessionID == 0 {
				items[i].SessionID = sessionID
			}
		}
	}
	stampBloodSpawns := func(items []model.BloodSpawnEvent) {
		for i := range items {
			if items[i].SessionID == 0 {
				items[i].SessionID = sessionID
			}
		}
	}
	stampDeaths := func(items []model.DeathEvent) {
		for i := range items {
			if items[i].SessionID == 0 {
				items[i].SessionID = sessionID
			}
		}
	}
	stampConsumables := func(items []model.ConsumableEvent) {
		for i := range items {
			if items[i].SessionID == 0 {
				items[i].SessionID = sessionID
			}
		}
	}
	stampVitals := func(items []model.VitalsSample) {
		for i := range items {
			if items[i].SessionID == 0 {
				items[i].SessionID = sessionID
			}
		}
	}

	writeQueue(b, b.queues.Characters, "characters", stampCharacters)
	writeQueue(b, b.queues.DamageEvents, "damage events", stampDamage)
	writeQueue(b, b.queues.BloodSpawnEvents, "blood spawn events", stampBloodSpawns)
	writeQueue(b, b.queues.DeathEvents, "death events", stampDeaths)
	writeQueue(b, b.queues.ConsumableEvents, "consumable events", stampConsumables)
	writeQueue(b, b.queues.VitalsSamples, "vitals samples", stampVitals)
}

// writeQueue writes all items from a queue to the database in one
// transaction; failed batches are requeued for the next flush.
func writeQueue[T any](b *Backend, q *queue.Queue[T], name string, prepare func([]T)) {
	if q.Empty() {
		return
	}

	items := q.DrainAll()
	if prepare != nil {
		prepare(items)
	}

	tx := b.db.Begin()
	if err := tx.Create(&items).Error; err != nil {
		b.logger.Error().Err(err).Str("queue", name).Int("count", len(items)).Msg("Batch write failed, requeueing")
		tx.Rollback()
		q.Push(items...)
		return
	}
	tx.Commit()
}

func (b *Backend) writerLoop() {
	defer b.wg.Done()
	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			b.Flush()
		}
	}
}
