// Package sim runs scripted scenarios against the vitals model on a fixed
// tick clock and streams everything that happens to a recording sink.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/ragsim/vitals/internal/anatomy"
	"github.com/ragsim/vitals/internal/character"
	"github.com/ragsim/vitals/internal/scenario"
	"github.com/ragsim/vitals/internal/world"
	"github.com/ragsim/vitals/pkg/core"
)

// Sink receives every recordable event the simulation produces. All calls
// happen on the simulation goroutine; implementations must not block.
type Sink interface {
	SessionStarted(core.Session)
	SessionEnded(core.Session)
	CharacterSpawned(core.CharacterInfo)
	RecordDamage(core.DamageEvent)
	RecordBloodSpawn(core.BloodSpawnEvent)
	RecordDeath(core.DeathEvent)
	RecordConsumable(core.ConsumableEvent)
	RecordVitals(core.VitalsSample)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) SessionStarted(core.Session)           {}
func (NopSink) SessionEnded(core.Session)             {}
func (NopSink) CharacterSpawned(core.CharacterInfo)   {}
func (NopSink) RecordDamage(core.DamageEvent)         {}
func (NopSink) RecordBloodSpawn(core.BloodSpawnEvent) {}
func (NopSink) RecordDeath(core.DeathEvent)           {}
func (NopSink) RecordConsumable(core.ConsumableEvent) {}
func (NopSink) RecordVitals(core.VitalsSample)        {}

// Options tunes the engine around the script's own settings.
type Options struct {
	// SampleInterval is the vitals snapshot period in seconds.
	SampleInterval float64
	// MotorSmoothing is the ramp duration for the smoothed whole-body
	// strength readout.
	MotorSmoothing float64
	// Realtime paces ticks on the wall clock instead of running flat out.
	Realtime bool
}

// DefaultOptions returns the stock engine tuning.
func DefaultOptions() Options {
	return Options{
		SampleInterval: 1.0,
		MotorSmoothing: 0.5,
	}
}

// Engine executes one script. Not reusable across runs.
type Engine struct {
	script   *scenario.Script
	charCfg  character.Config
	sessions *SessionContext
	registry *world.Registry
	sink     Sink
	logger   zerolog.Logger
	opts     Options

	dt        float64
	tick      uint
	motorEase map[uint16]*Transition

	// scriptAmount is the requested amount of the hit currently being
	// applied, so the damage listener can record it alongside the actual.
	// Zero outside ApplyDamage; bleed DoT reports actual as requested.
	scriptAmount float64
}

// NewEngine wires an engine for one script run.
func NewEngine(script *scenario.Script, charCfg character.Config, sessions *SessionContext, sink Sink, logger zerolog.Logger, opts Options) *Engine {
	if sink == nil {
		sink = NopSink{}
	}
	if opts.SampleInterval <= 0 {
		opts.SampleInterval = DefaultOptions().SampleInterval
	}
	return &Engine{
		script:    script,
		charCfg:   charCfg,
		sessions:  sessions,
		registry:  world.NewRegistry(),
		sink:      sink,
		logger:    logger.With().Str("component", "sim").Logger(),
		opts:      opts,
		dt:        1.0 / script.TickRate,
		motorEase: make(map[uint16]*Transition),
	}
}

// Registry exposes the engine's character registry, mainly for tests and
// the status monitor.
func (e *Engine) Registry() *world.Registry { return e.registry }

// Tick returns the current tick number.
func (e *Engine) Tick() uint { return e.tick }

// Run executes the script to completion or context cancellation.
func (e *Engine) Run(ctx context.Context) error {
	session := &core.Session{
		Name:         e.script.Name,
		ScenarioName: e.script.Name,
		Seed:         e.script.Seed,
		TickRate:     e.script.TickRate,
	}
	e.sessions.Start(session)
	e.sink.SessionStarted(*session)
	defer func() {
		e.sink.SessionEnded(*e.sessions.End())
	}()

	for _, sp := range e.script.Spawns {
		e.spawn(sp)
	}

	e.logger.Info().
		Str("scenario", e.script.Name).
		Int64("seed", e.script.Seed).
		Float64("tickRate", e.script.TickRate).
		Float64("duration", e.script.Duration).
		Int("characters", len(e.script.Spawns)).
		Msg("Scenario run starting")

	totalTicks := uint(e.script.Duration * e.script.TickRate)
	sampleEvery := uint(e.opts.SampleInterval * e.script.TickRate)
	if sampleEvery == 0 {
		sampleEvery = 1
	}

	var pacer *time.Ticker
	if e.opts.Realtime {
		pacer = time.NewTicker(time.Duration(float64(time.Second) * e.dt))
		defer pacer.Stop()
	}

	next := 0
	for e.tick = 0; e.tick <= totalTicks; e.tick++ {
		select {
		case <-ctx.Done():
			e.logger.Warn().Uint("tick", e.tick).Msg("Scenario run cancelled")
			return ctx.Err()
		default:
		}

		now := float64(e.tick) * e.dt
		for next < len(e.script.Actions) && e.script.Actions[next].Time <= now {
			if err := e.execute(e.script.Actions[next]); err != nil {
				return fmt.Errorf("executing action at t=%.2f: %w", e.script.Actions[next].Time, err)
			}
			next++
		}

		for _, c := range e.registry.Characters() {
			c.Step(e.dt)
			e.easeMotor(c)
		}

		if e.tick%sampleEvery == 0 {
			e.sampleVitals()
		}

		if pacer != nil {
			select {
			case <-pacer.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	e.logger.Info().
		Uint("ticks", totalTicks).
		Int("survivors", e.survivors()).
		Msg("Scenario run finished")
	return nil
}

func (e *Engine) spawn(sp scenario.Spawn) {
	info := core.CharacterInfo{
		ID:        sp.ID,
		SessionID: e.sessions.ID(),
		Name:      sp.Name,
		Team:      sp.Team,
		IsPlayer:  sp.IsPlayer,
		SpawnTick: e.tick,
		SpawnTime: time.Now(),
	}
	rng := rand.New(rand.NewSource(e.script.Seed + int64(sp.ID)))
	c := character.New(info, e.charCfg, rng)
	c.SetPosition(sp.Position)
	e.hook(c)
	e.registry.Add(c)
	e.motorEase[sp.ID] = NewTransition(1.0, e.opts.MotorSmoothing)
	e.sink.CharacterSpawned(info)
}

// hook routes a character's observer callbacks into session-stamped events
// for the sink.
func (e *Engine) hook(c *character.Character) {
	id := c.Info().ID

	c.OnDamageDealt(func(d character.DamageDealt) {
		amount := e.scriptAmount
		if amount == 0 {
			amount = d.ActualDamage
		}
		e.sink.RecordDamage(core.DamageEvent{
			SessionID:    e.sessions.ID(),
			Tick:         e.tick,
			Time:         time.Now(),
			CharacterID:  id,
			Limb:         d.Limb.String(),
			DamageType:   d.Type.String(),
			Amount:       amount,
			ActualDamage: d.ActualDamage,
			HitPosition:  d.HitPosition,
			Direction:    d.Direction,
			IsCritical:   d.IsCritical,
			ContactName:  d.ContactName,
			Redirected:   d.Redirected,
		})
	})

	c.OnBloodSpawn(func(s character.BloodSpawn) {
		e.sink.RecordBloodSpawn(core.BloodSpawnEvent{
			SessionID:   e.sessions.ID(),
			Tick:        e.tick,
			Time:        time.Now(),
			CharacterID: id,
			Limb:        s.Limb.String(),
			Position:    s.Position,
			Intensity:   s.Intensity,
		})
	})

	c.OnDeath(func() {
		e.sink.RecordDeath(core.DeathEvent{
			SessionID:   e.sessions.ID(),
			Tick:        e.tick,
			Time:        time.Now(),
			CharacterID: id,
			Cause:       core.DeathCauseLimb,
			Limb:        e.fatalLimb(c),
		})
		e.logger.Info().Uint16("character", id).Str("cause", core.DeathCauseLimb).Msg("Character died")
	})

	c.OnDeathFromBloodLoss(func() {
		e.sink.RecordDeath(core.DeathEvent{
			SessionID:   e.sessions.ID(),
			Tick:        e.tick,
			Time:        time.Now(),
			CharacterID: id,
			Cause:       core.DeathCauseBloodLoss,
		})
		e.logger.Info().Uint16("character", id).Str("cause", core.DeathCauseBloodLoss).Msg("Character died")
	})
}

// fatalLimb names the depleted limb that ended the character. When several
// contributing limbs are at zero the first in anatomical order is reported.
func (e *Engine) fatalLimb(c *character.Character) string {
	for _, id := range anatomy.AllLimbs {
		l := c.Limb(id)
		if l != nil && l.AffectsCharacter() && l.IsDead() {
			return id.String()
		}
	}
	return ""
}

func (e *Engine) execute(a scenario.Action) error {
	c, ok := e.registry.Get(a.CharacterID)
	if !ok {
		return fmt.Errorf("character %d not in registry", a.CharacterID)
	}

	switch a.Kind {
	case scenario.ActionHit:
		e.scriptAmount = a.Hit.Amount
		res := c.ApplyDamage(character.DamageRequest{
			Limb:             a.Limb,
			Amount:           a.Hit.Amount,
			Type:             a.Hit.Type,
			HitPosition:      a.Hit.Position,
			Direction:        a.Hit.Direction,
			IsCritical:       a.Hit.Critical,
			ContactName:      a.Hit.Contact,
			AmbiguousContact: a.Hit.Ambiguous,
		})
		e.scriptAmount = 0
		e.logger.Debug().
			Uint16("character", a.CharacterID).
			Str("limb", res.Limb.String()).
			Float64("applied", res.ActualDamage).
			Bool("redirected", res.Redirected).
			Msg("Hit applied")

	case scenario.ActionUse:
		item, ok := e.script.Items[a.Item]
		if !ok {
			return fmt.Errorf("item %q not declared", a.Item)
		}
		treated, healed := c.UseConsumable(a.Limb, item)
		e.sink.RecordConsumable(core.ConsumableEvent{
			SessionID:   e.sessions.ID(),
			Tick:        e.tick,
			Time:        time.Now(),
			CharacterID: a.CharacterID,
			Limb:        a.Limb.String(),
			Item:        a.Item,
			Treated:     treated,
			HealApplied: healed,
			BloodGiven:  item.BloodAmount,
		})

	case scenario.ActionRespawn:
		c.Respawn()
		e.motorEase[a.CharacterID] = NewTransition(1.0, e.opts.MotorSmoothing)
		e.logger.Debug().Uint16("character", a.CharacterID).Msg("Character respawned")

	case scenario.ActionStopBleed:
		c.StopBleeding(a.Limb)

	default:
		return fmt.Errorf("unknown action kind %d", a.Kind)
	}
	return nil
}

// easeMotor ramps the whole-body strength readout toward the character's
// current average motor scale.
func (e *Engine) easeMotor(c *character.Character) {
	tr, ok := e.motorEase[c.Info().ID]
	if !ok {
		return
	}
	var sum float64
	for _, id := range anatomy.AllLimbs {
		sum += c.MotorScale(id)
	}
	tr.SetTarget(sum / float64(len(anatomy.AllLimbs)))
	tr.Step(e.dt)
}

// SmoothedMotor returns the eased whole-body strength for a character,
// 1.0 when unknown.
func (e *Engine) SmoothedMotor(id uint16) float64 {
	if tr, ok := e.motorEase[id]; ok {
		return tr.Value()
	}
	return 1.0
}

func (e *Engine) sampleVitals() {
	for _, c := range e.registry.Characters() {
		blood, bloodMax := c.Blood()
		health, healthMax := c.AggregateHealth()

		limbHealth := make(map[string]float64, len(anatomy.AllLimbs))
		limbBleed := make(map[string]float64, len(anatomy.AllLimbs))
		for _, id := range anatomy.AllLimbs {
			limbHealth[id.String()] = c.HealthPercent(id)
			if v := c.BleedIntensity(id); v > 0 {
				limbBleed[id.String()] = v
			}
		}

		e.sink.RecordVitals(core.VitalsSample{
			SessionID:      e.sessions.ID(),
			Tick:           e.tick,
			Time:           time.Now(),
			CharacterID:    c.Info().ID,
			BloodLevel:     blood,
			BloodMax:       bloodMax,
			Health:         health,
			HealthMax:      healthMax,
			TotalIntensity: c.TotalBleedIntensity(),
			LimbHealth:     limbHealth,
			LimbBleed:      limbBleed,
		})
	}
}

func (e *Engine) survivors() int {
	n := 0
	for _, c := range e.registry.Characters() {
		if !c.Dead() {
			n++
		}
	}
	return n
}
