// Package scenario parses scripted combat timelines. A script is a
// line-oriented text format: header directives declare the session, SPAWN
// and ITEM directives declare the cast and the medical inventory, and AT
// lines schedule damage, consumable use and respawns against the clock.
package scenario

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ragsim/vitals/internal/anatomy"
	"github.com/ragsim/vitals/internal/consumable"
	"github.com/ragsim/vitals/pkg/core"
)

// ActionKind discriminates scheduled actions.
type ActionKind uint8

const (
	ActionHit ActionKind = iota
	ActionUse
	ActionRespawn
	ActionStopBleed
)

// Spawn declares a character present from the start of the run.
type Spawn struct {
	ID       uint16
	Name     string
	Team     string
	IsPlayer bool
	Position core.Position3D
}

// Hit carries the damage parameters of an ActionHit.
type Hit struct {
	Amount    float64
	Type      anatomy.DamageType
	Position  core.Position3D
	Direction core.Position3D
	Critical  bool
	Ambiguous bool
	Contact   string
}

// Action is a single timeline entry. Only the fields relevant to its Kind
// are populated.
type Action struct {
	Time        float64
	Kind        ActionKind
	CharacterID uint16
	Limb        anatomy.LimbID
	Hit         Hit
	Item        string
}

// Script is a fully parsed scenario ready to feed a simulation run.
type Script struct {
	Name     string
	Seed     int64
	TickRate float64
	Duration float64
	Spawns   []Spawn
	Items    map[string]consumable.Item
	Actions  []Action
}

// Parse reads a script from r. Actions come back sorted by time, with the
// input order preserved for equal timestamps.
func Parse(r io.Reader) (*Script, error) {
	s := &Script{
		Seed:     1,
		TickRate: 20,
		Items:    make(map[string]consumable.Item),
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := splitFields(line)
		if err := s.parseLine(fields); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading script: %w", err)
	}

	if len(s.Spawns) == 0 {
		return nil, fmt.Errorf("script declares no SPAWN entries")
	}
	sort.SliceStable(s.Actions, func(i, j int) bool {
		return s.Actions[i].Time < s.Actions[j].Time
	})
	if s.Duration == 0 && len(s.Actions) > 0 {
		// run past the last action so delayed effects get simulated
		s.Duration = s.Actions[len(s.Actions)-1].Time + 30
	}
	return s, nil
}

func (s *Script) parseLine(fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	switch strings.ToUpper(fields[0]) {
	case "SCENARIO":
		return s.parseHeader(fields[1:])
	case "SPAWN":
		return s.parseSpawn(fields[1:])
	case "ITEM":
		return s.parseItem(fields[1:])
	case "AT":
		return s.parseAction(fields[1:])
	default:
		return fmt.Errorf("unknown directive %q", fields[0])
	}
}

// parseHeader handles: SCENARIO <name> [SEED n] [TICKRATE hz] [DURATION s]
func (s *Script) parseHeader(fields []string) error {
	if len(fields) < 1 {
		return fmt.Errorf("SCENARIO needs a name")
	}
	s.Name = fields[0]
	i := 1
	for i < len(fields) {
		key := strings.ToUpper(fields[i])
		if i+1 >= len(fields) {
			return fmt.Errorf("SCENARIO %s: missing value", key)
		}
		val := fields[i+1]
		var err error
		switch key {
		case "SEED":
			s.Seed, err = strconv.ParseInt(val, 10, 64)
		case "TICKRATE":
			s.TickRate, err = strconv.ParseFloat(val, 64)
		case "DURATION":
			s.Duration, err = strconv.ParseFloat(val, 64)
		default:
			return fmt.Errorf("SCENARIO: unknown option %q", fields[i])
		}
		if err != nil {
			return fmt.Errorf("SCENARIO %s: %w", key, err)
		}
		i += 2
	}
	if s.TickRate <= 0 {
		return fmt.Errorf("SCENARIO: tick rate must be positive")
	}
	return nil
}

// parseSpawn handles: SPAWN <id> <name> <team> <player|ai> [AT x,y,z]
func (s *Script) parseSpawn(fields []string) error {
	if len(fields) < 4 {
		return fmt.Errorf("SPAWN needs id, name, team and player flag")
	}
	id, err := strconv.ParseUint(fields[0], 10, 16)
	if err != nil {
		return fmt.Errorf("error converting spawn id to uint: %w", err)
	}
	sp := Spawn{
		ID:   uint16(id),
		Name: fields[1],
		Team: fields[2],
	}
	switch strings.ToLower(fields[3]) {
	case "player":
		sp.IsPlayer = true
	case "ai":
	default:
		return fmt.Errorf("SPAWN: expected player or ai, got %q", fields[3])
	}
	if len(fields) >= 6 && strings.ToUpper(fields[4]) == "AT" {
		sp.Position, err = parsePosition(fields[5])
		if err != nil {
			return fmt.Errorf("SPAWN position: %w", err)
		}
	}
	for _, prev := range s.Spawns {
		if prev.ID == sp.ID {
			return fmt.Errorf("SPAWN: duplicate character id %d", sp.ID)
		}
	}
	s.Spawns = append(s.Spawns, sp)
	return nil
}

// parseItem handles:
//
//	ITEM <name> [HEAL n] [BLOOD n] [STOPBLEED] [TREATS bash,stab,slash]
func (s *Script) parseItem(fields []string) error {
	if len(fields) < 1 {
		return fmt.Errorf("ITEM needs a name")
	}
	item := consumable.Item{Name: fields[0]}
	i := 1
	for i < len(fields) {
		switch strings.ToUpper(fields[i]) {
		case "HEAL":
			if i+1 >= len(fields) {
				return fmt.Errorf("ITEM HEAL: missing value")
			}
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return fmt.Errorf("ITEM HEAL: %w", err)
			}
			item.HealAmount = v
			i += 2
		case "BLOOD":
			if i+1 >= len(fields) {
				return fmt.Errorf("ITEM BLOOD: missing value")
			}
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return fmt.Errorf("ITEM BLOOD: %w", err)
			}
			item.BloodAmount = v
			i += 2
		case "STOPBLEED":
			item.StopsBleeding = true
			i++
		case "TREATS":
			if i+1 >= len(fields) {
				return fmt.Errorf("ITEM TREATS: missing value")
			}
			for _, name := range strings.Split(fields[i+1], ",") {
				switch strings.ToLower(name) {
				case "bash":
					item.TreatsHeavyBash = true
				case "stab":
					item.TreatsHeavyStab = true
				case "slash":
					item.TreatsHeavySlash = true
				default:
					return fmt.Errorf("ITEM TREATS: unknown wound class %q", name)
				}
			}
			i += 2
		default:
			return fmt.Errorf("ITEM: unknown option %q", fields[i])
		}
	}
	if _, dup := s.Items[item.Name]; dup {
		return fmt.Errorf("ITEM: duplicate item %q", item.Name)
	}
	s.Items[item.Name] = item
	return nil
}

// parseAction handles the AT family:
//
//	AT <t> HIT <char> <limb> <amount> <type> [POS x,y,z] [DIR x,y,z] [CRIT] [AMBIG] [FROM contact]
//	AT <t> USE <char> <limb> <item>
//	AT <t> RESPAWN <char>
//	AT <t> STOPBLEED <char> <limb>
func (s *Script) parseAction(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("AT needs a time, a verb and a character")
	}
	t, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return fmt.Errorf("error converting action time to float: %w", err)
	}
	if t < 0 {
		return fmt.Errorf("action time must not be negative")
	}
	id, err := strconv.ParseUint(fields[2], 10, 16)
	if err != nil {
		return fmt.Errorf("error converting character id to uint: %w", err)
	}
	a := Action{Time: t, CharacterID: uint16(id)}
	rest := fields[3:]

	switch strings.ToUpper(fields[1]) {
	case "HIT":
		a.Kind = ActionHit
		if err := s.parseHit(&a, rest); err != nil {
			return err
		}
	case "USE":
		a.Kind = ActionUse
		if len(rest) < 2 {
			return fmt.Errorf("USE needs a limb and an item")
		}
		a.Limb, err = anatomy.ParseLimb(rest[0])
		if err != nil {
			return fmt.Errorf("USE: %w", err)
		}
		if _, ok := s.Items[rest[1]]; !ok {
			return fmt.Errorf("USE: item %q not declared", rest[1])
		}
		a.Item = rest[1]
	case "RESPAWN":
		a.Kind = ActionRespawn
	case "STOPBLEED":
		a.Kind = ActionStopBleed
		if len(rest) < 1 {
			return fmt.Errorf("STOPBLEED needs a limb")
		}
		a.Limb, err = anatomy.ParseLimb(rest[0])
		if err != nil {
			return fmt.Errorf("STOPBLEED: %w", err)
		}
	default:
		return fmt.Errorf("unknown action %q", fields[1])
	}

	if !s.spawned(a.CharacterID) {
		return fmt.Errorf("action targets unspawned character %d", a.CharacterID)
	}
	s.Actions = append(s.Actions, a)
	return nil
}

func (s *Script) parseHit(a *Action, fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("HIT needs a limb, an amount and a damage type")
	}
	var err error
	a.Limb, err = anatomy.ParseLimb(fields[0])
	if err != nil {
		return fmt.Errorf("HIT: %w", err)
	}
	a.Hit.Amount, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("error converting hit amount to float: %w", err)
	}
	a.Hit.Type, err = anatomy.ParseDamageType(fields[2])
	if err != nil {
		return fmt.Errorf("HIT: %w", err)
	}

	i := 3
	for i < len(fields) {
		switch strings.ToUpper(fields[i]) {
		case "POS":
			if i+1 >= len(fields) {
				return fmt.Errorf("HIT POS: missing value")
			}
			a.Hit.Position, err = parsePosition(fields[i+1])
			if err != nil {
				return fmt.Errorf("HIT POS: %w", err)
			}
			i += 2
		case "DIR":
			if i+1 >= len(fields) {
				return fmt.Errorf("HIT DIR: missing value")
			}
			a.Hit.Direction, err = parsePosition(fields[i+1])
			if err != nil {
				return fmt.Errorf("HIT DIR: %w", err)
			}
			i += 2
		case "CRIT":
			a.Hit.Critical = true
			i++
		case "AMBIG":
			a.Hit.Ambiguous = true
			i++
		case "FROM":
			if i+1 >= len(fields) {
				return fmt.Errorf("HIT FROM: missing value")
			}
			a.Hit.Contact = fields[i+1]
			i += 2
		default:
			return fmt.Errorf("HIT: unknown option %q", fields[i])
		}
	}
	return nil
}

func (s *Script) spawned(id uint16) bool {
	for _, sp := range s.Spawns {
		if sp.ID == id {
			return true
		}
	}
	return false
}

// parsePosition parses "x,y,z" into a Position3D.
func parsePosition(v string) (core.Position3D, error) {
	var p core.Position3D
	parts := strings.Split(v, ",")
	if len(parts) != 3 {
		return p, fmt.Errorf("expected x,y,z, got %q", v)
	}
	var err error
	if p.X, err = strconv.ParseFloat(parts[0], 64); err != nil {
		return p, fmt.Errorf("error converting x to float: %w", err)
	}
	if p.Y, err = strconv.ParseFloat(parts[1], 64); err != nil {
		return p, fmt.Errorf("error converting y to float: %w", err)
	}
	if p.Z, err = strconv.ParseFloat(parts[2], 64); err != nil {
		return p, fmt.Errorf("error converting z to float: %w", err)
	}
	return p, nil
}

// splitFields splits a line on whitespace while keeping double-quoted
// tokens intact. Quotes are stripped from the result.
func splitFields(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case !inQuote && (r == ' ' || r == '\t'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return fields
}
