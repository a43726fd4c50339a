// Package sim implements the deterministic tick-driven simulation core:
// orbital motion, ship orders and routing, colony economy, research,
// sensors and contacts, combat, diplomacy and environment effects. The
// Simulation owns its GameState exclusively; the tick is single-threaded
// and synchronous.
package sim

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nebula4x/simcore/content"
	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/events"
	"github.com/nebula4x/simcore/state"
)

// Simulation advances a GameState forward in time against a read-only
// content database
type Simulation struct {
	content *content.DB
	cfg     Config
	st      *state.GameState
	log     zerolog.Logger
}

// Option configures a Simulation at construction
type Option func(*Simulation)

// WithLogger routes operator diagnostics to the given logger
func WithLogger(log zerolog.Logger) Option {
	return func(s *Simulation) { s.log = log }
}

// New builds a simulation around a content database and config. Call
// NewGame or LoadGame before advancing time.
func New(db *content.DB, cfg Config, opts ...Option) *Simulation {
	if db == nil {
		db = content.NewDB()
	}
	s := &Simulation{
		content: db,
		cfg:     cfg,
		st:      state.NewGameState(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewGame resets to an empty world
func (s *Simulation) NewGame() {
	s.st = state.NewGameState()
}

// LoadGame adopts an existing state. Body positions are recomputed and
// ship sweep anchors initialized so the first tick behaves like any other.
func (s *Simulation) LoadGame(st *state.GameState) {
	if st == nil {
		s.NewGame()
		return
	}
	st.EnsureMaps()
	s.st = st
	s.recomputeBodyPositions()
	for _, ship := range s.st.Ships {
		ship.PrevPositionMkm = ship.PositionMkm
		if ship.Integrity == (state.SubsystemIntegrity{}) {
			ship.Integrity = state.FullIntegrity()
		}
		if ship.MaintenanceCondition <= 0 {
			ship.MaintenanceCondition = 1
		}
	}
}

// State exposes the mutable world. Callers must not mutate during a tick.
func (s *Simulation) State() *state.GameState {
	return s.st
}

// Config returns the active configuration
func (s *Simulation) Config() Config {
	return s.cfg
}

// Content returns the content database
func (s *Simulation) Content() *content.DB {
	return s.content
}

// FindDesign resolves a design id, preferring custom designs over content
func (s *Simulation) FindDesign(id string) *content.ShipDesign {
	if d, ok := s.st.CustomDesigns[id]; ok {
		return &d
	}
	return s.content.Design(id)
}

// UpsertCustomDesign stores or replaces a custom design overlay
func (s *Simulation) UpsertCustomDesign(d content.ShipDesign) error {
	if d.Id == "" {
		return fmt.Errorf("design id must not be empty")
	}
	if s.st.CustomDesigns == nil {
		s.st.CustomDesigns = make(map[string]content.ShipDesign)
	}
	s.st.CustomDesigns[d.Id] = d
	return nil
}

// --- event helpers ---

func (s *Simulation) pushEvent(e events.Event) {
	e.Day = s.st.Date
	e.Hour = s.st.HourOfDay
	s.st.Events.Push(e, s.cfg.MaxEvents)
}

func (s *Simulation) pushInfo(cat events.Category, msg string, e events.Event) {
	e.Level = events.LevelInfo
	e.Category = cat
	e.Message = msg
	s.pushEvent(e)
}

func (s *Simulation) pushWarn(cat events.Category, msg string, e events.Event) {
	e.Level = events.LevelWarn
	e.Category = cat
	e.Message = msg
	s.pushEvent(e)
}

func (s *Simulation) pushError(cat events.Category, msg string, e events.Event) {
	e.Level = events.LevelError
	e.Category = cat
	e.Message = msg
	s.pushEvent(e)
}

// --- small lookup helpers ---

func (s *Simulation) ship(id core.Id) *state.Ship {
	return s.st.Ships[id]
}

func (s *Simulation) body(id core.Id) *state.Body {
	return s.st.Bodies[id]
}

func (s *Simulation) system(id core.Id) *state.StarSystem {
	return s.st.Systems[id]
}

func (s *Simulation) colony(id core.Id) *state.Colony {
	return s.st.Colonies[id]
}

func (s *Simulation) faction(id core.Id) *state.Faction {
	return s.st.Factions[id]
}

func (s *Simulation) jumpPoint(id core.Id) *state.JumpPoint {
	return s.st.JumpPoints[id]
}

// shipDesign resolves a ship's design, logging once per lookup miss
func (s *Simulation) shipDesign(ship *state.Ship) *content.ShipDesign {
	d := s.FindDesign(ship.DesignId)
	if d == nil {
		s.log.Warn().Str("design", ship.DesignId).Uint64("ship", uint64(ship.Id)).
			Msg("ship references unknown design")
	}
	return d
}

// factionName returns the display name or a placeholder for unknown ids
func (s *Simulation) factionName(id core.Id) string {
	if f := s.faction(id); f != nil {
		return f.Name
	}
	return fmt.Sprintf("faction %d", id)
}

// colonyForBody returns the colony on a body, or nil
func (s *Simulation) colonyForBody(bodyId core.Id) *state.Colony {
	for _, id := range state.SortedIds(s.st.Colonies) {
		c := s.st.Colonies[id]
		if c.BodyId == bodyId {
			return c
		}
	}
	return nil
}
