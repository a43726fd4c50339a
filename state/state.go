package state

import (
	"sort"

	"github.com/nebula4x/simcore/content"
	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/events"
)

// SaveVersion is bumped when the serialized layout changes
const SaveVersion = 4

// GameState owns every mutable world entity. Entities reference each
// other by Id only; the tick mutates the state exclusively.
type GameState struct {
	SaveVersion int       `json:"save_version"`
	Date        core.Date `json:"date"`
	HourOfDay   int       `json:"hour_of_day"`
	NextId      core.Id   `json:"next_id"`

	Systems    map[core.Id]*StarSystem   `json:"systems"`
	Bodies     map[core.Id]*Body         `json:"bodies"`
	JumpPoints map[core.Id]*JumpPoint    `json:"jump_points"`
	Colonies   map[core.Id]*Colony       `json:"colonies"`
	Ships      map[core.Id]*Ship         `json:"ships"`
	Factions   map[core.Id]*Faction      `json:"factions"`
	Fleets     map[core.Id]*Fleet        `json:"fleets"`
	Treaties   map[core.Id]*Treaty       `json:"treaties"`
	Anomalies  map[core.Id]*Anomaly      `json:"anomalies"`
	Salvos     map[core.Id]*MissileSalvo `json:"missile_salvos,omitempty"`

	// GroundBattles are keyed by the colony under attack
	GroundBattles map[core.Id]*GroundBattle `json:"ground_battles,omitempty"`

	ShipOrders map[core.Id]*ShipOrders `json:"ship_orders,omitempty"`

	// CustomDesigns overlay the content database; lookups prefer them
	CustomDesigns map[string]content.ShipDesign `json:"custom_designs,omitempty"`

	Events events.Log `json:"events"`
}

// NewGameState returns an empty state with all maps allocated and the id
// counter past the invalid sentinel
func NewGameState() *GameState {
	return &GameState{
		SaveVersion: SaveVersion,
		NextId:      1,
		Systems:     make(map[core.Id]*StarSystem),
		Bodies:      make(map[core.Id]*Body),
		JumpPoints:  make(map[core.Id]*JumpPoint),
		Colonies:    make(map[core.Id]*Colony),
		Ships:       make(map[core.Id]*Ship),
		Factions:    make(map[core.Id]*Faction),
		Fleets:      make(map[core.Id]*Fleet),
		Treaties:    make(map[core.Id]*Treaty),
		Anomalies:     make(map[core.Id]*Anomaly),
		Salvos:        make(map[core.Id]*MissileSalvo),
		GroundBattles: make(map[core.Id]*GroundBattle),
		ShipOrders:    make(map[core.Id]*ShipOrders),
	}
}

// EnsureMaps allocates any nil maps after deserialization
func (s *GameState) EnsureMaps() {
	if s.Systems == nil {
		s.Systems = make(map[core.Id]*StarSystem)
	}
	if s.Bodies == nil {
		s.Bodies = make(map[core.Id]*Body)
	}
	if s.JumpPoints == nil {
		s.JumpPoints = make(map[core.Id]*JumpPoint)
	}
	if s.Colonies == nil {
		s.Colonies = make(map[core.Id]*Colony)
	}
	if s.Ships == nil {
		s.Ships = make(map[core.Id]*Ship)
	}
	if s.Factions == nil {
		s.Factions = make(map[core.Id]*Faction)
	}
	if s.Fleets == nil {
		s.Fleets = make(map[core.Id]*Fleet)
	}
	if s.Treaties == nil {
		s.Treaties = make(map[core.Id]*Treaty)
	}
	if s.Anomalies == nil {
		s.Anomalies = make(map[core.Id]*Anomaly)
	}
	if s.Salvos == nil {
		s.Salvos = make(map[core.Id]*MissileSalvo)
	}
	if s.GroundBattles == nil {
		s.GroundBattles = make(map[core.Id]*GroundBattle)
	}
	if s.ShipOrders == nil {
		s.ShipOrders = make(map[core.Id]*ShipOrders)
	}
	if s.NextId == core.InvalidId {
		s.NextId = 1
	}
}

// AllocateId returns the next fresh id, never the invalid sentinel
func (s *GameState) AllocateId() core.Id {
	if s.NextId == core.InvalidId {
		s.NextId = 1
	}
	id := s.NextId
	s.NextId++
	if s.NextId == core.InvalidId {
		s.NextId = 1
	}
	return id
}

// OrdersFor returns the order queue for a ship, creating it on demand
func (s *GameState) OrdersFor(shipId core.Id) *ShipOrders {
	if so, ok := s.ShipOrders[shipId]; ok {
		return so
	}
	so := &ShipOrders{}
	s.ShipOrders[shipId] = so
	return so
}

// RemoveShipFromSystem drops the ship id from the system's ship list
func (s *GameState) RemoveShipFromSystem(shipId, systemId core.Id) {
	sys, ok := s.Systems[systemId]
	if !ok {
		return
	}
	for i, id := range sys.Ships {
		if id == shipId {
			sys.Ships = append(sys.Ships[:i], sys.Ships[i+1:]...)
			return
		}
	}
}

// SortedIds returns the keys of an id-keyed map in ascending order.
// Subsystems iterate entities this way wherever ordering matters.
func SortedIds[V any](m map[core.Id]V) []core.Id {
	out := make([]core.Id, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SortedKeys returns the keys of a string-keyed map in lexical order
func SortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// AddMineral adds tons to a string-keyed stock map, allocating it if nil.
// Returns the map so callers can assign it back.
func AddMineral(m map[string]float64, resource string, tons float64) map[string]float64 {
	if m == nil {
		m = make(map[string]float64)
	}
	m[resource] += tons
	return m
}
