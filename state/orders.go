package state

import (
	"github.com/nebula4x/simcore/core"
)

// OrderKind tags the concrete order variant
type OrderKind string

const (
	KindWaitDays           OrderKind = "wait_days"
	KindMoveToPoint        OrderKind = "move_to_point"
	KindMoveToBody         OrderKind = "move_to_body"
	KindTravelViaJump      OrderKind = "travel_via_jump"
	KindAttackShip         OrderKind = "attack_ship"
	KindLoadMineral        OrderKind = "load_mineral"
	KindUnloadMineral      OrderKind = "unload_mineral"
	KindColonizeBody       OrderKind = "colonize_body"
	KindInvestigateAnomaly OrderKind = "investigate_anomaly"
	KindSurveyJumpPoint    OrderKind = "survey_jump_point"
	KindLoadTroops         OrderKind = "load_troops"
	KindUnloadTroops       OrderKind = "unload_troops"
	KindInvadeColony       OrderKind = "invade_colony"
)

// Order is one queued ship instruction. Concrete variants are plain
// structs; execution dispatches exhaustively on the kind.
type Order interface {
	Kind() OrderKind
}

// WaitDays idles the ship. DaysRemaining decrements by 1/24 per hour.
type WaitDays struct {
	DaysRemaining float64 `json:"days_remaining"`
}

func (WaitDays) Kind() OrderKind { return KindWaitDays }

// MoveToPoint moves to a fixed in-system position
type MoveToPoint struct {
	TargetMkm core.Vec2 `json:"target_mkm"`
}

func (MoveToPoint) Kind() OrderKind { return KindMoveToPoint }

// MoveToBody moves to a body, re-resolving its position each tick
type MoveToBody struct {
	BodyId core.Id `json:"body_id"`
}

func (MoveToBody) Kind() OrderKind { return KindMoveToBody }

// TravelViaJump moves to a jump point and transits on arrival
type TravelViaJump struct {
	JumpPointId core.Id `json:"jump_point_id"`
}

func (TravelViaJump) Kind() OrderKind { return KindTravelViaJump }

// AttackShip pursues and engages a target, falling back to the last-known
// position with constant-velocity extrapolation when detection is lost
type AttackShip struct {
	TargetShipId         core.Id   `json:"target_ship_id"`
	HasLastKnown         bool      `json:"has_last_known,omitempty"`
	LastKnownSystemId    core.Id   `json:"last_known_system_id,omitempty"`
	LastKnownPositionMkm core.Vec2 `json:"last_known_position_mkm"`
	LastKnownDay         core.Date `json:"last_known_day,omitempty"`
}

func (AttackShip) Kind() OrderKind { return KindAttackShip }

// LoadMineral loads tons from a colony. An empty mineral id loads every
// resource in lexical order; Tons <= 0 means as much as fits.
type LoadMineral struct {
	ColonyId core.Id `json:"colony_id"`
	Mineral  string  `json:"mineral,omitempty"`
	Tons     float64 `json:"tons,omitempty"`
}

func (LoadMineral) Kind() OrderKind { return KindLoadMineral }

// UnloadMineral unloads cargo to a colony. Empty mineral id unloads all.
type UnloadMineral struct {
	ColonyId core.Id `json:"colony_id"`
	Mineral  string  `json:"mineral,omitempty"`
	Tons     float64 `json:"tons,omitempty"`
}

func (UnloadMineral) Kind() OrderKind { return KindUnloadMineral }

// ColonizeBody founds a colony, consuming the ship
type ColonizeBody struct {
	BodyId core.Id `json:"body_id"`
}

func (ColonizeBody) Kind() OrderKind { return KindColonizeBody }

// InvestigateAnomaly parks at the anomaly until resolved
type InvestigateAnomaly struct {
	AnomalyId       core.Id `json:"anomaly_id"`
	DaysAccumulated float64 `json:"days_accumulated,omitempty"`
}

func (InvestigateAnomaly) Kind() OrderKind { return KindInvestigateAnomaly }

// SurveyJumpPoint surveys a jump point, optionally transiting when done
type SurveyJumpPoint struct {
	JumpPointId     core.Id `json:"jump_point_id"`
	TransitWhenDone bool    `json:"transit_when_done,omitempty"`
}

func (SurveyJumpPoint) Kind() OrderKind { return KindSurveyJumpPoint }

// LoadTroops embarks garrison strength from a friendly colony. Strength
// <= 0 loads as much as the ship's troop berths hold.
type LoadTroops struct {
	ColonyId core.Id `json:"colony_id"`
	Strength float64 `json:"strength,omitempty"`
}

func (LoadTroops) Kind() OrderKind { return KindLoadTroops }

// UnloadTroops disembarks carried troops into a friendly colony's
// garrison. Strength <= 0 unloads everything aboard.
type UnloadTroops struct {
	ColonyId core.Id `json:"colony_id"`
	Strength float64 `json:"strength,omitempty"`
}

func (UnloadTroops) Kind() OrderKind { return KindUnloadTroops }

// InvadeColony lands every carried troop against a hostile colony,
// opening or reinforcing a ground battle there
type InvadeColony struct {
	ColonyId core.Id `json:"colony_id"`
}

func (InvadeColony) Kind() OrderKind { return KindInvadeColony }

// ShipOrders is a ship's FIFO order queue. With Repeat set, a drained
// queue refills from the template; RepeatCountRemaining of -1 repeats
// forever.
type ShipOrders struct {
	Queue                []Order `json:"queue,omitempty"`
	Repeat               bool    `json:"repeat,omitempty"`
	RepeatTemplate       []Order `json:"repeat_template,omitempty"`
	RepeatCountRemaining int     `json:"repeat_count_remaining,omitempty"`
}

// CloneOrders copies an order slice. Variants are value types so a
// shallow element copy is a deep copy.
func CloneOrders(src []Order) []Order {
	if len(src) == 0 {
		return nil
	}
	out := make([]Order, len(src))
	copy(out, src)
	return out
}
