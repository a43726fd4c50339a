package sim

import (
	"fmt"
	"math"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/state"
)

// navState is where a ship will be after its queued orders resolve
type navState struct {
	SystemId core.Id
	PosMkm   core.Vec2
}

// predictedNavState walks a ship's queue and predicts its final system
// and position, so appended orders validate against where the ship will
// be rather than where it is
func (s *Simulation) predictedNavState(ship *state.Ship) navState {
	ns := navState{SystemId: ship.SystemId, PosMkm: ship.PositionMkm}
	so := s.st.ShipOrders[ship.Id]
	if so == nil {
		return ns
	}
	for _, o := range so.Queue {
		switch ord := o.(type) {
		case state.MoveToPoint:
			ns.PosMkm = ord.TargetMkm
		case state.MoveToBody:
			if b := s.body(ord.BodyId); b != nil && b.SystemId == ns.SystemId {
				ns.PosMkm = b.PositionMkm
			}
		case state.TravelViaJump:
			jp := s.jumpPoint(ord.JumpPointId)
			if jp == nil || jp.SystemId != ns.SystemId {
				continue
			}
			if dest := s.jumpPoint(jp.LinkedJumpId); dest != nil {
				ns.SystemId = dest.SystemId
				ns.PosMkm = dest.PositionMkm
			}
		case state.SurveyJumpPoint:
			jp := s.jumpPoint(ord.JumpPointId)
			if jp == nil || jp.SystemId != ns.SystemId {
				continue
			}
			ns.PosMkm = jp.PositionMkm
			if ord.TransitWhenDone {
				if dest := s.jumpPoint(jp.LinkedJumpId); dest != nil {
					ns.SystemId = dest.SystemId
					ns.PosMkm = dest.PositionMkm
				}
			}
		case state.LoadMineral:
			if c := s.colony(ord.ColonyId); c != nil {
				if b := s.body(c.BodyId); b != nil && b.SystemId == ns.SystemId {
					ns.PosMkm = b.PositionMkm
				}
			}
		case state.UnloadMineral:
			if c := s.colony(ord.ColonyId); c != nil {
				if b := s.body(c.BodyId); b != nil && b.SystemId == ns.SystemId {
					ns.PosMkm = b.PositionMkm
				}
			}
		case state.LoadTroops:
			if c := s.colony(ord.ColonyId); c != nil {
				if b := s.body(c.BodyId); b != nil && b.SystemId == ns.SystemId {
					ns.PosMkm = b.PositionMkm
				}
			}
		case state.UnloadTroops:
			if c := s.colony(ord.ColonyId); c != nil {
				if b := s.body(c.BodyId); b != nil && b.SystemId == ns.SystemId {
					ns.PosMkm = b.PositionMkm
				}
			}
		case state.InvadeColony:
			if c := s.colony(ord.ColonyId); c != nil {
				if b := s.body(c.BodyId); b != nil && b.SystemId == ns.SystemId {
					ns.PosMkm = b.PositionMkm
				}
			}
		case state.ColonizeBody:
			// the ship is expended founding the colony; nothing after
			// this order executes
			if b := s.body(ord.BodyId); b != nil && b.SystemId == ns.SystemId {
				ns.PosMkm = b.PositionMkm
			}
			return ns
		case state.AttackShip:
			if ord.HasLastKnown && ord.LastKnownSystemId == ns.SystemId {
				ns.PosMkm = ord.LastKnownPositionMkm
			} else if t := s.ship(ord.TargetShipId); t != nil && t.SystemId == ns.SystemId {
				ns.PosMkm = t.PositionMkm
			}
		}
	}
	return ns
}

// routeHop is one leg of a jump route
type routeHop struct {
	JumpPointId  core.Id
	FromSystemId core.Id
	ToSystemId   core.Id
}

// planJumpRoute finds the cheapest route between systems over jump
// points the faction has surveyed. Each leg is priced by the
// LOS-integrated environmental cost of the in-system approach to the
// jump point, so the planner routes around storms and dense microfield
// rather than minimizing hop count. With restrict_to_discovered set the
// route only traverses systems the faction knows. Ties break toward
// lower system ids.
func (s *Simulation) planJumpRoute(factionId, fromSystem core.Id, fromPos core.Vec2, toSystem core.Id) ([]routeHop, error) {
	if fromSystem == toSystem {
		return nil, nil
	}
	f := s.faction(factionId)
	if f == nil {
		return nil, fmt.Errorf("unknown faction")
	}
	restrict := s.cfg.RestrictToDiscovered
	if restrict && !f.HasDiscoveredSystem(toSystem) {
		return nil, fmt.Errorf("destination system not discovered")
	}

	type nodeState struct {
		cost       float64
		pos        core.Vec2
		prevSystem core.Id
		hop        routeHop
		settled    bool
	}
	nodes := map[core.Id]*nodeState{fromSystem: {pos: fromPos}}

	for {
		cur := core.InvalidId
		best := math.Inf(1)
		for _, sysId := range state.SortedIds(nodes) {
			if n := nodes[sysId]; !n.settled && n.cost < best {
				cur, best = sysId, n.cost
			}
		}
		if cur == core.InvalidId {
			return nil, fmt.Errorf("no known route")
		}
		if cur == toSystem {
			var hops []routeHop
			for at := toSystem; at != fromSystem; {
				n := nodes[at]
				hops = append([]routeHop{n.hop}, hops...)
				at = n.prevSystem
			}
			return hops, nil
		}

		n := nodes[cur]
		n.settled = true
		sys := s.system(cur)
		if sys == nil {
			continue
		}
		for _, jpId := range sortedIdSlice(sys.JumpPoints) {
			jp := s.jumpPoint(jpId)
			if jp == nil || !f.HasSurveyedJumpPoint(jpId) {
				continue
			}
			dest := s.jumpPoint(jp.LinkedJumpId)
			if dest == nil {
				continue
			}
			next := dest.SystemId
			if restrict && !f.HasDiscoveredSystem(next) {
				continue
			}
			cost := n.cost + s.movementEnvironmentCostLos(cur, n.pos, jp.PositionMkm)
			existing := nodes[next]
			if existing == nil {
				nodes[next] = &nodeState{cost: cost, pos: dest.PositionMkm, prevSystem: cur,
					hop: routeHop{JumpPointId: jpId, FromSystemId: cur, ToSystemId: next}}
			} else if !existing.settled && cost < existing.cost {
				existing.cost = cost
				existing.pos = dest.PositionMkm
				existing.prevSystem = cur
				existing.hop = routeHop{JumpPointId: jpId, FromSystemId: cur, ToSystemId: next}
			}
		}
	}
}

func sortedIdSlice(ids []core.Id) []core.Id {
	out := append([]core.Id(nil), ids...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// IssueTravelToSystem queues the jump legs to reach a system, starting
// from wherever the ship's existing queue leaves it
func (s *Simulation) IssueTravelToSystem(shipId, targetSystemId core.Id) error {
	ship := s.ship(shipId)
	if ship == nil {
		return fmt.Errorf("unknown ship")
	}
	if s.system(targetSystemId) == nil {
		return fmt.Errorf("unknown system")
	}
	ns := s.predictedNavState(ship)
	hops, err := s.planJumpRoute(ship.FactionId, ns.SystemId, ns.PosMkm, targetSystemId)
	if err != nil {
		return err
	}
	so := s.st.OrdersFor(shipId)
	for _, hop := range hops {
		so.Queue = append(so.Queue, state.TravelViaJump{JumpPointId: hop.JumpPointId})
	}
	return nil
}
