package sim

import (
	"fmt"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/state"
)

// CreateFleet groups ships of one faction under a name. The first ship
// becomes the leader.
func (s *Simulation) CreateFleet(factionId core.Id, name string, shipIds []core.Id) (*state.Fleet, error) {
	if s.faction(factionId) == nil {
		return nil, fmt.Errorf("unknown faction")
	}
	if len(shipIds) == 0 {
		return nil, fmt.Errorf("fleet needs at least one ship")
	}
	for _, id := range shipIds {
		ship := s.ship(id)
		if ship == nil {
			return nil, fmt.Errorf("unknown ship %d", id)
		}
		if ship.FactionId != factionId {
			return nil, fmt.Errorf("ship %d belongs to another faction", id)
		}
	}
	fleet := &state.Fleet{
		Id:           s.st.AllocateId(),
		FactionId:    factionId,
		Name:         name,
		ShipIds:      append([]core.Id(nil), shipIds...),
		LeaderShipId: shipIds[0],
	}
	s.st.Fleets[fleet.Id] = fleet
	return fleet, nil
}

// DisbandFleet removes the grouping; the ships keep their orders
func (s *Simulation) DisbandFleet(fleetId core.Id) error {
	if s.st.Fleets[fleetId] == nil {
		return fmt.Errorf("fleet %d: %w", fleetId, ErrNotFound)
	}
	delete(s.st.Fleets, fleetId)
	return nil
}

// AddShipToFleet adds a ship of the same faction
func (s *Simulation) AddShipToFleet(fleetId, shipId core.Id) error {
	fleet := s.st.Fleets[fleetId]
	if fleet == nil {
		return fmt.Errorf("fleet %d: %w", fleetId, ErrNotFound)
	}
	ship := s.ship(shipId)
	if ship == nil {
		return fmt.Errorf("unknown ship %d", shipId)
	}
	if ship.FactionId != fleet.FactionId {
		return fmt.Errorf("ship belongs to another faction")
	}
	for _, id := range fleet.ShipIds {
		if id == shipId {
			return nil
		}
	}
	fleet.ShipIds = append(fleet.ShipIds, shipId)
	return nil
}

// RemoveShipFromFleet drops a ship; an emptied fleet is disbanded
func (s *Simulation) RemoveShipFromFleet(fleetId, shipId core.Id) error {
	fleet := s.st.Fleets[fleetId]
	if fleet == nil {
		return fmt.Errorf("fleet %d: %w", fleetId, ErrNotFound)
	}
	for i, id := range fleet.ShipIds {
		if id != shipId {
			continue
		}
		fleet.ShipIds = append(fleet.ShipIds[:i], fleet.ShipIds[i+1:]...)
		if len(fleet.ShipIds) == 0 {
			delete(s.st.Fleets, fleetId)
		} else if fleet.LeaderShipId == shipId {
			fleet.LeaderShipId = fleet.ShipIds[0]
		}
		return nil
	}
	return fmt.Errorf("ship %d is not in the fleet", shipId)
}

// fleetIssue applies a per-ship command across a fleet. The command
// lands on every member or none: when any ship rejects it, orders
// already issued to earlier members are rolled back.
func (s *Simulation) fleetIssue(fleetId core.Id, issue func(shipId core.Id) error) error {
	fleet := s.st.Fleets[fleetId]
	if fleet == nil {
		return fmt.Errorf("fleet %d: %w", fleetId, ErrNotFound)
	}

	saved := make(map[core.Id]state.ShipOrders, len(fleet.ShipIds))
	for _, shipId := range fleet.ShipIds {
		if so := s.st.ShipOrders[shipId]; so != nil {
			saved[shipId] = state.ShipOrders{
				Queue:                state.CloneOrders(so.Queue),
				Repeat:               so.Repeat,
				RepeatTemplate:       state.CloneOrders(so.RepeatTemplate),
				RepeatCountRemaining: so.RepeatCountRemaining,
			}
		}
	}

	for _, shipId := range fleet.ShipIds {
		if err := issue(shipId); err != nil {
			for _, id := range fleet.ShipIds {
				if snap, ok := saved[id]; ok {
					restored := snap
					s.st.ShipOrders[id] = &restored
				} else {
					delete(s.st.ShipOrders, id)
				}
			}
			return fmt.Errorf("ship %d: %w", shipId, err)
		}
	}
	return nil
}

// FleetClearOrders clears every member's queue
func (s *Simulation) FleetClearOrders(fleetId core.Id) error {
	return s.fleetIssue(fleetId, s.ClearOrders)
}

// FleetIssueMoveToPoint moves every member to the same point
func (s *Simulation) FleetIssueMoveToPoint(fleetId core.Id, targetMkm core.Vec2) error {
	return s.fleetIssue(fleetId, func(shipId core.Id) error {
		return s.IssueMoveToPoint(shipId, targetMkm)
	})
}

// FleetIssueMoveToBody moves every member to the same body
func (s *Simulation) FleetIssueMoveToBody(fleetId, bodyId core.Id) error {
	return s.fleetIssue(fleetId, func(shipId core.Id) error {
		return s.IssueMoveToBody(shipId, bodyId)
	})
}

// FleetIssueTravelViaJump sends every member through the same jump point
func (s *Simulation) FleetIssueTravelViaJump(fleetId, jumpPointId core.Id) error {
	return s.fleetIssue(fleetId, func(shipId core.Id) error {
		return s.IssueTravelViaJump(shipId, jumpPointId)
	})
}

// FleetIssueTravelToSystem routes every member to the same system
func (s *Simulation) FleetIssueTravelToSystem(fleetId, targetSystemId core.Id) error {
	return s.fleetIssue(fleetId, func(shipId core.Id) error {
		return s.IssueTravelToSystem(shipId, targetSystemId)
	})
}

// FleetIssueAttackShip sets the whole fleet on one target
func (s *Simulation) FleetIssueAttackShip(fleetId, targetShipId core.Id) error {
	return s.fleetIssue(fleetId, func(shipId core.Id) error {
		return s.IssueAttackShip(shipId, targetShipId)
	})
}
