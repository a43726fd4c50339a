package sim

import (
	"fmt"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/state"
)

// shipForCommand resolves a ship or fails with a uniform error
func (s *Simulation) shipForCommand(shipId core.Id) (*state.Ship, error) {
	ship := s.ship(shipId)
	if ship == nil {
		return nil, fmt.Errorf("ship %d: %w", shipId, ErrNotFound)
	}
	return ship, nil
}

// ClearOrders empties a ship's queue and repeat template
func (s *Simulation) ClearOrders(shipId core.Id) error {
	if _, err := s.shipForCommand(shipId); err != nil {
		return err
	}
	so := s.st.OrdersFor(shipId)
	so.Queue = nil
	so.Repeat = false
	so.RepeatTemplate = nil
	so.RepeatCountRemaining = 0
	return nil
}

// CancelCurrentOrder drops the order at the front of the queue
func (s *Simulation) CancelCurrentOrder(shipId core.Id) error {
	if _, err := s.shipForCommand(shipId); err != nil {
		return err
	}
	so := s.st.OrdersFor(shipId)
	if len(so.Queue) == 0 {
		return fmt.Errorf("no current order")
	}
	so.Queue = so.Queue[1:]
	return nil
}

// EnableOrderRepeat snapshots the current queue as the repeat template.
// count -1 repeats forever; each drain of the queue consumes one count.
func (s *Simulation) EnableOrderRepeat(shipId core.Id, count int) error {
	if _, err := s.shipForCommand(shipId); err != nil {
		return err
	}
	so := s.st.OrdersFor(shipId)
	if len(so.Queue) == 0 {
		return fmt.Errorf("nothing to repeat")
	}
	so.Repeat = true
	so.RepeatTemplate = state.CloneOrders(so.Queue)
	so.RepeatCountRemaining = count
	return nil
}

// EnableOrderRepeatFromTemplate installs an explicit repeat template
func (s *Simulation) EnableOrderRepeatFromTemplate(shipId core.Id, template []state.Order, count int) error {
	if _, err := s.shipForCommand(shipId); err != nil {
		return err
	}
	if len(template) == 0 {
		return fmt.Errorf("empty template")
	}
	so := s.st.OrdersFor(shipId)
	so.Repeat = true
	so.RepeatTemplate = state.CloneOrders(template)
	so.RepeatCountRemaining = count
	return nil
}

// DisableOrderRepeat stops repeating after the current queue drains
func (s *Simulation) DisableOrderRepeat(shipId core.Id) error {
	if _, err := s.shipForCommand(shipId); err != nil {
		return err
	}
	so := s.st.OrdersFor(shipId)
	so.Repeat = false
	so.RepeatCountRemaining = 0
	return nil
}

func (s *Simulation) appendOrder(shipId core.Id, o state.Order) {
	so := s.st.OrdersFor(shipId)
	so.Queue = append(so.Queue, o)
}

// IssueWaitDays queues an idle period
func (s *Simulation) IssueWaitDays(shipId core.Id, days float64) error {
	if _, err := s.shipForCommand(shipId); err != nil {
		return err
	}
	if days <= 0 {
		return fmt.Errorf("wait must be positive")
	}
	s.appendOrder(shipId, state.WaitDays{DaysRemaining: days})
	return nil
}

// IssueMoveToPoint queues movement to fixed coordinates in whatever
// system the ship will then be in
func (s *Simulation) IssueMoveToPoint(shipId core.Id, targetMkm core.Vec2) error {
	if _, err := s.shipForCommand(shipId); err != nil {
		return err
	}
	s.appendOrder(shipId, state.MoveToPoint{TargetMkm: targetMkm})
	return nil
}

// IssueMoveToBody queues movement to a body. The body must lie in the
// system the ship's queue leaves it in.
func (s *Simulation) IssueMoveToBody(shipId, bodyId core.Id) error {
	ship, err := s.shipForCommand(shipId)
	if err != nil {
		return err
	}
	b := s.body(bodyId)
	if b == nil {
		return fmt.Errorf("body %d: %w", bodyId, ErrNotFound)
	}
	if ns := s.predictedNavState(ship); b.SystemId != ns.SystemId {
		return fmt.Errorf("body %s is not in the destination system", b.Name)
	}
	s.appendOrder(shipId, state.MoveToBody{BodyId: bodyId})
	return nil
}

// IssueTravelViaJump queues a transit through a surveyed jump point
func (s *Simulation) IssueTravelViaJump(shipId, jumpPointId core.Id) error {
	ship, err := s.shipForCommand(shipId)
	if err != nil {
		return err
	}
	jp := s.jumpPoint(jumpPointId)
	if jp == nil {
		return fmt.Errorf("jump point %d: %w", jumpPointId, ErrNotFound)
	}
	if ns := s.predictedNavState(ship); jp.SystemId != ns.SystemId {
		return fmt.Errorf("jump point is not in the destination system")
	}
	f := s.faction(ship.FactionId)
	if f == nil || !f.HasSurveyedJumpPoint(jumpPointId) {
		return fmt.Errorf("jump point not surveyed")
	}
	s.appendOrder(shipId, state.TravelViaJump{JumpPointId: jumpPointId})
	return nil
}

// IssueAttackShip queues pursuit and engagement of another ship. Attack
// orders across a ceasefire or non-aggression line are refused.
func (s *Simulation) IssueAttackShip(shipId, targetShipId core.Id) error {
	ship, err := s.shipForCommand(shipId)
	if err != nil {
		return err
	}
	target := s.ship(targetShipId)
	if target == nil {
		return fmt.Errorf("target ship %d: %w", targetShipId, ErrNotFound)
	}
	if target.FactionId == ship.FactionId {
		return fmt.Errorf("cannot attack own ship")
	}
	if s.HasActiveTreaty(ship.FactionId, target.FactionId, state.TreatyCeasefire) ||
		s.HasActiveTreaty(ship.FactionId, target.FactionId, state.TreatyNonAggression) {
		return fmt.Errorf("attack order: %w", ErrTreatyBlocked)
	}
	s.appendOrder(shipId, state.AttackShip{TargetShipId: targetShipId})
	return nil
}

// IssueLoadMineral queues a pickup at a colony. An empty mineral id
// loads everything available, tons 0 means as much as fits.
func (s *Simulation) IssueLoadMineral(shipId, colonyId core.Id, mineral string, tons float64) error {
	ship, err := s.shipForCommand(shipId)
	if err != nil {
		return err
	}
	if err := s.validateColonyStop(ship, colonyId); err != nil {
		return err
	}
	s.appendOrder(shipId, state.LoadMineral{ColonyId: colonyId, Mineral: mineral, Tons: tons})
	return nil
}

// IssueUnloadMineral queues a delivery to a colony
func (s *Simulation) IssueUnloadMineral(shipId, colonyId core.Id, mineral string, tons float64) error {
	ship, err := s.shipForCommand(shipId)
	if err != nil {
		return err
	}
	if err := s.validateColonyStop(ship, colonyId); err != nil {
		return err
	}
	s.appendOrder(shipId, state.UnloadMineral{ColonyId: colonyId, Mineral: mineral, Tons: tons})
	return nil
}

func (s *Simulation) validateColonyStop(ship *state.Ship, colonyId core.Id) error {
	c := s.colony(colonyId)
	if c == nil {
		return fmt.Errorf("colony %d: %w", colonyId, ErrNotFound)
	}
	b := s.body(c.BodyId)
	if b == nil {
		return fmt.Errorf("colony body missing")
	}
	if ns := s.predictedNavState(ship); b.SystemId != ns.SystemId {
		return fmt.Errorf("colony %s is not in the destination system", c.Name)
	}
	return nil
}

// IssueColonizeBody queues founding a colony. The ship must carry colony
// capacity and the body must be unsettled.
func (s *Simulation) IssueColonizeBody(shipId, bodyId core.Id) error {
	ship, err := s.shipForCommand(shipId)
	if err != nil {
		return err
	}
	design := s.shipDesign(ship)
	if design == nil || design.ColonyCapacityMillions <= 0 {
		return fmt.Errorf("ship has no colony capacity")
	}
	b := s.body(bodyId)
	if b == nil {
		return fmt.Errorf("body %d: %w", bodyId, ErrNotFound)
	}
	if ns := s.predictedNavState(ship); b.SystemId != ns.SystemId {
		return fmt.Errorf("body %s is not in the destination system", b.Name)
	}
	if s.colonyForBody(bodyId) != nil {
		return fmt.Errorf("body %s is already settled", b.Name)
	}
	s.appendOrder(shipId, state.ColonizeBody{BodyId: bodyId})
	return nil
}

// IssueInvestigateAnomaly queues investigation of a discovered anomaly
func (s *Simulation) IssueInvestigateAnomaly(shipId, anomalyId core.Id) error {
	ship, err := s.shipForCommand(shipId)
	if err != nil {
		return err
	}
	a := s.st.Anomalies[anomalyId]
	if a == nil || a.Resolved {
		return fmt.Errorf("anomaly unavailable")
	}
	f := s.faction(ship.FactionId)
	if f == nil || !factionKnowsAnomaly(f, anomalyId) {
		return fmt.Errorf("anomaly not discovered")
	}
	if ns := s.predictedNavState(ship); a.SystemId != ns.SystemId {
		return fmt.Errorf("anomaly is not in the destination system")
	}
	s.appendOrder(shipId, state.InvestigateAnomaly{AnomalyId: anomalyId})
	return nil
}

// IssueSurveyJumpPoint queues surveying a jump point, optionally
// transiting it immediately after
func (s *Simulation) IssueSurveyJumpPoint(shipId, jumpPointId core.Id, transitWhenDone bool) error {
	ship, err := s.shipForCommand(shipId)
	if err != nil {
		return err
	}
	jp := s.jumpPoint(jumpPointId)
	if jp == nil {
		return fmt.Errorf("jump point %d: %w", jumpPointId, ErrNotFound)
	}
	if ns := s.predictedNavState(ship); jp.SystemId != ns.SystemId {
		return fmt.Errorf("jump point is not in the destination system")
	}
	s.appendOrder(shipId, state.SurveyJumpPoint{JumpPointId: jumpPointId, TransitWhenDone: transitWhenDone})
	return nil
}
