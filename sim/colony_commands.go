package sim

import (
	"fmt"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/state"
)

func (s *Simulation) colonyForCommand(colonyId core.Id) (*state.Colony, error) {
	c := s.colony(colonyId)
	if c == nil {
		return nil, fmt.Errorf("colony %d: %w", colonyId, ErrNotFound)
	}
	return c, nil
}

// EnqueueBuildShip queues a new hull at the colony's shipyard
func (s *Simulation) EnqueueBuildShip(colonyId core.Id, designId string) error {
	c, err := s.colonyForCommand(colonyId)
	if err != nil {
		return err
	}
	design := s.FindDesign(designId)
	if design == nil {
		return fmt.Errorf("design %q: %w", designId, ErrNotFound)
	}
	if !s.IsDesignBuildableForFaction(c.FactionId, designId) {
		return fmt.Errorf("design %q is not buildable yet", designId)
	}
	c.ShipyardQueue = append(c.ShipyardQueue, state.BuildOrder{
		DesignId:      designId,
		TonsRemaining: design.MassTons,
	})
	return nil
}

// EnqueueRefit queues converting a docked ship onto a new design. Refit
// work is a fraction of a fresh build.
func (s *Simulation) EnqueueRefit(colonyId, shipId core.Id, designId string) error {
	c, err := s.colonyForCommand(colonyId)
	if err != nil {
		return err
	}
	ship := s.ship(shipId)
	if ship == nil {
		return fmt.Errorf("unknown ship %d", shipId)
	}
	if ship.FactionId != c.FactionId {
		return fmt.Errorf("ship does not belong to the colony's faction")
	}
	b := s.body(c.BodyId)
	if b == nil || ship.SystemId != b.SystemId ||
		ship.PositionMkm.Distance(b.PositionMkm) > s.dockingTolerance() {
		return fmt.Errorf("ship must be docked at the colony")
	}
	design := s.FindDesign(designId)
	if design == nil {
		return fmt.Errorf("design %q: %w", designId, ErrNotFound)
	}
	if !s.IsDesignBuildableForFaction(c.FactionId, designId) {
		return fmt.Errorf("design %q is not buildable yet", designId)
	}
	c.ShipyardQueue = append(c.ShipyardQueue, state.BuildOrder{
		DesignId:      designId,
		TonsRemaining: s.EstimateRefitTons(design),
		RefitShipId:   shipId,
	})
	return nil
}

// EnqueueInstallationBuild queues construction of installations
func (s *Simulation) EnqueueInstallationBuild(colonyId core.Id, installationId string, quantity int) error {
	c, err := s.colonyForCommand(colonyId)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if s.content.Installation(installationId) == nil {
		return fmt.Errorf("installation %q: %w", installationId, ErrNotFound)
	}
	if !s.IsInstallationBuildableForFaction(c.FactionId, installationId) {
		return fmt.Errorf("installation %q is not buildable yet", installationId)
	}
	c.ConstructionQueue = append(c.ConstructionQueue, state.InstallationBuildOrder{
		InstallationId:    installationId,
		QuantityRemaining: quantity,
	})
	return nil
}

// MoveShipyardOrder moves a queue entry to a new index
func (s *Simulation) MoveShipyardOrder(colonyId core.Id, from, to int) error {
	c, err := s.colonyForCommand(colonyId)
	if err != nil {
		return err
	}
	return moveQueueEntry(c.ShipyardQueue, from, to)
}

// DeleteShipyardOrder removes a queue entry. Work already done on the
// hull is lost; minerals already spent are not refunded.
func (s *Simulation) DeleteShipyardOrder(colonyId core.Id, index int) error {
	c, err := s.colonyForCommand(colonyId)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(c.ShipyardQueue) {
		return fmt.Errorf("index out of range")
	}
	c.ShipyardQueue = append(c.ShipyardQueue[:index], c.ShipyardQueue[index+1:]...)
	return nil
}

// MoveConstructionOrder moves a queue entry to a new index
func (s *Simulation) MoveConstructionOrder(colonyId core.Id, from, to int) error {
	c, err := s.colonyForCommand(colonyId)
	if err != nil {
		return err
	}
	return moveQueueEntry(c.ConstructionQueue, from, to)
}

// DeleteConstructionOrder removes a queue entry, refunding the mineral
// payment for a unit that was paid but not finished
func (s *Simulation) DeleteConstructionOrder(colonyId core.Id, index int) error {
	c, err := s.colonyForCommand(colonyId)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(c.ConstructionQueue) {
		return fmt.Errorf("index out of range")
	}
	order := c.ConstructionQueue[index]
	if order.MineralsPaid {
		if def := s.content.Installation(order.InstallationId); def != nil {
			for _, m := range state.SortedKeys(def.ConstructionCost) {
				c.Minerals = state.AddMineral(c.Minerals, m, def.ConstructionCost[m])
			}
		}
	}
	c.ConstructionQueue = append(c.ConstructionQueue[:index], c.ConstructionQueue[index+1:]...)
	return nil
}

// SetMineralReserve protects part of a colony's stockpile from
// automated freight export
func (s *Simulation) SetMineralReserve(colonyId core.Id, mineral string, tons float64) error {
	c, err := s.colonyForCommand(colonyId)
	if err != nil {
		return err
	}
	if tons <= 0 {
		delete(c.MineralReserves, mineral)
		return nil
	}
	if c.MineralReserves == nil {
		c.MineralReserves = make(map[string]float64)
	}
	c.MineralReserves[mineral] = tons
	return nil
}

// SetMineralTarget asks automated freight to keep the stockpile topped
// up to a level
func (s *Simulation) SetMineralTarget(colonyId core.Id, mineral string, tons float64) error {
	c, err := s.colonyForCommand(colonyId)
	if err != nil {
		return err
	}
	if tons <= 0 {
		delete(c.MineralTargets, mineral)
		return nil
	}
	if c.MineralTargets == nil {
		c.MineralTargets = make(map[string]float64)
	}
	c.MineralTargets[mineral] = tons
	return nil
}

func moveQueueEntry[T any](queue []T, from, to int) error {
	if from < 0 || from >= len(queue) || to < 0 || to >= len(queue) {
		return fmt.Errorf("index out of range")
	}
	if from == to {
		return nil
	}
	entry := queue[from]
	if from < to {
		copy(queue[from:], queue[from+1:to+1])
	} else {
		copy(queue[to+1:], queue[to:from])
	}
	queue[to] = entry
	return nil
}
