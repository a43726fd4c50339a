package sim

import (
	"fmt"
	"math"

	"github.com/nebula4x/simcore/content"
	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/events"
	"github.com/nebula4x/simcore/state"
)

// shipyardCapacityTonsPerDay sums a colony's daily shipyard throughput.
// A colony with no shipyard installations still gets the configured base
// rate as an improvised slipway, so a homeworld can bootstrap.
func (s *Simulation) shipyardCapacityTonsPerDay(c *state.Colony) float64 {
	capacity := 0.0
	for _, instId := range state.SortedKeys(c.Installations) {
		count := c.Installations[instId]
		if count <= 0 {
			continue
		}
		def := s.content.Installation(instId)
		if def == nil || def.ShipyardTonsPerDay <= 0 {
			continue
		}
		capacity += float64(count) * def.ShipyardTonsPerDay
	}
	if capacity <= 0 {
		capacity = s.cfg.ShipyardBaseRateTonsPerDay
	}
	return capacity * s.BlockadeOutputMultiplier(c)
}

// EstimateRefitTons is the shipyard work needed to refit onto a design
func (s *Simulation) EstimateRefitTons(design *content.ShipDesign) float64 {
	if design == nil {
		return 0
	}
	return design.MassTons * s.cfg.ShipRefitTonsMultiplier
}

// tickShipyards spends each colony's daily tonnage down its build queue.
// Work on a hull is limited by capacity, hull remaining and the minerals
// on hand; leftover capacity flows to the next order.
func (s *Simulation) tickShipyards() {
	for _, colonyId := range state.SortedIds(s.st.Colonies) {
		c := s.st.Colonies[colonyId]
		if len(c.ShipyardQueue) == 0 {
			continue
		}
		capacity := s.shipyardCapacityTonsPerDay(c)
		if capacity <= 0 {
			continue
		}

		for i := range c.ShipyardQueue {
			if capacity <= 1e-9 {
				break
			}
			order := &c.ShipyardQueue[i]
			design := s.FindDesign(order.DesignId)
			if design == nil {
				order.TonsRemaining = 0
				continue
			}

			tons := math.Min(capacity, order.TonsRemaining)
			for _, m := range state.SortedKeys(design.BuildCostPerTon) {
				costPerTon := design.BuildCostPerTon[m]
				if costPerTon <= 0 {
					continue
				}
				tons = math.Min(tons, c.Minerals[m]/costPerTon)
			}
			if tons <= 1e-9 {
				continue
			}

			for _, m := range state.SortedKeys(design.BuildCostPerTon) {
				cost := design.BuildCostPerTon[m] * tons
				if cost <= 0 {
					continue
				}
				c.Minerals[m] -= cost
				if c.Minerals[m] <= 1e-9 {
					delete(c.Minerals, m)
				}
			}
			order.TonsRemaining -= tons
			capacity -= tons

			if order.TonsRemaining <= 1e-9 {
				order.TonsRemaining = 0
				s.completeBuildOrder(c, order, design)
			}
		}

		out := c.ShipyardQueue[:0]
		for _, order := range c.ShipyardQueue {
			if order.TonsRemaining > 0 {
				out = append(out, order)
			}
		}
		c.ShipyardQueue = out
	}
}

// completeBuildOrder commissions a new hull or applies a finished refit
func (s *Simulation) completeBuildOrder(c *state.Colony, order *state.BuildOrder, design *content.ShipDesign) {
	b := s.body(c.BodyId)
	if b == nil {
		return
	}

	if order.RefitShipId.Valid() {
		s.applyRefit(c, b, order.RefitShipId, design)
		return
	}

	id := s.st.AllocateId()
	ship := &state.Ship{
		Id:                   id,
		Name:                 fmt.Sprintf("%s #%d", design.Name, id),
		FactionId:            c.FactionId,
		SystemId:             b.SystemId,
		PositionMkm:          b.PositionMkm,
		PrevPositionMkm:      b.PositionMkm,
		DesignId:             design.Id,
		Hp:                   math.Max(1, design.MaxHp),
		Shields:              design.MaxShields,
		FuelTons:             design.FuelCapacityTons,
		Integrity:            state.FullIntegrity(),
		MaintenanceCondition: 1.0,
		PowerPolicy:          state.DefaultPowerPolicy(),
		CrewGradePoints:      s.cfg.CrewInitialGradePoints,
	}
	s.st.Ships[id] = ship
	sys := s.system(b.SystemId)
	sys.Ships = append(sys.Ships, id)

	s.pushInfo(events.CategoryConstruction,
		fmt.Sprintf("Ship built: %s at %s", ship.Name, c.Name),
		events.Event{FactionId: c.FactionId, SystemId: b.SystemId, ShipId: id, ColonyId: c.Id})
}

// applyRefit swaps a docked ship onto the new design, spilling cargo
// that no longer fits back to the colony
func (s *Simulation) applyRefit(c *state.Colony, b *state.Body, shipId core.Id, design *content.ShipDesign) {
	ship := s.ship(shipId)
	if ship == nil || ship.SystemId != b.SystemId ||
		ship.PositionMkm.Distance(b.PositionMkm) > s.dockingTolerance() {
		s.log.Warn().Uint64("ship", uint64(shipId)).Msg("refit completed but ship not docked")
		return
	}

	ship.DesignId = design.Id
	ship.Hp = math.Max(1, design.MaxHp)
	ship.Shields = design.MaxShields
	ship.FuelTons = math.Min(ship.FuelTons, design.FuelCapacityTons)
	ship.Integrity = state.FullIntegrity()
	ship.MaintenanceCondition = 1.0

	excess := shipCargoUsed(ship) - design.CargoTons
	for _, m := range state.SortedKeys(ship.Cargo) {
		if excess <= 1e-9 {
			break
		}
		move := math.Min(ship.Cargo[m], excess)
		ship.Cargo[m] -= move
		if ship.Cargo[m] <= 1e-9 {
			delete(ship.Cargo, m)
		}
		c.Minerals = state.AddMineral(c.Minerals, m, move)
		excess -= move
	}

	s.pushInfo(events.CategoryConstruction,
		fmt.Sprintf("Refit complete: %s at %s", ship.Name, c.Name),
		events.Event{FactionId: c.FactionId, SystemId: b.SystemId, ShipId: ship.Id, ColonyId: c.Id})
}
