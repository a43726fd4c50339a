package sim

import (
	"math"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/state"
)

// LogisticsNeedsForFaction estimates how many tons of each mineral every
// colony is short of: a day of shipyard work, the next unpaid
// construction unit, buffered industry inputs and explicit stockpile
// targets, less minerals on hand.
func (s *Simulation) LogisticsNeedsForFaction(factionId core.Id) map[core.Id]map[string]float64 {
	needs := make(map[core.Id]map[string]float64)
	for _, colonyId := range s.ColoniesOfFaction(factionId) {
		c := s.st.Colonies[colonyId]
		want := make(map[string]float64)

		if len(c.ShipyardQueue) > 0 {
			order := c.ShipyardQueue[0]
			if design := s.FindDesign(order.DesignId); design != nil {
				tons := math.Min(s.shipyardCapacityTonsPerDay(c), order.TonsRemaining)
				for m, costPerTon := range design.BuildCostPerTon {
					want[m] += costPerTon * tons
				}
			}
		}

		for _, order := range c.ConstructionQueue {
			if order.QuantityRemaining <= 0 || order.MineralsPaid {
				continue
			}
			if def := s.content.Installation(order.InstallationId); def != nil {
				for m, cost := range def.ConstructionCost {
					want[m] += cost
				}
			}
			break // only the next unit to pay
		}

		buffer := s.cfg.AutoFreightIndustryInputBufferDays
		for _, instId := range state.SortedKeys(c.Installations) {
			count := c.Installations[instId]
			if count <= 0 {
				continue
			}
			def := s.content.Installation(instId)
			if def == nil || def.Mining {
				continue
			}
			for m, perDay := range def.ConsumesPerDay {
				want[m] += perDay * float64(count) * buffer
			}
		}

		for m, target := range c.MineralTargets {
			want[m] = math.Max(want[m], target)
		}

		short := make(map[string]float64)
		for _, m := range state.SortedKeys(want) {
			if gap := want[m] - c.Minerals[m]; gap > 1e-9 {
				short[m] = gap
			}
		}
		if len(short) > 0 {
			needs[colonyId] = short
		}
	}
	return needs
}

// colonySurplus is stock above reserve and above the colony's own needs
func (s *Simulation) colonySurplus(c *state.Colony, mineral string, needs map[core.Id]map[string]float64) float64 {
	surplus := c.Minerals[mineral] - c.MineralReserves[mineral]
	if own, ok := needs[c.Id]; ok {
		surplus -= own[mineral]
	}
	return math.Max(0, surplus)
}

// tickAutoFreight assigns idle auto-freight ships a pickup and delivery
// run toward the neediest colony of their faction
func (s *Simulation) tickAutoFreight() {
	for _, shipId := range state.SortedIds(s.st.Ships) {
		ship := s.st.Ships[shipId]
		if !ship.AutoFreight {
			continue
		}
		if so := s.st.ShipOrders[shipId]; so != nil && len(so.Queue) > 0 {
			continue
		}
		design := s.shipDesign(ship)
		if design == nil || design.CargoTons <= 0 {
			continue
		}
		capacity := design.CargoTons - shipCargoUsed(ship)
		if capacity < s.cfg.AutoFreightMinTransferTons {
			continue
		}
		s.assignFreightRun(ship, capacity)
	}
}

// assignFreightRun picks the largest single shortfall the ship can serve
// and queues the full round trip
func (s *Simulation) assignFreightRun(ship *state.Ship, capacity float64) {
	needs := s.LogisticsNeedsForFaction(ship.FactionId)
	if len(needs) == 0 {
		return
	}

	type run struct {
		dest    *state.Colony
		donor   *state.Colony
		mineral string
		tons    float64
	}
	var best run

	for _, destId := range state.SortedIds(needs) {
		dest := s.st.Colonies[destId]
		for _, mineral := range state.SortedKeys(needs[destId]) {
			need := needs[destId][mineral]
			for _, donorId := range s.ColoniesOfFaction(ship.FactionId) {
				if donorId == destId {
					continue
				}
				donor := s.st.Colonies[donorId]
				surplus := s.colonySurplus(donor, mineral, needs) * s.cfg.AutoFreightMaxTakeFractionOfSurplus
				tons := math.Min(math.Min(need, surplus), capacity)
				if tons < s.cfg.AutoFreightMinTransferTons {
					continue
				}
				if !s.colonyReachable(ship, donor) || !s.colonyReachable(ship, dest) {
					continue
				}
				if tons > best.tons {
					best = run{dest: dest, donor: donor, mineral: mineral, tons: tons}
				}
			}
		}
	}
	if best.tons <= 0 {
		return
	}

	so := s.st.OrdersFor(ship.Id)
	s.queueLegTo(ship, best.donor)
	so.Queue = append(so.Queue, state.LoadMineral{ColonyId: best.donor.Id, Mineral: best.mineral, Tons: best.tons})

	if s.cfg.AutoFreightMultiMineral {
		remaining := capacity - best.tons
		if destNeeds, ok := needs[best.dest.Id]; ok {
			for _, mineral := range state.SortedKeys(destNeeds) {
				if mineral == best.mineral || remaining < s.cfg.AutoFreightMinTransferTons {
					continue
				}
				surplus := s.colonySurplus(best.donor, mineral, needs) * s.cfg.AutoFreightMaxTakeFractionOfSurplus
				tons := math.Min(math.Min(destNeeds[mineral], surplus), remaining)
				if tons < s.cfg.AutoFreightMinTransferTons {
					continue
				}
				so.Queue = append(so.Queue, state.LoadMineral{ColonyId: best.donor.Id, Mineral: mineral, Tons: tons})
				remaining -= tons
			}
		}
	}

	s.queueLegTo(ship, best.dest)
	so.Queue = append(so.Queue, state.UnloadMineral{ColonyId: best.dest.Id})
}

// colonyReachable reports whether a route to the colony's system exists
func (s *Simulation) colonyReachable(ship *state.Ship, c *state.Colony) bool {
	b := s.body(c.BodyId)
	if b == nil {
		return false
	}
	ns := s.predictedNavState(ship)
	if b.SystemId == ns.SystemId {
		return true
	}
	_, err := s.planJumpRoute(ship.FactionId, ns.SystemId, ns.PosMkm, b.SystemId)
	return err == nil
}

// queueLegTo appends the jumps, if any, to reach the colony's system
func (s *Simulation) queueLegTo(ship *state.Ship, c *state.Colony) {
	b := s.body(c.BodyId)
	if b == nil {
		return
	}
	ns := s.predictedNavState(ship)
	if b.SystemId != ns.SystemId {
		hops, err := s.planJumpRoute(ship.FactionId, ns.SystemId, ns.PosMkm, b.SystemId)
		if err != nil {
			return
		}
		so := s.st.OrdersFor(ship.Id)
		for _, hop := range hops {
			so.Queue = append(so.Queue, state.TravelViaJump{JumpPointId: hop.JumpPointId})
		}
	}
}

// tickAutoExplore sends idle survey ships at the nearest unsurveyed jump
// point their faction knows about, transiting through to push the
// frontier outward
func (s *Simulation) tickAutoExplore() {
	for _, shipId := range state.SortedIds(s.st.Ships) {
		ship := s.st.Ships[shipId]
		if !ship.AutoExplore {
			continue
		}
		if so := s.st.ShipOrders[shipId]; so != nil && len(so.Queue) > 0 {
			continue
		}
		f := s.faction(ship.FactionId)
		if f == nil {
			continue
		}

		if jpId := s.unsurveyedJumpPointIn(f, ship.SystemId); jpId.Valid() {
			so := s.st.OrdersFor(shipId)
			so.Queue = append(so.Queue, state.SurveyJumpPoint{JumpPointId: jpId, TransitWhenDone: true})
			continue
		}

		// nothing left here: look through discovered systems for work
		for _, sysId := range sortedIdSlice(f.DiscoveredSystems) {
			if sysId == ship.SystemId {
				continue
			}
			jpId := s.unsurveyedJumpPointIn(f, sysId)
			if !jpId.Valid() {
				continue
			}
			if err := s.IssueTravelToSystem(shipId, sysId); err != nil {
				continue
			}
			so := s.st.OrdersFor(shipId)
			so.Queue = append(so.Queue, state.SurveyJumpPoint{JumpPointId: jpId, TransitWhenDone: true})
			break
		}
	}
}

func (s *Simulation) unsurveyedJumpPointIn(f *state.Faction, systemId core.Id) core.Id {
	sys := s.system(systemId)
	if sys == nil {
		return core.InvalidId
	}
	for _, jpId := range sortedIdSlice(sys.JumpPoints) {
		if !f.HasSurveyedJumpPoint(jpId) {
			return jpId
		}
	}
	return core.InvalidId
}
