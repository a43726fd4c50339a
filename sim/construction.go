package sim

import (
	"fmt"
	"math"

	"github.com/nebula4x/simcore/events"
	"github.com/nebula4x/simcore/state"
)

// ConstructionPointsPerDay is a colony's daily construction output,
// from population plus dedicated installations
func (s *Simulation) ConstructionPointsPerDay(colony *state.Colony) float64 {
	if colony == nil {
		return 0
	}
	cp := math.Max(0, colony.PopulationMillions*0.01)
	for _, instId := range state.SortedKeys(colony.Installations) {
		count := colony.Installations[instId]
		if count <= 0 {
			continue
		}
		if def := s.content.Installation(instId); def != nil {
			cp += float64(count) * def.ConstructionPointsPerDay
		}
	}
	return cp * s.factionOutputBonus(colony.FactionId, "industry") * s.BlockadeOutputMultiplier(colony)
}

// tickConstruction spends each colony's daily construction points down
// its queue. Minerals are paid up front per unit; a job that cannot pay
// stalls without blocking jobs behind it.
func (s *Simulation) tickConstruction() {
	for _, colonyId := range state.SortedIds(s.st.Colonies) {
		c := s.st.Colonies[colonyId]
		if len(c.ConstructionQueue) == 0 {
			continue
		}
		cp := s.ConstructionPointsPerDay(c)

		for cp > 1e-9 {
			progressed := false
			for i := range c.ConstructionQueue {
				if cp <= 1e-9 {
					break
				}
				order := &c.ConstructionQueue[i]
				if order.QuantityRemaining <= 0 {
					continue
				}
				def := s.content.Installation(order.InstallationId)
				if def == nil {
					order.QuantityRemaining = 0
					continue
				}

				if !order.MineralsPaid {
					if !s.payMinerals(c, def.ConstructionCost) {
						order.Stalled = true
						continue
					}
					order.MineralsPaid = true
					order.Stalled = false
					order.CpRemaining = def.BuildPoints
				}

				spend := math.Min(cp, order.CpRemaining)
				order.CpRemaining -= spend
				cp -= spend
				if spend > 0 {
					progressed = true
				}

				if order.CpRemaining <= 1e-9 {
					order.QuantityRemaining--
					order.MineralsPaid = false
					order.CpRemaining = 0
					if c.Installations == nil {
						c.Installations = make(map[string]int)
					}
					c.Installations[order.InstallationId]++
					s.pushInfo(events.CategoryConstruction,
						fmt.Sprintf("Constructed %s at %s", def.Name, c.Name),
						events.Event{FactionId: c.FactionId, ColonyId: c.Id})
				}
			}
			if !progressed {
				break
			}
		}

		// drop finished jobs, keeping queue order
		out := c.ConstructionQueue[:0]
		for _, order := range c.ConstructionQueue {
			if order.QuantityRemaining > 0 {
				out = append(out, order)
			}
		}
		c.ConstructionQueue = out
	}
}

// payMinerals withdraws a cost map all-or-nothing
func (s *Simulation) payMinerals(c *state.Colony, cost map[string]float64) bool {
	for _, m := range state.SortedKeys(cost) {
		if c.Minerals[m] < cost[m]-1e-9 {
			return false
		}
	}
	for _, m := range state.SortedKeys(cost) {
		c.Minerals[m] -= cost[m]
		if c.Minerals[m] <= 1e-9 {
			delete(c.Minerals, m)
		}
	}
	return true
}
