package sim

import (
	"math"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/events"
	"github.com/nebula4x/simcore/state"
)

// tickCrewExperience accrues daily training points
func (s *Simulation) tickCrewExperience() {
	if !s.cfg.EnableCrewExperience {
		return
	}
	for _, ship := range s.st.Ships {
		ship.CrewGradePoints += s.cfg.CrewTrainingPointsMultiplier
	}
}

// dockedFriendlyColony returns the colony a ship is sitting on, if any
func (s *Simulation) dockedFriendlyColony(ship *state.Ship) *state.Colony {
	for _, colonyId := range state.SortedIds(s.st.Colonies) {
		c := s.st.Colonies[colonyId]
		if s.AreFactionsHostile(ship.FactionId, c.FactionId) {
			continue
		}
		if c.FactionId != ship.FactionId && !s.areMutuallyFriendly(ship.FactionId, c.FactionId) {
			continue
		}
		b := s.body(c.BodyId)
		if b == nil || b.SystemId != ship.SystemId {
			continue
		}
		if ship.PositionMkm.Distance(b.PositionMkm) <= s.dockingTolerance() {
			return c
		}
	}
	return nil
}

// tickMaintenanceAndRepairs runs daily upkeep. Supplied ships recover
// condition, unsupplied ships wear down; docked ships also get hull and
// subsystem repairs from local shipyards.
func (s *Simulation) tickMaintenanceAndRepairs() {
	for _, shipId := range state.SortedIds(s.st.Ships) {
		ship := s.st.Ships[shipId]
		design := s.shipDesign(ship)
		if design == nil {
			continue
		}
		docked := s.dockedFriendlyColony(ship)

		if s.cfg.EnableShipMaintenance {
			need := design.MassTons * s.cfg.ShipMaintenanceTonsPerDayPerTon
			supplied := false
			if docked != nil && need > 0 {
				res := s.cfg.ShipMaintenanceResourceId
				if docked.Minerals[res] >= need {
					docked.Minerals[res] -= need
					if docked.Minerals[res] <= 1e-9 {
						delete(docked.Minerals, res)
					}
					supplied = true
				}
			} else if need <= 0 {
				supplied = docked != nil
			}

			before := ship.MaintenanceCondition
			if supplied {
				ship.MaintenanceCondition = core.Clamp(
					ship.MaintenanceCondition+s.cfg.ShipMaintenanceRecoveryPerDay, 0, 1)
			} else {
				ship.MaintenanceCondition = core.Clamp(
					ship.MaintenanceCondition-s.cfg.ShipMaintenanceDecayPerDay, 0, 1)
			}
			if before > 0 && ship.MaintenanceCondition <= 0 {
				s.pushWarn(events.CategoryGeneral,
					"Maintenance overdue: "+ship.Name,
					events.Event{FactionId: ship.FactionId, SystemId: ship.SystemId, ShipId: shipId})
			}
		}

		if docked == nil {
			continue
		}

		yards := 0
		for _, instId := range state.SortedKeys(docked.Installations) {
			def := s.content.Installation(instId)
			if def != nil && def.ShipyardTonsPerDay > 0 {
				yards += docked.Installations[instId]
			}
		}
		if yards == 0 {
			continue
		}

		maxHp := math.Max(1, design.MaxHp)
		if ship.Hp < maxHp {
			ship.Hp = math.Min(maxHp, ship.Hp+s.cfg.RepairHpPerDayPerShipyard*float64(yards))
		}
		ship.Integrity.Engines = core.Clamp(ship.Integrity.Engines+0.1, 0, 1)
		ship.Integrity.Weapons = core.Clamp(ship.Integrity.Weapons+0.1, 0, 1)
		ship.Integrity.Sensors = core.Clamp(ship.Integrity.Sensors+0.1, 0, 1)
		ship.Integrity.Shields = core.Clamp(ship.Integrity.Shields+0.1, 0, 1)

		if s.cfg.EnableFuelUse && ship.AutoRefuel {
			ship.FuelTons = design.FuelCapacityTons
		}
	}
}
