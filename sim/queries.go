package sim

import (
	"github.com/nebula4x/simcore/content"
	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/state"
)

// lockedByTech reports whether any tech gates this component or
// installation; ungated content is available from the start
func (s *Simulation) lockedByTech(kind content.TechEffectKind, id string) bool {
	for _, techId := range state.SortedKeys(s.content.Techs) {
		for _, eff := range s.content.Techs[techId].Effects {
			if eff.Kind != kind {
				continue
			}
			if kind == content.EffectUnlockComponent && eff.ComponentId == id {
				return true
			}
			if kind == content.EffectUnlockInstallation && eff.InstallationId == id {
				return true
			}
		}
	}
	return false
}

// IsDesignBuildableForFaction reports whether the faction has unlocked
// every component the design needs
func (s *Simulation) IsDesignBuildableForFaction(factionId core.Id, designId string) bool {
	design := s.FindDesign(designId)
	f := s.faction(factionId)
	if design == nil || f == nil {
		return false
	}
	for _, compId := range design.ComponentIds {
		if !s.lockedByTech(content.EffectUnlockComponent, compId) {
			continue
		}
		unlocked := false
		for _, have := range f.UnlockedComponents {
			if have == compId {
				unlocked = true
				break
			}
		}
		if !unlocked {
			return false
		}
	}
	return true
}

// IsInstallationBuildableForFaction reports whether the faction may
// construct the installation
func (s *Simulation) IsInstallationBuildableForFaction(factionId core.Id, installationId string) bool {
	f := s.faction(factionId)
	if f == nil || s.content.Installation(installationId) == nil {
		return false
	}
	if !s.lockedByTech(content.EffectUnlockInstallation, installationId) {
		return true
	}
	for _, have := range f.UnlockedInstallations {
		if have == installationId {
			return true
		}
	}
	return false
}

// IsSystemDiscoveredByFaction reports chart knowledge of a system
func (s *Simulation) IsSystemDiscoveredByFaction(factionId, systemId core.Id) bool {
	f := s.faction(factionId)
	return f != nil && f.HasDiscoveredSystem(systemId)
}

// IsJumpPointSurveyedByFaction reports survey knowledge of a jump point
func (s *Simulation) IsJumpPointSurveyedByFaction(factionId, jumpPointId core.Id) bool {
	f := s.faction(factionId)
	return f != nil && f.HasSurveyedJumpPoint(jumpPointId)
}

// EstimateTravelDays integrates the environment along the straight line
// to a point, so dense nebula lanes show up in the estimate
func (s *Simulation) EstimateTravelDays(shipId core.Id, targetMkm core.Vec2) float64 {
	ship := s.ship(shipId)
	if ship == nil {
		return 0
	}
	design := s.shipDesign(ship)
	if design == nil || design.SpeedKmS <= 0 {
		return 0
	}
	speedMkmPerDay := design.SpeedKmS * ship.Integrity.Engines * s.cfg.SecondsPerDay / 1e6
	if speedMkmPerDay <= 0 {
		return 0
	}
	cost := s.movementEnvironmentCostLos(ship.SystemId, ship.PositionMkm, targetMkm)
	return cost / speedMkmPerDay
}

// ShipsOfFaction lists a faction's ships in ascending id order
func (s *Simulation) ShipsOfFaction(factionId core.Id) []core.Id {
	var out []core.Id
	for _, id := range state.SortedIds(s.st.Ships) {
		if s.st.Ships[id].FactionId == factionId {
			out = append(out, id)
		}
	}
	return out
}

// ColoniesOfFaction lists a faction's colonies in ascending id order
func (s *Simulation) ColoniesOfFaction(factionId core.Id) []core.Id {
	var out []core.Id
	for _, id := range state.SortedIds(s.st.Colonies) {
		if s.st.Colonies[id].FactionId == factionId {
			out = append(out, id)
		}
	}
	return out
}
