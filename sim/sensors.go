package sim

import (
	"github.com/nebula4x/simcore/content"
	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/state"
)

// sensorSource is one emitter contributing to a faction's coverage of a
// system, either a ship or a colony installation.
type sensorSource struct {
	FactionId core.Id
	ShipId    core.Id
	PosMkm    core.Vec2
	RangeMkm  float64
	Eccm      float64
}

// shipSubsystemsPowered resolves the power policy against the design's
// power budget. With no generator the policy is taken at face value;
// otherwise subsystems are shed in the order shields, weapons, sensors
// until demand fits.
func shipSubsystemsPowered(design *content.ShipDesign, policy state.PowerPolicy) (weapons, sensors, shields bool) {
	weapons = policy.WeaponsEnabled
	sensors = policy.SensorsEnabled
	shields = policy.ShieldsEnabled
	if design == nil || design.PowerGeneration <= 0 {
		return
	}
	demand := func() float64 {
		d := 0.0
		if weapons {
			d += design.PowerUseWeapons
		}
		if sensors {
			d += design.PowerUseSensors
		}
		if shields {
			d += design.PowerUseShields
		}
		return d
	}
	if shields && demand() > design.PowerGeneration {
		shields = false
	}
	if weapons && demand() > design.PowerGeneration {
		weapons = false
	}
	if sensors && demand() > design.PowerGeneration {
		sensors = false
	}
	return
}

// effectiveSensorRangeMkm returns how far the ship's own sensors reach
// from its current position
func (s *Simulation) effectiveSensorRangeMkm(ship *state.Ship) float64 {
	design := s.shipDesign(ship)
	if design == nil || design.SensorRangeMkm <= 0 {
		return 0
	}
	_, sensorsOn, _ := shipSubsystemsPowered(design, ship.PowerPolicy)
	if !sensorsOn {
		return 0
	}
	r := design.SensorRangeMkm
	switch ship.SensorMode {
	case state.SensorModePassive:
		r *= s.cfg.SensorModePassiveRangeMultiplier
	case state.SensorModeActive:
		r *= s.cfg.SensorModeActiveRangeMultiplier
	}
	r *= core.Clamp01(ship.Integrity.Sensors)
	r *= s.SystemSensorEnvironmentMultiplierAt(ship.SystemId, ship.PositionMkm)
	return r
}

// effectiveSignature returns the target's detectability multiplier. Active
// sensors make a ship louder, passive or unpowered sensors quieter, and
// the local medium muffles everything.
func (s *Simulation) effectiveSignature(ship *state.Ship) float64 {
	design := s.shipDesign(ship)
	if design == nil {
		return 1.0
	}
	sig := design.SignatureOrDefault()

	mode := ship.SensorMode
	if _, sensorsOn, _ := shipSubsystemsPowered(design, ship.PowerPolicy); !sensorsOn {
		mode = state.SensorModePassive
	}
	switch mode {
	case state.SensorModePassive:
		sig *= s.cfg.SensorModePassiveSignatureMultiplier
	case state.SensorModeActive:
		sig *= s.cfg.SensorModeActiveSignatureMultiplier
	}

	sig *= s.SystemSensorEnvironmentMultiplierAt(ship.SystemId, ship.PositionMkm)
	return sig
}

// ewMultiplier folds the observer's counter-countermeasures against the
// target's jamming, clamped to [0.1, 10]
func ewMultiplier(observerEccm, targetEcm float64) float64 {
	return core.Clamp((1+observerEccm)/(1+targetEcm), 0.1, 10)
}

// detectionRangeAgainst is the distance at which this source sees this
// particular target
func (s *Simulation) detectionRangeAgainst(src sensorSource, target *state.Ship) float64 {
	targetEcm := 0.0
	if d := s.shipDesign(target); d != nil {
		targetEcm = d.EcmStrength
	}
	return src.RangeMkm * s.effectiveSignature(target) * ewMultiplier(src.Eccm, targetEcm)
}

// sensorLineBlocked reports whether a body occludes the sight line
func (s *Simulation) sensorLineBlocked(systemId core.Id, a, b core.Vec2) bool {
	if !s.cfg.EnableBodyOcclusionSensors {
		return false
	}
	return s.lineBlockedByBody(systemId, a, b)
}

func (s *Simulation) lineBlockedByBody(systemId core.Id, a, b core.Vec2) bool {
	sys := s.system(systemId)
	if sys == nil {
		return false
	}
	for _, bodyId := range sys.Bodies {
		body := s.body(bodyId)
		if body == nil || body.RadiusKm <= 0 {
			continue
		}
		radiusMkm := body.RadiusKm/1e6 + s.cfg.BodyOcclusionPaddingMkm
		if core.SegmentIntersectsDisc(a, b, body.PositionMkm, radiusMkm) {
			return true
		}
	}
	return false
}

// sensorSourcesFor collects a faction's emitters in one system in a
// deterministic order
func (s *Simulation) sensorSourcesFor(factionId, systemId core.Id) []sensorSource {
	var sources []sensorSource

	sys := s.system(systemId)
	if sys == nil {
		return nil
	}
	for _, shipId := range sys.Ships {
		ship := s.ship(shipId)
		if ship == nil || ship.FactionId != factionId {
			continue
		}
		r := s.effectiveSensorRangeMkm(ship)
		if r <= 0 {
			continue
		}
		eccm := 0.0
		if d := s.shipDesign(ship); d != nil {
			eccm = d.EccmStrength
		}
		sources = append(sources, sensorSource{
			FactionId: factionId,
			ShipId:    ship.Id,
			PosMkm:    ship.PositionMkm,
			RangeMkm:  r,
			Eccm:      eccm,
		})
	}

	for _, colonyId := range state.SortedIds(s.st.Colonies) {
		c := s.st.Colonies[colonyId]
		if c.FactionId != factionId {
			continue
		}
		b := s.body(c.BodyId)
		if b == nil || b.SystemId != systemId {
			continue
		}
		best := 0.0
		for _, instId := range state.SortedKeys(c.Installations) {
			if c.Installations[instId] <= 0 {
				continue
			}
			def := s.content.Installation(instId)
			if def != nil && def.SensorRangeMkm > best {
				best = def.SensorRangeMkm
			}
		}
		if best <= 0 {
			continue
		}
		best *= s.SystemSensorEnvironmentMultiplierAt(systemId, b.PositionMkm)
		sources = append(sources, sensorSource{
			FactionId: factionId,
			PosMkm:    b.PositionMkm,
			RangeMkm:  best,
		})
	}

	return sources
}

// IsShipDetectedByFaction reports whether any of the faction's emitters
// currently sees the ship. A faction always sees its own ships.
func (s *Simulation) IsShipDetectedByFaction(shipId, factionId core.Id) bool {
	return s.isShipDetectedByFaction(s.ship(shipId), factionId)
}

func (s *Simulation) isShipDetectedByFaction(target *state.Ship, factionId core.Id) bool {
	if target == nil {
		return false
	}
	if target.FactionId == factionId {
		return true
	}
	for _, src := range s.sensorSourcesFor(factionId, target.SystemId) {
		eff := s.detectionRangeAgainst(src, target)
		if target.PositionMkm.DistanceSq(src.PosMkm) > eff*eff {
			continue
		}
		if s.sensorLineBlocked(target.SystemId, src.PosMkm, target.PositionMkm) {
			continue
		}
		return true
	}
	return false
}

// DetectedHostileShipsInSystem lists hostile ships the faction currently
// sees in a system, in ascending id order
func (s *Simulation) DetectedHostileShipsInSystem(factionId, systemId core.Id) []core.Id {
	sys := s.system(systemId)
	if sys == nil {
		return nil
	}
	sources := s.sensorSourcesFor(factionId, systemId)
	var out []core.Id
	for _, shipId := range state.SortedIds(s.st.Ships) {
		ship := s.st.Ships[shipId]
		if ship.SystemId != systemId || ship.FactionId == factionId {
			continue
		}
		if !s.AreFactionsHostile(factionId, ship.FactionId) {
			continue
		}
		for _, src := range sources {
			eff := s.detectionRangeAgainst(src, ship)
			if ship.PositionMkm.DistanceSq(src.PosMkm) > eff*eff {
				continue
			}
			if s.sensorLineBlocked(systemId, src.PosMkm, ship.PositionMkm) {
				continue
			}
			out = append(out, shipId)
			break
		}
	}
	return out
}
