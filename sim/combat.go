package sim

import (
	"fmt"
	"math"

	"github.com/nebula4x/simcore/content"
	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/events"
	"github.com/nebula4x/simcore/state"
)

// pendingDamage accumulates one target's incoming fire for simultaneous
// resolution at the end of the combat pass
type pendingDamage struct {
	Total      float64
	KilledBy   string
	KillerShip core.Id
}

// tickCombat resolves one hour of beam fire. All damage is accumulated
// first and applied at once, so two ships can destroy each other in the
// same hour.
func (s *Simulation) tickCombat() {
	if !s.cfg.EnableCombat {
		return
	}
	const dt = 1.0 / hoursPerDay

	incoming := make(map[core.Id]*pendingDamage)

	for _, attackerId := range state.SortedIds(s.st.Ships) {
		attacker := s.st.Ships[attackerId]
		design := s.shipDesign(attacker)
		if design == nil {
			continue
		}
		weaponsOn, _, _ := shipSubsystemsPowered(design, attacker.PowerPolicy)
		if !weaponsOn || attacker.Integrity.Weapons <= 0 {
			continue
		}

		target := s.pickBeamTarget(attacker, design)
		if target == nil {
			continue
		}

		dist := attacker.PositionMkm.Distance(target.PositionMkm)

		if design.MissileCount > 0 && design.MissileRangeMkm > 0 &&
			dist <= design.MissileRangeMkm && dist > design.WeaponRangeMkm {
			s.launchSalvo(attacker, design, target)
			continue
		}

		if design.WeaponDamage <= 0 || design.WeaponRangeMkm <= 0 || dist > design.WeaponRangeMkm {
			continue
		}
		if s.cfg.EnableBodyOcclusionWeapons &&
			s.lineBlockedByBody(attacker.SystemId, attacker.PositionMkm, target.PositionMkm) {
			continue
		}

		if s.cfg.EnableBeamHitChance {
			p := s.cfg.BeamBaseHitChance - s.cfg.BeamRangePenaltyAtMax*(dist/design.WeaponRangeMkm)
			p = core.Clamp(p, s.cfg.BeamMinHitChance, 1.0)
			p *= s.beamTrackingFactor(attacker, target, dist)
			p *= s.crewCombatMultiplier(attacker)
			if s.rollU01(rollTagBeamHit, uint64(attackerId), uint64(target.Id)) >= p {
				continue
			}
		}

		dmg := design.WeaponDamage * attacker.Integrity.Weapons * dt
		if s.cfg.EnableBeamLosAttenuation {
			dmg *= s.beamLosAttenuation(attacker.SystemId, attacker.PositionMkm, target.PositionMkm)
		}
		if dmg <= 0 {
			continue
		}
		pd := incoming[target.Id]
		if pd == nil {
			pd = &pendingDamage{}
			incoming[target.Id] = pd
		}
		pd.Total += dmg
		pd.KilledBy = attacker.Name
		pd.KillerShip = attackerId

		if s.cfg.EnableBeamScatterSplash {
			s.accumulateBeamSplash(incoming, attacker, target, dmg)
		}

		if s.cfg.EnableCrewExperience {
			attacker.CrewGradePoints += s.cfg.CrewCombatGradePointsPerDamage * dmg
		}
	}

	for _, targetId := range state.SortedIds(s.st.Ships) {
		pd := incoming[targetId]
		if pd == nil {
			continue
		}
		s.applyDamage(s.st.Ships[targetId], pd.Total, pd.KilledBy, pd.KillerShip)
	}
}

// pickBeamTarget prefers the ship's standing attack target when it is
// detected, hostile and in weapon or missile envelope, falling back to
// the nearest detected hostile
func (s *Simulation) pickBeamTarget(attacker *state.Ship, design *content.ShipDesign) *state.Ship {
	maxRange := math.Max(design.WeaponRangeMkm, design.MissileRangeMkm)
	if maxRange <= 0 {
		return nil
	}

	if so := s.st.ShipOrders[attacker.Id]; so != nil && len(so.Queue) > 0 {
		if atk, ok := so.Queue[0].(state.AttackShip); ok {
			t := s.ship(atk.TargetShipId)
			if t != nil && t.SystemId == attacker.SystemId &&
				s.AreFactionsHostile(attacker.FactionId, t.FactionId) &&
				s.isShipDetectedByFaction(t, attacker.FactionId) &&
				attacker.PositionMkm.Distance(t.PositionMkm) <= maxRange {
				return t
			}
		}
	}

	var best *state.Ship
	bestDist := maxRange
	for _, id := range s.DetectedHostileShipsInSystem(attacker.FactionId, attacker.SystemId) {
		t := s.ship(id)
		if t == nil {
			continue
		}
		d := attacker.PositionMkm.Distance(t.PositionMkm)
		if d <= bestDist {
			best = t
			bestDist = d
		}
	}
	return best
}

// beamTrackingFactor folds electronic warfare and the target's motion
// into the firing solution. The EW ratio pits the attacker's
// counter-countermeasures against the target's jamming; a target
// crossing the sight line fast degrades the solution further.
func (s *Simulation) beamTrackingFactor(attacker, target *state.Ship, dist float64) float64 {
	attackerEccm, targetEcm := 0.0, 0.0
	if d := s.shipDesign(attacker); d != nil {
		attackerEccm = d.EccmStrength
	}
	if d := s.shipDesign(target); d != nil {
		targetEcm = d.EcmStrength
	}
	ew := ewMultiplier(attackerEccm, targetEcm)

	omega := 0.0
	if dist > 1e-9 {
		// relative velocity over the hour, in mkm/day
		rel := target.PositionMkm.Sub(target.PrevPositionMkm).
			Sub(attacker.PositionMkm.Sub(attacker.PrevPositionMkm)).Scale(hoursPerDay)
		los := target.PositionMkm.Sub(attacker.PositionMkm).Scale(1 / dist)
		radial := rel.Dot(los)
		tangential := math.Sqrt(math.Max(0, rel.LengthSq()-radial*radial))
		omega = tangential / dist // radians per day across the sight line
	}
	return core.Clamp(ew/(1+omega), 0.05, 2.0)
}

// beamLosAttenuation scales beam damage by the mean medium density along
// the sight line. In clear space the factor is 1; dense microfield or
// storm structure between the ships soaks part of the shot.
func (s *Simulation) beamLosAttenuation(systemId core.Id, a, b core.Vec2) float64 {
	length := a.Distance(b)
	if length <= 1e-9 {
		return 1.0
	}
	cost := s.movementEnvironmentCostLos(systemId, a, b)
	if cost <= length {
		return 1.0
	}
	return core.Clamp(length/cost, 0.05, 1.0)
}

// accumulateBeamSplash scatters a fraction of a landed hit onto other
// ships close to the target, split evenly among them
func (s *Simulation) accumulateBeamSplash(incoming map[core.Id]*pendingDamage,
	attacker, target *state.Ship, dmg float64) {
	splash := dmg * s.cfg.BeamSplashFraction
	if splash <= 0 || s.cfg.BeamSplashRadiusMkm <= 0 {
		return
	}

	var bystanders []core.Id
	for _, id := range state.SortedIds(s.st.Ships) {
		ship := s.st.Ships[id]
		if id == target.Id || id == attacker.Id || ship.SystemId != target.SystemId {
			continue
		}
		if ship.PositionMkm.Distance(target.PositionMkm) <= s.cfg.BeamSplashRadiusMkm {
			bystanders = append(bystanders, id)
		}
	}
	if len(bystanders) == 0 {
		return
	}

	share := splash / float64(len(bystanders))
	for _, id := range bystanders {
		pd := incoming[id]
		if pd == nil {
			pd = &pendingDamage{}
			incoming[id] = pd
		}
		pd.Total += share
		pd.KilledBy = attacker.Name
		pd.KillerShip = attacker.Id
	}
}

// crewCombatMultiplier converts accumulated grade points into a modest
// accuracy bonus
func (s *Simulation) crewCombatMultiplier(ship *state.Ship) float64 {
	if !s.cfg.EnableCrewExperience {
		return 1.0
	}
	return core.Clamp(1.0+ship.CrewGradePoints*0.001, 1.0, 1.25)
}

// applyDamage routes damage through shields into the hull, reporting hits
// above the event thresholds and handling destruction
func (s *Simulation) applyDamage(target *state.Ship, dmg float64, killedBy string, killerShip core.Id) {
	if target == nil || dmg <= 0 {
		return
	}
	design := s.shipDesign(target)
	maxHp := 1.0
	if design != nil {
		maxHp = math.Max(1, design.MaxHp)
	}

	notable := dmg >= s.cfg.CombatDamageEventMinAbs || dmg >= s.cfg.CombatDamageEventMinFraction*maxHp

	absorbed := math.Min(target.Shields, dmg)
	if absorbed > 0 {
		target.Shields -= absorbed
		dmg -= absorbed
		if notable && dmg <= 0 {
			s.pushInfo(events.CategoryCombat,
				fmt.Sprintf("Shields hit: %s (%s)", target.Name, s.factionName(target.FactionId)),
				events.Event{FactionId: target.FactionId, SystemId: target.SystemId, ShipId: target.Id})
		}
	}
	if dmg <= 0 {
		return
	}

	target.Hp -= dmg
	if target.Hp <= 0 {
		s.destroyShip(target, killedBy)
		return
	}

	if s.cfg.EnableSubsystemDamage &&
		s.rollU01(rollTagSubsystem, uint64(target.Id), uint64(killerShip)) < s.cfg.SubsystemDamageChance {
		s.damageRandomSubsystem(target, dmg/maxHp)
	}

	if notable {
		push := s.pushInfo
		if target.Hp <= s.cfg.CombatDamageEventWarnRemainingFraction*maxHp {
			push = s.pushWarn
		}
		push(events.CategoryCombat,
			fmt.Sprintf("Ship damaged: %s (%s)", target.Name, s.factionName(target.FactionId)),
			events.Event{FactionId: target.FactionId, SystemId: target.SystemId, ShipId: target.Id})
	}
}

func (s *Simulation) damageRandomSubsystem(target *state.Ship, frac float64) {
	loss := core.Clamp(frac, 0.05, 0.5)
	pick := s.rollU01(rollTagSubsystem, uint64(target.Id), uint64(s.st.Date))
	switch {
	case pick < 0.25:
		target.Integrity.Engines = math.Max(0, target.Integrity.Engines-loss)
	case pick < 0.5:
		target.Integrity.Weapons = math.Max(0, target.Integrity.Weapons-loss)
	case pick < 0.75:
		target.Integrity.Sensors = math.Max(0, target.Integrity.Sensors-loss)
	default:
		target.Integrity.Shields = math.Max(0, target.Integrity.Shields-loss)
	}
}

// destroyShip announces the loss and removes the wreck from the world
func (s *Simulation) destroyShip(target *state.Ship, killedBy string) {
	sysName := ""
	if sys := s.system(target.SystemId); sys != nil {
		sysName = sys.Name
	}
	msg := fmt.Sprintf("Ship destroyed: %s (%s) in %s",
		target.Name, s.factionName(target.FactionId), sysName)
	if killedBy != "" {
		msg += fmt.Sprintf(" (killed by %s)", killedBy)
	}
	s.pushWarn(events.CategoryCombat, msg,
		events.Event{FactionId: target.FactionId, SystemId: target.SystemId, ShipId: target.Id})
	s.removeShipEverywhere(target.Id)
}

// tickShields regenerates shields hourly against the local storm drain.
// A negative stored value marks a freshly built ship whose shields start
// full.
func (s *Simulation) tickShields() {
	const dt = 1.0 / hoursPerDay
	for _, shipId := range state.SortedIds(s.st.Ships) {
		ship := s.st.Ships[shipId]
		design := s.shipDesign(ship)
		if design == nil || design.MaxShields <= 0 {
			ship.Shields = 0
			continue
		}
		cap := design.MaxShields * core.Clamp01(ship.Integrity.Shields)
		if ship.Shields < 0 {
			ship.Shields = cap
			continue
		}
		_, _, shieldsOn := shipSubsystemsPowered(design, ship.PowerPolicy)
		if !shieldsOn {
			continue
		}
		storm := 0.0
		if s.cfg.EnableNebulaStorms {
			storm = s.SystemStormIntensityAt(ship.SystemId, ship.PositionMkm)
		}
		drain := 0.25 * design.MaxShields * storm
		ship.Shields = core.Clamp(ship.Shields+(design.ShieldRegenPerDay-drain)*dt, 0, cap)
	}
}
