package sim

import (
	"math"

	"github.com/nebula4x/simcore/content"
	"github.com/nebula4x/simcore/events"
	"github.com/nebula4x/simcore/state"
)

// launchSalvo fires a full missile salvo at the target. A ship keeps at
// most one salvo in flight per target.
func (s *Simulation) launchSalvo(attacker *state.Ship, design *content.ShipDesign, target *state.Ship) {
	for _, id := range state.SortedIds(s.st.Salvos) {
		salvo := s.st.Salvos[id]
		if salvo.OriginShipId == attacker.Id && salvo.TargetShipId == target.Id {
			return
		}
	}

	salvo := &state.MissileSalvo{
		Id:               s.st.AllocateId(),
		OriginShipId:     attacker.Id,
		TargetShipId:     target.Id,
		SystemId:         attacker.SystemId,
		FactionId:        attacker.FactionId,
		DamagePerMissile: design.MissileDamage,
		Count:            design.MissileCount,
		PositionMkm:      attacker.PositionMkm,
		SpeedMkmPerDay:   design.MissileSpeedMkmDay,
		LaunchDay:        s.st.Date,
	}
	s.st.Salvos[salvo.Id] = salvo

	s.pushInfo(events.CategoryCombat,
		"Missile salvo launched by "+attacker.Name,
		events.Event{FactionId: attacker.FactionId, SystemId: attacker.SystemId, ShipId: attacker.Id})
}

// tickMissiles flies every salvo toward its target for one hour. Point
// defense engages in flight each hour; whatever survives to arrival
// lands its damage.
func (s *Simulation) tickMissiles() {
	const dt = 1.0 / hoursPerDay
	for _, id := range state.SortedIds(s.st.Salvos) {
		salvo := s.st.Salvos[id]

		target := s.ship(salvo.TargetShipId)
		if target == nil || target.SystemId != salvo.SystemId {
			delete(s.st.Salvos, id) // target destroyed or jumped out
			continue
		}

		step := salvo.SpeedMkmPerDay * dt
		dist := salvo.PositionMkm.Distance(target.PositionMkm)
		arrived := dist <= step
		if arrived {
			salvo.PositionMkm = target.PositionMkm
		} else {
			dir := target.PositionMkm.Sub(salvo.PositionMkm).Normalized()
			salvo.PositionMkm = salvo.PositionMkm.Add(dir.Scale(step))
		}

		s.pointDefenseIntercept(salvo, target)
		if salvo.Count <= 0 {
			delete(s.st.Salvos, id)
			continue
		}

		if arrived {
			s.resolveSalvoImpact(salvo, target)
			delete(s.st.Salvos, id)
		}
	}
}

// pointDefenseIntercept thins the salvo by the batteries of every ship
// friendly to the target that has the missiles inside its engagement
// envelope this hour
func (s *Simulation) pointDefenseIntercept(salvo *state.MissileSalvo, target *state.Ship) {
	missileHp := math.Max(s.cfg.MissileHp, 1e-9)

	for _, shipId := range state.SortedIds(s.st.Ships) {
		if salvo.Count <= 0 {
			return
		}
		defender := s.st.Ships[shipId]
		if defender.SystemId != salvo.SystemId {
			continue
		}
		if defender.FactionId != target.FactionId &&
			!s.areMutuallyFriendly(defender.FactionId, target.FactionId) {
			continue
		}
		design := s.shipDesign(defender)
		if design == nil || design.PointDefenseDamage <= 0 ||
			defender.PositionMkm.Distance(salvo.PositionMkm) > design.PointDefenseRangeMkm {
			continue
		}
		weaponsOn, _, _ := shipSubsystemsPowered(design, defender.PowerPolicy)
		if !weaponsOn || defender.Integrity.Weapons <= 0 {
			continue
		}

		intercepted := int(math.Floor(design.PointDefenseDamage * defender.Integrity.Weapons / missileHp))
		if intercepted <= 0 {
			continue
		}
		if intercepted > salvo.Count {
			intercepted = salvo.Count
		}
		salvo.Count -= intercepted
		s.pushInfo(events.CategoryCombat,
			"Point defense engaged missiles targeting "+target.Name,
			events.Event{FactionId: defender.FactionId, SystemId: defender.SystemId, ShipId: defender.Id})
	}
}

// resolveSalvoImpact lands the surviving missiles' damage
func (s *Simulation) resolveSalvoImpact(salvo *state.MissileSalvo, target *state.Ship) {
	killedBy := ""
	if origin := s.ship(salvo.OriginShipId); origin != nil {
		killedBy = origin.Name
	}
	s.applyDamage(target, float64(salvo.Count)*salvo.DamagePerMissile, killedBy, salvo.OriginShipId)
}
