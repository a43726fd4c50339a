package sim

import (
	"fmt"
	"math"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/environment"
	"github.com/nebula4x/simcore/events"
	"github.com/nebula4x/simcore/state"
)

// tickShipOrders executes at most one action per ship per hour, driven by
// the front of each ship's order queue. Ships are processed in ascending
// id order.
func (s *Simulation) tickShipOrders() {
	const dt = 1.0 / hoursPerDay

	for _, shipId := range state.SortedIds(s.st.Ships) {
		ship := s.st.Ships[shipId]
		if ship == nil {
			continue
		}
		so := s.st.ShipOrders[shipId]
		if so == nil {
			continue
		}

		s.refillRepeatQueue(so)
		if len(so.Queue) == 0 {
			continue
		}

		switch o := so.Queue[0].(type) {
		case state.WaitDays:
			o.DaysRemaining -= dt
			if o.DaysRemaining <= 0 {
				popOrder(so)
			} else {
				so.Queue[0] = o
			}

		case state.MoveToPoint:
			if s.moveShipToward(ship, o.TargetMkm, s.cfg.ArrivalEpsilonMkm) {
				popOrder(so)
			}

		case state.MoveToBody:
			b := s.body(o.BodyId)
			if b == nil || b.SystemId != ship.SystemId {
				s.log.Warn().Uint64("ship", uint64(shipId)).Uint64("body", uint64(o.BodyId)).
					Msg("move order dropped: body missing or in another system")
				popOrder(so)
				continue
			}
			if s.moveShipToward(ship, b.PositionMkm, s.dockingTolerance()) {
				popOrder(so)
			}

		case state.TravelViaJump:
			s.execTravelViaJump(ship, so, o)

		case state.AttackShip:
			s.execAttackShip(ship, so, o)

		case state.LoadMineral:
			s.execLoadMineral(ship, so, o)

		case state.UnloadMineral:
			s.execUnloadMineral(ship, so, o)

		case state.ColonizeBody:
			s.execColonizeBody(ship, so, o)

		case state.InvestigateAnomaly:
			s.execInvestigateAnomaly(ship, so, o, dt)

		case state.SurveyJumpPoint:
			s.execSurveyJumpPoint(ship, so, o)

		case state.LoadTroops:
			s.execLoadTroops(ship, so, o)

		case state.UnloadTroops:
			s.execUnloadTroops(ship, so, o)

		case state.InvadeColony:
			s.execInvadeColony(ship, so, o)

		default:
			s.log.Warn().Uint64("ship", uint64(shipId)).Msg("unknown order kind dropped")
			popOrder(so)
		}
	}
}

func popOrder(so *state.ShipOrders) {
	if len(so.Queue) > 0 {
		so.Queue = so.Queue[1:]
	}
}

// refillRepeatQueue repopulates a drained queue from the repeat template
func (s *Simulation) refillRepeatQueue(so *state.ShipOrders) {
	if len(so.Queue) > 0 || !so.Repeat || len(so.RepeatTemplate) == 0 {
		return
	}
	if so.RepeatCountRemaining == 0 {
		so.Repeat = false
		return
	}
	if so.RepeatCountRemaining > 0 {
		so.RepeatCountRemaining--
	}
	so.Queue = state.CloneOrders(so.RepeatTemplate)
}

func (s *Simulation) dockingTolerance() float64 {
	return math.Max(s.cfg.ArrivalEpsilonMkm, s.cfg.DockingRangeMkm)
}

// moveShipToward advances the ship one hour toward target. Returns true
// when the ship is within tolerance after the move.
func (s *Simulation) moveShipToward(ship *state.Ship, target core.Vec2, tolerance float64) bool {
	dist := ship.PositionMkm.Distance(target)
	if dist <= tolerance {
		return true
	}

	step := s.shipStepMkm(ship)
	if step <= 0 {
		return false
	}

	design := s.shipDesign(ship)
	if s.cfg.EnableFuelUse && design != nil && design.FuelUsePerMkm > 0 && ship.FuelTons <= 0 {
		return false
	}

	travelled := step
	if dist <= step {
		travelled = dist
		ship.PositionMkm = target
	} else {
		dir := target.Sub(ship.PositionMkm).Normalized()
		ship.PositionMkm = ship.PositionMkm.Add(dir.Scale(step))
	}

	if s.cfg.EnableFuelUse && design != nil && design.FuelUsePerMkm > 0 {
		ship.FuelTons = math.Max(0, ship.FuelTons-travelled*design.FuelUsePerMkm)
	}

	return ship.PositionMkm.Distance(target) <= tolerance
}

// --- jump travel ---

func (s *Simulation) execTravelViaJump(ship *state.Ship, so *state.ShipOrders, o state.TravelViaJump) {
	jp := s.jumpPoint(o.JumpPointId)
	if jp == nil || jp.SystemId != ship.SystemId {
		s.log.Warn().Uint64("ship", uint64(ship.Id)).Uint64("jump", uint64(o.JumpPointId)).
			Msg("jump order dropped: jump point missing or in another system")
		popOrder(so)
		return
	}
	if !s.moveShipToward(ship, jp.PositionMkm, s.dockingTolerance()) {
		return
	}
	if s.transitJump(ship, jp) {
		popOrder(so)
	} else {
		popOrder(so)
	}
}

// transitJump moves the ship through a jump point instantaneously.
// Returns false when the link is broken.
func (s *Simulation) transitJump(ship *state.Ship, jp *state.JumpPoint) bool {
	if !jp.LinkedJumpId.Valid() {
		s.log.Warn().Uint64("jump", uint64(jp.Id)).Msg("jump link broken")
		return false
	}
	dest := s.jumpPoint(jp.LinkedJumpId)
	if dest == nil || !dest.SystemId.Valid() || s.system(dest.SystemId) == nil {
		s.log.Warn().Uint64("jump", uint64(jp.Id)).Msg("jump destination missing")
		return false
	}

	s.st.RemoveShipFromSystem(ship.Id, ship.SystemId)
	ship.SystemId = dest.SystemId
	ship.PositionMkm = dest.PositionMkm
	ship.PrevPositionMkm = dest.PositionMkm
	destSys := s.system(dest.SystemId)
	destSys.Ships = append(destSys.Ships, ship.Id)

	if f := s.faction(ship.FactionId); f != nil {
		s.discoverSystem(f, dest.SystemId)
	}

	if s.cfg.EnableJumpPointPhenomena {
		s.applyJumpPhenomena(ship, dest)
	}
	return true
}

// applyJumpPhenomena rolls at most one non-lethal transit effect
func (s *Simulation) applyJumpPhenomena(ship *state.Ship, dest *state.JumpPoint) {
	ph := environment.JumpPhenomenaFor(dest.Id, dest.SystemId, dest.LinkedJumpId, dest.PositionMkm)
	strength := math.Max(0, s.cfg.JumpPointPhenomenaStrength)

	hazardChance := core.Clamp01(ph.HazardChance01 * strength)
	glitchChance := core.Clamp01(ph.SubsystemGlitchChance01 * strength)
	misjumpChance := core.Clamp01(ph.HazardChance01 * 0.5 * strength)

	r := s.rollU01(rollTagJumpHazard, uint64(ship.Id), uint64(dest.Id))
	switch {
	case r < hazardChance:
		design := s.shipDesign(ship)
		if design == nil {
			return
		}
		dmg := ph.HazardDamageFrac * design.MaxHp
		absorbed := math.Min(ship.Shields, dmg)
		ship.Shields -= absorbed
		dmg -= absorbed
		if dmg > 0 {
			ship.Hp = math.Max(1, ship.Hp-dmg) // transit hazards never kill
		}
		s.pushWarn(events.CategoryMovement,
			fmt.Sprintf("Transit hazard damaged %s", ship.Name),
			events.Event{FactionId: ship.FactionId, SystemId: ship.SystemId, ShipId: ship.Id})

	case r < hazardChance+glitchChance:
		sev := ph.SubsystemGlitchSeverity01
		pick := s.rollU01(rollTagJumpGlitch, uint64(ship.Id), uint64(dest.Id))
		switch {
		case pick < 0.25:
			ship.Integrity.Engines = math.Max(0, ship.Integrity.Engines-sev)
		case pick < 0.5:
			ship.Integrity.Weapons = math.Max(0, ship.Integrity.Weapons-sev)
		case pick < 0.75:
			ship.Integrity.Sensors = math.Max(0, ship.Integrity.Sensors-sev)
		default:
			ship.Integrity.Shields = math.Max(0, ship.Integrity.Shields-sev)
		}
		s.pushWarn(events.CategoryMovement,
			fmt.Sprintf("Subsystem glitch aboard %s during transit", ship.Name),
			events.Event{FactionId: ship.FactionId, SystemId: ship.SystemId, ShipId: ship.Id})

	case r < hazardChance+glitchChance+misjumpChance:
		u := s.rollU01(rollTagMisjump, uint64(ship.Id), uint64(dest.Id))
		ang := u * 2 * math.Pi
		radius := ph.MisjumpDispersionMkm * s.rollU01(rollTagMisjump, uint64(dest.Id), uint64(ship.Id))
		offset := core.Vec2{X: math.Cos(ang), Y: math.Sin(ang)}.Scale(radius)
		ship.PositionMkm = ship.PositionMkm.Add(offset)
		ship.PrevPositionMkm = ship.PositionMkm
		s.pushWarn(events.CategoryMovement,
			fmt.Sprintf("Misjump scattered %s on emergence", ship.Name),
			events.Event{FactionId: ship.FactionId, SystemId: ship.SystemId, ShipId: ship.Id})
	}
}

// discoverSystem marks a system discovered, announcing first discovery
func (s *Simulation) discoverSystem(f *state.Faction, systemId core.Id) {
	if f.HasDiscoveredSystem(systemId) {
		return
	}
	f.DiscoveredSystems = append(f.DiscoveredSystems, systemId)
	sys := s.system(systemId)
	name := "unknown system"
	if sys != nil {
		name = sys.Name
	}
	s.pushInfo(events.CategoryIntel,
		fmt.Sprintf("%s discovered %s", f.Name, name),
		events.Event{FactionId: f.Id, SystemId: systemId})
}

// --- attack pursuit ---

func (s *Simulation) execAttackShip(ship *state.Ship, so *state.ShipOrders, o state.AttackShip) {
	target := s.ship(o.TargetShipId)
	if target == nil {
		popOrder(so) // target destroyed
		return
	}

	detected := s.isShipDetectedByFaction(target, ship.FactionId)

	if detected && target.SystemId == ship.SystemId {
		o.HasLastKnown = true
		o.LastKnownSystemId = target.SystemId
		o.LastKnownPositionMkm = target.PositionMkm
		o.LastKnownDay = s.st.Date
		so.Queue[0] = o

		// Confirmed contact under attack orders escalates the stance
		if !s.AreFactionsHostile(ship.FactionId, target.FactionId) {
			s.escalateToHostile(ship.FactionId, target.FactionId)
		}

		design := s.shipDesign(ship)
		standoff := s.dockingTolerance()
		if design != nil && design.WeaponRangeMkm > 0 {
			standoff = design.WeaponRangeMkm * 0.9
		}
		if ship.PositionMkm.Distance(target.PositionMkm) > standoff {
			s.moveShipToward(ship, target.PositionMkm, standoff)
		}
		return
	}

	// Detection lost: pursue the predicted position from the remembered
	// contact, bounded by the extrapolation window
	if !o.HasLastKnown || o.LastKnownSystemId != ship.SystemId {
		popOrder(so)
		return
	}

	pursuit := o.LastKnownPositionMkm
	if f := s.faction(ship.FactionId); f != nil {
		if c, ok := f.ShipContacts[o.TargetShipId]; ok && c.SystemId == ship.SystemId {
			pursuit = s.PredictContactPosition(&c)
		}
	}

	arrived := s.moveShipToward(ship, pursuit, s.dockingTolerance())
	age := float64(s.st.Date - o.LastKnownDay)
	if arrived && age >= s.cfg.ContactPredictionMaxDays {
		popOrder(so) // extrapolation exhausted at last-known
		return
	}
	so.Queue[0] = o
}

// escalateToHostile sets mutual hostility and records the breach
func (s *Simulation) escalateToHostile(a, b core.Id) {
	fa := s.faction(a)
	fb := s.faction(b)
	if fa == nil || fb == nil || a == b {
		return
	}
	s.setRelation(fa, b, state.StatusHostile)
	s.setRelation(fb, a, state.StatusHostile)
	s.pushWarn(events.CategoryDiplomacy,
		fmt.Sprintf("Hostilities open between %s and %s", fa.Name, fb.Name),
		events.Event{FactionId: a, FactionId2: b})
}

// --- cargo transfer ---

// shipCargoUsed sums a ship's cargo tons
func shipCargoUsed(ship *state.Ship) float64 {
	total := 0.0
	for _, t := range ship.Cargo {
		total += t
	}
	return total
}

// dockedAtColony reports whether the ship is within docking range of the
// colony's body, moving toward it otherwise
func (s *Simulation) approachColony(ship *state.Ship, colonyId core.Id) (*state.Colony, bool) {
	c := s.colony(colonyId)
	if c == nil {
		return nil, false
	}
	b := s.body(c.BodyId)
	if b == nil || b.SystemId != ship.SystemId {
		return nil, false
	}
	return c, s.moveShipToward(ship, b.PositionMkm, s.dockingTolerance())
}

func (s *Simulation) execLoadMineral(ship *state.Ship, so *state.ShipOrders, o state.LoadMineral) {
	c, docked := s.approachColony(ship, o.ColonyId)
	if c == nil {
		s.log.Warn().Uint64("ship", uint64(ship.Id)).Uint64("colony", uint64(o.ColonyId)).
			Msg("load order dropped: colony unreachable")
		popOrder(so)
		return
	}
	if !docked {
		return
	}

	design := s.shipDesign(ship)
	if design == nil {
		popOrder(so)
		return
	}
	capacity := design.CargoTons - shipCargoUsed(ship)

	minerals := []string{o.Mineral}
	if o.Mineral == "" {
		minerals = state.SortedKeys(c.Minerals)
	}

	moved := 0.0
	for _, m := range minerals {
		if capacity <= 1e-9 {
			break
		}
		avail := c.Minerals[m]
		take := math.Min(avail, capacity)
		if o.Tons > 0 {
			take = math.Min(take, o.Tons-moved)
		}
		if take <= 1e-9 {
			continue
		}
		c.Minerals[m] -= take
		if c.Minerals[m] <= 1e-9 {
			delete(c.Minerals, m)
		}
		ship.Cargo = state.AddMineral(ship.Cargo, m, take)
		capacity -= take
		moved += take
	}

	popOrder(so)
}

func (s *Simulation) execUnloadMineral(ship *state.Ship, so *state.ShipOrders, o state.UnloadMineral) {
	c, docked := s.approachColony(ship, o.ColonyId)
	if c == nil {
		s.log.Warn().Uint64("ship", uint64(ship.Id)).Uint64("colony", uint64(o.ColonyId)).
			Msg("unload order dropped: colony unreachable")
		popOrder(so)
		return
	}
	if !docked {
		return
	}

	minerals := []string{o.Mineral}
	if o.Mineral == "" {
		minerals = state.SortedKeys(ship.Cargo)
	}

	moved := 0.0
	for _, m := range minerals {
		avail := ship.Cargo[m]
		give := avail
		if o.Tons > 0 {
			give = math.Min(give, o.Tons-moved)
		}
		if give <= 1e-9 {
			continue
		}
		ship.Cargo[m] -= give
		if ship.Cargo[m] <= 1e-9 {
			delete(ship.Cargo, m)
		}
		c.Minerals = state.AddMineral(c.Minerals, m, give)
		moved += give
	}

	popOrder(so)
}

// --- colonization ---

func (s *Simulation) execColonizeBody(ship *state.Ship, so *state.ShipOrders, o state.ColonizeBody) {
	b := s.body(o.BodyId)
	if b == nil || b.SystemId != ship.SystemId {
		popOrder(so)
		return
	}
	design := s.shipDesign(ship)
	if design == nil || design.ColonyCapacityMillions <= 0 {
		popOrder(so)
		return
	}
	if s.colonyForBody(o.BodyId) != nil {
		s.log.Warn().Uint64("body", uint64(o.BodyId)).Msg("colonize order dropped: body already settled")
		popOrder(so)
		return
	}
	if !s.moveShipToward(ship, b.PositionMkm, s.dockingTolerance()) {
		return
	}

	colony := &state.Colony{
		Id:                 s.st.AllocateId(),
		Name:               b.Name,
		FactionId:          ship.FactionId,
		BodyId:             b.Id,
		PopulationMillions: design.ColonyCapacityMillions,
		Installations:      make(map[string]int),
		Minerals:           make(map[string]float64),
	}
	for _, m := range state.SortedKeys(ship.Cargo) {
		colony.Minerals[m] = ship.Cargo[m]
	}
	if f := s.faction(ship.FactionId); f != nil && f.FoundingProfile != nil {
		applyFoundingProfile(colony, f.FoundingProfile)
	}
	s.st.Colonies[colony.Id] = colony

	s.pushInfo(events.CategoryConstruction,
		fmt.Sprintf("Colony founded on %s", b.Name),
		events.Event{FactionId: ship.FactionId, SystemId: b.SystemId, ColonyId: colony.Id})

	s.removeShipEverywhere(ship.Id) // colony ship is expended
}

// applyFoundingProfile stamps a faction's standing automation settings
// onto a freshly founded colony
func applyFoundingProfile(colony *state.Colony, p *state.ColonyFoundingProfile) {
	for _, m := range state.SortedKeys(p.MineralReserves) {
		colony.MineralReserves = state.AddMineral(colony.MineralReserves, m, p.MineralReserves[m])
	}
	for _, m := range state.SortedKeys(p.MineralTargets) {
		colony.MineralTargets = state.AddMineral(colony.MineralTargets, m, p.MineralTargets[m])
	}
	if p.GarrisonTargetStrength > 0 {
		colony.GarrisonTargetStrength = p.GarrisonTargetStrength
	}
}

// --- anomaly investigation ---

func (s *Simulation) execInvestigateAnomaly(ship *state.Ship, so *state.ShipOrders, o state.InvestigateAnomaly, dt float64) {
	a := s.st.Anomalies[o.AnomalyId]
	if a == nil || a.Resolved || a.SystemId != ship.SystemId {
		popOrder(so)
		return
	}
	if !s.moveShipToward(ship, a.PositionMkm, s.dockingTolerance()) {
		return
	}

	o.DaysAccumulated += dt
	if o.DaysAccumulated < a.InvestigationDays {
		so.Queue[0] = o
		return
	}

	a.Resolved = true
	a.ResolvedByFaction = ship.FactionId
	if f := s.faction(ship.FactionId); f != nil {
		f.ResearchPoints += a.ResearchReward
		if a.UnlockComponentId != "" {
			f.UnlockedComponents = appendUnique(f.UnlockedComponents, a.UnlockComponentId)
		}
	}
	s.pushInfo(events.CategoryAnomaly,
		fmt.Sprintf("Anomaly investigated by %s", ship.Name),
		events.Event{FactionId: ship.FactionId, SystemId: a.SystemId, ShipId: ship.Id})
	popOrder(so)
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

// --- jump survey ---

func (s *Simulation) execSurveyJumpPoint(ship *state.Ship, so *state.ShipOrders, o state.SurveyJumpPoint) {
	jp := s.jumpPoint(o.JumpPointId)
	if jp == nil || jp.SystemId != ship.SystemId {
		popOrder(so)
		return
	}
	if !s.moveShipToward(ship, jp.PositionMkm, s.dockingTolerance()) {
		return
	}

	f := s.faction(ship.FactionId)
	if f != nil && !f.HasSurveyedJumpPoint(jp.Id) {
		f.SurveyedJumpPoints = append(f.SurveyedJumpPoints, jp.Id)
		// The far side is surveyed too once the destination is known
		if dest := s.jumpPoint(jp.LinkedJumpId); dest != nil && f.HasDiscoveredSystem(dest.SystemId) {
			if !f.HasSurveyedJumpPoint(dest.Id) {
				f.SurveyedJumpPoints = append(f.SurveyedJumpPoints, dest.Id)
			}
		}
		s.pushInfo(events.CategoryIntel,
			fmt.Sprintf("Jump point surveyed: %s", jp.Name),
			events.Event{FactionId: ship.FactionId, SystemId: jp.SystemId, ShipId: ship.Id})
	}

	if o.TransitWhenDone {
		s.transitJump(ship, jp)
	}
	popOrder(so)
}

// removeShipEverywhere erases a ship from the world: system list, orders,
// fleets and every faction's contact book
func (s *Simulation) removeShipEverywhere(shipId core.Id) {
	ship := s.ship(shipId)
	if ship == nil {
		return
	}
	s.st.RemoveShipFromSystem(shipId, ship.SystemId)
	delete(s.st.ShipOrders, shipId)
	delete(s.st.Ships, shipId)

	for _, fleetId := range state.SortedIds(s.st.Fleets) {
		fleet := s.st.Fleets[fleetId]
		for i, id := range fleet.ShipIds {
			if id == shipId {
				fleet.ShipIds = append(fleet.ShipIds[:i], fleet.ShipIds[i+1:]...)
				break
			}
		}
		if len(fleet.ShipIds) == 0 {
			delete(s.st.Fleets, fleetId)
			continue
		}
		if fleet.LeaderShipId == shipId {
			fleet.LeaderShipId = fleet.ShipIds[0]
		}
	}

	for _, f := range s.st.Factions {
		delete(f.ShipContacts, shipId)
	}
}
