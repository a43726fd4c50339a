package sim

import (
	"fmt"
	"math"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/events"
	"github.com/nebula4x/simcore/state"
)

// trainingPointsPerDay sums a colony's troop training output
func (s *Simulation) trainingPointsPerDay(colony *state.Colony) float64 {
	points := 0.0
	for _, instId := range state.SortedKeys(colony.Installations) {
		count := colony.Installations[instId]
		if count <= 0 {
			continue
		}
		if def := s.content.Installation(instId); def != nil {
			points += float64(count) * def.TroopTrainingPointsPerDay
		}
	}
	return points
}

// tickGroundCombat runs one day of troop training and battle resolution.
// Battles resolve in ascending colony id order.
func (s *Simulation) tickGroundCombat() {
	s.tickTroopTraining()

	for _, colonyId := range state.SortedIds(s.st.GroundBattles) {
		battle := s.st.GroundBattles[colonyId]
		colony := s.colony(colonyId)
		if colony == nil {
			delete(s.st.GroundBattles, colonyId)
			continue
		}

		// garrison reinforcements since yesterday join the defense
		battle.DefenderStrength = colony.GroundForces
		battle.DefenderFactionId = colony.FactionId

		fatigue := 1.0
		if s.cfg.GroundCombatFatiguePerDay > 0 {
			fatigue = core.Clamp(1.0/(1.0+s.cfg.GroundCombatFatiguePerDay*float64(battle.DaysFought)),
				s.cfg.GroundCombatFatigueMinMultiplier, 1.0)
		}
		attLoss := s.cfg.GroundCombatLossFactor * battle.DefenderStrength * fatigue
		defLoss := s.cfg.GroundCombatLossFactor * battle.AttackerStrength * fatigue
		battle.AttackerStrength = math.Max(0, battle.AttackerStrength-attLoss)
		battle.DefenderStrength = math.Max(0, battle.DefenderStrength-defLoss)
		battle.DaysFought++

		switch {
		case battle.DefenderStrength <= 0:
			s.resolveColonyCaptured(colony, battle)
		case battle.AttackerStrength <= 0:
			colony.GroundForces = battle.DefenderStrength
			delete(s.st.GroundBattles, colonyId)
			s.pushInfo(events.CategoryCombat,
				fmt.Sprintf("Invasion repelled at %s", colony.Name),
				events.Event{FactionId: colony.FactionId, FactionId2: battle.AttackerFactionId,
					SystemId: battle.SystemId, ColonyId: colony.Id})
		default:
			colony.GroundForces = battle.DefenderStrength
		}
	}
}

// resolveColonyCaptured hands the colony to the attacker. Surviving
// attackers become the new garrison; standing training is discarded.
func (s *Simulation) resolveColonyCaptured(colony *state.Colony, battle *state.GroundBattle) {
	loser := colony.FactionId
	colony.FactionId = battle.AttackerFactionId
	colony.GroundForces = battle.AttackerStrength
	colony.TroopTrainingQueue = 0
	colony.TroopTrainingAutoQueued = 0
	colony.GarrisonTargetStrength = 0
	delete(s.st.GroundBattles, battle.ColonyId)

	s.pushError(events.CategoryCombat,
		fmt.Sprintf("Colony captured: %s taken by %s from %s",
			colony.Name, s.factionName(battle.AttackerFactionId), s.factionName(loser)),
		events.Event{FactionId: battle.AttackerFactionId, FactionId2: loser,
			SystemId: battle.SystemId, ColonyId: colony.Id})
}

// tickTroopTraining converts training points into garrison strength,
// topping the queue up toward each colony's garrison target first
func (s *Simulation) tickTroopTraining() {
	perPoint := s.cfg.TroopStrengthPerTrainingPoint
	if perPoint <= 0 {
		return
	}
	for _, colonyId := range state.SortedIds(s.st.Colonies) {
		c := s.st.Colonies[colonyId]

		if c.GarrisonTargetStrength > 0 {
			deficit := c.GarrisonTargetStrength - c.GroundForces - c.TroopTrainingQueue
			if deficit > 1e-9 {
				c.TroopTrainingQueue += deficit
				c.TroopTrainingAutoQueued += deficit
			}
		}
		if c.TroopTrainingQueue <= 0 {
			continue
		}

		gain := math.Min(c.TroopTrainingQueue, s.trainingPointsPerDay(c)*perPoint)
		if gain <= 0 {
			continue
		}

		// mineral-limited: scale today's output down to what is affordable
		if cost := s.cfg.TroopTrainingDuraniumPerStrength; cost > 0 {
			affordable := c.Minerals["Duranium"] / cost
			gain = math.Min(gain, affordable)
			if gain <= 0 {
				continue
			}
			c.Minerals["Duranium"] -= gain * cost
			if c.Minerals["Duranium"] <= 1e-9 {
				delete(c.Minerals, "Duranium")
			}
		}

		c.GroundForces += gain
		c.TroopTrainingQueue = math.Max(0, c.TroopTrainingQueue-gain)
		c.TroopTrainingAutoQueued = math.Min(c.TroopTrainingAutoQueued, c.TroopTrainingQueue)
	}
}

// --- troop transfer and invasion orders ---

func (s *Simulation) execLoadTroops(ship *state.Ship, so *state.ShipOrders, o state.LoadTroops) {
	c, docked := s.approachColony(ship, o.ColonyId)
	if c == nil || c.FactionId != ship.FactionId {
		s.log.Warn().Uint64("ship", uint64(ship.Id)).Uint64("colony", uint64(o.ColonyId)).
			Msg("load troops order dropped: colony unreachable or not friendly")
		popOrder(so)
		return
	}
	if !docked {
		return
	}
	design := s.shipDesign(ship)
	if design == nil || design.TroopCapacity <= 0 {
		popOrder(so)
		return
	}

	take := math.Min(c.GroundForces, design.TroopCapacity-ship.Troops)
	if o.Strength > 0 {
		take = math.Min(take, o.Strength)
	}
	if take > 0 {
		c.GroundForces -= take
		ship.Troops += take
	}
	popOrder(so)
}

func (s *Simulation) execUnloadTroops(ship *state.Ship, so *state.ShipOrders, o state.UnloadTroops) {
	c, docked := s.approachColony(ship, o.ColonyId)
	if c == nil || c.FactionId != ship.FactionId {
		s.log.Warn().Uint64("ship", uint64(ship.Id)).Uint64("colony", uint64(o.ColonyId)).
			Msg("unload troops order dropped: colony unreachable or not friendly")
		popOrder(so)
		return
	}
	if !docked {
		return
	}

	give := ship.Troops
	if o.Strength > 0 {
		give = math.Min(give, o.Strength)
	}
	if give > 0 {
		ship.Troops -= give
		c.GroundForces += give
	}
	popOrder(so)
}

func (s *Simulation) execInvadeColony(ship *state.Ship, so *state.ShipOrders, o state.InvadeColony) {
	c, docked := s.approachColony(ship, o.ColonyId)
	if c == nil || c.FactionId == ship.FactionId || ship.Troops <= 0 {
		s.log.Warn().Uint64("ship", uint64(ship.Id)).Uint64("colony", uint64(o.ColonyId)).
			Msg("invade order dropped: colony unreachable, friendly, or no troops aboard")
		popOrder(so)
		return
	}
	if !docked {
		return
	}

	if !s.AreFactionsHostile(ship.FactionId, c.FactionId) {
		s.escalateToHostile(ship.FactionId, c.FactionId)
	}

	battle := s.st.GroundBattles[c.Id]
	if battle == nil || battle.AttackerFactionId != ship.FactionId {
		// a new attacker supersedes any earlier, spent invasion
		battle = &state.GroundBattle{
			ColonyId:          c.Id,
			SystemId:          ship.SystemId,
			AttackerFactionId: ship.FactionId,
			DefenderFactionId: c.FactionId,
			DefenderStrength:  c.GroundForces,
		}
		s.st.GroundBattles[c.Id] = battle
		s.pushWarn(events.CategoryCombat,
			fmt.Sprintf("Invasion of %s begun by %s", c.Name, s.factionName(ship.FactionId)),
			events.Event{FactionId: c.FactionId, FactionId2: ship.FactionId,
				SystemId: ship.SystemId, ColonyId: c.Id})
	}
	battle.AttackerStrength += ship.Troops
	ship.Troops = 0
	popOrder(so)
}

// --- commands ---

// IssueLoadTroops queues embarking garrison strength at a friendly
// colony. Strength <= 0 fills the ship's troop berths.
func (s *Simulation) IssueLoadTroops(shipId, colonyId core.Id, strength float64) error {
	ship, err := s.shipForCommand(shipId)
	if err != nil {
		return err
	}
	design := s.shipDesign(ship)
	if design == nil || design.TroopCapacity <= 0 {
		return fmt.Errorf("ship has no troop berths")
	}
	if err := s.validateColonyStop(ship, colonyId); err != nil {
		return err
	}
	if c := s.colony(colonyId); c != nil && c.FactionId != ship.FactionId {
		return fmt.Errorf("colony belongs to another faction")
	}
	s.appendOrder(shipId, state.LoadTroops{ColonyId: colonyId, Strength: strength})
	return nil
}

// IssueUnloadTroops queues disembarking troops into a friendly colony's
// garrison. Strength <= 0 unloads everything aboard.
func (s *Simulation) IssueUnloadTroops(shipId, colonyId core.Id, strength float64) error {
	ship, err := s.shipForCommand(shipId)
	if err != nil {
		return err
	}
	if err := s.validateColonyStop(ship, colonyId); err != nil {
		return err
	}
	if c := s.colony(colonyId); c != nil && c.FactionId != ship.FactionId {
		return fmt.Errorf("colony belongs to another faction")
	}
	s.appendOrder(shipId, state.UnloadTroops{ColonyId: colonyId, Strength: strength})
	return nil
}

// IssueInvadeColony queues landing every carried troop against a hostile
// colony. Invasions across a ceasefire or non-aggression line are
// refused.
func (s *Simulation) IssueInvadeColony(shipId, colonyId core.Id) error {
	ship, err := s.shipForCommand(shipId)
	if err != nil {
		return err
	}
	design := s.shipDesign(ship)
	if design == nil || design.TroopCapacity <= 0 {
		return fmt.Errorf("ship has no troop berths")
	}
	if err := s.validateColonyStop(ship, colonyId); err != nil {
		return err
	}
	c := s.colony(colonyId)
	if c.FactionId == ship.FactionId {
		return fmt.Errorf("cannot invade own colony")
	}
	if s.HasActiveTreaty(ship.FactionId, c.FactionId, state.TreatyCeasefire) ||
		s.HasActiveTreaty(ship.FactionId, c.FactionId, state.TreatyNonAggression) {
		return fmt.Errorf("invasion order: %w", ErrTreatyBlocked)
	}
	s.appendOrder(shipId, state.InvadeColony{ColonyId: colonyId})
	return nil
}

// SetGarrisonTarget asks the colony to keep training troops until the
// garrison reaches the target strength. Zero clears the target.
func (s *Simulation) SetGarrisonTarget(colonyId core.Id, strength float64) error {
	c, err := s.colonyForCommand(colonyId)
	if err != nil {
		return err
	}
	c.GarrisonTargetStrength = math.Max(0, strength)
	return nil
}

// EnqueueTroopTraining queues additional garrison strength to train
func (s *Simulation) EnqueueTroopTraining(colonyId core.Id, strength float64) error {
	c, err := s.colonyForCommand(colonyId)
	if err != nil {
		return err
	}
	if strength <= 0 {
		return fmt.Errorf("strength must be positive")
	}
	c.TroopTrainingQueue += strength
	return nil
}
