package sim

import (
	"fmt"
	"math"

	"github.com/nebula4x/simcore/content"
	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/events"
	"github.com/nebula4x/simcore/state"
)

// factionOutputBonus folds completed-tech output bonuses for one
// category into a multiplier
func (s *Simulation) factionOutputBonus(factionId core.Id, category string) float64 {
	f := s.faction(factionId)
	if f == nil {
		return 1.0
	}
	bonus := 1.0
	for _, techId := range f.KnownTechs {
		tech := s.content.Tech(techId)
		if tech == nil {
			continue
		}
		for _, eff := range tech.Effects {
			if eff.Kind == content.EffectFactionOutputBonus && eff.Category == category {
				bonus += eff.Amount
			}
		}
	}
	return bonus
}

// BlockadeOutputMultiplier reduces a colony's output while hostile
// warships sit over its body
func (s *Simulation) BlockadeOutputMultiplier(colony *state.Colony) float64 {
	if !s.cfg.EnableBlockades || colony == nil {
		return 1.0
	}
	b := s.body(colony.BodyId)
	if b == nil {
		return 1.0
	}
	sys := s.system(b.SystemId)
	if sys == nil {
		return 1.0
	}
	power := 0.0
	for _, shipId := range sys.Ships {
		ship := s.ship(shipId)
		if ship == nil || !s.AreFactionsHostile(colony.FactionId, ship.FactionId) {
			continue
		}
		if ship.PositionMkm.Distance(b.PositionMkm) > s.cfg.BlockadeRadiusMkm {
			continue
		}
		if d := s.shipDesign(ship); d != nil {
			power += d.WeaponDamage + float64(d.MissileCount)*d.MissileDamage
		}
	}
	if power <= 0 {
		return 1.0
	}
	penalty := s.cfg.BlockadeMaxOutputPenalty * power / (power + s.cfg.BlockadeBaseResistancePower)
	return 1.0 - penalty
}

// miningRatePerDay sums a colony's extraction rate for one mineral
func (s *Simulation) miningRatePerDay(colony *state.Colony, mineral string) float64 {
	rate := 0.0
	for _, instId := range state.SortedKeys(colony.Installations) {
		count := colony.Installations[instId]
		if count <= 0 {
			continue
		}
		def := s.content.Installation(instId)
		if def == nil || !def.Mining {
			continue
		}
		rate += float64(count) * def.ProducesPerDay[mineral]
	}
	if rate <= 0 {
		return 0
	}
	return rate * s.factionOutputBonus(colony.FactionId, "mining") * s.BlockadeOutputMultiplier(colony)
}

// tickColonies runs one day of mining then industry for every colony
func (s *Simulation) tickColonies() {
	s.tickMining()
	s.tickIndustry()
}

// miningClaim is one colony's request against a shared deposit
type miningClaim struct {
	colony *state.Colony
	req    float64
	got    float64
}

// tickMining extracts minerals from body deposits. When a deposit cannot
// cover every claim the remainder is split by scarcity-weighted
// waterfill, so colonies short of a mineral outbid stockpiled ones.
func (s *Simulation) tickMining() {
	for _, bodyId := range state.SortedIds(s.st.Bodies) {
		b := s.st.Bodies[bodyId]
		if len(b.MineralDeposits) == 0 {
			continue
		}

		var miners []*state.Colony
		for _, colonyId := range state.SortedIds(s.st.Colonies) {
			c := s.st.Colonies[colonyId]
			if c.BodyId == bodyId {
				miners = append(miners, c)
			}
		}
		if len(miners) == 0 {
			continue
		}

		for _, mineral := range state.SortedKeys(b.MineralDeposits) {
			available := b.MineralDeposits[mineral]
			if available <= 0 {
				s.noteDepletion(b, mineral, miners)
				continue
			}

			var claims []*miningClaim
			totalReq := 0.0
			for _, c := range miners {
				req := s.miningRatePerDay(c, mineral)
				if req <= 0 {
					continue
				}
				claims = append(claims, &miningClaim{colony: c, req: req})
				totalReq += req
			}
			if totalReq <= 0 {
				continue
			}

			if totalReq <= available {
				for _, cl := range claims {
					cl.got = cl.req
				}
				available -= totalReq
			} else {
				s.waterfill(claims, available, mineral)
				available = 0
			}

			for _, cl := range claims {
				if cl.got > 0 {
					cl.colony.Minerals = state.AddMineral(cl.colony.Minerals, mineral, cl.got)
				}
			}

			if available <= 1e-9 {
				available = 0
			}
			b.MineralDeposits[mineral] = available
			if available == 0 {
				s.noteDepletion(b, mineral, miners)
			}
		}
	}
}

// waterfill distributes a scarce deposit across claims. Weights favor
// colonies whose stockpile is short of a buffer-days target; a few
// proportional passes converge, then a residual pass hands out whatever
// rounding left behind.
func (s *Simulation) waterfill(claims []*miningClaim, available float64, mineral string) {
	weight := func(cl *miningClaim) float64 {
		if !s.cfg.EnableMiningScarcityPriority {
			return cl.req - cl.got
		}
		target := cl.req * s.cfg.MiningScarcityBufferDays
		shortage := 0.0
		if target > 0 {
			shortage = core.Clamp01((target - cl.colony.Minerals[mineral]) / target)
		}
		return (cl.req - cl.got) * (1 + s.cfg.MiningScarcityNeedBoost*shortage)
	}

	for pass := 0; pass < 8 && available > 1e-9; pass++ {
		totalW := 0.0
		for _, cl := range claims {
			if cl.req-cl.got > 1e-9 {
				totalW += weight(cl)
			}
		}
		if totalW <= 1e-9 {
			break
		}
		granted := 0.0
		for _, cl := range claims {
			remaining := cl.req - cl.got
			if remaining <= 1e-9 {
				continue
			}
			share := available * weight(cl) / totalW
			take := math.Min(share, remaining)
			cl.got += take
			granted += take
		}
		available -= granted
		if granted <= 1e-9 {
			break
		}
	}

	// residual pass, plain proportional
	if available > 1e-9 {
		totalRem := 0.0
		for _, cl := range claims {
			totalRem += math.Max(0, cl.req-cl.got)
		}
		if totalRem > 1e-9 {
			for _, cl := range claims {
				remaining := math.Max(0, cl.req-cl.got)
				cl.got += math.Min(available*remaining/totalRem, remaining)
			}
		}
	}

	for _, cl := range claims {
		if cl.req-cl.got < 1e-9 {
			cl.got = cl.req
		}
	}
}

// noteDepletion warns each mining colony once when a deposit runs dry
func (s *Simulation) noteDepletion(b *state.Body, mineral string, miners []*state.Colony) {
	for _, c := range miners {
		if s.miningRatePerDay(c, mineral) <= 0 || c.DepletedDeposits[mineral] {
			continue
		}
		if c.DepletedDeposits == nil {
			c.DepletedDeposits = make(map[string]bool)
		}
		c.DepletedDeposits[mineral] = true
		s.pushWarn(events.CategoryConstruction,
			fmt.Sprintf("Mineral deposit depleted on %s: %s", b.Name, mineral),
			events.Event{FactionId: c.FactionId, SystemId: b.SystemId, ColonyId: c.Id})
	}
}

// tickIndustry runs conversion installations. A shortfall in any input
// scales the whole installation down rather than stopping it.
func (s *Simulation) tickIndustry() {
	for _, colonyId := range state.SortedIds(s.st.Colonies) {
		c := s.st.Colonies[colonyId]
		bonus := s.factionOutputBonus(c.FactionId, "industry") * s.BlockadeOutputMultiplier(c)

		for _, instId := range state.SortedKeys(c.Installations) {
			count := c.Installations[instId]
			if count <= 0 {
				continue
			}
			def := s.content.Installation(instId)
			if def == nil || def.Mining || len(def.ProducesPerDay) == 0 {
				continue
			}

			frac := 1.0
			for _, input := range state.SortedKeys(def.ConsumesPerDay) {
				need := def.ConsumesPerDay[input] * float64(count)
				if need <= 0 {
					continue
				}
				frac = math.Min(frac, core.Clamp01(c.Minerals[input]/need))
			}
			if frac <= 0 {
				continue
			}

			for _, input := range state.SortedKeys(def.ConsumesPerDay) {
				used := def.ConsumesPerDay[input] * float64(count) * frac
				c.Minerals[input] -= used
				if c.Minerals[input] <= 1e-9 {
					delete(c.Minerals, input)
				}
			}
			for _, output := range state.SortedKeys(def.ProducesPerDay) {
				made := def.ProducesPerDay[output] * float64(count) * frac * bonus
				c.Minerals = state.AddMineral(c.Minerals, output, made)
			}
		}
	}
}

// tickPopulation compounds colony growth daily
func (s *Simulation) tickPopulation() {
	if !s.cfg.EnablePopulationGrowth {
		return
	}
	daily := s.cfg.PopulationGrowthRatePerYear / 365.0
	for _, c := range s.st.Colonies {
		if c.PopulationMillions > 0 {
			c.PopulationMillions *= 1 + daily
		}
	}
}
