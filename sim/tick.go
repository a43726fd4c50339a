package sim

import (
	"strings"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/events"
)

// hoursPerDay is the tick granularity; one step is one hour
const hoursPerDay = 24

// AdvanceDays advances n whole days
func (s *Simulation) AdvanceDays(n int) {
	if n > 0 {
		s.AdvanceHours(n * hoursPerDay)
	}
}

// AdvanceHours advances h hours, one hour per step. Daily subsystems run
// at each midnight before that hour's continuous subsystems.
func (s *Simulation) AdvanceHours(h int) {
	for i := 0; i < h; i++ {
		s.tickOneHour()
	}
}

func (s *Simulation) tickOneHour() {
	s.st.HourOfDay++
	dayBoundary := false
	if s.st.HourOfDay >= hoursPerDay {
		s.st.HourOfDay = 0
		s.st.Date++
		dayBoundary = true
	}

	if dayBoundary {
		s.runDailySubsystems()
	}
	s.runHourlySubsystems()
}

// runDailySubsystems runs the midnight block in fixed order. The order is
// significant: installations finished today grant output tomorrow, and
// treaties expire before any new hostile action resolves.
func (s *Simulation) runDailySubsystems() {
	s.tickColonies()
	s.tickResearch()
	s.tickShipyards()
	s.tickConstruction()
	s.tickCrewExperience()
	s.tickMaintenanceAndRepairs()
	s.tickPopulation()
	s.tickGroundCombat()
	s.tickTreaties()
	s.tickNebulaStorms()
	s.tickAutoFreight()
	s.tickAutoExplore()
	s.gcContacts()
}

// runHourlySubsystems runs the continuous block. Combat fires before the
// contact sweep so losses this hour are final before intel updates.
func (s *Simulation) runHourlySubsystems() {
	s.recomputeBodyPositions()
	s.snapshotShipPositions()
	s.tickShipOrders()
	s.tickMissiles()
	s.tickCombat()
	s.tickShields()
	s.tickContacts()
	s.tickAnomalyDiscovery()
}

// snapshotShipPositions anchors each ship's sweep segment for this hour
func (s *Simulation) snapshotShipPositions() {
	for _, ship := range s.st.Ships {
		ship.PrevPositionMkm = ship.PositionMkm
	}
}

// StopCondition filters events for AdvanceUntilEventHours. Zero-valued
// fields match anything; the substring match is case-insensitive.
type StopCondition struct {
	Levels           []events.Level
	HasCategory      bool
	Category         events.Category
	FactionId        core.Id
	SystemId         core.Id
	ShipId           core.Id
	ColonyId         core.Id
	MessageSubstring string
}

func (c *StopCondition) matches(e *events.Event) bool {
	if len(c.Levels) > 0 {
		ok := false
		for _, l := range c.Levels {
			if e.Level == l {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if c.HasCategory && e.Category != c.Category {
		return false
	}
	if c.FactionId != core.InvalidId && e.FactionId != c.FactionId && e.FactionId2 != c.FactionId {
		return false
	}
	if c.SystemId != core.InvalidId && e.SystemId != c.SystemId {
		return false
	}
	if c.ShipId != core.InvalidId && e.ShipId != c.ShipId {
		return false
	}
	if c.ColonyId != core.InvalidId && e.ColonyId != c.ColonyId {
		return false
	}
	if c.MessageSubstring != "" &&
		!strings.Contains(strings.ToLower(e.Message), strings.ToLower(c.MessageSubstring)) {
		return false
	}
	return true
}

// AdvanceResult reports how far AdvanceUntilEventHours got
type AdvanceResult struct {
	Hit           bool
	HoursAdvanced int
	DaysAdvanced  float64
	Event         *events.Event
}

// AdvanceUntilEventHours advances in stepHours increments (clamped to
// [1,24], never crossing midnight in one step) until an emitted event
// matches the stop condition or maxHours is reached
func (s *Simulation) AdvanceUntilEventHours(maxHours int, stop StopCondition, stepHours int) AdvanceResult {
	if stepHours < 1 {
		stepHours = 1
	}
	if stepHours > hoursPerDay {
		stepHours = hoursPerDay
	}

	res := AdvanceResult{}
	lastSeq := s.st.Events.NextSeq

	for res.HoursAdvanced < maxHours {
		step := stepHours
		if remaining := maxHours - res.HoursAdvanced; step > remaining {
			step = remaining
		}
		if untilMidnight := hoursPerDay - s.st.HourOfDay; step > untilMidnight {
			step = untilMidnight
		}
		if step < 1 {
			step = 1
		}

		s.AdvanceHours(step)
		res.HoursAdvanced += step

		for i := len(s.st.Events.Entries) - 1; i >= 0; i-- {
			e := &s.st.Events.Entries[i]
			if e.Seq < lastSeq {
				break
			}
			if stop.matches(e) {
				res.Hit = true
				res.Event = e
			}
		}
		if res.Hit {
			break
		}
		lastSeq = s.st.Events.NextSeq
	}

	res.DaysAdvanced = float64(res.HoursAdvanced) / hoursPerDay
	return res
}
