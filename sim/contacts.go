package sim

import (
	"fmt"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/events"
	"github.com/nebula4x/simcore/state"
)

// tickContacts sweeps every faction's sensor coverage over the hour.
// Detection tests the target's movement segment for this hour, not just
// its endpoint, so fast ships cannot skip through a sensor bubble
// between ticks.
func (s *Simulation) tickContacts() {
	for _, factionId := range state.SortedIds(s.st.Factions) {
		f := s.st.Factions[factionId]
		for _, systemId := range state.SortedIds(s.st.Systems) {
			sources := s.sensorSourcesFor(factionId, systemId)
			if len(sources) == 0 {
				continue
			}
			sys := s.st.Systems[systemId]
			for _, shipId := range sys.Ships {
				target := s.ship(shipId)
				if target == nil || target.FactionId == factionId {
					continue
				}
				seen, seenPos, srcDist := s.sweepDetect(sources, target)
				if !seen {
					continue
				}
				s.recordContact(f, target, seenPos, srcDist)
			}
		}
	}
}

// sweepDetect tests the target's hour segment against each source and
// returns the position where it was pinned down
func (s *Simulation) sweepDetect(sources []sensorSource, target *state.Ship) (bool, core.Vec2, float64) {
	a := target.PrevPositionMkm
	b := target.PositionMkm
	for _, src := range sources {
		eff := s.detectionRangeAgainst(src, target)
		if eff <= 0 {
			continue
		}
		closest, _ := core.ClosestPointOnSegment(src.PosMkm, a, b)
		if closest.DistanceSq(src.PosMkm) > eff*eff {
			continue
		}
		// Prefer the endpoint when it is still in range, otherwise pin
		// the contact at the closest approach
		seenPos := closest
		if b.DistanceSq(src.PosMkm) <= eff*eff {
			seenPos = b
		}
		if s.sensorLineBlocked(target.SystemId, src.PosMkm, seenPos) {
			continue
		}
		return true, seenPos, seenPos.Distance(src.PosMkm)
	}
	return false, core.Vec2{}, 0
}

// recordContact updates the faction's contact book and announces new or
// reacquired tracks
func (s *Simulation) recordContact(f *state.Faction, target *state.Ship, seenPos core.Vec2, srcDist float64) {
	if f.ShipContacts == nil {
		f.ShipContacts = make(map[core.Id]state.Contact)
	}

	prev, existed := f.ShipContacts[target.Id]
	c := prev
	c.ShipId = target.Id
	c.SystemId = target.SystemId

	// Keep at most one historical fix per day so velocity estimates span
	// a full day rather than one hour
	if existed && prev.LastSeenDay < s.st.Date {
		c.PrevSeenDay = prev.LastSeenDay
		c.PrevSeenPositionMkm = prev.LastSeenPositionMkm
	}

	c.LastSeenDay = s.st.Date
	c.LastSeenPositionMkm = seenPos
	c.LastSeenName = target.Name
	c.LastSeenDesignId = target.DesignId
	c.LastSeenFactionId = target.FactionId
	if s.cfg.EnableContactUncertainty {
		// fix quality degrades linearly with range
		c.LastSeenPositionUncertaintyMkm = 0.05 * srcDist
	} else {
		c.LastSeenPositionUncertaintyMkm = 0
	}
	f.ShipContacts[target.Id] = c

	if s.areMutuallyFriendly(f.Id, target.FactionId) {
		return
	}
	sysName := ""
	if sys := s.system(target.SystemId); sys != nil {
		sysName = sys.Name
	}
	switch {
	case !existed:
		s.pushInfo(events.CategoryIntel,
			fmt.Sprintf("New contact in %s: %s", sysName, target.Name),
			events.Event{FactionId: f.Id, FactionId2: target.FactionId,
				SystemId: target.SystemId, ShipId: target.Id})
	case prev.LastSeenDay < s.st.Date-1:
		s.pushInfo(events.CategoryIntel,
			fmt.Sprintf("Contact reacquired in %s: %s", sysName, target.Name),
			events.Event{FactionId: f.Id, FactionId2: target.FactionId,
				SystemId: target.SystemId, ShipId: target.Id})
	}
}

// gcContacts ages out the contact books daily and announces tracks that
// went cold overnight
func (s *Simulation) gcContacts() {
	maxAge := core.Date(s.cfg.ContactMaxAgeDays)
	for _, factionId := range state.SortedIds(s.st.Factions) {
		f := s.st.Factions[factionId]
		for _, shipId := range state.SortedIds(f.ShipContacts) {
			c := f.ShipContacts[shipId]
			target := s.ship(shipId)

			if target == nil || s.st.Date-c.LastSeenDay > maxAge {
				delete(f.ShipContacts, shipId)
				continue
			}

			if c.LastSeenDay == s.st.Date-1 && !s.isShipDetectedByFaction(target, factionId) {
				if !s.areMutuallyFriendly(factionId, c.LastSeenFactionId) {
					sysName := ""
					if sys := s.system(c.SystemId); sys != nil {
						sysName = sys.Name
					}
					s.pushInfo(events.CategoryIntel,
						fmt.Sprintf("Contact lost in %s: %s", sysName, c.LastSeenName),
						events.Event{FactionId: factionId, FactionId2: c.LastSeenFactionId,
							SystemId: c.SystemId, ShipId: shipId})
				}
			}
		}
	}
}

// PredictContactPosition extrapolates a contact along its estimated
// velocity, frozen once the extrapolation window runs out
func (s *Simulation) PredictContactPosition(c *state.Contact) core.Vec2 {
	if c == nil {
		return core.Vec2{}
	}
	span := float64(c.LastSeenDay - c.PrevSeenDay)
	if c.PrevSeenDay == 0 || span <= 0 {
		return c.LastSeenPositionMkm
	}
	v := c.LastSeenPositionMkm.Sub(c.PrevSeenPositionMkm).Scale(1 / span)
	age := core.Clamp(float64(s.st.Date-c.LastSeenDay), 0, s.cfg.ContactPredictionMaxDays)
	return c.LastSeenPositionMkm.Add(v.Scale(age))
}

// RecentContactsInSystem lists a faction's contacts in a system no older
// than maxAgeDays, in ascending ship id order
func (s *Simulation) RecentContactsInSystem(factionId, systemId core.Id, maxAgeDays int) []state.Contact {
	f := s.faction(factionId)
	if f == nil {
		return nil
	}
	var out []state.Contact
	for _, shipId := range state.SortedIds(f.ShipContacts) {
		c := f.ShipContacts[shipId]
		if c.SystemId != systemId {
			continue
		}
		if maxAgeDays >= 0 && s.st.Date-c.LastSeenDay > core.Date(maxAgeDays) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// tickAnomalyDiscovery spots unresolved anomalies inside reduced sensor
// range. Discovery is credited to the lowest-id detecting ship.
func (s *Simulation) tickAnomalyDiscovery() {
	if !s.cfg.EnableAnomalies {
		return
	}
	for _, factionId := range state.SortedIds(s.st.Factions) {
		f := s.st.Factions[factionId]
		for _, anomalyId := range state.SortedIds(s.st.Anomalies) {
			a := s.st.Anomalies[anomalyId]
			if a.Resolved || factionKnowsAnomaly(f, anomalyId) {
				continue
			}
			found := false
			var foundBy core.Id
			for _, src := range s.sensorSourcesFor(factionId, a.SystemId) {
				eff := src.RangeMkm * s.cfg.AnomalyDetectionRangeMultiplier
				if a.PositionMkm.DistanceSq(src.PosMkm) > eff*eff {
					continue
				}
				if s.sensorLineBlocked(a.SystemId, src.PosMkm, a.PositionMkm) {
					continue
				}
				if !found || (src.ShipId != core.InvalidId &&
					(foundBy == core.InvalidId || src.ShipId < foundBy)) {
					foundBy = src.ShipId
				}
				found = true
			}
			if !found {
				continue
			}
			f.DiscoveredAnomalies = append(f.DiscoveredAnomalies, anomalyId)
			sysName := ""
			if sys := s.system(a.SystemId); sys != nil {
				sysName = sys.Name
			}
			s.pushInfo(events.CategoryAnomaly,
				fmt.Sprintf("Anomaly detected in %s", sysName),
				events.Event{FactionId: factionId, SystemId: a.SystemId, ShipId: foundBy})
		}
	}
}

func factionKnowsAnomaly(f *state.Faction, id core.Id) bool {
	for _, a := range f.DiscoveredAnomalies {
		if a == id {
			return true
		}
	}
	return false
}
