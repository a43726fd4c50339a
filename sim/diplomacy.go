package sim

import (
	"fmt"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/events"
	"github.com/nebula4x/simcore/state"
)

// DiplomaticStatus returns faction a's stance toward b. Unacquainted
// factions are hostile; a faction is always friendly to itself.
func (s *Simulation) DiplomaticStatus(a, b core.Id) state.DiplomacyStatus {
	if a == b {
		return state.StatusFriendly
	}
	f := s.faction(a)
	if f == nil {
		return state.StatusHostile
	}
	if st, ok := f.Relations[b]; ok {
		return st
	}
	return state.StatusHostile
}

// setRelation stores a one-directional stance. Hostile entries are
// erased rather than stored since hostile is the default.
func (s *Simulation) setRelation(f *state.Faction, other core.Id, st state.DiplomacyStatus) {
	if st == state.StatusHostile {
		delete(f.Relations, other)
		return
	}
	if f.Relations == nil {
		f.Relations = make(map[core.Id]state.DiplomacyStatus)
	}
	f.Relations[other] = st
}

// SetDiplomaticStatus sets a's stance toward b. When the stance becomes
// mutually friendly both sides pool their intel.
func (s *Simulation) SetDiplomaticStatus(a, b core.Id, st state.DiplomacyStatus) error {
	fa := s.faction(a)
	fb := s.faction(b)
	if fa == nil || fb == nil {
		return fmt.Errorf("unknown faction")
	}
	if a == b {
		return fmt.Errorf("cannot set stance toward self")
	}
	prevMutual := s.areMutuallyFriendly(a, b)
	s.setRelation(fa, b, st)

	s.pushInfo(events.CategoryDiplomacy,
		fmt.Sprintf("Diplomacy: %s and %s are now %s", fa.Name, fb.Name, s.DiplomaticStatus(a, b)),
		events.Event{FactionId: a, FactionId2: b})

	if !prevMutual && s.areMutuallyFriendly(a, b) {
		s.shareIntel(fa, fb, true)
		s.shareIntel(fb, fa, true)
	}
	return nil
}

// AreFactionsHostile reports whether either side regards the other as
// hostile
func (s *Simulation) AreFactionsHostile(a, b core.Id) bool {
	if a == b {
		return false
	}
	return s.DiplomaticStatus(a, b) == state.StatusHostile ||
		s.DiplomaticStatus(b, a) == state.StatusHostile
}

func (s *Simulation) areMutuallyFriendly(a, b core.Id) bool {
	if a == b {
		return true
	}
	return s.DiplomaticStatus(a, b) == state.StatusFriendly &&
		s.DiplomaticStatus(b, a) == state.StatusFriendly
}

// shareIntel copies from's maps, surveys and contacts into to. Contacts
// about the receiver's own ships are skipped; existing contacts are only
// replaced by fresher ones. shareContacts false restricts the exchange
// to charts, for trade pacts.
func (s *Simulation) shareIntel(from, to *state.Faction, shareContacts bool) {
	systems := 0
	for _, sysId := range from.DiscoveredSystems {
		if !to.HasDiscoveredSystem(sysId) {
			to.DiscoveredSystems = append(to.DiscoveredSystems, sysId)
			systems++
		}
	}
	surveys := 0
	for _, jpId := range from.SurveyedJumpPoints {
		if !to.HasSurveyedJumpPoint(jpId) {
			to.SurveyedJumpPoints = append(to.SurveyedJumpPoints, jpId)
			surveys++
		}
	}

	contacts := 0
	if shareContacts {
		for _, shipId := range state.SortedIds(from.ShipContacts) {
			c := from.ShipContacts[shipId]
			if c.LastSeenFactionId == to.Id {
				continue
			}
			if existing, ok := to.ShipContacts[shipId]; ok && existing.LastSeenDay >= c.LastSeenDay {
				continue
			}
			if to.ShipContacts == nil {
				to.ShipContacts = make(map[core.Id]state.Contact)
			}
			to.ShipContacts[shipId] = c
			contacts++
		}
	}

	if systems == 0 && surveys == 0 && contacts == 0 {
		return
	}
	s.pushInfo(events.CategoryIntel,
		fmt.Sprintf("Intel sharing with %s: +%d systems, +%d jump surveys, +%d contacts",
			from.Name, systems, surveys, contacts),
		events.Event{FactionId: to.Id, FactionId2: from.Id})
}
