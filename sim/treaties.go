package sim

import (
	"fmt"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/events"
	"github.com/nebula4x/simcore/state"
)

// CreateTreaty signs a bilateral treaty. Duration -1 keeps it in force
// until cancelled. A ceasefire immediately lifts the stance to at least
// neutral on both sides and voids standing attack orders between them.
func (s *Simulation) CreateTreaty(a, b core.Id, treatyType state.TreatyType, durationDays int) (*state.Treaty, error) {
	fa := s.faction(a)
	fb := s.faction(b)
	if fa == nil || fb == nil {
		return nil, fmt.Errorf("unknown faction")
	}
	if a == b {
		return nil, fmt.Errorf("treaty requires two factions")
	}
	if a > b {
		a, b = b, a
		fa, fb = fb, fa
	}
	for _, t := range s.TreatiesBetween(a, b) {
		if t.Type == treatyType {
			return nil, fmt.Errorf("treaty of type %s already in force", treatyType)
		}
	}

	t := &state.Treaty{
		Id:           s.st.AllocateId(),
		FactionA:     a,
		FactionB:     b,
		Type:         treatyType,
		DurationDays: durationDays,
		CreatedDay:   s.st.Date,
	}
	s.st.Treaties[t.Id] = t

	s.pushInfo(events.CategoryDiplomacy,
		fmt.Sprintf("Treaty signed: %s between %s and %s", treatyType, fa.Name, fb.Name),
		events.Event{FactionId: a, FactionId2: b})

	s.enforceTreaty(t)
	return t, nil
}

// TreatiesBetween lists treaties in force between two factions in
// ascending id order
func (s *Simulation) TreatiesBetween(a, b core.Id) []*state.Treaty {
	if a > b {
		a, b = b, a
	}
	var out []*state.Treaty
	for _, id := range state.SortedIds(s.st.Treaties) {
		t := s.st.Treaties[id]
		if t.FactionA == a && t.FactionB == b {
			out = append(out, t)
		}
	}
	return out
}

// HasActiveTreaty reports whether a treaty of the given type binds the
// two factions
func (s *Simulation) HasActiveTreaty(a, b core.Id, treatyType state.TreatyType) bool {
	for _, t := range s.TreatiesBetween(a, b) {
		if t.Type == treatyType {
			return true
		}
	}
	return false
}

// tickTreaties expires lapsed treaties, then applies the daily effect of
// each treaty still in force
func (s *Simulation) tickTreaties() {
	for _, id := range state.SortedIds(s.st.Treaties) {
		t := s.st.Treaties[id]
		if t.DurationDays >= 0 && s.st.Date >= t.CreatedDay+core.Date(t.DurationDays) {
			delete(s.st.Treaties, id)
			s.pushInfo(events.CategoryDiplomacy,
				fmt.Sprintf("Treaty expired: %s between %s and %s",
					t.Type, s.factionName(t.FactionA), s.factionName(t.FactionB)),
				events.Event{FactionId: t.FactionA, FactionId2: t.FactionB})
			// a lapsed ceasefire puts both sides back on a war footing
			if t.Type == state.TreatyCeasefire {
				if fa := s.faction(t.FactionA); fa != nil {
					s.setRelation(fa, t.FactionB, state.StatusHostile)
				}
				if fb := s.faction(t.FactionB); fb != nil {
					s.setRelation(fb, t.FactionA, state.StatusHostile)
				}
			}
			continue
		}
		s.enforceTreaty(t)
	}
}

// enforceTreaty applies a treaty's standing effect once
func (s *Simulation) enforceTreaty(t *state.Treaty) {
	fa := s.faction(t.FactionA)
	fb := s.faction(t.FactionB)
	if fa == nil || fb == nil {
		return
	}
	switch t.Type {
	case state.TreatyCeasefire, state.TreatyNonAggression:
		if s.DiplomaticStatus(t.FactionA, t.FactionB) == state.StatusHostile {
			s.setRelation(fa, t.FactionB, state.StatusNeutral)
		}
		if s.DiplomaticStatus(t.FactionB, t.FactionA) == state.StatusHostile {
			s.setRelation(fb, t.FactionA, state.StatusNeutral)
		}
		s.clearAttackOrdersBetween(t.FactionA, t.FactionB)

	case state.TreatyAlliance:
		// allies are friendly by definition, and standing hostile orders
		// between them are voided
		s.setRelation(fa, t.FactionB, state.StatusFriendly)
		s.setRelation(fb, t.FactionA, state.StatusFriendly)
		s.clearAttackOrdersBetween(t.FactionA, t.FactionB)
		s.shareIntel(fa, fb, true)
		s.shareIntel(fb, fa, true)

	case state.TreatyTradeAgreement:
		// trade partners hold at least a neutral stance
		if s.DiplomaticStatus(t.FactionA, t.FactionB) == state.StatusHostile {
			s.setRelation(fa, t.FactionB, state.StatusNeutral)
		}
		if s.DiplomaticStatus(t.FactionB, t.FactionA) == state.StatusHostile {
			s.setRelation(fb, t.FactionA, state.StatusNeutral)
		}
		s.shareIntel(fa, fb, false)
		s.shareIntel(fb, fa, false)
	}
}

// clearAttackOrdersBetween strips attack and invasion orders aimed
// across a ceasefire or alliance line, from queues and repeat templates
// both
func (s *Simulation) clearAttackOrdersBetween(a, b core.Id) {
	for _, shipId := range state.SortedIds(s.st.Ships) {
		ship := s.st.Ships[shipId]
		if ship.FactionId != a && ship.FactionId != b {
			continue
		}
		other := a
		if ship.FactionId == a {
			other = b
		}
		so := s.st.ShipOrders[shipId]
		if so == nil {
			continue
		}
		so.Queue = s.stripAttackOrders(so.Queue, other)
		so.RepeatTemplate = s.stripAttackOrders(so.RepeatTemplate, other)
	}
}

func (s *Simulation) stripAttackOrders(queue []state.Order, targetFaction core.Id) []state.Order {
	out := queue[:0]
	for _, o := range queue {
		switch ord := o.(type) {
		case state.AttackShip:
			if target := s.ship(ord.TargetShipId); target != nil && target.FactionId == targetFaction {
				continue
			}
		case state.InvadeColony:
			if c := s.colony(ord.ColonyId); c != nil && c.FactionId == targetFaction {
				continue
			}
		}
		out = append(out, o)
	}
	return out
}
