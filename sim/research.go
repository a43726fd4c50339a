package sim

import (
	"fmt"

	"github.com/nebula4x/simcore/content"
	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/events"
	"github.com/nebula4x/simcore/state"
)

// ResearchPointsPerDay sums a faction's daily research output across its
// colonies
func (s *Simulation) ResearchPointsPerDay(factionId core.Id) float64 {
	total := 0.0
	for _, colonyId := range state.SortedIds(s.st.Colonies) {
		c := s.st.Colonies[colonyId]
		if c.FactionId != factionId {
			continue
		}
		colonyRp := 0.0
		for _, instId := range state.SortedKeys(c.Installations) {
			count := c.Installations[instId]
			if count <= 0 {
				continue
			}
			if def := s.content.Installation(instId); def != nil {
				colonyRp += float64(count) * def.ResearchPointsPerDay
			}
		}
		total += colonyRp * s.BlockadeOutputMultiplier(c)
	}
	return total * s.factionOutputBonus(factionId, "research")
}

// tickResearch advances every faction's active project daily. Points
// left over when a project completes chain straight into the next
// eligible project the same day.
func (s *Simulation) tickResearch() {
	for _, factionId := range state.SortedIds(s.st.Factions) {
		f := s.st.Factions[factionId]

		s.validateActiveResearch(f)

		points := s.ResearchPointsPerDay(factionId) + f.ResearchPoints
		f.ResearchPoints = 0

		for points > 1e-9 {
			if f.ActiveResearchId == "" {
				s.activateNextResearch(f)
			}
			if f.ActiveResearchId == "" {
				f.ResearchPoints = points // bank until something is queued
				break
			}
			tech := s.content.Tech(f.ActiveResearchId)
			if tech == nil {
				f.ActiveResearchId = ""
				f.ActiveResearchProgress = 0
				continue
			}
			need := tech.Cost - f.ActiveResearchProgress
			if points < need {
				f.ActiveResearchProgress += points
				break
			}
			points -= need
			s.completeResearch(f, tech)
		}
	}
}

// validateActiveResearch clears or requeues an active project the
// faction can no longer legitimately work on
func (s *Simulation) validateActiveResearch(f *state.Faction) {
	if f.ActiveResearchId == "" {
		return
	}
	if f.KnowsTech(f.ActiveResearchId) {
		f.ActiveResearchId = ""
		f.ActiveResearchProgress = 0
		return
	}
	tech := s.content.Tech(f.ActiveResearchId)
	if tech == nil {
		f.ActiveResearchId = ""
		f.ActiveResearchProgress = 0
		return
	}
	if !s.prereqsMet(f, tech) {
		f.ResearchQueue = append([]string{f.ActiveResearchId}, f.ResearchQueue...)
		f.ActiveResearchId = ""
		f.ActiveResearchProgress = 0
	}
}

func (s *Simulation) prereqsMet(f *state.Faction, tech *content.TechDef) bool {
	for _, p := range tech.Prereqs {
		if !f.KnowsTech(p) {
			return false
		}
	}
	return true
}

// activateNextResearch pulls the first eligible project off the queue
func (s *Simulation) activateNextResearch(f *state.Faction) {
	for i, techId := range f.ResearchQueue {
		if f.KnowsTech(techId) {
			continue
		}
		tech := s.content.Tech(techId)
		if tech == nil || !s.prereqsMet(f, tech) {
			continue
		}
		f.ResearchQueue = append(f.ResearchQueue[:i:i], f.ResearchQueue[i+1:]...)
		f.ActiveResearchId = techId
		f.ActiveResearchProgress = 0
		return
	}
}

// completeResearch grants the tech and applies its effects
func (s *Simulation) completeResearch(f *state.Faction, tech *content.TechDef) {
	f.KnownTechs = append(f.KnownTechs, tech.Id)
	f.ActiveResearchId = ""
	f.ActiveResearchProgress = 0

	for _, eff := range tech.Effects {
		switch eff.Kind {
		case content.EffectUnlockComponent:
			f.UnlockedComponents = appendUnique(f.UnlockedComponents, eff.ComponentId)
		case content.EffectUnlockInstallation:
			f.UnlockedInstallations = appendUnique(f.UnlockedInstallations, eff.InstallationId)
		}
		// output bonuses are read from known techs on demand
	}

	s.pushInfo(events.CategoryResearch,
		fmt.Sprintf("Research complete for %s: %s", f.Name, tech.Name),
		events.Event{FactionId: f.Id})
}
