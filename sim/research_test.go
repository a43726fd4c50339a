package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebula4x/simcore/content"
)

func TestComputeResearchPlanOrdersPrereqs(t *testing.T) {
	w := newTestWorld()
	w.faction.KnownTechs = []string{"alpha"}

	plan := w.s.ComputeResearchPlan(w.faction.Id, []string{"beta", "gamma"})

	require.Empty(t, plan.Errors)
	assert.Equal(t, []string{"beta", "gamma"}, plan.Order)
	assert.InDelta(t, 50.0, plan.TotalCost, 1e-9)
}

func TestComputeResearchPlanReportsProblems(t *testing.T) {
	w := newTestWorld()
	db := w.s.Content()
	db.Techs["x"] = content.TechDef{Id: "x", Name: "X", Cost: 5, Prereqs: []string{"y"}}
	db.Techs["y"] = content.TechDef{Id: "y", Name: "Y", Cost: 5, Prereqs: []string{"x"}}

	plan := w.s.ComputeResearchPlan(w.faction.Id, []string{"x", "nope"})

	require.Len(t, plan.Errors, 2)
	assert.Equal(t, "Prerequisite cycle: x -> y -> x", plan.Errors[0])
	assert.Equal(t, "Unknown tech: nope", plan.Errors[1])

	err := w.s.ApplyResearchPlan(w.faction.Id, plan, PlanOptions{})
	assert.Error(t, err)
}

func TestResearchChainsWithinOneDay(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["lab"] = 3 // 30 rp/day

	plan := w.s.ComputeResearchPlan(w.faction.Id, []string{"beta"})
	require.NoError(t, w.s.ApplyResearchPlan(w.faction.Id, plan, PlanOptions{SetActive: true}))
	assert.Equal(t, "alpha", w.faction.ActiveResearchId)

	w.s.AdvanceDays(1)

	assert.True(t, w.faction.KnowsTech("alpha"))
	assert.True(t, w.faction.KnowsTech("beta"))
	assert.Equal(t, "", w.faction.ActiveResearchId)
	assert.True(t, w.lastEventMatching("Research complete for Terran Accord: Beta Theory"))
}

func TestResearchBanksPointsWithEmptyQueue(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["lab"] = 1

	w.s.AdvanceDays(2)
	assert.InDelta(t, 20.0, w.faction.ResearchPoints, 1e-9)

	// banked points apply the moment a project starts
	plan := w.s.ComputeResearchPlan(w.faction.Id, []string{"beta"})
	require.NoError(t, w.s.ApplyResearchPlan(w.faction.Id, plan, PlanOptions{SetActive: true}))
	w.s.AdvanceDays(1)

	assert.True(t, w.faction.KnowsTech("alpha"))
	assert.True(t, w.faction.KnowsTech("beta"), "spillover should finish beta the same day")
}

func TestOverrideActiveRequeuesOldProject(t *testing.T) {
	w := newTestWorld()
	db := w.s.Content()
	db.Techs["delta"] = content.TechDef{Id: "delta", Name: "Delta Theory", Cost: 40}

	first := w.s.ComputeResearchPlan(w.faction.Id, []string{"alpha"})
	require.NoError(t, w.s.ApplyResearchPlan(w.faction.Id, first, PlanOptions{SetActive: true}))
	w.faction.ActiveResearchProgress = 5

	second := w.s.ComputeResearchPlan(w.faction.Id, []string{"delta"})
	require.NoError(t, w.s.ApplyResearchPlan(w.faction.Id, second,
		PlanOptions{SetActive: true, OverrideActive: true}))

	assert.Equal(t, "delta", w.faction.ActiveResearchId)
	assert.InDelta(t, 0.0, w.faction.ActiveResearchProgress, 1e-9)
	assert.Contains(t, w.faction.ResearchQueue, "alpha")
}

func TestBlockedActiveProjectIsRequeued(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["lab"] = 1

	// force beta active without its prerequisite
	w.faction.ActiveResearchId = "beta"
	w.s.AdvanceDays(1)

	assert.NotEqual(t, "beta", w.faction.ActiveResearchId)
	assert.Contains(t, w.faction.ResearchQueue, "beta")
}
