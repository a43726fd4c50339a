package sim

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebula4x/simcore/core"
)

func TestDailyBlockRunsAtMidnightOnly(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["mine"] = 1
	w.body.MineralDeposits = map[string]float64{"Duranium": 100}

	w.s.AdvanceHours(23)
	assert.InDelta(t, 0.0, c.Minerals["Duranium"], 1e-9)

	w.s.AdvanceHours(1)
	assert.InDelta(t, 10.0, c.Minerals["Duranium"], 1e-9)
	assert.Equal(t, 0, w.s.State().HourOfDay)
}

func TestAdvanceUntilEventStopsOnMatch(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["mine"] = 1
	w.body.MineralDeposits = map[string]float64{"Duranium": 25}

	res := w.s.AdvanceUntilEventHours(24*10, StopCondition{
		MessageSubstring: "depleted",
		FactionId:        w.faction.Id,
	}, 24)

	require.True(t, res.Hit)
	require.NotNil(t, res.Event)
	assert.Equal(t, 72, res.HoursAdvanced)
	assert.InDelta(t, 3.0, res.DaysAdvanced, 1e-9)
	assert.Contains(t, res.Event.Message, "Duranium")
}

func TestAdvanceUntilEventRunsOutTheClock(t *testing.T) {
	w := newTestWorld()

	res := w.s.AdvanceUntilEventHours(48, StopCondition{MessageSubstring: "never happens"}, 6)

	assert.False(t, res.Hit)
	assert.Nil(t, res.Event)
	assert.Equal(t, 48, res.HoursAdvanced)
}

// busyWorld assembles a world with economy, movement and combat all
// active so a replay touches every subsystem
func busyWorld() *testWorld {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["mine"] = 2
	c.Installations["lab"] = 1
	c.Installations["shipyard"] = 1
	c.Minerals["Duranium"] = 300
	w.body.MineralDeposits = map[string]float64{"Duranium": 500}

	_ = w.s.EnqueueBuildShip(c.Id, "hauler")

	plan := w.s.ComputeResearchPlan(w.faction.Id, []string{"gamma"})
	_ = w.s.ApplyResearchPlan(w.faction.Id, plan, PlanOptions{SetActive: true})

	enemy := w.addFaction("Crimson Pact")
	blue := w.addShip(w.faction, "gunship", core.Vec2{X: -15, Y: 0})
	red := w.addShip(enemy, "gunship", core.Vec2{X: 15, Y: 0})
	_ = w.s.IssueAttackShip(blue.Id, red.Id)
	_ = w.s.IssueAttackShip(red.Id, blue.Id)

	scout := w.addShip(w.faction, "scout", core.Vec2{X: 100, Y: 100})
	_ = w.s.IssueMoveToPoint(scout.Id, core.Vec2{X: -100, Y: -100})
	return w
}

func TestAdvanceIsDeterministic(t *testing.T) {
	a := busyWorld()
	b := busyWorld()

	a.s.AdvanceDays(3)
	b.s.AdvanceDays(3)

	ja, err := json.Marshal(a.s.State())
	require.NoError(t, err)
	jb, err := json.Marshal(b.s.State())
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb))
}

func TestStateStaysWithinBounds(t *testing.T) {
	w := busyWorld()
	w.s.AdvanceDays(5)

	st := w.s.State()
	for id, ship := range st.Ships {
		assert.Greater(t, ship.Hp, 0.0, "ship %d", id)
		assert.GreaterOrEqual(t, ship.Shields, 0.0, "ship %d", id)
		if design := w.s.FindDesign(ship.DesignId); design != nil {
			assert.LessOrEqual(t, ship.Hp, design.MaxHp, "ship %d", id)
			assert.LessOrEqual(t, ship.Shields, design.MaxShields+1e-9, "ship %d", id)
		}
	}
	for id, sys := range st.Systems {
		seen := map[core.Id]bool{}
		for _, shipId := range sys.Ships {
			assert.False(t, seen[shipId], "system %d lists ship %d twice", id, shipId)
			seen[shipId] = true
			assert.Contains(t, st.Ships, shipId)
		}
	}
}
