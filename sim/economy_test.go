package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiningDrawsDownDeposit(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["mine"] = 1
	w.body.MineralDeposits = map[string]float64{"Duranium": 15}

	w.s.AdvanceDays(1)
	assert.InDelta(t, 10.0, c.Minerals["Duranium"], 1e-9)
	assert.InDelta(t, 5.0, w.body.MineralDeposits["Duranium"], 1e-9)

	w.s.AdvanceDays(1)
	assert.InDelta(t, 15.0, c.Minerals["Duranium"], 1e-9)
	assert.InDelta(t, 0.0, w.body.MineralDeposits["Duranium"], 1e-9)

	assert.True(t, w.lastEventMatching("Mineral deposit depleted on Haven II: Duranium"))
}

func TestMiningDepletionWarnsOnce(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["mine"] = 1
	w.body.MineralDeposits = map[string]float64{"Duranium": 5}

	w.s.AdvanceDays(3)

	warns := 0
	for _, e := range w.s.State().Events.Entries {
		if e.Message == "Mineral deposit depleted on Haven II: Duranium" {
			warns++
		}
	}
	assert.Equal(t, 1, warns)
}

func TestMiningDepletionWarnsEveryMiner(t *testing.T) {
	w := newTestWorld()
	first := w.addColony(w.faction, w.body)
	first.Installations["mine"] = 1
	second := w.addColony(w.faction, w.body)
	second.Installations["mine"] = 1
	w.body.MineralDeposits = map[string]float64{"Duranium": 5}

	w.s.AdvanceDays(3)

	warns := 0
	for _, e := range w.s.State().Events.Entries {
		if e.Message == "Mineral deposit depleted on Haven II: Duranium" {
			warns++
		}
	}
	assert.Equal(t, 2, warns, "each mining colony hears about the dry deposit once")
	assert.True(t, first.DepletedDeposits["Duranium"])
	assert.True(t, second.DepletedDeposits["Duranium"])
}

func TestScarcityWaterfillFavorsShortColony(t *testing.T) {
	w := newTestWorld()
	rich := w.addColony(w.faction, w.body)
	rich.Installations["mine"] = 1
	rich.Minerals["Duranium"] = 500 // far above buffer target

	poor := w.addColony(w.faction, w.body)
	poor.Installations["mine"] = 1

	w.body.MineralDeposits = map[string]float64{"Duranium": 10}

	w.s.AdvanceDays(1)

	// both requested 10 of a 10-ton remainder; the empty colony should
	// receive the larger share
	assert.Greater(t, poor.Minerals["Duranium"], rich.Minerals["Duranium"]-500)
	total := poor.Minerals["Duranium"] + rich.Minerals["Duranium"] - 500
	assert.InDelta(t, 10.0, total, 1e-6)
}

func TestIndustryScalesWithInputShortfall(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["refinery"] = 1
	c.Minerals["Duranium"] = 2 // half of the 4/day input

	w.s.AdvanceDays(1)

	assert.InDelta(t, 1.0, c.Minerals["Sorium"], 1e-9)
	_, has := c.Minerals["Duranium"]
	assert.False(t, has, "input should be fully consumed")
}

func TestPopulationGrowth(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	before := c.PopulationMillions

	w.s.AdvanceDays(1)
	assert.Greater(t, c.PopulationMillions, before)
}

func TestConstructionPaysMineralsUpFront(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["factory"] = 1
	c.Minerals["Duranium"] = 100

	require.NoError(t, w.s.EnqueueInstallationBuild(c.Id, "factory", 1))

	// factory builds at 10 cp/day + 1 cp from population; 30 build
	// points finish on day 3
	w.s.AdvanceDays(1)
	assert.InDelta(t, 80.0, c.Minerals["Duranium"], 1e-9)
	assert.Equal(t, 1, c.Installations["factory"])

	w.s.AdvanceDays(2)
	assert.Equal(t, 2, c.Installations["factory"])
	assert.Empty(t, c.ConstructionQueue)
	assert.True(t, w.lastEventMatching("Constructed Construction Factory at Haven II"))
}

func TestConstructionStallsWithoutMinerals(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["factory"] = 1

	require.NoError(t, w.s.EnqueueInstallationBuild(c.Id, "factory", 1))
	w.s.AdvanceDays(1)

	require.Len(t, c.ConstructionQueue, 1)
	assert.True(t, c.ConstructionQueue[0].Stalled)
	assert.Equal(t, 1, c.Installations["factory"])
}
