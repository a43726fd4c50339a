package sim

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShipyardBuildsOverTwoDays(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["shipyard"] = 1
	c.Minerals["Duranium"] = 1000

	require.NoError(t, w.s.EnqueueBuildShip(c.Id, "hauler"))

	w.s.AdvanceDays(1)
	require.Len(t, c.ShipyardQueue, 1)
	assert.InDelta(t, 50.0, c.ShipyardQueue[0].TonsRemaining, 1e-9)
	assert.InDelta(t, 950.0, c.Minerals["Duranium"], 1e-9)

	w.s.AdvanceDays(1)
	assert.Empty(t, c.ShipyardQueue)
	assert.InDelta(t, 900.0, c.Minerals["Duranium"], 1e-9)

	var built bool
	for id, ship := range w.s.State().Ships {
		if ship.DesignId == "hauler" {
			built = true
			assert.Equal(t, fmt.Sprintf("Hauler #%d", id), ship.Name)
			assert.Equal(t, w.system.Id, ship.SystemId)
			assert.InDelta(t, 20.0, ship.Hp, 1e-9)
		}
	}
	assert.True(t, built, "hauler should have been commissioned")
}

func TestShipyardWorkLimitedByMinerals(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["shipyard"] = 1
	c.Minerals["Duranium"] = 30 // enough for 30 of 50 possible tons

	require.NoError(t, w.s.EnqueueBuildShip(c.Id, "hauler"))
	w.s.AdvanceDays(1)

	require.Len(t, c.ShipyardQueue, 1)
	assert.InDelta(t, 70.0, c.ShipyardQueue[0].TonsRemaining, 1e-9)
	_, has := c.Minerals["Duranium"]
	assert.False(t, has)
}

func TestRefitSwapsDesignOnDockedShip(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["shipyard"] = 1
	c.Minerals["Duranium"] = 1000

	ship := w.addShip(w.faction, "runner", w.body.PositionMkm)
	ship.Hp = 3

	require.NoError(t, w.s.EnqueueRefit(c.Id, ship.Id, "hauler"))
	require.Len(t, c.ShipyardQueue, 1)
	assert.InDelta(t, 50.0, c.ShipyardQueue[0].TonsRemaining, 1e-9) // half of 100 tons

	w.s.AdvanceDays(1)
	assert.Empty(t, c.ShipyardQueue)
	assert.Equal(t, "hauler", ship.DesignId)
	assert.InDelta(t, 20.0, ship.Hp, 1e-9)
}

func TestDeleteConstructionOrderRefundsPaidUnit(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["factory"] = 1
	c.Minerals["Duranium"] = 20

	require.NoError(t, w.s.EnqueueInstallationBuild(c.Id, "factory", 1))
	w.s.AdvanceDays(1) // pays 20, leaves cp remaining

	_, has := c.Minerals["Duranium"]
	require.False(t, has)
	require.NoError(t, w.s.DeleteConstructionOrder(c.Id, 0))
	assert.InDelta(t, 20.0, c.Minerals["Duranium"], 1e-9)
	assert.Empty(t, c.ConstructionQueue)
}
