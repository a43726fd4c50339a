package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/state"
)

// A fast ship crossing a 10 mkm sensor bubble inside one day must be
// caught by the segment sweep even though hourly endpoints could jump
// past the bubble.
func TestSweptContactDetection(t *testing.T) {
	w := newTestWorld()
	observer := w.addShip(w.faction, "scout", core.Vec2{})

	intruders := w.addFaction("Crimson Pact")
	runner := w.addShip(intruders, "runner", core.Vec2{X: -20, Y: 0})
	require.NoError(t, w.s.IssueMoveToPoint(runner.Id, core.Vec2{X: 20, Y: 0}))

	w.s.AdvanceHours(24)

	c, ok := w.faction.ShipContacts[runner.Id]
	require.True(t, ok, "contact should have been recorded")
	assert.Equal(t, w.system.Id, c.SystemId)
	assert.LessOrEqual(t, c.LastSeenPositionMkm.Distance(observer.PositionMkm), 10.0+1e-6)
	assert.Equal(t, "Runner", c.LastSeenName)
	assert.Equal(t, intruders.Id, c.LastSeenFactionId)
}

func TestNewContactEventEmitted(t *testing.T) {
	w := newTestWorld()
	w.addShip(w.faction, "scout", core.Vec2{})

	intruders := w.addFaction("Crimson Pact")
	w.addShip(intruders, "runner", core.Vec2{X: 5, Y: 0})

	w.s.AdvanceHours(1)
	assert.True(t, w.lastEventMatching("New contact in Haven: Runner"))
}

func TestNoContactEventBetweenMutualFriends(t *testing.T) {
	w := newTestWorld()
	w.addShip(w.faction, "scout", core.Vec2{})

	friends := w.addFaction("Lunar Compact")
	w.addShip(friends, "runner", core.Vec2{X: 5, Y: 0})

	require.NoError(t, w.s.SetDiplomaticStatus(w.faction.Id, friends.Id, state.StatusFriendly))
	require.NoError(t, w.s.SetDiplomaticStatus(friends.Id, w.faction.Id, state.StatusFriendly))

	w.s.AdvanceHours(1)
	assert.False(t, w.lastEventMatching("New contact"))
	_, ok := w.faction.ShipContacts[w.s.ShipsOfFaction(friends.Id)[0]]
	assert.True(t, ok, "contact is still tracked, just silently")
}

func TestContactPrediction(t *testing.T) {
	w := newTestWorld()
	c := &state.Contact{
		ShipId:              99,
		SystemId:            w.system.Id,
		PrevSeenDay:         w.s.State().Date - 2,
		PrevSeenPositionMkm: core.Vec2{X: 0, Y: 0},
		LastSeenDay:         w.s.State().Date - 1,
		LastSeenPositionMkm: core.Vec2{X: 10, Y: 0},
	}
	// one day since last fix at 10 mkm/day eastward
	got := w.s.PredictContactPosition(c)
	assert.InDelta(t, 20.0, got.X, 1e-9)
	assert.InDelta(t, 0.0, got.Y, 1e-9)
}

func TestContactGarbageCollection(t *testing.T) {
	w := newTestWorld()
	intruders := w.addFaction("Crimson Pact")
	runner := w.addShip(intruders, "runner", core.Vec2{X: 5000, Y: 0})

	w.faction.ShipContacts[runner.Id] = state.Contact{
		ShipId:      runner.Id,
		SystemId:    w.system.Id,
		LastSeenDay: w.s.State().Date - core.Date(w.s.Config().ContactMaxAgeDays) - 5,
	}

	w.s.AdvanceDays(1)
	_, ok := w.faction.ShipContacts[runner.Id]
	assert.False(t, ok, "stale contact should be dropped")
}
