package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/state"
)

func TestMoveToPointArrives(t *testing.T) {
	w := newTestWorld()
	ship := w.addShip(w.faction, "runner", core.Vec2{})

	// 43.2 mkm/day, destination inside one day's travel
	require.NoError(t, w.s.IssueMoveToPoint(ship.Id, core.Vec2{X: 30, Y: 0}))
	w.s.AdvanceDays(1)

	assert.InDelta(t, 30.0, ship.PositionMkm.X, 1e-6)
	assert.Empty(t, w.s.State().ShipOrders[ship.Id].Queue)
}

func TestWaitDaysHoldsQueue(t *testing.T) {
	w := newTestWorld()
	ship := w.addShip(w.faction, "runner", core.Vec2{})

	require.NoError(t, w.s.IssueWaitDays(ship.Id, 2))
	require.NoError(t, w.s.IssueMoveToPoint(ship.Id, core.Vec2{X: 30, Y: 0}))

	w.s.AdvanceDays(1)
	assert.InDelta(t, 0.0, ship.PositionMkm.X, 1e-9)

	w.s.AdvanceDays(2)
	assert.InDelta(t, 30.0, ship.PositionMkm.X, 1e-6)
}

func TestJumpTransitDiscoversSystem(t *testing.T) {
	w := newTestWorld()
	frontier := w.addSystem("Frontier")
	ja, jb := w.linkSystems(w.system, frontier, core.Vec2{X: 10, Y: 0}, core.Vec2{X: -500, Y: 0})

	ship := w.addShip(w.faction, "runner", core.Vec2{X: 9, Y: 0})
	w.faction.SurveyedJumpPoints = []core.Id{ja.Id}

	require.NoError(t, w.s.IssueTravelViaJump(ship.Id, ja.Id))
	w.s.AdvanceDays(1)

	assert.Equal(t, frontier.Id, ship.SystemId)
	assert.Equal(t, jb.PositionMkm, ship.PositionMkm)
	assert.True(t, w.faction.HasDiscoveredSystem(frontier.Id))
	assert.True(t, w.lastEventMatching("discovered Frontier"))
	assert.NotContains(t, w.system.Ships, ship.Id)
	assert.Contains(t, frontier.Ships, ship.Id)
}

func TestSurveyJumpPointThenTransit(t *testing.T) {
	w := newTestWorld()
	frontier := w.addSystem("Frontier")
	ja, _ := w.linkSystems(w.system, frontier, core.Vec2{X: 5, Y: 0}, core.Vec2{X: -500, Y: 0})

	ship := w.addShip(w.faction, "scout", core.Vec2{})
	require.NoError(t, w.s.IssueSurveyJumpPoint(ship.Id, ja.Id, true))
	w.s.AdvanceDays(1)

	assert.True(t, w.faction.HasSurveyedJumpPoint(ja.Id))
	assert.Equal(t, frontier.Id, ship.SystemId)
	assert.True(t, w.lastEventMatching("Jump point surveyed"))
}

func TestTravelToSystemPlansRoute(t *testing.T) {
	w := newTestWorld()
	mid := w.addSystem("Waypoint")
	far := w.addSystem("Deep Reach")
	ja, jb := w.linkSystems(w.system, mid, core.Vec2{X: 5, Y: 0}, core.Vec2{X: -5, Y: 0})
	jc, _ := w.linkSystems(mid, far, core.Vec2{X: 5, Y: 0}, core.Vec2{X: -5, Y: 0})

	w.faction.DiscoveredSystems = append(w.faction.DiscoveredSystems, mid.Id, far.Id)
	w.faction.SurveyedJumpPoints = []core.Id{ja.Id, jb.Id, jc.Id}

	ship := w.addShip(w.faction, "runner", core.Vec2{})
	require.NoError(t, w.s.IssueTravelToSystem(ship.Id, far.Id))

	queue := w.s.State().ShipOrders[ship.Id].Queue
	require.Len(t, queue, 2)
	assert.Equal(t, state.TravelViaJump{JumpPointId: ja.Id}, queue[0])
	assert.Equal(t, state.TravelViaJump{JumpPointId: jc.Id}, queue[1])

	w.s.AdvanceDays(1)
	assert.Equal(t, far.Id, ship.SystemId)
}

func TestRepeatTemplateRefillsQueue(t *testing.T) {
	w := newTestWorld()
	ship := w.addShip(w.faction, "runner", core.Vec2{})

	require.NoError(t, w.s.IssueMoveToPoint(ship.Id, core.Vec2{X: 10, Y: 0}))
	require.NoError(t, w.s.IssueMoveToPoint(ship.Id, core.Vec2{}))
	require.NoError(t, w.s.EnableOrderRepeat(ship.Id, 1))

	w.s.AdvanceDays(2)

	so := w.s.State().ShipOrders[ship.Id]
	assert.False(t, so.Repeat, "repeat count should be exhausted")
	assert.InDelta(t, 0.0, ship.PositionMkm.X, 1e-6)
}

func TestTravelToSystemPicksCheapestRoute(t *testing.T) {
	w := newTestWorld()
	longWay := w.addSystem("Long Way")
	shortWay := w.addSystem("Short Way")
	far := w.addSystem("Deep Reach")

	// both corridors are two jumps; the first puts its second jump point
	// on the far side of the system
	ja, _ := w.linkSystems(w.system, longWay, core.Vec2{X: 10, Y: 0}, core.Vec2{})
	jc, _ := w.linkSystems(longWay, far, core.Vec2{X: 5000, Y: 0}, core.Vec2{})
	jb, _ := w.linkSystems(w.system, shortWay, core.Vec2{X: 20, Y: 0}, core.Vec2{})
	jd, _ := w.linkSystems(shortWay, far, core.Vec2{X: 50, Y: 0}, core.Vec2{})

	w.faction.DiscoveredSystems = append(w.faction.DiscoveredSystems, longWay.Id, shortWay.Id, far.Id)
	w.faction.SurveyedJumpPoints = []core.Id{ja.Id, jc.Id, jb.Id, jd.Id}

	ship := w.addShip(w.faction, "runner", core.Vec2{})
	require.NoError(t, w.s.IssueTravelToSystem(ship.Id, far.Id))

	queue := w.s.State().ShipOrders[ship.Id].Queue
	require.Len(t, queue, 2)
	assert.Equal(t, state.TravelViaJump{JumpPointId: jb.Id}, queue[0])
	assert.Equal(t, state.TravelViaJump{JumpPointId: jd.Id}, queue[1])
}

func TestTravelToSystemDiscoveryRestriction(t *testing.T) {
	restricted := newTestWorld()
	frontier := restricted.addSystem("Frontier")
	ja, _ := restricted.linkSystems(restricted.system, frontier, core.Vec2{X: 10, Y: 0}, core.Vec2{})
	restricted.faction.SurveyedJumpPoints = []core.Id{ja.Id}
	ship := restricted.addShip(restricted.faction, "runner", core.Vec2{})

	err := restricted.s.IssueTravelToSystem(ship.Id, frontier.Id)
	assert.Error(t, err, "undiscovered destination refused by default")

	cfg := DefaultConfig()
	cfg.RestrictToDiscovered = false
	open := newTestWorldCfg(cfg)
	frontier2 := open.addSystem("Frontier")
	jb, _ := open.linkSystems(open.system, frontier2, core.Vec2{X: 10, Y: 0}, core.Vec2{})
	open.faction.SurveyedJumpPoints = []core.Id{jb.Id}
	ship2 := open.addShip(open.faction, "runner", core.Vec2{})

	require.NoError(t, open.s.IssueTravelToSystem(ship2.Id, frontier2.Id))
	queue := open.s.State().ShipOrders[ship2.Id].Queue
	require.Len(t, queue, 1)
	assert.Equal(t, state.TravelViaJump{JumpPointId: jb.Id}, queue[0])
}

func TestFleetOrdersLandOnAllOrNone(t *testing.T) {
	w := newTestWorld()
	frontier := w.addSystem("Frontier")
	ja, _ := w.linkSystems(w.system, frontier, core.Vec2{X: 10, Y: 0}, core.Vec2{})
	w.faction.SurveyedJumpPoints = []core.Id{ja.Id}

	s1 := w.addShip(w.faction, "runner", core.Vec2{})
	s2 := w.addShip(w.faction, "runner", core.Vec2{})
	require.NoError(t, w.s.IssueTravelViaJump(s2.Id, ja.Id))

	fleet, err := w.s.CreateFleet(w.faction.Id, "Convoy", []core.Id{s1.Id, s2.Id})
	require.NoError(t, err)

	// the body sits in Haven; s2's queue leaves it in Frontier
	err = w.s.FleetIssueMoveToBody(fleet.Id, w.body.Id)
	require.Error(t, err)

	so1 := w.s.State().ShipOrders[s1.Id]
	assert.True(t, so1 == nil || len(so1.Queue) == 0, "no order lands on the first ship")
	so2 := w.s.State().ShipOrders[s2.Id]
	require.NotNil(t, so2)
	require.Len(t, so2.Queue, 1)
	assert.Equal(t, state.TravelViaJump{JumpPointId: ja.Id}, so2.Queue[0])
}

func TestColonizeBodyFoundsColonyAndExpendsShip(t *testing.T) {
	w := newTestWorld()
	db := w.s.Content()
	db.Designs["seeder"] = db.Designs["hauler"]
	seeder := db.Designs["seeder"]
	seeder.Id = "seeder"
	seeder.ColonyCapacityMillions = 5
	db.Designs["seeder"] = seeder

	ship := w.addShip(w.faction, "seeder", core.Vec2{X: 1, Y: 0})
	ship.Cargo = map[string]float64{"Duranium": 40}

	require.NoError(t, w.s.IssueColonizeBody(ship.Id, w.body.Id))
	w.s.AdvanceDays(1)

	_, alive := w.s.State().Ships[ship.Id]
	assert.False(t, alive, "colony ship is expended")

	c := w.s.State().Colonies
	require.Len(t, c, 1)
	for _, colony := range c {
		assert.Equal(t, w.faction.Id, colony.FactionId)
		assert.InDelta(t, 5.0, colony.PopulationMillions, 1e-9)
		assert.InDelta(t, 40.0, colony.Minerals["Duranium"], 1e-9)
	}
	assert.True(t, w.lastEventMatching("Colony founded on Haven II"))
}

func TestColonizeBodyAppliesFoundingProfile(t *testing.T) {
	w := newTestWorld()
	db := w.s.Content()
	seeder := db.Designs["hauler"]
	seeder.Id = "seeder"
	seeder.ColonyCapacityMillions = 5
	db.Designs["seeder"] = seeder

	w.faction.FoundingProfile = &state.ColonyFoundingProfile{
		MineralReserves:        map[string]float64{"Duranium": 50},
		MineralTargets:         map[string]float64{"Duranium": 200},
		GarrisonTargetStrength: 20,
	}

	ship := w.addShip(w.faction, "seeder", core.Vec2{X: 1, Y: 0})
	require.NoError(t, w.s.IssueColonizeBody(ship.Id, w.body.Id))
	w.s.AdvanceDays(1)

	colonies := w.s.State().Colonies
	require.Len(t, colonies, 1)
	for _, colony := range colonies {
		assert.InDelta(t, 50.0, colony.MineralReserves["Duranium"], 1e-9)
		assert.InDelta(t, 200.0, colony.MineralTargets["Duranium"], 1e-9)
		assert.InDelta(t, 20.0, colony.GarrisonTargetStrength, 1e-9)
	}
}
