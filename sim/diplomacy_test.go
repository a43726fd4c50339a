package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/state"
)

func TestDefaultStanceIsHostile(t *testing.T) {
	w := newTestWorld()
	other := w.addFaction("Crimson Pact")

	assert.Equal(t, state.StatusHostile, w.s.DiplomaticStatus(w.faction.Id, other.Id))
	assert.True(t, w.s.AreFactionsHostile(w.faction.Id, other.Id))
	assert.Equal(t, state.StatusFriendly, w.s.DiplomaticStatus(w.faction.Id, w.faction.Id))
}

func TestMutualFriendshipSharesIntel(t *testing.T) {
	w := newTestWorld()
	ally := w.addFaction("Lunar Compact")
	hidden := w.addSystem("Hidden Reach")
	w.faction.DiscoveredSystems = append(w.faction.DiscoveredSystems, hidden.Id)

	third := w.addFaction("Crimson Pact")
	spy := w.addShip(third, "runner", core.Vec2{X: 100, Y: 0})
	w.faction.ShipContacts[spy.Id] = state.Contact{
		ShipId: spy.Id, SystemId: w.system.Id,
		LastSeenDay: w.s.State().Date, LastSeenFactionId: third.Id,
	}

	require.NoError(t, w.s.SetDiplomaticStatus(w.faction.Id, ally.Id, state.StatusFriendly))
	assert.False(t, ally.HasDiscoveredSystem(hidden.Id), "one-way friendship shares nothing")

	require.NoError(t, w.s.SetDiplomaticStatus(ally.Id, w.faction.Id, state.StatusFriendly))
	assert.True(t, ally.HasDiscoveredSystem(hidden.Id))
	_, ok := ally.ShipContacts[spy.Id]
	assert.True(t, ok, "contacts flow on mutual friendship")
	assert.True(t, w.lastEventMatching("Intel sharing with Terran Accord"))
}

func TestAllianceSharesContactsTradeDoesNot(t *testing.T) {
	w := newTestWorld()
	ally := w.addFaction("Lunar Compact")
	trader := w.addFaction("Free Haulers")
	third := w.addFaction("Crimson Pact")

	hidden := w.addSystem("Hidden Reach")
	w.faction.DiscoveredSystems = append(w.faction.DiscoveredSystems, hidden.Id)
	spy := w.addShip(third, "runner", core.Vec2{X: 100, Y: 0})
	w.faction.ShipContacts[spy.Id] = state.Contact{
		ShipId: spy.Id, SystemId: w.system.Id,
		LastSeenDay: w.s.State().Date, LastSeenFactionId: third.Id,
	}

	_, err := w.s.CreateTreaty(w.faction.Id, ally.Id, state.TreatyAlliance, -1)
	require.NoError(t, err)
	_, err = w.s.CreateTreaty(w.faction.Id, trader.Id, state.TreatyTradeAgreement, -1)
	require.NoError(t, err)

	assert.True(t, ally.HasDiscoveredSystem(hidden.Id))
	_, allyHas := ally.ShipContacts[spy.Id]
	assert.True(t, allyHas, "alliance shares contacts")

	assert.True(t, trader.HasDiscoveredSystem(hidden.Id), "trade agreement shares charts")
	_, traderHas := trader.ShipContacts[spy.Id]
	assert.False(t, traderHas, "trade agreement withholds contacts")
}

func TestCeasefireClearsAttackOrdersAndExpires(t *testing.T) {
	w := newTestWorld()
	enemy := w.addFaction("Crimson Pact")

	attacker := w.addShip(w.faction, "gunship", core.Vec2{X: 500, Y: 0})
	target := w.addShip(enemy, "runner", core.Vec2{X: 900, Y: 0})
	require.NoError(t, w.s.IssueAttackShip(attacker.Id, target.Id))

	_, err := w.s.CreateTreaty(w.faction.Id, enemy.Id, state.TreatyCeasefire, 3)
	require.NoError(t, err)

	assert.Equal(t, state.StatusNeutral, w.s.DiplomaticStatus(w.faction.Id, enemy.Id))
	assert.Empty(t, w.s.State().ShipOrders[attacker.Id].Queue, "attack order voided")

	err2 := w.s.IssueAttackShip(attacker.Id, target.Id)
	assert.Error(t, err2, "attack orders blocked while the ceasefire holds")

	w.s.AdvanceDays(4)
	assert.True(t, w.lastEventMatching("Treaty expired: Ceasefire"))
	assert.Equal(t, state.StatusHostile, w.s.DiplomaticStatus(w.faction.Id, enemy.Id))
	assert.True(t, w.s.AreFactionsHostile(w.faction.Id, enemy.Id))
}

func TestAllianceForcesFriendlyAndVoidsAttackOrders(t *testing.T) {
	w := newTestWorld()
	rival := w.addFaction("Crimson Pact")

	attacker := w.addShip(w.faction, "gunship", core.Vec2{X: 500, Y: 0})
	target := w.addShip(rival, "runner", core.Vec2{X: 900, Y: 0})
	require.NoError(t, w.s.IssueAttackShip(attacker.Id, target.Id))

	_, err := w.s.CreateTreaty(w.faction.Id, rival.Id, state.TreatyAlliance, -1)
	require.NoError(t, err)

	assert.Equal(t, state.StatusFriendly, w.s.DiplomaticStatus(w.faction.Id, rival.Id))
	assert.Equal(t, state.StatusFriendly, w.s.DiplomaticStatus(rival.Id, w.faction.Id))
	assert.Empty(t, w.s.State().ShipOrders[attacker.Id].Queue, "attack order voided by the alliance")
}

func TestTradeAgreementLiftsHostility(t *testing.T) {
	w := newTestWorld()
	trader := w.addFaction("Free Haulers")
	require.True(t, w.s.AreFactionsHostile(w.faction.Id, trader.Id))

	_, err := w.s.CreateTreaty(w.faction.Id, trader.Id, state.TreatyTradeAgreement, -1)
	require.NoError(t, err)

	assert.Equal(t, state.StatusNeutral, w.s.DiplomaticStatus(w.faction.Id, trader.Id))
	assert.Equal(t, state.StatusNeutral, w.s.DiplomaticStatus(trader.Id, w.faction.Id))
	assert.False(t, w.s.AreFactionsHostile(w.faction.Id, trader.Id))
}

func TestAttackOnNonHostileEscalates(t *testing.T) {
	w := newTestWorld()
	neutral := w.addFaction("Free Haulers")
	w.s.State().Factions[w.faction.Id].Relations[neutral.Id] = state.StatusNeutral
	neutral.Relations[w.faction.Id] = state.StatusNeutral

	attacker := w.addShip(w.faction, "gunship", core.Vec2{})
	victim := w.addShip(neutral, "runner", core.Vec2{X: 10, Y: 0})
	require.NoError(t, w.s.IssueAttackShip(attacker.Id, victim.Id))

	w.s.AdvanceHours(1)

	assert.True(t, w.s.AreFactionsHostile(w.faction.Id, neutral.Id))
	assert.True(t, w.lastEventMatching("Hostilities open"))
}
