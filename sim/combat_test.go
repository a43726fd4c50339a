package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebula4x/simcore/content"
	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/state"
)

// sureHitConfig removes the random elements so damage math is exact
func sureHitConfig() Config {
	cfg := DefaultConfig()
	cfg.EnableBeamHitChance = false
	cfg.EnableSubsystemDamage = false
	return cfg
}

func TestBeamDamageAbsorbedByShieldsFirst(t *testing.T) {
	w := newTestWorldCfg(sureHitConfig())
	db := w.s.Content()
	db.Designs["turtle"] = content.ShipDesign{
		Id: "turtle", Name: "Turtle", Role: content.RoleCombatant,
		MassTons: 200, MaxHp: 50, MaxShields: 10, ShieldRegenPerDay: 24,
		SpeedKmS: 100,
	}

	w.addShip(w.faction, "gunship", core.Vec2{})
	enemy := w.addFaction("Crimson Pact")
	defender := w.addShip(enemy, "turtle", core.Vec2{X: 10, Y: 0})
	defender.Shields = 3

	// 48 damage/day lands 2 per hour, shields regen 1 per hour
	w.s.AdvanceHours(1)
	assert.InDelta(t, 2.0, defender.Shields, 1e-9)
	assert.InDelta(t, 50.0, defender.Hp, 1e-9)
	assert.True(t, w.lastEventMatching("Shields hit: Turtle"))
}

func TestShipDestructionCleansUpEverywhere(t *testing.T) {
	w := newTestWorldCfg(sureHitConfig())
	w.addShip(w.faction, "gunship", core.Vec2{})

	enemy := w.addFaction("Crimson Pact")
	victim := w.addShip(enemy, "runner", core.Vec2{X: 10, Y: 0})
	victim.Hp = 1.5

	require.NoError(t, w.s.IssueMoveToPoint(victim.Id, core.Vec2{X: 15, Y: 0}))
	fleet, err := w.s.CreateFleet(enemy.Id, "Strays", []core.Id{victim.Id})
	require.NoError(t, err)
	w.faction.ShipContacts[victim.Id] = state.Contact{
		ShipId: victim.Id, SystemId: w.system.Id,
		LastSeenDay: w.s.State().Date, LastSeenFactionId: enemy.Id,
	}

	w.s.AdvanceHours(1)

	st := w.s.State()
	_, alive := st.Ships[victim.Id]
	assert.False(t, alive)
	assert.NotContains(t, w.system.Ships, victim.Id)
	_, hasOrders := st.ShipOrders[victim.Id]
	assert.False(t, hasOrders)
	_, hasFleet := st.Fleets[fleet.Id]
	assert.False(t, hasFleet, "single-ship fleet should disband with its ship")
	_, hasContact := w.faction.ShipContacts[victim.Id]
	assert.False(t, hasContact)
	assert.True(t, w.lastEventMatching("Ship destroyed: Runner"))
}

func TestMissileSalvoThinnedByPointDefense(t *testing.T) {
	w := newTestWorldCfg(sureHitConfig())
	db := w.s.Content()
	db.Designs["boat"] = content.ShipDesign{
		Id: "boat", Name: "Missile Boat", Role: content.RoleCombatant,
		MassTons: 150, MaxHp: 30, SpeedKmS: 100, SensorRangeMkm: 100,
		MissileDamage: 5, MissileCount: 2, MissileSpeedMkmDay: 240, MissileRangeMkm: 100,
	}
	db.Designs["bastion"] = content.ShipDesign{
		Id: "bastion", Name: "Bastion", Role: content.RoleCombatant,
		MassTons: 300, MaxHp: 20, SpeedKmS: 0,
		PointDefenseDamage: 1, PointDefenseRangeMkm: 5,
	}

	w.addShip(w.faction, "boat", core.Vec2{})
	enemy := w.addFaction("Crimson Pact")
	defender := w.addShip(enemy, "bastion", core.Vec2{X: 30, Y: 0})

	// launch on hour one, then three hours of flight at 10 mkm/hour
	w.s.AdvanceHours(1)
	require.Len(t, w.s.State().Salvos, 1)
	assert.True(t, w.lastEventMatching("Missile salvo launched by Missile Boat"))

	w.s.AdvanceHours(3)
	assert.True(t, w.lastEventMatching("Point defense engaged missiles targeting Bastion"))
	// one of two missiles intercepted, the survivor lands 5 damage
	assert.InDelta(t, 15.0, defender.Hp, 1e-9)
}

func TestOneSalvoInFlightPerTarget(t *testing.T) {
	w := newTestWorldCfg(sureHitConfig())
	db := w.s.Content()
	db.Designs["boat"] = content.ShipDesign{
		Id: "boat", Name: "Missile Boat", Role: content.RoleCombatant,
		MassTons: 150, MaxHp: 30, SpeedKmS: 100, SensorRangeMkm: 100,
		MissileDamage: 5, MissileCount: 2, MissileSpeedMkmDay: 240, MissileRangeMkm: 100,
	}

	w.addShip(w.faction, "boat", core.Vec2{})
	enemy := w.addFaction("Crimson Pact")
	w.addShip(enemy, "runner", core.Vec2{X: 90, Y: 0})

	w.s.AdvanceHours(3)
	assert.Len(t, w.s.State().Salvos, 1)
}

func TestEscortPointDefenseCoversTarget(t *testing.T) {
	w := newTestWorldCfg(sureHitConfig())
	db := w.s.Content()
	db.Designs["boat"] = content.ShipDesign{
		Id: "boat", Name: "Missile Boat", Role: content.RoleCombatant,
		MassTons: 150, MaxHp: 30, SpeedKmS: 100, SensorRangeMkm: 100,
		MissileDamage: 5, MissileCount: 2, MissileSpeedMkmDay: 240, MissileRangeMkm: 100,
	}
	db.Designs["bastion"] = content.ShipDesign{
		Id: "bastion", Name: "Bastion", Role: content.RoleCombatant,
		MassTons: 300, MaxHp: 20, SpeedKmS: 0,
		PointDefenseDamage: 1, PointDefenseRangeMkm: 5,
	}

	w.addShip(w.faction, "boat", core.Vec2{})
	enemy := w.addFaction("Crimson Pact")
	victim := w.addShip(enemy, "runner", core.Vec2{X: 30, Y: 0})
	w.addShip(enemy, "bastion", core.Vec2{X: 32, Y: 0})

	// the runner has no batteries of its own; the bastion standing off
	// the impact point thins the salvo on its final approach
	w.s.AdvanceHours(4)

	assert.True(t, w.lastEventMatching("Point defense engaged missiles targeting Runner"))
	assert.InDelta(t, 5.0, victim.Hp, 1e-9, "one of two missiles intercepted by the escort")
}

func TestBeamTrackingFactor(t *testing.T) {
	w := newTestWorld()
	attacker := w.addShip(w.faction, "gunship", core.Vec2{})
	enemy := w.addFaction("Crimson Pact")
	target := w.addShip(enemy, "runner", core.Vec2{X: 10, Y: 0})

	// stationary, no jamming on either side
	assert.InDelta(t, 1.0, w.s.beamTrackingFactor(attacker, target, 10), 1e-9)

	// jamming cuts the solution by the EW ratio
	db := w.s.Content()
	jammer := db.Designs["runner"]
	jammer.Id = "jammer"
	jammer.EcmStrength = 3
	db.Designs["jammer"] = jammer
	target.DesignId = "jammer"
	assert.InDelta(t, 0.25, w.s.beamTrackingFactor(attacker, target, 10), 1e-9)

	// a target crossing the sight line degrades tracking further
	target.DesignId = "runner"
	target.PrevPositionMkm = core.Vec2{X: 10, Y: -1}
	assert.InDelta(t, 1.0/3.4, w.s.beamTrackingFactor(attacker, target, 10), 1e-9)
}

func TestBeamScatterSplashesOntoBystanders(t *testing.T) {
	cfg := sureHitConfig()
	cfg.EnableBeamScatterSplash = true
	w := newTestWorldCfg(cfg)

	w.addShip(w.faction, "gunship", core.Vec2{})
	enemy := w.addFaction("Crimson Pact")
	target := w.addShip(enemy, "runner", core.Vec2{X: 10, Y: 0})
	bystander := w.addShip(enemy, "runner", core.Vec2{X: 12, Y: 0})

	// 2 damage lands on the target, a quarter of it scatters
	w.s.AdvanceHours(1)
	assert.InDelta(t, 8.0, target.Hp, 1e-9)
	assert.InDelta(t, 9.5, bystander.Hp, 1e-9)
}

func TestBeamLosAttenuationSoftensHitsInNebula(t *testing.T) {
	cfg := sureHitConfig()
	cfg.EnableBeamLosAttenuation = true
	w := newTestWorldCfg(cfg)
	w.system.NebulaDensity = 0.5

	w.addShip(w.faction, "gunship", core.Vec2{})
	enemy := w.addFaction("Crimson Pact")
	target := w.addShip(enemy, "runner", core.Vec2{X: 10, Y: 0})

	// drag multiplier 0.7 across the whole line soaks 30% of the shot
	w.s.AdvanceHours(1)
	assert.InDelta(t, 10.0-2.0*0.7, target.Hp, 1e-6)
}

func TestFreshShieldsInitializeToCapacity(t *testing.T) {
	w := newTestWorld()
	ship := w.addShip(w.faction, "gunship", core.Vec2{})
	ship.Shields = -1 // commissioning marker

	w.s.AdvanceHours(1)
	assert.InDelta(t, 10.0, ship.Shields, 1e-9)
}

func TestPowerSheddingDropsShieldsFirst(t *testing.T) {
	design := &content.ShipDesign{
		PowerGeneration: 10,
		PowerUseWeapons: 5, PowerUseSensors: 4, PowerUseShields: 4,
	}
	weapons, sensors, shields := shipSubsystemsPowered(design, state.DefaultPowerPolicy())
	assert.True(t, weapons)
	assert.True(t, sensors)
	assert.False(t, shields, "shields shed before weapons and sensors")

	design.PowerUseWeapons = 8
	weapons, sensors, shields = shipSubsystemsPowered(design, state.DefaultPowerPolicy())
	assert.False(t, weapons)
	assert.True(t, sensors)
	assert.False(t, shields)
}
