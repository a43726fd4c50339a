package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebula4x/simcore/core"
)

func TestMaintenanceDecaysAwayFromSupply(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableShipMaintenance = true
	w := newTestWorldCfg(cfg)

	ship := w.addShip(w.faction, "runner", core.Vec2{X: 500, Y: 0})
	ship.MaintenanceCondition = 0.03

	w.s.AdvanceDays(2)
	assert.InDelta(t, 0.0, ship.MaintenanceCondition, 1e-9)
	assert.True(t, w.lastEventMatching("Maintenance overdue: Runner"))
}

func TestMaintenanceConsumesSuppliesAtDock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableShipMaintenance = true
	w := newTestWorldCfg(cfg)

	c := w.addColony(w.faction, w.body)
	c.Minerals["Duranium"] = 10

	ship := w.addShip(w.faction, "hauler", w.body.PositionMkm)
	ship.MaintenanceCondition = 0.9

	w.s.AdvanceDays(1)
	// 100 tons at 0.0005 tons/ton/day
	assert.InDelta(t, 9.95, c.Minerals["Duranium"], 1e-9)
	assert.InDelta(t, 0.95, ship.MaintenanceCondition, 1e-9)
}

func TestShipyardRepairsDockedShip(t *testing.T) {
	w := newTestWorld()
	c := w.addColony(w.faction, w.body)
	c.Installations["shipyard"] = 1

	ship := w.addShip(w.faction, "runner", w.body.PositionMkm)
	ship.Hp = 3
	ship.Integrity.Sensors = 0.5

	w.s.AdvanceDays(1)
	assert.InDelta(t, 8.0, ship.Hp, 1e-9)
	assert.InDelta(t, 0.6, ship.Integrity.Sensors, 1e-9)

	w.s.AdvanceDays(1)
	assert.InDelta(t, 10.0, ship.Hp, 1e-9, "repairs cap at design hull")
}

func TestCrewTrainingAccrues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableCrewExperience = true
	w := newTestWorldCfg(cfg)

	ship := w.addShip(w.faction, "runner", core.Vec2{})
	w.s.AdvanceDays(3)
	assert.InDelta(t, 3.0, ship.CrewGradePoints, 1e-9)
}
