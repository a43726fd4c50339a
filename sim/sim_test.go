package sim

import (
	"github.com/nebula4x/simcore/content"
	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/state"
)

// testDB builds a small content database the tests share
func testDB() *content.DB {
	db := content.NewDB()
	db.Resources["Duranium"] = content.ResourceDef{Id: "Duranium", Name: "Duranium"}
	db.Resources["Sorium"] = content.ResourceDef{Id: "Sorium", Name: "Sorium"}

	db.Installations["mine"] = content.InstallationDef{
		Id: "mine", Name: "Mine",
		Mining:         true,
		ProducesPerDay: map[string]float64{"Duranium": 10},
	}
	db.Installations["shipyard"] = content.InstallationDef{
		Id: "shipyard", Name: "Shipyard",
		ShipyardTonsPerDay: 50,
	}
	db.Installations["lab"] = content.InstallationDef{
		Id: "lab", Name: "Research Lab",
		ResearchPointsPerDay: 10,
	}
	db.Installations["refinery"] = content.InstallationDef{
		Id: "refinery", Name: "Refinery",
		ConsumesPerDay: map[string]float64{"Duranium": 4},
		ProducesPerDay: map[string]float64{"Sorium": 2},
	}
	db.Installations["barracks"] = content.InstallationDef{
		Id: "barracks", Name: "Barracks",
		TroopTrainingPointsPerDay: 5,
	}
	db.Installations["factory"] = content.InstallationDef{
		Id: "factory", Name: "Construction Factory",
		ConstructionPointsPerDay: 10,
		ConstructionCost:         map[string]float64{"Duranium": 20},
		BuildPoints:              30,
	}

	db.Techs["alpha"] = content.TechDef{Id: "alpha", Name: "Alpha Theory", Cost: 10}
	db.Techs["beta"] = content.TechDef{Id: "beta", Name: "Beta Theory", Cost: 20, Prereqs: []string{"alpha"}}
	db.Techs["gamma"] = content.TechDef{Id: "gamma", Name: "Gamma Theory", Cost: 30, Prereqs: []string{"beta"}}

	db.Designs["hauler"] = content.ShipDesign{
		Id: "hauler", Name: "Hauler", Role: content.RoleFreighter,
		MassTons: 100, MaxHp: 20, SpeedKmS: 500, CargoTons: 200,
		BuildCostPerTon: map[string]float64{"Duranium": 1},
	}
	db.Designs["scout"] = content.ShipDesign{
		Id: "scout", Name: "Scout", Role: content.RoleSurveyor,
		MassTons: 50, MaxHp: 10, SpeedKmS: 500,
		SensorRangeMkm: 10,
	}
	db.Designs["runner"] = content.ShipDesign{
		Id: "runner", Name: "Runner", Role: content.RoleFreighter,
		MassTons: 50, MaxHp: 10, SpeedKmS: 500,
	}
	db.Designs["transport"] = content.ShipDesign{
		Id: "transport", Name: "Troop Transport", Role: content.RoleFreighter,
		MassTons: 150, MaxHp: 25, SpeedKmS: 500, TroopCapacity: 100,
	}
	db.Designs["gunship"] = content.ShipDesign{
		Id: "gunship", Name: "Gunship", Role: content.RoleCombatant,
		MassTons: 200, MaxHp: 50, MaxShields: 10, ShieldRegenPerDay: 24,
		SpeedKmS: 500, SensorRangeMkm: 50,
		WeaponDamage: 48, WeaponRangeMkm: 20,
	}
	return db
}

// testWorld wires a simulation with one system, a habitable body and a
// faction, returning the pieces tests reach for most
type testWorld struct {
	s       *Simulation
	system  *state.StarSystem
	body    *state.Body
	faction *state.Faction
}

func newTestWorld() *testWorld {
	return newTestWorldCfg(DefaultConfig())
}

func newTestWorldCfg(cfg Config) *testWorld {
	s := New(testDB(), cfg)
	st := s.State()

	sys := &state.StarSystem{Id: st.AllocateId(), Name: "Haven"}
	st.Systems[sys.Id] = sys

	b := &state.Body{
		Id:       st.AllocateId(),
		Name:     "Haven II",
		SystemId: sys.Id,
		Type:     state.BodyPlanet,
	}
	st.Bodies[b.Id] = b
	sys.Bodies = append(sys.Bodies, b.Id)

	f := &state.Faction{
		Id:                st.AllocateId(),
		Name:              "Terran Accord",
		ShipContacts:      make(map[core.Id]state.Contact),
		Relations:         make(map[core.Id]state.DiplomacyStatus),
		DiscoveredSystems: []core.Id{sys.Id},
	}
	st.Factions[f.Id] = f

	return &testWorld{s: s, system: sys, body: b, faction: f}
}

func (w *testWorld) addFaction(name string) *state.Faction {
	st := w.s.State()
	f := &state.Faction{
		Id:                st.AllocateId(),
		Name:              name,
		ShipContacts:      make(map[core.Id]state.Contact),
		Relations:         make(map[core.Id]state.DiplomacyStatus),
		DiscoveredSystems: []core.Id{w.system.Id},
	}
	st.Factions[f.Id] = f
	return f
}

func (w *testWorld) addColony(f *state.Faction, b *state.Body) *state.Colony {
	st := w.s.State()
	c := &state.Colony{
		Id:                 st.AllocateId(),
		Name:               b.Name,
		FactionId:          f.Id,
		BodyId:             b.Id,
		PopulationMillions: 100,
		Installations:      make(map[string]int),
		Minerals:           make(map[string]float64),
	}
	st.Colonies[c.Id] = c
	return c
}

func (w *testWorld) addShip(f *state.Faction, designId string, pos core.Vec2) *state.Ship {
	st := w.s.State()
	design := w.s.FindDesign(designId)
	ship := &state.Ship{
		Id:                   st.AllocateId(),
		Name:                 design.Name,
		FactionId:            f.Id,
		SystemId:             w.system.Id,
		PositionMkm:          pos,
		PrevPositionMkm:      pos,
		DesignId:             designId,
		Hp:                   design.MaxHp,
		Shields:              design.MaxShields,
		FuelTons:             design.FuelCapacityTons,
		Integrity:            state.FullIntegrity(),
		MaintenanceCondition: 1,
		PowerPolicy:          state.DefaultPowerPolicy(),
	}
	st.Ships[ship.Id] = ship
	w.system.Ships = append(w.system.Ships, ship.Id)
	return ship
}

func (w *testWorld) addSystem(name string) *state.StarSystem {
	st := w.s.State()
	sys := &state.StarSystem{Id: st.AllocateId(), Name: name}
	st.Systems[sys.Id] = sys
	return sys
}

// linkSystems creates a surveyed-ready jump pair between two systems
func (w *testWorld) linkSystems(a, b *state.StarSystem, posA, posB core.Vec2) (*state.JumpPoint, *state.JumpPoint) {
	st := w.s.State()
	ja := &state.JumpPoint{Id: st.AllocateId(), Name: a.Name + " - " + b.Name,
		SystemId: a.Id, PositionMkm: posA}
	jb := &state.JumpPoint{Id: st.AllocateId(), Name: b.Name + " - " + a.Name,
		SystemId: b.Id, PositionMkm: posB}
	ja.LinkedJumpId = jb.Id
	jb.LinkedJumpId = ja.Id
	st.JumpPoints[ja.Id] = ja
	st.JumpPoints[jb.Id] = jb
	a.JumpPoints = append(a.JumpPoints, ja.Id)
	b.JumpPoints = append(b.JumpPoints, jb.Id)
	return ja, jb
}

// lastEventMatching scans the log backwards for a message substring
func (w *testWorld) lastEventMatching(substr string) bool {
	cond := StopCondition{MessageSubstring: substr}
	for i := len(w.s.State().Events.Entries) - 1; i >= 0; i-- {
		if cond.matches(&w.s.State().Events.Entries[i]) {
			return true
		}
	}
	return false
}
