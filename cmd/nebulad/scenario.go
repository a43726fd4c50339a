package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nebula4x/simcore/content"
	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/state"
)

// Scenario is the yaml shape of a starting setup: content definitions
// plus the initial world
type Scenario struct {
	Name      string `yaml:"name"`
	StartDate string `yaml:"start_date"` // YYYY-MM-DD

	Resources     []content.ResourceDef     `yaml:"resources"`
	Components    []content.ComponentDef    `yaml:"components"`
	Installations []content.InstallationDef `yaml:"installations"`
	Techs         []content.TechDef         `yaml:"techs"`
	Designs       []content.ShipDesign      `yaml:"designs"`

	Systems  []scenarioSystem  `yaml:"systems"`
	Factions []scenarioFaction `yaml:"factions"`
}

type scenarioSystem struct {
	Name          string           `yaml:"name"`
	NebulaDensity float64          `yaml:"nebula_density"`
	Bodies        []scenarioBody   `yaml:"bodies"`
	JumpsTo       []string         `yaml:"jumps_to"` // system names, bidirectional
	JumpPositions []scenarioCoords `yaml:"jump_positions"`
}

type scenarioBody struct {
	Name            string             `yaml:"name"`
	Type            string             `yaml:"type"`
	OrbitRadiusMkm  float64            `yaml:"orbit_radius_mkm"`
	OrbitPeriodDays float64            `yaml:"orbit_period_days"`
	OrbitPhase      float64            `yaml:"orbit_phase"`
	RadiusKm        float64            `yaml:"radius_km"`
	Minerals        map[string]float64 `yaml:"minerals"`
}

type scenarioCoords struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type scenarioFaction struct {
	Name     string           `yaml:"name"`
	Control  string           `yaml:"control"`
	Knows    []string         `yaml:"known_techs"`
	Queue    []string         `yaml:"research_queue"`
	Colonies []scenarioColony `yaml:"colonies"`
	Ships    []scenarioShip   `yaml:"ships"`
}

type scenarioColony struct {
	Body          string             `yaml:"body"`
	Population    float64            `yaml:"population_millions"`
	Installations map[string]int     `yaml:"installations"`
	Minerals      map[string]float64 `yaml:"minerals"`
}

type scenarioShip struct {
	Name   string         `yaml:"name"`
	Design string         `yaml:"design"`
	System string         `yaml:"system"`
	Pos    scenarioCoords `yaml:"position_mkm"`
}

// LoadScenario parses a scenario file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return &sc, nil
}

// BuildContent assembles the content database from the scenario
func (sc *Scenario) BuildContent() *content.DB {
	db := content.NewDB()
	for _, r := range sc.Resources {
		db.Resources[r.Id] = r
	}
	for _, c := range sc.Components {
		db.Components[c.Id] = c
	}
	for _, inst := range sc.Installations {
		db.Installations[inst.Id] = inst
	}
	for _, t := range sc.Techs {
		db.Techs[t.Id] = t
	}
	for _, d := range sc.Designs {
		db.Designs[d.Id] = d
	}
	return db
}

// BuildState assembles the initial world from the scenario
func (sc *Scenario) BuildState() (*state.GameState, error) {
	st := state.NewGameState()

	if sc.StartDate != "" {
		var y, m, d int
		if _, err := fmt.Sscanf(sc.StartDate, "%d-%d-%d", &y, &m, &d); err != nil {
			return nil, fmt.Errorf("bad start_date %q: %w", sc.StartDate, err)
		}
		st.Date = core.FromYMD(y, m, d)
	}

	systemsByName := make(map[string]*state.StarSystem)
	bodiesByName := make(map[string]*state.Body)

	for _, ss := range sc.Systems {
		sys := &state.StarSystem{
			Id:            st.AllocateId(),
			Name:          ss.Name,
			NebulaDensity: ss.NebulaDensity,
		}
		st.Systems[sys.Id] = sys
		systemsByName[ss.Name] = sys

		for _, sb := range ss.Bodies {
			b := &state.Body{
				Id:                st.AllocateId(),
				Name:              sb.Name,
				SystemId:          sys.Id,
				Type:              parseBodyType(sb.Type),
				OrbitRadiusMkm:    sb.OrbitRadiusMkm,
				OrbitPeriodDays:   sb.OrbitPeriodDays,
				OrbitPhaseRadians: sb.OrbitPhase,
				RadiusKm:          sb.RadiusKm,
			}
			if len(sb.Minerals) > 0 {
				b.MineralDeposits = make(map[string]float64, len(sb.Minerals))
				for k, v := range sb.Minerals {
					b.MineralDeposits[k] = v
				}
			}
			st.Bodies[b.Id] = b
			sys.Bodies = append(sys.Bodies, b.Id)
			bodiesByName[sb.Name] = b
		}
	}

	// jump links, bidirectional and deduplicated by name pair
	linked := make(map[string]bool)
	for i, ss := range sc.Systems {
		from := systemsByName[ss.Name]
		for j, destName := range ss.JumpsTo {
			dest, ok := systemsByName[destName]
			if !ok {
				return nil, fmt.Errorf("jump from %s to unknown system %s", ss.Name, destName)
			}
			key := ss.Name + "\x00" + destName
			rkey := destName + "\x00" + ss.Name
			if linked[key] || linked[rkey] {
				continue
			}
			linked[key] = true

			var pos core.Vec2
			if j < len(ss.JumpPositions) {
				pos = core.Vec2{X: ss.JumpPositions[j].X, Y: ss.JumpPositions[j].Y}
			} else {
				pos = core.Vec2{X: 1000 + 100*float64(i), Y: 100 * float64(j)}
			}

			a := &state.JumpPoint{
				Id:          st.AllocateId(),
				Name:        fmt.Sprintf("%s - %s", ss.Name, destName),
				SystemId:    from.Id,
				PositionMkm: pos,
			}
			b := &state.JumpPoint{
				Id:          st.AllocateId(),
				Name:        fmt.Sprintf("%s - %s", destName, ss.Name),
				SystemId:    dest.Id,
				PositionMkm: pos.Scale(-1),
			}
			a.LinkedJumpId = b.Id
			b.LinkedJumpId = a.Id
			st.JumpPoints[a.Id] = a
			st.JumpPoints[b.Id] = b
			from.JumpPoints = append(from.JumpPoints, a.Id)
			dest.JumpPoints = append(dest.JumpPoints, b.Id)
		}
	}

	for _, sf := range sc.Factions {
		f := &state.Faction{
			Id:            st.AllocateId(),
			Name:          sf.Name,
			Kind:          parseControlKind(sf.Control),
			KnownTechs:    append([]string(nil), sf.Knows...),
			ResearchQueue: append([]string(nil), sf.Queue...),
			ShipContacts:  make(map[core.Id]state.Contact),
			Relations:     make(map[core.Id]state.DiplomacyStatus),
		}
		st.Factions[f.Id] = f

		for _, sc2 := range sf.Colonies {
			b, ok := bodiesByName[sc2.Body]
			if !ok {
				return nil, fmt.Errorf("colony on unknown body %s", sc2.Body)
			}
			c := &state.Colony{
				Id:                 st.AllocateId(),
				Name:               b.Name,
				FactionId:          f.Id,
				BodyId:             b.Id,
				PopulationMillions: sc2.Population,
				Installations:      make(map[string]int),
				Minerals:           make(map[string]float64),
			}
			for k, v := range sc2.Installations {
				c.Installations[k] = v
			}
			for k, v := range sc2.Minerals {
				c.Minerals[k] = v
			}
			st.Colonies[c.Id] = c
			if !f.HasDiscoveredSystem(b.SystemId) {
				f.DiscoveredSystems = append(f.DiscoveredSystems, b.SystemId)
			}
		}

		for _, ss := range sf.Ships {
			sys, ok := systemsByName[ss.System]
			if !ok {
				return nil, fmt.Errorf("ship %s in unknown system %s", ss.Name, ss.System)
			}
			hp, shields, fuel := 1.0, 0.0, 0.0
			for _, d := range sc.Designs {
				if d.Id == ss.Design {
					hp = d.MaxHp
					shields = d.MaxShields
					fuel = d.FuelCapacityTons
					break
				}
			}
			ship := &state.Ship{
				Id:                   st.AllocateId(),
				Name:                 ss.Name,
				FactionId:            f.Id,
				SystemId:             sys.Id,
				PositionMkm:          core.Vec2{X: ss.Pos.X, Y: ss.Pos.Y},
				PrevPositionMkm:      core.Vec2{X: ss.Pos.X, Y: ss.Pos.Y},
				DesignId:             ss.Design,
				Hp:                   hp,
				Shields:              shields,
				FuelTons:             fuel,
				Integrity:            state.FullIntegrity(),
				MaintenanceCondition: 1,
				PowerPolicy:          state.DefaultPowerPolicy(),
			}
			st.Ships[ship.Id] = ship
			sys.Ships = append(sys.Ships, ship.Id)
			if !f.HasDiscoveredSystem(sys.Id) {
				f.DiscoveredSystems = append(f.DiscoveredSystems, sys.Id)
			}
		}
	}

	return st, nil
}

func parseBodyType(s string) state.BodyType {
	switch s {
	case "star":
		return state.BodyStar
	case "moon":
		return state.BodyMoon
	case "asteroid":
		return state.BodyAsteroid
	case "gas_giant":
		return state.BodyGasGiant
	case "comet":
		return state.BodyComet
	default:
		return state.BodyPlanet
	}
}

func parseControlKind(s string) state.ControlKind {
	switch s {
	case "ai", "ai_passive":
		return state.ControlAIPassive
	case "ai_expansionist":
		return state.ControlAIExpansionist
	default:
		return state.ControlPlayer
	}
}
