package state

import (
	"github.com/nebula4x/simcore/core"
)

// BodyType classifies orbital bodies
type BodyType uint8

const (
	BodyStar BodyType = iota
	BodyPlanet
	BodyMoon
	BodyGasGiant
	BodyAsteroid
	BodyComet
)

// StormWindow is an active nebula storm in a system
type StormWindow struct {
	PeakIntensity float64   `json:"peak_intensity"`
	StartDay      core.Date `json:"start_day"`
	EndDay        core.Date `json:"end_day"`
}

// StarSystem is one star system on the galaxy map
type StarSystem struct {
	Id            core.Id   `json:"id"`
	Name          string    `json:"name"`
	GalaxyPos     core.Vec2 `json:"galaxy_pos"`
	Bodies        []core.Id `json:"bodies,omitempty"`
	JumpPoints    []core.Id `json:"jump_points,omitempty"`
	Ships         []core.Id `json:"ships,omitempty"`
	NebulaDensity float64   `json:"nebula_density,omitempty"`
	TradeActivity float64   `json:"trade_activity,omitempty"`

	Storm *StormWindow `json:"storm,omitempty"`
}

// Body is an orbiting object. Orbits are parameterized circles; a zero
// orbit radius pins the body at the system origin.
type Body struct {
	Id                core.Id            `json:"id"`
	Name              string             `json:"name"`
	SystemId          core.Id            `json:"system_id"`
	Type              BodyType           `json:"type"`
	OrbitRadiusMkm    float64            `json:"orbit_radius_mkm"`
	OrbitPeriodDays   float64            `json:"orbit_period_days"`
	OrbitPhaseRadians float64            `json:"orbit_phase_radians"`
	PositionMkm       core.Vec2          `json:"position_mkm"`
	RadiusKm          float64            `json:"radius_km,omitempty"`
	MineralDeposits   map[string]float64 `json:"mineral_deposits,omitempty"`
}

// JumpPoint is one side of a paired gate between systems
type JumpPoint struct {
	Id           core.Id   `json:"id"`
	Name         string    `json:"name"`
	SystemId     core.Id   `json:"system_id"`
	PositionMkm  core.Vec2 `json:"position_mkm"`
	LinkedJumpId core.Id   `json:"linked_jump_id"`
}

// BuildOrder is a queued shipyard job. RefitShipId marks a refit of an
// existing ship instead of a new hull.
type BuildOrder struct {
	DesignId      string  `json:"design_id"`
	TonsRemaining float64 `json:"tons_remaining"`
	RefitShipId   core.Id `json:"refit_ship_id,omitempty"`
}

// InstallationBuildOrder is a queued construction job
type InstallationBuildOrder struct {
	InstallationId    string  `json:"installation_id"`
	QuantityRemaining int     `json:"quantity_remaining"`
	MineralsPaid      bool    `json:"minerals_paid,omitempty"`
	CpRemaining       float64 `json:"cp_remaining,omitempty"`
	Stalled           bool    `json:"stalled,omitempty"`
}

// Colony is a faction settlement on a body
type Colony struct {
	Id                 core.Id            `json:"id"`
	Name               string             `json:"name"`
	FactionId          core.Id            `json:"faction_id"`
	BodyId             core.Id            `json:"body_id"`
	PopulationMillions float64            `json:"population_millions"`
	Installations      map[string]int     `json:"installations,omitempty"`
	Minerals           map[string]float64 `json:"minerals,omitempty"`
	MineralReserves    map[string]float64 `json:"mineral_reserves,omitempty"`
	MineralTargets     map[string]float64 `json:"mineral_targets,omitempty"`

	ConstructionQueue []InstallationBuildOrder `json:"construction_queue,omitempty"`
	ShipyardQueue     []BuildOrder             `json:"shipyard_queue,omitempty"`

	// GroundForces is the garrison strength defending the colony.
	// TroopTrainingQueue holds strength still to be trained; with a
	// garrison target set, training is re-queued automatically and
	// TroopTrainingAutoQueued tracks how much of the queue came from
	// that automation.
	GroundForces            float64 `json:"ground_forces,omitempty"`
	TroopTrainingQueue      float64 `json:"troop_training_queue,omitempty"`
	TroopTrainingAutoQueued float64 `json:"troop_training_auto_queued,omitempty"`
	GarrisonTargetStrength  float64 `json:"garrison_target_strength,omitempty"`

	// DepletedDeposits tracks (resource) depletion warnings already emitted
	DepletedDeposits map[string]bool `json:"depleted_deposits,omitempty"`
}

// GroundBattle is an active invasion of a colony. At most one battle
// runs per colony; battles are keyed by the colony id.
type GroundBattle struct {
	ColonyId          core.Id `json:"colony_id"`
	SystemId          core.Id `json:"system_id"`
	AttackerFactionId core.Id `json:"attacker_faction_id"`
	DefenderFactionId core.Id `json:"defender_faction_id"`
	AttackerStrength  float64 `json:"attacker_strength"`
	DefenderStrength  float64 `json:"defender_strength"`
	DaysFought        int     `json:"days_fought,omitempty"`
}

// SensorMode trades detection range against own signature
type SensorMode uint8

const (
	SensorModeNormal SensorMode = iota
	SensorModePassive
	SensorModeActive
)

// PowerPolicy gates which subsystems draw power
type PowerPolicy struct {
	WeaponsEnabled bool `json:"weapons_enabled"`
	SensorsEnabled bool `json:"sensors_enabled"`
	ShieldsEnabled bool `json:"shields_enabled"`
}

// DefaultPowerPolicy enables everything
func DefaultPowerPolicy() PowerPolicy {
	return PowerPolicy{WeaponsEnabled: true, SensorsEnabled: true, ShieldsEnabled: true}
}

// SubsystemIntegrity holds per-subsystem health in [0,1]
type SubsystemIntegrity struct {
	Engines float64 `json:"engines"`
	Weapons float64 `json:"weapons"`
	Sensors float64 `json:"sensors"`
	Shields float64 `json:"shields"`
}

// FullIntegrity returns all subsystems at 1.0
func FullIntegrity() SubsystemIntegrity {
	return SubsystemIntegrity{Engines: 1, Weapons: 1, Sensors: 1, Shields: 1}
}

// Ship is a mobile unit owned by a faction
type Ship struct {
	Id          core.Id   `json:"id"`
	Name        string    `json:"name"`
	FactionId   core.Id   `json:"faction_id"`
	SystemId    core.Id   `json:"system_id"`
	PositionMkm core.Vec2 `json:"position_mkm"`
	DesignId    string    `json:"design_id"`

	Hp       float64            `json:"hp"`
	Shields  float64            `json:"shields"`
	FuelTons float64            `json:"fuel_tons"`
	Cargo    map[string]float64 `json:"cargo,omitempty"`
	Troops   float64            `json:"troops,omitempty"`

	Integrity            SubsystemIntegrity `json:"integrity"`
	CrewGradePoints      float64            `json:"crew_grade_points,omitempty"`
	MaintenanceCondition float64            `json:"maintenance_condition"`

	SensorMode  SensorMode  `json:"sensor_mode"`
	PowerPolicy PowerPolicy `json:"power_policy"`

	AutoFreight bool `json:"auto_freight,omitempty"`
	AutoExplore bool `json:"auto_explore,omitempty"`
	AutoRefuel  bool `json:"auto_refuel,omitempty"`

	// PrevPositionMkm is the position at the start of the current hour
	// step, used for swept contact detection
	PrevPositionMkm core.Vec2 `json:"prev_position_mkm"`
}

// Contact is a remembered observation of another faction's ship
type Contact struct {
	ShipId              core.Id   `json:"ship_id"`
	SystemId            core.Id   `json:"system_id"`
	LastSeenDay         core.Date `json:"last_seen_day"`
	LastSeenPositionMkm core.Vec2 `json:"last_seen_position_mkm"`
	PrevSeenDay         core.Date `json:"prev_seen_day,omitempty"`
	PrevSeenPositionMkm core.Vec2 `json:"prev_seen_position_mkm"`
	LastSeenName        string    `json:"last_seen_name,omitempty"`
	LastSeenDesignId    string    `json:"last_seen_design_id,omitempty"`
	LastSeenFactionId   core.Id   `json:"last_seen_faction_id,omitempty"`

	LastSeenPositionUncertaintyMkm float64 `json:"last_seen_position_uncertainty_mkm,omitempty"`
}

// DiplomacyStatus is a pairwise stance between factions
type DiplomacyStatus uint8

const (
	StatusHostile DiplomacyStatus = iota
	StatusNeutral
	StatusFriendly
)

// String returns the display name
func (s DiplomacyStatus) String() string {
	switch s {
	case StatusNeutral:
		return "Neutral"
	case StatusFriendly:
		return "Friendly"
	default:
		return "Hostile"
	}
}

// ControlKind marks who drives a faction
type ControlKind uint8

const (
	ControlPlayer ControlKind = iota
	ControlAIPassive
	ControlAIExpansionist
)

// Faction is one empire, player or AI controlled
type Faction struct {
	Id   core.Id     `json:"id"`
	Name string      `json:"name"`
	Kind ControlKind `json:"kind"`

	ResearchPoints         float64  `json:"research_points,omitempty"`
	ActiveResearchId       string   `json:"active_research_id,omitempty"`
	ActiveResearchProgress float64  `json:"active_research_progress,omitempty"`
	ResearchQueue          []string `json:"research_queue,omitempty"`
	KnownTechs             []string `json:"known_techs,omitempty"`
	UnlockedComponents     []string `json:"unlocked_components,omitempty"`
	UnlockedInstallations  []string `json:"unlocked_installations,omitempty"`

	DiscoveredSystems   []core.Id `json:"discovered_systems,omitempty"`
	SurveyedJumpPoints  []core.Id `json:"surveyed_jump_points,omitempty"`
	DiscoveredAnomalies []core.Id `json:"discovered_anomalies,omitempty"`

	ShipContacts map[core.Id]Contact         `json:"ship_contacts,omitempty"`
	Relations    map[core.Id]DiplomacyStatus `json:"relations,omitempty"`

	// FoundingProfile, when set, stamps newly founded colonies with
	// standing automation settings
	FoundingProfile *ColonyFoundingProfile `json:"founding_profile,omitempty"`
}

// ColonyFoundingProfile is a faction's template for new colonies
type ColonyFoundingProfile struct {
	MineralReserves        map[string]float64 `json:"mineral_reserves,omitempty"`
	MineralTargets         map[string]float64 `json:"mineral_targets,omitempty"`
	GarrisonTargetStrength float64            `json:"garrison_target_strength,omitempty"`
}

// HasDiscoveredSystem reports whether the faction knows the system
func (f *Faction) HasDiscoveredSystem(id core.Id) bool {
	for _, s := range f.DiscoveredSystems {
		if s == id {
			return true
		}
	}
	return false
}

// HasSurveyedJumpPoint reports whether the faction surveyed the jump point
func (f *Faction) HasSurveyedJumpPoint(id core.Id) bool {
	for _, s := range f.SurveyedJumpPoints {
		if s == id {
			return true
		}
	}
	return false
}

// KnowsTech reports whether the tech is already researched
func (f *Faction) KnowsTech(id string) bool {
	for _, t := range f.KnownTechs {
		if t == id {
			return true
		}
	}
	return false
}

// Fleet batches same-faction ships for shared orders
type Fleet struct {
	Id           core.Id   `json:"id"`
	FactionId    core.Id   `json:"faction_id"`
	Name         string    `json:"name"`
	ShipIds      []core.Id `json:"ship_ids,omitempty"`
	LeaderShipId core.Id   `json:"leader_ship_id,omitempty"`
}

// TreatyType enumerates bilateral agreements
type TreatyType uint8

const (
	TreatyCeasefire TreatyType = iota
	TreatyAlliance
	TreatyTradeAgreement
	TreatyNonAggression
)

// String returns the display name
func (t TreatyType) String() string {
	switch t {
	case TreatyAlliance:
		return "Alliance"
	case TreatyTradeAgreement:
		return "Trade Agreement"
	case TreatyNonAggression:
		return "Non-Aggression Pact"
	default:
		return "Ceasefire"
	}
}

// Treaty is a bilateral agreement. FactionA < FactionB always.
type Treaty struct {
	Id           core.Id    `json:"id"`
	FactionA     core.Id    `json:"faction_a"`
	FactionB     core.Id    `json:"faction_b"`
	Type         TreatyType `json:"type"`
	DurationDays int        `json:"duration_days"` // -1 = permanent
	CreatedDay   core.Date  `json:"created_day"`
}

// AnomalyKind classifies anomalies for flavor
type AnomalyKind uint8

const (
	AnomalyDerelict AnomalyKind = iota
	AnomalyRuins
	AnomalyPhenomenon
)

// Anomaly is an investigable point of interest
type Anomaly struct {
	Id                core.Id     `json:"id"`
	SystemId          core.Id     `json:"system_id"`
	PositionMkm       core.Vec2   `json:"position_mkm"`
	Kind              AnomalyKind `json:"kind"`
	InvestigationDays float64     `json:"investigation_days"`
	ResearchReward    float64     `json:"research_reward,omitempty"`
	UnlockComponentId string      `json:"unlock_component_id,omitempty"`
	Resolved          bool        `json:"resolved,omitempty"`
	ResolvedByFaction core.Id     `json:"resolved_by_faction_id,omitempty"`
}

// MissileSalvo is an in-flight group of missiles
type MissileSalvo struct {
	Id               core.Id   `json:"id"`
	OriginShipId     core.Id   `json:"origin_ship_id"`
	TargetShipId     core.Id   `json:"target_ship_id"`
	SystemId         core.Id   `json:"system_id"`
	FactionId        core.Id   `json:"faction_id"`
	DamagePerMissile float64   `json:"damage_per_missile"`
	Count            int       `json:"count"`
	PositionMkm      core.Vec2 `json:"position_mkm"`
	SpeedMkmPerDay   float64   `json:"speed_mkm_per_day"`
	LaunchDay        core.Date `json:"launch_day"`
}
