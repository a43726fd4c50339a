package content

// ShipRole classifies a design's intended duty
type ShipRole uint8

const (
	RoleFreighter ShipRole = iota
	RoleCombatant
	RoleSurveyor
	RoleColonizer
	RoleTanker
)

// ResourceDef describes a mineable resource
type ResourceDef struct {
	Id   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ComponentDef is a ship component unlockable through research
type ComponentDef struct {
	Id       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	MassTons float64 `json:"mass_tons" yaml:"mass_tons"`
}

// InstallationDef describes a colony installation. Per-day maps are keyed
// by resource id; absent keys mean zero.
type InstallationDef struct {
	Id   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	Mining         bool               `json:"mining,omitempty" yaml:"mining"`
	ProducesPerDay map[string]float64 `json:"produces_per_day,omitempty" yaml:"produces_per_day"`
	ConsumesPerDay map[string]float64 `json:"consumes_per_day,omitempty" yaml:"consumes_per_day"`

	ConstructionPointsPerDay  float64 `json:"construction_points_per_day,omitempty" yaml:"construction_points_per_day"`
	ResearchPointsPerDay      float64 `json:"research_points_per_day,omitempty" yaml:"research_points_per_day"`
	ShipyardTonsPerDay        float64 `json:"shipyard_tons_per_day,omitempty" yaml:"shipyard_tons_per_day"`
	SensorRangeMkm            float64 `json:"sensor_range_mkm,omitempty" yaml:"sensor_range_mkm"`
	TroopTrainingPointsPerDay float64 `json:"troop_training_points_per_day,omitempty" yaml:"troop_training_points_per_day"`

	// ConstructionCost is the mineral price paid once per unit built
	ConstructionCost map[string]float64 `json:"construction_cost,omitempty" yaml:"construction_cost"`
	BuildPoints      float64            `json:"build_points,omitempty" yaml:"build_points"`
}

// TechEffectKind selects what a completed tech grants
type TechEffectKind uint8

const (
	EffectUnlockComponent TechEffectKind = iota
	EffectUnlockInstallation
	EffectFactionOutputBonus
)

// TechEffect is one grant applied when its tech completes
type TechEffect struct {
	Kind           TechEffectKind `json:"kind" yaml:"kind"`
	ComponentId    string         `json:"component_id,omitempty" yaml:"component_id"`
	InstallationId string         `json:"installation_id,omitempty" yaml:"installation_id"`
	// Category for output bonuses: "mining", "research" or "industry"
	Category string  `json:"category,omitempty" yaml:"category"`
	Amount   float64 `json:"amount,omitempty" yaml:"amount"`
}

// TechDef is a node in the research prerequisite DAG
type TechDef struct {
	Id      string       `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	Cost    float64      `json:"cost" yaml:"cost"`
	Prereqs []string     `json:"prereqs,omitempty" yaml:"prereqs"`
	Effects []TechEffect `json:"effects,omitempty" yaml:"effects"`
}

// ShipDesign carries every derived stat a ship takes from its blueprint
type ShipDesign struct {
	Id   string   `json:"id" yaml:"id"`
	Name string   `json:"name" yaml:"name"`
	Role ShipRole `json:"role" yaml:"role"`

	MassTons          float64 `json:"mass_tons" yaml:"mass_tons"`
	MaxHp             float64 `json:"max_hp" yaml:"max_hp"`
	MaxShields        float64 `json:"max_shields,omitempty" yaml:"max_shields"`
	ShieldRegenPerDay float64 `json:"shield_regen_per_day,omitempty" yaml:"shield_regen_per_day"`
	SpeedKmS          float64 `json:"speed_km_s" yaml:"speed_km_s"`
	CargoTons         float64 `json:"cargo_tons,omitempty" yaml:"cargo_tons"`
	FuelCapacityTons  float64 `json:"fuel_capacity_tons,omitempty" yaml:"fuel_capacity_tons"`
	FuelUsePerMkm     float64 `json:"fuel_use_per_mkm,omitempty" yaml:"fuel_use_per_mkm"`

	SensorRangeMkm      float64 `json:"sensor_range_mkm,omitempty" yaml:"sensor_range_mkm"`
	SignatureMultiplier float64 `json:"signature_multiplier,omitempty" yaml:"signature_multiplier"`
	EcmStrength         float64 `json:"ecm_strength,omitempty" yaml:"ecm_strength"`
	EccmStrength        float64 `json:"eccm_strength,omitempty" yaml:"eccm_strength"`

	WeaponDamage   float64 `json:"weapon_damage,omitempty" yaml:"weapon_damage"`
	WeaponRangeMkm float64 `json:"weapon_range_mkm,omitempty" yaml:"weapon_range_mkm"`

	MissileDamage      float64 `json:"missile_damage,omitempty" yaml:"missile_damage"`
	MissileCount       int     `json:"missile_count,omitempty" yaml:"missile_count"`
	MissileSpeedMkmDay float64 `json:"missile_speed_mkm_per_day,omitempty" yaml:"missile_speed_mkm_per_day"`
	MissileRangeMkm    float64 `json:"missile_range_mkm,omitempty" yaml:"missile_range_mkm"`

	PointDefenseDamage   float64 `json:"point_defense_damage,omitempty" yaml:"point_defense_damage"`
	PointDefenseRangeMkm float64 `json:"point_defense_range_mkm,omitempty" yaml:"point_defense_range_mkm"`

	PowerGeneration float64 `json:"power_generation,omitempty" yaml:"power_generation"`
	PowerUseWeapons float64 `json:"power_use_weapons,omitempty" yaml:"power_use_weapons"`
	PowerUseSensors float64 `json:"power_use_sensors,omitempty" yaml:"power_use_sensors"`
	PowerUseShields float64 `json:"power_use_shields,omitempty" yaml:"power_use_shields"`

	ColonyCapacityMillions float64 `json:"colony_capacity_millions,omitempty" yaml:"colony_capacity_millions"`
	TroopCapacity          float64 `json:"troop_capacity,omitempty" yaml:"troop_capacity"`

	// BuildCostPerTon prices shipyard work per ton built, keyed by resource
	BuildCostPerTon map[string]float64 `json:"build_cost_per_ton,omitempty" yaml:"build_cost_per_ton"`

	ComponentIds []string `json:"component_ids,omitempty" yaml:"component_ids"`
}

// SignatureOrDefault returns the design signature clamped to (0,1], with
// 1.0 for unset
func (d *ShipDesign) SignatureOrDefault() float64 {
	s := d.SignatureMultiplier
	if s <= 0 || s > 1 {
		return 1.0
	}
	return s
}
