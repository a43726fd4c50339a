package sim

// Config holds every tuning knob the simulation recognizes. The zero
// value is not usable; start from DefaultConfig.
type Config struct {
	// Time
	SecondsPerDay float64 `json:"seconds_per_day" mapstructure:"seconds_per_day"`

	// Movement
	ArrivalEpsilonMkm    float64 `json:"arrival_epsilon_mkm" mapstructure:"arrival_epsilon_mkm"`
	DockingRangeMkm      float64 `json:"docking_range_mkm" mapstructure:"docking_range_mkm"`
	EnableFuelUse        bool    `json:"enable_fuel_use" mapstructure:"enable_fuel_use"`
	RestrictToDiscovered bool    `json:"restrict_to_discovered" mapstructure:"restrict_to_discovered"`

	// Sensors
	SensorModePassiveRangeMultiplier     float64 `json:"sensor_mode_passive_range_multiplier" mapstructure:"sensor_mode_passive_range_multiplier"`
	SensorModeActiveRangeMultiplier      float64 `json:"sensor_mode_active_range_multiplier" mapstructure:"sensor_mode_active_range_multiplier"`
	SensorModePassiveSignatureMultiplier float64 `json:"sensor_mode_passive_signature_multiplier" mapstructure:"sensor_mode_passive_signature_multiplier"`
	SensorModeActiveSignatureMultiplier  float64 `json:"sensor_mode_active_signature_multiplier" mapstructure:"sensor_mode_active_signature_multiplier"`
	ContactPredictionMaxDays             float64 `json:"contact_prediction_max_days" mapstructure:"contact_prediction_max_days"`
	ContactMaxAgeDays                    int     `json:"contact_max_age_days" mapstructure:"contact_max_age_days"`
	EnableBodyOcclusionSensors           bool    `json:"enable_body_occlusion_sensors" mapstructure:"enable_body_occlusion_sensors"`
	BodyOcclusionPaddingMkm              float64 `json:"body_occlusion_padding_mkm" mapstructure:"body_occlusion_padding_mkm"`
	EnableContactUncertainty             bool    `json:"enable_contact_uncertainty" mapstructure:"enable_contact_uncertainty"`

	// Combat
	EnableCombat               bool    `json:"enable_combat" mapstructure:"enable_combat"`
	EnableBeamHitChance        bool    `json:"enable_beam_hit_chance" mapstructure:"enable_beam_hit_chance"`
	BeamBaseHitChance          float64 `json:"beam_base_hit_chance" mapstructure:"beam_base_hit_chance"`
	BeamRangePenaltyAtMax      float64 `json:"beam_range_penalty_at_max" mapstructure:"beam_range_penalty_at_max"`
	BeamMinHitChance           float64 `json:"beam_min_hit_chance" mapstructure:"beam_min_hit_chance"`
	EnableBodyOcclusionWeapons bool    `json:"enable_body_occlusion_weapons" mapstructure:"enable_body_occlusion_weapons"`
	EnableSubsystemDamage      bool    `json:"enable_subsystem_damage" mapstructure:"enable_subsystem_damage"`
	SubsystemDamageChance      float64 `json:"subsystem_damage_chance" mapstructure:"subsystem_damage_chance"`
	MissileHp                  float64 `json:"missile_hp" mapstructure:"missile_hp"`
	EnableBeamScatterSplash    bool    `json:"enable_beam_scatter_splash" mapstructure:"enable_beam_scatter_splash"`
	BeamSplashRadiusMkm        float64 `json:"beam_splash_radius_mkm" mapstructure:"beam_splash_radius_mkm"`
	BeamSplashFraction         float64 `json:"beam_splash_fraction" mapstructure:"beam_splash_fraction"`
	EnableBeamLosAttenuation   bool    `json:"enable_beam_los_attenuation" mapstructure:"enable_beam_los_attenuation"`

	// Ground combat
	TroopStrengthPerTrainingPoint    float64 `json:"troop_strength_per_training_point" mapstructure:"troop_strength_per_training_point"`
	TroopTrainingDuraniumPerStrength float64 `json:"troop_training_duranium_per_strength" mapstructure:"troop_training_duranium_per_strength"`
	GroundCombatLossFactor           float64 `json:"ground_combat_loss_factor" mapstructure:"ground_combat_loss_factor"`
	GroundCombatFatiguePerDay        float64 `json:"ground_combat_fatigue_per_day" mapstructure:"ground_combat_fatigue_per_day"`
	GroundCombatFatigueMinMultiplier float64 `json:"ground_combat_fatigue_min_multiplier" mapstructure:"ground_combat_fatigue_min_multiplier"`

	// Economy
	EnableMiningScarcityPriority        bool    `json:"enable_mining_scarcity_priority" mapstructure:"enable_mining_scarcity_priority"`
	MiningScarcityBufferDays            float64 `json:"mining_scarcity_buffer_days" mapstructure:"mining_scarcity_buffer_days"`
	MiningScarcityNeedBoost             float64 `json:"mining_scarcity_need_boost" mapstructure:"mining_scarcity_need_boost"`
	ShipyardBaseRateTonsPerDay          float64 `json:"shipyard_base_rate_tons_per_day" mapstructure:"shipyard_base_rate_tons_per_day"`
	ShipRefitTonsMultiplier             float64 `json:"ship_refit_tons_multiplier" mapstructure:"ship_refit_tons_multiplier"`
	AutoFreightMinTransferTons          float64 `json:"auto_freight_min_transfer_tons" mapstructure:"auto_freight_min_transfer_tons"`
	AutoFreightMaxTakeFractionOfSurplus float64 `json:"auto_freight_max_take_fraction_of_surplus" mapstructure:"auto_freight_max_take_fraction_of_surplus"`
	AutoFreightMultiMineral             bool    `json:"auto_freight_multi_mineral" mapstructure:"auto_freight_multi_mineral"`
	AutoFreightIndustryInputBufferDays  float64 `json:"auto_freight_industry_input_buffer_days" mapstructure:"auto_freight_industry_input_buffer_days"`

	// Blockades
	EnableBlockades             bool    `json:"enable_blockades" mapstructure:"enable_blockades"`
	BlockadeRadiusMkm           float64 `json:"blockade_radius_mkm" mapstructure:"blockade_radius_mkm"`
	BlockadeMaxOutputPenalty    float64 `json:"blockade_max_output_penalty" mapstructure:"blockade_max_output_penalty"`
	BlockadeBaseResistancePower float64 `json:"blockade_base_resistance_power" mapstructure:"blockade_base_resistance_power"`

	// Ship upkeep
	EnableShipMaintenance           bool    `json:"enable_ship_maintenance" mapstructure:"enable_ship_maintenance"`
	ShipMaintenanceResourceId       string  `json:"ship_maintenance_resource_id" mapstructure:"ship_maintenance_resource_id"`
	ShipMaintenanceTonsPerDayPerTon float64 `json:"ship_maintenance_tons_per_day_per_mass_ton" mapstructure:"ship_maintenance_tons_per_day_per_mass_ton"`
	ShipMaintenanceRecoveryPerDay   float64 `json:"ship_maintenance_recovery_per_day" mapstructure:"ship_maintenance_recovery_per_day"`
	ShipMaintenanceDecayPerDay      float64 `json:"ship_maintenance_decay_per_day" mapstructure:"ship_maintenance_decay_per_day"`
	RepairHpPerDayPerShipyard       float64 `json:"repair_hp_per_day_per_shipyard" mapstructure:"repair_hp_per_day_per_shipyard"`

	// Crew
	EnableCrewExperience           bool    `json:"enable_crew_experience" mapstructure:"enable_crew_experience"`
	CrewInitialGradePoints         float64 `json:"crew_initial_grade_points" mapstructure:"crew_initial_grade_points"`
	CrewTrainingPointsMultiplier   float64 `json:"crew_training_points_multiplier" mapstructure:"crew_training_points_multiplier"`
	CrewCombatGradePointsPerDamage float64 `json:"crew_combat_grade_points_per_damage" mapstructure:"crew_combat_grade_points_per_damage"`

	// Population
	EnablePopulationGrowth      bool    `json:"enable_population_growth" mapstructure:"enable_population_growth"`
	PopulationGrowthRatePerYear float64 `json:"population_growth_rate_per_year" mapstructure:"population_growth_rate_per_year"`

	// Environment
	EnableNebulaDrag                   bool    `json:"enable_nebula_drag" mapstructure:"enable_nebula_drag"`
	NebulaDragSpeedPenaltyAtMaxDensity float64 `json:"nebula_drag_speed_penalty_at_max_density" mapstructure:"nebula_drag_speed_penalty_at_max_density"`
	EnableNebulaMicrofields            bool    `json:"enable_nebula_microfields" mapstructure:"enable_nebula_microfields"`
	NebulaMicrofieldStrength           float64 `json:"nebula_microfield_strength" mapstructure:"nebula_microfield_strength"`
	NebulaMicrofieldScaleMkm           float64 `json:"nebula_microfield_scale_mkm" mapstructure:"nebula_microfield_scale_mkm"`
	NebulaMicrofieldWarpScaleMkm       float64 `json:"nebula_microfield_warp_scale_mkm" mapstructure:"nebula_microfield_warp_scale_mkm"`
	NebulaMicrofieldFilamentMix        float64 `json:"nebula_microfield_filament_mix" mapstructure:"nebula_microfield_filament_mix"`
	NebulaMicrofieldSharpness          float64 `json:"nebula_microfield_sharpness" mapstructure:"nebula_microfield_sharpness"`
	EnableNebulaStorms                 bool    `json:"enable_nebula_storms" mapstructure:"enable_nebula_storms"`
	NebulaStormDailyChanceBase         float64 `json:"nebula_storm_daily_chance_base" mapstructure:"nebula_storm_daily_chance_base"`
	NebulaStormDensityExponent         float64 `json:"nebula_storm_density_exponent" mapstructure:"nebula_storm_density_exponent"`
	NebulaStormMinDurationDays         int     `json:"nebula_storm_min_duration_days" mapstructure:"nebula_storm_min_duration_days"`
	NebulaStormMaxDurationDays         int     `json:"nebula_storm_max_duration_days" mapstructure:"nebula_storm_max_duration_days"`
	EnableNebulaStormCells             bool    `json:"enable_nebula_storm_cells" mapstructure:"enable_nebula_storm_cells"`
	EnableJumpPointPhenomena           bool    `json:"enable_jump_point_phenomena" mapstructure:"enable_jump_point_phenomena"`
	JumpPointPhenomenaStrength         float64 `json:"jump_point_phenomena_strength" mapstructure:"jump_point_phenomena_strength"`
	EnableAnomalies                    bool    `json:"enable_anomalies" mapstructure:"enable_anomalies"`
	AnomalyDetectionRangeMultiplier    float64 `json:"anomaly_detection_range_multiplier" mapstructure:"anomaly_detection_range_multiplier"`

	// Events
	MaxEvents                              int     `json:"max_events" mapstructure:"max_events"`
	CombatDamageEventMinAbs                float64 `json:"combat_damage_event_min_abs" mapstructure:"combat_damage_event_min_abs"`
	CombatDamageEventMinFraction           float64 `json:"combat_damage_event_min_fraction" mapstructure:"combat_damage_event_min_fraction"`
	CombatDamageEventWarnRemainingFraction float64 `json:"combat_damage_event_warn_remaining_fraction" mapstructure:"combat_damage_event_warn_remaining_fraction"`
}

// DefaultConfig returns the documented defaults
func DefaultConfig() Config {
	return Config{
		SecondsPerDay: 86400,

		ArrivalEpsilonMkm:    1e-6,
		DockingRangeMkm:      3.0,
		EnableFuelUse:        false,
		RestrictToDiscovered: true,

		SensorModePassiveRangeMultiplier:     0.6,
		SensorModeActiveRangeMultiplier:      1.5,
		SensorModePassiveSignatureMultiplier: 0.8,
		SensorModeActiveSignatureMultiplier:  1.5,
		ContactPredictionMaxDays:             30,
		ContactMaxAgeDays:                    180,
		EnableBodyOcclusionSensors:           true,
		BodyOcclusionPaddingMkm:              0.05,
		EnableContactUncertainty:             false,

		EnableCombat:               true,
		EnableBeamHitChance:        true,
		BeamBaseHitChance:          0.95,
		BeamRangePenaltyAtMax:      0.40,
		BeamMinHitChance:           0.05,
		EnableBodyOcclusionWeapons: true,
		EnableSubsystemDamage:      false,
		SubsystemDamageChance:      0.25,
		MissileHp:                  1.0,
		EnableBeamScatterSplash:    false,
		BeamSplashRadiusMkm:        5.0,
		BeamSplashFraction:         0.25,
		EnableBeamLosAttenuation:   false,

		TroopStrengthPerTrainingPoint:    1.0,
		TroopTrainingDuraniumPerStrength: 0,
		GroundCombatLossFactor:           0.1,
		GroundCombatFatiguePerDay:        0,
		GroundCombatFatigueMinMultiplier: 0.25,

		EnableMiningScarcityPriority:        true,
		MiningScarcityBufferDays:            5.0,
		MiningScarcityNeedBoost:             2.0,
		ShipyardBaseRateTonsPerDay:          50.0,
		ShipRefitTonsMultiplier:             0.5,
		AutoFreightMinTransferTons:          10.0,
		AutoFreightMaxTakeFractionOfSurplus: 0.5,
		AutoFreightMultiMineral:             true,
		AutoFreightIndustryInputBufferDays:  5.0,

		EnableBlockades:             false,
		BlockadeRadiusMkm:           50.0,
		BlockadeMaxOutputPenalty:    0.75,
		BlockadeBaseResistancePower: 10.0,

		EnableShipMaintenance:           false,
		ShipMaintenanceResourceId:       "Duranium",
		ShipMaintenanceTonsPerDayPerTon: 0.0005,
		ShipMaintenanceRecoveryPerDay:   0.05,
		ShipMaintenanceDecayPerDay:      0.02,
		RepairHpPerDayPerShipyard:       5.0,

		EnableCrewExperience:           false,
		CrewInitialGradePoints:         0,
		CrewTrainingPointsMultiplier:   1.0,
		CrewCombatGradePointsPerDamage: 0.1,

		EnablePopulationGrowth:      true,
		PopulationGrowthRatePerYear: 0.02,

		EnableNebulaDrag:                   true,
		NebulaDragSpeedPenaltyAtMaxDensity: 0.6,
		EnableNebulaMicrofields:            false,
		NebulaMicrofieldStrength:           0.28,
		NebulaMicrofieldScaleMkm:           900.0,
		NebulaMicrofieldWarpScaleMkm:       2600.0,
		NebulaMicrofieldFilamentMix:        0.65,
		NebulaMicrofieldSharpness:          1.25,
		EnableNebulaStorms:                 false,
		NebulaStormDailyChanceBase:         0.02,
		NebulaStormDensityExponent:         1.5,
		NebulaStormMinDurationDays:         3,
		NebulaStormMaxDurationDays:         15,
		EnableNebulaStormCells:             false,
		EnableJumpPointPhenomena:           false,
		JumpPointPhenomenaStrength:         1.0,
		EnableAnomalies:                    true,
		AnomalyDetectionRangeMultiplier:    0.5,

		MaxEvents:                              1000,
		CombatDamageEventMinAbs:                1.0,
		CombatDamageEventMinFraction:           0.10,
		CombatDamageEventWarnRemainingFraction: 0.25,
	}
}
