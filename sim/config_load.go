package sim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig reads a config file into a Config. Missing file is not an
// error; the documented defaults apply. Supported formats are whatever
// viper detects from the extension (toml, yaml, json).
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	registerDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return DefaultConfig(), fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func registerDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("seconds_per_day", def.SecondsPerDay)
	v.SetDefault("arrival_epsilon_mkm", def.ArrivalEpsilonMkm)
	v.SetDefault("docking_range_mkm", def.DockingRangeMkm)
	v.SetDefault("enable_fuel_use", def.EnableFuelUse)
	v.SetDefault("restrict_to_discovered", def.RestrictToDiscovered)

	v.SetDefault("sensor_mode_passive_range_multiplier", def.SensorModePassiveRangeMultiplier)
	v.SetDefault("sensor_mode_active_range_multiplier", def.SensorModeActiveRangeMultiplier)
	v.SetDefault("sensor_mode_passive_signature_multiplier", def.SensorModePassiveSignatureMultiplier)
	v.SetDefault("sensor_mode_active_signature_multiplier", def.SensorModeActiveSignatureMultiplier)
	v.SetDefault("contact_prediction_max_days", def.ContactPredictionMaxDays)
	v.SetDefault("contact_max_age_days", def.ContactMaxAgeDays)
	v.SetDefault("enable_body_occlusion_sensors", def.EnableBodyOcclusionSensors)
	v.SetDefault("body_occlusion_padding_mkm", def.BodyOcclusionPaddingMkm)
	v.SetDefault("enable_contact_uncertainty", def.EnableContactUncertainty)

	v.SetDefault("enable_combat", def.EnableCombat)
	v.SetDefault("enable_beam_hit_chance", def.EnableBeamHitChance)
	v.SetDefault("beam_base_hit_chance", def.BeamBaseHitChance)
	v.SetDefault("beam_range_penalty_at_max", def.BeamRangePenaltyAtMax)
	v.SetDefault("beam_min_hit_chance", def.BeamMinHitChance)
	v.SetDefault("enable_body_occlusion_weapons", def.EnableBodyOcclusionWeapons)
	v.SetDefault("enable_subsystem_damage", def.EnableSubsystemDamage)
	v.SetDefault("subsystem_damage_chance", def.SubsystemDamageChance)
	v.SetDefault("missile_hp", def.MissileHp)
	v.SetDefault("enable_beam_scatter_splash", def.EnableBeamScatterSplash)
	v.SetDefault("beam_splash_radius_mkm", def.BeamSplashRadiusMkm)
	v.SetDefault("beam_splash_fraction", def.BeamSplashFraction)
	v.SetDefault("enable_beam_los_attenuation", def.EnableBeamLosAttenuation)

	v.SetDefault("troop_strength_per_training_point", def.TroopStrengthPerTrainingPoint)
	v.SetDefault("troop_training_duranium_per_strength", def.TroopTrainingDuraniumPerStrength)
	v.SetDefault("ground_combat_loss_factor", def.GroundCombatLossFactor)
	v.SetDefault("ground_combat_fatigue_per_day", def.GroundCombatFatiguePerDay)
	v.SetDefault("ground_combat_fatigue_min_multiplier", def.GroundCombatFatigueMinMultiplier)

	v.SetDefault("enable_mining_scarcity_priority", def.EnableMiningScarcityPriority)
	v.SetDefault("mining_scarcity_buffer_days", def.MiningScarcityBufferDays)
	v.SetDefault("mining_scarcity_need_boost", def.MiningScarcityNeedBoost)
	v.SetDefault("shipyard_base_rate_tons_per_day", def.ShipyardBaseRateTonsPerDay)
	v.SetDefault("ship_refit_tons_multiplier", def.ShipRefitTonsMultiplier)
	v.SetDefault("auto_freight_min_transfer_tons", def.AutoFreightMinTransferTons)
	v.SetDefault("auto_freight_max_take_fraction_of_surplus", def.AutoFreightMaxTakeFractionOfSurplus)
	v.SetDefault("auto_freight_multi_mineral", def.AutoFreightMultiMineral)
	v.SetDefault("auto_freight_industry_input_buffer_days", def.AutoFreightIndustryInputBufferDays)

	v.SetDefault("enable_blockades", def.EnableBlockades)
	v.SetDefault("blockade_radius_mkm", def.BlockadeRadiusMkm)
	v.SetDefault("blockade_max_output_penalty", def.BlockadeMaxOutputPenalty)
	v.SetDefault("blockade_base_resistance_power", def.BlockadeBaseResistancePower)

	v.SetDefault("enable_ship_maintenance", def.EnableShipMaintenance)
	v.SetDefault("ship_maintenance_resource_id", def.ShipMaintenanceResourceId)
	v.SetDefault("ship_maintenance_tons_per_day_per_mass_ton", def.ShipMaintenanceTonsPerDayPerTon)
	v.SetDefault("ship_maintenance_recovery_per_day", def.ShipMaintenanceRecoveryPerDay)
	v.SetDefault("ship_maintenance_decay_per_day", def.ShipMaintenanceDecayPerDay)
	v.SetDefault("repair_hp_per_day_per_shipyard", def.RepairHpPerDayPerShipyard)

	v.SetDefault("enable_crew_experience", def.EnableCrewExperience)
	v.SetDefault("crew_initial_grade_points", def.CrewInitialGradePoints)
	v.SetDefault("crew_training_points_multiplier", def.CrewTrainingPointsMultiplier)
	v.SetDefault("crew_combat_grade_points_per_damage", def.CrewCombatGradePointsPerDamage)

	v.SetDefault("enable_population_growth", def.EnablePopulationGrowth)
	v.SetDefault("population_growth_rate_per_year", def.PopulationGrowthRatePerYear)

	v.SetDefault("enable_nebula_drag", def.EnableNebulaDrag)
	v.SetDefault("nebula_drag_speed_penalty_at_max_density", def.NebulaDragSpeedPenaltyAtMaxDensity)
	v.SetDefault("enable_nebula_microfields", def.EnableNebulaMicrofields)
	v.SetDefault("nebula_microfield_strength", def.NebulaMicrofieldStrength)
	v.SetDefault("nebula_microfield_scale_mkm", def.NebulaMicrofieldScaleMkm)
	v.SetDefault("nebula_microfield_warp_scale_mkm", def.NebulaMicrofieldWarpScaleMkm)
	v.SetDefault("nebula_microfield_filament_mix", def.NebulaMicrofieldFilamentMix)
	v.SetDefault("nebula_microfield_sharpness", def.NebulaMicrofieldSharpness)
	v.SetDefault("enable_nebula_storms", def.EnableNebulaStorms)
	v.SetDefault("nebula_storm_daily_chance_base", def.NebulaStormDailyChanceBase)
	v.SetDefault("nebula_storm_density_exponent", def.NebulaStormDensityExponent)
	v.SetDefault("nebula_storm_min_duration_days", def.NebulaStormMinDurationDays)
	v.SetDefault("nebula_storm_max_duration_days", def.NebulaStormMaxDurationDays)
	v.SetDefault("enable_nebula_storm_cells", def.EnableNebulaStormCells)
	v.SetDefault("enable_jump_point_phenomena", def.EnableJumpPointPhenomena)
	v.SetDefault("jump_point_phenomena_strength", def.JumpPointPhenomenaStrength)
	v.SetDefault("enable_anomalies", def.EnableAnomalies)
	v.SetDefault("anomaly_detection_range_multiplier", def.AnomalyDetectionRangeMultiplier)

	v.SetDefault("max_events", def.MaxEvents)
	v.SetDefault("combat_damage_event_min_abs", def.CombatDamageEventMinAbs)
	v.SetDefault("combat_damage_event_min_fraction", def.CombatDamageEventMinFraction)
	v.SetDefault("combat_damage_event_warn_remaining_fraction", def.CombatDamageEventWarnRemainingFraction)
}

// ConfigKeys returns the recognized option names, sorted, for CLI help
func ConfigKeys() []string {
	v := viper.New()
	registerDefaults(v)
	keys := v.AllKeys()
	for i := range keys {
		keys[i] = strings.ToLower(keys[i])
	}
	sort.Strings(keys)
	return keys
}
