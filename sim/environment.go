package sim

import (
	"math"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/environment"
	"github.com/nebula4x/simcore/events"
	"github.com/nebula4x/simcore/state"
)

const stormSeedSalt = 0x4E42554C // "NBUL"

func microfieldSeed(systemId core.Id) uint64 {
	return environment.Splitmix64(uint64(systemId) ^ 0x4E4542554C41)
}

func (s *Simulation) microfieldParams() environment.MicrofieldParams {
	return environment.MicrofieldParams{
		ScaleMkm:     s.cfg.NebulaMicrofieldScaleMkm,
		WarpScaleMkm: s.cfg.NebulaMicrofieldWarpScaleMkm,
		Strength:     s.cfg.NebulaMicrofieldStrength,
		FilamentMix:  s.cfg.NebulaMicrofieldFilamentMix,
		Sharpness:    s.cfg.NebulaMicrofieldSharpness,
	}
}

// SystemNebulaDensityAt returns the nebula density at a position. With
// microfields disabled this is the system's base density clamped to [0,1].
func (s *Simulation) SystemNebulaDensityAt(systemId core.Id, posMkm core.Vec2) float64 {
	sys := s.system(systemId)
	if sys == nil {
		return 0
	}
	base := core.Clamp01(sys.NebulaDensity)
	if !s.cfg.EnableNebulaMicrofields {
		return base
	}
	return environment.LocalDensity(base, microfieldSeed(systemId), posMkm, s.microfieldParams())
}

// stormEnvelope returns the temporal pulse of a storm window at the
// current sim time, zero outside the window
func (s *Simulation) stormEnvelope(sys *state.StarSystem) float64 {
	if sys == nil || sys.Storm == nil {
		return 0
	}
	w := sys.Storm
	t := float64(s.st.Date) + float64(s.st.HourOfDay)/24.0
	start := float64(w.StartDay)
	end := float64(w.EndDay)
	if end <= start || t < start || t > end {
		return 0
	}
	u := (t - start) / (end - start)
	return w.PeakIntensity * math.Sin(math.Pi*u)
}

// SystemStormIntensityAt returns storm intensity at a position in [0,1].
// With storm cells enabled the temporal pulse is modulated spatially.
func (s *Simulation) SystemStormIntensityAt(systemId core.Id, posMkm core.Vec2) float64 {
	sys := s.system(systemId)
	if sys == nil {
		return 0
	}
	pulse := s.stormEnvelope(sys)
	if pulse <= 0 {
		return 0
	}
	if !s.cfg.EnableNebulaStormCells {
		return core.Clamp01(pulse)
	}
	age := float64(s.st.Date-sys.Storm.StartDay) + float64(s.st.HourOfDay)/24.0
	cell := environment.SampleCell01(microfieldSeed(systemId)^0x57CE1157, posMkm, age,
		environment.DefaultStormFieldParams())
	return core.Clamp01(pulse * (0.20 + 1.30*cell))
}

// environmentSpeedMultiplierAt folds local nebula drag and storm
// intensity into a movement multiplier clamped to [0.05, 1]
func (s *Simulation) environmentSpeedMultiplierAt(systemId core.Id, posMkm core.Vec2) float64 {
	mult := 1.0
	if s.cfg.EnableNebulaDrag {
		density := s.SystemNebulaDensityAt(systemId, posMkm)
		mult *= 1.0 - core.Clamp01(s.cfg.NebulaDragSpeedPenaltyAtMaxDensity)*density
	}
	if s.cfg.EnableNebulaStorms {
		mult *= 1.0 - 0.5*s.SystemStormIntensityAt(systemId, posMkm)
	}
	return core.Clamp(mult, 0.05, 1.0)
}

// SystemMovementSpeedMultiplier returns the system-wide movement
// multiplier at the origin, for UI estimates
func (s *Simulation) SystemMovementSpeedMultiplier(systemId core.Id) float64 {
	return s.environmentSpeedMultiplierAt(systemId, core.Vec2{})
}

// SystemSensorEnvironmentMultiplierAt returns the sensor effectiveness
// multiplier at a position, clamped to [0.05, 1]
func (s *Simulation) SystemSensorEnvironmentMultiplierAt(systemId core.Id, posMkm core.Vec2) float64 {
	density := 0.0
	if s.cfg.EnableNebulaDrag || s.cfg.EnableNebulaMicrofields {
		density = s.SystemNebulaDensityAt(systemId, posMkm)
	} else if sys := s.system(systemId); sys != nil {
		density = core.Clamp01(sys.NebulaDensity)
	}
	storm := 0.0
	if s.cfg.EnableNebulaStorms {
		storm = s.SystemStormIntensityAt(systemId, posMkm)
	}
	return core.Clamp(1.0-0.6*density-0.4*storm, 0.05, 1.0)
}

// movementEnvironmentCostLos integrates travel cost along the segment so
// routing prefers clear lanes through microfield and storm structure
func (s *Simulation) movementEnvironmentCostLos(systemId core.Id, a, b core.Vec2) float64 {
	length := a.Distance(b)
	if length <= 1e-9 {
		return 0
	}
	const steps = 16
	cost := 0.0
	segLen := length / steps
	for i := 0; i < steps; i++ {
		t := (float64(i) + 0.5) / steps
		mid := a.Lerp(b, t)
		cost += segLen / s.environmentSpeedMultiplierAt(systemId, mid)
	}
	return cost
}

// tickNebulaStorms rolls per-system storm windows once per day. Rolls are
// hashed from (day, system) so replays match.
func (s *Simulation) tickNebulaStorms() {
	if !s.cfg.EnableNebulaStorms {
		return
	}
	day := uint32(s.st.Date)
	for _, sysId := range state.SortedIds(s.st.Systems) {
		sys := s.st.Systems[sysId]

		if sys.Storm != nil && s.st.Date >= sys.Storm.EndDay {
			sys.Storm = nil
			if s.systemIsOccupied(sys) {
				s.pushInfo(events.CategoryMovement, "Nebula storm subsiding in "+sys.Name,
					events.Event{SystemId: sysId})
			}
			continue
		}
		if sys.Storm != nil {
			continue
		}

		neb := core.Clamp01(sys.NebulaDensity)
		if neb <= 1e-6 {
			continue
		}
		seed := environment.Hash32(day ^ environment.Hash32(uint32(sysId)) ^ stormSeedSalt)
		p := s.cfg.NebulaStormDailyChanceBase * math.Pow(neb, s.cfg.NebulaStormDensityExponent)
		if environment.HashToUnit01(seed) >= p {
			continue
		}

		minD := s.cfg.NebulaStormMinDurationDays
		maxD := s.cfg.NebulaStormMaxDurationDays
		if minD < 1 {
			minD = 1
		}
		if maxD < minD {
			maxD = minD
		}
		span := maxD - minD + 1
		duration := minD + int(environment.HashToUnit01(environment.Hash32(seed^0xA531))*float64(span))
		peak := (0.35 + 0.65*environment.HashToUnit01(environment.Hash32(seed^0xBEEF))) * (0.5 + 0.5*neb)

		sys.Storm = &state.StormWindow{
			PeakIntensity: core.Clamp01(peak),
			StartDay:      s.st.Date,
			EndDay:        s.st.Date + core.Date(duration),
		}
		if s.systemIsOccupied(sys) {
			s.pushWarn(events.CategoryMovement, "Nebula storm rising in "+sys.Name,
				events.Event{SystemId: sysId})
		}
	}
}

// systemIsOccupied reports whether anyone would notice events here
func (s *Simulation) systemIsOccupied(sys *state.StarSystem) bool {
	if len(sys.Ships) > 0 {
		return true
	}
	for _, c := range s.st.Colonies {
		if b := s.body(c.BodyId); b != nil && b.SystemId == sys.Id {
			return true
		}
	}
	return false
}
