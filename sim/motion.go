package sim

import (
	"math"

	"github.com/nebula4x/simcore/core"
	"github.com/nebula4x/simcore/state"
)

// orbitEpsilonMkm treats smaller orbit radii as pinned at the origin
const orbitEpsilonMkm = 1e-9

// bodyPositionAt evaluates a body's circular orbit at a sim time in days
func bodyPositionAt(radiusMkm, periodDays, phaseRadians, tDays float64) core.Vec2 {
	if radiusMkm <= orbitEpsilonMkm {
		return core.Vec2{}
	}
	theta := phaseRadians
	if periodDays > 1e-9 {
		theta += 2 * math.Pi * tDays / periodDays
	}
	return core.Vec2{X: radiusMkm * math.Cos(theta), Y: radiusMkm * math.Sin(theta)}
}

// recomputeBodyPositions refreshes every body's derived position for the
// current date and hour
func (s *Simulation) recomputeBodyPositions() {
	t := float64(s.st.Date) + float64(s.st.HourOfDay)/hoursPerDay
	for _, b := range s.st.Bodies {
		b.PositionMkm = bodyPositionAt(b.OrbitRadiusMkm, b.OrbitPeriodDays, b.OrbitPhaseRadians, t)
	}
}

// shipStepMkm returns how far a ship travels this hour, including the
// local environment multiplier at its current position
func (s *Simulation) shipStepMkm(ship *state.Ship) float64 {
	design := s.shipDesign(ship)
	if design == nil {
		return 0
	}
	speed := design.SpeedKmS * ship.Integrity.Engines
	if speed <= 0 {
		return 0
	}
	envMult := s.environmentSpeedMultiplierAt(ship.SystemId, ship.PositionMkm)
	return speed * s.cfg.SecondsPerDay / 1e6 / hoursPerDay * envMult
}
