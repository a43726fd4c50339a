package environment

import (
	"math"

	"github.com/nebula4x/simcore/core"
)

// JumpPhenomena describes a jump point's "subspace weather": stability
// descriptors, survey difficulty and transit hazard parameters. All values
// derive deterministically from the jump point's identity and position.
type JumpPhenomena struct {
	Stability01  float64 // 1 = calm, 0 = wildly unstable
	Turbulence01 float64
	Shear01      float64

	SurveyDifficultyMult float64

	HazardChance01       float64
	HazardDamageFrac     float64
	MisjumpDispersionMkm float64

	SubsystemGlitchChance01   float64
	SubsystemGlitchSeverity01 float64
}

func jumpSeed(id, systemId, linkedId core.Id, posMkm core.Vec2, salt uint64) uint64 {
	s := uint64(0x9B4D0F1A6C25E3D7)
	s = hashCombine(s, uint64(id))
	s = hashCombine(s, uint64(systemId))
	s = hashCombine(s, uint64(linkedId))

	// Quantize position so tiny float drift doesn't change the field
	qx := int64(math.Round(posMkm.X * 10.0))
	qy := int64(math.Round(posMkm.Y * 10.0))
	s = hashCombine(s, uint64(qx))
	s = hashCombine(s, uint64(qy))

	return Splitmix64(hashCombine(s, salt))
}

// JumpPhenomenaFor generates the phenomena for a jump point
func JumpPhenomenaFor(id, systemId, linkedId core.Id, posMkm core.Vec2) JumpPhenomena {
	seed := jumpSeed(id, systemId, linkedId, posMkm, 0xC6A4A7935BD1E995)

	// Normalized coordinates; nearby jump points feel related in-system
	const scale = 950.0
	x := posMkm.X / scale
	y := posMkm.Y / scale

	wx, wy := domainWarp(seed^0x5A17B3E57, x*0.45, y*0.45)
	x += (wx - x*0.45) * 1.15
	y += (wy - y*0.45) * 1.15

	turb := clamp01(fbm(seed^0xABCDEF111, x, y, 5, 2.07, 0.53))
	ridge := clamp01(ridged(fbm(seed^0xDEAD1234, x*1.25+2.3, y*1.25-3.9, 4, 2.15, 0.50)))
	shear := clamp01(0.55*ridge + 0.45*gradMag01(seed^0x0F00D, x*1.6, y*1.6))

	stability := clamp01(1.0 - (0.62*turb + 0.38*shear))

	complexity := clamp01((turb + shear + (1.0 - stability)) / 3.0)
	difficultyMult := lerp(0.80, 2.25, math.Pow(complexity, 1.15))

	hazard := clamp01(0.15 + 0.80*(0.55*turb+0.45*shear)*(1.0-0.35*stability))

	return JumpPhenomena{
		Stability01:  stability,
		Turbulence01: turb,
		Shear01:      shear,

		SurveyDifficultyMult: difficultyMult,

		HazardChance01:       clamp01(hazard * 0.55),
		HazardDamageFrac:     clamp01(0.02 + 0.18*hazard),
		MisjumpDispersionMkm: math.Max(0, 10.0+140.0*hazard),

		SubsystemGlitchChance01:   clamp01(0.05 + 0.45*hazard),
		SubsystemGlitchSeverity01: clamp01(0.10 + 0.60*hazard),
	}
}
