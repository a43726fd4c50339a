package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebula4x/simcore/core"
)

func TestSplitmix64IsStable(t *testing.T) {
	assert.Equal(t, Splitmix64(42), Splitmix64(42))
	assert.NotEqual(t, Splitmix64(42), Splitmix64(43))
}

func TestU01FromU64Range(t *testing.T) {
	for _, x := range []uint64{0, 1, 1 << 20, ^uint64(0)} {
		u := U01FromU64(Splitmix64(x))
		assert.GreaterOrEqual(t, u, 0.0)
		assert.Less(t, u, 1.0)
	}
}

func TestHashToUnit01Range(t *testing.T) {
	for _, x := range []uint32{0, 7, 1 << 16, ^uint32(0)} {
		u := HashToUnit01(Hash32(x))
		assert.GreaterOrEqual(t, u, 0.0)
		assert.Less(t, u, 1.0)
	}
}

func TestSampleField01DeterministicAndBounded(t *testing.T) {
	p := DefaultMicrofieldParams()
	seed := uint64(0xBEEF)
	positions := []core.Vec2{
		{X: 0, Y: 0}, {X: 123.4, Y: -567.8}, {X: -9000, Y: 4500}, {X: 0.001, Y: 0.002},
	}
	for _, pos := range positions {
		a := SampleField01(seed, pos, p)
		b := SampleField01(seed, pos, p)
		assert.Equal(t, a, b)
		assert.GreaterOrEqual(t, a, 0.0)
		assert.LessOrEqual(t, a, 1.0)
	}
}

func TestSampleField01VariesAcrossSpace(t *testing.T) {
	p := DefaultMicrofieldParams()
	a := SampleField01(1, core.Vec2{X: 100, Y: 100}, p)
	b := SampleField01(1, core.Vec2{X: 5000, Y: -3000}, p)
	assert.NotEqual(t, a, b)
}

func TestLocalDensityZeroBaseStaysZero(t *testing.T) {
	p := DefaultMicrofieldParams()
	got := LocalDensity(0, 99, core.Vec2{X: 250, Y: 250}, p)
	assert.Equal(t, 0.0, got)
}

func TestLocalDensityStaysInUnitRange(t *testing.T) {
	p := DefaultMicrofieldParams()
	for _, base := range []float64{0.1, 0.5, 0.9} {
		for _, pos := range []core.Vec2{{X: 10, Y: 20}, {X: -800, Y: 300}, {X: 4000, Y: 4000}} {
			d := LocalDensity(base, 7, pos, p)
			assert.GreaterOrEqual(t, d, 0.0)
			assert.LessOrEqual(t, d, 1.0)
		}
	}
}

func TestSampleCell01EvolvesWithAge(t *testing.T) {
	p := DefaultStormFieldParams()
	pos := core.Vec2{X: 640, Y: -320}

	day0 := SampleCell01(5, pos, 0, p)
	assert.Equal(t, day0, SampleCell01(5, pos, 0, p))
	assert.GreaterOrEqual(t, day0, 0.0)
	assert.LessOrEqual(t, day0, 1.0)

	day90 := SampleCell01(5, pos, 90, p)
	assert.NotEqual(t, day0, day90, "storm cells should drift over time")
}

func TestJumpPhenomenaDeterministicAndBounded(t *testing.T) {
	pos := core.Vec2{X: 1200, Y: -450}
	a := JumpPhenomenaFor(10, 2, 11, pos)
	b := JumpPhenomenaFor(10, 2, 11, pos)
	assert.Equal(t, a, b)

	for _, v := range []float64{
		a.Stability01, a.Turbulence01, a.Shear01,
		a.HazardChance01, a.HazardDamageFrac,
		a.SubsystemGlitchChance01, a.SubsystemGlitchSeverity01,
	} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.GreaterOrEqual(t, a.SurveyDifficultyMult, 0.80)
	assert.LessOrEqual(t, a.SurveyDifficultyMult, 2.25)
	assert.GreaterOrEqual(t, a.MisjumpDispersionMkm, 10.0)
}

func TestJumpPhenomenaDifferPerJumpPoint(t *testing.T) {
	pos := core.Vec2{X: 1200, Y: -450}
	a := JumpPhenomenaFor(10, 2, 11, pos)
	b := JumpPhenomenaFor(12, 2, 13, pos)
	assert.NotEqual(t, a, b)
}

func TestTinyPositionDriftKeepsPhenomenaStable(t *testing.T) {
	a := JumpPhenomenaFor(10, 2, 11, core.Vec2{X: 1200, Y: -450})
	b := JumpPhenomenaFor(10, 2, 11, core.Vec2{X: 1200.004, Y: -450.004})
	assert.Equal(t, a, b, "sub-quantum position drift must not reroll the field")
}
