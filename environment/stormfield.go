package environment

import (
	"math"

	"github.com/nebula4x/simcore/core"
)

// StormFieldParams tunes the spatial storm-cell sampler
type StormFieldParams struct {
	CellScaleMkm        float64
	WarpScaleMkm        float64 // <=0 derives from cell scale
	DriftSpeedMkmPerDay float64
	FilamentMix         float64
	Sharpness           float64
	CellContrast        float64
	CellThreshold       float64
	SwirlStrength       float64
	SwirlScaleMkm       float64
}

// DefaultStormFieldParams returns the tuned defaults
func DefaultStormFieldParams() StormFieldParams {
	return StormFieldParams{
		CellScaleMkm:        1600.0,
		DriftSpeedMkmPerDay: 220.0,
		FilamentMix:         0.55,
		Sharpness:           1.6,
		CellContrast:        1.35,
		CellThreshold:       0.30,
		SwirlStrength:       0.18,
		SwirlScaleMkm:       8000.0,
	}
}

func driftDir(seed uint64) core.Vec2 {
	u := U01FromU64(Splitmix64(seed ^ 0xD00DFEED))
	a := u * 2 * math.Pi
	return core.Vec2{X: math.Cos(a), Y: math.Sin(a)}
}

func rotate(v core.Vec2, ang float64) core.Vec2 {
	c := math.Cos(ang)
	s := math.Sin(ang)
	return core.Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// SampleCell01 returns a normalized storm-cell field value in [0,1].
// During an active storm the temporal pulse is modulated by this field so
// a system has calm pockets, violent cores and drifting fronts.
func SampleCell01(seed uint64, posMkm core.Vec2, stormAgeDays float64, p StormFieldParams) float64 {
	t := math.Min(3650.0, math.Max(-3650.0, stormAgeDays))

	// Advection: move the sampling position along a deterministic drift
	dir := driftDir(seed)
	q := posMkm.Add(dir.Scale(p.DriftSpeedMkmPerDay * t))

	// Radius-dependent swirl keeps storms reading as coherent fronts
	if p.SwirlStrength > 1e-9 {
		r := math.Max(1e-9, q.Length())
		scale := math.Max(1000.0, p.SwirlScaleMkm)
		ang := p.SwirlStrength * t * (scale / (scale + r))
		q = rotate(q, ang)
	}

	mp := MicrofieldParams{
		ScaleMkm:    math.Max(50.0, p.CellScaleMkm),
		FilamentMix: clamp01(p.FilamentMix),
		Sharpness:   math.Min(4.0, math.Max(0.25, p.Sharpness)),
		Strength:    1.0,
	}
	if p.WarpScaleMkm > 1e-6 {
		mp.WarpScaleMkm = math.Max(50.0, p.WarpScaleMkm)
	} else {
		mp.WarpScaleMkm = mp.ScaleMkm * 2.6
	}

	v := SampleField01(seed^0xA5A5A5A5, q, mp)

	// Threshold into cellular blobs
	thr := math.Min(0.95, math.Max(0.0, p.CellThreshold))
	if thr > 1e-9 {
		v = clamp01((v - thr) / (1 - thr))
	}

	cc := math.Min(6.0, math.Max(0.25, p.CellContrast))
	return clamp01(math.Pow(clamp01(v), cc))
}
