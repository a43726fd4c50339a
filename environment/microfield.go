package environment

import (
	"math"

	"github.com/nebula4x/simcore/core"
)

// MicrofieldParams tunes the nebula microfield sampler
type MicrofieldParams struct {
	// ScaleMkm is the typical feature size; smaller means finer filaments
	ScaleMkm float64
	// WarpScaleMkm is the feature size of the low-frequency warp field
	WarpScaleMkm float64
	// Strength scales how far the microfield deviates the base density
	Strength float64
	// FilamentMix blends smooth clouds (0) against ridged filaments (1)
	FilamentMix float64
	// Sharpness is a post shaping power; >1 increases contrast
	Sharpness float64
}

// DefaultMicrofieldParams returns the tuned defaults
func DefaultMicrofieldParams() MicrofieldParams {
	return MicrofieldParams{
		ScaleMkm:     900.0,
		WarpScaleMkm: 2600.0,
		Strength:     0.28,
		FilamentMix:  0.65,
		Sharpness:    1.25,
	}
}

// SampleField01 returns a normalized microfield shape value in [0,1] at an
// in-system position. Callers remap it around a system's base density.
func SampleField01(seed uint64, posMkm core.Vec2, p MicrofieldParams) float64 {
	scale := math.Max(10.0, p.ScaleMkm)
	warpScale := math.Max(10.0, p.WarpScaleMkm)
	filament := clamp01(p.FilamentMix)
	sharp := math.Min(4.0, math.Max(0.25, p.Sharpness))

	x := posMkm.X / scale
	y := posMkm.Y / scale

	// Warp field runs at lower frequency
	wx := posMkm.X / warpScale
	wy := posMkm.Y / warpScale
	warpedX, warpedY := domainWarp(seed^0x5A17B3E57, wx, wy)
	x += (warpedX - wx) * (warpScale / scale)
	y += (warpedY - wy) * (warpScale / scale)

	// Smooth clouds
	n := fbm(seed^0xD1A5D1A5, x, y, 5, 2.05, 0.52)

	// Filaments from ridged noise
	r0 := fbm(seed^0xBADC0DE, x*1.35+3.3, y*1.35-7.1, 4, 2.15, 0.50)
	r := math.Pow(ridged(r0), 1.7)

	v := lerp(n, r, filament)
	v = math.Pow(clamp01(v), sharp)
	return clamp01(v)
}

// LocalDensity remaps a sampled microfield around a base density. The
// field is centered near 0.5 so the spatial average stays close to base
// while pockets and filaments form locally.
func LocalDensity(baseDensity float64, seed uint64, posMkm core.Vec2, p MicrofieldParams) float64 {
	baseDensity = clamp01(baseDensity)
	strength := math.Min(2.0, math.Max(0.0, p.Strength))
	if strength <= 1e-9 {
		return baseDensity
	}
	if baseDensity <= 1e-6 {
		return 0
	}

	v := SampleField01(seed, posMkm, p)
	centered := (v - 0.5) * 2.0

	// Variation peaks at mid densities but never vanishes
	mid := 1.0 - math.Abs(baseDensity-0.5)*2.0
	amp := strength * (0.10 + 0.55*baseDensity) * (0.25 + 0.75*clamp01(mid))

	return clamp01(baseDensity + centered*amp)
}
