// Package environment provides deterministic, pure field functions for
// nebula density microfields, storm cells and jump-point phenomena. All
// sampling is stable for a given (seed, position, params) so saves replay
// identically.
package environment

import "math"

// Splitmix64 is the shared deterministic mixer for procedural noise
func Splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	z := x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// U01FromU64 maps a mixed 64-bit value to [0,1) using the top 53 bits
func U01FromU64(x uint64) float64 {
	return float64(x>>11) / (1 << 53)
}

// Hash32 is a 32-bit avalanche hash used for per-day storm rolls
func Hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// HashToUnit01 maps a 32-bit hash to [0,1) with a 24-bit mantissa
func HashToUnit01(h uint32) float64 {
	return float64(h>>8) / float64(1<<24)
}

func hashCombine(a, b uint64) uint64 {
	return Splitmix64(a ^ (b + 0x9e3779b97f4a7c15 + (a << 6) + (a >> 2)))
}

func smoothstep(t float64) float64 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func hash2U01(seed uint64, x, y int) float64 {
	h := seed
	h = hashCombine(h, uint64(uint32(x)))
	h = hashCombine(h, uint64(uint32(y)))
	return U01FromU64(Splitmix64(h))
}

// valueNoise samples lattice value noise with smooth interpolation
func valueNoise(seed uint64, x, y float64) float64 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := x0 + 1
	y1 := y0 + 1

	tx := smoothstep(x - float64(x0))
	ty := smoothstep(y - float64(y0))

	v00 := hash2U01(seed, x0, y0)
	v10 := hash2U01(seed, x1, y0)
	v01 := hash2U01(seed, x0, y1)
	v11 := hash2U01(seed, x1, y1)

	a := lerp(v00, v10, tx)
	b := lerp(v01, v11, tx)
	return lerp(a, b, ty)
}

func fbm(seed uint64, x, y float64, octaves int, lacunarity, gain float64) float64 {
	amp := 0.5
	freq := 1.0
	sum := 0.0
	norm := 0.0
	if octaves < 1 {
		octaves = 1
	}
	for i := 0; i < octaves; i++ {
		sum += amp * valueNoise(seed+uint64(i)*0x9e3779b97f4a7c15, x*freq, y*freq)
		norm += amp
		amp *= gain
		freq *= lacunarity
	}
	if norm <= 1e-12 {
		return 0
	}
	return sum / norm
}

// domainWarp displaces (x,y) with two low-frequency fBm channels
func domainWarp(seed uint64, x, y float64) (float64, float64) {
	wx := fbm(seed^0xA2F1B4C3D5E60719, x, y, 3, 2.1, 0.52) - 0.5
	wy := fbm(seed^0xC0FFEE123456789B, x+11.7, y-7.9, 3, 2.1, 0.52) - 0.5
	return x + wx*1.25, y + wy*1.25
}

// ridged maps [0,1] noise to a ridge response peaking at the midline
func ridged(n01 float64) float64 {
	return clamp01(1 - math.Abs(2*n01-1))
}

func gradMag01(seed uint64, x, y float64) float64 {
	const e = 0.35
	cx := valueNoise(seed, x, y)
	dx := valueNoise(seed, x+e, y) - cx
	dy := valueNoise(seed, x, y+e) - cx
	return clamp01(math.Sqrt(dx*dx+dy*dy) * 3.25)
}
