package core

import "math"

// Vec2 is a 2D double vector. World positions are in million kilometers;
// galaxy map positions are dimensionless.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Length returns the euclidean magnitude
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSq returns squared magnitude without sqrt
func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalized returns the unit vector, zero-safe
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l <= 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Distance returns |v - o|
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Length()
}

// DistanceSq returns |v - o|^2
func (v Vec2) DistanceSq(o Vec2) float64 {
	return v.Sub(o).LengthSq()
}

// Lerp returns v + (o-v)*t
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// ClosestPointOnSegment returns the point on segment [a,b] nearest to p
// and the segment parameter t in [0,1]
func ClosestPointOnSegment(p, a, b Vec2) (Vec2, float64) {
	ab := b.Sub(a)
	den := ab.LengthSq()
	if den <= 0 {
		return a, 0
	}
	t := p.Sub(a).Dot(ab) / den
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t)), t
}

// SegmentIntersectsDisc reports whether segment [a,b] passes within radius
// of center
func SegmentIntersectsDisc(a, b, center Vec2, radius float64) bool {
	closest, _ := ClosestPointOnSegment(center, a, b)
	return closest.DistanceSq(center) <= radius*radius
}

// Clamp01 clamps x to [0,1]
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Clamp clamps x to [lo,hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
