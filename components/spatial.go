package components

import "math"

// Vec2 is a 2D vector used for positions, velocities and scales.
type Vec2 struct {
	X, Y float32
}

// Zero2 is the zero vector.
var Zero2 = Vec2{}

// One2 is the unit scale.
var One2 = Vec2{X: 1, Y: 1}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Normalized returns v scaled to unit length, or the zero vector for zero v.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Angle returns atan2(Y, X) in radians.
func (v Vec2) Angle() float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)))
}

// FromAngle returns a vector of the given length pointing at angle radians.
func FromAngle(angle, length float32) Vec2 {
	s, c := math.Sincos(float64(angle))
	return Vec2{X: float32(c) * length, Y: float32(s) * length}
}
