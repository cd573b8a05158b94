// Package math provides the small float32 vector toolkit used by the camera
// and the terrain samplers.
package math

import "math"

// Vec2 is a 2D vector on the terrain plane (X east, Y maps to world Z).
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Normalize returns a unit vector, or the zero vector for zero input.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Lerp interpolates between v and other by t.
func (v Vec2) Lerp(other Vec2, t float32) Vec2 {
	return Vec2{v.X + (other.X-v.X)*t, v.Y + (other.Y-v.Y)*t}
}

// Angle returns atan2(Y, X).
func (v Vec2) Angle() float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)))
}

// FromAngle returns the unit vector with the given angle in radians.
func FromAngle(a float32) Vec2 {
	s, c := math.Sincos(float64(a))
	return Vec2{float32(c), float32(s)}
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}
