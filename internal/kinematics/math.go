// Package kinematics holds the small amount of vector math the character
// needs and a Pawn that stands in for the host's movement, controller and
// camera components.
package kinematics

import "math"

type Vec2 struct{ X, Y float64 }

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

type Vec3 struct{ X, Y, Z float64 }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Normalize returns the unit vector of v, or the zero vector when v is zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Rotator is an orientation in degrees.
type Rotator struct{ Pitch, Yaw, Roll float64 }

// Forward is the unit X axis of a yaw-only rotation.
func (r Rotator) Forward() Vec3 {
	rad := r.Yaw * math.Pi / 180
	return Vec3{X: math.Cos(rad), Y: math.Sin(rad)}
}

// Right is the unit Y axis of a yaw-only rotation.
func (r Rotator) Right() Vec3 {
	rad := r.Yaw * math.Pi / 180
	return Vec3{X: -math.Sin(rad), Y: math.Cos(rad)}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates from a to b by alpha.
func Lerp(a, b, alpha float64) float64 {
	return a + (b-a)*alpha
}

// NormalizeAxis wraps degrees into (-180, 180].
func NormalizeAxis(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}
