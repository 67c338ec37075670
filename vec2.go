package kite

import (
	"fmt"
	"math"
)

// Vec2 is a displacement, direction or normal. Use [Point] for positions.
type Vec2 struct {
	X, Y float64
}

// Vec returns the vector ⟨x, y⟩.
func Vec(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// VecFromAngle returns the unit vector at angle th, measured from the positive
// x axis towards the positive y axis.
func VecFromAngle(th float64) Vec2 {
	s, c := math.Sincos(th)
	return Vec2{X: c, Y: s}
}

// Polar returns the vector of length r at angle th.
func Polar(r, th float64) Vec2 {
	s, c := math.Sincos(th)
	return Vec2{X: r * c, Y: r * s}
}

func (v Vec2) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// Hypot returns the length of v.
func (v Vec2) Hypot() float64 { return math.Hypot(v.X, v.Y) }

// Hypot2 returns the squared length of v.
func (v Vec2) Hypot2() float64 { return v.X*v.X + v.Y*v.Y }

// Angle returns atan2(y, x).
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Normalize scales v to unit length. The zero vector becomes NaN.
func (v Vec2) Normalize() Vec2 {
	l := v.Hypot()
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Perpendicular returns ⟨y, −x⟩, the vector rotated by −π/2.
func (v Vec2) Perpendicular() Vec2 { return Vec2{X: v.Y, Y: -v.X} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Mul(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }

func (v Vec2) Negate() Vec2 { return Vec2{X: -v.X, Y: -v.Y} }

// IsFinite reports whether neither component is infinite or NaN.
func (v Vec2) IsFinite() bool { return isFinite(v.X) && isFinite(v.Y) }

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
