package kite

import (
	"fmt"
	"math"
)

// Point is a position in the plane.
type Point struct {
	X, Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Translate returns pt moved by v.
func (pt Point) Translate(v Vec2) Point {
	return Point{X: pt.X + v.X, Y: pt.Y + v.Y}
}

// Transform maps the point through m, ignoring its bottom row.
func (pt Point) Transform(m Matrix3) Point {
	return m.TransformPoint(pt)
}

// Sub returns the vector from o to pt.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{X: pt.X - o.X, Y: pt.Y - o.Y}
}

// Lerp returns the point at t along the way from pt to o.
func (pt Point) Lerp(o Point, t float64) Point {
	return pt.Translate(o.Sub(pt).Mul(t))
}

func (pt Point) Midpoint(o Point) Point {
	return Point{X: (pt.X + o.X) / 2, Y: (pt.Y + o.Y) / 2}
}

func (pt Point) Distance(o Point) float64 {
	return math.Hypot(pt.X-o.X, pt.Y-o.Y)
}

// EqualsEpsilon reports whether both coordinates of pt and o differ by at most
// epsilon.
func (pt Point) EqualsEpsilon(o Point, epsilon float64) bool {
	return math.Abs(pt.X-o.X) <= epsilon && math.Abs(pt.Y-o.Y) <= epsilon
}

func (pt Point) IsInf() bool {
	return math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0)
}

func (pt Point) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y)
}

// IsFinite reports whether neither coordinate is infinite or NaN.
func (pt Point) IsFinite() bool { return isFinite(pt.X) && isFinite(pt.Y) }
