package kite

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle spanning [X0, X1]×[Y0, Y1].
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Nothing is the empty rectangle. It is the identity of [Rect.Union] and
// [Rect.UnionPoint], so bounds can be accumulated starting from it.
var Nothing = Rect{
	X0: math.Inf(1),
	Y0: math.Inf(1),
	X1: math.Inf(-1),
	Y1: math.Inf(-1),
}

// NewRectFromPoints returns the smallest rectangle containing p0 and p1.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{
		X0: min(p0.X, p1.X),
		Y0: min(p0.Y, p1.Y),
		X1: max(p0.X, p1.X),
		Y1: max(p0.Y, p1.Y),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g, %g]×[%g, %g]", r.X0, r.X1, r.Y0, r.Y1)
}

// IsEmpty reports whether r contains no points, which is the case for
// [Nothing]. Rectangles of zero area are not empty.
func (r Rect) IsEmpty() bool {
	return r.X0 > r.X1 || r.Y0 > r.Y1
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

func (r Rect) Center() Point {
	return Point{X: (r.X0 + r.X1) / 2, Y: (r.Y0 + r.Y1) / 2}
}

// Union returns the smallest rectangle enclosing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// UnionPoint grows r to include pt.
func (r Rect) UnionPoint(pt Point) Rect {
	return r.Union(Rect{pt.X, pt.Y, pt.X, pt.Y})
}

// Intersects reports whether r and o share at least one point. Touching edges
// count.
func (r Rect) Intersects(o Rect) bool {
	return r.X0 <= o.X1 && o.X0 <= r.X1 && r.Y0 <= o.Y1 && o.Y0 <= r.Y1
}

// Contains reports whether pt lies inside r or on its edges.
func (r Rect) Contains(pt Point) bool {
	return r.X0 <= pt.X && pt.X <= r.X1 && r.Y0 <= pt.Y && pt.Y <= r.Y1
}

// Transform returns the bounds of r's corners mapped through m.
func (r Rect) Transform(m Matrix3) Rect {
	if r.IsEmpty() {
		return Nothing
	}
	if m.Type == TypeIdentity {
		return r
	}
	out := Nothing
	for _, pt := range [4]Point{{r.X0, r.Y0}, {r.X0, r.Y1}, {r.X1, r.Y0}, {r.X1, r.Y1}} {
		out = out.UnionPoint(m.TransformPoint(pt))
	}
	return out
}
