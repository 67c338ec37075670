package kite

import (
	"math"
)

// Line represents a straight line segment from P0 to P1.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

var _ Segment = Line{}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

func (l Line) IsInf() bool {
	return l.P0.IsInf() || l.P1.IsInf()
}

func (l Line) IsNaN() bool {
	return l.P0.IsNaN() || l.P1.IsNaN()
}

func (l Line) Translate(v Vec2) Line {
	return Line{
		P0: l.P0.Translate(v),
		P1: l.P1.Translate(v),
	}
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

func (l Line) StartTangent() Vec2 { return l.P1.Sub(l.P0).Normalize() }
func (l Line) EndTangent() Vec2   { return l.StartTangent() }

func (l Line) PositionAt(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) TangentAt(t float64) Vec2 {
	return l.StartTangent()
}

func (l Line) CurvatureAt(t float64) float64 {
	return 0
}

func (l Line) Subdivided(t float64) []Segment {
	if t <= 0 || t >= 1 {
		return []Segment{l}
	}
	mid := l.PositionAt(t)
	return []Segment{Line{l.P0, mid}, Line{mid, l.P1}}
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

// Intersection returns the crossing of ray with the line, if any. Hits at the
// end point are excluded so that consecutive lines of a path report a shared
// vertex once.
func (l Line) Intersection(ray Ray2) []RayIntersection {
	diff := l.P1.Sub(l.P0)
	if diff.Hypot2() == 0 {
		return nil
	}
	dir := ray.Direction
	denom := dir.Y*diff.X - dir.X*diff.Y
	if denom == 0 {
		// Parallel.
		return nil
	}
	t := (dir.X*(l.P0.Y-ray.Position.Y) - dir.Y*(l.P0.X-ray.Position.X)) / denom
	if t < 0 || t >= 1 {
		return nil
	}
	s := (diff.X*(l.P0.Y-ray.Position.Y) - diff.Y*(l.P0.X-ray.Position.X)) / denom
	if s < 1e-10 {
		// Behind the ray.
		return nil
	}
	normal := diff.Perpendicular().Normalize()
	if normal.Dot(dir) > 0 {
		normal = normal.Negate()
	}
	wind := -1
	if dir.Perpendicular().Dot(diff) < 0 {
		wind = 1
	}
	return []RayIntersection{{
		Distance: s,
		Point:    l.PositionAt(t),
		Normal:   normal,
		Wind:     wind,
		T:        t,
	}}
}

func (l Line) WindingIntersection(ray Ray2) int {
	return sumWinds(l.Intersection(ray))
}

func (l Line) Transformed(m Matrix3) (Segment, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return Line{
		P0: m.TransformPoint(l.P0),
		P1: m.TransformPoint(l.P1),
	}, nil
}

func (l Line) Reversed() Segment {
	return Line{l.P1, l.P0}
}

func (l Line) NondegenerateSegments() []Segment {
	if l.P0 == l.P1 {
		return nil
	}
	return []Segment{l}
}

// offsetTo returns the line shifted by r along the perpendicular of its
// direction, optionally reversed.
func (l Line) offsetTo(r float64, reverse bool) Line {
	offset := l.StartTangent().Perpendicular().Mul(r)
	out := l.Translate(offset)
	if reverse {
		out.P0, out.P1 = out.P1, out.P0
	}
	return out
}

func (l Line) StrokeLeft(lineWidth float64) []Line {
	return []Line{l.offsetTo(-lineWidth/2, false)}
}

func (l Line) StrokeRight(lineWidth float64) []Line {
	return []Line{l.offsetTo(lineWidth/2, true)}
}

func (l Line) SVGPathFragment() string {
	return "L " + svgNumber(l.P1.X) + " " + svgNumber(l.P1.Y)
}

func (l Line) Overlaps(other Segment) []Overlap {
	return Overlaps(l, other)
}

func (l Line) WriteToContext(ctx Context) {
	ctx.LineTo(l.P1.X, l.P1.Y)
}

// IntersectLine returns the crossing of two line segments. AT is the parameter
// on l and BT the parameter on o. Coincident and parallel lines report no
// intersection; use [Overlaps] for the former.
func (l Line) IntersectLine(o Line) (SegmentIntersection, bool) {
	const epsilon = 1e-9
	dl := l.P1.Sub(l.P0)
	do := o.P1.Sub(o.P0)
	w := o.P0.Sub(l.P0)
	// l.P0 + t·dl = o.P0 + u·do
	den := dl.Cross(do)
	if math.Abs(den) < epsilon {
		return SegmentIntersection{}, false
	}
	t := w.Cross(do) / den
	u := w.Cross(dl) / den
	if t < -epsilon || t > 1+epsilon || u < -epsilon || u > 1+epsilon {
		return SegmentIntersection{}, false
	}
	return SegmentIntersection{
		Point: l.PositionAt(t),
		AT:    clamp01(t),
		BT:    clamp01(u),
	}, true
}

// lineOverlap returns the linear relation between the parameters of two
// collinear lines.
func lineOverlap(a, b Line) (Overlap, bool) {
	const epsilon = 1e-10
	d := a.P1.Sub(a.P0)
	length2 := d.Hypot2()
	if length2 == 0 || b.P0 == b.P1 {
		return Overlap{}, false
	}
	scale := math.Sqrt(length2)
	if math.Abs(d.Cross(b.P0.Sub(a.P0)))/scale > epsilon ||
		math.Abs(d.Cross(b.P1.Sub(a.P0)))/scale > epsilon {
		return Overlap{}, false
	}
	// Parameters of b's end points on a.
	t0 := d.Dot(b.P0.Sub(a.P0)) / length2
	t1 := d.Dot(b.P1.Sub(a.P0)) / length2
	// tA = t0 + (t1 - t0) tB, inverted.
	return newOverlap(1/(t1-t0), -t0/(t1-t0))
}

func clamp01(t float64) float64 {
	return min(max(t, 0), 1)
}
