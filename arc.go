package kite

import (
	"fmt"
	"math"
)

// Arc is a circular arc around a center point. It sweeps from StartAngle
// towards EndAngle, clockwise in a y-down coordinate system unless
// Anticlockwise is set.
//
// An Arc is immutable. Use [NewArc] to construct one.
type Arc struct {
	center        Point
	radius        float64
	startAngle    float64
	endAngle      float64
	anticlockwise bool
}

var _ Segment = (*Arc)(nil)

// NewArc returns a circular arc. A negative radius is folded into the angles by
// rotating both by π. It returns an error wrapping [ErrAmbiguousSpan] if the
// arc would sweep more than a full turn.
func NewArc(center Point, radius, startAngle, endAngle float64, anticlockwise bool) (*Arc, error) {
	if !center.IsFinite() || !isFinite(radius) || !isFinite(startAngle) || !isFinite(endAngle) {
		return nil, fmt.Errorf("%w: arc at %v with radius %g from %g to %g", ErrNonFinite, center, radius, startAngle, endAngle)
	}
	if radius < 0 {
		radius = -radius
		startAngle += math.Pi
		endAngle += math.Pi
	}
	if err := validateSpan(startAngle, endAngle, anticlockwise); err != nil {
		return nil, err
	}
	return &Arc{
		center:        center,
		radius:        radius,
		startAngle:    startAngle,
		endAngle:      endAngle,
		anticlockwise: anticlockwise,
	}, nil
}

// mustArc is NewArc for arguments derived from an existing valid arc.
func mustArc(center Point, radius, startAngle, endAngle float64, anticlockwise bool) *Arc {
	a, err := NewArc(center, radius, startAngle, endAngle, anticlockwise)
	if err != nil {
		panic(err)
	}
	return a
}

func (a *Arc) Center() Point       { return a.center }
func (a *Arc) Radius() float64     { return a.radius }
func (a *Arc) StartAngle() float64 { return a.startAngle }
func (a *Arc) EndAngle() float64   { return a.endAngle }
func (a *Arc) Anticlockwise() bool { return a.anticlockwise }

// IsFullPerimeter reports whether the arc covers the whole circle.
func (a *Arc) IsFullPerimeter() bool {
	return isFullPerimeter(a.startAngle, a.endAngle, a.anticlockwise)
}

func (a *Arc) String() string {
	return fmt.Sprintf("Arc(%v, %g, %g, %g, %t)", a.center, a.radius, a.startAngle, a.endAngle, a.anticlockwise)
}

// ActualEndAngle returns the end angle adjusted by a multiple of 2π so that the
// arc sweeps monotonically from StartAngle to it.
func (a *Arc) ActualEndAngle() float64 {
	return actualEndAngle(a.startAngle, a.endAngle, a.anticlockwise)
}

// AngleDifference returns the swept angle, in [0, 2π].
func (a *Arc) AngleDifference() float64 {
	return angleDifference(a.startAngle, a.endAngle, a.anticlockwise)
}

func (a *Arc) ContainsAngle(angle float64) bool {
	return containsAngle(angle, a.startAngle, a.endAngle, a.AngleDifference(), a.anticlockwise)
}

func (a *Arc) MapAngle(angle float64) float64 {
	return mapAngle(angle, a.startAngle, a.ActualEndAngle())
}

func (a *Arc) AngleAt(t float64) float64 {
	return a.startAngle + (a.ActualEndAngle()-a.startAngle)*t
}

func (a *Arc) TAtAngle(angle float64) float64 {
	end := a.ActualEndAngle()
	return (a.MapAngle(angle) - a.startAngle) / (end - a.startAngle)
}

func (a *Arc) PositionAtAngle(angle float64) Point {
	return a.center.Translate(Polar(a.radius, angle))
}

func (a *Arc) TangentAtAngle(angle float64) Vec2 {
	normal := VecFromAngle(angle)
	if a.anticlockwise {
		return normal.Perpendicular()
	}
	return normal.Perpendicular().Negate()
}

func (a *Arc) Start() Point       { return a.PositionAtAngle(a.startAngle) }
func (a *Arc) End() Point         { return a.PositionAtAngle(a.endAngle) }
func (a *Arc) StartTangent() Vec2 { return a.TangentAtAngle(a.startAngle) }
func (a *Arc) EndTangent() Vec2   { return a.TangentAtAngle(a.endAngle) }

func (a *Arc) PositionAt(t float64) Point {
	return a.PositionAtAngle(a.AngleAt(t))
}

func (a *Arc) TangentAt(t float64) Vec2 {
	return a.TangentAtAngle(a.AngleAt(t))
}

func (a *Arc) CurvatureAt(t float64) float64 {
	if a.anticlockwise {
		return -1 / a.radius
	}
	return 1 / a.radius
}

func (a *Arc) Subdivided(t float64) []Segment {
	if t <= 0 || t >= 1 {
		return []Segment{a}
	}
	angle := a.AngleAt(t)
	end := a.ActualEndAngle()
	return []Segment{
		mustArc(a.center, a.radius, a.startAngle, angle, a.anticlockwise),
		mustArc(a.center, a.radius, angle, end, a.anticlockwise),
	}
}

func (a *Arc) BoundingBox() Rect {
	r := NewRectFromPoints(a.Start(), a.End())
	if a.startAngle != a.endAngle {
		for _, angle := range [...]float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
			if a.ContainsAngle(angle) {
				r = r.UnionPoint(a.PositionAtAngle(angle))
			}
		}
	}
	return r
}

// Intersection returns the hits of ray with the arc. Tangential hits are
// ignored.
func (a *Arc) Intersection(ray Ray2) []RayIntersection {
	const epsilon = 1e-7

	// |p + s·d − c|² = r² with |d| = 1.
	toRay := ray.Position.Sub(a.center)
	b := ray.Direction.Dot(toRay)
	disc := b*b - toRay.Hypot2() + a.radius*a.radius
	if disc < epsilon {
		return nil
	}
	sq := math.Sqrt(disc)
	ta, tb := -b-sq, -b+sq
	if tb < epsilon {
		// Both behind the ray.
		return nil
	}

	outWind, inWind := -1, 1
	if a.anticlockwise {
		outWind, inWind = 1, -1
	}

	var out []RayIntersection
	if ta >= epsilon {
		pointA := ray.PointAtDistance(ta)
		normalA := pointA.Sub(a.center).Normalize()
		if angle := normalA.Angle(); a.ContainsAngle(angle) {
			// Entering the circle, the outward normal faces the ray.
			out = append(out, RayIntersection{
				Distance: ta,
				Point:    pointA,
				Normal:   normalA,
				Wind:     outWind,
				T:        a.TAtAngle(angle),
			})
		}
	}
	pointB := ray.PointAtDistance(tb)
	normalB := pointB.Sub(a.center).Normalize()
	if angle := normalB.Angle(); a.ContainsAngle(angle) {
		out = append(out, RayIntersection{
			Distance: tb,
			Point:    pointB,
			Normal:   normalB.Negate(),
			Wind:     inWind,
			T:        a.TAtAngle(angle),
		})
	}
	return out
}

func (a *Arc) WindingIntersection(ray Ray2) int {
	return sumWinds(a.Intersection(ray))
}

// elliptical returns the arc as an elliptical arc with the same
// parametrization.
func (a *Arc) elliptical() *EllipticalArc {
	return mustEllipticalArc(a.center, a.radius, a.radius, 0, a.startAngle, a.endAngle, a.anticlockwise)
}

// Transformed returns the arc mapped through m. Matrices that do not preserve
// circles produce an [EllipticalArc].
func (a *Arc) Transformed(m Matrix3) (Segment, error) {
	seg, err := a.elliptical().Transformed(m)
	if err != nil {
		return nil, err
	}
	e := seg.(*EllipticalArc)
	if math.Abs(e.radiusX-e.radiusY) <= 1e-12*e.radiusX {
		return e.circularArc(), nil
	}
	return e, nil
}

func (a *Arc) Reversed() Segment {
	return mustArc(a.center, a.radius, a.ActualEndAngle(), a.startAngle, !a.anticlockwise)
}

func (a *Arc) NondegenerateSegments() []Segment {
	if a.radius <= 0 || a.startAngle == a.endAngle {
		return nil
	}
	return []Segment{a}
}

func (a *Arc) StrokeLeft(lineWidth float64) []Line {
	return offsetLines(a, -lineWidth/2, false)
}

func (a *Arc) StrokeRight(lineWidth float64) []Line {
	return offsetLines(a, lineWidth/2, true)
}

func (a *Arc) SVGPathFragment() string {
	return svgArcFragment(a.radius, a.radius, 0, a.AngleDifference(), a.anticlockwise,
		a.PositionAtAngle((a.startAngle+a.ActualEndAngle())/2), a.End())
}

func (a *Arc) Overlaps(other Segment) []Overlap {
	return Overlaps(a, other)
}

func (a *Arc) WriteToContext(ctx Context) {
	ctx.Arc(a.center.X, a.center.Y, a.radius, a.startAngle, a.endAngle, a.anticlockwise)
}

// IntersectArcs returns the finite intersections of two circular arcs. Arcs on
// the same circle can only meet at their end points.
func IntersectArcs(a, b *Arc) []SegmentIntersection {
	const epsilon = 1e-7
	if a.center.EqualsEpsilon(b.center, epsilon) && math.Abs(a.radius-b.radius) < epsilon {
		return endpointIntersections(a, b, epsilon)
	}
	p0, p1, ok := intersectionCircleCircle(a.center, a.radius, b.center, b.radius)
	if !ok {
		return nil
	}
	candidates := []Point{p0}
	if !p1.EqualsEpsilon(p0, epsilon) {
		candidates = append(candidates, p1)
	}
	var out []SegmentIntersection
	for _, p := range candidates {
		angleA := p.Sub(a.center).Angle()
		angleB := p.Sub(b.center).Angle()
		if a.ContainsAngle(angleA) && b.ContainsAngle(angleB) {
			out = append(out, SegmentIntersection{Point: p, AT: a.TAtAngle(angleA), BT: b.TAtAngle(angleB)})
		}
	}
	return out
}

// intersectionCircleCircle returns the intersections of two circles. It reports
// false for concentric circles and circles that do not touch.
func intersectionCircleCircle(c0 Point, r0 float64, c1 Point, r1 float64) (Point, Point, bool) {
	dist := c0.Distance(c1)
	if dist < math.Abs(r0-r1) || r0+r1 < dist || c0 == c1 {
		return Point{}, Point{}, false
	}
	dist2 := dist * dist

	k := r0*r0 - r1*r1
	b := 0.5 * k / dist2
	c := 0.5 * math.Sqrt(max(0, 2.0*(r0*r0+r1*r1)/dist2-k*k/(dist2*dist2)-1.0))

	mid := c0.Midpoint(c1).Translate(c1.Sub(c0).Mul(b))
	perp := Vec2{c1.Y - c0.Y, c0.X - c1.X}.Mul(c)
	return mid.Translate(perp), mid.Translate(perp.Negate()), true
}
