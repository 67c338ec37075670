package kite

import (
	"fmt"
	"math"
)

// EllipticalArc is a continuous sweep of an ellipse with the given center,
// radii and rotation. Angles are parameters of the unit circle before the
// ellipse's unit transform is applied, not geometric angles on the ellipse.
//
// After construction and after every setter, the arc is normalized: both radii
// are non-negative, RadiusX ≥ RadiusY, and the angular span in the winding
// direction lies in (−2π, 2π]. Negative radii are folded into the angles and
// the winding direction, and a RadiusY larger than RadiusX is handled by
// rotating the ellipse by π/2.
//
// Derived values are computed on first use and kept until the next mutation.
// An EllipticalArc must not be used concurrently.
type EllipticalArc struct {
	center        Point
	radiusX       float64
	radiusY       float64
	rotation      float64
	startAngle    float64
	endAngle      float64
	anticlockwise bool

	unitTransform   option[*AffineTransform]
	start           option[Point]
	end             option[Point]
	startTangent    option[Vec2]
	endTangent      option[Vec2]
	actualEndAngle  option[float64]
	isFullPerimeter option[bool]
	angleDifference option[float64]
	unitArcSegment  option[*Arc]
	bounds          option[Rect]
	svgPathFragment option[string]

	changed emitter
}

var _ Segment = (*EllipticalArc)(nil)

type ellipticalArcParams struct {
	center        Point
	radiusX       float64
	radiusY       float64
	rotation      float64
	startAngle    float64
	endAngle      float64
	anticlockwise bool
}

func (p ellipticalArcParams) normalize() (ellipticalArcParams, error) {
	if !p.center.IsFinite() || !isFinite(p.radiusX) || !isFinite(p.radiusY) ||
		!isFinite(p.rotation) || !isFinite(p.startAngle) || !isFinite(p.endAngle) {
		return p, fmt.Errorf("%w: elliptical arc at %v with radii (%g, %g), rotation %g, angles %g to %g",
			ErrNonFinite, p.center, p.radiusX, p.radiusY, p.rotation, p.startAngle, p.endAngle)
	}
	if p.radiusX < 0 {
		// (−rx·cos θ, ry·sin θ) is (rx·cos(π−θ), ry·sin(π−θ)).
		p.radiusX = -p.radiusX
		p.startAngle = math.Pi - p.startAngle
		p.endAngle = math.Pi - p.endAngle
		p.anticlockwise = !p.anticlockwise
	}
	if p.radiusY < 0 {
		p.radiusY = -p.radiusY
		p.startAngle = -p.startAngle
		p.endAngle = -p.endAngle
		p.anticlockwise = !p.anticlockwise
	}
	if p.radiusX < p.radiusY {
		p.rotation += math.Pi / 2
		p.startAngle -= math.Pi / 2
		p.endAngle -= math.Pi / 2
		p.radiusX, p.radiusY = p.radiusY, p.radiusX
		if p.radiusX < p.radiusY {
			return p, fmt.Errorf("%w: (%g, %g)", ErrUnsupportedRadii, p.radiusX, p.radiusY)
		}
	}
	if err := validateSpan(p.startAngle, p.endAngle, p.anticlockwise); err != nil {
		return p, err
	}
	return p, nil
}

// NewEllipticalArc returns a normalized elliptical arc. It returns an error
// wrapping [ErrNonFinite], [ErrUnsupportedRadii] or [ErrAmbiguousSpan] for
// arguments that do not describe a usable arc.
func NewEllipticalArc(
	center Point,
	radiusX float64,
	radiusY float64,
	rotation float64,
	startAngle float64,
	endAngle float64,
	anticlockwise bool,
) (*EllipticalArc, error) {
	e := &EllipticalArc{}
	err := e.update(ellipticalArcParams{
		center:        center,
		radiusX:       radiusX,
		radiusY:       radiusY,
		rotation:      rotation,
		startAngle:    startAngle,
		endAngle:      endAngle,
		anticlockwise: anticlockwise,
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// mustEllipticalArc is NewEllipticalArc for arguments derived from an existing
// valid arc.
func mustEllipticalArc(
	center Point,
	radiusX float64,
	radiusY float64,
	rotation float64,
	startAngle float64,
	endAngle float64,
	anticlockwise bool,
) *EllipticalArc {
	e, err := NewEllipticalArc(center, radiusX, radiusY, rotation, startAngle, endAngle, anticlockwise)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *EllipticalArc) params() ellipticalArcParams {
	return ellipticalArcParams{
		center:        e.center,
		radiusX:       e.radiusX,
		radiusY:       e.radiusY,
		rotation:      e.rotation,
		startAngle:    e.startAngle,
		endAngle:      e.endAngle,
		anticlockwise: e.anticlockwise,
	}
}

// update normalizes p and, if that succeeds, stores it. On error, e is left
// unchanged.
func (e *EllipticalArc) update(p ellipticalArcParams) error {
	p, err := p.normalize()
	if err != nil {
		return err
	}
	e.center = p.center
	e.radiusX = p.radiusX
	e.radiusY = p.radiusY
	e.rotation = p.rotation
	e.startAngle = p.startAngle
	e.endAngle = p.endAngle
	e.anticlockwise = p.anticlockwise
	e.invalidate()
	return nil
}

func (e *EllipticalArc) invalidate() {
	e.unitTransform.clear()
	e.start.clear()
	e.end.clear()
	e.startTangent.clear()
	e.endTangent.clear()
	e.actualEndAngle.clear()
	e.isFullPerimeter.clear()
	e.angleDifference.clear()
	e.unitArcSegment.clear()
	e.bounds.clear()
	e.svgPathFragment.clear()
	e.changed.emit()
}

// OnChange registers fn to be called after every successful mutation. The
// returned function unregisters it.
func (e *EllipticalArc) OnChange(fn func()) (remove func()) {
	return e.changed.add(fn)
}

func (e *EllipticalArc) SetCenter(center Point) error {
	p := e.params()
	p.center = center
	return e.update(p)
}

func (e *EllipticalArc) SetRadiusX(radiusX float64) error {
	p := e.params()
	p.radiusX = radiusX
	return e.update(p)
}

func (e *EllipticalArc) SetRadiusY(radiusY float64) error {
	p := e.params()
	p.radiusY = radiusY
	return e.update(p)
}

func (e *EllipticalArc) SetRotation(rotation float64) error {
	p := e.params()
	p.rotation = rotation
	return e.update(p)
}

func (e *EllipticalArc) SetStartAngle(startAngle float64) error {
	p := e.params()
	p.startAngle = startAngle
	return e.update(p)
}

func (e *EllipticalArc) SetEndAngle(endAngle float64) error {
	p := e.params()
	p.endAngle = endAngle
	return e.update(p)
}

func (e *EllipticalArc) SetAnticlockwise(anticlockwise bool) error {
	p := e.params()
	p.anticlockwise = anticlockwise
	return e.update(p)
}

func (e *EllipticalArc) Center() Point       { return e.center }
func (e *EllipticalArc) RadiusX() float64    { return e.radiusX }
func (e *EllipticalArc) RadiusY() float64    { return e.radiusY }
func (e *EllipticalArc) Rotation() float64   { return e.rotation }
func (e *EllipticalArc) StartAngle() float64 { return e.startAngle }
func (e *EllipticalArc) EndAngle() float64   { return e.endAngle }
func (e *EllipticalArc) Anticlockwise() bool { return e.anticlockwise }

func (e *EllipticalArc) String() string {
	return fmt.Sprintf("EllipticalArc(%v, %g, %g, %g, %g, %g, %t)",
		e.center, e.radiusX, e.radiusY, e.rotation, e.startAngle, e.endAngle, e.anticlockwise)
}

// unit returns the cached unit transform. It must not be mutated.
func (e *EllipticalArc) unit() *AffineTransform {
	return e.unitTransform.get(func() *AffineTransform {
		m := Translate(Vec2(e.center)).Mul(Rotate(e.rotation)).Mul(Scale(e.radiusX, e.radiusY))
		return &AffineTransform{matrix: m}
	})
}

// UnitTransform returns a copy of the transform that maps the unit circle onto
// the arc's ellipse: translate(center)·rotate(rotation)·scale(radiusX, radiusY).
func (e *EllipticalArc) UnitTransform() *AffineTransform {
	return e.unit().Copy()
}

func (e *EllipticalArc) Start() Point {
	return e.start.get(func() Point { return e.PositionAtAngle(e.startAngle) })
}

func (e *EllipticalArc) End() Point {
	return e.end.get(func() Point { return e.PositionAtAngle(e.endAngle) })
}

func (e *EllipticalArc) StartTangent() Vec2 {
	return e.startTangent.get(func() Vec2 { return e.TangentAtAngle(e.startAngle) })
}

func (e *EllipticalArc) EndTangent() Vec2 {
	return e.endTangent.get(func() Vec2 { return e.TangentAtAngle(e.endAngle) })
}

// ActualEndAngle returns the end angle adjusted by a multiple of 2π so that the
// arc sweeps monotonically from StartAngle to it.
func (e *EllipticalArc) ActualEndAngle() float64 {
	return e.actualEndAngle.get(func() float64 {
		return actualEndAngle(e.startAngle, e.endAngle, e.anticlockwise)
	})
}

// IsFullPerimeter reports whether the arc covers the whole ellipse.
func (e *EllipticalArc) IsFullPerimeter() bool {
	return e.isFullPerimeter.get(func() bool {
		return isFullPerimeter(e.startAngle, e.endAngle, e.anticlockwise)
	})
}

// AngleDifference returns the swept angle, in [0, 2π].
func (e *EllipticalArc) AngleDifference() float64 {
	return e.angleDifference.get(func() float64 {
		return angleDifference(e.startAngle, e.endAngle, e.anticlockwise)
	})
}

// UnitArcSegment returns the circular arc on the unit circle that the unit
// transform maps onto this arc.
func (e *EllipticalArc) UnitArcSegment() *Arc {
	return e.unitArcSegment.get(func() *Arc {
		return mustArc(Point{}, 1, e.startAngle, e.endAngle, e.anticlockwise)
	})
}

// AngleAt returns the angle at parameter t.
func (e *EllipticalArc) AngleAt(t float64) float64 {
	return e.startAngle + (e.ActualEndAngle()-e.startAngle)*t
}

// TAtAngle returns the parameter at angle, after folding the angle into the
// swept range with [EllipticalArc.MapAngle].
func (e *EllipticalArc) TAtAngle(angle float64) float64 {
	return (e.MapAngle(angle) - e.startAngle) / (e.ActualEndAngle() - e.startAngle)
}

// MapAngle returns the angle equivalent to angle modulo 2π that lies in the
// range swept by the arc. Angles within 1e-8 of an end point snap to it.
func (e *EllipticalArc) MapAngle(angle float64) float64 {
	return mapAngle(angle, e.startAngle, e.ActualEndAngle())
}

// ContainsAngle reports whether the arc passes through angle, modulo 2π.
func (e *EllipticalArc) ContainsAngle(angle float64) bool {
	return containsAngle(angle, e.startAngle, e.endAngle, e.AngleDifference(), e.anticlockwise)
}

func (e *EllipticalArc) PositionAtAngle(angle float64) Point {
	return e.unit().TransformPosition2(Point(VecFromAngle(angle)))
}

// TangentAtAngle returns the unit tangent at angle, pointing in the direction of
// travel.
func (e *EllipticalArc) TangentAtAngle(angle float64) Vec2 {
	ut := e.unit()
	if !ut.Invertible() {
		// Without an inverse there is no normal. Use the derivative, which at
		// least has the right direction as long as one radius is non-zero.
		d := ut.TransformDelta2(VecFromAngle(angle + math.Pi/2)).Normalize()
		if e.anticlockwise {
			return d.Negate()
		}
		return d
	}
	normal := ut.TransformNormal2(VecFromAngle(angle))
	if e.anticlockwise {
		return normal.Perpendicular()
	}
	return normal.Perpendicular().Negate()
}

func (e *EllipticalArc) PositionAt(t float64) Point {
	return e.PositionAtAngle(e.AngleAt(t))
}

func (e *EllipticalArc) TangentAt(t float64) Vec2 {
	return e.TangentAtAngle(e.AngleAt(t))
}

// CurvatureAt returns the signed curvature rx·ry / (rx²·sin²θ + ry²·cos²θ)^(3/2),
// negated for anticlockwise arcs.
func (e *EllipticalArc) CurvatureAt(t float64) float64 {
	sin, cos := math.Sincos(e.AngleAt(t))
	rx, ry := e.radiusX, e.radiusY
	k := rx * ry / math.Pow(rx*rx*sin*sin+ry*ry*cos*cos, 1.5)
	if e.anticlockwise {
		return -k
	}
	return k
}

func (e *EllipticalArc) BoundingBox() Rect {
	return e.bounds.get(e.computeBounds)
}

func (e *EllipticalArc) computeBounds() Rect {
	r := NewRectFromPoints(e.Start(), e.End())
	if e.startAngle == e.endAngle {
		return r
	}
	// The angles at which the tangent is vertical (x) or horizontal (y).
	ratio := e.radiusY / e.radiusX
	tan := math.Tan(e.rotation)
	xAngle := math.Atan(-ratio * tan)
	yAngle := math.Atan(ratio / tan)
	for _, angle := range [...]float64{xAngle, xAngle + math.Pi, yAngle, yAngle + math.Pi} {
		if !math.IsNaN(angle) && e.ContainsAngle(angle) {
			r = r.UnionPoint(e.PositionAtAngle(angle))
		}
	}
	return r
}

// NondegenerateSegments returns nothing for arcs without extent, a circular
// [Arc] for arcs with equal radii, and the arc itself otherwise.
func (e *EllipticalArc) NondegenerateSegments() []Segment {
	if e.radiusX <= 0 || e.radiusY <= 0 || e.startAngle == e.endAngle {
		return nil
	}
	if e.radiusX == e.radiusY {
		return []Segment{e.circularArc()}
	}
	return []Segment{e}
}

// circularArc returns the equivalent circular arc, using RadiusX as the radius.
func (e *EllipticalArc) circularArc() *Arc {
	start := e.startAngle + e.rotation
	end := e.endAngle + e.rotation
	if e.IsFullPerimeter() {
		end = fullTurnEnd(start, e.anticlockwise)
	}
	return mustArc(e.center, e.radiusX, start, end, e.anticlockwise)
}

// SVGPathFragment returns one SVG arc command, or two for arcs that sweep
// nearly a full turn, since a single command cannot end where it starts.
func (e *EllipticalArc) SVGPathFragment() string {
	return e.svgPathFragment.get(func() string {
		mid := e.PositionAtAngle((e.startAngle + e.ActualEndAngle()) / 2)
		return svgArcFragment(e.radiusX, e.radiusY, e.rotation*180/math.Pi,
			e.AngleDifference(), e.anticlockwise, mid, e.End())
	})
}

// Transformed returns the arc mapped through m.
//
// When m keeps the ellipse's axes perpendicular, the new radii and rotation
// are read off the transformed axis vectors. Otherwise they are derived from
// the singular value decomposition of the combined linear map and the end
// points are re-parametrized. Matrices that collapse a non-degenerate arc in
// that case yield an error wrapping [ErrSingularMatrix].
func (e *EllipticalArc) Transformed(m Matrix3) (Segment, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	center := m.TransformPoint(e.center)
	major := m.TransformVec(Polar(e.radiusX, e.rotation))
	minor := m.TransformVec(Polar(e.radiusY, e.rotation+math.Pi/2))

	if math.Abs(major.Dot(minor)) <= 1e-12*major.Hypot()*minor.Hypot() {
		start, end, anticlockwise := e.startAngle, e.endAngle, e.anticlockwise
		if m.Determinant() < 0 {
			start, end, anticlockwise = -start, -end, !anticlockwise
		}
		if e.IsFullPerimeter() {
			end = fullTurnEnd(start, anticlockwise)
		}
		return NewEllipticalArc(center, major.Hypot(), minor.Hypot(), major.Angle(), start, end, anticlockwise)
	}

	e0 := &m.Entries
	linear := NewAffine(e0[0], e0[1], 0, e0[3], e0[4], 0).
		Mul(Rotate(e.rotation)).
		Mul(Scale(e.radiusX, e.radiusY))
	radii, rotation := linear.svd()
	frame := Rotate(rotation).Mul(Scale(radii.X, radii.Y))
	frameInv, err := frame.Inverse()
	if err != nil {
		return nil, fmt.Errorf("transforming %v by %v: %w", e, m, err)
	}
	// reparam maps the old unit circle onto the new one.
	reparam := frameInv.Mul(linear)
	angleOf := func(angle float64) float64 {
		return reparam.TransformVec(VecFromAngle(angle)).Angle()
	}
	anticlockwise := e.anticlockwise
	if reparam.Determinant() < 0 {
		anticlockwise = !anticlockwise
	}
	start := angleOf(e.startAngle)
	var end float64
	switch {
	case e.IsFullPerimeter():
		end = fullTurnEnd(start, anticlockwise)
	case e.startAngle == e.endAngle:
		end = start
	default:
		end = angleOf(e.endAngle)
	}
	return NewEllipticalArc(center, radii.X, radii.Y, rotation, start, end, anticlockwise)
}

func fullTurnEnd(start float64, anticlockwise bool) float64 {
	if anticlockwise {
		return start - twoPi
	}
	return start + twoPi
}

// ConicMatrix returns the symmetric matrix C of the arc's full ellipse, so that
// pᵀ·C·p = 0 for homogeneous points p on the ellipse. It returns an error
// wrapping [ErrSingularMatrix] for degenerate ellipses.
func (e *EllipticalArc) ConicMatrix() (Matrix3, error) {
	ut := e.unit()
	inv, err := ut.Inverse()
	if err != nil {
		return Matrix3{}, err
	}
	invT, err := ut.InverseTransposed()
	if err != nil {
		return Matrix3{}, err
	}
	unitCircle := RowMajor(
		1, 0, 0,
		0, 1, 0,
		0, 0, -1,
	)
	return invT.Mul(unitCircle).Mul(inv), nil
}

func (e *EllipticalArc) Subdivided(t float64) []Segment {
	if t <= 0 || t >= 1 {
		return []Segment{e}
	}
	angle := e.AngleAt(t)
	return []Segment{
		mustEllipticalArc(e.center, e.radiusX, e.radiusY, e.rotation, e.startAngle, angle, e.anticlockwise),
		mustEllipticalArc(e.center, e.radiusX, e.radiusY, e.rotation, angle, e.ActualEndAngle(), e.anticlockwise),
	}
}

func (e *EllipticalArc) Reversed() Segment {
	return mustEllipticalArc(e.center, e.radiusX, e.radiusY, e.rotation, e.ActualEndAngle(), e.startAngle, !e.anticlockwise)
}

// OffsetTo approximates the curve at distance r from the arc, measured along
// the perpendicular of the tangent, with a polyline. If reverse is set, the
// polyline runs from the end of the arc to its start.
func (e *EllipticalArc) OffsetTo(r float64, reverse bool) []Line {
	return offsetLines(e, r, reverse)
}

func (e *EllipticalArc) StrokeLeft(lineWidth float64) []Line {
	return e.OffsetTo(-lineWidth/2, false)
}

func (e *EllipticalArc) StrokeRight(lineWidth float64) []Line {
	return e.OffsetTo(lineWidth/2, true)
}

// Intersection returns the hits of ray with the arc. The ray is mapped into the
// space of the unit circle, intersected with [EllipticalArc.UnitArcSegment],
// and the hits are mapped back. Degenerate arcs are never hit.
func (e *EllipticalArc) Intersection(ray Ray2) []RayIntersection {
	ut := e.unit()
	if !ut.Invertible() {
		return nil
	}
	hits := e.UnitArcSegment().Intersection(ut.InverseRay2(ray))
	for i := range hits {
		hit := &hits[i]
		hit.Point = ut.TransformPosition2(hit.Point)
		hit.Distance = ray.Position.Distance(hit.Point)
		hit.Normal = ut.TransformNormal2(hit.Normal)
	}
	return hits
}

func (e *EllipticalArc) WindingIntersection(ray Ray2) int {
	return sumWinds(e.Intersection(ray))
}

// Overlaps returns the continuous overlaps of the arc with other.
func (e *EllipticalArc) Overlaps(other Segment) []Overlap {
	return Overlaps(e, other)
}

// WriteToContext draws the arc with the context's Ellipse method if it has one.
// Otherwise it draws the unit arc under the unit transform.
func (e *EllipticalArc) WriteToContext(ctx Context) {
	if ec, ok := ctx.(EllipseContext); ok {
		ec.Ellipse(e.center.X, e.center.Y, e.radiusX, e.radiusY, e.rotation, e.startAngle, e.endAngle, e.anticlockwise)
		return
	}
	ctx.Save()
	ctx.Transform(e.unit().Matrix())
	ctx.Arc(0, 0, 1, e.startAngle, e.endAngle, e.anticlockwise)
	ctx.Restore()
}

// IntersectEllipticalArcs returns the finite intersections of two elliptical
// arcs. Arcs on the same ellipse can only meet at their end points.
func IntersectEllipticalArcs(a, b *EllipticalArc) []SegmentIntersection {
	if ClassifyOverlap(a, b, DefaultOverlapEpsilon) != OverlapNone {
		return endpointIntersections(a, b, 1e-7)
	}
	return boundsIntersect(a, b)
}

// intersectLineEllipticalArc intersects l with the conic of e's ellipse and
// keeps the points that lie on the arc. AT is the parameter on l.
func intersectLineEllipticalArc(l Line, e *EllipticalArc) []SegmentIntersection {
	const epsilon = 1e-9
	conic, err := e.ConicMatrix()
	if err != nil {
		return nil
	}
	d := l.P1.Sub(l.P0)
	p := [3]float64{l.P0.X, l.P0.Y, 1}
	v := [3]float64{d.X, d.Y, 0}
	c0 := quadForm(conic, p, p)
	c1 := quadForm(conic, p, v) + quadForm(conic, v, p)
	c2 := quadForm(conic, v, v)
	ut := e.unit()
	var out []SegmentIntersection
	for _, s := range quadraticRoots(c2, c1, c0) {
		if s < -epsilon || s > 1+epsilon {
			continue
		}
		s = clamp01(s)
		pt := l.PositionAt(s)
		angle := Vec2(ut.InversePosition2(pt)).Angle()
		if !e.ContainsAngle(angle) {
			continue
		}
		out = append(out, SegmentIntersection{Point: pt, AT: s, BT: e.TAtAngle(angle)})
	}
	return out
}

// quadForm returns uᵀ·m·v.
func quadForm(m Matrix3, u, v [3]float64) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum += u[i] * m.Entries[3*i+j] * v[j]
		}
	}
	return sum
}
