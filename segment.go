package kite

import (
	"slices"
)

// Segment is one continuous piece of a path, parametrized by t ∈ [0, 1].
//
// The package provides three kinds of segments: [Line], [Arc] and
// [EllipticalArc].
type Segment interface {
	Start() Point
	End() Point
	// StartTangent and EndTangent return unit tangents in the direction of
	// increasing t.
	StartTangent() Vec2
	EndTangent() Vec2

	PositionAt(t float64) Point
	TangentAt(t float64) Vec2
	// CurvatureAt returns the signed curvature at t. Its sign follows the
	// direction in which the segment turns.
	CurvatureAt(t float64) float64

	// Subdivided splits the segment at t. It returns the segment itself if t is
	// not strictly between 0 and 1.
	Subdivided(t float64) []Segment
	BoundingBox() Rect

	// Intersection returns all hits of ray with the segment, ordered by
	// distance along the ray.
	Intersection(ray Ray2) []RayIntersection
	// WindingIntersection returns the sum of the winds of all hits.
	WindingIntersection(ray Ray2) int

	// Overlaps returns the continuous stretches shared with other, see
	// [Overlaps].
	Overlaps(other Segment) []Overlap

	Transformed(m Matrix3) (Segment, error)
	// Reversed returns the segment traversed in the opposite direction, so that
	// s.Reversed().PositionAt(t) == s.PositionAt(1-t).
	Reversed() Segment
	// NondegenerateSegments returns an equivalent list of segments without
	// zero-length pieces, using the cheapest representation available.
	NondegenerateSegments() []Segment

	// StrokeLeft and StrokeRight return polylines offset by half of lineWidth to
	// either side. StrokeRight runs backwards, so that StrokeLeft of a path
	// followed by StrokeRight of the reversed path outlines the stroke.
	StrokeLeft(lineWidth float64) []Line
	StrokeRight(lineWidth float64) []Line

	// SVGPathFragment returns the SVG path commands that draw the segment,
	// assuming the current point is the segment's start.
	SVGPathFragment() string
	// WriteToContext draws the segment, assuming the context's current point is
	// the segment's start.
	WriteToContext(ctx Context)
	Serialize() SerializedSegment
}

// SegmentIntersection is a point shared by two segments a and b, with the
// parameters at which each reaches it.
type SegmentIntersection struct {
	Point Point
	AT    float64
	BT    float64
}

func sumWinds(hits []RayIntersection) int {
	wind := 0
	for _, hit := range hits {
		wind += hit.Wind
	}
	return wind
}

// Intersect returns the finite intersections of two segments. Segments that
// overlap continuously, as reported by [Overlaps], only report isolated
// intersections.
func Intersect(a, b Segment) []SegmentIntersection {
	switch a := a.(type) {
	case Line:
		switch b := b.(type) {
		case Line:
			if hit, ok := a.IntersectLine(b); ok {
				return []SegmentIntersection{hit}
			}
			return nil
		case *Arc:
			return intersectLineEllipticalArc(a, b.elliptical())
		case *EllipticalArc:
			return intersectLineEllipticalArc(a, b)
		}
	case *Arc:
		switch b := b.(type) {
		case Line:
			return swapIntersections(intersectLineEllipticalArc(b, a.elliptical()))
		case *Arc:
			return IntersectArcs(a, b)
		case *EllipticalArc:
			return IntersectEllipticalArcs(a.elliptical(), b)
		}
	case *EllipticalArc:
		switch b := b.(type) {
		case Line:
			return swapIntersections(intersectLineEllipticalArc(b, a))
		case *Arc:
			return IntersectEllipticalArcs(a, b.elliptical())
		case *EllipticalArc:
			return IntersectEllipticalArcs(a, b)
		}
	}
	return boundsIntersect(a, b)
}

func swapIntersections(hits []SegmentIntersection) []SegmentIntersection {
	for i := range hits {
		hits[i].AT, hits[i].BT = hits[i].BT, hits[i].AT
	}
	return hits
}

// endpointIntersections returns the end points that a and b have in common.
// For segments on the same underlying curve, these are the only isolated
// intersections.
func endpointIntersections(a, b Segment, epsilon float64) []SegmentIntersection {
	var out []SegmentIntersection
	for _, aT := range [...]float64{0, 1} {
		for _, bT := range [...]float64{0, 1} {
			pa, pb := a.PositionAt(aT), b.PositionAt(bT)
			if pa.EqualsEpsilon(pb, epsilon) {
				out = append(out, SegmentIntersection{Point: pa.Midpoint(pb), AT: aT, BT: bT})
			}
		}
	}
	return out
}

const (
	boundsIntersectMaxDepth = 48
	boundsIntersectMinSize  = 1e-10
	boundsIntersectMerge    = 1e-7
)

// boundsIntersect finds intersections by recursively halving both segments and
// discarding pairs whose bounding boxes are disjoint.
func boundsIntersect(a, b Segment) []SegmentIntersection {
	var out []SegmentIntersection
	var search func(a Segment, aT0, aT1 float64, b Segment, bT0, bT1 float64, depth int)
	search = func(a Segment, aT0, aT1 float64, b Segment, bT0, bT1 float64, depth int) {
		ab, bb := a.BoundingBox(), b.BoundingBox()
		if !ab.Intersects(bb) {
			return
		}
		small := max(ab.Width(), ab.Height()) < boundsIntersectMinSize &&
			max(bb.Width(), bb.Height()) < boundsIntersectMinSize
		if small || depth >= boundsIntersectMaxDepth {
			hit := SegmentIntersection{
				Point: a.PositionAt(0.5).Midpoint(b.PositionAt(0.5)),
				AT:    (aT0 + aT1) / 2,
				BT:    (bT0 + bT1) / 2,
			}
			if !slices.ContainsFunc(out, func(o SegmentIntersection) bool {
				return o.Point.EqualsEpsilon(hit.Point, boundsIntersectMerge)
			}) {
				out = append(out, hit)
			}
			return
		}
		aMid, bMid := (aT0+aT1)/2, (bT0+bT1)/2
		as, bs := a.Subdivided(0.5), b.Subdivided(0.5)
		if len(as) != 2 || len(bs) != 2 {
			return
		}
		search(as[0], aT0, aMid, bs[0], bT0, bMid, depth+1)
		search(as[0], aT0, aMid, bs[1], bMid, bT1, depth+1)
		search(as[1], aMid, aT1, bs[0], bT0, bMid, depth+1)
		search(as[1], aMid, aT1, bs[1], bMid, bT1, depth+1)
	}
	search(a, 0, 1, b, 0, 1, 0)
	return out
}

// offsetLines approximates the curve offset by r along the perpendicular of
// its tangent with a polyline, optionally traversed backwards.
func offsetLines(seg Segment, r float64, reverse bool) []Line {
	const quantity = 32
	points := make([]Point, 0, quantity+1)
	for i := 0; i < quantity+1; i++ {
		t := float64(i) / quantity
		if reverse {
			t = 1 - t
		}
		normal := seg.TangentAt(t).Perpendicular().Normalize()
		points = append(points, seg.PositionAt(t).Translate(normal.Mul(r)))
	}
	lines := make([]Line, 0, quantity)
	for i := 0; i < quantity; i++ {
		lines = append(lines, Line{points[i], points[i+1]})
	}
	return lines
}
