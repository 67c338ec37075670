package kite

import (
	"fmt"
	"math"
)

// DefaultOverlapEpsilon is the tolerance used to decide whether two arcs lie on
// the same underlying circle or ellipse.
const DefaultOverlapEpsilon = 1e-4

// Overlap describes a continuous stretch shared by two segments a and b. On it,
// the parameters are related by tB = A·tA + B, for tA in [T0, T1]. QT0 and QT1
// are the corresponding parameters on b.
type Overlap struct {
	A, B     float64
	T0, T1   float64
	QT0, QT1 float64
}

// newOverlap returns the overlap for the relation tB = a·tA + b, restricted to
// parameters in [0, 1] on both segments. It reports false if that range is
// empty or a single point.
func newOverlap(a, b float64) (Overlap, bool) {
	if a == 0 || !isFinite(a) || !isFinite(b) {
		return Overlap{}, false
	}
	lo, hi := -b/a, (1-b)/a
	if a < 0 {
		lo, hi = hi, lo
	}
	t0 := max(0, lo)
	t1 := min(1, hi)
	if t1-t0 < 1e-10 {
		return Overlap{}, false
	}
	return Overlap{
		A:   a,
		B:   b,
		T0:  t0,
		T1:  t1,
		QT0: a*t0 + b,
		QT1: a*t1 + b,
	}, true
}

// Apply maps a parameter on the first segment to the second.
func (o Overlap) Apply(t float64) float64 {
	return o.A*t + o.B
}

func (o Overlap) String() string {
	return fmt.Sprintf("tB = %g·tA + %g on [%g, %g]", o.A, o.B, o.T0, o.T1)
}

// EllipticalArcOverlapType classifies how the full ellipses underlying two
// elliptical arcs relate, ignoring the arcs' angles and winding.
type EllipticalArcOverlapType uint8

const (
	// OverlapNone means the ellipses are different.
	OverlapNone EllipticalArcOverlapType = iota
	// OverlapMatching means the ellipses have the same center and radii, and
	// rotations that differ by a multiple of π.
	OverlapMatching
	// OverlapOpposite means the ellipses have the same center, swapped radii,
	// and rotations that differ by a multiple of π plus π/2.
	OverlapOpposite
)

func (typ EllipticalArcOverlapType) String() string {
	switch typ {
	case OverlapNone:
		return "none"
	case OverlapMatching:
		return "matching"
	case OverlapOpposite:
		return "opposite"
	default:
		return fmt.Sprintf("EllipticalArcOverlapType(%d)", uint8(typ))
	}
}

// ClassifyOverlap compares the ellipses underlying a and b. The result does not
// depend on the order of the arguments.
func ClassifyOverlap(a, b *EllipticalArc, epsilon float64) EllipticalArcOverlapType {
	if !a.center.EqualsEpsilon(b.center, epsilon) {
		return OverlapNone
	}
	matchingRadii := math.Abs(a.radiusX-b.radiusX) < epsilon && math.Abs(a.radiusY-b.radiusY) < epsilon
	oppositeRadii := math.Abs(a.radiusX-b.radiusY) < epsilon && math.Abs(a.radiusY-b.radiusX) < epsilon
	rotation := a.rotation - b.rotation

	// Folding rotation+π/2 into [0, π) puts multiples of π at π/2, away from
	// the wrap-around.
	if matchingRadii && math.Abs(moduloBetweenDown(rotation+math.Pi/2, 0, math.Pi)-math.Pi/2) < epsilon {
		return OverlapMatching
	}
	if oppositeRadii && math.Abs(moduloBetweenDown(rotation, 0, math.Pi)-math.Pi/2) < epsilon {
		return OverlapOpposite
	}
	return OverlapNone
}

// EllipticalArcOverlaps returns the continuous overlaps of two elliptical arcs.
func EllipticalArcOverlaps(a, b *EllipticalArc) []Overlap {
	if ClassifyOverlap(a, b, DefaultOverlapEpsilon) == OverlapNone {
		return nil
	}
	// Adding the rotations expresses both arcs' angles in the same frame.
	return AngularOverlaps(
		a.startAngle+a.rotation, a.ActualEndAngle()+a.rotation,
		b.startAngle+b.rotation, b.ActualEndAngle()+b.rotation,
	)
}

// ArcOverlaps returns the continuous overlaps of two circular arcs.
func ArcOverlaps(a, b *Arc) []Overlap {
	if a.center.Distance(b.center) > DefaultOverlapEpsilon || math.Abs(a.radius-b.radius) > DefaultOverlapEpsilon {
		return nil
	}
	return AngularOverlaps(a.startAngle, a.ActualEndAngle(), b.startAngle, b.ActualEndAngle())
}

// AngularOverlaps returns the overlaps of two arcs on the same circle, given as
// the angles swept by each, with end angles already resolved for winding. Each
// arc's parameter runs linearly from its start to its end angle.
func AngularOverlaps(start1, end1, start2, end2 float64) []Overlap {
	const epsilon = 1e-10

	// Measure everything relative to arc 1, which then sweeps [0, span1].
	sign := 1.0
	if end1 < start1 {
		sign = -1
	}
	span1 := sign * (end1 - start1)
	s2 := moduloBetweenDown(sign*(start2-start1), 0, twoPi)
	e2 := s2 + sign*(end2-start2)

	var out []Overlap
	add := func(s, e, tS, tE float64) {
		if o, ok := angularOverlapPiece(span1, s, e, tS, tE); ok {
			out = append(out, o)
		}
	}
	switch {
	case e2 < -epsilon:
		wrapT := -s2 / (e2 - s2)
		add(s2, 0, 0, wrapT)
		add(twoPi, e2+twoPi, wrapT, 1)
	case e2 > twoPi+epsilon:
		wrapT := (twoPi - s2) / (e2 - s2)
		add(s2, twoPi, 0, wrapT)
		add(0, e2-twoPi, wrapT, 1)
	default:
		add(s2, e2, 0, 1)
	}
	return out
}

// angularOverlapPiece relates arc 1, sweeping [0, span1], to a piece of arc 2
// that sweeps [s2, e2] while its parameter runs over [tS, tE].
func angularOverlapPiece(span1, s2, e2, tS, tE float64) (Overlap, bool) {
	if span1 <= 0 || s2 == e2 {
		return Overlap{}, false
	}
	// θ = span1·tA and tB = tS + k(θ − s2).
	k := (tE - tS) / (e2 - s2)
	return newOverlap(k*span1, tS-k*s2)
}

// Overlaps returns the continuous overlaps of two segments. Only segments of the
// same family can overlap: lines with lines, and circular and elliptical arcs
// with each other.
func Overlaps(a, b Segment) []Overlap {
	switch a := a.(type) {
	case Line:
		if b, ok := b.(Line); ok {
			if o, ok := lineOverlap(a, b); ok {
				return []Overlap{o}
			}
		}
	case *Arc:
		switch b := b.(type) {
		case *Arc:
			return ArcOverlaps(a, b)
		case *EllipticalArc:
			return EllipticalArcOverlaps(a.elliptical(), b)
		}
	case *EllipticalArc:
		switch b := b.(type) {
		case *Arc:
			return EllipticalArcOverlaps(a, b.elliptical())
		case *EllipticalArc:
			return EllipticalArcOverlaps(a, b)
		}
	}
	return nil
}
