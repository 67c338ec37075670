package kite

// Context is a canvas-like drawing sink. Segments draw themselves into it with
// [Segment.WriteToContext].
//
// Transform multiplies the current transformation matrix by m on the right, so
// that m applies to coordinates before the transform that was current. Save and
// Restore push and pop the current transform. As with HTML canvas, Arc draws
// a straight line from the current point to the start of the arc, if there is
// a current point.
type Context interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool)
	Save()
	Restore()
	Transform(m Matrix3)
}

// EllipseContext is implemented by contexts that can draw elliptical arcs
// natively. [EllipticalArc.WriteToContext] prefers it over drawing a unit arc
// under a transform.
type EllipseContext interface {
	Context
	Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, anticlockwise bool)
}

// WritePath draws segs into ctx, moving the current point to the start of each
// segment that does not continue from the end of the previous one.
func WritePath(ctx Context, segs []Segment) {
	const epsilon = 1e-9
	var currentPos option[Point]
	for _, seg := range segs {
		start := seg.Start()
		if !currentPos.isSet || !currentPos.value.EqualsEpsilon(start, epsilon) {
			ctx.MoveTo(start.X, start.Y)
		}
		seg.WriteToContext(ctx)
		currentPos.set(seg.End())
	}
}
