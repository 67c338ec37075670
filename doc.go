// Package kite provides 2D geometry primitives for vector graphics: lines,
// circular arcs and elliptical arcs, together with the affine transforms that
// place them in a scene.
//
// # Segments
//
// [Segment] describes a piece of a path with explicit start and end points. It
// can be evaluated at t ∈ [0, 1] for positions, unit tangents and curvature,
// intersected with rays and other segments, transformed, reversed, subdivided,
// offset for stroking, and written as SVG path data or to a drawing [Context].
//
// This package includes the following segments:
//   - [Line]
//   - [Arc]
//   - [EllipticalArc]
//
// [Intersect] finds the points two segments have in common, [Overlaps] finds the
// stretches they share. [WritePath] and [SVGPath] turn a sequence of segments
// into a single path, inserting pen moves wherever consecutive segments do not
// connect.
//
// # Arcs and angles
//
// Arcs are described by a start angle, an end angle and a winding direction.
// Angles grow clockwise in a y-down coordinate system, so clockwise arcs sweep
// towards increasing angles and anticlockwise arcs towards decreasing ones. The
// span in the winding direction always lies in (−2π, 2π]. A span of 2π is a
// full perimeter. Spans that do not fit are rejected with [ErrAmbiguousSpan].
//
// The angles of an [EllipticalArc] are those of the unit circle that its
// [EllipticalArc.UnitTransform] maps onto the ellipse. Elliptical arcs are
// normalized so that both radii are non-negative and RadiusX ≥ RadiusY; the
// stored angles, rotation and winding change accordingly, but the traced curve
// does not.
//
// # Transforms
//
// [Matrix3] is an immutable 3x3 matrix tagged with a [MatrixType], which lets
// common cases such as translations skip the general code paths.
// [AffineTransform] wraps a mutable matrix and caches its inverse, transpose and
// inverse transpose. It maps positions, deltas, normals, rays and bounds in both
// directions. Transforms and elliptical arcs notify listeners registered with
// OnChange whenever they are modified.
//
// # Serialization
//
// Every segment converts to and from a flat, JSON-friendly record tagged with
// its type name, see [MarshalSegment] and [UnmarshalSegment]. Deserialized arcs
// are normalized like constructed ones.
package kite
