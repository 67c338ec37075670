package kite

// Ray2 is a half-line starting at Position and extending along Direction.
// Direction is expected to have unit length; [NewRay2] ensures this.
type Ray2 struct {
	Position  Point
	Direction Vec2
}

// NewRay2 returns a ray from position along the normalized direction.
func NewRay2(position Point, direction Vec2) Ray2 {
	return Ray2{
		Position:  position,
		Direction: direction.Normalize(),
	}
}

// PointAtDistance returns the point at distance d along the ray.
func (r Ray2) PointAtDistance(d float64) Point {
	return r.Position.Translate(r.Direction.Mul(d))
}

func (r Ray2) String() string {
	return r.Position.String() + "→" + r.Direction.String()
}

// RayIntersection is one crossing of a ray with a segment.
type RayIntersection struct {
	// Distance along the ray.
	Distance float64
	// Point of intersection.
	Point Point
	// Normal is the unit normal of the segment at Point, pointing against the ray.
	Normal Vec2
	// Wind is +1 or −1 depending on the side from which the ray crosses the
	// segment, and 0 for tangential hits.
	Wind int
	// T is the segment parameter of Point.
	T float64
}
