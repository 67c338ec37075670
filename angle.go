package kite

import (
	"fmt"
	"math"
)

const twoPi = 2 * math.Pi

// fullTurnEpsilon absorbs the rounding of end angles computed as start ± 2π.
const fullTurnEpsilon = 1e-12

// moduloBetweenDown folds value into [lo, hi).
func moduloBetweenDown(value, lo, hi float64) float64 {
	divisor := hi - lo
	partial := math.Mod(value-lo, divisor)
	if partial < 0 {
		partial += divisor
	}
	return partial + lo
}

// moduloBetweenUp folds value into (lo, hi].
func moduloBetweenUp(value, lo, hi float64) float64 {
	return -moduloBetweenDown(-value, -hi, -lo)
}

// The functions below implement the angular bookkeeping shared by [Arc] and
// [EllipticalArc]. Angles grow clockwise in a y-down coordinate system;
// anticlockwise arcs sweep towards smaller angles.

// validateSpan rejects spans that sweep more than a full turn, or exactly a full
// turn against the winding direction.
func validateSpan(start, end float64, anticlockwise bool) error {
	sweep := end - start
	if anticlockwise {
		sweep = start - end
	}
	if sweep <= -twoPi || sweep > twoPi+fullTurnEpsilon {
		return fmt.Errorf("%w: start %g, end %g, anticlockwise %t", ErrAmbiguousSpan, start, end, anticlockwise)
	}
	return nil
}

// actualEndAngle returns the end angle pulled into the winding direction, so
// that the arc sweeps from start to the result monotonically.
func actualEndAngle(start, end float64, anticlockwise bool) float64 {
	switch {
	case start == end:
		return start
	case anticlockwise && start < end:
		return end - twoPi
	case !anticlockwise && start > end:
		return end + twoPi
	default:
		return end
	}
}

func isFullPerimeter(start, end float64, anticlockwise bool) bool {
	if anticlockwise {
		return start-end >= twoPi-fullTurnEpsilon
	}
	return end-start >= twoPi-fullTurnEpsilon
}

// angleDifference returns the swept angle, in [0, 2π].
func angleDifference(start, end float64, anticlockwise bool) float64 {
	if isFullPerimeter(start, end, anticlockwise) {
		return twoPi
	}
	diff := end - start
	if anticlockwise {
		diff = start - end
	}
	if diff < 0 {
		diff += twoPi
	}
	return diff
}

// containsAngle reports whether angle, taken modulo 2π, lies on the swept part of
// the arc.
func containsAngle(angle, start, end, diff float64, anticlockwise bool) bool {
	var normalized float64
	if anticlockwise {
		normalized = angle - end
	} else {
		normalized = angle - start
	}
	return moduloBetweenDown(normalized, 0, twoPi) <= diff
}

// mapAngle folds angle into the range swept from start to actualEnd. Angles
// within 1e-8 of either endpoint snap to it.
func mapAngle(angle, start, actualEnd float64) float64 {
	if math.Abs(moduloBetweenDown(angle-start, -math.Pi, math.Pi)) < 1e-8 {
		return start
	}
	if math.Abs(moduloBetweenDown(angle-actualEnd, -math.Pi, math.Pi)) < 1e-8 {
		return actualEnd
	}
	if start > actualEnd {
		return moduloBetweenUp(angle, start-twoPi, start)
	}
	return moduloBetweenDown(angle, start, start+twoPi)
}
