package kite

import "math"

// quadraticRoots returns the real roots of a·x² + b·x + c = 0 in ascending
// order, reporting a double root once. If b/a or c/a overflows, a is treated
// as zero and the equation is solved as a linear one. A tiny a that does not
// overflow keeps the quadratic path and yields one huge root.
func quadraticRoots(a, b, c float64) []float64 {
	p, q := b/a, c/a
	if !isFinite(p) || !isFinite(q) {
		if x := -c / b; isFinite(x) {
			return []float64{x}
		}
		return nil
	}
	disc := p*p - 4*q
	var r1 float64
	switch {
	case math.IsInf(disc, 1):
		// p² overflowed. x² + p·x = 0 still yields the large root.
		r1 = -p
	case disc < 0:
		return nil
	case disc == 0:
		return []float64{-p / 2}
	default:
		// Adding terms of equal sign avoids cancellation; the second root
		// follows from Vieta's formula.
		r1 = -(p + math.Copysign(math.Sqrt(disc), p)) / 2
	}
	r2 := q / r1
	if !isFinite(r2) {
		return []float64{r1}
	}
	return []float64{min(r1, r2), max(r1, r2)}
}
