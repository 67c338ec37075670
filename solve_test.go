package kite

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestQuadraticRoots(t *testing.T) {
	tests := []struct {
		a, b, c float64
		want    []float64
	}{
		{1, -3, 2, []float64{1, 2}},
		{-2, 6, -4, []float64{1, 2}},
		{1, -2, 1, []float64{1}},
		{1, 0, 1, nil},
		{0, 2, -4, []float64{2}},
		{0, 0, 1, nil},
		// b/a overflows, so the equation is linear.
		{1e-310, 1, -1, []float64{1}},
		// Nearly linear; the other root is huge and only accurate to a few ulps.
		{1e-300, 1, -1, []float64{-1e300, 1}},
	}
	for _, tt := range tests {
		diff(t, tt.want, quadraticRoots(tt.a, tt.b, tt.c), cmpopts.EquateApprox(1e-15, 0))
	}
}
