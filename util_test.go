package kite

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats, and structs of floats, with an absolute tolerance.
func approx(epsilon float64) cmp.Option {
	return cmpopts.EquateApprox(0, epsilon)
}

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon || math.IsNaN(d) {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

func assertNearVec(t *testing.T, v0 Vec2, v1 Vec2, epsilon float64) {
	t.Helper()
	if d := v1.Sub(v0).Hypot(); d > epsilon || math.IsNaN(d) {
		t.Fatalf("got %s, expected %s", v0, v1)
	}
}

func assertNearFloat(t *testing.T, got, want, epsilon float64) {
	t.Helper()
	if d := math.Abs(got - want); d > epsilon || math.IsNaN(d) {
		t.Fatalf("got %g, expected %g", got, want)
	}
}

func assertMatrixNear(t *testing.T, got, want Matrix3, epsilon float64) {
	t.Helper()
	for i := range got.Entries {
		if d := math.Abs(got.Entries[i] - want.Entries[i]); d > epsilon || math.IsNaN(d) {
			t.Fatalf("got %v, expected %v", got, want)
		}
	}
}

func mustPanic(t *testing.T, f func()) (v any) {
	t.Helper()
	defer func() {
		v = recover()
		if v == nil {
			t.Fatal("expected a panic")
		}
	}()
	f()
	return nil
}
