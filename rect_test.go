package kite

import (
	"testing"
)

func TestRectUnion(t *testing.T) {
	r := Nothing
	if !r.IsEmpty() {
		t.Fatal("Nothing should be empty")
	}
	for _, p := range []Point{Pt(1, 2), Pt(-1, 5), Pt(0, 0)} {
		r = r.UnionPoint(p)
	}
	diff(t, Rect{-1, 0, 1, 5}, r)
	diff(t, r, Nothing.Union(r))
	diff(t, Rect{-1, 0, 3, 5}, r.Union(Rect{2, 1, 3, 2}))

	// A single point is a zero-area rectangle, not an empty one.
	if p := Nothing.UnionPoint(Pt(1, 1)); p.IsEmpty() || p.Width() != 0 {
		t.Errorf("got %v", p)
	}
}

func TestRectIntersects(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	tests := []struct {
		o    Rect
		want bool
	}{
		{Rect{5, 5, 15, 15}, true},
		{Rect{10, 10, 20, 20}, true},
		{Rect{2, 2, 3, 3}, true},
		{Rect{11, 0, 12, 10}, false},
		{Rect{0, -5, 10, -1}, false},
		{Nothing, false},
	}
	for _, tt := range tests {
		if got := r.Intersects(tt.o); got != tt.want {
			t.Errorf("%v intersects %v: got %t, want %t", r, tt.o, got, tt.want)
		}
	}
	if !r.Contains(Pt(10, 0)) || r.Contains(Pt(10.5, 0)) {
		t.Error("Contains")
	}
}

func TestRectString(t *testing.T) {
	diff(t, "[0, 2]×[1, 3]", Rect{0, 1, 2, 3}.String())
	diff(t, Rect{0, 1, 2, 3}, NewRectFromPoints(Pt(2, 1), Pt(0, 3)))
	diff(t, Pt(1, 2), Rect{0, 1, 2, 3}.Center())
}
