package kite

import (
	"errors"
	"math"
	"testing"
)

func TestSVGPath(t *testing.T) {
	tests := []struct {
		name string
		segs []Segment
		want string
	}{
		{"empty", nil, ""},
		{
			"polyline",
			[]Segment{Line{Pt(0, 0), Pt(10, 0)}, Line{Pt(10, 0), Pt(10, 10)}},
			"M 0 0 L 10 0 L 10 10",
		},
		{
			"gap",
			[]Segment{Line{Pt(0, 0), Pt(10, 0)}, Line{Pt(20, 20), Pt(30, 30)}},
			"M 0 0 L 10 0 M 20 20 L 30 30",
		},
		{
			"line and arc",
			[]Segment{
				Line{Pt(0, 10), Pt(12, 10)},
				newTestEllipticalArc(t, Pt(10, 10), 2, 1, 0, 0, math.Pi/2, false),
			},
			"M 0 10 L 12 10 A 2 1 0 0 1 10 11",
		},
		{
			"full circle",
			[]Segment{newTestArc(t, Pt(10, 10), 1, 0, 2*math.Pi, false)},
			"M 11 10 A 1 1 0 0 1 9 10 A 1 1 0 0 1 11 10",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff(t, tt.want, SVGPath(tt.segs...))
		})
	}
}

func TestSVGArcFragment(t *testing.T) {
	mid, end := Pt(8, 10), Pt(12, 10)
	tests := []struct {
		name          string
		diff          float64
		anticlockwise bool
		want          string
	}{
		{"small", 1, false, "A 2 1 30 0 1 12 10"},
		{"just below half", math.Pi - 1e-9, false, "A 2 1 30 0 1 12 10"},
		{"half", math.Pi, false, "A 2 1 30 1 1 12 10"},
		{"anticlockwise large", 4, true, "A 2 1 30 1 0 12 10"},
		{"below split threshold", 2*math.Pi - 0.02, false, "A 2 1 30 1 1 12 10"},
		{"near full", 2*math.Pi - 1e-9, false, "A 2 1 30 0 1 8 10 A 2 1 30 0 1 12 10"},
		{"full", 2 * math.Pi, true, "A 2 1 30 0 0 8 10 A 2 1 30 0 0 12 10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff(t, tt.want, svgArcFragment(2, 1, 30, tt.diff, tt.anticlockwise, mid, end))
		})
	}
}

type failingWriter struct{ n int }

var errWriteFailed = errors.New("write failed")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errWriteFailed
	}
	w.n--
	return len(p), nil
}

func TestWriteSVGError(t *testing.T) {
	segs := []Segment{Line{Pt(0, 0), Pt(1, 0)}, Line{Pt(1, 0), Pt(1, 1)}}
	w := &failingWriter{n: 2}
	if err := WriteSVG(w, segs); !errors.Is(err, errWriteFailed) {
		t.Errorf("got %v, want %v", err, errWriteFailed)
	}
	// Nothing is written after the first failure.
	if w.n != 0 {
		t.Errorf("writer has %d writes left", w.n)
	}
}
