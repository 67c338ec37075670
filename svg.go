package kite

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// svgArcEpsilon is how close to a full turn an arc may get before it is emitted
// as two arc commands.
const svgArcEpsilon = 0.01

func svgNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// svgArcFragment returns the SVG arc commands for an arc that sweeps diff
// radians and ends at end. Arcs that sweep nearly a full turn are split at mid,
// the point halfway along the sweep.
func svgArcFragment(rx, ry, rotationDegrees, diff float64, anticlockwise bool, mid, end Point) string {
	sweep := "1"
	if anticlockwise {
		sweep = "0"
	}
	command := func(largeArc string, to Point) string {
		return "A " + svgNumber(rx) + " " + svgNumber(ry) + " " + svgNumber(rotationDegrees) + " " +
			largeArc + " " + sweep + " " + svgNumber(to.X) + " " + svgNumber(to.Y)
	}
	if diff < twoPi-svgArcEpsilon {
		largeArc := "0"
		if diff >= math.Pi {
			largeArc = "1"
		}
		return command(largeArc, end)
	}
	return command("0", mid) + " " + command("0", end)
}

// WriteSVG writes the SVG path data of segs to w. A move command is emitted
// before the first segment and wherever a segment does not start at the end of
// its predecessor.
func WriteSVG(w io.Writer, segs []Segment) error {
	const epsilon = 1e-9
	var err error
	write := func(s string) {
		if err != nil {
			return
		}
		_, err = io.WriteString(w, s)
	}
	var currentPos option[Point]
	for i, seg := range segs {
		if i > 0 {
			write(" ")
		}
		start := seg.Start()
		if !currentPos.isSet || !currentPos.value.EqualsEpsilon(start, epsilon) {
			write("M " + svgNumber(start.X) + " " + svgNumber(start.Y) + " ")
		}
		write(seg.SVGPathFragment())
		currentPos.set(seg.End())
	}
	return err
}

// SVGPath returns the SVG path data of segs, as written by [WriteSVG].
func SVGPath(segs ...Segment) string {
	var sb strings.Builder
	// Writing to a strings.Builder cannot fail.
	_ = WriteSVG(&sb, segs)
	return sb.String()
}
