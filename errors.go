package kite

import "errors"

var (
	// ErrNonFinite is returned when a coordinate, radius, angle or matrix entry is
	// infinite or NaN.
	ErrNonFinite = errors.New("kite: non-finite value")
	// ErrInvalidMatrixType is returned for matrices whose [MatrixType] is unknown
	// or disagrees with their entries.
	ErrInvalidMatrixType = errors.New("kite: invalid matrix type")
	// ErrSingularMatrix is returned when a matrix has no inverse.
	ErrSingularMatrix = errors.New("kite: singular matrix")
	// ErrUnsupportedRadii is returned when an elliptical arc's x radius is still
	// smaller than its y radius after swapping the axes.
	ErrUnsupportedRadii = errors.New("kite: unsupported elliptical arc radii")
	// ErrAmbiguousSpan is returned for arcs whose angular span, measured in the
	// winding direction, lies outside of (−2π, 2π].
	ErrAmbiguousSpan = errors.New("kite: ambiguous angular span")
	// ErrWrongSegmentType is returned when deserializing a record whose type
	// field names a different kind of segment.
	ErrWrongSegmentType = errors.New("kite: wrong segment type")
	// ErrAxisCoupling is the panic value of one-dimensional projections on
	// transforms that mix the x and y axes.
	ErrAxisCoupling = errors.New("kite: transform couples the x and y axes")
)
