package kite

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// MatrixType classifies a [Matrix3] by the structure of its entries.
//
// The classification is conservative. A matrix that is numerically equal to
// the identity may still be classified as [TypeAffine], but a matrix
// classified as [TypeIdentity] is always exactly the identity.
type MatrixType uint8

const (
	// TypeIdentity is the identity matrix.
	TypeIdentity MatrixType = iota + 1
	// TypeTranslation2D is a pure translation.
	TypeTranslation2D
	// TypeScaling is a pure, possibly non-uniform, scale about the origin.
	TypeScaling
	// TypeAffine is any matrix whose bottom row is (0, 0, 1).
	TypeAffine
	// TypeOther is any other 3×3 matrix.
	TypeOther
)

func (typ MatrixType) String() string {
	switch typ {
	case TypeIdentity:
		return "identity"
	case TypeTranslation2D:
		return "translation"
	case TypeScaling:
		return "scaling"
	case TypeAffine:
		return "affine"
	case TypeOther:
		return "other"
	default:
		return fmt.Sprintf("MatrixType(%d)", uint8(typ))
	}
}

// Matrix3 is a 3×3 matrix acting on homogeneous 2D coordinates.
//
// Entries are stored in row-major order:
//
//	| m00 m01 m02 |   | Entries[0] Entries[1] Entries[2] |
//	| m10 m11 m12 | = | Entries[3] Entries[4] Entries[5] |
//	| m20 m21 m22 |   | Entries[6] Entries[7] Entries[8] |
//
// For affine matrices, m02 and m12 hold the translation. Multiplication
// follows the usual convention: (A.Mul(B)).TransformPoint(p) ==
// A.TransformPoint(B.TransformPoint(p)).
//
// The zero value has no valid type and is rejected by [Matrix3.Validate]. Use
// [Identity] or one of the constructors instead.
type Matrix3 struct {
	Entries f64.Mat3
	Type    MatrixType
}

// Identity is the identity matrix.
var Identity = Matrix3{
	Entries: f64.Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	},
	Type: TypeIdentity,
}

// RowMajor returns the matrix with the given entries. It is classified as
// [TypeAffine] if its bottom row is (0, 0, 1) and as [TypeOther] otherwise.
func RowMajor(m00, m01, m02, m10, m11, m12, m20, m21, m22 float64) Matrix3 {
	typ := TypeOther
	if m20 == 0 && m21 == 0 && m22 == 1 {
		typ = TypeAffine
	}
	return Matrix3{
		Entries: f64.Mat3{
			m00, m01, m02,
			m10, m11, m12,
			m20, m21, m22,
		},
		Type: typ,
	}
}

// NewAffine returns the affine matrix with linear part [[m00 m01] [m10 m11]]
// and translation (m02, m12).
func NewAffine(m00, m01, m02, m10, m11, m12 float64) Matrix3 {
	return RowMajor(m00, m01, m02, m10, m11, m12, 0, 0, 1)
}

// Translate returns a translation by v.
func Translate(v Vec2) Matrix3 {
	return Matrix3{
		Entries: f64.Mat3{
			1, 0, v.X,
			0, 1, v.Y,
			0, 0, 1,
		},
		Type: TypeTranslation2D,
	}
}

// Scale returns a non-uniform scale by x and y about the origin.
func Scale(x, y float64) Matrix3 {
	return Matrix3{
		Entries: f64.Mat3{
			x, 0, 0,
			0, y, 0,
			0, 0, 1,
		},
		Type: TypeScaling,
	}
}

// Rotate returns a rotation by th radians about the origin. In a y-down
// coordinate system, positive angles rotate clockwise.
func Rotate(th float64) Matrix3 {
	sin, cos := math.Sincos(th)
	return Matrix3{
		Entries: f64.Mat3{
			cos, -sin, 0,
			sin, cos, 0,
			0, 0, 1,
		},
		Type: TypeAffine,
	}
}

// At returns the entry in the given row and column.
func (m Matrix3) At(row, col int) float64 {
	return m.Entries[3*row+col]
}

func (m Matrix3) String() string {
	e := &m.Entries
	return fmt.Sprintf("[%g %g %g; %g %g %g; %g %g %g]",
		e[0], e[1], e[2], e[3], e[4], e[5], e[6], e[7], e[8])
}

// Mul returns the matrix product m·o.
//
// The result is computed into a fresh value, so either operand may be the
// receiver's own storage.
func (m Matrix3) Mul(o Matrix3) Matrix3 {
	switch {
	case m.Type == TypeIdentity:
		return o
	case o.Type == TypeIdentity:
		return m
	}
	a, b := &m.Entries, &o.Entries
	var r f64.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[3*i+j] = a[3*i]*b[j] + a[3*i+1]*b[3+j] + a[3*i+2]*b[6+j]
		}
	}
	return Matrix3{Entries: r, Type: productType(m.Type, o.Type)}
}

func productType(a, b MatrixType) MatrixType {
	switch {
	case a == TypeIdentity:
		return b
	case b == TypeIdentity:
		return a
	case a == b && (a == TypeTranslation2D || a == TypeScaling):
		return a
	case a != TypeOther && b != TypeOther:
		return TypeAffine
	default:
		return TypeOther
	}
}

// Determinant returns the determinant of the full 3×3 matrix. For affine
// matrices, this equals the determinant of the linear part.
func (m Matrix3) Determinant() float64 {
	e := &m.Entries
	return e[0]*(e[4]*e[8]-e[5]*e[7]) -
		e[1]*(e[3]*e[8]-e[5]*e[6]) +
		e[2]*(e[3]*e[7]-e[4]*e[6])
}

// Inverse returns the inverse of m. It returns an error wrapping
// [ErrSingularMatrix] if m has no inverse, or if the inverse cannot be
// represented with finite entries. The inverse has the same type as m.
func (m Matrix3) Inverse() (Matrix3, error) {
	e := &m.Entries
	var inv Matrix3
	switch m.Type {
	case TypeIdentity:
		return m, nil
	case TypeTranslation2D:
		return Translate(Vec2{-e[2], -e[5]}), nil
	case TypeScaling:
		inv = Scale(1/e[0], 1/e[4])
	case TypeAffine:
		det := e[0]*e[4] - e[1]*e[3]
		if det == 0 {
			return Matrix3{}, fmt.Errorf("%w: %v", ErrSingularMatrix, m)
		}
		invDet := 1 / det
		inv = NewAffine(
			e[4]*invDet, -e[1]*invDet, (e[1]*e[5]-e[4]*e[2])*invDet,
			-e[3]*invDet, e[0]*invDet, (e[3]*e[2]-e[0]*e[5])*invDet,
		)
	default:
		det := m.Determinant()
		if det == 0 {
			return Matrix3{}, fmt.Errorf("%w: %v", ErrSingularMatrix, m)
		}
		invDet := 1 / det
		inv = Matrix3{
			Entries: f64.Mat3{
				(e[4]*e[8] - e[5]*e[7]) * invDet,
				-(e[1]*e[8] - e[2]*e[7]) * invDet,
				(e[1]*e[5] - e[2]*e[4]) * invDet,
				-(e[3]*e[8] - e[5]*e[6]) * invDet,
				(e[0]*e[8] - e[2]*e[6]) * invDet,
				-(e[0]*e[5] - e[2]*e[3]) * invDet,
				(e[3]*e[7] - e[4]*e[6]) * invDet,
				-(e[0]*e[7] - e[1]*e[6]) * invDet,
				(e[0]*e[4] - e[1]*e[3]) * invDet,
			},
			Type: TypeOther,
		}
	}
	if !inv.IsFinite() {
		return Matrix3{}, fmt.Errorf("%w: %v", ErrSingularMatrix, m)
	}
	return inv, nil
}

// Transposed returns the transpose of m. Identity and scaling matrices keep
// their type; other matrices are reclassified from their entries.
func (m Matrix3) Transposed() Matrix3 {
	e := &m.Entries
	switch m.Type {
	case TypeIdentity:
		return m
	case TypeScaling:
		return Scale(e[0], e[4])
	}
	return RowMajor(
		e[0], e[3], e[6],
		e[1], e[4], e[7],
		e[2], e[5], e[8],
	)
}

// IsFinite reports whether all entries are finite.
func (m Matrix3) IsFinite() bool {
	for _, v := range m.Entries {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

// Validate reports whether m is usable as a transform: its entries must be
// finite and its type must be a known type that agrees with its entries.
func (m Matrix3) Validate() error {
	if m.Type < TypeIdentity || m.Type > TypeOther {
		return fmt.Errorf("%w: %v", ErrInvalidMatrixType, m.Type)
	}
	if !m.IsFinite() {
		return fmt.Errorf("%w: matrix %v", ErrNonFinite, m)
	}
	e := &m.Entries
	affine := e[6] == 0 && e[7] == 0 && e[8] == 1
	var ok bool
	switch m.Type {
	case TypeIdentity:
		ok = m.Entries == Identity.Entries
	case TypeTranslation2D:
		ok = affine && e[0] == 1 && e[1] == 0 && e[3] == 0 && e[4] == 1
	case TypeScaling:
		ok = affine && e[1] == 0 && e[2] == 0 && e[3] == 0 && e[5] == 0
	case TypeAffine:
		ok = affine
	case TypeOther:
		ok = true
	}
	if !ok {
		return fmt.Errorf("%w: entries %v are not of type %v", ErrInvalidMatrixType, m, m.Type)
	}
	return nil
}

// TransformPoint maps pt through the top two rows of m, applying the
// translation.
func (m Matrix3) TransformPoint(pt Point) Point {
	e := &m.Entries
	return Point{
		X: e[0]*pt.X + e[1]*pt.Y + e[2],
		Y: e[3]*pt.X + e[4]*pt.Y + e[5],
	}
}

// TransformVec maps v through the linear part of m, ignoring the translation.
func (m Matrix3) TransformVec(v Vec2) Vec2 {
	e := &m.Entries
	return Vec2{
		X: e[0]*v.X + e[1]*v.Y,
		Y: e[3]*v.X + e[4]*v.Y,
	}
}

// isAxisAligned reports whether m keeps the x and y axes independent.
func (m Matrix3) isAxisAligned() bool {
	return m.Entries[1] == 0 && m.Entries[3] == 0
}

// svd returns the singular values of the linear part of m, largest first,
// and the angle of the first left singular vector. For the image of the unit
// circle, these are the radii and the rotation of the resulting ellipse.
func (m Matrix3) svd() (scale Vec2, th float64) {
	a := m.Entries[0]
	a2 := a * a
	b := m.Entries[3]
	b2 := b * b
	c := m.Entries[1]
	c2 := c * c
	d := m.Entries[4]
	d2 := d * d
	ab := a * b
	cd := c * d
	th = 0.5 * math.Atan2(2.0*(ab+cd), a2-b2+c2-d2)
	s1 := a2 + b2 + c2 + d2
	s2 := math.Sqrt(math.Pow(a2-b2+c2-d2, 2) + 4.0*math.Pow(ab+cd, 2))
	return Vec2{
		X: math.Sqrt(0.5 * (s1 + s2)),
		Y: math.Sqrt(max(0, 0.5*(s1-s2))),
	}, th
}
