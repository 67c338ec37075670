package kite

import (
	"errors"
	"math"
	"testing"
)

func TestMatrixTypePropagation(t *testing.T) {
	other := RowMajor(1, 0, 0, 0, 1, 0, 0.5, 0, 1)
	tests := []struct {
		name string
		m    Matrix3
		want MatrixType
	}{
		{"identity", Identity.Mul(Identity), TypeIdentity},
		{"identity·translate", Identity.Mul(Translate(Vec(1, 2))), TypeTranslation2D},
		{"translate·translate", Translate(Vec(1, 2)).Mul(Translate(Vec(3, 4))), TypeTranslation2D},
		{"scale·scale", Scale(2, 3).Mul(Scale(4, 5)), TypeScaling},
		{"translate·scale", Translate(Vec(1, 2)).Mul(Scale(2, 3)), TypeAffine},
		{"rotate", Rotate(1), TypeAffine},
		{"other·affine", other.Mul(Rotate(1)), TypeOther},
		{"row-major affine", RowMajor(1, 2, 3, 4, 5, 6, 0, 0, 1), TypeAffine},
		{"row-major other", other, TypeOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.m.Type != tt.want {
				t.Errorf("got %v, want %v", tt.m.Type, tt.want)
			}
			if err := tt.m.Validate(); err != nil {
				t.Errorf("unexpected error: %s", err)
			}
		})
	}
}

func TestMatrixMul(t *testing.T) {
	const epsilon = 1e-9
	a := NewAffine(1, 2, 3, 4, 5, 6)
	b := NewAffine(0.1, 1.2, 2.3, 3.4, 4.5, 5.6)
	for _, p := range []Point{Pt(1, 0), Pt(0, 1), Pt(1, 1), Pt(-3, 7)} {
		assertNear(t, a.Mul(b).TransformPoint(p), a.TransformPoint(b.TransformPoint(p)), epsilon)
	}

	p := Pt(3, 4)
	assertNear(t, Scale(2, 2).TransformPoint(p), Pt(6, 8), epsilon)
	assertNear(t, Rotate(math.Pi/2).TransformPoint(p), Pt(-4, 3), epsilon)
	assertNear(t, Translate(Vec(5, 6)).TransformPoint(p), Pt(8, 10), epsilon)
	assertNearVec(t, Translate(Vec(5, 6)).TransformVec(Vec(3, 4)), Vec(3, 4), epsilon)
}

func TestMatrixInverse(t *testing.T) {
	const epsilon = 1e-9
	matrices := []Matrix3{
		Identity,
		Translate(Vec(3, -2)),
		Scale(2, 0.5),
		NewAffine(0.1, 1.2, 2.3, 3.4, 4.5, 5.6),
		Rotate(0.7).Mul(Scale(3, 1)),
		RowMajor(2, 0, 1, 0, 1, 0, 1, 0, 1),
	}
	for _, m := range matrices {
		inv, err := m.Inverse()
		if err != nil {
			t.Fatalf("%v: %s", m, err)
		}
		if inv.Type != m.Type {
			t.Errorf("inverse of %v has type %v", m.Type, inv.Type)
		}
		assertMatrixNear(t, m.Mul(inv), Identity, epsilon)
		assertMatrixNear(t, inv.Mul(m), Identity, epsilon)
	}

	for _, m := range []Matrix3{
		Scale(0, 1),
		NewAffine(1, 2, 0, 2, 4, 0),
		RowMajor(1, 2, 3, 2, 4, 6, 0, 0, 0),
	} {
		if _, err := m.Inverse(); !errors.Is(err, ErrSingularMatrix) {
			t.Errorf("%v: got error %v, want %v", m, err, ErrSingularMatrix)
		}
	}
}

func TestMatrixDeterminant(t *testing.T) {
	const epsilon = 1e-12
	assertNearFloat(t, Identity.Determinant(), 1, epsilon)
	assertNearFloat(t, Scale(2, -3).Determinant(), -6, epsilon)
	assertNearFloat(t, Rotate(1.1).Determinant(), 1, epsilon)
	assertNearFloat(t, Translate(Vec(4, 5)).Mul(Scale(2, 2)).Determinant(), 4, epsilon)
}

func TestMatrixTransposed(t *testing.T) {
	m := RowMajor(1, 2, 3, 4, 5, 6, 7, 8, 9)
	want := RowMajor(1, 4, 7, 2, 5, 8, 3, 6, 9)
	diff(t, want, m.Transposed())
	diff(t, m, m.Transposed().Transposed())

	if got := Scale(2, 3).Transposed(); got != Scale(2, 3) {
		t.Errorf("got %v, want %v", got, Scale(2, 3))
	}
	// The translation moves into the bottom row.
	if got := Translate(Vec(1, 2)).Transposed().Type; got != TypeOther {
		t.Errorf("got %v, want %v", got, TypeOther)
	}
}

func TestMatrixValidate(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix3
		want error
	}{
		{"zero value", Matrix3{}, ErrInvalidMatrixType},
		{"unknown type", Matrix3{Entries: Identity.Entries, Type: 42}, ErrInvalidMatrixType},
		{"NaN", NewAffine(math.NaN(), 0, 0, 0, 1, 0), ErrNonFinite},
		{"infinite", Translate(Vec(math.Inf(1), 0)), ErrNonFinite},
		{"translation with scale", Matrix3{Entries: Scale(2, 2).Entries, Type: TypeTranslation2D}, ErrInvalidMatrixType},
		{"scaling with rotation", Matrix3{Entries: Rotate(1).Entries, Type: TypeScaling}, ErrInvalidMatrixType},
		{"affine with perspective", Matrix3{Entries: RowMajor(1, 0, 0, 0, 1, 0, 1, 0, 1).Entries, Type: TypeAffine}, ErrInvalidMatrixType},
		{"identity with translation", Matrix3{Entries: Translate(Vec(1, 0)).Entries, Type: TypeIdentity}, ErrInvalidMatrixType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.m.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMatrixSVD(t *testing.T) {
	const epsilon = 1e-9
	scale, th := Rotate(0.3).Mul(Scale(3, 2)).svd()
	assertNearVec(t, scale, Vec(3, 2), epsilon)
	assertNearFloat(t, th, 0.3, epsilon)

	scale, _ = NewAffine(1, 1, 0, 0, 0, 0).svd()
	assertNearVec(t, scale, Vec(math.Sqrt2, 0), epsilon)
}

func TestRectTransform(t *testing.T) {
	const epsilon = 1e-9
	r := Rect{0, 0, 2, 1}
	got := r.Transform(Rotate(math.Pi / 2))
	diff(t, Rect{-1, 0, 0, 2}, got, approx(epsilon))

	if !Nothing.Transform(Scale(2, 2)).IsEmpty() {
		t.Error("transforming an empty rectangle should stay empty")
	}
}
