package kite

import "fmt"

// AffineTransform is a mutable transform that owns one primary [Matrix3] and
// derives its inverse, its transpose and its inverse transpose on demand.
// Each derived matrix is computed at most once between two mutations.
//
// Every successful mutation notifies the listeners registered with
// [AffineTransform.OnChange]. Mutators validate their input and leave the
// transform untouched when they return an error.
//
// The mapping methods come in two families. TransformPosition2 and friends
// apply the primary matrix; InversePosition2 and friends apply its inverse and
// panic with an error wrapping [ErrSingularMatrix] if there is none. Use
// [AffineTransform.Invertible] to check beforehand.
//
// An AffineTransform must not be mutated concurrently. Use [AffineTransform.Copy]
// to obtain an independent transform.
type AffineTransform struct {
	matrix Matrix3

	inverse           option[Matrix3]
	transposed        option[Matrix3]
	inverseTransposed option[Matrix3]

	changed emitter
}

// NewAffineTransform returns the identity transform.
func NewAffineTransform() *AffineTransform {
	return &AffineTransform{matrix: Identity}
}

// NewAffineTransformFromMatrix returns a transform with primary matrix m.
func NewAffineTransformFromMatrix(m Matrix3) (*AffineTransform, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &AffineTransform{matrix: m}, nil
}

// OnChange registers fn to be called after every successful mutation. The
// returned function unregisters it.
func (t *AffineTransform) OnChange(fn func()) (remove func()) {
	return t.changed.add(fn)
}

// SetMatrix replaces the primary matrix with m.
func (t *AffineTransform) SetMatrix(m Matrix3) error {
	if err := m.Validate(); err != nil {
		return err
	}
	t.matrix = m
	t.invalidate()
	return nil
}

// Prepend sets the primary matrix to m·M, so that m is applied after the
// current transform.
func (t *AffineTransform) Prepend(m Matrix3) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return t.SetMatrix(m.Mul(t.matrix))
}

// Append sets the primary matrix to M·m, so that m is applied before the
// current transform.
func (t *AffineTransform) Append(m Matrix3) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return t.SetMatrix(t.matrix.Mul(m))
}

// PrependTransform prepends the primary matrix of o.
func (t *AffineTransform) PrependTransform(o *AffineTransform) error {
	return t.Prepend(o.matrix)
}

// AppendTransform appends the primary matrix of o.
func (t *AffineTransform) AppendTransform(o *AffineTransform) error {
	return t.Append(o.matrix)
}

// PrependTranslation is equivalent to Prepend(Translate(Vec(x, y))) but only
// touches the two rows that change.
func (t *AffineTransform) PrependTranslation(x, y float64) error {
	if !isFinite(x) || !isFinite(y) {
		return fmt.Errorf("%w: translation (%g, %g)", ErrNonFinite, x, y)
	}
	e := t.matrix.Entries
	e[0] += x * e[6]
	e[1] += x * e[7]
	e[2] += x * e[8]
	e[3] += y * e[6]
	e[4] += y * e[7]
	e[5] += y * e[8]
	typ := t.matrix.Type
	switch typ {
	case TypeIdentity:
		typ = TypeTranslation2D
	case TypeScaling:
		typ = TypeAffine
	}
	return t.SetMatrix(Matrix3{Entries: e, Type: typ})
}

func (t *AffineTransform) invalidate() {
	t.inverse.clear()
	t.transposed.clear()
	t.inverseTransposed.clear()
	t.changed.emit()
}

// Matrix returns the primary matrix.
func (t *AffineTransform) Matrix() Matrix3 {
	return t.matrix
}

// Inverse returns the inverse of the primary matrix.
func (t *AffineTransform) Inverse() (Matrix3, error) {
	if !t.inverse.isSet {
		inv, err := t.matrix.Inverse()
		if err != nil {
			return Matrix3{}, err
		}
		t.inverse.set(inv)
	}
	return t.inverse.value, nil
}

// MatrixTransposed returns the transpose of the primary matrix.
func (t *AffineTransform) MatrixTransposed() Matrix3 {
	return t.transposed.get(t.matrix.Transposed)
}

// InverseTransposed returns the transpose of the inverse of the primary matrix.
func (t *AffineTransform) InverseTransposed() (Matrix3, error) {
	if !t.inverseTransposed.isSet {
		inv, err := t.Inverse()
		if err != nil {
			return Matrix3{}, err
		}
		t.inverseTransposed.set(inv.Transposed())
	}
	return t.inverseTransposed.value, nil
}

// Invertible reports whether the primary matrix has an inverse.
func (t *AffineTransform) Invertible() bool {
	_, err := t.Inverse()
	return err == nil
}

func (t *AffineTransform) mustInverse() Matrix3 {
	inv, err := t.Inverse()
	if err != nil {
		panic(err)
	}
	return inv
}

func (t *AffineTransform) mustInverseTransposed() Matrix3 {
	invT, err := t.InverseTransposed()
	if err != nil {
		panic(err)
	}
	return invT
}

// IsIdentity reports whether the primary matrix is structurally the identity.
// It may return false for matrices that are numerically equal to the identity.
func (t *AffineTransform) IsIdentity() bool {
	return t.matrix.Type == TypeIdentity
}

// IsFinite reports whether all entries of the primary matrix are finite.
func (t *AffineTransform) IsFinite() bool {
	return t.matrix.IsFinite()
}

// Copy returns an independent transform with the same primary matrix. Listeners
// are not copied.
func (t *AffineTransform) Copy() *AffineTransform {
	return &AffineTransform{
		matrix:            t.matrix,
		inverse:           t.inverse,
		transposed:        t.transposed,
		inverseTransposed: t.inverseTransposed,
	}
}

func (t *AffineTransform) TransformPosition2(pt Point) Point {
	return t.matrix.TransformPoint(pt)
}

func (t *AffineTransform) TransformDelta2(v Vec2) Vec2 {
	return t.matrix.TransformVec(v)
}

// TransformNormal2 maps the normal n through the inverse transpose and
// normalizes the result.
func (t *AffineTransform) TransformNormal2(n Vec2) Vec2 {
	return t.mustInverseTransposed().TransformVec(n).Normalize()
}

// TransformX maps an x coordinate. It panics with [ErrAxisCoupling] if the
// transform rotates or shears.
func (t *AffineTransform) TransformX(x float64) float64 {
	return projectX(t.matrix, x, false)
}

func (t *AffineTransform) TransformY(y float64) float64 {
	return projectY(t.matrix, y, false)
}

func (t *AffineTransform) TransformDeltaX(x float64) float64 {
	return projectX(t.matrix, x, true)
}

func (t *AffineTransform) TransformDeltaY(y float64) float64 {
	return projectY(t.matrix, y, true)
}

// TransformBounds2 returns the bounding box of the transformed rectangle.
func (t *AffineTransform) TransformBounds2(r Rect) Rect {
	return r.Transform(t.matrix)
}

// TransformRay2 maps the ray's position and direction and renormalizes the
// direction.
func (t *AffineTransform) TransformRay2(r Ray2) Ray2 {
	return Ray2{
		Position:  t.TransformPosition2(r.Position),
		Direction: t.TransformDelta2(r.Direction).Normalize(),
	}
}

func (t *AffineTransform) InversePosition2(pt Point) Point {
	return t.mustInverse().TransformPoint(pt)
}

func (t *AffineTransform) InverseDelta2(v Vec2) Vec2 {
	return t.mustInverse().TransformVec(v)
}

// InverseNormal2 maps the normal n through the transpose of the primary
// matrix, which is the inverse transpose of the inverse, and normalizes the
// result.
func (t *AffineTransform) InverseNormal2(n Vec2) Vec2 {
	return t.MatrixTransposed().TransformVec(n).Normalize()
}

func (t *AffineTransform) InverseX(x float64) float64 {
	return projectX(t.mustInverse(), x, false)
}

func (t *AffineTransform) InverseY(y float64) float64 {
	return projectY(t.mustInverse(), y, false)
}

func (t *AffineTransform) InverseDeltaX(x float64) float64 {
	return projectX(t.mustInverse(), x, true)
}

func (t *AffineTransform) InverseDeltaY(y float64) float64 {
	return projectY(t.mustInverse(), y, true)
}

func (t *AffineTransform) InverseBounds2(r Rect) Rect {
	return r.Transform(t.mustInverse())
}

func (t *AffineTransform) InverseRay2(r Ray2) Ray2 {
	return Ray2{
		Position:  t.InversePosition2(r.Position),
		Direction: t.InverseDelta2(r.Direction).Normalize(),
	}
}

func projectX(m Matrix3, x float64, delta bool) float64 {
	if !m.isAxisAligned() {
		panic(fmt.Errorf("%w: %v", ErrAxisCoupling, m))
	}
	if delta {
		return m.Entries[0] * x
	}
	return m.Entries[0]*x + m.Entries[2]
}

func projectY(m Matrix3, y float64, delta bool) float64 {
	if !m.isAxisAligned() {
		panic(fmt.Errorf("%w: %v", ErrAxisCoupling, m))
	}
	if delta {
		return m.Entries[4] * y
	}
	return m.Entries[4]*y + m.Entries[5]
}
