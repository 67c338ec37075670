package raster

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vecpath/kite"
)

func fill(t *testing.T, width, height int, segs ...kite.Segment) *image.Alpha {
	t.Helper()
	c := NewContext(width, height)
	kite.WritePath(c, segs)
	require.NoError(t, c.Err())
	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	c.Fill(dst, image.Opaque)
	return dst
}

func TestFillCircle(t *testing.T) {
	a, err := kite.NewArc(kite.Pt(16, 16), 10, 0, 2*math.Pi, false)
	require.NoError(t, err)
	dst := fill(t, 32, 32, a)

	assert.Greater(t, dst.AlphaAt(16, 16).A, uint8(0xf0))
	assert.Greater(t, dst.AlphaAt(22, 10).A, uint8(0xf0))
	assert.EqualValues(t, 0, dst.AlphaAt(1, 1).A)
	assert.EqualValues(t, 0, dst.AlphaAt(30, 30).A)
}

func TestFillEllipseThroughUnitTransform(t *testing.T) {
	e, err := kite.NewEllipticalArc(kite.Pt(16, 16), 12, 4, 0, 0, 2*math.Pi, false)
	require.NoError(t, err)
	dst := fill(t, 32, 32, e)

	assert.Greater(t, dst.AlphaAt(26, 16).A, uint8(200))
	assert.Greater(t, dst.AlphaAt(5, 16).A, uint8(200))
	assert.EqualValues(t, 0, dst.AlphaAt(16, 24).A)
	assert.EqualValues(t, 0, dst.AlphaAt(16, 7).A)
}

func TestFillPolygon(t *testing.T) {
	dst := fill(t, 16, 16,
		kite.Line{P0: kite.Pt(2, 2), P1: kite.Pt(14, 2)},
		kite.Line{P0: kite.Pt(14, 2), P1: kite.Pt(14, 14)},
	)
	// Fill closes the path along the diagonal.
	assert.Greater(t, dst.AlphaAt(12, 4).A, uint8(0xf0))
	assert.EqualValues(t, 0, dst.AlphaAt(3, 12).A)
	assert.EqualValues(t, 0, dst.AlphaAt(0, 0).A)
}

func TestSaveRestore(t *testing.T) {
	c := NewContext(8, 8)
	c.Save()
	c.Transform(kite.Scale(2, 3))
	assert.Equal(t, kite.Scale(2, 3), c.CurrentTransform().Matrix())

	c.Save()
	c.Transform(kite.Translate(kite.Vec(1, 1)))
	assert.Equal(t, kite.Pt(4, 6), c.CurrentTransform().TransformPosition2(kite.Pt(1, 1)))

	c.Restore()
	assert.Equal(t, kite.Scale(2, 3), c.CurrentTransform().Matrix())
	c.Restore()
	assert.True(t, c.CurrentTransform().IsIdentity())

	// Unbalanced.
	c.Restore()
	assert.True(t, c.CurrentTransform().IsIdentity())
}

func TestTransformError(t *testing.T) {
	c := NewContext(8, 8)
	c.Transform(kite.Matrix3{})
	assert.ErrorIs(t, c.Err(), kite.ErrInvalidMatrixType)
	assert.True(t, c.CurrentTransform().IsIdentity())

	c.Reset(8, 8)
	assert.NoError(t, c.Err())
	c.Arc(0, 0, 1, 0, 3*math.Pi, false)
	assert.ErrorIs(t, c.Err(), kite.ErrAmbiguousSpan)
}

func TestFillClearsPath(t *testing.T) {
	c := NewContext(16, 16)
	c.Arc(8, 8, 6, 0, 2*math.Pi, false)
	first := image.NewAlpha(image.Rect(0, 0, 16, 16))
	c.Fill(first, image.Opaque)
	assert.Greater(t, first.AlphaAt(8, 8).A, uint8(0xf0))

	second := image.NewAlpha(image.Rect(0, 0, 16, 16))
	c.Fill(second, image.Opaque)
	assert.EqualValues(t, 0, second.AlphaAt(8, 8).A)
	assert.Equal(t, image.Pt(16, 16), c.Size())
}
