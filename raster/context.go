// Package raster draws kite segments into raster images.
//
// [Context] implements [kite.Context] on top of the anti-aliasing rasterizer in
// golang.org/x/image/vector. Paths are accumulated with [kite.WritePath] or the
// individual drawing methods and then filled with [Context.Fill].
package raster

import (
	"image"
	"image/draw"
	"math"

	"github.com/vecpath/kite"
	"golang.org/x/image/vector"
)

// DefaultTolerance is the maximum distance, in pixels, between an arc and the
// cubic Béziers that approximate it.
const DefaultTolerance = 0.1

// Context is a [kite.Context] that rasterizes paths.
//
// It does not implement [kite.EllipseContext]. Elliptical arcs draw themselves
// as unit arcs under their unit transform, which Context applies to every
// point it receives.
//
// The zero value is not usable; use [NewContext].
type Context struct {
	z vector.Rasterizer

	// Tolerance bounds the error of the arc approximation, in device pixels.
	Tolerance float64

	// transforms is the stack maintained by Save and Restore. The last element
	// is the current transform.
	transforms []*kite.AffineTransform

	hasPen bool
	err    error
}

var _ kite.Context = (*Context)(nil)

// NewContext returns a context for an image of the given size in pixels.
func NewContext(width, height int) *Context {
	c := &Context{
		Tolerance:  DefaultTolerance,
		transforms: []*kite.AffineTransform{kite.NewAffineTransform()},
	}
	c.z.Reset(width, height)
	return c
}

// Reset discards the current path, the transform stack and any recorded error,
// and resizes the context.
func (c *Context) Reset(width, height int) {
	c.z.Reset(width, height)
	c.transforms = []*kite.AffineTransform{kite.NewAffineTransform()}
	c.hasPen = false
	c.err = nil
}

// Size returns the size of the context in pixels.
func (c *Context) Size() image.Point {
	return c.z.Size()
}

// Err returns the first error encountered by Arc or Transform, if any. The
// failing call is skipped and drawing continues.
func (c *Context) Err() error {
	return c.err
}

// CurrentTransform returns a copy of the current transform.
func (c *Context) CurrentTransform() *kite.AffineTransform {
	return c.current().Copy()
}

func (c *Context) current() *kite.AffineTransform {
	return c.transforms[len(c.transforms)-1]
}

func (c *Context) device(x, y float64) (float32, float32) {
	p := c.current().TransformPosition2(kite.Pt(x, y))
	return float32(p.X), float32(p.Y)
}

func (c *Context) MoveTo(x, y float64) {
	c.z.MoveTo(c.device(x, y))
	c.hasPen = true
}

// LineTo adds a line to (x, y). Without a current point, it behaves like MoveTo.
func (c *Context) LineTo(x, y float64) {
	if !c.hasPen {
		c.MoveTo(x, y)
		return
	}
	c.z.LineTo(c.device(x, y))
}

// ClosePath closes the current subpath.
func (c *Context) ClosePath() {
	if c.hasPen {
		c.z.ClosePath()
	}
}

// Arc adds a circular arc, approximated with cubic Béziers. If there is a
// current point, a line connects it to the start of the arc.
func (c *Context) Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool) {
	a, err := kite.NewArc(kite.Pt(x, y), radius, startAngle, endAngle, anticlockwise)
	if err != nil {
		c.setErr(err)
		return
	}
	start := a.Start()
	c.LineTo(start.X, start.Y)

	sweep := a.ActualEndAngle() - a.StartAngle()
	if sweep == 0 {
		return
	}
	// The tolerance is given in device space; scale it into arc space by the
	// largest stretch of the current transform.
	scale := c.current().TransformDelta2(kite.Vec(1, 0)).Hypot()
	scale = max(scale, c.current().TransformDelta2(kite.Vec(0, 1)).Hypot())
	tolerance := c.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	scaledError := a.Radius() * scale / tolerance
	// Number of subdivisions per full circle based on the error tolerance.
	nError := max(math.Pow(1.1163*scaledError, 1.0/6.0), 3.999_999)
	n := math.Ceil(nError * math.Abs(sweep) / (2 * math.Pi))
	step := sweep / n
	armLen := (4.0 / 3.0) * math.Tan(0.25*step) * a.Radius()

	center := a.Center()
	angle0 := a.StartAngle()
	p0 := center.Translate(kite.Polar(a.Radius(), angle0))
	for k, count := 0, int(n); k < count; k++ {
		angle1 := angle0 + step
		p3 := center.Translate(kite.Polar(a.Radius(), angle1))
		p1 := p0.Translate(kite.Polar(armLen, angle0+math.Pi/2))
		p2 := p3.Translate(kite.Polar(armLen, angle1+math.Pi/2).Negate())

		bx, by := c.device(p1.X, p1.Y)
		cx, cy := c.device(p2.X, p2.Y)
		dx, dy := c.device(p3.X, p3.Y)
		c.z.CubeTo(bx, by, cx, cy, dx, dy)

		angle0 = angle1
		p0 = p3
	}
}

// Save pushes a copy of the current transform.
func (c *Context) Save() {
	c.transforms = append(c.transforms, c.current().Copy())
}

// Restore pops the transform pushed by the matching Save. Unbalanced calls are
// ignored.
func (c *Context) Restore() {
	if len(c.transforms) > 1 {
		c.transforms = c.transforms[:len(c.transforms)-1]
	}
}

// Transform multiplies the current transform by m on the right.
func (c *Context) Transform(m kite.Matrix3) {
	if err := c.current().Append(m); err != nil {
		c.setErr(err)
	}
}

func (c *Context) setErr(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Fill closes the current path and composites src onto dst through the
// accumulated coverage. The path is then cleared, while the transform stack is
// kept.
func (c *Context) Fill(dst draw.Image, src image.Image) {
	c.ClosePath()
	size := c.z.Size()
	r := image.Rectangle{Max: size}.Intersect(dst.Bounds())
	c.z.Draw(dst, r, src, r.Min)
	c.z.Reset(size.X, size.Y)
	c.hasPen = false
}
