package canvas

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// DrawImage draws img at its natural size with the top-left corner at
// (dx, dy) in user space.
func (c *Context) DrawImage(img image.Image, dx, dy float64) error {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	return c.DrawImageRect(img, Rect{W: w, H: h}, Rect{X: dx, Y: dy, W: w, H: h})
}

// DrawImageRect scales the src region of img (relative to its top-left
// corner) into dst. Images always composite source-over; the clip and the
// global alpha apply.
func (c *Context) DrawImageRect(img image.Image, src, dst Rect) error {
	if img == nil || src.W <= 0 || src.H <= 0 || dst.W == 0 || dst.H == 0 {
		return nil
	}
	b := img.Bounds()
	sr := image.Rect(
		int(math.Floor(src.X)), int(math.Floor(src.Y)),
		int(math.Ceil(src.X+src.W)), int(math.Ceil(src.Y+src.H)),
	).Add(b.Min).Intersect(b)
	if sr.Empty() {
		return nil
	}

	m := c.state.matrix.
		Multiply(gg.Translate(dst.X, dst.Y)).
		Multiply(gg.Scale(dst.W/src.W, dst.H/src.H)).
		Multiply(gg.Translate(-src.X-float64(b.Min.X), -src.Y-float64(b.Min.Y)))
	s2d := f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}

	var opts *xdraw.Options
	if mask := c.coverage(c.pix.Rect); mask != nil {
		opts = &xdraw.Options{DstMask: mask}
	}
	interpolator(m).Transform(c.pix, s2d, img, sr, xdraw.Over, opts)
	return nil
}

// interpolator picks nearest-neighbour sampling for pixel-aligned
// translations so unscaled blits copy pixels exactly.
func interpolator(m gg.Matrix) xdraw.Transformer {
	if m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1 && m.C == math.Trunc(m.C) && m.F == math.Trunc(m.F) {
		return xdraw.NearestNeighbor
	}
	return xdraw.BiLinear
}
