package painter

import (
	"image"

	"github.com/gogpu/gg"

	"github.com/gogpu/custompaint/canvas"
	"github.com/gogpu/custompaint/paint"
)

var opaqueWhite = gg.RGBA{R: 1, G: 1, B: 1, A: 1}

// drawDRRect paints the region inside the outer path and outside the inner
// one. The outer shape is drawn into an offscreen buffer of the target's
// pixel size with the paint applied at full opacity, and the inner path is
// filled over it with opaque white using XOR, which cancels every covered
// pixel. The buffer is then drawn onto the target at the origin with the
// paint's alpha.
//
// Only the part of the inner path that overlaps the outer shape is cut. An
// inner path reaching outside the outer one leaves white where it does not
// overlap.
func (in *Interpreter) drawDRRect(dc canvas.Canvas, r paint.DrawDRRect) {
	off, release := in.newOffscreen(dc)
	defer release()

	ApplyPaint(off, r.Paint)
	off.SetGlobalAlpha(1)
	BuildPath(off, r.Outer)
	if r.Paint.Filled() {
		in.check(off.Fill(), r)
	} else {
		in.check(off.Stroke(), r)
	}

	off.Save()
	off.SetFillColor(opaqueWhite)
	off.SetCompositeOp(canvas.OpXor)
	BuildPath(off, r.Inner)
	in.check(off.Fill(), r)
	off.Restore()

	dc.Save()
	dc.SetGlobalAlpha(r.Paint.GlobalAlpha())
	in.check(dc.DrawImage(pixels(off), 0, 0), r)
	dc.Restore()
}

func (in *Interpreter) newOffscreen(dc canvas.Canvas) (canvas.Canvas, func()) {
	if in.offscreen != nil {
		return in.offscreen(dc.Width(), dc.Height())
	}
	return dc.NewOffscreen(), func() {}
}

// pixels returns the buffer of c without copying when c exposes it.
func pixels(c canvas.Canvas) image.Image {
	if b, ok := c.(interface{ Image() *image.NRGBA }); ok {
		return b.Image()
	}
	return c.Snapshot()
}
