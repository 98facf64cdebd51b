package painter

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/gogpu/custompaint/canvas"
)

// recorder is a canvas.Canvas that logs every call. Path points are kept
// in user space without applying transforms.
type recorder struct {
	calls []string

	lines  []gg.Point
	cur    gg.Point
	start  gg.Point
	hasCur bool
	fill   gg.RGBA
	stroke gg.RGBA
	alpha  float64
	op     canvas.Op
	depth  int

	offscreens int
}

var _ canvas.Canvas = (*recorder)(nil)

func (r *recorder) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) BeginPath() { r.hasCur = false; r.log("BeginPath") }
func (r *recorder) MoveTo(x, y float64) {
	r.cur, r.start, r.hasCur = gg.Pt(x, y), gg.Pt(x, y), true
	r.log("MoveTo %g %g", x, y)
}
func (r *recorder) LineTo(x, y float64) {
	if !r.hasCur {
		r.MoveTo(x, y)
		return
	}
	r.cur = gg.Pt(x, y)
	r.lines = append(r.lines, r.cur)
	r.log("LineTo %g %g", x, y)
}
func (r *recorder) QuadraticTo(cx, cy, x, y float64) {
	r.cur, r.hasCur = gg.Pt(x, y), true
	r.log("QuadraticTo %g %g %g %g", cx, cy, x, y)
}
func (r *recorder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.cur, r.hasCur = gg.Pt(x, y), true
	r.log("CubicTo")
}
func (r *recorder) ClosePath() { r.cur = r.start; r.log("ClosePath") }
func (r *recorder) CurrentPoint() (float64, float64, bool) {
	return r.cur.X, r.cur.Y, r.hasCur
}

func (r *recorder) Width() int  { return 64 }
func (r *recorder) Height() int { return 32 }

func (r *recorder) Save()    { r.depth++; r.log("Save") }
func (r *recorder) Restore() { r.depth--; r.log("Restore") }

func (r *recorder) Translate(dx, dy float64) { r.log("Translate %g %g", dx, dy) }
func (r *recorder) Scale(sx, sy float64)     { r.log("Scale %g %g", sx, sy) }
func (r *recorder) Rotate(a float64)         { r.log("Rotate %g", a) }
func (r *recorder) Transform(m gg.Matrix) {
	r.log("Transform %g %g %g %g %g %g", m.A, m.B, m.C, m.D, m.E, m.F)
}

func (r *recorder) SetLineWidth(w float64)      { r.log("SetLineWidth %g", w) }
func (r *recorder) SetMiterLimit(l float64)     { r.log("SetMiterLimit %g", l) }
func (r *recorder) SetLineCap(c gg.LineCap)     { r.log("SetLineCap %d", c) }
func (r *recorder) SetLineJoin(j gg.LineJoin)   { r.log("SetLineJoin %d", j) }
func (r *recorder) SetFillColor(c gg.RGBA)      { r.fill = c; r.log("SetFillColor") }
func (r *recorder) SetStrokeColor(c gg.RGBA)    { r.stroke = c; r.log("SetStrokeColor") }
func (r *recorder) SetGlobalAlpha(a float64)    { r.alpha = a; r.log("SetGlobalAlpha %g", a) }
func (r *recorder) SetCompositeOp(op canvas.Op) { r.op = op; r.log("SetCompositeOp %s", op) }

func (r *recorder) Fill() error   { r.log("Fill"); return nil }
func (r *recorder) Stroke() error { r.log("Stroke"); return nil }
func (r *recorder) Clip() error   { r.log("Clip"); return nil }

func (r *recorder) FillRect(x, y, w, h float64) error {
	r.log("FillRect %g %g %g %g", x, y, w, h)
	return nil
}
func (r *recorder) StrokeRect(x, y, w, h float64) error {
	r.log("StrokeRect %g %g %g %g", x, y, w, h)
	return nil
}

func (r *recorder) Clear()       { r.log("Clear") }
func (r *recorder) Flood() error { r.log("Flood"); return nil }

func (r *recorder) DrawImage(img image.Image, dx, dy float64) error {
	r.log("DrawImage %g %g", dx, dy)
	return nil
}
func (r *recorder) DrawImageRect(img image.Image, src, dst canvas.Rect) error {
	r.log("DrawImageRect %v %v", src, dst)
	return nil
}

func (r *recorder) NewOffscreen() canvas.Canvas {
	r.offscreens++
	return &recorder{}
}
func (r *recorder) Snapshot() *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, r.Width(), r.Height()))
}

func (r *recorder) has(call string) bool {
	for _, c := range r.calls {
		if c == call {
			return true
		}
	}
	return false
}
