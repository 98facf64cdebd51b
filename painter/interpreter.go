package painter

import (
	"image"
	"log/slog"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/custompaint/canvas"
	"github.com/gogpu/custompaint/drawable"
	"github.com/gogpu/custompaint/internal/logger"
	"github.com/gogpu/custompaint/paint"
)

// Interpreter executes instruction batches. It holds no per-batch state
// and may be shared between canvases, but a single canvas must not run two
// batches at once.
type Interpreter struct {
	images    ImageSource
	observer  Observer
	offscreen OffscreenFunc
	log       *slog.Logger
}

// New creates an Interpreter.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

func (in *Interpreter) logger() *slog.Logger {
	if in.log != nil {
		return in.log
	}
	return logger.Get()
}

// Execute runs batch against dc in order. The batch is bracketed by a
// Save/Restore pair, so state changes inside it do not leak; unbalanced
// restores inside the batch can still pop state saved before it.
func (in *Interpreter) Execute(dc canvas.Canvas, batch []paint.Instruction) {
	start := time.Now()
	executed, ignored := 0, 0

	dc.Save()
	for _, ins := range batch {
		if in.exec(dc, ins) {
			executed++
		} else {
			ignored++
			if u, ok := ins.(paint.Unknown); ok && u.Err != nil {
				in.logger().Debug("painter: ignored instruction", "action", u.Name, "err", u.Err)
			} else {
				in.logger().Debug("painter: ignored instruction", "action", actionName(ins))
			}
		}
	}
	dc.Restore()

	if in.observer != nil {
		in.observer.ObserveBatch(executed, ignored, time.Since(start))
	}
}

// exec applies one instruction and reports whether it was recognized.
func (in *Interpreter) exec(dc canvas.Canvas, ins paint.Instruction) bool {
	switch ins := ins.(type) {
	case paint.DrawRect:
		in.drawRect(dc, ins)
	case paint.DrawPath:
		ApplyPaint(dc, ins.Paint)
		BuildPath(dc, ins.Path)
		if ins.Paint.Filled() {
			in.check(dc.Fill(), ins)
		} else {
			in.check(dc.Stroke(), ins)
		}
	case paint.ClipPath:
		ApplyPaint(dc, ins.Paint)
		BuildPath(dc, ins.Path)
		in.check(dc.Clip(), ins)
	case paint.DrawDRRect:
		in.drawDRRect(dc, ins)
	case paint.DrawColor:
		in.drawColor(dc, ins)
	case paint.DrawImage:
		ApplyPaint(dc, ins.Paint)
		if img, ok := in.lookup(ins.Drawable); ok {
			in.check(dc.DrawImage(img, ins.DX, ins.DY), ins)
		}
	case paint.DrawImageRect:
		ApplyPaint(dc, ins.Paint)
		if img, ok := in.lookup(ins.Drawable); ok {
			src := canvas.Rect{X: ins.SrcX, Y: ins.SrcY, W: ins.SrcW, H: ins.SrcH}
			dst := canvas.Rect{X: ins.DstX, Y: ins.DstY, W: ins.DstW, H: ins.DstH}
			in.check(dc.DrawImageRect(img, src, dst), ins)
		}
	case paint.Save:
		dc.Save()
	case paint.Restore:
		dc.Restore()
	case paint.Rotate:
		dc.Rotate(ins.Radians)
	case paint.Scale:
		dc.Scale(ins.SX, ins.SY)
	case paint.Skew:
		dc.Transform(gg.Shear(ins.SX, ins.SY))
	case paint.Transform:
		dc.Transform(Matrix(ins))
	case paint.Translate:
		dc.Translate(ins.DX, ins.DY)
	default:
		return false
	}
	return true
}

// Matrix converts a transform instruction, given in canvas column order
// (x' = a·x + c·y + tx, y' = b·x + d·y + ty), to a gg matrix.
func Matrix(t paint.Transform) gg.Matrix {
	return gg.Matrix{
		A: t.A, B: t.C, C: t.TX,
		D: t.B, E: t.D, F: t.TY,
	}
}

func (in *Interpreter) drawRect(dc canvas.Canvas, r paint.DrawRect) {
	ApplyPaint(dc, r.Paint)
	if r.Paint.Filled() {
		in.check(dc.FillRect(r.X, r.Y, r.Width, r.Height), r)
	} else {
		in.check(dc.StrokeRect(r.X, r.Y, r.Width, r.Height), r)
	}
}

// drawColor clears the surface for BlendClear and floods it with the color
// otherwise. Both ignore the transform and honour the clip.
func (in *Interpreter) drawColor(dc canvas.Canvas, c paint.DrawColor) {
	if c.BlendMode == paint.BlendClear {
		dc.Clear()
		return
	}
	dc.SetFillColor(RGBA(c.Color))
	in.check(dc.Flood(), c)
}

func (in *Interpreter) lookup(handle int64) (image.Image, bool) {
	if in.images == nil {
		return nil, false
	}
	return in.images.Lookup(drawable.Handle(handle))
}

func (in *Interpreter) check(err error, ins paint.Instruction) {
	if err != nil {
		in.logger().Debug("painter: render failed", "action", actionName(ins), "err", err)
	}
}

func actionName(ins paint.Instruction) string {
	if u, ok := ins.(paint.Unknown); ok {
		return u.Name
	}
	if ins == nil {
		return "<nil>"
	}
	return ins.Action().String()
}
