package painter

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/custompaint/canvas"
	"github.com/gogpu/custompaint/paint"
)

// ApplyPaint sets the stroke parameters, colors and global alpha of dc from
// p. A fill paint makes the stroke color transparent and a stroke paint the
// fill color, so a later Fill or Stroke of the other kind draws nothing.
// A nil paint leaves dc unchanged.
func ApplyPaint(dc canvas.Canvas, p *paint.Paint) {
	if p == nil {
		return
	}
	dc.SetLineWidth(p.StrokeWidth)
	dc.SetMiterLimit(p.StrokeMiterLimit)
	dc.SetLineCap(LineCap(p.StrokeCap))
	dc.SetLineJoin(LineJoin(p.StrokeJoin))
	col := RGBA(p.Color)
	if p.Filled() {
		dc.SetFillColor(col)
		dc.SetStrokeColor(gg.Transparent)
	} else {
		dc.SetFillColor(gg.Transparent)
		dc.SetStrokeColor(col)
	}
	dc.SetGlobalAlpha(p.GlobalAlpha())
}

// RGBA converts a packed ARGB color to gg's straight-alpha color.
func RGBA(c paint.Color) gg.RGBA {
	return gg.RGBA{
		R: float64(c.R()) / 255,
		G: float64(c.G()) / 255,
		B: float64(c.B()) / 255,
		A: float64(c.A()) / 255,
	}
}

// LineCap maps a stroke cap to gg's.
func LineCap(c paint.StrokeCap) gg.LineCap {
	switch c {
	case paint.CapRound:
		return gg.LineCapRound
	case paint.CapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

// LineJoin maps a stroke join to gg's.
func LineJoin(j paint.StrokeJoin) gg.LineJoin {
	switch j {
	case paint.JoinRound:
		return gg.LineJoinRound
	case paint.JoinBevel:
		return gg.LineJoinBevel
	default:
		return gg.LineJoinMiter
	}
}
