package canvas

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

type verb uint8

const (
	verbMove verb = iota
	verbLine
	verbQuad
	verbCubic
	verbClose
)

type pathOp struct {
	verb verb
	pts  [3]gg.Point
}

// devicePath is a path in device coordinates with HTML canvas current-point
// rules.
type devicePath struct {
	ops        []pathOp
	start      gg.Point
	current    gg.Point
	hasCurrent bool

	// bounding box of every point, control points included
	hasBounds              bool
	minX, minY, maxX, maxY float64
}

func (p *devicePath) reset() {
	p.ops = p.ops[:0]
	p.hasCurrent = false
	p.hasBounds = false
}

func (p *devicePath) empty() bool {
	for _, op := range p.ops {
		if op.verb != verbMove {
			return false
		}
	}
	return true
}

func (p *devicePath) grow(pts ...gg.Point) {
	for _, pt := range pts {
		if !p.hasBounds {
			p.minX, p.minY, p.maxX, p.maxY = pt.X, pt.Y, pt.X, pt.Y
			p.hasBounds = true
			continue
		}
		p.minX = math.Min(p.minX, pt.X)
		p.minY = math.Min(p.minY, pt.Y)
		p.maxX = math.Max(p.maxX, pt.X)
		p.maxY = math.Max(p.maxY, pt.Y)
	}
}

func (p *devicePath) moveTo(pt gg.Point) {
	p.ops = append(p.ops, pathOp{verb: verbMove, pts: [3]gg.Point{pt}})
	p.grow(pt)
	p.start = pt
	p.current = pt
	p.hasCurrent = true
}

// ensure starts a sub-path at pt when there is no current point.
func (p *devicePath) ensure(pt gg.Point) bool {
	if p.hasCurrent {
		return false
	}
	p.moveTo(pt)
	return true
}

func (p *devicePath) lineTo(pt gg.Point) {
	if p.ensure(pt) {
		return
	}
	p.ops = append(p.ops, pathOp{verb: verbLine, pts: [3]gg.Point{pt}})
	p.grow(pt)
	p.current = pt
}

func (p *devicePath) quadTo(ctrl, pt gg.Point) {
	p.ensure(ctrl)
	p.ops = append(p.ops, pathOp{verb: verbQuad, pts: [3]gg.Point{ctrl, pt}})
	p.grow(ctrl, pt)
	p.current = pt
}

func (p *devicePath) cubicTo(c1, c2, pt gg.Point) {
	p.ensure(c1)
	p.ops = append(p.ops, pathOp{verb: verbCubic, pts: [3]gg.Point{c1, c2, pt}})
	p.grow(c1, c2, pt)
	p.current = pt
}

func (p *devicePath) close() {
	if !p.hasCurrent {
		return
	}
	p.ops = append(p.ops, pathOp{verb: verbClose})
	p.current = p.start
}

func (p *devicePath) rect(x, y, w, h float64) {
	p.moveTo(gg.Pt(x, y))
	p.lineTo(gg.Pt(x+w, y))
	p.lineTo(gg.Pt(x+w, y+h))
	p.lineTo(gg.Pt(x, y+h))
	p.close()
}

// bounds returns the pixel rectangle covering every point, grown by pad.
func (p *devicePath) bounds(pad float64) image.Rectangle {
	if !p.hasBounds || math.IsNaN(p.minX+p.minY+p.maxX+p.maxY+pad) {
		return image.Rectangle{}
	}
	return image.Rect(
		pixel(math.Floor(p.minX-pad)), pixel(math.Floor(p.minY-pad)),
		pixel(math.Ceil(p.maxX+pad)), pixel(math.Ceil(p.maxY+pad)),
	)
}

// pixel converts a device coordinate to int, saturating far outside any
// buffer.
func pixel(v float64) int {
	const limit = 1 << 24
	return int(math.Max(-limit, math.Min(limit, v)))
}

// replay rebuilds the path on dc, whose transform must be the identity.
func (p *devicePath) replay(dc *gg.Context) {
	dc.ClearPath()
	for _, op := range p.ops {
		switch op.verb {
		case verbMove:
			dc.MoveTo(op.pts[0].X, op.pts[0].Y)
		case verbLine:
			dc.LineTo(op.pts[0].X, op.pts[0].Y)
		case verbQuad:
			dc.QuadraticTo(op.pts[0].X, op.pts[0].Y, op.pts[1].X, op.pts[1].Y)
		case verbCubic:
			dc.CubicTo(op.pts[0].X, op.pts[0].Y, op.pts[1].X, op.pts[1].Y, op.pts[2].X, op.pts[2].Y)
		case verbClose:
			dc.ClosePath()
		}
	}
}
