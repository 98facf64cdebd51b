package painter

import (
	"math"

	"github.com/gogpu/custompaint/canvas"
	"github.com/gogpu/custompaint/paint"
)

// BuildPath replaces the current path of sink with p. Unknown segments are
// skipped.
func BuildPath(sink canvas.PathSink, p paint.Path) {
	sink.BeginPath()
	for _, seg := range p.Segments {
		switch s := seg.(type) {
		case paint.MoveTo:
			sink.MoveTo(s.X, s.Y)
		case paint.LineTo:
			sink.LineTo(s.X, s.Y)
		case paint.QuadraticBezierTo:
			sink.QuadraticTo(s.X1, s.Y1, s.X2, s.Y2)
		case paint.CubicTo:
			sink.CubicTo(s.X1, s.Y1, s.X2, s.Y2, s.X3, s.Y3)
		case paint.ArcTo:
			Ellipse(sink, s.X, s.Y, s.Width/2, s.Height/2, s.StartAngle, s.SweepAngle)
		case paint.ArcToPoint:
			ArcTangent(sink, s.ControlX, s.ControlY, s.EndX, s.EndY, s.RadiusX)
		case paint.Close:
			sink.ClosePath()
		}
	}
}

// Ellipse adds an elliptical arc centered at (cx, cy) with radii rx, ry
// from angle start through start+sweep. A negative sweep runs
// counter-clockwise; sweeps beyond a full turn are clamped to one. The arc
// is joined to the current point with a line, or starts a new sub-path when
// there is none.
func Ellipse(sink canvas.PathSink, cx, cy, rx, ry, start, sweep float64) {
	const twoPi = 2 * math.Pi
	rx, ry = math.Abs(rx), math.Abs(ry)
	sweep = math.Max(-twoPi, math.Min(twoPi, sweep))

	x0 := cx + rx*math.Cos(start)
	y0 := cy + ry*math.Sin(start)
	if _, _, ok := sink.CurrentPoint(); ok {
		sink.LineTo(x0, y0)
	} else {
		sink.MoveTo(x0, y0)
	}
	arcSegments(sink, cx, cy, rx, ry, start, sweep)
}

// arcSegments appends cubic Béziers approximating the arc, each spanning
// at most a quarter turn. The current point must be the arc start.
func arcSegments(sink canvas.PathSink, cx, cy, rx, ry, start, sweep float64) {
	const maxAngle = math.Pi / 2
	if sweep == 0 || math.IsNaN(sweep) {
		return
	}
	n := int(math.Ceil(math.Abs(sweep)/maxAngle - 1e-9))
	n = max(n, 1)
	step := sweep / float64(n)
	// step is negative for counter-clockwise arcs, which flips alpha.
	alpha := 4.0 / 3.0 * math.Tan(step/4)

	a1 := start
	for i := 0; i < n; i++ {
		a2 := start + float64(i+1)*step
		cos1, sin1 := math.Cos(a1), math.Sin(a1)
		cos2, sin2 := math.Cos(a2), math.Sin(a2)
		x1, y1 := cx+rx*cos1, cy+ry*sin1
		x2, y2 := cx+rx*cos2, cy+ry*sin2
		sink.CubicTo(
			x1-alpha*rx*sin1, y1+alpha*ry*cos1,
			x2+alpha*rx*sin2, y2-alpha*ry*cos2,
			x2, y2,
		)
		a1 = a2
	}
}

// ArcTangent adds an arc of radius r tangent to the line from the current
// point to (x1, y1) and to the line from (x1, y1) to (x2, y2), preceded by
// a line to the first tangent point. When the arc is undefined (no current
// point, coincident or collinear points, zero radius) it adds a line to
// (x1, y1) instead. A negative radius counts as zero.
func ArcTangent(sink canvas.PathSink, x1, y1, x2, y2, r float64) {
	x0, y0, ok := sink.CurrentPoint()
	if !ok || r <= 0 || math.IsNaN(r) {
		sink.LineTo(x1, y1)
		return
	}

	// unit vectors from the corner towards both neighbours
	ux, uy := x0-x1, y0-y1
	vx, vy := x2-x1, y2-y1
	lu, lv := math.Hypot(ux, uy), math.Hypot(vx, vy)
	const eps = 1e-9
	if lu < eps || lv < eps {
		sink.LineTo(x1, y1)
		return
	}
	ux, uy = ux/lu, uy/lu
	vx, vy = vx/lv, vy/lv

	cross := ux*vy - uy*vx
	if math.Abs(cross) < eps {
		sink.LineTo(x1, y1)
		return
	}

	// half of the corner angle
	half := math.Acos(math.Max(-1, math.Min(1, ux*vx+uy*vy))) / 2
	dist := r / math.Tan(half)
	t0x, t0y := x1+ux*dist, y1+uy*dist
	t1x, t1y := x1+vx*dist, y1+vy*dist

	bx, by := ux+vx, uy+vy
	lb := math.Hypot(bx, by)
	h := r / math.Sin(half)
	cx, cy := x1+bx/lb*h, y1+by/lb*h

	a0 := math.Atan2(t0y-cy, t0x-cx)
	a1 := math.Atan2(t1y-cy, t1x-cx)
	sweep := a1 - a0
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep < -math.Pi {
		sweep += 2 * math.Pi
	}

	sink.LineTo(t0x, t0y)
	arcSegments(sink, cx, cy, r, r, a0, sweep)
}
