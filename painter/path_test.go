package painter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/custompaint/paint"
)

func endPoint(r *recorder) (float64, float64) {
	x, y, _ := r.CurrentPoint()
	return x, y
}

func TestBuildPathSegments(t *testing.T) {
	rec := &recorder{}
	BuildPath(rec, paint.Path{Segments: []paint.Segment{
		paint.MoveTo{X: 1, Y: 2},
		paint.LineTo{X: 3, Y: 4},
		paint.QuadraticBezierTo{X1: 5, Y1: 6, X2: 7, Y2: 8},
		paint.CubicTo{X1: 1, Y1: 1, X2: 2, Y2: 2, X3: 9, Y3: 9},
		paint.UnknownSegment{Name: "conicTo"},
		paint.Close{},
	}})
	assert.Equal(t, []string{
		"BeginPath", "MoveTo 1 2", "LineTo 3 4", "QuadraticTo 5 6 7 8", "CubicTo", "ClosePath",
	}, rec.calls)
}

func TestEllipseDirection(t *testing.T) {
	tests := []struct {
		name         string
		sweep        float64
		wantX, wantY float64
	}{
		{"clockwise", math.Pi / 2, 0, 1},
		{"counter-clockwise", -math.Pi / 2, 0, -1},
		{"half turn", math.Pi, -1, 0},
		{"clamped", 5 * math.Pi, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			BuildPath(rec, paint.Path{Segments: []paint.Segment{
				paint.ArcTo{X: 0, Y: 0, Width: 2, Height: 2, StartAngle: 0, SweepAngle: tt.sweep},
			}})
			assert.Equal(t, "MoveTo 1 0", rec.calls[1], "arc start")
			x, y := endPoint(rec)
			assert.InDelta(t, tt.wantX, x, 1e-9)
			assert.InDelta(t, tt.wantY, y, 1e-9)
		})
	}
}

func TestEllipseSegmentCount(t *testing.T) {
	rec := &recorder{}
	Ellipse(rec, 0, 0, 4, 2, 0, 2*math.Pi)
	cubics := 0
	for _, c := range rec.calls {
		if c == "CubicTo" {
			cubics++
		}
	}
	assert.Equal(t, 4, cubics)
}

func TestEllipseJoinsCurrentPoint(t *testing.T) {
	rec := &recorder{}
	rec.MoveTo(-5, 0)
	Ellipse(rec, 0, 0, 2, 2, 0, 0)
	assert.Equal(t, []string{"MoveTo -5 0", "LineTo 2 0"}, rec.calls)
}

func TestEllipseMidpoint(t *testing.T) {
	// a quarter circle with the 4/3·tan(θ/4) handles overshoots r by about
	// 0.027% at its midpoint
	rec := &pointSink{}
	rec.MoveTo(10, 0)
	arcSegments(rec, 0, 0, 10, 10, 0, math.Pi/2)
	c := rec.cubics[0]
	mx := (c[0].X + 3*c[1].X + 3*c[2].X + c[3].X) / 8
	my := (c[0].Y + 3*c[1].Y + 3*c[2].Y + c[3].Y) / 8
	assert.InDelta(t, 10, math.Hypot(mx, my), 0.005)
	assert.Greater(t, math.Hypot(mx, my), 10.0)
}

func TestArcTangent(t *testing.T) {
	rec := &recorder{}
	rec.MoveTo(0, 0)
	ArcTangent(rec, 10, 0, 10, 10, 5)

	if assert.Len(t, rec.lines, 1) {
		assert.InDelta(t, 5, rec.lines[0].X, 1e-9)
		assert.InDelta(t, 0, rec.lines[0].Y, 1e-9)
	}
	x, y := endPoint(rec)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 5, y, 1e-9)
}

func TestArcTangentDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		start  bool
		x1, y1 float64
		x2, y2 float64
		r      float64
	}{
		{"no current point", false, 10, 0, 10, 10, 5},
		{"zero radius", true, 10, 0, 10, 10, 0},
		{"negative radius", true, 10, 0, 10, 10, -3},
		{"control equals start", true, 0, 0, 10, 10, 5},
		{"control equals end", true, 10, 0, 10, 0, 5},
		{"collinear", true, 10, 0, 20, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			if tt.start {
				rec.MoveTo(0, 0)
			}
			ArcTangent(rec, tt.x1, tt.y1, tt.x2, tt.y2, tt.r)
			x, y := endPoint(rec)
			assert.Equal(t, tt.x1, x)
			assert.Equal(t, tt.y1, y)
			for _, c := range rec.calls {
				assert.NotEqual(t, "CubicTo", c)
			}
		})
	}
}

func TestArcTangentDirection(t *testing.T) {
	// corner turning left instead of right
	rec := &recorder{}
	rec.MoveTo(0, 0)
	ArcTangent(rec, 10, 0, 10, -10, 5)
	x, y := endPoint(rec)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, -5, y, 1e-9)
}
