package painter

import "github.com/gogpu/gg"

// pointSink captures cubic control polygons.
type pointSink struct {
	cur    gg.Point
	has    bool
	cubics [][4]gg.Point
}

func (s *pointSink) BeginPath()                     { s.has = false }
func (s *pointSink) MoveTo(x, y float64)            { s.cur, s.has = gg.Pt(x, y), true }
func (s *pointSink) LineTo(x, y float64)            { s.cur, s.has = gg.Pt(x, y), true }
func (s *pointSink) QuadraticTo(_, _, x, y float64) { s.cur = gg.Pt(x, y) }
func (s *pointSink) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.cubics = append(s.cubics, [4]gg.Point{s.cur, gg.Pt(c1x, c1y), gg.Pt(c2x, c2y), gg.Pt(x, y)})
	s.cur = gg.Pt(x, y)
}
func (s *pointSink) ClosePath()                             {}
func (s *pointSink) CurrentPoint() (float64, float64, bool) { return s.cur.X, s.cur.Y, s.has }
