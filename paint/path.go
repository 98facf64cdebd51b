package paint

import (
	"encoding/json"
	"fmt"
)

// Segment is one primitive of a Path.
type Segment interface {
	isSegment()
}

// MoveTo starts a new sub-path at a point.
type MoveTo struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineTo draws a straight line to a point.
type LineTo struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// QuadraticBezierTo draws a quadratic curve with control point (X1, Y1)
// ending at (X2, Y2).
type QuadraticBezierTo struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// CubicTo draws a cubic curve with control points (X1, Y1), (X2, Y2) ending
// at (X3, Y3).
type CubicTo struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
	X3 float64 `json:"x3"`
	Y3 float64 `json:"y3"`
}

// ArcTo draws an elliptical arc centered at (X, Y) with radii Width/2 and
// Height/2, starting at StartAngle and sweeping SweepAngle radians. A
// negative SweepAngle sweeps counter-clockwise.
type ArcTo struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	StartAngle float64 `json:"startAngle"`
	SweepAngle float64 `json:"sweepAngle"`
}

// ArcToPoint draws an arc of radius RadiusX tangent to the lines from the
// current point to the control point and from the control point to the end
// point.
type ArcToPoint struct {
	ControlX float64 `json:"arcControlX"`
	ControlY float64 `json:"arcControlY"`
	EndX     float64 `json:"arcEndX"`
	EndY     float64 `json:"arcEndY"`
	RadiusX  float64 `json:"radiusX"`
}

// Close closes the current sub-path.
type Close struct{}

// UnknownSegment is a segment whose action is outside the vocabulary.
type UnknownSegment struct {
	Name string
}

func (MoveTo) isSegment()            {}
func (LineTo) isSegment()            {}
func (QuadraticBezierTo) isSegment() {}
func (CubicTo) isSegment()           {}
func (ArcTo) isSegment()             {}
func (ArcToPoint) isSegment()        {}
func (Close) isSegment()             {}
func (UnknownSegment) isSegment()    {}

// Path is an ordered list of segments. Order defines the geometry: every
// segment except MoveTo continues from the previous segment's end point.
type Path struct {
	Segments []Segment
}

// pathJSON is the wire shape of a Path.
type pathJSON struct {
	Commands []json.RawMessage `json:"commands"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Path) UnmarshalJSON(data []byte) error {
	var raw pathJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Segments = make([]Segment, 0, len(raw.Commands))
	for i, msg := range raw.Commands {
		seg, err := decodeSegment(msg)
		if err != nil {
			return fmt.Errorf("paint: path segment %d: %w", i, err)
		}
		p.Segments = append(p.Segments, seg)
	}
	return nil
}

func decodeSegment(msg json.RawMessage) (Segment, error) {
	var head actionHeader
	if err := json.Unmarshal(msg, &head); err != nil {
		return nil, err
	}
	var seg Segment
	switch head.Action {
	case "moveTo":
		seg = &MoveTo{}
	case "lineTo":
		seg = &LineTo{}
	case "quadraticBezierTo":
		seg = &QuadraticBezierTo{}
	case "cubicTo":
		seg = &CubicTo{}
	case "arcTo":
		seg = &ArcTo{}
	case "arcToPoint":
		seg = &ArcToPoint{}
	case "close":
		return Close{}, nil
	default:
		return UnknownSegment{Name: head.Action}, nil
	}
	if err := json.Unmarshal(msg, seg); err != nil {
		return nil, err
	}
	return deref(seg), nil
}

// deref turns the pointer used for decoding into the value stored in Path.
func deref(seg Segment) Segment {
	switch s := seg.(type) {
	case *MoveTo:
		return *s
	case *LineTo:
		return *s
	case *QuadraticBezierTo:
		return *s
	case *CubicTo:
		return *s
	case *ArcTo:
		return *s
	case *ArcToPoint:
		return *s
	}
	return seg
}
