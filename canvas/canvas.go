package canvas

import (
	"image"

	"github.com/gogpu/gg"
)

// Op is the composite operation used to combine drawing with the pixels
// already on the canvas.
type Op uint8

const (
	// OpSourceOver draws source over destination.
	OpSourceOver Op = iota
	// OpXor keeps source and destination only where they do not overlap.
	OpXor
)

func (o Op) String() string {
	if o == OpXor {
		return "xor"
	}
	return "source-over"
}

// Rect is an axis-aligned rectangle in user space.
type Rect struct {
	X, Y, W, H float64
}

// PathSink receives path geometry in user space.
type PathSink interface {
	// BeginPath discards the current path.
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
	// CurrentPoint returns the end of the current path in user space.
	CurrentPoint() (x, y float64, ok bool)
}

// Canvas is a mutable 2D drawing context.
//
// Canvas implementations are not safe for concurrent use.
type Canvas interface {
	PathSink

	// Width and Height return the backing buffer size in device pixels.
	Width() int
	Height() int

	// Save pushes transform, clip, style and composite operation.
	Save()
	// Restore pops the state pushed by the matching Save. Unmatched calls
	// are ignored.
	Restore()

	Translate(dx, dy float64)
	Scale(sx, sy float64)
	Rotate(radians float64)
	// Transform composes m into the current transform (current * m).
	Transform(m gg.Matrix)

	SetLineWidth(width float64)
	SetMiterLimit(limit float64)
	SetLineCap(lineCap gg.LineCap)
	SetLineJoin(join gg.LineJoin)
	SetFillColor(c gg.RGBA)
	SetStrokeColor(c gg.RGBA)
	SetGlobalAlpha(alpha float64)
	SetCompositeOp(op Op)

	// Fill and Stroke rasterize the current path. The path is kept.
	Fill() error
	Stroke() error
	// Clip intersects the clip region with the current path.
	Clip() error

	// FillRect and StrokeRect paint a rectangle without touching the
	// current path.
	FillRect(x, y, w, h float64) error
	StrokeRect(x, y, w, h float64) error

	// Clear erases every pixel inside the clip region.
	Clear()
	// Flood paints every pixel inside the clip region with the fill color.
	Flood() error

	// DrawImage blits img with its top-left corner at (dx, dy).
	DrawImage(img image.Image, dx, dy float64) error
	// DrawImageRect blits the src region of img into dst.
	DrawImageRect(img image.Image, src, dst Rect) error

	// NewOffscreen returns a blank canvas with the same pixel size and a
	// default state.
	NewOffscreen() Canvas
	// Snapshot returns a copy of the pixels.
	Snapshot() *image.NRGBA
}
