package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// state is the part of the context captured by Save.
type state struct {
	matrix     gg.Matrix
	fill       gg.RGBA
	stroke     gg.RGBA
	lineWidth  float64
	lineCap    gg.LineCap
	lineJoin   gg.LineJoin
	miterLimit float64
	alpha      float64
	op         Op

	// clip is the coverage of the clip region in device pixels; nil means
	// unclipped. Masks are never mutated once installed, so saved states
	// share them.
	clip *image.Alpha
}

func defaultState() state {
	black := gg.RGBA{A: 1}
	return state{
		matrix:     gg.Identity(),
		fill:       black,
		stroke:     black,
		lineWidth:  1,
		lineCap:    gg.LineCapButt,
		lineJoin:   gg.LineJoinMiter,
		miterLimit: 10,
		alpha:      1,
		op:         OpSourceOver,
	}
}

// Context is a raster Canvas.
//
// Pixels live in a straight-alpha NRGBA buffer. Paths are transformed to
// device space as they are built; fill and stroke replay them onto a gg
// context with an identity transform that rasterizes into a scratch pixmap,
// and the covered region is then composited into the buffer through the
// clip and global alpha.
type Context struct {
	pix *image.NRGBA

	scratch *gg.Pixmap
	layer   *gg.Context

	path  devicePath
	state state
	stack []state
}

var _ Canvas = (*Context)(nil)

// New creates a context with a transparent width×height buffer. Sizes below
// one pixel are raised to one.
func New(width, height int) *Context {
	c := &Context{}
	c.alloc(max(width, 1), max(height, 1))
	return c
}

func (c *Context) alloc(width, height int) {
	c.pix = image.NewNRGBA(image.Rect(0, 0, width, height))
	c.scratch = gg.NewPixmap(width, height)
	c.layer = gg.NewContext(width, height, gg.WithPixmap(c.scratch))
	c.path.reset()
	c.state = defaultState()
	c.stack = c.stack[:0]
}

// Resize reallocates the buffer. Like resizing an HTML canvas it discards
// the pixels and resets the state. Resizing to the current size is a no-op.
func (c *Context) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("canvas: invalid size %dx%d", width, height)
	}
	if width == c.Width() && height == c.Height() {
		return nil
	}
	c.alloc(width, height)
	return nil
}

// Reset clears the pixels, the path and the state stack.
func (c *Context) Reset() {
	clear(c.pix.Pix)
	c.path.reset()
	c.state = defaultState()
	c.stack = c.stack[:0]
}

// Width returns the buffer width in device pixels.
func (c *Context) Width() int { return c.pix.Rect.Dx() }

// Height returns the buffer height in device pixels.
func (c *Context) Height() int { return c.pix.Rect.Dy() }

// Image returns the live buffer. It is only valid until the next Resize.
func (c *Context) Image() *image.NRGBA { return c.pix }

// Save pushes the current state.
func (c *Context) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore pops the last saved state. It does nothing when the stack is
// empty.
func (c *Context) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	c.state = c.stack[n-1]
	c.stack = c.stack[:n-1]
}

// Depth reports the number of states on the save stack.
func (c *Context) Depth() int { return len(c.stack) }

// Matrix returns the current transform.
func (c *Context) Matrix() gg.Matrix { return c.state.matrix }

// Translate moves the origin by (dx, dy).
func (c *Context) Translate(dx, dy float64) {
	c.Transform(gg.Translate(dx, dy))
}

// Scale scales the axes.
func (c *Context) Scale(sx, sy float64) {
	c.Transform(gg.Scale(sx, sy))
}

// Rotate rotates the axes clockwise (in screen space) by radians.
func (c *Context) Rotate(radians float64) {
	c.Transform(gg.Rotate(radians))
}

// Transform multiplies the current transform by m on the right.
func (c *Context) Transform(m gg.Matrix) {
	c.state.matrix = c.state.matrix.Multiply(m)
}

// SetLineWidth sets the stroke width in user units. Values that are not
// positive and finite are ignored, as in HTML canvas.
func (c *Context) SetLineWidth(width float64) {
	if positive(width) {
		c.state.lineWidth = width
	}
}

// SetMiterLimit sets the miter limit. Invalid values are ignored like in
// SetLineWidth.
func (c *Context) SetMiterLimit(limit float64) {
	if positive(limit) {
		c.state.miterLimit = limit
	}
}

func (c *Context) SetLineCap(lineCap gg.LineCap) { c.state.lineCap = lineCap }
func (c *Context) SetLineJoin(join gg.LineJoin)  { c.state.lineJoin = join }
func (c *Context) SetFillColor(col gg.RGBA)      { c.state.fill = col }
func (c *Context) SetStrokeColor(col gg.RGBA)    { c.state.stroke = col }
func (c *Context) SetCompositeOp(op Op)          { c.state.op = op }

// SetGlobalAlpha sets the opacity applied to everything drawn afterwards.
// Values outside [0, 1] are clamped; NaN is ignored.
func (c *Context) SetGlobalAlpha(alpha float64) {
	if math.IsNaN(alpha) {
		return
	}
	c.state.alpha = clamp01(alpha)
}

// BeginPath discards the current path.
func (c *Context) BeginPath() { c.path.reset() }

// MoveTo starts a new sub-path at (x, y).
func (c *Context) MoveTo(x, y float64) {
	c.path.moveTo(c.device(x, y))
}

// LineTo adds a line to (x, y). Without a current point it acts as MoveTo.
func (c *Context) LineTo(x, y float64) {
	c.path.lineTo(c.device(x, y))
}

// QuadraticTo adds a quadratic Bézier curve.
func (c *Context) QuadraticTo(cx, cy, x, y float64) {
	c.path.quadTo(c.device(cx, cy), c.device(x, y))
}

// CubicTo adds a cubic Bézier curve.
func (c *Context) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	c.path.cubicTo(c.device(c1x, c1y), c.device(c2x, c2y), c.device(x, y))
}

// ClosePath closes the current sub-path.
func (c *Context) ClosePath() { c.path.close() }

// CurrentPoint returns the current point mapped back to user space.
func (c *Context) CurrentPoint() (x, y float64, ok bool) {
	if !c.path.hasCurrent {
		return 0, 0, false
	}
	p := c.state.matrix.Invert().TransformPoint(c.path.current)
	return p.X, p.Y, true
}

func (c *Context) device(x, y float64) gg.Point {
	return c.state.matrix.TransformPoint(gg.Pt(x, y))
}

// Fill fills the current path with the fill color using the non-zero rule.
func (c *Context) Fill() error {
	return c.fillPath(&c.path)
}

// Stroke strokes the current path with the stroke color.
func (c *Context) Stroke() error {
	return c.strokePath(&c.path)
}

// FillRect fills a rectangle in user space.
func (c *Context) FillRect(x, y, w, h float64) error {
	p := c.rectPath(x, y, w, h)
	return c.fillPath(&p)
}

// StrokeRect strokes a rectangle in user space.
func (c *Context) StrokeRect(x, y, w, h float64) error {
	p := c.rectPath(x, y, w, h)
	return c.strokePath(&p)
}

// Flood covers the whole buffer with the fill color, ignoring the transform
// but honouring the clip, the global alpha and the composite operation.
func (c *Context) Flood() error {
	var p devicePath
	p.rect(0, 0, float64(c.Width()), float64(c.Height()))
	return c.fillPath(&p)
}

// Clear erases the pixels inside the clip region.
func (c *Context) Clear() {
	if c.state.clip == nil {
		clear(c.pix.Pix)
		return
	}
	eraseMasked(c.pix, c.state.clip)
}

func (c *Context) rectPath(x, y, w, h float64) devicePath {
	var p devicePath
	p.moveTo(c.device(x, y))
	p.lineTo(c.device(x+w, y))
	p.lineTo(c.device(x+w, y+h))
	p.lineTo(c.device(x, y+h))
	p.close()
	return p
}

func (c *Context) fillPath(p *devicePath) error {
	if p.empty() {
		return nil
	}
	col := c.state.fill
	return c.render(p.bounds(1), func(dc *gg.Context) error {
		p.replay(dc)
		dc.SetRGBA(col.R, col.G, col.B, col.A)
		return dc.Fill()
	})
}

func (c *Context) strokePath(p *devicePath) error {
	if p.empty() {
		return nil
	}
	st := c.state
	width := st.lineWidth * matrixScale(st.matrix)
	pad := width/2*math.Max(st.miterLimit, 1) + 1
	return c.render(p.bounds(pad), func(dc *gg.Context) error {
		p.replay(dc)
		dc.SetRGBA(st.stroke.R, st.stroke.G, st.stroke.B, st.stroke.A)
		dc.SetLineWidth(width)
		dc.SetLineCap(st.lineCap)
		dc.SetLineJoin(st.lineJoin)
		dc.SetMiterLimit(st.miterLimit)
		return dc.Stroke()
	})
}

// render rasterizes draw into the scratch layer and composites the area
// within bounds into the buffer.
func (c *Context) render(bounds image.Rectangle, draw func(dc *gg.Context) error) error {
	r := bounds.Intersect(c.pix.Rect)
	if r.Empty() {
		return nil
	}
	c.scratch.Clear(gg.Transparent)
	if err := draw(c.layer); err != nil {
		return err
	}
	c.composite(r, c.scratch)
	return nil
}

// NewOffscreen returns a blank context of the same size.
func (c *Context) NewOffscreen() Canvas {
	return New(c.Width(), c.Height())
}

// Snapshot returns a copy of the buffer.
func (c *Context) Snapshot() *image.NRGBA {
	img := image.NewNRGBA(c.pix.Rect)
	copy(img.Pix, c.pix.Pix)
	return img
}

// At returns the pixel at (x, y).
func (c *Context) At(x, y int) color.NRGBA {
	return c.pix.NRGBAAt(x, y)
}

// matrixScale is the factor by which m scales lengths on average.
func matrixScale(m gg.Matrix) float64 {
	return math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
