package canvas

import (
	"image"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
)

// Clip intersects the clip region with the current path as Fill would
// cover it. An empty path clips everything out. The path is kept.
func (c *Context) Clip() error {
	mask, err := c.pathMask(&c.path)
	if err != nil {
		return err
	}
	if prev := c.state.clip; prev != nil {
		both := image.NewAlpha(c.pix.Rect)
		xdraw.DrawMask(both, both.Rect, mask, image.Point{}, prev, image.Point{}, xdraw.Over)
		mask = both
	}
	c.state.clip = mask
	return nil
}

// pathMask rasterizes the coverage of p into a new alpha mask.
func (c *Context) pathMask(p *devicePath) (*image.Alpha, error) {
	mask := image.NewAlpha(c.pix.Rect)
	r := p.bounds(1).Intersect(mask.Rect)
	if p.empty() || r.Empty() {
		return mask, nil
	}
	c.scratch.Clear(gg.Transparent)
	p.replay(c.layer)
	c.layer.SetRGBA(1, 1, 1, 1)
	if err := c.layer.Fill(); err != nil {
		return nil, err
	}
	xdraw.Draw(mask, r, c.scratch, r.Min, xdraw.Src)
	return mask, nil
}
