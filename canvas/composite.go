package canvas

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// composite merges src into the buffer within r using the current
// composite operation, clip and global alpha.
func (c *Context) composite(r image.Rectangle, src image.Image) {
	if c.state.op == OpXor {
		xorComposite(c.pix, r, src, c.state.clip, c.state.alpha)
		return
	}
	mask := c.coverage(r)
	if mask == nil {
		xdraw.Draw(c.pix, r, src, r.Min, xdraw.Over)
		return
	}
	xdraw.DrawMask(c.pix, r, src, r.Min, mask, r.Min, xdraw.Over)
}

// coverage returns the per-pixel weight of drawing within r: the clip mask
// scaled by the global alpha. Nil means full coverage.
func (c *Context) coverage(r image.Rectangle) image.Image {
	clip, a := c.state.clip, unit(c.state.alpha)
	switch {
	case clip == nil && a == 0xff:
		return nil
	case clip == nil:
		return image.NewUniform(color.Alpha{A: a})
	case a == 0xff:
		return clip
	}
	scaled := image.NewAlpha(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v := uint16(clip.AlphaAt(x, y).A) * uint16(a) / 0xff
			scaled.SetAlpha(x, y, color.Alpha{A: uint8(v)})
		}
	}
	return scaled
}

// xorComposite applies the Porter-Duff XOR operator: source survives where
// the destination is empty and vice versa; overlaps cancel.
func xorComposite(dst *image.NRGBA, r image.Rectangle, src image.Image, clip *image.Alpha, alpha float64) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			k := alpha
			if clip != nil {
				k *= float64(clip.AlphaAt(x, y).A) / 0xff
			}
			sr, sg, sb, sa := src.At(x, y).RGBA()
			if sa == 0 || k == 0 {
				continue
			}
			// premultiplied source, weighted by coverage
			fsa := float64(sa) / 0xffff * k
			fsr := float64(sr) / 0xffff * k
			fsg := float64(sg) / 0xffff * k
			fsb := float64(sb) / 0xffff * k

			d := dst.NRGBAAt(x, y)
			da := float64(d.A) / 0xff
			outA := fsa*(1-da) + da*(1-fsa)
			if outA <= 0 {
				dst.SetNRGBA(x, y, color.NRGBA{})
				continue
			}
			mix := func(s float64, dc uint8) uint8 {
				return unit((s*(1-da) + float64(dc)/0xff*da*(1-fsa)) / outA)
			}
			dst.SetNRGBA(x, y, color.NRGBA{
				R: mix(fsr, d.R),
				G: mix(fsg, d.G),
				B: mix(fsb, d.B),
				A: unit(outA),
			})
		}
	}
}

// eraseMasked scales the alpha of every pixel by the complement of mask.
func eraseMasked(dst *image.NRGBA, mask *image.Alpha) {
	r := dst.Rect.Intersect(mask.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m := mask.AlphaAt(x, y).A
			if m == 0 {
				continue
			}
			p := dst.NRGBAAt(x, y)
			p.A = uint8(uint16(p.A) * uint16(0xff-m) / 0xff)
			if p.A == 0 {
				p = color.NRGBA{}
			}
			dst.SetNRGBA(x, y, p)
		}
	}
}

// unit maps [0, 1] to [0, 255].
func unit(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 0xff))
}
