// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"context"
	"errors"
	"time"

	"github.com/gogpu/custompaint/canvas"
)

// DefaultHandshakeDelay is how long a HandshakeProvider lets the host
// settle before querying the node.
const DefaultHandshakeDelay = 16 * time.Millisecond

// Provider acquires the pixel buffer behind a view.
type Provider interface {
	// Name returns the platform the provider serves.
	Name() string

	// Acquire allocates a buffer for an element of the given logical size.
	Acquire(ctx context.Context, size Dimensions) (*Backing, error)

	// ElementAttributes returns extra attributes the host must set on the
	// canvas element, or nil.
	ElementAttributes() map[string]string
}

// Backing is an acquired buffer.
type Backing struct {
	Canvas *canvas.Context

	// PixelRatio is the number of buffer pixels per logical unit. The
	// canvas transform is already scaled by it.
	PixelRatio float64
}

// resize reallocates the buffer for size and re-applies the prescale.
// Nothing happens when the pixel size is unchanged.
func (b *Backing) resize(size Dimensions) error {
	w, h := size.scaled(b.PixelRatio)
	if w == b.Canvas.Width() && h == b.Canvas.Height() {
		return nil
	}
	if err := b.Canvas.Resize(w, h); err != nil {
		return err
	}
	prescale(b.Canvas, b.PixelRatio)
	return nil
}

func prescale(c *canvas.Context, ratio float64) {
	if ratio != 1 {
		c.Scale(ratio, ratio)
	}
}

// DirectProvider sizes the buffer to the element's logical size.
type DirectProvider struct{}

func (DirectProvider) Name() string { return PlatformWeb }

func (DirectProvider) ElementAttributes() map[string]string { return nil }

func (DirectProvider) Acquire(_ context.Context, size Dimensions) (*Backing, error) {
	if size.Empty() {
		return nil, ErrNotReady
	}
	w, h := size.scaled(1)
	return &Backing{Canvas: canvas.New(w, h), PixelRatio: 1}, nil
}

// QueryFunc measures the view's node once the host has settled. size is
// the last logical size applied to the surface.
type QueryFunc func(ctx context.Context, size Dimensions) (NodeInfo, error)

// HandshakeProvider waits Delay, queries the node and allocates its size
// at the reported pixel ratio.
type HandshakeProvider struct {
	Platform string
	Delay    time.Duration
	Query    QueryFunc
}

func (p *HandshakeProvider) Name() string { return p.Platform }

func (p *HandshakeProvider) ElementAttributes() map[string]string {
	return map[string]string{"type": "2d"}
}

func (p *HandshakeProvider) Acquire(ctx context.Context, hint Dimensions) (*Backing, error) {
	if p.Query == nil {
		return nil, errors.New("surface: handshake provider has no node query")
	}

	delay := p.Delay
	if delay == 0 {
		delay = DefaultHandshakeDelay
	}
	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	info, err := p.Query(ctx, hint)
	if err != nil {
		return nil, err
	}
	ratio := info.PixelRatio
	if !(ratio > 0) {
		ratio = 1
	}
	size := Dimensions{Width: info.Width, Height: info.Height}
	w, h := size.scaled(ratio)
	if w < 1 || h < 1 {
		return nil, ErrNotReady
	}

	c := canvas.New(w, h)
	prescale(c, ratio)
	return &Backing{Canvas: c, PixelRatio: ratio}, nil
}
