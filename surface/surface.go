// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/custompaint/canvas"
	"github.com/gogpu/custompaint/internal/logger"
)

// Placer positions the host element. It receives every valid constraint
// update.
type Placer interface {
	Place(x, y, w, h float64)
}

// PlacerFunc adapts a function to Placer.
type PlacerFunc func(x, y, w, h float64)

// Place calls f.
func (f PlacerFunc) Place(x, y, w, h float64) { f(x, y, w, h) }

// Option configures a Surface.
type Option func(*Surface)

// WithPlacer sets the element placer.
func WithPlacer(p Placer) Option {
	return func(s *Surface) {
		s.placer = p
	}
}

// WithLogger overrides the shared logger for this surface.
func WithLogger(l *slog.Logger) Option {
	return func(s *Surface) {
		s.log = l
	}
}

// Surface is the sized drawing target of one view.
//
// Surface is safe for concurrent use, but the canvas it hands out is not;
// callers serialize drawing themselves.
type Surface struct {
	mu       sync.Mutex
	provider Provider
	placer   Placer
	log      *slog.Logger

	size    Dimensions
	backing *Backing
}

// New creates a surface with no size. The buffer is acquired from p on the
// first Canvas call.
func New(p Provider, opts ...Option) *Surface {
	s := &Surface{provider: p}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Surface) logger() *slog.Logger {
	if s.log != nil {
		return s.log
	}
	return logger.Get()
}

// Provider returns the surface's provider.
func (s *Surface) Provider() Provider { return s.provider }

// Size returns the last applied logical size.
func (s *Surface) Size() Dimensions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// ApplyConstraints positions the element and, when the width or height
// changed, resizes the buffer. Incomplete constraints are ignored and
// ApplyConstraints returns false.
func (s *Surface) ApplyConstraints(c Constraints) bool {
	if !c.Valid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.placer != nil {
		s.placer.Place(*c.X, *c.Y, *c.W, *c.H)
	}

	size := c.Size()
	if size == s.size {
		return true
	}
	s.size = size
	if s.backing == nil {
		return true
	}
	if err := s.backing.resize(size); err != nil {
		s.logger().Debug("surface: dropping buffer", "error", err)
		s.backing = nil
	}
	return true
}

// Canvas returns the view's canvas, acquiring it on first use. Acquisition
// failures are reported as ErrNotReady and retried on the next call.
func (s *Surface) Canvas(ctx context.Context) (*canvas.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backing != nil {
		return s.backing.Canvas, nil
	}
	if s.provider == nil {
		return nil, ErrNotReady
	}

	b, err := s.provider.Acquire(ctx, s.size)
	if err != nil {
		if errors.Is(err, ErrNotReady) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	s.backing = b
	s.logger().Info("surface: acquired",
		"platform", s.provider.Name(),
		"width", b.Canvas.Width(),
		"height", b.Canvas.Height(),
		"ratio", b.PixelRatio)
	return b.Canvas, nil
}

// PixelRatio returns the ratio of the acquired buffer, or 0 before
// acquisition.
func (s *Surface) PixelRatio() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backing == nil {
		return 0
	}
	return s.backing.PixelRatio
}

// Release drops the buffer. The next Canvas call acquires a new one.
func (s *Surface) Release() {
	s.mu.Lock()
	s.backing = nil
	s.mu.Unlock()
}
