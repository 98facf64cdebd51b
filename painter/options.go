package painter

import (
	"image"
	"log/slog"
	"time"

	"github.com/gogpu/custompaint/canvas"
	"github.com/gogpu/custompaint/drawable"
)

// ImageSource resolves drawable handles to decoded images.
// *drawable.Cache implements it.
type ImageSource interface {
	Lookup(h drawable.Handle) (image.Image, bool)
}

// Observer is notified after each batch.
type Observer interface {
	ObserveBatch(executed, ignored int, elapsed time.Duration)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(executed, ignored int, elapsed time.Duration)

// ObserveBatch calls f.
func (f ObserverFunc) ObserveBatch(executed, ignored int, elapsed time.Duration) {
	f(executed, ignored, elapsed)
}

// OffscreenFunc returns a blank canvas of the given pixel size and a
// function that gives it back once the caller is done with it.
type OffscreenFunc func(width, height int) (canvas.Canvas, func())

// PoolOffscreen returns an OffscreenFunc backed by pool.
func PoolOffscreen(pool *canvas.Pool) OffscreenFunc {
	return func(width, height int) (canvas.Canvas, func()) {
		c := pool.Get(width, height)
		return c, func() { pool.Put(c) }
	}
}

// Option configures an Interpreter during creation.
type Option func(*Interpreter)

// WithImages sets the source used by drawImage and drawImageRect. Without
// one, image instructions draw nothing.
func WithImages(src ImageSource) Option {
	return func(in *Interpreter) {
		in.images = src
	}
}

// WithObserver sets the batch observer.
func WithObserver(o Observer) Option {
	return func(in *Interpreter) {
		in.observer = o
	}
}

// WithOffscreen sets how offscreen buffers for compound shapes are
// obtained. By default each shape allocates one with NewOffscreen.
func WithOffscreen(f OffscreenFunc) Option {
	return func(in *Interpreter) {
		in.offscreen = f
	}
}

// WithLogger overrides the shared logger.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) {
		in.log = l
	}
}
