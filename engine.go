package custompaint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/custompaint/canvas"
	"github.com/gogpu/custompaint/drawable"
	"github.com/gogpu/custompaint/internal/logger"
	"github.com/gogpu/custompaint/painter"
	"github.com/gogpu/custompaint/surface"
)

// Sender delivers a reply frame to the host.
type Sender interface {
	Send(msg []byte) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(msg []byte) error

// Send calls f.
func (f SenderFunc) Send(msg []byte) error { return f(msg) }

// Engine routes host messages to the drawable cache and to views.
// Engine is safe for concurrent use.
type Engine struct {
	opts      options
	drawables *drawable.Cache
	interp    *painter.Interpreter
	metrics   *metrics

	poolOnce sync.Once
	pool     *canvas.Pool

	mu     sync.Mutex
	views  map[ViewID]*View
	closed bool

	ctx     context.Context
	cancel  context.CancelFunc
	pending sync.WaitGroup
}

// New creates an Engine. It fails when the platform has no provider or
// the metrics cannot be registered.
func New(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if _, err := o.provider(); err != nil {
		return nil, err
	}

	e := &Engine{opts: o, views: make(map[ViewID]*View)}
	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.metrics = newMetrics(func() float64 { return float64(e.ViewCount()) })

	dopts := o.drawables
	if o.registerer != nil {
		if err := e.metrics.register(o.registerer); err != nil {
			e.cancel()
			return nil, fmt.Errorf("custompaint: register metrics: %w", err)
		}
		dopts = append([]drawable.Option{drawable.WithRegisterer(o.registerer)}, dopts...)
	}
	cache, err := drawable.New(dopts...)
	if err != nil {
		e.cancel()
		return nil, err
	}
	e.drawables = cache

	e.interp = painter.New(
		painter.WithImages(cache),
		painter.WithObserver(e.metrics),
		painter.WithOffscreen(e.offscreen),
	)
	return e, nil
}

func (o *options) provider() (surface.Provider, error) {
	if o.registry != nil {
		return o.registry.Provider(o.platform)
	}
	return surface.Lookup(o.platform)
}

// offscreen hands out scratch canvases from a pool created on first use
// and released by Close.
func (e *Engine) offscreen(width, height int) (canvas.Canvas, func()) {
	e.poolOnce.Do(func() {
		e.pool = &canvas.Pool{}
	})
	return painter.PoolOffscreen(e.pool)(width, height)
}

// Drawables returns the engine's drawable cache.
func (e *Engine) Drawables() *drawable.Cache { return e.drawables }

// HandleMessage routes one inbound frame. Malformed frames and unknown
// types are returned as errors; nothing is changed in that case.
//
// Decode requests are resolved in the background and answered through
// the Sender. A paint batch for a view without a surface is dropped.
func (e *Engine) HandleMessage(ctx context.Context, data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("custompaint: malformed message: %w", err)
	}

	switch env.Type {
	case TypeDecodeDrawable:
		var d drawable.Descriptor
		if err := json.Unmarshal(env.Message, &d); err != nil {
			return fmt.Errorf("custompaint: %s: %w", env.Type, err)
		}
		e.DecodeDrawable(d)
		return nil

	case TypeCustomPaint:
		var m paintMessage
		if err := json.Unmarshal(env.Message, &m); err != nil {
			return fmt.Errorf("custompaint: %s: %w", env.Type, err)
		}
		return e.customPaint(ctx, m)

	case TypeDisposeView:
		var m disposeMessage
		if err := json.Unmarshal(env.Message, &m); err != nil {
			return fmt.Errorf("custompaint: %s: %w", env.Type, err)
		}
		e.DisposeView(m.View)
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, env.Type)
	}
}

func (e *Engine) customPaint(ctx context.Context, m paintMessage) error {
	v, err := e.View(m.View)
	if err != nil {
		return err
	}
	if m.Constraints != nil && !v.SetConstraints(*m.Constraints) {
		logger.Get().Debug("custompaint: ignored incomplete constraints", "view", m.View)
	}
	if m.Attributes == nil {
		return nil
	}
	if err := v.Paint(ctx, m.Attributes.Commands); err != nil {
		if errors.Is(err, surface.ErrNotReady) {
			logger.Get().Debug("custompaint: skipped batch", "view", m.View, "err", err)
			return nil
		}
		return err
	}
	return nil
}

// DecodeDrawable resolves d in the background and sends the report to
// the host once it is done. After Close the request fails at once with
// ErrClosed.
func (e *Engine) DecodeDrawable(d drawable.Descriptor) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.reply(drawable.Report{Event: drawable.EventError, Target: d.Target, Error: ErrClosed.Error()})
		return
	}
	e.pending.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.pending.Done()
		e.reply(e.drawables.Resolve(e.ctx, d))
	}()
}

func (e *Engine) reply(r drawable.Report) {
	if e.opts.sender == nil {
		return
	}
	msg, err := encodeReport(r)
	if err != nil {
		logger.Get().Warn("custompaint: encode reply", "target", r.Target, "err", err)
		return
	}
	if err := e.opts.sender.Send(msg); err != nil {
		logger.Get().Warn("custompaint: send reply", "target", r.Target, "err", err)
	}
}

// View returns the view with the given id, creating it on first use.
func (e *Engine) View(id ViewID) (*View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrClosed
	}
	if v, ok := e.views[id]; ok {
		return v, nil
	}

	p, err := e.opts.provider()
	if err != nil {
		return nil, err
	}
	var sopts []surface.Option
	if e.opts.placer != nil {
		if pl := e.opts.placer(id); pl != nil {
			sopts = append(sopts, surface.WithPlacer(pl))
		}
	}
	v := &View{
		id:      id,
		surface: surface.New(p, sopts...),
		interp:  e.interp,
		skipped: e.metrics.skipped.Inc,
	}
	e.views[id] = v
	logger.Get().Info("custompaint: view created", "view", id, "platform", p.Name())
	return v, nil
}

// LookupView returns an existing view.
func (e *Engine) LookupView(id ViewID) (*View, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.views[id]
	return v, ok
}

// DisposeView drops a view and its surface. Unknown ids are ignored.
func (e *Engine) DisposeView(id ViewID) {
	e.mu.Lock()
	v, ok := e.views[id]
	delete(e.views, id)
	e.mu.Unlock()

	if ok {
		v.surface.Release()
		logger.Get().Info("custompaint: view disposed", "view", id)
	}
}

// ViewCount reports the number of live views.
func (e *Engine) ViewCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.views)
}

// Close cancels outstanding decodes, waits for them, and releases every
// view and the offscreen pool. Decode requests made after Close are
// answered with ErrClosed. Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	views := e.views
	e.views = make(map[ViewID]*View)
	e.mu.Unlock()

	e.cancel()
	e.pending.Wait()

	for _, v := range views {
		v.surface.Release()
	}
	e.poolOnce.Do(func() {
		e.pool = &canvas.Pool{}
	})
	e.pool.Close()
	return nil
}
