package drawable

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/custompaint/internal/logger"
)

// Option configures a Cache during creation.
//
// Example:
//
//	c, err := drawable.New(
//	    drawable.WithHTTPClient(client),
//	    drawable.WithRegisterer(prometheus.DefaultRegisterer),
//	)
type Option func(*options)

type options struct {
	client     *http.Client
	timeout    time.Duration
	maxTries   uint
	loaders    map[string]Loader
	registerer prometheus.Registerer
	logger     *slog.Logger
}

// WithHTTPClient sets the client used by the default network loader.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithFetch sets the request timeout and attempt count of the default
// network client. It has no effect together with WithHTTPClient.
func WithFetch(timeout time.Duration, maxTries uint) Option {
	return func(o *options) {
		o.timeout = timeout
		o.maxTries = maxTries
	}
}

// WithLoader registers l for descriptors of the given kind, replacing the
// default loader for that kind if any.
func WithLoader(kind string, l Loader) Option {
	return func(o *options) {
		o.loaders[kind] = l
	}
}

// WithRegisterer registers the cache metrics with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = r
	}
}

// WithLogger overrides the shared logger for this cache.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Cache resolves drawables and stores the decoded images by handle.
// Cache is safe for concurrent use.
type Cache struct {
	store   *store
	loaders map[string]Loader
	metrics *metrics
	log     *slog.Logger
}

// New creates an empty cache with loaders for KindNetworkImage and
// KindMemoryImage.
func New(opts ...Option) (*Cache, error) {
	o := options{loaders: make(map[string]Loader)}
	for _, opt := range opts {
		opt(&o)
	}

	s := newStore()
	m := newMetrics(s)
	if _, ok := o.loaders[KindNetworkImage]; !ok {
		client := o.client
		if client == nil {
			client = NewHTTPClient(o.timeout, o.maxTries, m.observeFetch)
		}
		o.loaders[KindNetworkImage] = NewNetworkLoader(client)
	}
	if _, ok := o.loaders[KindMemoryImage]; !ok {
		o.loaders[KindMemoryImage] = MemoryLoader{}
	}
	if o.registerer != nil {
		if err := m.register(o.registerer); err != nil {
			return nil, fmt.Errorf("drawable: register metrics: %w", err)
		}
	}

	return &Cache{store: s, loaders: o.loaders, metrics: m, log: o.logger}, nil
}

func (c *Cache) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return logger.Get()
}

// Resolve loads and decodes the drawable described by d and returns the
// single outcome. On success the image is stored under d.Target, replacing
// any previous image; on failure the store is left untouched.
//
// Resolve blocks until the loader finishes; cancelling ctx aborts network
// loads.
func (c *Cache) Resolve(ctx context.Context, d Descriptor) Report {
	img, err := c.load(ctx, d)
	c.metrics.observe(kindLabel(d.Type, c.loaders), err == nil)
	if err != nil {
		c.logger().Warn("drawable: resolve failed",
			"target", d.Target, "type", d.Type, "err", err)
		return errorReport(d.Target, err)
	}
	c.store.set(d.Target, img)
	c.logger().Debug("drawable: resolved",
		"target", d.Target, "type", d.Type,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return decodedReport(d.Target, img)
}

func (c *Cache) load(ctx context.Context, d Descriptor) (image.Image, error) {
	l, ok := c.loaders[d.Type]
	if !ok {
		return nil, ErrUnknownDrawable
	}
	data, err := l.Load(ctx, d)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Lookup returns the decoded image stored under h.
func (c *Cache) Lookup(h Handle) (image.Image, bool) {
	return c.store.get(h)
}

// Len returns the number of stored images.
func (c *Cache) Len() int {
	return c.store.len()
}

// Stats returns lookup statistics.
func (c *Cache) Stats() Stats {
	return c.store.stats()
}

// kindLabel bounds metric label values to the registered kinds.
func kindLabel(kind string, loaders map[string]Loader) string {
	if _, ok := loaders[kind]; ok {
		return kind
	}
	return "unknown"
}
