package custompaint

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/custompaint/drawable"
	"github.com/gogpu/custompaint/surface"
)

// Option configures an Engine during creation.
//
// Example:
//
//	e, err := custompaint.New(
//	    custompaint.WithPlatform(surface.PlatformWeChat),
//	    custompaint.WithRegistry(registry),
//	    custompaint.WithRegisterer(prometheus.DefaultRegisterer),
//	)
type Option func(*options)

type options struct {
	sender     Sender
	platform   string
	registry   *surface.Registry
	placer     func(ViewID) surface.Placer
	registerer prometheus.Registerer
	drawables  []drawable.Option
}

func defaultOptions() options {
	return options{platform: surface.PlatformWeb}
}

// WithSender sets where replies to the host are written. Without a sender
// replies are dropped.
func WithSender(s Sender) Option {
	return func(o *options) {
		o.sender = s
	}
}

// WithPlatform selects the surface provider by platform name.
// The default is surface.PlatformWeb.
func WithPlatform(name string) Option {
	return func(o *options) {
		o.platform = name
	}
}

// WithRegistry sets the registry providers are looked up in. The default
// is the package-level surface registry.
func WithRegistry(r *surface.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithPlacer sets the function that returns the element placer of a new
// view.
func WithPlacer(f func(ViewID) surface.Placer) Option {
	return func(o *options) {
		o.placer = f
	}
}

// WithRegisterer registers the engine and drawable cache metrics with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = r
	}
}

// WithDrawableOptions passes extra options to the drawable cache.
func WithDrawableOptions(opts ...drawable.Option) Option {
	return func(o *options) {
		o.drawables = append(o.drawables, opts...)
	}
}
