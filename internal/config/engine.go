package config

import (
	"context"

	"github.com/gogpu/custompaint"
	"github.com/gogpu/custompaint/drawable"
	"github.com/gogpu/custompaint/surface"
)

// Registry returns a provider registry for c. The handshake platforms
// answer node queries with the applied size at c.PixelRatio, since a
// standalone process has no host node to measure.
func (c Config) Registry() *surface.Registry {
	r := surface.NewRegistry()
	query := func(_ context.Context, size surface.Dimensions) (surface.NodeInfo, error) {
		return surface.NodeInfo{Width: size.Width, Height: size.Height, PixelRatio: c.PixelRatio}, nil
	}
	for _, name := range []string{surface.PlatformWeChat, surface.PlatformBaidu} {
		r.Register(name, func() surface.Provider {
			return &surface.HandshakeProvider{
				Platform: name,
				Delay:    c.HandshakeDelay.Duration,
				Query:    query,
			}
		})
	}
	return r
}

// EngineOptions returns the engine options described by c.
func (c Config) EngineOptions() []custompaint.Option {
	return []custompaint.Option{
		custompaint.WithPlatform(c.Platform),
		custompaint.WithRegistry(c.Registry()),
		custompaint.WithDrawableOptions(
			drawable.WithFetch(c.Fetch.Timeout.Duration, c.Fetch.MaxTries),
		),
	}
}
