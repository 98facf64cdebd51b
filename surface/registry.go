// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"sort"
	"sync"
)

// Platform names understood by the default registry.
const (
	PlatformWeb    = "web"
	PlatformWeChat = "wxMiniProgram"
	PlatformBaidu  = "swanMiniProgram"
)

// ProviderFactory creates the Provider for one view.
type ProviderFactory func() Provider

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Registry maps platform names to provider factories.
//
// Example registration:
//
//	surface.Register("web", func() surface.Provider {
//	    return surface.DirectProvider{}
//	})
//
// Example usage:
//
//	p, err := surface.Lookup(platform)
type Registry struct {
	mu      sync.RWMutex
	entries map[string]ProviderFactory
}

// NewRegistry creates a registry with the web platform registered.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]ProviderFactory)}
	r.Register(PlatformWeb, func() Provider { return DirectProvider{} })
	return r
}

// Register adds a platform to the global registry.
// Registering a name that already exists replaces the previous entry.
func Register(platform string, factory ProviderFactory) {
	globalRegistry.Register(platform, factory)
}

// Unregister removes a platform from the global registry.
func Unregister(platform string) {
	globalRegistry.Unregister(platform)
}

// List returns the platforms registered globally, sorted by name.
func List() []string {
	return globalRegistry.List()
}

// Lookup creates a provider for platform from the global registry.
func Lookup(platform string) (Provider, error) {
	return globalRegistry.Provider(platform)
}

// RegisterMiniProgram registers the handshake platforms with r, answering
// node queries with query.
func RegisterMiniProgram(r *Registry, query QueryFunc) {
	for _, name := range []string{PlatformWeChat, PlatformBaidu} {
		r.Register(name, func() Provider {
			return &HandshakeProvider{Platform: name, Query: query}
		})
	}
}

// Register adds a platform to this registry.
func (r *Registry) Register(platform string, factory ProviderFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]ProviderFactory)
	}
	r.entries[platform] = factory
}

// Unregister removes a platform from this registry.
func (r *Registry) Unregister(platform string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, platform)
}

// List returns the registered platform names sorted by name.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames()
}

// Provider creates a new provider for platform.
func (r *Registry) Provider(platform string) (Provider, error) {
	r.mu.RLock()
	factory, ok := r.entries[platform]
	r.mu.RUnlock()

	if !ok {
		return nil, &PlatformNotFoundError{Name: platform}
	}
	return factory(), nil
}

// Must be called with lock held.
func (r *Registry) sortedNames() []string {
	if len(r.entries) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Errors.
var (
	// ErrUnknownPlatform matches every PlatformNotFoundError.
	ErrUnknownPlatform = errors.New("surface: unknown platform")

	// ErrNotReady is returned by Surface.Canvas while no buffer can be
	// acquired. The next call tries again.
	ErrNotReady = errors.New("surface: not ready")
)

// PlatformNotFoundError indicates a platform is not registered.
type PlatformNotFoundError struct {
	Name string
}

func (e *PlatformNotFoundError) Error() string {
	return "surface: unknown platform: " + e.Name
}

// Is reports whether target is ErrUnknownPlatform.
func (e *PlatformNotFoundError) Is(target error) bool {
	return target == ErrUnknownPlatform
}
