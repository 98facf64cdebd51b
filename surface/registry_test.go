// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDefaults(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{PlatformWeb}, r.List())

	p, err := r.Provider(PlatformWeb)
	require.NoError(t, err)
	assert.Equal(t, PlatformWeb, p.Name())
	assert.IsType(t, DirectProvider{}, p)
}

func TestRegistryMiniProgram(t *testing.T) {
	r := NewRegistry()
	RegisterMiniProgram(r, func(context.Context, Dimensions) (NodeInfo, error) {
		return NodeInfo{Width: 10, Height: 10, PixelRatio: 2}, nil
	})

	assert.Equal(t, []string{PlatformBaidu, PlatformWeb, PlatformWeChat}, r.List())

	for _, name := range []string{PlatformWeChat, PlatformBaidu} {
		p, err := r.Provider(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name())
		assert.Equal(t, map[string]string{"type": "2d"}, p.ElementAttributes())
	}
}

func TestRegistryUnknownPlatform(t *testing.T) {
	r := NewRegistry()
	_, err := r.Provider("tvOS")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPlatform), "%v", err)

	var nf *PlatformNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "tvOS", nf.Name)
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("temp", func() Provider { return DirectProvider{} })
	_, err := r.Provider("temp")
	require.NoError(t, err)

	r.Unregister("temp")
	_, err = r.Provider("temp")
	assert.True(t, errors.Is(err, ErrUnknownPlatform), "%v", err)
}

func TestRegistryReplace(t *testing.T) {
	r := NewRegistry()
	r.Register(PlatformWeb, func() Provider {
		return &HandshakeProvider{Platform: "replaced"}
	})
	p, err := r.Provider(PlatformWeb)
	require.NoError(t, err)
	assert.Equal(t, "replaced", p.Name())
}

func TestGlobalRegistry(t *testing.T) {
	assert.Contains(t, List(), PlatformWeb)

	Register("global-test", func() Provider { return DirectProvider{} })
	defer Unregister("global-test")

	p, err := Lookup("global-test")
	require.NoError(t, err)
	assert.Equal(t, PlatformWeb, p.Name())
}
