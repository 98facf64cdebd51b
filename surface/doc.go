// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface owns the drawing surface behind a custom-paint view.
//
// A Surface tracks the element's layout constraints and acquires its pixel
// buffer lazily through a Provider. Two providers cover the supported hosts:
//
//   - DirectProvider: the buffer is the element's logical size, 1:1.
//   - HandshakeProvider: the host needs a short settle delay and a node
//     query before the buffer can be sized; the buffer is allocated at the
//     device pixel ratio and the canvas is prescaled so drawing stays in
//     logical units.
//
// # Registry
//
// Providers are looked up by platform name:
//
//	r := surface.NewRegistry()
//	surface.RegisterMiniProgram(r, queryNode)
//
//	p, err := r.Provider("wxMiniProgram")
//	s := surface.New(p)
//
//	s.ApplyConstraints(surface.Rect(0, 0, 300, 150))
//	dc, err := s.Canvas(ctx)
//
// Platform detection is left to the embedding application.
package surface
