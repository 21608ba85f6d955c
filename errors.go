// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vraster

import (
	"errors"

	"github.com/gogpu/vraster/render"
)

// Status errors returned by Engine operations. They are the render
// sentinels, so errors from every stage match them with errors.Is.
var (
	// ErrOutOfMemory reports an allocation that would exceed the pixel
	// limits. Every temporary is released before it is returned.
	ErrOutOfMemory = render.ErrOutOfMemory

	// ErrInvalidGeometry reports a degenerate request, such as a singular
	// transform or a nil path.
	ErrInvalidGeometry = render.ErrInvalidGeometry

	// ErrUnsupported is the signal a renderer strategy uses to hand a
	// request to a more general one. Engine operations never return it.
	ErrUnsupported = render.ErrUnsupported
)

// ErrClosed is returned by operations on an Engine after Close.
var ErrClosed = errors.New("vraster: engine closed")
