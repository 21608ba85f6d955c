// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pixbuf is the pixel-operations backend of the rasterizer. It owns
// premultiplied pixel buffers and exposes the primitives the compositor is
// built on: region composite with an optional mask, solid region fill,
// per-row coverage composites and affine image sampling.
//
// An Image in FormatARGB32 stores premultiplied R, G, B, A bytes and is
// layout-compatible with image.RGBA; FormatA8 is layout-compatible with
// image.Alpha. The views returned by RGBA and Alpha share memory with the
// Image.
package pixbuf
