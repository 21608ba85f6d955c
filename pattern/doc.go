// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pattern defines paint sources and resolves them into pixbuf
// pictures.
//
// A Pattern is a Solid color, a Linear or Radial gradient, a Mesh of
// Coons patches, or a SurfacePattern painting a Source. Sources are either
// Surfaces backed by pixels (ImageSurface, RasterSource) or Replayers that
// draw themselves on demand, such as a recording.Recording.
//
// Pattern matrices map device space to pattern space, so a pattern that
// should appear at device offset (x, y) carries Translate(-x, -y).
//
// The Resolver turns a pattern into a picture valid over a device sample
// rectangle:
//
//   - solid colors come from a caller-owned SolidCache
//   - gradients become pixbuf gradients with their matrix clamped to a
//     representable range
//   - surfaces under whole-pixel translations alias the source pixels,
//     other transforms resample into a temporary image
//   - replayers draw into a temporary image kept in their Snapshots memo
//   - meshes are rasterized into a temporary image
//
// Every Resolved result must be released with Cleanup.
package pattern
