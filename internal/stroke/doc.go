// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package stroke converts stroked paths into fillable outlines.
//
// The stroker walks a device-space path and, for every segment, emits the
// quadrilateral swept by a line of the stroke width. Consecutive segments
// are connected by joins and open ends receive caps:
//
//   - miter joins extend the outer offset lines to their intersection and
//     fall back to a bevel when the miter would exceed the limit
//   - round joins and caps are fans of vertices taken from a pen, a convex
//     polygon approximating the stroke circle within the tolerance
//   - bevel joins close the corner with a single triangle
//
// Widths, dash lengths and the square cap extension are measured in user
// space and mapped to the device with the stroke transform, so a stroke
// under a non-uniform scale has elliptical round parts.
//
// Output goes to a [tess.Sink] as convex pieces (triangles, quads, fans and
// boxes). The pieces overlap and are meant to be filled with the nonzero
// rule, which makes self-intersecting outlines safe to tessellate.
//
// [Rectilinear] handles the common case of axis-aligned strokes without
// round parts, producing boxes directly.
package stroke
