// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package tess converts polygons into trapezoids and boxes.
//
// A Polygon is a set of directed edges built from a flattened path or from
// the convex pieces emitted by the stroker. Tessellate sweeps it top to
// bottom (Bentley-Ottmann) and emits the covered area under a fill rule as
// trapezoids, merging vertically adjacent pieces that share both sides.
// Rectilinear input can skip the sweep and produce Boxes directly.
package tess
