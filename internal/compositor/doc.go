// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package compositor turns fill, stroke, paint and mask requests into
// pixel writes.
//
// A request is reduced to a shape (boxes or trapezoids), its composite
// Rectangles are computed, and it is handed to the most specialized
// Strategy that accepts it:
//
//   - SolidFill writes whole-pixel boxes inside a region clip with one fill
//     or copy per box and needs no coverage buffer
//   - MonoBlit composites runs of all-or-nothing coverage
//   - GenericSpans composites antialiased coverage rows weighted by the
//     mask pattern and a rendered clip mask
//
// A strategy that cannot handle a request returns render.ErrUnsupported
// before touching the destination and the next one is tried. Operators
// that are not bounded by their mask also clear the part of the clip
// outside the shape.
package compositor
