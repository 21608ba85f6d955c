// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package vraster is a software rasterizer for 2D vector graphics.
//
// # Overview
//
// vraster fills and strokes paths with paint sources and composites the
// result into premultiplied pixel images under Porter-Duff and blend
// operators. It is the drawing core a canvas library sits on: callers
// bring device-space paths, a clip and a paint source, and the Engine
// turns them into pixels.
//
// # Quick Start
//
//	e := vraster.New()
//	defer e.Close()
//
//	dst, _ := pixbuf.NewImage(pixbuf.FormatARGB32, 256, 256)
//	p := path.New()
//	_ = p.Circle(128, 128, 100)
//
//	err := e.Fill(p, render.FillRuleWinding, 0, render.AntialiasDefault,
//	    pixbuf.OpOver, pattern.NewRGBA(1, 0, 0, 1), dst, nil)
//
// # Architecture
//
// The library is organized into:
//   - Public API: Engine (Fill, Stroke, Paint, Mask), options, errors
//   - geom, path: fixed-point geometry and the path store
//   - pixbuf: images, operators, pictures and compositing primitives
//   - clip, pattern, recording: clips, paint sources, recording surfaces
//   - Internal: stroke (stroker), tess (tessellator), raster (coverage),
//     compositor (renderer strategies), blend (per-pixel operators)
//
// # Rendering pipeline
//
// A fill tessellates its path into trapezoids, or into boxes when the path
// is made of axis-aligned rectangles. A stroke first builds the outline of
// the path. The compositor then picks the most specialized renderer for
// the request: direct fills of whole-pixel boxes, runs of full coverage
// when antialiasing is off, or coverage rows otherwise. Operators that
// affect pixels outside their shape, such as IN, also clear the rest of
// the clip.
//
// # Logging
//
// vraster is silent by default. See SetLogger.
package vraster
