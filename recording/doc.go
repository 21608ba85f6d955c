// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package recording provides a surface that records drawing operations
// instead of rasterizing them.
//
// A Recording captures Fill, Stroke, Paint and Mask requests as typed
// command structs. Paths are copied into a ResourcePool and clips are
// copied with the command, so later changes by the caller do not affect
// what was recorded. Commands are replayed into a Backend; the root
// vraster.Engine is the backend used in practice.
//
// A Recording is a pattern.Replayer: wrapping it in pattern.NewSurface lets
// it be used as a paint source. The resolver replays it on demand and
// keeps the replayed images in the recording's snapshot memo, which every
// new command invalidates.
//
// # Example
//
//	rec := engine.NewRecording(pixbuf.ContentColorAlpha, image.Rect(0, 0, 64, 64))
//	rec.Fill(p, render.FillRuleWinding, 0.1, render.AntialiasDefault,
//	    pixbuf.OpOver, pattern.NewRGBA(1, 0, 0, 1), nil)
//
//	src := pattern.NewSurface(rec)
//	src.Extend = pixbuf.ExtendRepeat
//	engine.Paint(pixbuf.OpOver, src, dst, nil)
package recording
