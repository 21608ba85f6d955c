// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package path stores device-space path geometry in fixed point.
//
// A Path is append-only. Operations are kept in a linked list of chunks
// whose capacity doubles as the path grows; chunks live in a single arena
// slice and link to each other by index. While appending, the path keeps
// its extents and four shape flags up to date:
//
//   - HasCurveTo: some segment is a cubic curve.
//   - StrokeIsRectilinear: every segment is horizontal or vertical.
//   - FillIsRectilinear: additionally every implicit closing segment is.
//   - FillMaybeRegion: additionally every vertex is on the pixel grid.
//
// Flags only ever go from true to false.
//
// Interpret replays the operations in order; InterpretFlat does the same
// but replaces each curve by line segments within a tolerance.
package path
