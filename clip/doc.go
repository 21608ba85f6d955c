// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package clip describes the area a drawing operation may touch.
//
// A clip is either a region of disjoint boxes, which the compositor can
// apply by splitting its work, or a region plus a stack of filled paths,
// which is applied as a coverage mask. The nil *Clip is valid and stands
// for the whole destination.
package clip
