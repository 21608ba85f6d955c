// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tess

import (
	"cmp"
	"slices"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/render"
)

const firstBoxChunk = 32

// Boxes is a growable list of non-empty boxes stored in chunks of doubling
// capacity. Added boxes are clipped to the limit boxes when any are set.
type Boxes struct {
	chunks  [][]geom.Box
	n       int
	extents geom.Box
	limits  []geom.Box
	aligned bool
}

// NewBoxes returns an empty list limited to the union of limits.
func NewBoxes(limits ...geom.Box) *Boxes {
	b := &Boxes{}
	b.Reset()
	b.limits = limits
	return b
}

// Reset drops every box, keeping the limits and the first chunk.
func (b *Boxes) Reset() {
	if len(b.chunks) > 0 {
		b.chunks = b.chunks[:1]
		b.chunks[0] = b.chunks[0][:0]
	}
	b.n = 0
	b.extents = geom.EmptyBox
	b.aligned = true
}

// Len returns the number of boxes.
func (b *Boxes) Len() int { return b.n }

// Extents returns the union of all boxes.
func (b *Boxes) Extents() geom.Box { return b.extents }

// IsPixelAligned reports whether every box has integer corners.
func (b *Boxes) IsPixelAligned() bool { return b.aligned }

// Add appends box. With antialiasing off the corners are rounded to whole
// pixels first. Empty results are dropped.
func (b *Boxes) Add(box geom.Box, aa render.Antialias) {
	box = box.Canonical()
	if aa.IsNone() {
		box.P1.X, box.P1.Y = geom.RoundDown(box.P1.X), geom.RoundDown(box.P1.Y)
		box.P2.X, box.P2.Y = geom.RoundDown(box.P2.X), geom.RoundDown(box.P2.Y)
	}
	if len(b.limits) == 0 {
		b.push(box)
		return
	}
	for _, l := range b.limits {
		b.push(box.Intersect(l))
	}
}

func (b *Boxes) push(box geom.Box) {
	if box.IsEmpty() {
		return
	}
	if len(b.chunks) == 0 {
		b.chunks = append(b.chunks, make([]geom.Box, 0, firstBoxChunk))
	}
	last := &b.chunks[len(b.chunks)-1]
	if len(*last) == cap(*last) {
		b.chunks = append(b.chunks, make([]geom.Box, 0, 2*cap(*last)))
		last = &b.chunks[len(b.chunks)-1]
	}
	*last = append(*last, box)
	b.n++
	b.extents = b.extents.AddBox(box)
	b.aligned = b.aligned && box.IsPixelAligned()
}

// Each calls fn for every box in insertion order until fn returns false.
func (b *Boxes) Each(fn func(geom.Box) bool) {
	for _, c := range b.chunks {
		for _, box := range c {
			if !fn(box) {
				return
			}
		}
	}
}

// Slice returns a copy of the boxes in insertion order.
func (b *Boxes) Slice() []geom.Box {
	out := make([]geom.Box, 0, b.n)
	for _, c := range b.chunks {
		out = append(out, c...)
	}
	return out
}

// Sorted returns the boxes ordered top to bottom, then left to right.
func (b *Boxes) Sorted() []geom.Box {
	out := b.Slice()
	slices.SortFunc(out, compareBoxes)
	return out
}

func compareBoxes(a, c geom.Box) int {
	return cmp.Or(
		cmp.Compare(a.P1.Y, c.P1.Y),
		cmp.Compare(a.P1.X, c.P1.X),
		cmp.Compare(a.P2.Y, c.P2.Y),
		cmp.Compare(a.P2.X, c.P2.X),
	)
}

// AddBox implements Sink for axis-aligned outlines.
func (b *Boxes) AddBox(box geom.Box) error {
	b.Add(box, render.AntialiasDefault)
	return nil
}
