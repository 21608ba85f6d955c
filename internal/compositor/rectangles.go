// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"image"

	"github.com/gogpu/vraster/clip"
	"github.com/gogpu/vraster/pattern"
	"github.com/gogpu/vraster/pixbuf"
)

// Rectangles are the extents of one composite operation, in device
// pixels.
type Rectangles struct {
	// Unbounded is the area the operation may change: the destination
	// within the clip extents.
	Unbounded image.Rectangle
	// Bounded is the part of Unbounded covered by the shape and the mask,
	// and by the source when the operator leaves the destination alone
	// where the source is clear.
	Bounded image.Rectangle
	// Source and Mask are the pattern extents, or Unbounded for patterns
	// without bounds.
	Source, Mask image.Rectangle
	// IsBounded is set when nothing outside Bounded changes. Otherwise the
	// rest of Unbounded needs a cleanup pass.
	IsBounded bool
}

// NewRectangles computes the extents of compositing src through mask and
// a shape covering shape onto dst. ok is false when the operation cannot
// change any pixel.
func NewRectangles(op pixbuf.Operator, src, mask pattern.Pattern, dst *pixbuf.Image, c *clip.Clip, shape image.Rectangle) (r Rectangles, ok bool) {
	if c.IsAllClipped() || op.IsNoop() {
		return r, false
	}
	r.Unbounded = dst.Bounds()
	if ext, bounded := c.Extents(); bounded {
		r.Unbounded = r.Unbounded.Intersect(ext)
	}
	if r.Unbounded.Empty() {
		return r, false
	}

	r.Source, r.Mask = r.Unbounded, r.Unbounded
	if ext, bounded := pattern.Extents(src); bounded {
		r.Source = ext
	}
	if mask != nil {
		if ext, bounded := pattern.Extents(mask); bounded {
			r.Mask = ext
		}
	}

	r.Bounded = r.Unbounded.Intersect(shape).Intersect(r.Mask)
	if op.BoundedBySource() {
		r.Bounded = r.Bounded.Intersect(r.Source)
	}
	r.IsBounded = op.BoundedByMask()
	if r.Bounded.Empty() {
		r.Bounded = image.Rectangle{}
		return r, !r.IsBounded
	}
	return r, true
}

// Complement returns the parts of Unbounded outside Bounded as at most
// four disjoint rectangles.
func (r Rectangles) Complement() []image.Rectangle {
	u, b := r.Unbounded, r.Bounded
	if b.Empty() {
		return []image.Rectangle{u}
	}
	var out []image.Rectangle
	add := func(x image.Rectangle) {
		if !x.Empty() {
			out = append(out, x)
		}
	}
	add(image.Rect(u.Min.X, u.Min.Y, u.Max.X, b.Min.Y))
	add(image.Rect(u.Min.X, b.Min.Y, b.Min.X, b.Max.Y))
	add(image.Rect(b.Max.X, b.Min.Y, u.Max.X, b.Max.Y))
	add(image.Rect(u.Min.X, b.Max.Y, u.Max.X, u.Max.Y))
	return out
}
