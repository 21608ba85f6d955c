// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clip

import (
	"errors"
	"image"
	"slices"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/internal/tess"
	"github.com/gogpu/vraster/path"
	"github.com/gogpu/vraster/render"
)

// Clip restricts drawing to the intersection of a set of disjoint boxes and
// a stack of filled paths. A nil *Clip does not restrict drawing.
//
// Clips are immutable once built: every Intersect method returns a new
// Clip, and the path stack is shared between a clip and the clips derived
// from it.
type Clip struct {
	extents image.Rectangle
	boxes   []geom.Box
	path    *Path
}

// Path is one entry of the path stack of a clip.
type Path struct {
	Path      *path.Path
	FillRule  render.FillRule
	Tolerance float64
	Antialias render.Antialias

	prev *Path
}

// New returns the clip that does not restrict drawing.
func New() *Clip { return nil }

// FromRectangle returns a clip to r.
func FromRectangle(r image.Rectangle) *Clip {
	if r.Empty() {
		return allClipped()
	}
	return &Clip{extents: r, boxes: []geom.Box{geom.BoxFromRect(r)}}
}

func allClipped() *Clip { return &Clip{} }

// IsAllClipped reports whether c hides everything.
func (c *Clip) IsAllClipped() bool {
	return c != nil && c.extents.Empty()
}

// Extents returns the pixel bounds of the visible area. ok is false for
// the nil clip, which has no bounds.
func (c *Clip) Extents() (r image.Rectangle, ok bool) {
	if c == nil {
		return image.Rectangle{}, false
	}
	return c.extents, true
}

// IsRegion reports whether c is a set of whole-pixel boxes.
func (c *Clip) IsRegion() bool {
	if c == nil {
		return true
	}
	if c.HasPaths() {
		return false
	}
	for _, b := range c.boxes {
		if !b.IsPixelAligned() {
			return false
		}
	}
	return true
}

// Boxes returns a copy of the box set of c.
func (c *Clip) Boxes() []geom.Box {
	if c == nil {
		return nil
	}
	return slices.Clone(c.boxes)
}

// Paths returns the path stack of c, innermost first.
func (c *Clip) Paths() []*Path {
	if c == nil {
		return nil
	}
	var out []*Path
	for p := c.path; p != nil; p = p.prev {
		out = append(out, p)
	}
	return out
}

// HasPaths reports whether c carries a path stack.
func (c *Clip) HasPaths() bool { return c != nil && c.path != nil }

// ContainsRectangle reports whether every pixel of r is fully visible
// through c.
func (c *Clip) ContainsRectangle(r image.Rectangle) bool {
	if c == nil {
		return true
	}
	if c.path != nil || !r.In(c.extents) {
		return false
	}
	want := geom.BoxFromRect(r)
	for _, b := range c.boxes {
		if b.ContainsBox(want) {
			return true
		}
	}
	return false
}

// Copy returns a copy of c with its own box set. The path stack is shared.
func (c *Clip) Copy() *Clip {
	if c == nil {
		return nil
	}
	return &Clip{extents: c.extents, boxes: slices.Clone(c.boxes), path: c.path}
}

// IntersectRectangle returns c restricted to r.
func (c *Clip) IntersectRectangle(r image.Rectangle) *Clip {
	if c == nil {
		return FromRectangle(r)
	}
	if c.IsAllClipped() || r.Empty() {
		return allClipped()
	}
	if c.ContainsRectangle(r) {
		return FromRectangle(r)
	}
	return c.intersectBoxList([]geom.Box{geom.BoxFromRect(r)})
}

// IntersectBoxes returns c restricted to the union of boxes, which must not
// overlap.
func (c *Clip) IntersectBoxes(boxes *tess.Boxes) *Clip {
	list := boxes.Slice()
	if c == nil {
		if len(list) == 0 {
			return allClipped()
		}
		return &Clip{extents: boxes.Extents().RoundOut(), boxes: list}
	}
	return c.intersectBoxList(list)
}

func (c *Clip) intersectBoxList(list []geom.Box) *Clip {
	if c.IsAllClipped() {
		return allClipped()
	}
	var out []geom.Box
	ext := geom.EmptyBox
	for _, a := range c.boxes {
		for _, b := range list {
			if i := a.Intersect(b); !i.IsEmpty() {
				out = append(out, i)
				ext = ext.AddBox(i)
			}
		}
	}
	if len(out) == 0 {
		return allClipped()
	}
	n := &Clip{extents: ext.RoundOut().Intersect(c.extents), boxes: out, path: c.path}
	if n.extents.Empty() {
		return allClipped()
	}
	return n
}

// IntersectPath returns c restricted to the inside of p filled under rule.
// A path of axis-aligned rectangles whose corners land on whole pixels, or
// any such path when antialiasing is off, becomes part of the box set;
// other paths are pushed onto the path stack.
func (c *Clip) IntersectPath(p *path.Path, rule render.FillRule, tolerance float64, aa render.Antialias) (*Clip, error) {
	if c.IsAllClipped() {
		return c, nil
	}
	ext, ok := p.Extents()
	if !ok || p.FillIsEmpty() {
		return allClipped(), nil
	}

	if b, ok := p.IsBox(); ok && (aa.IsNone() || b.IsPixelAligned()) {
		boxes := tess.NewBoxes()
		boxes.Add(b, aa)
		return c.IntersectBoxes(boxes), nil
	}
	if p.FillIsRectilinear() {
		boxes := tess.NewBoxes()
		err := tess.FillRectilinear(p, rule, aa, boxes)
		switch {
		case err == nil && (aa.IsNone() || boxes.IsPixelAligned()):
			return c.IntersectBoxes(boxes), nil
		case err != nil && !errors.Is(err, render.ErrUnsupported):
			return nil, err
		}
	}

	n := c.IntersectRectangle(ext.RoundOut())
	if n.IsAllClipped() {
		return n, nil
	}
	if tolerance <= 0 {
		tolerance = render.DefaultTolerance
	}
	n.path = &Path{
		Path:      p.Copy(),
		FillRule:  rule,
		Tolerance: tolerance,
		Antialias: aa,
		prev:      n.path,
	}
	return n, nil
}

// IntersectClip returns the intersection of c and o.
func (c *Clip) IntersectClip(o *Clip) (*Clip, error) {
	switch {
	case o == nil:
		return c, nil
	case c == nil:
		return o, nil
	case c.IsAllClipped() || o.IsAllClipped():
		return allClipped(), nil
	}
	n := c.intersectBoxList(o.boxes)
	paths := o.Paths()
	for i := len(paths) - 1; i >= 0; i-- {
		if n.IsAllClipped() {
			break
		}
		p := paths[i]
		n.path = &Path{
			Path:      p.Path,
			FillRule:  p.FillRule,
			Tolerance: p.Tolerance,
			Antialias: p.Antialias,
			prev:      n.path,
		}
	}
	return n, nil
}

// Transform returns c mapped through m. Integer translations move the box
// set; any other transform turns boxes into paths.
func (c *Clip) Transform(m geom.Matrix) (*Clip, error) {
	if c == nil || c.IsAllClipped() || m.IsIdentity() {
		return c, nil
	}
	if tx, ty, ok := m.IntegerTranslation(); ok {
		d := geom.Pt(geom.FromInt(tx), geom.FromInt(ty))
		n := &Clip{extents: c.extents.Add(image.Pt(tx, ty))}
		for _, b := range c.boxes {
			n.boxes = append(n.boxes, geom.Box{P1: b.P1.Add(d), P2: b.P2.Add(d)})
		}
		n.path = transformPaths(c.path, m)
		return n, nil
	}

	var err error
	boxes := path.New()
	for _, b := range c.boxes {
		x1, y1, x2, y2 := b.ToFloat()
		if err = boxes.Rectangle(x1, y1, x2-x1, y2-y1); err != nil {
			return nil, err
		}
	}
	var n *Clip
	n, err = n.IntersectPath(boxes.Transform(m), render.FillRuleWinding, render.DefaultTolerance, render.AntialiasDefault)
	if err != nil {
		return nil, err
	}
	paths := c.Paths()
	for i := len(paths) - 1; i >= 0 && !n.IsAllClipped(); i-- {
		p := paths[i]
		if n, err = n.IntersectPath(p.Path.Transform(m), p.FillRule, p.Tolerance, p.Antialias); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func transformPaths(p *Path, m geom.Matrix) *Path {
	if p == nil {
		return nil
	}
	return &Path{
		Path:      p.Path.Transform(m),
		FillRule:  p.FillRule,
		Tolerance: p.Tolerance,
		Antialias: p.Antialias,
		prev:      transformPaths(p.prev, m),
	}
}
