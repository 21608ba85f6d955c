// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tess

import (
	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/render"
)

// Trapezoid is the area between two lines over [Top, Bottom).
type Trapezoid struct {
	Top, Bottom geom.Fixed
	Left, Right geom.Line
}

// IsRectilinear reports whether both sides are vertical.
func (t Trapezoid) IsRectilinear() bool {
	return t.Left.P1.X == t.Left.P2.X && t.Right.P1.X == t.Right.P2.X
}

// Box returns the bounding box of t.
func (t Trapezoid) Box() geom.Box {
	l := min(t.Left.XForY(t.Top), t.Left.XForY(t.Bottom))
	r := max(t.Right.XForY(t.Top), t.Right.XForY(t.Bottom))
	if t.Left.P1.X == t.Left.P2.X {
		l = t.Left.P1.X
	}
	if t.Right.P1.X == t.Right.P2.X {
		r = t.Right.P1.X
	}
	return geom.Box{P1: geom.Pt(l, t.Top), P2: geom.Pt(max(l, r), t.Bottom)}
}

// Traps is a growable list of trapezoids.
type Traps struct {
	traps       []Trapezoid
	extents     geom.Box
	rectilinear bool
}

// NewTraps returns an empty list.
func NewTraps() *Traps {
	t := &Traps{}
	t.Reset()
	return t
}

// Reset drops every trapezoid.
func (t *Traps) Reset() {
	t.traps = t.traps[:0]
	t.extents = geom.EmptyBox
	t.rectilinear = true
}

// Add appends a trapezoid; empty ones are dropped.
func (t *Traps) Add(top, bottom geom.Fixed, left, right geom.Line) {
	if top >= bottom {
		return
	}
	tr := Trapezoid{Top: top, Bottom: bottom, Left: left, Right: right}
	t.traps = append(t.traps, tr)
	t.extents = t.extents.AddBox(tr.Box())
	t.rectilinear = t.rectilinear && tr.IsRectilinear()
}

// Len returns the number of trapezoids.
func (t *Traps) Len() int { return len(t.traps) }

// All returns the trapezoids. The slice is owned by t.
func (t *Traps) All() []Trapezoid { return t.traps }

// Extents returns the union of the trapezoid bounds.
func (t *Traps) Extents() geom.Box { return t.extents }

// IsRectilinear reports whether every trapezoid is a box.
func (t *Traps) IsRectilinear() bool { return t.rectilinear }

// ToBoxes converts rectilinear trapezoids to boxes. It reports false and
// adds nothing when some trapezoid has a slanted side.
func (t *Traps) ToBoxes(out *Boxes, aa render.Antialias) bool {
	if !t.rectilinear {
		return false
	}
	for _, tr := range t.traps {
		out.Add(geom.Box{P1: geom.Pt(tr.Left.P1.X, tr.Top), P2: geom.Pt(tr.Right.P1.X, tr.Bottom)}, aa)
	}
	return true
}
