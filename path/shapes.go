// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package path

import (
	"errors"
	"math"

	"github.com/gogpu/vraster/geom"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498307936

var errNotBoxes = errors.New("path: subpath is not a box")

// Copy returns an independent copy of p.
func (p *Path) Copy() *Path {
	q := New()
	_ = p.Interpret(q.builder(func(pt geom.Point) geom.Point { return pt }))
	return q
}

// Translate returns p moved by (dx, dy).
func (p *Path) Translate(dx, dy geom.Fixed) *Path {
	q := New()
	_ = p.Interpret(q.builder(func(pt geom.Point) geom.Point {
		return geom.Pt(pt.X+dx, pt.Y+dy)
	}))
	return q
}

// Transform returns p with every point mapped through m.
func (p *Path) Transform(m geom.Matrix) *Path {
	if m.IsIdentity() {
		return p.Copy()
	}
	if m.IsTranslation() {
		return p.Translate(geom.FromFloat(m.C), geom.FromFloat(m.F))
	}
	q := New()
	_ = p.Interpret(q.builder(m.TransformFixed))
	return q
}

// builder returns a visitor that appends mapped operations to p.
func (p *Path) builder(mapPt func(geom.Point) geom.Point) Visitor {
	return Funcs{
		Move: func(pt geom.Point) error { return p.MoveTo(mapPt(pt)) },
		Line: func(pt geom.Point) error { return p.LineTo(mapPt(pt)) },
		Curve: func(c1, c2, end geom.Point) error {
			return p.CurveTo(mapPt(c1), mapPt(c2), mapPt(end))
		},
		Close: p.ClosePath,
	}
}

// Rectangle appends a closed axis-aligned rectangle with the given origin
// and size, in clockwise order on a y-down screen.
func (p *Path) Rectangle(x, y, w, h float64) error {
	x0, y0 := geom.FromFloat(x), geom.FromFloat(y)
	x1, y1 := geom.FromFloat(x+w), geom.FromFloat(y+h)
	if err := p.MoveTo(geom.Pt(x0, y0)); err != nil {
		return err
	}
	for _, pt := range [3]geom.Point{geom.Pt(x1, y0), geom.Pt(x1, y1), geom.Pt(x0, y1)} {
		if err := p.LineTo(pt); err != nil {
			return err
		}
	}
	return p.ClosePath()
}

// Circle appends a closed circle of radius r centered at (cx, cy), built
// from four cubic arcs.
func (p *Path) Circle(cx, cy, r float64) error {
	k := r * kappa
	pt := geom.PtFloat
	if err := p.MoveTo(pt(cx+r, cy)); err != nil {
		return err
	}
	arcs := [4][3]geom.Point{
		{pt(cx+r, cy+k), pt(cx+k, cy+r), pt(cx, cy+r)},
		{pt(cx-k, cy+r), pt(cx-r, cy+k), pt(cx-r, cy)},
		{pt(cx-r, cy-k), pt(cx-k, cy-r), pt(cx, cy-r)},
		{pt(cx+k, cy-r), pt(cx+r, cy-k), pt(cx+r, cy)},
	}
	for _, a := range arcs {
		if err := p.CurveTo(a[0], a[1], a[2]); err != nil {
			return err
		}
	}
	return p.ClosePath()
}

// Arc appends a circular arc of radius r around (cx, cy) from angle a1 to
// a2 (radians, increasing toward +y), joined to the current point with a
// line. Each piece spans at most a quarter turn.
func (p *Path) Arc(cx, cy, r, a1, a2 float64) error {
	for a2 < a1 {
		a2 += 2 * math.Pi
	}
	start := geom.PtFloat(cx+r*math.Cos(a1), cy+r*math.Sin(a1))
	if _, ok := p.CurrentPoint(); ok {
		if err := p.LineTo(start); err != nil {
			return err
		}
	} else if err := p.MoveTo(start); err != nil {
		return err
	}
	n := int(math.Ceil((a2 - a1) / (math.Pi / 2)))
	if n == 0 {
		return nil
	}
	step := (a2 - a1) / float64(n)
	h := 4.0 / 3.0 * math.Tan(step/4)
	for i := 0; i < n; i++ {
		t0 := a1 + float64(i)*step
		t1 := t0 + step
		c0, s0 := math.Cos(t0), math.Sin(t0)
		c1, s1 := math.Cos(t1), math.Sin(t1)
		err := p.CurveTo(
			geom.PtFloat(cx+r*(c0-h*s0), cy+r*(s0+h*c0)),
			geom.PtFloat(cx+r*(c1+h*s1), cy+r*(s1-h*c1)),
			geom.PtFloat(cx+r*c1, cy+r*s1),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// subpathBox tracks the corners of one subpath while testing for a box.
type subpathBox struct {
	pts    [5]geom.Point
	n      int
	broken bool
}

func (s *subpathBox) add(pt geom.Point) {
	if s.n > 0 && s.pts[s.n-1] == pt {
		return
	}
	if s.n == len(s.pts) {
		s.broken = true
		return
	}
	s.pts[s.n] = pt
	s.n++
}

// OrientedBox is a rectangle traced by a subpath. Dir is +1 when the
// rectangle is traced clockwise on a y-down screen and -1 otherwise.
type OrientedBox struct {
	geom.Box
	Dir int
}

// box returns the rectangle traced by the subpath. A subpath that traces
// nothing yields an empty box with ok set.
func (s *subpathBox) box() (OrientedBox, bool) {
	if s.broken {
		return OrientedBox{}, false
	}
	n := s.n
	if n == 5 {
		if s.pts[4] != s.pts[0] {
			return OrientedBox{}, false
		}
		n = 4
	}
	switch n {
	case 0, 1:
		return OrientedBox{}, true
	case 2:
		// A closed back-and-forth line encloses nothing.
		return OrientedBox{}, true
	case 4:
	default:
		return OrientedBox{}, false
	}
	p := s.pts
	var dir int
	switch {
	case p[0].X == p[1].X && p[1].Y == p[2].Y && p[2].X == p[3].X && p[3].Y == p[0].Y:
		// Vertical first edge: down then left is clockwise.
		dir = geom.Sign(int64(p[1].Y-p[0].Y)) * geom.Sign(int64(p[0].X-p[2].X))
	case p[0].Y == p[1].Y && p[1].X == p[2].X && p[2].Y == p[3].Y && p[3].X == p[0].X:
		// Horizontal first edge: right then down is clockwise.
		dir = geom.Sign(int64(p[1].X-p[0].X)) * geom.Sign(int64(p[2].Y-p[1].Y))
	default:
		return OrientedBox{}, false
	}
	return OrientedBox{Box: geom.BoxFromPoints(p[0], p[2]), Dir: dir}, true
}

// Boxes returns the rectangles traced by p when every subpath is an
// axis-aligned rectangle. Subpaths enclosing no area are skipped.
func (p *Path) Boxes() ([]OrientedBox, bool) {
	if !p.FillIsRectilinear() {
		return nil, false
	}
	var boxes []OrientedBox
	var cur subpathBox
	flush := func() error {
		b, ok := cur.box()
		if !ok {
			return errNotBoxes
		}
		if !b.IsEmpty() && b.Dir != 0 {
			boxes = append(boxes, b)
		}
		cur = subpathBox{}
		return nil
	}
	err := p.Interpret(Funcs{
		Move: func(pt geom.Point) error {
			if err := flush(); err != nil {
				return err
			}
			cur.add(pt)
			return nil
		},
		Line: func(pt geom.Point) error {
			cur.add(pt)
			return nil
		},
		Curve: func(_, _, _ geom.Point) error { return errNotBoxes },
	})
	if err == nil {
		err = flush()
	}
	if err != nil {
		return nil, false
	}
	return boxes, true
}

// IsBox returns the single rectangle p traces, if it is one.
func (p *Path) IsBox() (geom.Box, bool) {
	boxes, ok := p.Boxes()
	if !ok || len(boxes) != 1 {
		return geom.Box{}, false
	}
	return boxes[0].Box, true
}
