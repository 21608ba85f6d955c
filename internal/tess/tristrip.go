// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tess

import "github.com/gogpu/vraster/geom"

// Tristrip collects outline pieces as triangle strips. Each strip is a run
// of points where every three consecutive points form a triangle.
type Tristrip struct {
	Points  []geom.Point
	Strips  []int // start index of each strip in Points
	extents geom.Box
}

// NewTristrip returns an empty strip list.
func NewTristrip() *Tristrip {
	return &Tristrip{extents: geom.EmptyBox}
}

// Extents returns the bounding box of every point.
func (t *Tristrip) Extents() geom.Box { return t.extents }

// Triangles returns the number of triangles across all strips.
func (t *Tristrip) Triangles() int {
	n := 0
	for i, s := range t.Strips {
		end := len(t.Points)
		if i+1 < len(t.Strips) {
			end = t.Strips[i+1]
		}
		if k := end - s; k >= 3 {
			n += k - 2
		}
	}
	return n
}

// EachTriangle calls fn for every triangle in every strip.
func (t *Tristrip) EachTriangle(fn func(a, b, c geom.Point) error) error {
	for i, s := range t.Strips {
		end := len(t.Points)
		if i+1 < len(t.Strips) {
			end = t.Strips[i+1]
		}
		for j := s; j+2 < end; j++ {
			if err := fn(t.Points[j], t.Points[j+1], t.Points[j+2]); err != nil {
				return err
			}
		}
	}
	return nil
}

// MoveTo starts a new strip.
func (t *Tristrip) MoveTo(p geom.Point) {
	t.Strips = append(t.Strips, len(t.Points))
	t.AddPoint(p)
}

// AddPoint extends the current strip.
func (t *Tristrip) AddPoint(p geom.Point) {
	if len(t.Strips) == 0 {
		t.Strips = append(t.Strips, 0)
	}
	t.Points = append(t.Points, p)
	t.extents = t.extents.AddPoint(p)
}

// AddTriangle implements Sink.
func (t *Tristrip) AddTriangle(a, b, c geom.Point) error {
	t.MoveTo(a)
	t.AddPoint(b)
	t.AddPoint(c)
	return nil
}

// AddQuad implements Sink. The quad a, b, c, d becomes the strip a, b, d, c.
func (t *Tristrip) AddQuad(a, b, c, d geom.Point) error {
	t.MoveTo(a)
	t.AddPoint(b)
	t.AddPoint(d)
	t.AddPoint(c)
	return nil
}

// AddFan implements Sink by zig-zagging across the fan.
func (t *Tristrip) AddFan(center geom.Point, pts []geom.Point) error {
	for i := 0; i+1 < len(pts); i++ {
		if err := t.AddTriangle(center, pts[i], pts[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// AddBox implements Sink.
func (t *Tristrip) AddBox(b geom.Box) error {
	if b.IsEmpty() {
		return nil
	}
	return t.AddQuad(b.P1, geom.Pt(b.P2.X, b.P1.Y), b.P2, geom.Pt(b.P1.X, b.P2.Y))
}

// Polygon converts the strips to a polygon whose nonzero fill is the union
// of the triangles.
func (t *Tristrip) Polygon(limits ...geom.Box) (*Polygon, error) {
	p := NewPolygon(limits...)
	err := t.EachTriangle(p.AddTriangle)
	return p, err
}

// ToTraps splits every triangle into at most two trapezoids and appends
// them to out. Triangles of one stroke overlap, so the result is only
// exact for coverage that saturates, such as unantialiased rendering.
func (t *Tristrip) ToTraps(out *Traps) error {
	return t.EachTriangle(func(a, b, c geom.Point) error {
		addTriangleTraps(out, a, b, c)
		return nil
	})
}

func addTriangleTraps(out *Traps, a, b, c geom.Point) {
	if b.Y < a.Y {
		a, b = b, a
	}
	if c.Y < b.Y {
		b, c = c, b
	}
	if b.Y < a.Y {
		a, b = b, a
	}
	if a.Y == c.Y {
		return
	}
	long := geom.Line{P1: a, P2: c}
	upper := geom.Line{P1: a, P2: b}
	lower := geom.Line{P1: b, P2: c}
	// The middle vertex decides which side the short edges lie on.
	if b.X < long.XForY(b.Y) {
		out.Add(a.Y, b.Y, upper, long)
		out.Add(b.Y, c.Y, lower, long)
		return
	}
	out.Add(a.Y, b.Y, long, upper)
	out.Add(b.Y, c.Y, long, lower)
}
