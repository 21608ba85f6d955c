// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tess

import (
	"fmt"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/path"
	"github.com/gogpu/vraster/render"
)

// coordLimit bounds polygon coordinates so exact sweep comparisons fit in
// 128-bit products.
const coordLimit = geom.Fixed(1 << 29)

// MaxEdges bounds the size of a single polygon.
const MaxEdges = 1 << 26

// Edge is a directed polygon edge restricted to [Top, Bottom). Line runs
// downward (Line.P1.Y < Line.P2.Y) and Dir is +1 when the original edge
// pointed down, -1 when it pointed up.
type Edge struct {
	Line        geom.Line
	Top, Bottom geom.Fixed
	Dir         int
}

// Polygon is a set of edges with their extents. Edges outside the vertical
// span of the limit boxes are dropped or shortened.
type Polygon struct {
	Edges   []Edge
	extents geom.Box
	limit   geom.Box
	limited bool
}

// NewPolygon returns an empty polygon. When limits are given, only the
// vertical span they cover is kept.
func NewPolygon(limits ...geom.Box) *Polygon {
	p := &Polygon{extents: geom.EmptyBox}
	if len(limits) > 0 {
		l := limits[0]
		for _, b := range limits[1:] {
			l = l.AddBox(b)
		}
		p.limit = l
		p.limited = true
	}
	return p
}

// Extents returns the bounding box of the edges added so far.
func (p *Polygon) Extents() geom.Box { return p.extents }

// Len returns the number of edges.
func (p *Polygon) Len() int { return len(p.Edges) }

// Reset drops every edge, keeping capacity.
func (p *Polygon) Reset() {
	p.Edges = p.Edges[:0]
	p.extents = geom.EmptyBox
}

func clampPoint(pt geom.Point) geom.Point {
	return geom.Pt(geom.Clamp(pt.X, -coordLimit, coordLimit), geom.Clamp(pt.Y, -coordLimit, coordLimit))
}

// AddLine adds the directed edge a to b. Horizontal edges carry no
// winding and are skipped.
func (p *Polygon) AddLine(a, b geom.Point) error {
	a, b = clampPoint(a), clampPoint(b)
	if a.Y == b.Y {
		return nil
	}
	dir := 1
	if a.Y > b.Y {
		a, b = b, a
		dir = -1
	}
	return p.addEdge(geom.Line{P1: a, P2: b}, a.Y, b.Y, dir)
}

// AddEdge adds an edge along line restricted to [top, bottom).
func (p *Polygon) AddEdge(line geom.Line, top, bottom geom.Fixed, dir int) error {
	if line.P1.Y > line.P2.Y {
		line.P1, line.P2 = line.P2, line.P1
		dir = -dir
	}
	line.P1, line.P2 = clampPoint(line.P1), clampPoint(line.P2)
	return p.addEdge(line, geom.Clamp(top, -coordLimit, coordLimit), geom.Clamp(bottom, -coordLimit, coordLimit), dir)
}

func (p *Polygon) addEdge(line geom.Line, top, bottom geom.Fixed, dir int) error {
	if p.limited {
		top = max(top, p.limit.P1.Y)
		bottom = min(bottom, p.limit.P2.Y)
	}
	if top >= bottom || line.P1.Y == line.P2.Y {
		return nil
	}
	if len(p.Edges) >= MaxEdges {
		return fmt.Errorf("%w: polygon exceeds %d edges", render.ErrOutOfMemory, MaxEdges)
	}
	p.Edges = append(p.Edges, Edge{Line: line, Top: top, Bottom: bottom, Dir: dir})

	x1, x2 := line.XForY(top), line.XForY(bottom)
	if line.P1.X == line.P2.X {
		x1, x2 = line.P1.X, line.P1.X
	}
	p.extents = p.extents.AddPoint(geom.Pt(x1, top)).AddPoint(geom.Pt(x2, bottom))
	return nil
}

// AddContour adds the closed polygon through pts.
func (p *Polygon) AddContour(pts []geom.Point) error {
	if len(pts) < 2 {
		return nil
	}
	for i := range pts {
		if err := p.AddLine(pts[i], pts[(i+1)%len(pts)]); err != nil {
			return err
		}
	}
	return nil
}

// AddPath flattens a path into the polygon. Every subpath is closed with an
// implicit edge back to its start.
func (p *Polygon) AddPath(pa *path.Path, tolerance float64) error {
	var (
		first, last geom.Point
		open        bool
	)
	closeSub := func() error {
		if !open {
			return nil
		}
		open = false
		return p.AddLine(last, first)
	}
	err := pa.InterpretFlat(path.Funcs{
		Move: func(pt geom.Point) error {
			if err := closeSub(); err != nil {
				return err
			}
			first, last, open = pt, pt, true
			return nil
		},
		Line: func(pt geom.Point) error {
			if err := p.AddLine(last, pt); err != nil {
				return err
			}
			last = pt
			return nil
		},
		Close: func() error {
			if err := closeSub(); err != nil {
				return err
			}
			// A segment after a close starts from the closed subpath's
			// first point; the path store emits a MoveTo for it.
			last = first
			return nil
		},
	}, tolerance)
	if err != nil {
		return err
	}
	return closeSub()
}

// orient returns +1 for a clockwise (y-down) polygon, -1 for a
// counter-clockwise one and 0 when it has no area.
func orient(pts []geom.Point) int {
	var area geom.Int128
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		area = area.Add(geom.Mul64(int64(a.X), int64(b.Y))).Sub(geom.Mul64(int64(b.X), int64(a.Y)))
	}
	return area.Sign()
}

// addConvex adds a convex polygon oriented so its interior winds +1.
func (p *Polygon) addConvex(pts []geom.Point) error {
	switch orient(pts) {
	case 0:
		return nil
	case 1:
		return p.AddContour(pts)
	}
	rev := make([]geom.Point, len(pts))
	for i, pt := range pts {
		rev[len(pts)-1-i] = pt
	}
	return p.AddContour(rev)
}

// AddTriangle implements Sink.
func (p *Polygon) AddTriangle(a, b, c geom.Point) error {
	return p.addConvex([]geom.Point{a, b, c})
}

// AddQuad implements Sink.
func (p *Polygon) AddQuad(a, b, c, d geom.Point) error {
	return p.addConvex([]geom.Point{a, b, c, d})
}

// AddFan implements Sink.
func (p *Polygon) AddFan(center geom.Point, pts []geom.Point) error {
	for i := 0; i+1 < len(pts); i++ {
		if err := p.addConvex([]geom.Point{center, pts[i], pts[i+1]}); err != nil {
			return err
		}
	}
	return nil
}

// AddBox implements Sink.
func (p *Polygon) AddBox(b geom.Box) error {
	if b.IsEmpty() {
		return nil
	}
	return p.AddContour([]geom.Point{b.P1, geom.Pt(b.P2.X, b.P1.Y), b.P2, geom.Pt(b.P1.X, b.P2.Y)})
}

// Sink receives convex pieces of an outline. Each piece is filled
// independently; overlapping pieces form their union under the nonzero
// rule.
type Sink interface {
	AddTriangle(a, b, c geom.Point) error
	AddQuad(a, b, c, d geom.Point) error
	AddFan(center geom.Point, pts []geom.Point) error
	AddBox(b geom.Box) error
}
