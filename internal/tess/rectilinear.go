// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tess

import (
	"fmt"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/path"
	"github.com/gogpu/vraster/render"
)

// FillPath flattens p and tessellates it under rule into out.
func FillPath(p *path.Path, rule render.FillRule, tolerance float64, out *Traps, limits ...geom.Box) error {
	poly := NewPolygon(limits...)
	if err := poly.AddPath(p, tolerance); err != nil {
		return err
	}
	return Tessellate(poly, rule, out)
}

// FillRectilinear converts a path made only of axis-aligned rectangles into
// non-overlapping boxes. It returns render.ErrUnsupported for any other
// path. With antialiasing off the corners are rounded to whole pixels.
func FillRectilinear(p *path.Path, rule render.FillRule, aa render.Antialias, out *Boxes) error {
	obs, ok := p.Boxes()
	if !ok {
		return fmt.Errorf("%w: path is not a set of rectangles", render.ErrUnsupported)
	}
	if len(obs) == 0 {
		return nil
	}
	if len(obs) == 1 {
		out.Add(obs[0].Box, aa)
		return nil
	}
	poly := NewPolygon()
	for _, ob := range obs {
		b := ob.Box
		if aa.IsNone() {
			b.P1.X, b.P1.Y = geom.RoundDown(b.P1.X), geom.RoundDown(b.P1.Y)
			b.P2.X, b.P2.Y = geom.RoundDown(b.P2.X), geom.RoundDown(b.P2.Y)
		}
		if err := addOrientedBox(poly, b, ob.Dir); err != nil {
			return err
		}
	}
	return sweepBoxes(poly, rule, out)
}

// TessellateBoxes resolves overlaps among in under rule, treating every
// box as clockwise. The result is a set of disjoint boxes; running it on
// its own output gives the same area back.
func TessellateBoxes(in *Boxes, rule render.FillRule, out *Boxes) error {
	poly := NewPolygon()
	var err error
	in.Each(func(b geom.Box) bool {
		err = addOrientedBox(poly, b, 1)
		return err == nil
	})
	if err != nil {
		return err
	}
	return sweepBoxes(poly, rule, out)
}

func addOrientedBox(poly *Polygon, b geom.Box, dir int) error {
	if b.IsEmpty() || dir == 0 {
		return nil
	}
	left := geom.Line{P1: b.P1, P2: geom.Pt(b.P1.X, b.P2.Y)}
	right := geom.Line{P1: geom.Pt(b.P2.X, b.P1.Y), P2: b.P2}
	// Clockwise on a y-down screen runs down the right side.
	if err := poly.AddEdge(right, b.P1.Y, b.P2.Y, dir); err != nil {
		return err
	}
	return poly.AddEdge(left, b.P1.Y, b.P2.Y, -dir)
}

func sweepBoxes(poly *Polygon, rule render.FillRule, out *Boxes) error {
	traps := NewTraps()
	if err := Tessellate(poly, rule, traps); err != nil {
		return err
	}
	if !traps.ToBoxes(out, render.AntialiasDefault) {
		return fmt.Errorf("%w: box sweep produced a slanted trapezoid", render.ErrInvalidGeometry)
	}
	return nil
}
