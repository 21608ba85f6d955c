// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/vraster"
	"github.com/gogpu/vraster/clip"
	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/path"
	"github.com/gogpu/vraster/pattern"
	"github.com/gogpu/vraster/pixbuf"
	"github.com/gogpu/vraster/render"
)

// Render draws s into a new ARGB32 image.
func Render(e *vraster.Engine, s *Scene) (*pixbuf.Image, error) {
	dst, err := pixbuf.NewImage(pixbuf.FormatARGB32, s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	bg := pattern.NewSolid(pixbuf.Color(s.Background))
	if err := e.Paint(pixbuf.OpSource, bg, dst, nil); err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	for i := range s.Shapes {
		if err := drawShape(e, dst, &s.Shapes[i], s.Tolerance); err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return dst, nil
}

func drawShape(e *vraster.Engine, dst *pixbuf.Image, sh *Shape, tolerance float64) error {
	cl, err := shapeClip(sh, tolerance)
	if err != nil {
		return err
	}
	p, err := shapePath(sh)
	if err != nil {
		return err
	}
	op := sh.Op.Value()

	if p == nil {
		src, err := shapePaint(sh.Fill)
		if err != nil {
			return err
		}
		return e.Paint(op, src, dst, cl)
	}
	if sh.Fill != nil {
		src, err := shapePaint(sh.Fill)
		if err != nil {
			return err
		}
		if err := e.Fill(p, sh.Rule.FillRule, tolerance, sh.Antialias.Antialias, op, src, dst, cl); err != nil {
			return err
		}
	}
	if sh.Stroke != nil {
		style, err := sh.Stroke.style()
		if err != nil {
			return err
		}
		src, err := shapePaint(&sh.Stroke.Paint)
		if err != nil {
			return err
		}
		id := geom.Identity()
		if err := e.Stroke(p, &style, id, id, tolerance, sh.Antialias.Antialias, op, src, dst, cl); err != nil {
			return err
		}
	}
	return nil
}

// shapePath builds the geometry of sh, or returns nil when it has none.
func shapePath(sh *Shape) (*path.Path, error) {
	p := path.New()
	switch {
	case sh.Rect != nil:
		if len(sh.Rect) != 4 {
			return nil, fmt.Errorf("rect: want x, y, w, h")
		}
		return p, p.Rectangle(sh.Rect[0], sh.Rect[1], sh.Rect[2], sh.Rect[3])
	case sh.Circle != nil:
		if len(sh.Circle) != 3 {
			return nil, fmt.Errorf("circle: want cx, cy, r")
		}
		return p, p.Circle(sh.Circle[0], sh.Circle[1], sh.Circle[2])
	case len(sh.Points) > 0:
		if err := p.MoveTo(geom.PtFloat(sh.Points[0][0], sh.Points[0][1])); err != nil {
			return nil, err
		}
		for _, pt := range sh.Points[1:] {
			if err := p.LineTo(geom.PtFloat(pt[0], pt[1])); err != nil {
				return nil, err
			}
		}
		if sh.Closed {
			if err := p.ClosePath(); err != nil {
				return nil, err
			}
		}
		return p, nil
	}
	return nil, nil
}

// shapeClip returns the clip of sh: a pixel rectangle when the clip lies
// on whole pixels, a rectangle path otherwise.
func shapeClip(sh *Shape, tolerance float64) (*clip.Clip, error) {
	if sh.Clip == nil {
		return clip.New(), nil
	}
	if len(sh.Clip) != 4 {
		return nil, fmt.Errorf("clip: want x, y, w, h")
	}
	x, y, w, h := sh.Clip[0], sh.Clip[1], sh.Clip[2], sh.Clip[3]
	if isInt(x) && isInt(y) && isInt(w) && isInt(h) {
		return clip.FromRectangle(image.Rect(int(x), int(y), int(x+w), int(y+h))), nil
	}
	p := path.New()
	if err := p.Rectangle(x, y, w, h); err != nil {
		return nil, err
	}
	return clip.New().IntersectPath(p, render.FillRuleWinding, tolerance, sh.Antialias.Antialias)
}

func isInt(v float64) bool { return v == math.Trunc(v) }

// shapePaint builds the source pattern of pt. A nil paint is opaque black.
func shapePaint(pt *Paint) (pattern.Pattern, error) {
	if pt == nil {
		return pattern.NewSolid(pixbuf.Black), nil
	}
	var g *pattern.Gradient
	var src pattern.Pattern
	switch {
	case pt.Linear != nil:
		if len(pt.Linear) != 4 {
			return nil, fmt.Errorf("linear: want x1, y1, x2, y2")
		}
		l := pattern.NewLinear(pt.Linear[0], pt.Linear[1], pt.Linear[2], pt.Linear[3])
		g, src = &l.Gradient, l
	case pt.Radial != nil:
		if len(pt.Radial) != 6 {
			return nil, fmt.Errorf("radial: want cx1, cy1, r1, cx2, cy2, r2")
		}
		r := pattern.NewRadial(pt.Radial[0], pt.Radial[1], pt.Radial[2], pt.Radial[3], pt.Radial[4], pt.Radial[5])
		g, src = &r.Gradient, r
	case pt.Color != nil:
		return pattern.NewSolid(pixbuf.Color(*pt.Color)), nil
	default:
		return pattern.NewSolid(pixbuf.Black), nil
	}
	if len(pt.Stops) == 0 {
		return nil, fmt.Errorf("gradient without stops")
	}
	for _, st := range pt.Stops {
		g.AddStop(st.Offset, pixbuf.Color(st.Color))
	}
	return src, nil
}
