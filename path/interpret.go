// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package path

import "github.com/gogpu/vraster/geom"

// Visitor receives path operations from Interpret. Returning an error stops
// the traversal and the error is returned from Interpret.
type Visitor interface {
	MoveTo(p geom.Point) error
	LineTo(p geom.Point) error
	CurveTo(c1, c2, end geom.Point) error
	ClosePath() error
}

// FlatVisitor receives path operations from InterpretFlat, which never
// reports curves.
type FlatVisitor interface {
	MoveTo(p geom.Point) error
	LineTo(p geom.Point) error
	ClosePath() error
}

// Funcs adapts plain functions to Visitor. Nil fields are skipped.
type Funcs struct {
	Move  func(p geom.Point) error
	Line  func(p geom.Point) error
	Curve func(c1, c2, end geom.Point) error
	Close func() error
}

func (f Funcs) MoveTo(p geom.Point) error {
	if f.Move == nil {
		return nil
	}
	return f.Move(p)
}

func (f Funcs) LineTo(p geom.Point) error {
	if f.Line == nil {
		return nil
	}
	return f.Line(p)
}

func (f Funcs) CurveTo(c1, c2, end geom.Point) error {
	if f.Curve == nil {
		return nil
	}
	return f.Curve(c1, c2, end)
}

func (f Funcs) ClosePath() error {
	if f.Close == nil {
		return nil
	}
	return f.Close()
}

// Interpret replays the path operations in order. An explicit MoveTo that
// was never followed by drawing is reported last; the implicit move point
// left by ClosePath is not.
func (p *Path) Interpret(v Visitor) error {
	var err error
	p.chunks.each(func(c *chunk) bool {
		pts := c.points
		for _, op := range c.ops {
			switch op {
			case OpMoveTo:
				err = v.MoveTo(pts[0])
			case OpLineTo:
				err = v.LineTo(pts[0])
			case OpCurveTo:
				err = v.CurveTo(pts[0], pts[1], pts[2])
			case OpClosePath:
				err = v.ClosePath()
			}
			if err != nil {
				return false
			}
			pts = pts[op.Points():]
		}
		return true
	})
	if err != nil {
		return err
	}
	if p.needsMoveTo && p.hasCurrentPoint && p.pendingMove {
		return v.MoveTo(p.currentPoint)
	}
	return nil
}

// flattener turns curves into line segments for a FlatVisitor.
type flattener struct {
	v         FlatVisitor
	tolerance float64
	current   geom.Point
}

func (f *flattener) MoveTo(p geom.Point) error {
	f.current = p
	return f.v.MoveTo(p)
}

func (f *flattener) LineTo(p geom.Point) error {
	f.current = p
	return f.v.LineTo(p)
}

func (f *flattener) CurveTo(c1, c2, end geom.Point) error {
	s := NewSpline(f.current, c1, c2, end)
	err := s.Decompose(f.tolerance, func(p geom.Point) error {
		return f.v.LineTo(p)
	})
	f.current = end
	return err
}

func (f *flattener) ClosePath() error {
	return f.v.ClosePath()
}

// InterpretFlat replays the path with every curve replaced by line segments
// that stay within tolerance device pixels of the curve.
func (p *Path) InterpretFlat(v FlatVisitor, tolerance float64) error {
	if !p.hasCurveTo {
		return p.Interpret(flatAdapter{v})
	}
	return p.Interpret(&flattener{v: v, tolerance: tolerance})
}

type flatAdapter struct{ FlatVisitor }

func (flatAdapter) CurveTo(_, _, _ geom.Point) error { return nil }
