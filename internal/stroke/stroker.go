// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stroke

import (
	"fmt"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/internal/tess"
	"github.com/gogpu/vraster/path"
	"github.com/gogpu/vraster/render"
)

type stroker struct {
	style       render.StrokeStyle
	ctm         geom.Matrix
	ctmInverse  geom.Matrix
	detPositive bool
	halfWidth   float64
	tolerance   float64
	sink        tess.Sink
	penCache    *pen

	dashed bool
	dash   dasher

	first, current    geom.Point
	hasInitialSubPath bool
	hasCurrentFace    bool
	hasFirstFace      bool
	currentFace       face
	firstFace         face

	// Joins between the pieces of a flattened curve are always round.
	inCurve bool
	scratch []geom.Point
}

// Stroke writes the outline of p stroked with style to sink. p is in
// device space; ctm maps user space to device space and ctmInverse is its
// inverse. tolerance bounds the deviation, in device pixels, of the
// emitted outline from the exact offset curve.
func Stroke(p *path.Path, style *render.StrokeStyle, ctm, ctmInverse geom.Matrix, tolerance float64, sink tess.Sink) error {
	s, err := newStroker(style, ctm, ctmInverse, tolerance, sink)
	if err != nil || s == nil {
		return err
	}
	if err := p.Interpret(s); err != nil {
		return err
	}
	return s.addCaps()
}

// newStroker returns nil when the style draws nothing.
func newStroker(style *render.StrokeStyle, ctm, ctmInverse geom.Matrix, tolerance float64, sink tess.Sink) (*stroker, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	if style.Width == 0 {
		return nil, nil
	}
	det := ctm.Determinant()
	if det == 0 {
		return nil, fmt.Errorf("%w: singular stroke transform", render.ErrInvalidGeometry)
	}
	if tolerance <= 0 {
		tolerance = render.DefaultTolerance
	}
	s := &stroker{
		style:       *style,
		ctm:         ctm,
		ctmInverse:  ctmInverse,
		detPositive: det >= 0,
		halfWidth:   style.Width / 2,
		tolerance:   tolerance,
		sink:        sink,
	}
	if usable(style.Dash) {
		s.dashed = true
		s.dash = newDasher(style.Dash)
	}
	return s, nil
}

// Polygon strokes p into a new polygon restricted to limits.
func Polygon(p *path.Path, style *render.StrokeStyle, ctm, ctmInverse geom.Matrix, tolerance float64, limits ...geom.Box) (*tess.Polygon, error) {
	poly := tess.NewPolygon(limits...)
	if err := Stroke(p, style, ctm, ctmInverse, tolerance, poly); err != nil {
		return nil, err
	}
	return poly, nil
}

// Tristrip strokes p into triangle strips without resolving overlaps.
func Tristrip(p *path.Path, style *render.StrokeStyle, ctm, ctmInverse geom.Matrix, tolerance float64) (*tess.Tristrip, error) {
	strip := tess.NewTristrip()
	if err := Stroke(p, style, ctm, ctmInverse, tolerance, strip); err != nil {
		return nil, err
	}
	return strip, nil
}

// Traps strokes p and tessellates the outline under the nonzero rule.
func Traps(p *path.Path, style *render.StrokeStyle, ctm, ctmInverse geom.Matrix, tolerance float64, out *tess.Traps, limits ...geom.Box) error {
	poly, err := Polygon(p, style, ctm, ctmInverse, tolerance, limits...)
	if err != nil {
		return err
	}
	return tess.Tessellate(poly, render.FillRuleWinding, out)
}

func (s *stroker) pen() *pen {
	if s.penCache == nil {
		s.penCache = newPen(s.halfWidth, s.tolerance, s.ctm)
	}
	return s.penCache
}

func (s *stroker) joinStyle() render.LineJoin {
	if s.inCurve {
		return render.LineJoinRound
	}
	return s.style.Join
}

func (s *stroker) MoveTo(pt geom.Point) error {
	if err := s.addCaps(); err != nil {
		return err
	}
	s.first, s.current = pt, pt
	s.hasInitialSubPath = false
	s.hasFirstFace = false
	s.hasCurrentFace = false
	s.dash.startsOn = s.dash.on
	return nil
}

func (s *stroker) LineTo(pt geom.Point) error {
	if s.dashed {
		return s.lineToDashed(pt)
	}
	s.hasInitialSubPath = true
	if pt == s.current {
		return nil
	}
	d := geom.SlopeBetween(s.current, pt)
	usr, _ := s.userDirection(d)
	start, end, err := s.addSubEdge(s.current, pt, d, usr)
	if err != nil {
		return err
	}
	if s.hasCurrentFace {
		if err := s.join(&s.currentFace, &start, s.joinStyle()); err != nil {
			return err
		}
	} else if !s.hasFirstFace {
		s.firstFace = start
		s.hasFirstFace = true
	}
	s.currentFace = end
	s.hasCurrentFace = true
	s.current = pt
	return nil
}

func (s *stroker) lineToDashed(pt geom.Point) error {
	s.hasInitialSubPath = s.dash.startsOn
	if pt == s.current {
		return nil
	}
	p1 := s.current
	d := geom.SlopeBetween(p1, pt)
	usr, mag := s.userDirection(d)
	if mag == 0 {
		return nil
	}
	seg1 := p1
	for remain := mag; remain > 0; {
		step := min(s.dash.remain, remain)
		remain -= step
		seg2 := pt
		if remain > 0 {
			seg2 = p1.Add(fixedOffset(transformVec(s.ctm, usr.Scale(mag-remain))))
		}
		if s.dash.on {
			start, end, err := s.addSubEdge(seg1, seg2, d, usr)
			if err != nil {
				return err
			}
			switch {
			case s.hasCurrentFace:
				err = s.join(&s.currentFace, &start, s.joinStyle())
				s.hasCurrentFace = false
			case !s.hasFirstFace && s.dash.startsOn:
				// Kept for the closing join.
				s.firstFace = start
				s.hasFirstFace = true
			default:
				err = s.addLeadingCap(&start)
			}
			if err != nil {
				return err
			}
			if remain > 0 {
				if err := s.addTrailingCap(&end); err != nil {
					return err
				}
			} else {
				s.currentFace = end
				s.hasCurrentFace = true
			}
		} else if s.hasCurrentFace {
			if err := s.addTrailingCap(&s.currentFace); err != nil {
				return err
			}
			s.hasCurrentFace = false
		}
		s.dash.step(step)
		seg1 = seg2
	}

	if s.dash.on && !s.hasCurrentFace {
		// The segment ends where a dash begins.
		s.currentFace = s.computeFace(pt, d, usr)
		if err := s.addLeadingCap(&s.currentFace); err != nil {
			return err
		}
		s.hasCurrentFace = true
	}
	s.current = pt
	return nil
}

func (s *stroker) CurveTo(c1, c2, end geom.Point) error {
	sp := path.NewSpline(s.current, c1, c2, end)
	started := false
	err := sp.Decompose(s.tolerance, func(pt geom.Point) error {
		if pt == s.current {
			return nil
		}
		s.inCurve = started
		started = true
		return s.LineTo(pt)
	})
	s.inCurve = false
	if err != nil {
		return err
	}
	s.current = end
	return nil
}

func (s *stroker) ClosePath() error {
	if err := s.LineTo(s.first); err != nil {
		return err
	}
	var err error
	if s.hasFirstFace && s.hasCurrentFace {
		err = s.join(&s.currentFace, &s.firstFace, s.style.Join)
	} else {
		err = s.addCaps()
	}
	s.hasInitialSubPath = false
	s.hasFirstFace = false
	s.hasCurrentFace = false
	return err
}

// addCaps finishes an open subpath.
func (s *stroker) addCaps() error {
	if s.hasInitialSubPath && !s.hasFirstFace && !s.hasCurrentFace {
		return s.addDegenerateCaps()
	}
	if s.hasFirstFace {
		if err := s.addLeadingCap(&s.firstFace); err != nil {
			return err
		}
	}
	if s.hasCurrentFace {
		return s.addTrailingCap(&s.currentFace)
	}
	return nil
}

// addDegenerateCaps draws a subpath that never moves: a dot for round
// caps and a square aligned with user space for square caps.
func (s *stroker) addDegenerateCaps() error {
	if s.style.Cap == render.LineCapButt {
		return nil
	}
	usr := Vec2{X: 1}
	d := transformVec(s.ctm, usr)
	dev := geom.Slope{DX: geom.FromFloat(d.X * 256), DY: geom.FromFloat(d.Y * 256)}
	if dev.IsZero() {
		return nil
	}
	f := s.computeFace(s.first, dev, usr)
	if err := s.addLeadingCap(&f); err != nil {
		return err
	}
	return s.addTrailingCap(&f)
}
