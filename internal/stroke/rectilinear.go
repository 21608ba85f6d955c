// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stroke

import (
	"fmt"
	"math"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/internal/tess"
	"github.com/gogpu/vraster/path"
	"github.com/gogpu/vraster/render"
)

// Rectilinear strokes a path made only of horizontal and vertical segments
// into disjoint boxes. It covers butt and square caps with miter joins
// under a transform without rotation or shear, and returns
// render.ErrUnsupported for anything else so the caller can use [Stroke].
func Rectilinear(p *path.Path, style *render.StrokeStyle, ctm geom.Matrix, aa render.Antialias, out *tess.Boxes) error {
	if err := style.Validate(); err != nil {
		return err
	}
	switch {
	case !p.StrokeIsRectilinear():
		return fmt.Errorf("%w: path is not rectilinear", render.ErrUnsupported)
	case style.Cap == render.LineCapRound:
		return fmt.Errorf("%w: round caps", render.ErrUnsupported)
	case style.Join != render.LineJoinMiter || style.MiterLimit < math.Sqrt2:
		return fmt.Errorf("%w: %v join", render.ErrUnsupported, style.Join)
	case style.Dash.IsDashed():
		return fmt.Errorf("%w: dashed stroke", render.ErrUnsupported)
	case ctm.B != 0 || ctm.D != 0:
		return fmt.Errorf("%w: rotated stroke transform", render.ErrUnsupported)
	}
	if style.Width == 0 {
		return nil
	}

	r := &rectStroker{
		hw:  geom.FromFloat(style.Width / 2 * math.Abs(ctm.A)),
		hh:  geom.FromFloat(style.Width / 2 * math.Abs(ctm.E)),
		cap: style.Cap,
		aa:  aa,
		raw: tess.NewBoxes(),
	}
	if err := p.Interpret(r); err != nil {
		return err
	}
	r.flush(false)
	return tess.TessellateBoxes(r.raw, render.FillRuleWinding, out)
}

type rectStroker struct {
	hw, hh  geom.Fixed // half the line width along x and along y
	cap     render.LineCap
	aa      render.Antialias
	raw     *tess.Boxes
	pts     []geom.Point
	started bool // the subpath has a segment, possibly of zero length
}

func (r *rectStroker) MoveTo(pt geom.Point) error {
	r.flush(false)
	r.pts = append(r.pts[:0], pt)
	return nil
}

func (r *rectStroker) LineTo(pt geom.Point) error {
	r.started = true
	if len(r.pts) > 0 && r.pts[len(r.pts)-1] == pt {
		return nil
	}
	r.pts = append(r.pts, pt)
	return nil
}

func (r *rectStroker) CurveTo(_, _, _ geom.Point) error {
	return fmt.Errorf("%w: curve in rectilinear stroke", render.ErrUnsupported)
}

func (r *rectStroker) ClosePath() error {
	r.started = true
	if len(r.pts) > 1 && r.pts[len(r.pts)-1] == r.pts[0] {
		r.pts = r.pts[:len(r.pts)-1]
	}
	r.flush(true)
	if len(r.pts) > 0 {
		// A segment after a close starts from the closed subpath's start.
		r.pts = r.pts[:1]
	}
	return nil
}

// flush emits the boxes of the pending subpath.
func (r *rectStroker) flush(closed bool) {
	pts := r.pts
	started := r.started
	r.started = false
	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 {
		if started && r.cap == render.LineCapSquare {
			pt := pts[0]
			r.raw.Add(geom.Box{
				P1: geom.Pt(pt.X-r.hw, pt.Y-r.hh),
				P2: geom.Pt(pt.X+r.hw, pt.Y+r.hh),
			}, r.aa)
		}
		if !closed {
			r.pts = r.pts[:0]
		}
		return
	}

	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	seg := func(i int) (geom.Point, geom.Point) {
		return pts[i%len(pts)], pts[(i+1)%len(pts)]
	}
	for i := range n {
		a, b := seg(i)
		var startExt, endExt geom.Fixed
		switch {
		case i > 0 || closed:
			pa, pb := seg((i + n - 1) % n)
			startExt = r.joinExtension(pa, pb, a, b)
		case r.cap == render.LineCapSquare:
			startExt = r.along(a, b)
		}
		switch {
		case i < n-1 || closed:
			na, nb := seg((i + 1) % n)
			endExt = r.joinExtension(a, b, na, nb)
		case r.cap == render.LineCapSquare:
			endExt = r.along(a, b)
		}
		r.raw.Add(r.segmentBox(a, b, startExt, endExt), r.aa)
	}
	if !closed {
		r.pts = r.pts[:0]
	}
}

// along returns the half width measured along the axis of a to b.
func (r *rectStroker) along(a, b geom.Point) geom.Fixed {
	if a.Y == b.Y {
		return r.hw
	}
	return r.hh
}

// joinExtension returns how far the segment a1-b1 or a2-b2 must reach past
// their shared vertex to fill a mitered corner. Only perpendicular turns
// need it; a reversal bevels to nothing.
func (r *rectStroker) joinExtension(a1, b1, a2, b2 geom.Point) geom.Fixed {
	h1, h2 := a1.Y == b1.Y, a2.Y == b2.Y
	if h1 == h2 {
		return 0
	}
	return r.along(a1, b1)
}

func (r *rectStroker) segmentBox(a, b geom.Point, startExt, endExt geom.Fixed) geom.Box {
	if a.Y == b.Y {
		x1, x2 := a.X-startExt, b.X+endExt
		if b.X < a.X {
			x1, x2 = a.X+startExt, b.X-endExt
		}
		return geom.BoxFromPoints(geom.Pt(x1, a.Y-r.hh), geom.Pt(x2, a.Y+r.hh))
	}
	y1, y2 := a.Y-startExt, b.Y+endExt
	if b.Y < a.Y {
		y1, y2 = a.Y+startExt, b.Y-endExt
	}
	return geom.BoxFromPoints(geom.Pt(a.X-r.hw, y1), geom.Pt(a.X+r.hw, y2))
}
