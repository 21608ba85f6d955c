// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stroke

import (
	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/render"
)

// face is the cross section of the stroke at a point of the path. ccw is
// offset a quarter turn toward increasing device angles from the direction
// of travel, cw the opposite way.
type face struct {
	ccw, point, cw geom.Point

	usr     Vec2       // unit tangent in user space
	dev     geom.Slope // tangent in device space
	devUnit Vec2       // unit tangent in device space
}

// reversed returns f seen from the other direction.
func (f face) reversed() face {
	return face{
		ccw:     f.cw,
		point:   f.point,
		cw:      f.ccw,
		usr:     f.usr.Neg(),
		dev:     f.dev.Neg(),
		devUnit: f.devUnit.Neg(),
	}
}

// userDirection maps a device slope to a unit user-space direction and
// reports its user-space length.
func (s *stroker) userDirection(d geom.Slope) (Vec2, float64) {
	return transformVec(s.ctmInverse, vecOf(d)).Normalize()
}

func (s *stroker) computeFace(pt geom.Point, d geom.Slope, usr Vec2) face {
	off := usr.Perp().Scale(s.halfWidth)
	if !s.detPositive {
		off = off.Neg()
	}
	o := fixedOffset(transformVec(s.ctm, off))
	du, _ := vecOf(d).Normalize()
	return face{
		ccw:     pt.Add(o),
		point:   pt,
		cw:      pt.Sub(o),
		usr:     usr,
		dev:     d,
		devUnit: du,
	}
}

// normalCW returns the outward normal on the cw side of direction d.
func normalCW(d geom.Slope) geom.Slope { return geom.Slope{DX: d.DY, DY: -d.DX} }

// normalCCW returns the outward normal on the ccw side of direction d.
func normalCCW(d geom.Slope) geom.Slope { return geom.Slope{DX: -d.DY, DY: d.DX} }

// join connects the face in, ending the previous segment, to out, starting
// the next one, on the outer side of the turn.
func (s *stroker) join(in, out *face, style render.LineJoin) error {
	if in.ccw == out.ccw && in.cw == out.cw {
		return nil
	}
	// Turning toward increasing angles puts the outside of the corner on
	// the cw side.
	outerCW := geom.Cross(in.dev, out.dev) > 0
	inpt, outpt := in.ccw, out.ccw
	if outerCW {
		inpt, outpt = in.cw, out.cw
	}

	switch style {
	case render.LineJoinRound:
		if outerCW {
			return s.fan(in.point, inpt, outpt, normalCW(in.dev), normalCW(out.dev), true)
		}
		return s.fan(in.point, inpt, outpt, normalCCW(in.dev), normalCCW(out.dev), false)
	case render.LineJoinMiter:
		if ok, err := s.miter(in, out, inpt, outpt); ok || err != nil {
			return err
		}
	}
	return s.sink.AddTriangle(in.point, inpt, outpt)
}

// miter adds the miter corner when it is within the limit and its tip lies
// between the two faces.
func (s *stroker) miter(in, out *face, inpt, outpt geom.Point) (bool, error) {
	// -cos of the angle between the segments
	inDotOut := -in.usr.Dot(out.usr)
	ml := s.style.MiterLimit
	if 2 > ml*ml*(1-inDotOut) {
		return false, nil
	}
	x1, y1 := geom.PointToFloat(inpt)
	x2, y2 := geom.PointToFloat(outpt)
	d1, d2 := in.devUnit, out.devUnit
	den := d1.Cross(d2)
	if den == 0 {
		return false, nil
	}
	t := ((x2-x1)*d2.Y - (y2-y1)*d2.X) / den
	mx, my := x1+t*d1.X, y1+t*d1.Y

	// Near-parallel faces can push the computed tip past the segments.
	ix, iy := geom.PointToFloat(in.point)
	m := Vec2{X: mx - ix, Y: my - iy}
	f1 := Vec2{X: x1 - ix, Y: y1 - iy}
	f2 := Vec2{X: x2 - ix, Y: y2 - iy}
	if sign(f1.Cross(m)) == sign(f2.Cross(m)) {
		return false, nil
	}
	return true, s.sink.AddQuad(in.point, inpt, geom.PtFloat(mx, my), outpt)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// fan adds the round piece around center from the point from to the point
// to, through the pen vertices whose normals lie between n0 and n1.
func (s *stroker) fan(center, from, to geom.Point, n0, n1 geom.Slope, increasing bool) error {
	pts := append(s.scratch[:0], from)
	pts = s.pen().appendArc(pts, center, n0, n1, increasing)
	if len(pts) == 1 {
		return s.sink.AddTriangle(center, from, to)
	}
	pts = append(pts, to)
	s.scratch = pts
	return s.sink.AddFan(center, pts)
}

// addCap adds the cap for the face f, which points out of the stroke.
func (s *stroker) addCap(f *face) error {
	switch s.style.Cap {
	case render.LineCapRound:
		return s.fan(f.point, f.cw, f.ccw, normalCW(f.dev), normalCCW(f.dev), true)
	case render.LineCapSquare:
		v := fixedOffset(transformVec(s.ctm, f.usr.Scale(s.halfWidth)))
		return s.sink.AddQuad(f.ccw, f.ccw.Add(v), f.cw.Add(v), f.cw)
	}
	return nil
}

func (s *stroker) addLeadingCap(f *face) error {
	r := f.reversed()
	return s.addCap(&r)
}

func (s *stroker) addTrailingCap(f *face) error {
	return s.addCap(f)
}

// addSubEdge adds the stroke body from p1 to p2 and returns its end faces.
func (s *stroker) addSubEdge(p1, p2 geom.Point, d geom.Slope, usr Vec2) (start, end face, err error) {
	start = s.computeFace(p1, d, usr)
	end = start
	off := p2.Sub(p1)
	end.ccw, end.point, end.cw = start.ccw.Add(off), p2, start.cw.Add(off)
	if p1 == p2 {
		return start, end, nil
	}
	err = s.sink.AddQuad(start.cw, start.ccw, end.ccw, end.cw)
	return start, end, err
}
