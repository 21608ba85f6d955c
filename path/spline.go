// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package path

import (
	"math"

	"github.com/gogpu/vraster/geom"
)

// maxSplineDepth bounds recursive subdivision for pathological input.
const maxSplineDepth = 24

// Spline is a cubic Bezier segment prepared for flattening.
type Spline struct {
	P0, P1, P2, P3 geom.Point
}

// NewSpline returns the spline with the given control points.
func NewSpline(p0, p1, p2, p3 geom.Point) Spline {
	return Spline{P0: p0, P1: p1, P2: p2, P3: p3}
}

type fpoint struct{ x, y float64 }

func toF(p geom.Point) fpoint {
	return fpoint{geom.ToFloat(p.X), geom.ToFloat(p.Y)}
}

func lerp(a, b fpoint, t float64) fpoint {
	return fpoint{a.x + (b.x-a.x)*t, a.y + (b.y-a.y)*t}
}

type knots struct{ a, b, c, d fpoint }

// split divides k at t with de Casteljau's construction.
func (k knots) split(t float64) (knots, knots) {
	ab := lerp(k.a, k.b, t)
	bc := lerp(k.b, k.c, t)
	cd := lerp(k.c, k.d, t)
	abbc := lerp(ab, bc, t)
	bccd := lerp(bc, cd, t)
	mid := lerp(abbc, bccd, t)
	return knots{k.a, ab, abbc, mid}, knots{mid, bccd, cd, k.d}
}

// errorSquared bounds the squared distance between the curve and the chord
// a-d by the control polygon: both inner control points are measured
// against the segment a-d. The curve lies in the convex hull of its control
// points, so it deviates no further than the farther of the two.
func (k knots) errorSquared() float64 {
	return math.Max(distToSegmentSq(k.b, k.a, k.d), distToSegmentSq(k.c, k.a, k.d))
}

func distToSegmentSq(p, a, b fpoint) float64 {
	px, py := p.x-a.x, p.y-a.y
	dx, dy := b.x-a.x, b.y-a.y
	if dx != 0 || dy != 0 {
		v := dx*dx + dy*dy
		u := px*dx + py*dy
		switch {
		case u <= 0:
		case u >= v:
			px -= dx
			py -= dy
		default:
			px -= u / v * dx
			py -= u / v * dy
		}
	}
	return px*px + py*py
}

// InflectionParams returns the parameters in (0, 1), in increasing order,
// where the curvature of s changes sign. They are the roots of the
// quadratic cross(B'(t), B''(t)) = 0.
func (s Spline) InflectionParams() []float64 {
	p0, p1, p2, p3 := toF(s.P0), toF(s.P1), toF(s.P2), toF(s.P3)
	// Power basis: B(t) = a t^3 + b t^2 + c t + p0.
	ax := -p0.x + 3*p1.x - 3*p2.x + p3.x
	ay := -p0.y + 3*p1.y - 3*p2.y + p3.y
	bx := 3*p0.x - 6*p1.x + 3*p2.x
	by := 3*p0.y - 6*p1.y + 3*p2.y
	cx := -3*p0.x + 3*p1.x
	cy := -3*p0.y + 3*p1.y
	// B'(t) = 3a t^2 + 2b t + c, B''(t) = 6a t + 2b.
	// cross(B', B'') = 6(a x b) t^2 + 6(a x c) t + 2(b x c).
	axb := ax*by - ay*bx
	axc := ax*cy - ay*cx
	bxc := bx*cy - by*cx
	roots := solveQuadratic(6*axb, 6*axc, 2*bxc)
	out := roots[:0]
	for _, t := range roots {
		if t > 1e-9 && t < 1-1e-9 {
			out = append(out, t)
		}
	}
	return out
}

// solveQuadratic returns the real roots of a*t^2 + b*t + c in increasing
// order.
func solveQuadratic(a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	if disc == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(disc)
	// Numerically stable form.
	q := -0.5 * (b + math.Copysign(sq, b))
	t1, t2 := q/a, c/q
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return []float64{t1, t2}
}

// Decompose calls lineTo for successive points of a polyline from P0 to P3
// (P0 itself is not reported) whose distance from the curve never exceeds
// tolerance. The curve is first cut at its inflection points so that every
// piece bends one way, then each piece is halved until its control polygon
// lies within tolerance of its chord.
func (s Spline) Decompose(tolerance float64, lineTo func(geom.Point) error) error {
	if tolerance <= 0 {
		tolerance = 0.1
	}
	// Rounding each emitted vertex to the fixed grid moves it by up to half
	// a step in each axis, so subdivide against the remaining budget.
	budget := tolerance - math.Sqrt2*0.5/float64(geom.One)
	if budget <= 0 {
		budget = tolerance / 2
	}
	tolSq := budget * budget

	k := knots{toF(s.P0), toF(s.P1), toF(s.P2), toF(s.P3)}
	last := 0.0
	for _, t := range s.InflectionParams() {
		// Rescale t into the remaining piece.
		left, right := k.split((t - last) / (1 - last))
		if err := decompose(left, tolSq, 0, lineTo); err != nil {
			return err
		}
		k, last = right, t
	}
	return decompose(k, tolSq, 0, lineTo)
}

func decompose(k knots, tolSq float64, depth int, lineTo func(geom.Point) error) error {
	if depth < maxSplineDepth && k.errorSquared() > tolSq {
		l, r := k.split(0.5)
		if err := decompose(l, tolSq, depth+1, lineTo); err != nil {
			return err
		}
		return decompose(r, tolSq, depth+1, lineTo)
	}
	return lineTo(geom.PtFloat(k.d.x, k.d.y))
}

// Bounds returns the tight bounding box of the curve, found from the roots
// of its derivative.
func (s Spline) Bounds() geom.Box {
	return curveBounds(s.P0, s.P1, s.P2, s.P3)
}

func curveBounds(p0, p1, p2, p3 geom.Point) geom.Box {
	b := geom.Box{P1: p0, P2: p0}.AddPoint(p3)
	if b.ContainsPoint(p1) && b.ContainsPoint(p2) {
		return b
	}
	k := knots{toF(p0), toF(p1), toF(p2), toF(p3)}
	for _, axis := range [2]func(fpoint) float64{
		func(p fpoint) float64 { return p.x },
		func(p fpoint) float64 { return p.y },
	} {
		a0, a1, a2, a3 := axis(k.a), axis(k.b), axis(k.c), axis(k.d)
		// Derivative / 3: (a1-a0)(1-t)^2 + 2(a2-a1)t(1-t) + (a3-a2)t^2.
		qa := (a1 - a0) - 2*(a2-a1) + (a3 - a2)
		qb := 2 * ((a2 - a1) - (a1 - a0))
		qc := a1 - a0
		for _, t := range solveQuadratic(qa, qb, qc) {
			if t <= 0 || t >= 1 {
				continue
			}
			l, _ := k.split(t)
			b = b.AddPoint(geom.PtFloat(l.d.x, l.d.y))
		}
	}
	return b
}
