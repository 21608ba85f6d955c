// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import (
	"math"
	"slices"

	"github.com/gogpu/vraster/geom"
)

// rampSize is the number of precomputed ramp entries.
const rampSize = 1024

// Stop is a gradient color stop.
type Stop struct {
	Offset float64
	Color  Color
}

// ramp is a premultiplied color table over t in [0, 1].
type ramp struct {
	lut    [rampSize][4]byte
	extend Extend
	opaque bool
}

func newRamp(stops []Stop, extend Extend) *ramp {
	r := &ramp{extend: extend}
	if len(stops) == 0 {
		return r
	}
	s := slices.Clone(stops)
	slices.SortStableFunc(s, func(a, b Stop) int {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	})
	r.opaque = extend != ExtendNone
	for _, st := range s {
		r.opaque = r.opaque && st.Color.IsOpaque()
	}
	j := 0
	for i := range r.lut {
		t := float64(i) / (rampSize - 1)
		for j < len(s)-1 && s[j+1].Offset < t {
			j++
		}
		var c [4]byte
		switch {
		case t <= s[0].Offset:
			c = s[0].Color.Premul()
		case j == len(s)-1:
			c = s[j].Color.Premul()
		default:
			a, b := s[j], s[j+1]
			span := b.Offset - a.Offset
			f := 0.0
			if span > 0 {
				f = (t - a.Offset) / span
			}
			c = lerpPremul(a.Color.Premul(), b.Color.Premul(), f)
		}
		r.lut[i] = c
	}
	return r
}

func lerpPremul(a, b [4]byte, f float64) [4]byte {
	var out [4]byte
	for c := range out {
		out[c] = byte(float64(a[c])*(1-f) + float64(b[c])*f + 0.5)
	}
	return out
}

// at returns the color at parameter t, applying the extend mode.
func (r *ramp) at(t float64) [4]byte {
	if math.IsNaN(t) {
		return [4]byte{}
	}
	switch r.extend {
	case ExtendNone:
		if t < 0 || t > 1 {
			return [4]byte{}
		}
	case ExtendPad:
		t = geom.Clamp(t, 0, 1)
	case ExtendRepeat:
		t -= math.Floor(t)
	case ExtendReflect:
		t = math.Abs(t)
		t = math.Mod(t, 2)
		if t > 1 {
			t = 2 - t
		}
	}
	return r.lut[int(t*(rampSize-1)+0.5)]
}

// LinearGradient varies color along the line P1 to P2. Transform maps
// picture space to gradient space.
type LinearGradient struct {
	P1, P2    [2]float64
	Transform geom.Matrix
	ramp      *ramp
}

// NewLinearGradient builds a linear gradient picture.
func NewLinearGradient(p1, p2 [2]float64, stops []Stop, extend Extend, m geom.Matrix) *LinearGradient {
	return &LinearGradient{P1: p1, P2: p2, Transform: m, ramp: newRamp(stops, extend)}
}

func (g *LinearGradient) IsOpaque() bool { return g.ramp.opaque }

func (g *LinearGradient) Fetch(x, y int, dst []byte) {
	dx, dy := g.P2[0]-g.P1[0], g.P2[1]-g.P1[1]
	l2 := dx*dx + dy*dy
	n := len(dst) / 4
	px, py := g.Transform.TransformPoint(float64(x)+0.5, float64(y)+0.5)
	for i := 0; i < n; i++ {
		var t float64
		if l2 > 0 {
			t = ((px-g.P1[0])*dx + (py-g.P1[1])*dy) / l2
		}
		c := g.ramp.at(t)
		copy(dst[4*i:], c[:])
		px += g.Transform.A
		py += g.Transform.D
	}
}

// RadialGradient is a two-point conical gradient between the circle
// (C1, R1) at t = 0 and (C2, R2) at t = 1. Transform maps picture space to
// gradient space.
type RadialGradient struct {
	C1, C2    [2]float64
	R1, R2    float64
	Transform geom.Matrix
	ramp      *ramp
}

// NewRadialGradient builds a radial gradient picture.
func NewRadialGradient(c1 [2]float64, r1 float64, c2 [2]float64, r2 float64, stops []Stop, extend Extend, m geom.Matrix) *RadialGradient {
	return &RadialGradient{C1: c1, R1: r1, C2: c2, R2: r2, Transform: m, ramp: newRamp(stops, extend)}
}

func (g *RadialGradient) IsOpaque() bool {
	// Outside the cone nothing is painted unless one circle contains the
	// other.
	if !g.ramp.opaque {
		return false
	}
	d := math.Hypot(g.C2[0]-g.C1[0], g.C2[1]-g.C1[1])
	return d <= math.Abs(g.R2-g.R1)
}

func (g *RadialGradient) Fetch(x, y int, dst []byte) {
	cdx, cdy := g.C2[0]-g.C1[0], g.C2[1]-g.C1[1]
	dr := g.R2 - g.R1
	a := cdx*cdx + cdy*cdy - dr*dr
	n := len(dst) / 4
	px, py := g.Transform.TransformPoint(float64(x)+0.5, float64(y)+0.5)
	for i := 0; i < n; i++ {
		t, ok := g.solve(px-g.C1[0], py-g.C1[1], cdx, cdy, dr, a)
		var c [4]byte
		if ok {
			c = g.ramp.at(t)
		}
		copy(dst[4*i:], c[:])
		px += g.Transform.A
		py += g.Transform.D
	}
}

// solve returns the largest t whose circle passes through the point at
// offset (pdx, pdy) from C1 with a non-negative radius.
func (g *RadialGradient) solve(pdx, pdy, cdx, cdy, dr, a float64) (float64, bool) {
	b := pdx*cdx + pdy*cdy + g.R1*dr
	c := pdx*pdx + pdy*pdy - g.R1*g.R1
	valid := func(t float64) bool { return g.R1+t*dr >= 0 }
	if math.Abs(a) < 1e-12 {
		if b == 0 {
			return 0, false
		}
		t := c / (2 * b)
		return t, valid(t)
	}
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1, t2 := (b+sq)/a, (b-sq)/a
	if t1 < t2 {
		t1, t2 = t2, t1
	}
	if valid(t1) {
		return t1, true
	}
	if valid(t2) {
		return t2, true
	}
	return 0, false
}
