// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tess

import (
	"errors"
	"image"
	"image/draw"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/vector"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/path"
	"github.com/gogpu/vraster/render"
)

func fpt(x, y float64) geom.Point { return geom.PtFloat(x, y) }

func box(x1, y1, x2, y2 float64) geom.Box {
	return geom.Box{P1: fpt(x1, y1), P2: fpt(x2, y2)}
}

func trapsArea(t *Traps) float64 {
	var area float64
	for _, tr := range t.All() {
		top, bot := geom.ToFloat(tr.Top), geom.ToFloat(tr.Bottom)
		wt := tr.Right.XForYFloat(top) - tr.Left.XForYFloat(top)
		wb := tr.Right.XForYFloat(bot) - tr.Left.XForYFloat(bot)
		area += (wt + wb) / 2 * (bot - top)
	}
	return area
}

func boxesArea(b *Boxes) float64 {
	var area float64
	b.Each(func(bx geom.Box) bool {
		area += geom.ToFloat(bx.Width()) * geom.ToFloat(bx.Height())
		return true
	})
	return area
}

func assertDisjoint(t *testing.T, b *Boxes) {
	t.Helper()
	all := b.Slice()
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			assert.True(t, all[i].Intersect(all[j]).IsEmpty(), "boxes %v and %v overlap", all[i], all[j])
		}
	}
}

func contour(t *testing.T, p *Polygon, pts ...float64) {
	t.Helper()
	var c []geom.Point
	for i := 0; i+1 < len(pts); i += 2 {
		c = append(c, fpt(pts[i], pts[i+1]))
	}
	require.NoError(t, p.AddContour(c))
}

func TestTessellateSquare(t *testing.T) {
	for _, rule := range []render.FillRule{render.FillRuleWinding, render.FillRuleEvenOdd} {
		p := NewPolygon()
		require.NoError(t, p.AddBox(box(0, 0, 10, 10)))
		traps := NewTraps()
		require.NoError(t, Tessellate(p, rule, traps))

		require.Equal(t, 1, traps.Len())
		assert.True(t, traps.IsRectilinear())
		out := NewBoxes()
		require.True(t, traps.ToBoxes(out, render.AntialiasDefault))
		assert.Equal(t, []geom.Box{box(0, 0, 10, 10)}, out.Slice())
	}
}

func TestTessellateEmpty(t *testing.T) {
	traps := NewTraps()
	require.NoError(t, Tessellate(NewPolygon(), render.FillRuleWinding, traps))
	assert.Zero(t, traps.Len())
	assert.True(t, traps.Extents().IsEmpty())
}

func TestTessellateTriangle(t *testing.T) {
	p := NewPolygon()
	contour(t, p, 0, 0, 10, 10, 0, 10)
	traps := NewTraps()
	require.NoError(t, Tessellate(p, render.FillRuleWinding, traps))
	assert.False(t, traps.IsRectilinear())
	assert.InDelta(t, 50, trapsArea(traps), 1e-9)
}

func TestTessellateBowtie(t *testing.T) {
	for _, rule := range []render.FillRule{render.FillRuleWinding, render.FillRuleEvenOdd} {
		p := NewPolygon()
		contour(t, p, 0, 0, 10, 10, 10, 0, 0, 10)
		traps := NewTraps()
		require.NoError(t, Tessellate(p, rule, traps))
		assert.InDelta(t, 50, trapsArea(traps), 1e-9, "rule %v", rule)
	}
}

func TestTessellateNestedSquares(t *testing.T) {
	build := func(innerReversed bool) *Polygon {
		p := NewPolygon()
		contour(t, p, 0, 0, 10, 0, 10, 10, 0, 10)
		if innerReversed {
			contour(t, p, 2, 2, 2, 8, 8, 8, 8, 2)
		} else {
			contour(t, p, 2, 2, 8, 2, 8, 8, 2, 8)
		}
		return p
	}
	tests := []struct {
		name     string
		reversed bool
		rule     render.FillRule
		want     float64
	}{
		{"same direction nonzero", false, render.FillRuleWinding, 100},
		{"same direction evenodd", false, render.FillRuleEvenOdd, 64},
		{"opposite direction nonzero", true, render.FillRuleWinding, 64},
		{"opposite direction evenodd", true, render.FillRuleEvenOdd, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traps := NewTraps()
			require.NoError(t, Tessellate(build(tt.reversed), tt.rule, traps))
			assert.InDelta(t, tt.want, trapsArea(traps), 1e-9)
		})
	}
}

func TestTessellateZigZagWinding(t *testing.T) {
	// The outline sweeps right and back twice over the same band, so every
	// point is wound twice.
	p := NewPolygon()
	contour(t, p, 0, 0, 10, 0, 10, 4, 0, 4, 0, 0, 10, 0, 10, 4, 0, 4)
	traps := NewTraps()
	require.NoError(t, Tessellate(p, render.FillRuleWinding, traps))
	assert.InDelta(t, 40, trapsArea(traps), 1e-9)

	out := NewBoxes()
	require.True(t, traps.ToBoxes(out, render.AntialiasDefault))
	assert.Equal(t, []geom.Box{box(0, 0, 10, 4)}, out.Slice())
}

func TestTessellateMatchesRasterizer(t *testing.T) {
	// Pentagram: the center pentagon winds twice.
	var pts []geom.Point
	z := vector.NewRasterizer(64, 64)
	for i := range 5 {
		a := float64(i*2)*2*math.Pi/5 - math.Pi/2
		x, y := 32+28*math.Cos(a), 32+28*math.Sin(a)
		pts = append(pts, fpt(x, y))
		fx, fy := geom.PointToFloat(pts[i])
		if i == 0 {
			z.MoveTo(float32(fx), float32(fy))
		} else {
			z.LineTo(float32(fx), float32(fy))
		}
	}
	z.ClosePath()
	mask := image.NewAlpha(image.Rect(0, 0, 64, 64))
	z.DrawOp = draw.Src
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	var want float64
	for _, a := range mask.Pix {
		want += float64(a) / 255
	}

	p := NewPolygon()
	require.NoError(t, p.AddContour(pts))
	nonzero := NewTraps()
	require.NoError(t, Tessellate(p, render.FillRuleWinding, nonzero))
	assert.InDelta(t, want, trapsArea(nonzero), want*0.01)

	evenOdd := NewTraps()
	require.NoError(t, Tessellate(p, render.FillRuleEvenOdd, evenOdd))
	assert.Less(t, trapsArea(evenOdd), trapsArea(nonzero)-100)
}

func TestTessellateBoxesOverlap(t *testing.T) {
	in := NewBoxes()
	in.Add(box(0, 0, 10, 10), render.AntialiasDefault)
	in.Add(box(5, 5, 15, 15), render.AntialiasDefault)

	union := NewBoxes()
	require.NoError(t, TessellateBoxes(in, render.FillRuleWinding, union))
	assert.InDelta(t, 175, boxesArea(union), 1e-9)
	assertDisjoint(t, union)

	xor := NewBoxes()
	require.NoError(t, TessellateBoxes(in, render.FillRuleEvenOdd, xor))
	assert.InDelta(t, 150, boxesArea(xor), 1e-9)
	assertDisjoint(t, xor)
}

func TestTessellateBoxesIdempotent(t *testing.T) {
	in := NewBoxes()
	for _, b := range []geom.Box{
		box(0, 0, 10, 10), box(5, 5, 15, 15), box(20, 0, 30, 5),
		box(25, 2, 26, 40), box(0.5, 12.25, 3.75, 30),
	} {
		in.Add(b, render.AntialiasDefault)
	}
	once := NewBoxes()
	require.NoError(t, TessellateBoxes(in, render.FillRuleWinding, once))
	twice := NewBoxes()
	require.NoError(t, TessellateBoxes(once, render.FillRuleWinding, twice))

	assertDisjoint(t, once)
	assertDisjoint(t, twice)
	assert.InDelta(t, boxesArea(once), boxesArea(twice), 1e-9)
	assert.Equal(t, once.Extents(), twice.Extents())
}

func TestFillRectilinear(t *testing.T) {
	p := path.New()
	require.NoError(t, p.Rectangle(0, 0, 10, 10))
	out := NewBoxes()
	require.NoError(t, FillRectilinear(p, render.FillRuleWinding, render.AntialiasDefault, out))
	assert.Equal(t, []geom.Box{box(0, 0, 10, 10)}, out.Slice())
	assert.True(t, out.IsPixelAligned())
}

func TestFillRectilinearRounding(t *testing.T) {
	p := path.New()
	require.NoError(t, p.Rectangle(0.25, 0.75, 9.5, 9))
	out := NewBoxes()
	require.NoError(t, FillRectilinear(p, render.FillRuleWinding, render.AntialiasNone, out))
	assert.Equal(t, []geom.Box{box(0, 1, 10, 10)}, out.Slice())

	aa := NewBoxes()
	require.NoError(t, FillRectilinear(p, render.FillRuleWinding, render.AntialiasDefault, aa))
	assert.False(t, aa.IsPixelAligned())
}

func TestFillRectilinearHole(t *testing.T) {
	p := path.New()
	require.NoError(t, p.Rectangle(0, 0, 10, 10))
	// Counter-clockwise inner rectangle.
	require.NoError(t, p.Rectangle(8, 2, -6, 6))
	out := NewBoxes()
	require.NoError(t, FillRectilinear(p, render.FillRuleWinding, render.AntialiasDefault, out))
	assert.InDelta(t, 64, boxesArea(out), 1e-9)
	assertDisjoint(t, out)
	out.Each(func(b geom.Box) bool {
		assert.True(t, b.Intersect(box(2, 2, 8, 8)).IsEmpty())
		return true
	})
}

func TestFillRectilinearUnsupported(t *testing.T) {
	p := path.New()
	require.NoError(t, p.MoveTo(fpt(0, 0)))
	require.NoError(t, p.LineTo(fpt(10, 5)))
	require.NoError(t, p.LineTo(fpt(0, 10)))
	require.NoError(t, p.ClosePath())
	err := FillRectilinear(p, render.FillRuleWinding, render.AntialiasDefault, NewBoxes())
	assert.True(t, errors.Is(err, render.ErrUnsupported))
}

func TestFillPathCircle(t *testing.T) {
	p := path.New()
	require.NoError(t, p.Circle(50, 50, 20))
	traps := NewTraps()
	require.NoError(t, FillPath(p, render.FillRuleWinding, render.DefaultTolerance, traps))
	area := trapsArea(traps)
	assert.Less(t, area, math.Pi*400+0.5)
	assert.Greater(t, area, math.Pi*400-10)
	ext := traps.Extents()
	assert.InDelta(t, 30, geom.ToFloat(ext.P1.X), 0.1)
	assert.InDelta(t, 70, geom.ToFloat(ext.P2.Y), 0.1)

	limited := NewTraps()
	require.NoError(t, FillPath(p, render.FillRuleWinding, render.DefaultTolerance, limited, box(0, 0, 100, 50)))
	assert.InDelta(t, area/2, trapsArea(limited), 0.5)
	assert.Equal(t, geom.FromInt(50), limited.Extents().P2.Y)
}

func TestPolygonLimits(t *testing.T) {
	p := NewPolygon(box(0, 2, 100, 6))
	require.NoError(t, p.AddBox(box(0, 0, 10, 10)))
	traps := NewTraps()
	require.NoError(t, Tessellate(p, render.FillRuleWinding, traps))
	assert.InDelta(t, 40, trapsArea(traps), 1e-9)
	assert.Equal(t, box(0, 2, 10, 6), p.Extents())
}

func TestPolygonConvexPiecesUnion(t *testing.T) {
	p := NewPolygon()
	// Opposite windings are normalized so the pieces union.
	require.NoError(t, p.AddTriangle(fpt(0, 0), fpt(10, 0), fpt(0, 10)))
	require.NoError(t, p.AddTriangle(fpt(0, 0), fpt(0, 10), fpt(10, 0)))
	require.NoError(t, p.AddQuad(fpt(0, 0), fpt(0, 4), fpt(4, 4), fpt(4, 0)))
	traps := NewTraps()
	require.NoError(t, Tessellate(p, render.FillRuleWinding, traps))
	assert.InDelta(t, 50, trapsArea(traps), 1e-9)
}

func TestBoxesLimits(t *testing.T) {
	b := NewBoxes(box(0, 0, 5, 5), box(8, 8, 20, 20))
	b.Add(box(2, 2, 10, 10), render.AntialiasDefault)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []geom.Box{box(2, 2, 5, 5), box(8, 8, 10, 10)}, b.Sorted())
}

func TestTristripPolygon(t *testing.T) {
	ts := NewTristrip()
	require.NoError(t, ts.AddQuad(fpt(0, 0), fpt(4, 0), fpt(4, 4), fpt(0, 4)))
	require.NoError(t, ts.AddTriangle(fpt(4, 0), fpt(8, 0), fpt(4, 4)))
	assert.Equal(t, 3, ts.Triangles())

	poly, err := ts.Polygon()
	require.NoError(t, err)
	traps := NewTraps()
	require.NoError(t, Tessellate(poly, render.FillRuleWinding, traps))
	assert.InDelta(t, 24, trapsArea(traps), 1e-9)
}

func TestTristripToTraps(t *testing.T) {
	ts := NewTristrip()
	require.NoError(t, ts.AddTriangle(fpt(0, 0), fpt(8, 4), fpt(2, 10)))
	require.NoError(t, ts.AddTriangle(fpt(5, 5), fpt(5, 5), fpt(9, 5)))
	require.NoError(t, ts.AddBox(box(20, 0, 24, 4)))

	traps := NewTraps()
	require.NoError(t, ts.ToTraps(traps))
	for _, tr := range traps.All() {
		top, bot := geom.ToFloat(tr.Top), geom.ToFloat(tr.Bottom)
		for _, y := range []float64{top, bot} {
			assert.LessOrEqual(t, tr.Left.XForYFloat(y), tr.Right.XForYFloat(y)+1e-9, "trap %+v", tr)
		}
	}
	// 36 for the triangle, 16 for the box.
	assert.InDelta(t, 52, trapsArea(traps), 1e-9)
}

func TestWindingAndEvenOddAgreeOnStarPolygons(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := range 200 {
		n := 3 + rng.IntN(22)
		angles := make([]float64, n)
		for k := range angles {
			angles[k] = 2 * math.Pi * (float64(k) + 0.1 + 0.8*rng.Float64()) / float64(n)
		}
		var pts []geom.Point
		var shoelace float64
		for _, a := range angles {
			r := 5 + 40*rng.Float64()
			pts = append(pts, fpt(50+r*math.Cos(a), 50+r*math.Sin(a)))
		}
		for k, p := range pts {
			q := pts[(k+1)%len(pts)]
			px, py := geom.PointToFloat(p)
			qx, qy := geom.PointToFloat(q)
			shoelace += px*qy - qx*py
		}
		want := math.Abs(shoelace) / 2

		var areas [2]float64
		for j, rule := range []render.FillRule{render.FillRuleWinding, render.FillRuleEvenOdd} {
			poly := NewPolygon()
			require.NoError(t, poly.AddContour(pts))
			traps := NewTraps()
			require.NoError(t, Tessellate(poly, rule, traps))
			areas[j] = trapsArea(traps)
		}
		assert.InDelta(t, areas[0], areas[1], 1e-6, "polygon %d: %v", i, pts)
		assert.InDelta(t, want, areas[0], 0.05, "polygon %d: %v", i, pts)
	}
}
