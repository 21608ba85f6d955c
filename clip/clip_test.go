// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clip

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/internal/tess"
	"github.com/gogpu/vraster/path"
	"github.com/gogpu/vraster/render"
)

func rectPath(t *testing.T, x, y, w, h float64) *path.Path {
	t.Helper()
	p := path.New()
	require.NoError(t, p.Rectangle(x, y, w, h))
	return p
}

func circlePath(t *testing.T, cx, cy, r float64) *path.Path {
	t.Helper()
	p := path.New()
	require.NoError(t, p.Circle(cx, cy, r))
	return p
}

func TestNilClip(t *testing.T) {
	c := New()
	assert.Nil(t, c)
	assert.False(t, c.IsAllClipped())
	assert.True(t, c.IsRegion())
	assert.True(t, c.ContainsRectangle(image.Rect(-5, -5, 1e6, 1e6)))
	_, ok := c.Extents()
	assert.False(t, ok)
	assert.Nil(t, c.Boxes())
	assert.Nil(t, c.Paths())
	assert.Nil(t, c.Copy())
}

func TestIntersectRectangle(t *testing.T) {
	tests := []struct {
		name    string
		a, b    image.Rectangle
		want    image.Rectangle
		clipped bool
	}{
		{"inside", image.Rect(0, 0, 10, 10), image.Rect(2, 3, 5, 6), image.Rect(2, 3, 5, 6), false},
		{"overlap", image.Rect(0, 0, 10, 10), image.Rect(5, 5, 20, 20), image.Rect(5, 5, 10, 10), false},
		{"disjoint", image.Rect(0, 0, 10, 10), image.Rect(20, 20, 30, 30), image.Rectangle{}, true},
		{"empty", image.Rect(0, 0, 10, 10), image.Rectangle{}, image.Rectangle{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FromRectangle(tt.a).IntersectRectangle(tt.b)
			assert.Equal(t, tt.clipped, c.IsAllClipped())
			if !tt.clipped {
				ext, ok := c.Extents()
				require.True(t, ok)
				assert.Equal(t, tt.want, ext)
				assert.True(t, c.IsRegion())
				assert.Equal(t, []geom.Box{geom.BoxFromRect(tt.want)}, c.Boxes())
			}
		})
	}
}

func TestIntersectRectangleKeepsOriginal(t *testing.T) {
	a := FromRectangle(image.Rect(0, 0, 10, 10))
	b := a.IntersectRectangle(image.Rect(0, 0, 4, 4))
	ext, _ := a.Extents()
	assert.Equal(t, image.Rect(0, 0, 10, 10), ext)
	ext, _ = b.Extents()
	assert.Equal(t, image.Rect(0, 0, 4, 4), ext)
}

func TestIntersectBoxes(t *testing.T) {
	boxes := tess.NewBoxes()
	boxes.Add(geom.BoxFromRect(image.Rect(0, 0, 4, 10)), render.AntialiasDefault)
	boxes.Add(geom.BoxFromRect(image.Rect(6, 0, 10, 10)), render.AntialiasDefault)

	c := FromRectangle(image.Rect(2, 2, 8, 8)).IntersectBoxes(boxes)
	require.False(t, c.IsAllClipped())
	assert.ElementsMatch(t, []geom.Box{
		geom.BoxFromRect(image.Rect(2, 2, 4, 8)),
		geom.BoxFromRect(image.Rect(6, 2, 8, 8)),
	}, c.Boxes())
	ext, _ := c.Extents()
	assert.Equal(t, image.Rect(2, 2, 8, 8), ext)

	assert.True(t, c.ContainsRectangle(image.Rect(2, 2, 4, 4)))
	assert.False(t, c.ContainsRectangle(image.Rect(3, 2, 7, 4)), "spans the gap")

	assert.True(t, New().IntersectBoxes(tess.NewBoxes()).IsAllClipped())
}

func TestIntersectPathRectilinearBecomesRegion(t *testing.T) {
	c, err := New().IntersectPath(rectPath(t, 1, 2, 3, 4), render.FillRuleWinding, 0, render.AntialiasDefault)
	require.NoError(t, err)
	assert.True(t, c.IsRegion())
	assert.False(t, c.HasPaths())
	ext, _ := c.Extents()
	assert.Equal(t, image.Rect(1, 2, 4, 6), ext)
}

func TestIntersectPathUnalignedRectangle(t *testing.T) {
	p := rectPath(t, 0.5, 0.5, 3, 3)

	c, err := New().IntersectPath(p, render.FillRuleWinding, 0, render.AntialiasDefault)
	require.NoError(t, err)
	assert.True(t, c.HasPaths(), "antialiased fractional rectangle stays a path")
	ext, _ := c.Extents()
	assert.Equal(t, image.Rect(0, 0, 4, 4), ext)

	c, err = New().IntersectPath(p, render.FillRuleWinding, 0, render.AntialiasNone)
	require.NoError(t, err)
	assert.True(t, c.IsRegion(), "rounded when antialiasing is off")
}

func TestIntersectPathStack(t *testing.T) {
	base := FromRectangle(image.Rect(0, 0, 100, 100))
	c1, err := base.IntersectPath(circlePath(t, 50, 50, 20), render.FillRuleWinding, 0.1, render.AntialiasDefault)
	require.NoError(t, err)
	c2, err := c1.IntersectPath(circlePath(t, 60, 50, 20), render.FillRuleEvenOdd, 0.1, render.AntialiasNone)
	require.NoError(t, err)

	paths := c2.Paths()
	require.Len(t, paths, 2)
	assert.Equal(t, render.FillRuleEvenOdd, paths[0].FillRule, "innermost first")
	assert.Equal(t, render.FillRuleWinding, paths[1].FillRule)
	assert.Len(t, c1.Paths(), 1)
	assert.False(t, c2.IsRegion())
	assert.False(t, c2.ContainsRectangle(image.Rect(55, 45, 56, 46)))

	ext, _ := c2.Extents()
	assert.Equal(t, image.Rect(40, 30, 70, 70), ext)
}

func TestIntersectPathEmpty(t *testing.T) {
	c, err := New().IntersectPath(path.New(), render.FillRuleWinding, 0, render.AntialiasDefault)
	require.NoError(t, err)
	assert.True(t, c.IsAllClipped())

	again, err := c.IntersectPath(circlePath(t, 0, 0, 5), render.FillRuleWinding, 0, render.AntialiasDefault)
	require.NoError(t, err)
	assert.True(t, again.IsAllClipped())
}

func TestIntersectClip(t *testing.T) {
	a := FromRectangle(image.Rect(0, 0, 10, 10))
	b, err := FromRectangle(image.Rect(5, 0, 20, 10)).IntersectPath(circlePath(t, 10, 5, 4), render.FillRuleWinding, 0, render.AntialiasDefault)
	require.NoError(t, err)

	c, err := a.IntersectClip(b)
	require.NoError(t, err)
	ext, _ := c.Extents()
	assert.Equal(t, image.Rect(6, 1, 10, 9), ext)
	assert.Len(t, c.Paths(), 1)

	same, err := a.IntersectClip(nil)
	require.NoError(t, err)
	assert.Same(t, a, same)
}

func TestCopyIsIndependent(t *testing.T) {
	a := FromRectangle(image.Rect(0, 0, 10, 10))
	b := a.Copy()
	b.boxes[0] = geom.BoxFromRect(image.Rect(0, 0, 1, 1))
	assert.Equal(t, []geom.Box{geom.BoxFromRect(image.Rect(0, 0, 10, 10))}, a.Boxes())
}

func TestTransform(t *testing.T) {
	a := FromRectangle(image.Rect(0, 0, 10, 10))

	moved, err := a.Transform(geom.Translate(3, 4))
	require.NoError(t, err)
	ext, _ := moved.Extents()
	assert.Equal(t, image.Rect(3, 4, 13, 14), ext)
	assert.True(t, moved.IsRegion())

	scaled, err := a.Transform(geom.Scale(2, 2))
	require.NoError(t, err)
	ext, _ = scaled.Extents()
	assert.Equal(t, image.Rect(0, 0, 20, 20), ext)
	assert.True(t, scaled.IsRegion(), "axis-aligned result reduces to boxes")

	rotated, err := a.Transform(geom.Rotate(math.Pi / 4))
	require.NoError(t, err)
	assert.True(t, rotated.HasPaths())
}

func maskSum(t *testing.T, c *Clip, r image.Rectangle) float64 {
	t.Helper()
	m, err := c.Mask(r)
	require.NoError(t, err)
	defer m.Release()
	var sum float64
	for y := range r.Dy() {
		for x := range r.Dx() {
			sum += float64(m.At(x, y)[3]) / 255
		}
	}
	return sum
}

func TestMask(t *testing.T) {
	r := image.Rect(0, 0, 100, 100)

	assert.InDelta(t, 10000.0, maskSum(t, nil, r), 1e-9)
	assert.InDelta(t, 0.0, maskSum(t, FromRectangle(image.Rect(200, 200, 210, 210)), r), 1e-9)

	box := FromRectangle(image.Rect(10, 10, 30, 40))
	assert.InDelta(t, 600.0, maskSum(t, box, r), 1e-9)

	circle, err := New().IntersectPath(circlePath(t, 50, 50, 20), render.FillRuleWinding, 0.05, render.AntialiasDefault)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi*400, maskSum(t, circle, r), 8)

	// The box cuts the circle in half.
	half := FromRectangle(image.Rect(0, 0, 50, 100))
	cut, err := half.IntersectPath(circlePath(t, 50, 50, 20), render.FillRuleWinding, 0.05, render.AntialiasDefault)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi*200, maskSum(t, cut, r), 8)

	// Two stacked circles leave their lens.
	lens, err := circle.IntersectPath(circlePath(t, 70, 50, 20), render.FillRuleWinding, 0.05, render.AntialiasNone)
	require.NoError(t, err)
	d, rr := 20.0, 20.0
	lensArea := 2*rr*rr*math.Acos(d/(2*rr)) - d/2*math.Sqrt(4*rr*rr-d*d)
	assert.InDelta(t, lensArea, maskSum(t, lens, r), 20)
}

func TestMaskOffset(t *testing.T) {
	c := FromRectangle(image.Rect(10, 10, 20, 20))
	m, err := c.Mask(image.Rect(15, 15, 25, 25))
	require.NoError(t, err)
	defer m.Release()
	assert.Equal(t, byte(255), m.At(0, 0)[3])
	assert.Equal(t, byte(255), m.At(4, 4)[3])
	assert.Equal(t, byte(0), m.At(5, 5)[3])
	assert.Equal(t, byte(0), m.At(9, 0)[3])
}
