// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"errors"
	"image"
	"slices"
	"testing"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/internal/tess"
	"github.com/gogpu/vraster/pixbuf"
	"github.com/gogpu/vraster/render"
)

func rows(t *testing.T, c *Coverage) [][]byte {
	t.Helper()
	var out [][]byte
	err := c.EachRow(func(_ int, cov []byte) error {
		out = append(out, slices.Clone(cov))
		return nil
	})
	if err != nil {
		t.Fatalf("EachRow() error = %v", err)
	}
	return out
}

func fbox(x1, y1, x2, y2 float64) geom.Box {
	return geom.Box{P1: geom.PtFloat(x1, y1), P2: geom.PtFloat(x2, y2)}
}

func TestCoverageBox(t *testing.T) {
	tests := []struct {
		name string
		aa   render.Antialias
		want []byte
	}{
		{"gray", render.AntialiasDefault, []byte{128, 255, 128, 0}},
		{"mono", render.AntialiasNone, []byte{255, 255, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCoverage(image.Rect(0, 0, 4, 1), tt.aa)
			if err != nil {
				t.Fatal(err)
			}
			c.AddBox(fbox(0.5, 0, 2.5, 1))
			got := rows(t, c)
			if len(got) != 1 || !slices.Equal(got[0], tt.want) {
				t.Errorf("coverage = %v, want [%v]", got, tt.want)
			}
		})
	}
}

func TestCoverageTriangleArea(t *testing.T) {
	c, err := NewCoverage(image.Rect(0, 0, 8, 8), render.AntialiasDefault)
	if err != nil {
		t.Fatal(err)
	}
	traps := tess.NewTraps()
	traps.Add(0, geom.FromInt(8),
		geom.Line{P1: geom.PtFloat(0, 0), P2: geom.PtFloat(0, 8)},
		geom.Line{P1: geom.PtFloat(0, 0), P2: geom.PtFloat(8, 8)})
	c.AddTraps(traps)

	var sum int
	for _, row := range rows(t, c) {
		for _, v := range row {
			sum += int(v)
		}
	}
	// 32 pixels of area.
	if d := sum - 32*255; d < -16 || d > 16 {
		t.Errorf("total coverage = %d, want about %d", sum, 32*255)
	}
}

func TestCoverageWindowOffset(t *testing.T) {
	c, err := NewCoverage(image.Rect(10, 10, 14, 11), render.AntialiasDefault)
	if err != nil {
		t.Fatal(err)
	}
	c.AddBox(fbox(11, 10, 12, 11))
	var gotY int
	err = c.EachRow(func(y int, cov []byte) error {
		gotY = y
		if !slices.Equal(cov, []byte{0, 255, 0, 0}) {
			t.Errorf("row = %v, want [0 255 0 0]", cov)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotY != 10 {
		t.Errorf("row y = %d, want 10", gotY)
	}
}

func TestCoverageClippedShape(t *testing.T) {
	c, err := NewCoverage(image.Rect(0, 0, 4, 2), render.AntialiasDefault)
	if err != nil {
		t.Fatal(err)
	}
	c.AddBox(fbox(-5, -3, 2, 9))
	for i, row := range rows(t, c) {
		if !slices.Equal(row, []byte{255, 255, 0, 0}) {
			t.Errorf("row %d = %v, want [255 255 0 0]", i, row)
		}
	}
}

func TestCoverageEachRowEmpties(t *testing.T) {
	c, err := NewCoverage(image.Rect(0, 0, 3, 2), render.AntialiasDefault)
	if err != nil {
		t.Fatal(err)
	}
	c.AddBox(fbox(0, 0, 3, 2))
	rows(t, c)
	for i, row := range rows(t, c) {
		if !slices.Equal(row, []byte{0, 0, 0}) {
			t.Errorf("row %d after EachRow = %v, want zeros", i, row)
		}
	}

	stop := errors.New("stop")
	c.AddBox(fbox(0, 0, 3, 2))
	if err := c.EachRow(func(int, []byte) error { return stop }); !errors.Is(err, stop) {
		t.Errorf("EachRow() error = %v, want %v", err, stop)
	}
	for i, row := range rows(t, c) {
		if !slices.Equal(row, []byte{0, 0, 0}) {
			t.Errorf("row %d after aborted EachRow = %v, want zeros", i, row)
		}
	}
}

func TestCoverageResetReuses(t *testing.T) {
	c, err := NewCoverage(image.Rect(0, 0, 16, 16), render.AntialiasDefault)
	if err != nil {
		t.Fatal(err)
	}
	capBefore := c.Cap()
	if err := c.Reset(image.Rect(4, 4, 8, 8), render.AntialiasNone); err != nil {
		t.Fatal(err)
	}
	if c.Cap() != capBefore {
		t.Errorf("Cap() = %d after shrinking Reset, want %d", c.Cap(), capBefore)
	}
	if c.Rect() != image.Rect(4, 4, 8, 8) {
		t.Errorf("Rect() = %v", c.Rect())
	}

	if err := c.Reset(image.Rect(0, 0, 1<<15, 1<<14), render.AntialiasDefault); !errors.Is(err, render.ErrOutOfMemory) {
		t.Errorf("Reset(huge) error = %v, want ErrOutOfMemory", err)
	}
}

func TestCoverageRender(t *testing.T) {
	c, err := NewCoverage(image.Rect(0, 0, 6, 6), render.AntialiasDefault)
	if err != nil {
		t.Fatal(err)
	}
	c.AddBox(fbox(2, 2, 4, 4))

	dst, err := pixbuf.NewImage(pixbuf.FormatA8, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Render(dst, image.Pt(1, 1)); err != nil {
		t.Fatal(err)
	}
	for y := range 4 {
		for x := range 4 {
			want := byte(0)
			if x >= 1 && x < 3 && y >= 1 && y < 3 {
				want = 255
			}
			if got := dst.At(x, y)[3]; got != want {
				t.Errorf("mask(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}

	rgba, err := pixbuf.NewImage(pixbuf.FormatARGB32, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Render(rgba, image.Point{}); !errors.Is(err, pixbuf.ErrInvalidFormat) {
		t.Errorf("Render(ARGB32) error = %v, want ErrInvalidFormat", err)
	}
}

func TestAppendSpans(t *testing.T) {
	cov := []byte{0, 0, 255, 255, 128}
	tests := []struct {
		name     string
		keepZero bool
		want     []Span
	}{
		{"drop zero", false, []Span{{X: 7, Len: 2, Coverage: 255}, {X: 9, Len: 1, Coverage: 128}}},
		{"keep zero", true, []Span{{X: 5, Len: 2}, {X: 7, Len: 2, Coverage: 255}, {X: 9, Len: 1, Coverage: 128}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppendSpans(nil, 5, cov, tt.keepZero)
			if !slices.Equal(got, tt.want) {
				t.Errorf("AppendSpans() = %v, want %v", got, tt.want)
			}
		})
	}
	if got := AppendSpans(nil, 0, nil, true); len(got) != 0 {
		t.Errorf("AppendSpans(empty) = %v, want none", got)
	}
}
