// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/internal/tess"
	"github.com/gogpu/vraster/pixbuf"
	"github.com/gogpu/vraster/render"
)

// Coverage accumulates the pixel coverage of trapezoids and boxes over a
// window of device space.
//
// Antialiased shapes are drawn as signed area deltas: every pixel receives
// the change in covered area relative to its left neighbour, and a running
// sum over the buffer recovers the coverage. Shapes with antialiasing off
// sample pixel centers and add whole-pixel steps the same way, so both
// kinds can share one buffer.
//
// Antialiased shapes must not overlap; the sum of their coverage is clamped
// to one. Unantialiased shapes may overlap since their counts saturate.
type Coverage struct {
	rect image.Rectangle
	aa   render.Antialias
	acc  []float32
}

// NewCoverage returns an empty coverage buffer over r.
func NewCoverage(r image.Rectangle, aa render.Antialias) (*Coverage, error) {
	c := &Coverage{}
	if err := c.Reset(r, aa); err != nil {
		return nil, err
	}
	return c, nil
}

// Reset empties c and moves it to r, reusing its memory when large enough.
func (c *Coverage) Reset(r image.Rectangle, aa render.Antialias) error {
	w, h := r.Dx(), r.Dy()
	if r.Empty() {
		w, h = 0, 0
		r = image.Rectangle{Min: r.Min, Max: r.Min}
	}
	if w != 0 && h > pixbuf.MaxPixels/w {
		return fmt.Errorf("%w: coverage %dx%d", render.ErrOutOfMemory, w, h)
	}
	// Each row carries a spill cell past its right edge.
	n := (w + 1) * h
	if cap(c.acc) < n {
		c.acc = make([]float32, n)
	} else {
		c.acc = c.acc[:n]
		clear(c.acc)
	}
	c.rect = r
	c.aa = aa
	return nil
}

// Cap returns the number of pixels c can hold without reallocating.
func (c *Coverage) Cap() int { return cap(c.acc) }

// Rect returns the window of c.
func (c *Coverage) Rect() image.Rectangle { return c.rect }

// AddTraps adds every trapezoid of t.
func (c *Coverage) AddTraps(t *tess.Traps) {
	for _, tr := range t.All() {
		c.AddTrap(tr)
	}
}

// AddBoxes adds every box of b.
func (c *Coverage) AddBoxes(b *tess.Boxes) {
	b.Each(func(box geom.Box) bool {
		c.AddBox(box)
		return true
	})
}

// AddBox adds the area of box.
func (c *Coverage) AddBox(box geom.Box) {
	c.AddTrap(tess.Trapezoid{
		Top:    box.P1.Y,
		Bottom: box.P2.Y,
		Left:   geom.Line{P1: box.P1, P2: geom.Pt(box.P1.X, box.P2.Y)},
		Right:  geom.Line{P1: geom.Pt(box.P2.X, box.P1.Y), P2: box.P2},
	})
}

// AddTrap adds the area of t.
func (c *Coverage) AddTrap(t tess.Trapezoid) {
	if t.Top >= t.Bottom || c.rect.Empty() {
		return
	}
	if c.aa.IsNone() {
		c.addTrapMono(t)
		return
	}
	top, bottom := geom.ToFloat(t.Top), geom.ToFloat(t.Bottom)
	ox, oy := float64(c.rect.Min.X), float64(c.rect.Min.Y)
	xl0, xl1 := t.Left.XForYFloat(top)-ox, t.Left.XForYFloat(bottom)-ox
	xr0, xr1 := t.Right.XForYFloat(top)-ox, t.Right.XForYFloat(bottom)-ox
	y0, y1 := top-oy, bottom-oy
	// Down the right side and up the left side.
	c.line(xr0, y0, xr1, y1)
	c.line(xl1, y1, xl0, y0)
}

// addTrapMono covers every pixel whose center lies inside t.
func (c *Coverage) addTrapMono(t tess.Trapezoid) {
	const half = geom.Half
	w := c.rect.Dx()
	yStart := max(ceilPix(t.Top-half), c.rect.Min.Y)
	yEnd := min(ceilPix(t.Bottom-half), c.rect.Max.Y)
	for y := yStart; y < yEnd; y++ {
		yc := geom.FromInt(y) + half
		x0 := ceilPix(t.Left.XForY(yc)-half) - c.rect.Min.X
		x1 := ceilPix(t.Right.XForY(yc)-half) - c.rect.Min.X
		x0, x1 = geom.Clamp(x0, 0, w), geom.Clamp(x1, 0, w)
		if x0 >= x1 {
			continue
		}
		row := (y - c.rect.Min.Y) * (w + 1)
		c.acc[row+x0]++
		c.acc[row+x1]--
	}
}

// ceilPix returns the smallest integer not below f.
func ceilPix(f geom.Fixed) int { return f.Ceil() }

// line accumulates the signed area to the right of the segment from
// (ax, ay) to (bx, by), in window coordinates. Deltas that fall past the
// right edge of a row land in its spill cell and are never read.
func (c *Coverage) line(ax, ay, bx, by float64) {
	dir := float32(1)
	if ay > by {
		dir, ax, ay, bx, by = -1, bx, by, ax, ay
	}
	if by-ay <= 1e-9 {
		return
	}
	w, h := c.rect.Dx(), c.rect.Dy()
	dxdy := (bx - ax) / (by - ay)

	x := ax
	y := int(floor(ay))
	yMax := min(int(ceil(by)), h)
	if y < 0 {
		x += (-ay) * dxdy
		ay = 0
		y = 0
	}
	for ; y < yMax; y++ {
		fy := float64(y)
		dy := min(fy+1, by) - max(fy, ay)
		xNext := x + dy*dxdy
		c.span(y*(w+1), w, float32(x), float32(xNext), float32(dy)*dir)
		x = xNext
	}
}

// span distributes the area delta d of a segment crossing one row from x
// to xNext over the cells of that row.
func (c *Coverage) span(row, w int, x, xNext, d float32) {
	buf := c.acc[row : row+w+1]
	put := func(i int, v float32) {
		buf[clampCell(i, w)] += v
	}
	x0, x1 := x, xNext
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	x0i := int(floor32(x0))
	x0Floor := float32(x0i)
	x1i := int(ceil32(x1))
	x1Ceil := float32(x1i)

	if x1i <= x0i+1 {
		xmf := 0.5*(x+xNext) - x0Floor
		put(x0i, d-d*xmf)
		put(x0i+1, d*xmf)
		return
	}

	s := 1 / (x1 - x0)
	x0f := x0 - x0Floor
	oneMinusX0f := 1 - x0f
	a0 := 0.5 * s * oneMinusX0f * oneMinusX0f
	x1f := x1 - x1Ceil + 1
	am := 0.5 * s * x1f * x1f
	put(x0i, d*a0)
	if x1i == x0i+2 {
		put(x0i+1, d*(1-a0-am))
	} else {
		a1 := s * (1.5 - x0f)
		put(x0i+1, d*(a1-a0))
		ds := d * s
		for xi := x0i + 2; xi < x1i-1; xi++ {
			put(xi, ds)
		}
		a2 := a1 + s*float32(x1i-x0i-3)
		put(x1i-1, d*(1-a2-am))
	}
	put(x1i, d*am)
}

// clampCell maps a column to a cell of the row slice. Columns left of the
// window collapse onto the first cell; columns right of it onto the spill
// cell.
func clampCell(i, w int) int {
	if i < 0 {
		return 0
	}
	return min(i, w)
}

// EachRow calls fn for every row of the window with its coverage bytes.
// The row slice is reused between calls. c is empty afterwards.
func (c *Coverage) EachRow(fn func(y int, cov []byte) error) error {
	w := c.rect.Dx()
	if w == 0 {
		return nil
	}
	row := make([]byte, w)
	for y := 0; y < c.rect.Dy(); y++ {
		cells := c.acc[y*(w+1) : (y+1)*(w+1)]
		var acc float32
		for i, v := range cells[:w] {
			acc += v
			row[i] = toByte(acc)
		}
		clear(cells)
		if err := fn(c.rect.Min.Y+y, row); err != nil {
			clear(c.acc[(y+1)*(w+1):])
			return err
		}
	}
	return nil
}

// Render writes the coverage of c into the A8 image dst, whose pixel
// (0, 0) is device pixel origin. Pixels outside dst are dropped.
func (c *Coverage) Render(dst *pixbuf.Image, origin image.Point) error {
	if dst.Format() != pixbuf.FormatA8 {
		return fmt.Errorf("%w: coverage target %v", pixbuf.ErrInvalidFormat, dst.Format())
	}
	view := dst.Alpha()
	b := dst.Bounds().Add(origin)
	lo, hi := max(b.Min.X, c.rect.Min.X), min(b.Max.X, c.rect.Max.X)
	err := c.EachRow(func(y int, cov []byte) error {
		if y < b.Min.Y || y >= b.Max.Y || lo >= hi {
			return nil
		}
		o := view.PixOffset(lo-origin.X, y-origin.Y)
		copy(view.Pix[o:o+hi-lo], cov[lo-c.rect.Min.X:hi-c.rect.Min.X])
		return nil
	})
	dst.MarkDirty()
	return err
}

func floor(v float64) float64 { return math.Floor(v) }
func ceil(v float64) float64  { return math.Ceil(v) }

func floor32(v float32) float32 { return float32(math.Floor(float64(v))) }
func ceil32(v float32) float32  { return float32(math.Ceil(float64(v))) }

func toByte(a float32) byte {
	if a < 0 {
		a = -a
	}
	if a >= 1 {
		return 0xff
	}
	return byte(a*0xff + 0.5)
}
