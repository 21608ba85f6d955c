// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import (
	"image"

	"github.com/gogpu/vraster/internal/blend"
)

// preservesClear reports whether op applied to a transparent destination
// leaves it transparent.
func (op Operator) preservesClear() bool {
	switch op {
	case OpClear, OpDest, OpIn, OpDestIn, OpDestOut, OpAtop:
		return true
	}
	return false
}

// Composite combines src, weighted by the alpha of mask when it is
// non-nil, into the w×h rectangle of dst at (dstX, dstY). Source and mask
// are read from (srcX, srcY) and (maskX, maskY) onward. The operator is
// applied to every pixel of the rectangle, so operators that are not
// bounded by the mask affect pixels where the mask is zero.
func Composite(op Operator, src, mask Picture, dst *Image, srcX, srcY, maskX, maskY, dstX, dstY, w, h int) {
	r := image.Rect(dstX, dstY, dstX+w, dstY+h).Intersect(dst.Bounds())
	if r.Empty() || op.IsNoop() {
		return
	}
	srcX += r.Min.X - dstX
	srcY += r.Min.Y - dstY
	maskX += r.Min.X - dstX
	maskY += r.Min.Y - dstY

	s := Spanner{Op: op, Src: src, Dst: dst, DX: srcX - r.Min.X, DY: srcY - r.Min.Y}
	var cov, scratch []byte
	if mask != nil {
		cov = make([]byte, r.Dx())
		scratch = make([]byte, 4*r.Dx())
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		if mask == nil {
			s.Run(r.Min.X, y, r.Dx(), 0xff)
			continue
		}
		fetchAlpha(mask, maskX, maskY+y-r.Min.Y, cov, scratch)
		s.Row(r.Min.X, y, cov)
	}
}

// fetchAlpha reads the alpha channel of p into dst.
func fetchAlpha(p Picture, x, y int, dst, scratch []byte) {
	if b, ok := p.(*Bits); ok && b.Image.format == FormatA8 && b.Extend == ExtendNone {
		if tx, ty, ok := b.Transform.IntegerTranslation(); ok {
			x, y = x+tx, y+ty
			clear(dst)
			if y < 0 || y >= b.Image.height {
				return
			}
			lo, hi := max(0, -x), min(len(dst), b.Image.width-x)
			if lo < hi {
				copy(dst[lo:hi], b.Image.rowSpan(x+lo, y, hi-lo))
			}
			return
		}
	}
	p.Fetch(x, y, scratch[:4*len(dst)])
	for i := range dst {
		dst[i] = scratch[4*i+3]
	}
}

// Fill composites a solid color over r.
func Fill(op Operator, c Color, dst *Image, r image.Rectangle) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() || op.IsNoop() {
		return
	}
	px := c.Premul()
	if op == OpClear {
		px = [4]byte{}
		op = OpSource
	}
	whole := r == dst.Bounds()
	wasClear := dst.clear
	w := r.Dx()
	var alpha []byte
	if dst.format == FormatA8 {
		alpha = make([]byte, w)
		for i := range alpha {
			alpha[i] = px[3]
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := dst.rowSpan(r.Min.X, y, w)
		switch dst.format {
		case FormatA8:
			blend.RowAlpha(op.mode(), row, alpha, nil)
		default:
			blend.RowSolid(op.mode(), row, px, nil)
			if dst.format == FormatRGB24 {
				opaqueRow(row)
			}
		}
	}
	switch {
	case px[3] == 0 && op == OpSource && whole && dst.format != FormatRGB24:
		dst.clear = true
	case !(wasClear && op.preservesClear()):
		dst.clear = false
	}
}

func opaqueRow(row []byte) {
	for i := 3; i < len(row); i += 4 {
		row[i] = 0xff
	}
}

// Spanner composites rows of coverage from one source into one
// destination. Source pixel (x+DX, y+DY) lands on destination pixel (x, y).
type Spanner struct {
	Op     Operator
	Src    Picture
	Dst    *Image
	DX, DY int

	buf   []byte
	alpha []byte
	run   []byte
}

func (s *Spanner) grow(n int) {
	if cap(s.buf) < 4*n {
		s.buf = make([]byte, 4*n)
		s.alpha = make([]byte, n)
	}
	s.buf = s.buf[:4*n]
	s.alpha = s.alpha[:n]
}

// Row composites len(cov) pixels starting at (x, y), each weighted by its
// coverage byte. Pixels outside the destination are skipped.
func (s *Spanner) Row(x, y int, cov []byte) {
	x, cov = s.clipRow(x, y, cov)
	if len(cov) == 0 {
		return
	}
	s.apply(x, y, len(cov), cov)
}

// Run composites w pixels starting at (x, y) with constant coverage.
func (s *Spanner) Run(x, y, w int, coverage byte) {
	if y < 0 || y >= s.Dst.height {
		return
	}
	if x < 0 {
		w += x
		x = 0
	}
	w = min(w, s.Dst.width-x)
	if w <= 0 {
		return
	}
	if coverage == 0 && s.Op.BoundedByMask() && s.Op != OpSource && s.Op != OpClear {
		return
	}
	if coverage == 0xff {
		s.apply(x, y, w, nil)
		return
	}
	if cap(s.run) < w {
		s.run = make([]byte, w)
	}
	cov := s.run[:w]
	for i := range cov {
		cov[i] = coverage
	}
	s.apply(x, y, w, cov)
}

func (s *Spanner) clipRow(x, y int, cov []byte) (int, []byte) {
	if y < 0 || y >= s.Dst.height {
		return x, nil
	}
	if x < 0 {
		if -x >= len(cov) {
			return x, nil
		}
		cov = cov[-x:]
		x = 0
	}
	if over := x + len(cov) - s.Dst.width; over > 0 {
		if over >= len(cov) {
			return x, nil
		}
		cov = cov[:len(cov)-over]
	}
	return x, cov
}

func (s *Spanner) apply(x, y, w int, cov []byte) {
	dst := s.Dst
	wasClear := dst.clear
	row := dst.rowSpan(x, y, w)
	mode := s.Op.mode()

	solid, isSolid := s.Src.(*Solid)
	switch {
	case dst.format == FormatA8:
		s.grow(w)
		if isSolid {
			for i := range s.alpha {
				s.alpha[i] = solid.Pixel[3]
			}
		} else {
			s.Src.Fetch(x+s.DX, y+s.DY, s.buf)
			for i := range s.alpha {
				s.alpha[i] = s.buf[4*i+3]
			}
		}
		blend.RowAlpha(mode, row, s.alpha, cov)
	case isSolid:
		blend.RowSolid(mode, row, solid.Pixel, cov)
	default:
		s.grow(w)
		s.Src.Fetch(x+s.DX, y+s.DY, s.buf)
		blend.Row(mode, row, s.buf, cov)
	}
	if dst.format == FormatRGB24 {
		opaqueRow(row)
	}
	if !(wasClear && s.Op.preservesClear()) {
		dst.clear = false
	}
}
