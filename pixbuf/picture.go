// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import (
	"fmt"
	"math"

	"github.com/gogpu/vraster/geom"
)

// Extend says how a source is sampled outside its own area.
type Extend uint8

const (
	ExtendNone Extend = iota
	ExtendRepeat
	ExtendReflect
	ExtendPad
)

func (e Extend) String() string {
	switch e {
	case ExtendNone:
		return "none"
	case ExtendRepeat:
		return "repeat"
	case ExtendReflect:
		return "reflect"
	case ExtendPad:
		return "pad"
	}
	return fmt.Sprintf("Extend(%d)", uint8(e))
}

// Filter is a resampling filter.
type Filter uint8

const (
	FilterFast Filter = iota
	FilterGood
	FilterBest
	FilterNearest
	FilterBilinear
)

func (f Filter) String() string {
	switch f {
	case FilterFast:
		return "fast"
	case FilterGood:
		return "good"
	case FilterBest:
		return "best"
	case FilterNearest:
		return "nearest"
	case FilterBilinear:
		return "bilinear"
	}
	return fmt.Sprintf("Filter(%d)", uint8(f))
}

// Nearest reports whether f samples without interpolation.
func (f Filter) Nearest() bool { return f == FilterFast || f == FilterNearest }

// Picture is a sampleable source. Fetch writes premultiplied R, G, B, A for
// len(dst)/4 pixels starting at (x, y) in picture space.
type Picture interface {
	Fetch(x, y int, dst []byte)
	IsOpaque() bool
}

// Solid is a single premultiplied color.
type Solid struct {
	Pixel [4]byte
}

// NewSolid returns a solid picture of c.
func NewSolid(c Color) *Solid { return &Solid{Pixel: c.Premul()} }

func (s *Solid) Fetch(_, _ int, dst []byte) {
	for i := 0; i+3 < len(dst); i += 4 {
		copy(dst[i:i+4], s.Pixel[:])
	}
}

func (s *Solid) IsOpaque() bool { return s.Pixel[3] == 0xff }

// Bits samples an image. Transform maps picture space to image space; the
// identity makes picture pixel (x, y) image pixel (x, y).
type Bits struct {
	Image     *Image
	Transform geom.Matrix
	Extend    Extend
	Filter    Filter
}

// NewBits returns an untransformed, unextended picture of img.
func NewBits(img *Image) *Bits {
	return &Bits{Image: img, Transform: geom.Identity(), Filter: FilterGood}
}

func (b *Bits) IsOpaque() bool {
	return b.Extend != ExtendNone && b.Image.format == FormatRGB24
}

func (b *Bits) Fetch(x, y int, dst []byte) {
	n := len(dst) / 4
	if tx, ty, ok := b.Transform.IntegerTranslation(); ok {
		b.fetchTranslated(x+tx, y+ty, dst[:4*n])
		return
	}
	m := b.Transform
	// Sample at pixel centers.
	fx, fy := m.TransformPoint(float64(x)+0.5, float64(y)+0.5)
	for i := 0; i < n; i++ {
		var p [4]byte
		if b.Filter.Nearest() {
			p = b.texel(int(math.Floor(fx)), int(math.Floor(fy)))
		} else {
			p = b.bilinear(fx-0.5, fy-0.5)
		}
		copy(dst[4*i:], p[:])
		fx += m.A
		fy += m.D
	}
}

func (b *Bits) fetchTranslated(x, y int, dst []byte) {
	img := b.Image
	n := len(dst) / 4
	if b.Extend == ExtendNone || b.Extend == ExtendPad {
		yy, ok := b.wrap(y, img.height)
		if !ok {
			clear(dst)
			return
		}
		// Copy the in-range run directly and extend the edges.
		lo := max(0, -x)
		hi := min(n, img.width-x)
		if lo < hi && img.format != FormatA8 {
			copy(dst[4*lo:4*hi], img.rowSpan(x+lo, yy, hi-lo))
			for i := 0; i < lo; i++ {
				p := b.texel(x+i, yy)
				copy(dst[4*i:], p[:])
			}
			for i := hi; i < n; i++ {
				p := b.texel(x+i, yy)
				copy(dst[4*i:], p[:])
			}
			return
		}
	}
	for i := 0; i < n; i++ {
		p := b.texel(x+i, y)
		copy(dst[4*i:], p[:])
	}
}

// wrap maps a coordinate into [0, size) under the extend mode.
func (b *Bits) wrap(v, size int) (int, bool) {
	if size <= 0 {
		return 0, false
	}
	if v >= 0 && v < size {
		return v, true
	}
	switch b.Extend {
	case ExtendRepeat:
		v %= size
		if v < 0 {
			v += size
		}
		return v, true
	case ExtendReflect:
		p := 2 * size
		v %= p
		if v < 0 {
			v += p
		}
		if v >= size {
			v = p - 1 - v
		}
		return v, true
	case ExtendPad:
		return geom.Clamp(v, 0, size-1), true
	}
	return 0, false
}

func (b *Bits) texel(x, y int) [4]byte {
	xx, okx := b.wrap(x, b.Image.width)
	yy, oky := b.wrap(y, b.Image.height)
	if !okx || !oky {
		return [4]byte{}
	}
	return b.Image.At(xx, yy)
}

func (b *Bits) bilinear(fx, fy float64) [4]byte {
	x0, y0 := math.Floor(fx), math.Floor(fy)
	ix, iy := int(x0), int(y0)
	wx, wy := fx-x0, fy-y0
	p00, p10 := b.texel(ix, iy), b.texel(ix+1, iy)
	p01, p11 := b.texel(ix, iy+1), b.texel(ix+1, iy+1)
	var out [4]byte
	for c := 0; c < 4; c++ {
		top := float64(p00[c])*(1-wx) + float64(p10[c])*wx
		bot := float64(p01[c])*(1-wx) + float64(p11[c])*wx
		out[c] = byte(top*(1-wy) + bot*wy + 0.5)
	}
	return out
}
