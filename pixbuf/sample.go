// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/vraster/geom"
)

// interpolator returns the x/image/draw kernel for f.
func (f Filter) interpolator() draw.Interpolator {
	switch f {
	case FilterFast, FilterNearest:
		return draw.NearestNeighbor
	case FilterGood:
		return draw.ApproxBiLinear
	case FilterBest:
		return draw.CatmullRom
	}
	return draw.BiLinear
}

// SampleAffine fills the r area of dst with src resampled through m, which
// maps dst pixel space to src pixel space. Pixels that sample outside src
// follow the extend mode.
func SampleAffine(dst *Image, r image.Rectangle, src *Image, m geom.Matrix, extend Extend, filter Filter) error {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return nil
	}
	if extend == ExtendNone && dst.format != FormatA8 && src.format != FormatA8 {
		s2d, err := m.Invert()
		if err != nil {
			return fmt.Errorf("pixbuf: sample transform: %w", err)
		}
		view := dst.RGBA().SubImage(r).(*image.RGBA)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			clear(dst.rowSpan(r.Min.X, y, r.Dx()))
		}
		filter.interpolator().Transform(view, s2d.Aff3(), src.RGBA(), src.Bounds(), draw.Src, nil)
		if dst.format == FormatRGB24 {
			for y := r.Min.Y; y < r.Max.Y; y++ {
				opaqueRow(dst.rowSpan(r.Min.X, y, r.Dx()))
			}
		}
		dst.clear = false
		return nil
	}

	b := &Bits{Image: src, Transform: m, Extend: extend, Filter: filter}
	buf := make([]byte, 4*r.Dx())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		b.Fetch(r.Min.X, y, buf)
		row := dst.rowSpan(r.Min.X, y, r.Dx())
		switch dst.format {
		case FormatA8:
			for i := range row {
				row[i] = buf[4*i+3]
			}
		case FormatRGB24:
			copy(row, buf)
			opaqueRow(row)
		default:
			copy(row, buf)
		}
	}
	dst.clear = false
	return nil
}
