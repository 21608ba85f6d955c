// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import (
	"image/color"
	"math"
)

// Color is a straight-alpha color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

var (
	Transparent = Color{}
	Black       = Color{A: 1}
	White       = Color{R: 1, G: 1, B: 1, A: 1}
)

// RGBA returns a color from straight-alpha components, clamped to [0, 1].
func RGBA(r, g, b, a float64) Color {
	return Color{R: clamp01(r), G: clamp01(g), B: clamp01(b), A: clamp01(a)}
}

// RGB returns an opaque color.
func RGB(r, g, b float64) Color { return RGBA(r, g, b, 1) }

// Premul returns c as premultiplied 8-bit R, G, B, A.
func (c Color) Premul() [4]byte {
	a := clamp01(c.A)
	return [4]byte{
		to8(clamp01(c.R) * a),
		to8(clamp01(c.G) * a),
		to8(clamp01(c.B) * a),
		to8(a),
	}
}

// IsOpaque reports whether c covers completely.
func (c Color) IsOpaque() bool { return c.A >= 1 }

// IsClear reports whether c is fully transparent.
func (c Color) IsClear() bool { return c.A <= 0 }

// Std returns c as a standard library color.
func (c Color) Std() color.RGBA {
	p := c.Premul()
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// FromStd converts any standard library color.
func FromStd(c color.Color) Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Transparent
	}
	fa := float64(a)
	return Color{R: float64(r) / fa, G: float64(g) / fa, B: float64(b) / fa, A: fa / 0xffff}
}

// Lerp interpolates straight-alpha components.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

func clamp01(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) byte {
	return byte(math.Round(v * 255))
}
