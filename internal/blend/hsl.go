// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blend

type rgb struct{ r, g, b float32 }

// lum uses the BT.601 weights.
func lum(c rgb) float32 {
	return 0.30*c.r + 0.59*c.g + 0.11*c.b
}

func saturation(c rgb) float32 {
	return max(c.r, c.g, c.b) - min(c.r, c.g, c.b)
}

// clipColor pulls out-of-gamut components toward the luminance.
func clipColor(c rgb) rgb {
	l := lum(c)
	n := min(c.r, c.g, c.b)
	x := max(c.r, c.g, c.b)
	if n < 0 {
		s := l / (l - n)
		c = rgb{l + (c.r-l)*s, l + (c.g-l)*s, l + (c.b-l)*s}
	}
	if x > 1 {
		s := (1 - l) / (x - l)
		c = rgb{l + (c.r-l)*s, l + (c.g-l)*s, l + (c.b-l)*s}
	}
	return c
}

func setLum(c rgb, l float32) rgb {
	d := l - lum(c)
	return clipColor(rgb{c.r + d, c.g + d, c.b + d})
}

func setSat(c rgb, s float32) rgb {
	ch := [3]*float32{&c.r, &c.g, &c.b}
	// Order the channel pointers min, mid, max.
	if *ch[0] > *ch[1] {
		ch[0], ch[1] = ch[1], ch[0]
	}
	if *ch[1] > *ch[2] {
		ch[1], ch[2] = ch[2], ch[1]
	}
	if *ch[0] > *ch[1] {
		ch[0], ch[1] = ch[1], ch[0]
	}
	lo, mid, hi := *ch[0], *ch[1], *ch[2]
	if hi > lo {
		*ch[1] = (mid - lo) * s / (hi - lo)
		*ch[2] = s
	} else {
		*ch[1], *ch[2] = 0, 0
	}
	*ch[0] = 0
	return c
}

func hslHue(s, d rgb) rgb        { return setLum(setSat(s, saturation(d)), lum(d)) }
func hslSaturation(s, d rgb) rgb { return setLum(setSat(d, saturation(s)), lum(d)) }
func hslColor(s, d rgb) rgb      { return setLum(s, lum(d)) }
func hslLuminosity(s, d rgb) rgb { return setLum(d, lum(s)) }

// nonSeparable lifts an HSL blend to premultiplied pixels with the same
// compositing formula as separable.
func nonSeparable(b func(s, d rgb) rgb) Func {
	return func(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
		if sa == 0 {
			return dr, dg, db, da
		}
		if da == 0 {
			return sr, sg, sb, sa
		}
		fsa, fda := float32(sa)/255, float32(da)/255
		s := rgb{float32(sr) / 255, float32(sg) / 255, float32(sb) / 255}
		d := rgb{float32(dr) / 255, float32(dg) / 255, float32(db) / 255}
		mix := b(
			rgb{unpremul(s.r, fsa), unpremul(s.g, fsa), unpremul(s.b, fsa)},
			rgb{unpremul(d.r, fda), unpremul(d.g, fda), unpremul(d.b, fda)},
		)
		k := fsa * fda
		return toByte((1-fsa)*d.r + (1-fda)*s.r + k*mix.r),
			toByte((1-fsa)*d.g + (1-fda)*s.g + k*mix.g),
			toByte((1-fsa)*d.b + (1-fda)*s.b + k*mix.b),
			toByte(fsa + fda - k)
	}
}
