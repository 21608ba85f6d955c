// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blend

import "math"

// chanFunc blends one unpremultiplied channel; values are in [0, 1].
type chanFunc func(s, d float32) float32

// separable lifts a per-channel blend to premultiplied pixels using
//
//	Co = (1 - Sa)·D + (1 - Da)·S + Sa·Da·B(S/Sa, D/Da)
//	Ao = Sa + Da - Sa·Da
func separable(b chanFunc) Func {
	return func(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
		if sa == 0 {
			return dr, dg, db, da
		}
		if da == 0 {
			return sr, sg, sb, sa
		}
		fsa, fda := float32(sa)/255, float32(da)/255
		ch := func(s, d byte) byte {
			fs, fd := float32(s)/255, float32(d)/255
			v := (1-fsa)*fd + (1-fda)*fs + fsa*fda*b(unpremul(fs, fsa), unpremul(fd, fda))
			return toByte(v)
		}
		return ch(sr, dr), ch(sg, dg), ch(sb, db), toByte(fsa + fda - fsa*fda)
	}
}

func unpremul(c, a float32) float32 {
	if a == 0 {
		return 0
	}
	v := c / a
	if v > 1 {
		return 1
	}
	return v
}

func toByte(v float32) byte {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return byte(v*255 + 0.5)
}

func multiplyChan(s, d float32) float32 { return s * d }

func screenChan(s, d float32) float32 { return s + d - s*d }

func overlayChan(s, d float32) float32 { return hardLightChan(d, s) }

func darkenChan(s, d float32) float32 { return min(s, d) }

func lightenChan(s, d float32) float32 { return max(s, d) }

func colorDodgeChan(s, d float32) float32 {
	switch {
	case d == 0:
		return 0
	case s >= 1:
		return 1
	}
	return min(1, d/(1-s))
}

func colorBurnChan(s, d float32) float32 {
	switch {
	case d >= 1:
		return 1
	case s <= 0:
		return 0
	}
	return 1 - min(1, (1-d)/s)
}

func hardLightChan(s, d float32) float32 {
	if s <= 0.5 {
		return multiplyChan(2*s, d)
	}
	return screenChan(2*s-1, d)
}

func softLightChan(s, d float32) float32 {
	if s <= 0.5 {
		return d - (1-2*s)*d*(1-d)
	}
	var dd float32
	if d <= 0.25 {
		dd = ((16*d-12)*d + 4) * d
	} else {
		dd = float32(math.Sqrt(float64(d)))
	}
	return d + (2*s-1)*(dd-d)
}

func differenceChan(s, d float32) float32 {
	if s > d {
		return s - d
	}
	return d - s
}

func exclusionChan(s, d float32) float32 { return s + d - 2*s*d }
