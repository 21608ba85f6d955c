// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Fixed is a 26.6 fixed-point coordinate.
type Fixed = fixed.Int26_6

// Fixed-point format parameters.
const (
	FracBits = 6
	One      = Fixed(1 << FracBits)
	Half     = Fixed(1 << (FracBits - 1))
	FracMask = One - 1

	// MaxFixed and MinFixed are the saturation bounds of FromFloat.
	MaxFixed = Fixed(math.MaxInt32)
	MinFixed = Fixed(math.MinInt32)
)

// Epsilon is the smallest positive fixed-point step.
const Epsilon = Fixed(1)

// FromFloat converts v to fixed point, rounding to nearest.
// Values outside the representable range saturate at MinFixed or MaxFixed;
// NaN converts to zero.
func FromFloat(v float64) Fixed {
	if v != v {
		return 0
	}
	s := math.Round(v * float64(One))
	if s >= math.MaxInt32 {
		return MaxFixed
	}
	if s <= math.MinInt32 {
		return MinFixed
	}
	return Fixed(s)
}

// ToFloat converts f to float64 exactly.
func ToFloat(f Fixed) float64 {
	return float64(f) / float64(One)
}

// FromInt converts an integer to fixed point, saturating on overflow.
func FromInt(i int) Fixed {
	const limit = math.MaxInt32 >> FracBits
	switch {
	case i > limit:
		return MaxFixed
	case i < -limit-1:
		return MinFixed
	}
	return fixed.I(i)
}

// IsInteger reports whether f has no fractional part.
func IsInteger(f Fixed) bool {
	return f&FracMask == 0
}

// Frac returns the fractional part of f in [0, One).
func Frac(f Fixed) Fixed {
	return f & FracMask
}

// RoundDown rounds f to the nearest integer, ties rounding down.
// Used by non-antialiased geometry so that a coordinate exactly on a pixel
// center belongs to the pixel above/left of it.
func RoundDown(f Fixed) Fixed {
	return (f + Half - 1) &^ FracMask
}

// Round rounds f to the nearest integer value (still in fixed point),
// ties away from negative infinity.
func Round(f Fixed) Fixed {
	return (f + Half) &^ FracMask
}

// MulDiv computes a*b/c in 64-bit precision, truncating toward zero.
// c must not be zero.
func MulDiv(a, b, c Fixed) Fixed {
	return Fixed(int64(a) * int64(b) / int64(c))
}
